package vm

// Memory is the DCPU-16's flat 64 KiW address space (spec §3). Reads and
// writes to the console framebuffer and key buffer addresses carry side
// effects (spec §9 "mutation through decode"), so every access goes
// through Read/Write rather than direct slice indexing.
type Memory struct {
	Words      [65536]uint16
	ReadCount  uint64
	WriteCount uint64

	console [ConsoleWords]uint16
	lastKey uint16
}

// NewMemory returns a zeroed 64 KiW memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Read returns the word at addr. Console cells mirror their backing
// store directly; the key buffer address returns the last key pressed.
func (m *Memory) Read(addr uint16) uint16 {
	m.ReadCount++
	if addr == KeyBufferAddr {
		return m.lastKey
	}
	if addr >= ConsoleBase && int(addr) < ConsoleBase+ConsoleWords {
		return m.console[addr-ConsoleBase]
	}
	return m.Words[addr]
}

// Write stores v at addr, updating the console mirror when addr falls
// inside the framebuffer.
func (m *Memory) Write(addr uint16, v uint16) {
	m.WriteCount++
	if addr >= ConsoleBase && int(addr) < ConsoleBase+ConsoleWords {
		m.console[addr-ConsoleBase] = v
	}
	m.Words[addr] = v
}

// Load copies a RAM image (as produced by the encoder or hexdump.Read)
// into memory, word for word.
func (m *Memory) Load(image [65536]uint16) {
	m.Words = image
	for i := 0; i < ConsoleWords; i++ {
		m.console[i] = image[ConsoleBase+i]
	}
}

// Snapshot returns the full 64 KiW image, console cells included.
func (m *Memory) Snapshot() [65536]uint16 {
	img := m.Words
	for i := 0; i < ConsoleWords; i++ {
		img[ConsoleBase+i] = m.console[i]
	}
	return img
}

func (m *Memory) pressKey(k Key) {
	m.lastKey = uint16(k)
}
