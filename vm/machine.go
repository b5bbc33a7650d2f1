package vm

// Machine bundles the CPU, memory and peripherals into one runnable unit
// (spec §4.5/§6). HaltOnFixpoint stops Run when PC stops advancing (an
// unconditional jump to itself, the idiomatic DCPU-16 halt), matching
// the reference emulator's behavior for a program with no other exit.
type Machine struct {
	CPU            *CPU
	Mem            *Memory
	Trace          *Trace
	HaltOnFixpoint bool
}

// NewMachine returns a Machine with a fresh CPU and empty memory.
func NewMachine() *Machine {
	return &Machine{CPU: NewCPU(), Mem: NewMemory(), HaltOnFixpoint: true}
}

// PressKey records k as the last key pressed (spec §6: memory-mapped
// keyboard, one-word buffer).
func (m *Machine) PressKey(k Key) {
	m.Mem.pressKey(k)
}

// ConsoleCell decodes the console word at (row, col) into its packed
// foreground, background and ASCII fields (spec §6: [fg:4 bg:4 _:1
// ascii:7]).
func (m *Machine) ConsoleCell(row, col int) ConsoleCell {
	word := m.Mem.Read(uint16(ConsoleBase + row*ConsoleCols + col))
	return decodeConsoleCell(word)
}

// Run steps the machine until either an instruction sets PC to its own
// address (a fixpoint, when HaltOnFixpoint is set) or maxSteps have
// executed (0 means unbounded). It returns the number of steps taken.
func (m *Machine) Run(maxSteps int) int {
	steps := 0
	for maxSteps == 0 || steps < maxSteps {
		pc := m.CPU.PC
		m.Step()
		steps++
		if m.HaltOnFixpoint && m.CPU.PC == pc {
			break
		}
	}
	return steps
}
