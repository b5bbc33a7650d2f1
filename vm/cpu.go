package vm

// CPU holds the DCPU-16 register file (spec §3: A, B, C, X, Y, Z, I, J,
// SP, PC, O). SkipNext implements the one-instruction skip any IFx
// failure leaves behind (spec §4.5).
type CPU struct {
	Registers [8]uint16
	PC        uint16
	SP        uint16
	O         uint16
	SkipNext  bool
}

// NewCPU returns a zeroed CPU, matching the reference emulator's
// dcpu16_init (original_source: memset(cpu, 0, sizeof(*cpu))).
func NewCPU() *CPU {
	return &CPU{}
}

// Reset restores the CPU to its power-on state: every field zero.
func (c *CPU) Reset() {
	*c = CPU{}
}

// Register returns the value of the general-purpose register named n
// ("A".."J"). It panics on an unknown name: callers resolve operand
// register names against the same table the encoder validated at
// assemble time, so an unknown name here is a programming error.
func (c *CPU) Register(n string) uint16 {
	idx, ok := registerIndex[n]
	if !ok {
		panic("vm: unknown register " + n)
	}
	return c.Registers[idx]
}

// SetRegister assigns v to register n.
func (c *CPU) SetRegister(n string, v uint16) {
	c.Registers[registerIndex[n]] = v
}
