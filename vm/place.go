package vm

// place is the resolved form of an operand (spec §9 "mutation through
// decode"): decoding an operand can itself mutate machine state (PUSH
// advances SP, [next word] consumes a word and advances PC), so decode
// happens once and yields a handle bundling the read side effect with an
// optional write side effect. Immediate and literal operands have a nil
// write: writing to them is a no-op, per spec §4.3's literal-destination
// note.
type place struct {
	read  func() uint16
	write func(uint16)
}

func (p place) set(v uint16) {
	if p.write != nil {
		p.write(v)
	}
}

// decodeOperand resolves the 6-bit operand value v, consuming a next
// word from RAM when the value-table band requires one (spec §4.3).
// nextWord is called at most once and advances m.CPU.PC as a side
// effect, matching the encoder's uses_next_word accounting.
func (m *Machine) decodeOperand(v uint16) place {
	switch {
	case v < valRegisterIndirect: // 0x00-0x07: register
		name := registerNames[v]
		return place{
			read:  func() uint16 { return m.CPU.Register(name) },
			write: func(x uint16) { m.CPU.SetRegister(name, x) },
		}
	case v < valRegisterNextWordBase: // 0x08-0x0F: [register]
		name := registerNames[v-valRegisterIndirect]
		return place{
			read:  func() uint16 { return m.Mem.Read(m.CPU.Register(name)) },
			write: func(x uint16) { m.Mem.Write(m.CPU.Register(name), x) },
		}
	case v < valPOP: // 0x10-0x17: [next word + register]
		name := registerNames[v-valRegisterNextWordBase]
		addr := m.nextWord() + m.CPU.Register(name)
		return place{
			read:  func() uint16 { return m.Mem.Read(addr) },
			write: func(x uint16) { m.Mem.Write(addr, x) },
		}
	case v == valPOP:
		addr := m.CPU.SP
		m.CPU.SP++
		return place{
			read:  func() uint16 { return m.Mem.Read(addr) },
			write: func(x uint16) { m.Mem.Write(addr, x) },
		}
	case v == valPEEK:
		return place{
			read:  func() uint16 { return m.Mem.Read(m.CPU.SP) },
			write: func(x uint16) { m.Mem.Write(m.CPU.SP, x) },
		}
	case v == valPUSH:
		m.CPU.SP--
		addr := m.CPU.SP
		return place{
			read:  func() uint16 { return m.Mem.Read(addr) },
			write: func(x uint16) { m.Mem.Write(addr, x) },
		}
	case v == valSP:
		return place{
			read:  func() uint16 { return m.CPU.SP },
			write: func(x uint16) { m.CPU.SP = x },
		}
	case v == valPC:
		return place{
			read:  func() uint16 { return m.CPU.PC },
			write: func(x uint16) { m.CPU.PC = x },
		}
	case v == valO:
		return place{
			read:  func() uint16 { return m.CPU.O },
			write: func(x uint16) { m.CPU.O = x },
		}
	case v == valNextWordIndirect:
		addr := m.nextWord()
		return place{
			read:  func() uint16 { return m.Mem.Read(addr) },
			write: func(x uint16) { m.Mem.Write(addr, x) },
		}
	case v == valNextWordLiteral:
		lit := m.nextWord()
		return place{read: func() uint16 { return lit }}
	default: // 0x20-0x3F: small literal, inlined
		lit := v - valSmallLiteralBase
		return place{read: func() uint16 { return lit }}
	}
}

func (m *Machine) nextWord() uint16 {
	w := m.Mem.Read(m.CPU.PC)
	m.CPU.PC++
	return w
}
