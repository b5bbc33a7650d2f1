package vm

// Step fetches, decodes and executes exactly one instruction (spec
// §4.5). A basic instruction's bits[3:0] give the opcode and its a/b
// operand fields sit at bits[9:4] and bits[15:10]; a non-basic
// instruction has bits[3:0] == 0, its real opcode at bits[9:4] and a
// single operand at bits[15:10].
func (m *Machine) Step() {
	instrPC := m.CPU.PC
	word := m.nextWord()
	opcode := word & 0xF
	aField := (word >> 4) & 0x3F
	bField := (word >> 10) & 0x3F

	if m.CPU.SkipNext {
		m.CPU.SkipNext = false
		// Still consume any next words the skipped instruction's operands
		// would have, so PC lands on the following instruction.
		if opcode == 0 {
			m.decodeOperand(bField)
		} else {
			m.decodeOperand(aField)
			m.decodeOperand(bField)
		}
		return
	}

	var entry TraceEntry
	if m.Trace != nil {
		entry = TraceEntry{PC: instrPC, Opcode: opcode, A: aField, B: bField}
	}

	if opcode == 0 {
		m.executeNonBasic(aField, bField)
	} else {
		m.executeBasic(opcode, aField, bField)
	}

	if m.Trace != nil {
		m.Trace.append(entry)
	}
}

func (m *Machine) executeBasic(opcode, aField, bField uint16) {
	a := m.decodeOperand(aField)
	b := m.decodeOperand(bField)

	switch opcode {
	case opSET:
		a.set(b.read())
	case opADD:
		sum := uint32(a.read()) + uint32(b.read())
		a.set(uint16(sum))
		m.CPU.O = uint16(sum >> 16)
	case opSUB:
		diff := uint32(a.read()) - uint32(b.read())
		a.set(uint16(diff))
		m.CPU.O = uint16(diff >> 16) // wraps to 0xFFFF on borrow, as uint32 subtraction does
	case opMUL:
		prod := uint32(a.read()) * uint32(b.read())
		a.set(uint16(prod))
		m.CPU.O = uint16(prod >> 16)
	case opDIV:
		bv := b.read()
		if bv == 0 {
			a.set(0)
			m.CPU.O = 0
			return
		}
		av := a.read()
		a.set(av / bv)
		m.CPU.O = uint16((uint32(av) << 16) / uint32(bv))
	case opMOD:
		bv := b.read()
		if bv == 0 {
			a.set(0)
			return
		}
		a.set(a.read() % bv)
	case opSHL:
		av, bv := a.read(), b.read()
		a.set(av << bv)
		m.CPU.O = uint16((uint32(av) << bv) >> 16)
	case opSHR:
		av, bv := a.read(), b.read()
		a.set(av >> bv)
		if bv != 0 {
			m.CPU.O = uint16((uint32(av) << (16 - (bv & 0xF))) & 0xFFFF)
		} else {
			m.CPU.O = 0
		}
	case opAND:
		a.set(a.read() & b.read())
	case opBOR:
		a.set(a.read() | b.read())
	case opXOR:
		a.set(a.read() ^ b.read())
	case opIFE:
		if a.read() != b.read() {
			m.CPU.SkipNext = true
		}
	case opIFN:
		if a.read() == b.read() {
			m.CPU.SkipNext = true
		}
	case opIFG:
		if a.read() <= b.read() {
			m.CPU.SkipNext = true
		}
	case opIFB:
		if a.read()&b.read() == 0 {
			m.CPU.SkipNext = true
		}
	}
}

func (m *Machine) executeNonBasic(opcode, aField uint16) {
	a := m.decodeOperand(aField)
	switch opcode {
	case opJSR:
		m.CPU.SP--
		m.Mem.Write(m.CPU.SP, m.CPU.PC)
		m.CPU.PC = a.read()
	default:
		// Reserved non-basic opcodes are no-ops; only observable through
		// a trace (spec.md §8 open questions).
	}
}
