package vm

import "fmt"

var basicMnemonics = map[uint16]string{
	opSET: "SET", opADD: "ADD", opSUB: "SUB", opMUL: "MUL", opDIV: "DIV", opMOD: "MOD",
	opSHL: "SHL", opSHR: "SHR", opAND: "AND", opBOR: "BOR", opXOR: "XOR",
	opIFE: "IFE", opIFN: "IFN", opIFG: "IFG", opIFB: "IFB",
}

var nonBasicMnemonics = map[uint16]string{
	opJSR: "JSR",
}

// Disassemble decodes the instruction at ram[pc] into its raw operand
// forms (spec §4.6): labels are never reconstructed, since a RAM image
// carries no symbol table by the time it reaches the emulator. It
// returns the address of the following instruction.
func Disassemble(ram [65536]uint16, pc int) (next int, text string) {
	word := ram[pc]
	opcode := word & 0xF
	aField := (word >> 4) & 0x3F
	bField := (word >> 10) & 0x3F
	cursor := pc + 1

	if opcode == 0 {
		mnem, ok := nonBasicMnemonics[aField]
		aText := disassembleOperand(ram, &cursor, bField)
		if !ok {
			return cursor, fmt.Sprintf("??? (ext=0x%02X) %s", aField, aText)
		}
		return cursor, fmt.Sprintf("%s %s", mnem, aText)
	}

	mnem, ok := basicMnemonics[opcode]
	if !ok {
		aText := disassembleOperand(ram, &cursor, aField)
		bText := disassembleOperand(ram, &cursor, bField)
		return cursor, fmt.Sprintf("??? (op=0x%X) %s, %s", opcode, aText, bText)
	}
	aText := disassembleOperand(ram, &cursor, aField)
	bText := disassembleOperand(ram, &cursor, bField)
	return cursor, fmt.Sprintf("%s %s, %s", mnem, aText, bText)
}

func disassembleOperand(ram [65536]uint16, cursor *int, v uint16) string {
	switch {
	case v < valRegisterIndirect:
		return registerNames[v]
	case v < valRegisterNextWordBase:
		return fmt.Sprintf("[%s]", registerNames[v-valRegisterIndirect])
	case v < valPOP:
		w := ram[*cursor]
		*cursor++
		return fmt.Sprintf("[0x%04X+%s]", w, registerNames[v-valRegisterNextWordBase])
	case v == valPOP:
		return "POP"
	case v == valPEEK:
		return "PEEK"
	case v == valPUSH:
		return "PUSH"
	case v == valSP:
		return "SP"
	case v == valPC:
		return "PC"
	case v == valO:
		return "O"
	case v == valNextWordIndirect:
		w := ram[*cursor]
		*cursor++
		return fmt.Sprintf("[0x%04X]", w)
	case v == valNextWordLiteral:
		w := ram[*cursor]
		*cursor++
		return fmt.Sprintf("0x%04X", w)
	default:
		return fmt.Sprintf("0x%02X", v-valSmallLiteralBase)
	}
}
