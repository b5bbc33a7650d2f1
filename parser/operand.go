package parser

// AddressingMode distinguishes an operand that IS a value from one that
// names a memory cell holding the value (spec §3).
type AddressingMode int

const (
	Immediate AddressingMode = iota
	Reference
)

// OperandKind tags the four Operand variants (spec §3).
type OperandKind int

const (
	OperandRegister OperandKind = iota
	OperandLiteral
	OperandLabel
	OperandRegisterOffset
)

// generalRegisters names the eight registers legal as a RegisterOffset
// base; the stack pseudo-ops and status registers are not.
var generalRegisters = map[string]bool{
	"A": true, "B": true, "C": true, "X": true, "Y": true, "Z": true, "I": true, "J": true,
}

func isGeneralRegister(name string) bool {
	return generalRegisters[name]
}

// Operand is the sum type spec §3 describes: Register, Literal, Label, or
// RegisterOffset. Which fields are meaningful depends on Kind.
//
//   - OperandRegister: Register, Mode.
//   - OperandLiteral: Value, Mode.
//   - OperandLabel: Label, Mode.
//   - OperandRegisterOffset: Register (the base, always a general register),
//     plus either Value or Label for the offset (OffsetIsLabel tells which).
//     Mode is always Reference.
type Operand struct {
	Kind          OperandKind
	Mode          AddressingMode
	Register      string
	Value         uint16
	Label         string
	OffsetIsLabel bool
	Pos           Position
}

func RegisterOperand(reg string, mode AddressingMode, pos Position) Operand {
	return Operand{Kind: OperandRegister, Mode: mode, Register: reg, Pos: pos}
}

func LiteralOperand(value uint16, mode AddressingMode, pos Position) Operand {
	return Operand{Kind: OperandLiteral, Mode: mode, Value: value, Pos: pos}
}

func LabelOperand(name string, mode AddressingMode, pos Position) Operand {
	return Operand{Kind: OperandLabel, Mode: mode, Label: name, Pos: pos}
}

func RegisterOffsetLiteral(reg string, offset uint16, pos Position) Operand {
	return Operand{Kind: OperandRegisterOffset, Mode: Reference, Register: reg, Value: offset, Pos: pos}
}

func RegisterOffsetLabel(reg string, label string, pos Position) Operand {
	return Operand{Kind: OperandRegisterOffset, Mode: Reference, Register: reg, Label: label, OffsetIsLabel: true, Pos: pos}
}

// UsesNextWord reports whether encoding this operand consumes the word
// immediately following the instruction word (spec §4.2's uses_next_word
// rule). Label operands always do, regardless of the address they end up
// resolving to (spec.md §9: short-label optimization is not performed).
func (o Operand) UsesNextWord() bool {
	switch o.Kind {
	case OperandRegisterOffset:
		return true
	case OperandLabel:
		return true
	case OperandLiteral:
		if o.Mode == Reference {
			return true
		}
		return o.Value > 0x1f
	default:
		return false
	}
}

// Instruction is one assembled line: a basic instruction with two operands,
// or a non-basic instruction (currently only JSR) with one (spec §3).
type Instruction struct {
	PC     uint16
	Line   int
	Opcode string
	A      Operand
	B      *Operand
}

// Length is the number of words this instruction occupies once encoded:
// the opcode word plus one next-word per operand that needs one.
func (i Instruction) Length() uint16 {
	n := uint16(1)
	if i.A.UsesNextWord() {
		n++
	}
	if i.B != nil && i.B.UsesNextWord() {
		n++
	}
	return n
}

// RawWord is a word written directly into the RAM image at PC, bypassing
// instruction encoding — the result of a .DAT item or one unit of a .FILL
// run (spec §4.2: ".DAT appends each item into the RAM image ... rather
// than producing an Instruction").
type RawWord struct {
	PC    uint16
	Value uint16
}

// Program is the parser's complete output: every assembled instruction,
// every raw data word, and the symbol table that resolves their labels.
type Program struct {
	Instructions []Instruction
	Data         []RawWord
	Symbols      *SymbolTable
}
