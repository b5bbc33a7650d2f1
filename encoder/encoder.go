// Package encoder folds a parsed Program into the 64 KiW RAM image spec §4.3
// describes: each Instruction becomes 1-3 words at its recorded pc, and
// each parser.RawWord (from .DAT/.FILL) is copied in directly.
package encoder

import (
	"fmt"

	"github.com/lookbusy1344/dcpu16/parser"
)

// Encoder converts a parser.Program into a RAM image.
type Encoder struct {
	symbols  *parser.SymbolTable
	paranoid bool
	warnings *parser.ErrorList
}

// NewEncoder creates an Encoder resolving labels against symbols. When
// paranoid is set, the non-fatal warnings spec §4.3 describes (division by
// an immediate zero, assignment to a literal destination, an inlinable
// label left in next-word form) are appended to the returned ErrorList.
func NewEncoder(symbols *parser.SymbolTable, paranoid bool) *Encoder {
	return &Encoder{symbols: symbols, paranoid: paranoid, warnings: &parser.ErrorList{}}
}

// Encode lays out every instruction and raw data word of prog into a fresh
// 65536-word image. Words never written remain zero.
func (e *Encoder) Encode(prog *parser.Program) ([65536]uint16, *parser.ErrorList, error) {
	var image [65536]uint16

	for _, raw := range prog.Data {
		image[raw.PC] = raw.Value
	}

	for _, instr := range prog.Instructions {
		words, err := e.encodeInstruction(instr)
		if err != nil {
			return image, e.warnings, err
		}
		for i, w := range words {
			image[instr.PC+uint16(i)] = w
		}
	}

	return image, e.warnings, nil
}

// Warnings returns the warnings accumulated so far.
func (e *Encoder) Warnings() *parser.ErrorList {
	return e.warnings
}

func (e *Encoder) encodeInstruction(instr parser.Instruction) ([]uint16, error) {
	if instr.B != nil {
		return e.encodeBasic(instr)
	}
	return e.encodeNonBasic(instr)
}

func (e *Encoder) encodeBasic(instr parser.Instruction) ([]uint16, error) {
	opcode, ok := basicOpcodes[instr.Opcode]
	if !ok {
		return nil, NewEncodingError(instr.A.Pos, fmt.Sprintf("unknown basic opcode %q", instr.Opcode))
	}

	aVal, aNext, err := e.encodeOperand(instr.A)
	if err != nil {
		return nil, err
	}
	bVal, bNext, err := e.encodeOperand(*instr.B)
	if err != nil {
		return nil, err
	}

	if e.paranoid {
		e.warnParanoidBasic(instr)
	}

	words := []uint16{opcode | (aVal << 4) | (bVal << 10)}
	if aNext != nil {
		words = append(words, *aNext)
	}
	if bNext != nil {
		words = append(words, *bNext)
	}
	return words, nil
}

func (e *Encoder) encodeNonBasic(instr parser.Instruction) ([]uint16, error) {
	opcode, ok := nonBasicOpcodes[instr.Opcode]
	if !ok {
		return nil, NewEncodingError(instr.A.Pos, fmt.Sprintf("unknown non-basic opcode %q", instr.Opcode))
	}

	aVal, aNext, err := e.encodeOperand(instr.A)
	if err != nil {
		return nil, err
	}

	words := []uint16{(opcode << 4) | (aVal << 10)}
	if aNext != nil {
		words = append(words, *aNext)
	}
	return words, nil
}

var conditionalOpcodes = map[string]bool{"IFE": true, "IFN": true, "IFG": true, "IFB": true}

func (e *Encoder) warnParanoidBasic(instr parser.Instruction) {
	if (instr.Opcode == "DIV" || instr.Opcode == "MOD") &&
		instr.B.Kind == parser.OperandLiteral && instr.B.Mode == parser.Immediate && instr.B.Value == 0 {
		e.warnings.AddWarning(&parser.Warning{
			Pos:     instr.B.Pos,
			Message: fmt.Sprintf("%s by an immediate zero always yields 0", instr.Opcode),
		})
	}
	if !conditionalOpcodes[instr.Opcode] &&
		instr.A.Kind == parser.OperandLiteral && instr.A.Mode == parser.Immediate {
		e.warnings.AddWarning(&parser.Warning{
			Pos:     instr.A.Pos,
			Message: fmt.Sprintf("%s writes to a literal destination; the write is discarded at runtime", instr.Opcode),
		})
	}
}

// encodeOperand returns the 6-bit value-table entry for op and, when the
// operand consumes a next word, the value of that word.
func (e *Encoder) encodeOperand(op parser.Operand) (uint16, *uint16, error) {
	switch op.Kind {
	case parser.OperandRegister:
		return e.encodeRegister(op)
	case parser.OperandLiteral:
		return e.encodeLiteral(op)
	case parser.OperandLabel:
		return e.encodeLabel(op)
	case parser.OperandRegisterOffset:
		return e.encodeRegisterOffset(op)
	default:
		return 0, nil, NewEncodingError(op.Pos, "unknown operand kind")
	}
}

func (e *Encoder) encodeRegister(op parser.Operand) (uint16, *uint16, error) {
	if idx, ok := registerIndex[op.Register]; ok {
		if op.Mode == parser.Reference {
			return ValRegisterIndirect + idx, nil, nil
		}
		return ValRegisterBase + idx, nil, nil
	}
	switch op.Register {
	case "PUSH":
		return ValPUSH, nil, nil
	case "POP":
		return ValPOP, nil, nil
	case "PEEK":
		return ValPEEK, nil, nil
	case "SP":
		return ValSP, nil, nil
	case "PC":
		return ValPC, nil, nil
	case "O":
		return ValO, nil, nil
	default:
		return 0, nil, NewEncodingError(op.Pos, fmt.Sprintf("unknown register %q", op.Register))
	}
}

func (e *Encoder) encodeLiteral(op parser.Operand) (uint16, *uint16, error) {
	if op.Mode == parser.Reference {
		w := op.Value
		return ValNextWordIndirect, &w, nil
	}
	if op.Value <= 0x1F {
		return ValSmallLiteralBase + op.Value, nil, nil
	}
	w := op.Value
	return ValNextWordLiteral, &w, nil
}

func (e *Encoder) encodeLabel(op parser.Operand) (uint16, *uint16, error) {
	value, err := e.symbols.Get(op.Label)
	if err != nil {
		return 0, nil, NewEncodingError(op.Pos, err.Error())
	}
	if op.Mode == parser.Reference {
		v := value
		return ValNextWordIndirect, &v, nil
	}
	// Label operands always occupy the next-word form: short-label
	// optimization (inlining a small resolved address) is not performed
	// (spec.md §9).
	if e.paranoid && value < 0x20 {
		e.warnings.AddWarning(&parser.Warning{
			Pos:     op.Pos,
			Message: fmt.Sprintf("label %q resolves to %#x, small enough to inline, but short-label optimization is not performed", op.Label, value),
		})
	}
	v := value
	return ValNextWordLiteral, &v, nil
}

func (e *Encoder) encodeRegisterOffset(op parser.Operand) (uint16, *uint16, error) {
	idx, ok := registerIndex[op.Register]
	if !ok {
		return 0, nil, NewEncodingError(op.Pos, fmt.Sprintf("%q cannot be used as a register-offset base", op.Register))
	}
	var offset uint16
	if op.OffsetIsLabel {
		v, err := e.symbols.Get(op.Label)
		if err != nil {
			return 0, nil, NewEncodingError(op.Pos, err.Error())
		}
		offset = v
	} else {
		offset = op.Value
	}
	return ValRegisterNextWordBase + idx, &offset, nil
}
