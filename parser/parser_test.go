package parser

import "testing"

func TestParseSmallLiteral(t *testing.T) {
	prog, _, err := Parse("SET A, 0x1e\n", "test.asm", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Instructions) != 1 {
		t.Fatalf("expected 1 instruction, got %d", len(prog.Instructions))
	}
	instr := prog.Instructions[0]
	if instr.PC != 0 || instr.Opcode != "SET" {
		t.Fatalf("unexpected instruction: %+v", instr)
	}
	if instr.A.Kind != OperandRegister || instr.A.Register != "A" {
		t.Fatalf("unexpected operand a: %+v", instr.A)
	}
	if instr.B == nil || instr.B.Kind != OperandLiteral || instr.B.Value != 0x1e {
		t.Fatalf("unexpected operand b: %+v", instr.B)
	}
	if instr.Length() != 1 {
		t.Fatalf("expected length 1 for small literal, got %d", instr.Length())
	}
}

func TestParseNextWordLiteral(t *testing.T) {
	prog, _, err := Parse("SET A, 0x1234\n", "test.asm", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	instr := prog.Instructions[0]
	if instr.Length() != 2 {
		t.Fatalf("expected length 2, got %d", instr.Length())
	}
}

func TestParseLabelReference(t *testing.T) {
	src := ":start SET A, 1\n       SET PC, start\n"
	prog, _, err := Parse(src, "test.asm", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Instructions) != 2 {
		t.Fatalf("expected 2 instructions, got %d", len(prog.Instructions))
	}
	sym, ok := prog.Symbols.Lookup("start")
	if !ok || !sym.Defined || sym.Value != 0 {
		t.Fatalf("expected start resolved to pc 0, got %+v", sym)
	}
}

func TestParseUndefinedLabelIsFatal(t *testing.T) {
	_, _, err := Parse("SET PC, nowhere\n", "test.asm", false)
	if err == nil {
		t.Fatal("expected undefined label error")
	}
}

func TestParseDuplicateLabelIsFatal(t *testing.T) {
	src := ":loop SET A, 1\n:loop SET A, 2\n"
	_, _, err := Parse(src, "test.asm", false)
	if err == nil {
		t.Fatal("expected duplicate label error")
	}
}

func TestParseRegisterOffsetOperand(t *testing.T) {
	prog, _, err := Parse("SET [A+4], B\n", "test.asm", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := prog.Instructions[0].A
	if a.Kind != OperandRegisterOffset || a.Register != "A" || a.Value != 4 {
		t.Fatalf("unexpected operand: %+v", a)
	}
}

func TestParseRegisterOffsetRejectsNonGeneralBase(t *testing.T) {
	_, _, err := Parse("SET [SP+4], B\n", "test.asm", false)
	if err == nil {
		t.Fatal("expected error using SP as a register-offset base")
	}
}

func TestParseJSRTakesOneOperand(t *testing.T) {
	prog, _, err := Parse("JSR 0x100\n", "test.asm", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	instr := prog.Instructions[0]
	if instr.B != nil {
		t.Fatalf("expected no second operand for JSR, got %+v", instr.B)
	}
}

func TestParseDatStringAndNumbers(t *testing.T) {
	prog, _, err := Parse(`.DAT "hi", 7`+"\n", "test.asm", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Data) != 3 {
		t.Fatalf("expected 3 data words, got %d", len(prog.Data))
	}
	if prog.Data[0].Value != 'h' || prog.Data[1].Value != 'i' || prog.Data[2].Value != 7 {
		t.Fatalf("unexpected data: %+v", prog.Data)
	}
}

func TestParseEquDefinesConstant(t *testing.T) {
	prog, _, err := Parse(".EQU limit, 10\nSET A, limit\n", "test.asm", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sym, ok := prog.Symbols.Lookup("limit")
	if !ok || sym.Kind != SymbolConstant || sym.Value != 10 {
		t.Fatalf("unexpected symbol: %+v", sym)
	}
}

func TestParseEquRedefinitionSameValueAccepted(t *testing.T) {
	_, _, err := Parse(".EQU limit, 10\n.EQU limit, 10\n", "test.asm", false)
	if err != nil {
		t.Fatalf("expected idempotent redefinition to succeed, got %v", err)
	}
}

func TestParseEquRedefinitionDifferentValueFatal(t *testing.T) {
	_, _, err := Parse(".EQU limit, 10\n.EQU limit, 11\n", "test.asm", false)
	if err == nil {
		t.Fatal("expected redefinition with a different value to fail")
	}
}

func TestParseFillAdvancesPC(t *testing.T) {
	prog, _, err := Parse(".FILL 4, 0xAB\nSET A, 1\n", "test.asm", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Data) != 4 {
		t.Fatalf("expected 4 filled words, got %d", len(prog.Data))
	}
	for i, w := range prog.Data {
		if w.PC != uint16(i) || w.Value != 0xAB {
			t.Fatalf("unexpected fill word %d: %+v", i, w)
		}
	}
	if prog.Instructions[0].PC != 4 {
		t.Fatalf("expected instruction after .FILL at pc 4, got %d", prog.Instructions[0].PC)
	}
}

func TestParseOrgSetsPC(t *testing.T) {
	prog, _, err := Parse(".ORG 0x200\nSET A, 1\n", "test.asm", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prog.Instructions[0].PC != 0x200 {
		t.Fatalf("expected pc 0x200, got %#x", prog.Instructions[0].PC)
	}
}

func TestParseOrgBackwardsWarnsInParanoidMode(t *testing.T) {
	_, warnings, err := Parse(".ORG 0x10\nSET A, 1\n.ORG 0x0\nSET B, 1\n", "test.asm", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings.Warnings))
	}
}
