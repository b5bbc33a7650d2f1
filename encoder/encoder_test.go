package encoder

import (
	"testing"

	"github.com/lookbusy1344/dcpu16/parser"
)

func assemble(t *testing.T, src string, paranoid bool) ([65536]uint16, *parser.ErrorList) {
	t.Helper()
	prog, _, err := parser.Parse(src, "test.asm", paranoid)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	enc := NewEncoder(prog.Symbols, paranoid)
	image, warnings, err := enc.Encode(prog)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	return image, warnings
}

// S1 — Small literal fast path.
func TestS1SmallLiteralFastPath(t *testing.T) {
	image, _ := assemble(t, "SET A, 0x1e\n", false)
	// b = small literal 0x20+0x1e = 0x3e, so the word is 0x3e<<10 | SET.
	if image[0] != 0xF801 {
		t.Fatalf("expected word 0xF801, got %#04x", image[0])
	}
}

// S2 — Next-word literal.
func TestS2NextWordLiteral(t *testing.T) {
	image, _ := assemble(t, "SET A, 0x1234\n", false)
	if image[0] != 0x7C01 {
		t.Fatalf("expected word 0x7C01, got %#04x", image[0])
	}
	if image[1] != 0x1234 {
		t.Fatalf("expected next word 0x1234, got %#04x", image[1])
	}
}

// S3 — Forward reference and loop (encoding side: checks the resolved pc).
func TestS3ForwardReferenceEncodesLoopTarget(t *testing.T) {
	src := ":start SET A, 1\n       SET PC, start\n"
	prog, _, err := parser.Parse(src, "test.asm", false)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	enc := NewEncoder(prog.Symbols, false)
	image, _, err := enc.Encode(prog)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	// SET A, 1 is one word (small literal); SET PC, start follows at pc 1.
	if image[2] != 0 {
		t.Fatalf("expected start label to resolve to pc 0, got %#04x", image[2])
	}
}

func TestEncodeRegisterIndirect(t *testing.T) {
	image, _ := assemble(t, "SET [A], B\n", false)
	// a = [A] = 0x08, b = B immediate = 0x01
	want := uint16(OpSET) | (uint16(ValRegisterIndirect) << 4) | (uint16(1) << 10)
	if image[0] != want {
		t.Fatalf("expected %#04x, got %#04x", want, image[0])
	}
}

func TestEncodeRegisterOffset(t *testing.T) {
	image, _ := assemble(t, "SET [A+4], B\n", false)
	want := uint16(OpSET) | (uint16(ValRegisterNextWordBase) << 4) | (uint16(1) << 10)
	if image[0] != want {
		t.Fatalf("expected opcode word %#04x, got %#04x", want, image[0])
	}
	if image[1] != 4 {
		t.Fatalf("expected next word 4, got %#04x", image[1])
	}
}

func TestEncodeJSRNonBasic(t *testing.T) {
	image, _ := assemble(t, "JSR 0x100\n", false)
	want := (uint16(OpJSR) << 4) | (uint16(ValNextWordLiteral) << 10)
	if image[0] != want {
		t.Fatalf("expected opcode word %#04x, got %#04x", want, image[0])
	}
	if image[1] != 0x100 {
		t.Fatalf("expected next word 0x100, got %#04x", image[1])
	}
}

func TestEncodeUndefinedLabelIsFatalAtEncodeTime(t *testing.T) {
	// SymbolTable.Get on an undefined symbol can only happen if a caller builds
	// a Program directly (parser.Parse already checks this); exercise it here.
	symbols := parser.NewSymbolTable()
	symbols.Reference("missing", parser.Position{Filename: "t", Line: 1})
	prog := &parser.Program{
		Instructions: []parser.Instruction{{
			PC: 0, Opcode: "SET",
			A: parser.RegisterOperand("A", parser.Immediate, parser.Position{}),
			B: ptr(parser.LabelOperand("missing", parser.Immediate, parser.Position{})),
		}},
		Symbols: symbols,
	}
	enc := NewEncoder(symbols, false)
	if _, _, err := enc.Encode(prog); err == nil {
		t.Fatal("expected an error encoding a reference to an undefined label")
	}
}

func TestParanoidWarnsOnDivByImmediateZero(t *testing.T) {
	_, warnings := assemble(t, "DIV A, 0\n", true)
	if len(warnings.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(warnings.Warnings), warnings.Warnings)
	}
}

func TestParanoidWarnsOnLiteralDestination(t *testing.T) {
	_, warnings := assemble(t, "SET 5, A\n", true)
	if len(warnings.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(warnings.Warnings), warnings.Warnings)
	}
}

func TestParanoidDoesNotWarnOnConditionalLiteralDestination(t *testing.T) {
	// IFx never writes, so a literal 'a' operand there is not a wasted write.
	_, warnings := assemble(t, "IFE 5, A\nSET B, 1\n", true)
	if len(warnings.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %d: %v", len(warnings.Warnings), warnings.Warnings)
	}
}

func ptr(o parser.Operand) *parser.Operand { return &o }
