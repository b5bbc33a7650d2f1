package parser

import "testing"

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer(src, "test.asm")
	var toks []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return toks
}

func TestLexerMnemonicVsIdentifier(t *testing.T) {
	toks := tokenize(t, "SET SETX\n")
	if toks[0].Type != TokenMnemonic || toks[0].Literal != "SET" {
		t.Fatalf("expected mnemonic SET, got %v", toks[0])
	}
	if toks[1].Type != TokenIdentifier || toks[1].Literal != "SETX" {
		t.Fatalf("expected identifier SETX, got %v", toks[1])
	}
}

func TestLexerSingleLetterRegister(t *testing.T) {
	toks := tokenize(t, "A AB\n")
	if toks[0].Type != TokenRegister {
		t.Fatalf("expected register A, got %v", toks[0])
	}
	if toks[1].Type != TokenIdentifier {
		t.Fatalf("expected identifier AB, got %v", toks[1])
	}
}

func TestLexerStackAndStatusRegisters(t *testing.T) {
	toks := tokenize(t, "SP PC O PUSH POP PEEK\n")
	for i := 0; i < 6; i++ {
		if toks[i].Type != TokenRegister {
			t.Fatalf("token %d: expected register, got %v", i, toks[i])
		}
	}
}

func TestLexerDottedAndBareDirectives(t *testing.T) {
	toks := tokenize(t, ".ORG DAT\n")
	if toks[0].Type != TokenDirective || toks[0].Literal != "ORG" {
		t.Fatalf("expected directive ORG, got %v", toks[0])
	}
	if toks[1].Type != TokenDirective || toks[1].Literal != "DAT" {
		t.Fatalf("expected directive DAT, got %v", toks[1])
	}
}

func TestLexerHexAndDecimalNumbers(t *testing.T) {
	toks := tokenize(t, "0x1234 42\n")
	if toks[0].Type != TokenNumber || toks[0].Num != 0x1234 {
		t.Fatalf("expected 0x1234, got %v", toks[0])
	}
	if toks[1].Type != TokenNumber || toks[1].Num != 42 {
		t.Fatalf("expected 42, got %v", toks[1])
	}
}

func TestLexerOverflowingNumberWarns(t *testing.T) {
	lex := NewLexer("0x10000\n", "test.asm")
	tok, err := lex.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Num != 0 {
		t.Fatalf("expected wrapped value 0, got %#x", tok.Num)
	}
	if len(lex.Warnings().Warnings) != 1 {
		t.Fatalf("expected one warning, got %d", len(lex.Warnings().Warnings))
	}
}

func TestLexerStringEscapes(t *testing.T) {
	toks := tokenize(t, `"a\"b\\c\td\re"`+"\n")
	if toks[0].Type != TokenString {
		t.Fatalf("expected string, got %v", toks[0])
	}
	want := "a\"b\\c\td\re"
	if toks[0].Literal != want {
		t.Fatalf("expected %q, got %q", want, toks[0].Literal)
	}
}

func TestLexerUnknownCharacterIsError(t *testing.T) {
	lex := NewLexer("$\n", "test.asm")
	if _, err := lex.Next(); err == nil {
		t.Fatal("expected lex error for '$'")
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	lex := NewLexer("A B\n", "test.asm")
	p1, _ := lex.Peek()
	p2, _ := lex.Peek()
	if p1 != p2 {
		t.Fatalf("peek is not idempotent: %v != %v", p1, p2)
	}
	n, _ := lex.Next()
	if n != p1 {
		t.Fatalf("next did not return the peeked token: %v != %v", n, p1)
	}
}
