package parser

import "fmt"

// Parser builds a Program from a token stream, resolving labels via
// deferred references (spec §4.2): a label used before its definition is
// recorded as an undefined Symbol and checked only once, at end of parse.
type Parser struct {
	lex      *Lexer
	paranoid bool
	pc       uint16
	symbols  *SymbolTable
	instrs   []Instruction
	data     []RawWord
	warnings *ErrorList
}

// Parse assembles source (from file filename, used only for diagnostics)
// into a Program. paranoid enables the non-fatal warnings spec §4.2/§7
// describe (origin directive moving pc backwards; numeric literals wider
// than 16 bits, reported by the lexer). The returned ErrorList is valid
// even when err is non-nil, since warnings may have accumulated before the
// fatal error was hit.
func Parse(source, filename string, paranoid bool) (*Program, *ErrorList, error) {
	lex := NewLexer(source, filename)
	p := &Parser{
		lex:      lex,
		paranoid: paranoid,
		symbols:  NewSymbolTable(),
		warnings: lex.Warnings(),
	}
	err := p.parseProgram()
	warnings := p.warnings
	if !paranoid {
		// The lexer flags wide literals unconditionally; they are reported
		// only in paranoid mode.
		warnings = &ErrorList{}
	}
	if err != nil {
		return nil, warnings, err
	}
	return &Program{Instructions: p.instrs, Data: p.data, Symbols: p.symbols}, warnings, nil
}

func (p *Parser) parseProgram() error {
	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return err
		}
		if tok.Type == TokenEOF {
			break
		}
		if tok.Type == TokenNewline {
			p.lex.Next()
			continue
		}
		if err := p.parseLine(); err != nil {
			return err
		}
	}
	for _, sym := range p.symbols.UndefinedSymbols() {
		return NewError(sym.Pos, ErrorUndefinedLabel, fmt.Sprintf("undefined label %q", sym.Name))
	}
	return nil
}

// parseLine handles `line := (':' IDENT)* (instr | directive)? NEWLINE`.
func (p *Parser) parseLine() error {
	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return err
		}
		if tok.Type != TokenColon {
			break
		}
		p.lex.Next()
		name, err := p.lex.Next()
		if err != nil {
			return err
		}
		if name.Type != TokenIdentifier {
			return NewError(name.Pos, ErrorSyntax, fmt.Sprintf("expected label name after ':', got %s", name.Type))
		}
		if err := p.symbols.Define(name.Literal, SymbolLabel, p.pc, name.Pos); err != nil {
			return NewError(name.Pos, ErrorDuplicateLabel, err.Error())
		}
	}

	tok, err := p.lex.Peek()
	if err != nil {
		return err
	}
	switch tok.Type {
	case TokenMnemonic:
		return p.parseInstruction()
	case TokenDirective:
		return p.parseDirective()
	case TokenNewline, TokenEOF:
		// label-only line
	default:
		return NewError(tok.Pos, ErrorSyntax, fmt.Sprintf("expected instruction or directive, got %s", tok.Type))
	}
	return p.expectEndOfLine()
}

func (p *Parser) expectEndOfLine() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	if tok.Type != TokenNewline && tok.Type != TokenEOF {
		return NewError(tok.Pos, ErrorSyntax, fmt.Sprintf("expected end of line, got %s", tok.Type))
	}
	return nil
}

// parseInstruction handles `instr := mnemonic operand (',' operand)?`,
// with exactly one operand required for a non-basic mnemonic (JSR) and
// exactly two for every basic mnemonic.
func (p *Parser) parseInstruction() error {
	mnem, err := p.lex.Next()
	if err != nil {
		return err
	}

	a, err := p.parseOperand()
	if err != nil {
		return err
	}

	var b *Operand
	if !nonBasicMnemonics[mnem.Literal] {
		comma, err := p.lex.Next()
		if err != nil {
			return err
		}
		if comma.Type != TokenComma {
			return NewError(comma.Pos, ErrorSyntax, fmt.Sprintf("expected ',', got %s", comma.Type))
		}
		second, err := p.parseOperand()
		if err != nil {
			return err
		}
		b = &second
	}

	instr := Instruction{PC: p.pc, Line: mnem.Pos.Line, Opcode: mnem.Literal, A: a, B: b}
	p.instrs = append(p.instrs, instr)
	p.pc += instr.Length()

	return p.expectEndOfLine()
}

// parseOperand handles `operand := IDENT | NUMBER | REG | '[' inner ']'`.
func (p *Parser) parseOperand() (Operand, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return Operand{}, err
	}
	switch tok.Type {
	case TokenRegister:
		return RegisterOperand(tok.Literal, Immediate, tok.Pos), nil
	case TokenNumber:
		return LiteralOperand(tok.Num, Immediate, tok.Pos), nil
	case TokenIdentifier:
		p.symbols.Reference(tok.Literal, tok.Pos)
		return LabelOperand(tok.Literal, Immediate, tok.Pos), nil
	case TokenLBracket:
		return p.parseBracketOperand(tok.Pos)
	default:
		return Operand{}, NewError(tok.Pos, ErrorInvalidOperand, fmt.Sprintf("expected operand, got %s", tok.Type))
	}
}

// parseBracketOperand handles the contents of `'[' inner ']'`:
//
//	inner := NUMBER | REG | IDENT
//	       | (NUMBER|IDENT) '+' REG
//	       | REG '+' (NUMBER|IDENT)
func (p *Parser) parseBracketOperand(lbracket Position) (Operand, error) {
	first, err := p.lex.Next()
	if err != nil {
		return Operand{}, err
	}

	var op Operand
	switch first.Type {
	case TokenRegister:
		peek, err := p.lex.Peek()
		if err != nil {
			return Operand{}, err
		}
		if peek.Type == TokenPlus {
			if !isGeneralRegister(first.Literal) {
				return Operand{}, NewError(first.Pos, ErrorInvalidOperand, fmt.Sprintf("%s cannot be used as a register-offset base", first.Literal))
			}
			p.lex.Next()
			op, err = p.parseOffsetOf(first.Literal, lbracket)
			if err != nil {
				return Operand{}, err
			}
		} else {
			if !isGeneralRegister(first.Literal) {
				return Operand{}, NewError(first.Pos, ErrorInvalidOperand, fmt.Sprintf("%s cannot be used as a memory reference", first.Literal))
			}
			op = RegisterOperand(first.Literal, Reference, lbracket)
		}

	case TokenNumber:
		peek, err := p.lex.Peek()
		if err != nil {
			return Operand{}, err
		}
		if peek.Type == TokenPlus {
			p.lex.Next()
			reg, err := p.expectGeneralRegister()
			if err != nil {
				return Operand{}, err
			}
			op = RegisterOffsetLiteral(reg, first.Num, lbracket)
		} else {
			op = LiteralOperand(first.Num, Reference, lbracket)
		}

	case TokenIdentifier:
		peek, err := p.lex.Peek()
		if err != nil {
			return Operand{}, err
		}
		if peek.Type == TokenPlus {
			p.lex.Next()
			reg, err := p.expectGeneralRegister()
			if err != nil {
				return Operand{}, err
			}
			p.symbols.Reference(first.Literal, first.Pos)
			op = RegisterOffsetLabel(reg, first.Literal, lbracket)
		} else {
			p.symbols.Reference(first.Literal, first.Pos)
			op = LabelOperand(first.Literal, Reference, lbracket)
		}

	default:
		return Operand{}, NewError(first.Pos, ErrorInvalidOperand, fmt.Sprintf("expected number, register, or identifier inside '[', got %s", first.Type))
	}

	rbracket, err := p.lex.Next()
	if err != nil {
		return Operand{}, err
	}
	if rbracket.Type != TokenRBracket {
		return Operand{}, NewError(rbracket.Pos, ErrorSyntax, fmt.Sprintf("expected ']', got %s", rbracket.Type))
	}
	return op, nil
}

// parseOffsetOf completes `REG '+' (NUMBER|IDENT)` once '+' has already
// been consumed and reg has already been validated as a general register.
func (p *Parser) parseOffsetOf(reg string, lbracket Position) (Operand, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return Operand{}, err
	}
	switch tok.Type {
	case TokenNumber:
		return RegisterOffsetLiteral(reg, tok.Num, lbracket), nil
	case TokenIdentifier:
		p.symbols.Reference(tok.Literal, tok.Pos)
		return RegisterOffsetLabel(reg, tok.Literal, lbracket), nil
	default:
		return Operand{}, NewError(tok.Pos, ErrorInvalidOperand, fmt.Sprintf("expected number or identifier after '+', got %s", tok.Type))
	}
}

func (p *Parser) expectGeneralRegister() (string, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return "", err
	}
	if tok.Type != TokenRegister || !isGeneralRegister(tok.Literal) {
		return "", NewError(tok.Pos, ErrorInvalidOperand, fmt.Sprintf("expected a general register (A..J) after '+', got %s", tok.Type))
	}
	return tok.Literal, nil
}

// parseDirective handles the four directive forms of spec §4.2 and
// SPEC_FULL.md §4.1.1:
//
//	directive := '.ORG' NUMBER
//	           | '.DAT' dat_item (',' dat_item)*
//	           | '.EQU' IDENT ',' NUMBER
//	           | '.FILL' NUMBER ',' NUMBER
//	dat_item  := NUMBER | STRING
func (p *Parser) parseDirective() error {
	dir, err := p.lex.Next()
	if err != nil {
		return err
	}

	switch dir.Literal {
	case "ORG":
		n, err := p.expectNumber()
		if err != nil {
			return err
		}
		if p.paranoid && n.Num < p.pc {
			p.warnings.AddWarning(&Warning{Pos: n.Pos, Message: fmt.Sprintf(".ORG %#x moves pc backwards from %#x", n.Num, p.pc)})
		}
		p.pc = n.Num

	case "DAT":
		for {
			tok, err := p.lex.Next()
			if err != nil {
				return err
			}
			switch tok.Type {
			case TokenNumber:
				p.data = append(p.data, RawWord{PC: p.pc, Value: tok.Num})
				p.pc++
			case TokenString:
				for i := 0; i < len(tok.Literal); i++ {
					p.data = append(p.data, RawWord{PC: p.pc, Value: uint16(tok.Literal[i])})
					p.pc++
				}
			default:
				return NewError(tok.Pos, ErrorInvalidDirective, fmt.Sprintf("expected number or string in .DAT, got %s", tok.Type))
			}
			peek, err := p.lex.Peek()
			if err != nil {
				return err
			}
			if peek.Type != TokenComma {
				break
			}
			p.lex.Next()
		}

	case "EQU":
		name, err := p.lex.Next()
		if err != nil {
			return err
		}
		if name.Type != TokenIdentifier {
			return NewError(name.Pos, ErrorInvalidDirective, fmt.Sprintf("expected name in .EQU, got %s", name.Type))
		}
		if _, err := p.expectComma(); err != nil {
			return err
		}
		value, err := p.expectNumber()
		if err != nil {
			return err
		}
		if err := p.symbols.Define(name.Literal, SymbolConstant, value.Num, name.Pos); err != nil {
			return NewError(name.Pos, ErrorDuplicateLabel, err.Error())
		}

	case "FILL":
		count, err := p.expectNumber()
		if err != nil {
			return err
		}
		if _, err := p.expectComma(); err != nil {
			return err
		}
		value, err := p.expectNumber()
		if err != nil {
			return err
		}
		for i := uint32(0); i < uint32(count.Num); i++ {
			p.data = append(p.data, RawWord{PC: p.pc, Value: value.Num})
			p.pc++
		}
	}

	return p.expectEndOfLine()
}

func (p *Parser) expectNumber() (Token, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return Token{}, err
	}
	if tok.Type != TokenNumber {
		return Token{}, NewError(tok.Pos, ErrorInvalidDirective, fmt.Sprintf("expected a number, got %s", tok.Type))
	}
	return tok, nil
}

func (p *Parser) expectComma() (Token, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return Token{}, err
	}
	if tok.Type != TokenComma {
		return Token{}, NewError(tok.Pos, ErrorSyntax, fmt.Sprintf("expected ',', got %s", tok.Type))
	}
	return tok, nil
}
