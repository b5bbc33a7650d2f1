package parser

import "fmt"

// SymbolKind distinguishes a label (bound to a pc) from a constant (bound
// to an immediate value by .EQU, SPEC_FULL.md §4.1.1).
type SymbolKind int

const (
	SymbolLabel SymbolKind = iota
	SymbolConstant
)

// Symbol is one entry in the label table (spec §3's Label, generalized to
// also carry .EQU constants). All references to the same name share this
// one entry — the label table owns the name string, every Operand and
// RegisterOffset holds only the name and is resolved by looking it up here.
type Symbol struct {
	Name       string
	Kind       SymbolKind
	Value      uint16
	Defined    bool
	Pos        Position
	References []Position
}

// SymbolTable owns every label and constant name seen while parsing.
type SymbolTable struct {
	symbols map[string]*Symbol
	order   []string // first-seen order (definition or first reference), for deterministic symbol dumps
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol)}
}

// Define binds name to value at pos. Redefining an already-defined symbol
// is a fatal error naming the old and new position (spec §3: "Redefinition
// is an error"), except that re-.EQU-ing a constant to the same value is
// accepted (SPEC_FULL.md §7 property 7).
func (st *SymbolTable) Define(name string, kind SymbolKind, value uint16, pos Position) error {
	if sym, exists := st.symbols[name]; exists {
		if sym.Defined {
			if kind == SymbolConstant && sym.Kind == SymbolConstant && sym.Value == value {
				return nil
			}
			return fmt.Errorf("%q already defined at %s (redefined at %s)", name, sym.Pos, pos)
		}
		sym.Kind = kind
		sym.Value = value
		sym.Defined = true
		sym.Pos = pos
		return nil
	}

	st.symbols[name] = &Symbol{Name: name, Kind: kind, Value: value, Defined: true, Pos: pos}
	st.order = append(st.order, name)
	return nil
}

// Reference records a use of name at pos, creating a forward-reference
// placeholder entry if name has not been seen before.
func (st *SymbolTable) Reference(name string, pos Position) *Symbol {
	if sym, exists := st.symbols[name]; exists {
		sym.References = append(sym.References, pos)
		return sym
	}
	sym := &Symbol{Name: name, Kind: SymbolLabel, Defined: false, Pos: pos, References: []Position{pos}}
	st.symbols[name] = sym
	st.order = append(st.order, name)
	return sym
}

// Lookup returns the symbol named name, if any.
func (st *SymbolTable) Lookup(name string) (*Symbol, bool) {
	sym, ok := st.symbols[name]
	return sym, ok
}

// Get returns the resolved value of name, or an error if it was never
// defined (spec §4.3: "a reference to an undefined label is a fatal
// error naming the label").
func (st *SymbolTable) Get(name string) (uint16, error) {
	sym, ok := st.symbols[name]
	if !ok || !sym.Defined {
		return 0, fmt.Errorf("undefined label %q", name)
	}
	return sym.Value, nil
}

// UndefinedSymbols returns every symbol that was referenced but never
// defined, in first-reference order.
func (st *SymbolTable) UndefinedSymbols() []*Symbol {
	var undef []*Symbol
	for _, name := range st.order {
		if sym := st.symbols[name]; !sym.Defined {
			undef = append(undef, sym)
		}
	}
	return undef
}

// All returns every symbol in definition/first-reference order.
func (st *SymbolTable) All() []*Symbol {
	all := make([]*Symbol, 0, len(st.order))
	for _, name := range st.order {
		all = append(all, st.symbols[name])
	}
	return all
}
