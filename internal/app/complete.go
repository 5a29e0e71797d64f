package app

import "strings"

// symbolScope is one completion source of the demo REPL: a label shown above
// the grid and the names it offers.
type symbolScope struct {
	label string
	names []string
}

// The demo table: Go-flavored scopes, so the popup has something real to lay
// out. A host embedding the core supplies its own CompleteFunc instead.
var symbolScopes = []symbolScope{
	{"Keyword", []string{
		"break", "case", "chan", "const", "continue", "default", "defer",
		"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
		"interface", "map", "package", "range", "return", "select", "struct",
		"switch", "type", "var",
	}},
	{"Builtin", []string{
		"append", "cap", "clear", "close", "complex", "copy", "delete",
		"imag", "len", "make", "max", "min", "new", "panic", "print",
		"println", "real", "recover",
	}},
	{"Type", []string{
		"any", "bool", "byte", "complex64", "complex128", "error", "float32",
		"float64", "int", "int8", "int16", "int32", "int64", "rune", "string",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
	}},
}

// completeSymbol matches the demo symbol table against the filter. The scope
// label reported is the one contributing the first match; candidates from
// all scopes are merged.
func completeSymbol(filter, expr string) ([]string, string, error) {
	var names []string
	label := ""
	for _, scope := range symbolScopes {
		for _, name := range scope.names {
			if strings.HasPrefix(name, filter) {
				if label == "" {
					label = scope.label
				}
				names = append(names, name)
			}
		}
	}
	if label == "" {
		label = "Symbol"
	}
	return names, label, nil
}
