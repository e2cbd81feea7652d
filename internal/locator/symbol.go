package locator

// Position is a zero-based line and column in a document.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Before reports whether p comes strictly before o.
func (p Position) Before(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Character < o.Character
}

// Range is a span of a document; both ends are inclusive for Contains.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Contains reports whether pos lies within r.
func (r Range) Contains(pos Position) bool {
	return !pos.Before(r.Start) && !r.End.Before(pos)
}

// SymbolKind classifies a document symbol.
type SymbolKind int

const (
	SymbolKindClass SymbolKind = iota
	SymbolKindInterface
	SymbolKindEnum
	SymbolKindRecord
	SymbolKindAnnotation
	SymbolKindMethod
	SymbolKindConstructor
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolKindClass:
		return "class"
	case SymbolKindInterface:
		return "interface"
	case SymbolKindEnum:
		return "enum"
	case SymbolKindRecord:
		return "record"
	case SymbolKindAnnotation:
		return "annotation"
	case SymbolKindMethod:
		return "method"
	case SymbolKindConstructor:
		return "constructor"
	default:
		return "unknown"
	}
}

// IsCallable reports whether a Javadoc method block applies to the kind.
func (k SymbolKind) IsCallable() bool {
	return k == SymbolKindMethod || k == SymbolKindConstructor
}

// Symbol is one declaration in a document outline.
type Symbol struct {
	Name     string
	Kind     SymbolKind
	Range    Range
	Children []Symbol
}
