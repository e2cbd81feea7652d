package locator

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// SymbolProvider produces the declaration outline of a Java document.
type SymbolProvider interface {
	DocumentSymbols(ctx context.Context, src []byte) ([]Symbol, error)
}

type treeSitterProvider struct{}

// NewTreeSitterProvider returns a provider backed by the tree-sitter Java grammar.
// A parser is created per call, so the provider is safe for concurrent use.
func NewTreeSitterProvider() SymbolProvider {
	return &treeSitterProvider{}
}

var declarationKinds = map[string]SymbolKind{
	"class_declaration":               SymbolKindClass,
	"interface_declaration":           SymbolKindInterface,
	"enum_declaration":                SymbolKindEnum,
	"record_declaration":              SymbolKindRecord,
	"annotation_type_declaration":     SymbolKindAnnotation,
	"method_declaration":              SymbolKindMethod,
	"constructor_declaration":         SymbolKindConstructor,
	"compact_constructor_declaration": SymbolKindConstructor,
}

// Nodes whose declarations belong to the enclosing symbol.
var transparentNodes = map[string]bool{
	"program":                true,
	"class_body":             true,
	"interface_body":         true,
	"enum_body":              true,
	"enum_body_declarations": true,
	"annotation_type_body":   true,
	"ERROR":                  true,
}

func (p *treeSitterProvider) DocumentSymbols(ctx context.Context, src []byte) ([]Symbol, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse java: %w", err)
	}
	defer tree.Close()

	return collectSymbols(tree.RootNode(), src), nil
}

func collectSymbols(n *sitter.Node, src []byte) []Symbol {
	var out []Symbol
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		kind, ok := declarationKinds[child.Type()]
		if !ok {
			if transparentNodes[child.Type()] {
				out = append(out, collectSymbols(child, src)...)
			}
			continue
		}

		sym := Symbol{
			Name:  symbolName(child, src),
			Kind:  kind,
			Range: nodeRange(child),
		}
		if !kind.IsCallable() {
			if body := child.ChildByFieldName("body"); body != nil {
				sym.Children = collectSymbols(body, src)
			}
		}
		out = append(out, sym)
	}
	return out
}

func symbolName(n *sitter.Node, src []byte) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return name.Content(src)
	}
	return ""
}

func nodeRange(n *sitter.Node) Range {
	start, end := n.StartPoint(), n.EndPoint()
	return Range{
		Start: Position{Line: int(start.Row), Character: int(start.Column)},
		End:   Position{Line: int(end.Row), Character: int(end.Column)},
	}
}
