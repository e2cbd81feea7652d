package lsp

import (
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/seitarof/gen-javadoc/internal/generator"
	"github.com/seitarof/gen-javadoc/internal/locator"
)

// Protocol columns count UTF-16 code units; locator columns count bytes.
// Both conversions need the text of the line the position is on.

func toProtocolPosition(lines []string, p locator.Position) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(p.Line),
		Character: protocol.UInteger(utf16Column(lineAt(lines, p.Line), p.Character)),
	}
}

func fromProtocolPosition(lines []string, p protocol.Position) locator.Position {
	line := int(p.Line)
	return locator.Position{Line: line, Character: byteColumn(lineAt(lines, line), int(p.Character))}
}

func lineAt(lines []string, i int) string {
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i]
}

// utf16Column counts the UTF-16 code units in the first col bytes of line.
// Columns past the end of the line are kept as they are.
func utf16Column(line string, col int) int {
	if col > len(line) {
		return col - len(line) + utf16Column(line, len(line))
	}
	n := 0
	for _, r := range line[:col] {
		n += utf16.RuneLen(r)
	}
	return n
}

// byteColumn is the inverse of utf16Column. A column inside a surrogate
// pair moves to the end of that character.
func byteColumn(line string, units int) int {
	n := 0
	for i, r := range line {
		if n >= units {
			return i
		}
		n += utf16.RuneLen(r)
	}
	if units > n {
		return len(line) + units - n
	}
	return len(line)
}

func insertionEdit(uri string, lines []string, ins *generator.Insertion) protocol.WorkspaceEdit {
	at := toProtocolPosition(lines, locator.Position{Line: ins.Line, Character: ins.Character})
	return protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentUri][]protocol.TextEdit{
			uri: {{Range: protocol.Range{Start: at, End: at}, NewText: ins.Text}},
		},
	}
}

// commandArgs decodes [uri, line, character]. Numbers arrive from JSON as
// float64.
func commandArgs(args []any) (string, protocol.Position, bool) {
	if len(args) < 1 {
		return "", protocol.Position{}, false
	}
	uri, ok := args[0].(string)
	if !ok {
		return "", protocol.Position{}, false
	}

	var pos protocol.Position
	if len(args) >= 3 {
		line, lok := args[1].(float64)
		char, cok := args[2].(float64)
		if !lok || !cok || line < 0 || char < 0 {
			return "", protocol.Position{}, false
		}
		pos = protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(char)}
	}
	return uri, pos, true
}
