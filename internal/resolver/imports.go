package resolver

import (
	"regexp"
	"strings"
)

// ImportMap maps simple class names to fully-qualified names.
type ImportMap map[string]string

// Static imports never match: "static" is followed by a space, not ';'.
var importPattern = regexp.MustCompile(`^import\s+([\w.$]+)\s*;`)

var typeModifiers = map[string]bool{
	"public":     true,
	"protected":  true,
	"private":    true,
	"abstract":   true,
	"final":      true,
	"static":     true,
	"sealed":     true,
	"non-sealed": true,
	"strictfp":   true,
}

// BuildImportMap scans source lines for single-type imports. Wildcard and
// static imports are skipped. Scanning stops at the first top-level type
// declaration.
func BuildImportMap(lines []string) ImportMap {
	imports := ImportMap{}
	for _, line := range lines {
		text := strings.TrimSpace(line)
		if isTypeDeclaration(text) {
			break
		}
		m := importPattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		fqn := m[1]
		simple := fqn[strings.LastIndexByte(fqn, '.')+1:]
		if simple == "" {
			continue
		}
		imports[simple] = fqn
	}
	return imports
}

// ImportsFromText is BuildImportMap over newline-separated source text.
func ImportsFromText(text string) ImportMap {
	return BuildImportMap(strings.Split(text, "\n"))
}

func isTypeDeclaration(line string) bool {
	for _, word := range strings.Fields(line) {
		switch word {
		case "class", "interface", "enum", "record", "@interface":
			return true
		}
		if strings.HasPrefix(word, "@") || typeModifiers[word] {
			continue
		}
		return false
	}
	return false
}
