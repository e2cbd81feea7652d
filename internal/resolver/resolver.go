package resolver

import (
	"regexp"
	"sort"
	"strings"
)

// Resolver rewrites simple class names in a type string to fully-qualified names.
type Resolver interface {
	Resolve(typeStr string, imports ImportMap) string
}

type resolverImpl struct{}

// New builds the default import-based resolver.
func New() Resolver {
	return &resolverImpl{}
}

func (r *resolverImpl) Resolve(typeStr string, imports ImportMap) string {
	return ResolveFQN(typeStr, imports)
}

var identifierPattern = regexp.MustCompile(`[a-zA-Z_]\w*`)

// ResolveFQN replaces every whole-word occurrence of an imported simple name
// in typeStr with its fully-qualified name. Names that already follow a '.'
// are part of a qualified name and are left alone, so resolving twice gives
// the same result as resolving once.
func ResolveFQN(typeStr string, imports ImportMap) string {
	if typeStr == "" || typeStr == "void" || len(imports) == 0 {
		return typeStr
	}

	resolved := typeStr
	for _, word := range uniqueLongestFirst(identifierPattern.FindAllString(typeStr, -1)) {
		fqn, ok := imports[word]
		if !ok {
			continue
		}
		resolved = replaceWord(resolved, word, fqn)
	}
	return resolved
}

// uniqueLongestFirst keeps the first occurrence order among equal lengths.
func uniqueLongestFirst(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out
}

func replaceWord(s, word, replacement string) string {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
	matches := re.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if m[0] > 0 && s[m[0]-1] == '.' {
			continue
		}
		b.WriteString(s[last:m[0]])
		b.WriteString(replacement)
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
