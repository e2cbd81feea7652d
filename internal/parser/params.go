package parser

import "strings"

// ParseParameters splits the text between a declaration's parentheses into
// parameter names. Commas nested in generic arguments do not split.
// Segments without both a type and a name are skipped.
func ParseParameters(paramList string) []string {
	params := []string{}
	if strings.TrimSpace(paramList) == "" {
		return params
	}

	var current strings.Builder
	depth := 0
	flush := func() {
		if name := extractParamName(current.String()); name != "" {
			params = append(params, name)
		}
		current.Reset()
	}

	for _, r := range paramList {
		switch {
		case r == '<':
			depth++
			current.WriteRune(r)
		case r == '>':
			depth--
			current.WriteRune(r)
		case r == ',' && depth == 0:
			flush()
		default:
			current.WriteRune(r)
		}
	}

	if strings.TrimSpace(current.String()) != "" {
		flush()
	}
	return params
}

func extractParamName(decl string) string {
	parts := strings.Fields(decl)
	if len(parts) < 2 {
		return ""
	}

	name := parts[len(parts)-1]
	switch {
	case strings.HasPrefix(name, "..."):
		name = name[len("..."):]
	case strings.HasSuffix(name, "..."):
		name = strings.TrimSuffix(name, "...")
	}

	// C-style array declarator: String args[]
	for strings.HasSuffix(name, "[]") {
		name = strings.TrimSuffix(name, "[]")
	}
	return name
}
