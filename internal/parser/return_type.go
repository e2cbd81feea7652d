package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SplitReturnAndName separates the text before a parameter list into the
// modifiers-and-return-type part and the method name. ok is false when the
// prefix is a single token (a constructor or a malformed declaration); name
// is then the whole prefix.
func SplitReturnAndName(prefix string) (modifiersAndReturn, name string, ok bool) {
	prefix = strings.TrimSpace(prefix)
	i := lastTopLevelSpace(prefix)
	if i < 0 {
		return "", prefix, false
	}
	return strings.TrimSpace(prefix[:i]), strings.TrimSpace(prefix[i:]), true
}

// ExtractReturnType picks the return type out of the modifiers-and-return-type
// part of a declaration.
//
// A type parameter list written flush against a generic return type stays
// glued to it: "public <K,V>Map<K,V>" yields "<K,V>Map<K,V>".
func ExtractReturnType(modifiersAndReturn string) string {
	m := strings.TrimSpace(modifiersAndReturn)

	raw := m
	if i := lastTopLevelSpace(m); i >= 0 {
		raw = strings.TrimSpace(m[i:])
	}

	if strings.HasSuffix(raw, ">") {
		if open := matchingOpenAngle(m); open >= 0 {
			generic := strings.TrimSpace(m[open:])
			before := strings.Fields(m[:open])
			switch {
			case len(before) == 0:
				raw = generic
			case declarationModifiers[before[len(before)-1]]:
				raw = generic
			default:
				raw = before[len(before)-1] + generic
			}
		}
	}

	// Leading annotation such as "@ResponseBody IPage<Item>".
	if strings.Contains(raw, "@") {
		fields := strings.Fields(raw)
		raw = fields[len(fields)-1]
	}

	return normalizeReturnType(raw)
}

func normalizeReturnType(raw string) string {
	if raw == "" || accessModifiers[raw] {
		return voidType
	}
	return raw
}

// lastTopLevelSpace returns the byte offset of the last whitespace rune that
// is outside any angle brackets, or -1.
func lastTopLevelSpace(s string) int {
	depth := 0
	for i := len(s); i > 0; {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
		switch {
		case r == '>':
			depth++
		case r == '<':
			depth--
		case depth == 0 && unicode.IsSpace(r):
			return i
		}
	}
	return -1
}

// matchingOpenAngle returns the offset of the '<' that closes the last '>'
// in s, or -1.
func matchingOpenAngle(s string) int {
	end := strings.LastIndexByte(s, '>')
	depth := 0
	for i := end; i >= 0; i-- {
		switch s[i] {
		case '>':
			depth++
		case '<':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
