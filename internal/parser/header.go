package parser

import (
	"regexp"
	"strings"
)

var (
	blockCommentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentPattern  = regexp.MustCompile(`(?m)//.*$`)
)

// ExtractSignatureHeader strips comments, folds lines and returns the text
// before the first '{' or ';'.
func ExtractSignatureHeader(raw string) string {
	clean := blockCommentPattern.ReplaceAllString(raw, "")
	clean = lineCommentPattern.ReplaceAllString(clean, "")
	clean = strings.ReplaceAll(clean, "\n", " ")
	clean = strings.TrimSpace(clean)

	return strings.TrimSpace(clean[:headerEnd(clean)])
}

func headerEnd(s string) int {
	end := len(s)
	if i := strings.IndexByte(s, '{'); i >= 0 {
		end = i
	}
	if i := strings.IndexByte(s, ';'); i >= 0 && i < end {
		end = i
	}
	return end
}
