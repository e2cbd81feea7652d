package generator

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatDate expands the yyyy, MM, dd, HH, mm and ss tokens of format. Only
// the first occurrence of each token is replaced.
func FormatDate(format string, t time.Time) string {
	tokens := []struct {
		token string
		value string
	}{
		{"yyyy", strconv.Itoa(t.Year())},
		{"MM", fmt.Sprintf("%02d", int(t.Month()))},
		{"dd", fmt.Sprintf("%02d", t.Day())},
		{"HH", fmt.Sprintf("%02d", t.Hour())},
		{"mm", fmt.Sprintf("%02d", t.Minute())},
		{"ss", fmt.Sprintf("%02d", t.Second())},
	}

	out := format
	for _, tok := range tokens {
		out = strings.Replace(out, tok.token, tok.value, 1)
	}
	return out
}
