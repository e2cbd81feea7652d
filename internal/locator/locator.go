// Package locator finds the declaration a Javadoc block belongs to and reads
// the raw declaration text from a document.
package locator

import (
	"regexp"
	"strings"
)

const (
	// DefaultHeaderLines bounds how far past the declaration start HeaderText reads.
	DefaultHeaderLines = 10
	// DefaultPackageScanLines bounds the search for the package declaration.
	DefaultPackageScanLines = 50
)

var packagePattern = regexp.MustCompile(`^package\s+([\w.]+)\s*;`)

// FindMethodAt returns the first method or constructor containing
// pos, searching type declarations recursively. It returns nil when pos is
// not inside a callable declaration.
func FindMethodAt(symbols []Symbol, pos Position) *Symbol {
	for i := range symbols {
		sym := &symbols[i]
		if !sym.Range.Contains(pos) {
			continue
		}
		if sym.Kind.IsCallable() {
			return sym
		}
		if found := FindMethodAt(sym.Children, pos); found != nil {
			return found
		}
	}
	return nil
}

// Callables flattens every method and constructor in document order.
func Callables(symbols []Symbol) []Symbol {
	var out []Symbol
	for _, sym := range symbols {
		if sym.Kind.IsCallable() {
			out = append(out, sym)
			continue
		}
		out = append(out, Callables(sym.Children)...)
	}
	return out
}

// HeaderText returns the declaration lines of sym up to and including the
// first line that brings in a '{' or ';'. At most maxLines lines past the
// start are read and never past the end of the symbol.
func HeaderText(lines []string, sym Symbol, maxLines int) string {
	if maxLines <= 0 {
		maxLines = DefaultHeaderLines
	}
	end := sym.Range.End.Line
	if limit := sym.Range.Start.Line + maxLines; limit < end {
		end = limit
	}

	var b strings.Builder
	for i := sym.Range.Start.Line; i <= end && i < len(lines); i++ {
		b.WriteString(lines[i])
		b.WriteByte('\n')
		if strings.ContainsAny(lines[i], "{;") {
			break
		}
	}
	return b.String()
}

// PackageLine returns the zero-based line of the package declaration within
// the first limit lines and the package name, or -1 and "".
func PackageLine(lines []string, limit int) (int, string) {
	if limit <= 0 {
		limit = DefaultPackageScanLines
	}
	for i := 0; i < len(lines) && i < limit; i++ {
		if m := packagePattern.FindStringSubmatch(strings.TrimSpace(lines[i])); m != nil {
			return i, m[1]
		}
	}
	return -1, ""
}

// Indentation returns the leading whitespace of line.
func Indentation(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// SplitLines splits text into lines without their terminators.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
