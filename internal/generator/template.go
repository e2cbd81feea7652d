package generator

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

// Placeholder names understood in template lines.
const (
	VarAuthor      = "author"
	VarDate        = "date"
	VarReturnType  = "returnType"
	VarProjectName = "projectName"
	VarFileName    = "fileName"
	VarPackageName = "packageName"
	VarCursor      = "cursor"
	VarParams      = "params"
)

const cursorMark = "\x00cursor\x00"

var leadingPlaceholder = regexp.MustCompile(`^\$\{(\w+)\}`)

type renderedLines struct {
	lines []string
	// cursorLine is -1 when the template has no ${cursor}.
	cursorLine int
	cursorCol  int
}

// renderLine executes one template line with ${ and } as action delimiters.
// Each known placeholder is a function returning its value; any other ${ is
// emitted verbatim.
func renderLine(line string, values map[string]string) (string, error) {
	src := escapeLine(line, values)

	funcs := make(template.FuncMap, len(values))
	for name, value := range values {
		value := value
		funcs[name] = func() string { return value }
	}

	tmpl, err := template.New("line").Delims("${", "}").Funcs(funcs).Parse(src)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, nil); err != nil {
		return "", err
	}
	return b.String(), nil
}

// escapeLine rewrites every ${ that does not open a known ${name} into an
// action printing "${", so the template parser only sees known placeholders.
func escapeLine(line string, values map[string]string) string {
	var b strings.Builder
	for {
		i := strings.Index(line, "${")
		if i < 0 {
			b.WriteString(line)
			return b.String()
		}
		b.WriteString(line[:i])
		line = line[i:]

		if m := leadingPlaceholder.FindStringSubmatch(line); m != nil {
			if _, ok := values[m[1]]; ok {
				b.WriteString(m[0])
				line = line[len(m[0]):]
				continue
			}
		}
		b.WriteString(`${"${"}`)
		line = line[2:]
	}
}

// renderTemplate renders every line. A line containing ${params} is replaced
// by paramLines (and dropped when there are none).
func renderTemplate(lines []string, values map[string]string, paramLines []string) (renderedLines, error) {
	values[VarCursor] = cursorMark
	out := renderedLines{cursorLine: -1}

	for i, line := range lines {
		if strings.Contains(line, "${"+VarParams+"}") {
			out.lines = append(out.lines, paramLines...)
			continue
		}

		rendered, err := renderLine(line, values)
		if err != nil {
			return renderedLines{}, fmt.Errorf("template line %d: %w", i+1, err)
		}
		if col := strings.Index(rendered, cursorMark); col >= 0 {
			if out.cursorLine < 0 {
				out.cursorLine = len(out.lines)
				out.cursorCol = col
			}
			rendered = strings.ReplaceAll(rendered, cursorMark, "")
		}
		out.lines = append(out.lines, rendered)
	}
	return out, nil
}

// ValidateTemplate reports the first line that cannot be parsed.
func ValidateTemplate(lines []string) error {
	values := map[string]string{}
	for _, name := range []string{VarAuthor, VarDate, VarReturnType, VarProjectName, VarFileName, VarPackageName} {
		values[name] = ""
	}
	_, err := renderTemplate(lines, values, nil)
	return err
}
