package generator

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/seitarof/gen-javadoc/internal/locator"
	"github.com/seitarof/gen-javadoc/internal/parser"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Generator renders Javadoc comments into text insertions.
type Generator interface {
	Method(cfg Config, data MethodData) (*Insertion, error)
	FileHeader(cfg Config, data FileData) (*Insertion, error)
}

// Config is the minimum config contract required by generator.
type Config interface {
	AuthorName() string
	DateLayout() string
	MethodLines() []string
	FileLines() []string
}

// Clock supplies the time used for ${date}.
type Clock interface {
	Now() time.Time
}

// FileWriter writes generated code to disk.
type FileWriter interface {
	Write(filename string, data []byte) error
}

// MethodData describes the method a comment is generated for. Info is
// expected to carry fully qualified types already.
type MethodData struct {
	Info parser.MethodInfo
	// Line is the first line of the declaration, annotations included.
	Line        int
	Indentation string
}

// FileData describes the file a header is generated for.
type FileData struct {
	FileName    string
	ProjectName string
	PackageName string
	// PackageLine is the line of the package statement, or -1.
	PackageLine int
}

// Insertion is a block of text to insert at a position, plus where the
// cursor should land afterwards.
type Insertion struct {
	Line      int               `json:"line"`
	Character int               `json:"character"`
	Text      string            `json:"text"`
	Cursor    *locator.Position `json:"cursor,omitempty"`
}

type generatorImpl struct {
	clock Clock
}

type systemClock struct{}

type fileWriter struct{}

// New creates a comment generator.
func New(c Clock) Generator {
	if c == nil {
		c = systemClock{}
	}
	return &generatorImpl{clock: c}
}

// NewSystemClock returns a clock backed by time.Now.
func NewSystemClock() Clock {
	return systemClock{}
}

// NewFileWriter creates a plain file writer.
func NewFileWriter() FileWriter {
	return &fileWriter{}
}

// DefaultMethodTemplate returns the built-in method comment template.
func DefaultMethodTemplate() []string {
	return mustTemplateLines("templates/method.tmpl")
}

// DefaultFileTemplate returns the built-in file header template.
func DefaultFileTemplate() []string {
	return mustTemplateLines("templates/file.tmpl")
}

func mustTemplateLines(name string) []string {
	b, err := templateFS.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return strings.Split(strings.TrimRight(string(b), "\n"), "\n")
}

func (g *generatorImpl) Method(cfg Config, data MethodData) (*Insertion, error) {
	lines := cfg.MethodLines()
	if len(lines) == 0 {
		lines = DefaultMethodTemplate()
	}

	values := map[string]string{
		VarAuthor:     cfg.AuthorName(),
		VarDate:       FormatDate(cfg.DateLayout(), g.clock.Now()),
		VarReturnType: data.Info.ReturnType,
	}
	paramLines := make([]string, 0, len(data.Info.Params))
	for _, p := range data.Info.Params {
		paramLines = append(paramLines, "* @param "+p)
	}

	r, err := renderTemplate(lines, values, paramLines)
	if err != nil {
		return nil, fmt.Errorf("render method template: %w", err)
	}

	// The first line lands at the declaration's own indentation; the rest are
	// re-indented one column past it so the stars line up.
	out := make([]string, len(r.lines))
	var cursor *locator.Position
	for i, line := range r.lines {
		if i == 0 {
			out[i] = line
		} else {
			trimmed := strings.TrimLeft(line, " \t")
			out[i] = data.Indentation + " " + trimmed
		}
		if i == r.cursorLine {
			col := len(data.Indentation) + r.cursorCol
			if i > 0 {
				lead := len(line) - len(strings.TrimLeft(line, " \t"))
				col = len(data.Indentation) + 1 + max(0, r.cursorCol-lead)
			}
			cursor = &locator.Position{Line: data.Line + i, Character: col}
		}
	}

	return &Insertion{
		Line:      data.Line,
		Character: len(data.Indentation),
		Text:      strings.Join(out, "\n") + "\n" + data.Indentation,
		Cursor:    cursor,
	}, nil
}

func (g *generatorImpl) FileHeader(cfg Config, data FileData) (*Insertion, error) {
	lines := cfg.FileLines()
	if len(lines) == 0 {
		lines = DefaultFileTemplate()
	}

	values := map[string]string{
		VarAuthor:      cfg.AuthorName(),
		VarDate:        FormatDate(cfg.DateLayout(), g.clock.Now()),
		VarProjectName: data.ProjectName,
		VarFileName:    data.FileName,
		VarPackageName: data.PackageName,
	}
	r, err := renderTemplate(lines, values, nil)
	if err != nil {
		return nil, fmt.Errorf("render file template: %w", err)
	}

	line := max(data.PackageLine, 0)
	ins := &Insertion{
		Line: line,
		Text: strings.Join(r.lines, "\n") + "\n",
	}
	if r.cursorLine >= 0 {
		ins.Cursor = &locator.Position{Line: line + r.cursorLine, Character: r.cursorCol}
	}
	return ins, nil
}

// Apply returns text with ins inserted. Positions past the end of a line or
// of the text are clamped.
func Apply(text string, ins *Insertion) string {
	offset := 0
	for i := 0; i < ins.Line; i++ {
		nl := strings.IndexByte(text[offset:], '\n')
		if nl < 0 {
			offset = len(text)
			break
		}
		offset += nl + 1
	}

	lineEnd := len(text)
	if nl := strings.IndexByte(text[offset:], '\n'); nl >= 0 {
		lineEnd = offset + nl
	}
	offset = min(offset+ins.Character, lineEnd)

	return text[:offset] + ins.Text + text[offset:]
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (w *fileWriter) Write(filename string, data []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(filename); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(filename, data, perm); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}
