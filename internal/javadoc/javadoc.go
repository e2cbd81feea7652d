// Package javadoc ties the locator, parser, resolver and generator together
// into the two user-facing commands: a method comment at a cursor position
// and a file header.
package javadoc

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/seitarof/gen-javadoc/internal/generator"
	"github.com/seitarof/gen-javadoc/internal/locator"
	"github.com/seitarof/gen-javadoc/internal/parser"
	"github.com/seitarof/gen-javadoc/internal/resolver"
)

var log = commonlog.GetLogger("gen-javadoc.javadoc")

var (
	// ErrNotJava is returned for documents that are not Java sources.
	ErrNotJava = errors.New("current file is not a java file")
	// ErrNoSymbols is returned when the document has no declarations at all.
	ErrNoSymbols = errors.New("no document symbols found")
	// ErrNoMethod is returned when the position is not inside a method or constructor.
	ErrNoMethod = errors.New("no method or constructor at cursor position")
)

// Document is a source file as seen by an editor or the command line.
type Document struct {
	Path        string
	LanguageID  string
	Text        string
	ProjectName string
}

// IsJava reports whether the document is a Java source. An empty language id
// falls back to the file extension.
func (d Document) IsJava() bool {
	if d.LanguageID != "" {
		return d.LanguageID == "java"
	}
	return strings.EqualFold(filepath.Ext(d.Path), ".java")
}

// Config is the minimum config contract required by the service.
type Config interface {
	generator.Config
	HeaderLineLimit() int
	PackageScanLimit() int
}

// Finding is a method or constructor without a Javadoc block.
type Finding struct {
	Name string
	Kind locator.SymbolKind
	// Line is the zero-based first line of the declaration.
	Line int
	Info parser.MethodInfo
}

// Service generates Javadoc insertions for documents.
type Service interface {
	MethodJavadoc(ctx context.Context, doc Document, pos locator.Position) (*generator.Insertion, error)
	FileHeader(doc Document) (*generator.Insertion, error)
	Scan(ctx context.Context, doc Document) ([]Finding, error)
}

type serviceImpl struct {
	cfg       Config
	symbols   locator.SymbolProvider
	parser    parser.Parser
	resolver  resolver.Resolver
	generator generator.Generator
}

// New creates a service.
func New(
	cfg Config,
	sp locator.SymbolProvider,
	p parser.Parser,
	r resolver.Resolver,
	g generator.Generator,
) Service {
	return &serviceImpl{
		cfg:       cfg,
		symbols:   sp,
		parser:    p,
		resolver:  r,
		generator: g,
	}
}

func (s *serviceImpl) MethodJavadoc(ctx context.Context, doc Document, pos locator.Position) (*generator.Insertion, error) {
	if !doc.IsJava() {
		return nil, ErrNotJava
	}
	symbols, err := s.documentSymbols(ctx, doc)
	if err != nil {
		return nil, err
	}

	sym := locator.FindMethodAt(symbols, pos)
	if sym == nil {
		return nil, ErrNoMethod
	}

	lines := locator.SplitLines(doc.Text)
	info := s.methodInfo(lines, *sym, resolver.BuildImportMap(lines))
	log.Debugf("%s %s: return %s, params %v", sym.Kind, sym.Name, info.ReturnType, info.Params)

	ins, err := s.generator.Method(s.cfg, generator.MethodData{
		Info:        info,
		Line:        sym.Range.Start.Line,
		Indentation: locator.Indentation(lines[sym.Range.Start.Line]),
	})
	if err != nil {
		return nil, fmt.Errorf("generate method comment: %w", err)
	}
	return ins, nil
}

func (s *serviceImpl) FileHeader(doc Document) (*generator.Insertion, error) {
	if !doc.IsJava() {
		return nil, ErrNotJava
	}

	lines := locator.SplitLines(doc.Text)
	line, pkg := locator.PackageLine(lines, s.cfg.PackageScanLimit())

	ins, err := s.generator.FileHeader(s.cfg, generator.FileData{
		FileName:    filepath.Base(doc.Path),
		ProjectName: doc.ProjectName,
		PackageName: pkg,
		PackageLine: line,
	})
	if err != nil {
		return nil, fmt.Errorf("generate file header: %w", err)
	}
	return ins, nil
}

func (s *serviceImpl) Scan(ctx context.Context, doc Document) ([]Finding, error) {
	if !doc.IsJava() {
		return nil, ErrNotJava
	}
	symbols, err := s.documentSymbols(ctx, doc)
	if err != nil {
		return nil, err
	}

	lines := locator.SplitLines(doc.Text)
	imports := resolver.BuildImportMap(lines)

	var findings []Finding
	for _, sym := range locator.Callables(symbols) {
		if hasJavadoc(lines, sym.Range.Start.Line) {
			continue
		}
		findings = append(findings, Finding{
			Name: sym.Name,
			Kind: sym.Kind,
			Line: sym.Range.Start.Line,
			Info: s.methodInfo(lines, sym, imports),
		})
	}
	return findings, nil
}

func (s *serviceImpl) documentSymbols(ctx context.Context, doc Document) ([]locator.Symbol, error) {
	symbols, err := s.symbols.DocumentSymbols(ctx, []byte(doc.Text))
	if err != nil {
		return nil, fmt.Errorf("document symbols: %w", err)
	}
	if len(symbols) == 0 {
		return nil, ErrNoSymbols
	}
	return symbols, nil
}

func (s *serviceImpl) methodInfo(lines []string, sym locator.Symbol, imports resolver.ImportMap) parser.MethodInfo {
	header := locator.HeaderText(lines, sym, s.cfg.HeaderLineLimit())
	info := s.parser.Parse(header)
	info.ReturnType = s.resolver.Resolve(info.ReturnType, imports)
	return info
}

// hasJavadoc reports whether the last non-blank text above line closes a
// comment that was opened with "/**".
func hasJavadoc(lines []string, line int) bool {
	i := line - 1
	for i >= 0 && strings.TrimSpace(lines[i]) == "" {
		i--
	}
	if i < 0 || !strings.HasSuffix(strings.TrimSpace(lines[i]), "*/") {
		return false
	}
	for ; i >= 0; i-- {
		if idx := strings.LastIndex(lines[i], "/*"); idx >= 0 {
			return strings.HasPrefix(lines[i][idx:], "/**")
		}
	}
	return false
}
