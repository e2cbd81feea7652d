package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/seitarof/gen-javadoc/internal/generator"
	"github.com/seitarof/gen-javadoc/internal/javadoc"
	"github.com/seitarof/gen-javadoc/internal/locator"
	"github.com/seitarof/gen-javadoc/internal/parser"
	"github.com/seitarof/gen-javadoc/internal/resolver"
)

var log = commonlog.GetLogger("gen-javadoc.cli")

// Runner orchestrates locator/parser/resolver/generator layers for the
// command line.
type Runner interface {
	Method(ctx context.Context, path string, o *Options) error
	Header(path string, o *Options) error
	// Check reports undocumented methods under root and returns how many
	// were found.
	Check(ctx context.Context, root string, o *Options) (int, error)
}

type runnerImpl struct {
	symbols   locator.SymbolProvider
	parser    parser.Parser
	resolver  resolver.Resolver
	generator generator.Generator
	writer    generator.FileWriter
	out       io.Writer
}

// NewRunner creates a default runner implementation.
func NewRunner(
	sp locator.SymbolProvider,
	p parser.Parser,
	r resolver.Resolver,
	g generator.Generator,
	w generator.FileWriter,
	out io.Writer,
) Runner {
	return &runnerImpl{
		symbols:   sp,
		parser:    p,
		resolver:  r,
		generator: g,
		writer:    w,
		out:       out,
	}
}

// Method generates the comment for the method at --line/--column.
func (r *runnerImpl) Method(ctx context.Context, path string, o *Options) error {
	if err := o.ValidateMethod(); err != nil {
		return err
	}
	svc, err := r.service(o, ".")
	if err != nil {
		return err
	}
	doc, err := readDocument(path, o.Project)
	if err != nil {
		return err
	}

	lines := locator.SplitLines(doc.Text)
	if o.Line > len(lines) {
		return fmt.Errorf("--line %d is past the end of %s (%d lines)", o.Line, path, len(lines))
	}
	pos := locator.Position{Line: o.Line - 1, Character: o.Column - 1}
	if o.Column == 0 {
		pos.Character = len(locator.Indentation(lines[pos.Line]))
	}

	ins, err := svc.MethodJavadoc(ctx, doc, pos)
	if err != nil {
		return err
	}
	return r.emit(doc, lines, ins, o.Write)
}

// Header generates the file header comment.
func (r *runnerImpl) Header(path string, o *Options) error {
	svc, err := r.service(o, ".")
	if err != nil {
		return err
	}
	doc, err := readDocument(path, o.Project)
	if err != nil {
		return err
	}

	ins, err := svc.FileHeader(doc)
	if err != nil {
		return err
	}
	return r.emit(doc, locator.SplitLines(doc.Text), ins, o.Write)
}

func (r *runnerImpl) Check(ctx context.Context, root string, o *Options) (int, error) {
	svc, err := r.service(o, root)
	if err != nil {
		return 0, err
	}
	filter, err := newPathFilter(o.Include, o.Exclude)
	if err != nil {
		return 0, err
	}

	count := 0
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".java") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !filter.Match(rel) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		doc, err := readDocument(path, o.Project)
		if err != nil {
			return err
		}
		findings, err := svc.Scan(ctx, doc)
		if errors.Is(err, javadoc.ErrNoSymbols) {
			log.Debugf("%s: no declarations", rel)
			return nil
		}
		if err != nil {
			return fmt.Errorf("check %s: %w", rel, err)
		}

		for _, f := range findings {
			fmt.Fprintf(r.out, "%s:%d: %s %s has no Javadoc\n", rel, f.Line+1, f.Kind, f.Name)
		}
		count += len(findings)
		return nil
	})
	if err != nil {
		return count, err
	}
	return count, nil
}

func (r *runnerImpl) service(o *Options, dir string) (javadoc.Service, error) {
	cfg, err := o.LoadConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return javadoc.New(cfg, r.symbols, r.parser, r.resolver, r.generator), nil
}

func (r *runnerImpl) emit(doc javadoc.Document, lines []string, ins *generator.Insertion, write bool) error {
	if write {
		if err := r.writer.Write(doc.Path, []byte(generator.Apply(doc.Text, ins))); err != nil {
			return err
		}
		log.Infof("updated %s", doc.Path)
		return nil
	}

	// Print the block as it will look in the file.
	prefix := ""
	if ins.Line < len(lines) {
		prefix = lines[ins.Line][:min(ins.Character, len(lines[ins.Line]))]
	}
	_, err := fmt.Fprintln(r.out, prefix+strings.TrimRight(ins.Text, " \t\n"))
	return err
}

func readDocument(path, project string) (javadoc.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return javadoc.Document{}, err
	}
	return javadoc.Document{
		Path:        path,
		Text:        string(b),
		ProjectName: project,
	}, nil
}
