package cli

import (
	"fmt"

	"github.com/gobwas/glob"
)

// pathFilter matches slash-separated relative paths against include and
// exclude globs. "*" stays within a directory, "**" crosses directories.
type pathFilter struct {
	include []glob.Glob
	exclude []glob.Glob
}

func newPathFilter(include, exclude []string) (*pathFilter, error) {
	f := &pathFilter{}
	var err error
	if f.include, err = compileGlobs(include); err != nil {
		return nil, err
	}
	if f.exclude, err = compileGlobs(exclude); err != nil {
		return nil, err
	}
	return f, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// Match reports whether path is included and not excluded. An empty include
// list includes everything.
func (f *pathFilter) Match(path string) bool {
	for _, g := range f.exclude {
		if g.Match(path) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, g := range f.include {
		if g.Match(path) {
			return true
		}
	}
	return false
}
