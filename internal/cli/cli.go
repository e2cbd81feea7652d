package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
)

// BindConfigFlags registers flags shared by every command.
func BindConfigFlags(fs *pflag.FlagSet, o *Options) {
	fs.StringVarP(&o.ConfigPath, "config", "c", "", "config file (default: .javadoc.toml or .javadoc.yaml in the working directory)")
}

// BindMethodFlags registers the flags of the method command.
func BindMethodFlags(fs *pflag.FlagSet, o *Options) {
	BindConfigFlags(fs, o)
	fs.IntVarP(&o.Line, "line", "l", 0, "one-based line inside the method")
	fs.IntVar(&o.Column, "column", 0, "one-based column inside the method")
	fs.BoolVarP(&o.Write, "write", "w", false, "insert the comment into the file instead of printing it")
}

// BindHeaderFlags registers the flags of the header command.
func BindHeaderFlags(fs *pflag.FlagSet, o *Options) {
	BindConfigFlags(fs, o)
	fs.StringVar(&o.Project, "project", DefaultProject(), "project name for ${projectName}")
	fs.BoolVarP(&o.Write, "write", "w", false, "insert the header into the file instead of printing it")
}

// BindCheckFlags registers the flags of the check command.
func BindCheckFlags(fs *pflag.FlagSet, o *Options) {
	BindConfigFlags(fs, o)
	fs.StringSliceVar(&o.Include, "include", nil, "glob patterns of files to check, relative to the root")
	fs.StringSliceVar(&o.Exclude, "exclude", nil, "glob patterns of files to skip, relative to the root")
}

// ValidateMethod checks the options of the method command.
func (o *Options) ValidateMethod() error {
	if o.Line < 1 {
		return fmt.Errorf("--line is required")
	}
	if o.Column < 0 {
		return fmt.Errorf("--column must not be negative")
	}
	return nil
}

// DefaultProject names the project after the working directory.
func DefaultProject() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Base(wd)
}
