package cli

import (
	"github.com/seitarof/gen-javadoc/internal/config"
)

// Options stores command line options for a single run.
type Options struct {
	ConfigPath string
	// Line and Column are one-based, as editors show them. Column 0 means
	// the first non-blank character of the line.
	Line    int
	Column  int
	Write   bool
	Project string
	Include []string
	Exclude []string
}

// LoadConfig loads the file named by --config, or the config found in dir.
func (o *Options) LoadConfig(dir string) (*config.Config, error) {
	if o.ConfigPath != "" {
		return config.Load(o.ConfigPath)
	}
	cfg, _, err := config.LoadDir(dir)
	return cfg, err
}
