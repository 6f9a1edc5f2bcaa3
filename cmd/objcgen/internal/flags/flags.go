// Package flags holds the input flags shared by objcgen commands.
package flags

import (
	"github.com/cockroachdb/errors"

	"github.com/broady/objcbridge/objcgen"
)

// Input selects the declaration graph and generation settings.
type Input struct {
	Config   string   `help:"TOML config file." short:"c" type:"existingfile"`
	Graphs   []string `arg:"" optional:"" help:"Declaration graph files (.json, .yaml, .yml)." type:"existingfile"`
	Packages []string `help:"Go packages to analyze instead of graph files." short:"p" name:"package"`
	Dir      string   `help:"Directory Go package patterns are resolved in." type:"existingdir"`
	Options  string   `help:"Options in query syntax, e.g. prefix=App&generics=false." short:"O"`
}

// Load builds the configuration: the config file (or the defaults), then
// graph files or packages given on the command line, then the options
// string.
func (in *Input) Load() (*objcgen.Config, error) {
	if len(in.Graphs) > 0 && len(in.Packages) > 0 {
		return nil, errors.WithHint(errors.New("graph files and --package are mutually exclusive"),
			"generate from either declaration graph files or Go packages")
	}

	cfg := objcgen.DefaultConfig()
	if in.Config != "" {
		loaded, err := objcgen.LoadConfig(in.Config)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}
	switch {
	case len(in.Graphs) > 0:
		cfg.Source = objcgen.SourceGraph
		cfg.Graphs = in.Graphs
	case len(in.Packages) > 0:
		cfg.Source = objcgen.SourceGo
		cfg.Packages = in.Packages
	}
	if in.Dir != "" {
		cfg.Dir = in.Dir
	}
	if err := objcgen.ParseOptions(&cfg, in.Options); err != nil {
		return nil, err
	}
	return &cfg, nil
}
