package gen

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/broady/objcbridge/cmd/objcgen/internal/flags"
	"github.com/broady/objcbridge/objcgen"
)

type Cmd struct {
	flags.Input `embed:""`

	Out       string `help:"Output directory for the header (overrides out_dir)." short:"o"`
	Framework string `help:"Framework name; the header is <Framework>.h."`
	Strict    bool   `help:"Fail when generation reports warnings."`
}

func (c *Cmd) Run(log *zap.Logger) error {
	cfg, err := c.Load()
	if err != nil {
		return err
	}
	if c.Out != "" {
		out, err := filepath.Abs(c.Out)
		if err != nil {
			return errors.Wrap(err, "resolve output path")
		}
		cfg.OutDir = out
	}
	if c.Framework != "" {
		cfg.Framework = c.Framework
	}

	res, err := objcgen.Generate(context.Background(), cfg)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		log.Warn(w.Message, zap.String("code", w.Code), zap.String("decl", w.Decl))
	}
	if c.Strict && len(res.Warnings) > 0 {
		return errors.Newf("%d warnings with --strict", len(res.Warnings))
	}

	fmt.Printf("✓ Wrote %s (%d declarations, %d warnings)\n",
		filepath.Join(cfg.OutDir, res.Path), len(res.Header.Stubs), len(res.Warnings))
	return nil
}
