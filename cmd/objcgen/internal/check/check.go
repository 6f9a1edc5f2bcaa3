package check

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/broady/objcbridge/cmd/objcgen/internal/flags"
	"github.com/broady/objcbridge/objcgen"
)

type Cmd struct {
	flags.Input `embed:""`

	Strict bool `help:"Fail when the graph produces warnings."`
}

func (c *Cmd) Run(log *zap.Logger) error {
	cfg, err := c.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	u, warnings, err := objcgen.LoadUniverse(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("✓ %d modules, %d classes\n", len(u.Modules), len(u.Classes()))

	res, err := objcgen.FromUniverse(u).WithConfig(*cfg).Generate(ctx)
	if err != nil {
		return err
	}
	warnings = append(warnings, res.Warnings...)
	for _, w := range warnings {
		log.Warn(w.Message, zap.String("code", w.Code), zap.String("decl", w.Decl))
	}
	fmt.Printf("✓ %d declarations, %d warnings\n", len(res.Header.Stubs), len(warnings))
	if c.Strict && len(warnings) > 0 {
		return errors.Newf("%d warnings with --strict", len(warnings))
	}
	fmt.Println("✓ Header generates cleanly")
	return nil
}
