package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/broady/objcbridge/cmd/objcgen/internal/check"
	"github.com/broady/objcbridge/cmd/objcgen/internal/gen"
	"github.com/broady/objcbridge/internal/logging"
	"github.com/broady/objcbridge/objcgen/export"
)

type CLI struct {
	Verbose  bool `help:"Enable debug logging." short:"v"`
	JSONLogs bool `help:"Write logs as JSON." name:"json-logs"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate the Objective-C header."`
	Check   check.Cmd  `cmd:"" help:"Validate the declaration graph without writing files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("objcgen"),
		kong.Description("Generate Objective-C headers from a declaration graph."),
		kong.UsageOnError(),
	)

	log, err := logging.New(cli.Verbose, cli.JSONLogs)
	ctx.FatalIfErrorf(err)
	defer func() { _ = log.Sync() }()
	export.SetLogger(log)

	err = ctx.Run(log)
	if err != nil {
		log.Debug("command failed", zap.Error(err))
	}
	ctx.FatalIfErrorf(err)
}
