package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	if err := newApp(os.Stdout).Run(ctx, args); err != nil {
		return goerr.Wrap(err, "CLI execution failed")
	}

	return nil
}

func newApp(w io.Writer) *cli.Command {
	var (
		loggerCfg   config.Logger
		closeLogger = func() error { return nil }
	)

	// -v is taken by the scanned application version
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
		Local: true,
	}

	return &cli.Command{
		Name:    "zaphist",
		Usage:   "Compare security scanner reports against their history",
		Version: "0.1.0",
		Writer:  w,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := loggerCfg.Configure()
			if err != nil {
				return nil, err
			}
			closeLogger = closer

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			return closeLogger()
		},
		Commands: []*cli.Command{
			cmdIngest(),
			cmdDiff(),
			cmdServe(),
		},
	}
}
