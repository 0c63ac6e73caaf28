package cli

import (
	"context"

	"github.com/secmon-lab/zaphist/pkg/cli/config"
	"github.com/secmon-lab/zaphist/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdDiff() *cli.Command {
	var (
		reportCfg   config.Report
		parserCfg   config.Parser
		currentPath string
		priorPath   string
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "current",
				Usage:       "Path of the newer report",
				Required:    true,
				Destination: &currentPath,
			},
			&cli.StringFlag{
				Name:        "prior",
				Usage:       "Path of the older report",
				Required:    true,
				Destination: &priorPath,
			},
		},
		reportCfg.DiffFlags(),
		parserCfg.Flags(),
	)

	return &cli.Command{
		Name:  "diff",
		Usage: "Compare two reports without storing them",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			format, err := reportCfg.OutputFormat()
			if err != nil {
				return err
			}
			_, renderer, err := reportCfg.Configure()
			if err != nil {
				return err
			}
			p, err := parserCfg.Configure()
			if err != nil {
				return err
			}

			current, err := readDocument(currentPath, parserCfg.MaxDocumentBytes)
			if err != nil {
				return err
			}
			prior, err := readDocument(priorPath, parserCfg.MaxDocumentBytes)
			if err != nil {
				return err
			}

			rep, err := usecase.NewDiff(p).Diff(ctx, current, prior, reportCfg.Meta())
			if err != nil {
				return err
			}

			return writeReport(c, renderer, rep, format)
		},
	}
}
