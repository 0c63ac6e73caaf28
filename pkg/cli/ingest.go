package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/cli/config"
	"github.com/secmon-lab/zaphist/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdIngest() *cli.Command {
	var (
		reportCfg    config.Report
		parserCfg    config.Parser
		slackCfg     config.Slack
		firestoreCfg config.Firestore
	)

	flags := joinFlags(
		reportCfg.Flags(),
		parserCfg.Flags(),
		slackCfg.Flags(),
		firestoreCfg.Flags(),
	)

	return &cli.Command{
		Name:  "ingest",
		Usage: "Store a report and compare it with the most recent one",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Debug("Ingesting report",
				slog.Any("report", reportCfg),
				slog.Any("parser", parserCfg),
				slog.Any("slack", slackCfg),
				slog.Any("firestore", firestoreCfg),
			)

			format, err := reportCfg.OutputFormat()
			if err != nil {
				return err
			}
			formatter, renderer, err := reportCfg.Configure()
			if err != nil {
				return err
			}
			p, err := parserCfg.Configure()
			if err != nil {
				return err
			}

			doc, err := readDocument(reportCfg.Filename, parserCfg.MaxDocumentBytes)
			if err != nil {
				return err
			}

			store, err := firestoreCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			notifier, err := slackCfg.Configure(ctx, renderer, formatter)
			if err != nil {
				return err
			}

			opts := []usecase.ReportOption{usecase.WithProjectName(reportCfg.ProjectName)}
			if notifier != nil {
				opts = append(opts, usecase.WithNotifier(notifier))
			}
			uc := usecase.NewReport(store, p, opts...)

			rep, err := uc.Ingest(ctx, &usecase.IngestRequest{
				Document: doc,
				Meta:     reportCfg.Meta(),
			})
			if err != nil {
				return err
			}

			if err := writeReport(c, renderer, rep, format); err != nil {
				return err
			}

			if err := uc.Notify(ctx, rep); err != nil {
				return goerr.Wrap(err, "report stored but notification failed",
					goerr.V("snapshot_id", rep.Current.ID))
			}
			return nil
		},
	}
}
