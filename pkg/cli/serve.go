package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/cli/config"
	controller "github.com/secmon-lab/zaphist/pkg/controller/http"
	"github.com/secmon-lab/zaphist/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		reportCfg    config.Report
		parserCfg    config.Parser
		slackCfg     config.Slack
		firestoreCfg config.Firestore
		projectName  string
	)

	flags := joinFlags(
		serverCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "projectname",
				Aliases:     []string{"n"},
				Usage:       "Name of the scanned project",
				Value:       config.NotProvided,
				Sources:     cli.EnvVars("ZAPHIST_PROJECT_NAME"),
				Destination: &projectName,
			},
		},
		reportCfg.RenderFlags(),
		parserCfg.Flags(),
		slackCfg.Flags(),
		firestoreCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting zaphist server",
				slog.Any("server", serverCfg),
				slog.String("project", projectName),
				slog.Any("parser", parserCfg),
				slog.Any("slack", slackCfg),
				slog.Any("firestore", firestoreCfg),
			)

			formatter, renderer, err := reportCfg.Configure()
			if err != nil {
				return err
			}
			p, err := parserCfg.Configure()
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

			opts := []usecase.ReportOption{usecase.WithProjectName(projectName)}
			if notifier != nil {
				opts = append(opts, usecase.WithNotifier(notifier))
			}
			reportUC := usecase.NewReport(store, p, opts...)

			server := controller.NewServer(ctx, controller.Config{
				Addr:             serverCfg.Addr,
				MaxDocumentBytes: parserCfg.MaxDocumentBytes,
			}, reportUC, renderer)

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
