package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/diff"
	"github.com/secmon-lab/zaphist/pkg/domain/interfaces"
	"github.com/secmon-lab/zaphist/pkg/service/report"
	slackSvc "github.com/secmon-lab/zaphist/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds Slack notification configuration
type Slack struct {
	OAuthToken string
	ChannelID  string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token for API access",
			Category:    "Slack",
			Sources:     cli.EnvVars("ZAPHIST_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID receiving comparison reports",
			Category:    "Slack",
			Sources:     cli.EnvVars("ZAPHIST_SLACK_CHANNEL"),
			Destination: &s.ChannelID,
		},
	}
}

// Configure creates a Slack notifier. It returns nil when Slack is not configured.
func (s *Slack) Configure(ctx context.Context, renderer *report.Renderer, formatter *diff.Formatter) (interfaces.Notifier, error) {
	logger := ctxlog.From(ctx)

	if !s.IsConfigured() {
		if s.OAuthToken != "" || s.ChannelID != "" {
			return nil, goerr.New("both slack-oauth-token and slack-channel are required",
				goerr.V("has_token", s.OAuthToken != ""),
				goerr.V("has_channel", s.ChannelID != ""))
		}
		logger.Info("Slack not configured - notifications are disabled")
		return nil, nil
	}

	logger.Info("Configuring Slack notifier", "channel", s.ChannelID)
	client := slackSvc.New(s.OAuthToken)
	return slackSvc.NewNotifier(client, s.ChannelID, slackSvc.NewBlockBuilder(renderer, formatter)), nil
}

// IsConfigured checks if Slack is properly configured for notifications
func (s *Slack) IsConfigured() bool {
	return s.OAuthToken != "" && s.ChannelID != ""
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.String("channel", s.ChannelID),
	)
}
