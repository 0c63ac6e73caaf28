package interfaces

//go:generate moq -out mocks/notifier_mock.go -pkg mocks . Notifier SlackClient

import (
	"context"

	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Notifier delivers a finished comparison report to people
type Notifier interface {
	NotifyReport(ctx context.Context, report *model.Report) error
}

// SlackClient is the subset of the Slack API used for notifications
type SlackClient interface {
	PostMessage(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error)
}
