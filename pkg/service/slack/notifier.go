package slack

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/domain/interfaces"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Notifier posts comparison reports to one Slack channel
type Notifier struct {
	client    interfaces.SlackClient
	channelID string
	builder   *BlockBuilder
}

// NewNotifier creates a new Notifier
func NewNotifier(client interfaces.SlackClient, channelID string, builder *BlockBuilder) *Notifier {
	if builder == nil {
		builder = NewBlockBuilder(nil, nil)
	}
	return &Notifier{
		client:    client,
		channelID: channelID,
		builder:   builder,
	}
}

// NotifyReport posts the report digest
func (n *Notifier) NotifyReport(ctx context.Context, rep *model.Report) error {
	if rep == nil || rep.Current == nil {
		return goerr.New("report has no current snapshot")
	}

	blocks := n.builder.BuildReportBlocks(rep)
	fallback := n.builder.renderer.Title(rep.Current)

	channel, ts, err := n.client.PostMessage(ctx, n.channelID,
		slack.MsgOptionText(fallback, false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post report",
			goerr.V("channel", n.channelID),
			goerr.V("snapshot_id", rep.Current.ID))
	}

	ctxlog.From(ctx).Info("Report posted to Slack",
		"channel", channel,
		"ts", ts,
		"snapshot_id", rep.Current.ID,
		"blocks", len(blocks),
	)
	return nil
}

var _ interfaces.Notifier = (*Notifier)(nil)
