package slack

import (
	"fmt"
	"strings"

	"github.com/secmon-lab/zaphist/pkg/diff"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
	"github.com/secmon-lab/zaphist/pkg/service/report"
	"github.com/slack-go/slack"
)

const (
	// Slack rejects messages with more than 50 blocks
	maxBlocks         = 50
	rowsPerSection    = 10
	reservedTailBlock = 1
)

// GetClassificationEmoji returns emoji based on classification
func GetClassificationEmoji(c types.Classification) string {
	switch c {
	case types.ClassificationNew:
		return "🚨"
	case types.ClassificationIncreased:
		return "📈"
	case types.ClassificationDecreased:
		return "📉"
	case types.ClassificationUnchanged:
		return "➖"
	case types.ClassificationResolved:
		return "✅"
	default:
		return "❓"
	}
}

// BlockBuilder provides methods to build Slack message blocks
type BlockBuilder struct {
	renderer  *report.Renderer
	formatter *diff.Formatter
}

// NewBlockBuilder creates a new BlockBuilder instance
func NewBlockBuilder(renderer *report.Renderer, formatter *diff.Formatter) *BlockBuilder {
	if renderer == nil {
		renderer = report.New()
	}
	if formatter == nil {
		formatter = diff.DefaultFormatter()
	}
	return &BlockBuilder{renderer: renderer, formatter: formatter}
}

// BuildReportBlocks creates the message blocks of a comparison report
func (b *BlockBuilder) BuildReportBlocks(rep *model.Report) []slack.Block {
	view := b.renderer.View(rep)

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, view.Title, false, false)),
		slack.NewSectionBlock(nil, b.snapshotFields(view.Current, "This report"), nil),
	}

	if view.Prior != nil {
		blocks = append(blocks, slack.NewSectionBlock(nil, b.snapshotFields(*view.Prior, "Comparison report"), nil))
	}

	for _, notice := range view.Notices {
		blocks = append(blocks, b.BuildContextBlocks(notice)...)
	}

	if len(rep.Rows) == 0 {
		return blocks
	}
	blocks = append(blocks, slack.NewDividerBlock())

	rows := b.formatter.FormatAll(rep.Rows)
	for start := 0; start < len(rows); start += rowsPerSection {
		if len(blocks) >= maxBlocks-reservedTailBlock {
			remaining := len(rows) - start
			blocks = append(blocks, b.BuildContextBlocks(fmt.Sprintf("%d more rows not shown", remaining))...)
			break
		}

		end := min(start+rowsPerSection, len(rows))
		lines := make([]string, 0, end-start)
		for _, row := range rows[start:end] {
			lines = append(lines, formatRow(row))
		}
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, strings.Join(lines, "\n"), false, false),
			nil, nil,
		))
	}

	return blocks
}

func (b *BlockBuilder) snapshotFields(s report.SnapshotView, label string) []*slack.TextBlockObject {
	link := s.ReportLink
	if link != "" {
		link = "<" + link + "|open>"
	}
	return []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*%s*\n#%d %s", label, s.ID, s.Date), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Version*\n%s", s.Version), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Alerts*\n%d (High %d / Medium %d / Low %d)",
			s.Findings, s.Totals.High, s.Totals.Medium, s.Totals.Low), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Link*\n%s", link), false, false),
	}
}

func formatRow(row diff.FormattedRow) string {
	return fmt.Sprintf("%s *%s* | %s: %d → %d\n    _%s_",
		GetClassificationEmoji(row.Classification),
		row.Severity,
		escapeText(row.FindingType),
		row.PriorCount,
		row.CurrentCount,
		escapeText(row.Comment),
	)
}

// escapeText escapes the characters Slack treats as control sequences
func escapeText(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

// BuildContextBlocks creates context blocks with a message
func (b *BlockBuilder) BuildContextBlocks(message string) []slack.Block {
	return []slack.Block{
		slack.NewContextBlock(
			"",
			slack.NewTextBlockObject(
				slack.MarkdownType,
				message,
				false,
				false,
			),
		),
	}
}
