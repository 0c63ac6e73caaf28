package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
	"github.com/secmon-lab/zaphist/pkg/parser"
	"github.com/secmon-lab/zaphist/pkg/usecase"
)

func TestDiff(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewDiff(parser.New())
	meta := model.SnapshotMeta{Environment: "local", ScanType: "baseline"}

	t.Run("Classifies both documents", func(t *testing.T) {
		report, err := uc.Diff(ctx,
			document("current.html", block("High", "XSS", "5"), block("Medium", "CSP", "1")),
			document("prior.html", block("High", "XSS", "3"), block("Low", "Cookie", "2")),
			meta,
		)
		gt.NoError(t, err).Required()

		gt.True(t, report.HasPrior())
		gt.True(t, report.Prior.ID < report.Current.ID)
		gt.A(t, report.Rows).Length(3)
		gt.Equal(t, report.Rows[0].FindingType, "CSP")
		gt.Equal(t, report.Rows[0].Classification, types.ClassificationNew)
		gt.Equal(t, report.Rows[1].FindingType, "XSS")
		gt.Equal(t, report.Rows[1].Classification, types.ClassificationIncreased)
		gt.Equal(t, report.Rows[1].Delta(), 2)
		gt.Equal(t, report.Rows[2].FindingType, "Cookie")
		gt.Equal(t, report.Rows[2].Classification, types.ClassificationResolved)
	})

	t.Run("Same document twice is unchanged", func(t *testing.T) {
		doc := document("same.html", block("High", "XSS", "5"), block("Low", "Cookie", "0"))
		report, err := uc.Diff(ctx, doc, doc, meta)
		gt.NoError(t, err).Required()
		for _, row := range report.Rows {
			gt.Equal(t, row.Classification, types.ClassificationUnchanged)
		}
	})

	t.Run("Bad prior document", func(t *testing.T) {
		_, err := uc.Diff(ctx,
			document("current.html"),
			document("prior.html", block("High", "XSS", "-1")),
			meta,
		)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagValidation))
	})
}
