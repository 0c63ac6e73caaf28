package diff_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/zaphist/pkg/diff"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
)

func TestFormatDefaultComments(t *testing.T) {
	f := diff.DefaultFormatter()

	testCases := []struct {
		name    string
		row     model.ComparisonRow
		comment string
	}{
		{
			name:    "unchanged",
			row:     model.ComparisonRow{Severity: types.SeverityLow, FindingType: "Cookie", CurrentCount: 2, PriorCount: 2, Classification: types.ClassificationUnchanged},
			comment: "Number of URLs Affected stayed the same",
		},
		{
			name:    "increased",
			row:     model.ComparisonRow{Severity: types.SeverityHigh, FindingType: "XSS", CurrentCount: 5, PriorCount: 3, Classification: types.ClassificationIncreased},
			comment: "Number of URLs Affected increased by 2",
		},
		{
			name:    "decreased",
			row:     model.ComparisonRow{Severity: types.SeverityHigh, FindingType: "XSS", CurrentCount: 1, PriorCount: 4, Classification: types.ClassificationDecreased},
			comment: "Number of URLs Affected decreased by 3",
		},
		{
			name:    "new",
			row:     model.ComparisonRow{Severity: types.SeverityMedium, FindingType: "CSP", CurrentCount: 1, Classification: types.ClassificationNew},
			comment: "NEW ALERT - not found in most recent result",
		},
		{
			name:    "resolved",
			row:     model.ComparisonRow{Severity: types.SeverityMedium, FindingType: "CSP", PriorCount: 1, Classification: types.ClassificationResolved},
			comment: "ALERT POTENTIALLY RESOLVED - from recent result not found in this result",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := f.Format(tc.row)
			gt.Equal(t, out.Comment, tc.comment)
			gt.Equal(t, out.Severity, tc.row.Severity.String())
			gt.Equal(t, out.FindingType, tc.row.FindingType)
			gt.Equal(t, out.CurrentCount, tc.row.CurrentCount)
			gt.Equal(t, out.PriorCount, tc.row.PriorCount)
			gt.Equal(t, out.Classification, tc.row.Classification)
		})
	}
}

func TestFormatWithOverrides(t *testing.T) {
	f, err := diff.NewFormatter(&model.CommentsConfig{
		Comments: map[types.Classification]string{
			types.ClassificationIncreased: "{{.FindingType}} grew from {{.PriorCount}} to {{.CurrentCount}}",
		},
	})
	gt.NoError(t, err).Required()

	out := f.Format(model.ComparisonRow{
		Severity:       types.SeverityHigh,
		FindingType:    "XSS",
		CurrentCount:   4,
		PriorCount:     1,
		Classification: types.ClassificationIncreased,
	})
	gt.Equal(t, out.Comment, "XSS grew from 1 to 4")

	out = f.Format(model.ComparisonRow{
		Severity:       types.SeverityHigh,
		FindingType:    "XSS",
		Classification: types.ClassificationUnchanged,
	})
	gt.Equal(t, out.Comment, "Number of URLs Affected stayed the same")
}

func TestNewFormatterRejectsBadOverrides(t *testing.T) {
	testCases := []struct {
		name     string
		comments map[types.Classification]string
	}{
		{name: "empty", comments: map[types.Classification]string{}},
		{name: "unknown classification", comments: map[types.Classification]string{"vanished": "gone"}},
		{name: "empty comment", comments: map[types.Classification]string{types.ClassificationNew: ""}},
		{name: "broken template", comments: map[types.Classification]string{types.ClassificationNew: "{{.Delta"}},
		{name: "unknown field", comments: map[types.Classification]string{types.ClassificationNew: "{{.Missing}}"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := diff.NewFormatter(&model.CommentsConfig{Comments: tc.comments})
			gt.Error(t, err)
			gt.True(t, goerr.HasTag(err, model.ErrTagValidation))
		})
	}
}

func TestFormatAll(t *testing.T) {
	rows, err := diff.CompareFindings(
		[]model.Finding{finding(types.SeverityHigh, "A", 2), finding(types.SeverityLow, "B", 1)},
		[]model.Finding{finding(types.SeverityLow, "B", 1)},
	)
	gt.NoError(t, err).Required()

	out := diff.DefaultFormatter().FormatAll(rows)
	gt.A(t, out).Length(2)
	gt.Equal(t, out[0].Classification, types.ClassificationNew)
	gt.Equal(t, out[0].Delta, 2)
	gt.Equal(t, out[1].Classification, types.ClassificationUnchanged)
}

func TestFormatterCoversEveryClassification(t *testing.T) {
	f := diff.DefaultFormatter()
	defaults := diff.DefaultComments()
	gt.Equal(t, len(defaults), len(types.Classifications()))

	for _, c := range types.Classifications() {
		row := f.Format(model.ComparisonRow{
			Severity:       types.SeverityLow,
			FindingType:    "Cookie No HttpOnly Flag",
			Classification: c,
		})
		gt.NotEqual(t, row.Comment, "")
		gt.Equal(t, row.Classification, c)
	}
}
