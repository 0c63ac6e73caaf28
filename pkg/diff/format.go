package diff

import (
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
)

// FormattedRow is the presentation-neutral rendering of one comparison row
type FormattedRow struct {
	Severity       string               `json:"severity" yaml:"severity"`
	FindingType    string               `json:"finding_type" yaml:"finding_type"`
	CurrentCount   int                  `json:"current_count" yaml:"current_count"`
	PriorCount     int                  `json:"prior_count" yaml:"prior_count"`
	Delta          int                  `json:"delta" yaml:"delta"`
	Classification types.Classification `json:"classification" yaml:"classification"`
	Comment        string               `json:"comment" yaml:"comment"`
}

// DefaultComments returns the built-in comment template for every classification
func DefaultComments() map[types.Classification]string {
	return map[types.Classification]string{
		types.ClassificationNew:       "NEW ALERT - not found in most recent result",
		types.ClassificationIncreased: "Number of URLs Affected increased by {{.Delta}}",
		types.ClassificationDecreased: "Number of URLs Affected decreased by {{.Delta}}",
		types.ClassificationUnchanged: "Number of URLs Affected stayed the same",
		types.ClassificationResolved:  "ALERT POTENTIALLY RESOLVED - from recent result not found in this result",
	}
}

// Formatter projects comparison rows into FormattedRow values
type Formatter struct {
	comments map[types.Classification]*template.Template
}

// NewFormatter creates a Formatter. Overrides replace the default comment of
// the classifications they name; nil keeps every default.
func NewFormatter(overrides *model.CommentsConfig) (*Formatter, error) {
	texts := DefaultComments()
	if overrides != nil {
		if err := overrides.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid comment overrides", goerr.T(model.ErrTagValidation))
		}
		for cls, text := range overrides.Comments {
			texts[cls] = text
		}
	}

	f := &Formatter{comments: make(map[types.Classification]*template.Template, len(texts))}
	probe := FormattedRow{Severity: types.SeverityHigh.String(), FindingType: "probe"}
	for _, cls := range types.Classifications() {
		text := texts[cls]
		tmpl, err := template.New(cls.String()).Parse(text)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse comment template",
				goerr.V("classification", cls),
				goerr.T(model.ErrTagValidation))
		}
		if err := tmpl.Execute(&strings.Builder{}, probe); err != nil {
			return nil, goerr.Wrap(err, "failed to evaluate comment template",
				goerr.V("classification", cls),
				goerr.T(model.ErrTagValidation))
		}
		f.comments[cls] = tmpl
	}

	return f, nil
}

// DefaultFormatter returns a Formatter with the built-in comments
func DefaultFormatter() *Formatter {
	f, err := NewFormatter(nil)
	if err != nil {
		panic("built-in comment templates are broken: " + err.Error())
	}
	return f
}

// Format projects one row
func (f *Formatter) Format(row model.ComparisonRow) FormattedRow {
	out := FormattedRow{
		Severity:       row.Severity.String(),
		FindingType:    row.FindingType,
		CurrentCount:   row.CurrentCount,
		PriorCount:     row.PriorCount,
		Delta:          row.Delta(),
		Classification: row.Classification,
	}

	if tmpl, ok := f.comments[row.Classification]; ok {
		var b strings.Builder
		// Templates were probed against the same type in NewFormatter
		_ = tmpl.Execute(&b, out)
		out.Comment = b.String()
	}

	return out
}

// FormatAll projects rows in order
func (f *Formatter) FormatAll(rows []model.ComparisonRow) []FormattedRow {
	out := make([]FormattedRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, f.Format(row))
	}
	return out
}
