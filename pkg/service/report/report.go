// Package report renders comparison reports as text, HTML, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/diff"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

// Format selects the output representation of a report
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultTitle is the name of the scanner printed in report headers
const DefaultTitle = "OWASP ZAP"

const dateLayout = "2006-01-02 15:04:05"

// ParseFormat parses a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatHTML, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", goerr.New("unknown report format", goerr.V("format", s))
	}
}

// View is the structured form of a report used by the JSON and YAML outputs
type View struct {
	Title    string              `json:"title" yaml:"title"`
	Current  SnapshotView        `json:"current" yaml:"current"`
	Prior    *SnapshotView       `json:"prior,omitempty" yaml:"prior,omitempty"`
	Notices  []string            `json:"notices,omitempty" yaml:"notices,omitempty"`
	Rows     []diff.FormattedRow `json:"rows" yaml:"rows"`
	Mismatch bool                `json:"alert_count_mismatch" yaml:"alert_count_mismatch"`
}

// SnapshotView is the header information of one snapshot
type SnapshotView struct {
	ID          types.SnapshotID  `json:"id" yaml:"id"`
	Date        string            `json:"date" yaml:"date"`
	Environment string            `json:"environment" yaml:"environment"`
	ScanType    string            `json:"scan_type" yaml:"scan_type"`
	Version     string            `json:"version" yaml:"version"`
	ReportLink  string            `json:"report_link" yaml:"report_link"`
	Findings    int               `json:"findings" yaml:"findings"`
	Totals      model.AlertTotals `json:"totals" yaml:"totals"`
}

// Renderer renders reports
type Renderer struct {
	formatter *diff.Formatter
	title     string
	location  *time.Location
}

// Option configures a Renderer
type Option func(*Renderer)

// WithFormatter replaces the row formatter
func WithFormatter(f *diff.Formatter) Option {
	return func(r *Renderer) {
		r.formatter = f
	}
}

// WithTitle replaces the scanner name in the header
func WithTitle(title string) Option {
	return func(r *Renderer) {
		r.title = title
	}
}

// WithLocation sets the time zone used for dates
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.location = loc
		}
	}
}

// New creates a Renderer
func New(opts ...Option) *Renderer {
	r := &Renderer{
		formatter: diff.DefaultFormatter(),
		title:     DefaultTitle,
		location:  time.UTC,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes the report to w in the given format
func (r *Renderer) Render(w io.Writer, report *model.Report, format Format) error {
	if report == nil || report.Current == nil {
		return goerr.New("report has no current snapshot")
	}

	switch format {
	case FormatText, "":
		_, err := io.WriteString(w, r.Text(report))
		return wrapWrite(err)

	case FormatHTML:
		_, err := io.WriteString(w, r.HTML(report))
		return wrapWrite(err)

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r.View(report)); err != nil {
			return goerr.Wrap(err, "failed to encode report as JSON")
		}
		return nil

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r.View(report)); err != nil {
			return goerr.Wrap(err, "failed to encode report as YAML")
		}
		if err := enc.Close(); err != nil {
			return goerr.Wrap(err, "failed to flush YAML encoder")
		}
		return nil

	default:
		return goerr.New("unknown report format", goerr.V("format", format))
	}
}

func wrapWrite(err error) error {
	if err != nil {
		return goerr.Wrap(err, "failed to write report")
	}
	return nil
}

// View builds the structured form of the report
func (r *Renderer) View(report *model.Report) *View {
	v := &View{
		Title:    r.Title(report.Current),
		Current:  r.snapshotView(report.Current),
		Rows:     r.formatter.FormatAll(report.Rows),
		Mismatch: report.AlertCountMismatch(),
	}
	if report.HasPrior() {
		prior := r.snapshotView(report.Prior)
		v.Prior = &prior
	}
	v.Notices = r.notices(report)
	return v
}

func (r *Renderer) snapshotView(s *model.Snapshot) SnapshotView {
	return SnapshotView{
		ID:          s.ID,
		Date:        r.date(s.Timestamp),
		Environment: s.Environment,
		ScanType:    s.ScanType,
		Version:     s.Version,
		ReportLink:  EncodeLink(s.ReportLink),
		Findings:    len(s.Findings),
		Totals:      s.Totals,
	}
}

func (r *Renderer) notices(report *model.Report) []string {
	var notices []string
	if !report.HasPrior() {
		notices = append(notices, fmt.Sprintf("Not enough rows to compare results for %s and %s.",
			report.Current.Environment, report.Current.ScanType))
	}
	if report.AlertCountMismatch() {
		notices = append(notices, fmt.Sprintf("The number of alerts in this result and the most recent result do not match - %d != %d",
			len(report.Current.Findings), len(report.Prior.Findings)))
	}
	return notices
}

// Title returns the header line of a report for the snapshot
func (r *Renderer) Title(s *model.Snapshot) string {
	return fmt.Sprintf("%s Report comparison for %s / %s / %s", r.title, s.Environment, s.ScanType, s.Version)
}

func (r *Renderer) date(t time.Time) string {
	return t.In(r.location).Format(dateLayout)
}

// Text renders the report as plain text lines
func (r *Renderer) Text(report *model.Report) string {
	var b strings.Builder
	current := report.Current

	b.WriteString(r.Title(current) + "\n")
	b.WriteString("This report date: " + r.date(current.Timestamp) + "\n")
	b.WriteString("This report link: " + EncodeLink(current.ReportLink) + "\n")
	b.WriteString("Alert totals: " + formatTotals(current.Totals) + "\n")

	if report.HasPrior() {
		prior := report.Prior
		b.WriteString("Comparison report version: " + prior.Version + "\n")
		b.WriteString("Comparison report date: " + r.date(prior.Timestamp) + "\n")
		b.WriteString("Comparison report link: " + EncodeLink(prior.ReportLink) + "\n")
		b.WriteString("\n")
	}

	for _, notice := range r.notices(report) {
		b.WriteString(notice + "\n")
	}

	for _, row := range r.formatter.FormatAll(report.Rows) {
		b.WriteString(FormatRowLine(row) + "\n")
	}

	return b.String()
}

// HTML renders the text report as one escaped paragraph with line breaks
func (r *Renderer) HTML(report *model.Report) string {
	text := strings.TrimSuffix(r.Text(report), "\n")
	return "<p>" + strings.ReplaceAll(html.EscapeString(text), "\n", "<br>") + "</p>"
}

// FormatRowLine renders one formatted row as a single text line
func FormatRowLine(row diff.FormattedRow) string {
	return fmt.Sprintf("%s - Alert Level: %s | Alert Type: %s | URLs Affected: %d / Comparison URLs Affected: %d",
		row.Comment, row.Severity, row.FindingType, row.CurrentCount, row.PriorCount)
}

func formatTotals(t model.AlertTotals) string {
	parts := make([]string, 0, len(types.Severities()))
	for _, sev := range types.Severities() {
		parts = append(parts, fmt.Sprintf("%s: %d", sev, t.Get(sev)))
	}
	return strings.Join(parts, " | ")
}

// EncodeLink replaces spaces in a report link so it stays clickable
func EncodeLink(link string) string {
	return strings.ReplaceAll(link, " ", "%20")
}
