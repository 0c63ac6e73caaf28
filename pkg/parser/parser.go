package parser

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
	"golang.org/x/net/html"
)

// DefaultMaxDocumentBytes is the document size accepted when no limit is configured
const DefaultMaxDocumentBytes = 32 << 20

// Document is a raw report together with a name used in errors and logs
type Document struct {
	Name    string
	Content []byte
}

// Result is the canonical list of findings extracted from one document
type Result struct {
	Layout   types.Layout
	Findings []model.Finding
}

// Parser extracts findings from scanner report documents. A Parser holds no
// mutable state and may be shared between goroutines.
type Parser struct {
	maxDocumentBytes int
}

// Option configures a Parser
type Option func(*Parser)

// WithMaxDocumentBytes caps the size of accepted documents. Non-positive values keep the default.
func WithMaxDocumentBytes(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDocumentBytes = n
		}
	}
}

// New creates a Parser
func New(opts ...Option) *Parser {
	p := &Parser{maxDocumentBytes: DefaultMaxDocumentBytes}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse detects the layout of the document and returns its findings in first
// seen order, with repeated (severity, finding type) pairs merged by summing
// their counts. A document without any finding block yields an empty result.
func (p *Parser) Parse(ctx context.Context, doc Document) (*Result, error) {
	logger := ctxlog.From(ctx)

	if len(doc.Content) > p.maxDocumentBytes {
		return nil, goerr.New("document exceeds size limit",
			goerr.V("document", doc.Name),
			goerr.V("size", len(doc.Content)),
			goerr.V("limit", p.maxDocumentBytes),
			goerr.T(model.ErrTagParse))
	}

	if len(bytes.TrimSpace(doc.Content)) == 0 {
		return &Result{Layout: types.LayoutLegacy, Findings: []model.Finding{}}, nil
	}

	root, err := htmlquery.Parse(bytes.NewReader(doc.Content))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse document",
			goerr.V("document", doc.Name),
			goerr.T(model.ErrTagParse))
	}

	layout := DetectLayout(root)
	logger.Debug("Detected report layout",
		"document", doc.Name,
		"layout", layout,
	)

	acc := newAccumulator()
	for _, loc := range Locators(layout) {
		occurrences := htmlquery.QuerySelectorAll(root, loc.Occurrence)
		logger.Debug("Located severity occurrences",
			"document", doc.Name,
			"severity", loc.Severity,
			"count", len(occurrences),
		)

		for _, cell := range occurrences {
			f, err := extract(cell, loc)
			if err != nil {
				tag := model.ErrTagParse
				if goerr.HasTag(err, model.ErrTagValidation) {
					tag = model.ErrTagValidation
				}
				return nil, goerr.Wrap(err, "failed to extract finding",
					goerr.V("document", doc.Name),
					goerr.V("layout", layout),
					goerr.V("severity", loc.Severity),
					goerr.T(tag))
			}
			acc.add(f)
		}
	}

	return &Result{Layout: layout, Findings: acc.findings()}, nil
}

// DetectLayout reports which layout the parsed document uses. The current
// layout wins whenever its marker is present, so locator sets are never mixed.
func DetectLayout(root *html.Node) types.Layout {
	if htmlquery.QuerySelector(root, currentLayoutMarker) != nil {
		return types.LayoutCurrent
	}
	return types.LayoutLegacy
}

func extract(cell *html.Node, loc Locator) (model.Finding, error) {
	row := ancestor(cell, "tr")
	if row == nil {
		return model.Finding{}, goerr.New("severity cell is not inside a table row",
			goerr.T(model.ErrTagParse))
	}

	labelNode := htmlquery.QuerySelector(row, loc.Label)
	if labelNode == nil {
		return model.Finding{}, goerr.New("finding type cell not found",
			goerr.T(model.ErrTagParse))
	}
	label := strings.TrimSpace(htmlquery.InnerText(labelNode))
	if label == "" {
		return model.Finding{}, goerr.New("finding type is empty",
			goerr.T(model.ErrTagParse))
	}

	table := ancestor(row, "table")
	if table == nil {
		table = row
	}
	count, err := readCount(table, loc.Count, loc.Mode)
	if err != nil {
		return model.Finding{}, goerr.Wrap(err, "failed to read affected count",
			goerr.V("finding_type", label),
			goerr.T(model.ErrTagValidation))
	}

	return model.Finding{
		Severity:      loc.Severity,
		FindingType:   label,
		AffectedCount: count,
	}, nil
}

func readCount(scope *html.Node, expr *xpath.Expr, mode CountMode) (int, error) {
	switch mode {
	case CountRows:
		return len(htmlquery.QuerySelectorAll(scope, expr)), nil

	case CountLiteral:
		node := htmlquery.QuerySelector(scope, expr)
		if node == nil {
			return 0, nil
		}
		text := strings.TrimSpace(htmlquery.InnerText(node))
		n, err := strconv.Atoi(text)
		if err != nil {
			return 0, goerr.Wrap(err, "count is not numeric",
				goerr.V("value", text),
				goerr.T(model.ErrTagValidation))
		}
		if n < 0 {
			return 0, goerr.New("count is negative",
				goerr.V("value", n),
				goerr.T(model.ErrTagValidation))
		}
		return n, nil

	default:
		return 0, goerr.New("unknown count mode", goerr.V("mode", int(mode)))
	}
}

func ancestor(n *html.Node, tag string) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == tag {
			return p
		}
	}
	return nil
}

// accumulator merges occurrences into one finding per key, keeping first seen order
type accumulator struct {
	index map[model.AlertKey]int
	list  []model.Finding
}

func newAccumulator() *accumulator {
	return &accumulator{index: make(map[model.AlertKey]int)}
}

func (a *accumulator) add(f model.Finding) {
	if i, ok := a.index[f.Key()]; ok {
		a.list[i].AffectedCount += f.AffectedCount
		return
	}
	a.index[f.Key()] = len(a.list)
	a.list = append(a.list, f)
}

func (a *accumulator) findings() []model.Finding {
	if a.list == nil {
		return []model.Finding{}
	}
	return a.list
}
