package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
	"github.com/secmon-lab/zaphist/pkg/parser"
	"github.com/secmon-lab/zaphist/pkg/utils/apperr"
)

const (
	offlinePriorID   types.SnapshotID = 1
	offlineCurrentID types.SnapshotID = 2
)

// Diff implements DiffUseCase. It compares two documents directly and never
// touches a snapshot store.
type Diff struct {
	parser *parser.Parser
	now    func() time.Time
}

// NewDiff creates a new Diff use case
func NewDiff(p *parser.Parser) *Diff {
	return &Diff{parser: p, now: time.Now}
}

// Diff parses both documents and compares current against prior. Both snapshots
// share meta; the prior one is given the lower ID.
func (u *Diff) Diff(ctx context.Context, current, prior parser.Document, meta model.SnapshotMeta) (*model.Report, error) {
	now := u.now()

	priorSnapshot, err := u.snapshot(ctx, offlinePriorID, prior, meta, now)
	if err != nil {
		return nil, err
	}
	currentSnapshot, err := u.snapshot(ctx, offlineCurrentID, current, meta, now)
	if err != nil {
		return nil, err
	}

	report, err := BuildReport(currentSnapshot, priorSnapshot)
	if err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Debug("Documents compared",
		"current", current.Name,
		"prior", prior.Name,
		"rows", len(report.Rows),
	)
	return report, nil
}

func (u *Diff) snapshot(ctx context.Context, id types.SnapshotID, doc parser.Document, meta model.SnapshotMeta, now time.Time) (*model.Snapshot, error) {
	result, err := u.parser.Parse(ctx, doc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse report",
			goerr.V("document", doc.Name),
			apperr.KeepClass(err))
	}

	s, err := model.NewSnapshot(id, meta, result.Findings, now)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build snapshot",
			goerr.V("document", doc.Name),
			apperr.KeepClass(err))
	}
	return s, nil
}

var _ DiffUseCase = (*Diff)(nil)
