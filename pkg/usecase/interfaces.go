package usecase

import (
	"context"

	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
	"github.com/secmon-lab/zaphist/pkg/parser"
)

// ReportUseCase defines the interface for report ingestion and history lookups
type ReportUseCase interface {
	// Ingest parses a report, stores it as a new snapshot and compares it with
	// the most recent prior snapshot of the same environment and scan type
	Ingest(ctx context.Context, req *IngestRequest) (*model.Report, error)

	// Compare rebuilds the comparison of a stored snapshot against its prior
	Compare(ctx context.Context, id types.SnapshotID) (*model.Report, error)

	// Notify sends the report to the configured notifier, if any
	Notify(ctx context.Context, report *model.Report) error

	GetSnapshot(ctx context.Context, id types.SnapshotID) (*model.Snapshot, error)
	ListSnapshots(ctx context.Context, environment, scanType string, limit int) ([]*model.Snapshot, error)
	GetProject(ctx context.Context) (*model.Project, error)
}

// DiffUseCase defines the interface for comparing two documents without a store
type DiffUseCase interface {
	Diff(ctx context.Context, current, prior parser.Document, meta model.SnapshotMeta) (*model.Report, error)
}
