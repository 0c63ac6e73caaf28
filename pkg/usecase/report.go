package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/diff"
	"github.com/secmon-lab/zaphist/pkg/domain/interfaces"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
	"github.com/secmon-lab/zaphist/pkg/parser"
	"github.com/secmon-lab/zaphist/pkg/utils/apperr"
)

// DefaultProjectName is used when no project name is configured
const DefaultProjectName = "default"

// IngestRequest is one report submission
type IngestRequest struct {
	Document parser.Document
	Meta     model.SnapshotMeta
}

// ReportConfig holds configuration for the Report use case
type ReportConfig struct {
	projectName string
	notifier    interfaces.Notifier
	now         func() time.Time
}

// ReportOption is a functional option for configuring Report
type ReportOption func(*ReportConfig)

// WithProjectName sets the name of the project summary updated on ingestion
func WithProjectName(name string) ReportOption {
	return func(c *ReportConfig) {
		if name != "" {
			c.projectName = name
		}
	}
}

// WithNotifier sets the notifier used by Notify
func WithNotifier(n interfaces.Notifier) ReportOption {
	return func(c *ReportConfig) {
		c.notifier = n
	}
}

// WithClock replaces the time source used for snapshot timestamps
func WithClock(now func() time.Time) ReportOption {
	return func(c *ReportConfig) {
		c.now = now
	}
}

// Report implements ReportUseCase
type Report struct {
	store  interfaces.SnapshotStore
	parser *parser.Parser
	config *ReportConfig
}

// NewReport creates a new Report use case
func NewReport(store interfaces.SnapshotStore, p *parser.Parser, opts ...ReportOption) *Report {
	config := &ReportConfig{
		projectName: DefaultProjectName,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Report{
		store:  store,
		parser: p,
		config: config,
	}
}

// Ingest parses the document and records it. A document that fails to parse
// leaves the store untouched.
func (u *Report) Ingest(ctx context.Context, req *IngestRequest) (*model.Report, error) {
	if req == nil {
		return nil, goerr.New("ingest request is nil", goerr.T(model.ErrTagValidation))
	}
	logger := ctxlog.From(ctx)

	result, err := u.parser.Parse(ctx, req.Document)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse report",
			goerr.V("document", req.Document.Name),
			apperr.KeepClass(err))
	}

	id, err := u.store.AllocateSnapshotID(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to allocate snapshot ID")
	}

	snapshot, err := model.NewSnapshot(id, req.Meta, result.Findings, u.config.now())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build snapshot", apperr.KeepClass(err))
	}

	// Nothing is written until the prior is known
	prior, err := u.store.MostRecentSnapshot(ctx, snapshot.Environment, snapshot.ScanType, snapshot.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get most recent snapshot", goerr.V("id", id))
	}

	report, err := BuildReport(snapshot, prior)
	if err != nil {
		return nil, err
	}

	if err := u.store.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, goerr.Wrap(err, "failed to save snapshot", goerr.V("id", id))
	}

	if err := u.recordProject(ctx, snapshot); err != nil {
		return nil, err
	}

	priorID := types.SnapshotID(0)
	if prior != nil {
		priorID = prior.ID
	}
	logger.Info("Report ingested",
		"snapshot_id", snapshot.ID,
		"prior_id", priorID,
		"layout", result.Layout,
		"findings", len(snapshot.Findings),
		"rows", len(report.Rows),
	)

	return report, nil
}

func (u *Report) recordProject(ctx context.Context, snapshot *model.Snapshot) error {
	count, err := u.store.CountSnapshots(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to count snapshots")
	}

	project, err := u.store.GetProject(ctx, u.config.projectName)
	if err != nil {
		if !errors.Is(err, model.ErrProjectNotFound) {
			return goerr.Wrap(err, "failed to get project", goerr.V("name", u.config.projectName))
		}
		project = &model.Project{Name: u.config.projectName}
	}

	project.Record(snapshot, count)
	if err := u.store.PutProject(ctx, project); err != nil {
		return goerr.Wrap(err, "failed to update project", goerr.V("name", u.config.projectName))
	}

	return nil
}

// Compare rebuilds the comparison of a stored snapshot against the snapshot preceding it
func (u *Report) Compare(ctx context.Context, id types.SnapshotID) (*model.Report, error) {
	snapshot, err := u.store.GetSnapshot(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get snapshot", goerr.V("id", id))
	}

	prior, err := u.store.MostRecentSnapshot(ctx, snapshot.Environment, snapshot.ScanType, snapshot.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get most recent snapshot", goerr.V("id", id))
	}

	return BuildReport(snapshot, prior)
}

// Notify sends the report to the notifier. It does nothing when no notifier is configured.
func (u *Report) Notify(ctx context.Context, report *model.Report) error {
	if u.config.notifier == nil {
		return nil
	}
	if err := u.config.notifier.NotifyReport(ctx, report); err != nil {
		return goerr.Wrap(err, "failed to notify report")
	}
	return nil
}

// GetSnapshot returns a stored snapshot
func (u *Report) GetSnapshot(ctx context.Context, id types.SnapshotID) (*model.Snapshot, error) {
	snapshot, err := u.store.GetSnapshot(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get snapshot", goerr.V("id", id))
	}
	return snapshot, nil
}

// ListSnapshots returns stored snapshots newest first
func (u *Report) ListSnapshots(ctx context.Context, environment, scanType string, limit int) ([]*model.Snapshot, error) {
	snapshots, err := u.store.ListSnapshots(ctx, environment, scanType, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list snapshots")
	}
	return snapshots, nil
}

// GetProject returns the summary of the configured project
func (u *Report) GetProject(ctx context.Context) (*model.Project, error) {
	project, err := u.store.GetProject(ctx, u.config.projectName)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("name", u.config.projectName))
	}
	return project, nil
}

// BuildReport compares current with prior. Without a prior the report carries no rows.
func BuildReport(current, prior *model.Snapshot) (*model.Report, error) {
	report := &model.Report{
		Current: current,
		Prior:   prior,
		Rows:    []model.ComparisonRow{},
	}
	if prior == nil {
		return report, nil
	}

	rows, err := diff.CompareFindings(current.Findings, prior.Findings)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to compare snapshots",
			goerr.V("current_id", current.ID),
			goerr.V("prior_id", prior.ID),
			apperr.KeepClass(err))
	}
	report.Rows = rows

	return report, nil
}

var _ ReportUseCase = (*Report)(nil)
