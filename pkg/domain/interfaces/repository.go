package interfaces

//go:generate moq -out mocks/repository_mock.go -pkg mocks . SnapshotStore

import (
	"context"

	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
)

// SnapshotStore defines persistence for snapshots of one project
type SnapshotStore interface {
	// Snapshot operations
	AllocateSnapshotID(ctx context.Context) (types.SnapshotID, error)
	SaveSnapshot(ctx context.Context, snapshot *model.Snapshot) error
	GetSnapshot(ctx context.Context, id types.SnapshotID) (*model.Snapshot, error)
	// MostRecentSnapshot returns the newest snapshot for the environment and scan
	// type that is older than excluding, or nil when none exists. A zero excluding
	// considers every snapshot.
	MostRecentSnapshot(ctx context.Context, environment, scanType string, excluding types.SnapshotID) (*model.Snapshot, error)
	// ListSnapshots returns snapshots newest first. Empty environment or scan type
	// match every value. A non-positive limit returns all matches.
	ListSnapshots(ctx context.Context, environment, scanType string, limit int) ([]*model.Snapshot, error)
	CountSnapshots(ctx context.Context) (int, error)

	// Project summary operations
	PutProject(ctx context.Context, project *model.Project) error
	GetProject(ctx context.Context, name string) (*model.Project, error)

	// Close closes the store connection
	Close() error
}
