package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/domain/interfaces"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
)

// Memory implements SnapshotStore with in-memory storage
type Memory struct {
	mu              sync.RWMutex
	snapshots       map[types.SnapshotID]*model.Snapshot
	projects        map[string]*model.Project
	snapshotCounter types.SnapshotID
}

// NewMemory creates a new memory snapshot store
func NewMemory() interfaces.SnapshotStore {
	return &Memory{
		snapshots: make(map[types.SnapshotID]*model.Snapshot),
		projects:  make(map[string]*model.Project),
	}
}

// AllocateSnapshotID returns the next snapshot ID
func (m *Memory) AllocateSnapshotID(ctx context.Context) (types.SnapshotID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshotCounter++
	return m.snapshotCounter, nil
}

// SaveSnapshot saves a snapshot to memory
func (m *Memory) SaveSnapshot(ctx context.Context, snapshot *model.Snapshot) error {
	if snapshot == nil {
		return goerr.New("snapshot is nil")
	}
	if err := snapshot.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid snapshot ID")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshots[snapshot.ID] = snapshot.Clone()
	return nil
}

// GetSnapshot retrieves a snapshot by ID
func (m *Memory) GetSnapshot(ctx context.Context, id types.SnapshotID) (*model.Snapshot, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid snapshot ID")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	s, exists := m.snapshots[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrSnapshotNotFound, "failed to get snapshot",
			goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	return s.Clone(), nil
}

// MostRecentSnapshot returns the newest snapshot older than excluding for the environment and scan type
func (m *Memory) MostRecentSnapshot(ctx context.Context, environment, scanType string, excluding types.SnapshotID) (*model.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var latest *model.Snapshot
	for id, s := range m.snapshots {
		if s.Environment != environment || s.ScanType != scanType {
			continue
		}
		if excluding > 0 && id >= excluding {
			continue
		}
		if latest == nil || id > latest.ID {
			latest = s
		}
	}

	if latest == nil {
		return nil, nil
	}
	return latest.Clone(), nil
}

// ListSnapshots lists snapshots newest first
func (m *Memory) ListSnapshots(ctx context.Context, environment, scanType string, limit int) ([]*model.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var snapshots []*model.Snapshot
	for _, s := range m.snapshots {
		if environment != "" && s.Environment != environment {
			continue
		}
		if scanType != "" && s.ScanType != scanType {
			continue
		}
		snapshots = append(snapshots, s.Clone())
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ID > snapshots[j].ID
	})

	if limit > 0 && len(snapshots) > limit {
		snapshots = snapshots[:limit]
	}

	return snapshots, nil
}

// CountSnapshots returns the number of saved snapshots
func (m *Memory) CountSnapshots(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.snapshots), nil
}

// PutProject saves the project summary
func (m *Memory) PutProject(ctx context.Context, project *model.Project) error {
	if project == nil {
		return goerr.New("project is nil")
	}
	if project.Name == "" {
		return goerr.New("project name is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p := *project
	m.projects[project.Name] = &p
	return nil
}

// GetProject retrieves the project summary by name
func (m *Memory) GetProject(ctx context.Context, name string) (*model.Project, error) {
	if name == "" {
		return nil, goerr.New("project name is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	p, exists := m.projects[name]
	if !exists {
		return nil, goerr.Wrap(model.ErrProjectNotFound, "failed to get project",
			goerr.V("name", name))
	}

	projectCopy := *p
	return &projectCopy, nil
}

// Close is a no-op for the memory store
func (m *Memory) Close() error {
	return nil
}

var _ interfaces.SnapshotStore = (*Memory)(nil)
