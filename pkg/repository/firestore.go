package repository

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/domain/interfaces"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// Collection names, prefixed per project
	snapshotsCollection = "snapshots"
	projectsCollection  = "projects"
	countersCollection  = "counters"

	// Document IDs
	snapshotCounterDocID = "snapshot"

	// Field names
	fieldCurrentNumber = "current_number"
	fieldEnvironment   = "Environment"
	fieldScanType      = "ScanType"
)

// Firestore implements SnapshotStore with Firestore. All collections of one
// store share a prefix so several projects can live in one database.
type Firestore struct {
	client *firestore.Client
	prefix string
}

// NewFirestore creates a new Firestore snapshot store
func NewFirestore(ctx context.Context, projectID, databaseID, prefix string) (interfaces.SnapshotStore, error) {
	logger := ctxlog.From(ctx)

	// Create client with database ID
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	f := &Firestore{
		client: client,
		prefix: prefix,
	}

	// Test connection by attempting to read from a collection
	// This will fail fast if the project ID is invalid or if there are permission issues
	_, err = f.snapshots().Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		// For other errors (like NotFound for new projects), log but continue
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore snapshot store initialized successfully",
		"projectID", projectID,
		"databaseID", databaseID,
		"prefix", prefix,
	)

	return f, nil
}

func (f *Firestore) snapshots() *firestore.CollectionRef {
	return f.client.Collection(f.prefix + snapshotsCollection)
}

func (f *Firestore) projects() *firestore.CollectionRef {
	return f.client.Collection(f.prefix + projectsCollection)
}

func (f *Firestore) counters() *firestore.CollectionRef {
	return f.client.Collection(f.prefix + countersCollection)
}

// AllocateSnapshotID returns the next snapshot ID using an atomic increment
func (f *Firestore) AllocateSnapshotID(ctx context.Context) (types.SnapshotID, error) {
	counterDoc := f.counters().Doc(snapshotCounterDocID)

	var nextID types.SnapshotID
	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterDoc)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				// Initialize counter if it doesn't exist
				nextID = 1
				return tx.Set(counterDoc, map[string]any{
					fieldCurrentNumber: int(nextID),
				})
			}
			return goerr.Wrap(err, "failed to get counter document")
		}

		current, err := doc.DataAt(fieldCurrentNumber)
		if err != nil {
			return goerr.Wrap(err, "failed to get current_number field")
		}

		// Handle both int and int64 types
		switch v := current.(type) {
		case int64:
			nextID = types.SnapshotID(v) + 1
		case int:
			nextID = types.SnapshotID(v) + 1
		default:
			return goerr.New("unexpected type for current_number")
		}

		return tx.Update(counterDoc, []firestore.Update{
			{Path: fieldCurrentNumber, Value: int(nextID)},
		})
	})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to allocate snapshot ID")
	}

	return nextID, nil
}

// SaveSnapshot saves a snapshot to Firestore
func (f *Firestore) SaveSnapshot(ctx context.Context, snapshot *model.Snapshot) error {
	if snapshot == nil {
		return goerr.New("snapshot is nil")
	}
	if err := snapshot.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid snapshot ID")
	}

	_, err := f.snapshots().Doc(snapshot.ID.String()).Set(ctx, snapshot)
	if err != nil {
		return goerr.Wrap(err, "failed to save snapshot to firestore",
			goerr.V("id", snapshot.ID))
	}

	return nil
}

// GetSnapshot retrieves a snapshot by ID
func (f *Firestore) GetSnapshot(ctx context.Context, id types.SnapshotID) (*model.Snapshot, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid snapshot ID")
	}

	doc, err := f.snapshots().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrSnapshotNotFound, "snapshot not found in firestore",
				goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get snapshot from firestore")
	}

	var snapshot model.Snapshot
	if err := doc.DataTo(&snapshot); err != nil {
		return nil, goerr.Wrap(err, "failed to decode snapshot")
	}

	return &snapshot, nil
}

// MostRecentSnapshot returns the newest snapshot older than excluding for the environment and scan type
func (f *Firestore) MostRecentSnapshot(ctx context.Context, environment, scanType string, excluding types.SnapshotID) (*model.Snapshot, error) {
	snapshots, err := f.querySnapshots(ctx, environment, scanType)
	if err != nil {
		return nil, err
	}

	var latest *model.Snapshot
	for _, s := range snapshots {
		if excluding > 0 && s.ID >= excluding {
			continue
		}
		if latest == nil || s.ID > latest.ID {
			latest = s
		}
	}

	return latest, nil
}

// ListSnapshots lists snapshots newest first
func (f *Firestore) ListSnapshots(ctx context.Context, environment, scanType string, limit int) ([]*model.Snapshot, error) {
	snapshots, err := f.querySnapshots(ctx, environment, scanType)
	if err != nil {
		return nil, err
	}

	// Sort by ID in descending order (newest first)
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ID > snapshots[j].ID
	})

	// Apply limit after sorting
	if limit > 0 && len(snapshots) > limit {
		snapshots = snapshots[:limit]
	}

	return snapshots, nil
}

// querySnapshots runs equality filters only to avoid requiring a composite
// index. Ordering is done in memory by the callers.
func (f *Firestore) querySnapshots(ctx context.Context, environment, scanType string) ([]*model.Snapshot, error) {
	query := f.snapshots().Query
	if environment != "" {
		query = query.Where(fieldEnvironment, "==", environment)
	}
	if scanType != "" {
		query = query.Where(fieldScanType, "==", scanType)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var snapshots []*model.Snapshot
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate snapshots",
				goerr.V("environment", environment),
				goerr.V("scan_type", scanType))
		}

		var snapshot model.Snapshot
		if err := doc.DataTo(&snapshot); err != nil {
			return nil, goerr.Wrap(err, "failed to decode snapshot",
				goerr.V("doc_id", doc.Ref.ID))
		}
		snapshots = append(snapshots, &snapshot)
	}

	return snapshots, nil
}

// CountSnapshots returns the number of saved snapshots
func (f *Firestore) CountSnapshots(ctx context.Context) (int, error) {
	// Select without fields fetches document references only
	iter := f.snapshots().Select().Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count snapshots")
		}
		count++
	}

	return count, nil
}

// PutProject saves the project summary
func (f *Firestore) PutProject(ctx context.Context, project *model.Project) error {
	if project == nil {
		return goerr.New("project is nil")
	}
	if project.Name == "" {
		return goerr.New("project name is empty")
	}

	_, err := f.projects().Doc(project.Name).Set(ctx, project)
	if err != nil {
		return goerr.Wrap(err, "failed to save project to firestore",
			goerr.V("name", project.Name))
	}

	return nil
}

// GetProject retrieves the project summary by name
func (f *Firestore) GetProject(ctx context.Context, name string) (*model.Project, error) {
	if name == "" {
		return nil, goerr.New("project name is empty")
	}

	doc, err := f.projects().Doc(name).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrProjectNotFound, "project not found in firestore",
				goerr.V("name", name))
		}
		return nil, goerr.Wrap(err, "failed to get project from firestore")
	}

	var project model.Project
	if err := doc.DataTo(&project); err != nil {
		return nil, goerr.Wrap(err, "failed to decode project")
	}

	return &project, nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

var _ interfaces.SnapshotStore = (*Firestore)(nil) // Compile-time interface check
