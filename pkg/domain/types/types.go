package types

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// SnapshotID represents a snapshot identifier assigned by the snapshot store
type SnapshotID int

// String returns the string representation
func (id SnapshotID) String() string {
	return fmt.Sprintf("%d", id)
}

// Int returns the int representation
func (id SnapshotID) Int() int {
	return int(id)
}

// Validate checks that the ID was assigned by a store
func (id SnapshotID) Validate() error {
	if id <= 0 {
		return goerr.New("snapshot ID must be positive", goerr.V("id", int(id)))
	}
	return nil
}

// IngestionID identifies one report submission for log correlation
type IngestionID string

// String returns the string representation
func (id IngestionID) String() string {
	return string(id)
}

// NewIngestionID creates a new IngestionID using UUID v7
func NewIngestionID() (IngestionID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return IngestionID(id.String()), nil
}
