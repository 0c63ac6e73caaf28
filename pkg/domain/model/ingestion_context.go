package model

import (
	"context"

	"github.com/secmon-lab/zaphist/pkg/domain/types"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const ingestionIDKey contextKey = "ingestionID"

// WithIngestionID adds the ingestion ID to the context
func WithIngestionID(ctx context.Context, id types.IngestionID) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, ingestionIDKey, id)
}

// GetIngestionID retrieves the ingestion ID from the context
func GetIngestionID(ctx context.Context) (types.IngestionID, bool) {
	id, ok := ctx.Value(ingestionIDKey).(types.IngestionID)
	return id, ok
}
