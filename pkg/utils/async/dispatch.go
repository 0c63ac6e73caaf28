package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
)

// Dispatch executes a handler function asynchronously with proper context and panic recovery.
// The request context may be canceled as soon as the HTTP response is written, so the
// handler runs on a fresh background context.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				ctxlog.From(newCtx).Error("Panic in async handler",
					"recover", r,
					"stack", string(stack),
				)
			}
		}()

		if err := handler(newCtx); err != nil {
			ctxlog.From(newCtx).Error("Error in async handler",
				"error", err,
			)
		}
	}()
}

// newBackgroundContext creates a new background context preserving the logger and ingestion ID
func newBackgroundContext(ctx context.Context) context.Context {
	newCtx := context.Background()

	logger := ctxlog.From(ctx)
	if logger != nil {
		newCtx = ctxlog.With(newCtx, logger)
	}

	if id, ok := model.GetIngestionID(ctx); ok {
		newCtx = model.WithIngestionID(newCtx, id)
	}

	return newCtx
}
