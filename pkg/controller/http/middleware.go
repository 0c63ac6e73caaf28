package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
)

// HeaderIngestionID carries the ID assigned to a report submission
const HeaderIngestionID = "X-Ingestion-ID"

// LoggingMiddleware creates a chi-compatible logging middleware
func LoggingMiddleware(ctx context.Context) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Embed logger from the initial context into request context
			logger := ctxlog.From(ctx)
			if reqID := middleware.GetReqID(r.Context()); reqID != "" {
				logger = logger.With("request_id", reqID)
			}
			r = r.WithContext(ctxlog.With(r.Context(), logger))

			start := time.Now()

			// Wrap response writer to capture status
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.Query(),
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		})
	}
}

// IngestionIDMiddleware assigns a new ingestion ID to the request, echoes it
// in the response header and attaches it to the request logger
func IngestionIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := types.NewIngestionID()
		if err != nil {
			writeError(w, err, http.StatusInternalServerError)
			return
		}

		ctx := model.WithIngestionID(r.Context(), id)
		ctx = ctxlog.With(ctx, ctxlog.From(ctx).With("ingestion_id", id.String()))

		w.Header().Set(HeaderIngestionID, id.String())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
