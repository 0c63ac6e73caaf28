package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
	"github.com/secmon-lab/zaphist/pkg/parser"
	"github.com/secmon-lab/zaphist/pkg/service/report"
	"github.com/secmon-lab/zaphist/pkg/usecase"
	"github.com/secmon-lab/zaphist/pkg/utils/async"
)

// notProvided fills descriptive metadata the caller left out
const notProvided = "Not Provided"

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	format, err := report.ParseFormat(queryOr(r, "format", string(report.FormatJSON)))
	if err != nil {
		writeError(w, goerr.Wrap(err, "invalid format", goerr.T(model.ErrTagValidation)), http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(s.config.MaxDocumentBytes)))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, goerr.Wrap(err, "report document too large",
				goerr.V("limit", s.config.MaxDocumentBytes),
				goerr.T(model.ErrTagParse)), http.StatusRequestEntityTooLarge)
			return
		}
		writeError(w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}

	req := &usecase.IngestRequest{
		Document: parser.Document{
			Name:    queryOr(r, "name", "request-body"),
			Content: body,
		},
		Meta: model.SnapshotMeta{
			Environment: queryOr(r, "environment", notProvided),
			ScanType:    queryOr(r, "scan_type", notProvided),
			Version:     queryOr(r, "version", notProvided),
			ReportLink:  queryOr(r, "link", notProvided),
		},
	}

	rep, err := s.reportUC.Ingest(ctx, req)
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		return s.reportUC.Notify(ctx, rep)
	})

	s.writeReport(w, r, http.StatusCreated, rep, format)
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, goerr.New("limit must be a non-negative integer", goerr.V("limit", v)), http.StatusBadRequest)
			return
		}
		limit = n
	}

	snapshots, err := s.reportUC.ListSnapshots(r.Context(),
		r.URL.Query().Get("environment"),
		r.URL.Query().Get("scan_type"),
		limit,
	)
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}
	if snapshots == nil {
		snapshots = []*model.Snapshot{}
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"snapshots": snapshots})
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	id, ok := snapshotIDParam(w, r)
	if !ok {
		return
	}

	snapshot, err := s.reportUC.GetSnapshot(r.Context(), id)
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, snapshot)
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	id, ok := snapshotIDParam(w, r)
	if !ok {
		return
	}

	format, err := report.ParseFormat(queryOr(r, "format", string(report.FormatJSON)))
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	rep, err := s.reportUC.Compare(r.Context(), id)
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}

	s.writeReport(w, r, http.StatusOK, rep, format)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.reportUC.GetProject(r.Context())
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, project)
}

func (s *Server) writeReport(w http.ResponseWriter, r *http.Request, status int, rep *model.Report, format report.Format) {
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, rep, format); err != nil {
		handleUseCaseError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write report response", "error", err)
	}
}

func contentType(format report.Format) string {
	switch format {
	case report.FormatHTML:
		return "text/html; charset=utf-8"
	case report.FormatYAML:
		return "application/yaml"
	case report.FormatText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

func snapshotIDParam(w http.ResponseWriter, r *http.Request) (types.SnapshotID, bool) {
	raw := chi.URLParam(r, "id")
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		writeError(w, goerr.New("snapshot ID must be a positive integer", goerr.V("id", raw)), http.StatusBadRequest)
		return 0, false
	}
	return types.SnapshotID(n), true
}

func queryOr(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}
