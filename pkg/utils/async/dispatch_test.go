package async_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
	"github.com/secmon-lab/zaphist/pkg/utils/async"
)

// record is one log entry seen by recordHandler
type record struct {
	message string
	attrs   map[string]string
}

// recordHandler forwards every log entry to a channel
type recordHandler struct {
	records chan<- record
	attrs   []slog.Attr
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	rec := record{message: r.Message, attrs: map[string]string{}}
	for _, a := range h.attrs {
		rec.attrs[a.Key] = a.Value.String()
	}
	r.Attrs(func(a slog.Attr) bool {
		rec.attrs[a.Key] = a.Value.String()
		return true
	})
	h.records <- rec
	return nil
}

func (h *recordHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &recordHandler{records: h.records, attrs: merged}
}

func (h *recordHandler) WithGroup(string) slog.Handler { return h }

// ingestionContext returns a context carrying id and a logger that reports to the returned channel
func ingestionContext(id types.IngestionID) (context.Context, <-chan record) {
	records := make(chan record, 8)
	logger := slog.New(&recordHandler{records: records}).With("ingestion_id", id.String())
	ctx := model.WithIngestionID(context.Background(), id)
	return ctxlog.With(ctx, logger), records
}

func waitRecord(t *testing.T, records <-chan record) record {
	t.Helper()
	select {
	case rec := <-records:
		return rec
	case <-time.After(2 * time.Second):
		t.Fatal("no log entry from async handler")
		return record{}
	}
}

func TestDispatchKeepsIngestionContext(t *testing.T) {
	ctx, _ := ingestionContext("ing-100")
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	type observed struct {
		id     types.IngestionID
		found  bool
		ctxErr error
	}
	result := make(chan observed, 1)

	async.Dispatch(ctx, func(ctx context.Context) error {
		id, found := model.GetIngestionID(ctx)
		result <- observed{id: id, found: found, ctxErr: ctx.Err()}
		return nil
	})

	select {
	case got := <-result:
		gt.True(t, got.found)
		gt.Equal(t, got.id, types.IngestionID("ing-100"))
		// The request may already be finished; notification must still run
		gt.NoError(t, got.ctxErr)
	case <-time.After(2 * time.Second):
		t.Fatal("async handler did not run")
	}
}

func TestDispatchLogsThroughRequestLogger(t *testing.T) {
	t.Run("handler error", func(t *testing.T) {
		ctx, records := ingestionContext("ing-200")

		async.Dispatch(ctx, func(ctx context.Context) error {
			return goerr.New("slack unavailable")
		})

		rec := waitRecord(t, records)
		gt.Equal(t, rec.message, "Error in async handler")
		gt.Equal(t, rec.attrs["ingestion_id"], "ing-200")
		gt.S(t, rec.attrs["error"]).Contains("slack unavailable")
	})

	t.Run("handler panic", func(t *testing.T) {
		ctx, records := ingestionContext("ing-201")

		async.Dispatch(ctx, func(ctx context.Context) error {
			panic("block builder exploded")
		})

		rec := waitRecord(t, records)
		gt.Equal(t, rec.message, "Panic in async handler")
		gt.Equal(t, rec.attrs["ingestion_id"], "ing-201")
		gt.Equal(t, rec.attrs["recover"], "block builder exploded")
	})
}

func TestDispatchIsolatesConcurrentIngestions(t *testing.T) {
	const n = 8
	type pair struct{ sent, seen types.IngestionID }
	results := make(chan pair, n)

	for i := 0; i < n; i++ {
		id := types.IngestionID(fmt.Sprintf("ing-%03d", i))
		ctx, _ := ingestionContext(id)

		async.Dispatch(ctx, func(ctx context.Context) error {
			time.Sleep(5 * time.Millisecond)
			seen, _ := model.GetIngestionID(ctx)
			results <- pair{sent: id, seen: seen}
			return nil
		})
	}

	for i := 0; i < n; i++ {
		select {
		case p := <-results:
			gt.Equal(t, p.seen, p.sent)
		case <-time.After(2 * time.Second):
			t.Fatal("async handlers did not complete")
		}
	}
}
