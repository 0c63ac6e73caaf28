package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/zaphist/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
	"github.com/secmon-lab/zaphist/pkg/parser"
	"github.com/secmon-lab/zaphist/pkg/repository"
	"github.com/secmon-lab/zaphist/pkg/usecase"
)

const summaryMarker = `<table class="summary"><tr><td><div>False Positives:</div></td><td><div>0</div></td></tr></table>`

func block(sev, label, instances string) string {
	return `<table class="results"><tr><th><a id="1"></a><div>` + sev + `</div></th><th>` + label + `</th></tr>` +
		`<tr><td><div>Instances</div></td><td>` + instances + `</td></tr></table>`
}

func document(name string, blocks ...string) parser.Document {
	return parser.Document{
		Name:    name,
		Content: []byte("<html><body>" + summaryMarker + strings.Join(blocks, "") + "</body></html>"),
	}
}

func fixedClock() func() time.Time {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Hour)
	}
}

func TestReportIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("First ingestion has no prior", func(t *testing.T) {
		store := repository.NewMemory()
		uc := usecase.NewReport(store, parser.New(), usecase.WithProjectName("shop"), usecase.WithClock(fixedClock()))

		report, err := uc.Ingest(ctx, &usecase.IngestRequest{
			Document: document("first.html", block("High", "SQL Injection", "2")),
			Meta:     model.SnapshotMeta{Environment: "qa", ScanType: "passive", Version: "1.0", ReportLink: "http://reports/1"},
		})
		gt.NoError(t, err).Required()

		gt.False(t, report.HasPrior())
		gt.A(t, report.Rows).Length(0)
		gt.Equal(t, report.Current.ID, types.SnapshotID(1))
		gt.Equal(t, report.Current.Totals.High, 1)

		project, err := store.GetProject(ctx, "shop")
		gt.NoError(t, err).Required()
		gt.Equal(t, project.TotalExecutions, 1)
		gt.Equal(t, project.Environment, "qa")
		gt.Equal(t, project.Version, "1.0")
		gt.Equal(t, project.Recent.High, 1)
	})

	t.Run("Second ingestion compares with the prior snapshot", func(t *testing.T) {
		store := repository.NewMemory()
		uc := usecase.NewReport(store, parser.New(), usecase.WithProjectName("shop"), usecase.WithClock(fixedClock()))
		meta := model.SnapshotMeta{Environment: "qa", ScanType: "passive", Version: "1.0"}

		_, err := uc.Ingest(ctx, &usecase.IngestRequest{
			Document: document("first.html",
				block("High", "SQL Injection", "2"),
				block("Medium", "Header Missing", "5"),
				block("Low", "Cookie", "1"),
			),
			Meta: meta,
		})
		gt.NoError(t, err).Required()

		// A snapshot for another scan type must not be picked as prior
		_, err = uc.Ingest(ctx, &usecase.IngestRequest{
			Document: document("active.html", block("High", "Remote Code Execution", "1")),
			Meta:     model.SnapshotMeta{Environment: "qa", ScanType: "active"},
		})
		gt.NoError(t, err).Required()

		meta.Version = "1.1"
		report, err := uc.Ingest(ctx, &usecase.IngestRequest{
			Document: document("second.html",
				block("High", "SQL Injection", "4"),
				block("Medium", "Header Missing", "3"),
				block("Informational", "Modern Web Application", "1"),
				block("Low", "Cookie", "1"),
			),
			Meta: meta,
		})
		gt.NoError(t, err).Required()

		gt.True(t, report.HasPrior())
		gt.Equal(t, report.Prior.ID, types.SnapshotID(1))
		gt.Equal(t, report.Current.ID, types.SnapshotID(3))
		gt.True(t, report.AlertCountMismatch())

		var classes []types.Classification
		for _, row := range report.Rows {
			classes = append(classes, row.Classification)
		}
		gt.Equal(t, classes, []types.Classification{
			types.ClassificationNew,
			types.ClassificationIncreased,
			types.ClassificationDecreased,
			types.ClassificationUnchanged,
		})

		project, err := store.GetProject(ctx, "shop")
		gt.NoError(t, err).Required()
		gt.Equal(t, project.TotalExecutions, 3)
		gt.Equal(t, project.Version, "1.1")
		gt.Equal(t, project.Recent.Informational, 1)
	})

	t.Run("Parse failure leaves the store untouched", func(t *testing.T) {
		store := &mocks.SnapshotStoreMock{}
		uc := usecase.NewReport(store, parser.New())

		_, err := uc.Ingest(ctx, &usecase.IngestRequest{
			Document: document("bad.html", block("High", "SQL Injection", "lots")),
			Meta:     model.SnapshotMeta{Environment: "qa", ScanType: "passive"},
		})
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagValidation))
		gt.A(t, store.AllocateSnapshotIDCalls()).Length(0)
		gt.A(t, store.SaveSnapshotCalls()).Length(0)
	})

	t.Run("Missing metadata is a validation error", func(t *testing.T) {
		uc := usecase.NewReport(repository.NewMemory(), parser.New())

		_, err := uc.Ingest(ctx, &usecase.IngestRequest{
			Document: document("report.html"),
			Meta:     model.SnapshotMeta{ScanType: "passive"},
		})
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagValidation))
	})

	t.Run("Store errors are returned", func(t *testing.T) {
		store := &mocks.SnapshotStoreMock{
			AllocateSnapshotIDFunc: func(ctx context.Context) (types.SnapshotID, error) {
				return 0, goerr.New("counter unavailable")
			},
		}
		uc := usecase.NewReport(store, parser.New())

		_, err := uc.Ingest(ctx, &usecase.IngestRequest{
			Document: document("report.html"),
			Meta:     model.SnapshotMeta{Environment: "qa", ScanType: "passive"},
		})
		gt.Error(t, err)
		gt.A(t, store.SaveSnapshotCalls()).Length(0)
	})

	t.Run("Prior lookup failure stores nothing", func(t *testing.T) {
		store := &mocks.SnapshotStoreMock{
			AllocateSnapshotIDFunc: func(ctx context.Context) (types.SnapshotID, error) {
				return 4, nil
			},
			MostRecentSnapshotFunc: func(ctx context.Context, environment, scanType string, excluding types.SnapshotID) (*model.Snapshot, error) {
				return nil, goerr.New("query unavailable")
			},
		}
		uc := usecase.NewReport(store, parser.New())

		_, err := uc.Ingest(ctx, &usecase.IngestRequest{
			Document: document("report.html", block("High", "SQL Injection", "2")),
			Meta:     model.SnapshotMeta{Environment: "qa", ScanType: "passive"},
		})
		gt.Error(t, err)
		gt.A(t, store.MostRecentSnapshotCalls()).Length(1)
		gt.Equal(t, store.MostRecentSnapshotCalls()[0].Excluding, types.SnapshotID(4))
		gt.A(t, store.SaveSnapshotCalls()).Length(0)
		gt.A(t, store.PutProjectCalls()).Length(0)
	})

	t.Run("Clean scan is a successful ingestion", func(t *testing.T) {
		uc := usecase.NewReport(repository.NewMemory(), parser.New())

		report, err := uc.Ingest(ctx, &usecase.IngestRequest{
			Document: parser.Document{Name: "empty.html"},
			Meta:     model.SnapshotMeta{Environment: "qa", ScanType: "passive"},
		})
		gt.NoError(t, err).Required()
		gt.A(t, report.Current.Findings).Length(0)
		gt.Equal(t, report.Current.Totals, model.AlertTotals{})
	})
}

func TestReportCompare(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemory()
	uc := usecase.NewReport(store, parser.New())
	meta := model.SnapshotMeta{Environment: "qa", ScanType: "passive"}

	first, err := uc.Ingest(ctx, &usecase.IngestRequest{Document: document("a.html", block("High", "XSS", "1")), Meta: meta})
	gt.NoError(t, err).Required()
	second, err := uc.Ingest(ctx, &usecase.IngestRequest{Document: document("b.html", block("High", "XSS", "1")), Meta: meta})
	gt.NoError(t, err).Required()

	report, err := uc.Compare(ctx, second.Current.ID)
	gt.NoError(t, err).Required()
	gt.Equal(t, report.Prior.ID, first.Current.ID)
	gt.A(t, report.Rows).Length(1)
	gt.Equal(t, report.Rows[0].Classification, types.ClassificationUnchanged)

	report, err = uc.Compare(ctx, first.Current.ID)
	gt.NoError(t, err).Required()
	gt.False(t, report.HasPrior())

	_, err = uc.Compare(ctx, 99)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrSnapshotNotFound))
}

func TestReportNotify(t *testing.T) {
	ctx := context.Background()

	t.Run("Without notifier", func(t *testing.T) {
		uc := usecase.NewReport(repository.NewMemory(), parser.New())
		gt.NoError(t, uc.Notify(ctx, &model.Report{}))
	})

	t.Run("With notifier", func(t *testing.T) {
		notifier := &mocks.NotifierMock{
			NotifyReportFunc: func(ctx context.Context, report *model.Report) error {
				return nil
			},
		}
		uc := usecase.NewReport(repository.NewMemory(), parser.New(), usecase.WithNotifier(notifier))

		report := &model.Report{}
		gt.NoError(t, uc.Notify(ctx, report))
		gt.A(t, notifier.NotifyReportCalls()).Length(1)
		gt.Equal(t, notifier.NotifyReportCalls()[0].Report, report)
	})

	t.Run("Notifier failure", func(t *testing.T) {
		notifier := &mocks.NotifierMock{
			NotifyReportFunc: func(ctx context.Context, report *model.Report) error {
				return goerr.New("slack down")
			},
		}
		uc := usecase.NewReport(repository.NewMemory(), parser.New(), usecase.WithNotifier(notifier))
		gt.Error(t, uc.Notify(ctx, &model.Report{}))
	})
}

func TestReportLookups(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewReport(repository.NewMemory(), parser.New(), usecase.WithProjectName("shop"))

	_, err := uc.GetProject(ctx)
	gt.True(t, errors.Is(err, model.ErrProjectNotFound))

	for _, env := range []string{"qa", "qa", "prod"} {
		_, err := uc.Ingest(ctx, &usecase.IngestRequest{
			Document: document(env+".html", block("Low", "Cookie", "1")),
			Meta:     model.SnapshotMeta{Environment: env, ScanType: "passive"},
		})
		gt.NoError(t, err).Required()
	}

	list, err := uc.ListSnapshots(ctx, "qa", "", 0)
	gt.NoError(t, err).Required()
	gt.A(t, list).Length(2)
	gt.Equal(t, list[0].ID, types.SnapshotID(2))

	snapshot, err := uc.GetSnapshot(ctx, 3)
	gt.NoError(t, err).Required()
	gt.Equal(t, snapshot.Environment, "prod")

	project, err := uc.GetProject(ctx)
	gt.NoError(t, err).Required()
	gt.Equal(t, project.TotalExecutions, 3)
	gt.Equal(t, project.Environment, "prod")
}
