package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
)

func TestFindingValidate(t *testing.T) {
	t.Run("valid finding", func(t *testing.T) {
		f := model.Finding{Severity: types.SeverityMedium, FindingType: "Header Missing", AffectedCount: 2}
		gt.NoError(t, f.Validate())
	})

	t.Run("zero count is valid", func(t *testing.T) {
		f := model.Finding{Severity: types.SeverityLow, FindingType: "Cookie", AffectedCount: 0}
		gt.NoError(t, f.Validate())
	})

	t.Run("negative count", func(t *testing.T) {
		f := model.Finding{Severity: types.SeverityLow, FindingType: "Cookie", AffectedCount: -1}
		err := f.Validate()
		gt.Error(t, err)
		gt.B(t, goerr.HasTag(err, model.ErrTagValidation)).True()
	})

	t.Run("unknown severity", func(t *testing.T) {
		f := model.Finding{Severity: "Critical", FindingType: "Cookie"}
		err := f.Validate()
		gt.Error(t, err)
		gt.B(t, goerr.HasTag(err, model.ErrTagValidation)).True()
	})

	t.Run("empty finding type", func(t *testing.T) {
		f := model.Finding{Severity: types.SeverityHigh}
		gt.Error(t, f.Validate())
	})
}

func TestAlertKey(t *testing.T) {
	a := model.Finding{Severity: types.SeverityHigh, FindingType: "A | B"}.Key()
	b := model.AlertKey{Severity: types.Severity("High | A"), FindingType: "B"}

	// Same display form, distinct keys
	gt.Equal(t, a.String(), b.String())
	gt.NotEqual(t, a, b)
	gt.Equal(t, a.String(), "High | A | B")
}

func TestCountAlerts(t *testing.T) {
	totals := model.CountAlerts([]model.Finding{
		{Severity: types.SeverityHigh, FindingType: "a", AffectedCount: 10},
		{Severity: types.SeverityHigh, FindingType: "b", AffectedCount: 1},
		{Severity: types.SeverityMedium, FindingType: "c", AffectedCount: 3},
		{Severity: types.SeverityFalsePositive, FindingType: "d", AffectedCount: 1},
	})

	gt.Equal(t, totals.High, 2)
	gt.Equal(t, totals.Medium, 1)
	gt.Equal(t, totals.Low, 0)
	gt.Equal(t, totals.Informational, 0)
	gt.Equal(t, totals.FalsePositive, 1)
	gt.Equal(t, totals.Get(types.SeverityHigh), 2)
	gt.Equal(t, totals.Get(types.Severity("Critical")), 0)
}

func TestNewSnapshot(t *testing.T) {
	now := time.Date(2024, 5, 6, 5, 5, 5, 0, time.UTC)
	meta := model.SnapshotMeta{
		Environment: "qa03",
		ScanType:    "passive",
		Version:     "v1.2.0",
		ReportLink:  "http://reports.example.com/zap report.html",
	}

	t.Run("valid snapshot", func(t *testing.T) {
		findings := []model.Finding{
			{Severity: types.SeverityHigh, FindingType: "SQL Injection", AffectedCount: 3},
			{Severity: types.SeverityLow, FindingType: "Cookie No HttpOnly Flag", AffectedCount: 7},
		}
		snap, err := model.NewSnapshot(5, meta, findings, now)
		gt.NoError(t, err).Required()
		gt.Equal(t, snap.ID, types.SnapshotID(5))
		gt.Equal(t, snap.Environment, "qa03")
		gt.Equal(t, snap.ScanType, "passive")
		gt.Equal(t, snap.Timestamp, now)
		gt.A(t, snap.Findings).Length(2)
		gt.Equal(t, snap.Totals.High, 1)
		gt.Equal(t, snap.Totals.Low, 1)
		gt.Equal(t, snap.Version, meta.Version)
		gt.Equal(t, snap.ReportLink, meta.ReportLink)

		// Caller mutation does not leak into the snapshot
		findings[0].AffectedCount = 99
		gt.Equal(t, snap.Findings[0].AffectedCount, 3)
	})

	t.Run("empty findings is a clean scan", func(t *testing.T) {
		snap, err := model.NewSnapshot(1, meta, nil, now)
		gt.NoError(t, err).Required()
		gt.A(t, snap.Findings).Length(0)
		gt.Equal(t, snap.Totals, model.AlertTotals{})
	})

	t.Run("invalid ID", func(t *testing.T) {
		_, err := model.NewSnapshot(0, meta, nil, now)
		gt.Error(t, err)
		gt.B(t, goerr.HasTag(err, model.ErrTagValidation)).True()
	})

	t.Run("missing environment", func(t *testing.T) {
		_, err := model.NewSnapshot(1, model.SnapshotMeta{ScanType: "passive"}, nil, now)
		gt.Error(t, err)
	})

	t.Run("invalid finding", func(t *testing.T) {
		_, err := model.NewSnapshot(1, meta, []model.Finding{
			{Severity: types.SeverityHigh, FindingType: "x", AffectedCount: -2},
		}, now)
		gt.Error(t, err)
		gt.B(t, goerr.HasTag(err, model.ErrTagValidation)).True()
	})

	t.Run("clone is deep", func(t *testing.T) {
		snap, err := model.NewSnapshot(2, meta, []model.Finding{
			{Severity: types.SeverityHigh, FindingType: "x", AffectedCount: 1},
		}, now)
		gt.NoError(t, err).Required()
		c := snap.Clone()
		c.Findings[0].AffectedCount = 50
		gt.Equal(t, snap.Findings[0].AffectedCount, 1)
	})
}

func TestProjectRecord(t *testing.T) {
	snap, err := model.NewSnapshot(3, model.SnapshotMeta{
		Environment: "prod",
		ScanType:    "active",
		Version:     "2.0",
	}, []model.Finding{
		{Severity: types.SeverityMedium, FindingType: "CSP Header Not Set", AffectedCount: 4},
	}, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	gt.NoError(t, err).Required()

	p := &model.Project{Name: "shop"}
	p.Record(snap, 3)
	gt.Equal(t, p.Name, "shop")
	gt.Equal(t, p.TotalExecutions, 3)
	gt.Equal(t, p.Environment, "prod")
	gt.Equal(t, p.ScanType, "active")
	gt.Equal(t, p.Version, "2.0")
	gt.Equal(t, p.Recent.Medium, 1)
	gt.Equal(t, p.LastUpdated, snap.Timestamp)
}

func TestComparisonRowDelta(t *testing.T) {
	up := model.ComparisonRow{CurrentCount: 5, PriorCount: 3}
	down := model.ComparisonRow{CurrentCount: 3, PriorCount: 5}
	same := model.ComparisonRow{CurrentCount: 4, PriorCount: 4}
	gt.Equal(t, up.Delta(), 2)
	gt.Equal(t, down.Delta(), 2)
	gt.Equal(t, same.Delta(), 0)
}
