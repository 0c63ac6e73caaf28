package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
)

// Snapshot is one parsed report bound to an identity. It is immutable once saved.
type Snapshot struct {
	ID          types.SnapshotID `json:"id" yaml:"id"`
	Timestamp   time.Time        `json:"timestamp" yaml:"timestamp"`
	Environment string           `json:"environment" yaml:"environment"`
	ScanType    string           `json:"scan_type" yaml:"scan_type"`
	Version     string           `json:"version" yaml:"version"`
	ReportLink  string           `json:"report_link" yaml:"report_link"`
	Findings    []Finding        `json:"findings" yaml:"findings"`
	Totals      AlertTotals      `json:"totals" yaml:"totals"`
}

// SnapshotMeta is the descriptive metadata supplied with a report
type SnapshotMeta struct {
	Environment string
	ScanType    string
	Version     string
	ReportLink  string
}

// NewSnapshot creates a Snapshot from parsed findings. The findings slice is
// copied so later changes by the caller do not leak into the snapshot.
func NewSnapshot(id types.SnapshotID, meta SnapshotMeta, findings []Finding, now time.Time) (*Snapshot, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid snapshot ID", goerr.T(ErrTagValidation))
	}
	if meta.Environment == "" {
		return nil, goerr.New("environment is required", goerr.T(ErrTagValidation))
	}
	if meta.ScanType == "" {
		return nil, goerr.New("scan type is required", goerr.T(ErrTagValidation))
	}

	copied := make([]Finding, len(findings))
	copy(copied, findings)
	for i, f := range copied {
		if err := f.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid finding in snapshot",
				goerr.V("index", i),
				goerr.T(ErrTagValidation))
		}
	}

	return &Snapshot{
		ID:          id,
		Timestamp:   now,
		Environment: meta.Environment,
		ScanType:    meta.ScanType,
		Version:     meta.Version,
		ReportLink:  meta.ReportLink,
		Findings:    copied,
		Totals:      CountAlerts(copied),
	}, nil
}

// Clone returns a deep copy of the snapshot
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.Findings = make([]Finding, len(s.Findings))
	copy(c.Findings, s.Findings)
	return &c
}
