package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
)

// Finding is one discovered issue class within a single report
type Finding struct {
	Severity      types.Severity `json:"severity" yaml:"severity"`
	FindingType   string         `json:"finding_type" yaml:"finding_type"`
	AffectedCount int            `json:"affected_count" yaml:"affected_count"`
}

// Key returns the composite identity of the finding
func (f Finding) Key() AlertKey {
	return AlertKey{Severity: f.Severity, FindingType: f.FindingType}
}

// Validate checks the finding fields
func (f Finding) Validate() error {
	if !f.Severity.IsValid() {
		return goerr.New("invalid severity",
			goerr.V("severity", f.Severity),
			goerr.V("finding_type", f.FindingType),
			goerr.T(ErrTagValidation))
	}
	if f.FindingType == "" {
		return goerr.New("finding type is required",
			goerr.V("severity", f.Severity),
			goerr.T(ErrTagValidation))
	}
	if f.AffectedCount < 0 {
		return goerr.New("affected count must not be negative",
			goerr.V("severity", f.Severity),
			goerr.V("finding_type", f.FindingType),
			goerr.V("affected_count", f.AffectedCount),
			goerr.T(ErrTagValidation))
	}
	return nil
}

// AlertKey identifies a finding across snapshots. It is a true pair key, so a
// finding type containing the display separator cannot collide with another.
type AlertKey struct {
	Severity    types.Severity
	FindingType string
}

// String renders the key in the "Severity | FindingType" display form. The form
// is ambiguous when a finding type contains " | " and must not be parsed back.
func (k AlertKey) String() string {
	return k.Severity.String() + " | " + k.FindingType
}

// AlertTotals holds the number of distinct findings per severity
type AlertTotals struct {
	High          int `json:"high" yaml:"high"`
	Medium        int `json:"medium" yaml:"medium"`
	Low           int `json:"low" yaml:"low"`
	Informational int `json:"informational" yaml:"informational"`
	FalsePositive int `json:"false_positive" yaml:"false_positive"`
}

// CountAlerts tallies findings per severity. Findings with unknown severities are ignored.
func CountAlerts(findings []Finding) AlertTotals {
	var totals AlertTotals
	for _, f := range findings {
		switch f.Severity {
		case types.SeverityHigh:
			totals.High++
		case types.SeverityMedium:
			totals.Medium++
		case types.SeverityLow:
			totals.Low++
		case types.SeverityInformational:
			totals.Informational++
		case types.SeverityFalsePositive:
			totals.FalsePositive++
		}
	}
	return totals
}

// Get returns the total for one severity
func (t AlertTotals) Get(sev types.Severity) int {
	switch sev {
	case types.SeverityHigh:
		return t.High
	case types.SeverityMedium:
		return t.Medium
	case types.SeverityLow:
		return t.Low
	case types.SeverityInformational:
		return t.Informational
	case types.SeverityFalsePositive:
		return t.FalsePositive
	default:
		return 0
	}
}
