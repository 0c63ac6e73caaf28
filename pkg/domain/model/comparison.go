package model

import "github.com/secmon-lab/zaphist/pkg/domain/types"

// ComparisonRow is one line of a differential report between two snapshots
type ComparisonRow struct {
	Severity       types.Severity       `json:"severity" yaml:"severity"`
	FindingType    string               `json:"finding_type" yaml:"finding_type"`
	CurrentCount   int                  `json:"current_count" yaml:"current_count"`
	PriorCount     int                  `json:"prior_count" yaml:"prior_count"`
	Classification types.Classification `json:"classification" yaml:"classification"`
}

// Key returns the composite identity of the row
func (r ComparisonRow) Key() AlertKey {
	return AlertKey{Severity: r.Severity, FindingType: r.FindingType}
}

// Delta returns the absolute difference between the two counts
func (r ComparisonRow) Delta() int {
	if r.CurrentCount > r.PriorCount {
		return r.CurrentCount - r.PriorCount
	}
	return r.PriorCount - r.CurrentCount
}
