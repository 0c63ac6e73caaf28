package model

// Report is the outcome of ingesting one snapshot: the snapshot itself, the
// snapshot it was compared to and the classified rows.
type Report struct {
	Current *Snapshot       `json:"current" yaml:"current"`
	Prior   *Snapshot       `json:"prior,omitempty" yaml:"prior,omitempty"`
	Rows    []ComparisonRow `json:"rows" yaml:"rows"`
}

// HasPrior reports whether a prior snapshot was available for comparison
func (r *Report) HasPrior() bool {
	return r.Prior != nil
}

// AlertCountMismatch reports whether both snapshots hold a different number of findings
func (r *Report) AlertCountMismatch() bool {
	if r.Current == nil || r.Prior == nil {
		return false
	}
	return len(r.Current.Findings) != len(r.Prior.Findings)
}
