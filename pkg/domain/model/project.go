package model

import "time"

// Project is the rolling summary of the snapshots recorded for one scanned application
type Project struct {
	Name            string      `json:"name" yaml:"name"`
	LastUpdated     time.Time   `json:"last_updated" yaml:"last_updated"`
	TotalExecutions int         `json:"total_executions" yaml:"total_executions"`
	Environment     string      `json:"environment" yaml:"environment"`
	ScanType        string      `json:"scan_type" yaml:"scan_type"`
	Version         string      `json:"version" yaml:"version"`
	Recent          AlertTotals `json:"recent" yaml:"recent"`
}

// Record updates the summary with the latest snapshot
func (p *Project) Record(s *Snapshot, totalExecutions int) {
	p.LastUpdated = s.Timestamp
	p.TotalExecutions = totalExecutions
	p.Environment = s.Environment
	p.ScanType = s.ScanType
	p.Version = s.Version
	p.Recent = s.Totals
}
