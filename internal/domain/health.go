package domain

import "time"

// OverallStatus is the single health signal derived from findings.
// Derived, not stored; recomputed from the current outcome set.
type OverallStatus string

const (
	StatusOK   OverallStatus = "ok"
	StatusWarn OverallStatus = "warn"
	StatusFail OverallStatus = "fail"
)

// Severity orders statuses for reduction: fail > warn > ok.
func (s OverallStatus) Severity() int {
	switch s {
	case StatusFail:
		return 2
	case StatusWarn:
		return 1
	}
	return 0
}

// Worse returns the more severe of the two statuses.
func (s OverallStatus) Worse(other OverallStatus) OverallStatus {
	if other.Severity() > s.Severity() {
		return other
	}
	return s
}

// DiagnosticSnapshot is one immutable aggregated view of everything the
// assistant currently knows: local addressing, recent probe outcomes
// oldest-first, the last discovery result, and the reduced health signal.
// It is assembled on demand for export and never kept alive afterwards.
type DiagnosticSnapshot struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Version     string               `json:"version"`
	Hostname    string               `json:"hostname,omitempty"`
	Status      OverallStatus        `json:"status"`
	Findings    []string             `json:"findings"`
	LocalInfo   *LocalNetInfo        `json:"local_info,omitempty"`
	Outcomes    []ProbeOutcome       `json:"outcomes"`
	Discovery   *LinkDiscoveryResult `json:"discovery,omitempty"`
}
