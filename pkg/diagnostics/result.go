// Package diagnostics provides the diagnostic execution framework: the result
// model, the component contract with its execution wrapper, and the session
// orchestrator that aggregates results across components.
package diagnostics

import (
	"time"
)

// Status is the outcome of a diagnostic check. The pass/fail/warning values
// describe individual check results; the remaining values describe coarse
// execution state and appear only in summaries, never on a Result.
type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusWarning Status = "warning"

	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"

	// StatusNotExecuted marks an execution summary for a component that has
	// never run; StatusNoActiveSession marks a session summary requested
	// before any session was started.
	StatusNotExecuted     Status = "not_executed"
	StatusNoActiveSession Status = "no_active_session"
)

// Severity is the impact level of a finding. It is assigned explicitly by each
// check based on impact, never derived from the status.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank returns the position of the severity in the low..critical ordering,
// for sorting and threshold comparisons. Unknown severities rank lowest.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// Result is the outcome of a single diagnostic check. Results are value types:
// once created they are appended to a session and never mutated or removed.
// The check name is unique within a run and serves as the lookup key.
type Result struct {
	Timestamp    time.Time      `json:"timestamp"`
	CheckName    string         `json:"check_name"`
	Status       Status         `json:"status"`
	Message      string         `json:"message"`
	Details      string         `json:"details"`
	SuggestedFix string         `json:"suggested_fix,omitempty"`
	Severity     Severity       `json:"severity"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// NewResult creates a Result for the given check with the current timestamp
// and a default severity of medium.
func NewResult(checkName string, status Status, message string) Result {
	return Result{
		Timestamp: time.Now(),
		CheckName: checkName,
		Status:    status,
		Message:   message,
		Severity:  SeverityMedium,
	}
}

// WithDetails returns a copy of the result with long-form details set.
func (r Result) WithDetails(details string) Result {
	r.Details = details
	return r
}

// WithFix returns a copy of the result with a suggested remedy set.
func (r Result) WithFix(fix string) Result {
	r.SuggestedFix = fix
	return r
}

// WithSeverity returns a copy of the result with the severity set.
func (r Result) WithSeverity(severity Severity) Result {
	r.Severity = severity
	return r
}

// WithMeta returns a copy of the result with a metadata entry added.
// The metadata map is copied so shared results stay independent.
func (r Result) WithMeta(key string, value any) Result {
	meta := make(map[string]any, len(r.Metadata)+1)
	for k, v := range r.Metadata {
		meta[k] = v
	}
	meta[key] = value
	r.Metadata = meta
	return r
}
