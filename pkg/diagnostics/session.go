package diagnostics

import (
	"time"

	"github.com/google/uuid"
)

// RepairCategory classifies a repair action.
type RepairCategory string

const (
	RepairConfiguration RepairCategory = "configuration"
	RepairContent       RepairCategory = "content"
	RepairWorkflow      RepairCategory = "workflow"
	RepairBranch        RepairCategory = "branch"
)

// RepositoryStatus describes the configuration and Pages state of the target
// repository. Populated by future API-backed checkers; the core only carries it.
type RepositoryStatus struct {
	Name          string            `json:"name"`
	Visibility    string            `json:"visibility"`
	DefaultBranch string            `json:"default_branch"`
	PagesEnabled  bool              `json:"pages_enabled"`
	PagesSource   map[string]string `json:"pages_source"`
	CustomDomain  string            `json:"custom_domain,omitempty"`
	HTTPSEnforced bool              `json:"https_enforced"`
	Metadata      map[string]any    `json:"metadata,omitempty"`
}

// Test is an individual probe within a test suite.
type Test struct {
	Name           string         `json:"name"`
	URL            string         `json:"url"`
	ExpectedStatus int            `json:"expected_status"`
	ActualStatus   int            `json:"actual_status,omitempty"`
	ResponseTime   float64        `json:"response_time,omitempty"`
	Error          string         `json:"error,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// TestSuite groups related tests executed together.
type TestSuite struct {
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Tests         []Test         `json:"tests"`
	ExecutionTime float64        `json:"execution_time"`
	PassRate      float64        `json:"pass_rate"`
	Status        Status         `json:"status"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// CalculatePassRate returns the percentage of tests whose actual status
// matched their expectation.
func (s *TestSuite) CalculatePassRate() float64 {
	if len(s.Tests) == 0 {
		return 0
	}
	passed := 0
	for _, t := range s.Tests {
		if t.ActualStatus == t.ExpectedStatus {
			passed++
		}
	}
	return float64(passed) / float64(len(s.Tests)) * 100
}

// RepairAction describes an automated or manual remedy for a detected issue.
type RepairAction struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Category     RepairCategory `json:"category"`
	Severity     Severity       `json:"severity"`
	Automated    bool           `json:"automated"`
	Command      string         `json:"command,omitempty"`
	Instructions []string       `json:"instructions,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// Session is one complete diagnostics run. It is created by the orchestrator
// at session start and finalized when the run ends; components never see it.
type Session struct {
	ID               string            `json:"session_id"`
	StartTime        time.Time         `json:"start_time"`
	EndTime          *time.Time        `json:"end_time"`
	RepositoryStatus *RepositoryStatus `json:"repository_status,omitempty"`
	Results          []Result          `json:"diagnostic_results"`
	TestSuites       []TestSuite       `json:"test_suites"`
	RepairActions    []RepairAction    `json:"repair_actions"`
	Summary          string            `json:"summary,omitempty"`
	Metadata         map[string]any    `json:"metadata"`
}

// NewSession creates a session with a fresh unique identifier and the current
// time, recording the target repository path in its metadata.
func NewSession(repositoryPath string) *Session {
	return &Session{
		ID:            uuid.NewString(),
		StartTime:     time.Now(),
		Results:       []Result{},
		TestSuites:    []TestSuite{},
		RepairActions: []RepairAction{},
		Metadata:      map[string]any{"repository_path": repositoryPath},
	}
}

// AddResult appends a diagnostic result to the session.
func (s *Session) AddResult(r Result) {
	s.Results = append(s.Results, r)
}

// AddTestSuite appends a test suite to the session.
func (s *Session) AddTestSuite(suite TestSuite) {
	s.TestSuites = append(s.TestSuites, suite)
}

// AddRepairAction appends a repair action to the session.
func (s *Session) AddRepairAction(action RepairAction) {
	s.RepairActions = append(s.RepairActions, action)
}

// CriticalIssues returns all critical-severity results.
func (s *Session) CriticalIssues() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Severity == SeverityCritical {
			out = append(out, r)
		}
	}
	return out
}

// FailedChecks returns all fail-status results.
func (s *Session) FailedChecks() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Status == StatusFail {
			out = append(out, r)
		}
	}
	return out
}

// Finalize sets the session end time. Finalizing twice is a no-op.
func (s *Session) Finalize() {
	if s.EndTime == nil {
		now := time.Now()
		s.EndTime = &now
	}
}
