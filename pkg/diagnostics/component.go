package diagnostics

import (
	"context"
	"fmt"
	"time"

	"github.com/pagesmedic/pagesmedic/pkg/logger"
	"github.com/pagesmedic/pagesmedic/pkg/timeutil"
)

// Options carries the per-run settings recognized by components. Fields are
// typed and documented here rather than propagated as an open-ended map.
type Options struct {
	// RepositoryPath is the root of the repository under diagnosis.
	RepositoryPath string

	// Verbose requests additional detail in component output.
	Verbose bool

	// DryRun asks repair-capable components to simulate without changing files.
	DryRun bool
}

// Component is the unit of diagnostic work. Implementations perform their
// inspection in RunDiagnostics and return results; expected failure modes
// (missing files, parse errors, rule violations) must be folded into FAIL
// results rather than returned as errors. The returned error is reserved for
// faults the component cannot attribute to a specific check.
type Component interface {
	Name() string
	RunDiagnostics(ctx context.Context, opts Options) ([]Result, error)
}

// ExecutionSummary is a read-only projection over the last Execute call.
type ExecutionSummary struct {
	ComponentName string     `json:"component_name"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	ExecutionTime float64    `json:"execution_time,omitempty"`
	TotalResults  int        `json:"total_results"`
	PassCount     int        `json:"pass_count"`
	FailCount     int        `json:"fail_count"`
	WarningCount  int        `json:"warning_count"`
	Status        Status     `json:"status"`
}

// Execution wraps a Component with timing, logging, and failure isolation.
// It is the uniform execution envelope: Execute never propagates a failure to
// its caller, and calling it again resets the previous results.
type Execution struct {
	component Component
	log       *logger.Logger
	results   []Result
	startTime time.Time
	endTime   time.Time
	executed  bool
}

// NewExecution wraps a component for execution. The logger identifies the
// component in debug output; pass nil to use a logger derived from its name.
func NewExecution(component Component, log *logger.Logger) *Execution {
	if log == nil {
		log = logger.New("diagnostics:" + component.Name())
	}
	return &Execution{component: component, log: log}
}

// Component returns the wrapped component.
func (e *Execution) Component() Component {
	return e.component
}

// Results returns the results of the last Execute call.
func (e *Execution) Results() []Result {
	return e.results
}

// Execute runs the component's diagnostics with timing and failure isolation.
// A returned error or a recovered panic is converted into a single synthetic
// FAIL/HIGH result carrying the failure's type name; partial results from the
// failed call are discarded. The end timestamp is always recorded.
func (e *Execution) Execute(ctx context.Context, opts Options) (results []Result) {
	e.startTime = time.Now()
	e.endTime = time.Time{}
	e.results = nil
	e.executed = true

	e.log.Printf("starting diagnostic component: %s", e.component.Name())

	defer func() {
		if rec := recover(); rec != nil {
			e.results = []Result{e.failureResult(fmt.Sprintf("panic: %v", rec), fmt.Sprintf("%T", rec))}
			results = e.results
		}
		e.endTime = time.Now()
		e.log.Printf("component %s completed in %s with %d results",
			e.component.Name(), timeutil.FormatDuration(e.endTime.Sub(e.startTime)), len(e.results))
	}()

	res, err := e.component.RunDiagnostics(ctx, opts)
	if err != nil {
		e.log.Printf("component %s failed: %v", e.component.Name(), err)
		e.results = []Result{e.failureResult(err.Error(), fmt.Sprintf("%T", err))}
	} else {
		e.results = res
	}

	return e.results
}

// failureResult synthesizes the single FAIL result that stands in for a
// component execution failure.
func (e *Execution) failureResult(message, failureType string) Result {
	return NewResult(e.component.Name()+"_execution", StatusFail,
		fmt.Sprintf("Component execution failed: %s", message)).
		WithDetails(fmt.Sprintf("Failure occurred while running %s", e.component.Name())).
		WithSeverity(SeverityHigh).
		WithMeta("failure_type", failureType)
}

// Summary returns counts and timing for the last Execute call, or a
// not-executed marker if Execute was never called.
func (e *Execution) Summary() ExecutionSummary {
	if !e.executed {
		return ExecutionSummary{ComponentName: e.component.Name(), Status: StatusNotExecuted}
	}

	summary := ExecutionSummary{
		ComponentName: e.component.Name(),
		StartTime:     &e.startTime,
		TotalResults:  len(e.results),
		Status:        StatusRunning,
	}
	if !e.endTime.IsZero() {
		end := e.endTime
		summary.EndTime = &end
		summary.ExecutionTime = e.endTime.Sub(e.startTime).Seconds()
		summary.Status = StatusCompleted
	}

	for _, r := range e.results {
		switch r.Status {
		case StatusPass:
			summary.PassCount++
		case StatusFail:
			summary.FailCount++
		case StatusWarning:
			summary.WarningCount++
		}
	}
	return summary
}
