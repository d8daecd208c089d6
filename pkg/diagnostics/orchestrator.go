package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pagesmedic/pagesmedic/pkg/logger"
)

var orchestratorLog = logger.New("diagnostics:orchestrator")

// ErrNoActiveSession is returned by RunDiagnostics when no session has been
// started.
var ErrNoActiveSession = errors.New("no active session: call StartSession first")

// SessionSummary is a read-only projection over the current session.
type SessionSummary struct {
	SessionID          string     `json:"session_id,omitempty"`
	StartTime          *time.Time `json:"start_time,omitempty"`
	EndTime            *time.Time `json:"end_time,omitempty"`
	TotalResults       int        `json:"total_results"`
	CriticalIssues     int        `json:"critical_issues"`
	FailedChecks       int        `json:"failed_checks"`
	ComponentsExecuted int        `json:"components_executed"`
	Status             Status     `json:"status"`
}

// Orchestrator sequences registered components and aggregates their results
// into a single session. It owns the session exclusively; components only
// return results to it and never see the session itself.
type Orchestrator struct {
	log        *logger.Logger
	executions []*Execution
	session    *Session
}

// NewOrchestrator creates an orchestrator with an empty component registry.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{log: orchestratorLog}
}

// Register appends a component to the registry. Registration order is
// execution order; there is no dependency resolution between components.
func (o *Orchestrator) Register(component Component) {
	o.executions = append(o.executions, NewExecution(component, nil))
	o.log.Printf("registered component: %s", component.Name())
}

// StartSession creates a new diagnostic session for the given repository,
// replacing any prior session. Only one session is active per orchestrator.
func (o *Orchestrator) StartSession(repositoryPath string) *Session {
	o.session = NewSession(repositoryPath)
	o.log.Printf("started diagnostic session: %s", o.session.ID)
	return o.session
}

// RunDiagnostics executes every registered component in order, appending each
// returned result to the session. Execute is designed not to fail, but the
// orchestrator still defends against it: a panic escaping a component's
// execution is converted into a synthetic FAIL/HIGH result naming the
// component, and the run continues. The session end time is always set.
func (o *Orchestrator) RunDiagnostics(ctx context.Context, opts Options) (*Session, error) {
	if o.session == nil {
		return nil, ErrNoActiveSession
	}

	o.log.Printf("running diagnostics with %d components", len(o.executions))

	for _, exec := range o.executions {
		for _, result := range o.safeExecute(ctx, exec, opts) {
			o.session.AddResult(result)
		}
	}

	o.session.Finalize()
	o.log.Printf("diagnostics completed, session: %s", o.session.ID)
	return o.session, nil
}

// safeExecute runs one component execution, containing any panic that escapes
// the execution wrapper itself.
func (o *Orchestrator) safeExecute(ctx context.Context, exec *Execution, opts Options) (results []Result) {
	name := exec.Component().Name()

	defer func() {
		if rec := recover(); rec != nil {
			o.log.Printf("component %s escaped its execution wrapper: %v", name, rec)
			results = []Result{
				NewResult(name+"_execution", StatusFail,
					fmt.Sprintf("Component execution failed: %v", rec)).
					WithDetails(fmt.Sprintf("Unrecovered fault in %s", name)).
					WithSeverity(SeverityHigh).
					WithMeta("failure_type", fmt.Sprintf("%T", rec)),
			}
		}
	}()

	o.log.Printf("executing component: %s", name)
	results = exec.Execute(ctx, opts)
	o.log.Printf("component %s contributed %d results", name, len(results))
	return results
}

// SessionSummary summarizes the current session, or reports that none is
// active.
func (o *Orchestrator) SessionSummary() SessionSummary {
	if o.session == nil {
		return SessionSummary{Status: StatusNoActiveSession}
	}

	summary := SessionSummary{
		SessionID:          o.session.ID,
		StartTime:          &o.session.StartTime,
		EndTime:            o.session.EndTime,
		TotalResults:       len(o.session.Results),
		CriticalIssues:     len(o.session.CriticalIssues()),
		FailedChecks:       len(o.session.FailedChecks()),
		ComponentsExecuted: len(o.executions),
		Status:             StatusRunning,
	}
	if o.session.EndTime != nil {
		summary.Status = StatusCompleted
	}
	return summary
}
