package diagnostics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubComponent is a configurable test double for the Component contract.
type stubComponent struct {
	name    string
	results []Result
	err     error
	panics  bool
	calls   int
}

func (c *stubComponent) Name() string { return c.name }

func (c *stubComponent) RunDiagnostics(_ context.Context, _ Options) ([]Result, error) {
	c.calls++
	if c.panics {
		panic("checker blew up")
	}
	return c.results, c.err
}

func TestExecuteReturnsComponentResults(t *testing.T) {
	comp := &stubComponent{
		name: "stub",
		results: []Result{
			NewResult("first_check", StatusPass, "ok"),
			NewResult("second_check", StatusFail, "broken"),
		},
	}
	exec := NewExecution(comp, nil)

	results := exec.Execute(context.Background(), Options{})

	require.Len(t, results, 2)
	assert.Equal(t, "first_check", results[0].CheckName)
	assert.Equal(t, results, exec.Results())
}

func TestExecuteConvertsErrorToFailResult(t *testing.T) {
	comp := &stubComponent{
		name:    "stub",
		results: []Result{NewResult("partial", StatusPass, "should be discarded")},
		err:     errors.New("disk exploded"),
	}
	exec := NewExecution(comp, nil)

	results := exec.Execute(context.Background(), Options{})

	require.Len(t, results, 1, "partial results must be discarded on failure")
	r := results[0]
	assert.Equal(t, "stub_execution", r.CheckName)
	assert.Equal(t, StatusFail, r.Status)
	assert.Equal(t, SeverityHigh, r.Severity)
	assert.Contains(t, r.Message, "disk exploded")
	assert.Contains(t, r.Metadata["failure_type"], "errors")
}

func TestExecuteContainsPanic(t *testing.T) {
	comp := &stubComponent{name: "stub", panics: true}
	exec := NewExecution(comp, nil)

	var results []Result
	require.NotPanics(t, func() {
		results = exec.Execute(context.Background(), Options{})
	})

	require.Len(t, results, 1)
	assert.Equal(t, StatusFail, results[0].Status)
	assert.Equal(t, SeverityHigh, results[0].Severity)
	assert.Contains(t, results[0].Message, "checker blew up")
}

func TestExecuteResetsPriorResults(t *testing.T) {
	comp := &stubComponent{
		name:    "stub",
		results: []Result{NewResult("only_check", StatusPass, "ok")},
	}
	exec := NewExecution(comp, nil)

	exec.Execute(context.Background(), Options{})
	second := exec.Execute(context.Background(), Options{})

	assert.Equal(t, 2, comp.calls)
	assert.Len(t, second, 1, "re-execution must reset, not accumulate")
}

func TestSummaryBeforeExecution(t *testing.T) {
	exec := NewExecution(&stubComponent{name: "stub"}, nil)

	summary := exec.Summary()

	assert.Equal(t, StatusNotExecuted, summary.Status)
	assert.Equal(t, "stub", summary.ComponentName)
	assert.Nil(t, summary.StartTime)
}

func TestSummaryAfterExecution(t *testing.T) {
	comp := &stubComponent{
		name: "stub",
		results: []Result{
			NewResult("a", StatusPass, "ok"),
			NewResult("b", StatusFail, "broken"),
			NewResult("c", StatusWarning, "meh"),
			NewResult("d", StatusPass, "ok"),
		},
	}
	exec := NewExecution(comp, nil)
	exec.Execute(context.Background(), Options{})

	summary := exec.Summary()

	assert.Equal(t, StatusCompleted, summary.Status)
	assert.Equal(t, 4, summary.TotalResults)
	assert.Equal(t, 2, summary.PassCount)
	assert.Equal(t, 1, summary.FailCount)
	assert.Equal(t, 1, summary.WarningCount)
	require.NotNil(t, summary.EndTime)
	assert.GreaterOrEqual(t, summary.ExecutionTime, 0.0)
}
