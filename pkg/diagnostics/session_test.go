package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	a := NewSession("/repo/a")
	b := NewSession("/repo/b")

	require.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID, "session identifiers must be unique")
	assert.Nil(t, a.EndTime, "end time must be absent until finalized")
	assert.Equal(t, "/repo/a", a.Metadata["repository_path"])
}

func TestSessionResultFilters(t *testing.T) {
	s := NewSession(".")
	s.AddResult(NewResult("a", StatusPass, "ok").WithSeverity(SeverityLow))
	s.AddResult(NewResult("b", StatusFail, "broken").WithSeverity(SeverityCritical))
	s.AddResult(NewResult("c", StatusFail, "broken too").WithSeverity(SeverityHigh))
	s.AddResult(NewResult("d", StatusWarning, "meh").WithSeverity(SeverityMedium))

	assert.Len(t, s.CriticalIssues(), 1)
	assert.Len(t, s.FailedChecks(), 2)
	assert.Len(t, s.Results, 4)
}

func TestSessionFinalizeIdempotent(t *testing.T) {
	s := NewSession(".")
	s.Finalize()
	require.NotNil(t, s.EndTime)

	first := *s.EndTime
	s.Finalize()
	assert.Equal(t, first, *s.EndTime, "second Finalize must not move the end time")
}

func TestTestSuitePassRate(t *testing.T) {
	suite := TestSuite{
		Name: "http",
		Tests: []Test{
			{Name: "index", ExpectedStatus: 200, ActualStatus: 200},
			{Name: "missing", ExpectedStatus: 200, ActualStatus: 404},
		},
	}
	assert.InDelta(t, 50.0, suite.CalculatePassRate(), 0.001)

	empty := TestSuite{Name: "empty"}
	assert.Zero(t, empty.CalculatePassRate())
}
