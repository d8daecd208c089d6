package diagnostics

import (
	"testing"
)

func TestSeverityRank(t *testing.T) {
	ordered := []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() >= ordered[i].Rank() {
			t.Errorf("expected %s to rank below %s", ordered[i-1], ordered[i])
		}
	}
	if Severity("unknown").Rank() >= SeverityLow.Rank() {
		t.Error("unknown severity should rank below low")
	}
}

func TestNewResultDefaults(t *testing.T) {
	r := NewResult("example_check", StatusPass, "ok")

	if r.CheckName != "example_check" {
		t.Errorf("check name = %q", r.CheckName)
	}
	if r.Severity != SeverityMedium {
		t.Errorf("default severity = %q, want medium", r.Severity)
	}
	if r.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestResultWithMetaCopies(t *testing.T) {
	base := NewResult("example_check", StatusPass, "ok").WithMeta("file", "a.yml")
	derived := base.WithMeta("job", "deploy")

	if _, ok := base.Metadata["job"]; ok {
		t.Error("WithMeta mutated the original result's metadata")
	}
	if derived.Metadata["file"] != "a.yml" || derived.Metadata["job"] != "deploy" {
		t.Errorf("derived metadata incomplete: %v", derived.Metadata)
	}
}
