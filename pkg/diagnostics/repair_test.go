package diagnostics

import (
	"errors"
	"strings"
	"testing"
)

func TestRepairRunnerDefaultsToDryRun(t *testing.T) {
	r := NewRepairRunner()
	if !r.DryRun || !r.BackupEnabled {
		t.Fatalf("defaults = dry_run=%v backup=%v, want both true", r.DryRun, r.BackupEnabled)
	}

	applied := false
	result := r.Apply("fix_permissions", func() error {
		applied = true
		return nil
	})

	if applied {
		t.Error("dry run must not invoke the repair function")
	}
	if result.Status != StatusPass || !strings.Contains(result.Message, "Dry run") {
		t.Errorf("unexpected dry-run result: %+v", result)
	}
}

func TestRepairRunnerAppliesWhenEnabled(t *testing.T) {
	r := NewRepairRunner()
	r.Configure(false, false)

	result := r.Apply("fix_permissions", func() error { return nil })
	if result.Status != StatusPass {
		t.Errorf("status = %s, want pass", result.Status)
	}

	result = r.Apply("fix_triggers", func() error { return errors.New("write denied") })
	if result.Status != StatusFail || result.Severity != SeverityHigh {
		t.Errorf("failed repair should be FAIL/HIGH, got %s/%s", result.Status, result.Severity)
	}
}

func TestBackupPath(t *testing.T) {
	r := NewRepairRunner()

	path := r.BackupPath("deploy.yml")
	if !strings.HasPrefix(path, "deploy.yml.backup.") {
		t.Errorf("backup path = %q", path)
	}

	r.Configure(true, false)
	if got := r.BackupPath("deploy.yml"); got != "" {
		t.Errorf("backup path with backups disabled = %q, want empty", got)
	}
}
