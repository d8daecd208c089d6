package diagnostics

import (
	"fmt"
	"time"

	"github.com/pagesmedic/pagesmedic/pkg/logger"
)

// RepairRunner carries the safety settings shared by repair-capable
// components. Repairs default to dry-run so nothing changes unless a caller
// opts in explicitly. Concrete repair components are not part of the core;
// this is the contract they build on.
type RepairRunner struct {
	DryRun        bool
	BackupEnabled bool

	log *logger.Logger
}

// NewRepairRunner creates a repair runner in its safe default configuration:
// dry-run on, backups on.
func NewRepairRunner() *RepairRunner {
	return &RepairRunner{
		DryRun:        true,
		BackupEnabled: true,
		log:           logger.New("diagnostics:repair"),
	}
}

// Configure sets the repair behavior flags.
func (r *RepairRunner) Configure(dryRun, backupEnabled bool) {
	r.DryRun = dryRun
	r.BackupEnabled = backupEnabled
	r.log.Printf("repair configuration: dry_run=%v backup_enabled=%v", dryRun, backupEnabled)
}

// BackupPath derives the backup destination for a file about to be modified.
// Returns the empty string when backups are disabled.
func (r *RepairRunner) BackupPath(filePath string) string {
	if !r.BackupEnabled {
		return ""
	}
	return fmt.Sprintf("%s.backup.%d", filePath, time.Now().Unix())
}

// Apply performs one repair operation, or simulates it in dry-run mode.
// The outcome is reported as a Result either way.
func (r *RepairRunner) Apply(operation string, fn func() error) Result {
	checkName := "repair_" + operation

	if r.DryRun {
		r.log.Printf("dry run: would perform %s", operation)
		return NewResult(checkName, StatusPass, fmt.Sprintf("Dry run: would perform %s", operation)).
			WithDetails("Repair operation simulated (dry run mode)").
			WithSeverity(SeverityLow)
	}

	if err := fn(); err != nil {
		r.log.Printf("repair %s failed: %v", operation, err)
		return NewResult(checkName, StatusFail, fmt.Sprintf("Repair %s failed: %v", operation, err)).
			WithDetails("Repair operation returned an error").
			WithSeverity(SeverityHigh)
	}

	return NewResult(checkName, StatusPass, fmt.Sprintf("Successfully performed %s", operation)).
		WithDetails("Repair operation completed").
		WithSeverity(SeverityLow)
}
