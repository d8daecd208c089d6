package workflow

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rhysd/actionlint"

	"github.com/pagesmedic/pagesmedic/pkg/diagnostics"
	"github.com/pagesmedic/pagesmedic/pkg/logger"
)

var lintLog = logger.New("workflow:lint")

// Linter runs actionlint over each workflow file and reports findings as
// diagnostic results. It complements Inspector: the inspector checks Pages
// deployment rules while the linter catches general workflow mistakes such
// as unknown keys, bad expressions, and invalid runner labels.
type Linter struct {
	repositoryPath string
	workflowsPath  string
	log            *logger.Logger
}

// NewLinter creates a linter for the repository rooted at repositoryPath.
// A nil log uses the package logger.
func NewLinter(repositoryPath string, log *logger.Logger) *Linter {
	if log == nil {
		log = lintLog
	}
	return &Linter{
		repositoryPath: repositoryPath,
		workflowsPath:  filepath.Join(repositoryPath, ".github", "workflows"),
		log:            log,
	}
}

// Name implements diagnostics.Component.
func (l *Linter) Name() string { return "WorkflowLinter" }

// RunDiagnostics lints every workflow file independently. A file that fails
// to lint produces its own result and never blocks the remaining files.
func (l *Linter) RunDiagnostics(_ context.Context, _ diagnostics.Options) ([]diagnostics.Result, error) {
	entries, err := os.ReadDir(l.workflowsPath)
	if err != nil {
		// The inspector reports the missing directory; nothing to lint.
		l.log.Printf("skipping lint, workflows directory unavailable: %v", err)
		return nil, nil
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && isWorkflowFile(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	linter, err := actionlint.NewLinter(io.Discard, &actionlint.LinterOptions{})
	if err != nil {
		return nil, fmt.Errorf("initializing workflow linter: %w", err)
	}

	var results []diagnostics.Result
	for _, name := range files {
		results = append(results, l.lintFile(linter, name))
	}
	return results, nil
}

func (l *Linter) lintFile(linter *actionlint.Linter, name string) diagnostics.Result {
	checkName := "lint_workflow_" + name
	path := filepath.Join(l.workflowsPath, name)

	content, err := os.ReadFile(path)
	if err != nil {
		return diagnostics.NewResult(checkName, diagnostics.StatusFail,
			fmt.Sprintf("Failed to read %s for linting: %v", name, err)).
			WithSeverity(diagnostics.SeverityMedium).
			WithMeta("file", path).
			WithMeta("error", err.Error())
	}

	lintErrs, err := linter.Lint(path, content, nil)
	if err != nil {
		return diagnostics.NewResult(checkName, diagnostics.StatusFail,
			fmt.Sprintf("Linting %s failed: %v", name, err)).
			WithSeverity(diagnostics.SeverityMedium).
			WithMeta("file", path).
			WithMeta("error", err.Error())
	}

	if len(lintErrs) == 0 {
		return diagnostics.NewResult(checkName, diagnostics.StatusPass,
			fmt.Sprintf("No lint issues in %s", name)).
			WithSeverity(diagnostics.SeverityLow).
			WithMeta("file", path)
	}

	findings := make([]string, 0, len(lintErrs))
	for _, lintErr := range lintErrs {
		findings = append(findings, fmt.Sprintf("line %d, col %d: %s [%s]",
			lintErr.Line, lintErr.Column, lintErr.Message, lintErr.Kind))
	}

	return diagnostics.NewResult(checkName, diagnostics.StatusWarning,
		fmt.Sprintf("Found %d lint issue(s) in %s", len(lintErrs), name)).
		WithDetails(strings.Join(findings, "; ")).
		WithFix("Review and fix the reported workflow lint issues").
		WithSeverity(diagnostics.SeverityMedium).
		WithMeta("file", path).
		WithMeta("issue_count", len(lintErrs)).
		WithMeta("findings", findings)
}
