package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagesmedic/pagesmedic/pkg/diagnostics"
)

func TestLinter_MissingDirectoryProducesNoResults(t *testing.T) {
	linter := NewLinter(t.TempDir(), nil)

	results, err := linter.RunDiagnostics(context.Background(), diagnostics.Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLinter_CleanWorkflowPasses(t *testing.T) {
	root := t.TempDir()
	writeWorkflow(t, root, "pages.yml", validPagesWorkflow)

	linter := NewLinter(root, nil)
	results, err := linter.RunDiagnostics(context.Background(), diagnostics.Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "lint_workflow_pages.yml", results[0].CheckName)
	assert.Equal(t, diagnostics.StatusPass, results[0].Status)
}

func TestLinter_ReportsFindings(t *testing.T) {
	root := t.TempDir()
	// The job is missing its runs-on section, a lint error.
	writeWorkflow(t, root, "bad.yml", `name: Bad
on: push
jobs:
  build:
    steps:
      - uses: actions/checkout@v4
`)

	linter := NewLinter(root, nil)
	results, err := linter.RunDiagnostics(context.Background(), diagnostics.Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "lint_workflow_bad.yml", results[0].CheckName)
	assert.Equal(t, diagnostics.StatusWarning, results[0].Status)
	assert.Equal(t, diagnostics.SeverityMedium, results[0].Severity)
	assert.Contains(t, results[0].Details, "runs-on")
}

func TestLinter_FilesLintedIndependently(t *testing.T) {
	root := t.TempDir()
	writeWorkflow(t, root, "bad.yml", "jobs: [broken")
	writeWorkflow(t, root, "pages.yml", validPagesWorkflow)

	linter := NewLinter(root, nil)
	results, err := linter.RunDiagnostics(context.Background(), diagnostics.Options{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "lint_workflow_bad.yml", results[0].CheckName)
	assert.NotEqual(t, diagnostics.StatusPass, results[0].Status)

	assert.Equal(t, "lint_workflow_pages.yml", results[1].CheckName)
	assert.Equal(t, diagnostics.StatusPass, results[1].Status)
}
