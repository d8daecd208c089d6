package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pagesmedic/pagesmedic/pkg/config"
	"github.com/pagesmedic/pagesmedic/pkg/console"
	"github.com/pagesmedic/pagesmedic/pkg/diagnostics"
	"github.com/pagesmedic/pagesmedic/pkg/logger"
	"github.com/pagesmedic/pagesmedic/pkg/workflow"
)

var diagnoseLog = logger.New("cli:diagnose")

// DiagnoseConfig holds configuration for diagnose command execution
type DiagnoseConfig struct {
	RepositoryPath string
	ConfigFile     string
	OutputFile     string
	Verbose        bool
	NoLint         bool
	Watch          bool
}

// DiagnosticReport is the JSON document the diagnose command emits.
type DiagnosticReport struct {
	Session   *diagnostics.Session       `json:"session"`
	Summary   diagnostics.SessionSummary `json:"summary"`
	Workflows workflow.Summary           `json:"workflows"`
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Run workflow diagnostics against a repository",
		Long: `Analyze the GitHub Actions workflows of a repository for GitHub Pages
deployment problems.

Checks include:
- Workflow directory and file discovery
- YAML parse validation per file
- Required Pages permissions (contents: read, pages: write, id-token: write)
- Deployment triggers (push to a primary branch, workflow_dispatch)
- Action version currency and essential action presence
- Pages deployment step completeness
- General workflow linting

The full session report is written as JSON to stdout (or --output); human
readable progress goes to stderr.

Examples:
  pagesmedic diagnose                          # Diagnose the current directory
  pagesmedic diagnose --repository ./site      # Diagnose another repository
  pagesmedic diagnose --output report.json     # Write the report to a file
  pagesmedic diagnose --no-lint                # Skip the workflow linter
  pagesmedic diagnose --watch                  # Re-run on workflow file changes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			repositoryPath, _ := cmd.Flags().GetString("repository")
			configFile, _ := cmd.Flags().GetString("config")
			outputFile, _ := cmd.Flags().GetString("output")
			verbose, _ := cmd.Flags().GetBool("verbose")
			noLint, _ := cmd.Flags().GetBool("no-lint")
			watch, _ := cmd.Flags().GetBool("watch")

			return RunDiagnose(cmd.Context(), DiagnoseConfig{
				RepositoryPath: repositoryPath,
				ConfigFile:     configFile,
				OutputFile:     outputFile,
				Verbose:        verbose,
				NoLint:         noLint,
				Watch:          watch,
			})
		},
	}

	cmd.Flags().StringP("repository", "r", ".", "Path to the repository to diagnose")
	cmd.Flags().StringP("config", "c", "", "Path to a configuration file")
	cmd.Flags().StringP("output", "o", "", "Write the JSON report to a file instead of stdout")
	cmd.Flags().Bool("no-lint", false, "Skip the workflow linter component")
	cmd.Flags().BoolP("watch", "w", false, "Watch workflow files and re-run diagnostics on changes")

	return cmd
}

// RunDiagnose executes the diagnose command with the given configuration
func RunDiagnose(ctx context.Context, cfg DiagnoseConfig) error {
	settings, err := config.Load(cfg.ConfigFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	repositoryPath, err := filepath.Abs(cfg.RepositoryPath)
	if err != nil {
		return fmt.Errorf("resolving repository path: %w", err)
	}
	if _, err := os.Stat(repositoryPath); err != nil {
		return fmt.Errorf("repository path %s: %w", repositoryPath, err)
	}

	diagnoseLog.Printf("diagnosing repository: %s", repositoryPath)

	if cfg.Watch {
		return watchAndDiagnose(ctx, repositoryPath, settings, cfg)
	}
	return diagnoseOnce(ctx, repositoryPath, settings, cfg)
}

// diagnoseOnce runs one full diagnostic session and writes the report.
func diagnoseOnce(ctx context.Context, repositoryPath string, settings *config.Config, cfg DiagnoseConfig) error {
	if cfg.Verbose {
		fmt.Fprintln(os.Stderr, console.FormatVerboseMessage(fmt.Sprintf("Diagnosing %s", repositoryPath)))
	}

	inspector := workflow.NewInspector(repositoryPath, nil)

	orchestrator := diagnostics.NewOrchestrator()
	orchestrator.Register(inspector)
	if !cfg.NoLint {
		orchestrator.Register(workflow.NewLinter(repositoryPath, nil))
	}

	orchestrator.StartSession(repositoryPath)
	session, err := orchestrator.RunDiagnostics(ctx, diagnostics.Options{
		RepositoryPath: repositoryPath,
		Verbose:        cfg.Verbose,
		DryRun:         settings.Repair.DryRun,
	})
	if err != nil {
		return fmt.Errorf("running diagnostics: %w", err)
	}

	report := DiagnosticReport{
		Session:   session,
		Summary:   orchestrator.SessionSummary(),
		Workflows: inspector.WorkflowSummary(),
	}
	if err := writeReport(report, cfg.OutputFile); err != nil {
		return err
	}

	reportFindings(session)
	return nil
}

// writeReport emits the JSON report to stdout or the given file.
func writeReport(report DiagnosticReport, outputFile string) error {
	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	if outputFile == "" {
		fmt.Println(string(encoded))
		return nil
	}

	if err := os.WriteFile(outputFile, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing report to %s: %w", outputFile, err)
	}
	fmt.Fprintln(os.Stderr, console.FormatInfoMessage(fmt.Sprintf("Report written to %s", outputFile)))
	return nil
}

// reportFindings summarizes the session outcome on stderr. Findings are data,
// not command failure; the exit code stays zero either way.
func reportFindings(session *diagnostics.Session) {
	critical := session.CriticalIssues()
	failed := session.FailedChecks()

	switch {
	case len(critical) > 0:
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(
			fmt.Sprintf("%d critical issue(s), %d failed check(s) of %d total", len(critical), len(failed), len(session.Results))))
	case len(failed) > 0:
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
			fmt.Sprintf("%d failed check(s) of %d total", len(failed), len(session.Results))))
	default:
		fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(
			fmt.Sprintf("All %d check(s) passed", len(session.Results))))
	}
}
