package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/pagesmedic/pagesmedic/pkg/diagnostics"
	"github.com/pagesmedic/pagesmedic/pkg/logger"
)

var inspectorLog = logger.New("workflow:inspector")

// Inspector analyzes GitHub Actions workflow files for Pages deployment
// issues: required permissions, triggers, action versions, and deployment
// step completeness. It implements the diagnostics.Component contract.
type Inspector struct {
	repositoryPath string
	workflowsPath  string
	log            *logger.Logger

	// Discovered and parsed state, rebuilt from file content on every run.
	files  []string
	parsed map[string]map[string]any
}

// NewInspector creates an inspector for the repository rooted at
// repositoryPath. A nil log uses the package logger.
func NewInspector(repositoryPath string, log *logger.Logger) *Inspector {
	if log == nil {
		log = inspectorLog
	}
	return &Inspector{
		repositoryPath: repositoryPath,
		workflowsPath:  filepath.Join(repositoryPath, ".github", "workflows"),
		log:            log,
	}
}

// Name implements diagnostics.Component.
func (i *Inspector) Name() string { return "WorkflowInspector" }

// RunDiagnostics runs the full workflow analysis: directory check, file
// discovery, parsing, per-file validation, and the cross-file assessment.
// All failure modes it understands are reported as results, never as errors.
func (i *Inspector) RunDiagnostics(_ context.Context, _ diagnostics.Options) ([]diagnostics.Result, error) {
	i.files = nil
	i.parsed = make(map[string]map[string]any)

	results := []diagnostics.Result{i.checkWorkflowsDirectory()}
	if _, err := os.Stat(i.workflowsPath); err != nil {
		return results, nil
	}

	results = append(results, i.discoverWorkflowFiles())
	results = append(results, i.parseWorkflowFiles()...)

	for _, name := range sortedKeys(i.parsed) {
		doc := i.parsed[name]
		results = append(results, i.validatePermissions(name, doc))
		results = append(results, i.validateTriggers(name, doc))
		results = append(results, i.validateSteps(name, doc)...)
		results = append(results, i.validateDeployment(name, doc))
	}

	results = append(results, i.assessOverall())
	return results, nil
}

// checkWorkflowsDirectory verifies the .github/workflows directory exists.
func (i *Inspector) checkWorkflowsDirectory() diagnostics.Result {
	if _, err := os.Stat(i.workflowsPath); err != nil {
		return diagnostics.NewResult("workflows_directory_exists", diagnostics.StatusFail,
			"GitHub Actions workflows directory not found").
			WithDetails(fmt.Sprintf("Expected directory: %s", i.workflowsPath)).
			WithFix("Create .github/workflows directory and add a GitHub Pages deployment workflow").
			WithSeverity(diagnostics.SeverityHigh).
			WithMeta("path", i.workflowsPath)
	}

	return diagnostics.NewResult("workflows_directory_exists", diagnostics.StatusPass,
		"GitHub Actions workflows directory found").
		WithDetails(fmt.Sprintf("Directory exists: %s", i.workflowsPath)).
		WithSeverity(diagnostics.SeverityLow).
		WithMeta("path", i.workflowsPath)
}

// discoverWorkflowFiles enumerates the .yml and .yaml files in the workflows
// directory, sorted by name for deterministic reports.
func (i *Inspector) discoverWorkflowFiles() diagnostics.Result {
	entries, err := os.ReadDir(i.workflowsPath)
	if err != nil {
		return diagnostics.NewResult("workflow_files_found", diagnostics.StatusFail,
			fmt.Sprintf("Failed to discover workflow files: %v", err)).
			WithDetails(fmt.Sprintf("Error scanning %s", i.workflowsPath)).
			WithSeverity(diagnostics.SeverityMedium).
			WithMeta("error", err.Error())
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isWorkflowFile(entry.Name()) {
			i.files = append(i.files, entry.Name())
		}
	}
	sort.Strings(i.files)

	if len(i.files) == 0 {
		return diagnostics.NewResult("workflow_files_found", diagnostics.StatusFail,
			"No workflow files found").
			WithDetails(fmt.Sprintf("No .yml or .yaml files in %s", i.workflowsPath)).
			WithFix("Create a GitHub Pages deployment workflow file").
			WithSeverity(diagnostics.SeverityHigh).
			WithMeta("file_count", 0)
	}

	i.log.Printf("discovered %d workflow files", len(i.files))
	return diagnostics.NewResult("workflow_files_found", diagnostics.StatusPass,
		fmt.Sprintf("Found %d workflow file(s)", len(i.files))).
		WithDetails(fmt.Sprintf("Workflow files: %s", strings.Join(i.files, ", "))).
		WithSeverity(diagnostics.SeverityLow).
		WithMeta("file_count", len(i.files)).
		WithMeta("files", append([]string{}, i.files...))
}

// parseWorkflowFiles parses each discovered file independently. Files that
// fail to parse contribute their own FAIL result and are excluded from the
// per-file validation passes.
func (i *Inspector) parseWorkflowFiles() []diagnostics.Result {
	var results []diagnostics.Result

	for _, name := range i.files {
		checkName := "parse_workflow_" + name
		path := filepath.Join(i.workflowsPath, name)

		content, err := os.ReadFile(path)
		if err != nil {
			results = append(results, diagnostics.NewResult(checkName, diagnostics.StatusFail,
				fmt.Sprintf("Failed to read %s: %v", name, err)).
				WithDetails(fmt.Sprintf("File access error: %v", err)).
				WithSeverity(diagnostics.SeverityMedium).
				WithMeta("file", path).
				WithMeta("error", err.Error()))
			continue
		}

		var doc map[string]any
		if err := yaml.Unmarshal(content, &doc); err != nil {
			results = append(results, diagnostics.NewResult(checkName, diagnostics.StatusFail,
				fmt.Sprintf("YAML parsing error in %s", name)).
				WithDetails(fmt.Sprintf("YAML error: %v", err)).
				WithFix("Fix YAML syntax errors in the workflow file").
				WithSeverity(diagnostics.SeverityHigh).
				WithMeta("file", path).
				WithMeta("error", err.Error()))
			continue
		}

		if len(doc) == 0 {
			results = append(results, diagnostics.NewResult(checkName, diagnostics.StatusFail,
				fmt.Sprintf("Workflow file %s is empty or invalid", name)).
				WithDetails("YAML file contains no content").
				WithFix("Add valid workflow configuration to the file").
				WithSeverity(diagnostics.SeverityHigh).
				WithMeta("file", path))
			continue
		}

		i.parsed[name] = doc
		jobs := jobsOf(doc)
		results = append(results, diagnostics.NewResult(checkName, diagnostics.StatusPass,
			fmt.Sprintf("Successfully parsed %s", name)).
			WithDetails(fmt.Sprintf("Workflow contains %d job(s)", len(jobs))).
			WithSeverity(diagnostics.SeverityLow).
			WithMeta("file", path).
			WithMeta("job_count", len(jobs)))
	}

	return results
}

// validatePermissions checks the merged permission view of a workflow against
// the required Pages permission set. Workflow-scope permissions are overlaid
// with the job-scope permissions of publish-related jobs; job entries win.
func (i *Inspector) validatePermissions(name string, doc map[string]any) diagnostics.Result {
	checkName := "workflow_permissions_" + name

	merged := permissionsOf(doc["permissions"])
	jobs := jobsOf(doc)

	for _, jobName := range sortedKeys(jobs) {
		job, ok := jobs[jobName].(map[string]any)
		if !ok {
			continue
		}
		if !isPagesJob(jobName, job) {
			continue
		}
		for key, value := range permissionsOf(job["permissions"]) {
			merged[key] = value
		}
	}

	var missing []string
	var incorrect []string
	for _, perm := range sortedKeys(RequiredPermissions) {
		required := RequiredPermissions[perm]
		actual, ok := merged[perm]
		switch {
		case !ok:
			missing = append(missing, perm)
		case actual != required:
			incorrect = append(incorrect, fmt.Sprintf("%s: expected '%s', got '%s'", perm, required, actual))
		}
	}

	if len(missing) > 0 || len(incorrect) > 0 {
		var details []string
		if len(missing) > 0 {
			details = append(details, fmt.Sprintf("Missing permissions: %s", strings.Join(missing, ", ")))
		}
		details = append(details, incorrect...)

		return diagnostics.NewResult(checkName, diagnostics.StatusFail,
			"Workflow permissions are incomplete or incorrect").
			WithDetails(strings.Join(details, "; ")).
			WithFix("Add required permissions: contents: read, pages: write, id-token: write").
			WithSeverity(diagnostics.SeverityHigh).
			WithMeta("file", name).
			WithMeta("missing_permissions", missing).
			WithMeta("incorrect_permissions", incorrect)
	}

	return diagnostics.NewResult(checkName, diagnostics.StatusPass,
		"All required permissions are correctly configured").
		WithDetails(fmt.Sprintf("Found permissions: %s", formatPermissions(merged))).
		WithSeverity(diagnostics.SeverityLow).
		WithMeta("file", name).
		WithMeta("permissions", merged)
}

// validateTriggers checks that the workflow declares push and manual dispatch
// triggers, and that a non-empty push branch filter covers a primary branch.
func (i *Inspector) validateTriggers(name string, doc map[string]any) diagnostics.Result {
	checkName := "workflow_triggers_" + name

	triggers := normalizeTriggers(doc)
	triggerNames := sortedKeys(triggers)

	var issues []string

	pushConfig, hasPush := triggers["push"]
	if !hasPush {
		issues = append(issues, "Missing 'push' trigger")
	} else if branches := pushBranches(pushConfig); len(branches) > 0 {
		// An empty filter means every branch triggers the workflow, which
		// is acceptable; a non-empty filter must include a primary branch.
		found := false
		for _, expected := range expectedBranches {
			for _, branch := range branches {
				if branch == expected {
					found = true
				}
			}
		}
		if !found {
			issues = append(issues, fmt.Sprintf("Push trigger doesn't include main/prod branches. Found: %v", branches))
		}
	}

	if _, ok := triggers["workflow_dispatch"]; !ok {
		issues = append(issues, "Missing 'workflow_dispatch' trigger for manual execution")
	}

	if len(issues) > 0 {
		return diagnostics.NewResult(checkName, diagnostics.StatusFail,
			"Workflow triggers are not properly configured").
			WithDetails(strings.Join(issues, "; ")).
			WithFix("Add 'push' trigger for main/prod branches and 'workflow_dispatch' for manual execution").
			WithSeverity(diagnostics.SeverityHigh).
			WithMeta("file", name).
			WithMeta("triggers", triggerNames).
			WithMeta("issues", issues)
	}

	return diagnostics.NewResult(checkName, diagnostics.StatusPass,
		"Workflow triggers are properly configured").
		WithDetails(fmt.Sprintf("Found triggers: %s", strings.Join(triggerNames, ", "))).
		WithSeverity(diagnostics.SeverityLow).
		WithMeta("file", name).
		WithMeta("triggers", triggerNames)
}

// validateSteps checks, per job, the version currency of known Pages actions
// and the presence of the essential checkout and deploy actions.
func (i *Inspector) validateSteps(name string, doc map[string]any) []diagnostics.Result {
	var results []diagnostics.Result
	jobs := jobsOf(doc)

	for _, jobName := range sortedKeys(jobs) {
		job, ok := jobs[jobName].(map[string]any)
		if !ok {
			continue
		}
		checkName := fmt.Sprintf("workflow_steps_%s_%s", name, jobName)

		usedActions := actionRefsOf(job)

		var outdated []string
		for _, action := range sortedKeys(PagesActions) {
			used, ok := usedActions[action]
			if !ok {
				continue
			}
			versions := PagesActions[action]
			if compareVersionTags(used, versions.MinVersion) {
				outdated = append(outdated, fmt.Sprintf("%s@%s (should be >= %s)", action, used, versions.MinVersion))
			}
		}

		var missing []string
		for _, essential := range essentialActions {
			if _, ok := usedActions[essential]; !ok {
				missing = append(missing, essential)
			}
		}

		switch {
		case len(missing) > 0:
			issues := append([]string{}, outdated...)
			issues = append(issues, fmt.Sprintf("Missing essential actions: %s", strings.Join(missing, ", ")))
			results = append(results, diagnostics.NewResult(checkName, diagnostics.StatusFail,
				fmt.Sprintf("Job '%s' has action version or configuration issues", jobName)).
				WithDetails(strings.Join(issues, "; ")).
				WithFix("Update action versions to current releases and add missing essential actions").
				WithSeverity(diagnostics.SeverityHigh).
				WithMeta("file", name).
				WithMeta("job", jobName).
				WithMeta("outdated_actions", outdated).
				WithMeta("missing_actions", missing))
		case len(outdated) > 0:
			results = append(results, diagnostics.NewResult(checkName, diagnostics.StatusWarning,
				fmt.Sprintf("Job '%s' has action version or configuration issues", jobName)).
				WithDetails(strings.Join(outdated, "; ")).
				WithFix("Update action versions to current releases").
				WithSeverity(diagnostics.SeverityMedium).
				WithMeta("file", name).
				WithMeta("job", jobName).
				WithMeta("outdated_actions", outdated))
		default:
			results = append(results, diagnostics.NewResult(checkName, diagnostics.StatusPass,
				fmt.Sprintf("Job '%s' uses current action versions", jobName)).
				WithDetails(fmt.Sprintf("Actions: %s", formatActionRefs(usedActions))).
				WithSeverity(diagnostics.SeverityLow).
				WithMeta("file", name).
				WithMeta("job", jobName).
				WithMeta("actions", usedActions))
		}
	}

	return results
}

// validateDeployment checks that the file contains a complete Pages publish
// sequence: configure-pages, upload-pages-artifact, and deploy-pages.
func (i *Inspector) validateDeployment(name string, doc map[string]any) diagnostics.Result {
	checkName := "pages_deployment_" + name
	jobs := jobsOf(doc)

	hasPagesDeployment := false
	var issues []string

	for _, jobName := range sortedKeys(jobs) {
		job, ok := jobs[jobName].(map[string]any)
		if !ok {
			continue
		}

		present := make(map[string]bool, len(deploymentSteps))
		for _, step := range stepsOf(job) {
			uses := usesOf(step)
			for _, deployStep := range deploymentSteps {
				if strings.Contains(uses, deployStep) {
					present[deployStep] = true
				}
			}
		}

		if len(present) == 0 {
			continue
		}
		hasPagesDeployment = true

		var missing []string
		for _, deployStep := range deploymentSteps {
			if !present[deployStep] {
				missing = append(missing, deployStep)
			}
		}
		if len(missing) > 0 {
			issues = append(issues, fmt.Sprintf("Job '%s' missing steps: %s", jobName, strings.Join(missing, ", ")))
		}
	}

	switch {
	case !hasPagesDeployment:
		return diagnostics.NewResult(checkName, diagnostics.StatusFail,
			"No GitHub Pages deployment found in workflow").
			WithDetails("Workflow doesn't contain Pages deployment actions").
			WithFix("Add GitHub Pages deployment steps (configure-pages, upload-pages-artifact, deploy-pages)").
			WithSeverity(diagnostics.SeverityCritical).
			WithMeta("file", name)
	case len(issues) > 0:
		return diagnostics.NewResult(checkName, diagnostics.StatusFail,
			"Incomplete GitHub Pages deployment configuration").
			WithDetails(strings.Join(issues, "; ")).
			WithFix("Complete the Pages deployment workflow with all required steps").
			WithSeverity(diagnostics.SeverityHigh).
			WithMeta("file", name).
			WithMeta("issues", issues)
	default:
		return diagnostics.NewResult(checkName, diagnostics.StatusPass,
			"Complete GitHub Pages deployment workflow found").
			WithDetails("Workflow contains all required Pages deployment steps").
			WithSeverity(diagnostics.SeverityLow).
			WithMeta("file", name)
	}
}

// assessOverall evaluates the workflow set as a whole after all per-file
// passes: something must have parsed, and something must deploy to Pages.
func (i *Inspector) assessOverall() diagnostics.Result {
	const checkName = "overall_workflow_assessment"

	if len(i.parsed) == 0 {
		return diagnostics.NewResult(checkName, diagnostics.StatusFail,
			"No valid workflow configurations found").
			WithDetails("Repository has no working GitHub Actions workflows").
			WithFix("Create a GitHub Pages deployment workflow").
			WithSeverity(diagnostics.SeverityCritical)
	}

	pagesWorkflows := 0
	for _, doc := range i.parsed {
		if workflowDeploysPages(doc) {
			pagesWorkflows++
		}
	}

	if pagesWorkflows == 0 {
		return diagnostics.NewResult(checkName, diagnostics.StatusFail,
			"No GitHub Pages deployment workflows found").
			WithDetails(fmt.Sprintf("Found %d workflow(s) but none deploy to Pages", len(i.parsed))).
			WithFix("Add GitHub Pages deployment to an existing workflow or create a new one").
			WithSeverity(diagnostics.SeverityHigh).
			WithMeta("workflow_count", len(i.parsed)).
			WithMeta("pages_workflows", 0)
	}

	return diagnostics.NewResult(checkName, diagnostics.StatusPass,
		fmt.Sprintf("Found %d GitHub Pages deployment workflow(s)", pagesWorkflows)).
		WithDetails(fmt.Sprintf("Total workflows: %d, Pages workflows: %d", len(i.parsed), pagesWorkflows)).
		WithSeverity(diagnostics.SeverityLow).
		WithMeta("workflow_count", len(i.parsed)).
		WithMeta("pages_workflows", pagesWorkflows)
}

// workflowDeploysPages reports whether any job in the workflow references the
// deploy-pages action.
func workflowDeploysPages(doc map[string]any) bool {
	jobs := jobsOf(doc)
	for _, job := range jobs {
		jobMap, ok := job.(map[string]any)
		if !ok {
			continue
		}
		for _, step := range stepsOf(jobMap) {
			if strings.Contains(usesOf(step), "deploy-pages") {
				return true
			}
		}
	}
	return false
}

// Summary is a read-only projection over the last analysis run.
type Summary struct {
	WorkflowsFound         int      `json:"workflows_found"`
	WorkflowsParsed        int      `json:"workflows_parsed"`
	WorkflowFiles          []string `json:"workflow_files"`
	ParsedWorkflows        []string `json:"parsed_workflows"`
	PermissionsFound       []string `json:"permissions_found"`
	HasRequiredPermissions bool     `json:"has_required_permissions"`
}

// WorkflowSummary reports discovered and parsed file counts plus the union of
// permission keys seen at any scope across every parsed file. The permission
// coverage boolean is advisory: it only says each required key appears
// somewhere, which is weaker than the per-file permission check.
func (i *Inspector) WorkflowSummary() Summary {
	summary := Summary{
		WorkflowsFound:  len(i.files),
		WorkflowsParsed: len(i.parsed),
		WorkflowFiles:   append([]string{}, i.files...),
		ParsedWorkflows: sortedKeys(i.parsed),
	}

	seen := make(map[string]bool)
	for _, doc := range i.parsed {
		for key := range permissionsOf(doc["permissions"]) {
			seen[key] = true
		}
		for _, job := range jobsOf(doc) {
			jobMap, ok := job.(map[string]any)
			if !ok {
				continue
			}
			for key := range permissionsOf(jobMap["permissions"]) {
				seen[key] = true
			}
		}
	}

	summary.PermissionsFound = sortedKeys(seen)
	summary.HasRequiredPermissions = true
	for required := range RequiredPermissions {
		if !seen[required] {
			summary.HasRequiredPermissions = false
		}
	}
	return summary
}
