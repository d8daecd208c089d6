// Package workflow implements the workflow rule engine: a diagnostic
// component that discovers GitHub Actions workflow files, parses them, and
// validates permissions, triggers, action versions, and Pages deployment
// completeness.
package workflow

// ActionVersions records the minimum acceptable and current version tags for
// a known action.
type ActionVersions struct {
	MinVersion string
	Current    string
}

// RequiredPermissions is the permission set a Pages deployment workflow needs.
var RequiredPermissions = map[string]string{
	"contents": "read",
	"pages":    "write",
	"id-token": "write",
}

// ExpectedTriggers are the trigger events a Pages workflow should declare.
var ExpectedTriggers = []string{"push", "workflow_dispatch"}

// PagesActions are the publish-related actions with their version expectations.
// Version tags are compared as plain strings; see compareVersionTags.
var PagesActions = map[string]ActionVersions{
	"actions/checkout":              {MinVersion: "v3", Current: "v4"},
	"actions/configure-pages":       {MinVersion: "v3", Current: "v4"},
	"actions/upload-pages-artifact": {MinVersion: "v2", Current: "v3"},
	"actions/deploy-pages":          {MinVersion: "v2", Current: "v4"},
}

// essentialActions must appear in a job for it to be a working deployment.
var essentialActions = []string{"actions/checkout", "actions/deploy-pages"}

// expectedBranches are the conventional primary branch names a push trigger's
// branch filter should include.
var expectedBranches = []string{"main", "prod", "master"}

// deploymentSteps are the three canonical publish-sequence actions, detected
// by substring match on the action reference.
var deploymentSteps = []string{"configure-pages", "upload-pages-artifact", "deploy-pages"}

// compareVersionTags reports whether the used tag is below the minimum tag.
// Tags are compared by lexicographic string ordering, which matches the
// established behavior for the single-digit vN tags in PagesActions but
// misorders multi-digit tags (a "v10" sorts below "v4").
func compareVersionTags(used, minimum string) bool {
	return used < minimum
}
