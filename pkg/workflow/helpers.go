package workflow

import (
	"fmt"
	"sort"
	"strings"
)

// sortedKeys returns the keys of m in ascending order. Validation passes
// iterate maps through this so report ordering is stable across runs.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func isWorkflowFile(name string) bool {
	return strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml")
}

// jobsOf returns the jobs mapping of a workflow document, or an empty map
// when the key is absent or malformed.
func jobsOf(doc map[string]any) map[string]any {
	jobs, ok := doc["jobs"].(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return jobs
}

// stepsOf returns the steps list of a job, or nil when absent or malformed.
func stepsOf(job map[string]any) []any {
	steps, ok := job["steps"].([]any)
	if !ok {
		return nil
	}
	return steps
}

// usesOf returns the uses reference of a step, or "" when the step has none.
func usesOf(step any) string {
	stepMap, ok := step.(map[string]any)
	if !ok {
		return ""
	}
	uses, _ := stepMap["uses"].(string)
	return uses
}

// permissionsOf coerces a permissions node into a string map. Scalar values
// are stringified so `pages: write` and quoted variants compare equally.
func permissionsOf(node any) map[string]string {
	perms := make(map[string]string)
	nodeMap, ok := node.(map[string]any)
	if !ok {
		return perms
	}
	for key, value := range nodeMap {
		perms[key] = fmt.Sprintf("%v", value)
	}
	return perms
}

// isPagesJob reports whether a job participates in Pages publishing, either
// by naming convention or by referencing a known Pages action.
func isPagesJob(jobName string, job map[string]any) bool {
	lower := strings.ToLower(jobName)
	if strings.Contains(lower, "pages") || strings.Contains(lower, "deploy") {
		return true
	}
	for _, step := range stepsOf(job) {
		uses := usesOf(step)
		for action := range PagesActions {
			if strings.HasPrefix(uses, action) {
				return true
			}
		}
	}
	return false
}

// actionRefsOf collects the versioned action references of a job's steps,
// keyed by action name. A reference without a version tag is skipped; when
// an action appears more than once the last reference wins.
func actionRefsOf(job map[string]any) map[string]string {
	refs := make(map[string]string)
	for _, step := range stepsOf(job) {
		uses := usesOf(step)
		at := strings.LastIndex(uses, "@")
		if at <= 0 {
			continue
		}
		refs[uses[:at]] = uses[at+1:]
	}
	return refs
}

func formatPermissions(perms map[string]string) string {
	parts := make([]string, 0, len(perms))
	for _, key := range sortedKeys(perms) {
		parts = append(parts, fmt.Sprintf("%s: %s", key, perms[key]))
	}
	return strings.Join(parts, ", ")
}

func formatActionRefs(refs map[string]string) string {
	if len(refs) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(refs))
	for _, action := range sortedKeys(refs) {
		parts = append(parts, fmt.Sprintf("%s@%s", action, refs[action]))
	}
	return strings.Join(parts, ", ")
}
