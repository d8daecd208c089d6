package workflow

// normalizeTriggers coerces the trigger declaration of a parsed workflow into
// a mapping from trigger name to its configuration. The declaration may be a
// single string, a list of strings, or a mapping; all three forms are
// accepted.
//
// Fallback: YAML 1.1 parsers decode the bare key `on` as the boolean true,
// which our map decoding stringifies to "true". When the "on" key is absent
// or empty, the "true" key is consulted instead.
func normalizeTriggers(doc map[string]any) map[string]any {
	raw := doc["on"]
	if isEmptyTrigger(raw) {
		raw = doc["true"]
	}

	switch v := raw.(type) {
	case string:
		return map[string]any{v: map[string]any{}}
	case []any:
		triggers := make(map[string]any, len(v))
		for _, item := range v {
			if name, ok := item.(string); ok {
				triggers[name] = map[string]any{}
			}
		}
		return triggers
	case map[string]any:
		return v
	default:
		return map[string]any{}
	}
}

// isEmptyTrigger reports whether a trigger declaration carries no content.
func isEmptyTrigger(raw any) bool {
	if raw == nil {
		return true
	}
	if m, ok := raw.(map[string]any); ok {
		return len(m) == 0
	}
	return false
}

// pushBranches extracts the branch filter of a push trigger configuration.
// A missing or non-mapping configuration yields an empty filter, which is
// treated as "all branches".
func pushBranches(pushConfig any) []string {
	config, ok := pushConfig.(map[string]any)
	if !ok {
		return nil
	}
	rawBranches, ok := config["branches"].([]any)
	if !ok {
		return nil
	}
	branches := make([]string, 0, len(rawBranches))
	for _, b := range rawBranches {
		if name, ok := b.(string); ok {
			branches = append(branches, name)
		}
	}
	return branches
}
