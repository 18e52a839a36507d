package domain

// ValidatePreferences filters raw preferences down to entries present in
// categoryNames, preserving the original order. An empty result falls back to
// a single-element list holding the first category name; the returned list is
// never empty. This fallback is a policy, not an error.
func ValidatePreferences(raw []string, categoryNames []string) []string {
	known := make(map[string]struct{}, len(categoryNames))
	for _, name := range categoryNames {
		known[name] = struct{}{}
	}

	valid := make([]string, 0, len(raw))
	for _, p := range raw {
		if _, ok := known[p]; ok {
			valid = append(valid, p)
		}
	}

	if len(valid) == 0 && len(categoryNames) > 0 {
		return []string{categoryNames[0]}
	}
	return valid
}
