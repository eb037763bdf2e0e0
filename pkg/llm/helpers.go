package llm

// Truncate shortens prompt material so a batched request stays within token
// bounds.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
