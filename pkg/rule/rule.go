// Package rule defines pattern rules: named transformations that detect
// occurrences of a legacy source construct and rewrite them to the migrated
// form. The interface is span-based so a regexp matcher can later be swapped
// for a parse-tree matcher without touching the rewriter or batch runner.
package rule

// Match is one occurrence of a legacy construct in a chunk of source text.
// Start and End are byte offsets into the text the match was found in.
type Match struct {
	// Start is the offset of the first byte of the occurrence
	Start int

	// End is the offset just past the last byte of the occurrence
	End int

	// Text is the matched text itself
	Text string

	// Captures holds named sub-fields extracted from the occurrence
	Captures map[string]string
}

// Rule detects occurrences of a legacy construct and produces replacement
// text for them. Shape variants of the same logical construct share a name
// prefix and are tried in priority order; the first rule to claim a span
// wins.
type Rule interface {
	// Name identifies the rule in reports and error messages
	Name() string

	// Hint returns a cheap substring whose absence proves the legacy
	// construct is absent, so callers can skip full matching
	Hint() string

	// AlreadyMigrated reports whether the text already contains the
	// migrated form, so the rule must not be applied again
	AlreadyMigrated(text string) bool

	// FindMatches returns every non-overlapping occurrence of the legacy
	// construct, in order of appearance
	FindMatches(text string) []Match

	// Rewrite returns the replacement text for one match. It returns an
	// error wrapping ErrMissingCapture when the match lacks a sub-field
	// the replacement needs; the caller must leave that occurrence
	// untouched rather than emit malformed output.
	Rewrite(m Match) (string, error)
}
