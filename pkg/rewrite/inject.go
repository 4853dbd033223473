package rewrite

import (
	"regexp"
	"strings"
)

// Injection inserts a dependency-reference line into files that now call
// the migrated helper but do not yet reference it. It is idempotent on its
// own: the line is only inserted when Symbol appears nowhere in the file.
type Injection struct {
	// Symbol is the helper reference whose presence anywhere in the file
	// means injection already happened
	Symbol string

	// Line is the full line to insert
	Line string

	// Anchor selects the insertion point: the line is inserted
	// immediately after the first line Anchor matches. No anchor in the
	// file means no injection.
	Anchor *regexp.Regexp

	// Remove lists patterns for superseded lines (old imports) deleted
	// before inserting the new reference
	Remove []*regexp.Regexp
}

// Referenced reports whether the helper symbol already appears anywhere
// in the text.
func (inj *Injection) Referenced(text string) bool {
	return inj.Symbol != "" && strings.Contains(text, inj.Symbol)
}

// Apply returns the text with the reference line inserted, and whether an
// insertion happened. It is a no-op when the symbol is already referenced.
func (inj *Injection) Apply(text string) (string, bool) {
	if inj.Referenced(text) {
		return text, false
	}
	return inj.insert(text)
}

// insert performs the removal and insertion without the symbol guard. The
// rewriter needs this split: it decides against the pre-rewrite text,
// since the rewritten text always mentions the helper the rules rewrite
// toward.
func (inj *Injection) insert(text string) (string, bool) {
	lines := strings.Split(text, "\n")

	// Drop superseded lines first so the anchor search sees the cleaned file
	if len(inj.Remove) > 0 {
		kept := lines[:0]
		for _, line := range lines {
			if matchesAny(inj.Remove, line) {
				continue
			}
			kept = append(kept, line)
		}
		lines = kept
	}

	anchorAt := -1
	for i, line := range lines {
		if inj.Anchor.MatchString(line) {
			anchorAt = i
			break
		}
	}
	// No anchor means no injection; keep superseded lines too, since
	// removing them without adding the replacement would break the file.
	if anchorAt < 0 {
		return text, false
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:anchorAt+1]...)
	out = append(out, inj.Line)
	out = append(out, lines[anchorAt+1:]...)
	return strings.Join(out, "\n"), true
}

func matchesAny(patterns []*regexp.Regexp, line string) bool {
	for _, p := range patterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
