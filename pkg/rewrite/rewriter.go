// Package rewrite applies a prioritized list of pattern rules to a single
// file's text and decides what the final text should be. It is pure
// text-in/text-out; reading and writing files belongs to the batch runner.
package rewrite

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/migrc/pkg/rule"
	"gitlab.com/tozd/go/errors"
)

// Result describes what rewriting did to one file's text.
type Result struct {
	// Text is the final text after all rules ran
	Text string

	// Applied is the number of occurrences rewritten
	Applied int

	// Declined is the number of occurrences left verbatim because a
	// required sub-field could not be extracted
	Declined int

	// Injected reports whether the dependency-reference line was inserted
	Injected bool

	// AlreadyMigrated reports that an idempotence guard fired for the
	// whole file and nothing was attempted
	AlreadyMigrated bool

	// Changed reports whether Text differs from the input
	Changed bool
}

// Rewriter applies rules in priority order with span bookkeeping, then
// performs dependency-reference injection when anything fired.
type Rewriter struct {
	rules     []rule.Rule
	injection *Injection
}

// New creates a Rewriter. The injection spec may be nil.
func New(rules []rule.Rule, injection *Injection) *Rewriter {
	return &Rewriter{
		rules:     rules,
		injection: injection,
	}
}

// span is a half-open byte range already consumed by an earlier rule
type span struct {
	start, end int
}

// RewriteText applies every rule to the text. If any rule's idempotence
// guard fires for the whole file, the input is returned unchanged. Spans
// rewritten by one rule are never re-matched by a later rule, so shape
// variants sharing a name prefix cannot double-convert an occurrence.
func (r *Rewriter) RewriteText(ctx context.Context, text string) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	res := &Result{Text: text}

	for _, rl := range r.rules {
		if rl.AlreadyMigrated(text) {
			logger.Debug().Str("rule", rl.Name()).Msg("file already migrated, skipping")
			res.AlreadyMigrated = true
			return res, nil
		}
	}

	cur := text
	var consumed []span

	for _, rl := range r.rules {
		matches := rl.FindMatches(cur)

		// Apply back to front so earlier offsets stay valid
		for i := len(matches) - 1; i >= 0; i-- {
			m := matches[i]
			if overlaps(consumed, m.Start, m.End) {
				continue
			}

			repl, err := rl.Rewrite(m)
			if err != nil {
				if errors.Is(err, rule.ErrMissingCapture) {
					logger.Debug().
						Str("rule", rl.Name()).
						Int("offset", m.Start).
						Msg("declining occurrence with missing sub-field")
					res.Declined++
					continue
				}
				return nil, errors.Errorf("rule %s: rewriting occurrence at offset %d: %w", rl.Name(), m.Start, err)
			}

			cur = cur[:m.Start] + repl + cur[m.End:]
			delta := len(repl) - (m.End - m.Start)
			consumed = shift(consumed, m.End, delta)
			consumed = append(consumed, span{start: m.Start, end: m.Start + len(repl)})
			res.Applied++
		}
	}

	// The reference check runs against the input text: the rewritten text
	// always mentions the helper, so checking it there would never inject.
	if res.Applied > 0 && r.injection != nil && !r.injection.Referenced(text) {
		cur, res.Injected = r.injection.insert(cur)
	}

	res.Text = cur
	res.Changed = cur != text
	return res, nil
}

// overlaps reports whether [start, end) intersects any consumed span
func overlaps(consumed []span, start, end int) bool {
	for _, s := range consumed {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}

// shift moves spans at or after pos by delta, after a replacement changed
// the text length before them
func shift(consumed []span, pos, delta int) []span {
	if delta == 0 {
		return consumed
	}
	for i, s := range consumed {
		if s.start >= pos {
			consumed[i] = span{start: s.start + delta, end: s.end + delta}
		}
	}
	return consumed
}
