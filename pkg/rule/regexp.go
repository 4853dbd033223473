package rule

import (
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrMissingCapture marks a match that lacks a sub-field the replacement
// template needs. The occurrence is declined, never rewritten.
var ErrMissingCapture = errors.Base("required capture is missing")

// templateRefPattern finds ${name} references in a replacement template
var templateRefPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// RegexpRule is the default Rule implementation: a compiled regular
// expression for the legacy construct, a marker substring for the migrated
// form, and a replacement template with ${name} capture references.
type RegexpRule struct {
	name           string
	legacy         *regexp.Regexp
	migratedMarker string
	template       string
	require        []string
	hint           string
	captureIndex   map[string]int
}

// RegexpRuleOptions configures a RegexpRule.
type RegexpRuleOptions struct {
	// Name identifies the rule in reports
	Name string

	// Legacy matches the outdated construct. Named capture groups are
	// available to the replacement template.
	Legacy *regexp.Regexp

	// MigratedMarker is a substring whose presence anywhere in a file
	// means the migration already happened there
	MigratedMarker string

	// Template is the replacement text; ${name} expands to the capture
	// of that name
	Template string

	// Require lists captures that must be non-empty for a rewrite to be
	// safe. A match missing one is declined, not rewritten.
	Require []string

	// Hint overrides the cheap pre-check substring. Defaults to the
	// literal prefix of Legacy.
	Hint string
}

// NewRegexpRule creates a RegexpRule, validating that every template
// reference and required capture names an actual capture group of the
// legacy expression.
func NewRegexpRule(opts RegexpRuleOptions) (*RegexpRule, error) {
	if opts.Name == "" {
		return nil, errors.Errorf("rule name is required")
	}
	if opts.Legacy == nil {
		return nil, errors.Errorf("rule %s: legacy pattern is required", opts.Name)
	}

	// Index named capture groups
	captureIndex := make(map[string]int)
	for i, name := range opts.Legacy.SubexpNames() {
		if name != "" {
			captureIndex[name] = i
		}
	}

	// Every ${name} in the template must be a capture group
	for _, ref := range templateRefPattern.FindAllStringSubmatch(opts.Template, -1) {
		if _, ok := captureIndex[ref[1]]; !ok {
			return nil, errors.Errorf("rule %s: template references unknown capture %q", opts.Name, ref[1])
		}
	}

	// Same for the required list
	for _, req := range opts.Require {
		if _, ok := captureIndex[req]; !ok {
			return nil, errors.Errorf("rule %s: required capture %q is not a capture group", opts.Name, req)
		}
	}

	hint := opts.Hint
	if hint == "" {
		prefix, _ := opts.Legacy.LiteralPrefix()
		hint = prefix
	}
	if hint == "" {
		return nil, errors.Errorf("rule %s: hint is required when the legacy pattern has no literal prefix", opts.Name)
	}

	return &RegexpRule{
		name:           opts.Name,
		legacy:         opts.Legacy,
		migratedMarker: opts.MigratedMarker,
		template:       opts.Template,
		require:        opts.Require,
		hint:           hint,
		captureIndex:   captureIndex,
	}, nil
}

func (r *RegexpRule) Name() string {
	return r.name
}

func (r *RegexpRule) Hint() string {
	return r.hint
}

// AlreadyMigrated reports whether the migrated marker appears anywhere in
// the text. Rules without a marker never report migrated.
func (r *RegexpRule) AlreadyMigrated(text string) bool {
	if r.migratedMarker == "" {
		return false
	}
	return strings.Contains(text, r.migratedMarker)
}

// FindMatches returns every non-overlapping occurrence of the legacy
// expression, with named captures extracted.
func (r *RegexpRule) FindMatches(text string) []Match {
	idxs := r.legacy.FindAllStringSubmatchIndex(text, -1)
	if len(idxs) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(idxs))
	for _, idx := range idxs {
		m := Match{
			Start:    idx[0],
			End:      idx[1],
			Text:     text[idx[0]:idx[1]],
			Captures: make(map[string]string, len(r.captureIndex)),
		}
		for name, group := range r.captureIndex {
			lo, hi := idx[2*group], idx[2*group+1]
			if lo >= 0 {
				m.Captures[name] = text[lo:hi]
			}
		}
		matches = append(matches, m)
	}
	return matches
}

// Rewrite expands the replacement template against the match's captures.
// A required capture that is absent or empty declines the occurrence.
func (r *RegexpRule) Rewrite(m Match) (string, error) {
	for _, req := range r.require {
		if strings.TrimSpace(m.Captures[req]) == "" {
			return "", errors.Errorf("rule %s: capture %q: %w", r.name, req, ErrMissingCapture)
		}
	}

	out := templateRefPattern.ReplaceAllStringFunc(r.template, func(ref string) string {
		name := ref[2 : len(ref)-1]
		return m.Captures[name]
	})
	return out, nil
}
