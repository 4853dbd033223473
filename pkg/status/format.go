package status

import (
	"fmt"

	"github.com/walteh/migrc/pkg/batch"
)

// OutcomeFormatter defines how file outcomes and the final tally should be
// formatted
type OutcomeFormatter interface {
	// FormatFileOutcome formats the status line for one candidate file
	FormatFileOutcome(res batch.FileResult) string

	// FormatPartial formats the warning for occurrences left verbatim
	FormatPartial(res batch.FileResult) string

	// FormatSummary formats the final tally line
	FormatSummary(updated, total int) string
}

// DefaultOutcomeFormatter provides a default implementation of
// OutcomeFormatter
type DefaultOutcomeFormatter struct{}

// NewDefaultOutcomeFormatter creates a new DefaultOutcomeFormatter
func NewDefaultOutcomeFormatter() *DefaultOutcomeFormatter {
	return &DefaultOutcomeFormatter{}
}

// FormatFileOutcome formats a per-file status line
func (f *DefaultOutcomeFormatter) FormatFileOutcome(res batch.FileResult) string {
	switch res.Outcome {
	case batch.OutcomeUpdated:
		return fmt.Sprintf("Updated: %s (%d change(s))", res.Path, res.Applied)
	case batch.OutcomeFailed:
		return fmt.Sprintf("Error updating %s: %v", res.Path, res.Err)
	case batch.OutcomeNotFound:
		return fmt.Sprintf("File not found: %s", res.Path)
	case batch.OutcomeAlreadyMigrated:
		return fmt.Sprintf("Already migrated: %s", res.Path)
	default:
		return fmt.Sprintf("No changes needed: %s", res.Path)
	}
}

// FormatPartial formats the partial-match warning for a file
func (f *DefaultOutcomeFormatter) FormatPartial(res batch.FileResult) string {
	return fmt.Sprintf("Partial match in %s: %d occurrence(s) left as-is", res.Path, res.Declined)
}

// FormatSummary formats the final tally
func (f *DefaultOutcomeFormatter) FormatSummary(updated, total int) string {
	return fmt.Sprintf("Complete! Updated %d/%d files", updated, total)
}
