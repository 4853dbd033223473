package batch

// 🎯 Outcome is the terminal state of one candidate file. Every candidate
// ends in exactly one of these; there is no resumption within a run.
type Outcome int

const (
	// OutcomeNotFound means the candidate path does not exist
	OutcomeNotFound Outcome = iota

	// OutcomeNoMatch means no rule's legacy pattern appears in the file
	OutcomeNoMatch

	// OutcomeAlreadyMigrated means an idempotence guard fired for the file
	OutcomeAlreadyMigrated

	// OutcomeUnchanged means rules ran but produced identical text
	OutcomeUnchanged

	// OutcomeUpdated means the file was rewritten and persisted
	OutcomeUpdated

	// OutcomeFailed means reading or writing the file failed
	OutcomeFailed
)

// 📝 String returns the outcome name for logs and reports
func (o Outcome) String() string {
	switch o {
	case OutcomeNotFound:
		return "not-found"
	case OutcomeNoMatch:
		return "no-match"
	case OutcomeAlreadyMigrated:
		return "already-migrated"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeUpdated:
		return "updated"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 🔧 FileResult is the fate of one candidate file in a batch run.
type FileResult struct {
	// Path is the candidate path as enumerated
	Path string

	// Outcome is the file's terminal state
	Outcome Outcome

	// Applied is the number of occurrences rewritten
	Applied int

	// Declined is the number of occurrences left verbatim because a
	// required sub-field was missing
	Declined int

	// Injected reports whether the dependency-reference line was inserted
	Injected bool

	// Err is the underlying failure for OutcomeFailed
	Err error
}
