package batch

import "fmt"

// 📊 Report aggregates the per-file outcomes of one batch run, in the
// order the candidates were processed.
type Report struct {
	Results []FileResult
}

// 📝 Add appends one file's result
func (r *Report) Add(res FileResult) {
	r.Results = append(r.Results, res)
}

// 🔢 Total returns the number of candidates accounted for
func (r *Report) Total() int {
	return len(r.Results)
}

// 🔢 Updated returns the number of files rewritten and persisted
func (r *Report) Updated() int {
	return r.count(OutcomeUpdated)
}

// 🔢 Failed returns the number of files that hit an I/O failure
func (r *Report) Failed() int {
	return r.count(OutcomeFailed)
}

// 🔢 Declined returns the total occurrences left verbatim across the run
func (r *Report) Declined() int {
	n := 0
	for _, res := range r.Results {
		n += res.Declined
	}
	return n
}

func (r *Report) count(outcome Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}

// 📝 Summary returns the final tally line
func (r *Report) Summary() string {
	return fmt.Sprintf("Complete! Updated %d/%d files", r.Updated(), r.Total())
}
