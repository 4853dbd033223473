package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"
)

func TestReport_Tallies(t *testing.T) {
	rep := &Report{}
	rep.Add(FileResult{Path: "a.ts", Outcome: OutcomeUpdated, Applied: 2})
	rep.Add(FileResult{Path: "b.ts", Outcome: OutcomeUpdated, Applied: 1, Declined: 1})
	rep.Add(FileResult{Path: "c.ts", Outcome: OutcomeNoMatch})
	rep.Add(FileResult{Path: "d.ts", Outcome: OutcomeNotFound})
	rep.Add(FileResult{Path: "e.ts", Outcome: OutcomeFailed, Err: errors.New("boom")})

	assert.Equal(t, 5, rep.Total())
	assert.Equal(t, 2, rep.Updated())
	assert.Equal(t, 1, rep.Failed())
	assert.Equal(t, 1, rep.Declined())
	assert.Equal(t, "Complete! Updated 2/5 files", rep.Summary())
}

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeNotFound, "not-found"},
		{OutcomeNoMatch, "no-match"},
		{OutcomeAlreadyMigrated, "already-migrated"},
		{OutcomeUnchanged, "unchanged"},
		{OutcomeUpdated, "updated"},
		{OutcomeFailed, "failed"},
		{Outcome(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.outcome.String())
	}
}
