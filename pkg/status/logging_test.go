package status

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/migrc/pkg/batch"
	"github.com/walteh/migrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

func newTestReporter() (*ConsoleReporter, *bytes.Buffer) {
	pterm.DisableStyling()
	buf := &bytes.Buffer{}
	logger := log.New(buf, zerolog.InfoLevel)
	return NewConsoleReporter(logger), buf
}

func TestConsoleReporter_FileResult(t *testing.T) {
	tests := []struct {
		name string
		res  batch.FileResult
		want []string
	}{
		{
			name: "updated",
			res: batch.FileResult{
				Path:    "route.ts",
				Outcome: batch.OutcomeUpdated,
				Applied: 1,
			},
			want: []string{"Updated: route.ts (1 change(s))"},
		},
		{
			name: "failed",
			res: batch.FileResult{
				Path:    "route.ts",
				Outcome: batch.OutcomeFailed,
				Err:     errors.New("disk full"),
			},
			want: []string{"Error updating route.ts: disk full"},
		},
		{
			name: "partial_match_warned",
			res: batch.FileResult{
				Path:     "route.ts",
				Outcome:  batch.OutcomeUpdated,
				Applied:  1,
				Declined: 2,
			},
			want: []string{
				"Updated: route.ts (1 change(s))",
				"Partial match in route.ts: 2 occurrence(s) left as-is",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter, buf := newTestReporter()

			reporter.FileResult(tt.res)

			output := buf.String()
			for _, want := range tt.want {
				assert.Contains(t, output, want)
			}
		})
	}
}

func TestConsoleReporter_Summary(t *testing.T) {
	reporter, buf := newTestReporter()

	rep := &batch.Report{}
	rep.Add(batch.FileResult{Path: "a.ts", Outcome: batch.OutcomeUpdated, Applied: 1})
	rep.Add(batch.FileResult{Path: "b.ts", Outcome: batch.OutcomeNoMatch})

	reporter.Summary(rep)

	output := buf.String()
	require.Contains(t, output, "Complete! Updated 1/2 files")
	assert.NotContains(t, output, "file(s) failed")
	assert.NotContains(t, output, "left as-is across the run")
}

func TestConsoleReporter_SummaryWarnsOnFailuresAndPartials(t *testing.T) {
	reporter, buf := newTestReporter()

	rep := &batch.Report{}
	rep.Add(batch.FileResult{Path: "a.ts", Outcome: batch.OutcomeUpdated, Applied: 1, Declined: 2})
	rep.Add(batch.FileResult{Path: "b.ts", Outcome: batch.OutcomeFailed, Err: errors.New("disk full")})
	rep.Add(batch.FileResult{Path: "c.ts", Outcome: batch.OutcomeFailed, Err: errors.New("disk full")})

	reporter.Summary(rep)

	output := buf.String()
	assert.Contains(t, output, "2 file(s) failed")
	assert.Contains(t, output, "2 occurrence(s) left as-is across the run")
	assert.Contains(t, output, "Complete! Updated 1/3 files")
}
