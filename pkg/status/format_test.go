package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/migrc/pkg/batch"
	"gitlab.com/tozd/go/errors"
)

func TestDefaultOutcomeFormatter_FormatFileOutcome(t *testing.T) {
	formatter := NewDefaultOutcomeFormatter()

	tests := []struct {
		name string
		res  batch.FileResult
		want string
	}{
		{
			name: "updated",
			res: batch.FileResult{
				Path:    "src/api/admin/orders/route.ts",
				Outcome: batch.OutcomeUpdated,
				Applied: 2,
			},
			want: "Updated: src/api/admin/orders/route.ts (2 change(s))",
		},
		{
			name: "unchanged",
			res: batch.FileResult{
				Path:    "src/api/admin/orders/route.ts",
				Outcome: batch.OutcomeUnchanged,
			},
			want: "No changes needed: src/api/admin/orders/route.ts",
		},
		{
			name: "no_match",
			res: batch.FileResult{
				Path:    "src/api/admin/orders/route.ts",
				Outcome: batch.OutcomeNoMatch,
			},
			want: "No changes needed: src/api/admin/orders/route.ts",
		},
		{
			name: "failed",
			res: batch.FileResult{
				Path:    "src/api/admin/orders/route.ts",
				Outcome: batch.OutcomeFailed,
				Err:     errors.New("permission denied"),
			},
			want: "Error updating src/api/admin/orders/route.ts: permission denied",
		},
		{
			name: "not_found",
			res: batch.FileResult{
				Path:    "src/api/admin/orders/route.ts",
				Outcome: batch.OutcomeNotFound,
			},
			want: "File not found: src/api/admin/orders/route.ts",
		},
		{
			name: "already_migrated",
			res: batch.FileResult{
				Path:    "src/api/admin/orders/route.ts",
				Outcome: batch.OutcomeAlreadyMigrated,
			},
			want: "Already migrated: src/api/admin/orders/route.ts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatter.FormatFileOutcome(tt.res))
		})
	}
}

func TestDefaultOutcomeFormatter_FormatPartial(t *testing.T) {
	formatter := NewDefaultOutcomeFormatter()
	got := formatter.FormatPartial(batch.FileResult{
		Path:     "src/api/admin/orders/route.ts",
		Declined: 1,
	})
	assert.Equal(t, "Partial match in src/api/admin/orders/route.ts: 1 occurrence(s) left as-is", got)
}

func TestDefaultOutcomeFormatter_FormatSummary(t *testing.T) {
	formatter := NewDefaultOutcomeFormatter()
	assert.Equal(t, "Complete! Updated 18/23 files", formatter.FormatSummary(18, 23))
	assert.Equal(t, "Complete! Updated 0/0 files", formatter.FormatSummary(0, 0))
}
