package rewrite

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInjection_Apply(t *testing.T) {
	inj := &Injection{
		Symbol: "requireAdmin",
		Line:   `import { requireAdmin } from "lib/auth";`,
		Anchor: regexp.MustCompile(`^import .* from "server";$`),
		Remove: []*regexp.Regexp{
			regexp.MustCompile(`^import \{ getSession \} from "session";$`),
		},
	}

	tests := []struct {
		name         string
		text         string
		want         string
		wantInjected bool
	}{
		{
			name: "inserts_after_anchor",
			text: `import { handler } from "server";

export function GET() {}`,
			want: `import { handler } from "server";
import { requireAdmin } from "lib/auth";

export function GET() {}`,
			wantInjected: true,
		},
		{
			name: "removes_superseded_imports",
			text: `import { handler } from "server";
import { getSession } from "session";

export function GET() {}`,
			want: `import { handler } from "server";
import { requireAdmin } from "lib/auth";

export function GET() {}`,
			wantInjected: true,
		},
		{
			name: "symbol_present_is_noop",
			text: `import { handler } from "server";
import { requireAdmin } from "lib/auth";

export function GET() {}`,
			want: `import { handler } from "server";
import { requireAdmin } from "lib/auth";

export function GET() {}`,
			wantInjected: false,
		},
		{
			name: "no_anchor_means_no_change_at_all",
			text: `import { getSession } from "session";

export function GET() {}`,
			want: `import { getSession } from "session";

export function GET() {}`,
			wantInjected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, injected := inj.Apply(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantInjected, injected)
		})
	}
}

func TestInjection_ApplyTwiceNeverDuplicates(t *testing.T) {
	inj := &Injection{
		Symbol: "requireAdmin",
		Line:   `import { requireAdmin } from "lib/auth";`,
		Anchor: regexp.MustCompile(`^import .* from "server";$`),
	}

	text := `import { handler } from "server";

export function GET() {}`

	once, injected := inj.Apply(text)
	assert.True(t, injected)

	twice, injected := inj.Apply(once)
	assert.False(t, injected)
	assert.Equal(t, once, twice)
}
