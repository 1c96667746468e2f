package usersvc

import (
	"testing"
	"time"

	"github.com/rzbill/rolo/internal/store"
)

func filterRecord() store.Record {
	return store.Record{
		ID:          7,
		DisplayName: "ada",
		Region:      "Norway",
		CreatedAt:   time.UnixMilli(1700000000000).UTC(),
	}
}

func TestFilterMatchesFields(t *testing.T) {
	cases := []struct {
		expr string
		want bool
	}{
		{`id == 7`, true},
		{`id > 100`, false},
		{`region == "Norway"`, true},
		{`region == "Chile"`, false},
		{`display_name.startsWith("a")`, true},
		{`created_ms >= 1700000000000`, true},
		{`region == "Norway" && id < 10`, true},
	}
	for _, tc := range cases {
		f, err := newListFilter(tc.expr)
		if err != nil {
			t.Fatalf("compile %q: %v", tc.expr, err)
		}
		if got := f.Eval(filterRecord()); got != tc.want {
			t.Fatalf("eval %q: got %v want %v", tc.expr, got, tc.want)
		}
	}
}

func TestFilterEmptyMatchesAll(t *testing.T) {
	f, err := newListFilter("   ")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !f.Eval(filterRecord()) {
		t.Fatal("empty filter should match everything")
	}
}

func TestFilterRejectsBadExpression(t *testing.T) {
	if _, err := newListFilter(`region ==`); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := newListFilter(`unknown_field == 1`); err == nil {
		t.Fatal("expected check error for unknown variable")
	}
}

func TestFilterNonBooleanResultIsNoMatch(t *testing.T) {
	f, err := newListFilter(`id`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if f.Eval(filterRecord()) {
		t.Fatal("non-boolean result should not match")
	}
}
