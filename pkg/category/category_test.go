package category

import "testing"

func TestStatusOf(t *testing.T) {
	tests := []struct {
		count int
		want  Status
	}{
		{-1, Error},
		{-7, Error},
		{0, Unavailable},
		{1, Available},
		{42, Available},
	}
	for _, tc := range tests {
		if got := StatusOf(tc.count); got != tc.want {
			t.Fatalf("StatusOf(%d) = %v, want %v", tc.count, got, tc.want)
		}
	}
}

func TestCountsOrdersAndFilters(t *testing.T) {
	raw := map[string]int{
		"데크":  2,
		"자갈":  -1,
		"고급":  3,
		"캠핑카": 9,
		"일반":  -5,
	}
	got := Counts(raw)
	if len(got) != 4 {
		t.Fatalf("expected 4 recognised counts, got %d", len(got))
	}
	wantOrder := []Category{Premium, Standard, Gravel, Deck}
	for i, c := range got {
		if c.Category != wantOrder[i] {
			t.Fatalf("position %d: got %s, want %s", i, c.Category.ID, wantOrder[i].ID)
		}
	}
	if got[1].Value != ErrorCount {
		t.Fatalf("expected -5 normalised to %d, got %d", ErrorCount, got[1].Value)
	}
}

func TestCountsSkipsMissingCategories(t *testing.T) {
	got := Counts(map[string]int{"일반": 0})
	if len(got) != 1 || got[0].Category != Standard {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if Counts(nil) != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestHasAvailability(t *testing.T) {
	if HasAvailability(map[string]int{"고급": 0, "자갈": -1}) {
		t.Fatalf("expected no availability")
	}
	if !HasAvailability(map[string]int{"데크": 1}) {
		t.Fatalf("expected availability")
	}
}

func TestLookup(t *testing.T) {
	if c, ok := ByLabel("자갈"); !ok || c != Gravel {
		t.Fatalf("ByLabel failed: %+v %v", c, ok)
	}
	if c, ok := ByID("deck"); !ok || c != Deck {
		t.Fatalf("ByID failed: %+v %v", c, ok)
	}
	if _, ok := ByID("nope"); ok {
		t.Fatalf("expected unknown id to miss")
	}
}
