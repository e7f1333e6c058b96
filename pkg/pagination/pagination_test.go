package pagination

import "testing"

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		want  int
	}{
		{0, 0},
		{1, 1},
		{10, 1},
		{11, 2},
		{25, 3},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total); got != tc.want {
			t.Fatalf("TotalPages(%d) = %d, want %d", tc.total, got, tc.want)
		}
	}
}

func TestClampPage(t *testing.T) {
	if got := ClampPage(0, 3); got != 1 {
		t.Fatalf("expected page floor of 1, got %d", got)
	}
	if got := ClampPage(7, 3); got != 3 {
		t.Fatalf("expected clamp to last page, got %d", got)
	}
	if got := ClampPage(2, 3); got != 2 {
		t.Fatalf("in-range page must pass through, got %d", got)
	}
	// zero pages (empty result) still resolves to page 1 for a stable offset
	if got := ClampPage(5, 0); got != 1 {
		t.Fatalf("expected page 1 for empty result, got %d", got)
	}
}

func TestOffset(t *testing.T) {
	if got := Offset(1); got != 0 {
		t.Fatalf("page 1 offset = %d", got)
	}
	if got := Offset(3); got != 20 {
		t.Fatalf("page 3 offset = %d", got)
	}
	if got := Offset(-1); got != 0 {
		t.Fatalf("negative page offset = %d", got)
	}
}
