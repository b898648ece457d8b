package page

import "testing"

func TestClamp(t *testing.T) {
	b := DefaultBounds()
	tests := []struct {
		name  string
		req   Request
		total int
		want  Window
	}{
		{"first page", Request{Number: 1, Size: 10}, 25, Window{Number: 1, Size: 10, Count: 3, Start: 0, End: 10}},
		{"last partial page", Request{Number: 3, Size: 10}, 25, Window{Number: 3, Size: 10, Count: 3, Start: 20, End: 25}},
		{"beyond last page", Request{Number: 100, Size: 10}, 25, Window{Number: 3, Size: 10, Count: 3, Start: 20, End: 25}},
		{"page below one", Request{Number: -4, Size: 10}, 25, Window{Number: 1, Size: 10, Count: 3, Start: 0, End: 10}},
		{"size too small", Request{Number: 1, Size: 1}, 25, Window{Number: 1, Size: 10, Count: 3, Start: 0, End: 10}},
		{"size too large", Request{Number: 1, Size: 1000}, 250, Window{Number: 1, Size: 100, Count: 3, Start: 0, End: 100}},
		{"exact multiple", Request{Number: 2, Size: 10}, 20, Window{Number: 2, Size: 10, Count: 2, Start: 10, End: 20}},
		{"no results", Request{Number: 5, Size: 10}, 0, Window{Number: 1, Size: 10, Count: 0, Start: 0, End: 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.Clamp(tc.req, tc.total); got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	p := Empty[int]()
	if p.Items == nil || len(p.Items) != 0 {
		t.Error("items should be an empty, non-nil slice")
	}
	if p.PageCount != 0 || p.PageNumber != 1 || p.PageSize != 1 {
		t.Errorf("unexpected empty page %+v", p)
	}
}
