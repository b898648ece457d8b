package term

import (
	"cmp"
	"slices"

	"github.com/kailas-cloud/mediadex/internal/domain/medium"
)

// SortField is the value a sort term orders by.
type SortField string

// Sort fields in parser priority order.
const (
	ByWidth     SortField = "width"
	ByHeight    SortField = "height"
	ByPortrait  SortField = "portrait"
	ByLandscape SortField = "landscape"
	ByFilesize  SortField = "filesize"
	ByAge       SortField = "age"
	ByID        SortField = "id"
)

// Sort orders documents by one field.
type Sort struct {
	Field      SortField
	Descending bool
}

// DefaultSort orders by id, newest first.
var DefaultSort = Sort{Field: ByID, Descending: true}

// NewSort builds a sort term from the requested direction.
// Age sorts by id with the direction inverted, so the default lists oldest first.
func NewSort(field SortField, descending bool) Sort {
	if field == ByAge {
		descending = !descending
	}
	return Sort{Field: field, Descending: descending}
}

// Apply sorts docs in place. Equal keys fall back to id in the same direction.
func (s Sort) Apply(docs []medium.Tiny) {
	slices.SortStableFunc(docs, func(a, b medium.Tiny) int {
		c := s.compare(&a, &b)
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if s.Descending {
			return -c
		}
		return c
	})
}

func (s Sort) compare(a, b *medium.Tiny) int {
	switch s.Field {
	case ByWidth:
		return cmp.Compare(a.Width, b.Width)
	case ByHeight:
		return cmp.Compare(a.Height, b.Height)
	case ByPortrait:
		return cmp.Compare(ratio(a.Height, a.Width), ratio(b.Height, b.Width))
	case ByLandscape:
		return cmp.Compare(ratio(a.Width, a.Height), ratio(b.Width, b.Height))
	case ByFilesize:
		return cmp.Compare(a.Filesize, b.Filesize)
	default:
		return cmp.Compare(a.ID, b.ID)
	}
}

func ratio(x, y int) float64 {
	if y == 0 {
		return 0
	}
	return float64(x) / float64(y)
}
