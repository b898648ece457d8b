package page

// Default bounds for page sizes.
const (
	DefaultMinSize = 10
	DefaultMaxSize = 100
)

// Bounds limits the page size a caller may request.
type Bounds struct {
	MinSize int
	MaxSize int
}

// DefaultBounds returns [10, 100].
func DefaultBounds() Bounds {
	return Bounds{MinSize: DefaultMinSize, MaxSize: DefaultMaxSize}
}

// Request is a requested page, 1-based.
type Request struct {
	Number int
	Size   int
}

// Page is one page of results.
type Page[T any] struct {
	Items      []T
	PageCount  int
	PageNumber int
	PageSize   int
}

// Empty is the page returned when nothing matched.
func Empty[T any]() Page[T] {
	return Page[T]{Items: []T{}, PageCount: 0, PageNumber: 1, PageSize: 1}
}

// Window is the clamped slice of a result list selected by a request.
type Window struct {
	Number int
	Size   int
	Count  int
	Start  int
	End    int
}

// Clamp resolves req against total results. Out-of-range input is clamped,
// never rejected: page numbers below 1 become 1, sizes are forced into
// bounds, and a page past the end becomes the last page.
func (b Bounds) Clamp(req Request, total int) Window {
	size := min(max(req.Size, b.MinSize), b.MaxSize)
	number := max(req.Number, 1)

	count := total / size
	if total%size != 0 {
		count++
	}
	number = max(min(number, count), 1)

	start := min((number-1)*size, total)
	end := min(start+size, total)
	return Window{Number: number, Size: size, Count: count, Start: start, End: end}
}
