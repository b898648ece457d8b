package medium

import (
	"fmt"

	"github.com/kailas-cloud/mediadex/internal/domain"
)

// Rating is the content rating of a medium.
type Rating string

// Supported ratings.
const (
	Unrated      Rating = "u"
	Safe         Rating = "s"
	Questionable Rating = "q"
	Explicit     Rating = "e"
)

// IsValid reports whether r is one of the four known ratings.
func (r Rating) IsValid() bool {
	switch r {
	case Unrated, Safe, Questionable, Explicit:
		return true
	default:
		return false
	}
}

// ParseRating validates a stored rating value.
func ParseRating(s string) (Rating, error) {
	r := Rating(s)
	if !r.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidRating, s)
	}
	return r, nil
}
