package search

import (
	"github.com/kailas-cloud/mediadex/internal/domain/medium"
	"github.com/kailas-cloud/mediadex/internal/domain/search/term"
)

// Visibility is what the caller may see.
type Visibility struct {
	// SFW restricts results to safe media.
	SFW bool
	// Admin lifts the ban on explicit and unrated media.
	Admin bool
}

// Restricted is the most restrictive visibility.
var Restricted = Visibility{SFW: true}

// censor returns the filters visibility forces on every query.
func (v Visibility) censor() []term.Filter {
	var out []term.Filter
	if v.SFW {
		out = append(out, term.RatingIs{Rating: medium.Safe})
	}
	if !v.Admin {
		out = append(out,
			term.Negative{Inner: term.RatingIs{Rating: medium.Explicit}},
			term.Negative{Inner: term.RatingIs{Rating: medium.Unrated}},
		)
	}
	return out
}

// Allows reports whether a medium rated r is visible.
func (v Visibility) Allows(r medium.Rating) bool {
	doc := medium.Tiny{Rating: r}
	for _, f := range v.censor() {
		if !f.AppliesTo(&doc) {
			return false
		}
	}
	return true
}
