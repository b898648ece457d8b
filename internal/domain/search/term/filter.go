package term

import (
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/mediadex/internal/domain/medium"
)

// Filter is one predicate over tiny documents. The set of variants is closed.
// String returns the canonical form used to collapse equal terms.
type Filter interface {
	AppliesTo(doc *medium.Tiny) bool
	String() string
	isFilter()
}

// Rule is a tagging rule a medium can violate.
type Rule interface {
	IsViolatedBy(doc *medium.Tiny) bool
}

// Rules resolves a rule by its index.
type Rules interface {
	Rule(index int) (Rule, bool)
}

// Counting compares the number of innate tags.
type Counting struct {
	Op Op
	N  int
}

func (t Counting) AppliesTo(doc *medium.Tiny) bool { return compare(t.Op, len(doc.InnateTags), t.N) }
func (t Counting) String() string                  { return "tags" + string(t.Op) + strconv.Itoa(t.N) }
func (Counting) isFilter()                         {}

// Category compares the number of innate tags in one category.
type Category struct {
	Category string
	Op       Op
	N        int
}

func (t Category) AppliesTo(doc *medium.Tiny) bool {
	prefix := t.Category + ":"
	n := 0
	for name := range doc.InnateTags {
		if strings.HasPrefix(name, prefix) {
			n++
		}
	}
	return compare(t.Op, n, t.N)
}

func (t Category) String() string {
	return t.Category + "tags" + string(t.Op) + strconv.Itoa(t.N)
}

func (Category) isFilter() {}

// RatingIs matches media with exactly one rating.
type RatingIs struct {
	Rating medium.Rating
}

func (t RatingIs) AppliesTo(doc *medium.Tiny) bool { return doc.Rating == t.Rating }
func (t RatingIs) String() string                  { return "rating:" + string(t.Rating) }
func (RatingIs) isFilter()                         {}

// Period is the unit of an age filter.
type Period byte

// Age periods. A month counts as four weeks and a year as 52 weeks.
const (
	Week  Period = 'w'
	Day   Period = 'd'
	Month Period = 'm'
	Year  Period = 'y'
)

func (p Period) days() int {
	switch p {
	case Day:
		return 1
	case Week:
		return 7
	case Month:
		return 28
	case Year:
		return 364
	}
	return 0
}

// Age compares "today - N periods" against the insertion date, by calendar day.
type Age struct {
	Op     Op
	N      int
	Period Period
	Today  time.Time
}

func (t Age) AppliesTo(doc *medium.Tiny) bool {
	target := day(t.Today).AddDate(0, 0, -t.N*t.Period.days())
	return compare(t.Op, target.Unix(), day(doc.InsertDate).Unix())
}

func (t Age) String() string {
	return "age" + string(t.Op) + strconv.Itoa(t.N) + string(t.Period)
}

func (Age) isFilter() {}

func day(ts time.Time) time.Time {
	y, m, d := ts.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Unit is the size unit of a filesize filter.
type Unit byte

// Filesize units, powers of 1024.
const (
	Kibi Unit = 'k'
	Mebi Unit = 'm'
	Gibi Unit = 'g'
)

func (u Unit) bytes() int64 {
	switch u {
	case Kibi:
		return 1 << 10
	case Mebi:
		return 1 << 20
	case Gibi:
		return 1 << 30
	}
	return 0
}

// Filesize compares the file size in bytes.
type Filesize struct {
	Op   Op
	N    int64
	Unit Unit
}

func (t Filesize) AppliesTo(doc *medium.Tiny) bool {
	return compare(t.Op, doc.Filesize, t.N*t.Unit.bytes())
}

func (t Filesize) String() string {
	return "filesize" + string(t.Op) + strconv.FormatInt(t.N, 10) + string(t.Unit)
}

func (Filesize) isFilter() {}

// Dimension compares width or height in pixels.
type Dimension struct {
	Height bool
	Op     Op
	N      int
}

func (t Dimension) AppliesTo(doc *medium.Tiny) bool {
	v := doc.Width
	if t.Height {
		v = doc.Height
	}
	return compare(t.Op, v, t.N)
}

func (t Dimension) String() string {
	name := "width"
	if t.Height {
		name = "height"
	}
	return name + string(t.Op) + strconv.Itoa(t.N)
}

func (Dimension) isFilter() {}

// AspectRatio compares width/height. Media without a height never match.
type AspectRatio struct {
	Op    Op
	Ratio float64
}

func (t AspectRatio) AppliesTo(doc *medium.Tiny) bool {
	if doc.Height == 0 {
		return false
	}
	return compare(t.Op, doc.AspectRatio(), t.Ratio)
}

func (t AspectRatio) String() string {
	return "aspectratio" + string(t.Op) + strconv.FormatFloat(t.Ratio, 'f', -1, 64)
}

func (AspectRatio) isFilter() {}

// Violates matches media violating the rule at Index. An unknown rule matches nothing.
type Violates struct {
	Index int
	Rule  Rule
}

func (t Violates) AppliesTo(doc *medium.Tiny) bool {
	if t.Rule == nil {
		return false
	}
	return t.Rule.IsViolatedBy(doc)
}

func (t Violates) String() string { return "rule:" + strconv.Itoa(t.Index) }
func (Violates) isFilter()        {}

// Exact matches an innate tag only, ignoring implications and aliases.
type Exact struct {
	Name string
}

func (t Exact) AppliesTo(doc *medium.Tiny) bool { return doc.InnateTags.Has(t.Name) }
func (t Exact) String() string                  { return "+" + t.Name }
func (Exact) isFilter()                         {}

// Positive matches a searchable tag name, so implied tags and aliases count.
type Positive struct {
	Name string
}

func (t Positive) AppliesTo(doc *medium.Tiny) bool { return doc.SearchableTags.Has(t.Name) }
func (t Positive) String() string                  { return t.Name }
func (Positive) isFilter()                         {}

// Negative inverts Inner.
type Negative struct {
	Inner Filter
}

func (t Negative) AppliesTo(doc *medium.Tiny) bool { return !t.Inner.AppliesTo(doc) }
func (t Negative) String() string                  { return "!" + t.Inner.String() }
func (Negative) isFilter()                         {}
