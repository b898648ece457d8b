package term

import (
	"testing"
	"time"

	"github.com/kailas-cloud/mediadex/internal/domain/medium"
)

type fakeRule struct {
	violatedByFn func(doc *medium.Tiny) bool
}

func (r fakeRule) IsViolatedBy(doc *medium.Tiny) bool { return r.violatedByFn(doc) }

type fakeRules map[int]Rule

func (r fakeRules) Rule(i int) (Rule, bool) {
	rule, ok := r[i]
	return rule, ok
}

func TestParseFilter_Priority(t *testing.T) {
	p := &Parser{}
	tests := []struct {
		tok  string
		want string
	}{
		{"tags>5", "tags>5"},
		{"tags:5", "tags=5"},
		{"tags=5", "tags=5"},
		{"tags5", "tags5"},
		{"artisttags>=2", "artisttags>=2"},
		{"rating:s", "rating:s"},
		{"rating:x", "rating:x"},
		{"age<3weeks", "age<3w"},
		{"age>=1y", "age>=1y"},
		{"filesize>10MB", "filesize>10m"},
		{"filesize<=1k", "filesize<=1k"},
		{"width!=100", "width!=100"},
		{"height<20", "height<20"},
		{"aspectratio>1.5", "aspectratio>1.5"},
		{"rule:3", "rule:3"},
		{"+cat", "+cat"},
		{"cat", "cat"},
		{"artist:someone", "artist:someone"},
		{"-cat", "!cat"},
		{"-tags>1", "!tags>1"},
	}
	for _, tc := range tests {
		f, ok := p.ParseFilter(tc.tok)
		if !ok {
			t.Errorf("%q: not recognized", tc.tok)
			continue
		}
		if got := f.String(); got != tc.want {
			t.Errorf("%q: got %q, want %q", tc.tok, got, tc.want)
		}
	}
}

func TestParseFilter_Kinds(t *testing.T) {
	p := &Parser{}
	if f, _ := p.ParseFilter("tags>5"); f.(Counting).N != 5 {
		t.Errorf("unexpected counting filter %#v", f)
	}
	if f, _ := p.ParseFilter("rating:x"); f == nil {
		t.Fatal("rating:x should fall through to a tag name")
	} else if _, ok := f.(Positive); !ok {
		t.Errorf("expected Positive, got %T", f)
	}
	if f, _ := p.ParseFilter("height=7"); !f.(Dimension).Height {
		t.Error("expected height dimension")
	}
}

func TestParseFilter_Rejected(t *testing.T) {
	p := &Parser{}
	for _, tok := range []string{"", "-", "--cat", "two words", "tags>", "a b", "Cat:x", "+",
		"filesize>9999999999g", "filesize<9007199254740993kb"} {
		if f, ok := p.ParseFilter(tok); ok {
			t.Errorf("%q should be rejected, got %v", tok, f)
		}
	}
}

func TestParseFilter_FilesizeAtLimit(t *testing.T) {
	p := &Parser{}
	f, ok := p.ParseFilter("filesize>8589934591g")
	if !ok {
		t.Fatal("largest representable gibibyte threshold should parse")
	}
	if f.AppliesTo(&medium.Tiny{Filesize: 1 << 10}) {
		t.Error("a 1 KiB file must not exceed the threshold")
	}
}

func TestParse_SortFirstWins(t *testing.T) {
	p := &Parser{}
	terms := p.Parse("cat sort:width_asc order:id")
	if terms.Sort == nil {
		t.Fatal("expected sort term")
	}
	if terms.Sort.Field != ByWidth || terms.Sort.Descending {
		t.Errorf("unexpected sort %+v", *terms.Sort)
	}
	if len(terms.Filters) != 1 {
		t.Errorf("expected 1 filter, got %d", len(terms.Filters))
	}
}

func TestParse_DefaultDescending(t *testing.T) {
	s, ok := ParseSort("sort:filesize")
	if !ok || !s.Descending {
		t.Fatalf("expected descending filesize sort, got %+v", s)
	}
}

func TestParse_AgeSortInverted(t *testing.T) {
	s, _ := ParseSort("sort:age")
	if s.Descending {
		t.Error("age sort should default to ascending ids")
	}
	s, _ = ParseSort("sort:age_asc")
	if !s.Descending {
		t.Error("age_asc should list newest ids first")
	}
}

func TestParse_Dedup(t *testing.T) {
	p := &Parser{}
	terms := p.Parse("tags:5 tags=5 cat cat -cat")
	if len(terms.Filters) != 3 {
		t.Fatalf("expected 3 distinct filters, got %v", terms.Filters)
	}
}

func TestParse_Unrecognized(t *testing.T) {
	p := &Parser{}
	terms := p.Parse("  !!! ??? ")
	if !terms.Empty() {
		t.Errorf("expected empty terms, got %+v", terms)
	}
}

func TestParse_RuleResolved(t *testing.T) {
	rule := fakeRule{violatedByFn: func(doc *medium.Tiny) bool { return doc.ID == 1 }}
	p := &Parser{Rules: fakeRules{0: rule}}

	f, ok := p.ParseFilter("rule:0")
	if !ok {
		t.Fatal("rule:0 not recognized")
	}
	if !f.AppliesTo(&medium.Tiny{ID: 1}) || f.AppliesTo(&medium.Tiny{ID: 2}) {
		t.Error("rule filter should delegate to the rule")
	}

	unknown, _ := p.ParseFilter("rule:9")
	if unknown.AppliesTo(&medium.Tiny{ID: 1}) {
		t.Error("unknown rule should match nothing")
	}
}

func TestParse_AgeUsesClock(t *testing.T) {
	now := time.Date(2024, 6, 30, 15, 0, 0, 0, time.UTC)
	p := &Parser{Now: func() time.Time { return now }}
	f, ok := p.ParseFilter("age<1w")
	if !ok {
		t.Fatal("age filter not recognized")
	}
	if f.(Age).Today != now {
		t.Error("age filter should capture the parser clock")
	}
}
