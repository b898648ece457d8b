package term

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/mediadex/internal/domain/medium"
)

const (
	comparison = `(?P<op>:|=|<=|>=|!=|<|>)`
	intNumber  = `(?P<n>[0-9]+)`
	decNumber  = `(?P<n>[0-9]+(?:\.[0-9]+)?)`
	tagBody    = `(?:[a-z]+:)?[a-zA-Z0-9.]+`
)

// Every pattern must match the whole token.
var (
	sortPattern = regexp.MustCompile(
		`^(?:sort|order):(?P<field>width|height|portrait|landscape|filesize|age|id)(?:_(?P<dir>desc|asc))?$`)

	countingPattern    = regexp.MustCompile(`^tags` + comparison + intNumber + `$`)
	categoryPattern    = regexp.MustCompile(`^(?P<category>[a-z]+)tags` + comparison + intNumber + `$`)
	ratingPattern      = regexp.MustCompile(`^rating:(?P<rating>u|s|e|q)$`)
	agePattern         = regexp.MustCompile(`^age` + comparison + intNumber + `(?P<period>w|weeks?|d|days?|m|months?|y|years?)$`)
	filesizePattern    = regexp.MustCompile(`^filesize` + comparison + intNumber + `(?P<unit>[kKmMgG][bB]?)$`)
	dimensionPattern   = regexp.MustCompile(`^(?P<dim>width|height)` + comparison + intNumber + `$`)
	aspectRatioPattern = regexp.MustCompile(`^aspectratio` + comparison + decNumber + `$`)
	rulePattern        = regexp.MustCompile(`^rule:` + intNumber + `$`)
	exactPattern       = regexp.MustCompile(`^\+(?P<name>` + tagBody + `)$`)
	positivePattern    = regexp.MustCompile(`^(?P<name>` + tagBody + `)$`)
)

type filterGrammar struct {
	pattern *regexp.Regexp
	build   func(p *Parser, g groups) (Filter, bool)
}

// filterGrammars is tried in order and the first match wins, so "tags>5"
// is a counting filter and never a tag literally named that way.
var filterGrammars = []filterGrammar{
	{countingPattern, func(_ *Parser, g groups) (Filter, bool) {
		op, n, ok := g.opInt()
		return Counting{Op: op, N: n}, ok
	}},
	{categoryPattern, func(_ *Parser, g groups) (Filter, bool) {
		op, n, ok := g.opInt()
		return Category{Category: g["category"], Op: op, N: n}, ok
	}},
	{ratingPattern, func(_ *Parser, g groups) (Filter, bool) {
		return RatingIs{Rating: medium.Rating(g["rating"])}, true
	}},
	{agePattern, func(p *Parser, g groups) (Filter, bool) {
		op, n, ok := g.opInt()
		return Age{Op: op, N: n, Period: Period(g["period"][0]), Today: p.now()}, ok
	}},
	{filesizePattern, func(_ *Parser, g groups) (Filter, bool) {
		op, n, ok := g.opInt()
		unit := Unit(strings.ToLower(g["unit"])[0])
		// the threshold in bytes must fit an int64
		if int64(n) > math.MaxInt64/unit.bytes() {
			return nil, false
		}
		return Filesize{Op: op, N: int64(n), Unit: unit}, ok
	}},
	{dimensionPattern, func(_ *Parser, g groups) (Filter, bool) {
		op, n, ok := g.opInt()
		return Dimension{Height: g["dim"] == "height", Op: op, N: n}, ok
	}},
	{aspectRatioPattern, func(_ *Parser, g groups) (Filter, bool) {
		op, ok := parseOp(g["op"])
		ratio, err := strconv.ParseFloat(g["n"], 64)
		return AspectRatio{Op: op, Ratio: ratio}, ok && err == nil
	}},
	{rulePattern, func(p *Parser, g groups) (Filter, bool) {
		idx, err := strconv.Atoi(g["n"])
		if err != nil {
			return nil, false
		}
		t := Violates{Index: idx}
		if p.Rules != nil {
			if r, ok := p.Rules.Rule(idx); ok {
				t.Rule = r
			}
		}
		return t, true
	}},
	{exactPattern, func(_ *Parser, g groups) (Filter, bool) {
		return Exact{Name: g["name"]}, true
	}},
	{positivePattern, func(_ *Parser, g groups) (Filter, bool) {
		return Positive{Name: g["name"]}, true
	}},
}

type groups map[string]string

func match(re *regexp.Regexp, s string) (groups, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	g := make(groups, len(m))
	for i, name := range re.SubexpNames() {
		if name != "" {
			g[name] = m[i]
		}
	}
	return g, true
}

func (g groups) opInt() (Op, int, bool) {
	op, ok := parseOp(g["op"])
	if !ok {
		return "", 0, false
	}
	n, err := strconv.Atoi(g["n"])
	if err != nil {
		return "", 0, false
	}
	return op, n, true
}

// Terms is a parsed query.
type Terms struct {
	Filters []Filter
	Sort    *Sort
}

// Empty reports whether the query had no recognized term at all.
func (t Terms) Empty() bool {
	return len(t.Filters) == 0 && t.Sort == nil
}

// Add appends f unless an equal filter is already present.
func (t *Terms) Add(f Filter) {
	key := f.String()
	for _, have := range t.Filters {
		if have.String() == key {
			return
		}
	}
	t.Filters = append(t.Filters, f)
}

// Parser turns query strings into terms.
type Parser struct {
	// Rules resolves rule:n filters. Nil makes every rule filter match nothing.
	Rules Rules
	// Now is the clock for age filters. Nil means time.Now.
	Now func() time.Time
}

func (p *Parser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Parse splits query on whitespace and parses each token.
// Unrecognized tokens are dropped. Only the first sort term counts.
func (p *Parser) Parse(query string) Terms {
	var terms Terms
	for _, tok := range strings.Fields(query) {
		if s, ok := ParseSort(tok); ok {
			if terms.Sort == nil {
				terms.Sort = &s
			}
			continue
		}
		if f, ok := p.ParseFilter(tok); ok {
			terms.Add(f)
		}
	}
	return terms
}

// ParseSort parses a sort:/order: directive.
func ParseSort(tok string) (Sort, bool) {
	g, ok := match(sortPattern, tok)
	if !ok {
		return Sort{}, false
	}
	return NewSort(SortField(g["field"]), g["dir"] != "asc"), true
}

// ParseFilter parses one filter token. A leading "-" negates it.
func (p *Parser) ParseFilter(tok string) (Filter, bool) {
	negate := false
	if strings.HasPrefix(tok, "-") {
		negate = true
		tok = tok[1:]
	}
	if tok == "" {
		return nil, false
	}

	for _, fg := range filterGrammars {
		g, ok := match(fg.pattern, tok)
		if !ok {
			continue
		}
		f, ok := fg.build(p, g)
		if !ok {
			return nil, false
		}
		if negate {
			f = Negative{Inner: f}
		}
		return f, true
	}
	return nil, false
}
