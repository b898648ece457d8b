package term

import "cmp"

// Op is a comparison operator of a numeric filter.
type Op string

// Supported operators. ":" is accepted by the parser and normalized to Eq.
const (
	Eq Op = "="
	Lt Op = "<"
	Gt Op = ">"
	Le Op = "<="
	Ge Op = ">="
	Ne Op = "!="
)

func parseOp(s string) (Op, bool) {
	switch s {
	case ":", "=":
		return Eq, true
	case "<":
		return Lt, true
	case ">":
		return Gt, true
	case "<=":
		return Le, true
	case ">=":
		return Ge, true
	case "!=":
		return Ne, true
	}
	return "", false
}

// compare evaluates "x op y".
func compare[T cmp.Ordered](op Op, x, y T) bool {
	c := cmp.Compare(x, y)
	switch op {
	case Eq:
		return c == 0
	case Lt:
		return c < 0
	case Gt:
		return c > 0
	case Le:
		return c <= 0
	case Ge:
		return c >= 0
	case Ne:
		return c != 0
	}
	return false
}
