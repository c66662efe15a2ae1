package sql

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mashdb/MashDB/core"
)

// ConditionOperator is a comparison operator of a WHERE predicate.
type ConditionOperator int

const (
	Eq ConditionOperator = iota
	Ne
	Gt
	Lt
	Ge
	Le
	LikeOp
)

func (op ConditionOperator) String() string {
	switch op {
	case Eq:
		return "="
	case Ne:
		return "!="
	case Gt:
		return ">"
	case Lt:
		return "<"
	case Ge:
		return ">="
	case Le:
		return "<="
	case LikeOp:
		return "LIKE"
	default:
		return "?"
	}
}

// Condition is a single "<column> <op> <literal>" predicate. Value holds the
// literal text with any quotes already stripped; evaluation interprets it
// against each stored value's canonical form.
type Condition struct {
	Column   string
	Operator ConditionOperator
	Value    string
}

// ParseCondition parses a standalone predicate such as "age >= 25".
func ParseCondition(text string) (Condition, error) {
	if strings.TrimSpace(text) == "" {
		return Condition{}, fmt.Errorf("%w: empty condition", ErrSyntax)
	}
	parser := NewParser(text)
	condition, err := parser.parseCondition()
	if err != nil {
		return Condition{}, err
	}
	if parser.current.Type != EOF {
		return Condition{}, syntaxErrorf("unexpected trailing input %s", parser.current)
	}
	return condition, nil
}

// Evaluate applies the predicate to one stored value.
func (c Condition) Evaluate(v core.Value) (bool, error) {
	switch c.Operator {
	case Eq:
		return c.matchesEqual(v), nil
	case Ne:
		return !c.matchesEqual(v), nil
	case Gt:
		return compareOrdered(v.Canonical(), c.Value) > 0, nil
	case Lt:
		return compareOrdered(v.Canonical(), c.Value) < 0, nil
	case Ge:
		return c.matchesEqual(v) || compareOrdered(v.Canonical(), c.Value) > 0, nil
	case Le:
		return c.matchesEqual(v) || compareOrdered(v.Canonical(), c.Value) < 0, nil
	case LikeOp:
		return matchesLike(v.Canonical(), c.Value), nil
	default:
		return false, fmt.Errorf("%w: %d", ErrUnsupportedOperator, c.Operator)
	}
}

// matchesEqual compares the stored value's canonical form against the
// literal. The literal "null" matches a stored NULL and a stored empty
// string; everything else compares as trimmed text.
func (c Condition) matchesEqual(v core.Value) bool {
	literal := strings.TrimSpace(c.Value)
	if strings.EqualFold(literal, "null") {
		return v.IsNull() || v.Canonical() == ""
	}
	return strings.TrimSpace(v.Canonical()) == literal
}

// compareOrdered compares two canonical text forms numerically when both
// parse as numbers: as floats when either side contains a decimal point,
// otherwise as integers. Values that fail to parse fall back to
// lexicographic order.
func compareOrdered(stored, literal string) int {
	stored = strings.TrimSpace(stored)
	literal = strings.TrimSpace(literal)

	if strings.Contains(stored, ".") || strings.Contains(literal, ".") {
		a, errA := strconv.ParseFloat(stored, 64)
		b, errB := strconv.ParseFloat(literal, 64)
		if errA == nil && errB == nil {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			default:
				return 0
			}
		}
	} else {
		a, errA := strconv.ParseInt(stored, 10, 64)
		b, errB := strconv.ParseInt(literal, 10, 64)
		if errA == nil && errB == nil {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			default:
				return 0
			}
		}
	}

	return strings.Compare(stored, literal)
}

// matchesLike matches a stored value against a LIKE pattern. Percent matches
// any run of characters, underscore matches a single character, and the
// match is anchored and case-insensitive. Patterns that do not compile
// match nothing.
func matchesLike(stored, pattern string) bool {
	var builder strings.Builder
	builder.WriteString("(?i)^")
	for _, r := range pattern {
		switch r {
		case '%':
			builder.WriteString(".*")
		case '_':
			builder.WriteString(".")
		default:
			builder.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	builder.WriteString("$")

	matcher, err := regexp.Compile(builder.String())
	if err != nil {
		return false
	}
	return matcher.MatchString(stored)
}
