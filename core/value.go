package core

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	IntKind
	FloatKind
	TextKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "boolean"
	case IntKind:
		return "integer"
	case FloatKind:
		return "float"
	case TextKind:
		return "text"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the five kinds MashDB stores: null, boolean,
// integer, float, and text. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

func Null() Value              { return Value{kind: NullKind} }
func NewBool(b bool) Value     { return Value{kind: BoolKind, b: b} }
func NewInt(i int64) Value     { return Value{kind: IntKind, i: i} }
func NewFloat(f float64) Value { return Value{kind: FloatKind, f: f} }
func NewText(s string) Value   { return Value{kind: TextKind, s: s} }

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNull() bool   { return v.kind == NullKind }
func (v Value) Bool() bool     { return v.b }
func (v Value) Int() int64     { return v.i }
func (v Value) Float() float64 { return v.f }
func (v Value) Text() string   { return v.s }

var (
	intLiteral   = regexp.MustCompile(`^-?\d+$`)
	floatLiteral = regexp.MustCompile(`^-?\d+\.\d+$`)
)

// ParseLiteral classifies a bare literal token into a Value. First match
// wins: null keyword, boolean keyword, quoted span (quotes stripped, no
// escape processing), integer, float, then text verbatim. The same
// classification applies to INSERT value lists, UPDATE SET right-hand sides,
// and WHERE literal operands.
func ParseLiteral(token string) Value {
	switch {
	case strings.EqualFold(token, "null"):
		return Null()
	case strings.EqualFold(token, "true"):
		return NewBool(true)
	case strings.EqualFold(token, "false"):
		return NewBool(false)
	}

	if len(token) >= 2 {
		first, last := token[0], token[len(token)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			return NewText(token[1 : len(token)-1])
		}
	}

	if intLiteral.MatchString(token) {
		if i, err := strconv.ParseInt(token, 10, 64); err == nil {
			return NewInt(i)
		}
	}
	if floatLiteral.MatchString(token) {
		if f, err := strconv.ParseFloat(token, 64); err == nil {
			return NewFloat(f)
		}
	}

	return NewText(token)
}

// Canonical returns the comparable text form of a value: integers as decimal
// digits, floats with trailing zeros and a trailing decimal point trimmed,
// booleans as true/false, Null as the sentinel "NULL", text verbatim.
func (v Value) Canonical() string {
	switch v.kind {
	case NullKind:
		return "NULL"
	case BoolKind:
		if v.b {
			return "true"
		}
		return "false"
	case IntKind:
		return strconv.FormatInt(v.i, 10)
	case FloatKind:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case TextKind:
		return v.s
	default:
		return ""
	}
}

// Compare orders two values for ORDER BY: Null sorts lowest, booleans as
// false<true, numeric kinds numerically (int and float mix), everything else
// by canonical text.
func Compare(a, b Value) int {
	if a.kind == NullKind || b.kind == NullKind {
		if a.kind == b.kind {
			return 0
		}
		if a.kind == NullKind {
			return -1
		}
		return 1
	}

	if a.isNumeric() && b.isNumeric() {
		af, bf := a.asFloat(), b.asFloat()
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	if a.kind == BoolKind && b.kind == BoolKind {
		switch {
		case !a.b && b.b:
			return -1
		case a.b && !b.b:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(a.Canonical(), b.Canonical())
}

func (v Value) isNumeric() bool {
	return v.kind == IntKind || v.kind == FloatKind
}

func (v Value) asFloat() float64 {
	if v.kind == IntKind {
		return float64(v.i)
	}
	return v.f
}

// Equal reports exact equality of kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case NullKind:
		return true
	case BoolKind:
		return v.b == other.b
	case IntKind:
		return v.i == other.i
	case FloatKind:
		return v.f == other.f
	default:
		return v.s == other.s
	}
}

// MarshalJSON writes the native JSON form: null, bool, number, or string.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case NullKind:
		return []byte("null"), nil
	case BoolKind:
		return json.Marshal(v.b)
	case IntKind:
		return json.Marshal(v.i)
	case FloatKind:
		return json.Marshal(v.f)
	case TextKind:
		return json.Marshal(v.s)
	default:
		return nil, fmt.Errorf("cannot marshal value of kind %d", v.kind)
	}
}

// UnmarshalJSON reads the native JSON form back into the matching kind.
// Numbers without a fraction or exponent become integers.
func (v *Value) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "null" {
		*v = Null()
		return nil
	}

	switch text[0] {
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = NewBool(b)
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = NewText(s)
		return nil
	}

	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", text, err)
		}
		*v = NewFloat(f)
		return nil
	}

	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", text, err)
	}
	*v = NewInt(i)
	return nil
}
