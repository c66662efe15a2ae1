package sql

import (
	"errors"
	"testing"

	"github.com/mashdb/MashDB/core"
)

func TestParseCondition(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Condition
	}{
		{"equals int", "id = 10", Condition{Column: "id", Operator: Eq, Value: "10"}},
		{"double equals", "id == 10", Condition{Column: "id", Operator: Eq, Value: "10"}},
		{"not equals", "id != 10", Condition{Column: "id", Operator: Ne, Value: "10"}},
		{"angle not equals", "id <> 10", Condition{Column: "id", Operator: Ne, Value: "10"}},
		{"quoted string", "name = 'Ann Lee'", Condition{Column: "name", Operator: Eq, Value: "Ann Lee"}},
		{"double quoted", `name = "Ann"`, Condition{Column: "name", Operator: Eq, Value: "Ann"}},
		{"greater equal", "age >= 2.5", Condition{Column: "age", Operator: Ge, Value: "2.5"}},
		{"like", "name LIKE '_o%'", Condition{Column: "name", Operator: LikeOp, Value: "_o%"}},
		{"null literal", "age = null", Condition{Column: "age", Operator: Eq, Value: "null"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			condition, err := ParseCondition(test.text)
			if err != nil {
				t.Fatalf("ParseCondition(%q) returned error: %v", test.text, err)
			}
			if condition != test.expected {
				t.Errorf("ParseCondition(%q) = %#v, expected %#v", test.text, condition, test.expected)
			}
		})
	}
}

func TestParseConditionErrors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected error
	}{
		{"empty", "", ErrSyntax},
		{"missing literal", "id =", ErrSyntax},
		{"missing operator", "id 10", ErrUnsupportedOperator},
		{"trailing input", "id = 10 extra", ErrSyntax},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseCondition(test.text)
			if err == nil {
				t.Fatalf("ParseCondition(%q) succeeded, expected %v", test.text, test.expected)
			}
			if !errors.Is(err, test.expected) {
				t.Errorf("ParseCondition(%q) returned %v, expected %v", test.text, err, test.expected)
			}
		})
	}
}

func TestConditionEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		value    core.Value
		expected bool
	}{
		{"int equals match", "id = 10", core.NewInt(10), true},
		{"int equals mismatch", "id = 10", core.NewInt(11), false},
		{"not equals", "id != 10", core.NewInt(11), true},
		{"text equals", "name = 'Ann'", core.NewText("Ann"), true},
		{"text equals case sensitive", "name = 'ann'", core.NewText("Ann"), false},
		{"null matches null", "age = null", core.Null(), true},
		{"null matches empty string", "age = null", core.NewText(""), true},
		{"null mismatch", "age = null", core.NewInt(0), false},
		{"not null", "age != null", core.NewInt(0), true},
		{"int greater", "age > 18", core.NewInt(30), true},
		{"int greater false", "age > 18", core.NewInt(18), false},
		{"greater equal boundary", "age >= 18", core.NewInt(18), true},
		{"less equal boundary", "age <= 18", core.NewInt(18), true},
		{"float compare", "score > 2.5", core.NewFloat(2.75), true},
		{"int against float literal", "score < 2.5", core.NewInt(2), true},
		{"lexicographic fallback", "name > 'Ann'", core.NewText("Bo"), true},
		{"lexicographic numeric-looking", "name < 'x'", core.NewText("abc"), true},
		{"like prefix", "name LIKE 'A%'", core.NewText("Ann"), true},
		{"like prefix mismatch", "name LIKE 'A%'", core.NewText("Bo"), false},
		{"like case insensitive", "name LIKE 'a%'", core.NewText("Ann"), true},
		{"like single char", "name LIKE '_o'", core.NewText("Bo"), true},
		{"like single char mismatch", "name LIKE '_o'", core.NewText("Boo"), false},
		{"like escapes regex meta", "name LIKE 'a.b'", core.NewText("axb"), false},
		{"like matches literal dot", "name LIKE 'a.b'", core.NewText("a.b"), true},
		{"bool equals", "active = true", core.NewBool(true), true},
		{"bool mismatch", "active = true", core.NewBool(false), false},
		{"null ordered lexicographic", "age > 18", core.Null(), true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			condition, err := ParseCondition(test.text)
			if err != nil {
				t.Fatalf("ParseCondition(%q) returned error: %v", test.text, err)
			}
			matched, err := condition.Evaluate(test.value)
			if err != nil {
				t.Fatalf("Evaluate returned error: %v", err)
			}
			if matched != test.expected {
				t.Errorf("%q on %v = %v, expected %v", test.text, test.value.Canonical(), matched, test.expected)
			}
		})
	}
}
