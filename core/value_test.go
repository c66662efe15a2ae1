package core

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected Value
	}{
		{"null keyword", "null", Null()},
		{"null keyword uppercase", "NULL", Null()},
		{"true keyword", "true", NewBool(true)},
		{"false keyword", "FALSE", NewBool(false)},
		{"single quoted", "'hello'", NewText("hello")},
		{"double quoted", `"hello"`, NewText("hello")},
		{"quoted null stays text", "'null'", NewText("null")},
		{"quoted digits stay text", "'42'", NewText("42")},
		{"integer", "42", NewInt(42)},
		{"negative integer", "-7", NewInt(-7)},
		{"float", "2.5", NewFloat(2.5)},
		{"negative float", "-0.25", NewFloat(-0.25)},
		{"bare word", "hello", NewText("hello")},
		{"trailing dot is text", "42.", NewText("42.")},
		{"leading dot is text", ".5", NewText(".5")},
		{"empty", "", NewText("")},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			value := ParseLiteral(test.token)
			if !value.Equal(test.expected) {
				t.Errorf("ParseLiteral(%q) = %#v, expected %#v", test.token, value, test.expected)
			}
		})
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"null", Null(), "NULL"},
		{"true", NewBool(true), "true"},
		{"false", NewBool(false), "false"},
		{"int", NewInt(42), "42"},
		{"negative int", NewInt(-7), "-7"},
		{"float trims zeros", NewFloat(2.50), "2.5"},
		{"float trims point", NewFloat(3.0), "3"},
		{"text verbatim", NewText(" spaced "), " spaced "},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.value.Canonical(); got != test.expected {
				t.Errorf("Canonical() = %q, expected %q", got, test.expected)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Value
		expected int
	}{
		{"null sorts lowest", Null(), NewInt(-100), -1},
		{"null equals null", Null(), Null(), 0},
		{"int order", NewInt(1), NewInt(2), -1},
		{"int float mix", NewInt(2), NewFloat(2.5), -1},
		{"float equals int", NewFloat(3.0), NewInt(3), 0},
		{"bool order", NewBool(false), NewBool(true), -1},
		{"text order", NewText("a"), NewText("b"), -1},
		{"mixed falls back to text", NewText("10"), NewInt(9), -1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Compare(test.a, test.b); got != test.expected {
				t.Errorf("Compare(%v, %v) = %d, expected %d", test.a.Canonical(), test.b.Canonical(), got, test.expected)
			}
		})
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	values := []Value{Null(), NewBool(true), NewInt(-42), NewFloat(2.5), NewText("Ann"), NewText("")}

	data, err := json.Marshal(values)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(data) != `[null,true,-42,2.5,"Ann",""]` {
		t.Errorf("Marshal = %s", data)
	}

	var decoded []Value
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if !reflect.DeepEqual(decoded, values) {
		t.Errorf("round trip = %#v, expected %#v", decoded, values)
	}
}

func TestColumnTypeAccepts(t *testing.T) {
	tests := []struct {
		name     string
		colType  ColumnType
		value    Value
		expected bool
	}{
		{"null always", IntegerType, Null(), true},
		{"int into integer", IntegerType, NewInt(1), true},
		{"int into float", FloatType, NewInt(1), true},
		{"float into integer", IntegerType, NewFloat(1.5), false},
		{"text into text", TextType, NewText("x"), true},
		{"text into integer", IntegerType, NewText("1"), false},
		{"bool into boolean", BooleanType, NewBool(true), true},
		{"bool into text", TextType, NewBool(true), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.colType.Accepts(test.value); got != test.expected {
				t.Errorf("%v.Accepts(%v) = %v, expected %v", test.colType, test.value.Canonical(), got, test.expected)
			}
		})
	}
}

func TestParseColumnType(t *testing.T) {
	tests := []struct {
		input    string
		expected ColumnType
	}{
		{"", TextType},
		{"text", TextType},
		{"STRING", TextType},
		{"VarChar", TextType},
		{"INT", IntegerType},
		{"integer", IntegerType},
		{"FLOAT", FloatType},
		{"double", FloatType},
		{"REAL", FloatType},
		{"bool", BooleanType},
		{"BOOLEAN", BooleanType},
	}

	for _, test := range tests {
		got, err := ParseColumnType(test.input)
		if err != nil {
			t.Fatalf("ParseColumnType(%q) returned error: %v", test.input, err)
		}
		if got != test.expected {
			t.Errorf("ParseColumnType(%q) = %v, expected %v", test.input, got, test.expected)
		}
	}

	if _, err := ParseColumnType("BLOB"); err == nil {
		t.Error("ParseColumnType(\"BLOB\") succeeded, expected error")
	}
}
