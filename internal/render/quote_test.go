package render

import (
	"database/sql"
	"errors"
	"math"
	"testing"
	"time"
)

func backtick(s string) string { return "`" + s + "`" }

func TestQuoteIdentifierChain(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"foo", "`foo`"},
		{"foo.bar", "`foo`.`bar`"},
		{"foo.*", "`foo`.*"},
		{"*", "*"},
		{"db.foo.bar", "`db`.`foo`.`bar`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuoteIdentifierChain(tt.name, backtick); got != tt.expected {
				t.Errorf("QuoteIdentifierChain(%q) = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestStringQuoting(t *testing.T) {
	if got := DoubleQuoteString("it's"); got != "'it''s'" {
		t.Errorf("DoubleQuoteString = %q", got)
	}
	if got := BackslashQuoteString(`it's a \ test`); got != `'it\'s a \\ test'` {
		t.Errorf("BackslashQuoteString = %q", got)
	}
	if got := BackslashQuoteString("a\nb\x00"); got != `'a\nb\0'` {
		t.Errorf("BackslashQuoteString control chars = %q", got)
	}
}

type myInt int
type myString string

func TestValueQuoter_Quote(t *testing.T) {
	q := ValueQuoter{}
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	n := 7
	var nilPtr *int

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, "NULL"},
		{"int", 42, "42"},
		{"negative int64", int64(-9), "-9"},
		{"uint64 max", uint64(math.MaxUint64), "18446744073709551615"},
		{"float", 1.5, "1.5"},
		{"string", "o'k", "'o''k'"},
		{"bytes", []byte("raw"), "'raw'"},
		{"bool true", true, "1"},
		{"bool false", false, "0"},
		{"time", ts, "'2024-03-01 12:30:00'"},
		{"named int", myInt(3), "3"},
		{"named string", myString("x"), "'x'"},
		{"pointer", &n, "7"},
		{"nil pointer", nilPtr, "NULL"},
		{"valid NullString", sql.NullString{String: "v", Valid: true}, "'v'"},
		{"invalid NullInt64", sql.NullInt64{}, "NULL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := q.Quote(tt.value)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Quote(%v) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestValueQuoter_Custom(t *testing.T) {
	q := ValueQuoter{QuoteString: BackslashQuoteString, True: "TRUE", False: "FALSE"}

	if got, _ := q.Quote(true); got != "TRUE" {
		t.Errorf("true = %q", got)
	}
	if got, _ := q.Quote(false); got != "FALSE" {
		t.Errorf("false = %q", got)
	}
	if got, _ := q.Quote(`a\b`); got != `'a\\b'` {
		t.Errorf("string = %q", got)
	}
}

func TestValueQuoter_Errors(t *testing.T) {
	q := ValueQuoter{}
	for _, v := range []any{math.NaN(), math.Inf(1), struct{}{}, []int{1}} {
		_, err := q.Quote(v)
		var iaErr InvalidArgumentError
		if !errors.As(err, &iaErr) {
			t.Errorf("Quote(%v) error = %v, want InvalidArgumentError", v, err)
		}
	}
}

func TestParamStyle_Placeholder(t *testing.T) {
	tests := []struct {
		style    ParamStyle
		expected string
	}{
		{ParamQuestion, "?"},
		{ParamDollar, "$3"},
		{ParamAtP, "@p3"},
		{ParamColon, ":limit"},
	}

	for _, tt := range tests {
		t.Run(tt.style.String(), func(t *testing.T) {
			if got := tt.style.Placeholder("limit", 3); got != tt.expected {
				t.Errorf("Placeholder() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseParamStyle(t *testing.T) {
	for _, name := range []string{"question", "dollar", "atp", "colon"} {
		style, err := ParseParamStyle(name)
		if err != nil {
			t.Fatalf("ParseParamStyle(%q): %v", name, err)
		}
		if style.String() != name {
			t.Errorf("round trip %q -> %q", name, style.String())
		}
	}
	if s, err := ParseParamStyle(" Colon "); err != nil || s != ParamColon {
		t.Errorf("ParseParamStyle should trim and lowercase, got %v, %v", s, err)
	}
	if _, err := ParseParamStyle("percent"); err == nil {
		t.Error("expected error for unknown style")
	}
	if !ParamColon.Named() || ParamQuestion.Named() {
		t.Error("only colon style is named")
	}
}
