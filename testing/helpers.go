// Package testing provides test utilities for sqlkit.
package testing

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/zoobzio/dbml"

	"github.com/zoobzio/sqlkit"
)

// TestProject builds the dbml project used across sqlkit tests.
// Includes users, posts, orders, and products tables.
func TestProject() *dbml.Project {
	project := dbml.NewProject("test")

	// Users table
	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "bigint"))
	users.AddColumn(dbml.NewColumn("username", "varchar"))
	users.AddColumn(dbml.NewColumn("email", "varchar"))
	users.AddColumn(dbml.NewColumn("age", "int"))
	users.AddColumn(dbml.NewColumn("active", "boolean"))
	users.AddColumn(dbml.NewColumn("created_at", "timestamp"))
	project.AddTable(users)

	// Posts table
	posts := dbml.NewTable("posts")
	posts.AddColumn(dbml.NewColumn("id", "bigint"))
	posts.AddColumn(dbml.NewColumn("user_id", "bigint"))
	posts.AddColumn(dbml.NewColumn("title", "varchar"))
	posts.AddColumn(dbml.NewColumn("views", "int"))
	project.AddTable(posts)

	// Orders table
	orders := dbml.NewTable("orders")
	orders.AddColumn(dbml.NewColumn("id", "bigint"))
	orders.AddColumn(dbml.NewColumn("user_id", "bigint"))
	orders.AddColumn(dbml.NewColumn("total", "numeric"))
	orders.AddColumn(dbml.NewColumn("status", "varchar"))
	project.AddTable(orders)

	// Products table
	products := dbml.NewTable("products")
	products.AddColumn(dbml.NewColumn("id", "bigint"))
	products.AddColumn(dbml.NewColumn("name", "varchar"))
	products.AddColumn(dbml.NewColumn("price", "numeric"))
	products.AddColumn(dbml.NewColumn("stock", "int"))
	project.AddTable(products)

	return project
}

// TestSchema creates a schema over TestProject.
func TestSchema(t testing.TB) *sqlkit.Schema {
	t.Helper()
	schema, err := sqlkit.NewSchema(TestProject())
	if err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}
	return schema
}

// NewTestLogger returns a debug-level logger that writes through t.Log.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// RenderBoth renders stmt in prepare and literal mode, failing the test on error.
func RenderBoth(t testing.TB, stmt sqlkit.Statement, p sqlkit.Platform) (prepared string, params *sqlkit.ParameterContainer, literal string) {
	t.Helper()
	prepared, params, err := sqlkit.RenderPrepared(stmt, p)
	if err != nil {
		t.Fatalf("Prepared render failed: %v", err)
	}
	literal, err = sqlkit.RenderLiteral(stmt, p)
	if err != nil {
		t.Fatalf("Literal render failed: %v", err)
	}
	return prepared, params, literal
}

// Substitute replaces the placeholders of a prepared render with the literal
// form of their values so the result can be compared with a literal render.
// LIMIT and OFFSET values are written as their decimal text.
func Substitute(query string, params *sqlkit.ParameterContainer, p sqlkit.Platform) (string, error) {
	if params == nil || params.Len() == 0 {
		return query, nil
	}

	names := params.Names()
	literals := make([]string, len(names))
	for i, name := range names {
		v, _ := params.Get(name)
		if name == "limit" || name == "offset" {
			n, err := sqlkit.ParseNumber(v)
			if err != nil {
				return "", err
			}
			literals[i] = n.String()
			continue
		}
		lit, err := p.QuoteValue(v)
		if err != nil {
			return "", err
		}
		literals[i] = lit
	}

	if p.FormatParameterName(names[0], 1) == "?" {
		var sb strings.Builder
		next := 0
		for i := 0; i < len(query); i++ {
			if query[i] == '?' && next < len(literals) {
				sb.WriteString(literals[next])
				next++
				continue
			}
			sb.WriteByte(query[i])
		}
		return sb.String(), nil
	}

	// Highest positions first so $1 never matches inside $10.
	for i := len(names) - 1; i >= 0; i-- {
		query = strings.ReplaceAll(query, p.FormatParameterName(names[i], i+1), literals[i])
	}
	return query, nil
}

// AssertSQL compares expected and actual SQL, reporting detailed differences.
func AssertSQL(t testing.TB, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("SQL mismatch:\nExpected: %s\nActual:   %s", expected, actual)
	}
}

// AssertParams checks that params holds exactly the expected names, in order.
func AssertParams(t testing.TB, expected []string, params *sqlkit.ParameterContainer) {
	t.Helper()
	var actual []string
	if params != nil {
		actual = params.Names()
	}
	if len(expected) != len(actual) {
		t.Errorf("Param count mismatch: expected %d, got %d\nExpected: %v\nActual: %v",
			len(expected), len(actual), expected, actual)
		return
	}
	for i := range expected {
		if expected[i] != actual[i] {
			t.Errorf("Param %d: expected %q, got %q\nExpected: %v\nActual: %v",
				i+1, expected[i], actual[i], expected, actual)
		}
	}
}

// AssertParamValue checks the value bound under name.
func AssertParamValue(t testing.TB, params *sqlkit.ParameterContainer, name string, want any) {
	t.Helper()
	got, ok := params.Get(name)
	if !ok {
		t.Errorf("Expected param %q not found in %v", name, params.Names())
		return
	}
	if got != want {
		t.Errorf("Param %q = %v (%T), want %v (%T)", name, got, got, want, want)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertErrorContains checks that error message contains substring.
func AssertErrorContains(t testing.TB, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing %q but got nil", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("Expected error containing %q, got: %v", substr, err)
	}
}

// AssertPanics verifies that a function panics.
func AssertPanics(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic but function completed normally")
		}
	}()
	fn()
}

// AssertPanicsWithMessage verifies that a function panics with a specific message.
func AssertPanicsWithMessage(t testing.TB, fn func(), substr string) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("Expected panic containing %q but function completed normally", substr)
			return
		}
		var msg string
		switch v := r.(type) {
		case error:
			msg = v.Error()
		case string:
			msg = v
		default:
			t.Errorf("Panic value is not string or error: %T", r)
			return
		}
		if !strings.Contains(msg, substr) {
			t.Errorf("Expected panic containing %q, got: %s", substr, msg)
		}
	}()
	fn()
}
