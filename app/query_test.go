package main

import "testing"

func TestParseQueryCountStar(t *testing.T) {
	stmt, err := parseQuery("SELECT COUNT(*) FROM apples")
	if err != nil {
		t.Fatalf("parseQuery: %v", err)
	}
	if !stmt.CountStar {
		t.Error("expected CountStar=true")
	}
	if stmt.Table != "apples" {
		t.Errorf("Table = %q, want apples", stmt.Table)
	}
	if stmt.HasWhere {
		t.Error("expected no WHERE clause")
	}
}

func TestParseQueryColumnProjection(t *testing.T) {
	stmt, err := parseQuery("SELECT name, color FROM apples;")
	if err != nil {
		t.Fatalf("parseQuery: %v", err)
	}
	if stmt.CountStar {
		t.Error("expected CountStar=false")
	}
	want := []string{"name", "color"}
	if len(stmt.Columns) != len(want) {
		t.Fatalf("Columns = %v, want %v", stmt.Columns, want)
	}
	for i := range want {
		if stmt.Columns[i] != want[i] {
			t.Errorf("Columns[%d] = %q, want %q", i, stmt.Columns[i], want[i])
		}
	}
}

func TestParseQueryWhereEquality(t *testing.T) {
	stmt, err := parseQuery("SELECT name FROM apples WHERE color = 'Red'")
	if err != nil {
		t.Fatalf("parseQuery: %v", err)
	}
	if !stmt.HasWhere {
		t.Fatal("expected HasWhere=true")
	}
	if stmt.WhereColumn != "color" || stmt.WhereValue != "Red" {
		t.Errorf("WHERE = %s=%s, want color=Red", stmt.WhereColumn, stmt.WhereValue)
	}
}

func TestParseQueryRejectsUnsupportedShapes(t *testing.T) {
	cases := []string{
		"SELECT COUNT(id) FROM apples",
		"SELECT * FROM apples",
		"SELECT name FROM apples WHERE color > 'Red'",
		"DELETE FROM apples",
	}
	for _, q := range cases {
		if _, err := parseQuery(q); err == nil {
			t.Errorf("parseQuery(%q): expected an error", q)
		}
	}
}

func TestParseQueryBarewordLiteral(t *testing.T) {
	stmt, err := parseQuery("SELECT name FROM apples WHERE color = Red")
	if err != nil {
		t.Fatalf("parseQuery: %v", err)
	}
	if !stmt.HasWhere || stmt.WhereValue != "Red" {
		t.Errorf("WHERE = %s=%s, want color=Red", stmt.WhereColumn, stmt.WhereValue)
	}
}

func TestParseQueryNumericLiteral(t *testing.T) {
	stmt, err := parseQuery("SELECT name FROM apples WHERE id = 3")
	if err != nil {
		t.Fatalf("parseQuery: %v", err)
	}
	if stmt.WhereValue != "3" {
		t.Errorf("WhereValue = %q, want 3", stmt.WhereValue)
	}
}
