package main

import "strings"

// extractColumnTokens implements the mandated column-list resolver: isolate
// the text between the first '(' and the last ')', split on every comma
// (column constraints are not type-aware parsed), take the first
// whitespace-delimited token of each piece as the column name, and strip
// surrounding quote/bracket characters SQLite accepts around identifiers.
func extractColumnTokens(sql string) []string {
	start := strings.IndexByte(sql, '(')
	end := strings.LastIndexByte(sql, ')')
	if start < 0 || end < 0 || end <= start {
		return nil
	}

	inner := sql[start+1 : end]
	parts := strings.Split(inner, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		fields := strings.Fields(p)
		if len(fields) == 0 {
			continue
		}
		tok := strings.Trim(fields[0], "\"'`[]")
		tokens = append(tokens, tok)
	}
	return tokens
}

// columnIndexFromDDL resolves columnName to its zero-based position in a
// CREATE TABLE statement's column list, case-insensitively (ASCII fold).
func columnIndexFromDDL(sql, columnName string) (int, bool) {
	tokens := extractColumnTokens(sql)
	for i, t := range tokens {
		if strings.EqualFold(t, columnName) {
			return i, true
		}
	}
	return 0, false
}

// columnIndexFromIndexDDL applies the same resolver to a CREATE INDEX
// statement's indexed-column list, used to test whether an index covers a
// given column.
func columnIndexFromIndexDDL(sql, columnName string) (int, bool) {
	return columnIndexFromDDL(sql, columnName)
}

// columnDefinitions splits a CREATE TABLE column list the same way
// extractColumnTokens does, but keeps each full definition instead of just
// its leading name token, so type/constraint keywords stay inspectable.
func columnDefinitions(sql string) []string {
	start := strings.IndexByte(sql, '(')
	end := strings.LastIndexByte(sql, ')')
	if start < 0 || end < 0 || end <= start {
		return nil
	}
	parts := strings.Split(sql[start+1:end], ",")
	defs := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			defs = append(defs, trimmed)
		}
	}
	return defs
}

// integerPrimaryKeyColumn returns the zero-based position of the column
// declared "INTEGER PRIMARY KEY" (the rowid-aliasing form, per the data
// model's invariant 4), or ok=false if the table has no such column.
func integerPrimaryKeyColumn(sql string) (int, bool) {
	for i, def := range columnDefinitions(sql) {
		upper := strings.ToUpper(def)
		if strings.Contains(upper, "INTEGER") && strings.Contains(upper, "PRIMARY KEY") {
			return i, true
		}
	}
	return 0, false
}
