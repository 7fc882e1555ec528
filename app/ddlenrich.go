package main

import (
	"github.com/xwb1989/sqlparser"
)

// enrichColumnsFromDDL parses a CREATE TABLE statement with a real SQL
// parser to recover column types and nullability, which the mandated
// whitespace-token resolver in ddl.go does not attempt. Falls back to the
// lexical token list (typed as "" / nullable) if the statement does not
// parse as a DDLStatement this grammar understands, since sqlite_schema SQL
// text can carry dialect the parser does not cover (e.g. WITHOUT ROWID,
// STRICT, generated columns).
func enrichColumnsFromDDL(sql string) []Column {
	stmt, err := sqlparser.Parse(sql)
	if err != nil {
		return fallbackColumns(sql)
	}

	ddl, ok := stmt.(*sqlparser.DDL)
	if !ok || ddl.TableSpec == nil {
		return fallbackColumns(sql)
	}

	cols := make([]Column, 0, len(ddl.TableSpec.Columns))
	for i, colDef := range ddl.TableSpec.Columns {
		cols = append(cols, Column{
			Name:     colDef.Name.String(),
			Type:     colDef.Type.Type,
			Index:    i,
			Nullable: !bool(colDef.Type.NotNull),
		})
	}
	if len(cols) == 0 {
		return fallbackColumns(sql)
	}
	return cols
}

func fallbackColumns(sql string) []Column {
	tokens := extractColumnTokens(sql)
	cols := make([]Column, len(tokens))
	for i, t := range tokens {
		cols[i] = Column{Name: t, Type: "", Index: i, Nullable: true}
	}
	return cols
}
