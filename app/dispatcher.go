package main

import "context"

// QueryResult is either a single aggregate count or a set of projected
// rows, depending on which grammar shape was parsed.
type QueryResult struct {
	IsCount     bool
	Count       int
	ColumnNames []string
	Rows        []Row
}

// executeQuery dispatches a parsed SELECT to one of the query paths the
// engine supports:
//
//  1. COUNT(*), no WHERE        -> Table.Count (no per-row decoding at all)
//  2. column projection, no WHERE -> Table.SelectColumns (full scan)
//  3. WHERE column has a usable index -> Index.SearchByKey + FindByRowid per hit
//  4. WHERE column has no index  -> Table.Filter (full scan, Filter-projector)
//
// COUNT(*) ... WHERE takes case 3 or case 4 the same way, by whether the
// WHERE column has an index, and reports the number of matching rows
// instead of the rows themselves.
func executeQuery(ctx context.Context, db Database, stmt *SelectStatement) (*QueryResult, error) {
	table, err := db.GetTable(ctx, stmt.Table)
	if err != nil {
		return nil, err
	}
	// Column positions are resolved via the 4.9 DDL resolver directly
	// against the table's CREATE TABLE text, not the sqlparser-enriched
	// schema (Table.GetSchema), which no query path reads.
	sqlText := table.GetCreateSQL()

	if !stmt.HasWhere {
		if stmt.CountStar {
			n, err := table.Count(ctx)
			if err != nil {
				return nil, err
			}
			return &QueryResult{IsCount: true, Count: n}, nil
		}
		cols, names, err := resolveColumns(sqlText, stmt.Columns)
		if err != nil {
			return nil, err
		}
		rows, err := table.SelectColumns(ctx, cols)
		if err != nil {
			return nil, err
		}
		return &QueryResult{Rows: rows, ColumnNames: names}, nil
	}

	whereCol, ok := columnIndexFromDDL(sqlText, stmt.WhereColumn)
	if !ok {
		return nil, wrapf(KindUnknownColumn, "execute_query", "column", stmt.WhereColumn)
	}

	var projCols []int
	var projNames []string
	if !stmt.CountStar {
		projCols, projNames, err = resolveColumns(sqlText, stmt.Columns)
		if err != nil {
			return nil, err
		}
	}

	idx, err := db.GetIndexFor(ctx, stmt.Table, stmt.WhereColumn)
	if err != nil {
		return nil, err
	}
	if idx != nil {
		rowids, err := idx.SearchByKey(ctx, stmt.WhereValue)
		if err != nil {
			return nil, err
		}
		cols := projCols
		if stmt.CountStar {
			cols = nil
		}
		rows := make([]Row, 0, len(rowids))
		for _, rowid := range rowids {
			row, err := table.FindByRowid(ctx, rowid, cols)
			if err != nil {
				return nil, err
			}
			if row != nil {
				rows = append(rows, *row)
			}
		}
		if stmt.CountStar {
			return &QueryResult{IsCount: true, Count: len(rows)}, nil
		}
		return &QueryResult{Rows: rows, ColumnNames: projNames}, nil
	}

	// No index covers this column: fall back to a full scan with a
	// Filter-projector instead of failing the query.
	cols := projCols
	if stmt.CountStar {
		cols = []int{whereCol}
	}
	rows, err := table.Filter(ctx, cols, whereCol, stmt.WhereValue)
	if err != nil {
		return nil, err
	}
	if stmt.CountStar {
		return &QueryResult{IsCount: true, Count: len(rows)}, nil
	}
	return &QueryResult{Rows: rows, ColumnNames: projNames}, nil
}

// resolveColumns resolves each requested column name to its zero-based
// position via the 4.9 DDL resolver, preserving the query's own casing for
// display.
func resolveColumns(sqlText string, names []string) ([]int, []string, error) {
	idxs := make([]int, 0, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		idx, ok := columnIndexFromDDL(sqlText, name)
		if !ok {
			return nil, nil, wrapf(KindUnknownColumn, "resolve_columns", "column", name)
		}
		idxs = append(idxs, idx)
		out = append(out, name)
	}
	return idxs, out, nil
}
