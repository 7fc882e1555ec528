package main

import "context"

// schemaVisitor collects every leaf cell of the sqlite_schema table as a
// SchemaRecord. sqlite_schema always roots at page 1, and a database with
// enough tables/indexes for its root page to grow past a single leaf has an
// interior root; reading only page 1's leaf cells (as a naive reader that
// assumes a single-page schema would) silently drops rows.
type schemaVisitor struct {
	records []SchemaRecord
}

func (v *schemaVisitor) VisitLeafCell(ctx context.Context, cell *tableLeafCell) (bool, error) {
	rec, err := cell.Record()
	if err != nil {
		return false, err
	}
	schemaRow, err := parseAsSchema(rec)
	if err != nil {
		return false, err
	}
	v.records = append(v.records, *schemaRow)
	return false, nil
}

// readSchema walks the full sqlite_schema B-tree (root page 1) and returns
// every table/index/view/trigger row it declares.
func readSchema(ctx context.Context, raw DatabaseRaw) ([]SchemaRecord, error) {
	v := &schemaVisitor{}
	if err := walkTableBTree(ctx, raw, 1, v); err != nil {
		return nil, err
	}
	return v.records, nil
}
