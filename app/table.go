package main

import "context"

// TableImpl is the logical table: it resolves column schema from the
// CREATE TABLE SQL text and answers queries by walking its B-tree through
// tableRaw.
type TableImpl struct {
	tableRaw   TableRaw
	schema     SchemaRecord
	columns    []Column
	rowidAlias int // -1 if this table has no INTEGER PRIMARY KEY column
}

// NewTable creates a logical table bound to the given root-page reader and
// its sqlite_schema row.
func NewTable(tableRaw TableRaw, schema SchemaRecord) *TableImpl {
	rowidAlias := -1
	if idx, ok := integerPrimaryKeyColumn(schema.SQL); ok {
		rowidAlias = idx
	}
	return &TableImpl{tableRaw: tableRaw, schema: schema, rowidAlias: rowidAlias}
}

// GetSchema returns the table's column list, enriched with types and
// nullability where the DDL parses cleanly.
func (t *TableImpl) GetSchema(ctx context.Context) ([]Column, error) {
	if t.columns != nil {
		return t.columns, nil
	}
	t.columns = enrichColumnsFromDDL(t.schema.SQL)
	return t.columns, nil
}

func (t *TableImpl) rootPage() int {
	return t.tableRaw.GetRootPage()
}

func (t *TableImpl) dbRaw() DatabaseRaw {
	raw, ok := t.tableRaw.(*TableRawImpl)
	if !ok {
		return nil
	}
	return raw.dbRaw
}

// counterVisitor implements the Counter visitor from the table B-tree
// walker: it advances past every leaf cell without decoding a single
// column.
type counterVisitor struct {
	n int
}

func (c *counterVisitor) VisitLeafCell(ctx context.Context, cell *tableLeafCell) (bool, error) {
	c.n++
	return false, nil
}

// projectorVisitor decodes only the requested columns of every leaf cell.
// A nil columns slice means "every column".
type projectorVisitor struct {
	columns    []int
	rowidAlias int
	rows       []Row
}

func (p *projectorVisitor) VisitLeafCell(ctx context.Context, cell *tableLeafCell) (bool, error) {
	rec, err := cell.Record()
	if err != nil {
		return false, err
	}
	row, err := projectRow(rec, p.columns, p.rowidAlias, cell.rowid)
	if err != nil {
		return false, err
	}
	p.rows = append(p.rows, row)
	return false, nil
}

// filterProjectorVisitor is the Filter-projector: it decodes the WHERE
// column of every leaf cell, and only decodes+keeps the projected columns
// for rows that match.
type filterProjectorVisitor struct {
	columns    []int
	whereCol   int
	whereVal   string
	rowidAlias int
	rows       []Row
}

func (f *filterProjectorVisitor) VisitLeafCell(ctx context.Context, cell *tableLeafCell) (bool, error) {
	rec, err := cell.Record()
	if err != nil {
		return false, err
	}
	whereValue, err := columnValue(rec, f.whereCol, f.rowidAlias, cell.rowid)
	if err != nil {
		return false, err
	}
	if whereValue.String() != f.whereVal {
		return false, nil
	}
	row, err := projectRow(rec, f.columns, f.rowidAlias, cell.rowid)
	if err != nil {
		return false, err
	}
	f.rows = append(f.rows, row)
	return false, nil
}

// columnValue decodes column i, substituting rowid for the rowid-aliased
// column when its stored serial type is NULL (data model invariant 4).
func columnValue(rec *Record, i, rowidAlias int, rowid uint64) (Value, error) {
	v, err := rec.Column(i)
	if err != nil {
		return nil, err
	}
	if i == rowidAlias && v.Type() == ValueTypeNull {
		return RowidValue(rowid), nil
	}
	return v, nil
}

func projectRow(rec *Record, columns []int, rowidAlias int, rowid uint64) (Row, error) {
	if columns == nil {
		row, err := rec.Row()
		if err != nil {
			return Row{}, err
		}
		if rowidAlias >= 0 && rowidAlias < len(row.Values) && row.Values[rowidAlias].Type() == ValueTypeNull {
			row.Values[rowidAlias] = RowidValue(rowid)
		}
		return row, nil
	}
	values := make([]Value, len(columns))
	for i, col := range columns {
		v, err := columnValue(rec, col, rowidAlias, rowid)
		if err != nil {
			return Row{}, err
		}
		values[i] = v
	}
	return Row{Values: values}, nil
}

// GetRows returns every row with every column materialized.
func (t *TableImpl) GetRows(ctx context.Context) ([]Row, error) {
	return t.SelectColumns(ctx, nil)
}

// SelectColumns performs a full table scan, projecting only the requested
// column indices (nil means every column).
func (t *TableImpl) SelectColumns(ctx context.Context, columns []int) ([]Row, error) {
	v := &projectorVisitor{columns: columns, rowidAlias: t.rowidAlias}
	if err := walkTableBTree(ctx, t.dbRaw(), t.rootPage(), v); err != nil {
		return nil, err
	}
	return v.rows, nil
}

// Filter performs a full table scan, keeping only rows whose whereCol
// column equals whereVal (compared as its string representation), and
// projecting the requested columns for the rows that match.
func (t *TableImpl) Filter(ctx context.Context, columns []int, whereCol int, whereVal string) ([]Row, error) {
	v := &filterProjectorVisitor{columns: columns, whereCol: whereCol, whereVal: whereVal, rowidAlias: t.rowidAlias}
	if err := walkTableBTree(ctx, t.dbRaw(), t.rootPage(), v); err != nil {
		return nil, err
	}
	return v.rows, nil
}

// Count returns the number of rows without decoding any column of any
// cell.
func (t *TableImpl) Count(ctx context.Context) (int, error) {
	v := &counterVisitor{}
	if err := walkTableBTree(ctx, t.dbRaw(), t.rootPage(), v); err != nil {
		return 0, err
	}
	return v.n, nil
}

// FindByRowid descends directly to the leaf holding rowid instead of
// scanning the table, returning nil if no such rowid exists.
func (t *TableImpl) FindByRowid(ctx context.Context, rowid uint64, columns []int) (*Row, error) {
	cell, err := findByRowid(ctx, t.dbRaw(), t.rootPage(), rowid)
	if err != nil {
		return nil, err
	}
	if cell == nil {
		return nil, nil
	}
	rec, err := cell.Record()
	if err != nil {
		return nil, err
	}
	row, err := projectRow(rec, columns, t.rowidAlias, rowid)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetName returns the table's name.
func (t *TableImpl) GetName() string {
	return t.schema.Name
}

// GetCreateSQL returns the table's CREATE TABLE text, for resolving
// columns through the DDL resolver (4.9) rather than the sqlparser-enriched
// schema returned by GetSchema.
func (t *TableImpl) GetCreateSQL() string {
	return t.schema.SQL
}

// GetRootPage returns the table's B-tree root page.
func (t *TableImpl) GetRootPage() int {
	return t.rootPage()
}
