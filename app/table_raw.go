package main

// TableRawImpl is the physical handle to a table: just enough to find its
// B-tree root page. Traversal itself lives in btree_table.go, shared with
// the schema reader and index lookups.
type TableRawImpl struct {
	dbRaw    DatabaseRaw
	name     string
	rootPage int
}

// NewTableRaw creates a raw table handle for the given root page.
func NewTableRaw(dbRaw DatabaseRaw, name string, rootPage int) *TableRawImpl {
	return &TableRawImpl{dbRaw: dbRaw, name: name, rootPage: rootPage}
}

// GetRootPage returns the table's B-tree root page number.
func (tr *TableRawImpl) GetRootPage() int {
	return tr.rootPage
}

// GetName returns the table's name.
func (tr *TableRawImpl) GetName() string {
	return tr.name
}
