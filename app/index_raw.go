package main

// IndexRawImpl is the physical handle to an index: just enough to find its
// B-tree root page. Traversal lives in btree_index.go.
type IndexRawImpl struct {
	dbRaw    DatabaseRaw
	name     string
	rootPage int
}

// NewIndexRaw creates a raw index handle for the given root page.
func NewIndexRaw(dbRaw DatabaseRaw, name string, rootPage int) *IndexRawImpl {
	return &IndexRawImpl{dbRaw: dbRaw, name: name, rootPage: rootPage}
}

// GetRootPage returns the index's B-tree root page number.
func (ir *IndexRawImpl) GetRootPage() int {
	return ir.rootPage
}

// GetName returns the index's name.
func (ir *IndexRawImpl) GetName() string {
	return ir.name
}
