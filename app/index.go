package main

import "context"

// IndexImpl is the logical view of a secondary index: a name, the table it
// belongs to, and a key lookup.
type IndexImpl struct {
	indexRaw *IndexRawImpl
	schema   SchemaRecord
}

// NewIndex creates a logical index bound to the given root-page reader and
// its sqlite_schema row.
func NewIndex(indexRaw *IndexRawImpl, schema SchemaRecord) *IndexImpl {
	return &IndexImpl{indexRaw: indexRaw, schema: schema}
}

// GetName returns the index's name.
func (i *IndexImpl) GetName() string {
	return i.schema.Name
}

// GetTableName returns the name of the table this index covers.
func (i *IndexImpl) GetTableName() string {
	return i.schema.TblName
}

// SearchByKey returns every rowid whose indexed column equals key.
func (i *IndexImpl) SearchByKey(ctx context.Context, key string) ([]uint64, error) {
	return indexLookup(ctx, i.indexRaw.dbRaw, i.indexRaw.rootPage, key)
}
