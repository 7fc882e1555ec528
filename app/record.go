package main

import "unicode/utf8"

// Record is a decoded table-leaf (or index) payload: the header's serial
// type list plus, for each column, the byte offset of its value within the
// payload. Column values are not copied out until Column is called, so a
// query that only needs one of twenty columns only ever slices that one.
type Record struct {
	payload     []byte
	serialTypes []uint64
	offsets     []int
}

// parseRecord decodes the record header (header-size varint followed by one
// serial-type varint per column) and lays out the column offset table. It
// does not copy column bytes out of payload.
func parseRecord(payload []byte) (*Record, error) {
	headerSize, n, ok := readVarint(payload, 0)
	if !ok {
		return nil, wrapf(KindTruncated, "parse_record_header", "payload_len", len(payload))
	}

	var serialTypes []uint64
	offset := n
	for offset < int(headerSize) {
		st, n2, ok := readVarint(payload, offset)
		if !ok {
			return nil, wrapf(KindTruncated, "parse_record_serial_type", "offset", offset)
		}
		serialTypes = append(serialTypes, st)
		offset += n2
	}
	if offset != int(headerSize) {
		return nil, wrapf(KindMalformedDdl, "parse_record_header", "reason", "serial types overran header size")
	}

	offsets := make([]int, len(serialTypes))
	cur := int(headerSize)
	for i, st := range serialTypes {
		offsets[i] = cur
		cur += serialTypeSize(st)
	}
	if cur > len(payload) {
		return nil, wrapf(KindOverflowUnsupported, "parse_record_body", "need_bytes", cur, "have_bytes", len(payload))
	}

	return &Record{payload: payload, serialTypes: serialTypes, offsets: offsets}, nil
}

// ColumnCount returns the number of columns this record's header declares.
func (r *Record) ColumnCount() int {
	return len(r.serialTypes)
}

// Column decodes and returns the value at column index i. Out-of-range
// columns (including a trailing INTEGER PRIMARY KEY alias column that was
// never stored) report KindUnknownColumn.
func (r *Record) Column(i int) (Value, error) {
	if i < 0 || i >= len(r.serialTypes) {
		return nil, wrapf(KindUnknownColumn, "record_column", "index", i, "column_count", len(r.serialTypes))
	}
	st := r.serialTypes[i]
	size := serialTypeSize(st)
	data := r.payload[r.offsets[i] : r.offsets[i]+size]
	return NewSQLiteValue(st, data), nil
}

// Row materializes every column as a Value. Used by full-row projections
// where all columns are needed anyway.
func (r *Record) Row() (Row, error) {
	values := make([]Value, len(r.serialTypes))
	for i := range r.serialTypes {
		v, err := r.Column(i)
		if err != nil {
			return Row{}, err
		}
		values[i] = v
	}
	return Row{Values: values}, nil
}

// validateTextUTF8 checks that a TEXT-typed value holds well-formed UTF-8.
// SQLite does not enforce this at the storage layer, so a corrupt or
// non-UTF-8 database can produce bytes that fail here.
func validateTextUTF8(v Value) error {
	if v.Type() != ValueTypeText {
		return nil
	}
	if !utf8.Valid(v.Raw()) {
		return wrapf(KindInvalidUtf8, "validate_text", "byte_len", len(v.Raw()))
	}
	return nil
}

// parseAsSchema interprets a 5-column record as a sqlite_schema row
// (type, name, tbl_name, rootpage, sql).
func parseAsSchema(r *Record) (*SchemaRecord, error) {
	if r.ColumnCount() < 5 {
		return nil, wrapf(KindMalformedDdl, "parse_schema_row", "column_count", r.ColumnCount())
	}
	typeVal, err := r.Column(0)
	if err != nil {
		return nil, err
	}
	nameVal, err := r.Column(1)
	if err != nil {
		return nil, err
	}
	tblVal, err := r.Column(2)
	if err != nil {
		return nil, err
	}
	rootVal, err := r.Column(3)
	if err != nil {
		return nil, err
	}
	sqlVal, err := r.Column(4)
	if err != nil {
		return nil, err
	}

	rec := &SchemaRecord{
		Type:    typeVal.String(),
		Name:    nameVal.String(),
		TblName: tblVal.String(),
		SQL:     sqlVal.String(),
	}
	if rootVal.Type() != ValueTypeNull {
		rootPage, err := rootVal.Int64()
		if err == nil {
			rec.RootPage = int(rootPage)
		}
	}
	return rec, nil
}
