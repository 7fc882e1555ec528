package main

import "testing"

// buildRecord assembles a minimal record payload: header-size varint,
// serial-type varints, then the column bytes, matching the layout
// parseRecord expects.
func buildRecord(serialTypes []uint64, bodies [][]byte) []byte {
	var headerBody []byte
	for _, st := range serialTypes {
		headerBody = putVarint(headerBody, st)
	}
	headerSize := uint64(0)
	// header-size varint itself is variable width; try 1 byte first and
	// grow if it doesn't fit (mirrors how SQLite itself resolves this).
	for n := 1; ; n++ {
		candidate := uint64(len(headerBody)) + uint64(n)
		enc := putVarint(nil, candidate)
		if len(enc) == n {
			headerSize = candidate
			break
		}
	}
	payload := putVarint(nil, headerSize)
	payload = append(payload, headerBody...)
	for _, b := range bodies {
		payload = append(payload, b...)
	}
	return payload
}

func TestParseRecordBasic(t *testing.T) {
	// serial type 1 = 1-byte int, serial type 13 = TEXT of length 0
	// (13-13)/2 = 0 bytes; use 17 for a 2-byte TEXT "hi".
	payload := buildRecord([]uint64{1, 17}, [][]byte{{42}, []byte("hi")})

	rec, err := parseRecord(payload)
	if err != nil {
		t.Fatalf("parseRecord: %v", err)
	}
	if rec.ColumnCount() != 2 {
		t.Fatalf("ColumnCount = %d, want 2", rec.ColumnCount())
	}

	v0, err := rec.Column(0)
	if err != nil {
		t.Fatalf("Column(0): %v", err)
	}
	n, err := v0.Int64()
	if err != nil || n != 42 {
		t.Errorf("Column(0) = %v (%v), want 42", n, err)
	}

	v1, err := rec.Column(1)
	if err != nil {
		t.Fatalf("Column(1): %v", err)
	}
	if v1.Type() != ValueTypeText || v1.String() != "hi" {
		t.Errorf("Column(1) = %q (%v), want \"hi\" (TEXT)", v1.String(), v1.Type())
	}
}

func TestParseRecordNullColumn(t *testing.T) {
	payload := buildRecord([]uint64{0, 1}, [][]byte{nil, {7}})
	rec, err := parseRecord(payload)
	if err != nil {
		t.Fatalf("parseRecord: %v", err)
	}
	v0, err := rec.Column(0)
	if err != nil {
		t.Fatalf("Column(0): %v", err)
	}
	if v0.Type() != ValueTypeNull {
		t.Errorf("Column(0).Type() = %v, want ValueTypeNull", v0.Type())
	}
}

func TestParseRecordOutOfRangeColumn(t *testing.T) {
	payload := buildRecord([]uint64{1}, [][]byte{{1}})
	rec, err := parseRecord(payload)
	if err != nil {
		t.Fatalf("parseRecord: %v", err)
	}
	if _, err := rec.Column(5); err == nil {
		t.Error("expected an error for an out-of-range column index")
	}
}

func TestParseRecordTruncatedPayloadIsOverflow(t *testing.T) {
	// Declare a TEXT column far longer than the bytes actually provided.
	payload := buildRecord([]uint64{113}, [][]byte{[]byte("short")})
	if _, err := parseRecord(payload); err == nil {
		t.Error("expected an error when column bytes run past the payload")
	}
}

func TestColumnValueSubstitutesRowidForAliasColumn(t *testing.T) {
	// Column 0 is the INTEGER PRIMARY KEY alias: serial type 0 (NULL) on
	// disk, but the decoded value must be the cell's rowid.
	payload := buildRecord([]uint64{0, 17}, [][]byte{nil, []byte("hi")})
	rec, err := parseRecord(payload)
	if err != nil {
		t.Fatalf("parseRecord: %v", err)
	}

	v, err := columnValue(rec, 0, 0, 42)
	if err != nil {
		t.Fatalf("columnValue: %v", err)
	}
	n, err := v.Int64()
	if err != nil || n != 42 {
		t.Errorf("aliased column = %v (%v), want 42", n, err)
	}

	// A non-aliased NULL column is left alone.
	other, err := columnValue(rec, 0, 1, 42)
	if err != nil {
		t.Fatalf("columnValue: %v", err)
	}
	if other.Type() != ValueTypeNull {
		t.Errorf("non-aliased NULL column = %v, want ValueTypeNull", other.Type())
	}
}

func TestProjectRowSubstitutesRowidInFullRow(t *testing.T) {
	payload := buildRecord([]uint64{0, 17}, [][]byte{nil, []byte("hi")})
	rec, err := parseRecord(payload)
	if err != nil {
		t.Fatalf("parseRecord: %v", err)
	}

	row, err := projectRow(rec, nil, 0, 7)
	if err != nil {
		t.Fatalf("projectRow: %v", err)
	}
	n, err := row.Values[0].Int64()
	if err != nil || n != 7 {
		t.Errorf("row.Values[0] = %v (%v), want 7", n, err)
	}
}

func TestSerialTypeSizeTable(t *testing.T) {
	cases := map[uint64]int{
		0: 0, 1: 1, 2: 2, 3: 3, 4: 4, 5: 6, 6: 8, 7: 8, 8: 0, 9: 0,
		12: 0, 13: 0, 14: 1, 15: 1,
	}
	for serial, want := range cases {
		if got := serialTypeSize(serial); got != want {
			t.Errorf("serialTypeSize(%d) = %d, want %d", serial, got, want)
		}
	}
}
