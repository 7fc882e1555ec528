package main

import "testing"

// buildHeaderBytes returns a valid 100-byte file header with the given
// stored page-size field, leaving the remaining fields zeroed.
func buildHeaderBytes(pageSize uint16) []byte {
	data := make([]byte, headerSize)
	copy(data[0:16], sqliteMagic)
	data[16] = byte(pageSize >> 8)
	data[17] = byte(pageSize)
	data[21] = 64 // max payload fraction, matches real SQLite files
	data[22] = 32
	data[23] = 32
	return data
}

func TestParseHeaderValid(t *testing.T) {
	data := buildHeaderBytes(4096)
	h, err := parseHeader(data, ValidationBasic)
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}
	if h.PageSize != 4096 {
		t.Errorf("PageSize = %d, want 4096", h.PageSize)
	}
	if string(h.MagicNumber[:]) != sqliteMagic {
		t.Errorf("MagicNumber mismatch")
	}
}

func TestParseHeaderBadMagic(t *testing.T) {
	data := buildHeaderBytes(4096)
	data[0] = 'X'
	if _, err := parseHeader(data, ValidationBasic); err == nil {
		t.Error("expected an error for a bad magic number")
	}
}

func TestParseHeaderTooShort(t *testing.T) {
	if _, err := parseHeader(make([]byte, 50), ValidationBasic); err == nil {
		t.Error("expected an error for a truncated header")
	}
}

func TestEffectivePageSize(t *testing.T) {
	cases := []struct {
		stored uint16
		want   int
	}{
		{1, 65536},
		{512, 512},
		{4096, 4096},
		{65535, 65535},
	}
	for _, tc := range cases {
		if got := effectivePageSize(tc.stored); got != tc.want {
			t.Errorf("effectivePageSize(%d) = %d, want %d", tc.stored, got, tc.want)
		}
	}
}

func TestParseHeaderValidationNoneSkipsMagic(t *testing.T) {
	data := buildHeaderBytes(4096)
	data[0] = 'X'
	if _, err := parseHeader(data, ValidationNone); err != nil {
		t.Errorf("ValidationNone should not reject a bad magic number: %v", err)
	}
}

func TestParseHeaderValidationStrictRejectsCounterMismatch(t *testing.T) {
	data := buildHeaderBytes(4096)
	data[27] = 1 // FileChangeCount = 1, VersionValid stays 0
	if _, err := parseHeader(data, ValidationStrict); err == nil {
		t.Error("ValidationStrict should reject a version-valid/change-counter mismatch")
	}
	if _, err := parseHeader(data, ValidationBasic); err != nil {
		t.Errorf("ValidationBasic should not check the counters: %v", err)
	}
}

func TestParseHeaderSpecialPageSize(t *testing.T) {
	data := buildHeaderBytes(1)
	h, err := parseHeader(data, ValidationBasic)
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}
	if got := effectivePageSize(h.PageSize); got != 65536 {
		t.Errorf("effectivePageSize(h.PageSize) = %d, want 65536", got)
	}
}
