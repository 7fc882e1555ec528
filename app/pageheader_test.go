package main

import "testing"

// buildLeafPage lays out the first 8 header bytes of a page of the given
// type and cell count; everything past them, including the cell-pointer
// array, is left zeroed.
func buildLeafPage(pageType uint8, cellCount uint16, pageSize int) []byte {
	page := make([]byte, pageSize)
	page[0] = pageType
	page[3] = byte(cellCount >> 8)
	page[4] = byte(cellCount)
	page[5] = 0x10
	page[6] = 0x00
	return page
}

func TestDecodePageHeaderLeafTable(t *testing.T) {
	page := buildLeafPage(PageTypeLeafTable, 3, 512)
	h, err := decodePageHeader(page, 0)
	if err != nil {
		t.Fatalf("decodePageHeader: %v", err)
	}
	if !h.IsLeaf() || !h.IsTable() {
		t.Errorf("expected leaf table page, got %+v", h)
	}
	if h.CellCount != 3 {
		t.Errorf("CellCount = %d, want 3", h.CellCount)
	}
	if headerSizeFor(h.PageType) != 8 {
		t.Errorf("headerSizeFor(leaf) = %d, want 8", headerSizeFor(h.PageType))
	}
}

func TestDecodePageHeaderInteriorTable(t *testing.T) {
	page := buildLeafPage(PageTypeInteriorTable, 2, 512)
	page[8] = 0x00
	page[9] = 0x00
	page[10] = 0x00
	page[11] = 0x07
	h, err := decodePageHeader(page, 0)
	if err != nil {
		t.Fatalf("decodePageHeader: %v", err)
	}
	if !h.IsInterior() || !h.IsTable() {
		t.Errorf("expected interior table page, got %+v", h)
	}
	if h.RightChildPage != 7 {
		t.Errorf("RightChildPage = %d, want 7", h.RightChildPage)
	}
	if headerSizeFor(h.PageType) != 12 {
		t.Errorf("headerSizeFor(interior) = %d, want 12", headerSizeFor(h.PageType))
	}
}

func TestDecodePageHeaderAtOffsetForPageOne(t *testing.T) {
	page := make([]byte, 512)
	page[headerSize] = PageTypeLeafTable
	h, err := decodePageHeader(page, headerSize)
	if err != nil {
		t.Fatalf("decodePageHeader: %v", err)
	}
	if h.PageType != PageTypeLeafTable {
		t.Errorf("PageType = %d, want leaf table", h.PageType)
	}
}

func TestDecodePageHeaderInvalidType(t *testing.T) {
	page := buildLeafPage(0x99, 0, 512)
	if _, err := decodePageHeader(page, 0); err == nil {
		t.Error("expected an error for an unrecognized page type byte")
	}
}

func TestDecodePageHeaderShortPage(t *testing.T) {
	if _, err := decodePageHeader(make([]byte, 4), 0); err == nil {
		t.Error("expected an error for a page too short to hold a header")
	}
}

func TestReadCellPointers(t *testing.T) {
	page := make([]byte, 64)
	// Two cell pointers right after an 8-byte leaf header: 0x0030, 0x0020.
	page[8] = 0x00
	page[9] = 0x30
	page[10] = 0x00
	page[11] = 0x20

	ptrs, err := readCellPointers(page, 8, 2)
	if err != nil {
		t.Fatalf("readCellPointers: %v", err)
	}
	if len(ptrs) != 2 {
		t.Fatalf("got %d pointers, want 2", len(ptrs))
	}
	if ptrs[0].Offset() != 0x30 || ptrs[1].Offset() != 0x20 {
		t.Errorf("offsets = %d, %d, want 0x30, 0x20", ptrs[0].Offset(), ptrs[1].Offset())
	}
	if !ptrs[0].IsValid() {
		t.Error("expected a nonzero cell pointer to be valid")
	}
}

func TestReadCellPointersShortPage(t *testing.T) {
	page := make([]byte, 10)
	if _, err := readCellPointers(page, 8, 5); err == nil {
		t.Error("expected an error when the cell-pointer array overruns the page")
	}
}
