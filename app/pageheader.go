package main

import "encoding/binary"

// B-tree page type bytes
const (
	PageTypeInteriorIndex = 0x02
	PageTypeInteriorTable = 0x05
	PageTypeLeafIndex     = 0x0A
	PageTypeLeafTable     = 0x0D
)

// PageHeader is the 8-byte (leaf) or 12-byte (interior) B-tree page header.
type PageHeader struct {
	PageType         uint8
	FirstFreeblock   uint16
	CellCount        uint16
	CellContentStart uint16
	FragmentedBytes  uint8
	RightChildPage   uint32 // only meaningful for interior pages
}

// CellPointer is an offset into the page for one cell.
type CellPointer uint16

func (cp CellPointer) Offset() uint16 { return uint16(cp) }
func (cp CellPointer) IsValid() bool  { return cp > 0 }

func (h PageHeader) IsLeaf() bool {
	return h.PageType == PageTypeLeafTable || h.PageType == PageTypeLeafIndex
}

func (h PageHeader) IsInterior() bool {
	return h.PageType == PageTypeInteriorTable || h.PageType == PageTypeInteriorIndex
}

func (h PageHeader) IsTable() bool {
	return h.PageType == PageTypeLeafTable || h.PageType == PageTypeInteriorTable
}

func (h PageHeader) IsIndex() bool {
	return h.PageType == PageTypeLeafIndex || h.PageType == PageTypeInteriorIndex
}

// headerSizeFor returns the byte length of the page header itself (not
// counting the 100-byte file header that precedes page 1's header).
func headerSizeFor(pageType uint8) int {
	if pageType == PageTypeInteriorTable || pageType == PageTypeInteriorIndex {
		return 12
	}
	return 8
}

// decodePageHeader parses the B-tree page header located at byte offset
// `start` within page (start is 0 for every page except page 1, where it is
// 100 to skip the file header).
func decodePageHeader(page []byte, start int) (PageHeader, error) {
	if start+8 > len(page) {
		return PageHeader{}, wrapf(KindShortRead, "decode_page_header", "start", start, "page_len", len(page))
	}

	var h PageHeader
	h.PageType = page[start]
	switch h.PageType {
	case PageTypeInteriorIndex, PageTypeInteriorTable, PageTypeLeafIndex, PageTypeLeafTable:
	default:
		return PageHeader{}, wrapf(KindCorruptPage, "decode_page_header", "page_type", h.PageType)
	}

	h.FirstFreeblock = binary.BigEndian.Uint16(page[start+1 : start+3])
	h.CellCount = binary.BigEndian.Uint16(page[start+3 : start+5])
	h.CellContentStart = binary.BigEndian.Uint16(page[start+5 : start+7])
	h.FragmentedBytes = page[start+7]

	if h.IsInterior() {
		if start+12 > len(page) {
			return PageHeader{}, wrapf(KindShortRead, "decode_page_header", "start", start, "page_len", len(page))
		}
		h.RightChildPage = binary.BigEndian.Uint32(page[start+8 : start+12])
	}

	return h, nil
}

// readCellPointers reads the CellCount cell-pointer array entries that
// follow the page header at byte offset headerEnd.
func readCellPointers(page []byte, headerEnd int, count uint16) ([]CellPointer, error) {
	ptrs := make([]CellPointer, count)
	for i := 0; i < int(count); i++ {
		off := headerEnd + i*2
		if off+2 > len(page) {
			return nil, wrapf(KindShortRead, "read_cell_pointers", "index", i, "page_len", len(page))
		}
		ptrs[i] = CellPointer(binary.BigEndian.Uint16(page[off : off+2]))
	}
	return ptrs, nil
}
