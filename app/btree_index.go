package main

import (
	"context"
	"encoding/binary"
)

// parseIndexPayloadCell decodes the record carried by both leaf and
// interior index cells: [indexed column value, rowid]. SQLite real index
// cells can carry more than one key column; this engine only matches on
// the first key column, so column 0 is the key and the last column is
// the rowid.
func parseIndexPayloadCell(page []byte, offset int) (*IndexEntry, int, error) {
	payloadSize, n1, ok := readVarint(page, offset)
	if !ok {
		return nil, 0, wrapf(KindTruncated, "parse_index_cell", "offset", offset, "field", "payload_size")
	}
	payloadStart := offset + n1
	payloadEnd := payloadStart + int(payloadSize)
	if payloadEnd > len(page) {
		return nil, 0, wrapf(KindOverflowUnsupported, "parse_index_cell", "offset", offset)
	}
	rec, err := parseRecord(page[payloadStart:payloadEnd])
	if err != nil {
		return nil, 0, err
	}
	if rec.ColumnCount() < 2 {
		return nil, 0, wrapf(KindMalformedDdl, "parse_index_cell", "column_count", rec.ColumnCount())
	}
	keyVal, err := rec.Column(0)
	if err != nil {
		return nil, 0, err
	}
	rowidVal, err := rec.Column(rec.ColumnCount() - 1)
	if err != nil {
		return nil, 0, err
	}
	rowid, err := rowidVal.Int64()
	if err != nil {
		return nil, 0, wrapf(KindMalformedDdl, "parse_index_cell", "reason", "trailing column is not an integer rowid")
	}
	return &IndexEntry{Key: keyVal.String(), Rowid: uint64(rowid)}, n1 + int(payloadSize), nil
}

func parseIndexLeafCell(page []byte, offset int) (*IndexEntry, error) {
	entry, _, err := parseIndexPayloadCell(page, offset)
	return entry, err
}

func parseIndexInteriorCell(page []byte, offset int) (childPage uint32, entry *IndexEntry, err error) {
	if offset+4 > len(page) {
		return 0, nil, wrapf(KindShortRead, "parse_index_interior_cell", "offset", offset)
	}
	childPage = binary.BigEndian.Uint32(page[offset : offset+4])
	entry, _, err = parseIndexPayloadCell(page, offset+4)
	return childPage, entry, err
}

// indexLookup finds every rowid whose indexed column equals target. It
// visits every page of the index; subtrees are not pruned by key.
func indexLookup(ctx context.Context, raw DatabaseRaw, rootPage int, target string) ([]uint64, error) {
	var results []uint64
	if err := indexLookupPage(ctx, raw, rootPage, target, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func indexLookupPage(ctx context.Context, raw DatabaseRaw, pageNum int, target string, results *[]uint64) error {
	if err := ctx.Err(); err != nil {
		return wrapf(KindIoError, "index_lookup", "reason", err.Error())
	}

	page, err := raw.ReadPage(ctx, pageNum)
	if err != nil {
		return err
	}
	start := pageHeaderStart(pageNum)
	hdr, err := decodePageHeader(page, start)
	if err != nil {
		return err
	}
	if !hdr.IsIndex() {
		return wrapf(KindCorruptPage, "index_lookup", "page", pageNum, "page_type", hdr.PageType)
	}

	ptrs, err := readCellPointers(page, start+headerSizeFor(hdr.PageType), hdr.CellCount)
	if err != nil {
		return err
	}

	if hdr.IsLeaf() {
		for _, ptr := range ptrs {
			entry, err := parseIndexLeafCell(page, int(ptr.Offset()))
			if err != nil {
				return err
			}
			if entry.Key == target {
				*results = append(*results, entry.Rowid)
			}
		}
		return nil
	}

	// Descend into every child unconditionally rather than pruning by a
	// lexical comparison of entry.Key: the key here is the indexed
	// column's String() rendering, which for integer columns is decimal
	// text, not the column's actual on-disk ordering. Lexical pruning
	// would silently drop matches (e.g. target "100" vs separator "99").
	// Section 4.8 permits this unpruned descent as a correct alternative
	// to key-directed pruning.
	for _, ptr := range ptrs {
		childPage, entry, err := parseIndexInteriorCell(page, int(ptr.Offset()))
		if err != nil {
			return err
		}
		if err := indexLookupPage(ctx, raw, int(childPage), target, results); err != nil {
			return err
		}
		if entry.Key == target {
			*results = append(*results, entry.Rowid)
		}
	}
	if hdr.RightChildPage != 0 {
		return indexLookupPage(ctx, raw, int(hdr.RightChildPage), target, results)
	}
	return nil
}
