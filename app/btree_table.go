package main

import (
	"context"
	"encoding/binary"
)

// tableLeafCell is a handle to one leaf cell's bytes. Rowid and payload
// bounds are decoded eagerly (cheap, fixed-cost varints); the record itself
// is decoded lazily on first call to Record, so a Counter visitor that never
// calls Record never pays for column decoding.
type tableLeafCell struct {
	page         []byte
	rowid        uint64
	payloadSize  uint64
	payloadStart int
	record       *Record
}

func (c *tableLeafCell) Record() (*Record, error) {
	if c.record != nil {
		return c.record, nil
	}
	end := c.payloadStart + int(c.payloadSize)
	if end > len(c.page) {
		return nil, wrapf(KindOverflowUnsupported, "table_leaf_record", "rowid", c.rowid)
	}
	rec, err := parseRecord(c.page[c.payloadStart:end])
	if err != nil {
		return nil, err
	}
	c.record = rec
	return rec, nil
}

// tableVisitor is notified once per leaf cell, visited in ascending rowid
// order (the natural pre-order walk of a table B-tree). Returning stop=true
// halts the walk early.
type tableVisitor interface {
	VisitLeafCell(ctx context.Context, cell *tableLeafCell) (stop bool, err error)
}

func parseTableLeafCell(page []byte, offset int) (*tableLeafCell, error) {
	payloadSize, n1, ok := readVarint(page, offset)
	if !ok {
		return nil, wrapf(KindTruncated, "parse_table_leaf_cell", "offset", offset, "field", "payload_size")
	}
	rowid, n2, ok := readVarint(page, offset+n1)
	if !ok {
		return nil, wrapf(KindTruncated, "parse_table_leaf_cell", "offset", offset, "field", "rowid")
	}
	return &tableLeafCell{
		page:         page,
		rowid:        rowid,
		payloadSize:  payloadSize,
		payloadStart: offset + n1 + n2,
	}, nil
}

// tableInteriorCell is a child pointer plus the largest rowid stored in
// that child's subtree.
type tableInteriorCell struct {
	childPage uint32
	key       uint64
}

func parseTableInteriorCell(page []byte, offset int) (*tableInteriorCell, error) {
	if offset+4 > len(page) {
		return nil, wrapf(KindShortRead, "parse_table_interior_cell", "offset", offset)
	}
	childPage := binary.BigEndian.Uint32(page[offset : offset+4])
	key, _, ok := readVarint(page, offset+4)
	if !ok {
		return nil, wrapf(KindTruncated, "parse_table_interior_cell", "offset", offset, "field", "key")
	}
	return &tableInteriorCell{childPage: childPage, key: key}, nil
}

func pageHeaderStart(pageNum int) int {
	if pageNum == 1 {
		return headerSize
	}
	return 0
}

// walkTableBTree visits every leaf cell reachable from rootPage, in
// ascending rowid order, stopping early if the visitor asks to.
func walkTableBTree(ctx context.Context, raw DatabaseRaw, rootPage int, visitor tableVisitor) error {
	_, err := walkTableBTreePage(ctx, raw, rootPage, visitor)
	return err
}

func walkTableBTreePage(ctx context.Context, raw DatabaseRaw, pageNum int, visitor tableVisitor) (stop bool, err error) {
	if err := ctx.Err(); err != nil {
		return false, wrapf(KindIoError, "walk_table_btree", "reason", err.Error())
	}

	page, err := raw.ReadPage(ctx, pageNum)
	if err != nil {
		return false, err
	}

	start := pageHeaderStart(pageNum)
	hdr, err := decodePageHeader(page, start)
	if err != nil {
		return false, err
	}
	if !hdr.IsTable() {
		return false, wrapf(KindCorruptPage, "walk_table_btree", "page", pageNum, "page_type", hdr.PageType)
	}

	ptrs, err := readCellPointers(page, start+headerSizeFor(hdr.PageType), hdr.CellCount)
	if err != nil {
		return false, err
	}

	if hdr.IsLeaf() {
		for _, ptr := range ptrs {
			cell, err := parseTableLeafCell(page, int(ptr.Offset()))
			if err != nil {
				return false, err
			}
			stop, err := visitor.VisitLeafCell(ctx, cell)
			if err != nil {
				return false, err
			}
			if stop {
				return true, nil
			}
		}
		return false, nil
	}

	for _, ptr := range ptrs {
		interior, err := parseTableInteriorCell(page, int(ptr.Offset()))
		if err != nil {
			return false, err
		}
		stop, err := walkTableBTreePage(ctx, raw, int(interior.childPage), visitor)
		if err != nil {
			return false, err
		}
		if stop {
			return true, nil
		}
	}
	if hdr.RightChildPage != 0 {
		return walkTableBTreePage(ctx, raw, int(hdr.RightChildPage), visitor)
	}
	return false, nil
}

// findByRowid descends directly toward the leaf that would hold rowid,
// using each interior cell's key (largest rowid in its left subtree) to
// pick a branch instead of visiting every page.
func findByRowid(ctx context.Context, raw DatabaseRaw, rootPage int, rowid uint64) (*tableLeafCell, error) {
	pageNum := rootPage
	for {
		if err := ctx.Err(); err != nil {
			return nil, wrapf(KindIoError, "find_by_rowid", "reason", err.Error())
		}
		page, err := raw.ReadPage(ctx, pageNum)
		if err != nil {
			return nil, err
		}
		start := pageHeaderStart(pageNum)
		hdr, err := decodePageHeader(page, start)
		if err != nil {
			return nil, err
		}
		if !hdr.IsTable() {
			return nil, wrapf(KindCorruptPage, "find_by_rowid", "page", pageNum, "page_type", hdr.PageType)
		}

		ptrs, err := readCellPointers(page, start+headerSizeFor(hdr.PageType), hdr.CellCount)
		if err != nil {
			return nil, err
		}

		if hdr.IsLeaf() {
			for _, ptr := range ptrs {
				cell, err := parseTableLeafCell(page, int(ptr.Offset()))
				if err != nil {
					return nil, err
				}
				if cell.rowid == rowid {
					return cell, nil
				}
			}
			return nil, nil
		}

		next := hdr.RightChildPage
		for _, ptr := range ptrs {
			interior, err := parseTableInteriorCell(page, int(ptr.Offset()))
			if err != nil {
				return nil, err
			}
			if rowid <= interior.key {
				next = interior.childPage
				break
			}
		}
		pageNum = int(next)
	}
}
