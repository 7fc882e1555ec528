package main

import "encoding/binary"

// DatabaseHeader is the 100-byte header at the start of every SQLite file.
type DatabaseHeader struct {
	MagicNumber     [16]byte
	PageSize        uint16
	FileFormatWrite uint8
	FileFormatRead  uint8
	ReservedBytes   uint8
	MaxPayload      uint8
	MinPayload      uint8
	LeafPayload     uint8
	FileChangeCount uint32
	DatabaseSize    uint32
	FirstFreePage   uint32
	FreePageCount   uint32
	SchemaCookie    uint32
	SchemaFormat    uint32
	DefaultCache    uint32
	LargestBTree    uint32
	TextEncoding    uint32
	UserVersion     uint32
	IncrVacuum      uint32
	AppID           uint32
	Reserved        [20]byte
	VersionValid    uint32
	SQLiteVersion   uint32
}

const headerSize = 100
const sqliteMagic = "SQLite format 3\x00"

// effectivePageSize translates the on-disk page-size field into the actual
// page size in bytes. SQLite stores 65536 as 0x0001 because the field is a
// 16-bit big-endian integer and 65536 does not fit.
func effectivePageSize(stored uint16) int {
	if stored == 1 {
		return 65536
	}
	return int(stored)
}

// parseHeader decodes the 100-byte database header. The magic number and
// header-field consistency checks applied afterward depend on mode:
// ValidationNone trusts the file outright (useful against hand-built test
// fixtures that don't bother with a real magic number), ValidationBasic
// checks only the magic number, and ValidationStrict additionally requires
// the header's two change-counter fields to agree, per the format's own
// definition of a cleanly-closed file.
func parseHeader(data []byte, mode ValidationLevel) (*DatabaseHeader, error) {
	if len(data) < headerSize {
		return nil, wrapf(KindShortRead, "parse_header", "have_bytes", len(data), "need_bytes", headerSize)
	}

	h := &DatabaseHeader{}
	copy(h.MagicNumber[:], data[0:16])
	if mode != ValidationNone && string(h.MagicNumber[:]) != sqliteMagic {
		return nil, wrapf(KindCorruptPage, "parse_header", "reason", "bad magic number")
	}

	h.PageSize = binary.BigEndian.Uint16(data[16:18])
	h.FileFormatWrite = data[18]
	h.FileFormatRead = data[19]
	h.ReservedBytes = data[20]
	h.MaxPayload = data[21]
	h.MinPayload = data[22]
	h.LeafPayload = data[23]
	h.FileChangeCount = binary.BigEndian.Uint32(data[24:28])
	h.DatabaseSize = binary.BigEndian.Uint32(data[28:32])
	h.FirstFreePage = binary.BigEndian.Uint32(data[32:36])
	h.FreePageCount = binary.BigEndian.Uint32(data[36:40])
	h.SchemaCookie = binary.BigEndian.Uint32(data[40:44])
	h.SchemaFormat = binary.BigEndian.Uint32(data[44:48])
	h.DefaultCache = binary.BigEndian.Uint32(data[48:52])
	h.LargestBTree = binary.BigEndian.Uint32(data[52:56])
	h.TextEncoding = binary.BigEndian.Uint32(data[56:60])
	h.UserVersion = binary.BigEndian.Uint32(data[60:64])
	h.IncrVacuum = binary.BigEndian.Uint32(data[64:68])
	h.AppID = binary.BigEndian.Uint32(data[68:72])
	copy(h.Reserved[:], data[72:92])
	h.VersionValid = binary.BigEndian.Uint32(data[92:96])
	h.SQLiteVersion = binary.BigEndian.Uint32(data[96:100])

	if mode == ValidationStrict && h.VersionValid != h.FileChangeCount {
		return nil, wrapf(KindCorruptPage, "parse_header", "reason", "version-valid-for counter does not match file change counter")
	}

	return h, nil
}
