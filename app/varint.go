package main

// readVarint decodes a SQLite varint starting at offset in data: 1 to 9
// bytes, big-endian, base-128. The first 8 bytes contribute their low 7
// bits with the high bit as a continuation flag; a 9th byte, if reached,
// contributes all 8 bits with no continuation flag. Returns the decoded
// value and the number of bytes consumed, or ok=false if the buffer ends
// before the varint terminates.
func readVarint(data []byte, offset int) (value uint64, n int, ok bool) {
	var result uint64
	for i := 0; i < 9; i++ {
		if offset+i >= len(data) {
			return 0, 0, false
		}
		b := data[offset+i]
		if i == 8 {
			result = (result << 8) | uint64(b)
			return result, i + 1, true
		}
		result = (result << 7) | uint64(b&0x7F)
		if b&0x80 == 0 {
			return result, i + 1, true
		}
	}
	return 0, 0, false
}

// putVarint encodes n as a SQLite varint and appends it to dst, returning
// the extended slice. Used only by the tests (varint round trips and
// record construction); this read-only engine never encodes varints.
func putVarint(dst []byte, n uint64) []byte {
	// Values needing the top byte (bits 56-63 set) always take the full
	// 9-byte form: 8 grouped-7-bit bytes covering the high 56 bits (bits
	// 8-63), then a final raw byte holding bits 0-7.
	if n&(uint64(0xFF)<<56) != 0 {
		var p [9]byte
		v := n
		p[8] = byte(v)
		v >>= 8
		for i := 7; i >= 0; i-- {
			p[i] = byte(v&0x7F) | 0x80
			v >>= 7
		}
		return append(dst, p[:]...)
	}

	var buf [9]byte
	i := 0
	v := n
	for {
		buf[i] = byte(v&0x7F) | 0x80
		i++
		v >>= 7
		if v == 0 {
			break
		}
	}
	buf[0] &^= 0x80 // least-significant group, emitted last, terminates
	out := make([]byte, i)
	for j := 0; j < i; j++ {
		out[j] = buf[i-1-j]
	}
	return append(dst, out...)
}
