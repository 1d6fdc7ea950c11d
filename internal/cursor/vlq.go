package cursor

// UnsignedVB decodes an unsigned variable-byte integer: each byte
// contributes 7 bits of payload in its low bits, with the high bit set on
// every byte except the last. At most 5 bytes are consumed (35 payload
// bits, enough for a uint32).
//
// If the cursor runs out of data before a terminating byte is seen,
// UnsignedVB returns (0, false). If the value would need a 6th byte, it
// returns (0, true): this mirrors the upstream decoder's overflow behavior, which silently yields zero
// rather than signaling an error. That behavior is almost certainly a bug
// in the source this format was distilled from, but logs encoded against
// that behavior may depend on it, so it is preserved here as the default.
// Callers that want the overflow surfaced as an error should use
// UnsignedVBStrict instead.
func (c *Cursor) UnsignedVB() (uint32, bool) {
	var value uint32
	for i := 0; i < 5; i++ {
		b, ok := c.Next()
		if !ok {
			return 0, false
		}
		value |= uint32(b&0x7f) << (7 * uint(i))
		if b < 0x80 {
			return value, true
		}
	}
	// A 6th continuation byte would be needed: overflow.
	return 0, true
}

// UnsignedVBStrict behaves like UnsignedVB but returns ErrCorruptPayload
// instead of silently yielding zero when the value overflows 5 bytes.
func (c *Cursor) UnsignedVBStrict() (uint32, error) {
	mark := c.pos
	var value uint32
	for i := 0; i < 5; i++ {
		b, ok := c.Next()
		if !ok {
			c.pos = mark
			return 0, ErrCorruptPayload
		}
		value |= uint32(b&0x7f) << (7 * uint(i))
		if b < 0x80 {
			return value, nil
		}
	}
	return 0, ErrCorruptPayload
}

// SignedVB decodes a zig-zag encoded signed integer: the unsigned payload
// is read with UnsignedVB, then un-zig-zagged so that small-magnitude
// negative and positive values both produce short encodings.
func (c *Cursor) SignedVB() (int32, bool) {
	u, ok := c.UnsignedVB()
	if !ok {
		return 0, false
	}
	return zigZagDecode(u), true
}

func zigZagDecode(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

// signExtend sign-extends the low `bits` bits of v, treating bit (bits-1)
// as the sign bit. Supported widths mirror the encodings that use them:
// 2, 4, 6, 7, 8, 14, 16, and 24 bits.
func signExtend(v int32, bits uint) int32 {
	shift := 32 - bits
	return (v << shift) >> shift
}

// SignExtend2 sign-extends a 2-bit field.
func SignExtend2(v int32) int32 { return signExtend(v, 2) }

// SignExtend4 sign-extends a 4-bit field.
func SignExtend4(v int32) int32 { return signExtend(v, 4) }

// SignExtend6 sign-extends a 6-bit field.
func SignExtend6(v int32) int32 { return signExtend(v, 6) }

// SignExtend7 sign-extends a 7-bit field.
func SignExtend7(v int32) int32 { return signExtend(v, 7) }

// SignExtend8 sign-extends an 8-bit field.
func SignExtend8(v int32) int32 { return signExtend(v, 8) }

// SignExtend14 sign-extends a 14-bit field.
func SignExtend14(v int32) int32 { return signExtend(v, 14) }

// SignExtend16 sign-extends a 16-bit field.
func SignExtend16(v int32) int32 { return signExtend(v, 16) }

// SignExtend24 sign-extends a 24-bit field.
func SignExtend24(v int32) int32 { return signExtend(v, 24) }
