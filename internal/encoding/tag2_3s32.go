package encoding

import (
	"fmt"

	"github.com/flightlog/blackbox/internal/cursor"
)

// DecodeTag2_3S32 decodes the tag2_3s32 group encoding: a lead byte's top
// two bits select one of four subformats for packing three field values,
// trading value range for header overhead.
func DecodeTag2_3S32(c *cursor.Cursor) (Value, error) {
	lead, ok := c.Next()
	if !ok {
		return Value{}, fmt.Errorf("blackbox: encoding %d: %w", Tag2_3S32, cursor.ErrCorruptPayload)
	}
	corrupt := func() (Value, error) {
		return Value{}, fmt.Errorf("blackbox: encoding %d: %w", Tag2_3S32, cursor.ErrCorruptPayload)
	}

	switch lead >> 6 {
	case 0: // three 2-bit fields packed into the lead byte
		v1 := cursor.SignExtend2(int32((lead >> 4) & 0x03))
		v2 := cursor.SignExtend2(int32((lead >> 2) & 0x03))
		v3 := cursor.SignExtend2(int32(lead & 0x03))
		return Group([]int32{v1, v2, v3}), nil

	case 1: // three 4-bit fields across two bytes
		v1 := cursor.SignExtend4(int32(lead & 0x0f))
		b, ok := c.Next()
		if !ok {
			return corrupt()
		}
		v2 := cursor.SignExtend4(int32(b >> 4))
		v3 := cursor.SignExtend4(int32(b & 0x0f))
		return Group([]int32{v1, v2, v3}), nil

	case 2: // three 6-bit fields across three bytes
		v1 := cursor.SignExtend6(int32(lead & 0x3f))
		b2, ok := c.Next()
		if !ok {
			return corrupt()
		}
		v2 := cursor.SignExtend6(int32(b2 & 0x3f))
		b3, ok := c.Next()
		if !ok {
			return corrupt()
		}
		v3 := cursor.SignExtend6(int32(b3 & 0x3f))
		return Group([]int32{v1, v2, v3}), nil

	default: // lead>>6 == 3: per-field 2-bit width selector, 8/16/24/32-bit
		values := make([]int32, 3)
		selector := lead
		for i := 0; i < 3; i++ {
			switch selector & 0x03 {
			case 0: // 8-bit
				b, ok := c.Next()
				if !ok {
					return corrupt()
				}
				values[i] = cursor.SignExtend8(int32(b))
			case 1: // 16-bit
				lo, ok := c.Next()
				if !ok {
					return corrupt()
				}
				hi, ok := c.Next()
				if !ok {
					return corrupt()
				}
				values[i] = cursor.SignExtend16(int32(lo) | int32(hi)<<8)
			case 2: // 24-bit
				b0, ok := c.Next()
				if !ok {
					return corrupt()
				}
				b1, ok := c.Next()
				if !ok {
					return corrupt()
				}
				b2, ok := c.Next()
				if !ok {
					return corrupt()
				}
				values[i] = cursor.SignExtend24(int32(b0) | int32(b1)<<8 | int32(b2)<<16)
			case 3: // 32-bit, not sign-extended (already full width)
				b0, ok := c.Next()
				if !ok {
					return corrupt()
				}
				b1, ok := c.Next()
				if !ok {
					return corrupt()
				}
				b2, ok := c.Next()
				if !ok {
					return corrupt()
				}
				b3, ok := c.Next()
				if !ok {
					return corrupt()
				}
				values[i] = int32(b0) | int32(b1)<<8 | int32(b2)<<16 | int32(b3)<<24
			}
			selector >>= 2
		}
		return Group(values), nil
	}
}
