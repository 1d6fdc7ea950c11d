package encoding

import (
	"fmt"

	"github.com/flightlog/blackbox/internal/cursor"
)

// BindTag8_4S16 is a constructor for the versioned tag8_4s16 decoder: the
// field layout it produces changed between blackbox data format versions,
// so the caller must bind a decoder to a specific version once, at
// header-bind time, rather than re-dispatching on every frame.
func BindTag8_4S16(dataVersion int) (func(*cursor.Cursor) (Value, error), error) {
	if dataVersion < 2 {
		return nil, fmt.Errorf("blackbox: encoding %d v1: %w", Tag8_4S16, ErrUnimplemented)
	}
	return decodeTag8_4S16V2, nil
}

// decodeTag8_4S16V2 decodes four field values from one selector byte. Each
// of the selector's four 2-bit groups (LSB first) chooses a width for the
// corresponding field: 0 bits (always zero), 4, 8, or 16 bits. 4-bit and
// 8-bit fields share nibble pairs across adjacent fields of the same
// width, so decoding must track a one-nibble lookahead buffer.
func decodeTag8_4S16V2(c *cursor.Cursor) (Value, error) {
	selector, ok := c.Next()
	if !ok {
		return Value{}, fmt.Errorf("blackbox: encoding %d v2: %w", Tag8_4S16, cursor.ErrCorruptPayload)
	}
	corrupt := func() (Value, error) {
		return Value{}, fmt.Errorf("blackbox: encoding %d v2: %w", Tag8_4S16, cursor.ErrCorruptPayload)
	}

	values := make([]int32, 0, 4)
	nibbleIndex := 0
	var buffer byte

	for i := 0; i < 4; i++ {
		switch selector & 0x03 {
		case 0: // zero-width field
			values = append(values, 0)

		case 1: // 4-bit field, two per byte
			if nibbleIndex == 0 {
				b, ok := c.Next()
				if !ok {
					return corrupt()
				}
				buffer = b
				values = append(values, cursor.SignExtend4(int32(buffer>>4)))
				nibbleIndex = 1
			} else {
				values = append(values, cursor.SignExtend4(int32(buffer&0x0f)))
				nibbleIndex = 0
			}

		case 2: // 8-bit field
			if nibbleIndex == 0 {
				b, ok := c.Next()
				if !ok {
					return corrupt()
				}
				values = append(values, cursor.SignExtend8(int32(b)))
			} else {
				b, ok := c.Next()
				if !ok {
					return corrupt()
				}
				v := (int32(buffer&0x0f) << 4) | int32(b>>4)
				buffer = b
				values = append(values, cursor.SignExtend8(v))
			}

		case 3: // 16-bit field
			if nibbleIndex == 0 {
				hi, ok := c.Next()
				if !ok {
					return corrupt()
				}
				lo, ok := c.Next()
				if !ok {
					return corrupt()
				}
				values = append(values, cursor.SignExtend16(int32(hi)<<8|int32(lo)))
			} else {
				b1, ok := c.Next()
				if !ok {
					return corrupt()
				}
				b2, ok := c.Next()
				if !ok {
					return corrupt()
				}
				v := (int32(buffer&0x0f) << 12) | (int32(b1) << 4) | (int32(b2) >> 4)
				buffer = b2
				values = append(values, cursor.SignExtend16(v))
			}
		}
		selector >>= 2
	}
	return Group(values), nil
}
