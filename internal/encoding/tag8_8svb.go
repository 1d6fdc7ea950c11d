package encoding

import (
	"fmt"

	"github.com/flightlog/blackbox/internal/cursor"
)

// DecodeTag8_8SVB decodes the tag8_8svb group encoding: groupCount is the
// number of consecutive field-defs the caller has determined share this
// encoding (computed from the field-def table, since the wire format
// itself carries no explicit field count). When groupCount is 1 this is
// just a plain signed variable-byte value with no header byte; otherwise
// a single header byte's low bits (LSB first) select which of the
// groupCount fields were non-zero and therefore present in the stream.
func DecodeTag8_8SVB(c *cursor.Cursor, groupCount int) (Value, error) {
	if groupCount == 1 {
		return DecodeSignedVB(c)
	}
	header, ok := c.Next()
	if !ok {
		return Value{}, fmt.Errorf("blackbox: encoding %d: %w", Tag8_8SVB, cursor.ErrCorruptPayload)
	}
	values := make([]int32, groupCount)
	for i := 0; i < groupCount; i++ {
		if header&0x01 != 0 {
			v, ok := c.SignedVB()
			if !ok {
				return Value{}, fmt.Errorf("blackbox: encoding %d: %w", Tag8_8SVB, cursor.ErrCorruptPayload)
			}
			values[i] = v
		}
		header >>= 1
	}
	return Group(values), nil
}
