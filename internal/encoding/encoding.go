// Package encoding implements the per-field value encodings used by
// blackbox frame data: the scalar variable-byte codecs and the tagged
// group codecs that pack several field values behind one selector byte.
package encoding

import (
	"errors"
	"fmt"

	"github.com/flightlog/blackbox/internal/cursor"
)

// ErrUnimplemented is returned by encodings the source format leaves
// unspecified: encoding 10 (tag2_3svariable) and encoding 8 under data
// version < 2 (tag8_4s16_v1). No logs observed in the wild are known to
// require them; guessing their bit layout would silently invent behavior.
var ErrUnimplemented = errors.New("blackbox: encoding not implemented")

// Value is the result of decoding one field-def's worth of data. Most
// encodings produce a single scalar; the tagged group encodings (6, 7, 8)
// can produce several field values from one decode call, one per field-def
// the group covers.
type Value struct {
	group  []int32
	scalar int32
}

// Single wraps a plain scalar result.
func Single(v int32) Value { return Value{scalar: v} }

// Group wraps a multi-field result. vs must have at least one element.
func Group(vs []int32) Value { return Value{group: vs} }

// Values returns the decoded value(s) as a slice, regardless of whether
// the underlying result was a scalar or a group.
func (v Value) Values() []int32 {
	if v.group != nil {
		return v.group
	}
	return []int32{v.scalar}
}

// ID identifies one of the blackbox field encodings.
type ID int

const (
	SignedVB    ID = 0
	UnsignedVB  ID = 1
	Neg14Bit    ID = 3
	Tag8_8SVB   ID = 6
	Tag2_3S32   ID = 7
	Tag8_4S16   ID = 8
	Null        ID = 9
	Tag2_3SVar  ID = 10
)

// DecodeSignedVB decodes a single zig-zag variable-byte value.
func DecodeSignedVB(c *cursor.Cursor) (Value, error) {
	v, ok := c.SignedVB()
	if !ok {
		return Value{}, fmt.Errorf("blackbox: encoding %d: %w", SignedVB, cursor.ErrCorruptPayload)
	}
	return Single(v), nil
}

// DecodeUnsignedVB decodes a single unsigned variable-byte value.
func DecodeUnsignedVB(c *cursor.Cursor) (Value, error) {
	v, ok := c.UnsignedVB()
	if !ok {
		return Value{}, fmt.Errorf("blackbox: encoding %d: %w", UnsignedVB, cursor.ErrCorruptPayload)
	}
	return Single(int32(v)), nil
}

// DecodeNeg14Bit decodes an unsigned variable-byte value, sign-extends it as a
// 14-bit field, and negates it.
func DecodeNeg14Bit(c *cursor.Cursor) (Value, error) {
	v, ok := c.UnsignedVB()
	if !ok {
		return Value{}, fmt.Errorf("blackbox: encoding %d: %w", Neg14Bit, cursor.ErrCorruptPayload)
	}
	return Single(-cursor.SignExtend14(int32(v))), nil
}

// DecodeNull consumes nothing and always decodes to zero.
func DecodeNull(*cursor.Cursor) (Value, error) {
	return Single(0), nil
}

// DecodeTag2_3SVariable always returns ErrUnimplemented: tag2_3svariable is not specified by the source format this decoder was
// distilled from; no test log has been observed that exercises it.
func DecodeTag2_3SVariable(*cursor.Cursor) (Value, error) {
	return Value{}, ErrUnimplemented
}
