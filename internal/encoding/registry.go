package encoding

import (
	"fmt"

	"github.com/flightlog/blackbox/internal/cursor"
)

// Simple is the subset of encodings that take no extra context beyond the
// byte cursor: no group-size lookup, no data-version dispatch.
type Simple func(*cursor.Cursor) (Value, error)

// simpleTable holds every encoding that needs nothing but the cursor.
// Tag8_8SVB (needs a group count from the caller) and Tag8_4S16 (needs a
// data-version bound once at header-bind time) are looked up separately.
var simpleTable = map[ID]Simple{
	SignedVB:   DecodeSignedVB,
	UnsignedVB: DecodeUnsignedVB,
	Neg14Bit:   DecodeNeg14Bit,
	Tag2_3S32:  DecodeTag2_3S32,
	Null:       DecodeNull,
	Tag2_3SVar: DecodeTag2_3SVariable,
}

// Lookup returns the decoder function for id, if it takes no extra
// context. It reports ok=false for Tag8_8SVB and Tag8_4S16, which require
// BindTag8_8SVB / BindTag8_4S16 instead.
func Lookup(id ID) (Simple, bool) {
	fn, ok := simpleTable[id]
	return fn, ok
}

// BindTag8_8SVB curries DecodeTag8_8SVB with a fixed group count, computed
// once at header-bind time from the surrounding field-def table.
func BindTag8_8SVB(groupCount int) Simple {
	return func(c *cursor.Cursor) (Value, error) {
		return DecodeTag8_8SVB(c, groupCount)
	}
}

// Known reports whether id names a recognized encoding at all (regardless
// of whether it is implemented), so the header binder can distinguish
// "unknown encoding id" (a malformed header) from "known but unimplemented"
// (ErrUnimplemented).
func Known(id ID) bool {
	switch id {
	case SignedVB, UnsignedVB, Neg14Bit, Tag8_8SVB, Tag2_3S32, Tag8_4S16, Null, Tag2_3SVar:
		return true
	default:
		return false
	}
}

func (id ID) String() string {
	switch id {
	case SignedVB:
		return "signed_vb"
	case UnsignedVB:
		return "unsigned_vb"
	case Neg14Bit:
		return "neg_14bit"
	case Tag8_8SVB:
		return "tag8_8svb"
	case Tag2_3S32:
		return "tag2_3s32"
	case Tag8_4S16:
		return "tag8_4s16"
	case Null:
		return "null"
	case Tag2_3SVar:
		return "tag2_3svariable"
	default:
		return fmt.Sprintf("encoding(%d)", int(id))
	}
}
