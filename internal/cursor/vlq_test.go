package cursor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursor_UnsignedVB(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want uint32
	}{
		{"single byte", []byte{0x05}, 5},
		{"max 7-bit", []byte{0x7f}, 0x7f},
		{"multi-byte chain", []byte{0xe5, 0x8e, 0x26}, 0x98765}, // 0x65 | (0x0e<<7) | (0x26<<14)
		{"zero", []byte{0x00}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New(tc.in)
			got, ok := c.UnsignedVB()
			require.True(t, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestCursor_UnsignedVB_Overflow(t *testing.T) {
	// Six continuation bytes: the source format's decoder returns 0 on
	// overflow rather than an error, and UnsignedVB preserves that.
	c := New([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0x01})
	got, ok := c.UnsignedVB()
	require.True(t, ok)
	require.Equal(t, uint32(0), got)
}

func TestCursor_UnsignedVBStrict_Overflow(t *testing.T) {
	c := New([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0x01})
	_, err := c.UnsignedVBStrict()
	require.ErrorIs(t, err, ErrCorruptPayload)
}

func TestCursor_UnsignedVB_Truncated(t *testing.T) {
	c := New([]byte{0xff, 0xff})
	_, ok := c.UnsignedVB()
	require.False(t, ok)
}

func TestCursor_SignedVB_ZigZag(t *testing.T) {
	cases := []struct {
		in   []byte
		want int32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x01}, -1},
		{[]byte{0x02}, 1},
		{[]byte{0x03}, -2},
		{[]byte{0x04}, 2},
	}
	for _, tc := range cases {
		c := New(tc.in)
		got, ok := c.SignedVB()
		require.True(t, ok)
		require.Equal(t, tc.want, got)
	}
}

func TestSignExtend(t *testing.T) {
	require.Equal(t, int32(-1), SignExtend2(0x3))
	require.Equal(t, int32(1), SignExtend2(0x1))
	require.Equal(t, int32(-8), SignExtend4(0x8))
	require.Equal(t, int32(-1), SignExtend6(0x3f))
	require.Equal(t, int32(-1), SignExtend7(0x7f))
	require.Equal(t, int32(-1), SignExtend8(0xff))
	require.Equal(t, int32(127), SignExtend8(0x7f))
	require.Equal(t, int32(-1), SignExtend14(0x3fff))
	require.Equal(t, int32(-1), SignExtend16(0xffff))
	require.Equal(t, int32(-1), SignExtend24(0xffffff))
}
