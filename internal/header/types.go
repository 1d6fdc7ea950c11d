// Package header implements the ASCII header block of a blackbox log
// session: tokenizing "H name:value" lines into typed header values,
// binding those headers to per-frame-type field definitions, and locating
// session boundaries within a multi-session file.
package header

import (
	"github.com/flightlog/blackbox/internal/encoding"
	"github.com/flightlog/blackbox/internal/predict"
)

// FrameType identifies one of the blackbox frame kinds. Values match the
// single-letter tags used in the "Field <tag> <property>" header keys.
type FrameType byte

const (
	Intra   FrameType = 'I'
	Inter   FrameType = 'P'
	Slow    FrameType = 'S'
	GPS     FrameType = 'G'
	GPSHome FrameType = 'H'
	Event   FrameType = 'E'
)

// String returns the single-character tag for ft.
func (ft FrameType) String() string {
	return string(rune(ft))
}

// AllFrameTypes lists every frame type the header binder scans for field
// definitions, in the order the binder processes them.
var AllFrameTypes = []FrameType{Intra, Inter, Slow, GPS, GPSHome, Event}

// EventType identifies the kind of payload an EVENT frame carries.
type EventType byte

const (
	EventSyncBeep            EventType = 0
	EventAutotuneCycleStart  EventType = 10
	EventAutotuneCycleResult EventType = 11
	EventAutotuneTargets     EventType = 12
	EventInflightAdjustment  EventType = 13
	EventLoggingResume       EventType = 14
	EventGTuneCycleResult    EventType = 20
	EventFlightMode          EventType = 30
	EventTwitchTest          EventType = 40
	EventCustom              EventType = 250
	EventCustomBlank         EventType = 251
	EventLogEnd              EventType = 255
)

// FieldDef describes one decoded field of a frame type: its name, whether
// it is signed, and the predictor/encoding pair used to decode it. Decode
// and Predict are resolved once at bind time so the frame loop never has
// to branch on raw predictor/encoding ids.
type FieldDef struct {
	Type      FrameType
	Name      string
	Signed    bool
	Predictor int
	Encoding  int

	Decode  encoding.Simple
	// GroupCount is only meaningful when Encoding == encoding.Tag8_8SVB;
	// it is the number of consecutive field-defs this decode call
	// produces values for.
	GroupCount int
	Predict predict.Func
}
