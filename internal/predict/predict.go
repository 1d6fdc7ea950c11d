// Package predict implements the field-value predictors blackbox frames
// use to delta-compress against prior state: most predictors add the
// decoded delta value onto some predicted base (previous frame's value,
// a fixed constant, a header default); a couple replace the delta
// entirely when their prerequisite state isn't available yet.
package predict

// ID identifies one of the blackbox field predictors.
type ID int

const (
	Zero              ID = 0 // no prediction, value is absolute
	Previous          ID = 1
	StraightLine      ID = 2
	Average2          ID = 3
	MinThrottle       ID = 4
	Motor0            ID = 5
	Increment         ID = 6
	HomeLat           ID = 7
	FifteenHundred    ID = 8
	VBatRef           ID = 9
	LastMainFrameTime ID = 10
	MinMotor          ID = 11
	// HomeLon is a synthetic predictor id: the wire format reuses
	// predictor 7 (home_coord_0) for both GPS_coord[0] and GPS_coord[1],
	// disambiguated only by field name at bind time. There is no wire
	// value for it; the header binder rewrites GPS_coord[1]'s predictor
	// to HomeLon once, so the frame loop never has to re-derive which
	// home coordinate a field means.
	HomeLon ID = 12
)

// State is the subset of session/frame state a predictor needs to read.
// Implemented by the session package's frame context; kept as an
// interface here so this package has no dependency on session internals.
type State interface {
	// PastValue returns the value of the current field at history depth
	// age (0 = most recent past frame, 1 = the one before that), or
	// def if no such history exists yet.
	PastValue(age int, def int32) int32
	// CurrentValueByName returns the value of field name within the
	// current (possibly still-partial) frame, or def if absent.
	CurrentValueByName(name string) (int32, bool)
	// HeaderInt returns a header value as an int, or def if absent.
	HeaderInt(name string, def int32) int32
	// HeaderIntListElem returns element i of a comma-separated list-valued
	// header as an int, or def if the header is absent or too short.
	HeaderIntListElem(name string, i int, def int32) int32
	// HomeLat/HomeLon return the last GPS_HOME frame's latitude/longitude
	// field, and false if no GPS_HOME frame has been seen yet.
	HomeLat() (int32, bool)
	HomeLon() (int32, bool)
	// SkippedFrames returns the number of P-frames skipped since the
	// last successfully parsed frame, per the I/P interval schedule.
	SkippedFrames() int
}

// Func combines a decoded delta value (new) with predicted state to
// produce the field's actual value.
type Func func(new int32, st State) int32

// Lookup returns the predictor function for id, and false if id is not a
// known predictor.
func Lookup(id ID) (Func, bool) {
	fn, ok := table[id]
	return fn, ok
}

var table = map[ID]Func{
	Zero: func(new int32, _ State) int32 { return new },

	Previous: func(new int32, st State) int32 {
		return new + st.PastValue(0, 0)
	},

	StraightLine: func(new int32, st State) int32 {
		prev := st.PastValue(0, 0)
		prev2 := st.PastValue(1, prev)
		return new + 2*prev - prev2
	},

	Average2: func(new int32, st State) int32 {
		prev := st.PastValue(0, 0)
		prev2 := st.PastValue(1, prev)
		return new + (prev+prev2)/2
	},

	MinThrottle: func(new int32, st State) int32 {
		return new + st.HeaderInt("minthrottle", 0)
	},

	Motor0: func(new int32, st State) int32 {
		v, _ := st.CurrentValueByName("motor[0]")
		return new + v
	},

	Increment: func(_ int32, st State) int32 {
		return 1 + st.PastValue(0, 0) + int32(st.SkippedFrames())
	},

	// HomeLat/HomeLon deviate from the new+base shape: until a GPS_HOME
	// frame has actually been seen, the field's value is forced to 0
	// rather than offset from a meaningless base.
	HomeLat: func(new int32, st State) int32 {
		base, ok := st.HomeLat()
		if !ok {
			return 0
		}
		return new + base
	},

	HomeLon: func(new int32, st State) int32 {
		base, ok := st.HomeLon()
		if !ok {
			return 0
		}
		return new + base
	},

	FifteenHundred: func(new int32, _ State) int32 {
		return new + 1500
	},

	VBatRef: func(new int32, st State) int32 {
		return new + st.HeaderInt("vbatref", 0)
	},

	LastMainFrameTime: func(new int32, st State) int32 {
		// Untested in the source this was distilled from; preserved
		// as-is rather than guessed at.
		return new + st.PastValue(1, 0)
	},

	MinMotor: func(new int32, st State) int32 {
		return new + st.HeaderIntListElem("motorOutput", 0, 0)
	},
}
