// Package session implements the stateful frame decoder loop: the
// per-session context that predictors and the field-decode loop read and
// mutate, the frame-type dispatcher with its corruption-recovery state
// machine, and the event sub-parser.
package session

import (
	"github.com/flightlog/blackbox/internal/header"
)

// Frame is one decoded blackbox frame: its type and its fully-predicted
// field values, in field-def order.
type Frame struct {
	Type header.FrameType
	Data []int32
}

// context holds everything predictors and the frame loop need: the header
// values, resolved field-def tables, frame history, and the bookkeeping
// counters the public Stats() surface reports.
type context struct {
	headers   *header.Headers
	fieldDefs map[header.FrameType][]*header.FieldDef

	namesToIndices map[header.FrameType]map[string]int

	frameType    header.FrameType
	fieldIndex   int
	currentFrame []int32

	pastFrames       [3]Frame
	lastGPSHomeFrame Frame

	// lastIter mirrors the upstream Context's own last_iter: -1 until the
	// first frame is successfully parsed, then the loopIteration value of
	// the most recently parsed main frame. It is distinct from the frame
	// loop's own desync-tracking iteration counter (see frames.go).
	lastIter int32

	frameCount        int
	readFrameCount    int
	invalidFrameCount int

	iInterval      int64
	pIntervalNum   int64
	pIntervalDenom int64
}

func newContext(h *header.Headers, fieldDefs map[header.FrameType][]*header.FieldDef) *context {
	c := &context{
		headers:        h,
		fieldDefs:      fieldDefs,
		namesToIndices: make(map[header.FrameType]map[string]int),
		lastIter:       -1,
	}
	for ft, defs := range fieldDefs {
		m := make(map[string]int, len(defs))
		for i, fdef := range defs {
			m[fdef.Name] = i
		}
		c.namesToIndices[ft] = m
	}
	c.iInterval = h.GetInt("I interval", 1)
	if c.iInterval < 1 {
		c.iInterval = 1
	}
	c.pIntervalNum, c.pIntervalDenom = parsePInterval(h)
	return c
}

// parsePInterval reads the "P interval" header, which is either a plain
// integer denominator (numerator implicitly 1) or a "num/denom" string.
func parsePInterval(h *header.Headers) (num, denom int64) {
	v, ok := h.Get("P interval")
	if !ok {
		return 1, 1
	}
	if n, ok := v.Int(); ok {
		return 1, n
	}
	s := v.String()
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			numPart, denomPart := s[:i], s[i+1:]
			return atoi64(numPart), atoi64(denomPart)
		}
	}
	return 1, atoi64(s)
}

func atoi64(s string) int64 {
	var n int64
	neg := false
	for i, r := range s {
		if i == 0 && r == '-' {
			neg = true
			continue
		}
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int64(r-'0')
	}
	if neg {
		n = -n
	}
	return n
}

// addFrame folds a just-emitted main frame (INTRA or INTER) into the
// past-frames ring: INTRA commits collapse the entire ring to three copies
// of itself; INTER shifts the ring forward by one. GPS and GPS_HOME never
// reach here — GPS frames are cached on the Engine, GPS_HOME frames via
// setGPSHome, and neither is part of frame_count.
func (c *context) addFrame(f Frame) {
	if f.Type == header.Intra {
		c.pastFrames = [3]Frame{f, f, f}
	} else {
		c.pastFrames = [3]Frame{f, c.pastFrames[0], c.pastFrames[1]}
	}
	c.frameCount++
}

// setGPSHome commits a decoded GPS_HOME frame to context, updating the
// home-coordinate predictors' reference point. It is never emitted and
// never counted toward frame_count.
func (c *context) setGPSHome(f Frame) {
	c.lastGPSHomeFrame = f
}

// currentValueByName returns the value of field name within frame type ft,
// read from the context's "current frame" partial view.
func (c *context) currentValueByName(ft header.FrameType, name string) (int32, bool) {
	idx, ok := c.namesToIndices[ft][name]
	if !ok || idx >= len(c.currentFrame) {
		return 0, false
	}
	return c.currentFrame[idx], true
}

// --- predict.State ---

func (c *context) PastValue(age int, def int32) int32 {
	if age < 0 || age > 2 {
		return def
	}
	data := c.pastFrames[age].Data
	if c.fieldIndex >= len(data) {
		return def
	}
	return data[c.fieldIndex]
}

func (c *context) CurrentValueByName(name string) (int32, bool) {
	// Predictors always resolve field names against the INTRA field-def
	// layout: INTER field names are copied positionally from INTRA at
	// bind time, so this also covers INTER frames correctly.
	return c.currentValueByName(header.Intra, name)
}

func (c *context) HeaderInt(name string, def int32) int32 {
	return int32(c.headers.GetInt(name, int64(def)))
}

func (c *context) HeaderIntListElem(name string, i int, def int32) int32 {
	v, ok := c.headers.Get(name)
	if !ok {
		return def
	}
	list := v.List()
	if i < 0 || i >= len(list) {
		return def
	}
	n, ok := list[i].Int()
	if !ok {
		return def
	}
	return int32(n)
}

func (c *context) HomeLat() (int32, bool) {
	if len(c.lastGPSHomeFrame.Data) == 0 {
		return 0, false
	}
	return c.lastGPSHomeFrame.Data[0], true
}

func (c *context) HomeLon() (int32, bool) {
	if len(c.lastGPSHomeFrame.Data) == 0 {
		return 0, false
	}
	return c.lastGPSHomeFrame.Data[1], true
}

func (c *context) SkippedFrames() int {
	return c.countSkippedFrames()
}

// shouldHaveFrameAt reports whether a main frame is scheduled at the given
// loop-iteration index, per the I/P interval cadence.
func (c *context) shouldHaveFrameAt(index int64) bool {
	return (index%c.iInterval+c.pIntervalNum-1)%c.pIntervalDenom < c.pIntervalNum
}

// countSkippedFrames counts how many scheduled frames were skipped between
// the last successfully parsed frame and the next one due.
func (c *context) countSkippedFrames() int {
	if c.lastIter == -1 {
		return 0
	}
	index := int64(c.lastIter) + 1
	for !c.shouldHaveFrameAt(index) {
		index++
	}
	return int(index - int64(c.lastIter) - 1)
}

// Stats reports the running decode counters, matching the upstream
// Context.stats property.
type Stats struct {
	Total          int
	Parsed         int
	Skipped        int
	Invalid        int
	InvalidPercent float64
}

func (c *context) stats() Stats {
	s := Stats{
		Total:   c.readFrameCount,
		Parsed:  c.frameCount,
		Skipped: c.readFrameCount - c.frameCount - c.invalidFrameCount,
		Invalid: c.invalidFrameCount,
	}
	if c.readFrameCount > 0 {
		s.InvalidPercent = float64(c.invalidFrameCount) / float64(c.readFrameCount) * 100
	}
	return s
}
