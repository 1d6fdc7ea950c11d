package session

import (
	"fmt"
	"log/slog"

	"github.com/flightlog/blackbox/internal/cursor"
	"github.com/flightlog/blackbox/internal/header"
)

// maxTimeJump and maxIterJump bound how far a frame's "time"/"loopIteration"
// field may have moved since the last accepted frame before it is treated
// as desynced and discarded rather than trusted.
const (
	maxTimeJump = 10 * 1000000
	maxIterJump = 500 * 10
)

// Engine drives the frame-by-frame decode of one session's binary frame
// data. It is single-threaded and cooperative: Next returns exactly one
// decoded frame (or signals end-of-data) per call, suspending in between.
type Engine struct {
	cur *cursor.Cursor
	ctx *context

	lastSlow *Frame
	lastGPS  *Frame

	// gpsFixes and gpsHomeFixes record every GPS/GPS_HOME frame seen, in
	// stream order, independent of lastGPS's fold-and-consume lifecycle.
	// Nothing in the decode loop reads them back; they exist only so a
	// caller can recover the GPS track after Next has been drained.
	gpsFixes     []Frame
	gpsHomeFixes []Frame

	// slowArity and gpsArity are the field counts of the SLOW and GPS frame
	// types (GPS counted minus its leading "time" field), precomputed so a
	// main frame can be extended with the right number of zero-filled
	// placeholder slots when no SLOW/GPS frame has been cached yet.
	slowArity int
	gpsArity  int

	haveLastTime bool
	lastTime     int32

	// lastIterLocal is the frame loop's own iteration-desync tracker,
	// separate from ctx.lastIter (which feeds the Increment predictor).
	lastIterLocal     int32
	haveLastIterLocal bool

	lastFramePos       int
	lastFrameIsCorrupt bool

	events []Event

	endOfLog bool

	log *slog.Logger
}

// NewEngine constructs a frame engine over frameData, using the bound
// field-def tables and parsed headers.
func NewEngine(frameData []byte, h *header.Headers, fieldDefs map[header.FrameType][]*header.FieldDef, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	gpsArity := len(fieldDefs[header.GPS])
	if gpsArity > 0 {
		gpsArity--
	}
	return &Engine{
		cur:       cursor.New(frameData),
		ctx:       newContext(h, fieldDefs),
		slowArity: len(fieldDefs[header.Slow]),
		gpsArity:  gpsArity,
		log:       log,
	}
}

// Stats reports the running decode counters.
func (e *Engine) Stats() Stats { return e.ctx.stats() }

// Events returns every event parsed so far.
func (e *Engine) Events() []Event { return e.events }

// EndOfLog reports whether a LOG_END event has been observed.
func (e *Engine) EndOfLog() bool { return e.endOfLog }

// GPSFixes returns every GPS frame decoded so far, in stream order. Unlike
// the value folded into main frames, these are never consumed: the full
// track is available once the caller has drained Next to completion.
func (e *Engine) GPSFixes() []Frame { return e.gpsFixes }

// GPSHomeFixes returns every GPS_HOME frame decoded so far, in stream
// order.
func (e *Engine) GPSHomeFixes() []Frame { return e.gpsHomeFixes }

// Next decodes and returns the next valid main (INTRA/INTER) frame,
// skipping over SLOW and GPS frames (cached and folded into the following
// main frame), GPS_HOME frames (committed to context as the home-coordinate
// reference), EVENT frames (collected via Events instead), and any corrupt
// bytes (recovered via a resynchronizing scan). It returns ok=false once
// the frame data is exhausted or a LOG_END event has been seen.
func (e *Engine) Next() (Frame, bool) {
	for {
		if e.endOfLog {
			return Frame{}, false
		}
		b, ok := e.cur.Next()
		if !ok {
			return Frame{}, false
		}
		ft, known := frameTypeOf(b)
		if !known {
			e.handleUnknownTag()
			continue
		}
		e.lastFrameIsCorrupt = false
		e.lastFramePos = e.cur.Tell() - 1
		e.ctx.frameType = ft

		if ft == header.Event {
			e.parseEvent()
			e.ctx.readFrameCount++
			if e.endOfLog {
				return Frame{}, false
			}
			continue
		}

		fdefs := e.ctx.fieldDefs[ft]
		frame, err := e.parseFrame(ft, fdefs)
		if err != nil {
			// A corrupt tag byte was detected as a valid letter but the
			// field data ran out mid-frame: treat like any other
			// corrupt-tag recovery.
			e.log.Debug("corrupt frame payload", "type", ft, "err", err)
			e.handleUnknownTag()
			continue
		}

		// SLOW, GPS and GPS_HOME are cached, never validated against the
		// time/iteration desync checks, never trailing-tag checked, and
		// never emitted to the caller.
		switch ft {
		case header.Slow:
			e.lastSlow = &frame
			e.ctx.readFrameCount++
			continue
		case header.GPS:
			e.lastGPS = &frame
			e.gpsFixes = append(e.gpsFixes, frame)
			e.ctx.readFrameCount++
			continue
		case header.GPSHome:
			e.ctx.setGPSHome(frame)
			e.gpsHomeFixes = append(e.gpsHomeFixes, frame)
			e.ctx.readFrameCount++
			continue
		}

		currentTime, _ := e.ctx.currentValueByName(ft, "time")
		if e.haveLastTime && e.lastTime >= currentTime && maxTimeJump < int64(currentTime)-int64(e.lastTime) {
			e.log.Debug("frame dropped: time desync", "type", ft)
			e.lastTime = currentTime
			e.haveLastTime = true
			e.ctx.readFrameCount++
			e.ctx.invalidFrameCount++
			continue
		}
		e.lastTime = currentTime
		e.haveLastTime = true

		currentIter, _ := e.ctx.currentValueByName(ft, "loopIteration")
		e.ctx.lastIter = currentIter
		if e.haveLastIterLocal && e.lastIterLocal >= currentIter && maxIterJump < int64(currentIter)+int64(e.lastIterLocal) {
			e.log.Debug("frame skipped: iteration desync", "type", ft)
			e.lastIterLocal = currentIter
			e.haveLastIterLocal = true
			e.ctx.readFrameCount++
			e.ctx.invalidFrameCount++
			continue
		}
		e.lastIterLocal = currentIter
		e.haveLastIterLocal = true

		if nb, ok := e.cur.Peek(); !ok {
			// End of data right after a decoded frame: nothing follows
			// to validate against, accept it.
		} else if _, known := frameTypeOf(nb); !known {
			e.log.Debug("frame dropped: corrupt trailing tag", "type", ft)
			e.ctx.readFrameCount++
			e.ctx.invalidFrameCount++
			continue
		}

		e.extendData(&frame)

		e.ctx.readFrameCount++
		e.ctx.addFrame(frame)
		return frame, true
	}
}

// extendData folds the most recently cached SLOW frame (in full) and the
// most recently cached GPS frame (all fields but its leading "time" field)
// onto the end of a just-decoded main frame, consuming each cache entry
// exactly once. When no SLOW/GPS frame has been seen yet, zero-filled
// placeholders of the right arity are appended instead, so every emitted
// main frame has the same column count regardless of whether auxiliary
// telemetry has arrived.
func (e *Engine) extendData(frame *Frame) {
	data := append([]int32(nil), frame.Data...)

	if e.lastSlow != nil {
		data = append(data, e.lastSlow.Data...)
		e.lastSlow = nil
	} else {
		data = append(data, make([]int32, e.slowArity)...)
	}

	if e.lastGPS != nil {
		data = append(data, e.lastGPS.Data[1:]...)
		e.lastGPS = nil
	} else {
		data = append(data, make([]int32, e.gpsArity)...)
	}

	frame.Data = data
}

// handleUnknownTag implements the two-state corruption-recovery machine:
// the first unrecognized byte after a good frame rewinds to just past
// that frame's tag and starts a byte-by-byte resync scan; every
// unrecognized byte after that is free (already accounted for) until a
// recognizable tag is found again.
func (e *Engine) handleUnknownTag() {
	if !e.lastFrameIsCorrupt {
		e.cur.Seek(e.lastFramePos + 1)
		e.ctx.invalidFrameCount++
		e.ctx.readFrameCount++
	}
	e.lastFrameIsCorrupt = true
}

func frameTypeOf(b byte) (header.FrameType, bool) {
	ft := header.FrameType(b)
	switch ft {
	case header.Intra, header.Inter, header.Slow, header.GPS, header.GPSHome, header.Event:
		return ft, true
	default:
		return 0, false
	}
}

// parseFrame decodes every field of one frame, applying each field's
// predictor to its raw decoded delta as it goes.
func (e *Engine) parseFrame(ft header.FrameType, fdefs []*header.FieldDef) (Frame, error) {
	ctx := e.ctx
	ctx.fieldIndex = 0
	result := make([]int32, 0, len(fdefs))

	for ctx.fieldIndex < len(fdefs) {
		ctx.currentFrame = result[:len(result):len(result)]
		fdef := fdefs[ctx.fieldIndex]

		val, err := fdef.Decode(e.cur)
		if err != nil {
			return Frame{}, fmt.Errorf("blackbox: field %d (%s) of %s: %w", ctx.fieldIndex, fdef.Name, ft, err)
		}
		raws := val.Values()
		for _, raw := range raws {
			fdef := fdefs[ctx.fieldIndex]
			predicted := fdef.Predict(raw, ctx)
			result = append(result, predicted)
			ctx.fieldIndex++
		}
	}
	return Frame{Type: ft, Data: result}, nil
}
