package session

import "github.com/flightlog/blackbox/internal/header"

// Event is one decoded EVENT frame: its type and whatever fields its
// payload parser extracted, empty for event types whose payload layout
// has not been pinned down by any observed log.
type Event struct {
	Type header.EventType
	Data map[string]int64
}

// logEndMessage is the exact trailing bytes every LOG_END event must be
// immediately followed by.
var logEndMessage = []byte("End of log\x00")

// parseEvent reads one event type byte and dispatches to its payload
// parser, appending the result to e.events. An unrecognized event type
// byte counts as one invalid frame, per the "on unknown type: count
// invalid, return" rule.
func (e *Engine) parseEvent() {
	b, ok := e.cur.Next()
	if !ok {
		return
	}
	et := header.EventType(b)
	data, known := e.decodeEventPayload(et)
	if !known {
		e.log.Debug("unknown event type", "type", b)
		e.ctx.invalidFrameCount++
		return
	}
	e.events = append(e.events, Event{Type: et, Data: data})
	if et == header.EventLogEnd {
		e.endOfLog = true
	}
}

// decodeEventPayload parses the payload for a known event type. Event
// types whose payload layout was never pinned down upstream (autotune,
// gtune, twitch test, inflight adjustment, logging resume, and the
// "custom" virtual types) decode to an empty payload rather than a
// guessed-at one.
func (e *Engine) decodeEventPayload(et header.EventType) (map[string]int64, bool) {
	switch et {
	case header.EventSyncBeep:
		t, ok := e.cur.UnsignedVB()
		if !ok {
			return nil, true
		}
		return map[string]int64{"time": int64(t)}, true

	case header.EventFlightMode:
		newFlags, ok1 := e.cur.UnsignedVB()
		oldFlags, ok2 := e.cur.UnsignedVB()
		if !ok1 || !ok2 {
			return nil, true
		}
		return map[string]int64{"new_flags": int64(newFlags), "old_flags": int64(oldFlags)}, true

	case header.EventAutotuneTargets, header.EventAutotuneCycleStart, header.EventAutotuneCycleResult,
		header.EventGTuneCycleResult, header.EventCustomBlank, header.EventCustom, header.EventTwitchTest,
		header.EventInflightAdjustment, header.EventLoggingResume:
		return nil, true

	case header.EventLogEnd:
		if !e.cur.StartsWith(logEndMessage) {
			e.log.Debug("LOG_END not followed by expected trailer")
		}
		return nil, true

	default:
		return nil, false
	}
}
