package blackbox

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/flightlog/blackbox/internal/cache"
	"github.com/flightlog/blackbox/internal/header"
	"github.com/flightlog/blackbox/internal/session"
)

// Errors returned at the public boundary. Every other recoverable
// condition (corrupt tags, desync, unknown events) stays local to the
// session loop and is counted in Stats instead.
var (
	ErrIndexOutOfRange = errors.New("blackbox: session index out of range")
	ErrBindFailure     = header.ErrBindFailure
)

// Log is an opened blackbox file: one or more concatenated sessions,
// located but not yet parsed. Parsing (header binding + the frame engine)
// happens per session, in SetIndex.
type Log struct {
	data   []byte
	ranges []header.Range
	log    *slog.Logger
}

// Open reads path and locates its session boundaries.
func Open(path string) (*Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("blackbox: opening %s: %w", path, err)
	}
	return New(data), nil
}

// New wraps an in-memory blackbox file. The byte slice is read-only and
// shared by reference with every Session produced from it.
func New(data []byte) *Log {
	return &Log{data: data, ranges: header.Locate(data)}
}

// OpenCached behaves like Open, but consults c for a previously stored
// session-range scan keyed by the file's fingerprint before falling back
// to header.Locate, and stores the result for next time. Locating session
// boundaries in a large multi-session file means scanning the whole byte
// range for every recurrence of the first header line; a cache turns a
// repeat open of the same file into a single bbolt lookup.
func OpenCached(path string, c *cache.DB) (*Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("blackbox: opening %s: %w", path, err)
	}

	fp := cache.Fingerprint(data)
	ranges, ok := c.Lookup(fp)
	if !ok {
		ranges = header.Locate(data)
		if err := c.Store(fp, ranges); err != nil {
			return nil, fmt.Errorf("blackbox: caching session ranges for %s: %w", path, err)
		}
	}
	return &Log{data: data, ranges: ranges}, nil
}

// SetLogger installs a logger used for this log's sessions' diagnostic
// output (corrupt-skip, desync, unknown-event). The default is slog's
// package-level logger.
func (l *Log) SetLogger(log *slog.Logger) { l.log = log }

// SessionCount returns the number of sessions located in the file.
func (l *Log) SessionCount() int { return len(l.ranges) }

// SetIndex binds a Session to the n'th session (1-based, n ∈ [1,
// SessionCount()]). Calling SetIndex twice with the same index is a
// no-op on observable state: each call rebuilds an independent Session
// from the same byte range and header block.
func (l *Log) SetIndex(n int) (*Session, error) {
	if n < 1 || n > len(l.ranges) {
		return nil, fmt.Errorf("%w: %d (have %d sessions)", ErrIndexOutOfRange, n, len(l.ranges))
	}
	r := l.ranges[n-1]
	return newSession(l.data[r.Start:r.End], l.log)
}

// Session is one decoded (or decoding) blackbox session: its header
// block, bound field-def tables, and a frame engine over its binary
// frame-data range.
type Session struct {
	headers   *header.Headers
	fieldDefs map[header.FrameType][]*header.FieldDef
	engine    *session.Engine
}

func newSession(data []byte, log *slog.Logger) (*Session, error) {
	h, consumed, err := header.ParseHeaders(data)
	if err != nil {
		return nil, fmt.Errorf("blackbox: %w", err)
	}
	dataVersion := h.GetInt("Data version", 1)
	defs, err := header.BuildFieldDefs(h, dataVersion)
	if err != nil {
		return nil, err
	}
	return &Session{
		headers:   h,
		fieldDefs: defs,
		engine:    session.NewEngine(data[consumed:], h, defs, log),
	}, nil
}

// Headers returns the session's header values as strings, excluding any
// key containing the substring "Field " (the per-field binding tables,
// exposed instead via FieldNames).
func (s *Session) Headers() map[string]string {
	out := make(map[string]string)
	for _, name := range s.headers.Names() {
		if strings.Contains(name, "Field ") {
			continue
		}
		v, _ := s.headers.Get(name)
		out[name] = v.String()
	}
	return out
}

// FieldNames returns the bound field names for the given frame type, in
// wire order.
func (s *Session) FieldNames(ft header.FrameType) []string {
	defs := s.fieldDefs[ft]
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	return names
}

// Frames returns a lazy frame iterator over this session's main
// (INTRA/INTER) frames, in stream order. The bufio.Scanner-style
// Next/Frame split lets the caller drive iteration without the
// engine materializing every frame up front.
func (s *Session) Frames() *FrameIter {
	return &FrameIter{engine: s.engine}
}

// Events returns every event parsed so far. It is complete only once the
// frame iterator has been fully drained (or has hit LOG_END).
func (s *Session) Events() []session.Event { return s.engine.Events() }

// Stats reports the running decode counters: total tags consumed, frames
// parsed, frames read but neither emitted nor counted invalid (SLOW, GPS,
// GPS_HOME and EVENT frames), and frames discarded as invalid.
func (s *Session) Stats() session.Stats { return s.engine.Stats() }

// GPSTrack returns the session's GPS field names (sans the leading "time"
// field) and the coordinate rows decoded so far, along with the home
// position if a GPS_HOME frame has been seen. GPS frames are never
// emitted through Frames (they're folded into the following main frame
// instead), so this is the only way to recover the raw GPS track, e.g.
// for a GPX export.
func (s *Session) GPSTrack() (fields []string, rows [][]int32, home []int32, haveHome bool) {
	names := s.FieldNames(header.GPS)
	if len(names) > 0 {
		names = names[1:]
	}
	for _, f := range s.engine.GPSFixes() {
		data := f.Data
		if len(data) > 0 {
			data = data[1:]
		}
		rows = append(rows, data)
	}
	homeFixes := s.engine.GPSHomeFixes()
	if len(homeFixes) > 0 {
		home = homeFixes[len(homeFixes)-1].Data
		haveHome = true
	}
	return names, rows, home, haveHome
}

// FrameIter is a cursor-style iterator over one session's main frames.
type FrameIter struct {
	engine *session.Engine
	cur    session.Frame
	done   bool
}

// Next advances the iterator and reports whether a frame is available.
// It returns false once the frame data is exhausted or a LOG_END event
// has been observed.
func (it *FrameIter) Next() bool {
	f, ok := it.engine.Next()
	if !ok {
		it.done = true
		return false
	}
	it.cur = f
	return true
}

// Frame returns the current frame's type and predicted field values. It
// is only valid after a call to Next that returned true.
func (it *FrameIter) Frame() (header.FrameType, []int32) {
	return it.cur.Type, it.cur.Data
}

// Done reports whether iteration has finished.
func (it *FrameIter) Done() bool { return it.done }
