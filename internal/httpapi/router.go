// Package httpapi exposes a small read-only HTTP query layer over one
// already-decoded blackbox session: its headers, field names, decode
// statistics, and a paginated view of its frames.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/flightlog/blackbox"
	"github.com/flightlog/blackbox/internal/header"
)

// frameRow is the JSON shape of one emitted frame.
type frameRow struct {
	Type string  `json:"type"`
	Data []int32 `json:"data"`
}

// server holds the session and a materialized view of its frames. Frames
// are drained from the session's single-pass iterator once, at NewRouter
// time, since a FrameIter cannot be rewound for each incoming request.
type server struct {
	sess   *blackbox.Session
	frames []frameRow
}

// NewRouter returns a chi.Router serving read-only endpoints over sess.
//
// Route layout:
//
//	GET /headers         - session headers (Field-prefixed keys excluded)
//	GET /fields?type=I   - bound field names for one frame type tag
//	GET /stats           - running decode counters
//	GET /frames          - paginated frame rows (limit, offset query params)
func NewRouter(sess *blackbox.Session) http.Handler {
	srv := &server{sess: sess}
	it := sess.Frames()
	for it.Next() {
		ft, data := it.Frame()
		srv.frames = append(srv.frames, frameRow{Type: ft.String(), Data: data})
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/headers", srv.handleHeaders)
	r.Get("/fields", srv.handleFields)
	r.Get("/stats", srv.handleStats)
	r.Get("/frames", srv.handleFrames)
	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func (s *server) handleHeaders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Headers())
}

func (s *server) handleFields(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("type")
	if tag == "" {
		tag = "I"
	}
	if len(tag) != 1 {
		writeError(w, http.StatusBadRequest, "'type' must be a single frame-type tag letter")
		return
	}
	names := s.sess.FieldNames(header.FrameType(tag[0]))
	writeJSON(w, http.StatusOK, names)
}

func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Stats())
}

// handleFrames serves a paginated slice of the materialized frame rows.
//
// Query parameters:
//
//	limit  - maximum rows to return (default 100, max 1000)
//	offset - starting row index (default 0)
func (s *server) handleFrames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 100
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "'limit' must be a positive integer")
			return
		}
		if n > 1000 {
			n = 1000
		}
		limit = n
	}

	offset := 0
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "'offset' must be a non-negative integer")
			return
		}
		offset = n
	}

	if offset >= len(s.frames) {
		writeJSON(w, http.StatusOK, []frameRow{})
		return
	}
	end := offset + limit
	if end > len(s.frames) {
		end = len(s.frames)
	}
	writeJSON(w, http.StatusOK, s.frames[offset:end])
}
