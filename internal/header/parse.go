package header

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Value is a header value after type coercion: an int64, a float64, a
// string, or a []Value for comma-separated lists.
type Value struct {
	i    int64
	f    float64
	s    string
	kind valueKind
	list []Value
}

type valueKind int

const (
	kindInt valueKind = iota
	kindFloat
	kindString
	kindList
)

func intValue(v int64) Value    { return Value{i: v, kind: kindInt} }
func floatValue(v float64) Value { return Value{f: v, kind: kindFloat} }
func stringValue(v string) Value { return Value{s: v, kind: kindString} }
func listValue(vs []Value) Value { return Value{list: vs, kind: kindList} }

// Int returns the value as an int64 and true if it holds a numeric (int
// or float, truncated) scalar.
func (v Value) Int() (int64, bool) {
	switch v.kind {
	case kindInt:
		return v.i, true
	case kindFloat:
		return int64(v.f), true
	default:
		return 0, false
	}
}

// String returns the value's string form regardless of kind.
func (v Value) String() string {
	switch v.kind {
	case kindInt:
		return strconv.FormatInt(v.i, 10)
	case kindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case kindString:
		return v.s
	case kindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return strings.Join(parts, ",")
	}
	return ""
}

// List returns the value's elements if it is a list, or a one-element
// slice containing itself otherwise — every header value can be iterated
// uniformly this way.
func (v Value) List() []Value {
	if v.kind == kindList {
		return v.list
	}
	return []Value{v}
}

// Headers is the parsed "H name:value" block of one session, in
// first-seen order alongside a lookup map.
type Headers struct {
	order  []string
	values map[string]Value
}

func newHeaders() *Headers {
	return &Headers{values: make(map[string]Value)}
}

// Get looks up a header by exact name.
func (h *Headers) Get(name string) (Value, bool) {
	v, ok := h.values[name]
	return v, ok
}

// GetInt looks up a header as an int, falling back to def.
func (h *Headers) GetInt(name string, def int64) int64 {
	v, ok := h.values[name]
	if !ok {
		return def
	}
	i, ok := v.Int()
	if !ok {
		return def
	}
	return i
}

// Names returns every header name in the order it first appeared.
func (h *Headers) Names() []string {
	return append([]string(nil), h.order...)
}

// Matching returns every (name, value) pair whose name contains substr, in
// header order — used to find "Field <tag> <property>" entries.
func (h *Headers) Matching(substr string) [][2]string {
	var out [][2]string
	for _, name := range h.order {
		if strings.Contains(name, substr) {
			out = append(out, [2]string{name, h.values[name].String()})
		}
	}
	return out
}

// ParseHeaders reads the "H " prefixed header block starting at the front
// of data, stopping at the first non-header line (or EOF). It returns the
// parsed headers and the number of bytes consumed, so the caller can
// resume reading frame data from exactly that offset.
func ParseHeaders(data []byte) (*Headers, int, error) {
	h := newHeaders()
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	consumed := 0
	sawAny := false
	for scanner.Scan() {
		raw := scanner.Bytes()
		// The scanner strips "\n" or "\r\n" (and the last line may have
		// neither), so measure the line on the input itself.
		lineLen := len(data) - consumed
		if nl := bytes.IndexByte(data[consumed:], '\n'); nl >= 0 {
			lineLen = nl + 1
		}
		if len(raw) == 0 || raw[0] != 'H' || (len(raw) > 1 && raw[1] != ' ') {
			break
		}
		name, val, err := parseHeaderLine(raw)
		if err != nil {
			return nil, 0, fmt.Errorf("blackbox: %w: %q", ErrMalformed, raw)
		}
		if _, exists := h.values[name]; !exists {
			h.order = append(h.order, name)
		}
		h.values[name] = val
		consumed += lineLen
		sawAny = true
	}
	if !sawAny {
		return nil, 0, ErrNoHeaders
	}
	return h, consumed, nil
}

// parseHeaderLine parses "H name:value[,value...]" into a name and Value.
func parseHeaderLine(raw []byte) (string, Value, error) {
	line := string(raw)
	line = strings.TrimPrefix(line, "H ")
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return "", Value{}, ErrMalformed
	}
	name := strings.TrimSpace(line[:idx])
	rest := line[idx+1:]
	if strings.Contains(rest, ",") {
		parts := strings.Split(rest, ",")
		vals := make([]Value, len(parts))
		for i, p := range parts {
			vals[i] = tryCast(strings.TrimSpace(p))
		}
		return name, listValue(vals), nil
	}
	return name, tryCast(strings.TrimSpace(rest)), nil
}

// tryCast coerces a header value string to the narrowest applicable type:
// hex-prefixed and plain integers first, then floats, falling back to the
// raw string.
func tryCast(s string) Value {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		if n, err := strconv.ParseInt(s[2:], 16, 64); err == nil {
			return intValue(n)
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return intValue(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return floatValue(f)
	}
	return stringValue(s)
}
