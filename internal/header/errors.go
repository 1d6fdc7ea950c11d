package header

import "errors"

// Sentinel errors returned from the package's exported operations. Per-frame
// decode errors (corrupt tag bytes, desync) are a session-loop concern and
// live in internal/session instead.
var (
	ErrMalformed    = errors.New("blackbox: malformed header line")
	ErrBindFailure  = errors.New("blackbox: field definition could not be bound")
	ErrNoHeaders    = errors.New("blackbox: no header block found")
)
