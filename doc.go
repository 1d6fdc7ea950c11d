// Package blackbox decodes Cleanflight/Betaflight blackbox flight-recorder
// logs: a binary container of one or more concatenated sessions, each an
// ASCII header block followed by delta-compressed, variable-length-encoded
// binary frames.
//
// The package supports:
//   - Multi-session log files (concatenated recordings in one .bbl/.txt file)
//   - Full INTRA/INTER/SLOW/GPS/GPS_HOME frame decoding with predictor and
//     encoding tables bound from the session's own header block
//   - Event frames (flight-mode changes, sync beeps, log-end markers)
//   - Lazy, single-session-at-a-time frame iteration
//
// Basic usage:
//
//	log, err := blackbox.Open("flight.bbl")
//	sess, err := log.SetIndex(1)
//	frames := sess.Frames()
//	for frames.Next() {
//		ft, data := frames.Frame()
//	}
package blackbox
