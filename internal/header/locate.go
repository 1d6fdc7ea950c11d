package header

import "bytes"

// Range is the byte span of one session within a multi-session log file.
type Range struct {
	Start, End int // End is exclusive; End == len(file) for the last session
}

// Locate splits a multi-session blackbox file into session byte ranges.
// Cleanflight concatenates independent sessions back to back with no
// outer framing, so the only reliable anchor is byte-exact recurrence of
// the very first header line ("H Product:..." in every known firmware):
// wherever that exact line reappears marks the start of the next session.
func Locate(data []byte) []Range {
	firstLine := firstHeaderLine(data)
	if firstLine == nil {
		return []Range{{Start: 0, End: len(data)}}
	}

	var starts []int
	for offset := 0; ; {
		idx := bytes.Index(data[offset:], firstLine)
		if idx < 0 {
			break
		}
		starts = append(starts, offset+idx)
		offset += idx + len(firstLine)
	}
	if len(starts) == 0 {
		return []Range{{Start: 0, End: len(data)}}
	}

	ranges := make([]Range, len(starts))
	for i, s := range starts {
		end := len(data)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		ranges[i] = Range{Start: s, End: end}
	}
	return ranges
}

// firstHeaderLine returns the bytes of the first "H ...\n" line in data,
// including the trailing newline, or nil if data doesn't start with one.
func firstHeaderLine(data []byte) []byte {
	if len(data) == 0 || data[0] != 'H' {
		return nil
	}
	idx := bytes.IndexByte(data, '\n')
	if idx < 0 {
		return nil
	}
	return data[:idx+1]
}
