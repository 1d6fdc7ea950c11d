package blackbox

import "testing"

// benchmarkLog builds one session with an INTRA frame followed by n-1
// INTER frames, each a residual on the previous frame's values.
func benchmarkLog(n int) []byte {
	h := "" +
		"H Product:Blackbox flight data recorder by Cleanflight\n" +
		"H Data version:2\n" +
		"H I interval:32\n" +
		"H P interval:1/1\n" +
		"H Field I name:loopIteration,time,value\n" +
		"H Field I signed:0,0,1\n" +
		"H Field I predictor:0,0,0\n" +
		"H Field I encoding:1,1,0\n" +
		"H Field P predictor:1,1,1\n" +
		"H Field P encoding:1,1,0\n"

	data := []byte(h)
	data = append(data, 'I', 0x00, 0x00, 0xC8, 0x01) // loopIteration=0, time=0, value=100
	for i := 1; i < n; i++ {
		// loopIteration and time are unsigned VLQ, so 0x02 advances each by
		// 2; value is signed VLQ, so its 0x02 is a residual of +1
		// (zig-zag(1) = 2).
		data = append(data, 'P', 0x02, 0x02, 0x02)
	}
	return data
}

// BenchmarkDecode drains every frame of a single synthetic session,
// mirroring a straight "load a file and walk every frame" timing run.
func BenchmarkDecode(b *testing.B) {
	data := benchmarkLog(2000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log := New(data)
		sess, err := log.SetIndex(1)
		if err != nil {
			b.Fatalf("SetIndex: %v", err)
		}
		it := sess.Frames()
		for it.Next() {
		}
	}
}
