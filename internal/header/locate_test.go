package header

import "testing"

func TestLocate_SingleSession(t *testing.T) {
	data := []byte("H Product:Blackbox flight data recorder by Cleanflight\nrest of session one")
	ranges := Locate(data)
	if len(ranges) != 1 {
		t.Fatalf("len(ranges) = %d, want 1", len(ranges))
	}
	if ranges[0].Start != 0 || ranges[0].End != len(data) {
		t.Fatalf("ranges[0] = %+v", ranges[0])
	}
}

func TestLocate_MultiSession(t *testing.T) {
	header := "H Product:Blackbox flight data recorder by Cleanflight\n"
	data := []byte(header + "session one data" + header + "session two data")
	ranges := Locate(data)
	if len(ranges) != 2 {
		t.Fatalf("len(ranges) = %d, want 2", len(ranges))
	}
	if ranges[0].Start != 0 {
		t.Fatalf("ranges[0].Start = %d, want 0", ranges[0].Start)
	}
	if ranges[1].Start != len(header)+len("session one data") {
		t.Fatalf("ranges[1].Start = %d, want %d", ranges[1].Start, len(header)+len("session one data"))
	}
	if ranges[1].End != len(data) {
		t.Fatalf("ranges[1].End = %d, want %d", ranges[1].End, len(data))
	}
}

func TestLocate_NoHeaderFallsBackToWholeFile(t *testing.T) {
	ranges := Locate([]byte("not a header"))
	if len(ranges) != 1 || ranges[0].Start != 0 {
		t.Fatalf("ranges = %+v", ranges)
	}
}
