package predict

import "testing"

// fakeState is a minimal predict.State for unit tests; only the fields a
// given test touches need to be populated.
type fakeState struct {
	past          map[int]int32
	currentByName map[string]int32
	headers       map[string]int32
	headerLists   map[string][]int32
	homeLat       *int32
	homeLon       *int32
	skipped       int
}

func (f *fakeState) PastValue(age int, def int32) int32 {
	if v, ok := f.past[age]; ok {
		return v
	}
	return def
}

func (f *fakeState) CurrentValueByName(name string) (int32, bool) {
	v, ok := f.currentByName[name]
	return v, ok
}

func (f *fakeState) HeaderInt(name string, def int32) int32 {
	if v, ok := f.headers[name]; ok {
		return v
	}
	return def
}

func (f *fakeState) HeaderIntListElem(name string, i int, def int32) int32 {
	list, ok := f.headerLists[name]
	if !ok || i < 0 || i >= len(list) {
		return def
	}
	return list[i]
}

func (f *fakeState) HomeLat() (int32, bool) {
	if f.homeLat == nil {
		return 0, false
	}
	return *f.homeLat, true
}

func (f *fakeState) HomeLon() (int32, bool) {
	if f.homeLon == nil {
		return 0, false
	}
	return *f.homeLon, true
}

func (f *fakeState) SkippedFrames() int { return f.skipped }

func TestZero(t *testing.T) {
	fn, _ := Lookup(Zero)
	if got := fn(42, &fakeState{}); got != 42 {
		t.Fatalf("Zero(42) = %d, want 42", got)
	}
}

func TestPrevious(t *testing.T) {
	fn, _ := Lookup(Previous)
	st := &fakeState{past: map[int]int32{0: 100}}
	if got := fn(5, st); got != 105 {
		t.Fatalf("Previous(5) = %d, want 105", got)
	}
}

func TestStraightLine(t *testing.T) {
	fn, _ := Lookup(StraightLine)
	st := &fakeState{past: map[int]int32{0: 10, 1: 4}}
	// new + 2*10 - 4 = new + 16
	if got := fn(1, st); got != 17 {
		t.Fatalf("StraightLine(1) = %d, want 17", got)
	}
}

func TestAverage2(t *testing.T) {
	fn, _ := Lookup(Average2)
	st := &fakeState{past: map[int]int32{0: 10, 1: 20}}
	if got := fn(0, st); got != 15 {
		t.Fatalf("Average2(0) = %d, want 15", got)
	}
}

func TestMinThrottleDefault(t *testing.T) {
	fn, _ := Lookup(MinThrottle)
	st := &fakeState{headers: map[string]int32{}}
	if got := fn(0, st); got != 0 {
		t.Fatalf("MinThrottle default = %d, want 0", got)
	}
}

func TestMinThrottle_WithHeader(t *testing.T) {
	fn, _ := Lookup(MinThrottle)
	st := &fakeState{headers: map[string]int32{"minthrottle": 1150}}
	if got := fn(50, st); got != 1200 {
		t.Fatalf("MinThrottle = %d, want 1200", got)
	}
}

func TestMinMotorDefault(t *testing.T) {
	fn, _ := Lookup(MinMotor)
	st := &fakeState{}
	if got := fn(0, st); got != 0 {
		t.Fatalf("MinMotor default = %d, want 0", got)
	}
}

func TestMinMotor_ReadsFirstMotorOutputElement(t *testing.T) {
	fn, _ := Lookup(MinMotor)
	st := &fakeState{headerLists: map[string][]int32{"motorOutput": {1000, 2000}}}
	if got := fn(47, st); got != 1047 {
		t.Fatalf("MinMotor = %d, want 1047", got)
	}
}

func TestIncrementAccountsForSkippedFrames(t *testing.T) {
	fn, _ := Lookup(Increment)
	st := &fakeState{past: map[int]int32{0: 7}, skipped: 3}
	// delta ignored: 1 + 7 + 3
	if got := fn(999, st); got != 11 {
		t.Fatalf("Increment = %d, want 11", got)
	}
}

func TestHomeLat_NoHomeFrameYet(t *testing.T) {
	fn, _ := Lookup(HomeLat)
	st := &fakeState{}
	if got := fn(123, st); got != 0 {
		t.Fatalf("HomeLat with no GPS_HOME frame = %d, want 0 regardless of delta", got)
	}
}

func TestHomeLat_WithHomeFrame(t *testing.T) {
	fn, _ := Lookup(HomeLat)
	lat := int32(407128000)
	st := &fakeState{homeLat: &lat}
	if got := fn(5, st); got != 407128005 {
		t.Fatalf("HomeLat = %d, want 407128005", got)
	}
}

func TestFifteenHundred(t *testing.T) {
	fn, _ := Lookup(FifteenHundred)
	if got := fn(-3, &fakeState{}); got != 1497 {
		t.Fatalf("FifteenHundred(-3) = %d, want 1497", got)
	}
}

func TestLookup_UnknownID(t *testing.T) {
	if _, ok := Lookup(ID(99)); ok {
		t.Fatal("Lookup(99) should not resolve")
	}
}
