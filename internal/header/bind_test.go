package header

import (
	"testing"

	"github.com/flightlog/blackbox/internal/encoding"
	"github.com/flightlog/blackbox/internal/predict"
)

func mustParse(t *testing.T, raw string) *Headers {
	t.Helper()
	h, _, err := ParseHeaders([]byte(raw))
	if err != nil {
		t.Fatalf("ParseHeaders: %v", err)
	}
	return h
}

func TestBuildFieldDefs_Basic(t *testing.T) {
	h := mustParse(t, ""+
		"H Data version:2\n"+
		"H Field I name:loopIteration,time,motor[0]\n"+
		"H Field I signed:0,0,0\n"+
		"H Field I predictor:0,0,0\n"+
		"H Field I encoding:1,1,1\n"+
		"H Field P predictor:6,2,5\n"+
		"H Field P encoding:1,1,0\n")

	defs, err := BuildFieldDefs(h, 2)
	if err != nil {
		t.Fatalf("BuildFieldDefs: %v", err)
	}

	intra := defs[Intra]
	if len(intra) != 3 {
		t.Fatalf("len(intra) = %d, want 3", len(intra))
	}
	if intra[0].Name != "loopIteration" || intra[2].Name != "motor[0]" {
		t.Fatalf("intra names = %q, %q", intra[0].Name, intra[2].Name)
	}

	inter := defs[Inter]
	if len(inter) != 3 {
		t.Fatalf("len(inter) = %d, want 3", len(inter))
	}
	// INTER field names are copied positionally from INTRA.
	if inter[0].Name != "loopIteration" || inter[2].Name != "motor[0]" {
		t.Fatalf("inter names not copied from intra: %q, %q", inter[0].Name, inter[2].Name)
	}
	if inter[2].Predictor != int(predict.Motor0) {
		t.Fatalf("inter[2].Predictor = %d, want %d", inter[2].Predictor, predict.Motor0)
	}
}

func TestBuildFieldDefs_GPSCoordHomeLonDisambiguation(t *testing.T) {
	h := mustParse(t, ""+
		"H Data version:2\n"+
		"H Field G name:GPS_coord[0],GPS_coord[1]\n"+
		"H Field G signed:1,1\n"+
		"H Field G predictor:7,7\n"+
		"H Field G encoding:0,0\n")

	defs, err := BuildFieldDefs(h, 2)
	if err != nil {
		t.Fatalf("BuildFieldDefs: %v", err)
	}
	gps := defs[GPS]
	if len(gps) != 2 {
		t.Fatalf("len(gps) = %d, want 2", len(gps))
	}
	if gps[0].Predictor != int(predict.HomeLat) {
		t.Fatalf("GPS_coord[0] predictor id = %d", gps[0].Predictor)
	}
	if gps[1].Predictor != int(predict.HomeLat) {
		t.Fatalf("GPS_coord[1] raw predictor id should remain %d in the header-derived field (only the bound function changes)", predict.HomeLat)
	}
}

func TestBuildFieldDefs_UnknownEncoding(t *testing.T) {
	h := mustParse(t, ""+
		"H Field I name:x\n"+
		"H Field I signed:0\n"+
		"H Field I predictor:0\n"+
		"H Field I encoding:77\n")
	_, err := BuildFieldDefs(h, 2)
	if err == nil {
		t.Fatal("expected a bind failure for an unknown encoding id")
	}
}

func TestBuildFieldDefs_Tag8_8SVBGroupCount(t *testing.T) {
	h := mustParse(t, ""+
		"H Field I name:a,b,c,d\n"+
		"H Field I signed:1,1,1,1\n"+
		"H Field I predictor:0,0,0,0\n"+
		"H Field I encoding:6,6,6,1\n")
	defs, err := BuildFieldDefs(h, 2)
	if err != nil {
		t.Fatalf("BuildFieldDefs: %v", err)
	}
	if defs[Intra][0].GroupCount != 3 {
		t.Fatalf("GroupCount = %d, want 3", defs[Intra][0].GroupCount)
	}
	_ = encoding.Tag8_8SVB
}
