package header

import "testing"

func TestParseHeaders_Basic(t *testing.T) {
	data := []byte("H Product:Blackbox flight data recorder by Cleanflight\n" +
		"H Data version:2\n" +
		"H I interval:32\n" +
		"H P interval:1/1\n" +
		"H minthrottle:1150\n" +
		"binary garbage follows")
	h, consumed, err := ParseHeaders(data)
	if err != nil {
		t.Fatalf("ParseHeaders: %v", err)
	}
	if consumed != len(data)-len("binary garbage follows") {
		t.Fatalf("consumed = %d, want %d", consumed, len(data)-len("binary garbage follows"))
	}
	if got := h.GetInt("Data version", -1); got != 2 {
		t.Fatalf("Data version = %d, want 2", got)
	}
	if got := h.GetInt("minthrottle", -1); got != 1150 {
		t.Fatalf("minthrottle = %d, want 1150", got)
	}
	v, ok := h.Get("P interval")
	if !ok || v.String() != "1/1" {
		t.Fatalf("P interval = %q, ok=%v", v.String(), ok)
	}
}

func TestParseHeaders_HexValue(t *testing.T) {
	data := []byte("H vbatref:0x7b\n")
	h, _, err := ParseHeaders(data)
	if err != nil {
		t.Fatalf("ParseHeaders: %v", err)
	}
	if got := h.GetInt("vbatref", -1); got != 123 {
		t.Fatalf("vbatref = %d, want 123", got)
	}
}

func TestParseHeaders_ListValue(t *testing.T) {
	data := []byte("H Field I name:loopIteration,time,motor[0]\n")
	h, _, err := ParseHeaders(data)
	if err != nil {
		t.Fatalf("ParseHeaders: %v", err)
	}
	v, ok := h.Get("Field I name")
	if !ok {
		t.Fatal("Field I name not found")
	}
	list := v.List()
	if len(list) != 3 || list[0].String() != "loopIteration" || list[2].String() != "motor[0]" {
		t.Fatalf("list = %+v", list)
	}
}

func TestParseHeaders_NoHeaders(t *testing.T) {
	_, _, err := ParseHeaders([]byte("not a header line at all"))
	if err != ErrNoHeaders {
		t.Fatalf("err = %v, want ErrNoHeaders", err)
	}
}

func TestParseHeaders_Malformed(t *testing.T) {
	_, _, err := ParseHeaders([]byte("H no colon here\n"))
	if err == nil {
		t.Fatal("expected an error for a header line without a colon")
	}
}
