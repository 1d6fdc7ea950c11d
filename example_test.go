package blackbox_test

import (
	"fmt"

	"github.com/flightlog/blackbox"
)

// twoSessionLog concatenates two copies of a minimal single-frame session,
// so SetIndex has more than one session to select between.
func twoSessionLog() []byte {
	h := "" +
		"H Product:Blackbox flight data recorder by Cleanflight\n" +
		"H Data version:2\n" +
		"H I interval:1\n" +
		"H P interval:1/1\n" +
		"H Field I name:loopIteration,time,value\n" +
		"H Field I signed:0,0,1\n" +
		"H Field I predictor:0,0,0\n" +
		"H Field I encoding:1,1,0\n" +
		"H Field P predictor:1,1,1\n" +
		"H Field P encoding:1,1,0\n"
	session := append([]byte(h), 'I', 0x00, 0x00, 0xC8, 0x01)
	return append(append([]byte(nil), session...), session...)
}

// This walks through the same opening → header inspection → field-name
// inspection → session reselection → frame iteration → event collection
// sequence a first-time caller of this package would reach for.
func Example() {
	log := blackbox.New(twoSessionLog())
	fmt.Println("session count:", log.SessionCount())

	sess, err := log.SetIndex(1)
	if err != nil {
		fmt.Println("SetIndex:", err)
		return
	}
	fmt.Println("data version:", sess.Headers()["Data version"])
	fmt.Println("field names:", sess.FieldNames('I'))

	// Selecting another session clears any previous frame/event state.
	sess, err = log.SetIndex(2)
	if err != nil {
		fmt.Println("SetIndex:", err)
		return
	}

	it := sess.Frames()
	for it.Next() {
		_, data := it.Frame()
		fmt.Println("first frame:", data)
		break
	}
	fmt.Println("events so far:", len(sess.Events()))

	// Output:
	// session count: 2
	// data version: 2
	// field names: [loopIteration time value]
	// first frame: [0 0 100]
	// events so far: 0
}
