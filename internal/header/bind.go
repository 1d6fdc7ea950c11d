package header

import (
	"fmt"

	"github.com/flightlog/blackbox/internal/encoding"
	"github.com/flightlog/blackbox/internal/predict"
)

// BuildFieldDefs scans h for "Field <tag> <property>" header keys and
// assembles the per-frame-type field definition tables, resolving each
// field's predictor and encoding to concrete functions. dataVersion
// selects which tag8_4s16 layout (encoding 8) to bind.
//
// GPS_coord[1]'s predictor is rewritten from HomeLat to HomeLon exactly
// once here: the wire format encodes both GPS home coordinates under
// predictor id 7, disambiguated only by field name, so every downstream
// consumer can treat HomeLat/HomeLon as distinct predictors without ever
// inspecting a field's name again.
func BuildFieldDefs(h *Headers, dataVersion int64) (map[FrameType][]*FieldDef, error) {
	defs := make(map[FrameType][]*FieldDef)

	for _, ft := range AllFrameTypes {
		prefix := fmt.Sprintf("Field %s ", ft.String())
		for _, kv := range h.Matching(prefix) {
			name, value := kv[0], kv[1]
			if len(name) <= len(prefix) || name[:len(prefix)] != prefix {
				continue
			}
			prop := name[len(prefix):]
			raw, _ := h.Get(kv[0])
			values := raw.List()

			if _, ok := defs[ft]; !ok {
				defs[ft] = make([]*FieldDef, len(values))
				for i := range defs[ft] {
					defs[ft][i] = &FieldDef{Type: ft}
				}
			}
			if len(values) != len(defs[ft]) {
				return nil, fmt.Errorf("blackbox: %w: %q has %d values, want %d",
					ErrBindFailure, kv[0], len(values), len(defs[ft]))
			}

			for i, v := range values {
				if err := applyFieldProp(defs[ft][i], prop, v); err != nil {
					return nil, fmt.Errorf("blackbox: %w: field %d of %s: %v", ErrBindFailure, i, ft, err)
				}
			}
			_ = value
		}
	}

	// Copy field names from INTRA to INTER positionally: INTER's "Field P
	// name" header is never actually present in real logs, only its
	// signed/predictor/encoding headers are.
	if intra, ok := defs[Intra]; ok {
		if inter, ok := defs[Inter]; ok {
			for i, fdef := range inter {
				if i < len(intra) {
					fdef.Name = intra[i].Name
				}
			}
		}
	}

	if err := resolveFunctions(defs, dataVersion); err != nil {
		return nil, err
	}
	return defs, nil
}

func applyFieldProp(fdef *FieldDef, prop string, v Value) error {
	switch prop {
	case "name":
		fdef.Name = v.String()
	case "signed":
		n, _ := v.Int()
		fdef.Signed = n != 0
	case "predictor":
		n, ok := v.Int()
		if !ok {
			return fmt.Errorf("non-numeric predictor %q", v.String())
		}
		fdef.Predictor = int(n)
	case "encoding":
		n, ok := v.Int()
		if !ok {
			return fmt.Errorf("non-numeric encoding %q", v.String())
		}
		fdef.Encoding = int(n)
	}
	return nil
}

// resolveFunctions binds each field's Decode/Predict functions once the
// full field-def table for its frame type is known (needed for
// tag8_8svb's group-size lookahead).
func resolveFunctions(defs map[FrameType][]*FieldDef, dataVersion int64) error {
	for ft, list := range defs {
		for i, fdef := range list {
			predictorID := predict.ID(fdef.Predictor)
			if fdef.Name == "GPS_coord[1]" && predictorID == predict.HomeLat {
				predictorID = predict.HomeLon
			}
			predFn, ok := predict.Lookup(predictorID)
			if !ok {
				return fmt.Errorf("blackbox: %w: %s field %d (%s): unknown predictor %d",
					ErrBindFailure, ft, i, fdef.Name, fdef.Predictor)
			}
			fdef.Predict = predFn

			encID := encoding.ID(fdef.Encoding)
			if !encoding.Known(encID) {
				return fmt.Errorf("blackbox: %w: %s field %d (%s): unknown encoding %d",
					ErrBindFailure, ft, i, fdef.Name, fdef.Encoding)
			}
			switch encID {
			case encoding.Tag8_8SVB:
				groupCount := tag8GroupCount(list, i)
				fdef.GroupCount = groupCount
				fdef.Decode = encoding.BindTag8_8SVB(groupCount)
			case encoding.Tag8_4S16:
				fn, err := encoding.BindTag8_4S16(int(dataVersion))
				if err != nil {
					return fmt.Errorf("blackbox: %w: %s field %d (%s): %v",
						ErrBindFailure, ft, i, fdef.Name, err)
				}
				fdef.Decode = fn
			default:
				fn, ok := encoding.Lookup(encID)
				if !ok {
					return fmt.Errorf("blackbox: %w: %s field %d (%s): encoding %d has no simple binding",
						ErrBindFailure, ft, i, fdef.Name, fdef.Encoding)
				}
				fdef.Decode = fn
			}
		}
	}
	return nil
}

// tag8GroupCount counts how many consecutive fields starting at index i
// share the tag8_8svb encoding, capped at 8 fields per group exactly as
// the wire format's single selector-byte header allows.
func tag8GroupCount(list []*FieldDef, i int) int {
	count := 1
	for j := i + 1; j < len(list) && j < i+8; j++ {
		if list[j].Encoding != int(encoding.Tag8_8SVB) {
			break
		}
		count++
	}
	return count
}
