// transit/decode.go
package transit

import (
	"errors"

	"github.com/andreyvit/tinyjson"
)

var ErrDecode = errors.New("decode_failed")

// decodePredictions parses the feed's {"Trains":[...]} document.
// Any parser panic on malformed feed bytes becomes ErrDecode instead of
// taking the firmware down.
func decodePredictions(raw []byte) (preds []Prediction, err error) {
	defer func() {
		if recover() != nil {
			preds, err = nil, ErrDecode
		}
	}()

	r := tinyjson.Raw(raw)
	val := r.Value()
	r.EnsureEOF()

	obj, ok := val.(map[string]any)
	if !ok {
		return nil, ErrDecode
	}
	trains, ok := obj["Trains"].([]any)
	if !ok {
		return nil, ErrDecode
	}

	preds = make([]Prediction, 0, len(trains))
	for _, tr := range trains {
		m, ok := tr.(map[string]any)
		if !ok {
			continue
		}
		preds = append(preds, Prediction{
			Line:            str(m["Line"]),
			Cars:            str(m["Car"]),
			Destination:     str(m["Destination"]),
			DestinationCode: str(m["DestinationCode"]),
			DestinationName: str(m["DestinationName"]),
			LocationCode:    str(m["LocationCode"]),
			LocationName:    str(m["LocationName"]),
			Min:             str(m["Min"]),
		})
	}
	return preds, nil
}

// str tolerates missing and null fields.
func str(v any) string {
	s, _ := v.(string)
	return s
}
