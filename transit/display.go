// transit/display.go
package transit

// AppendDisplay appends a board row for p to dst and returns the extended
// slice, e.g. "[GR] (8) Greenbelt - 5". No fmt; safe on MCU paths.
func AppendDisplay(dst []byte, p Prediction) []byte {
	dst = append(dst, '[')
	if p.Line == "" {
		dst = append(dst, "  "...)
	} else {
		dst = append(dst, p.Line...)
	}
	dst = append(dst, "] "...)

	if p.Cars != "" {
		dst = append(dst, '(')
		dst = append(dst, p.Cars...)
		dst = append(dst, ") "...)
	}

	dst = append(dst, p.Destination...)

	if p.Min != "" {
		dst = append(dst, " - "...)
		dst = append(dst, p.Min...)
	}
	return dst
}
