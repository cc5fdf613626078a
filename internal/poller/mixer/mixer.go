// internal/poller/mixer/mixer.go
package mixer

import "errors"

// ErrUnsupported is returned by New on platforms without an audio backend.
var ErrUnsupported = errors.New("mixer: unsupported platform")

// scaleTolerance absorbs float32 representation error (0.29 reads back as
// 0.28999999) without rounding genuine fractions up.
const scaleTolerance = 1e-4

// Scale converts an endpoint scalar (0.0-1.0) into a percent by truncation.
// 0.37 -> 37, 0.375 -> 37. Out-of-range input is clamped.
func Scale(scalar float32) int {
	v := int(float64(scalar)*100 + scaleTolerance)
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
