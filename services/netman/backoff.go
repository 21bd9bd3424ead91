// services/netman/backoff.go
package netman

import (
	"time"

	"stationboard-go/x/mathx"
)

const (
	// The first three attempts after a success are free; a briefly flapping
	// link reconnects without delay.
	backoffFreeAttempts = 3
	backoffBase         = 500 * time.Millisecond
	backoffCap          = 10 * time.Second
)

// Delay returns the pause before the next transition attempt after the given
// number of consecutive failures. Non-decreasing, 0 for failures < 3, then
// 500ms doubling per failure, capped at 10s.
func Delay(failures int) time.Duration {
	if failures < backoffFreeAttempts {
		return 0
	}
	shift := failures - backoffFreeAttempts
	if shift > 30 {
		shift = 30
	}
	return mathx.Clamp(backoffBase<<shift, 0, backoffCap)
}
