package domain

import "github.com/jonboulle/clockwork"

// clock is the time source behind NormalizedItem.ProcessedAt. Tests and
// fixture generation freeze it via SetClock for deterministic output.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for normalization. Pass nil to reset to
// real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
