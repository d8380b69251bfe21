package domain

import "github.com/jonboulle/clockwork"

// clock supplies LookupEvent.LookedUpAt.
var clock = clockwork.NewRealClock()

// SetClock replaces the source of lookup event timestamps; nil restores the
// wall clock. Display times never read it: they come from the payload.
func SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	clock = c
}
