package gameclock

// State is the server-authoritative clock. While Running, elapsed real time
// is Elapsed + (now - StartAt); while paused, it is exactly Elapsed and
// StartAt is stale. All values are epoch milliseconds.
type State struct {
	Running bool  `json:"running"`
	Elapsed int64 `json:"elapsed"`
	StartAt int64 `json:"startAt"`
}

// Preferences holds the GM-settable clock behavior: whether a reset leaves
// the clock running.
type Preferences struct {
	ResetRuns bool `json:"resetRuns"`
}

// DefaultPreferences auto-runs the clock after reset.
func DefaultPreferences() Preferences {
	return Preferences{ResetRuns: true}
}
