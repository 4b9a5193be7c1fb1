package events

import (
	"github.com/bkmar1192/FoundryLite/internal/combat"
	"github.com/bkmar1192/FoundryLite/internal/gameclock"
	"github.com/bkmar1192/FoundryLite/internal/scene"
)

// Type identifies a broadcast event. Every payload is a complete
// replacement for that facet of viewer state, never a diff.
type Type string

const (
	TypeState   Type = "state"
	TypeGrid    Type = "grid"
	TypeConfig  Type = "config"
	TypeClock   Type = "clock"
	TypeCombat  Type = "combat"
	TypeHash    Type = "hash"
	TypeRefresh Type = "refresh"
)

// State carries the full session state after a fog-of-war mutation.
type State struct {
	Type  Type               `json:"type"`
	State scene.SessionState `json:"state"`
}

// Grid carries the grid visibility flag.
type Grid struct {
	Type Type `json:"type"`
	Show bool `json:"show"`
}

// Config carries the full presentation config.
type Config struct {
	Type   Type               `json:"type"`
	Config scene.Presentation `json:"config"`
}

// Clock carries the clock state plus the server's epoch so viewers compute
// elapsed time against the server reference, not their own clocks.
type Clock struct {
	Type       Type            `json:"type"`
	ServerTime int64           `json:"serverTime"`
	Clock      gameclock.State `json:"clock"`
}

// Combat carries a freshly rebuilt combat snapshot.
type Combat struct {
	Type   Type            `json:"type"`
	Combat combat.Snapshot `json:"combat"`
}

// Hash announces a new scene fingerprint; viewers re-fetch image and state.
type Hash struct {
	Type Type   `json:"type"`
	Hash string `json:"hash"`
}

// Refresh tells viewers to re-fetch the image without re-fetching state
// (same bytes rewritten, or image removed).
type Refresh struct {
	Type Type `json:"type"`
}

func NewState(st scene.SessionState) State {
	return State{Type: TypeState, State: st}
}

func NewGrid(show bool) Grid {
	return Grid{Type: TypeGrid, Show: show}
}

func NewConfig(p scene.Presentation) Config {
	return Config{Type: TypeConfig, Config: p}
}

func NewClock(serverTime int64, st gameclock.State) Clock {
	return Clock{Type: TypeClock, ServerTime: serverTime, Clock: st}
}

func NewCombat(snap combat.Snapshot) Combat {
	return Combat{Type: TypeCombat, Combat: snap}
}

func NewHash(hash string) Hash {
	return Hash{Type: TypeHash, Hash: hash}
}

func NewRefresh() Refresh {
	return Refresh{Type: TypeRefresh}
}
