package gameclock

import (
	"errors"

	"github.com/jonboulle/clockwork"
)

// Action names the clock transitions accepted over HTTP.
const (
	ActionPause  = "pause"
	ActionResume = "resume"
	ActionToggle = "toggle"
	ActionReset  = "reset"
)

// ErrUnknownAction is returned for any action string outside the accepted
// set; the clock state is left untouched.
var ErrUnknownAction = errors.New("action must be pause|resume|toggle|reset")

// Engine is the clock state machine. It owns no persistence or broadcast;
// callers snapshot the state after each transition and handle both.
// In production use clockwork.NewRealClock(); tests inject a FakeClock.
type Engine struct {
	clock clockwork.Clock
	state State
	prefs Preferences
}

// NewEngine creates an engine seeded with the given state and preferences.
func NewEngine(clock clockwork.Clock, state State, prefs Preferences) *Engine {
	return &Engine{clock: clock, state: state, prefs: prefs}
}

// Now returns the engine's current epoch milliseconds.
func (e *Engine) Now() int64 {
	return e.clock.Now().UnixMilli()
}

// State returns the current clock state.
func (e *Engine) State() State {
	return e.state
}

// Prefs returns the current preferences.
func (e *Engine) Prefs() Preferences {
	return e.prefs
}

// SetPrefs replaces the preferences. Takes effect on the next reset.
func (e *Engine) SetPrefs(p Preferences) {
	e.prefs = p
}

// Apply runs the named transition and returns the resulting state.
func (e *Engine) Apply(action string) (State, error) {
	now := e.Now()
	switch action {
	case ActionReset:
		e.reset(now)
	case ActionPause:
		e.pause(now)
	case ActionResume:
		e.resume(now)
	case ActionToggle:
		if e.state.Running {
			e.pause(now)
		} else {
			e.resume(now)
		}
	default:
		return e.state, ErrUnknownAction
	}
	return e.state, nil
}

// Reset forces the reset transition outside the HTTP action path. The
// combat watcher uses it to start a fresh per-turn timer whenever the
// active combatant changes.
func (e *Engine) Reset() State {
	e.reset(e.Now())
	return e.state
}

func (e *Engine) reset(now int64) {
	e.state.Elapsed = 0
	e.state.StartAt = now
	e.state.Running = e.prefs.ResetRuns
}

func (e *Engine) pause(now int64) {
	if !e.state.Running {
		return
	}
	// A zero StartAt means the persisted state predates this run; treat the
	// running interval as empty rather than counting from the epoch.
	if e.state.StartAt > 0 {
		e.state.Elapsed += now - e.state.StartAt
	}
	e.state.Running = false
}

func (e *Engine) resume(now int64) {
	if e.state.Running {
		return
	}
	e.state.Running = true
	e.state.StartAt = now
}
