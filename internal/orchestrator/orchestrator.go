package orchestrator

import (
	"errors"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/bkmar1192/FoundryLite/internal/combat"
	"github.com/bkmar1192/FoundryLite/internal/events"
	"github.com/bkmar1192/FoundryLite/internal/gameclock"
	"github.com/bkmar1192/FoundryLite/internal/scene"
	"github.com/bkmar1192/FoundryLite/internal/storage"
)

const (
	clockFile      = "clock.json"
	clockPrefsFile = "clock_prefs.json"
)

// ErrInvalidDimension rejects config updates carrying a non-positive grid
// dimension.
var ErrInvalidDimension = errors.New("grid dimensions must be positive integers")

// Broadcaster pushes a typed event to every connected viewer.
type Broadcaster interface {
	Broadcast(event any)
}

// Orchestrator owns the authoritative session state. All mutations go
// through its methods under a single mutex, in the order state change,
// persist, broadcast.
type Orchestrator struct {
	mu sync.Mutex

	imagePath  string
	combatPath string

	store  *storage.Store
	scenes *scene.Repository
	hub    Broadcaster

	hash         string
	state        scene.SessionState
	grid         scene.GridVisibility
	presentation scene.Presentation
	clock        *gameclock.Engine
	combat       combat.Snapshot
	lastActiveID *string
}

// New loads or defaults every facet of session state and seeds the image
// fingerprint from the file currently on disk.
func New(store *storage.Store, hub Broadcaster, clk clockwork.Clock, imagePath, combatPath string) *Orchestrator {
	scenes := scene.NewRepository(store)

	hash := scene.Fingerprint(imagePath)

	clockState := gameclock.State{Running: true, Elapsed: 0, StartAt: clk.Now().UnixMilli()}
	if err := store.Load(clockFile, &clockState); err != nil {
		clockState = gameclock.State{Running: true, Elapsed: 0, StartAt: clk.Now().UnixMilli()}
	}
	prefs := gameclock.DefaultPreferences()
	if err := store.Load(clockPrefsFile, &prefs); err != nil {
		prefs = gameclock.DefaultPreferences()
	}

	snap := combat.LoadFile(combatPath)

	o := &Orchestrator{
		imagePath:    imagePath,
		combatPath:   combatPath,
		store:        store,
		scenes:       scenes,
		hub:          hub,
		hash:         hash,
		state:        scenes.LoadState(hash),
		grid:         scenes.LoadGrid(),
		presentation: scenes.LoadPresentation(),
		clock:        gameclock.NewEngine(clk, clockState, prefs),
		combat:       snap,
		lastActiveID: snap.ActiveID,
	}

	log.Info().
		Str("hash", hash).
		Int("hidden", len(o.state.Hidden)).
		Int("combatants", len(snap.List)).
		Msg("session loaded")

	return o
}

// Hash returns the current image fingerprint.
func (o *Orchestrator) Hash() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.hash
}

// State returns the fingerprint together with a copy of its session
// state. The copy is deep: ApplyOps mutates the live cell sets in place,
// so handlers must not hold slices that alias them after the lock drops.
func (o *Orchestrator) State() (string, scene.SessionState) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.hash, o.state.Clone()
}

// ApplyOps runs a batched fog-of-war mutation against the current
// fingerprint's state, persists it, and broadcasts the full result.
func (o *Orchestrator) ApplyOps(ops []scene.Op) {
	o.mu.Lock()
	defer o.mu.Unlock()

	scene.Apply(&o.state, ops)
	o.scenes.SaveState(o.hash, o.state)
	o.hub.Broadcast(events.NewState(o.state))
}

// Grid returns the grid visibility.
func (o *Orchestrator) Grid() scene.GridVisibility {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.grid
}

// SetGrid replaces the grid visibility flag.
func (o *Orchestrator) SetGrid(show bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.grid.Show = show
	o.scenes.SaveGrid(o.grid)
	o.hub.Broadcast(events.NewGrid(o.grid.Show))
}

// Presentation returns the presentation config.
func (o *Orchestrator) Presentation() scene.Presentation {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.presentation
}

// UpdatePresentation merges the supplied fields into the presentation
// config. Every supplied dimension must be a positive integer; otherwise
// the config is left untouched and the error reaches the caller as a 400.
func (o *Orchestrator) UpdatePresentation(patch scene.PresentationPatch) (scene.Presentation, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	next := o.presentation
	for _, f := range []struct {
		supplied *int
		dst      *int
	}{
		{patch.Cols, &next.Cols},
		{patch.Rows, &next.Rows},
		{patch.ImgCols, &next.ImgCols},
		{patch.ImgRows, &next.ImgRows},
	} {
		if f.supplied == nil {
			continue
		}
		if *f.supplied < 1 {
			return o.presentation, ErrInvalidDimension
		}
		*f.dst = *f.supplied
	}

	o.presentation = next
	o.scenes.SavePresentation(o.presentation)
	o.hub.Broadcast(events.NewConfig(o.presentation))
	return o.presentation, nil
}

// Clock returns the server epoch and clock state for a baseline GET.
func (o *Orchestrator) Clock() (int64, gameclock.State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.clock.Now(), o.clock.State()
}

// ApplyClockAction runs one clock transition, persists the result, and
// broadcasts it. An unknown action leaves the clock untouched.
func (o *Orchestrator) ApplyClockAction(action string) (int64, gameclock.State, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.clock.Now()
	state, err := o.clock.Apply(action)
	if err != nil {
		return now, state, err
	}
	o.store.Save(clockFile, state)
	o.hub.Broadcast(events.NewClock(now, state))
	return now, state, nil
}

// ClockPrefs returns the clock preferences.
func (o *Orchestrator) ClockPrefs() gameclock.Preferences {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.clock.Prefs()
}

// SetClockPrefs replaces the clock preferences and persists them.
func (o *Orchestrator) SetClockPrefs(p gameclock.Preferences) gameclock.Preferences {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.clock.SetPrefs(p)
	o.store.Save(clockPrefsFile, p)
	return p
}

// Combat returns the current combat snapshot.
func (o *Orchestrator) Combat() combat.Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.combat
}

// OnImageChange recomputes the fingerprint after the image file changed.
// A new fingerprint swaps in that scene's session state and announces the
// hash; identical bytes (or a vanished image) trigger a plain refresh so
// viewers re-fetch the image without re-fetching state.
func (o *Orchestrator) OnImageChange() {
	o.mu.Lock()
	defer o.mu.Unlock()

	h := scene.Fingerprint(o.imagePath)
	if h != "" && h != o.hash {
		o.hash = h
		o.state = o.scenes.LoadState(h)
		log.Info().Str("hash", h).Msg("scene image changed")
		o.hub.Broadcast(events.NewHash(h))
		return
	}
	o.hub.Broadcast(events.NewRefresh())
}

// OnCombatChange rebuilds the combat snapshot after the combat file
// changed. Any change of the active combatant resets the clock for the
// new turn. The snapshot and resulting clock state are both broadcast.
func (o *Orchestrator) OnCombatChange() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.combat = combat.LoadFile(o.combatPath)

	if !sameActiveID(o.lastActiveID, o.combat.ActiveID) {
		o.lastActiveID = o.combat.ActiveID
		state := o.clock.Reset()
		o.store.Save(clockFile, state)
		log.Info().Msg("active turn changed, clock reset")
	}

	o.hub.Broadcast(events.NewCombat(o.combat))
	o.hub.Broadcast(events.NewClock(o.clock.Now(), o.clock.State()))
}

func sameActiveID(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
