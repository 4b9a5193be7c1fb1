package scene

import (
	"github.com/bkmar1192/FoundryLite/internal/storage"
)

const (
	// noHashKey is the persistence key used while no image file exists.
	noHashKey = "nohash"

	gridFile         = "grid.json"
	presentationFile = "config.json"
)

// Repository persists session state per fingerprint plus the global grid
// and presentation documents. Reads fall back to the documented defaults
// when a document is missing or malformed; writes are best-effort.
type Repository struct {
	store *storage.Store
}

// NewRepository creates a repository backed by the given document store.
func NewRepository(store *storage.Store) *Repository {
	return &Repository{store: store}
}

func stateFile(hash string) string {
	if hash == "" {
		hash = noHashKey
	}
	return hash + ".json"
}

// LoadState returns the session state persisted for hash, or the default
// state when none exists.
func (r *Repository) LoadState(hash string) SessionState {
	st := DefaultSessionState()
	if err := r.store.Load(stateFile(hash), &st); err != nil {
		return DefaultSessionState()
	}
	return st
}

// SaveState persists the session state for hash.
func (r *Repository) SaveState(hash string, st SessionState) {
	r.store.Save(stateFile(hash), st)
}

// LoadGrid returns the persisted grid visibility or its default.
func (r *Repository) LoadGrid() GridVisibility {
	g := DefaultGridVisibility()
	if err := r.store.Load(gridFile, &g); err != nil {
		return DefaultGridVisibility()
	}
	return g
}

// SaveGrid persists the grid visibility.
func (r *Repository) SaveGrid(g GridVisibility) {
	r.store.Save(gridFile, g)
}

// LoadPresentation returns the persisted presentation config or its default.
func (r *Repository) LoadPresentation() Presentation {
	p := DefaultPresentation()
	if err := r.store.Load(presentationFile, &p); err != nil {
		return DefaultPresentation()
	}
	return p
}

// SavePresentation persists the presentation config.
func (r *Repository) SavePresentation(p Presentation) {
	r.store.Save(presentationFile, p)
}
