package scene

// Note is the freeform GM note attached to a scene.
type Note struct {
	Visible bool   `json:"visible"`
	Text    string `json:"text"`
}

// SessionState is the fog-of-war overlay for one scene version: the cell
// keys currently hidden from players, the cells currently highlighted, and
// the note. Keyed by image fingerprint so edits never bleed between scenes.
type SessionState struct {
	Hidden    []string `json:"hidden"`
	Highlight []string `json:"highlight"`
	Note      Note     `json:"note"`
}

// Clone returns a copy whose cell sets share no backing storage with the
// receiver, so callers may hand it out after releasing their lock.
func (s SessionState) Clone() SessionState {
	out := s
	out.Hidden = append([]string{}, s.Hidden...)
	out.Highlight = append([]string{}, s.Highlight...)
	return out
}

// DefaultSessionState returns the state for a scene nobody has touched yet.
func DefaultSessionState() SessionState {
	return SessionState{
		Hidden:    []string{},
		Highlight: []string{},
		Note:      Note{Visible: false, Text: ""},
	}
}

// Presentation holds the grid cell counts for the logical overlay and the
// image's native resolution. Global, not versioned by fingerprint.
type Presentation struct {
	Cols    int `json:"cols"`
	Rows    int `json:"rows"`
	ImgCols int `json:"imgCols"`
	ImgRows int `json:"imgRows"`
}

// DefaultPresentation returns the grid dimensions used before the GM
// configures anything.
func DefaultPresentation() Presentation {
	return Presentation{Cols: 19, Rows: 10, ImgCols: 19, ImgRows: 10}
}

// PresentationPatch is a partial Presentation update; nil fields are left
// unchanged by UpdatePresentation.
type PresentationPatch struct {
	Cols    *int `json:"cols"`
	Rows    *int `json:"rows"`
	ImgCols *int `json:"imgCols"`
	ImgRows *int `json:"imgRows"`
}

// GridVisibility controls whether the grid overlay is rendered.
type GridVisibility struct {
	Show bool `json:"show"`
}

// DefaultGridVisibility shows the grid.
func DefaultGridVisibility() GridVisibility {
	return GridVisibility{Show: true}
}

// OpType identifies a session state mutation.
type OpType string

const (
	OpToggle OpType = "toggle"
	OpClear  OpType = "clear"
	OpSet    OpType = "set"
)

// Mode selects which cell set an op targets.
type Mode string

const (
	ModeHidden    Mode = "hidden"
	ModeHighlight Mode = "highlight"
)

// Op is one entry of a batched state mutation. Key is an opaque grid-cell
// identifier; Value is only meaningful for OpSet.
type Op struct {
	Type  OpType `json:"type"`
	Mode  Mode   `json:"mode"`
	Key   string `json:"key"`
	Value bool   `json:"value"`
}
