package combat

// Turn is one normalized combatant entry. Initiative, Order and AC are nil
// when the source document carried a non-numeric value; Order is always
// assigned during normalization. HP and HPMax pass through untyped because
// the authoring tool writes whatever its system model holds.
type Turn struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Initiative *float64 `json:"initiative"`
	Order      *float64 `json:"order"`
	Condition  string   `json:"condition"`
	AC         *float64 `json:"ac"`
	HP         any      `json:"hp"`
	HPMax      any      `json:"hpMax"`
	Active     bool     `json:"active"`
}

// Snapshot is a fully rebuilt view of the current combat: the ordered turn
// list, the active turn pointer, and the round counter. It is never patched
// incrementally; every change to the source document produces a new one.
type Snapshot struct {
	Round     *float64 `json:"round"`
	TurnIndex *int     `json:"turnIndex"`
	ActiveID  *string  `json:"activeId"`
	List      []Turn   `json:"list"`
}

// EmptySnapshot is the fallback for a missing or unparseable combat
// document.
func EmptySnapshot() Snapshot {
	return Snapshot{List: []Turn{}}
}
