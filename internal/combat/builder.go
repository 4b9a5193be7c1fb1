package combat

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
)

// rawDocument is the loosely-typed shape the authoring tool writes. The
// turn list appears under either "turns" or "combat" depending on the
// tool version; every other field is coerced defensively.
type rawDocument struct {
	Turns  json.RawMessage `json:"turns"`
	Combat json.RawMessage `json:"combat"`
	Turn   any             `json:"turn"`
	Round  any             `json:"round"`
}

// turnList picks the turn array: "turns" wins whenever it is an array,
// even an empty one. A null or non-array "turns" falls through to
// "combat".
func (d rawDocument) turnList() []any {
	for _, m := range []json.RawMessage{d.Turns, d.Combat} {
		var raw []any
		if len(m) > 0 && json.Unmarshal(m, &raw) == nil && raw != nil {
			return raw
		}
	}
	return nil
}

// LoadFile reads and rebuilds the combat snapshot from the document at
// path. A missing or malformed file yields the empty snapshot, never a
// partial or stale one.
func LoadFile(path string) Snapshot {
	data, err := os.ReadFile(path)
	if err != nil {
		return EmptySnapshot()
	}
	return Rebuild(data)
}

// Rebuild parses an untrusted combat document into a validated Snapshot.
// This is the only place loosely-typed combat data is handled; nothing
// ambiguous leaves this boundary.
func Rebuild(data []byte) Snapshot {
	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return EmptySnapshot()
	}

	list := normalizeTurns(doc.turnList())

	turnIndex := resolveTurnIndex(doc.Turn, list)
	activeID := resolveActiveID(turnIndex, list)

	snap := Snapshot{List: list, TurnIndex: turnIndex, ActiveID: activeID}
	if r, ok := asNumber(doc.Round); ok {
		snap.Round = &r
	}
	return snap
}

// normalizeTurns coerces the raw entries, sorts them by ascending order
// with descending initiative as tie-break (stable for exact ties), and
// assigns sequential order values to entries that had none.
func normalizeTurns(raw []any) []Turn {
	list := make([]Turn, 0, len(raw))
	for i, entry := range raw {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		t := Turn{
			ID:        stringOr(obj["id"], fmt.Sprintf("%d", i)),
			Name:      stringOr(obj["name"], fmt.Sprintf("Char %d", i+1)),
			Condition: stringOr(obj["condition"], ""),
			HP:        obj["hp"],
			HPMax:     obj["hpMax"],
			Active:    truthy(obj["active"]),
		}
		if n, ok := asNumber(obj["initiative"]); ok {
			t.Initiative = &n
		}
		if n, ok := asNumber(obj["order"]); ok {
			t.Order = &n
		}
		if n, ok := asNumber(obj["ac"]); ok {
			t.AC = &n
		}
		list = append(list, t)
	}

	sort.SliceStable(list, func(a, b int) bool {
		ao, bo := orderKey(list[a]), orderKey(list[b])
		if ao != bo {
			return ao < bo
		}
		return initiativeKey(list[a]) > initiativeKey(list[b])
	})
	for i := range list {
		if list[i].Order == nil {
			o := float64(i)
			list[i].Order = &o
		}
	}
	return list
}

// Missing orders sort after every explicit order; missing initiatives sort
// after every explicit initiative.
func orderKey(t Turn) float64 {
	if t.Order == nil {
		return math.Inf(1)
	}
	return *t.Order
}

func initiativeKey(t Turn) float64 {
	if t.Initiative == nil {
		return math.Inf(-1)
	}
	return *t.Initiative
}

// resolveTurnIndex prefers an explicit integer turn field when it indexes
// into the list; otherwise it falls back to whichever entry is flagged
// active.
func resolveTurnIndex(rawTurn any, list []Turn) *int {
	if n, ok := asNumber(rawTurn); ok && n == math.Trunc(n) {
		idx := int(n)
		if idx >= 0 && idx < len(list) {
			return &idx
		}
		return nil
	}
	for i, t := range list {
		if t.Active {
			idx := i
			return &idx
		}
	}
	return nil
}

func resolveActiveID(turnIndex *int, list []Turn) *string {
	if turnIndex != nil {
		id := list[*turnIndex].ID
		return &id
	}
	for _, t := range list {
		if t.Active {
			id := t.ID
			return &id
		}
	}
	return nil
}

func asNumber(v any) (float64, bool) {
	n, ok := v.(float64)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	if n, ok := asNumber(v); ok {
		if n == math.Trunc(n) {
			return fmt.Sprintf("%d", int64(n))
		}
		return fmt.Sprintf("%g", n)
	}
	return fallback
}

func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != "" && x != "false"
	default:
		return false
	}
}
