package scene

// Apply runs a batched sequence of ops against st, in order. Unknown op
// types are ignored; any mode other than "highlight" targets the hidden
// set. Toggle is an involution and set is idempotent, so replayed batches
// are harmless.
func Apply(st *SessionState, ops []Op) {
	for _, op := range ops {
		target := &st.Hidden
		if op.Mode == ModeHighlight {
			target = &st.Highlight
		}
		switch op.Type {
		case OpToggle:
			if op.Key == "" {
				continue
			}
			if i := indexOf(*target, op.Key); i >= 0 {
				*target = append((*target)[:i], (*target)[i+1:]...)
			} else {
				*target = append(*target, op.Key)
			}
		case OpClear:
			*target = []string{}
		case OpSet:
			if op.Key == "" {
				continue
			}
			i := indexOf(*target, op.Key)
			if op.Value && i < 0 {
				*target = append(*target, op.Key)
			}
			if !op.Value && i >= 0 {
				*target = append((*target)[:i], (*target)[i+1:]...)
			}
		}
	}
}

func indexOf(keys []string, key string) int {
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	return -1
}
