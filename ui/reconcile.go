package ui

// Reconcile implements §4.4: given an existing node (possibly nil) and a
// widget, return a node whose concrete kind equals the widget's expected
// kind. A nil existing node or a kind mismatch allocates fresh (flagged
// dirty); otherwise the existing node is updated in place. Children are
// reconciled recursively with insertion-order correspondence, falling
// back to key-based matching when a widget declares one — the only
// identity rule; there is no hidden global node registry.
func Reconcile(existing Node, w Widget) Node {
	if w == nil {
		return nil
	}

	var n Node
	if existing == nil || existing.Kind() != w.Kind() {
		n = w.NewNode()
		n.Update(w)
		n.MarkDirty()
	} else {
		n = existing
		n.Update(w)
	}

	reconcileChildren(n, w)
	return n
}

// reconcileChildren matches each child widget against a previous child
// node: by explicit Key() when the widget declares one, otherwise by
// consuming the next unkeyed old child in document order.
func reconcileChildren(n Node, w Widget) {
	oldChildren := n.Children()
	newWidgets := w.Children()

	byKey := make(map[string]Node, len(oldChildren))
	var positional []Node
	for _, c := range oldChildren {
		if c.Key() != "" {
			byKey[c.Key()] = c
		} else {
			positional = append(positional, c)
		}
	}

	result := make([]Node, 0, len(newWidgets))
	posIdx := 0
	for _, cw := range newWidgets {
		var match Node
		if k := cw.Key(); k != "" {
			match = byKey[k]
		} else if posIdx < len(positional) {
			match = positional[posIdx]
			posIdx++
		}

		child := Reconcile(match, cw)
		if child == nil {
			continue
		}
		child.SetParent(n)
		result = append(result, child)
	}

	n.SetChildren(result)
}
