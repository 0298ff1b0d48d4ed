package uml

// DedupInterfaces computes the minimal set of interface edges to draw
// for a type. ifaces are the resolved descriptors of the type's full
// transitive interface set in that set's order; parent is the type's
// parent descriptor, or nil.
//
// Two prunes are applied. First, any interface already present in the
// parent's own transitive interface set is dropped, since the
// inheritance edge to the parent already implies it. Second, each
// surviving interface removes every other survivor that appears in its
// own interface list. The second prune is one level of transitive
// reduction among siblings, not a full minimal cover for deep interface
// chains. Output order is a stable function of input order.
func DedupInterfaces(ifaces []*TypeDescriptor, parent *TypeDescriptor) []*TypeDescriptor {
	kept := make([]*TypeDescriptor, 0, len(ifaces))
	for _, in := range ifaces {
		if parent != nil && parent.Implements(in.Name) {
			continue
		}
		kept = append(kept, in)
	}

	removed := make(map[string]bool, len(kept))
	for _, a := range kept {
		for _, b := range kept {
			if a.Name != b.Name && a.Implements(b.Name) {
				removed[b.Name] = true
			}
		}
	}

	out := kept[:0]
	for _, in := range kept {
		if !removed[in.Name] {
			out = append(out, in)
		}
	}
	return out
}
