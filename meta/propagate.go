package meta

// PropagationMode selects which merge directions Propagate applies.
type PropagationMode int

const (
	// Bidirectional applies forward merges before a subtree is visited and
	// backward merges after it completed.
	Bidirectional PropagationMode = iota
	// ForwardOnly skips every backward hook. It reproduces the older
	// single-direction contract for consumers that depend on it.
	ForwardOnly
)

// String returns a human-readable mode name.
func (m PropagationMode) String() string {
	switch m {
	case Bidirectional:
		return "bidirectional"
	case ForwardOnly:
		return "forward-only"
	default:
		return "unknown"
	}
}

// Propagate runs the full propagation pass over a freshly built tree, using
// the bidirectional contract.
func (d *Descriptor[M]) Propagate() {
	d.PropagateWith(nil, Bidirectional)
}

// PropagateWith propagates metadata through d and its subtree. context is
// the metadata inherited from the enclosing entry or container, nil at the
// root.
//
// Traversal is depth-first: forward merges for an edge run before the
// subtree below it is visited and backward merges run after the whole
// subtree completed, so an override deep in the tree can reach its ancestors.
func (d *Descriptor[M]) PropagateWith(context *M, mode PropagationMode) {
	if context != nil {
		if h, ok := any(&d.Metadata).(ContextPropagator[M]); ok {
			h.ForwardPropagateContext(*context)
		}
	}

	switch d.Kind.Tag {
	case KindStruct:
		d.propagateChildren(mode)

	case KindAliased, KindSequence, KindOption:
		if d.Kind.Elem == nil {
			return
		}

		forwardChild(&d.Metadata, d.Kind.Elem.Metadata)
		d.Kind.Elem.PropagateWith(&d.Metadata, mode)

		if mode == Bidirectional {
			backwardChild(&d.Metadata, d.Kind.Elem.Metadata)
		}

	case KindMapping:
		if d.Kind.Key == nil || d.Kind.Elem == nil {
			return
		}

		forwardChild(&d.Metadata, d.Kind.Key.Metadata)
		forwardChild(&d.Metadata, d.Kind.Elem.Metadata)
		d.Kind.Key.PropagateWith(&d.Metadata, mode)
		d.Kind.Elem.PropagateWith(&d.Metadata, mode)

		if mode == Bidirectional {
			// value last so that it wins over the key
			backwardChild(&d.Metadata, d.Kind.Key.Metadata)
			backwardChild(&d.Metadata, d.Kind.Elem.Metadata)
		}

	default:
		// Enum variants and leaves carry no nested descriptors.
	}
}

// propagateChildren visits the struct children in order. A spliced run is
// visited as one edge: the flatten site is merged against the flattened
// type, whose children are the run itself.
func (d *Descriptor[M]) propagateChildren(mode PropagationMode) {
	i := 0

	for _, s := range d.Kind.spliced {
		for ; i < s.start; i++ {
			child := &d.Kind.Children[i]
			PropagateEntry(&child.Metadata, d.Metadata, &child.TypeInfo, mode)
		}

		site, inner := s.site, s.inner
		inner.Kind.Children = d.Kind.Children[s.start:s.end]
		PropagateEntry(&site, d.Metadata, &inner, mode)

		i = s.end
	}

	for ; i < len(d.Kind.Children); i++ {
		child := &d.Kind.Children[i]
		PropagateEntry(&child.Metadata, d.Metadata, &child.TypeInfo, mode)
	}
}

// PropagateEntry propagates across one struct edge: entry is the field
// metadata, context the enclosing struct's metadata and typeInfo the field's
// type.
func PropagateEntry[M any](entry *M, context M, typeInfo *Descriptor[M], mode PropagationMode) {
	forwardEntry(entry, context, typeInfo.Metadata)
	typeInfo.PropagateWith(entry, mode)

	if mode == Bidirectional {
		backwardEntry(entry, context, typeInfo.Metadata)
	}
}

func forwardEntry[M any](entry *M, context, kind M) {
	if h, ok := any(entry).(EntryForwardPropagator[M]); ok {
		h.ForwardPropagateEntryDefaults(context, kind)
	}
}

func backwardEntry[M any](entry *M, context, kind M) {
	if h, ok := any(entry).(EntryBackwardPropagator[M]); ok {
		h.BackwardPropagateEntryDefaults(context, kind)
	}
}

func forwardChild[M any](node *M, kind M) {
	if h, ok := any(node).(ChildForwardPropagator[M]); ok {
		h.ForwardPropagateChildDefaults(kind)
	}
}

func backwardChild[M any](node *M, kind M) {
	if h, ok := any(node).(ChildBackwardPropagator[M]); ok {
		h.BackwardPropagateChildDefaults(kind)
	}
}
