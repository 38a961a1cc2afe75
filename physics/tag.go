package physics

// Kind is the explicit discriminant callers use to classify bodies. The
// physics package only reserves KindNone; game code declares its own closed
// set of kinds starting at 1.
type Kind uint16

// KindNone marks an unclassified body.
const KindNone Kind = 0

// Tag classifies a body and optionally carries a caller-owned value.
type Tag struct {
	Kind  Kind
	Value any
}

// Releaser is implemented by tag values and binding payloads that hold
// resources. Release is called exactly once, when the Scene frees the owner.
type Releaser interface {
	Release()
}

func release(v any) {
	if r, ok := v.(Releaser); ok {
		r.Release()
	}
}
