package physics

import (
	"fmt"

	"github.com/0x5844/arcade-physics/geom"
)

// SceneStats is a snapshot of a Scene's counters.
type SceneStats struct {
	Ticks    uint64
	Bodies   int
	Bindings int
	Removed  uint64
	Contacts uint64
}

// Scene owns an ordered list of bodies and an ordered list of force
// bindings. Removal is deferred: bodies are flagged with Remove and freed,
// together with every binding that depends on them, by the next Tick.
type Scene struct {
	bodies   []*Body
	bindings []*Binding

	tracked   map[Kind]bool
	observers []func(*Body)

	ticks    uint64
	removed  uint64
	contacts uint64
}

func NewScene() *Scene {
	return &Scene{
		bodies:   make([]*Body, 0, 64),
		bindings: make([]*Binding, 0, 64),
		tracked:  make(map[Kind]bool),
	}
}

// AddBody appends body. The Scene takes ownership of it.
func (s *Scene) AddBody(body *Body) {
	if body == nil {
		panic("physics: AddBody with nil body")
	}
	s.bodies = append(s.bodies, body)
}

// RemoveBodyAt flags the body at index i for removal on the next Tick.
func (s *Scene) RemoveBodyAt(i int) {
	s.BodyAt(i).Remove()
}

func (s *Scene) BodyCount() int {
	return len(s.bodies)
}

// BodyAt returns the body at index i. Indices are only stable between ticks.
func (s *Scene) BodyAt(i int) *Body {
	if i < 0 || i >= len(s.bodies) {
		panic(fmt.Sprintf("physics: body index %d out of range [0, %d)", i, len(s.bodies)))
	}
	return s.bodies[i]
}

// Bodies returns a copy of the body list.
func (s *Scene) Bodies() []*Body {
	return append([]*Body(nil), s.bodies...)
}

// AddForceCreator registers a creator that depends on no body. It lives until
// the Scene is closed.
func (s *Scene) AddForceCreator(creator ForceCreator, aux any) *Binding {
	return s.AddBodiesForceCreator(creator, aux, nil)
}

// AddBodiesForceCreator registers creator. The binding is destroyed, and aux
// released, as soon as any of bodies is removed.
func (s *Scene) AddBodiesForceCreator(creator ForceCreator, aux any, bodies []*Body) *Binding {
	if creator == nil {
		panic("physics: nil force creator")
	}
	for i, b := range bodies {
		if b == nil {
			panic(fmt.Sprintf("physics: nil dependency body at %d", i))
		}
	}
	fb := &Binding{
		creator: creator,
		aux:     aux,
		bodies:  append([]*Body(nil), bodies...),
	}
	s.bindings = append(s.bindings, fb)
	return fb
}

func (s *Scene) ForceCount() int {
	return len(s.bindings)
}

// BindingAt returns the binding at index i.
func (s *Scene) BindingAt(i int) *Binding {
	if i < 0 || i >= len(s.bindings) {
		panic(fmt.Sprintf("physics: binding index %d out of range [0, %d)", i, len(s.bindings)))
	}
	return s.bindings[i]
}

// TrackRemovals makes Tick report the centroid of removed bodies of the
// given kinds.
func (s *Scene) TrackRemovals(kinds ...Kind) {
	for _, k := range kinds {
		s.tracked[k] = true
	}
}

// OnRemove registers fn to be called with every body freed by Tick, before
// its tag is released. fn runs after the body list is compacted and may add
// bodies and bindings; new bodies are first integrated on the next Tick.
func (s *Scene) OnRemove(fn func(*Body)) {
	if fn == nil {
		return
	}
	s.observers = append(s.observers, fn)
}

func (s *Scene) Stats() SceneStats {
	return SceneStats{
		Ticks:    s.ticks,
		Bodies:   len(s.bodies),
		Bindings: len(s.bindings),
		Removed:  s.removed,
		Contacts: s.contacts,
	}
}

func (s *Scene) countContact() {
	s.contacts++
}

// Tick advances the scene by dt. All force creators run first, in
// registration order. Bindings that depend on a removed body are then
// dropped, removed bodies are freed, and the remaining bodies are
// integrated. The returned slice holds the centroids of freed bodies whose
// kind is tracked.
func (s *Scene) Tick(dt float64) []geom.Vector2D {
	s.ticks++

	// Index loop: a creator may register more bindings during the pass.
	for i := 0; i < len(s.bindings); i++ {
		s.bindings[i].creator()
	}

	if s.anyRemoved() {
		s.purgeBindings()
	}

	var (
		positions []geom.Vector2D
		freed     []*Body
	)
	w := 0
	for _, b := range s.bodies {
		if b.removed {
			if s.tracked[b.tag.Kind] {
				positions = append(positions, b.Centroid())
			}
			freed = append(freed, b)
			continue
		}
		b.Tick(dt)
		s.bodies[w] = b
		w++
	}
	clear(s.bodies[w:])
	s.bodies = s.bodies[:w]

	// Observers run on the compacted list so the bodies they add survive.
	for _, b := range freed {
		s.free(b)
	}
	return positions
}

func (s *Scene) anyRemoved() bool {
	for _, b := range s.bodies {
		if b.removed {
			return true
		}
	}
	return false
}

func (s *Scene) purgeBindings() {
	w := 0
	for _, fb := range s.bindings {
		if fb.dependsOnRemoved() {
			release(fb.aux)
			continue
		}
		s.bindings[w] = fb
		w++
	}
	clear(s.bindings[w:])
	s.bindings = s.bindings[:w]
}

func (s *Scene) free(b *Body) {
	for _, fn := range s.observers {
		fn(b)
	}
	release(b.tag.Value)
	s.removed++
}

// Close releases every binding payload and body tag and empties the scene.
func (s *Scene) Close() {
	for _, fb := range s.bindings {
		release(fb.aux)
	}
	for _, b := range s.bodies {
		release(b.tag.Value)
	}
	s.bindings = nil
	s.bodies = nil
}
