package physics

import (
	"testing"

	"github.com/0x5844/arcade-physics/geom"
)

type releaseCounter struct {
	n int
}

func (r *releaseCounter) Release() {
	r.n++
}

func TestRemovalPurgesDependentBindings(t *testing.T) {
	scene := NewScene()
	bodies := make([]*Body, 4)
	for i := range bodies {
		bodies[i] = NewBody(square(float64(i)*100, 0, 10), 1, testColor)
		scene.AddBody(bodies[i])
	}
	doomed := bodies[1]

	// Three bindings depend on the doomed body.
	CreateDrag(scene, 0.1, doomed)
	CreateSpring(scene, 0.1, doomed, bodies[2])
	CreateNewtonianGravity(scene, 1, bodies[0], doomed)
	// Three do not.
	CreateDrag(scene, 0.1, bodies[0])
	CreateSpring(scene, 0.1, bodies[2], bodies[3])
	scene.AddForceCreator(func() {}, nil)

	if got := scene.ForceCount(); got != 6 {
		t.Fatalf("ForceCount = %d, want 6", got)
	}

	scene.RemoveBodyAt(1)
	scene.Tick(0.01)

	if got := scene.ForceCount(); got != 3 {
		t.Errorf("ForceCount = %d, want 3", got)
	}
	if got := scene.BodyCount(); got != 3 {
		t.Errorf("BodyCount = %d, want 3", got)
	}
	for i := 0; i < scene.ForceCount(); i++ {
		if scene.BindingAt(i).DependsOn(doomed) {
			t.Errorf("binding %d still depends on removed body", i)
		}
	}
	for _, b := range scene.Bodies() {
		if b == doomed {
			t.Error("removed body still in scene")
		}
	}
	if got := scene.Stats().Removed; got != 1 {
		t.Errorf("Stats().Removed = %d, want 1", got)
	}
}

func TestRemovalKeepsOrder(t *testing.T) {
	scene := NewScene()
	var bodies []*Body
	for i := 0; i < 6; i++ {
		b := NewBody(square(float64(i)*20, 0, 5), 1, testColor)
		bodies = append(bodies, b)
		scene.AddBody(b)
	}
	// Adjacent removals must not skip anything.
	bodies[2].Remove()
	bodies[3].Remove()
	bodies[5].Remove()
	scene.Tick(0)

	want := []*Body{bodies[0], bodies[1], bodies[4]}
	if scene.BodyCount() != len(want) {
		t.Fatalf("BodyCount = %d, want %d", scene.BodyCount(), len(want))
	}
	for i, b := range want {
		if scene.BodyAt(i) != b {
			t.Errorf("BodyAt(%d) is not the expected body", i)
		}
	}
}

func TestTrackedRemovalPositions(t *testing.T) {
	const (
		kindRock Kind = iota + 1
		kindShot
	)
	scene := NewScene()
	scene.TrackRemovals(kindRock)

	rock := NewTaggedBody(square(10, 20, 2), 1, testColor, Tag{Kind: kindRock}, 0)
	shot := NewTaggedBody(square(50, 50, 2), 1, testColor, Tag{Kind: kindShot}, 0)
	plain := NewBody(square(80, 80, 2), 1, testColor)
	scene.AddBody(rock)
	scene.AddBody(shot)
	scene.AddBody(plain)

	if got := scene.Tick(0); len(got) != 0 {
		t.Fatalf("positions reported without removals: %v", got)
	}

	rock.Remove()
	shot.Remove()
	plain.Remove()
	got := scene.Tick(0)
	if len(got) != 1 {
		t.Fatalf("got %d positions, want 1", len(got))
	}
	if !nearVec(got[0], geom.NewVector2D(11, 21)) {
		t.Errorf("position = %v, want (11, 21)", got[0])
	}
}

func TestReleaseCalledOnce(t *testing.T) {
	scene := NewScene()
	tagValue := &releaseCounter{}
	auxValue := &releaseCounter{}

	a := NewTaggedBody(square(0, 0, 10), 1, testColor, Tag{Kind: 1, Value: tagValue}, 0)
	b := NewBody(square(100, 0, 10), 1, testColor)
	scene.AddBody(a)
	scene.AddBody(b)
	CreateCollision(scene, a, b, OneSidedDestructiveCollisionHandler, auxValue, 0)

	a.Remove()
	scene.Tick(0)
	scene.Tick(0)
	scene.Close()

	if tagValue.n != 1 {
		t.Errorf("tag value released %d times, want 1", tagValue.n)
	}
	if auxValue.n != 1 {
		t.Errorf("binding aux released %d times, want 1", auxValue.n)
	}
}

func TestCloseReleasesLiveObjects(t *testing.T) {
	scene := NewScene()
	tagValue := &releaseCounter{}
	auxValue := &releaseCounter{}
	scene.AddBody(NewTaggedBody(square(0, 0, 1), 1, testColor, Tag{Kind: 1, Value: tagValue}, 0))
	scene.AddForceCreator(func() {}, auxValue)

	scene.Close()
	if tagValue.n != 1 || auxValue.n != 1 {
		t.Errorf("released tag %d times and aux %d times, want 1 and 1", tagValue.n, auxValue.n)
	}
	if scene.BodyCount() != 0 || scene.ForceCount() != 0 {
		t.Error("scene not empty after Close")
	}
}

func TestOnRemoveObservers(t *testing.T) {
	scene := NewScene()
	a := NewBody(square(0, 0, 1), 1, testColor)
	b := NewBody(square(5, 0, 1), 1, testColor)
	scene.AddBody(a)
	scene.AddBody(b)

	var seen []*Body
	scene.OnRemove(func(body *Body) { seen = append(seen, body) })

	b.Remove()
	a.Remove()
	scene.Tick(0)

	if len(seen) != 2 || seen[0] != a || seen[1] != b {
		t.Errorf("observer saw %d bodies in wrong order", len(seen))
	}
}

func TestOnRemoveObserverAddsBody(t *testing.T) {
	scene := NewScene()
	doomed := NewBody(square(0, 0, 1), 1, testColor)
	keep := NewBody(square(5, 0, 1), 1, testColor)
	scene.AddBody(doomed)
	scene.AddBody(keep)

	debris := NewBody(square(0, 0, 1), 1, testColor)
	debris.SetTag(Tag{Kind: 7, Value: &releaseCounter{}})
	scene.OnRemove(func(*Body) {
		scene.AddBody(debris)
		CreateDrag(scene, 0.1, debris)
	})

	doomed.Remove()
	scene.Tick(0.01)

	if got := scene.BodyCount(); got != 2 {
		t.Fatalf("BodyCount = %d, want 2", got)
	}
	if scene.BodyAt(0) != keep || scene.BodyAt(1) != debris {
		t.Error("observer body not appended after survivors")
	}
	if got := scene.ForceCount(); got != 1 {
		t.Errorf("ForceCount = %d, want 1", got)
	}

	// The added body is a regular member: removing it frees its tag and drag.
	debris.Remove()
	scene.Tick(0.01)
	if got := debris.Tag().Value.(*releaseCounter).n; got != 1 {
		t.Errorf("debris tag released %d times, want 1", got)
	}
	if got := scene.ForceCount(); got != 0 {
		t.Errorf("ForceCount = %d, want 0", got)
	}
}

func TestCreatorRegisteredDuringTick(t *testing.T) {
	scene := NewScene()
	runs := 0
	registered := false
	scene.AddForceCreator(func() {
		if !registered {
			registered = true
			scene.AddForceCreator(func() { runs++ }, nil)
		}
	}, nil)

	scene.Tick(0)
	if runs != 1 {
		t.Errorf("new creator ran %d times in the registering tick, want 1", runs)
	}
	scene.Tick(0)
	if runs != 2 {
		t.Errorf("new creator ran %d times after two ticks, want 2", runs)
	}
}

func TestSceneInvalidAccess(t *testing.T) {
	scene := NewScene()
	cases := map[string]func(){
		"nil body":      func() { scene.AddBody(nil) },
		"body index":    func() { scene.BodyAt(0) },
		"binding index": func() { scene.BindingAt(-1) },
		"nil creator":   func() { scene.AddForceCreator(nil, nil) },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			fn()
		})
	}
}
