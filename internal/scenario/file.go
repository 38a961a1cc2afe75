package scenario

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/0x5844/arcade-physics/geom"
	"github.com/0x5844/arcade-physics/physics"
)

// File is a scene description. JSON files are accepted as YAML.
type File struct {
	Name     string      `yaml:"name"`
	Duration float64     `yaml:"duration"`
	Width    float64     `yaml:"width"`
	Height   float64     `yaml:"height"`
	Bodies   []BodySpec  `yaml:"bodies"`
	Forces   []ForceSpec `yaml:"forces"`
	Track    []string    `yaml:"track"`
}

type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec) vector() geom.Vector2D {
	return geom.NewVector2D(v.X, v.Y)
}

type ShapeSpec struct {
	Type   string  `yaml:"type"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`
	Sides  int     `yaml:"sides"`
	Points []Vec   `yaml:"points"`
}

type BodySpec struct {
	Name          string    `yaml:"name"`
	Shape         ShapeSpec `yaml:"shape"`
	Position      Vec       `yaml:"position"`
	Velocity      Vec       `yaml:"velocity"`
	RotationSpeed float64   `yaml:"rotation_speed"`
	Mass          float64   `yaml:"mass"`
	Color         string    `yaml:"color"`
	// Group is a free-form label; bodies of tracked groups report their
	// removal position.
	Group string `yaml:"group"`
}

type ForceSpec struct {
	Type     string   `yaml:"type"`
	Bodies   []string `yaml:"bodies"`
	Constant float64  `yaml:"constant"`
}

const (
	defaultRegularSides = 12
	maxRegularSides     = 256
)

// positive reports whether x is a finite number above zero.
func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}

func finite(v Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// forceArity is the number of bodies each force type binds.
var forceArity = map[string]int{
	"gravity":                         2,
	"spring":                          2,
	"drag":                            1,
	"physics-collision":               2,
	"destructive-collision":           2,
	"one-sided-destructive-collision": 2,
}

// LoadFile reads and validates a scene file.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	sf, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sf, nil
}

// Parse decodes a scene description and validates it. Unknown keys are an
// error.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sf File
	if err := dec.Decode(&sf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty scene file")
		}
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if err := sf.Validate(); err != nil {
		return nil, err
	}
	return &sf, nil
}

// Validate checks everything Build would otherwise panic on.
func (sf *File) Validate() error {
	if len(sf.Bodies) == 0 {
		return fmt.Errorf("scene has no bodies")
	}
	if sf.Duration < 0 {
		return fmt.Errorf("negative duration %v", sf.Duration)
	}

	names := make(map[string]bool, len(sf.Bodies))
	for i, b := range sf.Bodies {
		label := b.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		} else if names[b.Name] {
			return fmt.Errorf("body %s: duplicate name", b.Name)
		}
		names[b.Name] = true

		if math.IsNaN(b.Mass) || b.Mass <= 0 {
			return fmt.Errorf("body %s: mass must be positive or .inf, got %v", label, b.Mass)
		}
		if err := b.Shape.validate(); err != nil {
			return fmt.Errorf("body %s: %w", label, err)
		}
		if !finite(b.Position) || !finite(b.Velocity) {
			return fmt.Errorf("body %s: position and velocity must be finite", label)
		}
		if math.IsNaN(b.RotationSpeed) || math.IsInf(b.RotationSpeed, 0) {
			return fmt.Errorf("body %s: rotation speed must be finite", label)
		}
		if b.Color != "" {
			if _, err := colorful.Hex(b.Color); err != nil {
				return fmt.Errorf("body %s: color %q: %w", label, b.Color, err)
			}
		}
	}

	for i, f := range sf.Forces {
		arity, ok := forceArity[f.Type]
		if !ok {
			return fmt.Errorf("force #%d: unknown type %q", i, f.Type)
		}
		if len(f.Bodies) != arity {
			return fmt.Errorf("force #%d (%s): needs %d bodies, got %d", i, f.Type, arity, len(f.Bodies))
		}
		for _, name := range f.Bodies {
			if !names[name] || name == "" {
				return fmt.Errorf("force #%d (%s): unknown body %q", i, f.Type, name)
			}
		}
		if f.Type == "physics-collision" && (math.IsNaN(f.Constant) || f.Constant < 0 || f.Constant > 1) {
			return fmt.Errorf("force #%d: elasticity %v outside [0, 1]", i, f.Constant)
		}
	}
	return nil
}

func (s ShapeSpec) validate() error {
	switch strings.ToLower(s.Type) {
	case "rect", "rectangle":
		if !positive(s.Width) || !positive(s.Height) {
			return fmt.Errorf("rect needs finite positive width and height")
		}
	case "regular", "circle":
		if !positive(s.Radius) {
			return fmt.Errorf("%s needs a finite positive radius", s.Type)
		}
		if s.Sides != 0 && (s.Sides < geom.MinVertices || s.Sides > maxRegularSides) {
			return fmt.Errorf("%s needs between %d and %d sides", s.Type, geom.MinVertices, maxRegularSides)
		}
	case "polygon":
		if len(s.Points) < geom.MinVertices {
			return fmt.Errorf("polygon needs at least %d points", geom.MinVertices)
		}
		for _, p := range s.Points {
			if !finite(p) {
				return fmt.Errorf("polygon point (%v, %v) is not finite", p.X, p.Y)
			}
		}
		if geom.NewPolygon(s.vertices(), geom.Zero, 0, colorful.Color{}).Area() == 0 {
			return fmt.Errorf("polygon has zero area")
		}
	default:
		return fmt.Errorf("unknown shape type %q", s.Type)
	}
	return nil
}

func (s ShapeSpec) vertices() []geom.Vector2D {
	switch strings.ToLower(s.Type) {
	case "rect", "rectangle":
		return geom.Rectangle(s.Width, s.Height)
	case "polygon":
		points := make([]geom.Vector2D, len(s.Points))
		for i, p := range s.Points {
			points[i] = p.vector()
		}
		return points
	default:
		sides := s.Sides
		if sides == 0 {
			sides = defaultRegularSides
		}
		return geom.RegularPolygon(geom.Zero, s.Radius, sides)
	}
}

// Build creates the simulation. Each body is placed with its centroid at
// its position.
func (sf *File) Build() (*Simulation, error) {
	if err := sf.Validate(); err != nil {
		return nil, err
	}

	sim := newSimulation()
	sim.Name = sf.Name
	sim.Duration = sf.Duration
	if sf.Width > 0 {
		sim.Width = sf.Width
	}
	if sf.Height > 0 {
		sim.Height = sf.Height
	}

	groups := map[string]physics.Kind{}
	kindFor := func(group string) physics.Kind {
		if group == "" {
			return physics.KindNone
		}
		k, ok := groups[group]
		if !ok {
			k = KindProjectile + 1 + physics.Kind(len(groups))
			groups[group] = k
		}
		return k
	}

	byName := make(map[string]*physics.Body, len(sf.Bodies))
	for i, bs := range sf.Bodies {
		color := palette(i, len(sf.Bodies))
		if bs.Color != "" {
			color, _ = colorful.Hex(bs.Color)
		}
		b := addBody(sim.Scene, bs.Shape.vertices(), bs.Position.vector(), bs.Mass, color, kindFor(bs.Group))
		b.SetVelocity(bs.Velocity.vector())
		b.SetRotationSpeed(bs.RotationSpeed)
		if bs.Name != "" {
			byName[bs.Name] = b
		}
	}

	for _, group := range sf.Track {
		sim.Scene.TrackRemovals(kindFor(group))
	}

	for _, f := range sf.Forces {
		bodies := make([]*physics.Body, len(f.Bodies))
		for i, name := range f.Bodies {
			bodies[i] = byName[name]
		}
		switch f.Type {
		case "gravity":
			physics.CreateNewtonianGravity(sim.Scene, f.Constant, bodies[0], bodies[1])
		case "spring":
			physics.CreateSpring(sim.Scene, f.Constant, bodies[0], bodies[1])
		case "drag":
			physics.CreateDrag(sim.Scene, f.Constant, bodies[0])
		case "physics-collision":
			physics.CreatePhysicsCollision(sim.Scene, bodies[0], bodies[1], f.Constant)
		case "destructive-collision":
			physics.CreateDestructiveCollision(sim.Scene, bodies[0], bodies[1])
		case "one-sided-destructive-collision":
			physics.CreateOneSidedDestructiveCollision(sim.Scene, bodies[0], bodies[1])
		}
	}
	return sim, nil
}
