// Package scenefile loads simulation scenes described in YAML.
package scenefile

import (
	"fmt"
	"os"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jinzhu/copier"
	"github.com/mlange-42/ark/ecs"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"colony3d/internal/engine"
	"colony3d/internal/physics"
)

// DefaultTimestep is used when a scene does not set one.
const DefaultTimestep float32 = 1.0 / 60.0

// --- YAML types ---

type File struct {
	Name      string                `yaml:"name"`
	Timestep  float32               `yaml:"timestep,omitempty"`
	Gravity   Vec3                  `yaml:"gravity,omitempty"`
	Templates map[string]*ObjectDef `yaml:"templates,omitempty"`
	Objects   []*ObjectDef          `yaml:"objects"`
	Springs   []SpringDef           `yaml:"springs,omitempty"`
}

// Vec3 is written as a three element sequence.
type Vec3 [3]float32

func (v Vec3) vector() rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

type ObjectDef struct {
	Name     string   `yaml:"name"`
	Template string   `yaml:"template,omitempty"`
	Tags     []string `yaml:"tags,omitempty"`

	Position Vec3 `yaml:"position,omitempty"`
	// Rotation is in Euler degrees, applied as pitch (X), yaw (Y), roll (Z).
	Rotation Vec3 `yaml:"rotation,omitempty"`
	Scale    Vec3 `yaml:"scale,omitempty"`

	Static          bool    `yaml:"static,omitempty"`
	Mass            float32 `yaml:"mass,omitempty"`
	Inertia         Vec3    `yaml:"inertia,omitempty"`
	LinearDamping   float32 `yaml:"linearDamping,omitempty"`
	AngularDamping  float32 `yaml:"angularDamping,omitempty"`
	Velocity        Vec3    `yaml:"velocity,omitempty"`
	AngularVelocity Vec3    `yaml:"angularVelocity,omitempty"`

	Collider *ColliderDef `yaml:"collider,omitempty"`
	Material *MaterialDef `yaml:"material,omitempty"`
	Layers   []uint       `yaml:"layers,omitempty"`

	Scripts []ScriptDef `yaml:"scripts,omitempty"`
}

type ColliderDef struct {
	Type string `yaml:"type"`

	// plane
	Normal   Vec3    `yaml:"normal,omitempty"`
	Constant float32 `yaml:"constant,omitempty"`

	// sphere, capsule
	Center Vec3    `yaml:"center,omitempty"`
	Radius float32 `yaml:"radius,omitempty"`

	// box
	Min Vec3 `yaml:"min,omitempty"`
	Max Vec3 `yaml:"max,omitempty"`

	// capsule
	A Vec3 `yaml:"a,omitempty"`
	B Vec3 `yaml:"b,omitempty"`

	// mesh
	Vertices []Vec3   `yaml:"vertices,omitempty"`
	Indices  []uint32 `yaml:"indices,omitempty"`
}

type MaterialDef struct {
	Restitution        float32 `yaml:"restitution"`
	StaticFriction     float32 `yaml:"staticFriction"`
	DynamicFriction    float32 `yaml:"dynamicFriction"`
	RestitutionCombine string  `yaml:"restitutionCombine,omitempty"`
	FrictionCombine    string  `yaml:"frictionCombine,omitempty"`
}

type ScriptDef struct {
	Name  string         `yaml:"name"`
	Props map[string]any `yaml:"props,omitempty"`
}

type SpringDef struct {
	A          string  `yaml:"a,omitempty"`
	B          string  `yaml:"b,omitempty"`
	PointA     Vec3    `yaml:"pointA,omitempty"`
	PointB     Vec3    `yaml:"pointB,omitempty"`
	RestLength float32 `yaml:"restLength"`
	Stiffness  float32 `yaml:"stiffness"`
	Damping    float32 `yaml:"damping,omitempty"`
}

// --- Loading ---

// Read loads and validates a scene file.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a scene, expands templates and validates references.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if f.Timestep <= 0 {
		f.Timestep = DefaultTimestep
	}

	for i, obj := range f.Objects {
		if obj == nil {
			return nil, fmt.Errorf("object %d is empty", i)
		}
		if obj.Name == "" {
			return nil, fmt.Errorf("object %d has no name", i)
		}
		expanded, err := f.expand(obj)
		if err != nil {
			return nil, err
		}
		f.Objects[i] = expanded
	}

	names := lo.Map(f.Objects, func(obj *ObjectDef, _ int) string { return obj.Name })
	if dup := lo.FindDuplicates(names); len(dup) > 0 {
		return nil, fmt.Errorf("duplicate object names: %s", strings.Join(dup, ", "))
	}

	for i, s := range f.Springs {
		if s.A == "" && s.B == "" {
			return nil, fmt.Errorf("spring %d is attached to nothing", i)
		}
		for _, end := range []string{s.A, s.B} {
			if end != "" && !lo.Contains(names, end) {
				return nil, fmt.Errorf("spring %d references unknown object %q", i, end)
			}
		}
	}

	return &f, nil
}

// expand returns obj with unset fields filled in from its template.
func (f *File) expand(obj *ObjectDef) (*ObjectDef, error) {
	if obj.Template == "" {
		return obj, nil
	}
	tmpl, ok := f.Templates[obj.Template]
	if !ok || tmpl == nil {
		return nil, fmt.Errorf("object %q: unknown template %q", obj.Name, obj.Template)
	}

	// Template collider, material and script definitions are shared, never mutated
	merged := &ObjectDef{}
	if err := copier.Copy(merged, tmpl); err != nil {
		return nil, fmt.Errorf("object %q: copy template: %w", obj.Name, err)
	}
	if err := copier.CopyWithOption(merged, obj, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, fmt.Errorf("object %q: apply overrides: %w", obj.Name, err)
	}
	return merged, nil
}

// --- Building ---

// Loaded is a scene instantiated into an ECS world.
type Loaded struct {
	Scene    *engine.Scene
	Gravity  rl.Vector3
	Timestep float32
	Entities map[string]ecs.Entity
	Bodies   map[string]*physics.RigidBody
	Springs  []*physics.SpringConstraint
}

// Load reads the scene at path and builds it into w.
func Load(path string, w *ecs.World) (*Loaded, error) {
	f, err := Read(path)
	if err != nil {
		return nil, err
	}
	return f.Build(w)
}

// Build creates one entity per object and one per spring.
func (f *File) Build(w *ecs.World) (*Loaded, error) {
	loaded := &Loaded{
		Scene:    engine.NewScene(f.Name),
		Gravity:  f.Gravity.vector(),
		Timestep: f.Timestep,
		Entities: make(map[string]ecs.Entity, len(f.Objects)),
		Bodies:   make(map[string]*physics.RigidBody, len(f.Objects)),
	}

	// Validate everything before touching the world
	objects := make([]*built, 0, len(f.Objects))
	for _, def := range f.Objects {
		b, err := buildObject(def)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", def.Name, err)
		}
		objects = append(objects, b)
	}

	bodies := newBodyMapper(w)
	for _, b := range objects {
		loaded.Scene.AddGameObject(b.object)
		loaded.Entities[b.object.Name] = bodies.create(b)
		loaded.Bodies[b.object.Name] = b.body
	}

	constraints := newConstraintMapper(w)
	for _, def := range f.Springs {
		spring := physics.NewSpringConstraint(def.RestLength, def.Stiffness, def.Damping)
		var refA, refB engine.GameObjectRef
		if def.A != "" {
			spring.AttachA(loaded.Bodies[def.A], def.PointA.vector())
			refA = engine.RefTo(loaded.Scene.FindByName(def.A))
		} else {
			spring.SetPointA(def.PointA.vector())
		}
		if def.B != "" {
			spring.AttachB(loaded.Bodies[def.B], def.PointB.vector())
			refB = engine.RefTo(loaded.Scene.FindByName(def.B))
		} else {
			spring.SetPointB(def.PointB.vector())
		}
		constraints.create(spring, refA, refB)
		loaded.Springs = append(loaded.Springs, spring)
	}

	return loaded, nil
}

type built struct {
	object *engine.GameObject
	body   *physics.RigidBody
}

func buildObject(def *ObjectDef) (*built, error) {
	transform := physics.IdentityTransform()
	transform.Translation = def.Position.vector()
	if def.Rotation != (Vec3{}) {
		transform.Rotation = rl.QuaternionFromEuler(
			def.Rotation[0]*rl.Deg2rad,
			def.Rotation[1]*rl.Deg2rad,
			def.Rotation[2]*rl.Deg2rad,
		)
	}
	if def.Scale != (Vec3{}) {
		transform.Scale = def.Scale.vector()
	}

	var body *physics.RigidBody
	if def.Static {
		body = physics.NewStaticBody()
	} else {
		body = physics.NewRigidBody()
		if def.Mass != 0 {
			body.SetMass(def.Mass)
		}
	}
	body.SetTransform(transform)
	body.LinearDamping = def.LinearDamping
	body.AngularDamping = def.AngularDamping

	if def.Collider != nil {
		collider, err := buildCollider(def.Collider)
		if err != nil {
			return nil, err
		}
		if def.Material != nil {
			collider.Material, err = buildMaterial(def.Material)
			if err != nil {
				return nil, err
			}
		}
		if len(def.Layers) > 0 {
			collider.LayerMask, err = layerMask(def.Layers)
			if err != nil {
				return nil, err
			}
		}
		body.SetCollider(collider)
	}

	if !def.Static {
		if def.Inertia != (Vec3{}) {
			body.SetInertia(diagonal(def.Inertia.vector()))
		} else {
			body.SetInertia(inertiaFor(body.Collider(), body.Mass(), transform.Scale))
		}
		body.SetLinearVelocity(def.Velocity.vector())
		body.SetAngularVelocity(def.AngularVelocity.vector())
	}

	object := engine.NewGameObject(def.Name)
	object.Tags = def.Tags
	object.Transform.Position = transform.Translation
	object.Transform.Rotation = transform.Rotation
	object.Transform.Scale = transform.Scale

	for _, s := range def.Scripts {
		c, err := engine.CreateScript(s.Name, s.Props)
		if err != nil {
			return nil, err
		}
		object.AddComponent(c)
	}

	return &built{object: object, body: body}, nil
}

func buildCollider(def *ColliderDef) (*physics.Collider, error) {
	switch def.Type {
	case "plane":
		normal := def.Normal.vector()
		if def.Normal == (Vec3{}) {
			normal = rl.Vector3{Y: 1}
		}
		return physics.NewPlaneCollider(rl.Vector3Normalize(normal), def.Constant), nil
	case "sphere":
		if def.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be positive, got %v", def.Radius)
		}
		return physics.NewSphereCollider(def.Center.vector(), def.Radius), nil
	case "box":
		lower, upper := def.Min.vector(), def.Max.vector()
		if lower.X >= upper.X || lower.Y >= upper.Y || lower.Z >= upper.Z {
			return nil, fmt.Errorf("box min %v must be below max %v", def.Min, def.Max)
		}
		return physics.NewBoxCollider(lower, upper), nil
	case "capsule":
		if def.Radius <= 0 {
			return nil, fmt.Errorf("capsule radius must be positive, got %v", def.Radius)
		}
		return physics.NewCapsuleCollider(def.A.vector(), def.B.vector(), def.Radius), nil
	case "mesh":
		vertices := lo.Map(def.Vertices, func(v Vec3, _ int) rl.Vector3 { return v.vector() })
		mesh, err := physics.NewTriangleMesh(vertices, def.Indices)
		if err != nil {
			return nil, err
		}
		return physics.NewMeshCollider(mesh), nil
	default:
		return nil, fmt.Errorf("unknown collider type %q", def.Type)
	}
}

func buildMaterial(def *MaterialDef) (physics.Material, error) {
	m := physics.Material{
		Restitution:     def.Restitution,
		StaticFriction:  def.StaticFriction,
		DynamicFriction: def.DynamicFriction,
	}
	var ok bool
	if def.RestitutionCombine != "" {
		if m.RestitutionCombine, ok = physics.ParseCombineMode(def.RestitutionCombine); !ok {
			return m, fmt.Errorf("unknown combine mode %q", def.RestitutionCombine)
		}
	}
	if def.FrictionCombine != "" {
		if m.FrictionCombine, ok = physics.ParseCombineMode(def.FrictionCombine); !ok {
			return m, fmt.Errorf("unknown combine mode %q", def.FrictionCombine)
		}
	}
	return m, nil
}

func layerMask(layers []uint) (uint32, error) {
	var mask uint32
	for _, l := range layers {
		if l >= 32 {
			return 0, fmt.Errorf("layer %d out of range 0-31", l)
		}
		mask |= 1 << l
	}
	return mask, nil
}
