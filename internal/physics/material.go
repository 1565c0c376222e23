package physics

// CombineMode selects how two materials' coefficients are merged. When two
// materials disagree, the higher mode wins.
type CombineMode uint8

const (
	CombineAverage CombineMode = iota
	CombineMinimum
	CombineMultiply
	CombineMaximum
)

var combineModeNames = [...]string{"average", "minimum", "multiply", "maximum"}

func (m CombineMode) String() string {
	if int(m) < len(combineModeNames) {
		return combineModeNames[m]
	}
	return "unknown"
}

// ParseCombineMode maps a mode name back to its value.
func ParseCombineMode(name string) (CombineMode, bool) {
	for i, n := range combineModeNames {
		if n == name {
			return CombineMode(i), true
		}
	}
	return CombineAverage, false
}

// Combine merges two coefficients with the given mode.
func Combine(a, b float32, mode CombineMode) float32 {
	switch mode {
	case CombineMinimum:
		return min(a, b)
	case CombineMultiply:
		return a * b
	case CombineMaximum:
		return max(a, b)
	default:
		return (a + b) / 2
	}
}

// Material holds the surface response coefficients of a collider.
type Material struct {
	Restitution        float32
	StaticFriction     float32
	DynamicFriction    float32
	RestitutionCombine CombineMode
	FrictionCombine    CombineMode
}

// DefaultMaterial is an inelastic surface with moderate friction.
func DefaultMaterial() Material {
	return Material{
		Restitution:     0,
		StaticFriction:  0.6,
		DynamicFriction: 0.5,
	}
}

// combineMaterials returns the restitution, static friction and dynamic
// friction coefficients of a contact between two materials.
func combineMaterials(a, b *Material) (restitution, staticFriction, dynamicFriction float32) {
	restitutionMode := max(a.RestitutionCombine, b.RestitutionCombine)
	frictionMode := max(a.FrictionCombine, b.FrictionCombine)
	restitution = Combine(a.Restitution, b.Restitution, restitutionMode)
	staticFriction = Combine(a.StaticFriction, b.StaticFriction, frictionMode)
	dynamicFriction = Combine(a.DynamicFriction, b.DynamicFriction, frictionMode)
	return
}
