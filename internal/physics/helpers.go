package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// mulMat3 multiplies a 3x3 tensor by a vector.
func mulMat3(m mgl32.Mat3, v rl.Vector3) rl.Vector3 {
	r := m.Mul3x1(mgl32.Vec3{v.X, v.Y, v.Z})
	return rl.Vector3{X: r[0], Y: r[1], Z: r[2]}
}

func lengthSqr(v rl.Vector3) float32 {
	return rl.Vector3DotProduct(v, v)
}

func sqrtf(x float32) float32 {
	return math32.Sqrt(x)
}

func absf(x float32) float32 {
	return math32.Abs(x)
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func axisValue(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

var infinity = math32.Inf(1)
