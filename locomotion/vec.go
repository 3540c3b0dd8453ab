package locomotion

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/components"
)

// unitOrZero normalizes v, returning the zero vector for zero input instead of NaN.
func unitOrZero(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/n, v)
}

// flat drops the vertical component.
func flat(v r3.Vec) r3.Vec {
	return r3.Vec{X: v.X, Z: v.Z}
}

// horizontalSpeed is the magnitude of the flat velocity.
func horizontalSpeed(v r3.Vec) float64 {
	return math.Hypot(v.X, v.Z)
}

// turnRight rotates v about the up axis by deg degrees, positive turning right.
func turnRight(v r3.Vec, deg float64) r3.Vec {
	if deg == 0 {
		return v
	}
	return r3.Rotate(v, -deg*math.Pi/180, components.Up)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// perStep scales a per-step multiplicative factor to a step of dt seconds.
// At dt == fixedDT the factor is returned unchanged.
func perStep(f, dt, fixedDT float64) float64 {
	if dt == fixedDT || fixedDT <= 0 {
		return f
	}
	return math.Pow(f, dt/fixedDT)
}
