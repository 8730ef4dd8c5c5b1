package interact3d

import "math"

// damp moves current toward target over dt seconds with time constant
// timeConstant, using the standard critically-damped exponential approach
// favored by game-engine smoothing (1 - e^(-dt/tau)). timeConstant <= 0
// snaps directly to target; dt <= 0 leaves current unchanged.
func damp(current, target, timeConstant, dt float32) float32 {
	if timeConstant <= 0 {
		return target
	}
	if dt <= 0 {
		return current
	}
	t := float32(1 - math.Exp(-float64(dt)/float64(timeConstant)))
	return current + (target-current)*t
}

// dampAngle is damp specialized for radians, taking the shortest path
// around the circle before applying the exponential approach.
func dampAngle(current, target, timeConstant, dt float32) float32 {
	delta := wrapAngle(target - current)
	return damp(current, current+delta, timeConstant, dt)
}

// dampDelta damps a raw delta toward zero over dt seconds with time
// constant timeConstant — the fraction of delta *remaining* after dt is
// e^(-dt/tau), not the fraction covered, so this is just damp toward a
// zero target. Used by the sliding behavior's flick decay and the mouse
// wheel scroll behavior, where the quantity being damped is a velocity,
// not a position relative to a fixed target.
func dampDelta(delta, timeConstant, dt float32) float32 {
	return damp(delta, 0, timeConstant, dt)
}

func wrapAngle(a float32) float32 {
	const twoPi = 2 * math.Pi
	for a > math.Pi {
		a -= twoPi
	}
	for a < -math.Pi {
		a += twoPi
	}
	return a
}
