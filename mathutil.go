package interact3d

import "math"

const piF = float32(math.Pi)

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func atan2f(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

func sqrtf(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func acosf(v float32) float32 {
	return float32(math.Acos(float64(v)))
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
