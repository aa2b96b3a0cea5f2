package math

// Clamp01 clamps t to the [0, 1] range.
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// EaseOutQuart is the quartic ease-out curve 1-(1-t)^4.
// Decelerates toward the endpoint; t is expected in [0, 1].
func EaseOutQuart(t float64) float64 {
	u := 1 - Clamp01(t)
	return 1 - u*u*u*u
}
