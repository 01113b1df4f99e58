package types

// ClampInt clamps v into [min, max]. Used to coerce out-of-range plan
// fields into the catalog's valid range instead of failing.
func ClampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
