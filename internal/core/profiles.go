package core

// StepIndex moves current by direction within [0, total).
// With wrap the result cycles around the ends; without it a step past either end
// leaves current unchanged and reports ok=false.
func StepIndex(current, direction, total int, wrap bool) (next int, ok bool) {
	if total <= 0 {
		return 0, false
	}
	next = current + direction
	if wrap {
		next %= total
		if next < 0 {
			next += total
		}
		return next, true
	}
	if next < 0 || next >= total {
		return current, false
	}
	return next, true
}

// ClampIndex pulls i into [0, total). An empty range clamps to 0.
func ClampIndex(i, total int) int {
	if total <= 0 || i < 0 {
		return 0
	}
	if i >= total {
		return total - 1
	}
	return i
}
