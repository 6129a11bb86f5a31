// Package safeconv provides integer conversions that clamp instead of overflowing.
package safeconv

import "math"

// Int64ToInt32 converts v to int32, clamping at the int32 bounds.
func Int64ToInt32(v int64) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}

// IntToInt32 converts v to int32, clamping at the int32 bounds.
func IntToInt32(v int) int32 {
	return Int64ToInt32(int64(v))
}
