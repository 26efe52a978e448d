// Package safe provides helpers for safe numeric conversions with overflow checks.
package safe

import (
	"fmt"
	"math"
)

// Integer lists the integer kinds accepted by the conversions in this package.
type Integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// Int converts a wire-supplied length or count to int, rejecting values the platform int cannot hold.
func Int[T Integer](v T) (int, error) {
	switch value := any(v).(type) {
	case int:
		return value, nil
	case int32:
		return int(value), nil
	case int64:
		if value > math.MaxInt || value < math.MinInt {
			return 0, fmt.Errorf("value %d out of int range", v)
		}
		return int(value), nil
	case uint:
		if value > math.MaxInt {
			return 0, fmt.Errorf("value %d out of int range", v)
		}
		return int(value), nil
	case uint32:
		if uint64(value) > math.MaxInt {
			return 0, fmt.Errorf("value %d out of int range", v)
		}
		return int(value), nil
	case uint64:
		if value > math.MaxInt {
			return 0, fmt.Errorf("value %d out of int range", v)
		}
		return int(value), nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

// Len returns len-style counts as uint64. Lengths are never negative, so the conversion cannot fail.
func Len(n int) uint64 {
	if n < 0 {
		return 0
	}
	return uint64(n)
}
