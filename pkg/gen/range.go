package gen

import "fmt"

// Integer is the set of integer types FromRange can draw.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32
}

// Float is the set of floating point types FromRange can draw.
type Float interface {
	~float32 | ~float64
}

// Number is any type FromRange accepts.
type Number interface {
	Integer | Float
}

// FromRange draws uniformly from the closed range [lo, hi].
// Panics if the range is empty.
func FromRange[T Number](lo, hi T) Gen[T] {
	if lo > hi {
		panic(fmt.Sprintf("gen: empty range [%v, %v]", lo, hi))
	}
	return New(func(r *Rand) T {
		return drawInRange(r, lo, hi)
	})
}

func drawInRange[T Number](r *Rand, lo, hi T) T {
	if T(1)/T(2) != 0 {
		// Interpolating keeps both terms finite when hi-lo overflows.
		u := r.Float64()
		v := T(float64(lo)*(1-u) + float64(hi)*u)
		switch {
		case v < lo:
			return lo
		case v > hi:
			return hi
		}
		return v
	}
	// The subtraction may wrap for the full int64 range; the unsigned span is still exact.
	span := uint64(int64(hi) - int64(lo))
	var offset uint64
	if span == ^uint64(0) {
		offset = r.Uint64()
	} else {
		offset = r.Uint64N(span + 1)
	}
	return T(int64(lo) + int64(offset))
}
