package utils

import (
	"math"
)

func POW(x float64, pp int) (y float64) {
	var (
		p       = pp
		flipped bool
	)
	if pp > 8 || pp < -8 {
		goto MATHPOW
	}

	if p < 0 {
		p = -pp
		flipped = true
	}
	switch p {
	case 0:
		y = 1
	case 1:
		y = x
	case 2:
		y = x * x
	case 3:
		y = x * x * x
	case 4:
		y = x * x
		y = y * y
	case 5:
		y = x * x
		y = y * y * x
	case 6:
		y = x * x
		y = y * y * y
	case 7:
		y = x * x
		y = y * y * y * x
	case 8:
		y = x * x
		y = y * y * y * y
	}
	if flipped {
		y = 1. / y
	}
	return

MATHPOW:
	y = math.Pow(x, float64(pp))
	return
}

// Sign returns -1, 0 or 1
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func IsClose(a, b, tol float64) bool {
	return a == b || math.Abs(a-b) <= tol
}

func InUnitInterval(x float64) bool {
	return x >= 0 && x <= 1
}

func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// Linspace returns N evenly spaced values from start to end inclusive
func Linspace(start, end float64, N int) (v []float64) {
	switch {
	case N <= 0:
		return []float64{}
	case N == 1:
		return []float64{start}
	}
	v = make([]float64, N)
	delta := (end - start) / float64(N-1)
	for i := range v {
		v[i] = start + delta*float64(i)
	}
	v[N-1] = end
	return
}
