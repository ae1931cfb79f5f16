/*
Package pchip builds monotonicity preserving piecewise cubic Hermite
interpolants. Node slopes follow Fritsch and Carlson: a weighted harmonic mean
of the neighbouring secants in the interior, zero at local extrema, and a
clamped one sided three point estimate at both ends.
*/
package pchip

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/intergrowth/spline"
	"github.com/notargets/intergrowth/types"
	"github.com/notargets/intergrowth/utils"
)

// BuildPchipSpline returns the cubic interpolant through points.
// Unless guaranteed, it checks for at least three points, sorts a copy by x and
// rejects neighbours whose x values are closer than utils.NODETOL.
func BuildPchipSpline(points types.PointSeries, g types.Guarantees) (s *spline.Spline, err error) {
	var (
		L = len(points)
	)
	if !g.Has(types.SufficientLength) && L < 3 {
		err = types.NewInterpolationError(types.InsufficientLength,
			"at least three points are needed, have %d", L)
		return
	}
	values := points
	if !g.Has(types.Sorted) {
		values = points.SortedCopy()
	}
	if !g.Has(types.Monotonous) {
		for i := 0; i < L-1; i++ {
			x1, x2 := values[i].X, values[i+1].X
			if utils.IsClose(x1, x2, utils.NODETOL) {
				err = types.NewInterpolationError(types.NonMonotonicInput,
					"x values %g and %g at indices %d and %d are equal or too close", x1, x2, i, i+1)
				return
			}
		}
	}
	var (
		h, m = secants(values)
		d    = slopes(h, m)
		c    = mat.NewDense(4, L-1, nil)
	)
	for i := 0; i < L-1; i++ {
		t := (d[i] + d[i+1] - 2*m[i]) / h[i]
		c.Set(3, i, t/h[i])
		c.Set(2, i, (m[i]-d[i])/h[i]-t)
		c.Set(1, i, d[i])
		c.Set(0, i, values[i].Y)
	}
	return spline.New(values.Grades(), c)
}

// Slopes returns the node derivatives BuildPchipSpline would use for sorted, distinct points
func Slopes(points types.PointSeries) (d []float64) {
	if len(points) < 3 {
		return nil
	}
	h, m := secants(points)
	return slopes(h, m)
}

func secants(values types.PointSeries) (h, m []float64) {
	L := len(values)
	h, m = make([]float64, L-1), make([]float64, L-1)
	for i := 0; i < L-1; i++ {
		h[i] = values[i+1].X - values[i].X
		m[i] = (values[i+1].Y - values[i].Y) / h[i]
	}
	return
}

func slopes(h, m []float64) (d []float64) {
	var (
		L = len(h) + 1
	)
	d = make([]float64, L)
	for i := 0; i < L-2; i++ {
		if utils.Sign(m[i+1]) != utils.Sign(m[i]) ||
			utils.IsClose(m[i+1], 0, utils.ZEROTOL) || utils.IsClose(m[i], 0, utils.ZEROTOL) {
			continue
		}
		w1, w2 := 2*h[i+1]+h[i], h[i+1]+2*h[i]
		d[i+1] = (w1 + w2) / (w1/m[i] + w2/m[i+1])
	}
	d[0] = edgeSlope(h[0], h[1], m[0], m[1])
	d[L-1] = edgeSlope(h[L-2], h[L-3], m[L-2], m[L-3])
	return
}

// edgeSlope is the one sided estimate at an end node, h0 and m0 belong to the end interval
func edgeSlope(h0, h1, m0, m1 float64) (d float64) {
	d = ((2*h0+h1)*m0 - h0*m1) / (h0 + h1)
	switch {
	case utils.Sign(d) != utils.Sign(m0):
		d = 0
	case utils.Sign(m0) != utils.Sign(m1) && math.Abs(d) > 3*math.Abs(m0):
		d = 3 * m0
	}
	return
}
