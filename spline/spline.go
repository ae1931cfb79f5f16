/*
Package spline implements piecewise polynomials over strictly increasing break
points. Each interval i carries its own polynomial in the local variable
(x - Break[i]), stored in the power basis: row k of column i of the coefficient
matrix multiplies (x - Break[i])^k.

A Spline is immutable after construction. Derivative and Antiderivative return
new splines of adjacent order, and accessors hand out copies.
*/
package spline

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/intergrowth/types"
	"github.com/notargets/intergrowth/utils"
)

type Spline struct {
	order int        // Polynomial degree
	x     []float64  // Break points, strictly increasing
	c     *mat.Dense // (order+1) x (len(x)-1)
}

// New copies the break points and coefficients into a new spline. The order is
// taken from the number of coefficient rows.
func New(breaks []float64, coeffs mat.Matrix) (s *Spline, err error) {
	if len(breaks) < 2 {
		err = types.NewInterpolationError(types.InsufficientLength,
			"a spline needs at least two break points, have %d", len(breaks))
		return
	}
	for i := 0; i < len(breaks)-1; i++ {
		if breaks[i+1] <= breaks[i] {
			err = types.NewInterpolationError(types.NonMonotonicInput,
				"break points %d and %d are not increasing: %g, %g", i, i+1, breaks[i], breaks[i+1])
			return
		}
	}
	_, nc := coeffs.Dims()
	if nc != len(breaks)-1 {
		err = fmt.Errorf("coefficient matrix has %d columns, need one per interval (%d)",
			nc, len(breaks)-1)
		return
	}
	x := make([]float64, len(breaks))
	copy(x, breaks)
	s = newSpline(x, mat.DenseCopyOf(coeffs))
	return
}

// newSpline takes ownership of x and c
func newSpline(x []float64, c *mat.Dense) *Spline {
	nr, _ := c.Dims()
	return &Spline{
		order: nr - 1,
		x:     x,
		c:     c,
	}
}

func (s *Spline) Order() int { return s.order }

// Len is the number of break points
func (s *Spline) Len() int { return len(s.x) }

func (s *Spline) Intervals() int { return len(s.x) - 1 }

func (s *Spline) BreakPoints() (x []float64) {
	x = make([]float64, len(s.x))
	copy(x, s.x)
	return
}

// Coefficients returns a copy of the (Order+1) x (Len-1) coefficient matrix
func (s *Spline) Coefficients() *mat.Dense {
	return mat.DenseCopyOf(s.c)
}

func (s *Spline) Coefficient(power, interval int) float64 {
	return s.c.At(power, interval)
}

func (s *Spline) Domain() (lo, hi float64) {
	return s.x[0], s.x[len(s.x)-1]
}

func (s *Spline) InDomain(x float64) bool {
	return x >= s.x[0] && x <= s.x[len(s.x)-1]
}

/*
Interval returns the first interval whose closed range contains x, so an
interior break point belongs to the interval on its left. Values outside of
the domain map to the nearest end interval.
*/
func (s *Spline) Interval(x float64) (i int) {
	i = sort.SearchFloat64s(s.x, x) - 1
	if i < 0 {
		i = 0
	}
	if i > len(s.x)-2 {
		i = len(s.x) - 2
	}
	return
}

// EvaluateInterval evaluates the polynomial of one interval at x, without any range check
func (s *Spline) EvaluateInterval(x float64, interval int) (y float64) {
	dx := x - s.x[interval]
	for k := 0; k <= s.order; k++ {
		y += s.c.At(k, interval) * utils.POW(dx, k)
	}
	return
}

func (s *Spline) outOfDomain(what string, x float64) error {
	return types.NewInterpolationError(types.OutOfDomain,
		"%s out of range %g <= %g <= %g", what, s.x[0], x, s.x[len(s.x)-1])
}

func (s *Spline) Evaluate(x float64, g types.Guarantees) (y float64, err error) {
	if !g.Has(types.InBounds) && !s.InDomain(x) {
		err = s.outOfDomain("value", x)
		return
	}
	y = s.EvaluateInterval(x, s.Interval(x))
	return
}

/*
EvaluateBatch evaluates a non-decreasing sequence of values in a single pass
over the intervals. Unless the matching guarantees are asserted, every value is
checked against the domain and the sequence is checked for order.
*/
func (s *Spline) EvaluateBatch(xs []float64, g types.Guarantees) (ys []float64, err error) {
	if !g.Has(types.InBounds) {
		for _, x := range xs {
			if !s.InDomain(x) {
				err = s.outOfDomain("value", x)
				return
			}
		}
	}
	if len(xs) == 0 {
		ys = []float64{}
		return
	}
	if !g.Has(types.Monotonous) {
		for i := 0; i < len(xs)-1; i++ {
			if xs[i] > xs[i+1] {
				err = types.NewInterpolationError(types.NonMonotonicInput,
					"input array is not monotonous at indices %d and %d (%g > %g)", i, i+1, xs[i], xs[i+1])
				return
			}
		}
	}
	var (
		last     = len(s.x) - 2
		interval = s.Interval(xs[0])
	)
	ys = make([]float64, len(xs))
	for i, x := range xs {
		for interval < last && x > s.x[interval+1] {
			interval++
		}
		ys[i] = s.EvaluateInterval(x, interval)
	}
	return
}

// Sample evaluates the spline at N evenly spaced points spanning the domain
func (s *Spline) Sample(N int) (ps types.PointSeries) {
	lo, hi := s.Domain()
	xs := utils.Linspace(lo, hi, N)
	ys, _ := s.EvaluateBatch(xs, types.All)
	return types.NewPointSeries(xs, ys)
}

func (s *Spline) String() string {
	return fmt.Sprintf("Spline[order=%d, breaks=%v]\n%v", s.order, s.x,
		mat.Formatted(s.c, mat.Squeeze()))
}
