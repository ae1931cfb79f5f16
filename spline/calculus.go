package spline

import (
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/intergrowth/types"
)

// Derivative differentiates every interval termwise. The derivative of an order
// zero spline is the zero spline of order zero.
func (s *Spline) Derivative() *Spline {
	var (
		nIntervals = len(s.x) - 1
		x          = s.BreakPoints()
	)
	if s.order == 0 {
		return newSpline(x, mat.NewDense(1, nIntervals, nil))
	}
	c := mat.NewDense(s.order, nIntervals, nil)
	for power := 1; power <= s.order; power++ {
		for i := 0; i < nIntervals; i++ {
			c.Set(power-1, i, float64(power)*s.c.At(power, i))
		}
	}
	return newSpline(x, c)
}

/*
Antiderivative integrates every interval termwise. The constant of interval
zero is zero, the constant of every later interval is the value of its left
neighbour at the shared break point, so the result is continuous and
F(x) - F(Break[0]) is the integral from the left end of the domain.
*/
func (s *Spline) Antiderivative() *Spline {
	var (
		nIntervals = len(s.x) - 1
		x          = s.BreakPoints()
		c          = mat.NewDense(s.order+2, nIntervals, nil)
	)
	for power := 0; power <= s.order; power++ {
		for i := 0; i < nIntervals; i++ {
			c.Set(power+1, i, s.c.At(power, i)/float64(power+1))
		}
	}
	F := newSpline(x, c)
	for i := 1; i < nIntervals; i++ {
		c.Set(0, i, F.EvaluateInterval(x[i], i-1))
	}
	return F
}

/*
Integrate returns the definite integral from a to b, negated when b < a. An
antiderivative of the receiver can be passed in to amortise repeated calls,
nil computes one on the fly. Unless InBounds is asserted both limits are
checked against the domain.
*/
func (s *Spline) Integrate(a, b float64, g types.Guarantees, antiderivative *Spline) (area float64, err error) {
	if !g.Has(types.InBounds) {
		if !s.InDomain(a) {
			err = s.outOfDomain("lower bound", a)
			return
		}
		if !s.InDomain(b) {
			err = s.outOfDomain("upper bound", b)
			return
		}
	}
	var (
		negate       = b < a
		lower, upper = a, b
		F            = antiderivative
	)
	if negate {
		lower, upper = b, a
	}
	if F == nil {
		F = s.Antiderivative()
	}
	iL, iU := s.Interval(lower), s.Interval(upper)
	if iL == iU {
		area = F.EvaluateInterval(upper, iL) - F.EvaluateInterval(lower, iL)
	} else {
		area = F.EvaluateInterval(s.x[iL+1], iL) - F.EvaluateInterval(lower, iL) +
			F.EvaluateInterval(upper, iU) - F.EvaluateInterval(s.x[iU], iU)
		for i := iL + 1; i < iU; i++ {
			area += F.EvaluateInterval(s.x[i+1], i) - F.EvaluateInterval(s.x[i], i)
		}
	}
	if negate {
		area = -area
	}
	return
}
