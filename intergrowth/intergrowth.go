/*
Package intergrowth ties the pieces together for a washability step function:
the bounded control points, the initial PCHIP curve through them and the area
balanced curve found by the optimizer.
*/
package intergrowth

import (
	"github.com/notargets/intergrowth/bounds"
	"github.com/notargets/intergrowth/optimizer"
	"github.com/notargets/intergrowth/pchip"
	"github.com/notargets/intergrowth/spline"
	"github.com/notargets/intergrowth/types"
)

type Curve struct {
	Initial *spline.Spline
	Bounds  types.BoundedPointList
}

/*
BuildInitialCurve computes the bounded points of the step function and the
PCHIP curve through their starting positions. The grades are caller supplied,
so the curve construction still sorts and checks for coincident points.
*/
func BuildInitialCurve(sf types.StepFunction, startGrade, endGrade float64, g types.Guarantees) (c *Curve, err error) {
	var (
		bpl types.BoundedPointList
		s   *spline.Spline
	)
	if bpl, err = bounds.ComputeBounds(sf, startGrade, endGrade, g); err != nil {
		return
	}
	if s, err = pchip.BuildPchipSpline(bounds.BreakPoints(bpl), types.NewGuarantees(types.SufficientLength)); err != nil {
		return
	}
	c = &Curve{
		Initial: s,
		Bounds:  bpl,
	}
	return
}

func (c *Curve) Optimize(settings optimizer.Settings) *optimizer.Solution {
	return optimizer.Minimize(c.Bounds, settings)
}

// Residual is the area mismatch of the curve on both sides of one Vertical point
type Residual struct {
	Index int
	Point types.Point
	Left  float64
	Right float64
}

func (r Residual) Net() float64 { return r.Right - r.Left }

// ResidualAreas scores s against the bounded points at their current positions
func ResidualAreas(bpl types.BoundedPointList, s *spline.Spline) (rs []Residual) {
	for _, b := range optimizer.Balances(s, bpl) {
		rs = append(rs, Residual{
			Index: b.Index,
			Point: bpl[b.Index].Point,
			Left:  b.Left,
			Right: b.Right,
		})
	}
	return
}

/*
MedianGrade returns the point on s where the area under the curve to its left
equals the area between the curve and the line y = s(end) to its right. The
balance is linear in x, so x = end - Integral(s) / s(end).
*/
func MedianGrade(s *spline.Spline) (p types.Point, err error) {
	var (
		area, top float64
		lo, hi    = s.Domain()
	)
	if area, err = s.Integrate(lo, hi, types.None, nil); err != nil {
		return
	}
	if top, err = s.Evaluate(hi, types.None); err != nil {
		return
	}
	if top <= 0 {
		err = types.NewInterpolationError(types.OutOfDomain,
			"curve ends at %g, the median grade needs a positive end value", top)
		return
	}
	p.X = hi - area/top
	p.Y, err = s.Evaluate(p.X, types.None)
	return
}
