/*
Package bounds turns a washability step function into the list of movable
control points the curve optimizer searches over. Every step contributes a
Horizontal point sliding along the tread and a Vertical point sliding up the
riser, the path starts at (0,0) and ends at (1,1), both fixed.
*/
package bounds

import (
	"github.com/notargets/intergrowth/types"
	"github.com/notargets/intergrowth/utils"
)

var (
	Origin   = types.Point{X: 0, Y: 0}
	Terminus = types.Point{X: 1, Y: 1}
)

/*
Validate checks the step function and the two grades unless the matching
guarantee is asserted:
  - SufficientLength: at least one step
  - InBounds: the anchor, both grades and every coordinate lie in [0,1]
  - Monotonous: (Anchor,0) followed by the points is strictly increasing in x and in y
*/
func Validate(sf types.StepFunction, startGrade, endGrade float64, g types.Guarantees) (err error) {
	if !g.Has(types.SufficientLength) && len(sf.Points) < 1 {
		err = types.NewInterpolationError(types.InsufficientLength,
			"step function has no points")
		return
	}
	if !g.Has(types.InBounds) {
		for _, v := range []struct {
			name string
			val  float64
		}{{"anchor", sf.Anchor}, {"start grade", startGrade}, {"end grade", endGrade}} {
			if !utils.InUnitInterval(v.val) {
				err = types.NewInterpolationError(types.OutOfDomain,
					"%s %g is outside of [0,1]", v.name, v.val)
				return
			}
		}
		for i, p := range sf.Points {
			if !p.InUnitSquare() {
				err = types.NewInterpolationError(types.OutOfDomain,
					"point %d %s is outside of the unit square", i, p)
				return
			}
		}
	}
	if !g.Has(types.Monotonous) {
		ext := sf.Extended()
		for i := 1; i < len(ext); i++ {
			p, q := ext[i-1], ext[i]
			if q.X <= p.X || q.Y <= p.Y {
				err = types.NewInterpolationError(types.NonMonotonicInput,
					"step function is not strictly increasing at indices %d and %d: %s, %s", i-1, i, p, q)
				return
			}
		}
	}
	return
}

/*
ComputeBounds lays out the bounded point list for a step function. With the
extended list E = (0,0), p0 ... p_last, (1,1), every pair (E[i-1], E[i]) for
i = 1 ... len(E)-2 contributes
  - a Vertical point at (x[i-1], midpoint of y[i-1] and y[i]) free in [y[i-1], y[i]],
    except for i = 1 where it would sit on the fixed origin
  - a Horizontal point at (h, y[i]) free in [x[i-1], x[i]], with h = startGrade
    for the first pair, endGrade for the last and the tread midpoint otherwise
The result starts and ends with the fixed path endpoints and alternates
Horizontal and Vertical in between.
*/
func ComputeBounds(sf types.StepFunction, startGrade, endGrade float64, g types.Guarantees) (bpl types.BoundedPointList, err error) {
	if err = Validate(sf, startGrade, endGrade, g); err != nil {
		return
	}
	var (
		ext  = make(types.PointSeries, 0, len(sf.Points)+2)
		last int
	)
	ext = append(ext, Origin)
	ext = append(ext, sf.Points...)
	ext = append(ext, Terminus)
	last = len(ext) - 2
	bpl = make(types.BoundedPointList, 0, 2*len(sf.Points)+1)
	bpl = append(bpl, types.NewFixedPoint(Origin))
	for i := 1; i <= last; i++ {
		p, q := ext[i-1], ext[i]
		if i > 1 {
			bpl = append(bpl, types.BoundedPoint{
				Point: types.Point{X: p.X, Y: 0.5 * (p.Y + q.Y)},
				Lower: p.Y,
				Upper: q.Y,
				DOF:   types.Vertical,
			})
		}
		var h float64
		switch i {
		case 1:
			h = startGrade
		case last:
			h = endGrade
		default:
			h = 0.5 * (p.X + q.X)
		}
		bpl = append(bpl, types.BoundedPoint{
			Point: types.Point{X: h, Y: q.Y},
			Lower: p.X,
			Upper: q.X,
			DOF:   types.Horizontal,
		})
	}
	bpl = append(bpl, types.NewFixedPoint(Terminus))
	return
}

// BreakPoints returns the positions of the bounded points, the knots of the initial curve
func BreakPoints(bpl types.BoundedPointList) types.PointSeries {
	return bpl.Points()
}
