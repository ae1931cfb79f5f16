package optimizer

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/intergrowth/pchip"
	"github.com/notargets/intergrowth/spline"
	"github.com/notargets/intergrowth/types"
	"github.com/notargets/intergrowth/utils"
)

/*
Problem is the area balance objective over the free coordinates of a bounded
point list. The parameter vector holds one entry per interior point: x for a
Horizontal point, y for a Vertical point. Each entry is confined to the point's
interval, narrowed on both sides by a fraction of its width.
*/
type Problem struct {
	points       types.BoundedPointList
	lower, upper []float64
	x0           []float64
}

func NewProblem(bpl types.BoundedPointList, shrink float64) (p *Problem) {
	var (
		interior = bpl.Interior()
		n        = len(interior)
	)
	p = &Problem{
		points: make(types.BoundedPointList, len(bpl)),
		lower:  make([]float64, n),
		upper:  make([]float64, n),
		x0:     make([]float64, n),
	}
	copy(p.points, bpl)
	for i, bp := range interior {
		margin := shrink * bp.Width()
		p.lower[i], p.upper[i] = bp.Lower+margin, bp.Upper-margin
		p.x0[i] = utils.Clamp(bp.Free(), p.lower[i], p.upper[i])
	}
	return
}

// Dim is the number of free parameters
func (p *Problem) Dim() int { return len(p.x0) }

func (p *Problem) Bounds() (lower, upper []float64) {
	lower, upper = make([]float64, len(p.lower)), make([]float64, len(p.upper))
	copy(lower, p.lower)
	copy(upper, p.upper)
	return
}

// InitialGuess is every free coordinate projected into the narrowed bounds
func (p *Problem) InitialGuess() (x []float64) {
	x = make([]float64, len(p.x0))
	copy(x, p.x0)
	return
}

// Place returns the bounded point list with every interior point moved to its entry of x
func (p *Problem) Place(x []float64) (bpl types.BoundedPointList) {
	bpl = make(types.BoundedPointList, len(p.points))
	copy(bpl, p.points)
	for i := range x {
		bp := &bpl[i+1]
		bp.Point = bp.WithFree(x[i])
	}
	return
}

/*
AssembleSpline builds the PCHIP curve through the endpoints and the interior
points placed at x. The point order and spacing hold by construction of the
bounds, so only the length is checked.
*/
func (p *Problem) AssembleSpline(x []float64) (*spline.Spline, error) {
	return pchip.BuildPchipSpline(p.Place(x).Points(),
		types.NewGuarantees(types.Sorted, types.Monotonous))
}

// Residuals returns the signed area mismatch at every Vertical point for the curve assembled at x
func (p *Problem) Residuals(x []float64) (r []float64, err error) {
	var (
		s   *spline.Spline
		bpl = p.Place(x)
	)
	if s, err = p.AssembleSpline(x); err != nil {
		return
	}
	balances := Balances(s, bpl)
	r = make([]float64, len(balances))
	for i, b := range balances {
		r[i] = b.Residual()
	}
	return
}

// Objective is the sum of absolute residuals, +Inf when no curve can be assembled
func (p *Problem) Objective(x []float64) float64 {
	r, err := p.Residuals(x)
	if err != nil {
		return math.Inf(1)
	}
	return floats.Norm(r, 1)
}

/*
The search runs unconstrained in z, mapped into the bounds by
x = lower + (upper-lower)(1+tanh z)/2.
*/
func (p *Problem) toBounded(z []float64) (x []float64) {
	x = make([]float64, len(z))
	for i, zi := range z {
		x[i] = p.lower[i] + 0.5*(p.upper[i]-p.lower[i])*(1+math.Tanh(zi))
	}
	return
}

func (p *Problem) toUnbounded(x []float64) (z []float64) {
	z = make([]float64, len(x))
	for i, xi := range x {
		width := p.upper[i] - p.lower[i]
		if width <= 0 {
			continue
		}
		// Keep away from ±1, atanh diverges there
		t := utils.Clamp(2*(xi-p.lower[i])/width-1, -0.9999, 0.9999)
		z[i] = math.Atanh(t)
	}
	return
}

// Balance is the area mismatch on both sides of one Vertical point
type Balance struct {
	Index       int     // Position in the bounded point list
	Left, Right float64 // Mismatch of the left and right lobes
}

func (b Balance) Residual() float64 { return b.Right - b.Left }

/*
Balances scores s against the staircase implied by bpl. For a Vertical point q
between its neighbours p and r, the left lobe is the area between s and the
tread at p.Y over [p.X, q.X], the right lobe the area between s and the tread
at r.Y over [q.X, r.X]. The curve balances the step when both are equal.
*/
func Balances(s *spline.Spline, bpl types.BoundedPointList) (balances []Balance) {
	F := s.Antiderivative()
	for k := 1; k < len(bpl)-1; k++ {
		if bpl[k].DOF != types.Vertical {
			continue
		}
		var (
			p, q, r = bpl[k-1].Point, bpl[k].Point, bpl[k+1].Point
		)
		left, _ := s.Integrate(p.X, q.X, types.All, F)
		right, _ := s.Integrate(q.X, r.X, types.All, F)
		balances = append(balances, Balance{
			Index: k,
			Left:  left - p.Y*(q.X-p.X),
			Right: r.Y*(r.X-q.X) - right,
		})
	}
	return
}
