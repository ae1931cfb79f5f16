package types

import (
	"fmt"
	"sort"
)

// Point is a (grade, yield) pair, both normalised to [0,1] for step function data
type Point struct {
	X, Y float64
}

func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) InUnitSquare() bool {
	return p.X >= 0 && p.X <= 1 && p.Y >= 0 && p.Y <= 1
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

type PointSeries []Point

func NewPointSeries(x, y []float64) (ps PointSeries) {
	if len(x) != len(y) {
		panic(fmt.Errorf("mismatched coordinate lengths, have %d grades and %d yields", len(x), len(y)))
	}
	ps = make(PointSeries, len(x))
	for i := range x {
		ps[i] = Point{X: x[i], Y: y[i]}
	}
	return
}

// Grades and Yields transpose the series into coordinate slices
func (ps PointSeries) Grades() (x []float64) {
	x = make([]float64, len(ps))
	for i, p := range ps {
		x[i] = p.X
	}
	return
}

func (ps PointSeries) Yields() (y []float64) {
	y = make([]float64, len(ps))
	for i, p := range ps {
		y[i] = p.Y
	}
	return
}

func (ps PointSeries) Copy() (cp PointSeries) {
	cp = make(PointSeries, len(ps))
	copy(cp, ps)
	return
}

// SortedCopy returns the series ordered by x, leaving the receiver untouched
func (ps PointSeries) SortedCopy() (cp PointSeries) {
	cp = ps.Copy()
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].X < cp[j].X })
	return
}

func (ps PointSeries) IsSorted() bool {
	for i := 1; i < len(ps); i++ {
		if ps[i].X <= ps[i-1].X {
			return false
		}
	}
	return true
}

/*
StepFunction is an empirical stair-step curve. The staircase rises at Anchor from
zero to the first yield, runs flat to the first point's grade, rises to the next
yield and so on. After the last point it rises to one and stays there.
*/
type StepFunction struct {
	Anchor float64
	Points PointSeries
}

func NewStepFunction(anchor float64, points PointSeries) StepFunction {
	return StepFunction{Anchor: anchor, Points: points.Copy()}
}

// Extended returns the series validated for monotonicity: (Anchor, 0) followed by the points
func (sf StepFunction) Extended() (ps PointSeries) {
	ps = make(PointSeries, 0, len(sf.Points)+1)
	ps = append(ps, Point{X: sf.Anchor})
	ps = append(ps, sf.Points...)
	return
}

// Polyline returns the corners of the staircase from (0,0) to (1,1), in drawing order
func (sf StepFunction) Polyline() (ps PointSeries) {
	if len(sf.Points) == 0 {
		return PointSeries{{0, 0}, {1, 0}, {1, 1}}
	}
	var (
		first = sf.Points[0]
		last  = sf.Points[len(sf.Points)-1]
	)
	ps = PointSeries{{0, 0}, {sf.Anchor, 0}, {sf.Anchor, first.Y}}
	for i := 0; i < len(sf.Points)-1; i++ {
		p, q := sf.Points[i], sf.Points[i+1]
		ps = append(ps, Point{p.X, p.Y}, Point{p.X, q.Y})
	}
	ps = append(ps, last, Point{last.X, 1}, Point{1, 1})
	return
}

// DOF is the coordinate a bounded point may move along during optimization
type DOF uint8

const (
	Horizontal DOF = iota // x is free, y fixed
	Vertical              // y is free, x fixed
	Fixed                 // path endpoint, nothing moves
)

func (d DOF) String() string {
	switch d {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	case Fixed:
		return "Fixed"
	}
	return fmt.Sprintf("DOF(%d)", uint8(d))
}

func (d DOF) Other() DOF {
	switch d {
	case Horizontal:
		return Vertical
	case Vertical:
		return Horizontal
	}
	return d
}

type BoundedPoint struct {
	Point
	Lower, Upper float64
	DOF          DOF
}

func NewFixedPoint(p Point) BoundedPoint {
	return BoundedPoint{Point: p, Lower: p.X, Upper: p.X, DOF: Fixed}
}

// Free returns the coordinate selected by the DOF, x for Fixed points
func (bp BoundedPoint) Free() float64 {
	if bp.DOF == Vertical {
		return bp.Y
	}
	return bp.X
}

// WithFree returns the point moved to val along its free coordinate
func (bp BoundedPoint) WithFree(val float64) Point {
	switch bp.DOF {
	case Horizontal:
		return Point{X: val, Y: bp.Y}
	case Vertical:
		return Point{X: bp.X, Y: val}
	}
	return bp.Point
}

func (bp BoundedPoint) Width() float64 {
	return bp.Upper - bp.Lower
}

func (bp BoundedPoint) String() string {
	if bp.DOF == Fixed {
		return fmt.Sprintf("%s %s", bp.DOF, bp.Point)
	}
	return fmt.Sprintf("%s %s in [%g, %g]", bp.DOF, bp.Point, bp.Lower, bp.Upper)
}

// BoundedPointList holds a fixed start point, alternating interior points and a fixed end point
type BoundedPointList []BoundedPoint

func (bpl BoundedPointList) Points() (ps PointSeries) {
	ps = make(PointSeries, len(bpl))
	for i, bp := range bpl {
		ps[i] = bp.Point
	}
	return
}

func (bpl BoundedPointList) Interior() BoundedPointList {
	if len(bpl) < 2 {
		return nil
	}
	return bpl[1 : len(bpl)-1]
}

func (bpl BoundedPointList) Count(dof DOF) (n int) {
	for _, bp := range bpl {
		if bp.DOF == dof {
			n++
		}
	}
	return
}
