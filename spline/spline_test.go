package spline_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/intergrowth/pchip"
	"github.com/notargets/intergrowth/spline"
	"github.com/notargets/intergrowth/types"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var (
	evalX = []float64{1, 2, 3, 5, 6, 6.8}
	evalY = []float64{0.3, 1.0, 3.0, 4.8, 7.0, 7.1}
	xeval = []float64{1., 1.41428571, 1.82857143, 2.24285714, 2.65714286, 3.07142857, 3.48571429,
		3.9, 4.31428571, 4.72857143, 5.14285714, 5.55714286, 5.97142857, 6.38571429, 6.8}
	yeval = []float64{0.3, 0.46373696, 0.82450638, 1.38308687, 2.34413198, 3.08950511, 3.50812251,
		3.8198345, 4.11379063, 4.47914049, 5.05848585, 6.20267498, 6.98960332, 7.07100914, 7.1}
)

func evalSpline(t *testing.T) *spline.Spline {
	s, err := pchip.BuildPchipSpline(types.NewPointSeries(evalX, evalY), types.None)
	require.NoError(t, err)
	return s
}

// identity returns y = x on [0,2] as two linear pieces
func identity(t *testing.T) *spline.Spline {
	s, err := spline.New([]float64{0, 1, 2}, mat.NewDense(2, 2, []float64{
		0, 1,
		1, 1,
	}))
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	{ // Shape and accessors
		s := identity(t)
		assert.Equal(t, 1, s.Order())
		assert.Equal(t, 3, s.Len())
		assert.Equal(t, 2, s.Intervals())
		lo, hi := s.Domain()
		assert.Equal(t, 0., lo)
		assert.Equal(t, 2., hi)
		assert.Equal(t, 1., s.Coefficient(0, 1))
	}
	{ // Accessors hand out copies
		s := identity(t)
		x := s.BreakPoints()
		x[0] = -10
		c := s.Coefficients()
		c.Set(0, 0, 100)
		assert.Equal(t, []float64{0, 1, 2}, s.BreakPoints())
		assert.Equal(t, 0., s.Coefficient(0, 0))
	}
	{ // Construction errors
		var ie *types.InterpolationError
		_, err := spline.New([]float64{1}, mat.NewDense(1, 1, nil))
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, types.InsufficientLength, ie.Kind)

		_, err = spline.New([]float64{0, 1, 1}, mat.NewDense(1, 2, nil))
		assert.ErrorIs(t, err, types.ErrNonMonotonic)

		_, err = spline.New([]float64{0, 1, 2}, mat.NewDense(2, 3, nil))
		assert.Error(t, err)
	}
}

func TestInterval(t *testing.T) {
	s := evalSpline(t)
	assert.Equal(t, 0, s.Interval(1))
	assert.Equal(t, 0, s.Interval(1.5))
	// An interior break point belongs to the interval on its left
	assert.Equal(t, 0, s.Interval(2))
	assert.Equal(t, 1, s.Interval(2.0001))
	assert.Equal(t, 4, s.Interval(6.8))
	assert.Equal(t, 0, s.Interval(-3))
	assert.Equal(t, 4, s.Interval(12))
}

func TestEvaluate(t *testing.T) {
	s := evalSpline(t)
	for i, x := range xeval {
		y, err := s.Evaluate(x, types.None)
		require.NoError(t, err)
		assert.InDeltaf(t, yeval[i], y, 1e-6, "x = %g", x)
	}
	// Interpolation property
	for i, x := range evalX {
		y, err := s.Evaluate(x, types.None)
		require.NoError(t, err)
		assert.InDelta(t, evalY[i], y, 1e-12)
	}
	_, err := s.Evaluate(0.5, types.None)
	assert.ErrorIs(t, err, types.ErrOutOfDomain)
	_, err = s.Evaluate(7, types.None)
	assert.ErrorIs(t, err, types.ErrOutOfDomain)
	// Bypassing the domain check extrapolates from the end interval
	_, err = s.Evaluate(7, types.NewGuarantees(types.InBounds))
	assert.NoError(t, err)
}

func TestEvaluateBatch(t *testing.T) {
	s := evalSpline(t)
	{
		ys, err := s.EvaluateBatch(xeval, types.None)
		require.NoError(t, err)
		diff(t, yeval, ys, cmpopts.EquateApprox(0, 1e-6))
		for i, x := range xeval {
			y, _ := s.Evaluate(x, types.None)
			assert.Equal(t, y, ys[i])
		}
	}
	{
		ys, err := s.EvaluateBatch(nil, types.None)
		require.NoError(t, err)
		assert.Len(t, ys, 0)
	}
	{ // Repeated values are allowed
		ys, err := s.EvaluateBatch([]float64{2, 2, 3}, types.None)
		require.NoError(t, err)
		assert.Equal(t, ys[0], ys[1])
		assert.InDelta(t, 3., ys[2], 1e-12)
	}
	{
		_, err := s.EvaluateBatch([]float64{1, 3, 2}, types.None)
		var ie *types.InterpolationError
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, types.NonMonotonicInput, ie.Kind)
		assert.Contains(t, ie.Message, "indices 1 and 2")
	}
	{
		_, err := s.EvaluateBatch([]float64{1, 3, 9}, types.None)
		assert.ErrorIs(t, err, types.ErrOutOfDomain)
	}
}

func TestSample(t *testing.T) {
	s := identity(t)
	ps := s.Sample(5)
	require.Len(t, ps, 5)
	diff(t, []float64{0, 0.5, 1, 1.5, 2}, ps.Grades())
	diff(t, ps.Grades(), ps.Yields(), cmpopts.EquateApprox(0, 1e-15))
}

func TestDerivative(t *testing.T) {
	{
		d := identity(t).Derivative()
		assert.Equal(t, 0, d.Order())
		for _, x := range []float64{0, 0.3, 1.7, 2} {
			y, err := d.Evaluate(x, types.None)
			require.NoError(t, err)
			assert.Equal(t, 1., y)
		}
		// Differentiating order zero stays at order zero with zero coefficients
		dd := d.Derivative()
		assert.Equal(t, 0, dd.Order())
		assert.Equal(t, 0., dd.Coefficient(0, 1))
	}
	{ // The derivative matches a centred difference of the spline
		s := evalSpline(t)
		d := s.Derivative()
		const h = 1e-6
		for _, x := range []float64{1.3, 2.5, 4.1, 5.5, 6.5} {
			yp, _ := s.Evaluate(x+h, types.None)
			ym, _ := s.Evaluate(x-h, types.None)
			dy, err := d.Evaluate(x, types.None)
			require.NoError(t, err)
			assert.InDelta(t, (yp-ym)/(2*h), dy, 1e-5)
		}
	}
}

func TestAntiderivative(t *testing.T) {
	{
		F := identity(t).Antiderivative()
		assert.Equal(t, 2, F.Order())
		assert.Equal(t, 0., F.Coefficient(0, 0))
		assert.Equal(t, 0.5, F.Coefficient(0, 1))
		y, _ := F.Evaluate(2, types.None)
		assert.Equal(t, 2., y)
	}
	{ // Continuous at every break point, and differentiates back to the original
		s := evalSpline(t)
		F := s.Antiderivative()
		x := F.BreakPoints()
		for i := 1; i < len(x)-1; i++ {
			assert.InDelta(t, F.EvaluateInterval(x[i], i-1), F.EvaluateInterval(x[i], i), 1e-12)
		}
		diff(t, s.Coefficients().RawMatrix().Data,
			F.Derivative().Coefficients().RawMatrix().Data, cmpopts.EquateApprox(1e-12, 1e-14))
	}
}

func TestIntegrate(t *testing.T) {
	s := evalSpline(t)
	F := s.Antiderivative()
	{
		area, err := s.Integrate(xeval[0], xeval[4], types.None, nil)
		require.NoError(t, err)
		assert.InDelta(t, 1.61986215, area, 1e-6)

		same, err := s.Integrate(xeval[0], xeval[4], types.None, F)
		require.NoError(t, err)
		assert.InDelta(t, area, same, 1e-14)
	}
	{ // Degenerate, reversed and additive
		zero, err := s.Integrate(3.3, 3.3, types.None, F)
		require.NoError(t, err)
		assert.Equal(t, 0., zero)

		ab, _ := s.Integrate(1.2, 5.5, types.None, F)
		ba, _ := s.Integrate(5.5, 1.2, types.None, F)
		assert.InDelta(t, -ab, ba, 1e-14)

		ac, _ := s.Integrate(1.2, 3.7, types.None, F)
		cb, _ := s.Integrate(3.7, 5.5, types.None, F)
		assert.InDelta(t, ab, ac+cb, 1e-12)
	}
	{ // Whole domain equals the antiderivative difference
		lo, hi := s.Domain()
		area, err := s.Integrate(lo, hi, types.None, F)
		require.NoError(t, err)
		Fhi, _ := F.Evaluate(hi, types.None)
		assert.InDelta(t, Fhi, area, 1e-12)
	}
	{
		area, err := identity(t).Integrate(0.5, 1.5, types.None, nil)
		require.NoError(t, err)
		assert.InDelta(t, 1., area, 1e-15)
	}
	{
		var ie *types.InterpolationError
		_, err := s.Integrate(0, 2, types.None, F)
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, types.OutOfDomain, ie.Kind)
		assert.Contains(t, ie.Message, "lower bound")

		_, err = s.Integrate(2, 8, types.None, F)
		require.True(t, errors.As(err, &ie))
		assert.Contains(t, ie.Message, "upper bound")
	}
}
