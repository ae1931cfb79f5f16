package bounds

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/intergrowth/types"
)

func testStepFunction() types.StepFunction {
	return types.NewStepFunction(0.2, types.PointSeries{{X: 0.4, Y: 0.3}, {X: 0.5, Y: 0.5}, {X: 0.8, Y: 0.8}})
}

func TestComputeBounds(t *testing.T) {
	bpl, err := ComputeBounds(testStepFunction(), 0.125, 0.925, types.None)
	require.NoError(t, err)
	expected := types.BoundedPointList{
		types.NewFixedPoint(types.Point{X: 0, Y: 0}),
		{Point: types.Point{X: 0.125, Y: 0.3}, Lower: 0, Upper: 0.4, DOF: types.Horizontal},
		{Point: types.Point{X: 0.4, Y: 0.4}, Lower: 0.3, Upper: 0.5, DOF: types.Vertical},
		{Point: types.Point{X: 0.45, Y: 0.5}, Lower: 0.4, Upper: 0.5, DOF: types.Horizontal},
		{Point: types.Point{X: 0.5, Y: 0.65}, Lower: 0.5, Upper: 0.8, DOF: types.Vertical},
		{Point: types.Point{X: 0.925, Y: 0.8}, Lower: 0.5, Upper: 0.8, DOF: types.Horizontal},
		types.NewFixedPoint(types.Point{X: 1, Y: 1}),
	}
	require.Len(t, bpl, len(expected))
	for i := range expected {
		assert.Equalf(t, expected[i].DOF, bpl[i].DOF, "point %d", i)
		assert.InDeltaf(t, expected[i].X, bpl[i].X, 1e-15, "point %d", i)
		assert.InDeltaf(t, expected[i].Y, bpl[i].Y, 1e-15, "point %d", i)
		if expected[i].DOF != types.Fixed {
			assert.InDeltaf(t, expected[i].Lower, bpl[i].Lower, 1e-15, "point %d", i)
			assert.InDeltaf(t, expected[i].Upper, bpl[i].Upper, 1e-15, "point %d", i)
		}
	}
	// Interior points alternate, starting and ending Horizontal
	interior := bpl.Interior()
	for i, bp := range interior {
		if i%2 == 0 {
			assert.Equal(t, types.Horizontal, bp.DOF)
		} else {
			assert.Equal(t, types.Vertical, bp.DOF)
		}
	}
	assert.Equal(t, 3, bpl.Count(types.Horizontal))
	assert.Equal(t, 2, bpl.Count(types.Vertical))
	assert.Equal(t, 2, bpl.Count(types.Fixed))

	ps := BreakPoints(bpl)
	assert.Equal(t, types.Point{X: 0.125, Y: 0.3}, ps[1])
	assert.Equal(t, Terminus, ps[len(ps)-1])
}

func TestComputeBoundsSingleStep(t *testing.T) {
	// A single step has only one Horizontal point and the start grade wins over the end grade
	bpl, err := ComputeBounds(types.NewStepFunction(0.1, types.PointSeries{{X: 0.6, Y: 0.4}}), 0.3, 0.7, types.None)
	require.NoError(t, err)
	require.Len(t, bpl, 3)
	assert.Equal(t, types.Horizontal, bpl[1].DOF)
	assert.Equal(t, 0.3, bpl[1].X)
	assert.Equal(t, 0.4, bpl[1].Y)
	assert.Equal(t, 0., bpl[1].Lower)
	assert.Equal(t, 0.6, bpl[1].Upper)
}

func TestValidate(t *testing.T) {
	kindOf := func(err error) types.ErrorKind {
		var ie *types.InterpolationError
		require.True(t, errors.As(err, &ie), "expected an InterpolationError, have %v", err)
		return ie.Kind
	}
	sf := testStepFunction()
	assert.NoError(t, Validate(sf, 0.125, 0.925, types.None))

	err := Validate(types.NewStepFunction(0.2, nil), 0.1, 0.9, types.None)
	assert.Equal(t, types.InsufficientLength, kindOf(err))

	err = Validate(sf, -0.1, 0.9, types.None)
	assert.Equal(t, types.OutOfDomain, kindOf(err))
	assert.Contains(t, err.Error(), "start grade")

	err = Validate(sf, 0.1, 1.5, types.None)
	assert.Equal(t, types.OutOfDomain, kindOf(err))

	err = Validate(types.NewStepFunction(1.2, sf.Points), 0.1, 0.9, types.None)
	assert.Equal(t, types.OutOfDomain, kindOf(err))

	bad := types.NewStepFunction(0.2, types.PointSeries{{X: 0.4, Y: 0.3}, {X: 0.5, Y: 1.3}})
	err = Validate(bad, 0.1, 0.9, types.None)
	assert.Equal(t, types.OutOfDomain, kindOf(err))
	// Asserting InBounds skips the coordinate check
	assert.NoError(t, Validate(bad, 0.1, 0.9, types.NewGuarantees(types.InBounds)))

	// The anchor takes part in the order check
	err = Validate(types.NewStepFunction(0.45, sf.Points), 0.1, 0.9, types.None)
	assert.Equal(t, types.NonMonotonicInput, kindOf(err))
	assert.Contains(t, err.Error(), "indices 0 and 1")

	flat := types.NewStepFunction(0.2, types.PointSeries{{X: 0.4, Y: 0.3}, {X: 0.5, Y: 0.3}})
	err = Validate(flat, 0.1, 0.9, types.None)
	assert.ErrorIs(t, err, types.ErrNonMonotonic)
	assert.NoError(t, Validate(flat, 0.1, 0.9, types.NewGuarantees(types.Monotonous)))

	_, err = ComputeBounds(flat, 0.1, 0.9, types.None)
	assert.Error(t, err)
}
