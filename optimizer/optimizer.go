/*
Package optimizer moves the free coordinates of a bounded point list until the
PCHIP curve through them balances the step function, equal area on both sides
of every Vertical point. Only a local minimum near the starting curve is
sought, the problem is not convex.
*/
package optimizer

import (
	"errors"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"

	"github.com/notargets/intergrowth/spline"
	"github.com/notargets/intergrowth/types"
)

type Settings struct {
	MaxIterations int     // Iteration cap of each search stage
	GradTol       float64 // Gradient infinity norm stopping threshold
	BoundShrink   float64 // Fraction of each interval width removed on both sides
	Verbose       bool    // Print the solver iterations to stdout
}

func DefaultSettings() Settings {
	return Settings{
		MaxIterations: 1000,
		GradTol:       1e-5,
		BoundShrink:   0.025,
	}
}

// Solution is the optimized curve with the diagnostics of the search
type Solution struct {
	Spline    *spline.Spline
	Points    types.BoundedPointList // Bounded points at their optimized positions
	X         []float64              // Free coordinates
	Objective float64
	Residuals []float64
	Status    optimize.Status
	Stats     optimize.Stats
	Err       error // Solver failure, the spline is still the best one found
}

// Optimize returns the balanced curve, or the initial curve when the search cannot improve on it
func Optimize(bpl types.BoundedPointList, maxIterations int, gradTol float64) *spline.Spline {
	settings := DefaultSettings()
	settings.MaxIterations, settings.GradTol = maxIterations, gradTol
	return Minimize(bpl, settings).Spline
}

/*
Minimize searches with L-BFGS on a central difference gradient, then polishes
with Nelder-Mead since the objective has kinks where residuals change sign.
The best point of both stages is kept. Solver errors end up in Solution.Err,
the returned spline is always the one assembled at Solution.X. The spline is
nil only when the list has too few points for a curve.
*/
func Minimize(bpl types.BoundedPointList, settings Settings) (sol *Solution) {
	var (
		p = NewProblem(bpl, settings.BoundShrink)
	)
	sol = &Solution{
		X:      p.InitialGuess(),
		Status: optimize.NotTerminated,
	}
	if p.Dim() == 0 || bpl.Count(types.Vertical) == 0 {
		sol.finish(p)
		return
	}
	var (
		f = func(z []float64) float64 {
			return p.Objective(p.toBounded(z))
		}
		problem = optimize.Problem{
			Func: f,
			Grad: func(grad, z []float64) {
				fd.Gradient(grad, f, z, &fd.Settings{Formula: fd.Central})
			},
		}
		best  = p.toUnbounded(sol.X)
		bestF = f(best)
		errs  []error
	)
	for _, method := range []optimize.Method{&optimize.LBFGS{}, &optimize.NelderMead{}} {
		if bestF == 0 {
			break
		}
		result, err := optimize.Minimize(problem, best, newSettings(settings), method)
		if err != nil {
			errs = append(errs, err)
		}
		if result == nil {
			continue
		}
		sol.Status = result.Status
		sol.Stats.MajorIterations += result.MajorIterations
		sol.Stats.FuncEvaluations += result.FuncEvaluations
		sol.Stats.GradEvaluations += result.GradEvaluations
		sol.Stats.Runtime += result.Runtime
		if result.F < bestF {
			best, bestF = result.X, result.F
		}
	}
	sol.X = p.toBounded(best)
	sol.Err = errors.Join(errs...)
	sol.finish(p)
	return
}

func newSettings(settings Settings) (s *optimize.Settings) {
	s = &optimize.Settings{
		MajorIterations:   settings.MaxIterations,
		GradientThreshold: settings.GradTol,
	}
	if settings.Verbose {
		s.Recorder = optimize.NewPrinter()
	}
	return
}

func (sol *Solution) finish(p *Problem) {
	var err error
	if sol.Spline, err = p.AssembleSpline(sol.X); err != nil {
		sol.Err = errors.Join(sol.Err, err)
		return
	}
	sol.Points = p.Place(sol.X)
	sol.Residuals, _ = p.Residuals(sol.X)
	sol.Objective = p.Objective(sol.X)
}
