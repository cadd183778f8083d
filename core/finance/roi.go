// Package finance turns a stream of yearly savings into investment metrics:
// an internal rate of return found by a two-stage root-finder, the net
// present value at that rate, and an interpolated payback period.
//
// The ROI solves f(r) = ((Σ (1+r)^i · s_i) / I)^(1/N) − 1 − r = 0, the
// constant annual return whose compounding reproduces the cumulative growth
// of the actual savings stream. Bisection over a fixed bracket is tried
// first; if it cannot isolate a root, Newton's method with a numeric
// derivative takes over and the best iterate is returned either way.
// Non-convergence is deliberately not an error: the result carries a
// Converged flag and callers treat an unconverged rate as a best-effort
// estimate.
package finance

import (
	"math"

	"github.com/Matze99/solar-sim/core/model"
)

const (
	bracketLow  = -0.3
	bracketHigh = 2.0
	tolerance   = 1e-6
	maxIter     = 100

	newtonGuess = 0.1
	newtonStep  = 1e-8
)

// SolveROI computes the rate of return, NPV and payback period for an
// initial investment and its yearly savings stream. A non-positive
// investment short-circuits to an all-zero result without invoking the
// root-finder.
func SolveROI(initialInvestment float64, annualSavings []float64) model.ROIResult {
	if initialInvestment <= 0 {
		return model.ROIResult{Converged: true}
	}

	years := len(annualSavings)
	f := func(r float64) float64 {
		sum := 0.0
		for i, s := range annualSavings {
			sum += math.Pow(1+r, float64(i)) * s
		}
		return math.Pow(sum/initialInvestment, 1/float64(years)) - 1 - r
	}

	roi, converged := bisect(f)
	if !converged {
		roi, converged = newton(f, newtonGuess)
	}

	npv := -initialInvestment
	for i, s := range annualSavings {
		npv += s / math.Pow(1+roi, float64(i))
	}

	return model.ROIResult{
		ROI:             roi,
		NetPresentValue: npv,
		PaybackYears:    payback(initialInvestment, annualSavings),
		Converged:       converged,
	}
}

// bisect searches the fixed bracket for a sign change. It reports failure
// when the iteration budget runs out before either the function value or
// the bracket width drops below tolerance.
func bisect(f func(float64) float64) (float64, bool) {
	low, high := bracketLow, bracketHigh
	for i := 0; i < maxIter; i++ {
		mid := (low + high) / 2
		fMid := f(mid)
		if math.Abs(fMid) < tolerance {
			return mid, true
		}
		if f(low)*fMid < 0 {
			high = mid
		} else {
			low = mid
		}
		if math.Abs(high-low) < tolerance {
			return mid, true
		}
	}
	return 0, false
}

// newton refines the guess with a central finite-difference derivative and
// returns the last iterate whether or not the tolerance was reached.
func newton(f func(float64) float64, guess float64) (float64, bool) {
	x := guess
	for i := 0; i < maxIter; i++ {
		fx := f(x)
		if math.Abs(fx) < tolerance {
			return x, true
		}
		derivative := (f(x+newtonStep) - f(x-newtonStep)) / (2 * newtonStep)
		if math.Abs(derivative) < 1e-12 {
			break
		}
		x -= fx / derivative
	}
	return x, false
}

// payback returns the first fractional year at which cumulative
// undiscounted savings reach the investment, or nil if they never do.
func payback(investment float64, savings []float64) *float64 {
	cumulative := 0.0
	for i, s := range savings {
		cumulative += s
		if cumulative >= investment {
			p := float64(i) + (investment-(cumulative-s))/s
			return &p
		}
	}
	return nil
}
