// Package reference holds the static agronomic calibration tables the
// analyzers are constructed with: crop pH preference curves, nutrient
// availability curves, lime material properties, soil texture buffer
// factors, and trial location metadata. Tables are supplied as data —
// built-in defaults, YAML files, or a SQLite store — so calibration
// updates never touch the analysis algorithms.
package reference

import (
	"fmt"
	"math"
	"sort"
)

// CurvePoint is one breakpoint of a piecewise-linear lookup curve.
type CurvePoint struct {
	PH    float64 `yaml:"ph" json:"ph"`
	Value float64 `yaml:"value" json:"value"`
}

// Curve is a piecewise-linear curve over pH with an explicit sorted
// breakpoint list. Lookups between breakpoints interpolate linearly;
// lookups outside the defined domain clamp to the nearest endpoint
// value rather than extrapolating.
type Curve struct {
	Points []CurvePoint `yaml:"points" json:"points"`
}

// NewCurve builds a curve from breakpoints, sorting them by pH.
func NewCurve(points ...CurvePoint) Curve {
	c := Curve{Points: points}
	sort.Slice(c.Points, func(i, j int) bool { return c.Points[i].PH < c.Points[j].PH })
	return c
}

// Validate checks that the curve has at least one breakpoint, is sorted
// with strictly increasing pH, and contains only finite values.
func (c Curve) Validate() error {
	if len(c.Points) == 0 {
		return fmt.Errorf("curve has no breakpoints")
	}
	for i, p := range c.Points {
		if math.IsNaN(p.PH) || math.IsInf(p.PH, 0) || math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return fmt.Errorf("curve breakpoint %d is not finite", i)
		}
		if i > 0 && p.PH <= c.Points[i-1].PH {
			return fmt.Errorf("curve breakpoints not strictly increasing at index %d (pH %.2f)", i, p.PH)
		}
	}
	return nil
}

// Evaluate returns the curve value at the given pH, interpolating
// between the nearest breakpoints and clamping outside the domain.
// A NaN pH evaluates to 0; it never reaches the breakpoint search.
func (c Curve) Evaluate(ph float64) float64 {
	pts := c.Points
	if len(pts) == 0 || math.IsNaN(ph) {
		return 0
	}
	if ph <= pts[0].PH {
		return pts[0].Value
	}
	last := pts[len(pts)-1]
	if ph >= last.PH {
		return last.Value
	}

	// Binary search for the first breakpoint at or above ph.
	i := sort.Search(len(pts), func(i int) bool { return pts[i].PH >= ph })
	lo, hi := pts[i-1], pts[i]
	w := (ph - lo.PH) / (hi.PH - lo.PH)
	return lo.Value*(1-w) + hi.Value*w
}

// Domain returns the lowest and highest defined pH breakpoints.
func (c Curve) Domain() (low, high float64) {
	if len(c.Points) == 0 {
		return 0, 0
	}
	return c.Points[0].PH, c.Points[len(c.Points)-1].PH
}
