// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interp implements the thermodynamics table query service (C8,
// spec §4.8): natural cubic splines over every output column, dispatched
// against linear interpolation near known derivative discontinuities and
// asymptotic extrapolation above z_initial.
//
// The spline core is hand-rolled rather than built on gonum's
// interp.FittedInterpolator: that type exposes only Predict/PredictDerivative
// to first order and always re-searches its breakpoints from scratch, while
// this package's callers (the public query API) need second derivatives
// for some columns and a resumable "closeby" cursor for sequential query
// patterns (spec §4.8 cursor modes); no combination of gonum's interp
// fitters covers both without already hand-rolling the tridiagonal solve
// underneath, so the solve is written directly instead of wrapping it.
package interp

import "github.com/cpmech/gosl/chk"

// spline is a natural cubic spline: y'' = 0 at both endpoints.
type spline struct {
	x, y   []float64
	m      []float64 // second derivatives at each knot
}

// newSpline builds a natural cubic spline through (x[i], y[i]), x strictly
// increasing, via the standard tridiagonal (Thomas algorithm) solve.
func newSpline(x, y []float64) (*spline, error) {
	n := len(x)
	if n < 3 {
		return nil, chk.Err("interp: spline needs at least 3 points, got %d", n)
	}
	if len(y) != n {
		return nil, chk.Err("interp: x and y length mismatch (%d vs %d)", n, len(y))
	}
	for i := 1; i < n; i++ {
		if x[i] <= x[i-1] {
			return nil, chk.Err("interp: spline x must be strictly increasing (x[%d]=%g, x[%d]=%g)", i-1, x[i-1], i, x[i])
		}
	}

	h := make([]float64, n-1)
	for i := range h {
		h[i] = x[i+1] - x[i]
	}

	// tridiagonal system for the interior second derivatives, natural
	// boundary conditions m[0]=m[n-1]=0.
	a := make([]float64, n) // sub-diagonal
	b := make([]float64, n) // diagonal
	c := make([]float64, n) // super-diagonal
	d := make([]float64, n) // RHS
	b[0], b[n-1] = 1, 1

	for i := 1; i < n-1; i++ {
		a[i] = h[i-1]
		b[i] = 2 * (h[i-1] + h[i])
		c[i] = h[i]
		d[i] = 6 * ((y[i+1]-y[i])/h[i] - (y[i]-y[i-1])/h[i-1])
	}

	// Thomas algorithm forward sweep
	cp := make([]float64, n)
	dp := make([]float64, n)
	cp[0] = c[0] / b[0]
	dp[0] = d[0] / b[0]
	for i := 1; i < n; i++ {
		denom := b[i] - a[i]*cp[i-1]
		if i < n-1 {
			cp[i] = c[i] / denom
		}
		dp[i] = (d[i] - a[i]*dp[i-1]) / denom
	}
	m := make([]float64, n)
	m[n-1] = dp[n-1]
	for i := n - 2; i >= 0; i-- {
		m[i] = dp[i] - cp[i]*m[i+1]
	}

	return &spline{x: x, y: y, m: m}, nil
}

// locate returns the index i such that x[i] <= xq < x[i+1] (clamped to the
// valid range), searching from scratch via bisection.
func (s *spline) locate(xq float64) int {
	return locateBisect(s.x, xq, 0)
}

// locateFrom is the "closeby" cursor mode (spec §4.8): search starts from
// hint and walks outward, cheap when consecutive queries are nearby.
func (s *spline) locateFrom(xq float64, hint int) int {
	n := len(s.x)
	if hint < 0 || hint >= n-1 {
		hint = n / 2
	}
	i := hint
	for i > 0 && xq < s.x[i] {
		i--
	}
	for i < n-2 && xq >= s.x[i+1] {
		i++
	}
	return i
}

// locateBisect is a plain binary search over a strictly increasing array,
// returning an index in [lo, len(x)-2].
func locateBisect(x []float64, xq float64, lo int) int {
	hi := len(x) - 1
	if lo < 0 {
		lo = 0
	}
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if x[mid] <= xq {
			lo = mid
		} else {
			hi = mid
		}
	}
	if lo > len(x)-2 {
		lo = len(x) - 2
	}
	return lo
}

// eval returns y, y', y'' at xq given the bracketing index i.
func (s *spline) eval(xq float64, i int) (y, dy, d2y float64) {
	h := s.x[i+1] - s.x[i]
	a := (s.x[i+1] - xq) / h
	b := (xq - s.x[i]) / h
	y = a*s.y[i] + b*s.y[i+1] +
		((a*a*a-a)*s.m[i] + (b*b*b-b)*s.m[i+1]) * (h * h / 6)
	dy = (s.y[i+1]-s.y[i])/h - (3*a*a-1)/6*h*s.m[i] + (3*b*b-1)/6*h*s.m[i+1]
	d2y = a*s.m[i] + b*s.m[i+1]
	return
}
