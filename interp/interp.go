// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import "github.com/cpmech/gosl/chk"

// Mode selects how the cursor is advanced between successive queries
// (spec §4.8).
type Mode int

const (
	// Normal re-searches the bracketing interval from scratch every call.
	Normal Mode = iota
	// Closeby resumes the search from the cursor's last index, cheap when
	// the caller queries z in roughly increasing or decreasing order.
	Closeby
)

// Cursor is opaque caller-held state enabling the Closeby search mode.
type Cursor struct {
	index int
}

// column bundles one output quantity's spline plus its optional
// above-z_initial extrapolation override.
type column struct {
	sp    *spline
	asym  func(z float64) (y, dy, d2y float64)
}

// Service answers at_z queries (spec §6 public API) against every
// registered column, dispatching between cubic spline, linear
// interpolation near a known derivative discontinuity, and asymptotic
// extrapolation above z_initial.
type Service struct {
	z             []float64 // ascending, shared by every column
	zInitial      float64
	linearBelowZ  float64
	linearApplies bool
	columns       map[string]*column
}

// NewService freezes the shared z grid and the linear-interpolation
// handoff redshift reported by the active reionization scheme's
// LinearBelow() (spec §4.2/§4.8).
func NewService(z []float64, zInitial, linearBelowZ float64, linearApplies bool) (*Service, error) {
	if len(z) < 3 {
		return nil, chk.Err("interp: need at least 3 grid points, got %d", len(z))
	}
	return &Service{z: z, zInitial: zInitial, linearBelowZ: linearBelowZ, linearApplies: linearApplies, columns: make(map[string]*column)}, nil
}

// AddColumn registers one output quantity's values over the shared grid.
// asym, if non-nil, overrides the default linear-slope extrapolation used
// above z_initial (spec §4.8: some columns have a known closed-form
// asymptote, e.g. x_e -> residual constant).
func (s *Service) AddColumn(name string, y []float64, asym func(z float64) (y, dy, d2y float64)) error {
	if len(y) != len(s.z) {
		return chk.Err("interp: column %q length %d does not match grid length %d", name, len(y), len(s.z))
	}
	sp, err := newSpline(s.z, y)
	if err != nil {
		return chk.Err("interp: building spline for column %q failed: %v", name, err)
	}
	s.columns[name] = &column{sp: sp, asym: asym}
	return nil
}

// Eval returns (value, d/dz, d2/dz2) for column name at redshift z, using
// and updating cursor when mode is Closeby.
func (s *Service) Eval(name string, z float64, mode Mode, cursor *Cursor) (y, dy, d2y float64, err error) {
	col, ok := s.columns[name]
	if !ok {
		return 0, 0, 0, chk.Err("interp: unknown column %q", name)
	}

	if z > s.zInitial {
		if col.asym != nil {
			y, dy, d2y = col.asym(z)
			return y, dy, d2y, nil
		}
		return extrapolateLinear(col.sp, z), 0, 0, nil
	}

	if s.linearApplies && z < s.linearBelowZ {
		y, dy = linearEval(s.z, col.sp.y, z)
		return y, dy, 0, nil
	}

	var idx int
	if mode == Closeby && cursor != nil {
		idx = col.sp.locateFrom(z, cursor.index)
	} else {
		idx = col.sp.locate(z)
	}
	if cursor != nil {
		cursor.index = idx
	}
	y, dy, d2y = col.sp.eval(z, idx)
	return y, dy, d2y, nil
}

// extrapolateLinear extends the spline past its last knot using the slope
// at the final interval (spec §4.8 default asymptotic behavior: columns
// without a closed-form asymptote are extended tangent to their last
// segment rather than left undefined).
func extrapolateLinear(sp *spline, z float64) float64 {
	n := len(sp.x)
	y0, dy0, _ := sp.eval(sp.x[n-1], n-2)
	return y0 + dy0*(z-sp.x[n-1])
}

// linearEval does plain two-point linear interpolation/extrapolation,
// used below a reionization scheme's derivative-discontinuity redshift
// (spec §4.2/§4.8: half_tanh and inter schemes are only C0 there).
func linearEval(x, y []float64, xq float64) (v, dv float64) {
	i := locateBisect(x, xq, 0)
	h := x[i+1] - x[i]
	dv = (y[i+1] - y[i]) / h
	v = y[i] + dv*(xq-x[i])
	return
}
