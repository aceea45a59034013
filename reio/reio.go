// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reio implements the five reionization parametrizations of
// spec §4.2: camb, half_tanh, bins_tanh, many_tanh, inter. Each scheme is
// registered in a factory map the way gofem's mdl/retention package
// registers its retention models (vg.go's `init()` + `allocators`), so
// adding a scheme never touches the dispatch call site.
package reio

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// not4 is the He-to-H mass ratio used by CLASS's own convention (slightly
// below 4 because of binding energy); fHe = YHe/(not4*(1-YHe)).
const not4 = 3.9715

// FHe converts a helium mass fraction into the number-fraction f_He used
// throughout the recombination/reionization math (spec glossary).
func FHe(yHe float64) float64 {
	return yHe / (not4 * (1 - yHe))
}

// Scheme is a reionization parametrization: a pure function of z, plus the
// bookkeeping the interpolation service (C8) needs to decide when to fall
// back to linear interpolation near a derivative discontinuity.
type Scheme interface {
	// Init configures the scheme from named parameters and the helium
	// number fraction.
	Init(params dbf.Params, fHe float64) error

	// SetResidualXe records the "xe_before" handoff (spec §4.9): the
	// residual x_e the evolver produced at the end of the frec phase,
	// just before entering reio. Modeled as an explicit call on phase
	// transition, not shared-array telepathy.
	SetResidualXe(xe float64)

	// Eval returns X_e(z) and dX_e/dz.
	Eval(z float64) (xe, dxedz float64)

	// ZReioMax is the highest redshift at which this scheme differs from
	// the residual xe_before value; above it reionization is a no-op.
	ZReioMax() float64

	// LinearBelow reports the redshift below which callers (C8) must use
	// linear rather than spline interpolation, and whether that applies
	// to this scheme at all (spec §4.2: half_tanh and inter only).
	LinearBelow() (z float64, applies bool)
}

var allocators = make(map[string]func() Scheme)

// New builds a Scheme by name (spec table in §4.2).
func New(name string) (Scheme, error) {
	alloc, ok := allocators[strings.ToLower(name)]
	if !ok {
		return nil, chk.Err("reio: unknown reionization parametrization %q", name)
	}
	return alloc(), nil
}

// collectIndexedSeries parses params named z_<n> and xe_<n> into paired
// slices ordered by the parsed index n. dbf.Params comes from a JSON
// map[string]float64 (thermo.Config.dbfReioParams), whose iteration order
// is randomized by Go; pairing z_i with xe_i by parsed index rather than by
// position-of-encounter keeps runs with identical inputs bit-identical
// (spec §8) regardless of that ordering.
func collectIndexedSeries(p dbf.Params) (zs, xes []float64, err error) {
	zByIdx := make(map[int]float64)
	xeByIdx := make(map[int]float64)
	for _, pp := range p {
		switch {
		case len(pp.N) > 2 && pp.N[:2] == "z_":
			n, e := strconv.Atoi(pp.N[2:])
			if e != nil {
				continue
			}
			zByIdx[n] = pp.V
		case len(pp.N) > 3 && pp.N[:3] == "xe_":
			n, e := strconv.Atoi(pp.N[3:])
			if e != nil {
				continue
			}
			xeByIdx[n] = pp.V
		}
	}
	if len(zByIdx) != len(xeByIdx) {
		return nil, nil, chk.Err("reio: need matching z_i/xe_i pairs, got %d z and %d xe", len(zByIdx), len(xeByIdx))
	}
	idxs := make([]int, 0, len(zByIdx))
	for n := range zByIdx {
		if _, ok := xeByIdx[n]; !ok {
			return nil, nil, chk.Err("reio: z_%d has no matching xe_%d", n, n)
		}
		idxs = append(idxs, n)
	}
	sort.Ints(idxs)
	zs = make([]float64, len(idxs))
	xes = make([]float64, len(idxs))
	for i, n := range idxs {
		zs[i] = zByIdx[n]
		xes[i] = xeByIdx[n]
	}
	return zs, xes, nil
}

// smoothstep is the sigmoidal blend with w(0)=0, w(1)=1 and vanishing
// derivative at both ends (Hermite smoothstep). No scheme in this package
// calls it; package sched computes the same weight in its own BlendWeight.
func smoothstep(s float64) float64 {
	if s <= 0 {
		return 0
	}
	if s >= 1 {
		return 1
	}
	return s * s * (3 - 2*s)
}

// smoothstepD1 is d(smoothstep)/ds.
func smoothstepD1(s float64) float64 {
	if s <= 0 || s >= 1 {
		return 0
	}
	return 6 * s * (1 - s)
}
