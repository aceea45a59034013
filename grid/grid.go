// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid implements the redshift grid builder (C1, spec §4.1): a
// non-uniform sampling of [0, z_initial] made of a geometric log segment,
// a linear recombination segment, and a linear reionization segment, plus
// the conformal-time image of each point queried from the background
// collaborator.
package grid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/iamalisalehi/thermo/bg"
)

// latestHeliumEpoch bounds the required z_initial (spec §4.1 constraint):
// z_initial must sit above the latest helium-recombination epoch.
const latestHeliumEpoch = 5000

// Params configures the grid (spec §4.1 and §6 config fields).
type Params struct {
	ZInitial float64 // upper bound of the whole grid
	ZLinear  float64 // log/linear segment boundary
	ZReioMax float64 // linear/reio segment boundary (reionization_z_start_max)
	NLog     int     // points in the geometric log segment
	NLin     int     // points in the linear recombination segment
	NReio    int     // points in the reionization segment
}

// Grid is the frozen redshift sampling plus its conformal-time image.
type Grid struct {
	Z      []float64 // strictly increasing, Z[0]=0 (today), Z[last]=ZInitial
	Tau    []float64 // conformal time at each Z[i]
	TauIni float64   // earliest (smallest) conformal time, = Tau[len(Tau)-1] under this package's index convention
}

// Build constructs the grid and queries the background provider for
// conformal time at every point.
func Build(p Params, provider bg.Provider) (*Grid, error) {
	if p.ZInitial <= latestHeliumEpoch {
		return nil, chk.Err("grid: z_initial=%g must be greater than the latest helium-recombination epoch (%g)", p.ZInitial, latestHeliumEpoch)
	}
	if p.ZReioMax >= p.ZLinear || p.ZLinear >= p.ZInitial {
		return nil, chk.Err("grid: boundaries must satisfy 0 <= z_reio_max < z_linear < z_initial (got %g, %g, %g)", p.ZReioMax, p.ZLinear, p.ZInitial)
	}
	if p.NLog < 2 || p.NLin < 2 || p.NReio < 2 {
		return nil, chk.Err("grid: each segment needs at least 2 points (got log=%d, lin=%d, reio=%d)", p.NLog, p.NLin, p.NReio)
	}

	reio := utl.LinSpace(0, p.ZReioMax, p.NReio)
	lin := utl.LinSpace(p.ZReioMax, p.ZLinear, p.NLin)
	logSeg := geomSpace(p.ZLinear, p.ZInitial, p.NLog)

	z := make([]float64, 0, len(reio)+len(lin)-1+len(logSeg)-1)
	z = append(z, reio...)
	z = append(z, lin[1:]...)
	z = append(z, logSeg[1:]...)

	g := &Grid{Z: z, Tau: make([]float64, len(z))}
	for i, zi := range z {
		tau, err := provider.TauOfZ(zi)
		if err != nil {
			return nil, chk.Err("grid: background provider failed at z=%g: %v", zi, err)
		}
		g.Tau[i] = tau
	}
	// TauIni is the earliest conformal time, i.e. at the highest redshift
	// (spec §4.1: "the earliest tau is exposed as tau_ini").
	g.TauIni = g.Tau[len(g.Tau)-1]
	return g, nil
}

// geomSpace returns n points geometrically spaced in [a, b], a,b > 0.
func geomSpace(a, b float64, n int) []float64 {
	out := make([]float64, n)
	logA, logB := math.Log(a), math.Log(b)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		out[i] = math.Exp(logA + t*(logB-logA))
	}
	return out
}
