// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package evolve implements the stiff recombination/thermal evolver (C5,
// spec §4.5): it advances the matter temperature and the hydrogen/helium
// ionized fractions over the grid built by package grid, switching active
// variables according to the phase schedule built by package sched.
package evolve

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"
	"github.com/cpmech/gosl/ode"

	"github.com/iamalisalehi/thermo/bg"
	"github.com/iamalisalehi/thermo/energy"
	"github.com/iamalisalehi/thermo/grid"
	"github.com/iamalisalehi/thermo/recomb"
	"github.com/iamalisalehi/thermo/reio"
	"github.com/iamalisalehi/thermo/sched"
)

// Sample is one row of raw evolver output, handed to the derived-quantity
// pass (C7) after the run completes.
type Sample struct {
	Z      float64
	Tau    float64
	Y      recomb.Variables
	DlnXDz float64 // d ln(x_e)/dz at this point; x_e = XH + FHe*XHe
	Phase  sched.Tag
}

// Config bundles the run-time inputs the evolver needs besides the grid.
type Config struct {
	Cosmology  recomb.Cosmology
	Boundaries sched.Boundaries
	EnergyRate energy.Rate // may be energy.Zero
	// Reio, when non-nil, takes over x_e during the reio phase (spec
	// §4.2/§4.4): its SetResidualXe is called once at the frec->reio
	// handoff, and its Eval(z) replaces the kernel's own Derivs from
	// then on. A nil Reio leaves the kernel in charge for the whole run.
	Reio reio.Scheme
}

// stepCtx is threaded through the ODE right-hand side via sol.Solve's args,
// following the pattern of ana.ColumnFluidPressure.Init.
type stepCtx struct {
	engine recomb.Engine
	cos    recomb.Cosmology
	active recomb.ActiveSet
	h      float64 // Hubble rate, 1/s
	dlnHdz float64
	trad   float64
	erate  float64
	dlnXdz float64
}

// Run integrates the state over g in the forward-time direction (from the
// highest redshift down to today) and returns one Sample per grid point.
func Run(g *grid.Grid, provider bg.Provider, engine recomb.Engine, cfg Config) ([]Sample, error) {
	n := len(g.Z)
	if n < 2 {
		return nil, chk.Err("evolve: grid has fewer than 2 points")
	}

	schedule, err := sched.Build(g.Z[n-1], cfg.Boundaries)
	if err != nil {
		return nil, err
	}

	samples := make([]Sample, n)
	ctx := &stepCtx{engine: engine, cos: cfg.Cosmology}

	var sol ode.ODE
	sol.Init("Radau5", 3, func(f []float64, dT, T float64, y []float64, args ...interface{}) error {
		c := args[0].(*stepCtx)
		z := args[1].(float64)
		in := recomb.Input{
			Z: z, H: c.h, DlnHDz: c.dlnHdz, Trad: c.trad, EnergyRate: c.erate,
			DlnXDz: c.dlnXdz,
			Y:      recomb.Variables{Tmat: y[0], XH: y[1], XHe: y[2]},
			Active: c.active,
		}
		out, err := c.engine.Derivs(in, c.cos)
		if err != nil {
			return err
		}
		f[0], f[1], f[2] = out.Tmat, out.XH, out.XHe
		return nil
	}, nil, nil, nil, true)
	sol.Distr = false

	// start fully ionized at z_initial (spec §4.2 initial conditions).
	y := []float64{cfg.Cosmology.Tcmb0 * (1 + g.Z[n-1]), 1, 1}
	dlnXdzPrev := 0.0
	lastCombinedX := y[1] + cfg.Cosmology.FHe*y[2]
	activePhase := schedule.At(g.Z[n-1])

	for i := n - 1; i >= 0; i-- {
		z := g.Z[i]
		phase := schedule.At(z)

		st, err := provider.AtTau(g.Tau[i], bg.Short)
		if err != nil {
			return nil, chk.Err("evolve: background query failed at z=%g: %v", z, err)
		}
		dHdz, err := dlnHdzAt(provider, z)
		if err != nil {
			return nil, err
		}

		if phase.Tag != activePhase.Tag || i == n-1 {
			y, err = seedPhase(engine, phase, z, y, cfg.Cosmology)
			if err != nil {
				return nil, err
			}
			if phase.Tag == sched.Reio && cfg.Reio != nil {
				cfg.Reio.SetResidualXe(lastCombinedX)
			}
			activePhase = phase
		}

		erate := 0.0
		if cfg.EnergyRate != nil {
			erate = cfg.EnergyRate(z)
		}
		hSI := st.H * recomb.CLight / recomb.Mpc // bg gives 1/Mpc, the kernel takes 1/s
		ctx.h, ctx.dlnHdz, ctx.trad, ctx.erate, ctx.dlnXdz = hSI, dHdz, cfg.Cosmology.Tcmb0*(1+z), erate, dlnXdzPrev
		ctx.active = phase.Active

		if i < n-1 {
			dz := g.Z[i+1] - z // > 0, we are stepping toward lower z
			err = sol.Solve(y, 0, dz, dz, false, ctx, z, dz) // integrate over -z by dz
			if err != nil {
				return nil, chk.Err("evolve: ODE step failed at z=%g: %v", z, err)
			}
		}

		if phase.Tag == sched.Reio && cfg.Reio != nil {
			xe, _ := cfg.Reio.Eval(z)
			y[1] = math.Min(xe, 1)
			y[2] = math.Max((xe-y[1])/cfg.Cosmology.FHe, 0)
		} else {
			y = applySahaOverrides(engine, phase.Active, z, y, cfg.Cosmology)
		}

		lastCombinedX = y[1] + cfg.Cosmology.FHe*y[2]
		dlnXdzPrev = combinedDlnXDz(ctx, z, y, lastCombinedX)

		samples[i] = Sample{
			Z: z, Tau: g.Tau[i],
			Y:      recomb.Variables{Tmat: y[0], XH: y[1], XHe: y[2]},
			DlnXDz: dlnXdzPrev,
			Phase:  phase.Tag,
		}
	}
	return samples, nil
}

// seedPhase sets the newly-activated variables to their Saha value at the
// phase boundary, leaving already-active (integrated) variables untouched
// (spec §4.4: a phase transition hands analytic values to the kernel).
func seedPhase(engine recomb.Engine, phase sched.Phase, z float64, y []float64, cos recomb.Cosmology) ([]float64, error) {
	out := append([]float64(nil), y...)
	if !phase.Active.XH {
		xh, err := engine.SahaH(z, y[0], cos)
		if err != nil {
			return nil, chk.Err("evolve: seeding XH from Saha failed at z=%g: %v", z, err)
		}
		out[1] = xh
	}
	if !phase.Active.XHe {
		xhe, err := engine.SahaHe(z, y[0], cos)
		if err != nil {
			return nil, chk.Err("evolve: seeding XHe from Saha failed at z=%g: %v", z, err)
		}
		out[2] = xhe
	}
	return out, nil
}

// applySahaOverrides recomputes every inactive variable from its Saha
// equilibrium value at z, rather than letting it drift at a frozen
// ODE-integrated value (spec §4.4: inactive variables track their analytic
// value continuously).
func applySahaOverrides(engine recomb.Engine, active recomb.ActiveSet, z float64, y []float64, cos recomb.Cosmology) []float64 {
	out := append([]float64(nil), y...)
	if !active.XH {
		if xh, err := engine.SahaH(z, y[0], cos); err == nil {
			out[1] = xh
		}
	}
	if !active.XHe {
		if xhe, err := engine.SahaHe(z, y[0], cos); err == nil {
			out[2] = xhe
		}
	}
	return out
}

// combinedDlnXDz estimates d ln(x_e)/dz at the current step from the most
// recent right-hand-side evaluation, used to seed the tight-coupling
// epsilon expansion on the next step (spec §4.3).
func combinedDlnXDz(ctx *stepCtx, z float64, y []float64, x float64) float64 {
	if x < 1e-30 {
		return 0
	}
	in := recomb.Input{
		Z: z, H: ctx.h, DlnHDz: ctx.dlnHdz, Trad: ctx.trad, EnergyRate: ctx.erate, DlnXDz: ctx.dlnXdz,
		Y:      recomb.Variables{Tmat: y[0], XH: y[1], XHe: y[2]},
		Active: ctx.active,
	}
	out, err := ctx.engine.Derivs(in, ctx.cos)
	if err != nil {
		return ctx.dlnXdz
	}
	dxdz := -(out.XH + ctx.cos.FHe*out.XHe)
	return dxdz / x
}

// dlnHdzAt computes d(ln H)/dz at z by central differences over the
// background provider, decoupled from the evolver's own grid spacing.
func dlnHdzAt(provider bg.Provider, z float64) (float64, error) {
	var ferr error
	d := num.DerivCen(func(zz float64, args ...interface{}) (res float64) {
		tau, err := provider.TauOfZ(zz)
		if err != nil {
			ferr = err
			return 0
		}
		st, err := provider.AtTau(tau, bg.Short)
		if err != nil {
			ferr = err
			return 0
		}
		return math.Log(st.H)
	}, z)
	if ferr != nil {
		return 0, chk.Err("evolve: background query failed while differencing H(z): %v", ferr)
	}
	return d, nil
}
