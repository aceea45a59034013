// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"math"

	"github.com/cpmech/gosl/fun/dbf"

	"github.com/iamalisalehi/thermo/bbnhe"
	"github.com/iamalisalehi/thermo/bg"
	"github.com/iamalisalehi/thermo/derive"
	"github.com/iamalisalehi/thermo/evolve"
	"github.com/iamalisalehi/thermo/grid"
	"github.com/iamalisalehi/thermo/interp"
	"github.com/iamalisalehi/thermo/recomb"
	"github.com/iamalisalehi/thermo/reio"
	"github.com/iamalisalehi/thermo/sched"
	"github.com/iamalisalehi/thermo/shoot"
)

// Handle is a frozen, queryable run: the full Table plus the interpolation
// service backing the public at_z API (spec §5 "ordering guarantees": grid
// -> scheduler -> evolve -> shoot (if a tau target) -> derive -> interp
// freeze; nothing downstream of a stage may run before it completes).
type Handle struct {
	Table *Table
	svc   *interp.Service
}

// Run executes the whole pipeline once and returns a queryable Handle.
func Run(cfg *Config, provider bg.Provider) (*Handle, error) {
	cfg.SetDefault()

	yHe, err := resolveYHe(cfg)
	if err != nil {
		return nil, err
	}
	fHe := reio.FHe(yHe)

	tau0, err := provider.TauOfZ(0)
	if err != nil {
		return nil, newError(KindResource, "bg", err)
	}
	st0, err := provider.AtTau(tau0, bg.Normal)
	if err != nil {
		return nil, newError(KindResource, "bg", err)
	}
	// nH0 follows from the baryon density and the hydrogen mass fraction
	// (1-YHe): n_H = (1-Y_He)*rho_b/m_H, with rho_b in kg/m^3 taken as
	// RhoB/RhoCrit times the SI critical density 3*H0^2/(8*pi*G), so the
	// provider's own density units cancel.
	const gNewton = 6.67430e-11 // m^3/(kg s^2)
	h0SI := st0.H * recomb.CLight / recomb.Mpc
	rhoCritSI := 3 * h0SI * h0SI / (8 * math.Pi * gNewton)
	nH0 := st0.RhoB / st0.RhoCrit * rhoCritSI * (1 - yHe) / recomb.MH

	cos := recomb.Cosmology{
		YHe: yHe, FHe: fHe, NH0: nH0, Tcmb0: cfg.Tcmb0(),
		HeSwitch: 6, Trigger: 0.99,
	}

	g, err := grid.Build(grid.Params{
		ZInitial: cfg.ThermoZInitial, ZLinear: cfg.ThermoZLinear, ZReioMax: cfg.ReionizationZStartMax,
		NLog: cfg.ThermoNzLog, NLin: cfg.ThermoNzLin, NReio: cfg.ReionizationSampling,
	}, provider)
	if err != nil {
		return nil, newError(KindDomain, "grid", err)
	}

	engine, err := recomb.New(cfg.Recombination)
	if err != nil {
		return nil, newError(KindDomain, "recomb", err)
	}
	boundaries := sched.DefaultBoundaries(cfg.ReionizationZStartMax)

	scheme, err := reio.New(cfg.ReioParametrization)
	if err != nil {
		return nil, newError(KindDomain, "reio", err)
	}

	var zReio float64
	var samples []evolve.Sample
	var res *derive.Result

	runWith := func(zReioGuess float64) ([]evolve.Sample, *derive.Result, error) {
		params := cfg.dbfReioParams()
		if cfg.ReioZOrTau == "tau" || cfg.ZReio != 0 {
			params = withZReio(params, zReioGuess)
		}
		if err := scheme.Init(params, fHe); err != nil {
			return nil, nil, newError(KindDomain, "reio", err)
		}
		samp, err := evolve.Run(g, provider, engine, evolve.Config{
			Cosmology: cos, Boundaries: boundaries, Reio: scheme,
		})
		if err != nil {
			return nil, nil, newError(KindNumerical, "evolve", err)
		}
		dres, err := derive.Compute(samp, provider, cos, derive.Options{
			ComputeDampingScale:   cfg.ComputeDampingScale,
			ComputeCb2Derivatives: cfg.ComputeCb2Derivatives,
		})
		if err != nil {
			return nil, nil, newError(KindNumerical, "derive", err)
		}
		return samp, dres, nil
	}

	switch cfg.ReioZOrTau {
	case "tau":
		lo, hi := 2.0, cfg.ReionizationZStartMax
		var evalErr error
		zReio, evalErr = shoot.Solve(shoot.Target{TauReio: cfg.TauReio}, lo, hi, func(guess float64) (float64, error) {
			samp, dres, err := runWith(guess)
			if err != nil {
				return 0, err
			}
			return reioOpticalDepth(samp, dres), nil
		})
		if evalErr != nil {
			return nil, newError(KindConvergence, "shoot", evalErr)
		}
		samples, res, err = runWith(zReio)
		if err != nil {
			return nil, err
		}
	default:
		zReio = cfg.ZReio
		samples, res, err = runWith(zReio)
		if err != nil {
			return nil, err
		}
	}

	table := assembleTable(samples, res, cos.FHe, zReio, reioOpticalDepth(samples, res))

	svc, err := freezeInterp(table, g, scheme, provider)
	if err != nil {
		return nil, newError(KindNumerical, "interp", err)
	}

	return &Handle{Table: table, svc: svc}, nil
}

// resolveYHe implements spec §4.2's "YHe == 0 selects a BBN lookup" rule.
func resolveYHe(cfg *Config) (float64, error) {
	if cfg.YHe > 0 {
		return cfg.YHe, nil
	}
	tbl, err := bbnhe.Read(cfg.BBNTablePath)
	if err != nil {
		return 0, newError(KindResource, "bbn", err)
	}
	yHe, err := tbl.Interpolate(cfg.OmegaB, cfg.DeltaNeff)
	if err != nil {
		return 0, newError(KindDomain, "bbn", err)
	}
	return yHe, nil
}

// withZReio returns a copy of params with z_reio set to z, adding it if
// absent (used while the shooting method (C6) is searching, and to pass a
// non-zero Config.ZReio to the scheme in "z" mode).
func withZReio(params dbf.Params, z float64) dbf.Params {
	out := make(dbf.Params, 0, len(params)+1)
	found := false
	for _, p := range params {
		if p.N == "z_reio" {
			out = append(out, &dbf.P{N: "z_reio", V: z})
			found = true
			continue
		}
		out = append(out, p)
	}
	if !found {
		out = append(out, &dbf.P{N: "z_reio", V: z})
	}
	return out
}

// reioOpticalDepth is the contribution to the Thomson optical depth
// accumulated since recombination, i.e. kappa(z_rec) - kappa(today),
// which is what the shooting method (C6) matches against tau_reio
// (spec §4.6). Tau decreases with sample index.
func reioOpticalDepth(samples []evolve.Sample, res *derive.Result) float64 {
	n := len(samples)
	for i := 1; i < n; i++ {
		if samples[i].Tau <= res.TauRec {
			frac := (res.TauRec - samples[i-1].Tau) / (samples[i].Tau - samples[i-1].Tau)
			kappaAtRec := res.Kappa[i-1] + frac*(res.Kappa[i]-res.Kappa[i-1])
			return kappaAtRec - res.Kappa[0]
		}
	}
	return res.Kappa[n-1] - res.Kappa[0]
}
