// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"math"

	"github.com/iamalisalehi/thermo/bg"
	"github.com/iamalisalehi/thermo/derive"
	"github.com/iamalisalehi/thermo/evolve"
	"github.com/iamalisalehi/thermo/grid"
	"github.com/iamalisalehi/thermo/interp"
	"github.com/iamalisalehi/thermo/reio"
)

// Point is one query result from Handle.At (spec §6 at_z API).
type Point struct {
	Xe           float64
	DKappaDTau   float64
	D2KappaDTau2 float64
	ExpMKappa    float64
	G            float64
	DGDTau       float64
	Tb           float64
	Cb2          float64
}

// assembleTable copies the evolver samples and derived-quantity results
// into the public Table shape (spec §3 Data Model). fHe converts the
// evolver's separate XH/XHe into the single displayed x_e = XH + fHe*XHe.
func assembleTable(samples []evolve.Sample, res *derive.Result, fHe, zReio, tauReioValue float64) *Table {
	n := len(samples)
	t := &Table{
		Z: make([]float64, n), Tau: make([]float64, n), Xe: make([]float64, n), Tb: make([]float64, n),
	}
	for i, s := range samples {
		t.Z[i], t.Tau[i] = s.Z, s.Tau
		t.Xe[i] = s.Y.XH + fHe*s.Y.XHe
		t.Tb[i] = s.Y.Tmat
	}
	t.DKappaDTau = res.DKappaDTau
	t.D2KappaDTau2 = res.D2KappaDTau2
	t.D3KappaDTau3 = res.D3KappaDTau3
	t.ExpMKappa = res.ExpMKappa
	t.G = res.G
	t.DGDTau = res.DGDTau
	t.D2GDTau2 = res.D2GDTau2
	t.Cb2 = res.Cb2
	t.DCb2DTau = res.DCb2DTau
	t.D2Cb2DTau2 = res.D2Cb2DTau2
	t.TauD = res.TauD
	t.Rd = res.Rd
	t.Rate = res.Rate

	t.ZRec, t.TauRec = res.ZRec, res.TauRec
	t.ZD, t.TauDrag = res.ZD, res.TauDrag
	t.ZReio, t.TauReio = zReio, tauReioValue
	t.RsRec, t.RsD, t.DARec, t.RdRec = res.RsRec, res.RsD, res.DARec, res.RdRec
	t.TauFS, t.TauCut = res.TauFS, res.TauCut
	return t
}

// freezeInterp registers the Table columns that Point exposes (x_e,
// dkappa/dtau, d2kappa/dtau2, exp(-kappa), g, dg/dtau, T_b, c_b^2) with
// the interpolation service (C8), wiring in the active reionization scheme's
// derivative-discontinuity redshift and each column's analytic
// above-z_initial asymptote (spec §4.8, spec.md:172).
func freezeInterp(t *Table, g *grid.Grid, scheme reio.Scheme, provider bg.Provider) (*interp.Service, error) {
	linZ, applies := scheme.LinearBelow()
	svc, err := interp.NewService(t.Z, g.Z[len(g.Z)-1], linZ, applies)
	if err != nil {
		return nil, err
	}
	columns := map[string][]float64{
		"xe": t.Xe, "dkappadtau": t.DKappaDTau, "d2kappadtau2": t.D2KappaDTau2,
		"expmkappa": t.ExpMKappa, "g": t.G, "dgdtau": t.DGDTau, "tb": t.Tb, "cb2": t.Cb2,
	}
	asym := buildAsymptotes(t, provider)
	for name, col := range columns {
		if err := svc.AddColumn(name, col, asym[name]); err != nil {
			return nil, err
		}
	}
	return svc, nil
}

// asymFunc matches interp.AddColumn's asym signature: value, d/dz, d2/dz2.
type asymFunc func(z float64) (y, dy, d2y float64)

// zero is the frozen-at-zero asymptote shared by expmkappa, g and dgdtau
// (spec.md:172: "exp(-kappa)=g=g'=g''=0, source functions are never sampled
// above z_initial").
func zero(float64) (float64, float64, float64) { return 0, 0, 0 }

// numericAsym turns a closed-form asymptotic value function into a full
// asymFunc by taking its z-derivatives with a central finite difference,
// the same technique package derive uses for its own grid derivatives.
func numericAsym(f func(z float64) float64) asymFunc {
	return func(z float64) (y, dy, d2y float64) {
		eps := math.Max(1e-6*z, 1e-8)
		y = f(z)
		yp, ym := f(z+eps), f(z-eps)
		dy = (yp - ym) / (2 * eps)
		d2y = (yp - 2*y + ym) / (eps * eps)
		return
	}
}

// buildAsymptotes returns the per-column analytic extrapolation formulas
// for z > z_initial (spec §4.8, spec.md:172), anchored at the last
// tabulated row so the extrapolation meets the table continuously.
func buildAsymptotes(t *Table, provider bg.Provider) map[string]asymFunc {
	n := len(t.Z)
	zInitial := t.Z[n-1]
	xeFrozen := t.Xe[n-1]
	dKappaInitial := t.DKappaDTau[n-1]
	cb2Initial := t.Cb2[n-1]
	tcmb0 := t.Tb[n-1] / (1 + zInitial)

	dKappaDTauAt := func(z float64) float64 {
		ratio := (1 + z) / (1 + zInitial)
		return dKappaInitial * ratio * ratio
	}
	hubbleAt := func(z float64) (h, hprime float64) {
		tau, err := provider.TauOfZ(z)
		if err != nil {
			return 0, 0
		}
		st, err := provider.AtTau(tau, bg.Normal)
		if err != nil {
			return 0, 0
		}
		return st.H, st.Hprime
	}

	return map[string]asymFunc{
		"xe": func(float64) (float64, float64, float64) { return xeFrozen, 0, 0 },
		"dkappadtau": numericAsym(dKappaDTauAt),
		"d2kappadtau2": numericAsym(func(z float64) float64 {
			h, _ := hubbleAt(z)
			return -h * 2 / (1 + z) * dKappaDTauAt(z)
		}),
		"expmkappa": zero,
		"g":         zero,
		"dgdtau":    zero,
		"tb":        numericAsym(func(z float64) float64 { return tcmb0 * (1 + z) }),
		"cb2":       numericAsym(func(z float64) float64 { return cb2Initial * (1 + z) / (1 + zInitial) }),
	}
}

// At evaluates every output quantity at redshift z (spec §6 at_z API).
func (h *Handle) At(z float64, mode interp.Mode, cursor *interp.Cursor) (Point, error) {
	var p Point
	var err error
	if p.Xe, _, _, err = h.svc.Eval("xe", z, mode, cursor); err != nil {
		return Point{}, err
	}
	if p.DKappaDTau, _, _, err = h.svc.Eval("dkappadtau", z, mode, cursor); err != nil {
		return Point{}, err
	}
	if p.D2KappaDTau2, _, _, err = h.svc.Eval("d2kappadtau2", z, mode, cursor); err != nil {
		return Point{}, err
	}
	if p.ExpMKappa, _, _, err = h.svc.Eval("expmkappa", z, mode, cursor); err != nil {
		return Point{}, err
	}
	if p.G, _, _, err = h.svc.Eval("g", z, mode, cursor); err != nil {
		return Point{}, err
	}
	if p.DGDTau, _, _, err = h.svc.Eval("dgdtau", z, mode, cursor); err != nil {
		return Point{}, err
	}
	if p.Tb, _, _, err = h.svc.Eval("tb", z, mode, cursor); err != nil {
		return Point{}, err
	}
	if p.Cb2, _, _, err = h.svc.Eval("cb2", z, mode, cursor); err != nil {
		return Point{}, err
	}
	return p, nil
}
