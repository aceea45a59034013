// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package derive implements the derived-quantity pass (C7, spec §4.7):
// optical depth and its derivatives, the visibility function, the baryon
// sound speed, the drag and recombination epochs, and the sound horizons
// and angular-diameter distance at those epochs. Every quantity gets its
// own scratch buffer (spec §4.9 design note) rather than overwriting a
// shared column in place.
package derive

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"

	"github.com/iamalisalehi/thermo/bg"
	"github.com/iamalisalehi/thermo/evolve"
	"github.com/iamalisalehi/thermo/recomb"
)

// boxcarHalfWidth is the half-width, in grid points, of the smoother
// applied to the visibility variation rate (spec §4.7: "a raw finite
// difference of g is too noisy to locate tau_cut reliably").
const boxcarHalfWidth = 2

// Result holds every scratch buffer produced by the derived-quantity pass,
// indexed exactly like the evolve.Sample slice it was computed from
// (index 0 = today, last index = z_initial).
type Result struct {
	Kappa      []float64 // optical depth kappa(z), kappa(0)=0
	DKappaDTau []float64 // d(kappa)/d(tau)
	D2KappaDTau2 []float64
	D3KappaDTau3 []float64
	ExpMKappa  []float64 // exp(-kappa)
	G          []float64 // visibility g = dkappa/dtau * exp(-kappa)
	DGDTau     []float64
	D2GDTau2   []float64
	Cb2        []float64 // baryon sound speed squared
	DCb2DTau   []float64 // nil unless ComputeCb2Derivatives was set
	D2Cb2DTau2 []float64 // nil unless ComputeCb2Derivatives was set
	TauD       []float64 // baryon optical depth (drag-weighted)
	Rd         []float64 // photon diffusion (damping) scale, optional
	Rate       []float64 // sqrt((k')^2 + (k''/k')^2 + |k'''/k'|), boxcar-smoothed (spec §4.7 step 4)

	ZRec      float64
	TauRec    float64
	ZD        float64
	TauDrag   float64
	RsRec     float64 // sound horizon at recombination
	RsD       float64 // sound horizon at baryon drag
	DARec     float64 // angular diameter distance at recombination
	RdRec     float64 // damping scale at recombination, optional
	TauFS     float64 // tau of the lowest-z sample whose g exceeds 1e-3 of its peak (not a mean-free-path criterion)
	TauCut    float64 // earliest time with non-negligible visibility variation
}

// Options toggles the optional, more expensive outputs (spec §6:
// compute_damping_scale, compute_cb2_derivatives).
type Options struct {
	ComputeDampingScale   bool
	ComputeCb2Derivatives bool
}

// Compute runs the whole derived-quantity pass over samples (ordered
// index 0 = today .. last = z_initial, as produced by package evolve).
func Compute(samples []evolve.Sample, provider bg.Provider, cos recomb.Cosmology, opt Options) (*Result, error) {
	n := len(samples)
	if n < 3 {
		return nil, chk.Err("derive: need at least 3 samples, got %d", n)
	}

	tau := make([]float64, n)
	z := make([]float64, n)
	for i, s := range samples {
		tau[i], z[i] = s.Tau, s.Z
	}

	dKappaDTau := comptonRate(samples, cos)

	kappa := integrateKappa(tau, dKappaDTau)
	d2 := centralDeriv(tau, dKappaDTau)
	d3 := centralDeriv(tau, d2)

	expMKappa := make([]float64, n)
	g := make([]float64, n)
	for i := range expMKappa {
		expMKappa[i] = math.Exp(-kappa[i])
		g[i] = dKappaDTau[i] * expMKappa[i]
	}
	dg := centralDeriv(tau, g)
	d2g := centralDeriv(tau, dg)

	cb2 := make([]float64, n)
	tb := make([]float64, n)
	for i, s := range samples {
		tb[i] = s.Y.Tmat
	}
	dTbDz := centralDeriv(z, tb)
	for i := range cb2 {
		cb2[i] = soundSpeed2(tb[i], dTbDz[i], z[i], cos)
	}

	tauD := integrateBaryonDepth(tau, dKappaDTau, samples, provider, cos)
	rate := boxcarSmooth(rateQuantity(dKappaDTau, d2, d3), boxcarHalfWidth)

	res := &Result{
		Kappa: kappa, DKappaDTau: dKappaDTau, D2KappaDTau2: d2, D3KappaDTau3: d3,
		ExpMKappa: expMKappa, G: g, DGDTau: dg, D2GDTau2: d2g,
		Cb2: cb2, TauD: tauD, Rate: rate,
	}

	if err := findRecombination(res, samples); err != nil {
		return nil, err
	}
	if err := findDrag(res, samples); err != nil {
		return nil, err
	}
	if err := findHorizonsAndDistance(res, samples, provider, cos); err != nil {
		return nil, err
	}
	findFreeStreamingAndCut(res, samples)

	if opt.ComputeDampingScale {
		res.Rd = dampingScale(tau, dKappaDTau, samples, cos)
		res.RdRec = interpValueAtTau(samples, res.Rd, res.TauRec)
	}
	if opt.ComputeCb2Derivatives {
		res.DCb2DTau = centralDeriv(tau, cb2)
		res.D2Cb2DTau2 = centralDeriv(tau, res.DCb2DTau)
	}
	return res, nil
}

// comptonRate returns d(kappa)/d(tau) = (1+z)^2 * n_H0 * x_e * sigma_T *
// (Mpc/m), tau being a length-like (Mpc) coordinate rather than SI seconds
// (spec §4.7's opacity formula).
func comptonRate(samples []evolve.Sample, cos recomb.Cosmology) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		xe := s.Y.XH + cos.FHe*s.Y.XHe
		out[i] = math.Pow(1+s.Z, 2) * cos.NH0 * xe * recomb.SigmaT * recomb.Mpc
	}
	return out
}

// rateQuantity returns sqrt((k')^2 + (k''/k')^2 + |k'''/k'|) at every
// sample, the raw (unsmoothed) visibility-variation rate (spec §4.7 step
// 4). Samples where k'==0 contribute zero.
func rateQuantity(dKappaDTau, d2, d3 []float64) []float64 {
	n := len(dKappaDTau)
	out := make([]float64, n)
	for i := range out {
		kp := dKappaDTau[i]
		if kp == 0 {
			continue
		}
		out[i] = math.Sqrt(kp*kp + (d2[i]/kp)*(d2[i]/kp) + math.Abs(d3[i]/kp))
	}
	return out
}

// integrateKappa cumulatively integrates dKappaDTau over tau, anchored at
// kappa(tau[0])=0 (index 0 is today, spec §4.7).
func integrateKappa(tau, dKappaDTau []float64) []float64 {
	n := len(tau)
	kappa := make([]float64, n)
	for i := 1; i < n; i++ {
		dtau := tau[i-1] - tau[i] // tau decreases with index, so kappa grows with z
		kappa[i] = kappa[i-1] + 0.5*(dKappaDTau[i]+dKappaDTau[i-1])*dtau
	}
	return kappa
}

// integrateBaryonDepth integrates the baryon-drag-weighted optical depth
// tau_d, whose integrand carries an extra 1/R factor (R = 3*rho_b/4*rho_gamma).
func integrateBaryonDepth(tau []float64, dKappaDTau []float64, samples []evolve.Sample, provider bg.Provider, cos recomb.Cosmology) []float64 {
	n := len(tau)
	out := make([]float64, n)
	integrand := make([]float64, n)
	for i, s := range samples {
		st, err := provider.AtTau(s.Tau, bg.Normal)
		if err != nil || st.RhoGamma <= 0 {
			integrand[i] = 0
			continue
		}
		r := 0.75 * st.RhoB / st.RhoGamma
		if r <= 0 {
			r = 1e-30
		}
		integrand[i] = dKappaDTau[i] / r
	}
	for i := 1; i < n; i++ {
		dtau := tau[i-1] - tau[i] // tau decreases with index, so tau_d grows with z
		out[i] = out[i-1] + 0.5*(integrand[i]+integrand[i-1])*dtau
	}
	return out
}

// soundSpeed2 implements cb2 = (kB*Tb/(mu*mH)) * (1 - (1/3) dlnTb/dlna),
// with mu the mean molecular weight per free particle (spec §4.7).
func soundSpeed2(tb, dTbDz, z float64, cos recomb.Cosmology) float64 {
	if tb <= 0 {
		return 0
	}
	dlnTbDlnA := -(1 + z) * dTbDz / tb
	mu := recomb.MH / (1 + cos.FHe)
	return (recomb.KBoltzmann * tb / mu) * (1 - dlnTbDlnA/3)
}

// centralDeriv computes df/dx at every index using a three-point,
// non-uniform-grid central difference, with one-sided differences at the
// endpoints.
func centralDeriv(x, f []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	if n < 2 {
		return out
	}
	out[0] = (f[1] - f[0]) / (x[1] - x[0])
	out[n-1] = (f[n-1] - f[n-2]) / (x[n-1] - x[n-2])
	for i := 1; i < n-1; i++ {
		hm, hp := x[i]-x[i-1], x[i+1]-x[i]
		out[i] = (hm*hm*f[i+1] + (hp*hp-hm*hm)*f[i] - hp*hp*f[i-1]) / (hm * hp * (hm + hp))
	}
	return out
}

// findRecombination locates z_rec as the redshift of peak visibility,
// refined by a quadratic fit through the three samples nearest the peak
// (spec §4.7: z_rec is a quadratic refinement, not the raw grid maximum).
func findRecombination(res *Result, samples []evolve.Sample) error {
	n := len(res.G)
	peak := -1
	best := -math.MaxFloat64
	for i, gv := range res.G {
		if gv > best {
			best, peak = gv, i
		}
	}
	if peak <= 0 || peak >= n-1 {
		return chk.Err("derive: visibility maximum found at grid boundary, cannot refine z_rec")
	}
	z0, z1, z2 := samples[peak-1].Z, samples[peak].Z, samples[peak+1].Z
	g0, g1, g2 := res.G[peak-1], res.G[peak], res.G[peak+1]
	zRec, ok := quadraticVertex(z0, g0, z1, g1, z2, g2)
	if !ok {
		zRec = z1
	}
	const zRecMin, zRecMax = 500.0, 2000.0
	if zRec < zRecMin || zRec > zRecMax {
		return chk.Err("derive: z_rec=%g out of the expected physical range [%g, %g]", zRec, zRecMin, zRecMax)
	}
	res.ZRec = zRec
	res.TauRec = interpLinear(samples, zRec)
	return nil
}

// findDrag locates z_d where the baryon drag optical depth tau_d crosses 1,
// by linear interpolation between the bracketing samples (spec §4.7).
func findDrag(res *Result, samples []evolve.Sample) error {
	n := len(res.TauD)
	for i := 1; i < n; i++ {
		if res.TauD[i-1] < 1 && res.TauD[i] >= 1 {
			frac := (1 - res.TauD[i-1]) / (res.TauD[i] - res.TauD[i-1])
			res.ZD = samples[i-1].Z + frac*(samples[i].Z-samples[i-1].Z)
			res.TauDrag = samples[i-1].Tau + frac*(samples[i].Tau-samples[i-1].Tau)
			return nil
		}
	}
	return chk.Err("derive: baryon drag optical depth never reaches 1 over the grid")
}

// findHorizonsAndDistance integrates the sound horizon r_s = integral c_s
// dtau from z_initial down to the recombination/drag epochs, and queries
// the background provider for the angular-diameter distance at z_rec.
// c_s = 1/sqrt(3*(1+R)), R = 3*rho_b/(4*rho_gamma), taken from the
// background provider at each sample (spec §4.7) -- not derived from Cb2,
// which is an unrelated matter-temperature quantity.
func findHorizonsAndDistance(res *Result, samples []evolve.Sample, provider bg.Provider, cos recomb.Cosmology) error {
	n := len(samples)
	cs := make([]float64, n)
	for i, s := range samples {
		st, err := provider.AtTau(s.Tau, bg.Normal)
		if err != nil || st.RhoGamma <= 0 {
			cs[i] = 1.0 / math.Sqrt(3)
			continue
		}
		r := 0.75 * st.RhoB / st.RhoGamma
		cs[i] = 1.0 / math.Sqrt(3*(1+r))
	}
	rs := make([]float64, n)
	for i := n - 2; i >= 0; i-- {
		dtau := samples[i].Tau - samples[i+1].Tau
		rs[i] = rs[i+1] + 0.5*(cs[i]+cs[i+1])*dtau
	}
	res.RsRec = interpValueAtTau(samples, rs, res.TauRec)
	res.RsD = interpValueAtTau(samples, rs, res.TauDrag)

	st, err := provider.AtTau(res.TauRec, bg.Long)
	if err != nil {
		return chk.Err("derive: background query at tau_rec failed: %v", err)
	}
	res.DARec = st.DA
	return nil
}

// findFreeStreamingAndCut locates the free-streaming epoch (scanning from
// today, the first sample whose g exceeds a small fraction of its peak; the
// photon mean free path is not consulted) and the visibility cut time
// (scanning from z_initial, the first sample, i.e. the earliest tau, with
// non-negligible smoothed |dg/dtau|).
func findFreeStreamingAndCut(res *Result, samples []evolve.Sample) {
	n := len(res.G)
	peak := floats.Max(res.G)
	const freeStreamFrac = 1e-3
	for i := 0; i < n; i++ {
		if res.G[i] > freeStreamFrac*peak {
			res.TauFS = samples[i].Tau
			break
		}
	}

	smoothed := boxcarSmooth(res.DGDTau, boxcarHalfWidth)
	const cutFrac = 1e-4
	maxAbs := 0.0
	for _, v := range smoothed {
		if math.Abs(v) > maxAbs {
			maxAbs = math.Abs(v)
		}
	}
	res.TauCut = samples[n-1].Tau
	for i := n - 1; i >= 0; i-- {
		if math.Abs(smoothed[i]) > cutFrac*maxAbs {
			res.TauCut = samples[i].Tau
			break
		}
	}
}

// boxcarSmooth applies a symmetric moving average of half-width hw.
func boxcarSmooth(x []float64, hw int) []float64 {
	n := len(x)
	out := make([]float64, n)
	for i := range x {
		lo, hi := i-hw, i+hw
		if lo < 0 {
			lo = 0
		}
		if hi >= n {
			hi = n - 1
		}
		out[i] = floats.Sum(x[lo:hi+1]) / float64(hi-lo+1)
	}
	return out
}

// dampingScale integrates the photon diffusion length r_d (spec §4.7,
// optional output gated on compute_damping_scale).
func dampingScale(tau, dKappaDTau []float64, samples []evolve.Sample, cos recomb.Cosmology) []float64 {
	n := len(tau)
	integrand := make([]float64, n)
	for i := range integrand {
		if dKappaDTau[i] <= 0 {
			continue
		}
		integrand[i] = 1.0 / dKappaDTau[i]
	}
	rd2 := make([]float64, n)
	for i := n - 2; i >= 0; i-- {
		dtau := tau[i] - tau[i+1] // integrate from tau_ini (last index) toward today
		rd2[i] = rd2[i+1] + 0.5*(integrand[i]+integrand[i+1])*dtau
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sqrt(math.Max(rd2[i], 0))
	}
	return out
}

// quadraticVertex fits a parabola through three points and returns the
// x-coordinate of its vertex.
func quadraticVertex(x0, y0, x1, y1, x2, y2 float64) (float64, bool) {
	d1 := (y1 - y0) / (x1 - x0)
	d2 := (y2 - y1) / (x2 - x1)
	denom := d2 - d1
	if math.Abs(denom) < 1e-300 {
		return 0, false
	}
	a := denom / (x2 - x0)
	if math.Abs(a) < 1e-300 {
		return 0, false
	}
	b := d1 - a*(x0+x1)
	return -b / (2 * a), true
}

// interpLinear returns the tau at redshift z by linear interpolation over
// samples (samples are ordered by increasing index = increasing z).
func interpLinear(samples []evolve.Sample, z float64) float64 {
	n := len(samples)
	for i := 1; i < n; i++ {
		if samples[i].Z >= z {
			frac := (z - samples[i-1].Z) / (samples[i].Z - samples[i-1].Z)
			return samples[i-1].Tau + frac*(samples[i].Tau-samples[i-1].Tau)
		}
	}
	return samples[n-1].Tau
}

// interpValueAtTau linearly interpolates buffer v (indexed like samples)
// at conformal time tau, whichever direction tau runs along samples.
func interpValueAtTau(samples []evolve.Sample, v []float64, tau float64) float64 {
	n := len(samples)
	for i := 1; i < n; i++ {
		t0, t1 := samples[i-1].Tau, samples[i].Tau
		if (t0-tau)*(t1-tau) <= 0 && t1 != t0 {
			frac := (tau - t0) / (t1 - t0)
			return v[i-1] + frac*(v[i]-v[i-1])
		}
	}
	return v[n-1]
}
