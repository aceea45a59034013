// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package toy is a minimal flat-FRW background-cosmology collaborator
// (bg.Provider) for demonstrating and testing the thermodynamics engine
// standalone, without wiring in a full Boltzmann-code background module.
// It is not a precision background: matter, radiation and a cosmological
// constant only, no neutrino decoupling physics.
package toy

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/iamalisalehi/thermo/bg"
)

// Params are the standard flat-FRW density fractions today, plus H0.
type Params struct {
	H0          float64 // km/s/Mpc
	OmegaM      float64 // matter (baryons + CDM)
	OmegaB      float64 // baryons only, subset of OmegaM
	OmegaR      float64 // radiation (photons + massless neutrinos)
	OmegaLambda float64
	Tcmb0       float64 // K
}

// Background implements bg.Provider over Params by direct quadrature of
// the Friedmann equation (spec §6 background collaborator contract).
type Background struct {
	p     Params
	h0Mpc float64 // H0 in 1/Mpc
}

const cLightKmS = 2.99792458e5 // speed of light, km/s

// New builds a Background, converting H0 from km/s/Mpc to 1/Mpc (dividing
// by c in km/s, since tau is a length-like Mpc coordinate).
func New(p Params) *Background {
	return &Background{p: p, h0Mpc: p.H0 / cLightKmS}
}

// hubbleRatio returns H(a)/H0, dimensionless.
func (b *Background) hubbleRatio(a float64) float64 {
	p := b.p
	return math.Sqrt(p.OmegaM/(a*a*a) + p.OmegaR/(a*a*a*a) + p.OmegaLambda)
}

// TauOfZ integrates dτ = da/(a^2 H(a)) from 0 to a=1/(1+z).
func (b *Background) TauOfZ(z float64) (float64, error) {
	if z < 0 {
		return 0, chk.Err("bg/toy: z=%g must be >= 0", z)
	}
	a := 1.0 / (1.0 + z)
	integrand := func(ap float64) float64 {
		if ap <= 0 {
			return 0 // integrand -> finite const as a->0 in a radiation-dominated universe; 0 is a safe floor at the single endpoint
		}
		return 1.0 / (ap * ap * b.h0Mpc * b.hubbleRatio(ap))
	}
	tau := quad.Fixed(integrand, 0, a, 256, quad.Legendre{}, 0)
	return tau, nil
}

// aOfTau inverts TauOfZ by bisection: tau(a) is strictly increasing in a,
// so a plain bisection suffices (no root-finding library needed for a
// single monotone scalar inversion with a known bracket).
func (b *Background) aOfTau(tau float64) (float64, error) {
	lo, hi := 1e-12, 1.0
	tauAt := func(a float64) float64 {
		z := 1/a - 1
		t, _ := b.TauOfZ(z)
		return t
	}
	if tau <= tauAt(lo) {
		return lo, nil
	}
	if tau >= tauAt(hi) {
		return hi, nil
	}
	for iter := 0; iter < 80; iter++ {
		mid := 0.5 * (lo + hi)
		if tauAt(mid) < tau {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi), nil
}

// AtTau fills a bg.State at conformal time tau, computing only what
// detail requests.
func (b *Background) AtTau(tau float64, detail bg.Detail) (bg.State, error) {
	a, err := b.aOfTau(tau)
	if err != nil {
		return bg.State{}, err
	}
	h := b.h0Mpc * b.hubbleRatio(a)
	st := bg.State{H: h, A: a}
	if detail == bg.Short {
		return st, nil
	}

	p := b.p
	st.RhoCrit = 1
	st.RhoB = p.OmegaB / (a * a * a)
	st.RhoCDM = (p.OmegaM - p.OmegaB) / (a * a * a)
	st.RhoGamma = p.OmegaR / (a * a * a * a)
	st.OmegaR = p.OmegaR
	// dH/dtau = (da/dtau)*dH/da = a^2*H*dH/da; differentiate the Friedmann
	// equation directly.
	dHRatioDa := -3*p.OmegaM/math.Pow(a, 4) - 4*p.OmegaR/math.Pow(a, 5)
	dHRatioDa /= 2 * b.hubbleRatio(a)
	st.Hprime = a * a * h * b.h0Mpc * dHRatioDa
	if detail == bg.Normal {
		return st, nil
	}

	st.ConformalAge = tau
	st.Time = cosmicTime(b, a)
	st.SoundHorizon = soundHorizon(b, a)
	st.DA = a * (tauToday(b) - tau) // flat-universe comoving distance * a
	return st, nil
}

func tauToday(b *Background) float64 {
	tau, _ := b.TauOfZ(0)
	return tau
}

// cosmicTime integrates dt = a*dtau = a^2 da/(a^2 H) = da/H(a).
func cosmicTime(b *Background, aMax float64) float64 {
	integrand := func(a float64) float64 {
		if a <= 0 {
			return 0
		}
		return 1.0 / (b.h0Mpc * b.hubbleRatio(a))
	}
	return quad.Fixed(integrand, 0, aMax, 256, quad.Legendre{}, 0)
}

// soundHorizon integrates the photon-baryon sound speed over conformal
// time up to a (toy approximation: c_s = c/sqrt(3(1+R)), R = 3*rhoB/4*rhoGamma).
func soundHorizon(b *Background, aMax float64) float64 {
	integrand := func(a float64) float64 {
		if a <= 0 {
			return 1.0 / math.Sqrt(3)
		}
		r := 0.75 * b.p.OmegaB * a / b.p.OmegaR
		cs := 1.0 / math.Sqrt(3*(1+r))
		return cs / (a * a * b.h0Mpc * b.hubbleRatio(a))
	}
	return quad.Fixed(integrand, 0, aMax, 256, quad.Legendre{}, 0)
}
