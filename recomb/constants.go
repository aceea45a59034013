// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package recomb implements the recombination physics kernel (spec §4.3):
// the right-hand side of the Saha/Peebles ODE system for hydrogen and
// helium, plus the coupled matter-temperature equation. Two engines are
// offered: Peebles (Engine R) and a wrapped external single-call kernel
// (Engine H), matching the two `recombination` choices of spec §6.
package recomb

import "math"

// Physical constants (SI units throughout this package).
const (
	KBoltzmann = 1.380649e-23   // J/K
	HPlanck    = 6.62607015e-34 // J*s
	CLight     = 2.99792458e8   // m/s
	SigmaT     = 6.6524587321e-29 // Thomson cross section, m^2
	ElectronMass = 9.1093837015e-31 // kg
	MH         = 1.67353284e-27 // hydrogen atom mass, kg (includes e- binding)
	EH1s       = 13.598434005136 * 1.602176634e-19 // hydrogen ionization energy, J
	EHe1Ion    = 24.587387936 * 1.602176634e-19    // He I -> He II ionization energy, J
	EHe2Ion    = 54.417760 * 1.602176634e-19       // He II -> He III ionization energy, J
	Lambda2s1sH = 8.2206 // hydrogen 2s-1s two-photon decay rate, 1/s (scaled externally)
	Mpc        = 3.0856775814913673e22 // meters per Mpc
	LyAlphaH   = 121.5682e-9 // hydrogen Lyman-alpha wavelength, m
)

// chiIonH is the saturating DM-injection ionization-efficiency fit for
// hydrogen (spec §4.3): 0.369*(1-x^0.464)^1.702 for x<1, else 0.
func chiIonH(x float64) float64 {
	if x >= 1 {
		return 0
	}
	if x < 0 {
		x = 0
	}
	return 0.369 * math.Pow(1-math.Pow(x, 0.464), 1.702)
}

// chiHeat is the saturating DM-injection heating-efficiency fit (spec
// §4.3): min(0.997*(1-(1-x^0.300)^1.510), 1) for x<1, else 1.
func chiHeat(x float64) float64 {
	if x >= 1 {
		return 1
	}
	if x < 0 {
		x = 0
	}
	v := 0.997 * (1 - math.Pow(1-math.Pow(x, 0.300), 1.510))
	if v > 1 {
		return 1
	}
	return v
}

// peeblesK returns the Peebles two-photon-decay rate-suppression factor K =
// lambda_Lya^3 / (8*pi*H(z)), scaled by the double-Gaussian correction in
// log(1+z) described in spec §4.3. The base term is what suppresses
// recombination relative to the bare Saha rate; the two Gaussian terms are
// a small (<1%) fudge historically fit against a full multi-level hydrogen
// atom code; amplitude/center/width are precision parameters so they can be
// tuned without touching this formula.
func peeblesK(lnOnePlusZ float64, fudge DoubleGaussianFudge, h float64) float64 {
	g1 := fudge.A1 * math.Exp(-math.Pow((lnOnePlusZ-fudge.Z1)/fudge.W1, 2))
	g2 := fudge.A2 * math.Exp(-math.Pow((lnOnePlusZ-fudge.Z2)/fudge.W2, 2))
	base := math.Pow(LyAlphaH, 3) / (8 * math.Pi * h)
	return base * (1 + g1 + g2)
}

// DoubleGaussianFudge parameterizes the Peebles-K correction (spec §4.3
// design note: exposed as tunable precision parameters, not hard-coded).
type DoubleGaussianFudge struct {
	A1, Z1, W1 float64
	A2, Z2, W2 float64
}

// DefaultFudge carries the commonly-used amplitude/center/width triple.
var DefaultFudge = DoubleGaussianFudge{
	A1: -0.14, Z1: 7.28, W1: 0.18,
	A2: 0.079, Z2: 6.73, W2: 0.33,
}
