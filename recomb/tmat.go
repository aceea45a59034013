// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recomb

import "math"

// Rg is the Compton-coupling rate coefficient R_g = 8*sigma_T*a_rad/(3*m_e*c)
// such that the Compton heating rate is R_g*x*T_rad^4*(Trad-Tmat), SI units.
const Rg = 8.0 * SigmaT * radiationConstant / (3.0 * ElectronMass * CLight)

// radiationConstant a_rad = 4*sigma_SB/c, J/(m^3 K^4).
const radiationConstant = 7.5657e-16

// tightCouplingXLimit is the threshold ratio t_Th/t_H below which the
// steady-state epsilon-expansion is used instead of the full ODE (spec
// §4.3 design note: this switch is numerically necessary, not optional).
const tightCouplingXLimit = 1e-4

// tmatDeriv implements the Compton-coupling matter-temperature equation
// (spec §4.3), dispatching between the tight-coupling steady-state
// expansion and the full equation based on t_Th/t_H.
//
//	ne    -- free electron number density (m^-3), = x*nH in this package's
//	         convention (x = xH + fHe*xHe)
//	nH    -- hydrogen nuclei number density (m^-3)
//
// returns dTmat/d(-z) = -dTmat/dz.
func tmatDeriv(in Input, cos Cosmology, ne, nH float64) float64 {
	z := in.Z
	tmat := in.Y.Tmat
	trad := in.Trad
	x := in.Y.XH + cos.FHe*in.Y.XHe
	if x < 1e-30 {
		x = 1e-30
	}
	fHe := cos.FHe

	tThInv := Rg * (1 + x + fHe) / x * math.Pow(trad, 3) // ~ 1/t_Th up to a Trad factor folded below
	tTh := 1.0 / (tThInv * trad)
	tH := 1.0 / in.H

	var dTdz float64
	if tTh < tightCouplingXLimit*tH {
		// tight-coupling steady state: first-order expansion around
		// Tmat = Trad (spec §4.3; DO NOT simplify, the two contributions
		// of the full equation cancel to many digits here).
		eps := in.H * (1 + x + fHe) / (Rg * math.Pow(trad, 3) * x)
		dLnEpsDz := in.DlnHDz - ((1+fHe)/(1+x+fHe))*in.DlnXDz - 3.0/(1+z)
		dTdz = cos.Tcmb0 - eps*dLnEpsDz
	} else {
		// full equation
		term1 := Rg * x / (1 + x + fHe) * (tmat - trad) / (in.H * (1 + z))
		term2 := 2 * tmat / (1 + z)
		var term3 float64
		if in.EnergyRate > 0 {
			chi := chiHeat(x)
			term3 = (2.0 / 3.0 / KBoltzmann) * in.EnergyRate * chi / (nH * (1 + fHe + x) * in.H * (1 + z))
		}
		dTdz = term1 + term2 - term3
	}
	return -dTdz
}
