// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recomb

// Variables is the recombination/thermal state vector the evolver (C5)
// integrates: matter temperature plus hydrogen and helium ionized
// fractions (spec §4.3).
type Variables struct {
	Tmat float64 // baryon/matter temperature, K
	XH   float64 // hydrogen ionized fraction n_HII/n_H
	XHe  float64 // helium ionized fraction n_HeII/n_He (singly ionized)
}

// ActiveSet marks which of Variables are being integrated numerically
// this phase (spec §4.4); inactive variables are held at their last
// analytic (Saha) value by the scheduler, not advanced by the kernel.
type ActiveSet struct {
	Tmat, XH, XHe bool
}

// Cosmology carries the background parameters the kernel needs that are
// not queried per-step from the bg.Provider (densities are cheap scalars
// fixed for the whole run).
type Cosmology struct {
	YHe     float64 // primordial helium mass fraction
	FHe     float64 // n_He/n_H number fraction
	NH0     float64 // present-day hydrogen number density, m^-3
	Tcmb0   float64 // present-day CMB temperature, K
	HeSwitch int    // 0..6, selects which He correction terms are active
	Trigger float64 // x_H threshold above which Peebles C -> 1
}

// Input bundles everything the kernel needs for one derivative evaluation.
type Input struct {
	Z           float64 // redshift
	H           float64 // Hubble rate at this z, 1/s (SI, not 1/Mpc)
	DlnHDz      float64 // d ln H / dz
	Trad        float64 // radiation temperature T_cmb*(1+z)
	EnergyRate  float64 // exotic energy injection rate, J/m^3/s
	DlnXDz      float64 // d ln(x_e)/dz, supplied by the caller (Saha-analytic or from the active XH/XHe derivative), needed by the tight-coupling epsilon expansion (spec §4.3)
	Y           Variables
	Active      ActiveSet
}

// Engine is the pluggable recombination physics kernel (spec §4.3): the
// right-hand side of the Saha/Peebles ODE system. Implementations return
// derivatives with respect to -z (evolver integrates backwards in z, spec
// §4.5), i.e. dY/d(-z) = -dY/dz.
type Engine interface {
	// Derivs returns dY/d(-z) for the active variables only; inactive
	// slots are zero (the scheduler does not integrate them).
	Derivs(in Input, cos Cosmology) (dydmz Variables, err error)

	// SahaH returns the Saha-equilibrium hydrogen ionization fraction at
	// redshift z given the matter temperature, used by the scheduler to
	// initialize x_H when a phase switches it from analytic to numeric.
	SahaH(z, tmat float64, cos Cosmology) (xH float64, err error)

	// SahaHe returns the Saha-equilibrium helium ionization fraction
	// (singly ionized branch) at redshift z.
	SahaHe(z, tmat float64, cos Cosmology) (xHe float64, err error)

	// SahaHeII returns the doubly-ionized helium Saha fraction used in
	// the He1/He1f phases (He III -> He II equilibrium).
	SahaHeII(z, tmat float64, cos Cosmology) (xHeII float64, err error)
}
