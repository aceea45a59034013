// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bg declares the background-cosmology collaborator consumed by
// the thermodynamics core. Implementations live outside this module; the
// core only ever queries them.
package bg

// Detail controls which fields of a State are populated by a Provider, the
// same way gofem's element interfaces accept a "what to compute" flag
// rather than always filling every output.
type Detail int

const (
	// Short only fills H; cheapest query, used inside the ODE derivative.
	Short Detail = iota
	// Normal additionally fills H', a, and the density fractions.
	Normal
	// Long additionally fills sound horizon, angular-diameter distance,
	// conformal age and cosmic time; used once per derived-quantity pass.
	Long
)

// State holds the subset of background quantities requested via Detail.
type State struct {
	H            float64 // Hubble rate H(τ) [1/Mpc]
	Hprime       float64 // dH/dτ
	A            float64 // scale factor a = 1/(1+z)
	RhoGamma     float64 // photon energy density
	RhoB         float64 // baryon energy density
	RhoCDM       float64 // cold dark matter energy density
	RhoCrit      float64 // critical energy density
	OmegaR       float64 // radiation density fraction today
	SoundHorizon float64 // r_s(τ)
	DA           float64 // angular diameter distance
	ConformalAge float64 // conformal age at τ
	Time         float64 // cosmic time t(τ)
}

// Provider is the background-cosmology collaborator (spec §6). It is the
// only way the core learns about H(τ), densities, or the τ↔z mapping.
type Provider interface {
	// TauOfZ returns the conformal time corresponding to redshift z.
	TauOfZ(z float64) (tau float64, err error)

	// AtTau returns background quantities at conformal time tau, filling
	// only the fields implied by detail.
	AtTau(tau float64, detail Detail) (State, error)
}
