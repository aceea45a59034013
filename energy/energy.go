// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package energy declares the exotic-energy-injection collaborator (dark
// matter annihilation/decay, PBH accretion/evaporation) and the
// on-the-spot-vs-integrated convolution used when that approximation is
// disabled. The injection physics itself is out of scope (spec §1); this
// package only carries the callback contract and the redshift-kernel
// quadrature that turns an on-the-spot rate into an integrated one.
package energy

import "math"

// Rate is the on-the-spot energy-injection callback, J/m^3/s, zero when no
// exotic channel is active.
type Rate func(z float64) float64

// Zero is the degenerate callback used when no injection model is active.
func Zero(z float64) float64 { return 0 }

// IntegratedKernel wraps an on-the-spot Rate with the redshift-smearing
// kernel used when the on-the-spot approximation is disabled (spec §6):
//
//	K(z,zp) = factor * (1+z)^expZ / (1+zp)^expZp *
//	          exp( (2/3)*factor*((1+z)^1.5 - (1+zp)^1.5) )
//
// integrated over zp via trapezoidal quadrature in steps of dz=1 starting
// at zp=z, until the integrand falls below 2% of its first value.
func IntegratedKernel(onTheSpot Rate, factor, expZ, expZp float64) Rate {
	const dz = 1.0
	const cutoff = 0.02
	return func(z float64) float64 {
		var sum float64
		zp := z
		first := math.NaN()
		prev := math.NaN()
		for {
			k := factor * math.Pow(1+z, expZ) / math.Pow(1+zp, expZp) *
				math.Exp((2.0/3.0)*factor*(math.Pow(1+z, 1.5)-math.Pow(1+zp, 1.5)))
			integrand := k * onTheSpot(zp)
			if math.IsNaN(first) {
				first = math.Abs(integrand)
			}
			if !math.IsNaN(prev) {
				sum += 0.5 * (integrand + prev) * dz
			}
			prev = integrand
			if first > 0 && math.Abs(integrand) < cutoff*first && zp > z+dz {
				break
			}
			zp += dz
			if zp > z+20000 { // guard against runaway quadrature
				break
			}
		}
		return sum
	}
}
