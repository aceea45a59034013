// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shoot implements the optical-depth shooting method (C6, spec
// §4.6): given a target Thomson optical depth tau_reio, it bisects the
// reionization scheme's redshift parameter until the resulting optical
// depth matches within tolerance.
//
// The bisection is hand-rolled rather than routed through gosl/num: the
// pack's root finders (num.Brent, num.NlSolver) solve scalar/vector
// equations given an explicit residual function and expect well-scaled,
// cheap-to-evaluate callbacks, whereas here every evaluation reruns the
// full recombination integration and the bracket is already known to be
// monotone, so a direct bisection is simpler and no less robust.
package shoot

import "github.com/cpmech/gosl/chk"

// Target is the convergence criterion for the bisection.
type Target struct {
	TauReio float64 // desired Thomson optical depth through reionization
	Tol     float64 // relative tolerance on tau_reio
	MaxIter int      // 0 selects a sane default
}

// EvalFunc computes the optical depth resulting from one trial value of
// the reionization redshift parameter. Callers re-run the evolver (and,
// typically, discard the pre-reionization part of the state since it does
// not depend on the reionization parametrization).
type EvalFunc func(zReio float64) (tauReio float64, err error)

// Solve bisects [lo, hi] for the z_reio value whose resulting optical
// depth matches target.TauReio, assuming eval is monotonically increasing
// in zReio (spec §4.6: higher z_reio injects free electrons earlier and
// always raises the accumulated optical depth).
func Solve(target Target, lo, hi float64, eval EvalFunc) (float64, error) {
	if target.MaxIter <= 0 {
		target.MaxIter = 40
	}
	if target.Tol <= 0 {
		target.Tol = 1e-4
	}

	tauInf, err := eval(lo)
	if err != nil {
		return 0, chk.Err("shoot: evaluating lower bracket z_reio=%g failed: %v", lo, err)
	}
	tauSup, err := eval(hi)
	if err != nil {
		return 0, chk.Err("shoot: evaluating upper bracket z_reio=%g failed: %v", hi, err)
	}
	if target.TauReio < tauInf || target.TauReio > tauSup {
		return 0, chk.Err("shoot: tau_reio=%g is not bracketed by z_reio in [%g, %g] (tau=[%g, %g])", target.TauReio, lo, hi, tauInf, tauSup)
	}

	zReio := 0.5 * (lo + hi)
	for iter := 0; iter < target.MaxIter; iter++ {
		zReio = 0.5 * (lo + hi)
		tauMid, err := eval(zReio)
		if err != nil {
			return 0, chk.Err("shoot: evaluating trial z_reio=%g failed: %v", zReio, err)
		}
		if tauMid < target.TauReio {
			lo, tauInf = zReio, tauMid
		} else {
			hi, tauSup = zReio, tauMid
		}
		if (tauSup - tauInf) < target.TauReio*target.Tol {
			return zReio, nil
		}
	}
	return 0, chk.Err("shoot: bisection for tau_reio=%g did not converge after %d iterations (bracket=[%g,%g], tau=[%g,%g])",
		target.TauReio, target.MaxIter, lo, hi, tauInf, tauSup)
}
