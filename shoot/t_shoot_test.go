// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shoot

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_solve01(tst *testing.T) {

	chk.PrintTitle("solve01")

	// a monotone stand-in for "optical depth as a function of z_reio"
	eval := func(z float64) (float64, error) { return z * z, nil }

	z, err := Solve(Target{TauReio: 16}, 0, 10, eval)
	if err != nil {
		tst.Errorf("Solve failed: %v", err)
		return
	}
	chk.Scalar(tst, "z_reio", 1e-2, z, 4)
}

func Test_solveunbracketed01(tst *testing.T) {

	chk.PrintTitle("solveunbracketed01")

	eval := func(z float64) (float64, error) { return z * z, nil }

	if _, err := Solve(Target{TauReio: 1000}, 0, 10, eval); err == nil {
		tst.Errorf("expected an error when tau_reio is not bracketed by [lo, hi]")
	}
}

func Test_solveexact01(tst *testing.T) {

	chk.PrintTitle("solveexact01")

	eval := func(z float64) (float64, error) { return 2 * z, nil }

	z, err := Solve(Target{TauReio: 7, Tol: 1e-6, MaxIter: 60}, 0, 20, eval)
	if err != nil {
		tst.Errorf("Solve failed: %v", err)
		return
	}
	chk.Scalar(tst, "z_reio", 1e-4, z, 3.5)
}
