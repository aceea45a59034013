// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package energy

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_zero01(tst *testing.T) {

	chk.PrintTitle("zero01")

	if Zero(100) != 0 {
		tst.Errorf("Zero should always return 0, got %v", Zero(100))
	}
}

func Test_integratedkernel01(tst *testing.T) {

	chk.PrintTitle("integratedkernel01")

	// a constant on-the-spot rate smeared by the kernel should still
	// yield a positive, finite integrated rate
	onTheSpot := func(z float64) float64 { return 1.0 }
	kernel := IntegratedKernel(onTheSpot, 1e-4, 0, 0)
	v := kernel(100)
	if v <= 0 {
		tst.Errorf("expected a positive integrated rate, got %v", v)
	}
}

func Test_integratedkerneldecay01(tst *testing.T) {

	chk.PrintTitle("integratedkerneldecay01")

	onTheSpot := func(z float64) float64 { return 1.0 }
	kernel := IntegratedKernel(onTheSpot, 1e-3, 0, 0)
	lowZ := kernel(10)
	highZ := kernel(1000)
	if highZ <= 0 || lowZ <= 0 {
		tst.Errorf("both evaluations should be positive, got %v and %v", lowZ, highZ)
	}
}
