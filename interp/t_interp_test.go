// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_splinequadratic01(tst *testing.T) {

	chk.PrintTitle("splinequadratic01")

	// a cubic spline must reproduce a quadratic exactly away from the
	// natural-boundary endpoints where the imposed y''=0 distorts it
	x := []float64{0, 1, 2, 3, 4, 5}
	y := make([]float64, len(x))
	f := func(v float64) float64 { return v*v - 2*v + 1 }
	for i, xi := range x {
		y[i] = f(xi)
	}
	sp, err := newSpline(x, y)
	if err != nil {
		tst.Fatalf("newSpline failed: %v", err)
	}
	i := sp.locate(2.5)
	v, dv, _ := sp.eval(2.5, i)
	chk.Scalar(tst, "spline(2.5)", 1e-8, v, f(2.5))
	chk.Scalar(tst, "spline'(2.5)", 1e-6, dv, 2*2.5-2)
}

func Test_locatefrom01(tst *testing.T) {

	chk.PrintTitle("locatefrom01")

	x := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	y := make([]float64, len(x))
	sp, err := newSpline(x, y)
	if err != nil {
		tst.Fatalf("newSpline failed: %v", err)
	}
	from := sp.locateFrom(5.5, 2)
	scratch := sp.locate(5.5)
	if from != scratch {
		tst.Errorf("locateFrom and locate disagree: %d vs %d", from, scratch)
	}
}

func Test_service01(tst *testing.T) {

	chk.PrintTitle("service01")

	z := []float64{0, 10, 20, 30, 40, 50}
	y := []float64{0, 100, 400, 900, 1600, 2500} // z^2
	svc, err := NewService(z, 50, -1, false)
	if err != nil {
		tst.Fatalf("NewService failed: %v", err)
	}
	if err := svc.AddColumn("x2", y, nil); err != nil {
		tst.Fatalf("AddColumn failed: %v", err)
	}

	v, _, _, err := svc.Eval("x2", 25, Normal, nil)
	if err != nil {
		tst.Errorf("Eval failed: %v", err)
	}
	if math.Abs(v-625) > 20 {
		tst.Errorf("spline(25) should be close to 625, got %v", v)
	}

	// above z_initial: linear extrapolation from the last segment's slope
	vExt, _, _, err := svc.Eval("x2", 60, Normal, nil)
	if err != nil {
		tst.Errorf("Eval failed: %v", err)
	}
	if vExt <= y[len(y)-1] {
		tst.Errorf("extrapolation above z_initial should continue increasing, got %v", vExt)
	}
}

func Test_servicelinearbelow01(tst *testing.T) {

	chk.PrintTitle("servicelinearbelow01")

	z := []float64{0, 5, 10, 15, 20}
	y := []float64{0, 25, 100, 225, 400}
	svc, err := NewService(z, 20, 12, true)
	if err != nil {
		tst.Fatalf("NewService failed: %v", err)
	}
	if err := svc.AddColumn("x2", y, nil); err != nil {
		tst.Fatalf("AddColumn failed: %v", err)
	}

	// below linearBelowZ, evaluation must match plain linear
	// interpolation between the bracketing grid points, not the spline
	v, _, _, err := svc.Eval("x2", 7, Normal, nil)
	if err != nil {
		tst.Errorf("Eval failed: %v", err)
	}
	want, _ := linearEval(z, y, 7)
	chk.Scalar(tst, "linear region x2(7)", 1e-12, v, want)
}

func Test_serviceunknowncolumn01(tst *testing.T) {

	chk.PrintTitle("serviceunknowncolumn01")

	svc, err := NewService([]float64{0, 1, 2}, 2, -1, false)
	if err != nil {
		tst.Fatalf("NewService failed: %v", err)
	}
	if _, _, _, err := svc.Eval("missing", 1, Normal, nil); err == nil {
		tst.Errorf("expected an error for an unregistered column")
	}
}
