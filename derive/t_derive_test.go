// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derive

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/iamalisalehi/thermo/evolve"
	"github.com/iamalisalehi/thermo/recomb"
)

func Test_comptonrate01(tst *testing.T) {

	chk.PrintTitle("comptonrate01")

	cos := recomb.Cosmology{NH0: 2.5e-7, FHe: 0.08}
	samples := []evolve.Sample{
		{Z: 1000, Y: recomb.Variables{XH: 0.9, XHe: 1.0}},
	}
	got := comptonRate(samples, cos)
	xe := 0.9 + cos.FHe*1.0
	want := math.Pow(1001, 2) * cos.NH0 * xe * recomb.SigmaT * recomb.Mpc
	chk.Scalar(tst, "dkappa/dtau", 1e-20, got[0], want)
}

func Test_centralderivlinear01(tst *testing.T) {

	chk.PrintTitle("centralderivlinear01")

	x := []float64{0, 1, 2.5, 4, 6}
	f := make([]float64, len(x))
	for i, xi := range x {
		f[i] = 3*xi + 1 // exact linear function
	}
	d := centralDeriv(x, f)
	for i, dv := range d {
		chk.Scalar(tst, "slope", 1e-10, dv, 3)
		_ = i
	}
}

func Test_centralderivquadratic01(tst *testing.T) {

	chk.PrintTitle("centralderivquadratic01")

	x := []float64{0, 1, 2, 3, 4}
	f := make([]float64, len(x))
	for i, xi := range x {
		f[i] = xi * xi
	}
	d := centralDeriv(x, f)
	// interior points on a uniform grid: exact for quadratics
	chk.Scalar(tst, "d/dx(x^2) at x=2", 1e-10, d[2], 4)
}

func Test_quadraticvertex01(tst *testing.T) {

	chk.PrintTitle("quadraticvertex01")

	// y = -(x-5)^2 + 10, vertex at x=5
	f := func(x float64) float64 { return -(x-5)*(x-5) + 10 }
	x0, x1, x2 := 3.0, 5.0, 7.0
	v, ok := quadraticVertex(x0, f(x0), x1, f(x1), x2, f(x2))
	if !ok {
		tst.Errorf("quadraticVertex reported not-ok for a well-posed parabola")
	}
	chk.Scalar(tst, "vertex", 1e-8, v, 5)
}

func Test_quadraticvertexdegenerate01(tst *testing.T) {

	chk.PrintTitle("quadraticvertexdegenerate01")

	// collinear points: no parabola, should report not-ok
	_, ok := quadraticVertex(0, 0, 1, 1, 2, 2)
	if ok {
		tst.Errorf("quadraticVertex should report not-ok for collinear points")
	}
}

func Test_boxcarsmooth01(tst *testing.T) {

	chk.PrintTitle("boxcarsmooth01")

	x := []float64{0, 0, 0, 9, 0, 0, 0}
	sm := boxcarSmooth(x, 1)
	// the spike at index 3 should be averaged with its neighbors
	chk.Scalar(tst, "smoothed spike", 1e-12, sm[3], 3)
	// a flat region stays flat
	chk.Scalar(tst, "smoothed flat", 1e-12, sm[0], 0)
}

func Test_interplinear01(tst *testing.T) {

	chk.PrintTitle("interplinear01")

	samples := []evolve.Sample{
		{Z: 0, Tau: 100},
		{Z: 10, Tau: 80},
		{Z: 20, Tau: 60},
	}
	tau := interpLinear(samples, 5)
	chk.Scalar(tst, "tau(z=5)", 1e-12, tau, 90)
}

func Test_interpvalueattau01(tst *testing.T) {

	chk.PrintTitle("interpvalueattau01")

	samples := []evolve.Sample{
		{Z: 0, Tau: 0},
		{Z: 10, Tau: 10},
		{Z: 20, Tau: 20},
	}
	v := []float64{0, 100, 200}
	got := interpValueAtTau(samples, v, 15)
	chk.Scalar(tst, "v(tau=15)", 1e-12, got, 150)
}
