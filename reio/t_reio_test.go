// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reio

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

func Test_collectindexedseries01(tst *testing.T) {

	chk.PrintTitle("collectindexedseries01")

	// out of declaration order and with xe_ entries interleaved before
	// their matching z_ entries, pairing must still go by parsed index
	params := dbf.Params{
		&dbf.P{N: "xe_2", V: -2}, &dbf.P{N: "z_1", V: 20},
		&dbf.P{N: "xe_1", V: -1}, &dbf.P{N: "z_2", V: 8},
	}
	zs, xes, err := collectIndexedSeries(params)
	if err != nil {
		tst.Errorf("collectIndexedSeries failed: %v", err)
		return
	}
	chk.Scalar(tst, "z_1", 1e-12, zs[0], 20)
	chk.Scalar(tst, "xe_1", 1e-12, xes[0], -1)
	chk.Scalar(tst, "z_2", 1e-12, zs[1], 8)
	chk.Scalar(tst, "xe_2", 1e-12, xes[1], -2)
}

func Test_collectindexedseriesmismatch01(tst *testing.T) {

	chk.PrintTitle("collectindexedseriesmismatch01")

	params := dbf.Params{&dbf.P{N: "z_1", V: 20}, &dbf.P{N: "z_2", V: 8}, &dbf.P{N: "xe_1", V: -1}}
	if _, _, err := collectIndexedSeries(params); err == nil {
		tst.Errorf("collectIndexedSeries should reject an unmatched z_2 with no xe_2")
	}
}

func Test_fhe01(tst *testing.T) {

	chk.PrintTitle("fhe01")

	fHe := FHe(0.245)
	chk.Scalar(tst, "f_He", 1e-4, fHe, 0.0817)
}

func Test_camb01(tst *testing.T) {

	chk.PrintTitle("camb01")

	s, err := New("camb")
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}
	params := dbf.Params{&dbf.P{N: "z_reio", V: 10}, &dbf.P{N: "width", V: 0.5}}
	if err := s.Init(params, FHe(0.245)); err != nil {
		tst.Errorf("Init failed: %v", err)
		return
	}
	s.SetResidualXe(2e-4)

	xeHigh, _ := s.Eval(100)
	if xeHigh > 0.01 {
		tst.Errorf("x_e should be negligible well above z_reio, got %v", xeHigh)
	}

	xeToday, _ := s.Eval(0)
	if xeToday < 1.0 || xeToday > 1.3 {
		tst.Errorf("x_e(0) should land near 1 + 2*f_He, got %v", xeToday)
	}
}

func Test_half_tanh01(tst *testing.T) {

	chk.PrintTitle("half_tanh01")

	s, err := New("half_tanh")
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}
	if err := s.Init(dbf.Params{&dbf.P{N: "z_reio", V: 8}, &dbf.P{N: "width", V: 0.5}}, FHe(0.245)); err != nil {
		tst.Errorf("Init failed: %v", err)
		return
	}
	z, applies := s.LinearBelow()
	if !applies || z != 16 {
		tst.Errorf("expected LinearBelow()=(16,true), got (%v,%v)", z, applies)
	}
}

func Test_many_tanh01(tst *testing.T) {

	chk.PrintTitle("many_tanh01")

	s, err := New("many_tanh")
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}
	params := dbf.Params{
		&dbf.P{N: "z_1", V: 20}, &dbf.P{N: "xe_1", V: -1},
		&dbf.P{N: "z_2", V: 8}, &dbf.P{N: "xe_2", V: -2},
		&dbf.P{N: "width", V: 0.5},
	}
	if err := s.Init(params, FHe(0.245)); err != nil {
		tst.Errorf("Init failed: %v", err)
		return
	}
	s.SetResidualXe(2e-4)

	xeLow, _ := s.Eval(0)
	if xeLow < 1.0+2*FHe(0.245)-0.05 {
		tst.Errorf("x_e(0) should approach 1+2*f_He after both jumps, got %v", xeLow)
	}
}

func Test_bins_tanh01(tst *testing.T) {

	chk.PrintTitle("bins_tanh01")

	s, err := New("bins_tanh")
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}
	params := dbf.Params{
		&dbf.P{N: "z_1", V: 2}, &dbf.P{N: "xe_1", V: 1.1634},
		&dbf.P{N: "z_2", V: 8}, &dbf.P{N: "xe_2", V: 1.1634},
		&dbf.P{N: "z_3", V: 15}, &dbf.P{N: "xe_3", V: 0.0},
	}
	if err := s.Init(params, FHe(0.245)); err != nil {
		tst.Errorf("Init failed: %v", err)
		return
	}
	s.SetResidualXe(2e-4)

	// inside the plateau between bin 1 and bin 2, xe stays near the
	// shared bin value since there is no transition to blend
	mid, _ := s.Eval(5)
	chk.Scalar(tst, "x_e(mid-plateau)", 5e-2, mid, 1.1634)
}

func Test_inter01(tst *testing.T) {

	chk.PrintTitle("inter01")

	s, err := New("inter")
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}
	params := dbf.Params{
		&dbf.P{N: "z_1", V: 0}, &dbf.P{N: "xe_1", V: 1.0},
		&dbf.P{N: "z_2", V: 10}, &dbf.P{N: "xe_2", V: 0.5},
		&dbf.P{N: "z_3", V: 20}, &dbf.P{N: "xe_3", V: 0.0}, // sentinel, resolved by SetResidualXe
	}
	if err := s.Init(params, FHe(0.245)); err != nil {
		tst.Errorf("Init failed: %v", err)
		return
	}
	s.SetResidualXe(2e-4)

	z, applies := s.LinearBelow()
	if !applies || z != 50 {
		tst.Errorf("expected LinearBelow()=(50,true), got (%v,%v)", z, applies)
	}

	mid, _ := s.Eval(5)
	chk.Scalar(tst, "x_e(5)", 1e-12, mid, 0.75)

	high, _ := s.Eval(20)
	chk.Scalar(tst, "x_e(20) resolves sentinel", 1e-12, high, 2e-4)
}
