// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evolve

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/iamalisalehi/thermo/bg/toy"
	"github.com/iamalisalehi/thermo/grid"
	"github.com/iamalisalehi/thermo/recomb"
	"github.com/iamalisalehi/thermo/sched"
)

func smallGrid(tst *testing.T) (*grid.Grid, *toy.Background) {
	background := toy.New(toy.Params{
		H0: 67.36, OmegaM: 0.3153, OmegaB: 0.0493, OmegaR: 9.24e-5, OmegaLambda: 0.6847, Tcmb0: 2.7255,
	})
	g, err := grid.Build(grid.Params{
		ZInitial: 1e4, ZLinear: 1600, ZReioMax: 50,
		NLog: 6, NLin: 6, NReio: 4,
	}, background)
	if err != nil {
		tst.Fatalf("grid.Build failed: %v", err)
	}
	return g, background
}

func Test_run01(tst *testing.T) {

	chk.PrintTitle("run01")

	g, background := smallGrid(tst)
	engine, err := recomb.New("R")
	if err != nil {
		tst.Fatalf("recomb.New failed: %v", err)
	}
	cos := recomb.Cosmology{YHe: 0.245, FHe: 0.0817, NH0: 0.188, Tcmb0: 2.7255, HeSwitch: 6, Trigger: 0.99}
	boundaries := sched.DefaultBoundaries(50)

	samples, err := Run(g, background, engine, Config{Cosmology: cos, Boundaries: boundaries})
	if err != nil {
		tst.Errorf("Run failed: %v", err)
		return
	}
	if len(samples) != len(g.Z) {
		tst.Errorf("expected %d samples, got %d", len(g.Z), len(samples))
	}
	for i, s := range samples {
		if s.Y.XH < 0 || s.Y.XH > 1.01 {
			tst.Errorf("sample %d: XH out of range: %v", i, s.Y.XH)
		}
		if s.Y.Tmat <= 0 {
			tst.Errorf("sample %d: Tmat must stay positive, got %v", i, s.Y.Tmat)
		}
	}
	// near z_initial hydrogen should be essentially fully ionized
	if samples[len(samples)-1].Y.XH < 0.9 {
		tst.Errorf("expected near-full ionization at z_initial, got %v", samples[len(samples)-1].Y.XH)
	}
}
