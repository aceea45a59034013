// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/iamalisalehi/thermo/bg"
)

// linearProvider is a trivial bg.Provider with tau(z) = 1/(1+z), strictly
// decreasing in z, just enough to exercise Build's plumbing.
type linearProvider struct{}

func (linearProvider) TauOfZ(z float64) (float64, error) {
	return 1.0 / (1.0 + z), nil
}

func (linearProvider) AtTau(tau float64, detail bg.Detail) (bg.State, error) {
	return bg.State{}, nil
}

func Test_build01(tst *testing.T) {

	chk.PrintTitle("build01")

	g, err := Build(Params{
		ZInitial: 1e4, ZLinear: 1600, ZReioMax: 50,
		NLog: 10, NLin: 10, NReio: 10,
	}, linearProvider{})
	if err != nil {
		tst.Errorf("Build failed: %v", err)
		return
	}

	if g.Z[0] != 0 {
		tst.Errorf("Z[0] should be 0 (today), got %g", g.Z[0])
	}
	if g.Z[len(g.Z)-1] != 1e4 {
		tst.Errorf("Z[last] should be z_initial=1e4, got %g", g.Z[len(g.Z)-1])
	}
	for i := 1; i < len(g.Z); i++ {
		if g.Z[i] <= g.Z[i-1] {
			tst.Errorf("Z must be strictly increasing at index %d: %g <= %g", i, g.Z[i], g.Z[i-1])
		}
	}

	expectedN := 10 + 9 + 9
	if len(g.Z) != expectedN {
		tst.Errorf("expected %d points after dropping shared endpoints, got %d", expectedN, len(g.Z))
	}

	chk.Scalar(tst, "TauIni", 1e-15, g.TauIni, g.Tau[len(g.Tau)-1])
}

func Test_buildbadzinitial01(tst *testing.T) {

	chk.PrintTitle("buildbadzinitial01")

	_, err := Build(Params{
		ZInitial: 3000, ZLinear: 1600, ZReioMax: 50,
		NLog: 10, NLin: 10, NReio: 10,
	}, linearProvider{})
	if err == nil {
		tst.Errorf("expected an error for z_initial below the latest helium epoch")
	}
}

func Test_buildbadboundaries01(tst *testing.T) {

	chk.PrintTitle("buildbadboundaries01")

	_, err := Build(Params{
		ZInitial: 1e4, ZLinear: 50, ZReioMax: 1600,
		NLog: 10, NLin: 10, NReio: 10,
	}, linearProvider{})
	if err == nil {
		tst.Errorf("expected an error when z_reio_max >= z_linear")
	}
}

func Test_buildtoofewpoints01(tst *testing.T) {

	chk.PrintTitle("buildtoofewpoints01")

	_, err := Build(Params{
		ZInitial: 1e4, ZLinear: 1600, ZReioMax: 50,
		NLog: 1, NLin: 10, NReio: 10,
	}, linearProvider{})
	if err == nil {
		tst.Errorf("expected an error for NLog < 2")
	}
}
