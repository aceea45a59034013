// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_setdefault01(tst *testing.T) {

	chk.PrintTitle("setdefault01")

	var cfg Config
	cfg.SetDefault()
	if cfg.Recombination != "R" {
		tst.Errorf("default recombination engine should be R, got %q", cfg.Recombination)
	}
	if cfg.ReioParametrization != "camb" {
		tst.Errorf("default reio parametrization should be camb, got %q", cfg.ReioParametrization)
	}
	if cfg.ReioZOrTau != "z" {
		tst.Errorf("default reio_z_or_tau should be z, got %q", cfg.ReioZOrTau)
	}
	chk.Scalar(tst, "T_cmb default", 1e-12, cfg.TCmb, 2.7255)
}

func Test_setdefaultpreserves01(tst *testing.T) {

	chk.PrintTitle("setdefaultpreserves01")

	cfg := Config{Recombination: "H", ZReio: 12}
	cfg.SetDefault()
	if cfg.Recombination != "H" {
		tst.Errorf("SetDefault should not override an already-set field, got %q", cfg.Recombination)
	}
	chk.Scalar(tst, "z_reio preserved", 1e-12, cfg.ZReio, 12)
}

func Test_dbfreioparams01(tst *testing.T) {

	chk.PrintTitle("dbfreioparams01")

	cfg := Config{ReioParams: map[string]float64{"z_reio": 10, "width": 0.5}}
	params := cfg.dbfReioParams()
	if len(params) != 2 {
		tst.Errorf("expected 2 params, got %d", len(params))
	}
	found := map[string]float64{}
	for _, p := range params {
		found[p.N] = p.V
	}
	chk.Scalar(tst, "z_reio", 1e-12, found["z_reio"], 10)
	chk.Scalar(tst, "width", 1e-12, found["width"], 0.5)
}

func Test_readconfig01(tst *testing.T) {

	chk.PrintTitle("readconfig01")

	dir := tst.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"z_reio": 9, "recombination": "H"}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		tst.Fatalf("cannot write temp config: %v", err)
	}

	cfg, err := ReadConfig(path)
	if err != nil {
		tst.Errorf("ReadConfig failed: %v", err)
		return
	}
	if cfg.Recombination != "H" {
		tst.Errorf("expected recombination=H from file, got %q", cfg.Recombination)
	}
	chk.Scalar(tst, "z_reio", 1e-12, cfg.ZReio, 9)
	// an untouched field should still carry its default
	if cfg.ReioParametrization != "camb" {
		tst.Errorf("expected default reio_parametrization to survive partial override, got %q", cfg.ReioParametrization)
	}
}
