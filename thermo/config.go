// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package thermo orchestrates C1-C8 into the public ionization-history
// engine (spec §5-§6): build the grid, schedule the phases, integrate the
// recombination/thermal state, optionally shoot for a target optical
// depth, run the derived-quantity pass, and freeze an interpolation
// service for querying.
package thermo

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Config mirrors the JSON-configurable run parameters of spec §6, in the
// same tagged-struct style as inp.Simulation.
type Config struct {
	YHe                     float64 `json:"YHe"`                       // 0 selects the BBN table lookup
	OmegaB                  float64 `json:"omega_b"`                   // baryon density, needed only for the BBN lookup
	DeltaNeff               float64 `json:"delta_Neff"`                // extra relativistic species, BBN lookup
	BBNTablePath            string  `json:"bbn_table_path"`            // only read when YHe == 0
	TCmb                    float64 `json:"T_cmb"`                     // present-day CMB temperature, K
	Recombination           string  `json:"recombination"`             // engine name: "R" (Peebles) or "H" (external)
	ReioParametrization     string             `json:"reio_parametrization"` // camb, half_tanh, bins_tanh, many_tanh, inter
	ReioParams              map[string]float64 `json:"reio_parameters"`      // scheme-specific named parameters
	ReioZOrTau              string  `json:"reio_z_or_tau"`              // "z" or "tau": which of the two below is the target
	ZReio                   float64 `json:"z_reio"`
	TauReio                 float64 `json:"tau_reio"`
	ComputeDampingScale     bool    `json:"compute_damping_scale"`
	ComputeCb2Derivatives   bool    `json:"compute_cb2_derivatives"`
	ThermoZInitial          float64 `json:"thermo_z_initial"`
	ThermoZLinear           float64 `json:"thermo_z_linear"`
	ReionizationZStartMax   float64 `json:"reionization_z_start_max"`
	ThermoNzLog             int     `json:"thermo_Nz_log"`
	ThermoNzLin             int     `json:"thermo_Nz_lin"`
	ReionizationSampling    int     `json:"reionization_sampling"`
	Verbose                 bool    `json:"verbose"`
}

// SetDefault fills every field left at its zero value with the spec's
// documented default (spec §6), following inp.SolverData's convention.
func (o *Config) SetDefault() {
	if o.Recombination == "" {
		o.Recombination = "R"
	}
	if o.ReioParametrization == "" {
		o.ReioParametrization = "camb"
	}
	if o.ReioZOrTau == "" {
		o.ReioZOrTau = "z"
	}
	if o.ThermoZInitial == 0 {
		o.ThermoZInitial = 5.3e7 // WKB-safe start for Radau5 at electron-positron annihilation, well above He recombination
	}
	if o.ThermoZLinear == 0 {
		o.ThermoZLinear = 8000
	}
	if o.ReionizationZStartMax == 0 {
		o.ReionizationZStartMax = 50
	}
	if o.ThermoNzLog == 0 {
		o.ThermoNzLog = 500
	}
	if o.ThermoNzLin == 0 {
		o.ThermoNzLin = 5000
	}
	if o.ReionizationSampling == 0 {
		o.ReionizationSampling = 500
	}
	if o.TCmb == 0 {
		o.TCmb = 2.7255
	}
	if o.BBNTablePath == "" {
		o.BBNTablePath = "data/bbn_helium.tsv"
	}
}

// Tcmb0 returns the configured present-day CMB temperature.
func (o *Config) Tcmb0() float64 { return o.TCmb }

// dbfReioParams converts the JSON-friendly name->value map into the
// dbf.Params slice the reio schemes expect (spec §4.2).
func (o *Config) dbfReioParams() dbf.Params {
	params := make(dbf.Params, 0, len(o.ReioParams))
	for name, value := range o.ReioParams {
		params = append(params, &dbf.P{N: name, V: value})
	}
	return params
}

// ReadConfig reads a JSON configuration file, applying defaults before
// unmarshalling so that a partial file only overrides what it names
// (spec §6, mirroring inp.ReadSim's default-then-decode order).
func ReadConfig(path string) (*Config, error) {
	var cfg Config
	cfg.SetDefault()
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("thermo: cannot read configuration file %q: %v", path, err)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, chk.Err("thermo: cannot parse configuration file %q: %v", path, err)
	}
	return &cfg, nil
}
