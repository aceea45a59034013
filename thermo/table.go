// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

// Table is the frozen output of a full run (spec §3 Data Model): one row
// per grid point plus the scalar epoch summary. Index 0 is today (z=0),
// the last index is z_initial, matching package grid's convention.
type Table struct {
	Z   []float64
	Tau []float64

	Xe           []float64
	DKappaDTau   []float64
	D2KappaDTau2 []float64
	D3KappaDTau3 []float64
	ExpMKappa    []float64
	G            []float64
	DGDTau       []float64
	D2GDTau2     []float64
	Tb           []float64
	Cb2          []float64
	DCb2DTau     []float64 // nil unless ComputeCb2Derivatives was set
	D2Cb2DTau2   []float64 // nil unless ComputeCb2Derivatives was set
	TauD         []float64
	Rd           []float64 // nil unless ComputeDampingScale was set
	Rate         []float64 // visibility-variation rate, boxcar-smoothed

	ZRec    float64
	TauRec  float64
	ZD      float64
	TauDrag float64
	ZReio   float64
	TauReio float64

	RsRec float64
	RsD   float64
	DARec float64
	RdRec float64 // zero unless ComputeDampingScale was set

	TauFS  float64
	TauCut float64
}
