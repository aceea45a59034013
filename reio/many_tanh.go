// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reio

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

func init() {
	allocators["many_tanh"] = func() Scheme { return new(ManyTanh) }
}

// manyTanhJump is one independently-specified ionization jump.
type manyTanhJump struct {
	z      float64
	target float64 // absolute xe level reached after this jump
}

// ManyTanh implements the `many_tanh` scheme (spec §4.2): a superposition
// of independent tanh jumps at user-specified (z_i, xe_i), all sharing a
// common width w. The sentinel values -1 and -2 expand to the "xe level
// just after first/second helium reionization" (1+f_He and 1+2*f_He).
type ManyTanh struct {
	jumps    []manyTanhJump // sorted by z descending (chronological)
	incr     []float64      // resolved jump increments, same order as jumps
	width    float64
	xeBefore float64
}

func (o *ManyTanh) Init(p dbf.Params, fHe float64) error {
	for _, pp := range p {
		if pp.N == "width" {
			o.width = pp.V
		}
	}
	zs, xes, err := collectIndexedSeries(p)
	if err != nil {
		return chk.Err("reio/many_tanh: %v", err)
	}
	if len(zs) == 0 {
		return chk.Err("reio/many_tanh: need matching (z_i, xe_i) lists, got %d z and %d xe", len(zs), len(xes))
	}
	if o.width <= 0 {
		return chk.Err("reio/many_tanh: width must be > 0, got %g", o.width)
	}
	// resolve sentinels
	for i, xe := range xes {
		switch xe {
		case -1:
			xes[i] = 1 + fHe
		case -2:
			xes[i] = 1 + 2*fHe
		}
	}
	idx := make([]int, len(zs))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return zs[idx[a]] > zs[idx[b]] }) // descending z
	o.jumps = make([]manyTanhJump, len(zs))
	for i, k := range idx {
		o.jumps[i] = manyTanhJump{z: zs[k], target: xes[k]}
	}
	return nil
}

func (o *ManyTanh) SetResidualXe(xe float64) {
	o.xeBefore = xe
	o.incr = make([]float64, len(o.jumps))
	level := xe
	for i, j := range o.jumps {
		o.incr[i] = j.target - level
		level = j.target
	}
}

func (o *ManyTanh) ZReioMax() float64 {
	if len(o.jumps) == 0 {
		return 0
	}
	return o.jumps[0].z + 4*o.width
}

func (o *ManyTanh) LinearBelow() (float64, bool) { return 0, false }

func (o *ManyTanh) Eval(z float64) (xe, dxedz float64) {
	xe = o.xeBefore
	for i, j := range o.jumps {
		arg := (j.z - z) / o.width
		t := math.Tanh(arg)
		s := 0.5 * (1 + t)
		dsdz := -0.5 * (1 - t*t) / o.width
		xe += o.incr[i] * s
		dxedz += o.incr[i] * dsdz
	}
	return
}
