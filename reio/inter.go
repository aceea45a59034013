// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reio

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

func init() {
	allocators["inter"] = func() Scheme { return new(Inter) }
}

// Inter implements the `inter` scheme (spec §4.2): piecewise-linear through
// user (z_i, xe_i) points. The first z must be 0 and the last xe must be
// the sentinel 0, meaning "whatever the recombination integrator would
// have produced" (i.e. xe_before). Below z < 50 the interpolation service
// must use linear interpolation (spec §4.2).
type Inter struct {
	z        []float64 // increasing, z[0] == 0
	xe       []float64 // xe[last] resolved from sentinel 0 -> xeBefore
	xeBefore float64
}

func (o *Inter) Init(p dbf.Params, fHe float64) error {
	zs, xes, err := collectIndexedSeries(p)
	if err != nil {
		return chk.Err("reio/inter: %v", err)
	}
	if len(zs) < 2 {
		return chk.Err("reio/inter: need >=2 matching (z_i, xe_i) pairs, got %d z and %d xe", len(zs), len(xes))
	}
	if zs[0] != 0 {
		return chk.Err("reio/inter: first z must be 0, got %g", zs[0])
	}
	o.z = zs
	o.xe = xes
	return nil
}

func (o *Inter) SetResidualXe(xe float64) {
	o.xeBefore = xe
	if o.xe[len(o.xe)-1] == 0 {
		o.xe[len(o.xe)-1] = xe
	}
}

func (o *Inter) ZReioMax() float64 { return o.z[len(o.z)-1] }

func (o *Inter) LinearBelow() (float64, bool) { return 50, true }

func (o *Inter) Eval(z float64) (xe, dxedz float64) {
	n := len(o.z)
	if z >= o.z[n-1] {
		return o.xe[n-1], 0
	}
	if z <= o.z[0] {
		return o.xe[0], (o.xe[1] - o.xe[0]) / (o.z[1] - o.z[0])
	}
	i := 0
	for i < n-2 && o.z[i+1] < z {
		i++
	}
	slope := (o.xe[i+1] - o.xe[i]) / (o.z[i+1] - o.z[i])
	xe = o.xe[i] + slope*(z-o.z[i])
	dxedz = slope
	return
}
