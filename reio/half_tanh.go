// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reio

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

func init() {
	allocators["half_tanh"] = func() Scheme { return new(HalfTanh) }
}

// HalfTanh implements the `half_tanh` scheme (spec §4.2): the half-amplitude
// variant of camb's hydrogen tanh, with no helium contribution. Below
// z < 2*z_reio the interpolation service must use linear interpolation
// (derivative discontinuity at the xe_before junction).
type HalfTanh struct {
	zReio    float64
	width    float64
	alpha    float64
	xeBefore float64
}

func (o *HalfTanh) Init(p dbf.Params, fHe float64) error {
	o.alpha = 1.5
	found := false
	for _, pp := range p {
		switch pp.N {
		case "z_reio":
			o.zReio = pp.V
			found = true
		case "width", "delta_z_reio":
			o.width = pp.V
		case "alpha":
			o.alpha = pp.V
		}
	}
	if !found {
		return chk.Err("reio/half_tanh: missing required parameter %q", "z_reio")
	}
	if o.width <= 0 {
		return chk.Err("reio/half_tanh: width must be > 0, got %g", o.width)
	}
	return nil
}

func (o *HalfTanh) SetResidualXe(xe float64) { o.xeBefore = xe }

func (o *HalfTanh) ZReioMax() float64 { return o.zReio + 2*o.width }

func (o *HalfTanh) LinearBelow() (float64, bool) { return 2 * o.zReio, true }

func (o *HalfTanh) Eval(z float64) (xe, dxedz float64) {
	// half-amplitude: the tanh only spans xeBefore to xeBefore + 0.5*(1-xeBefore)
	yArg := (math.Pow(1+o.zReio, o.alpha) - math.Pow(1+z, o.alpha)) / o.alpha / math.Pow(1+o.zReio, o.alpha-1) / o.width
	t := math.Tanh(yArg)
	s := 0.5 * (t + 1)
	dyArgDz := -math.Pow(1+z, o.alpha-1) / (math.Pow(1+o.zReio, o.alpha-1) * o.width)
	dsdz := 0.5 * (1 - t*t) * dyArgDz

	amp := 0.5 * (1 - o.xeBefore)
	xe = o.xeBefore + amp*s
	dxedz = amp * dsdz
	return
}
