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
	allocators["bins_tanh"] = func() Scheme { return new(BinsTanh) }
}

// BinsTanh implements the `bins_tanh` scheme (spec §4.2): given bin
// centers (z_i, xe_i), the value between adjacent centers is blended via a
// tanh of sharpness `s` around their midpoint redshift; the two endpoints
// are extrapolated geometrically beyond the first/last bin center.
type BinsTanh struct {
	z        []float64 // bin centers, increasing
	xe       []float64 // corresponding xe values
	sharp    float64   // tanh sharpness
	xeBefore float64
}

// Init reads z_i (increasing) and xe_i (same length) plus sharpness.
func (o *BinsTanh) Init(p dbf.Params, fHe float64) error {
	o.sharp = 10.0
	for _, pp := range p {
		if pp.N == "sharpness" {
			o.sharp = pp.V
		}
	}
	zs, xes, err := collectIndexedSeries(p)
	if err != nil {
		return chk.Err("reio/bins_tanh: %v", err)
	}
	if len(zs) < 2 {
		return chk.Err("reio/bins_tanh: need >=2 matching (z_i, xe_i) pairs, got %d z and %d xe", len(zs), len(xes))
	}
	idx := make([]int, len(zs))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return zs[idx[a]] < zs[idx[b]] })
	o.z = make([]float64, len(zs))
	o.xe = make([]float64, len(zs))
	for i, k := range idx {
		o.z[i] = zs[k]
		o.xe[i] = xes[k]
	}
	if o.sharp <= 0 {
		return chk.Err("reio/bins_tanh: sharpness must be > 0, got %g", o.sharp)
	}
	return nil
}

func (o *BinsTanh) SetResidualXe(xe float64) { o.xeBefore = xe }

func (o *BinsTanh) ZReioMax() float64 { return o.z[len(o.z)-1] * 1.2 }

func (o *BinsTanh) LinearBelow() (float64, bool) { return 0, false }

func (o *BinsTanh) Eval(z float64) (xe, dxedz float64) {
	n := len(o.z)
	if z <= o.z[0] {
		// below first bin center: geometric extrapolation toward z=0
		if o.z[0] <= 0 {
			return o.xe[0], 0
		}
		ratio := math.Pow(o.xe[0]/math.Max(o.xeBefore, 1e-300), z/o.z[0])
		xe = o.xeBefore * ratio
		dxedz = xe * math.Log(math.Max(o.xe[0]/math.Max(o.xeBefore, 1e-300), 1e-300)) / o.z[0]
		return
	}
	if z >= o.z[n-1] {
		// above last bin center: geometric extrapolation toward xe_before
		span := o.zReioMaxSpan()
		t := (z - o.z[n-1]) / span
		xe = o.xe[n-1] * math.Exp(-t) + o.xeBefore*(1-math.Exp(-t))
		dxedz = (o.xeBefore - o.xe[n-1]) * math.Exp(-t) / span
		return
	}
	// locate bin interval
	i := 0
	for i < n-2 && o.z[i+1] < z {
		i++
	}
	zMid := 0.5 * (o.z[i] + o.z[i+1])
	arg := o.sharp * (zMid - z) / (o.z[i+1] - o.z[i])
	t := math.Tanh(arg)
	s := 0.5 * (1 + t)
	dsdz := -0.5 * (1 - t*t) * o.sharp / (o.z[i+1] - o.z[i])
	xe = o.xe[i] + (o.xe[i+1]-o.xe[i])*s
	dxedz = (o.xe[i+1] - o.xe[i]) * dsdz
	return
}

func (o *BinsTanh) zReioMaxSpan() float64 {
	if len(o.z) < 2 {
		return 1
	}
	return o.z[len(o.z)-1] - o.z[len(o.z)-2]
}
