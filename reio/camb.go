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
	allocators["camb"] = func() Scheme { return new(Camb) }
}

// Camb implements the `camb` scheme (spec §4.2): a hydrogen tanh in the
// (1+z)^α variable, plus an additional helium tanh (both He electrons
// released together) centered at z_He with width w_He.
type Camb struct {
	zReio   float64 // hydrogen reionization center
	width   float64 // hydrogen transition width Δz_reio
	alpha   float64 // exponent of the (1+z) variable; CLASS default 1.5
	zHe     float64 // helium reionization center
	widthHe float64 // helium transition width
	fHe     float64 // helium number fraction
	xeAfter float64 // fully ionized hydrogen value (normally 1)
	xeBefore float64 // residual xe_before handoff
}

// Init reads {z_reio, width (or delta_z_reio), alpha, z_He, width_He}.
func (o *Camb) Init(p dbf.Params, fHe float64) error {
	o.fHe = fHe
	o.alpha = 1.5
	o.xeAfter = 1.0
	o.zHe = 3.5
	o.widthHe = 0.5
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
		case "z_He":
			o.zHe = pp.V
		case "width_He":
			o.widthHe = pp.V
		case "xe_after":
			o.xeAfter = pp.V
		}
	}
	if !found {
		return chk.Err("reio/camb: missing required parameter %q", "z_reio")
	}
	if o.width <= 0 {
		return chk.Err("reio/camb: width must be > 0, got %g", o.width)
	}
	if o.widthHe <= 0 {
		return chk.Err("reio/camb: width_He must be > 0, got %g", o.widthHe)
	}
	return nil
}

func (o *Camb) SetResidualXe(xe float64) { o.xeBefore = xe }

func (o *Camb) ZReioMax() float64 { return o.zReio + 2*o.width + o.zHe }

func (o *Camb) LinearBelow() (float64, bool) { return 0, false }

// tanhStep returns s(z) and ds/dz for a tanh transition in the variable
// y(z) = (1+z)^α/α, centered so that s→1 as z→0 and s→0 as z→∞.
func tanhStep(z, zc, width, alpha float64) (s, dsdz float64) {
	yArg := (math.Pow(1+zc, alpha) - math.Pow(1+z, alpha)) / alpha / math.Pow(1+zc, alpha-1) / width
	t := math.Tanh(yArg)
	s = 0.5 * (t + 1)
	dyArgDz := -math.Pow(1+z, alpha-1) / (math.Pow(1+zc, alpha-1) * width)
	dsdz = 0.5 * (1 - t*t) * dyArgDz
	return
}

func (o *Camb) Eval(z float64) (xe, dxedz float64) {
	sH, dsH := tanhStep(z, o.zReio, o.width, o.alpha)
	xeH := o.xeBefore + (o.xeAfter-o.xeBefore)*sH
	dxeH := (o.xeAfter - o.xeBefore) * dsH

	// helium: plain tanh in z directly (width parameter, no (1+z) warping)
	argHe := (o.zHe - z) / o.widthHe
	tHe := math.Tanh(argHe)
	sHe := 0.5 * (tHe + 1)
	dsHe := -0.5 * (1 - tHe*tHe) / o.widthHe
	xeHe := 2 * o.fHe * sHe
	dxeHe := 2 * o.fHe * dsHe

	return xeH + xeHe, dxeH + dxeHe
}
