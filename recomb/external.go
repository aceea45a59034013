// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recomb

func init() {
	Allocators["H"] = func() Engine { return NewExternalAdapter(nil) }
}

// ExternalKernel is the single-call wrapped engine contract of spec §4.3
// (Engine H): it subsumes both hydrogen and helium into one combined
// ionization fraction x and returns dx/d(ln a) directly, rather than
// separate xH/xHe derivatives.
type ExternalKernel interface {
	Evaluate(z, h, tmat, trad, energyRate float64) (x, dxDlnA float64, err error)
}

// ExternalAdapter wraps an ExternalKernel to satisfy the Engine interface
// (spec §4.3 design note: the in-progress `heating` subsystem duplication
// is non-canonical; this module exposes exactly one typed callback). When
// no external kernel is supplied, it falls back to the same physics as
// Engine R's combined x = xH + fHe*xHe, so the module runs standalone.
type ExternalAdapter struct {
	kernel ExternalKernel
	fall   *Peebles
}

// NewExternalAdapter wraps kernel; pass nil to use the built-in fallback.
func NewExternalAdapter(kernel ExternalKernel) *ExternalAdapter {
	return &ExternalAdapter{kernel: kernel, fall: NewPeebles()}
}

func (o *ExternalAdapter) SahaH(z, tmat float64, cos Cosmology) (float64, error) {
	return o.fall.SahaH(z, tmat, cos)
}
func (o *ExternalAdapter) SahaHe(z, tmat float64, cos Cosmology) (float64, error) {
	return o.fall.SahaHe(z, tmat, cos)
}
func (o *ExternalAdapter) SahaHeII(z, tmat float64, cos Cosmology) (float64, error) {
	return o.fall.SahaHeII(z, tmat, cos)
}

func (o *ExternalAdapter) Derivs(in Input, cos Cosmology) (Variables, error) {
	if o.kernel == nil {
		return o.fall.Derivs(in, cos)
	}
	x := in.Y.XH + cos.FHe*in.Y.XHe
	_, dxDlnA, err := o.kernel.Evaluate(in.Z, in.H, in.Y.Tmat, in.Trad, in.EnergyRate)
	if err != nil {
		return Variables{}, err
	}
	// d(ln a)/dz = -1/(1+z); dx/dz = -dxDlnA/(1+z)
	dxdz := -dxDlnA / (1 + in.Z)
	var out Variables
	if in.Active.XH {
		out.XH = dxdz // combined fraction folded entirely into XH; XHe held at 0
	}
	if in.Active.Tmat {
		ne := x * nHAt(in.Z, cos)
		out.Tmat = tmatDeriv(in, cos, ne, nHAt(in.Z, cos))
	}
	return out, nil
}
