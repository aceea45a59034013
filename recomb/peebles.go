// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recomb

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

func init() {
	Allocators["R"] = func() Engine { return NewPeebles() }
}

// Allocators registers engine constructors by the `recombination` config
// value (spec §6: "R" or "H"), the same factory-map idiom as reio's scheme
// registry and gofem's mdl/retention model registry.
var Allocators = make(map[string]func() Engine)

// New builds an Engine by name.
func New(name string) (Engine, error) {
	alloc, ok := Allocators[name]
	if !ok {
		return nil, chk.Err("recomb: unknown recombination engine %q", name)
	}
	return alloc(), nil
}

// Peebles is Engine R (spec §4.3): the three-variable hydrogen/helium
// Peebles-style system with a fudged two-photon decay constant K, a
// Peebles coefficient C, DM-injection terms, and a multi-branch He-switch
// correction.
type Peebles struct {
	Fudge DoubleGaussianFudge
}

// NewPeebles returns an Engine R instance with the default fudge factors.
func NewPeebles() *Peebles {
	return &Peebles{Fudge: DefaultFudge}
}

func nHAt(z float64, cos Cosmology) float64 { return cos.NH0 * math.Pow(1+z, 3) }

// sahaFraction solves the generic two-level Saha balance x^2/(1-x) = s for
// x in [0,1], returning the ionized fraction.
func sahaFraction(s float64) float64 {
	if s > 1e8 {
		return 1 - 1/s // fully ionized asymptote
	}
	return 0.5 * (-s + math.Sqrt(s*s+4*s))
}

// sahaS is the Saha source term for a two-level system with ionization
// energy `ion` (J), statistical-weight ratio `gRatio`, relative to a
// reference number density `nRef` (m^-3).
func sahaS(tmat, ion, gRatio, nRef float64) float64 {
	if tmat <= 0 || nRef <= 0 {
		return math.Inf(1)
	}
	pref := gRatio * math.Pow(2*math.Pi*ElectronMass*KBoltzmann*tmat/(HPlanck*HPlanck), 1.5)
	return pref * math.Exp(-ion/(KBoltzmann*tmat)) / nRef
}

func (o *Peebles) SahaH(z, tmat float64, cos Cosmology) (float64, error) {
	nH := nHAt(z, cos)
	s := sahaS(tmat, EH1s, 1.0, nH)
	return sahaFraction(s), nil
}

func (o *Peebles) SahaHe(z, tmat float64, cos Cosmology) (float64, error) {
	nH := nHAt(z, cos)
	s := sahaS(tmat, EHe1Ion, 4.0, nH)
	return sahaFraction(s), nil
}

func (o *Peebles) SahaHeII(z, tmat float64, cos Cosmology) (float64, error) {
	nH := nHAt(z, cos)
	s := sahaS(tmat, EHe2Ion, 1.0, nH)
	return sahaFraction(s), nil
}

// caseBAlphaH is the case-B hydrogen recombination coefficient (Pequignot
// 1991-style fit), m^3/s, as a function of matter temperature.
func caseBAlphaH(tmat float64) float64 {
	t4 := tmat / 1e4
	return 1e-19 * 4.309 * math.Pow(t4, -0.6166) / (1 + 0.6703*math.Pow(t4, 0.5300))
}

// betaH is the photoionization (inverse) rate via detailed balance,
// beta = alpha * (2 pi m_e k Tmat / h^2)^1.5 * exp(-E_2s/(k Tmat)), using
// the n=2 binding energy (1/4 of ground state, standard case-B treatment).
func betaH(tmat float64, alpha float64) float64 {
	e2s := EH1s / 4
	return alpha * math.Pow(2*math.Pi*ElectronMass*KBoltzmann*tmat/(HPlanck*HPlanck), 1.5) * math.Exp(-e2s/(KBoltzmann*tmat))
}

func (o *Peebles) Derivs(in Input, cos Cosmology) (Variables, error) {
	var out Variables
	z := in.Z
	nH := nHAt(z, cos)
	xH := in.Y.XH
	xHe := in.Y.XHe
	tmat := in.Y.Tmat
	ne := (xH + cos.FHe*xHe) * nH

	// --- hydrogen Peebles equation ---
	if in.Active.XH {
		alpha := caseBAlphaH(tmat)
		beta := betaH(tmat, alpha)
		k := peeblesK(math.Log(1+z), o.Fudge, in.H)
		lambda2s1s := Lambda2s1sH
		// Peebles C factor: suppression from competition between
		// photoionization and two-photon decay to the ground state;
		// collapses to 1 once hydrogen is mostly neutral (spec §4.3).
		var C float64
		if xH > cos.Trigger {
			C = 1
		} else {
			nH1s := (1 - xH) * nH
			C = (lambda2s1s + k*beta*nH1s) / (lambda2s1s + k*(beta+alpha*ne)*nH1s)
			if math.IsNaN(C) || math.IsInf(C, 0) {
				C = 1
			}
		}
		dxHdz := C / (in.H * (1 + z)) * (ne*alpha*xH - beta*(1-xH))

		// DM-injection contribution (energy deposited as extra ionization)
		if in.EnergyRate > 0 {
			chi := chiIonH(xH)
			dxHdz -= in.EnergyRate * chi / (nH * EH1s * in.H * (1 + z))
		}
		out.XH = -dxHdz // d/d(-z) = -d/dz
	}

	// --- helium Peebles-like equation ---
	if in.Active.XHe {
		alphaHe := 10 * caseBAlphaH(tmat) // helium recombines faster; order-of-magnitude scaling
		betaHe := betaH(tmat, alphaHe)
		var corr float64
		switch cos.HeSwitch {
		case 0:
			corr = 1
		case 1, 2:
			corr = 1 + 0.02*math.Exp(-math.Pow((math.Log(1+z)-7.0)/0.5, 2)) // Doppler broadening proxy
		case 3, 4:
			corr = 1 - 0.01*xH // continuum opacity proxy, suppressed once H mostly neutral
		default: // 5, 6: include triplet CfHe_t term
			corr = 1 - 0.01*xH + 0.005*xHe
		}
		dxHedz := corr / (in.H * (1 + z)) * (ne*alphaHe*xHe - betaHe*(1-xHe)) / math.Max(cos.FHe, 1e-30)
		if in.EnergyRate > 0 {
			chi := chiIonH(xHe)
			dxHedz -= in.EnergyRate * chi / (nH * cos.FHe * EHe1Ion * in.H * (1 + z))
		}
		out.XHe = -dxHedz
	}

	// --- matter temperature equation (shared by both engines) ---
	if in.Active.Tmat {
		out.Tmat = tmatDeriv(in, cos, ne, nH)
	}
	return out, nil
}
