// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sched implements the approximation scheduler (C4, spec §4.4): a
// tagged state machine over the seven recombination phases, each carrying
// its own active-variable set, ending redshift, and cross-phase smoothing
// width. Modeled as a phase-dispatch table (spec §4.9 design note) rather
// than string tags or integer magic numbers at API boundaries.
package sched

import (
	"github.com/cpmech/gosl/chk"

	"github.com/iamalisalehi/thermo/recomb"
)

// Tag enumerates the seven recombination phases in chronological order
// (highest z first).
type Tag int

const (
	Brec Tag = iota
	He1
	He1f
	He2
	H
	Frec
	Reio
	numPhases
)

func (t Tag) String() string {
	switch t {
	case Brec:
		return "brec"
	case He1:
		return "He1"
	case He1f:
		return "He1f"
	case He2:
		return "He2"
	case H:
		return "H"
	case Frec:
		return "frec"
	case Reio:
		return "reio"
	default:
		return "unknown"
	}
}

// Phase bundles one row of the phase-dispatch table (spec §4.4 table).
type Phase struct {
	Tag    Tag
	EndZ   float64 // redshift at which this phase hands off to the next
	Width  float64 // smoothing overlap width delta_i of the transition; package evolve records samples without blending across a phase switch
	Active recomb.ActiveSet
}

// Boundaries carries the tunable phase-transition redshifts (spec §4.9
// open question: these were hard-coded with "TODO: set correctly" in the
// source; here they are documented precision parameters with defaults
// equal to the historical hard-coded values).
type Boundaries struct {
	ZBrecEnd  float64 // brec -> He1
	ZHe1End   float64 // He1 -> He1f
	ZHe1fEnd  float64 // He1f -> He2
	ZHe2End   float64 // He2 -> H (spec default 2870)
	ZHEnd     float64 // H -> frec (spec default 1600)
	ZReioMax  float64 // frec -> reio (= reionization_z_start_max)
	Width     float64 // shared transition width (spec default 50)
}

// DefaultBoundaries returns the historical hard-coded defaults, now
// exposed as overridable precision parameters.
func DefaultBoundaries(zReioMax float64) Boundaries {
	return Boundaries{
		ZBrecEnd: 7000,
		ZHe1End:  5000,
		ZHe1fEnd: 3500,
		ZHe2End:  2870,
		ZHEnd:    1600,
		ZReioMax: zReioMax,
		Width:    50,
	}
}

// Schedule is the ordered, immutable phase table built once from a set of
// Boundaries and a starting redshift.
type Schedule struct {
	phases []Phase
}

// Build constructs the seven-phase schedule (spec §4.4 table), validating
// that boundaries are strictly decreasing so no phase has zero or
// negative extent.
func Build(zInitial float64, b Boundaries) (*Schedule, error) {
	rows := []struct {
		tag    Tag
		end    float64
		active recomb.ActiveSet
	}{
		{Brec, b.ZBrecEnd, recomb.ActiveSet{Tmat: true}},
		{He1, b.ZHe1End, recomb.ActiveSet{Tmat: true}},
		{He1f, b.ZHe1fEnd, recomb.ActiveSet{Tmat: true}},
		{He2, b.ZHe2End, recomb.ActiveSet{Tmat: true}},
		{H, b.ZHEnd, recomb.ActiveSet{Tmat: true, XHe: true}},
		{Frec, b.ZReioMax, recomb.ActiveSet{Tmat: true, XH: true, XHe: true}},
		{Reio, 0, recomb.ActiveSet{Tmat: true, XH: true, XHe: true}},
	}
	prev := zInitial
	s := &Schedule{phases: make([]Phase, 0, numPhases)}
	for _, r := range rows {
		if r.end >= prev {
			return nil, chk.Err("sched: phase %s end redshift %g must be < previous boundary %g", r.tag, r.end, prev)
		}
		s.phases = append(s.phases, Phase{Tag: r.tag, EndZ: r.end, Width: b.Width, Active: r.active})
		prev = r.end
	}
	return s, nil
}

// Phases returns the ordered phase table.
func (s *Schedule) Phases() []Phase { return s.phases }

// At returns the phase owning redshift z (the first phase whose EndZ <= z
// going from high z; z above the first phase's start still belongs to
// Brec).
func (s *Schedule) At(z float64) Phase {
	for _, p := range s.phases {
		if z >= p.EndZ {
			return p
		}
	}
	return s.phases[len(s.phases)-1]
}

// Next returns the phase following p, or ok=false if p is the last phase.
func (s *Schedule) Next(p Phase) (Phase, bool) {
	for i, cur := range s.phases {
		if cur.Tag == p.Tag && i+1 < len(s.phases) {
			return s.phases[i+1], true
		}
	}
	return Phase{}, false
}

// BlendWeight is the smooth sigmoidal interpolator w(s) of spec §4.4:
// w(0)=0, w(1)=1, w'(0)=w'(1)=0. s in [0,1] linearly parameterizes
// position inside the transition overlap.
func BlendWeight(s float64) float64 {
	if s <= 0 {
		return 0
	}
	if s >= 1 {
		return 1
	}
	return s * s * (3 - 2*s)
}
