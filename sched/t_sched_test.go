// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_build01(tst *testing.T) {

	chk.PrintTitle("build01")

	b := DefaultBoundaries(50)
	s, err := Build(1e4, b)
	if err != nil {
		tst.Errorf("Build failed: %v", err)
		return
	}
	phases := s.Phases()
	if len(phases) != int(numPhases) {
		tst.Errorf("expected %d phases, got %d", numPhases, len(phases))
	}
	for i := 1; i < len(phases); i++ {
		if phases[i].EndZ >= phases[i-1].EndZ {
			tst.Errorf("phase %d end %g not strictly below phase %d end %g",
				i, phases[i].EndZ, i-1, phases[i-1].EndZ)
		}
	}
}

func Test_buildbadorder01(tst *testing.T) {

	chk.PrintTitle("buildbadorder01")

	b := DefaultBoundaries(50)
	b.ZHe1End = 7500 // above ZBrecEnd, breaks strict ordering
	if _, err := Build(1e4, b); err == nil {
		tst.Errorf("expected an error for out-of-order boundaries")
	}
}

func Test_at01(tst *testing.T) {

	chk.PrintTitle("at01")

	b := DefaultBoundaries(50)
	s, err := Build(1e4, b)
	if err != nil {
		tst.Fatalf("Build failed: %v", err)
	}

	if tag := s.At(8000).Tag; tag != Brec {
		tst.Errorf("z=8000 should be in brec, got %s", tag)
	}
	if tag := s.At(6000).Tag; tag != He1 {
		tst.Errorf("z=6000 should be in He1, got %s", tag)
	}
	if tag := s.At(0).Tag; tag != Reio {
		tst.Errorf("z=0 should be in reio, got %s", tag)
	}
}

func Test_next01(tst *testing.T) {

	chk.PrintTitle("next01")

	b := DefaultBoundaries(50)
	s, err := Build(1e4, b)
	if err != nil {
		tst.Fatalf("Build failed: %v", err)
	}

	first := s.Phases()[0]
	next, ok := s.Next(first)
	if !ok || next.Tag != He1 {
		tst.Errorf("expected next(brec)=He1, got %s (ok=%v)", next.Tag, ok)
	}

	last := s.Phases()[len(s.Phases())-1]
	if _, ok := s.Next(last); ok {
		tst.Errorf("expected no phase after reio")
	}
}

func Test_blendweight01(tst *testing.T) {

	chk.PrintTitle("blendweight01")

	chk.Scalar(tst, "w(0)", 1e-15, BlendWeight(0), 0)
	chk.Scalar(tst, "w(1)", 1e-15, BlendWeight(1), 1)
	chk.Scalar(tst, "w(0.5)", 1e-15, BlendWeight(0.5), 0.5)
	if BlendWeight(-1) != 0 {
		tst.Errorf("w(s<0) should clamp to 0")
	}
	if BlendWeight(2) != 1 {
		tst.Errorf("w(s>1) should clamp to 1")
	}
}
