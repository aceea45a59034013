// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import "fmt"

// Kind classifies a thermo error the way spec §7 groups failure modes, so
// callers can branch on the kind without string-matching messages.
type Kind int

const (
	// KindDomain marks an input outside the physically valid range (e.g.
	// z_initial below the helium-recombination epoch).
	KindDomain Kind = iota
	// KindConvergence marks an iterative method (shooting, root
	// refinement) that exhausted its iteration budget. Run reports every
	// shooting failure with this kind, including a tau_reio that the
	// bisection bracket does not enclose.
	KindConvergence
	// KindNumerical marks a guard against a non-physical intermediate
	// value (e.g. a negative optical depth derivative, NaN propagation).
	KindNumerical
	// KindResource marks an external dependency failure: a missing BBN
	// table file, a background provider error.
	KindResource
)

func (k Kind) String() string {
	switch k {
	case KindDomain:
		return "domain"
	case KindConvergence:
		return "convergence"
	case KindNumerical:
		return "numerical"
	case KindResource:
		return "resource"
	default:
		return "unknown"
	}
}

// Error wraps an underlying failure with its Kind, so a caller can recover
// and branch without parsing message text.
type Error struct {
	Kind Kind
	Op   string // component that raised it, e.g. "grid", "shoot", "derive"
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("thermo: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
