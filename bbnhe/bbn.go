// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bbnhe reads the BBN helium table (spec §6) and serves a
// bilinear-spline interpolator (ω_b, ΔN_eff) → Y_He. The file format and
// grid resolution are external data; only the interpolation output is
// consumed by the rest of the module.
package bbnhe

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Table is a frozen bilinear interpolator over the BBN grid.
type Table struct {
	omegaB []float64 // ω_b grid, strictly increasing, length nOmega
	deltaN []float64 // ΔN_eff grid, strictly increasing, length nDelta
	yHe    []float64 // row-major (ω_b fastest) table of Y_He values
	nOmega int
	nDelta int
}

// isCommentByte matches spec §6: a line is a comment if its first
// non-blank byte has ASCII value <= 39 (covers '#', '%', and blank lines).
func isCommentByte(b byte) bool { return b <= 39 }

// Read parses a whitespace-separated BBN table from path.
func Read(path string) (*Table, error) {
	buf, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("bbnhe: cannot read BBN table %q: %v", path, err)
	}
	scanner := bufio.NewScanner(bytes.NewReader(buf))

	var header []int
	var rows [][3]float64
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || isCommentByte(line[0]) {
			continue
		}
		fields := strings.Fields(line)
		if header == nil {
			if len(fields) < 2 {
				return nil, chk.Err("bbnhe: header line %q must contain two integers (N_omega, N_delta)", line)
			}
			n0, e0 := strconv.Atoi(fields[0])
			n1, e1 := strconv.Atoi(fields[1])
			if e0 != nil || e1 != nil {
				return nil, chk.Err("bbnhe: malformed header %q", line)
			}
			header = []int{n0, n1}
			continue
		}
		if len(fields) < 3 {
			return nil, chk.Err("bbnhe: data line %q must contain three floats (omega_b, dNeff, YHe)", line)
		}
		var triple [3]float64
		for i := 0; i < 3; i++ {
			v, e := strconv.ParseFloat(fields[i], 64)
			if e != nil {
				return nil, chk.Err("bbnhe: cannot parse float in %q: %v", line, e)
			}
			triple[i] = v
		}
		rows = append(rows, triple)
	}
	if err := scanner.Err(); err != nil {
		return nil, chk.Err("bbnhe: scan error reading %q: %v", path, err)
	}
	if header == nil {
		return nil, chk.Err("bbnhe: %q has no header line", path)
	}

	nOmega, nDelta := header[0], header[1]
	if nOmega < 2 || nDelta < 2 {
		return nil, chk.Err("bbnhe: grid must have at least 2 points per axis, got (%d, %d)", nOmega, nDelta)
	}
	if len(rows) != nOmega*nDelta {
		return nil, chk.Err("bbnhe: expected %d data rows (N_omega*N_delta), found %d", nOmega*nDelta, len(rows))
	}

	t := &Table{
		omegaB: make([]float64, nOmega),
		deltaN: make([]float64, nDelta),
		yHe:    make([]float64, nOmega*nDelta),
		nOmega: nOmega,
		nDelta: nDelta,
	}
	for i := 0; i < nOmega; i++ {
		t.omegaB[i] = rows[i][0]
	}
	for j := 0; j < nDelta; j++ {
		t.deltaN[j] = rows[j*nOmega][1]
	}
	for k, row := range rows {
		t.yHe[k] = row[2]
	}
	return t, nil
}

// Interpolate evaluates Y_He(omegaB, deltaNeff) via bilinear interpolation
// on the table grid. Out-of-range inputs surface a descriptive error
// (spec §6).
func (t *Table) Interpolate(omegaB, deltaNeff float64) (float64, error) {
	i, fi, err := locate(t.omegaB, omegaB, "omega_b")
	if err != nil {
		return 0, err
	}
	j, fj, err := locate(t.deltaN, deltaNeff, "Delta_Neff")
	if err != nil {
		return 0, err
	}
	idx := func(ii, jj int) float64 { return t.yHe[jj*t.nOmega+ii] }
	y00 := idx(i, j)
	y10 := idx(i+1, j)
	y01 := idx(i, j+1)
	y11 := idx(i+1, j+1)
	y0 := y00 + fi*(y10-y00)
	y1 := y01 + fi*(y11-y01)
	return y0 + fj*(y1-y0), nil
}

// locate returns the lower grid index i (0 <= i <= len(grid)-2) and the
// fractional position f in [0,1] between grid[i] and grid[i+1].
func locate(grid []float64, x float64, name string) (int, float64, error) {
	n := len(grid)
	if x < grid[0] || x > grid[n-1] {
		return 0, 0, chk.Err("bbnhe: %s=%g outside BBN table range [%g, %g]", name, x, grid[0], grid[n-1])
	}
	i := 0
	for i < n-2 && grid[i+1] < x {
		i++
	}
	span := grid[i+1] - grid[i]
	if span == 0 {
		return i, 0, nil
	}
	return i, (x - grid[i]) / span, nil
}
