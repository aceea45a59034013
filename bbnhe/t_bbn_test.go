// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bbnhe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func writeTempTable(tst *testing.T, body string) string {
	dir := tst.TempDir()
	path := filepath.Join(dir, "bbn.dat")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		tst.Fatalf("cannot write temp table: %v", err)
	}
	return path
}

func Test_read01(tst *testing.T) {

	chk.PrintTitle("read01")

	body := "# N_omega N_delta\n2 2\n0.020 -1.0 0.230\n0.024 -1.0 0.240\n0.020 1.0 0.250\n0.024 1.0 0.260\n"
	path := writeTempTable(tst, body)

	tbl, err := Read(path)
	if err != nil {
		tst.Errorf("Read failed: %v", err)
		return
	}
	if tbl.nOmega != 2 || tbl.nDelta != 2 {
		tst.Errorf("unexpected grid shape (%d, %d)", tbl.nOmega, tbl.nDelta)
	}
}

func Test_interpolate01(tst *testing.T) {

	chk.PrintTitle("interpolate01")

	body := "2 2\n0.020 -1.0 0.230\n0.024 -1.0 0.240\n0.020 1.0 0.250\n0.024 1.0 0.260\n"
	path := writeTempTable(tst, body)

	tbl, err := Read(path)
	if err != nil {
		tst.Fatalf("Read failed: %v", err)
	}

	// corners must reproduce the table exactly
	chk.Scalar(tst, "YHe(0.020,-1.0)", 1e-12, mustInterp(tst, tbl, 0.020, -1.0), 0.230)
	chk.Scalar(tst, "YHe(0.024, 1.0)", 1e-12, mustInterp(tst, tbl, 0.024, 1.0), 0.260)

	// midpoint is the bilinear average of all four corners
	mid := mustInterp(tst, tbl, 0.022, 0.0)
	chk.Scalar(tst, "YHe(mid,mid)", 1e-10, mid, 0.25*(0.230+0.240+0.250+0.260))
}

func mustInterp(tst *testing.T, tbl *Table, omegaB, deltaN float64) float64 {
	y, err := tbl.Interpolate(omegaB, deltaN)
	if err != nil {
		tst.Errorf("Interpolate(%g,%g) failed: %v", omegaB, deltaN, err)
	}
	return y
}

func Test_outofrange01(tst *testing.T) {

	chk.PrintTitle("outofrange01")

	body := "2 2\n0.020 -1.0 0.230\n0.024 -1.0 0.240\n0.020 1.0 0.250\n0.024 1.0 0.260\n"
	path := writeTempTable(tst, body)

	tbl, err := Read(path)
	if err != nil {
		tst.Fatalf("Read failed: %v", err)
	}
	if _, err := tbl.Interpolate(0.5, 0.0); err == nil {
		tst.Errorf("expected an out-of-range error for omega_b=0.5")
	}
}

func Test_commentbyte01(tst *testing.T) {

	chk.PrintTitle("commentbyte01")

	if !isCommentByte('#') {
		tst.Errorf("'#' should be a comment byte")
	}
	if !isCommentByte('%') {
		tst.Errorf("'%%' should be a comment byte")
	}
	if isCommentByte('0') {
		tst.Errorf("'0' should not be a comment byte")
	}
}
