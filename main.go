// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/iamalisalehi/thermo/bg/toy"
	"github.com/iamalisalehi/thermo/interp"
	"github.com/iamalisalehi/thermo/thermo"
)

func main() {

	verbose := true

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	io.PfWhite("\nthermo -- ionization history engine\n\n")
	io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
	io.Pf("Use of this source code is governed by a BSD-style\n")
	io.Pf("license that can be found in the LICENSE file.\n\n")

	// configuration filenamepath
	flag.Parse()
	var cfg *thermo.Config
	if len(flag.Args()) > 0 {
		var err error
		cfg, err = thermo.ReadConfig(flag.Arg(0))
		if err != nil {
			chk.Panic("%v", err)
		}
	} else {
		cfg = new(thermo.Config)
		io.Pfyel("no configuration file given; running with built-in defaults\n")
	}

	if len(flag.Args()) > 1 {
		verbose = io.Atob(flag.Arg(1))
	}
	cfg.Verbose = verbose

	// profiling?
	defer utl.DoProf(false)()

	// demo flat-FRW background, standing in for the external collaborator
	// a full run would normally receive from a companion Boltzmann code
	background := toy.New(toy.Params{
		H0: 67.36, OmegaM: 0.3153, OmegaB: 0.0493, OmegaR: 9.24e-5, OmegaLambda: 0.6847, Tcmb0: 2.7255,
	})

	handle, err := thermo.Run(cfg, background)
	if err != nil {
		chk.Panic("%v", err)
	}

	io.Pfgreen("z_rec   = %g\n", handle.Table.ZRec)
	io.Pfgreen("z_d     = %g\n", handle.Table.ZD)
	io.Pfgreen("z_reio  = %g\n", handle.Table.ZReio)
	io.Pfgreen("tau_reio= %g\n", handle.Table.TauReio)
	io.Pfgreen("r_s,rec = %g Mpc\n", handle.Table.RsRec)
	io.Pfgreen("r_s,d   = %g Mpc\n", handle.Table.RsD)

	io.Pf("\n%8s %14s %14s\n", "z", "x_e", "g")
	for _, z := range []float64{0, 10, 100, 500, 1000, 1100, 1200, 2000} {
		p, err := handle.At(z, interp.Normal, nil)
		if err != nil {
			io.Pfred("query at z=%g failed: %v\n", z, err)
			continue
		}
		io.Pf("%8.1f %14.6e %14.6e\n", z, p.Xe, p.G)
	}
}
