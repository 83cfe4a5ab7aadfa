/*
 * main.go, part of mdinit.
 *
 * Copyright 2026 The mdinit authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	chem "github.com/rmera/mdinit"
	"github.com/rmera/mdinit/chemplot"
	"github.com/rmera/mdinit/config"
	"github.com/rmera/mdinit/initcond"
)

var verb int

//LogV prints d to stderr if level is smaller or equal to the verbosity level.
func LogV(level int, d ...interface{}) {
	if level <= verb {
		fmt.Fprintln(os.Stderr, d...)
	}
}

//PrintV prints d to stdout if level is smaller or equal to the verbosity level.
func PrintV(level int, d ...interface{}) {
	if level <= verb {
		fmt.Println(d...)
	}
}

func main() {
	defineOptionFlags(flag.CommandLine, initcond.DefaultOptions())
	cfg := flag.String("config", "", "Configuration file (.toml, .ini). Command line flags take precedence")
	prefix := flag.String("o", "initcond", "Prefix for the output files")
	compress := flag.String("compress", "", "Compress the output files: gz or zst")
	plotname := flag.String("plot", "", "If given, save a histogram of the atomic kinetic energies to this file (e.g. ekin.png)")
	atomplot := flag.String("atomplot", "", "If given, save a plot of the kinetic energy of each atom in each initial condition to this file")
	tags := flag.String("tag", "", "Comma-separated atoms (1-based, at most 4) to highlight in the -atomplot plot")
	histoname := flag.String("histo", "", "If given, save a histogram of the atomic speeds to this file, in JSON format")
	bins := flag.Int("bins", 0, "Number of bins for the histograms. Default: square root of the number of data points")
	verbose := flag.Int("v", 1, "Level of verbosity (0-4)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage:\n  %s: [flags] geometry.xyz\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	verb = *verbose
	args := flag.Args()
	if len(args) < 1 {
		log.Fatal("mdinit requires at least 1 argument, an XYZ file with the geometry of the molecule")
	}
	if verb < 1 {
		initcond.SetLogger(nil)
	}
	o := initcond.DefaultOptions()
	if *cfg != "" {
		if err := config.Load(*cfg, o); err != nil {
			log.Fatal("Failed to read configuration: " + err.Error())
		}
		LogV(2, "Read configuration from", *cfg)
	}
	if err := applyFlags(flag.CommandLine, o); err != nil {
		log.Fatal(err)
	}
	LogV(2, "Options:", o.String())
	mols, err := chem.XYZFileRead(args[0])
	if err != nil {
		log.Fatal("Failed to open geometry input file: " + err.Error())
	}
	mol := mols[0]
	if len(mols) > 1 {
		LogV(1, fmt.Sprintf("%s has %d frames, only the first one is used as template", args[0], len(mols)))
	}
	batch, err := initcond.Generate(mol, o)
	if err != nil {
		log.Fatal(err)
	}
	ext := ""
	if *compress != "" {
		ext = "." + strings.TrimPrefix(*compress, ".")
	}
	coordname := *prefix + ".xyz" + ext
	velname := *prefix + ".vel" + ext
	if err := writeBatch(batch, coordname, velname); err != nil {
		log.Fatal(err)
	}
	PrintV(1, fmt.Sprintf("%d initial conditions written to %s and %s", batch.Len(), coordname, velname))
	if batch.Method == initcond.Random {
		PrintV(2, fmt.Sprintf("Degrees of freedom: %d. Linear: %t. Target kinetic energy: %.6e Hartree", batch.DOF, batch.Linear, batch.TargetEnergy))
		if s, err := batch.Summary(0); err == nil {
			PrintV(1, s.String())
		} else {
			LogV(1, "Can't summarize the batch:", err)
		}
	}
	for _, w := range batch.Warnings {
		LogV(3, "Warning issued:", w)
	}
	if *histoname != "" || verb >= 3 {
		h, err := batch.SpeedHistogram(*bins)
		if err != nil {
			log.Fatal(err)
		}
		LogV(3, "Atomic speeds (A/fs):\n"+h.String())
		if *histoname != "" {
			if err := writeJSON(*histoname, h); err != nil {
				log.Fatal(err)
			}
		}
	}
	if *plotname != "" {
		ekin, err := batch.AtomicKineticEnergies()
		if err != nil {
			log.Fatal(err)
		}
		//the mean kinetic energy per atom
		target := batch.TargetEnergy / float64(mol.Len())
		if err := chemplot.KineticHistogram(ekin, target, *bins, "Atomic kinetic energies", *plotname); err != nil {
			log.Fatal("Failed to plot: " + err.Error())
		}
		LogV(2, "Histogram saved to", *plotname)
	}
	if *atomplot != "" {
		tagged, err := parseTags(*tags)
		if err != nil {
			log.Fatal(err)
		}
		ekin, err := batch.AtomicKineticEnergies()
		if err != nil {
			log.Fatal(err)
		}
		if err := chemplot.AtomEnergyPlot(ekin, mol.Len(), tagged, "Atomic kinetic energies", *atomplot); err != nil {
			log.Fatal("Failed to plot: " + err.Error())
		}
		LogV(2, "Atomic energy plot saved to", *atomplot)
	}
}

//defineOptionFlags defines in fs the flags that set initcond options. Their names are also
//config keys, see config.Set.
func defineOptionFlags(fs *flag.FlagSet, d *initcond.Options) {
	fs.String("method", d.Method, "Method to obtain initial conditions: random or user-defined")
	fs.Int("count", d.Count, "Number of initial conditions to sample")
	fs.String("coord-file", "", "XYZ file with the coordinates for user-defined initial conditions (last frame)")
	fs.String("vel-file", "", "Velocity file (A/fs) for user-defined initial conditions (last block)")
	fs.Bool("eliminate-angular-momentum", d.EliminateAngularMomentum, "Remove the rotation of the molecule")
	fs.Bool("remove-translation", d.RemoveTranslation, "Remove the motion of the center of mass")
	fs.Int("dof", 0, "Degrees of freedom. If not given, 3N-6 (3N-5 for linear molecules). Values <=0 are added to 3N")
	fs.Float64("temperature", chem.RefTemp, "Temperature (K). Can't be used with -kinetic-energy")
	fs.Float64("kinetic-energy", 0, "Kinetic energy (Hartree). Can't be used with -temperature")
	fs.Bool("linear", false, "Treat the molecule as linear (or not, with -linear=false). Detected if not given")
	fs.Uint64("seed", 0, "Seed for the random number generator")
	fs.Int("cpus", d.Cpus, "Number of goroutines for sampling")
}

//applyFlags sets in o the options given explicitly in fs, on top of whatever o already has.
//A temperature or kinetic energy given in fs replaces the other target, if o had one.
//Giving both in fs is an error.
func applyFlags(fs *flag.FlagSet, o *initcond.Options) error {
	given := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { given[f.Name] = true })
	if given["temperature"] && given["kinetic-energy"] {
		return fmt.Errorf("-temperature and -kinetic-energy can't be used together")
	}
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil || !isKey(f.Name) {
			return
		}
		switch f.Name {
		case "temperature":
			o.KineticEnergy = nil
		case "kinetic-energy":
			o.Temperature = nil
		}
		err = config.Set(o, f.Name, f.Value.String())
	})
	return err
}

//parseTags turns a comma-separated list of 1-based atom numbers into 0-based indexes.
func parseTags(s string) ([]int, error) {
	var ret []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid atom in -tag: %q", f)
		}
		ret = append(ret, n-1)
	}
	return ret, nil
}

func isKey(name string) bool {
	name = strings.ReplaceAll(name, "-", "_")
	for _, k := range config.Keys {
		if k == name {
			return true
		}
	}
	return false
}

func writeJSON(name string, v interface{}) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeBatch(b *initcond.Batch, coordname, velname string) error {
	cf, err := chem.CreateFile(coordname)
	if err != nil {
		return err
	}
	if err := b.WriteXYZ(cf); err != nil {
		cf.Close()
		return err
	}
	if err := cf.Close(); err != nil {
		return err
	}
	vf, err := chem.CreateFile(velname)
	if err != nil {
		return err
	}
	if err := b.WriteVelocities(vf); err != nil {
		vf.Close()
		return err
	}
	return vf.Close()
}
