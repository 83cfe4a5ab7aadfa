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
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	chem "github.com/rmera/mdinit"
	"github.com/rmera/mdinit/similarity"
	v3 "github.com/rmera/mdinit/v3"
)

var verb int

//LogV prints d to stderr if level is smaller or equal to the verbosity level.
func LogV(level int, d ...interface{}) {
	if level <= verb {
		fmt.Fprintln(os.Stderr, d...)
	}
}

type structure struct {
	mol   *chem.Molecule
	label string
}

func main() {
	threshold := flag.Float64("t", 0.01, "Grigoryan-Springborg index under which two structures are taken as the same")
	cpus := flag.Int("cpus", runtime.NumCPU(), "Number of goroutines to use")
	prefix := flag.String("o", "", "Prefix for the output files")
	verbose := flag.Int("v", 1, "Level of verbosity (0-4)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage:\n  %s: [flags] structures1.xyz [structures2.xyz ...]\n\nAll the frames of all the files are compared. Flags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	verb = *verbose
	args := flag.Args()
	if len(args) < 1 {
		log.Fatal("gssim requires at least one XYZ file")
	}
	var structs []structure
	for _, name := range args {
		mols, err := chem.XYZFileRead(name)
		if err != nil {
			log.Fatal(err)
		}
		for i, m := range mols {
			label := name
			if len(mols) > 1 {
				label = fmt.Sprintf("%s (frame %d)", name, i+1)
			}
			structs = append(structs, structure{m, label})
		}
	}
	LogV(2, fmt.Sprintf("%d structures read", len(structs)))
	coords := make([]*v3.Matrix, len(structs))
	for i, s := range structs {
		coords[i] = s.mol.Coords
	}
	res, err := similarity.Prune(coords, *threshold, *cpus)
	if err != nil {
		log.Fatal(err)
	}
	logf, err := os.Create(*prefix + "Info_Duplicates.txt")
	if err != nil {
		log.Fatal(err)
	}
	defer logf.Close()
	fmt.Fprintf(logf, "\n# # # SUMMARY SIMILAR STRUCTURES # # #\n\n")
	for _, p := range res.Pairs {
		fmt.Fprintf(logf, "# %s ~= %s\n# Value = %.6f\n", structs[p.I].label, structs[p.J].label, p.Value)
		if verb >= 2 {
			//only meaningful if both structures list the atoms in the same order.
			if sup, err := chem.Super(coords[p.J], coords[p.I]); err == nil {
				rmsd, _ := chem.RMSD(sup, coords[p.I])
				fmt.Fprintf(logf, "# RMSD = %.4f A\n", rmsd)
			}
		}
		fmt.Fprintf(logf, "------------------------\n")
	}
	fmt.Fprintf(logf, "\nNumber of Similar Structures = %d\n", len(res.Duplicates))
	if err := write(*prefix+"Duplicates_coords.xyz", "Duplicate Structure", structs, res.Duplicates); err != nil {
		log.Fatal(err)
	}
	if err := write(*prefix+"Clean_Duplicates_coords.xyz", "Unique Structure", structs, res.Unique); err != nil {
		log.Fatal(err)
	}
	LogV(1, fmt.Sprintf("%d unique structures, %d duplicates", len(res.Unique), len(res.Duplicates)))
}

func write(name, comment string, structs []structure, indexes []int) error {
	mols := make([]*chem.Molecule, 0, len(indexes))
	for _, i := range indexes {
		m := *structs[i].mol
		m.Comment = comment + " " + structs[i].label
		mols = append(mols, &m)
	}
	if len(mols) == 0 {
		//still create the file, so it is clear that there was nothing to write.
		f, err := chem.CreateFile(name)
		if err != nil {
			return err
		}
		return f.Close()
	}
	return chem.XYZFileWrite(name, mols...)
}
