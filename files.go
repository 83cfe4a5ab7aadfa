/*
 * files.go, part of mdinit.
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

package chem

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	v3 "github.com/rmera/mdinit/v3"
)

//XYZRead reads all the frames of an XYZ stream. Each frame is a line with the number
//of atoms, a comment line and one "symbol x y z" line per atom. Elements can also be given
//as atomic numbers. All frames must have the same atoms. Masses are assigned from the symbols.
func XYZRead(r io.Reader) ([]*Molecule, error) {
	xyz := bufio.NewReader(r)
	var top *Topology
	mols := make([]*Molecule, 0, 1)
	for frame := 0; ; frame++ {
		line, err := readNonBlank(xyz)
		if err == io.EOF && frame > 0 {
			break
		}
		if err != nil {
			return nil, CError{fmt.Sprintf("Ill formatted XYZ file, frame %d: %s", frame, err.Error()), []string{"XYZRead"}}
		}
		natoms, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || natoms <= 0 {
			return nil, CError{fmt.Sprintf("Ill formatted XYZ file, frame %d: invalid number of atoms %q", frame, strings.TrimSpace(line)), []string{"XYZRead"}}
		}
		comment, err := xyz.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, CError{err.Error(), []string{"XYZRead"}}
		}
		atoms := make([]*Atom, natoms)
		coords := make([]float64, natoms*3)
		for i := 0; i < natoms; i++ {
			line, err = xyz.ReadString('\n')
			if err != nil && (err != io.EOF || strings.TrimSpace(line) == "") {
				return nil, CError{fmt.Sprintf("Frame %d ended after %d of %d atoms", frame, i, natoms), []string{"XYZRead"}}
			}
			fields := strings.Fields(line)
			if len(fields) < 4 {
				return nil, CError{fmt.Sprintf("Line %d of frame %d ill formed", i, frame), []string{"XYZRead"}}
			}
			atoms[i] = &Atom{ID: i + 1, Symbol: fields[0], Name: fields[0]}
			if n, err := strconv.Atoi(fields[0]); err == nil {
				atoms[i].Symbol = numberSymbol[n]
				atoms[i].Name = atoms[i].Symbol
			}
			atoms[i].Mass = symbolMass[atoms[i].Symbol]
			for j := 0; j < 3; j++ {
				coords[i*3+j], err = strconv.ParseFloat(fields[j+1], 64)
				if err != nil {
					return nil, CError{fmt.Sprintf("Line %d of frame %d ill formed: %s", i, frame, err.Error()), []string{"strconv.ParseFloat", "XYZRead"}}
				}
			}
		}
		if top == nil {
			top, _ = NewTopology(atoms)
		} else if top.Len() != natoms {
			return nil, CError{fmt.Sprintf("Frame %d has %d atoms, the first had %d", frame, natoms, top.Len()), []string{"XYZRead"}}
		} else {
			for i, at := range atoms {
				if at.Symbol != top.Atom(i).Symbol {
					return nil, CError{fmt.Sprintf("Frame %d atom %d is %s, the first frame has %s", frame, i+1, at.Symbol, top.Atom(i).Symbol), []string{"XYZRead"}}
				}
			}
		}
		c, _ := v3.NewMatrix(coords) //natoms>0, so the slice is fine.
		mol, err := NewMolecule(top, c)
		if err != nil {
			return nil, errDecorate(err, "XYZRead")
		}
		mol.Comment = strings.TrimSpace(comment)
		mols = append(mols, mol)
		if frame > 0 {
			mol.Topology = top.CopyAtoms()
		}
	}
	return mols, nil
}

//XYZFileRead reads the XYZ file name, which can be compressed, and returns all its frames.
func XYZFileRead(name string) ([]*Molecule, error) {
	f, err := OpenFile(name)
	if err != nil {
		return nil, errDecorate(err, "XYZFileRead")
	}
	defer f.Close()
	mols, err := XYZRead(f)
	if err != nil {
		return nil, CError{name + ": " + err.Error(), []string{"XYZRead", "XYZFileRead"}}
	}
	return mols, nil
}

//XYZWrite writes the molecules mols, as consecutive frames, to out.
func XYZWrite(out io.Writer, mols ...*Molecule) error {
	for _, mol := range mols {
		if err := mol.Corrupted(); err != nil {
			return errDecorate(err, "XYZWrite")
		}
		if _, err := fmt.Fprintf(out, "%d\n%s\n", mol.Len(), strings.ReplaceAll(mol.Comment, "\n", " ")); err != nil {
			return CError{err.Error(), []string{"XYZWrite"}}
		}
		for i := 0; i < mol.Len(); i++ {
			c := mol.Coords.RawRowView(i)
			_, err := fmt.Fprintf(out, "%-2s  %15.8f %15.8f %15.8f\n", mol.Atom(i).Symbol, c[0], c[1], c[2])
			if err != nil {
				return CError{err.Error(), []string{"XYZWrite"}}
			}
		}
	}
	return nil
}

//XYZFileWrite writes the molecules mols to the file name, which will be created (and compressed
//if the extension is .gz or .zst). If the file exists it will be overwritten.
func XYZFileWrite(name string, mols ...*Molecule) error {
	out, err := CreateFile(name)
	if err != nil {
		return errDecorate(err, "XYZFileWrite")
	}
	err = XYZWrite(out, mols...)
	if err2 := out.Close(); err == nil && err2 != nil {
		err = CError{err2.Error(), []string{"XYZFileWrite"}}
	}
	return err
}

//VelRead reads a velocity file. The first line has the number of atoms, and then
//come blocks of that many lines, each with the 3 components of one atom's vector.
//Blank lines, and lines repeating the number of atoms at the beginning of a block, are ignored.
//Only the last complete block is returned. The values are returned as read.
func VelRead(r io.Reader) (*v3.Matrix, error) {
	vel := bufio.NewReader(r)
	line, err := readNonBlank(vel)
	if err != nil {
		return nil, CError{"Ill formatted velocity file: " + err.Error(), []string{"VelRead"}}
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || natoms <= 0 {
		return nil, CError{fmt.Sprintf("Ill formatted velocity file: invalid number of atoms %q", strings.TrimSpace(line)), []string{"VelRead"}}
	}
	var last []float64
	current := make([]float64, 0, natoms*3)
	for lineno := 2; ; lineno++ {
		line, err := vel.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, CError{err.Error(), []string{"VelRead"}}
		}
		fields := strings.Fields(line)
		switch {
		case len(fields) == 0:
		case len(fields) == 1 && len(current) == 0 && strings.TrimSpace(line) == strconv.Itoa(natoms):
		case len(fields) < 3:
			return nil, CError{fmt.Sprintf("Line %d of velocity file ill formed", lineno), []string{"VelRead"}}
		default:
			for _, v := range fields[:3] {
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, CError{fmt.Sprintf("Line %d of velocity file ill formed: %s", lineno, err.Error()), []string{"strconv.ParseFloat", "VelRead"}}
				}
				current = append(current, f)
			}
			if len(current) == natoms*3 {
				last, current = current, make([]float64, 0, natoms*3)
			}
		}
		if err == io.EOF {
			break
		}
	}
	if last == nil {
		return nil, CError{fmt.Sprintf("No complete block of %d vectors in velocity file", natoms), []string{"VelRead"}}
	}
	return v3.NewMatrix(last)
}

//VelFileRead reads the last block of the velocity file name, which can be compressed.
func VelFileRead(name string) (*v3.Matrix, error) {
	f, err := OpenFile(name)
	if err != nil {
		return nil, errDecorate(err, "VelFileRead")
	}
	defer f.Close()
	v, err := VelRead(f)
	if err != nil {
		return nil, CError{name + ": " + err.Error(), []string{"VelRead", "VelFileRead"}}
	}
	return v, nil
}

//VelWrite writes the number of atoms and then each of vels as a block, in the format read by VelRead.
//All of vels must have the same number of vectors.
func VelWrite(out io.Writer, vels ...*v3.Matrix) error {
	if len(vels) == 0 {
		return CError{"No velocities to write", []string{"VelWrite"}}
	}
	natoms := vels[0].NVecs()
	if _, err := fmt.Fprintf(out, "%d\n", natoms); err != nil {
		return CError{err.Error(), []string{"VelWrite"}}
	}
	for k, v := range vels {
		if v.NVecs() != natoms {
			return CError{fmt.Sprintf("Block %d has %d vectors, expected %d", k, v.NVecs(), natoms), []string{"VelWrite"}}
		}
		for i := 0; i < natoms; i++ {
			c := v.RawRowView(i)
			if _, err := fmt.Fprintf(out, "%25.16e %25.16e %25.16e\n", c[0], c[1], c[2]); err != nil {
				return CError{err.Error(), []string{"VelWrite"}}
			}
		}
	}
	return nil
}

//VelFileWrite writes vels to the file name, in the format read by VelRead.
func VelFileWrite(name string, vels ...*v3.Matrix) error {
	out, err := CreateFile(name)
	if err != nil {
		return errDecorate(err, "VelFileWrite")
	}
	err = VelWrite(out, vels...)
	if err2 := out.Close(); err == nil && err2 != nil {
		err = CError{err2.Error(), []string{"VelFileWrite"}}
	}
	return err
}

//readNonBlank returns the next line that is not only whitespace.
func readNonBlank(r *bufio.Reader) (string, error) {
	for {
		line, err := r.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			return line, nil
		}
		if err != nil {
			return "", err
		}
	}
}
