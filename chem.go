/*
 * chem.go, part of mdinit.
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
	"fmt"

	v3 "github.com/rmera/mdinit/v3"
)

//VelocityKey is the name under which a Molecule keeps its velocities
//among its vectorial properties.
const VelocityKey = "xyz_velocities"

//Atom contains the information of an atom except for the coordinates, which will be in a matrix.
type Atom struct {
	Name   string
	ID     int
	Symbol string
	Mass   float64 //amu
	Charge float64
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	Newat := new(Atom)
	*Newat = *A
	return Newat
}

/*****Topology type***/

//Topology contains information about a molecule which is not expected to change in time (i.e. everything except for coordinates and vectorial properties)
type Topology struct {
	Atoms []*Atom
}

//NewTopology makes a topology with ats atoms and returns it. It returns error if ats is nil.
func NewTopology(ats []*Atom) (*Topology, error) {
	if ats == nil {
		return nil, CError{"Supplied a nil atom slice", []string{"NewTopology"}}
	}
	return &Topology{Atoms: ats}, nil
}

//CopyAtoms returns a deep copy of the topology.
func (T *Topology) CopyAtoms() *Topology {
	Top := new(Topology)
	Top.Atoms = make([]*Atom, T.Len())
	for key, val := range T.Atoms {
		Top.Atoms[key] = val.Copy()
	}
	return Top
}

//Atom returns the Atom corresponding to the index i
//of the Atom slice in the Topology. Panics if
//out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("Topology: Requested Atom out of bounds")
	}
	return T.Atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

//Masses returns a slice of float64 with the masses of the atoms in the topology, or nil and an error if they have not been calculated
func (T *Topology) Masses() ([]float64, error) {
	mass := make([]float64, T.Len())
	for i := 0; i < T.Len(); i++ {
		thisatom := T.Atom(i)
		if thisatom.Mass <= 0 {
			return nil, CError{fmt.Sprintf("Atom %d (%s) has no valid mass", i, thisatom.Symbol), []string{"Masses"}}
		}
		mass[i] = thisatom.Mass
	}
	return mass, nil
}

//Symbols returns the element symbols of all the atoms, in order.
func (T *Topology) Symbols() []string {
	ret := make([]string, T.Len())
	for i, v := range T.Atoms {
		ret[i] = v.Symbol
	}
	return ret
}

//AssignMasses sets the mass of every atom from its symbol. It returns an error
//if some symbol is not known.
func (T *Topology) AssignMasses() error {
	for i, at := range T.Atoms {
		m, ok := symbolMass[at.Symbol]
		if !ok {
			return CError{fmt.Sprintf("No mass known for symbol %s of atom %d", at.Symbol, i), []string{"AssignMasses"}}
		}
		at.Mass = m
	}
	return nil
}

/**Type Molecule**/

//Molecule contains all the info for a molecule in one geometry: the topology, the
//coordinates (in A) and any number of named vectorial properties, one 3D vector per atom,
//such as velocities.
type Molecule struct {
	*Topology
	Coords  *v3.Matrix
	Vectors map[string]*v3.Matrix
	Comment string //the second line of an XYZ file, or anything else
}

//NewMolecule makes a molecule with ats topology and coords coordinates.
//it returns an error if the number of coordinates doesn't match the number of atoms.
func NewMolecule(ats *Topology, coords *v3.Matrix) (*Molecule, error) {
	if ats == nil || coords == nil {
		return nil, CError{"Supplied a nil topology or coordinates", []string{"NewMolecule"}}
	}
	if ats.Len() != coords.NVecs() {
		return nil, CError{fmt.Sprintf("Mismatched number of atoms (%d) and coordinates (%d)", ats.Len(), coords.NVecs()), []string{"NewMolecule"}}
	}
	mol := new(Molecule)
	mol.Topology = ats
	mol.Coords = coords
	mol.Vectors = make(map[string]*v3.Matrix)
	return mol, nil
}

//Copy returns a deep copy of the molecule, including coordinates and vectorial properties.
func (M *Molecule) Copy() *Molecule {
	if err := M.Corrupted(); err != nil {
		panic(err.Error())
	}
	r := new(Molecule)
	r.Topology = M.Topology.CopyAtoms()
	r.Coords = M.Coords.Clone()
	r.Vectors = make(map[string]*v3.Matrix, len(M.Vectors))
	for k, v := range M.Vectors {
		r.Vectors[k] = v.Clone()
	}
	r.Comment = M.Comment
	return r
}

//Vector returns the vectorial property called name, and whether it exists.
func (M *Molecule) Vector(name string) (*v3.Matrix, bool) {
	v, ok := M.Vectors[name]
	return v, ok
}

//SetVector sets the vectorial property name to vecs, which must have one vector per atom.
//vecs is not copied.
func (M *Molecule) SetVector(name string, vecs *v3.Matrix) error {
	if vecs == nil || vecs.NVecs() != M.Len() {
		return CError{fmt.Sprintf("Vectorial property %s doesn't have one vector per atom", name), []string{"SetVector"}}
	}
	if M.Vectors == nil {
		M.Vectors = make(map[string]*v3.Matrix)
	}
	M.Vectors[name] = vecs
	return nil
}

//Velocities returns the velocities of the molecule, in A/fs, or nil if not set.
func (M *Molecule) Velocities() *v3.Matrix {
	return M.Vectors[VelocityKey]
}

//Corrupted checks whether the molecule is consistent, i.e. that the topology,
//the coordinates and every vectorial property have the same number of atoms.
func (M *Molecule) Corrupted() error {
	if M == nil || M.Topology == nil || M.Coords == nil {
		return CError{"Nil molecule, topology or coordinates", []string{"Corrupted"}}
	}
	if M.Len() != M.Coords.NVecs() {
		return CError{fmt.Sprintf("Inconsistent coordinates(%d)/atoms(%d)", M.Coords.NVecs(), M.Len()), []string{"Corrupted"}}
	}
	for k, v := range M.Vectors {
		if v.NVecs() != M.Len() {
			return CError{fmt.Sprintf("Inconsistent property %s(%d)/atoms(%d)", k, v.NVecs(), M.Len()), []string{"Corrupted"}}
		}
	}
	return nil
}

//Errors

//CError is the error type for the chem package.
type CError struct {
	msg  string
	deco []string
}

//Error returns the error message.
func (err CError) Error() string { return err.msg }

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Decorated returns a copy of the error with dec appended to its decorations.
func (err CError) Decorated(dec string) error {
	if dec == "" {
		return err
	}
	err.deco = append(append([]string(nil), err.deco...), dec)
	return err
}
