/*
 * batch.go, part of mdinit.
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

package initcond

import (
	"fmt"
	"io"
	"math"

	chem "github.com/rmera/mdinit"
	"github.com/rmera/mdinit/histo"
	v3 "github.com/rmera/mdinit/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

//Batch is the ordered set of initial conditions produced by Generate. All the molecules
//have the same atoms, and carry their velocities (A/fs) under chem.VelocityKey.
type Batch struct {
	Molecules    []*chem.Molecule
	Method       string
	DOF          int     //degrees of freedom used for sampling. Zero for user-defined batches.
	TargetEnergy float64 //Hartree. Zero for user-defined batches.
	Linear       bool
	Warnings     []string
}

//Len returns the number of initial conditions in the batch.
func (B *Batch) Len() int { return len(B.Molecules) }

//Velocities returns the velocity fields of the batch, in order.
func (B *Batch) Velocities() []*v3.Matrix {
	ret := make([]*v3.Matrix, len(B.Molecules))
	for i, m := range B.Molecules {
		ret[i] = m.Velocities()
	}
	return ret
}

//KineticEnergies returns the kinetic energy, in Hartree, of each initial condition.
func (B *Batch) KineticEnergies() ([]float64, error) {
	ret := make([]float64, len(B.Molecules))
	for i, m := range B.Molecules {
		v := m.Velocities()
		if v == nil {
			return nil, newError(InputError, nil, fmt.Sprintf("molecule %d has no velocities", i), "KineticEnergies")
		}
		masses, err := m.Masses()
		if err != nil {
			return nil, newError(InputError, err, "", "KineticEnergies")
		}
		ret[i], err = chem.KineticEnergyAFs(v, masses)
		if err != nil {
			return nil, newError(InputError, err, "", "KineticEnergies")
		}
	}
	return ret, nil
}

//Temperatures returns the instantaneous temperature (K) of each initial condition, for dof
//degrees of freedom. If dof<=0, the degrees of freedom of the batch are used.
func (B *Batch) Temperatures(dof int) ([]float64, error) {
	if dof <= 0 {
		dof = B.DOF
	}
	if dof <= 0 {
		return nil, newError(PhysicsError, ErrNoDOF, "", "Temperatures")
	}
	ekin, err := B.KineticEnergies()
	if err != nil {
		return nil, errDecorate(err, "Temperatures")
	}
	for i, e := range ekin {
		ekin[i] = chem.Temperature(e, dof)
	}
	return ekin, nil
}

//AtomicKineticEnergies returns the kinetic energy, in Hartree, of every atom of every initial
//condition, in order.
func (B *Batch) AtomicKineticEnergies() ([]float64, error) {
	ret := make([]float64, 0, B.Len()*B.natoms())
	for i, m := range B.Molecules {
		v := m.Velocities()
		if v == nil {
			return nil, newError(InputError, nil, fmt.Sprintf("molecule %d has no velocities", i), "AtomicKineticEnergies")
		}
		for j := 0; j < m.Len(); j++ {
			ret = append(ret, 0.5*m.Atom(j).Mass*chem.Amu2Au*r3.Norm2(v.Vec(j))*chem.AFs2AuVel*chem.AFs2AuVel)
		}
	}
	return ret, nil
}

//SpeedHistogram returns a histogram, with bins bins, of the speeds (A/fs) of all the atoms
//in the batch. If bins<1, the square root of the number of atoms in the batch is used.
func (B *Batch) SpeedHistogram(bins int) (*histo.Data, error) {
	speeds := make([]float64, 0, B.Len()*B.natoms())
	for i, m := range B.Molecules {
		v := m.Velocities()
		if v == nil {
			return nil, newError(InputError, nil, fmt.Sprintf("molecule %d has no velocities", i), "SpeedHistogram")
		}
		for j := 0; j < v.NVecs(); j++ {
			speeds = append(speeds, r3.Norm(v.Vec(j)))
		}
	}
	if len(speeds) == 0 {
		return nil, newError(InputError, nil, "empty batch", "SpeedHistogram")
	}
	if bins < 1 {
		bins = int(math.Ceil(math.Sqrt(float64(len(speeds)))))
	}
	return histo.NewData(histo.Dividers(0, floats.Max(speeds), bins), speeds), nil
}

func (B *Batch) natoms() int {
	if len(B.Molecules) == 0 {
		return 0
	}
	return B.Molecules[0].Len()
}

//Summary contains the statistics of the kinetic energy and temperature of a batch.
type Summary struct {
	N                 int
	MeanEkin, StdEkin float64 //Hartree
	MeanT, StdT       float64 //K
}

//String returns a one-line report of the summary.
func (S Summary) String() string {
	return fmt.Sprintf("%d initial conditions. Ekin: %.6e +/- %.2e Hartree. T: %.2f +/- %.2f K", S.N, S.MeanEkin, S.StdEkin, S.MeanT, S.StdT)
}

//Summary returns the mean and standard deviation of the kinetic energies and temperatures
//of the batch, for dof degrees of freedom (see Temperatures).
//The standard deviations are zero for batches of one.
func (B *Batch) Summary(dof int) (Summary, error) {
	var s Summary
	ekin, err := B.KineticEnergies()
	if err != nil {
		return s, errDecorate(err, "Summary")
	}
	temps, err := B.Temperatures(dof)
	if err != nil {
		return s, errDecorate(err, "Summary")
	}
	s.N = len(ekin)
	if s.N == 0 {
		return s, nil
	}
	if s.N == 1 {
		s.MeanEkin, s.MeanT = ekin[0], temps[0]
		return s, nil
	}
	s.MeanEkin, s.StdEkin = stat.MeanStdDev(ekin, nil)
	s.MeanT, s.StdT = stat.MeanStdDev(temps, nil)
	return s, nil
}

//WriteXYZ writes the coordinates of all the initial conditions to out, as a multi-frame XYZ file.
//Molecules without a comment are written with "initial condition N"; the batch is not modified.
func (B *Batch) WriteXYZ(out io.Writer) error {
	mols := make([]*chem.Molecule, len(B.Molecules))
	for i, m := range B.Molecules {
		mols[i] = m
		if m.Comment == "" {
			labeled := *m
			labeled.Comment = fmt.Sprintf("initial condition %d", i+1)
			mols[i] = &labeled
		}
	}
	if err := chem.XYZWrite(out, mols...); err != nil {
		return newError(InputError, err, "", "WriteXYZ")
	}
	return nil
}

//WriteVelocities writes the velocities (A/fs) of all the initial conditions to out, in the
//velocity file format read by chem.VelRead.
func (B *Batch) WriteVelocities(out io.Writer) error {
	vels := B.Velocities()
	for i, v := range vels {
		if v == nil {
			return newError(InputError, nil, fmt.Sprintf("molecule %d has no velocities", i), "WriteVelocities")
		}
	}
	if err := chem.VelWrite(out, vels...); err != nil {
		return newError(InputError, err, "", "WriteVelocities")
	}
	return nil
}
