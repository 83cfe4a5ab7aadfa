/*
 * geometric.go, part of mdinit.
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
	"math"

	v3 "github.com/rmera/mdinit/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//checkMasses returns uniform masses if mass is nil, or an error if mass
//doesn't have one element per vector.
func checkMasses(n int, mass []float64, caller string) ([]float64, error) {
	if mass == nil {
		mass = make([]float64, n)
		for i := range mass {
			mass[i] = 1
		}
		return mass, nil
	}
	if len(mass) != n {
		return nil, CError{fmt.Sprintf("Inconsistent coordinates(%d)/masses(%d)", n, len(mass)), []string{caller}}
	}
	return mass, nil
}

//CenterOfMass returns the center of mass the atoms represented by the coordinates in geometry
//and the masses in mass, and an error. If mass is nil, it calculates the geometric center
func CenterOfMass(geometry *v3.Matrix, mass []float64) (r3.Vec, error) {
	if geometry == nil {
		return r3.Vec{}, CError{"nil matrix to get the center of mass", []string{"CenterOfMass"}}
	}
	gr := geometry.NVecs()
	mass, err := checkMasses(gr, mass, "CenterOfMass")
	if err != nil {
		return r3.Vec{}, err
	}
	var ref r3.Vec
	for i := 0; i < gr; i++ {
		ref = r3.Add(ref, r3.Scale(mass[i], geometry.Vec(i)))
	}
	return r3.Scale(1.0/floats.Sum(mass), ref), nil
}

//MassCentrate returns a copy of in, centered in the center of mass of in, and the
//center of mass. If mass is nil, the geometric center is used.
func MassCentrate(in *v3.Matrix, mass []float64) (*v3.Matrix, r3.Vec, error) {
	center, err := CenterOfMass(in, mass)
	if err != nil {
		return nil, r3.Vec{}, err
	}
	returned := v3.Zeros(in.NVecs())
	returned.SubVec(in, center)
	return returned, center, nil
}

//MomentTensor returns the moment of inertia tensor for the coordinates A, with
//masses mass, around the point center:
//I_ij = sum_k m_k (|r_k|^2 delta_ij - r_ki r_kj), with r_k = A_k - center.
//A nil mass gives unit masses.
func MomentTensor(A *v3.Matrix, mass []float64, center r3.Vec) (*v3.Matrix, error) {
	ar := A.NVecs()
	mass, err := checkMasses(ar, mass, "MomentTensor")
	if err != nil {
		return nil, err
	}
	moment := v3.Zeros(3)
	for k := 0; k < ar; k++ {
		r := r3.Sub(A.Vec(k), center)
		rr := []float64{r.X, r.Y, r.Z}
		r2 := r3.Norm2(r)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				moment.Set(i, j, moment.At(i, j)+mass[k]*(r2*v3.KronekerDelta(float64(i), float64(j), -1)-rr[i]*rr[j]))
			}
		}
	}
	return moment, nil
}

//LinearMomentum returns the total linear momentum, sum_i m_i v_i.
func LinearMomentum(vels *v3.Matrix, mass []float64) (r3.Vec, error) {
	mass, err := checkMasses(vels.NVecs(), mass, "LinearMomentum")
	if err != nil {
		return r3.Vec{}, err
	}
	var p r3.Vec
	for i := 0; i < vels.NVecs(); i++ {
		p = r3.Add(p, r3.Scale(mass[i], vels.Vec(i)))
	}
	return p, nil
}

//AngularMomentum returns the total angular momentum around center,
//sum_i m_i (r_i - center) x v_i.
func AngularMomentum(coords, vels *v3.Matrix, mass []float64, center r3.Vec) (r3.Vec, error) {
	n := coords.NVecs()
	if vels.NVecs() != n {
		return r3.Vec{}, CError{fmt.Sprintf("Inconsistent coordinates(%d)/velocities(%d)", n, vels.NVecs()), []string{"AngularMomentum"}}
	}
	mass, err := checkMasses(n, mass, "AngularMomentum")
	if err != nil {
		return r3.Vec{}, err
	}
	var L r3.Vec
	for i := 0; i < n; i++ {
		r := r3.Sub(coords.Vec(i), center)
		L = r3.Add(L, r3.Scale(mass[i], r3.Cross(r, vels.Vec(i))))
	}
	return L, nil
}

//AngularVelocity solves L = I w for the angular velocity w around center. It returns an
//error if the moment tensor is singular, as it happens for linear molecules, so it should
//only be used for non-linear ones.
func AngularVelocity(coords, vels *v3.Matrix, mass []float64, center r3.Vec) (r3.Vec, error) {
	L, err := AngularMomentum(coords, vels, mass, center)
	if err != nil {
		return r3.Vec{}, errDecorate(err, "AngularVelocity")
	}
	I, err := MomentTensor(coords, mass, center)
	if err != nil {
		return r3.Vec{}, errDecorate(err, "AngularVelocity")
	}
	var lu mat.LU
	lu.Factorize(I.Dense)
	if c := lu.Cond(); c > singularTol || math.IsInf(c, 0) || math.IsNaN(c) {
		return r3.Vec{}, CError{fmt.Sprintf("Singular moment tensor (condition number %g). Is the molecule linear?", c), []string{"AngularVelocity"}}
	}
	var w mat.VecDense
	if err := lu.SolveVecTo(&w, false, mat.NewVecDense(3, []float64{L.X, L.Y, L.Z})); err != nil {
		return r3.Vec{}, CError{"Can't solve for the angular velocity: " + err.Error(), []string{"AngularVelocity"}}
	}
	return r3.Vec{X: w.AtVec(0), Y: w.AtVec(1), Z: w.AtVec(2)}, nil
}

//PrincipalMoments returns the principal axes (as rows) and the principal moments of inertia of
//coords around their center of mass, from the smallest to the largest moment.
func PrincipalMoments(coords *v3.Matrix, mass []float64) (*v3.Matrix, []float64, error) {
	center, err := CenterOfMass(coords, mass)
	if err != nil {
		return nil, nil, errDecorate(err, "PrincipalMoments")
	}
	I, err := MomentTensor(coords, mass, center)
	if err != nil {
		return nil, nil, errDecorate(err, "PrincipalMoments")
	}
	evecs, evals, err := v3.EigenWrap(I, -1)
	if err != nil {
		return nil, nil, errDecorate(err, "PrincipalMoments")
	}
	return evecs, evals, nil
}

//IsLinear returns true if the atoms in coords lie on a line. Systems of one or two atoms are always linear.
//Otherwise the molecule is linear if its smallest principal moment of inertia is smaller than tol times
//the largest. If tol<0, LinearTol is used.
func IsLinear(coords *v3.Matrix, mass []float64, tol float64) (bool, error) {
	if tol < 0 {
		tol = LinearTol
	}
	if coords.NVecs() <= 2 {
		return true, nil
	}
	_, evals, err := PrincipalMoments(coords, mass)
	if err != nil {
		return false, errDecorate(err, "IsLinear")
	}
	if evals[2] <= 0 {
		return true, nil //all atoms on the same point.
	}
	return math.Abs(evals[0]) <= tol*evals[2], nil
}

//KineticEnergy returns sum_i 1/2 m_i |v_i|^2, in the units given by those of
//vels and mass.
func KineticEnergy(vels *v3.Matrix, mass []float64) (float64, error) {
	mass, err := checkMasses(vels.NVecs(), mass, "KineticEnergy")
	if err != nil {
		return 0, err
	}
	e := make([]float64, vels.NVecs())
	for i := range e {
		e[i] = 0.5 * mass[i] * r3.Norm2(vels.Vec(i))
	}
	return floats.Sum(e), nil
}

//KineticEnergyAFs returns the kinetic energy in Hartree for velocities in A/fs and masses in amu.
func KineticEnergyAFs(vels *v3.Matrix, mass []float64) (float64, error) {
	e, err := KineticEnergy(vels, mass)
	if err != nil {
		return 0, errDecorate(err, "KineticEnergyAFs")
	}
	return e * Amu2Au * AFs2AuVel * AFs2AuVel, nil
}

//Temperature returns the temperature (K) that corresponds to the kinetic energy ekin (Hartree)
//distributed in dof degrees of freedom.
func Temperature(ekin float64, dof int) float64 {
	return 2 * ekin / (float64(dof) * KB)
}

//Super returns a copy of test superimposed on templa, with the rotation that minimizes the RMSD
//between them (Kabsch algorithm). Reflections are not allowed. Both matrices must have the same
//number of vectors.
func Super(test, templa *v3.Matrix) (*v3.Matrix, error) {
	if test.NVecs() != templa.NVecs() {
		return nil, CError{fmt.Sprintf("Ill-formed matrices for superposition: %d and %d vectors", test.NVecs(), templa.NVecs()), []string{"Super"}}
	}
	ctest, _, err := MassCentrate(test, nil)
	if err != nil {
		return nil, errDecorate(err, "Super")
	}
	ctempla, distempla, err := MassCentrate(templa, nil)
	if err != nil {
		return nil, errDecorate(err, "Super")
	}
	H := v3.Zeros(3)
	H.Mul(ctest.T(), ctempla)
	var svd mat.SVD
	if ok := svd.Factorize(H, mat.SVDFull); !ok {
		return nil, CError{"SVD failed in superposition", []string{"mat.SVD.Factorize", "Super"}}
	}
	var U, V mat.Dense
	svd.UTo(&U)
	svd.VTo(&V)
	//R = V diag(1,1,d) U^T, with d chosen so R is a proper rotation.
	var VUt mat.Dense
	VUt.Mul(&V, U.T())
	d := mat.NewDiagDense(3, []float64{1, 1, 1})
	if mat.Det(&VUt) < 0 {
		d.SetDiag(2, -1)
	}
	Rotation := v3.Zeros(3)
	var aux mat.Dense
	aux.Mul(&V, d)
	Rotation.Mul(&aux, U.T())
	transformed := v3.Zeros(test.NVecs())
	transformed.Mul(ctest, Rotation.T())
	transformed.AddVec(transformed, distempla)
	return transformed, nil
}

//RMSD returns the RMSD (root of the mean square deviation) for the sets of cartesian
//coordinates in test and template. No superposition is performed.
func RMSD(test, template *v3.Matrix) (float64, error) {
	if test.NVecs() != template.NVecs() {
		return 0, CError{fmt.Sprintf("Ill formed matrices for RMSD calculation: %d and %d vectors", test.NVecs(), template.NVecs()), []string{"RMSD"}}
	}
	var rmsd float64
	for i := 0; i < template.NVecs(); i++ {
		rmsd += r3.Norm2(r3.Sub(template.Vec(i), test.Vec(i)))
	}
	return math.Sqrt(rmsd / float64(template.NVecs())), nil
}

//errDecorate is a helper function that asserts that the error is
//implements chem.Error and decorates the error with the caller's name before returning it.
//Errors not implementing chem.Error are returned unchanged.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if err2, ok := err.(Error); ok {
		return err2.Decorated(caller)
	}
	return err
}
