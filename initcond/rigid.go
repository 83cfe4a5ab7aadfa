/*
 * rigid.go, part of mdinit.
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

	chem "github.com/rmera/mdinit"
	v3 "github.com/rmera/mdinit/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

//RemoveTranslation returns a copy of vels where the velocity of the center of mass has
//been subtracted from every vector, so the total linear momentum is zero.
func RemoveTranslation(vels *v3.Matrix, masses []float64) (*v3.Matrix, error) {
	if err := checkVels(vels, vels, masses); err != nil {
		return nil, errDecorate(err, "RemoveTranslation")
	}
	p, err := chem.LinearMomentum(vels, masses)
	if err != nil {
		return nil, newError(InputError, err, "", "RemoveTranslation")
	}
	vcm := r3.Scale(1/floats.Sum(masses), p)
	ret := v3.Zeros(vels.NVecs())
	ret.SubVec(vels, vcm)
	return ret, nil
}

//RemoveAngularComponent returns a copy of vels from which the rigid rotation around the center
//of mass has been removed: the angular velocity w is obtained from L = I w, and w x r is subtracted
//from the velocity of each atom, r being its position relative to the center of mass. The total
//angular momentum of the result is zero, and its linear momentum is that of vels.
//The moment tensor must not be singular, so this doesn't work for linear molecules.
func RemoveAngularComponent(coords, vels *v3.Matrix, masses []float64) (*v3.Matrix, error) {
	if err := checkVels(coords, vels, masses); err != nil {
		return nil, errDecorate(err, "RemoveAngularComponent")
	}
	center, err := chem.CenterOfMass(coords, masses)
	if err != nil {
		return nil, newError(InputError, err, "", "RemoveAngularComponent")
	}
	w, err := chem.AngularVelocity(coords, vels, masses, center)
	if err != nil {
		return nil, newError(PhysicsError, err, "", "RemoveAngularComponent")
	}
	return subRotation(coords, vels, center, w), nil
}

//RemoveAxialRotation is the equivalent of RemoveAngularComponent for linear molecules, with axis along
//the molecular axis. Only rotations perpendicular to the axis are defined, and the angular velocity is
//obtained from the perpendicular moment of inertia.
func RemoveAxialRotation(coords, vels *v3.Matrix, masses []float64, axis r3.Vec) (*v3.Matrix, error) {
	if err := checkVels(coords, vels, masses); err != nil {
		return nil, errDecorate(err, "RemoveAxialRotation")
	}
	center, err := chem.CenterOfMass(coords, masses)
	if err != nil {
		return nil, newError(InputError, err, "", "RemoveAxialRotation")
	}
	L, err := chem.AngularMomentum(coords, vels, masses, center)
	if err != nil {
		return nil, newError(InputError, err, "", "RemoveAxialRotation")
	}
	u := r3.Unit(axis)
	var iperp float64
	for i := 0; i < coords.NVecs(); i++ {
		d := r3.Dot(r3.Sub(coords.Vec(i), center), u)
		iperp += masses[i] * d * d
	}
	if iperp <= 0 {
		//All atoms in the same point, there is no rotation to remove.
		return vels.Clone(), nil
	}
	Lperp := r3.Sub(L, r3.Scale(r3.Dot(L, u), u))
	w := r3.Scale(1/iperp, Lperp)
	return subRotation(coords, vels, center, w), nil
}

func subRotation(coords, vels *v3.Matrix, center, w r3.Vec) *v3.Matrix {
	ret := v3.Zeros(vels.NVecs())
	for i := 0; i < vels.NVecs(); i++ {
		r := r3.Sub(coords.Vec(i), center)
		ret.SetVec(i, r3.Sub(vels.Vec(i), r3.Cross(w, r)))
	}
	return ret
}

//checkVels returns an error if coords, vels and masses don't have the same number of atoms.
func checkVels(coords, vels *v3.Matrix, masses []float64) error {
	if coords.NVecs() != vels.NVecs() || len(masses) != vels.NVecs() {
		return newError(InputError, ErrMismatch, fmt.Sprintf("%d coordinates, %d velocities, %d masses", coords.NVecs(), vels.NVecs(), len(masses)), "checkVels")
	}
	return nil
}

//errDecorate adds caller to the decorations of err if it is a chem.Error.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(chem.Error); ok {
		return err2.Decorated(caller)
	}
	return err
}
