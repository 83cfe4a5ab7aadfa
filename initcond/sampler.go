/*
 * sampler.go, part of mdinit.
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
	"math"

	chem "github.com/rmera/mdinit"
	v3 "github.com/rmera/mdinit/v3"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

//DegreesOfFreedom returns the number of degrees of freedom for a molecule of natoms atoms.
//Without override it is 3N-6, or 3N-5 if linear. A positive override is returned as is,
//a zero or negative one is taken as an offset from 3N.
func DegreesOfFreedom(natoms int, linear bool, override *int) int {
	if override != nil {
		if *override > 0 {
			return *override
		}
		return 3*natoms + *override
	}
	return theoreticalDOF(natoms, linear)
}

func theoreticalDOF(natoms int, linear bool) int {
	if linear {
		return 3*natoms - 5
	}
	return 3*natoms - 6
}

//TargetEnergy returns the kinetic energy, in Hartree, to be given to a molecule with dof degrees of freedom.
//It is ekin if given, or dof/2 kB T otherwise, where T is temperature, or chem.RefTemp if temperature is nil.
//Giving both temperature and ekin is a ConfigError.
func TargetEnergy(dof int, temperature, ekin *float64) (float64, error) {
	if temperature != nil && ekin != nil {
		return 0, newError(ConfigError, ErrTempAndEnergy, "", "TargetEnergy")
	}
	if ekin != nil {
		return *ekin, nil
	}
	T := chem.RefTemp
	if temperature != nil {
		T = *temperature
	}
	return float64(dof) / 2 * chem.KB * T, nil
}

//Sampler draws random velocity fields for one molecule. Once built, it is not modified
//by sampling, so one Sampler can be used from several goroutines, each with its own
//random source.
type Sampler struct {
	coords   *v3.Matrix
	masses   []float64 //amu
	linear   bool
	axis     *v3.Matrix //principal axes, as rows. The first is the molecular axis of linear molecules.
	dof      int
	ekin     float64 //Hartree
	noang    bool
	notrans  bool
	warnings warnings
}

//NewSampler prepares a Sampler for mol with the options in o. It detects whether mol is linear
//(unless o.Linear is set), computes the degrees of freedom and the target kinetic energy, and
//emits a warning if the degrees of freedom don't match the geometry, or if a linear molecule is
//sampled without eliminating its angular momentum. A nil o means DefaultOptions().
func NewSampler(mol *chem.Molecule, o *Options) (*Sampler, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if err := mol.Corrupted(); err != nil {
		return nil, newError(InputError, err, "", "NewSampler")
	}
	masses, err := mol.Masses()
	if err != nil {
		return nil, newError(InputError, err, "", "NewSampler")
	}
	S := &Sampler{coords: mol.Coords.Clone(), masses: masses, noang: o.EliminateAngularMomentum, notrans: o.RemoveTranslation}
	n := mol.Len()
	if o.Linear != nil {
		S.linear = *o.Linear
	} else if S.linear, err = chem.IsLinear(S.coords, masses, -1); err != nil {
		return nil, newError(InputError, err, "", "NewSampler")
	}
	if n > 1 {
		S.axis, _, err = chem.PrincipalMoments(S.coords, masses)
		if err != nil {
			return nil, newError(InputError, err, "", "NewSampler")
		}
	}
	S.dof = DegreesOfFreedom(n, S.linear, o.DOF)
	if theo := theoreticalDOF(n, S.linear); S.dof != theo {
		kind := "non-linear"
		if S.linear {
			kind = "linear"
		}
		S.warnings.add("%d degrees of freedom requested, but a %s molecule of %d atoms has %d", S.dof, kind, n, theo)
	}
	if S.linear && !S.noang {
		S.warnings.add("linear molecule detected but the elimination of angular momentum was not requested")
	}
	if S.dof <= 0 {
		return nil, newError(PhysicsError, ErrNoDOF, fmt.Sprintf("%d atoms, %d degrees of freedom", n, S.dof), "NewSampler")
	}
	S.ekin, err = TargetEnergy(S.dof, o.Temperature, o.KineticEnergy)
	if err != nil {
		return nil, errDecorate(err, "NewSampler")
	}
	return S, nil
}

//DOF returns the degrees of freedom used by the sampler.
func (S *Sampler) DOF() int { return S.dof }

//Linear returns true if the molecule is treated as linear.
func (S *Sampler) Linear() bool { return S.linear }

//TargetEnergy returns the kinetic energy of each sample, in Hartree.
func (S *Sampler) TargetEnergy() float64 { return S.ekin }

//Warnings returns the warnings issued when building the sampler.
func (S *Sampler) Warnings() []string {
	return append([]string(nil), S.warnings...)
}

//Sample draws one velocity field, in A/fs, using src as the source of randomness.
func (S *Sampler) Sample(src rand.Source) (*v3.Matrix, error) {
	raw := normalDraws(src, len(S.masses))
	var vels *v3.Matrix
	var err error
	if S.linear {
		vels, err = S.sampleLinear(raw)
	} else {
		vels, err = S.sampleNonLinear(raw)
	}
	if err != nil {
		return nil, errDecorate(err, "Sample")
	}
	vels.Scale(chem.AuVel2AFs, vels.Dense)
	return vels, nil
}

//normalDraws returns a field of i.i.d. standard normal numbers, one per atom and axis.
func normalDraws(src rand.Source, natoms int) *v3.Matrix {
	N := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	raw := v3.Zeros(natoms)
	for i := 0; i < natoms; i++ {
		for j := 0; j < 3; j++ {
			raw.Set(i, j, N.Rand())
		}
	}
	return raw
}

//massWeight returns raw with each vector divided by the square root of the mass of its atom (in a.u.).
func (S *Sampler) massWeight(raw *v3.Matrix) *v3.Matrix {
	vels := v3.Zeros(raw.NVecs())
	for i, m := range S.masses {
		for j := 0; j < 3; j++ {
			vels.Set(i, j, raw.At(i, j)/math.Sqrt(m*chem.Amu2Au))
		}
	}
	return vels
}

//sampleNonLinear mass-weights the draws, removes the rigid-body motion as requested
//and rescales the result to the target kinetic energy. Returns atomic units.
func (S *Sampler) sampleNonLinear(raw *v3.Matrix) (*v3.Matrix, error) {
	var err error
	vels := S.massWeight(raw)
	if S.notrans {
		if vels, err = RemoveTranslation(vels, S.masses); err != nil {
			return nil, errDecorate(err, "sampleNonLinear")
		}
	}
	if S.noang {
		if vels, err = RemoveAngularComponent(S.coords, vels, S.masses); err != nil {
			return nil, errDecorate(err, "sampleNonLinear")
		}
	}
	return S.rescale(vels, "sampleNonLinear")
}

//sampleLinear samples a linear molecule. The draws are weighted by 1/sqrt(m), the velocity
//of the center of mass is subtracted, and only the rotations perpendicular to the molecular
//axis are removed, as the rotation around the axis is not defined. Unlike a bare 1/sqrt(m)
//scaling, which leaves the energy of a linear sample to chance, the result is then
//normalized to the target kinetic energy like any other sample. Returns atomic units.
func (S *Sampler) sampleLinear(raw *v3.Matrix) (*v3.Matrix, error) {
	var err error
	vels := S.massWeight(raw)
	if S.notrans {
		if vels, err = RemoveTranslation(vels, S.masses); err != nil {
			return nil, errDecorate(err, "sampleLinear")
		}
	}
	if S.noang && S.axis != nil {
		//the smallest principal moment belongs to the molecular axis.
		if vels, err = RemoveAxialRotation(S.coords, vels, S.masses, S.axis.Vec(0)); err != nil {
			return nil, errDecorate(err, "sampleLinear")
		}
	}
	return S.rescale(vels, "sampleLinear")
}

//rescale scales vels (atomic units) so their kinetic energy is the target one.
func (S *Sampler) rescale(vels *v3.Matrix, caller string) (*v3.Matrix, error) {
	mau := make([]float64, len(S.masses))
	for i, m := range S.masses {
		mau[i] = m * chem.Amu2Au
	}
	e, err := chem.KineticEnergy(vels, mau)
	if err != nil {
		return nil, newError(InputError, err, "", caller)
	}
	if e <= 0 {
		return nil, newError(PhysicsError, ErrZeroKinetic, "", caller)
	}
	vels.Scale(math.Sqrt(S.ekin/e), vels.Dense)
	return vels, nil
}
