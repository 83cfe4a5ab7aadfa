/*
 * initcond_test.go, part of mdinit.
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
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/mdinit"
	v3 "github.com/rmera/mdinit/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r3"
)

func init() {
	SetLogger(nil)
}

//testMol builds a molecule from symbols, masses (amu) and coordinates (A).
func testMol(Te *testing.T, symbols []string, masses []float64, coords []float64) *chem.Molecule {
	Te.Helper()
	ats := make([]*chem.Atom, len(symbols))
	for i, s := range symbols {
		ats[i] = &chem.Atom{Name: s, Symbol: s, ID: i + 1, Mass: masses[i]}
	}
	top, err := chem.NewTopology(ats)
	require.NoError(Te, err)
	c, err := v3.NewMatrix(coords)
	require.NoError(Te, err)
	mol, err := chem.NewMolecule(top, c)
	require.NoError(Te, err)
	return mol
}

func water(Te *testing.T) *chem.Molecule {
	return testMol(Te, []string{"O", "H", "H"}, []float64{16, 1, 1},
		[]float64{0, 0, 0, 0.757, 0.586, 0, -0.757, 0.586, 0})
}

func co2(Te *testing.T) *chem.Molecule {
	return testMol(Te, []string{"C", "O", "O"}, []float64{12, 16, 16},
		[]float64{0, 0, 0, 1.16, 0, 0, -1.16, 0, 0})
}

//momenta returns the linear and angular momentum of the velocities (A/fs) in mol.
func momenta(Te *testing.T, mol *chem.Molecule) (r3.Vec, r3.Vec) {
	Te.Helper()
	masses, err := mol.Masses()
	require.NoError(Te, err)
	center, err := chem.CenterOfMass(mol.Coords, masses)
	require.NoError(Te, err)
	p, err := chem.LinearMomentum(mol.Velocities(), masses)
	require.NoError(Te, err)
	L, err := chem.AngularMomentum(mol.Coords, mol.Velocities(), masses, center)
	require.NoError(Te, err)
	return p, L
}

func TestDegreesOfFreedom(Te *testing.T) {
	assert.Equal(Te, 3, DegreesOfFreedom(3, false, nil))
	assert.Equal(Te, 4, DegreesOfFreedom(3, true, nil))
	assert.Equal(Te, 1, DegreesOfFreedom(2, true, nil))
	assert.Equal(Te, 7, DegreesOfFreedom(3, false, Int(7)))
	assert.Equal(Te, 3, DegreesOfFreedom(3, true, Int(-6)))
	assert.Equal(Te, 9, DegreesOfFreedom(3, false, Int(0)))
}

func TestTargetEnergy(Te *testing.T) {
	e, err := TargetEnergy(3, nil, nil)
	require.NoError(Te, err)
	assert.InDelta(Te, 1.5*chem.KB*chem.RefTemp, e, 1e-15)
	e, err = TargetEnergy(4, Float(100), nil)
	require.NoError(Te, err)
	assert.InDelta(Te, 2*chem.KB*100, e, 1e-15)
	e, err = TargetEnergy(4, nil, Float(0.01))
	require.NoError(Te, err)
	assert.Equal(Te, 0.01, e)
	_, err = TargetEnergy(4, Float(100), Float(0.01))
	require.Error(Te, err)
	assert.True(Te, IsKind(err, ConfigError))
}

func TestRemoveAngularComponent(Te *testing.T) {
	mol := water(Te)
	masses, _ := mol.Masses()
	vels, err := v3.NewMatrix([]float64{0.1, -0.2, 0.3, 0.5, 0.1, -0.4, -0.3, 0.2, 0.6})
	require.NoError(Te, err)
	p0, err := chem.LinearMomentum(vels, masses)
	require.NoError(Te, err)
	out, err := RemoveAngularComponent(mol.Coords, vels, masses)
	require.NoError(Te, err)
	center, _ := chem.CenterOfMass(mol.Coords, masses)
	L, err := chem.AngularMomentum(mol.Coords, out, masses, center)
	require.NoError(Te, err)
	assert.InDelta(Te, 0, r3.Norm(L), 1e-10)
	p, err := chem.LinearMomentum(out, masses)
	require.NoError(Te, err)
	assert.InDelta(Te, 0, r3.Norm(r3.Sub(p, p0)), 1e-10)
	//the input is not touched
	assert.Equal(Te, 0.1, vels.At(0, 0))

	out, err = RemoveTranslation(vels, masses)
	require.NoError(Te, err)
	p, _ = chem.LinearMomentum(out, masses)
	assert.InDelta(Te, 0, r3.Norm(p), 1e-12)

	_, err = RemoveAngularComponent(mol.Coords, v3.Zeros(2), masses)
	assert.True(Te, IsKind(err, InputError))
	lin := co2(Te)
	lmasses, _ := lin.Masses()
	_, err = RemoveAngularComponent(lin.Coords, vels, lmasses)
	assert.True(Te, IsKind(err, PhysicsError))
}

func TestRemoveAxialRotation(Te *testing.T) {
	mol := co2(Te)
	masses, _ := mol.Masses()
	vels, err := v3.NewMatrix([]float64{0.1, -0.2, 0.3, 0.5, 0.1, -0.4, -0.3, 0.2, 0.6})
	require.NoError(Te, err)
	out, err := RemoveAxialRotation(mol.Coords, vels, masses, r3.Vec{X: 2})
	require.NoError(Te, err)
	center, _ := chem.CenterOfMass(mol.Coords, masses)
	L, err := chem.AngularMomentum(mol.Coords, out, masses, center)
	require.NoError(Te, err)
	assert.InDelta(Te, 0, r3.Norm(L), 1e-10)
}

func TestSampleWater(Te *testing.T) {
	mol := water(Te)
	o := DefaultOptions()
	o.Count = 5
	o.Temperature = Float(300)
	o.Seed = 1
	b, err := Generate(mol, o)
	require.NoError(Te, err)
	require.Equal(Te, 5, b.Len())
	assert.Equal(Te, 3, b.DOF)
	assert.False(Te, b.Linear)
	assert.Empty(Te, b.Warnings)
	target := 1.5 * chem.KB * 300
	assert.InDelta(Te, target, b.TargetEnergy, 1e-15)
	ekin, err := b.KineticEnergies()
	require.NoError(Te, err)
	for i, m := range b.Molecules {
		assert.InDelta(Te, 1, ekin[i]/target, 1e-9, "sample %d", i)
		p, L := momenta(Te, m)
		assert.InDelta(Te, 0, r3.Norm(p), 1e-12, "sample %d", i)
		assert.InDelta(Te, 0, r3.Norm(L), 1e-12, "sample %d", i)
		assert.True(Te, m.Coords.EqualApprox(mol.Coords, 0), "coordinates changed in sample %d", i)
		for j := 0; j < i; j++ {
			assert.False(Te, m.Velocities().EqualApprox(b.Molecules[j].Velocities(), 1e-12), "samples %d and %d are equal", i, j)
		}
	}
	_, ok := mol.Vector(chem.VelocityKey)
	assert.False(Te, ok, "template molecule modified")
	temps, err := b.Temperatures(0)
	require.NoError(Te, err)
	for _, t := range temps {
		assert.InDelta(Te, 300, t, 1e-6)
	}
	atomic, err := b.AtomicKineticEnergies()
	require.NoError(Te, err)
	require.Len(Te, atomic, 15)
	for i := 0; i < 5; i++ {
		assert.InDelta(Te, ekin[i], atomic[3*i]+atomic[3*i+1]+atomic[3*i+2], 1e-15)
	}
	h, err := b.SpeedHistogram(4)
	require.NoError(Te, err)
	assert.Equal(Te, 15, h.Total())
	s, err := b.Summary(0)
	require.NoError(Te, err)
	assert.InDelta(Te, 300, s.MeanT, 1e-6)
	assert.InDelta(Te, 0, s.StdT, 1e-6)
	fmt.Println(s)
}

func TestSampleKineticEnergy(Te *testing.T) {
	o := DefaultOptions()
	o.Count = 3
	o.KineticEnergy = Float(0.005)
	o.EliminateAngularMomentum = false
	o.RemoveTranslation = false
	b, err := Generate(water(Te), o)
	require.NoError(Te, err)
	ekin, err := b.KineticEnergies()
	require.NoError(Te, err)
	for _, e := range ekin {
		assert.InDelta(Te, 0.005, e, 1e-12)
	}
}

func TestSampleLinear(Te *testing.T) {
	mol := co2(Te)
	o := DefaultOptions()
	o.Count = 4
	o.Seed = 7
	b, err := Generate(mol, o)
	require.NoError(Te, err)
	assert.True(Te, b.Linear)
	assert.Equal(Te, 4, b.DOF)
	assert.Empty(Te, b.Warnings)
	target := 2 * chem.KB * chem.RefTemp
	ekin, err := b.KineticEnergies()
	require.NoError(Te, err)
	for i, m := range b.Molecules {
		assert.InDelta(Te, 1, ekin[i]/target, 1e-9)
		p, L := momenta(Te, m)
		assert.InDelta(Te, 0, r3.Norm(p), 1e-12)
		assert.InDelta(Te, 0, r3.Norm(L), 1e-12)
	}
	//a diatomic molecule is always linear
	b, err = Generate(testMol(Te, []string{"H", "H"}, []float64{1, 1}, []float64{0, 0, 0, 0.3, 0.4, 0.1}), o)
	require.NoError(Te, err)
	assert.True(Te, b.Linear)
	assert.Equal(Te, 1, b.DOF)
}

func TestWarnings(Te *testing.T) {
	o := DefaultOptions()
	o.DOF = Int(5)
	b, err := Generate(water(Te), o)
	require.NoError(Te, err)
	assert.Equal(Te, 5, b.DOF)
	assert.Len(Te, b.Warnings, 1)

	o = DefaultOptions()
	o.EliminateAngularMomentum = false
	b, err = Generate(co2(Te), o)
	require.NoError(Te, err)
	assert.Len(Te, b.Warnings, 1)

	//A single atom has no degrees of freedom left.
	_, err = Generate(testMol(Te, []string{"Ar"}, []float64{39.95}, []float64{0, 0, 0}), DefaultOptions())
	require.Error(Te, err)
	assert.True(Te, IsKind(err, PhysicsError))
	assert.True(Te, errors.Is(err, ErrNoDOF))
}

func TestDeterminism(Te *testing.T) {
	mol := water(Te)
	var batches []*Batch
	for _, cpus := range []int{1, 3, 8} {
		o := DefaultOptions()
		o.Count = 10
		o.Seed = 12345
		o.Cpus = cpus
		b, err := Generate(mol, o)
		require.NoError(Te, err)
		batches = append(batches, b)
	}
	for _, b := range batches[1:] {
		for i, m := range b.Molecules {
			assert.True(Te, m.Velocities().EqualApprox(batches[0].Molecules[i].Velocities(), 0), "sample %d differs", i)
		}
	}
	o := DefaultOptions()
	o.Count = 10
	o.Seed = 54321
	b, err := Generate(mol, o)
	require.NoError(Te, err)
	assert.False(Te, b.Molecules[0].Velocities().EqualApprox(batches[0].Molecules[0].Velocities(), 1e-12))
}

func TestSamplerDirect(Te *testing.T) {
	S, err := NewSampler(water(Te), DefaultOptions())
	require.NoError(Te, err)
	v1, err := S.Sample(rand.NewSource(3))
	require.NoError(Te, err)
	v2, err := S.Sample(rand.NewSource(3))
	require.NoError(Te, err)
	assert.True(Te, v1.EqualApprox(v2, 0))
	assert.Equal(Te, 3, S.DOF())
}

func TestConfigErrors(Te *testing.T) {
	o := DefaultOptions()
	o.Temperature = Float(300)
	o.KineticEnergy = Float(0.01)
	b, err := Generate(water(Te), o)
	assert.Nil(Te, b)
	require.Error(Te, err)
	assert.True(Te, IsKind(err, ConfigError))
	assert.True(Te, errors.Is(err, ErrTempAndEnergy))

	o = DefaultOptions()
	o.Method = "wigner"
	b, err = Generate(water(Te), o)
	assert.Nil(Te, b)
	assert.True(Te, IsKind(err, ConfigError))
	assert.True(Te, errors.Is(err, ErrUnknownMethod))

	o = DefaultOptions()
	o.Method = UserDefined
	_, err = Generate(water(Te), o)
	assert.True(Te, errors.Is(err, ErrNoVelFile))

	o = DefaultOptions()
	o.Count = 0
	_, err = Generate(water(Te), o)
	assert.True(Te, errors.Is(err, ErrBadCount))

	o = DefaultOptions()
	o.Temperature = Float(-1)
	_, err = Generate(water(Te), o)
	assert.True(Te, errors.Is(err, ErrNegativeTarget))
}

func TestUserDefined(Te *testing.T) {
	dir := Te.TempDir()
	velfile := filepath.Join(dir, "velocities")
	vels := "3\n0.1 0.2 0.3\n0.4 0.5 0.6\n0.7 0.8 0.9\n\n1.0 2.0 3.0\n-4.0 5.5 6.0\n7.0 8.0 -9.25\n"
	require.NoError(Te, os.WriteFile(velfile, []byte(vels), 0644))
	coordfile := filepath.Join(dir, "coords.xyz")
	xyz := "3\nfirst\nO 0 0 0\nH 1 0 0\nH 0 1 0\n3\nsecond\nO 0.1 0.2 0.3\nH 1.1 0 0\nH 0 1.2 0\n"
	require.NoError(Te, os.WriteFile(coordfile, []byte(xyz), 0644))

	mol := water(Te)
	o := DefaultOptions()
	o.Method = "User-Defined"
	o.VelFile = velfile
	o.Count = 3
	b, err := Generate(mol, o)
	require.NoError(Te, err)
	require.Equal(Te, 1, b.Len())
	assert.Equal(Te, UserDefined, b.Method)
	expected := []float64{1, 2, 3, -4, 5.5, 6, 7, 8, -9.25}
	v := b.Molecules[0].Velocities()
	for i, e := range expected {
		assert.Equal(Te, e, v.At(i/3, i%3))
	}
	assert.True(Te, b.Molecules[0].Coords.EqualApprox(mol.Coords, 0))

	o.CoordFile = coordfile
	b, err = Generate(mol, o)
	require.NoError(Te, err)
	assert.Equal(Te, 0.3, b.Molecules[0].Coords.At(0, 2))
	assert.Equal(Te, 1.2, b.Molecules[0].Coords.At(2, 1))
	assert.Equal(Te, -9.25, b.Molecules[0].Velocities().At(2, 2))

	//wrong atoms in the coordinate file
	require.NoError(Te, os.WriteFile(coordfile, []byte("3\n\nC 0 0 0\nH 1 0 0\nH 0 1 0\n"), 0644))
	_, err = Generate(mol, o)
	assert.True(Te, IsKind(err, InputError))
	assert.True(Te, errors.Is(err, ErrMismatch))

	//the first frame matches the template but the last one doesn't
	xyz = "3\nfirst\nO 0 0 0\nH 1 0 0\nH 0 1 0\n3\nsecond\nC 0.5 0 0\nH 1 0 0\nH 0 1 0\n"
	require.NoError(Te, os.WriteFile(coordfile, []byte(xyz), 0644))
	b, err = Generate(mol, o)
	assert.Nil(Te, b)
	assert.True(Te, IsKind(err, InputError))

	o.CoordFile = ""
	o.VelFile = filepath.Join(dir, "nothere")
	_, err = Generate(mol, o)
	assert.True(Te, IsKind(err, InputError))

	require.NoError(Te, os.WriteFile(velfile, []byte("2\n0 0 0\n1 1 1\n"), 0644))
	o.VelFile = velfile
	_, err = Generate(mol, o)
	assert.True(Te, errors.Is(err, ErrMismatch))
}

func TestBatchWrite(Te *testing.T) {
	o := DefaultOptions()
	o.Count = 2
	b, err := Generate(water(Te), o)
	require.NoError(Te, err)
	dir := Te.TempDir()
	vname := filepath.Join(dir, "vels.zst")
	out, err := chem.CreateFile(vname)
	require.NoError(Te, err)
	require.NoError(Te, b.WriteVelocities(out))
	require.NoError(Te, out.Close())
	last, err := chem.VelFileRead(vname)
	require.NoError(Te, err)
	assert.True(Te, last.EqualApprox(b.Molecules[1].Velocities(), 1e-14))

	xname := filepath.Join(dir, "coords.xyz.gz")
	out, err = chem.CreateFile(xname)
	require.NoError(Te, err)
	require.NoError(Te, b.WriteXYZ(out))
	require.NoError(Te, out.Close())
	mols, err := chem.XYZFileRead(xname)
	require.NoError(Te, err)
	require.Len(Te, mols, 2)
	assert.Equal(Te, "initial condition 2", mols[1].Comment)
	//writing doesn't relabel the batch
	assert.Equal(Te, "", b.Molecules[1].Comment)
	assert.True(Te, mols[0].Coords.EqualApprox(b.Molecules[0].Coords, 1e-7))
	assert.False(Te, math.IsNaN(mols[0].Coords.At(0, 0)))
}

func TestErrorDecoration(Te *testing.T) {
	err := errDecorate(newError(PhysicsError, ErrZeroKinetic, "", "rescale"), "Sample")
	cerr, ok := err.(chem.Error)
	require.True(Te, ok)
	assert.Equal(Te, []string{"rescale", "Sample"}, cerr.Decorate(""))
	assert.True(Te, errors.Is(err, ErrZeroKinetic))
	assert.True(Te, IsKind(err, PhysicsError))
}
