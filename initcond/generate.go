/*
 * generate.go, part of mdinit.
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
	"strings"
	"sync"

	chem "github.com/rmera/mdinit"
	v3 "github.com/rmera/mdinit/v3"
	"golang.org/x/exp/rand"
)

//Generate produces a batch of initial conditions for the template molecule mol, according to o.
//A nil o means DefaultOptions(). The options are validated before anything else is done.
//With the UserDefined method, the velocities (and, if o.CoordFile is given, the coordinates) are
//read from files, and the batch contains exactly one molecule. With the Random method, o.Count
//copies of mol are made, and velocities are sampled for each. The velocities are stored in each
//molecule under chem.VelocityKey, in A/fs. mol is not modified.
//The first error found aborts the whole batch, and no partial batch is returned.
func Generate(mol *chem.Molecule, o *Options) (*Batch, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if err := o.Validate(); err != nil {
		return nil, errDecorate(err, "Generate")
	}
	if err := mol.Corrupted(); err != nil {
		return nil, newError(InputError, err, "template molecule", "Generate")
	}
	switch strings.ToLower(o.Method) {
	case UserDefined:
		return userDefined(mol, o)
	case Random:
		return random(mol, o)
	}
	//Validate should have caught this.
	return nil, newError(ConfigError, ErrUnknownMethod, o.Method, "Generate")
}

//userDefined builds the only initial condition from the files given in o.
func userDefined(mol *chem.Molecule, o *Options) (*Batch, error) {
	ret := mol.Copy()
	if o.Count > 1 {
		logger.Printf("%d initial conditions requested, but user-defined initial conditions give only one", o.Count)
	}
	if o.CoordFile != "" {
		frames, err := chem.XYZFileRead(o.CoordFile)
		if err != nil {
			return nil, newError(InputError, err, o.CoordFile, "userDefined")
		}
		last := frames[len(frames)-1]
		if err := sameAtoms(mol, last); err != nil {
			return nil, newError(InputError, ErrMismatch, fmt.Sprintf("%s: %s", o.CoordFile, err.Error()), "userDefined")
		}
		ret.Coords = last.Coords
		ret.Comment = last.Comment
	}
	vels, err := chem.VelFileRead(o.VelFile)
	if err != nil {
		return nil, newError(InputError, err, o.VelFile, "userDefined")
	}
	if vels.NVecs() != mol.Len() {
		return nil, newError(InputError, ErrMismatch, fmt.Sprintf("%s has %d velocities for %d atoms", o.VelFile, vels.NVecs(), mol.Len()), "userDefined")
	}
	if err := ret.SetVector(chem.VelocityKey, vels); err != nil {
		return nil, newError(InputError, err, "", "userDefined")
	}
	return &Batch{Molecules: []*chem.Molecule{ret}, Method: UserDefined}, nil
}

//sameAtoms returns an error if a and b don't have the same atoms, in the same order.
func sameAtoms(a, b chem.Atomer) error {
	if a.Len() != b.Len() {
		return fmt.Errorf("%d atoms, expected %d", b.Len(), a.Len())
	}
	for i := 0; i < a.Len(); i++ {
		if !strings.EqualFold(a.Atom(i).Symbol, b.Atom(i).Symbol) {
			return fmt.Errorf("atom %d is %s, expected %s", i+1, b.Atom(i).Symbol, a.Atom(i).Symbol)
		}
	}
	return nil
}

//random samples o.Count initial conditions, using o.Cpus goroutines.
func random(mol *chem.Molecule, o *Options) (*Batch, error) {
	S, err := NewSampler(mol, o)
	if err != nil {
		return nil, errDecorate(err, "random")
	}
	//Each sample gets its own seed, drawn in order from the master generator,
	//so the result is the same for any number of goroutines.
	master := rand.New(rand.NewSource(o.Seed))
	seeds := make([]uint64, o.Count)
	for i := range seeds {
		seeds[i] = master.Uint64()
	}
	vels, err := sampleAll(S, seeds, o.Cpus)
	if err != nil {
		return nil, errDecorate(err, "random")
	}
	mols := make([]*chem.Molecule, o.Count)
	for i, v := range vels {
		mols[i] = mol.Copy()
		if err := mols[i].SetVector(chem.VelocityKey, v); err != nil {
			return nil, newError(InputError, err, "", "random")
		}
	}
	b := &Batch{
		Molecules:    mols,
		Method:       Random,
		DOF:          S.DOF(),
		TargetEnergy: S.TargetEnergy(),
		Linear:       S.Linear(),
		Warnings:     S.Warnings(),
	}
	return b, nil
}

//sampleAll draws one velocity field per seed, distributing the work among cpus goroutines.
//Once a sample fails, no new ones are started, and the first error is returned.
func sampleAll(S *Sampler, seeds []uint64, cpus int) ([]*v3.Matrix, error) {
	if cpus < 1 {
		cpus = 1
	}
	if cpus > len(seeds) {
		cpus = len(seeds)
	}
	ret := make([]*v3.Matrix, len(seeds))
	jobs := make(chan int)
	done := make(chan struct{})
	var once sync.Once
	var firsterr error
	var wg sync.WaitGroup
	for w := 0; w < cpus; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				v, err := S.Sample(rand.NewSource(seeds[i]))
				if err != nil {
					once.Do(func() {
						firsterr = err
						close(done)
					})
					continue
				}
				ret[i] = v
			}
		}()
	}
feed:
	for i := range seeds {
		select {
		case jobs <- i:
		case <-done:
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	if firsterr != nil {
		return nil, firsterr
	}
	return ret, nil
}
