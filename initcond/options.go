/*
 * options.go, part of mdinit.
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
	"runtime"
	"strings"

	chem "github.com/rmera/mdinit"
)

//Recognized generation methods.
const (
	UserDefined = "user-defined" //read velocities (and optionally coordinates) from files
	Random      = "random"       //sample random velocities
)

//Options contains every option for Generate. Use DefaultOptions to obtain
//an Options with all the defaults set.
type Options struct {
	//Method is either UserDefined or Random.
	Method string

	//Count is the number of initial conditions to sample. User-defined
	//initial conditions always produce exactly one.
	Count int

	//CoordFile is an XYZ file from which the coordinates for user-defined
	//initial conditions are taken (last frame). If empty, the template's are used.
	CoordFile string

	//VelFile is the velocity file for user-defined initial conditions (last block, in A/fs).
	VelFile string

	//EliminateAngularMomentum removes the rotation of the molecule around its center of mass.
	EliminateAngularMomentum bool

	//RemoveTranslation removes the motion of the center of mass.
	RemoveTranslation bool

	//DOF overrides the number of degrees of freedom. nil means 3N-6 (3N-5 for linear molecules).
	//A positive value is taken as the number of degrees of freedom, zero or a negative
	//value as an offset from 3N (i.e. -6 is the same as nil for a non-linear molecule).
	DOF *int

	//Temperature (K) and KineticEnergy (Hartree) are mutually exclusive. If both
	//are nil, chem.RefTemp is used as temperature.
	Temperature   *float64
	KineticEnergy *float64

	//Linear forces the molecule to be considered linear or not. If nil, it is detected from
	//the geometry.
	Linear *bool

	//Seed for the random number generator. Each sample gets its own stream derived from it,
	//so the results don't depend on Cpus.
	Seed uint64

	//Cpus is the number of goroutines used for sampling.
	Cpus int
}

//DefaultOptions returns options to sample one random initial condition at 300 K,
//removing translation and rotation, with all logical CPUs.
func DefaultOptions() *Options {
	r := new(Options)
	r.Method = Random
	r.Count = 1
	r.EliminateAngularMomentum = true
	r.RemoveTranslation = true
	r.Cpus = runtime.NumCPU()
	return r
}

//Validate checks the options for consistency. It is called by Generate before any work is done.
//All the errors returned are of the ConfigError kind.
func (O *Options) Validate() error {
	if O.Temperature != nil && O.KineticEnergy != nil {
		return newError(ConfigError, ErrTempAndEnergy, "", "Validate")
	}
	if (O.Temperature != nil && *O.Temperature < 0) || (O.KineticEnergy != nil && *O.KineticEnergy < 0) {
		return newError(ConfigError, ErrNegativeTarget, "", "Validate")
	}
	switch strings.ToLower(O.Method) {
	case Random:
		if O.Count < 1 {
			return newError(ConfigError, ErrBadCount, fmt.Sprintf("got %d", O.Count), "Validate")
		}
	case UserDefined:
		if O.VelFile == "" {
			return newError(ConfigError, ErrNoVelFile, "", "Validate")
		}
	default:
		return newError(ConfigError, ErrUnknownMethod, fmt.Sprintf("%q (use %q or %q)", O.Method, UserDefined, Random), "Validate")
	}
	return nil
}

//String returns a human-readable summary of the options.
func (O *Options) String() string {
	target := fmt.Sprintf("T=%g K (default)", chem.RefTemp)
	if O.Temperature != nil {
		target = fmt.Sprintf("T=%g K", *O.Temperature)
	} else if O.KineticEnergy != nil {
		target = fmt.Sprintf("Ekin=%g Hartree", *O.KineticEnergy)
	}
	dof := "auto"
	if O.DOF != nil {
		dof = fmt.Sprint(*O.DOF)
	}
	return fmt.Sprintf("method=%s count=%d %s dof=%s noang=%t notrans=%t seed=%d cpus=%d",
		O.Method, O.Count, target, dof, O.EliminateAngularMomentum, O.RemoveTranslation, O.Seed, O.Cpus)
}

//Float returns a pointer to f, for the optional fields of Options.
func Float(f float64) *float64 { return &f }

//Int returns a pointer to i, for the optional fields of Options.
func Int(i int) *int { return &i }

//Bool returns a pointer to b, for the optional fields of Options.
func Bool(b bool) *bool { return &b }
