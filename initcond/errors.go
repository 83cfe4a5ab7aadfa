/*
 * errors.go, part of mdinit.
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
)

//Kind classifies the errors of this package.
type Kind int

const (
	ConfigError  Kind = iota //Invalid or contradictory options, detected before any work.
	InputError               //Missing or malformed input files or molecules.
	PhysicsError             //Physically meaningless requests, such as no degrees of freedom.
)

func (k Kind) String() string {
	switch k {
	case ConfigError:
		return "configuration error"
	case InputError:
		return "input error"
	case PhysicsError:
		return "physics error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

//Sentinel errors. They are returned wrapped in an Error, use errors.Is to check for them.
var (
	ErrTempAndEnergy  = errors.New("initial temperature and initial kinetic energy are mutually exclusive")
	ErrUnknownMethod  = errors.New("unknown initial condition generation method")
	ErrNoVelFile      = errors.New("user-defined initial conditions need a velocity file")
	ErrBadCount       = errors.New("the number of initial conditions must be positive")
	ErrNegativeTarget = errors.New("temperature and kinetic energy can't be negative")
	ErrNoDOF          = errors.New("no degrees of freedom left")
	ErrZeroKinetic    = errors.New("the sampled velocities have no kinetic energy to rescale")
	ErrMismatch       = errors.New("input doesn't match the template molecule")
)

//Error is the error type for the initcond package. It carries the kind of error,
//the functions it went through, and the underlying error.
type Error struct {
	message string
	kind    Kind
	deco    []string
	err     error
}

func newError(kind Kind, err error, message string, deco ...string) Error {
	return Error{message: message, kind: kind, deco: deco, err: err}
}

//Error returns a string with an error message.
func (err Error) Error() string {
	msg := err.kind.String()
	if err.err != nil {
		msg += ": " + err.err.Error()
	}
	if err.message != "" {
		msg += ": " + err.message
	}
	return msg
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Decorated returns a copy of the error with dec appended to its decorations.
func (err Error) Decorated(dec string) error {
	if dec == "" {
		return err
	}
	err.deco = append(append([]string(nil), err.deco...), dec)
	return err
}

//Kind returns the kind of the error.
func (err Error) Kind() Kind { return err.kind }

//Unwrap returns the underlying error.
func (err Error) Unwrap() error { return err.err }

//IsKind returns true if err is, or wraps, an Error of kind k.
func IsKind(err error, k Kind) bool {
	var e Error
	if errors.As(err, &e) {
		return e.kind == k
	}
	return false
}
