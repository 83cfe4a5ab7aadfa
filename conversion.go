/*
 * conversion.go, part of mdinit.
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

//This provides useful conversion factors and other constants

//Conversions
const (
	Deg2Rad = 0.0174533
	Rad2Deg = 1 / 0.0174533
	H2Kcal  = 627.509 //Hartree 2 Kcal/mol
	Kcal2H  = 1 / 627.509
	KJ2Kcal = 1 / 4.184
	Kcal2KJ = 4.184
	A2Bohr  = 1.889725989
	Bohr2A  = 1 / 1.889725989
	Amu2Au  = 1822.888486209    //atomic mass units to electron masses
	Au2Fs   = 0.024188843265857 //atomic unit of time in fs
	Fs2Au   = 1 / Au2Fs
	//velocities
	AuVel2AFs = Bohr2A / Au2Fs //bohr/(a.u. of time) to A/fs
	AFs2AuVel = 1 / AuVel2AFs
)

//Others
const (
	KB          = 3.166811563e-6 //Boltzmann constant in Hartree/K
	RefTemp     = 300.0          //K
	LinearTol   = 1e-5           //relative principal moment under which a molecule is taken as linear
	singularTol = 1e12           //condition number over which an inertia tensor is taken as singular
)
