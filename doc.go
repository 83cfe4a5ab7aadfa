/*
 * doc.go, part of mdinit.
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

/*Package chem is the main package of mdinit. It provides atom and molecule structures, facilities
for reading and writing the files used to set up molecular dynamics runs, and the geometric
functions needed to handle the rigid-body motion of molecules.



	**Capabilities**


    Reads/writes multi-frame XYZ files and velocity files, transparently
	compressed with gzip or zstd if their names end in .gz or .zst.

    Calculates centers of mass, moment of inertia tensors and principal moments,
	and detects linear molecules.

    Calculates linear and angular momenta, angular velocities and kinetic energies.

    Superimposes sets of coordinates and calculates RMSDs.

    Molecules carry any number of named vectorial properties, one 3D vector per
	atom, such as velocities.

Initial conditions for molecular dynamics are generated by the initcond subpackage, and
compared and pruned by the similarity subpackage.

Coordinates are kept in v3.Matrix, an N x 3 matrix based in gonum.org/v1/gonum/mat, where
each row represents one point in space. Prefer the Vec* methods over the Row* methods
when manipulating a v3.Matrix.*/
package chem
