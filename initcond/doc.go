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

/*Package initcond generates initial conditions (coordinates and velocities) for molecular
dynamics trajectories.

Velocities are drawn from a Maxwell-Boltzmann consistent distribution for a given molecule,
the rigid-body motion (translation of the center of mass and rotation around it) can be
removed, and the result is rescaled to a target kinetic energy, either given directly or
obtained from a temperature and the number of degrees of freedom. Linear molecules, for which
the rotation around the molecular axis is not defined, are sampled separately.

Alternatively, user-defined initial conditions can be read from velocity and coordinate files.

Internally all physical quantities are in atomic units. Velocities are stored in the molecules
in A/fs, under the chem.VelocityKey vectorial property.

A typical use:

	o := initcond.DefaultOptions()
	o.Count = 50
	o.Temperature = initcond.Float(300)
	o.Seed = 42
	batch, err := initcond.Generate(mol, o)

*/
package initcond
