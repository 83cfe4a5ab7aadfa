/*
 * config_test.go, part of mdinit.
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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/mdinit/initcond"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlcfg = `
[initcond]
method = "random"
count = 25
temperature = 250.0
eliminate_angular_momentum = false
dof = -5
seed = 42
linear = true
`

const inicfg = `
[initcond]
method = user-defined
vel-file = vels.txt
coord-file = geo.xyz
kinetic-energy = 0.01
remove-translation = false
cpus = 2
`

func TestLoadTOML(Te *testing.T) {
	o := initcond.DefaultOptions()
	require.NoError(Te, LoadTOML(strings.NewReader(tomlcfg), o))
	assert.Equal(Te, initcond.Random, o.Method)
	assert.Equal(Te, 25, o.Count)
	require.NotNil(Te, o.Temperature)
	assert.Equal(Te, 250.0, *o.Temperature)
	assert.Nil(Te, o.KineticEnergy)
	assert.False(Te, o.EliminateAngularMomentum)
	assert.True(Te, o.RemoveTranslation, "unset options must keep their value")
	require.NotNil(Te, o.DOF)
	assert.Equal(Te, -5, *o.DOF)
	assert.Equal(Te, uint64(42), o.Seed)
	require.NotNil(Te, o.Linear)
	assert.True(Te, *o.Linear)
	assert.NoError(Te, o.Validate())

	assert.Error(Te, LoadTOML(strings.NewReader("[initcond]\nnope = 1\n"), o))
	assert.Error(Te, LoadTOML(strings.NewReader("[other]\ncount = 1\n"), o))
	assert.Error(Te, LoadTOML(strings.NewReader("[initcond]\ncount = \"many\"\n"), o))
}

func TestLoadINI(Te *testing.T) {
	o := initcond.DefaultOptions()
	require.NoError(Te, LoadINI(strings.NewReader(inicfg), o))
	assert.Equal(Te, initcond.UserDefined, o.Method)
	assert.Equal(Te, "vels.txt", o.VelFile)
	assert.Equal(Te, "geo.xyz", o.CoordFile)
	require.NotNil(Te, o.KineticEnergy)
	assert.Equal(Te, 0.01, *o.KineticEnergy)
	assert.False(Te, o.RemoveTranslation)
	assert.True(Te, o.EliminateAngularMomentum)
	assert.Equal(Te, 2, o.Cpus)
	assert.NoError(Te, o.Validate())

	assert.Error(Te, LoadINI(strings.NewReader("[initcond]\ncount = many\n"), o))
}

func TestLoad(Te *testing.T) {
	dir := Te.TempDir()
	tname := filepath.Join(dir, "run.toml")
	require.NoError(Te, os.WriteFile(tname, []byte(tomlcfg), 0644))
	iname := filepath.Join(dir, "run.ini")
	require.NoError(Te, os.WriteFile(iname, []byte(inicfg), 0644))

	o := initcond.DefaultOptions()
	require.NoError(Te, Load(tname, o))
	assert.Equal(Te, 25, o.Count)
	//both files together are contradictory
	require.NoError(Te, Load(iname, o))
	assert.Error(Te, o.Validate())

	assert.Error(Te, Load(filepath.Join(dir, "run.yaml"), o))
	assert.Error(Te, Load(filepath.Join(dir, "nothere.toml"), o))
}

func TestSet(Te *testing.T) {
	o := initcond.DefaultOptions()
	require.NoError(Te, Set(o, "kinetic-energy", "0.02"))
	require.NotNil(Te, o.KineticEnergy)
	assert.Equal(Te, 0.02, *o.KineticEnergy)
	require.NoError(Te, Set(o, "Remove_Translation", " false "))
	assert.False(Te, o.RemoveTranslation)
	assert.Error(Te, Set(o, "seed", "-1"))
	assert.Error(Te, Set(o, "colour", "blue"))
}
