/*
 * similarity_test.go, part of mdinit.
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

package similarity

import (
	"math"
	"testing"

	v3 "github.com/rmera/mdinit/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mat(Te *testing.T, data ...float64) *v3.Matrix {
	Te.Helper()
	m, err := v3.NewMatrix(data)
	require.NoError(Te, err)
	return m
}

func TestGrigoryanSpringborg(Te *testing.T) {
	water := mat(Te, 0, 0, 0, 0.757, 0.586, 0, -0.757, 0.586, 0)
	//rotated 90 degrees around z, translated and with the atoms permuted
	moved := mat(Te, -0.586+1, -0.757, 2, 1, 0, 2, -0.586+1, 0.757, 2)
	v, err := GrigoryanSpringborg(water, moved)
	require.NoError(Te, err)
	assert.InDelta(Te, 0, v, 1e-12)
	//uniform scaling doesn't change the index
	scaled := water.Clone()
	scaled.Scale(2, water.Dense)
	v, err = GrigoryanSpringborg(water, scaled)
	require.NoError(Te, err)
	assert.InDelta(Te, 0, v, 1e-12)

	linear := mat(Te, 0, 0, 0, 1, 0, 0, -1, 0, 0)
	v, err = GrigoryanSpringborg(water, linear)
	require.NoError(Te, err)
	assert.True(Te, v > 0.1)
	v2, _ := GrigoryanSpringborg(linear, water)
	assert.InDelta(Te, v, v2, 1e-14)

	//two atoms, distances normalized to 1: always similar
	v, err = GrigoryanSpringborg(mat(Te, 0, 0, 0, 1, 0, 0), mat(Te, 0, 0, 0, 0, 3, 0))
	require.NoError(Te, err)
	assert.InDelta(Te, 0, v, 1e-12)

	_, err = GrigoryanSpringborg(water, mat(Te, 0, 0, 0, 1, 0, 0))
	assert.Error(Te, err)
	_, err = GrigoryanSpringborg(mat(Te, 0, 0, 0), mat(Te, 1, 1, 1))
	assert.Error(Te, err)
}

func TestIndexValue(Te *testing.T) {
	//equilateral triangle vs. a 1,1,2 "triangle": mean distances 1 and 4/3
	tri := mat(Te, 0, 0, 0, 1, 0, 0, 0.5, math.Sqrt(3)/2, 0)
	lin := mat(Te, 0, 0, 0, 1, 0, 0, 2, 0, 0)
	v, err := GrigoryanSpringborg(tri, lin)
	require.NoError(Te, err)
	//sorted normalized: {1,1,1} and {0.75,0.75,1.5}
	expected := math.Sqrt((0.25*0.25 + 0.25*0.25 + 0.5*0.5) / 3)
	assert.InDelta(Te, expected, v, 1e-12)
}

func TestPrune(Te *testing.T) {
	water := mat(Te, 0, 0, 0, 0.757, 0.586, 0, -0.757, 0.586, 0)
	moved := mat(Te, 1, 1, 1, 1.757, 1.586, 1, 0.243, 1.586, 1)
	linear := mat(Te, 0, 0, 0, 1, 0, 0, -1, 0, 0)
	almost := mat(Te, 0, 0, 0, 1.0001, 0, 0, -1, 0, 0)
	structs := []*v3.Matrix{water, linear, moved, almost, water.Clone()}
	for _, cpus := range []int{1, 2, 8} {
		r, err := Prune(structs, 0.01, cpus)
		require.NoError(Te, err)
		assert.Equal(Te, []int{0, 1}, r.Unique)
		assert.Equal(Te, []int{2, 3, 4}, r.Duplicates)
		require.Len(Te, r.Pairs, 4) //0-2 0-4 1-3 2-4
		assert.Equal(Te, Pair{I: 0, J: 2, Value: r.Pairs[0].Value}, r.Pairs[0])
		assert.Equal(Te, 4, r.Pairs[3].J)
	}
	r, err := Prune(nil, 0.01, 2)
	require.NoError(Te, err)
	assert.Empty(Te, r.Unique)
	_, err = Prune([]*v3.Matrix{water, mat(Te, 0, 0, 0, 1, 0, 0)}, 0.1, 1)
	assert.Error(Te, err)
}
