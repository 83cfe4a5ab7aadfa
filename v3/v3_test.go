/*
 * v3_test.go, part of mdinit.
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

package v3

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewMatrix(Te *testing.T) {
	_, err := NewMatrix([]float64{1, 2, 3, 4})
	assert.Error(Te, err)
	A, err := NewMatrix([]float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(Te, err)
	assert.Equal(Te, 3, A.NVecs())
	View := A.VecView(1)
	View.Set(0, 0, 100)
	fmt.Println("View\n", A, "\n", View)
	assert.Equal(Te, 100.0, A.At(1, 0))
	C := A.Clone()
	C.Set(0, 0, -1)
	assert.Equal(Te, 1.0, A.At(0, 0))
}

func TestVecOps(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(Te, err)
	B := Zeros(2)
	B.AddVec(A, r3.Vec{X: 10, Y: 20, Z: 30})
	assert.Equal(Te, r3.Vec{X: 14, Y: 25, Z: 36}, B.Vec(1))
	B.SubVec(B, r3.Vec{X: 10, Y: 20, Z: 30})
	assert.True(Te, B.EqualApprox(A, 1e-12))
	B.ScaleByCol(A, mat.NewVecDense(2, []float64{2, -1}))
	assert.Equal(Te, r3.Vec{X: 2, Y: 4, Z: 6}, B.Vec(0))
	assert.Equal(Te, r3.Vec{X: -4, Y: -5, Z: -6}, B.Vec(1))
	assert.Equal(Te, r3.Vec{X: 5, Y: 7, Z: 9}, A.Sum())
	B.SwapVecs(0, 1)
	assert.Equal(Te, r3.Vec{X: 2, Y: 4, Z: 6}, B.Vec(1))
	C := Zeros(1)
	x, _ := NewMatrix([]float64{1, 0, 0})
	y, _ := NewMatrix([]float64{0, 1, 0})
	C.Cross(x, y)
	assert.Equal(Te, r3.Vec{Z: 1}, C.Vec(0))
}

func TestEigen(Te *testing.T) {
	a := []float64{1, 2, 0, 2, 1, 0, 0, 0, 1}
	A, err := NewMatrix(a)
	require.NoError(Te, err)
	evecs, evals, err := EigenWrap(A, -1)
	require.NoError(Te, err)
	fmt.Println(evecs, "\n", evals)
	assert.InDeltaSlice(Te, []float64{-1, 1, 3}, evals, 1e-10)
	assert.InDelta(Te, 1.0, Det(evecs), 1e-10)
	//the last eigenvector belongs to 3, along (1,1,0)/sqrt(2)
	v := evecs.Vec(2)
	assert.InDelta(Te, 1/math.Sqrt2, math.Abs(v.X), 1e-10)
	assert.InDelta(Te, 1/math.Sqrt2, math.Abs(v.Y), 1e-10)
	for i := 0; i < 3; i++ {
		Av := mat.NewVecDense(3, nil)
		vi := evecs.Vec(i)
		Av.MulVec(A.Dense, mat.NewVecDense(3, []float64{vi.X, vi.Y, vi.Z}))
		assert.InDelta(Te, evals[i]*vi.X, Av.AtVec(0), 1e-10)
		assert.InDelta(Te, evals[i]*vi.Y, Av.AtVec(1), 1e-10)
		assert.InDelta(Te, evals[i]*vi.Z, Av.AtVec(2), 1e-10)
	}
}
