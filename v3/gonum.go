/*
 * gonum.go, part of mdinit.
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

//gonum.go holds the Matrix type and the thin layer over gonum/mat that goes with it.
//All the *Vec functions operate on row vectors, i.e. the cartesian coordinates of one point.

package v3

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//Matrix is a set of vectors in 3D space, one vector per row. Coordinates and
//velocities of a set of atoms are both stored as Matrix.
type Matrix struct {
	*mat.Dense
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
//The slice is not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 || l == 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//Clone returns an independent copy of F.
func (F *Matrix) Clone() *Matrix {
	return &Matrix{mat.DenseCopyOf(F.Dense)}
}

//NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//VecView returns a view of the ith vector of F. Changes in the view are
//reflected in F and vice versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//View returns a view of F starting from i,j and spanning r rows and
//c columns.
func (F *Matrix) View(i, j, r, c int) *Matrix {
	ret := F.Dense.Slice(i, i+r, j, j+c).(*mat.Dense)
	return &Matrix{ret}
}

//Vec returns a copy of the ith vector of F.
func (F *Matrix) Vec(i int) r3.Vec {
	row := F.RawRowView(i)
	return r3.Vec{X: row[0], Y: row[1], Z: row[2]}
}

//SetVec sets the ith vector of F to v.
func (F *Matrix) SetVec(i int, v r3.Vec) {
	row := F.RawRowView(i)
	row[0] = v.X
	row[1] = v.Y
	row[2] = v.Z
}

//Mul wraps mat.Dense.Mul to take care of the case when one of the
//arguments is also the receiver. gonum can only detect the aliasing if
//it gets the bare Dense.
func (F *Matrix) Mul(A, B mat.Matrix) {
	F.Dense.Mul(unwrap(A), unwrap(B))
}

//Copy copies the elements of A into F. See mat.Dense.Copy.
func (F *Matrix) Copy(A mat.Matrix) (int, int) {
	return F.Dense.Copy(unwrap(A))
}

func unwrap(A mat.Matrix) mat.Matrix {
	if M, ok := A.(*Matrix); ok {
		return M.Dense
	}
	return A
}

//det returns the determinant of a 3x3 matrix. Panics if the matrix is not 3x3.
func det(A mat.Matrix) float64 {
	r, c := A.Dims()
	if r != 3 || c != 3 {
		panic(ErrDeterminant)
	}
	return (A.At(0, 0)*(A.At(1, 1)*A.At(2, 2)-A.At(2, 1)*A.At(1, 2)) - A.At(1, 0)*(A.At(0, 1)*A.At(2, 2)-A.At(2, 1)*A.At(0, 2)) + A.At(2, 0)*(A.At(0, 1)*A.At(1, 2)-A.At(1, 1)*A.At(0, 2)))
}

//Det returns the determinant of the 3x3 matrix A.
func Det(A *Matrix) float64 {
	return det(A.Dense)
}

//This is a facility to sort Eigenvectors/Eigenvalues pairs
//It satisfies the sort.Interface interface.
type eigenpair struct {
	//evecs must have as many rows as evals has elements.
	evecs *Matrix
	evals sort.Float64Slice
}

func (E eigenpair) Less(i, j int) bool {
	return E.evals[i] < E.evals[j]
}
func (E eigenpair) Swap(i, j int) {
	E.evals.Swap(i, j)
	E.evecs.SwapVecs(i, j)
}
func (E eigenpair) Len() int {
	return len(E.evals)
}

//EigenWrap diagonalizes the symmetric 3x3 matrix in. It returns the eigenvectors
//as the rows of a Matrix and the eigenvalues, both sorted from the smallest to
//the largest eigenvalue. The eigenvector matrix is made right-handed.
//Only the symmetric part of in is used.
func EigenWrap(in *Matrix, epsilon float64) (*Matrix, []float64, error) {
	if epsilon < 0 {
		epsilon = appzero
	}
	r, c := in.Dims()
	if r != 3 || c != 3 {
		return nil, nil, Error{string(ErrShape), []string{"EigenWrap"}, true}
	}
	sym := mat.NewSymDense(3, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			sym.SetSym(i, j, 0.5*(in.At(i, j)+in.At(j, i)))
		}
	}
	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, nil, Error{string(ErrEigen), []string{"EigenWrap"}, true}
	}
	evals := es.Values(nil)
	var cols mat.Dense
	es.VectorsTo(&cols)
	evecs := Zeros(3)
	evecs.Copy(cols.T()) //we want the vectors as rows
	eig := eigenpair{evecs, evals}
	sort.Sort(eig)
	for i := 0; i < 3; i++ {
		vi := evecs.Vec(i)
		for j := i + 1; j < 3; j++ {
			if d := math.Abs(r3.Dot(vi, evecs.Vec(j))); d > epsilon {
				return evecs, evals, Error{fmt.Sprintf("Eigenvectors %d and %d not orthogonal. Dot: %g", i, j, d), []string{"EigenWrap"}, true}
			}
		}
	}
	if det(evecs.Dense) < 0 {
		evecs.Dense.Scale(-1, evecs.Dense)
	}
	return evecs, evals, nil
}

//Errors

//Error is the error type for the v3 package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
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

//Critical returns whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("mdinit/v3: A Matrix should have 3 columns")
	ErrNoCrossProduct  = PanicMsg("mdinit/v3: Invalid matrix for cross product")
	ErrEigen           = PanicMsg("mdinit/v3: Can't obtain eigenvectors/eigenvalues of given matrix")
	ErrDeterminant     = PanicMsg("mdinit/v3: Determinants are only available for 3x3 matrices")
	ErrShape           = PanicMsg("mdinit/v3: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("mdinit/v3: index out of range")
)
