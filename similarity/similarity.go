/*
 * similarity.go, part of mdinit.
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

//Package similarity compares molecular structures with the Grigoryan-Springborg index, which depends
//only on the sorted interatomic distances, so it doesn't need the structures to be aligned nor
//the atoms to be in the same order. It is used to prune duplicate structures from sets of
//geometries, such as optimized initial conditions.
package similarity

import (
	"fmt"
	"math"
	"sort"
	"sync"

	v3 "github.com/rmera/mdinit/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

//sortedDistances returns the N(N-1)/2 interatomic distances of coords, sorted, and divided
//by their mean.
func sortedDistances(coords *v3.Matrix) []float64 {
	n := coords.NVecs()
	d := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d = append(d, r3.Norm(r3.Sub(coords.Vec(i), coords.Vec(j))))
		}
	}
	sort.Float64s(d)
	if mean := stat.Mean(d, nil); mean > 0 {
		floats.Scale(1/mean, d)
	}
	return d
}

//GrigoryanSpringborg returns the similarity index between the structures a and b,
//sqrt(2/(N(N-1)) sum_k (d^a_k/<d^a> - d^b_k/<d^b>)^2), where d_k are the sorted interatomic
//distances. It is zero for identical structures (up to a rigid motion and a uniform scaling).
//Both structures must have the same number of atoms, at least 2.
func GrigoryanSpringborg(a, b *v3.Matrix) (float64, error) {
	if a.NVecs() != b.NVecs() {
		return 0, fmt.Errorf("similarity: structures with %d and %d atoms", a.NVecs(), b.NVecs())
	}
	if a.NVecs() < 2 {
		return 0, fmt.Errorf("similarity: at least 2 atoms needed, got %d", a.NVecs())
	}
	return index(sortedDistances(a), sortedDistances(b)), nil
}

func index(da, db []float64) float64 {
	n := float64(len(da))
	//len(da) = N(N-1)/2
	return math.Sqrt(1/n) * floats.Distance(da, db, 2)
}

//Pair is a pair of structures, I<J, found to be similar, with their similarity index.
type Pair struct {
	I, J  int
	Value float64
}

//Result is the outcome of Prune.
type Result struct {
	Unique     []int  //indexes of the structures kept
	Duplicates []int  //indexes of the structures similar to some structure before them
	Pairs      []Pair //all the similar pairs found, sorted by I and J
}

//Prune compares every pair of structures in coords, using cpus goroutines. A structure J is a
//duplicate if its similarity index with some structure I<J is smaller than threshold.
//All structures must have the same number of atoms.
func Prune(coords []*v3.Matrix, threshold float64, cpus int) (*Result, error) {
	if len(coords) == 0 {
		return &Result{}, nil
	}
	n := coords[0].NVecs()
	if n < 2 {
		return nil, fmt.Errorf("similarity: at least 2 atoms needed, got %d", n)
	}
	dists := make([][]float64, len(coords))
	for i, c := range coords {
		if c.NVecs() != n {
			return nil, fmt.Errorf("similarity: structure %d has %d atoms, expected %d", i, c.NVecs(), n)
		}
		dists[i] = sortedDistances(c)
	}
	if cpus < 1 {
		cpus = 1
	}
	var mu sync.Mutex
	var wg sync.WaitGroup
	pairs := make([]Pair, 0)
	rows := make(chan int)
	for w := 0; w < cpus; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				var found []Pair
				for j := i + 1; j < len(dists); j++ {
					if v := index(dists[i], dists[j]); v < threshold {
						found = append(found, Pair{I: i, J: j, Value: v})
					}
				}
				if len(found) > 0 {
					mu.Lock()
					pairs = append(pairs, found...)
					mu.Unlock()
				}
			}
		}()
	}
	for i := range dists {
		rows <- i
	}
	close(rows)
	wg.Wait()
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].I != pairs[b].I {
			return pairs[a].I < pairs[b].I
		}
		return pairs[a].J < pairs[b].J
	})
	dup := make([]bool, len(coords))
	for _, p := range pairs {
		dup[p.J] = true
	}
	r := &Result{Pairs: pairs}
	for i, d := range dup {
		if d {
			r.Duplicates = append(r.Duplicates, i)
		} else {
			r.Unique = append(r.Unique, i)
		}
	}
	return r, nil
}
