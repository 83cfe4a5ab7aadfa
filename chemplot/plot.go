/*
 * plot.go, part of mdinit.
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

//Package chemplot produces PNG plots of the kinetic energies and temperatures of
//batches of initial conditions, using gonum/plot.
package chemplot

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

//KineticHistogram saves to filename (with its extension, which sets the format) a histogram with bins bins
//of the kinetic energies ekin. If target>0 it is marked with a vertical line.
//If bins<1 the square root of the number of energies is used.
func KineticHistogram(ekin []float64, target float64, bins int, title, filename string) error {
	if len(ekin) == 0 {
		return fmt.Errorf("KineticHistogram: no data to plot")
	}
	if bins < 1 {
		bins = int(math.Ceil(math.Sqrt(float64(len(ekin)))))
	}
	p := basicPlot(title, "Kinetic energy (Hartree)", "Count")
	h, err := plotter.NewHist(plotter.Values(ekin), bins)
	if err != nil {
		return err
	}
	r, g, b := colors(0, 2)
	h.FillColor = color.RGBA{R: r, G: g, B: b, A: 128}
	p.Add(h)
	if target > 0 {
		var top float64
		for _, bin := range h.Bins {
			top = math.Max(top, bin.Weight)
		}
		l, err := plotter.NewLine(plotter.XYs{{X: target, Y: 0}, {X: target, Y: top}})
		if err != nil {
			return err
		}
		r, g, b = colors(1, 2)
		l.LineStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		l.LineStyle.Width = vg.Points(2)
		l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(l)
		p.Legend.Add("target", l)
	}
	return p.Save(5*vg.Inch, 4*vg.Inch, filename)
}

//AtomEnergyPlot saves to filename a scatter plot of the kinetic energy of each atom against
//the index of the initial condition. ekin holds natoms energies per initial condition, in the
//order given by initcond.Batch.AtomicKineticEnergies. The atoms in tag (0-based, at most 4)
//are drawn with their own glyphs and added to the legend.
func AtomEnergyPlot(ekin []float64, natoms int, tag []int, title, filename string) error {
	if len(ekin) == 0 || natoms < 1 || len(ekin)%natoms != 0 {
		return fmt.Errorf("AtomEnergyPlot: %d energies can't be split among %d atoms", len(ekin), natoms)
	}
	p := basicPlot(title, "Initial condition", "Kinetic energy (Hartree)")
	samples := len(ekin) / natoms
	var tagged int
	for j := 0; j < natoms; j++ {
		pts := make(plotter.XYs, samples)
		for i := range pts {
			pts[i].X = float64(i + 1)
			pts[i].Y = ekin[i*natoms+j]
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		r, g, b := colors(j, natoms)
		s.GlyphStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		if isInInt(tag, j) {
			if s.GlyphStyle.Shape, err = getShape(tagged); err != nil {
				return err
			}
			s.GlyphStyle.Radius = vg.Points(4)
			p.Legend.Add(fmt.Sprintf("atom %d", j+1), s)
			tagged++
		}
		p.Add(s)
	}
	return p.Save(5*vg.Inch, 4*vg.Inch, filename)
}

func getShape(tagged int) (draw.GlyphDrawer, error) {
	switch tagged {
	case 0:
		return draw.PyramidGlyph{}, nil
	case 1:
		return draw.CircleGlyph{}, nil
	case 2:
		return draw.SquareGlyph{}, nil
	case 3:
		return draw.CrossGlyph{}, nil
	default:
		return draw.RingGlyph{}, fmt.Errorf("Maximun number of taggable points is 4")
	}
}

func isInInt(container []int, test int) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

//colors returns a color for the key-th of steps elements, going from red to violet,
//skipping the hues around yellow.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	h := hp + 20.0
	if hp < 55 {
		h = hp - 20.0
	}
	return iHVS2RGB(h, 1.0, 1.0)
}
