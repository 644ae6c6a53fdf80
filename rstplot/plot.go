/*
 * plot.go, part of gorst
 *
 * Copyright 2021 Raul Mera <rmeraa{at}academicosDOTutaDOTcl>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

//Package rstplot renders the energy profile of a restraint (energy against
//the restrained coordinate) to an image file.
package rstplot

import (
	"fmt"

	rst "github.com/rmera/gorst"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Profile samples the flat-bottom energy of R at n evenly spaced points of
// the coordinate interval [from, to], given in reporting units (Angstroms
// or degrees). The returned points have X in reporting units and Y in
// kcal/mol.
func Profile(R *rst.Restraint, from, to float64, n int) (plotter.XYs, error) {
	if R == nil {
		return nil, Error{"nil restraint", []string{"Profile"}}
	}
	if n < 2 || to <= from {
		return nil, Error{fmt.Sprintf("bad sampling range [%4.2f,%4.2f] with %d points", from, to, n), []string{"Profile"}}
	}
	conv := R.UnitConversion()
	pts := make(plotter.XYs, n)
	for i := range pts {
		x := from + (to-from)*float64(i)/float64(n-1)
		pts[i].X = x
		pts[i].Y = R.EnergyAt(x / conv)
	}
	return pts, nil
}

// SaveProfile plots the energy profile of R over [from, to] (reporting
// units) and saves it as plotname.png.
func SaveProfile(R *rst.Restraint, from, to float64, n int, title, plotname string) error {
	pts, err := Profile(R, from, to, n)
	if err != nil {
		return errDecorate(err, "SaveProfile")
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xLabel(R.Kind())
	p.Y.Label.Text = "E (kcal/mol)"
	p.Add(plotter.NewGrid())
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)
	filename := fmt.Sprintf("%s.png", plotname)
	return p.Save(5*vg.Inch, 5*vg.Inch, filename)
}

func xLabel(k rst.Kind) string {
	switch k {
	case rst.Angle, rst.Torsion:
		return "r (degrees)"
	default:
		return "r (Angstroms)"
	}
}

// Error is the error type for plotting problems.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return "rstplot: " + err.message }

// Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}
