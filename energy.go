/*
 * energy.go, part of gorst
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

package rst

import "gonum.org/v1/gonum/floats"

// EnergyAt returns the restraint energy, in kcal/mol, at the coordinate
// value r (in internal units, i.e. Angstroms or radians). It is the
// numeric shortcut for callers that already know the coordinate value and
// don't need the geometry evaluated.
func (R *Restraint) EnergyAt(r float64) float64 {
	e, _ := R.EnergyAndGradientAt(r)
	return e
}

// EnergyAndGradientAt returns the restraint energy and its derivative
// dE/dr at the coordinate value r (internal units). Both the energy and
// dE/dr are continuous at the four well boundaries by construction.
func (R *Restraint) EnergyAndGradientAt(r float64) (float64, float64) {
	var energy, dedr float64
	switch {
	case r < R.r[0]:
		//linear, with the slope of the left-hand parabola at r1
		dr := R.r[0] - R.r[1]
		dedr = 2 * R.rk[0] * dr
		energy = dedr*(r-R.r[0]) + R.rk[0]*dr*dr
	case r < R.r[1]:
		dr := r - R.r[1]
		dedr = 2 * R.rk[0] * dr
		energy = R.rk[0] * dr * dr
	case r < R.r[2]:
		//the flat bottom
	case r < R.r[3]:
		dr := r - R.r[2]
		dedr = 2 * R.rk[1] * dr
		energy = R.rk[1] * dr * dr
	default:
		//linear, with the slope of the right-hand parabola at r4
		dr := R.r[3] - R.r[2]
		dedr = 2 * R.rk[1] * dr
		energy = dedr*(r-R.r[3]) + R.rk[1]*dr*dr
	}
	return energy, dedr
}

// Energy returns the restraint energy, in kcal/mol, for the flat 3N slice
// of Cartesian coordinates crds (in Angstroms).
func (R *Restraint) Energy(crds []float64) (float64, error) {
	r, err := R.Coord(crds)
	if err != nil {
		return 0, errDecorate(err, "Restraint.Energy")
	}
	return R.EnergyAt(r), nil
}

// EnergyAndGradients returns the restraint energy and the gradient of the
// energy with respect to every Cartesian coordinate, as a 3N slice matching
// crds. The Cartesian gradient is assembled with the chain rule,
// dE/dx = (dE/dr)(dr/dx).
func (R *Restraint) EnergyAndGradients(crds []float64) (float64, []float64, error) {
	r, drdx, err := R.CoordAndGradients(crds)
	if err != nil {
		return 0, nil, errDecorate(err, "Restraint.EnergyAndGradients")
	}
	energy, dedr := R.EnergyAndGradientAt(r)
	floats.Scale(dedr, drdx)
	return energy, drdx, nil
}
