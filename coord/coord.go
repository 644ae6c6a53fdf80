/*
 * coord.go, part of gorst
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

//Package coord computes internal coordinates (bond distances, angles and
//dihedrals) and their analytic gradients from a flat 3N slice of Cartesian
//coordinates. Atom indices are 0-based. Angles and dihedrals are in
//radians; dihedrals follow the IUPAC sign convention, in (-pi, pi].
//
//At geometric singularities (coincident atoms, collinear angle or dihedral
//frames) the coordinate value is still returned but the gradients, which
//are undefined there, are zero.
package coord

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

//used to correct floating point errors. Everything equal or less than this
//is considered zero.
const appzero float64 = 0.0000001

// vec returns the 3 Cartesian components of atom i as a subslice of crds.
func vec(crds []float64, i int) ([]float64, error) {
	if crds == nil {
		return nil, Error{"nil coordinates", []string{"vec"}}
	}
	if i < 0 || 3*i+3 > len(crds) {
		return nil, Error{fmt.Sprintf("atom index %d out of range for %d coordinates", i, len(crds)), []string{"vec"}}
	}
	return crds[3*i : 3*i+3], nil
}

func sub(a, b []float64) []float64 {
	ret := make([]float64, 3)
	floats.SubTo(ret, a, b)
	return ret
}

func cross(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func scaled(alpha float64, a []float64) []float64 {
	ret := append([]float64{}, a...)
	floats.Scale(alpha, ret)
	return ret
}

func norm(a []float64) float64 { return floats.Norm(a, 2) }

// Bond returns the distance between atoms i and j, in the units of crds.
func Bond(crds []float64, i, j int) (float64, error) {
	vi, err := vec(crds, i)
	if err != nil {
		return 0, errDecorate(err, "Bond")
	}
	vj, err := vec(crds, j)
	if err != nil {
		return 0, errDecorate(err, "Bond")
	}
	return norm(sub(vi, vj)), nil
}

// BondAndGradients returns the distance between atoms i and j plus the
// gradient of the distance with respect to the Cartesian coordinates of
// each of the two atoms.
func BondAndGradients(crds []float64, i, j int) (float64, []float64, []float64, error) {
	vi, err := vec(crds, i)
	if err != nil {
		return 0, nil, nil, errDecorate(err, "BondAndGradients")
	}
	vj, err := vec(crds, j)
	if err != nil {
		return 0, nil, nil, errDecorate(err, "BondAndGradients")
	}
	d := sub(vi, vj)
	r := norm(d)
	if r <= appzero {
		//coincident atoms, the direction (and thus the gradient) is undefined
		return r, make([]float64, 3), make([]float64, 3), nil
	}
	gi := scaled(1/r, d)
	gj := scaled(-1/r, d)
	return r, gi, gj, nil
}

// Angle returns the angle at atom j formed by atoms i, j and k, in radians,
// in [0, pi].
func Angle(crds []float64, i, j, k int) (float64, error) {
	v, _, _, _, err := angle(crds, i, j, k)
	if err != nil {
		return 0, errDecorate(err, "Angle")
	}
	return v, nil
}

// AngleAndGradients returns the angle at atom j plus the gradients of the
// angle with respect to the Cartesian coordinates of each of the three
// atoms.
func AngleAndGradients(crds []float64, i, j, k int) (float64, []float64, []float64, []float64, error) {
	v, gi, gj, gk, err := angle(crds, i, j, k)
	if err != nil {
		return 0, nil, nil, nil, errDecorate(err, "AngleAndGradients")
	}
	return v, gi, gj, gk, nil
}

func angle(crds []float64, i, j, k int) (float64, []float64, []float64, []float64, error) {
	vi, err := vec(crds, i)
	if err != nil {
		return 0, nil, nil, nil, err
	}
	vj, err := vec(crds, j)
	if err != nil {
		return 0, nil, nil, nil, err
	}
	vk, err := vec(crds, k)
	if err != nil {
		return 0, nil, nil, nil, err
	}
	u := sub(vi, vj)
	v := sub(vk, vj)
	nu, nv := norm(u), norm(v)
	if nu <= appzero || nv <= appzero {
		return 0, make([]float64, 3), make([]float64, 3), make([]float64, 3), nil
	}
	argument := floats.Dot(u, v) / (nu * nv)
	//Take care of floating point math errors
	if math.Abs(argument-1) <= appzero {
		argument = 1
	} else if math.Abs(argument+1) <= appzero {
		argument = -1
	}
	theta := math.Acos(argument)
	sin := math.Sin(theta)
	if sin <= appzero {
		//collinear frame, gradients undefined
		return theta, make([]float64, 3), make([]float64, 3), make([]float64, 3), nil
	}
	uhat := scaled(1/nu, u)
	vhat := scaled(1/nv, v)
	cos := argument
	//d(theta)/d(i) = (cos*uhat - vhat) / (|u| sin), and symmetrically for k;
	//j takes the remainder so the gradients sum to zero.
	gi := make([]float64, 3)
	gk := make([]float64, 3)
	gj := make([]float64, 3)
	for m := 0; m < 3; m++ {
		gi[m] = (cos*uhat[m] - vhat[m]) / (nu * sin)
		gk[m] = (cos*vhat[m] - uhat[m]) / (nv * sin)
		gj[m] = -gi[m] - gk[m]
	}
	return theta, gi, gj, gk, nil
}

// Dihedral returns the dihedral defined by atoms i, j, k and l, where the
// first plane contains i,j,k and the second j,k,l. Radians, in (-pi, pi].
func Dihedral(crds []float64, i, j, k, l int) (float64, error) {
	v, _, _, _, _, err := dihedral(crds, i, j, k, l)
	if err != nil {
		return 0, errDecorate(err, "Dihedral")
	}
	return v, nil
}

// DihedralAndGradients returns the dihedral defined by atoms i, j, k and l
// plus the gradients of the dihedral with respect to the Cartesian
// coordinates of each of the four atoms.
func DihedralAndGradients(crds []float64, i, j, k, l int) (float64, []float64, []float64, []float64, []float64, error) {
	v, gi, gj, gk, gl, err := dihedral(crds, i, j, k, l)
	if err != nil {
		return 0, nil, nil, nil, nil, errDecorate(err, "DihedralAndGradients")
	}
	return v, gi, gj, gk, gl, nil
}

func dihedral(crds []float64, i, j, k, l int) (float64, []float64, []float64, []float64, []float64, error) {
	vi, err := vec(crds, i)
	if err != nil {
		return 0, nil, nil, nil, nil, err
	}
	vj, err := vec(crds, j)
	if err != nil {
		return 0, nil, nil, nil, nil, err
	}
	vk, err := vec(crds, k)
	if err != nil {
		return 0, nil, nil, nil, nil, err
	}
	vl, err := vec(crds, l)
	if err != nil {
		return 0, nil, nil, nil, nil, err
	}
	b1 := sub(vj, vi)
	b2 := sub(vk, vj)
	b3 := sub(vl, vk)
	n1 := cross(b1, b2)
	n2 := cross(b2, b3)
	nb2 := norm(b2)
	first := nb2 * floats.Dot(b1, n2)
	second := floats.Dot(n1, n2)
	phi := math.Atan2(first, second)
	nn1sq := floats.Dot(n1, n1)
	nn2sq := floats.Dot(n2, n2)
	if nn1sq <= appzero || nn2sq <= appzero || nb2 <= appzero {
		//a collinear frame, the dihedral gradients are undefined
		z := func() []float64 { return make([]float64, 3) }
		return phi, z(), z(), z(), z(), nil
	}
	//End-atom gradients; the middle ones follow from translation invariance.
	gi := scaled(-nb2/nn1sq, n1)
	gl := scaled(nb2/nn2sq, n2)
	p := floats.Dot(b1, b2) / (nb2 * nb2)
	q := floats.Dot(b3, b2) / (nb2 * nb2)
	gj := make([]float64, 3)
	gk := make([]float64, 3)
	for m := 0; m < 3; m++ {
		gj[m] = (p-1)*gi[m] - q*gl[m]
		gk[m] = (q-1)*gl[m] - p*gi[m]
	}
	return phi, gi, gj, gk, gl, nil
}

// Error is the error type for ill-formed geometry queries.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return "coord: " + err.message }

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
