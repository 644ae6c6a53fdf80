/*
 * rst.go, part of gorst
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

import (
	"fmt"
	"math"

	"github.com/rmera/gorst/coord"
	"gonum.org/v1/gonum/floats"
)

// Kind identifies the internal coordinate on which a restraint acts.
type Kind int

const (
	Bond Kind = iota
	Angle
	Torsion
	GenDistCoord
)

// String returns the label sander uses for the kind in energy decompositions.
func (k Kind) String() string {
	switch k {
	case Bond:
		return "Bond"
	case Angle:
		return "Angle"
	case Torsion:
		return "Torsion"
	case GenDistCoord:
		return "Gen. Dist. Coord."
	}
	return "Unknown"
}

// r1/r4 offset for purely harmonic distance restraints ("a really big
// number", 500 in sander).
const bigDistance = 500.0

const deg = 180 / math.Pi

// kindOps collects the functions that change with the restraint kind.
// Everything else about a restraint (the flat-bottom well, reporting,
// namelist I/O) is kind-independent.
type kindOps struct {
	okAtoms   func(n int) bool
	conv      float64                  //reporting units per internal unit (1 for distances, deg/rad for angles)
	r1        func(r0 float64) float64 //harmonic defaults, in reporting units
	r4        func(r0 float64) float64
	coord     func(R *Restraint, crds []float64) (float64, error)
	coordGrad func(R *Restraint, crds []float64) (float64, []float64, error)
}

var kindTable = map[Kind]*kindOps{
	Bond: {
		okAtoms:   func(n int) bool { return n == 2 },
		conv:      1,
		r1:        func(r0 float64) float64 { return r0 - bigDistance },
		r4:        func(r0 float64) float64 { return r0 + bigDistance },
		coord:     bondCoord,
		coordGrad: bondCoordAndGradients,
	},
	Angle: {
		okAtoms:   func(n int) bool { return n == 3 },
		conv:      deg,
		r1:        func(r0 float64) float64 { return 0 },
		r4:        func(r0 float64) float64 { return 180 },
		coord:     angleCoord,
		coordGrad: angleCoordAndGradients,
	},
	Torsion: {
		okAtoms:   func(n int) bool { return n == 4 },
		conv:      deg,
		r1:        func(r0 float64) float64 { return r0 - 180 },
		r4:        func(r0 float64) float64 { return r0 + 180 },
		coord:     torsionCoord,
		coordGrad: torsionCoordAndGradients,
	},
	GenDistCoord: {
		okAtoms:   func(n int) bool { return n >= 2 && n%2 == 0 },
		conv:      1,
		r1:        func(r0 float64) float64 { return r0 - bigDistance },
		r4:        func(r0 float64) float64 { return r0 + bigDistance },
		coord:     genDistCoord,
		coordGrad: genDistCoordAndGradients,
	},
}

// Restraint is one nmropt-style restraint: a flat-bottom well with four
// positions (r1-r4) and two force constants (rk2 and rk3) acting on one
// internal coordinate of the system.
//
// The restraint form, from the AMBER manual: the well has a square bottom
// with parabolic sides out to a defined distance, and then linear sides
// beyond that. If R is the value of the restrained coordinate:
//
//	R<r1       linear, with the slope of the "left-hand" parabola at R=r1
//	r1<=R<r2   parabolic, with energy rk2(R-r2)^2
//	r2<=R<r3   E = 0
//	r3<=R<r4   parabolic, with energy rk3(R-r3)^2
//	r4<=R      linear, with the slope of the "right-hand" parabola at R=r4
//
// Positions are kept internally in Angstroms for distance-like kinds and
// radians for angular kinds; they are read, written and reported in
// Angstroms and degrees. Force constants are in kcal/mol-A^2 or
// kcal/mol-rad^2 and are never converted.
type Restraint struct {
	kind  Kind
	iat   []int //1-based atom indices, as in the restraint file
	r     [4]float64
	rk    [2]float64
	rstwt []float64 //only for GenDistCoord, one weight per atom pair
}

func newRestraint(kind Kind, iat []int, params map[string]float64) (*Restraint, error) {
	ops := kindTable[kind]
	if !ops.okAtoms(len(iat)) {
		return nil, CError{fmt.Sprintf("%s: got %d atoms for a %s restraint", ErrAtomCount, len(iat), kind), []string{"newRestraint"}}
	}
	R := &Restraint{kind: kind, iat: append([]int{}, iat...)}
	if err := R.SetParams(params); err != nil {
		return nil, errDecorate(err, "newRestraint")
	}
	return R, nil
}

// NewBond returns a restraint on the distance between two atoms.
// iat contains the two 1-based atom indices, params any of r0, r1, r2, r3,
// r4, k0, rk2 and rk3 (r0/k0 expand to a purely harmonic well, see SetParams).
func NewBond(iat []int, params map[string]float64) (*Restraint, error) {
	R, err := newRestraint(Bond, iat, params)
	if err != nil {
		return nil, errDecorate(err, "NewBond")
	}
	return R, nil
}

// NewAngle returns a restraint on the angle defined by three atoms.
func NewAngle(iat []int, params map[string]float64) (*Restraint, error) {
	R, err := newRestraint(Angle, iat, params)
	if err != nil {
		return nil, errDecorate(err, "NewAngle")
	}
	return R, nil
}

// NewTorsion returns a restraint on the dihedral defined by four atoms.
// The restrained coordinate is always the periodic image of the dihedral
// closest to the center of the well, (r2+r3)/2.
func NewTorsion(iat []int, params map[string]float64) (*Restraint, error) {
	R, err := newRestraint(Torsion, iat, params)
	if err != nil {
		return nil, errDecorate(err, "NewTorsion")
	}
	return R, nil
}

// NewGenDistCoord returns a restraint on a generalized distance coordinate:
// the weighted sum of the distances between consecutive pairs of atoms in
// iat. One weight per pair must be given in rstwt.
func NewGenDistCoord(iat []int, rstwt []float64, params map[string]float64) (*Restraint, error) {
	if len(rstwt) != len(iat)/2 || len(iat)%2 != 0 {
		return nil, CError{fmt.Sprintf("%s: expected %d, but got %d", ErrWeightCount, len(iat)/2, len(rstwt)), []string{"NewGenDistCoord"}}
	}
	R, err := newRestraint(GenDistCoord, iat, params)
	if err != nil {
		return nil, errDecorate(err, "NewGenDistCoord")
	}
	R.rstwt = append([]float64{}, rstwt...)
	return R, nil
}

// SetParams assigns any of r0, r1, r2, r3, r4, k0, rk2 and rk3. Values are
// given in reporting units (Angstroms or degrees). If r0 is present it
// overrides the four positions with a purely harmonic well: r2=r3=r0 and
// r1, r4 at kind-specific offsets. k0 likewise sets both force constants.
// Parameters not named keep their previous values. The positions are
// re-validated on every call; on failure the restraint is left unchanged.
func (R *Restraint) SetParams(params map[string]float64) error {
	ops := kindTable[R.kind]
	r := R.r //work on a copy, so that a failed validation leaves R untouched
	if r0, ok := params["r0"]; ok {
		r[1], r[2] = r0, r0
		r[0] = ops.r1(r0)
		r[3] = ops.r4(r0)
		for i := range r {
			r[i] /= ops.conv
		}
	} else {
		for i, name := range [4]string{"r1", "r2", "r3", "r4"} {
			if v, ok := params[name]; ok {
				r[i] = v / ops.conv
			}
		}
	}
	if !(r[0] <= r[1] && r[1] <= r[2] && r[2] <= r[3]) {
		return CError{ErrNotMonotonic, []string{"Restraint.SetParams"}}
	}
	R.r = r
	if k0, ok := params["k0"]; ok {
		R.rk[0], R.rk[1] = k0, k0
	} else {
		if v, ok := params["rk2"]; ok {
			R.rk[0] = v
		}
		if v, ok := params["rk3"]; ok {
			R.rk[1] = v
		}
	}
	return nil
}

// Validate checks that the restraint satisfies the contract for its kind:
// atom count, weight count and monotonically increasing positions.
func (R *Restraint) Validate() error {
	ops, ok := kindTable[R.kind]
	if !ok {
		return CError{fmt.Sprintf("unknown restraint kind %d", R.kind), []string{"Restraint.Validate"}}
	}
	if !ops.okAtoms(len(R.iat)) {
		return CError{fmt.Sprintf("%s: got %d atoms for a %s restraint", ErrAtomCount, len(R.iat), R.kind), []string{"Restraint.Validate"}}
	}
	if R.kind == GenDistCoord && len(R.rstwt) != len(R.iat)/2 {
		return CError{fmt.Sprintf("%s: expected %d, but got %d", ErrWeightCount, len(R.iat)/2, len(R.rstwt)), []string{"Restraint.Validate"}}
	}
	if !(R.r[0] <= R.r[1] && R.r[1] <= R.r[2] && R.r[2] <= R.r[3]) {
		return CError{ErrNotMonotonic, []string{"Restraint.Validate"}}
	}
	return nil
}

// Kind returns the kind of internal coordinate the restraint acts on.
func (R *Restraint) Kind() Kind { return R.kind }

// Atoms returns a copy of the 1-based atom indices defining the restraint.
func (R *Restraint) Atoms() []int { return append([]int{}, R.iat...) }

// Positions returns r1-r4 in reporting units (Angstroms or degrees).
func (R *Restraint) Positions() [4]float64 {
	conv := kindTable[R.kind].conv
	var ret [4]float64
	for i, v := range R.r {
		ret[i] = v * conv
	}
	return ret
}

// ForceConstants returns rk2 and rk3.
func (R *Restraint) ForceConstants() [2]float64 { return R.rk }

// Weights returns a copy of the rstwt weights, or nil for restraints that
// are not generalized distance coordinates.
func (R *Restraint) Weights() []float64 {
	if R.rstwt == nil {
		return nil
	}
	return append([]float64{}, R.rstwt...)
}

// UnitConversion returns the factor that converts the restraint's internal
// units to its reporting units (1 for distances, 180/pi for angles).
func (R *Restraint) UnitConversion() float64 { return kindTable[R.kind].conv }

// Coord returns the current value of the restrained coordinate, in internal
// units, given a flat 3N slice of Cartesian coordinates in Angstroms.
func (R *Restraint) Coord(crds []float64) (float64, error) {
	if crds == nil {
		return 0, CError{ErrNilCoordinates, []string{"Restraint.Coord"}}
	}
	v, err := kindTable[R.kind].coord(R, crds)
	if err != nil {
		return 0, errDecorate(err, "Restraint.Coord")
	}
	return v, nil
}

// CoordAndGradients returns the value of the restrained coordinate and the
// gradient of that value with respect to every Cartesian coordinate, as a
// 3N slice matching crds. Atoms not involved in the restraint get zeros;
// atoms appearing more than once (possible in generalized distance
// coordinates) get their contributions accumulated.
func (R *Restraint) CoordAndGradients(crds []float64) (float64, []float64, error) {
	if crds == nil {
		return 0, nil, CError{ErrNilCoordinates, []string{"Restraint.CoordAndGradients"}}
	}
	v, drdx, err := kindTable[R.kind].coordGrad(R, crds)
	if err != nil {
		return 0, nil, errDecorate(err, "Restraint.CoordAndGradients")
	}
	return v, drdx, nil
}

// Equal reports whether the two restraints have the same kind, the same
// atoms (in the same or reversed order), and identical positions, force
// constants and weights.
func (R *Restraint) Equal(other *Restraint) bool {
	if other == nil || R.kind != other.kind || len(R.iat) != len(other.iat) {
		return false
	}
	same := true
	for i, v := range R.iat {
		if v != other.iat[i] {
			same = false
			break
		}
	}
	if !same {
		same = true
		n := len(R.iat)
		for i, v := range R.iat {
			if v != other.iat[n-1-i] {
				same = false
				break
			}
		}
	}
	if !same {
		return false
	}
	if R.r != other.r || R.rk != other.rk {
		return false
	}
	if len(R.rstwt) != len(other.rstwt) {
		return false
	}
	for i, w := range R.rstwt {
		if w != other.rstwt[i] {
			return false
		}
	}
	return true
}

//The per-kind coordinate functions. They all take 1-based atom indices from
//the restraint and hand 0-based ones to the coord package.

func bondCoord(R *Restraint, crds []float64) (float64, error) {
	return coord.Bond(crds, R.iat[0]-1, R.iat[1]-1)
}

func bondCoordAndGradients(R *Restraint, crds []float64) (float64, []float64, error) {
	i, j := R.iat[0]-1, R.iat[1]-1
	r, di, dj, err := coord.BondAndGradients(crds, i, j)
	if err != nil {
		return 0, nil, err
	}
	drdx := make([]float64, len(crds))
	copy(drdx[3*i:3*i+3], di)
	copy(drdx[3*j:3*j+3], dj)
	return r, drdx, nil
}

func angleCoord(R *Restraint, crds []float64) (float64, error) {
	return coord.Angle(crds, R.iat[0]-1, R.iat[1]-1, R.iat[2]-1)
}

func angleCoordAndGradients(R *Restraint, crds []float64) (float64, []float64, error) {
	i, j, k := R.iat[0]-1, R.iat[1]-1, R.iat[2]-1
	r, di, dj, dk, err := coord.AngleAndGradients(crds, i, j, k)
	if err != nil {
		return 0, nil, err
	}
	drdx := make([]float64, len(crds))
	copy(drdx[3*i:3*i+3], di)
	copy(drdx[3*j:3*j+3], dj)
	copy(drdx[3*k:3*k+3], dk)
	return r, drdx, nil
}

func torsionCoord(R *Restraint, crds []float64) (float64, error) {
	r, err := coord.Dihedral(crds, R.iat[0]-1, R.iat[1]-1, R.iat[2]-1, R.iat[3]-1)
	if err != nil {
		return 0, err
	}
	return nearestImage(r, (R.r[1]+R.r[2])/2), nil
}

func torsionCoordAndGradients(R *Restraint, crds []float64) (float64, []float64, error) {
	i, j, k, l := R.iat[0]-1, R.iat[1]-1, R.iat[2]-1, R.iat[3]-1
	r, di, dj, dk, dl, err := coord.DihedralAndGradients(crds, i, j, k, l)
	if err != nil {
		return 0, nil, err
	}
	drdx := make([]float64, len(crds))
	copy(drdx[3*i:3*i+3], di)
	copy(drdx[3*j:3*j+3], dj)
	copy(drdx[3*k:3*k+3], dk)
	copy(drdx[3*l:3*l+3], dl)
	//the periodic shift is a constant, so the gradients are unaffected.
	return nearestImage(r, (R.r[1]+R.r[2])/2), drdx, nil
}

func genDistCoord(R *Restraint, crds []float64) (float64, error) {
	var r float64
	for k, w := range R.rstwt {
		x, err := coord.Bond(crds, R.iat[2*k]-1, R.iat[2*k+1]-1)
		if err != nil {
			return 0, err
		}
		r += w * x
	}
	return r, nil
}

func genDistCoordAndGradients(R *Restraint, crds []float64) (float64, []float64, error) {
	var r float64
	drdx := make([]float64, len(crds))
	for k, w := range R.rstwt {
		i, j := R.iat[2*k]-1, R.iat[2*k+1]-1
		x, di, dj, err := coord.BondAndGradients(crds, i, j)
		if err != nil {
			return 0, nil, err
		}
		r += w * x
		//accumulate, an atom may appear in more than one pair
		floats.AddScaled(drdx[3*i:3*i+3], w, di)
		floats.AddScaled(drdx[3*j:3*j+3], w, dj)
	}
	return r, drdx, nil
}

// nearestImage shifts the 2pi-periodic value r by whole periods until it
// lies within pi of center.
func nearestImage(r, center float64) float64 {
	for {
		if r-center > math.Pi {
			r -= 2 * math.Pi
		} else if center-r > math.Pi {
			r += 2 * math.Pi
		} else {
			return r
		}
	}
}
