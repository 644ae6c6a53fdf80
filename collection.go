/*
 * collection.go, part of gorst
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
	"log"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Collection is an ordered set of Restraints defining a total restraint
// energy. The order is the one in which restraints were appended (or found
// in the restraint file) and is preserved when writing the collection back,
// but it does not affect equality between collections.
//
// All energy functions accept either a flat 3N slice of Cartesian
// coordinates or, when the slice has exactly one element per restraint, the
// pre-computed values of each restraint coordinate, in internal units
// (coordinate-space evaluation).
type Collection struct {
	rstrs []*Restraint
}

// NewCollection returns a Collection with the given restraints, in order.
func NewCollection(rstrs ...*Restraint) (*Collection, error) {
	ret := new(Collection)
	if err := ret.Extend(rstrs); err != nil {
		return nil, errDecorate(err, "NewCollection")
	}
	return ret, nil
}

// Append adds a restraint at the end of the collection. The candidate is
// validated first; a nil or invalid restraint is rejected and the
// collection is left unchanged.
func (C *Collection) Append(R *Restraint) error {
	if R == nil {
		return CError{ErrNilRestraint, []string{"Collection.Append"}}
	}
	if err := R.Validate(); err != nil {
		return errDecorate(err, "Collection.Append")
	}
	C.rstrs = append(C.rstrs, R)
	return nil
}

// Extend appends every restraint in rstrs, in order.
func (C *Collection) Extend(rstrs []*Restraint) error {
	for _, R := range rstrs {
		if err := C.Append(R); err != nil {
			return errDecorate(err, "Collection.Extend")
		}
	}
	return nil
}

// Len returns the number of restraints in the collection.
func (C *Collection) Len() int { return len(C.rstrs) }

// Get returns the i-th restraint. It panics if i is out of range.
func (C *Collection) Get(i int) *Restraint { return C.rstrs[i] }

// Slice returns a copy of the slice of restraints, in collection order.
// The restraints themselves are not copied.
func (C *Collection) Slice() []*Restraint {
	return append([]*Restraint{}, C.rstrs...)
}

// scalarMode is true when crds carries one coordinate value per restraint
// instead of Cartesian positions.
func (C *Collection) scalarMode(crds []float64) bool {
	return len(crds) == len(C.rstrs)
}

// Energy returns the total energy, in kcal/mol, from all restraints.
func (C *Collection) Energy(crds []float64) (float64, error) {
	var energy float64
	if C.scalarMode(crds) {
		for i, R := range C.rstrs {
			energy += R.EnergyAt(crds[i])
		}
		return energy, nil
	}
	for _, R := range C.rstrs {
		e, err := R.Energy(crds)
		if err != nil {
			return 0, errDecorate(err, "Collection.Energy")
		}
		energy += e
	}
	return energy, nil
}

// EnergyAndGradients returns the total energy and the sum of the gradients
// from all restraints. In Cartesian mode the gradient is a 3N slice
// matching crds. In coordinate-space mode (one value per restraint) the
// i-th element of the gradient is dE/dr for the i-th restraint, since no
// Cartesian information is available.
func (C *Collection) EnergyAndGradients(crds []float64) (float64, []float64, error) {
	var energy float64
	gradients := make([]float64, len(crds))
	if C.scalarMode(crds) {
		for i, R := range C.rstrs {
			e, dedr := R.EnergyAndGradientAt(crds[i])
			energy += e
			gradients[i] = dedr
		}
		return energy, gradients, nil
	}
	for _, R := range C.rstrs {
		e, g, err := R.EnergyAndGradients(crds)
		if err != nil {
			return 0, nil, errDecorate(err, "Collection.EnergyAndGradients")
		}
		energy += e
		floats.Add(gradients, g)
	}
	return energy, gradients, nil
}

// DecomposeEnergy buckets the total energy by restraint kind. The returned
// map has one entry per kind label plus a "Restraint" entry with the total.
func (C *Collection) DecomposeEnergy(crds []float64) (map[string]float64, error) {
	energy := map[string]float64{
		Bond.String():         0,
		Angle.String():        0,
		Torsion.String():      0,
		GenDistCoord.String(): 0,
	}
	if C.scalarMode(crds) {
		for i, R := range C.rstrs {
			energy[R.kind.String()] += R.EnergyAt(crds[i])
		}
	} else {
		for _, R := range C.rstrs {
			e, err := R.Energy(crds)
			if err != nil {
				return nil, errDecorate(err, "Collection.DecomposeEnergy")
			}
			energy[R.kind.String()] += e
		}
	}
	var total float64
	for _, v := range energy {
		total += v
	}
	energy["Restraint"] = total
	return energy, nil
}

// SetParams sets any of r0, r1, r2, r3, r4, k0, rk2 and rk3 by list
// assignment: the i-th value of each list goes to the i-th restraint.
// Parameters are assigned in order until either no values or no restraints
// are left, so parameters can be set for restraints 1 and 2 but not for 1
// and 3. If more values than restraints are given the excess is dropped
// with a warning; this is deliberately non-fatal.
func (C *Collection) SetParams(params map[string][]float64) error {
	n := len(C.rstrs)
	for name, values := range params {
		if len(values) > n {
			log.Printf("Warning: %d values for parameter %s were specified, but only %d restraints are defined", len(values), name, n)
			values = values[:n]
		}
		for i, v := range values {
			if err := C.rstrs[i].SetParams(map[string]float64{name: v}); err != nil {
				return errDecorate(err, "Collection.SetParams")
			}
		}
	}
	return nil
}

// canonicalKey returns a textual form of the restraint that is invariant
// under reversal of the atom tuple, used to compare collections without
// searching over permutations.
func (R *Restraint) canonicalKey() string {
	iat := append([]int{}, R.iat...)
	rev := make([]int, len(iat))
	for i, v := range iat {
		rev[len(iat)-1-i] = v
	}
	for i := range iat {
		if rev[i] != iat[i] {
			if rev[i] < iat[i] {
				iat = rev
			}
			break
		}
	}
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(R.kind)))
	for _, v := range iat {
		b.WriteString(" " + strconv.Itoa(v))
	}
	for _, v := range R.r {
		b.WriteString(" " + strconv.FormatFloat(v, 'g', -1, 64))
	}
	for _, v := range R.rk {
		b.WriteString(" " + strconv.FormatFloat(v, 'g', -1, 64))
	}
	for _, v := range R.rstwt {
		b.WriteString(" " + strconv.FormatFloat(v, 'g', -1, 64))
	}
	return b.String()
}

// Equal reports whether the two collections contain pairwise equal
// restraints, regardless of the order of the collections and of the
// direction of each atom tuple. Restraints are compared by canonical form
// rather than by searching over pairings, so collections of duplicated
// restraints that only match under a non-canonical pairing compare unequal.
func (C *Collection) Equal(other *Collection) bool {
	if other == nil || len(C.rstrs) != len(other.rstrs) {
		return false
	}
	a := make([]string, len(C.rstrs))
	b := make([]string, len(other.rstrs))
	for i := range C.rstrs {
		a[i] = C.rstrs[i].canonicalKey()
		b[i] = other.rstrs[i].canonicalKey()
	}
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
