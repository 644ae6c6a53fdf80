/*
 * rst_test.go, part of gorst
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
	"strings"
	"testing"
)

//TestHarmonicDefaults checks the r0/k0 shortcut expansion for a bond:
//r2=r3=r0, r1 and r4 at 500 A on each side, both force constants k0,
//and the concrete energy value from the AMBER manual example.
func TestHarmonicDefaults(Te *testing.T) {
	R, err := NewBond([]int{1, 2}, map[string]float64{"r0": 1.0, "k0": 10})
	if err != nil {
		Te.Fatal(err)
	}
	p := R.Positions()
	want := [4]float64{-499, 1, 1, 501}
	for i := range p {
		if math.Abs(p[i]-want[i]) > 1e-12 {
			Te.Errorf("position r%d: got %v, want %v", i+1, p[i], want[i])
		}
	}
	k := R.ForceConstants()
	if k[0] != 10 || k[1] != 10 {
		Te.Errorf("force constants: got %v", k)
	}
	if e := R.EnergyAt(1.5); math.Abs(e-2.5) > 1e-12 {
		Te.Errorf("energy at 1.5 A: got %v, want 2.5", e)
	}
}

func TestAngleEnergy(Te *testing.T) {
	R, err := NewAngle([]int{1, 2, 3}, map[string]float64{
		"r1": 0, "r2": 90, "r3": 100, "r4": 180, "rk2": 5, "rk3": 5})
	if err != nil {
		Te.Fatal(err)
	}
	//5 kcal/mol/rad^2 at 10 degrees into the left parabola
	want := 5 * math.Pow(10*math.Pi/180, 2)
	if e := R.EnergyAt(80 * math.Pi / 180); math.Abs(e-want) > 1e-12 {
		Te.Errorf("energy at 80 deg: got %v, want %v", e, want)
	}
	if e := R.EnergyAt(95 * math.Pi / 180); e != 0 {
		Te.Errorf("energy inside the flat bottom: got %v, want 0", e)
	}
}

//TestContinuity checks that both the energy and dE/dr are continuous at
//the four well boundaries.
func TestContinuity(Te *testing.T) {
	R, err := NewBond([]int{1, 2}, map[string]float64{
		"r1": 0.8, "r2": 1.0, "r3": 2.0, "r4": 2.5, "rk2": 3, "rk3": 7})
	if err != nil {
		Te.Fatal(err)
	}
	const eps = 1e-7
	for _, b := range R.Positions() {
		el, dl := R.EnergyAndGradientAt(b - eps)
		er, dr := R.EnergyAndGradientAt(b + eps)
		if math.Abs(el-er) > 1e-5 {
			Te.Errorf("energy discontinuous at %v: %v vs %v", b, el, er)
		}
		if math.Abs(dl-dr) > 1e-5 {
			Te.Errorf("dE/dr discontinuous at %v: %v vs %v", b, dl, dr)
		}
	}
}

func TestMonotonicValidation(Te *testing.T) {
	_, err := NewBond([]int{1, 2}, map[string]float64{
		"r1": 2, "r2": 1, "r3": 3, "r4": 4, "k0": 1})
	if err == nil {
		Te.Error("expected an error for non-monotonic positions")
	}
	R, err := NewBond([]int{1, 2}, map[string]float64{"r0": 1, "k0": 1})
	if err != nil {
		Te.Fatal(err)
	}
	before := R.Positions()
	if err := R.SetParams(map[string]float64{"r2": 5}); err == nil { //r3 is still 1
		Te.Error("expected an error when r2 is moved past r3")
	}
	if R.Positions() != before {
		Te.Error("failed assignment altered the restraint")
	}
}

func TestNilCoordinates(Te *testing.T) {
	R, err := NewBond([]int{1, 2}, map[string]float64{"r0": 1, "k0": 10})
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := R.Coord(nil); err == nil {
		Te.Error("expected an error for nil coordinates")
	}
	if _, _, err := R.EnergyAndGradients(nil); err == nil {
		Te.Error("expected an error for nil coordinates")
	}
}

func TestAtomCountValidation(Te *testing.T) {
	if _, err := NewAngle([]int{1, 2}, map[string]float64{"r0": 90, "k0": 1}); err == nil {
		Te.Error("expected an error for a 2-atom angle")
	}
	if _, err := NewGenDistCoord([]int{1, 2, 3, 4}, []float64{1}, map[string]float64{"r0": 1, "k0": 1}); err == nil {
		Te.Error("expected an error for a 4-atom Gen. Dist. Coord. with 1 weight")
	}
}

//TestTorsionWrap places four atoms at a dihedral of -170 degrees and
//restrains the torsion with a well centered at 170 degrees. The restrained
//coordinate must be the periodic image at +190 degrees.
func TestTorsionWrap(Te *testing.T) {
	phi := -170 * math.Pi / 180
	crds := []float64{
		1, 0, 0,
		0, 0, 0,
		0, 0, 1,
		math.Cos(phi), math.Sin(phi), 1,
	}
	R, err := NewTorsion([]int{1, 2, 3, 4}, map[string]float64{
		"r1": 150, "r2": 160, "r3": 180, "r4": 190, "rk2": 1, "rk3": 1})
	if err != nil {
		Te.Fatal(err)
	}
	v, err := R.Coord(crds)
	if err != nil {
		Te.Fatal(err)
	}
	want := 190 * math.Pi / 180
	if math.Abs(v-want) > 1e-8 {
		Te.Errorf("wrapped torsion: got %v deg, want 190", v*180/math.Pi)
	}
	center := (160.0 + 180.0) / 2 * math.Pi / 180
	if v <= center-math.Pi || v > center+math.Pi {
		Te.Errorf("wrapped torsion %v outside (center-pi, center+pi]", v)
	}
}

//TestGenDistCoord checks the weighted sum and that gradients accumulate on
//an atom shared between two pairs.
func TestGenDistCoord(Te *testing.T) {
	crds := []float64{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
	}
	R, err := NewGenDistCoord([]int{1, 2, 2, 3}, []float64{1, -0.5},
		map[string]float64{"r0": 0.5, "k0": 2})
	if err != nil {
		Te.Fatal(err)
	}
	v, drdx, err := R.CoordAndGradients(crds)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(v-0.5) > 1e-12 {
		Te.Errorf("generalized coordinate: got %v, want 0.5", v)
	}
	//atom 2 takes part in both pairs: (1,0,0) from the first bond and
	//(0,0.5,0) from the second
	want := []float64{-1, 0, 0, 1, 0.5, 0, 0, -0.5, 0}
	for i := range want {
		if math.Abs(drdx[i]-want[i]) > 1e-12 {
			Te.Errorf("gradient component %d: got %v, want %v", i, drdx[i], want[i])
		}
	}
	if e, err := R.Energy(crds); err != nil || e != 0 {
		Te.Errorf("energy at the well center: got %v, %v", e, err)
	}
}

//TestEnergyGradients compares the Cartesian energy gradient of each kind
//against central finite differences.
func TestEnergyGradients(Te *testing.T) {
	crds := []float64{
		1.2, 0.1, -0.3,
		0.2, 1.1, 0.3,
		-0.5, 0.0, 1.0,
		0.8, -1.0, 1.5,
	}
	bond, _ := NewBond([]int{1, 2}, map[string]float64{"r0": 1.0, "k0": 10})
	angle, _ := NewAngle([]int{1, 2, 3}, map[string]float64{"r1": 10, "r2": 40, "r3": 50, "r4": 170, "rk2": 5, "rk3": 5})
	torsion, _ := NewTorsion([]int{1, 2, 3, 4}, map[string]float64{"r0": 30, "k0": 2})
	gendist, _ := NewGenDistCoord([]int{1, 2, 3, 4}, []float64{1, -1}, map[string]float64{"r0": 0.2, "k0": 3})
	for i, R := range []*Restraint{bond, angle, torsion, gendist} {
		_, grad, err := R.EnergyAndGradients(crds)
		if err != nil {
			Te.Fatal(err)
		}
		const h = 1e-6
		for m := range crds {
			c := append([]float64{}, crds...)
			c[m] += h
			ep, err := R.Energy(c)
			if err != nil {
				Te.Fatal(err)
			}
			c[m] -= 2 * h
			em, err := R.Energy(c)
			if err != nil {
				Te.Fatal(err)
			}
			num := (ep - em) / (2 * h)
			if math.Abs(num-grad[m]) > 1e-5 {
				Te.Errorf("restraint %d (%s), component %d: analytic %v vs numeric %v", i, R.Kind(), m, grad[m], num)
			}
		}
	}
}

func TestDecomposeMatchesTotal(Te *testing.T) {
	crds := []float64{
		1.2, 0.1, -0.3,
		0.2, 1.1, 0.3,
		-0.5, 0.0, 1.0,
		0.8, -1.0, 1.5,
	}
	C := testCollection(Te)
	total, err := C.Energy(crds)
	if err != nil {
		Te.Fatal(err)
	}
	decomposed, err := C.DecomposeEnergy(crds)
	if err != nil {
		Te.Fatal(err)
	}
	var sum float64
	for key, v := range decomposed {
		if key == "Restraint" {
			continue
		}
		sum += v
	}
	if math.Abs(sum-total) > 1e-12 {
		Te.Errorf("decomposed sum %v != total %v", sum, total)
	}
	if math.Abs(decomposed["Restraint"]-total) > 1e-12 {
		Te.Errorf("Restraint key %v != total %v", decomposed["Restraint"], total)
	}
}

//TestScalarMode evaluates a collection on pre-computed coordinate values,
//one per restraint, instead of Cartesian positions.
func TestScalarMode(Te *testing.T) {
	b1, _ := NewBond([]int{1, 2}, map[string]float64{"r0": 1, "k0": 10})
	b2, _ := NewBond([]int{2, 3}, map[string]float64{"r0": 2, "k0": 5})
	C, err := NewCollection(b1, b2)
	if err != nil {
		Te.Fatal(err)
	}
	e, err := C.Energy([]float64{1.5, 2.5})
	if err != nil {
		Te.Fatal(err)
	}
	want := 10*0.25 + 5*0.25
	if math.Abs(e-want) > 1e-12 {
		Te.Errorf("scalar-mode energy: got %v, want %v", e, want)
	}
	e2, dedr, err := C.EnergyAndGradients([]float64{1.5, 2.5})
	if err != nil {
		Te.Fatal(err)
	}
	if e2 != e {
		Te.Errorf("scalar-mode energies disagree: %v vs %v", e2, e)
	}
	if math.Abs(dedr[0]-10) > 1e-12 || math.Abs(dedr[1]-5) > 1e-12 {
		Te.Errorf("scalar-mode dE/dr: got %v", dedr)
	}
}

func TestCollectionSetParams(Te *testing.T) {
	b1, _ := NewBond([]int{1, 2}, map[string]float64{"r0": 1, "k0": 10})
	b2, _ := NewBond([]int{2, 3}, map[string]float64{"r0": 2, "k0": 5})
	C, err := NewCollection(b1, b2)
	if err != nil {
		Te.Fatal(err)
	}
	//3 values for 2 restraints: the excess is dropped with a warning
	if err := C.SetParams(map[string][]float64{"r0": {3, 4, 5}}); err != nil {
		Te.Fatal(err)
	}
	if p := C.Get(0).Positions(); p[1] != 3 {
		Te.Errorf("restraint 0 r2: got %v, want 3", p[1])
	}
	if p := C.Get(1).Positions(); p[1] != 4 {
		Te.Errorf("restraint 1 r2: got %v, want 4", p[1])
	}
	//1 value for 2 restraints: the second keeps its parameters
	if err := C.SetParams(map[string][]float64{"k0": {1}}); err != nil {
		Te.Fatal(err)
	}
	if k := C.Get(1).ForceConstants(); k[0] != 5 {
		Te.Errorf("restraint 1 rk2: got %v, want 5", k[0])
	}
}

func TestCollectionAppend(Te *testing.T) {
	C := new(Collection)
	if err := C.Append(nil); err == nil {
		Te.Error("expected an error appending nil")
	}
	bad := &Restraint{kind: Angle, iat: []int{1, 2}} //wrong atom count
	if err := C.Append(bad); err == nil {
		Te.Error("expected an error appending an invalid restraint")
	}
	if C.Len() != 0 {
		Te.Errorf("rejected members were kept: len %d", C.Len())
	}
}

func TestEquality(Te *testing.T) {
	b, _ := NewBond([]int{1, 2}, map[string]float64{"r0": 1, "k0": 10})
	brev, _ := NewBond([]int{2, 1}, map[string]float64{"r0": 1, "k0": 10})
	a, _ := NewAngle([]int{3, 4, 5}, map[string]float64{"r0": 109.5, "k0": 50})
	if !b.Equal(brev) {
		Te.Error("reversed atom order should compare equal")
	}
	c1, _ := NewCollection(b, a)
	c2, _ := NewCollection(a, brev)
	if !c1.Equal(c2) {
		Te.Error("collections differing only in order/direction should be equal")
	}
	bmod, _ := NewBond([]int{1, 2}, map[string]float64{"r0": 1, "k0": 20})
	c3, _ := NewCollection(a, bmod)
	if c1.Equal(c3) {
		Te.Error("collections with different force constants should not be equal")
	}
	if c1.Equal(&Collection{}) {
		Te.Error("collections of different length should not be equal")
	}
}

func TestReportFormat(Te *testing.T) {
	R, err := NewBond([]int{1, 2}, map[string]float64{"r0": 1, "k0": 10})
	if err != nil {
		Te.Fatal(err)
	}
	rep, err := R.Report(nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println(rep)
	if !strings.Contains(rep, "(    1)-    (    2)") {
		Te.Errorf("unexpected atom line in report:\n%s", rep)
	}
	if !strings.Contains(rep, "R1 =-499.000 R2 =   1.000 R3 =   1.000 R4 = 501.000 RK2 =  10.000") {
		Te.Errorf("unexpected position line in report:\n%s", rep)
	}
	if strings.Contains(rep, "Rcurr") {
		Te.Error("Rcurr reported without coordinates")
	}
	rep, err = R.Report([]float64{0, 0, 0, 1.5, 0, 0}, []string{"C1", "O2"})
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(rep, "C1  (    1)-O2  (    2)") {
		Te.Errorf("unexpected named atom line:\n%s", rep)
	}
	if !strings.Contains(rep, " Rcurr:    1.500  Rcurr-(R2+R3)/2:    0.500") {
		Te.Errorf("unexpected Rcurr line:\n%s", rep)
	}
	C, _ := NewCollection(R)
	crep, err := C.Report(nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(crep, "******\n") || !strings.Contains(crep, "Number of restraints read =     1") {
		Te.Errorf("unexpected collection report:\n%s", crep)
	}
}

func TestEnergyReportFormat(Te *testing.T) {
	b, _ := NewBond([]int{1, 2}, map[string]float64{"r0": 1, "k0": 10})
	C, _ := NewCollection(b)
	rep, err := C.EnergyReport([]float64{0, 0, 0, 1.5, 0, 0})
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(rep, " NMR restraints: Bond =    2.500   Angle =     0.000   Torsion =     0.000") {
		Te.Errorf("unexpected energy report:\n%s", rep)
	}
	if strings.Contains(rep, "Gen. Dist. Coord.") {
		Te.Error("Gen. Dist. Coord. line printed for a zero component")
	}
}

func testCollection(Te *testing.T) *Collection {
	bond, err := NewBond([]int{1, 2}, map[string]float64{"r0": 1.0, "k0": 10})
	if err != nil {
		Te.Fatal(err)
	}
	angle, err := NewAngle([]int{1, 2, 3}, map[string]float64{"r1": 10, "r2": 40, "r3": 50, "r4": 170, "rk2": 5, "rk3": 5})
	if err != nil {
		Te.Fatal(err)
	}
	torsion, err := NewTorsion([]int{1, 2, 3, 4}, map[string]float64{"r0": 30, "k0": 2})
	if err != nil {
		Te.Fatal(err)
	}
	gendist, err := NewGenDistCoord([]int{1, 2, 3, 4}, []float64{1, -1}, map[string]float64{"r0": 0.2, "k0": 3})
	if err != nil {
		Te.Fatal(err)
	}
	C, err := NewCollection(bond, angle, torsion, gendist)
	if err != nil {
		Te.Fatal(err)
	}
	return C
}
