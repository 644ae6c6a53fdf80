/*
 * report.go, part of gorst
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
)

// Report returns a restraint report in the same format as AMBER output.
// Both arguments are optional (may be nil): with no coordinates the current
// value of the coordinate is omitted, with no atom names the name fields
// are left blank. anames is indexed by atom, so atom i gets anames[i-1].
func (R *Restraint) Report(crds []float64, anames []string) (string, error) {
	names := make([]string, len(R.iat))
	if anames != nil {
		for i, at := range R.iat {
			if at < 1 || at > len(anames) {
				return "", CError{fmt.Sprintf("atom %d out of range for %d atom names", at, len(anames)), []string{"Restraint.Report"}}
			}
			names[i] = anames[at-1]
		}
	}
	var b strings.Builder
	atomLine := func(from, to int, trim bool) {
		line := " "
		for i := from; i < to; i++ {
			line += fmt.Sprintf("%-4s(%5d)-", names[i], R.iat[i])
		}
		if trim {
			line = line[:len(line)-1]
		}
		b.WriteString(line + "\n")
	}
	//restraints on more than 4 atoms get their atom list split in two lines.
	if len(R.iat) <= 4 {
		atomLine(0, len(R.iat), true)
	} else {
		atomLine(0, 4, false)
		atomLine(4, len(R.iat), false)
	}
	p := R.Positions()
	b.WriteString(fmt.Sprintf("R1 =%8.3f R2 =%8.3f R3 =%8.3f R4 =%8.3f RK2 =%8.3f RK3 = %8.3f\n",
		p[0], p[1], p[2], p[3], R.rk[0], R.rk[1]))
	if crds != nil {
		curr, err := R.Coord(crds)
		if err != nil {
			return "", errDecorate(err, "Restraint.Report")
		}
		conv := kindTable[R.kind].conv
		dAvg := math.Abs(curr - (R.r[1]+R.r[2])/2)
		minD := math.Min(math.Abs(curr-R.r[1]), math.Abs(curr-R.r[2]))
		b.WriteString(fmt.Sprintf(" Rcurr: %8.3f  Rcurr-(R2+R3)/2: %8.3f  MIN(Rcurr-R2,Rcurr-R3): %8.3f\n",
			curr*conv, dAvg*conv, minD*conv))
	}
	return b.String(), nil
}

// Report returns a report for every restraint in the collection, in the
// same format as AMBER output, with a trailer giving the restraint count.
func (C *Collection) Report(crds []float64, anames []string) (string, error) {
	var b strings.Builder
	for _, R := range C.rstrs {
		b.WriteString("******\n")
		rep, err := R.Report(crds, anames)
		if err != nil {
			return "", errDecorate(err, "Collection.Report")
		}
		b.WriteString(rep)
	}
	b.WriteString(fmt.Sprintf("%23sNumber of restraints read = %5d\n", "", len(C.rstrs)))
	return b.String(), nil
}

// EnergyReport returns the restraint energy decomposition in the same
// format as the report sander prints after each MD step. The
// Gen. Dist. Coord. line only appears when that component is nonzero.
func (C *Collection) EnergyReport(crds []float64) (string, error) {
	e, err := C.DecomposeEnergy(crds)
	if err != nil {
		return "", errDecorate(err, "Collection.EnergyReport")
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf(" NMR restraints: Bond =%9.3f   Angle = %9.3f   Torsion = %9.3f\n",
		e[Bond.String()], e[Angle.String()], e[Torsion.String()]))
	if e[GenDistCoord.String()] > 0 {
		b.WriteString(fmt.Sprintf("               : Gen. Dist. Coord. = %9.3f\n", e[GenDistCoord.String()]))
	}
	return b.String(), nil
}
