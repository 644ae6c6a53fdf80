/*
 * write.go, part of gorst
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
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rmera/gorst/namelist"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Namelist returns the restraint as an &rst namelist group, with the
// positions in reporting units (Angstroms or degrees). The group can be
// re-parsed into an equal restraint.
func (R *Restraint) Namelist() *namelist.Group {
	g := namelist.NewGroup("rst")
	iat := make([]string, len(R.iat))
	for i, v := range R.iat {
		iat[i] = strconv.Itoa(v)
	}
	g.Set("iat", strings.Join(iat, ","))
	conv := kindTable[R.kind].conv
	for i := 0; i < 4; i++ {
		g.Set(fmt.Sprintf("r%d", i+1), formatFloat(R.r[i]*conv))
	}
	for i := 0; i < 2; i++ {
		g.Set(fmt.Sprintf("rk%d", i+2), formatFloat(R.rk[i]))
	}
	if R.rstwt != nil {
		wt := make([]string, len(R.rstwt))
		for i, v := range R.rstwt {
			wt[i] = formatFloat(v)
		}
		g.Set("rstwt", strings.Join(wt, ","))
	}
	return g
}

// WriteNamelist writes the restraint to w as one &rst namelist line.
func (R *Restraint) WriteNamelist(w io.Writer) error {
	if _, err := io.WriteString(w, R.Namelist().String()+"\n"); err != nil {
		return CError{err.Error(), []string{"Restraint.WriteNamelist"}}
	}
	return nil
}

// Write writes an AMBER restraint file to w: a title line followed by one
// &rst namelist per restraint, in collection order.
func (C *Collection) Write(w io.Writer, title string) error {
	if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
		return CError{err.Error(), []string{"Collection.Write"}}
	}
	for _, R := range C.rstrs {
		if err := R.WriteNamelist(w); err != nil {
			return errDecorate(err, "Collection.Write")
		}
	}
	return nil
}

// WriteFile writes an AMBER restraint file with all the current restraints
// to the named file.
func (C *Collection) WriteFile(name, title string) error {
	f, err := os.Create(name)
	if err != nil {
		return ParseError{err.Error(), name, []string{"Collection.WriteFile"}}
	}
	defer f.Close()
	if err := C.Write(f, title); err != nil {
		return errDecorate(err, "Collection.WriteFile")
	}
	return nil
}
