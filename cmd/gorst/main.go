/*
 * main.go, part of gorst
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

//gorst inspects AMBER nmropt restraint files: it prints the same restraint
//report sander prints, and, given coordinates, the restraint energies and
//forces, without running a full energy evaluation in AMBER.
package main

import (
	"fmt"
	"os"

	rst "github.com/rmera/gorst"
	"github.com/rmera/gorst/crd"
	"github.com/rmera/gorst/rstplot"
	"github.com/spf13/cobra"
)

var (
	outFile    string
	outTitle   string
	plotPrefix string
	forces     bool
)

var rootCmd = &cobra.Command{
	Use:   "gorst RST [inpcrd]",
	Short: "inspect AMBER nmropt restraint files",
	Long: `gorst reads an AMBER restraint file (&rst namelists) and prints the
restraint report in the same format as AMBER output. If an inpcrd/rst7 file
is also given, it reports the current value of each restrained coordinate,
the restraint energy decomposition, the total restraint energy and,
optionally, the restraint forces.`,
	Args:          cobra.RangeArgs(1, 2),
	SilenceUsage:  true,
	RunE:          run,
}

func run(cmd *cobra.Command, args []string) error {
	rstrs, err := rst.ReadFile(args[0], true)
	if err != nil {
		return err
	}
	var crds []float64
	if len(args) > 1 {
		_, crds, err = crd.ReadFile(args[1])
		if err != nil {
			return err
		}
	}
	report, err := rstrs.Report(crds, nil)
	if err != nil {
		return err
	}
	fmt.Print(report)
	if crds != nil {
		energyReport, err := rstrs.EnergyReport(crds)
		if err != nil {
			return err
		}
		fmt.Print(energyReport)
		energy, gradients, err := rstrs.EnergyAndGradients(crds)
		if err != nil {
			return err
		}
		fmt.Printf("RESTRAINT  = %12.4f\n", energy)
		if forces {
			//same format as sander's forcedump.dat
			for i := 0; i < len(gradients); i += 3 {
				fmt.Printf(" % 18.16e % 18.16e % 18.16e\n", -gradients[i], -gradients[i+1], -gradients[i+2])
			}
		}
	}
	if outFile != "" {
		if err := rstrs.WriteFile(outFile, outTitle); err != nil {
			return err
		}
	}
	if plotPrefix != "" {
		for i, R := range rstrs.Slice() {
			from, to := plotRange(R)
			name := fmt.Sprintf("%s_%d", plotPrefix, i+1)
			if err := rstplot.SaveProfile(R, from, to, 200, fmt.Sprintf("%s restraint %d", R.Kind(), i+1), name); err != nil {
				return err
			}
		}
	}
	return nil
}

// plotRange picks a readable coordinate interval around the well: the full
// r1-r4 range unless the linear tails are far away (as with the 500 A
// offsets of purely harmonic restraints), in which case a window around
// r2-r3 is used.
func plotRange(R *rst.Restraint) (float64, float64) {
	p := R.Positions()
	width := p[2] - p[1]
	if width <= 0 {
		width = 1
	}
	from, to := p[0], p[3]
	if p[1]-p[0] > 10*width {
		from = p[1] - 5*width
	}
	if p[3]-p[2] > 10*width {
		to = p[2] + 5*width
	}
	return from, to
}

func main() {
	rootCmd.Flags().StringVarP(&outFile, "out", "o", "", "rewrite the restraints to this file")
	rootCmd.Flags().StringVarP(&outTitle, "title", "t", "", "title line for the rewritten restraint file")
	rootCmd.Flags().StringVarP(&plotPrefix, "plot", "p", "", "write one energy-profile PNG per restraint, with this name prefix")
	rootCmd.Flags().BoolVarP(&forces, "forces", "f", false, "print the restraint forces (needs coordinates)")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
