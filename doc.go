/*
 * doc.go, part of gorst
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

/*Package rst implements AMBER nmropt-style restraints. It is useful, for
example, if one wants to determine just the restraint energy of a set of
coordinates without running a full energy evaluation in AMBER.


	**gorst capabilities**

    Reads/writes AMBER restraint files (&rst namelists), including the
	r0/k0 shortcut for purely harmonic wells and gzip/zstd-compressed
	files.

    Supports bond, angle, torsion and generalized distance coordinate
	restraints, with positions in Angstroms/degrees on file and
	Angstroms/radians internally, as in sander.

    Evaluates the flat-bottom well energy and its analytic Cartesian
	gradients for a set of coordinates, or for pre-computed values of the
	restrained coordinates. Torsions are always evaluated at the periodic
	image closest to the center of the well.

    Decomposes the restraint energy by restraint type.

    Prints restraint and restraint-energy reports in the same format as
	AMBER output.

Units are Angstroms, radians and kcal/mol unless stated otherwise.

The geometry itself (distances, angles, dihedrals and their gradients)
lives in the coord subpackage; AMBER inpcrd/rst7 coordinate files can be
read with the crd subpackage, and energy profiles plotted with rstplot.

REFERENCES: AMBER 12 Manual, section 6.1.1: ambermd.org/doc12/Amber12.pdf
*/
package rst
