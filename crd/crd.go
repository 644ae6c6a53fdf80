/*
 * crd.go, part of gorst
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

//Package crd reads AMBER ASCII restart/coordinate files (inpcrd, rst7):
//a title line, a line with the atom count (and possibly the time), then
//the coordinates in 6F12.7 records. Only the coordinates are read;
//velocities and box vectors, when present, are ignored.
package crd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Read reads an AMBER restart file from r and returns its title and a flat
// 3N slice with the coordinates, in Angstroms.
func Read(r io.Reader) (string, []float64, error) {
	br := bufio.NewReader(r)
	title, err := br.ReadString('\n')
	if err != nil {
		return "", nil, Error{"missing title line: " + err.Error(), "", []string{"Read"}}
	}
	title = strings.TrimRight(title, "\n")
	counts, err := br.ReadString('\n')
	if err != nil {
		return "", nil, Error{"missing atom count line: " + err.Error(), "", []string{"Read"}}
	}
	fields := strings.Fields(counts)
	if len(fields) < 1 {
		return "", nil, Error{"missing atom count", "", []string{"Read"}}
	}
	natoms, err := strconv.Atoi(fields[0])
	if err != nil || natoms < 1 {
		return "", nil, Error{fmt.Sprintf("bad atom count %q", fields[0]), "", []string{"Read"}}
	}
	crds := make([]float64, 0, 3*natoms)
	for len(crds) < 3*natoms {
		line, err := br.ReadString('\n')
		if err != nil && line == "" {
			return "", nil, Error{fmt.Sprintf("got %d of %d expected coordinates", len(crds), 3*natoms), "", []string{"Read"}}
		}
		for _, field := range strings.Fields(line) {
			v, err2 := strconv.ParseFloat(field, 64)
			if err2 != nil {
				return "", nil, Error{"unable to read coordinates: " + err2.Error(), "", []string{"strconv.ParseFloat", "Read"}}
			}
			crds = append(crds, v)
			if len(crds) == 3*natoms {
				break //anything left on this line, or after it, is velocities/box
			}
		}
		if err != nil && len(crds) < 3*natoms {
			return "", nil, Error{fmt.Sprintf("got %d of %d expected coordinates", len(crds), 3*natoms), "", []string{"Read"}}
		}
	}
	return title, crds, nil
}

// ReadFile is as Read, for a named file.
func ReadFile(name string) (string, []float64, error) {
	f, err := os.Open(name)
	if err != nil {
		return "", nil, Error{err.Error(), name, []string{"ReadFile"}}
	}
	defer f.Close()
	title, crds, err := Read(f)
	if err != nil {
		err2 := err.(Error)
		err2.filename = name
		err2.Decorate("ReadFile")
		return "", nil, err2
	}
	return title, crds, nil
}

// Error is the error type for malformed coordinate files.
type Error struct {
	message  string
	filename string
	deco     []string
}

func (err Error) Error() string {
	if err.filename == "" {
		return "crd: " + err.message
	}
	return fmt.Sprintf("crd file %s: %s", err.filename, err.message)
}

// Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file associated to the error, or an empty string.
func (err Error) FileName() string { return err.filename }
