/*
 * errors.go, part of gorst
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

import "fmt"

// Error is the interface for errors that all packages in this library implement.
// The Decorate method allows to add and retrieve info from the error, without
// changing its type or wrapping it around something else. The decoration slice
// should contain the names of the functions in the calling stack, plus, for
// each function, any relevant information, or nothing.
type Error interface {
	Error() string
	Decorate(string) []string
}

// CError is the concrete type for errors raised when a Restraint or a
// Collection is built or mutated with inconsistent data.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

// Decorate adds new information to the error
func (err CError) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since err.deco is a slice, and hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// ParseError is the type for errors found while reading or writing a
// restraint file. It records the offending file, when known.
type ParseError struct {
	msg      string
	filename string //empty if the data didn't come from a named file
	deco     []string
}

func (err ParseError) Error() string {
	if err.filename == "" {
		return err.msg
	}
	return fmt.Sprintf("restraint file %s: %s", err.filename, err.msg)
}

// Decorate adds new information to the error
func (err ParseError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file associated to the error, or an empty string.
func (err ParseError) FileName() string { return err.filename }

// errDecorate is a helper that asserts that err implements Error and
// decorates it with the caller's name before returning it.
// If used with an error that doesn't implement Error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

const (
	ErrNotMonotonic   = "Restraint positions must be monotonically increasing (r1 <= r2 <= r3 <= r4)"
	ErrAtomCount      = "Wrong number of atoms for the restraint kind"
	ErrWeightCount    = "Wrong number of rstwt values for a Gen. Dist. Coord. restraint"
	ErrNilRestraint   = "Collections can only contain valid Restraints"
	ErrNoIat          = "'iat' must be specified to define an nmropt restraint"
	ErrBadIat         = "Bad iat specification"
	ErrNoRestraints   = "No &rst namelists were found"
	ErrNilCoordinates = "Given nil coordinates"
)
