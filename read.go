/*
 * read.go, part of gorst
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
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/rmera/gorst/namelist"
)

//the parameters sander understands in an &rst namelist, besides iat and rstwt.
var floatKeys = [8]string{"r0", "r1", "r2", "r3", "r4", "k0", "rk2", "rk3"}

// ReadFile reads an AMBER restraint file (usually file extension RST) and
// returns a Collection with each restraint found therein. Files ending in
// .gz or .zst are decompressed on the fly. A file with no &rst namelists
// yields an empty collection and a logged warning, unless required is
// given and true, in which case it is an error.
func ReadFile(name string, required ...bool) (*Collection, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, ParseError{err.Error(), name, []string{"ReadFile"}}
	}
	defer f.Close()
	r, closer, err := uncompress(f, name)
	if err != nil {
		return nil, ParseError{err.Error(), name, []string{"ReadFile"}}
	}
	defer closer()
	ret, err := read(r, name, required...)
	if err != nil {
		return nil, errDecorate(err, "ReadFile")
	}
	return ret, nil
}

// Read is as ReadFile, but takes any reader with restraint-file text.
func Read(r io.Reader, required ...bool) (*Collection, error) {
	ret, err := read(r, "", required...)
	if err != nil {
		return nil, errDecorate(err, "Read")
	}
	return ret, nil
}

func read(r io.Reader, filename string, required ...bool) (*Collection, error) {
	groups, err := namelist.Read(r)
	if err != nil {
		return nil, ParseError{err.Error(), filename, []string{"read"}}
	}
	ret := new(Collection)
	for _, g := range groups {
		if g.Name() != "rst" {
			continue
		}
		R, err := restraintFromGroup(g)
		if err != nil {
			return nil, errDecorate(err, "read")
		}
		if err := ret.Append(R); err != nil {
			return nil, errDecorate(err, "read")
		}
	}
	if ret.Len() < 1 {
		if len(required) > 0 && required[0] {
			return nil, ParseError{ErrNoRestraints, filename, []string{"read"}}
		}
		log.Printf("Warning: no &rst namelists were found in %s", filename)
	}
	return ret, nil
}

// restraintFromGroup builds one typed restraint from an &rst group. The
// kind is decided by the iat element count and the presence of rstwt.
func restraintFromGroup(g *namelist.Group) (*Restraint, error) {
	iatStr, ok := g.Get("iat")
	if !ok {
		return nil, ParseError{ErrNoIat, "", []string{"restraintFromGroup"}}
	}
	iat, err := parseInts(iatStr)
	if err != nil {
		return nil, ParseError{fmt.Sprintf("%s: %s", ErrBadIat, err.Error()), "", []string{"restraintFromGroup"}}
	}
	params := make(map[string]float64)
	for _, key := range floatKeys {
		v, ok := g.Get(key)
		if !ok {
			continue
		}
		//sander tolerates lists here; only the first element counts.
		if i := strings.IndexByte(v, ','); i >= 0 {
			v = v[:i]
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, ParseError{fmt.Sprintf("malformed value for %s: %s", key, err.Error()), "", []string{"restraintFromGroup"}}
		}
		params[key] = f
	}
	if wstr, ok := g.Get("rstwt"); ok {
		rstwt, err := parseFloats(wstr)
		if err != nil {
			return nil, ParseError{fmt.Sprintf("malformed value for rstwt: %s", err.Error()), "", []string{"restraintFromGroup"}}
		}
		R, err := NewGenDistCoord(iat, rstwt, params)
		if err != nil {
			return nil, errDecorate(err, "restraintFromGroup")
		}
		return R, nil
	}
	var R *Restraint
	switch len(iat) {
	case 2:
		R, err = NewBond(iat, params)
	case 3:
		R, err = NewAngle(iat, params)
	case 4:
		R, err = NewTorsion(iat, params)
	default:
		return nil, ParseError{fmt.Sprintf("%s: %d atoms and no rstwt", ErrBadIat, len(iat)), "", []string{"restraintFromGroup"}}
	}
	if err != nil {
		return nil, errDecorate(err, "restraintFromGroup")
	}
	return R, nil
}

// uncompress wraps f with the decompressor matching the file name suffix,
// if any, and returns the reader plus a function releasing it.
func uncompress(f *os.File, name string) (io.Reader, func() error, error) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		return gz, gz.Close, nil
	case strings.HasSuffix(name, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		rc := dec.IOReadCloser()
		return rc, rc.Close, nil
	default:
		return f, func() error { return nil }, nil
	}
}

func parseInts(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	ret := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		ret = append(ret, v)
	}
	return ret, nil
}

func parseFloats(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	ret := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		ret = append(ret, v)
	}
	return ret, nil
}
