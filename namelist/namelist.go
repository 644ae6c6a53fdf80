/*
 * namelist.go, part of gorst
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

//Package namelist reads and writes Fortran-style namelist groups, the
//key=value blocks used by AMBER input files:
//
//	 &name key1=v1,v2 key2=v3 ... /
//
//A group starts with &name and ends with a bare "/" or "&end"; it may span
//several lines. Text outside groups (titles, comments) is ignored. Values
//are kept as the strings found in the file; interpreting them is up to the
//caller.
package namelist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Group is one named, ordered set of key=value entries. Keys keep the
// order in which they were first set.
type Group struct {
	name   string
	keys   []string
	values map[string]string
}

// NewGroup returns an empty group with the given name (without the "&").
func NewGroup(name string) *Group {
	return &Group{name: name, values: make(map[string]string)}
}

// Name returns the group name, without the leading "&".
func (G *Group) Name() string { return G.name }

// Len returns the number of entries in the group.
func (G *Group) Len() int { return len(G.keys) }

// Keys returns a copy of the keys, in the order they were set.
func (G *Group) Keys() []string { return append([]string{}, G.keys...) }

// Get returns the value for key and whether the key is present.
func (G *Group) Get(key string) (string, bool) {
	v, ok := G.values[key]
	return v, ok
}

// Set stores value under key, appending the key if it is new.
func (G *Group) Set(key, value string) {
	if _, ok := G.values[key]; !ok {
		G.keys = append(G.keys, key)
	}
	G.values[key] = value
}

// String formats the group as a single-line namelist record, in the
// style written by sander: " &name k1=v1 k2=v2 / ".
func (G *Group) String() string {
	var b strings.Builder
	b.WriteString(" &" + G.name)
	for _, k := range G.keys {
		b.WriteString(" " + k + "=" + G.values[k])
	}
	b.WriteString(" / ")
	return b.String()
}

// Read returns every namelist group found in r, in file order.
// An unterminated group is an error.
func Read(r io.Reader) ([]*Group, error) {
	groups := make([]*Group, 0, 5)
	var current *Group
	var content strings.Builder
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		for line != "" {
			if current == nil {
				amp := strings.IndexByte(line, '&')
				if amp < 0 {
					break //title or comment text
				}
				line = line[amp+1:]
				fields := strings.SplitN(line, " ", 2)
				current = NewGroup(fields[0])
				if len(fields) < 2 {
					line = ""
					break
				}
				line = fields[1]
			}
			end := strings.IndexByte(line, '/')
			amp := strings.Index(line, "&end")
			if amp >= 0 && (end < 0 || amp < end) {
				end = amp
			}
			if end < 0 {
				content.WriteString(line + " ")
				line = ""
				break
			}
			content.WriteString(line[:end])
			if err := parseEntries(current, content.String()); err != nil {
				return nil, err
			}
			groups = append(groups, current)
			current = nil
			content.Reset()
			line = strings.TrimSpace(strings.TrimPrefix(line[end:], "&end"))
			line = strings.TrimPrefix(line, "/")
			line = strings.TrimSpace(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, Error{err.Error(), []string{"Read"}}
	}
	if current != nil {
		return nil, Error{fmt.Sprintf("unterminated &%s group at end of input", current.name), []string{"Read"}}
	}
	return groups, nil
}

// ReadFile returns every namelist group found in the named file.
func ReadFile(name string) ([]*Group, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{err.Error(), []string{"ReadFile"}}
	}
	defer f.Close()
	groups, err := Read(f)
	if err != nil {
		return nil, errDecorate(err, "ReadFile")
	}
	return groups, nil
}

// parseEntries splits the body of a group into key=value entries and adds
// them to G. Spaces around "=" and after "," are tolerated; a field without
// "=" continues the previous value (Fortran allows "iat = 1, 2").
func parseEntries(G *Group, text string) error {
	for _, gap := range []string{" =", "= ", ", ", " ,"} {
		for strings.Contains(text, gap) {
			text = strings.ReplaceAll(text, gap, strings.Trim(gap, " "))
		}
	}
	var lastKey string
	for _, field := range strings.Fields(text) {
		eq := strings.IndexByte(field, '=')
		if eq < 0 {
			if lastKey == "" {
				return Error{fmt.Sprintf("&%s: stray value %q with no key", G.name, field), []string{"parseEntries"}}
			}
			G.Set(lastKey, G.values[lastKey]+","+field)
			continue
		}
		if eq == 0 {
			return Error{fmt.Sprintf("&%s: entry %q has an empty key", G.name, field), []string{"parseEntries"}}
		}
		lastKey = field[:eq]
		G.Set(lastKey, strings.TrimSuffix(field[eq+1:], ","))
	}
	return nil
}

// Error is the error type for malformed namelist input.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return "namelist: " + err.message }

// Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}
