/*
Copyright (C) 2023-2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package scm

import (
	"bytes"
	"io"
	"math"
	"strconv"
)

func String(v Scmer) string {
	var b bytes.Buffer
	Serialize(&b, v)
	return b.String()
}

func (v Scmer) String() string {
	return String(v)
}

// Serialize writes the textual rendering of v. Procedures are printed
// shallow as (lambda ...) without their captured environment.
func Serialize(w io.Writer, v Scmer) {
	switch v.tag {
	case tagNil:
		io.WriteString(w, "nil")
	case tagBool:
		if v.num != 0 {
			io.WriteString(w, "true")
		} else {
			io.WriteString(w, "false")
		}
	case tagFloat:
		io.WriteString(w, formatFloat(v.num))
	case tagSymbol:
		io.WriteString(w, string(v.data.(Symbol)))
	case tagSlice:
		io.WriteString(w, "(")
		for i, x := range v.data.([]Scmer) {
			if i > 0 {
				io.WriteString(w, " ")
			}
			Serialize(w, x)
		}
		io.WriteString(w, ")")
	case tagProc, tagMacro:
		p := v.data.(*Proc)
		if p.Name == "" {
			io.WriteString(w, "(lambda ")
			Serialize(w, p.Params)
			io.WriteString(w, " ")
			Serialize(w, p.Body)
			io.WriteString(w, ")")
		} else if v.tag == tagMacro {
			io.WriteString(w, "[macro "+p.Name+"]")
		} else {
			io.WriteString(w, "[native func "+p.Name+"]")
		}
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "+inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
