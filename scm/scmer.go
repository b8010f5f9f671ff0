/*
Copyright (C) 2026  Carl-Philip Hänsch

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
	"math"
)

// Scmer is the closed tagged value of the language. The tag is unexported so
// no variant can be added from outside the package.
type Scmer struct {
	data any     // Symbol for symbols, []Scmer for lists, *Proc for calls and macros
	num  float64 // numbers; booleans are stored as 0/1
	tag  uint8
}

// Symbols are represented by strings
type Symbol string

// Type tags
const (
	tagNil = iota
	tagBool
	tagFloat
	tagSymbol
	tagSlice
	tagProc
	tagMacro
)

var tagNames = [...]string{
	tagNil:    "nil",
	tagBool:   "boolean",
	tagFloat:  "number",
	tagSymbol: "symbol",
	tagSlice:  "list",
	tagProc:   "call",
	tagMacro:  "macro",
}

// Proc is the shape shared by calls (closures) and macros: the captured
// environment, the parameter specification and the action run against the
// freshly bound invocation frame.
type Proc struct {
	Params Scmer
	En     *Env
	Fn     func(en *Env) (Scmer, error)
	Body   Scmer  // source form of a lambda; nil for natives
	Name   string // declaration name of natives
}

//
// Constructors
//

func NewNil() Scmer { return Scmer{} }

func NewBool(b bool) Scmer {
	if b {
		return Scmer{num: 1, tag: tagBool}
	}
	return Scmer{tag: tagBool}
}

func NewFloat(f float64) Scmer {
	return Scmer{num: f, tag: tagFloat}
}

func NewSymbol(sym string) Scmer {
	return Scmer{data: Symbol(sym), tag: tagSymbol}
}

// NewSlice builds an immutable list. The elements are copied so later
// writes to slice do not leak into the list.
func NewSlice(slice []Scmer) Scmer {
	l := make([]Scmer, len(slice))
	copy(l, slice)
	return Scmer{data: l, tag: tagSlice}
}

// List is a convenience constructor for literal lists.
func List(a ...Scmer) Scmer {
	return NewSlice(a)
}

func NewProc(p *Proc) Scmer {
	if p == nil {
		panic("NewProc: nil procedure")
	}
	return Scmer{data: p, tag: tagProc}
}

func NewMacro(p *Proc) Scmer {
	if p == nil {
		panic("NewMacro: nil procedure")
	}
	return Scmer{data: p, tag: tagMacro}
}

//
// Queries
//

func (v Scmer) Tag() int        { return int(v.tag) }
func (v Scmer) TagName() string { return tagNames[v.tag] }

func (v Scmer) IsNil() bool      { return v.tag == tagNil }
func (v Scmer) IsBool() bool     { return v.tag == tagBool }
func (v Scmer) IsFloat() bool    { return v.tag == tagFloat }
func (v Scmer) IsSymbol() bool   { return v.tag == tagSymbol }
func (v Scmer) IsSlice() bool    { return v.tag == tagSlice }
func (v Scmer) IsProc() bool     { return v.tag == tagProc }
func (v Scmer) IsMacro() bool    { return v.tag == tagMacro }
func (v Scmer) IsCallable() bool { return v.tag == tagProc || v.tag == tagMacro }

// Slice returns the elements of a list. The result must not be modified.
// Non-lists yield nil.
func (v Scmer) Slice() []Scmer {
	if v.tag != tagSlice {
		return nil
	}
	return v.data.([]Scmer)
}

// Proc returns the procedure of a call or macro, nil otherwise.
func (v Scmer) Proc() *Proc {
	if v.tag != tagProc && v.tag != tagMacro {
		return nil
	}
	return v.data.(*Proc)
}

//
// Narrowing accessors
//

func (v Scmer) AsSymbol() (Symbol, error) {
	if v.tag != tagSymbol {
		return "", InvalidForm(v, "symbol")
	}
	return v.data.(Symbol), nil
}

func (v Scmer) AsList() ([]Scmer, error) {
	if v.tag != tagSlice {
		return nil, InvalidForm(v, "list")
	}
	return v.data.([]Scmer), nil
}

func (v Scmer) AsFloat() (float64, error) {
	if v.tag != tagFloat {
		return 0, InvalidForm(v, "number")
	}
	return v.num, nil
}

func (v Scmer) AsBool() (bool, error) {
	if v.tag != tagBool {
		return false, InvalidForm(v, "boolean")
	}
	return v.num != 0, nil
}

func (v Scmer) AsProc() (*Proc, error) {
	if v.tag != tagProc {
		return nil, InvalidForm(v, "call")
	}
	return v.data.(*Proc), nil
}

// Length of a list in O(1).
func Length(v Scmer) (int, error) {
	l, err := v.AsList()
	if err != nil {
		return 0, err
	}
	return len(l), nil
}

func Empty(v Scmer) (bool, error) {
	l, err := v.AsList()
	if err != nil {
		return false, err
	}
	return len(l) == 0, nil
}

// IsTrue is the truthiness predicate of conditional positions: only booleans
// are accepted.
func IsTrue(v Scmer) (bool, error) {
	return v.AsBool()
}

// Equal compares two values structurally. Calls and macros are equal only
// if they share the same procedure.
func Equal(a, b Scmer) bool {
	if a.tag != b.tag {
		return false
	}
	switch a.tag {
	case tagNil:
		return true
	case tagBool:
		return a.num == b.num
	case tagFloat:
		return a.num == b.num || (math.IsNaN(a.num) && math.IsNaN(b.num))
	case tagSymbol:
		return a.data.(Symbol) == b.data.(Symbol)
	case tagSlice:
		la, lb := a.data.([]Scmer), b.data.([]Scmer)
		if len(la) != len(lb) {
			return false
		}
		for i := range la {
			if !Equal(la[i], lb[i]) {
				return false
			}
		}
		return true
	case tagProc, tagMacro:
		return a.data.(*Proc) == b.data.(*Proc)
	}
	return false
}
