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

import "fmt"

type ErrorKind int

const (
	KindUnbound ErrorKind = iota + 1
	KindArity
	KindInvalidForm
	KindMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnbound:
		return "unbound"
	case KindArity:
		return "arity"
	case KindInvalidForm:
		return "invalid form"
	case KindMismatch:
		return "mismatch"
	}
	return fmt.Sprintf("kind %d", int(k))
}

// Error is the single error type of the evaluator. Which fields are set
// depends on Kind.
type Error struct {
	Kind ErrorKind

	Symbol Symbol // Unbound

	Expected int  // Arity
	Actual   int  // Arity
	AtLeast  bool // Arity: Expected is a lower bound

	Value Scmer  // InvalidForm: offending value; Mismatch: left operand
	Other Scmer  // Mismatch: right operand
	Want  string // InvalidForm: expected variant
}

// sentinels for errors.Is
var (
	ErrUnbound     = &Error{Kind: KindUnbound}
	ErrArity       = &Error{Kind: KindArity}
	ErrInvalidForm = &Error{Kind: KindInvalidForm}
	ErrMismatch    = &Error{Kind: KindMismatch}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnbound:
		return fmt.Sprintf("unbound symbol: %s", e.Symbol)
	case KindArity:
		if e.AtLeast {
			return fmt.Sprintf("expected at least %d arguments, got %d", e.Expected, e.Actual)
		}
		return fmt.Sprintf("expected %d arguments, got %d", e.Expected, e.Actual)
	case KindInvalidForm:
		return fmt.Sprintf("invalid form %s: expected %s", String(e.Value), e.Want)
	case KindMismatch:
		return fmt.Sprintf("mismatching or invalid operand types: %s (%s) and %s (%s)",
			String(e.Value), e.Value.TagName(), String(e.Other), e.Other.TagName())
	}
	return "scm error"
}

// Is matches any *Error of the same kind, so the sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func Unbound(sym Symbol) error {
	return &Error{Kind: KindUnbound, Symbol: sym}
}

func Arity(expected, actual int) error {
	return &Error{Kind: KindArity, Expected: expected, Actual: actual}
}

func ArityAtLeast(expected, actual int) error {
	return &Error{Kind: KindArity, Expected: expected, Actual: actual, AtLeast: true}
}

func InvalidForm(v Scmer, want string) error {
	return &Error{Kind: KindInvalidForm, Value: v, Want: want}
}

func Mismatch(a, b Scmer) error {
	return &Error{Kind: KindMismatch, Value: a, Other: b}
}
