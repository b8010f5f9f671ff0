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
	"errors"
	"math"
	"testing"
)

func TestConstructorsAndTags(t *testing.T) {
	cases := []struct {
		v    Scmer
		name string
		is   func(Scmer) bool
	}{
		{NewNil(), "nil", Scmer.IsNil},
		{NewBool(true), "boolean", Scmer.IsBool},
		{NewFloat(1), "number", Scmer.IsFloat},
		{NewSymbol("x"), "symbol", Scmer.IsSymbol},
		{List(), "list", Scmer.IsSlice},
		{NewProc(&Proc{}), "call", Scmer.IsProc},
		{NewMacro(&Proc{}), "macro", Scmer.IsMacro},
	}
	for _, c := range cases {
		if c.v.TagName() != c.name {
			t.Fatalf("expected tag %s, got %s", c.name, c.v.TagName())
		}
		if !c.is(c.v) {
			t.Fatalf("predicate for %s failed", c.name)
		}
	}
	if (Scmer{}).Tag() != NewNil().Tag() {
		t.Fatalf("zero value must be nil")
	}
	if !NewProc(&Proc{}).IsCallable() || !NewMacro(&Proc{}).IsCallable() || NewFloat(1).IsCallable() {
		t.Fatalf("IsCallable is wrong")
	}
}

func TestNewSliceCopies(t *testing.T) {
	src := []Scmer{NewFloat(1), NewFloat(2)}
	l := NewSlice(src)
	src[0] = NewFloat(99)
	if !Equal(l.Slice()[0], NewFloat(1)) {
		t.Fatalf("list must not alias the input slice")
	}
	if n, _ := Length(l); n != 2 {
		t.Fatalf("expected length 2, got %d", n)
	}
	if e, _ := Empty(l); e {
		t.Fatalf("list must not be empty")
	}
	if e, _ := Empty(List()); !e {
		t.Fatalf("empty list must be empty")
	}
}

func TestNarrowingAccessors(t *testing.T) {
	if s, err := NewSymbol("abc").AsSymbol(); err != nil || s != "abc" {
		t.Fatalf("AsSymbol: %v %v", s, err)
	}
	if f, err := NewFloat(2.5).AsFloat(); err != nil || f != 2.5 {
		t.Fatalf("AsFloat: %v %v", f, err)
	}
	if b, err := NewBool(false).AsBool(); err != nil || b {
		t.Fatalf("AsBool: %v %v", b, err)
	}
	checks := []struct {
		err  error
		want string
	}{
		{func() error { _, err := NewFloat(1).AsSymbol(); return err }(), "symbol"},
		{func() error { _, err := NewSymbol("x").AsFloat(); return err }(), "number"},
		{func() error { _, err := NewFloat(0).AsBool(); return err }(), "boolean"},
		{func() error { _, err := NewNil().AsList(); return err }(), "list"},
		{func() error { _, err := NewMacro(&Proc{}).AsProc(); return err }(), "call"},
		{func() error { _, err := Length(NewFloat(3)); return err }(), "list"},
	}
	for _, c := range checks {
		var e *Error
		if !errors.As(c.err, &e) || e.Kind != KindInvalidForm || e.Want != c.want {
			t.Fatalf("expected invalid form (%s), got %v", c.want, c.err)
		}
	}
}

func TestIsTrue(t *testing.T) {
	if ok, err := IsTrue(NewBool(true)); err != nil || !ok {
		t.Fatalf("true must be true")
	}
	if ok, err := IsTrue(NewBool(false)); err != nil || ok {
		t.Fatalf("false must be false")
	}
	for _, v := range []Scmer{NewNil(), NewFloat(1), List(), NewSymbol("true")} {
		if _, err := IsTrue(v); !errors.Is(err, ErrInvalidForm) {
			t.Fatalf("%s must not be a condition", String(v))
		}
	}
}

func TestEqual(t *testing.T) {
	p := &Proc{}
	eq := [][2]Scmer{
		{NewNil(), NewNil()},
		{NewFloat(math.NaN()), NewFloat(math.NaN())},
		{List(NewSymbol("a"), List(NewFloat(1))), List(NewSymbol("a"), List(NewFloat(1)))},
		{NewProc(p), NewProc(p)},
	}
	for _, c := range eq {
		if !Equal(c[0], c[1]) {
			t.Fatalf("%s and %s must be equal", String(c[0]), String(c[1]))
		}
	}
	ne := [][2]Scmer{
		{NewNil(), List()},
		{NewBool(true), NewFloat(1)},
		{NewSymbol("a"), NewSymbol("b")},
		{List(NewFloat(1)), List(NewFloat(1), NewFloat(2))},
		{NewProc(p), NewMacro(p)},
		{NewProc(&Proc{}), NewProc(&Proc{})},
	}
	for _, c := range ne {
		if Equal(c[0], c[1]) {
			t.Fatalf("%s and %s must differ", String(c[0]), String(c[1]))
		}
	}
}

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{Unbound("foo"), "unbound symbol: foo"},
		{Arity(2, 3), "expected 2 arguments, got 3"},
		{ArityAtLeast(1, 0), "expected at least 1 arguments, got 0"},
		{InvalidForm(NewFloat(5), "symbol"), "invalid form 5: expected symbol"},
		{Mismatch(NewFloat(1), NewBool(true)), "mismatching or invalid operand types: 1 (number) and true (boolean)"},
	}
	for _, c := range cases {
		if c.err.Error() != c.want {
			t.Fatalf("expected %q, got %q", c.want, c.err.Error())
		}
	}
	if errors.Is(Unbound("x"), ErrArity) {
		t.Fatalf("error kinds must not match each other")
	}
	if KindMismatch.String() != "mismatch" {
		t.Fatalf("unexpected kind name %s", KindMismatch)
	}
}
