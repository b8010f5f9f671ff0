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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDeclarationsSorted(t *testing.T) {
	defs := Declarations()
	if len(defs) == 0 {
		t.Fatalf("no declarations registered")
	}
	for i := 1; i < len(defs); i++ {
		if defs[i-1].Name >= defs[i].Name {
			t.Fatalf("declarations out of order: %s before %s", defs[i-1].Name, defs[i].Name)
		}
	}
	for _, name := range []string{"quote", "lambda", "define", "if", "set!", "begin", "+", "-", "*", "/", "and", "or",
		"==", "!=", "<", ">", "<=", ">=", "not", "empty?", "length"} {
		if _, ok := LookupDeclaration(name); !ok {
			t.Fatalf("missing declaration %s", name)
		}
	}
}

func TestParamSpec(t *testing.T) {
	plus, _ := LookupDeclaration("+")
	if !Equal(plus.ParamSpec(), NewSymbol("args")) {
		t.Fatalf("+ must bind its arguments as rest list, got %s", String(plus.ParamSpec()))
	}
	eq, _ := LookupDeclaration("==")
	if String(eq.ParamSpec()) != "(a b)" {
		t.Fatalf("== must take (a b), got %s", String(eq.ParamSpec()))
	}
	iff, _ := LookupDeclaration("if")
	if String(iff.ParamSpec()) != "(cond conseq alt)" || !iff.Macro {
		t.Fatalf("if must be a macro over (cond conseq alt)")
	}
}

func TestDeclarationForValue(t *testing.T) {
	en := NewGlobalEnv()
	plus, _ := en.Lookup("+")
	if def := DeclarationForValue(plus); def == nil || def.Name != "+" {
		t.Fatalf("expected declaration of +")
	}
	if def := DeclarationForValue(NewSymbol("begin")); def == nil || def.Name != "begin" {
		t.Fatalf("expected declaration of begin")
	}
	lambda := evalString(t, en, "(lambda (x) x)")
	if DeclarationForValue(lambda) != nil {
		t.Fatalf("lambdas have no declaration")
	}
}

func TestRegisterIO(t *testing.T) {
	RegisterIO(&Declaration{
		"test-io", "only for IO environments",
		[]DeclarationParameter{}, "nil", false,
		func(en *Env) (Scmer, error) { return NewNil(), nil },
	})
	if _, ok := LookupDeclaration("test-io"); !ok {
		t.Fatalf("IO declarations must be documented")
	}
	if _, err := NewGlobalEnv().Lookup("test-io"); err == nil {
		t.Fatalf("IO declarations must not be part of the global environment")
	}
	io := &Env{Vars: Vars{}, Outer: NewGlobalEnv()}
	def, _ := LookupDeclaration("test-io")
	Declare(io, def)
	expectValue(t, io, "(test-io)", NewNil())
}

func TestHelp(t *testing.T) {
	var b bytes.Buffer
	if err := Help(&b, NewNil()); err != nil {
		t.Fatalf("help: %v", err)
	}
	if !strings.Contains(b.String(), "-- Special forms --") || !strings.Contains(b.String(), "  set!: assigns") {
		t.Fatalf("overview is incomplete:\n%s", b.String())
	}

	b.Reset()
	if err := Help(&b, NewSymbol("if")); err != nil {
		t.Fatalf("help if: %v", err)
	}
	for _, want := range []string{"Help for: if", "Arguments are passed unevaluated.", " - cond (bool)"} {
		if !strings.Contains(b.String(), want) {
			t.Fatalf("help for if lacks %q:\n%s", want, b.String())
		}
	}

	if err := Help(&b, NewSymbol("no-such-function")); err == nil {
		t.Fatalf("unknown topics must fail")
	}
}

func TestWriteDocumentation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")
	if err := WriteDocumentation(dir); err != nil {
		t.Fatalf("docs: %v", err)
	}
	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if !strings.Contains(string(index), "[Special forms](special-forms.md)") {
		t.Fatalf("index lacks special forms:\n%s", index)
	}
	chapter, err := os.ReadFile(filepath.Join(dir, "special-forms.md"))
	if err != nil {
		t.Fatalf("chapter: %v", err)
	}
	if !strings.Contains(string(chapter), "## lambda") || !strings.Contains(string(chapter), "**Parameter specification:** `(args expr)`") {
		t.Fatalf("chapter lacks lambda:\n%s", chapter)
	}
	if slugify("Arithmetic / Logic") != "arithmetic--logic" || slugify("???") != "chapter" {
		t.Fatalf("unexpected slugs")
	}
}
