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
package main

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/launix-de/klisp/scm"
)

func TestIOEnvironment(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "x.lisp"), []byte("(define imported (+ 40 2))"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	global := scm.NewGlobalEnv()
	setupIO(global, dir)
	var buf bytes.Buffer
	output = &buf
	defer func() { output = os.Stdout }()
	s := scm.NewSession(&IOEnv)

	if _, err := s.EvalLine("(import 'x.lisp)"); err != nil {
		t.Fatalf("import: %v", err)
	}
	if v, err := IOEnv.Lookup("imported"); err != nil || !scm.Equal(v, scm.NewFloat(42)) {
		t.Fatalf("imported definitions must land in the IO environment, got %s (%v)", scm.String(v), err)
	}
	if _, err := s.EvalLine("(import 'missing.lisp)"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected missing file, got %v", err)
	}
	if _, err := s.EvalLine("(import 5)"); !errors.Is(err, scm.ErrInvalidForm) {
		t.Fatalf("file names are symbols, got %v", err)
	}

	if _, err := s.EvalLine("(print 1 'a true (+ imported 1))"); err != nil {
		t.Fatalf("print: %v", err)
	}
	if buf.String() != "1 a true 43\n" {
		t.Fatalf("unexpected print output %q", buf.String())
	}

	buf.Reset()
	if _, err := s.EvalLine("(help 'print)"); err != nil || !strings.Contains(buf.String(), "Help for: print") {
		t.Fatalf("help print: %v\n%s", err, buf.String())
	}
	buf.Reset()
	if _, err := s.EvalLine("(help)"); err != nil || !strings.Contains(buf.String(), "-- IO --") {
		t.Fatalf("help overview: %v\n%s", err, buf.String())
	}

	if v, err := s.EvalLine("(settings 'Backtrace)"); err != nil || !scm.Equal(v, scm.NewBool(false)) {
		t.Fatalf("settings: %s (%v)", scm.String(v), err)
	}

	buf.Reset()
	if _, err := s.EvalLine("(stats)"); err != nil || !strings.Contains(buf.String(), "calls") {
		t.Fatalf("stats: %v\n%s", err, buf.String())
	}

	for _, name := range []scm.Symbol{"print", "help", "import", "settings", "stats"} {
		if _, err := global.Lookup(name); !errors.Is(err, scm.ErrUnbound) {
			t.Fatalf("%s must not be visible in the global environment", name)
		}
	}
}
