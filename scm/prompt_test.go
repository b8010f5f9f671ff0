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
	"sync"
	"testing"
)

func TestSessionEvalLine(t *testing.T) {
	s := NewSession(NewGlobalEnv())
	v, err := s.EvalLine("(define x 20) (+ x 22)")
	if err != nil || !Equal(v, NewFloat(42)) {
		t.Fatalf("expected 42, got %s (%v)", String(v), err)
	}
	v, err = s.EvalLine("x")
	if err != nil || !Equal(v, NewFloat(20)) {
		t.Fatalf("bindings must persist between lines, got %s (%v)", String(v), err)
	}
	if _, err := s.EvalLine("(+ x"); err == nil {
		t.Fatalf("incomplete lines must fail")
	}
	if _, err := s.EvalLine("(undefined)"); !errors.Is(err, ErrUnbound) {
		t.Fatalf("expected unbound, got %v", err)
	}
	if _, err := s.EvalLine("((lambda (a) a))"); !errors.Is(err, ErrArity) {
		t.Fatalf("expected arity error, got %v", err)
	}
	if v, err := s.EvalLine("(+ x 1)"); err != nil || !Equal(v, NewFloat(21)) {
		t.Fatalf("session must survive errors, got %s (%v)", String(v), err)
	}
}

func TestSessionSerializes(t *testing.T) {
	s := NewSession(NewGlobalEnv())
	if _, err := s.EvalLine("(define n 0)"); err != nil {
		t.Fatalf("define: %v", err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := s.EvalLine("(set! n (+ n 1))"); err != nil {
					t.Errorf("set!: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
	if v, _ := s.EvalLine("n"); !Equal(v, NewFloat(400)) {
		t.Fatalf("expected 400, got %s", String(v))
	}
}

func TestSessionEval(t *testing.T) {
	s := NewSession(NewGlobalEnv())
	form, err := Read("command line", "(define greeting 'hello)")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if _, err := s.Eval(form); err != nil {
		t.Fatalf("eval: %v", err)
	}
	if v, err := s.EvalLine("greeting"); err != nil || !Equal(v, NewSymbol("hello")) {
		t.Fatalf("expected hello, got %s (%v)", String(v), err)
	}
}
