/*
Copyright (C) 2023-2026  Carl-Philip Hänsch
Copyright (C) 2013  Pieter Kelchtermans (originally licensed unter WTFPL 2.0)

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
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
)

const newprompt = "\033[32m>\033[0m "
const resultprompt = "\033[31m=\033[0m "

// Session owns the persistent global environment of an interactive loop.
// The mutex serializes evaluations from the prompt and from file reloads.
type Session struct {
	En *Env
	mu sync.Mutex
}

func NewSession(en *Env) *Session {
	return &Session{En: en}
}

// EvalLine parses one complete line and evaluates its forms in order. The
// value of the last form is returned.
func (s *Session) EvalLine(line string) (Scmer, error) {
	forms, err := ReadAll("user prompt", line)
	if err != nil {
		return Scmer{}, err
	}
	result := NewNil()
	for _, code := range forms {
		if result, err = s.Eval(code); err != nil {
			return Scmer{}, err
		}
	}
	return result, nil
}

func (s *Session) LoadFile(filename string) (Scmer, error) {
	return s.LoadFileInto(filename, s.En)
}

func (s *Session) LoadFileInto(filename string, en *Env) (Scmer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if Trace != nil {
		Trace.Event("load "+filename, "load", "i")
	}
	return LoadFile(filename, en)
}

// Eval evaluates one form in the session environment.
func (s *Session) Eval(form Scmer) (Scmer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Eval(form, s.En)
}

// Shutdown closes the trace file once no evaluation is running.
func (s *Session) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	SetTrace(false)
}

type ReplConfig struct {
	HistoryFile string
	Stdin       io.ReadCloser // nil = os.Stdin
	Stdout      io.Writer     // nil = os.Stdout
}

var ReplInstance *readline.Instance

// Repl runs the interactive loop until end of input. Errors are reported and
// the loop continues, except for unbound symbols which end the loop with the
// error.
func (s *Session) Repl(cfg ReplConfig) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            newprompt,
		HistoryFile:       cfg.HistoryFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		Stdin:             cfg.Stdin,
		Stdout:            cfg.Stdout,
	})
	if err != nil {
		return err
	}
	ReplInstance = l
	defer func() {
		l.Close()
		ReplInstance = nil
	}()
	l.CaptureExitSignal()
	out := l.Stdout()

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		result, err := s.EvalLine(line)
		if err != nil {
			fmt.Fprintln(out, "error:", err)
			if errors.Is(err, ErrUnbound) {
				return err
			}
			continue
		}
		fmt.Fprint(out, resultprompt)
		fmt.Fprintln(out, String(result))
	}
	return nil
}
