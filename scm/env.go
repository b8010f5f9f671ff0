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

/*
 Environments
*/

type Vars map[Symbol]Scmer

// Env is one frame of the scope chain. Frames only point to their parent, so
// a closure keeps exactly its defining chain alive and no cycles arise.
type Env struct {
	Vars  Vars
	Outer *Env
}

// NewEnv builds an invocation frame below parent and binds the parameter
// specification against args: a single symbol receives all arguments as one
// list, a list of symbols binds positionally and demands an exact count.
func NewEnv(parent *Env, params Scmer, args []Scmer) (*Env, error) {
	en := &Env{Vars: make(Vars), Outer: parent}
	countFrame()
	switch params.tag {
	case tagSymbol:
		en.Vars[params.data.(Symbol)] = NewSlice(args)
	case tagSlice:
		syms := params.data.([]Scmer)
		if len(syms) != len(args) {
			return nil, Arity(len(syms), len(args))
		}
		for i, p := range syms {
			sym, err := p.AsSymbol()
			if err != nil {
				return nil, err
			}
			en.Vars[sym] = args[i]
		}
	default:
		return nil, InvalidForm(params, "symbol")
	}
	return en, nil
}

// Find returns the innermost frame that owns the slot s; writes through its
// Vars mutate the existing binding. nil if s is unbound.
func (e *Env) Find(s Symbol) *Env {
	for cur := e; cur != nil; cur = cur.Outer {
		if _, ok := cur.Vars[s]; ok {
			return cur
		}
	}
	return nil
}

func (e *Env) Lookup(s Symbol) (Scmer, error) {
	if en := e.Find(s); en != nil {
		return en.Vars[s], nil
	}
	return Scmer{}, Unbound(s)
}

// Set overwrites the existing binding of s wherever it lives in the chain.
func (e *Env) Set(s Symbol, v Scmer) error {
	en := e.Find(s)
	if en == nil {
		return Unbound(s)
	}
	en.Vars[s] = v
	return nil
}

// Add binds s in this frame only.
func (e *Env) Add(s Symbol, v Scmer) {
	e.Vars[s] = v
}

func (e *Env) Parent() *Env {
	return e.Outer
}
