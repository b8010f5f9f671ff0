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
/*
 * A minimal Lisp interpreter: lists are applied either as calls (arguments
 * evaluated at the call site, frame below the captured environment) or as
 * macros (arguments unevaluated, frame below the call site). All special
 * forms are ordinary macro values in the global environment.
 */
package scm

import "fmt"

/*
 Eval / Apply
*/

func Eval(expression Scmer, en *Env) (Scmer, error) {
	switch expression.tag {
	case tagNil, tagBool, tagFloat:
		return expression, nil
	case tagProc, tagMacro:
		return expression, nil
	case tagSymbol:
		return en.Lookup(expression.data.(Symbol))
	case tagSlice:
		list := expression.data.([]Scmer)
		if len(list) == 0 {
			return expression, nil
		}
		procedure, err := Eval(list[0], en)
		if err != nil {
			return Scmer{}, err
		}
		operands := list[1:]
		switch procedure.tag {
		case tagMacro:
			countMacro()
			en2, err := NewEnv(en, procedure.data.(*Proc).Params, operands)
			if err != nil {
				return Scmer{}, err
			}
			return invoke(list[0], procedure.data.(*Proc), en2)
		case tagProc:
			args := make([]Scmer, len(operands))
			for i, x := range operands {
				if args[i], err = Eval(x, en); err != nil {
					return Scmer{}, err
				}
			}
			countCall()
			p := procedure.data.(*Proc)
			en2, err := NewEnv(p.En, p.Params, args)
			if err != nil {
				return Scmer{}, err
			}
			return invoke(list[0], p, en2)
		}
		return Scmer{}, InvalidForm(procedure, "callable")
	}
	return Scmer{}, InvalidForm(expression, "value")
}

// invoke runs the action of a bound procedure, wrapped in a trace span if
// tracing is on.
func invoke(head Scmer, p *Proc, en *Env) (result Scmer, err error) {
	if Trace == nil {
		result, err = p.Fn(en)
	} else {
		Trace.Duration(procName(head, p), "scm", func() {
			result, err = p.Fn(en)
		})
	}
	if err != nil && Settings.Backtrace {
		err = fmt.Errorf("%w\nin %s", err, procName(head, p))
	}
	return
}

func procName(head Scmer, p *Proc) string {
	if p.Name != "" {
		return p.Name
	}
	return String(head)
}

// Apply runs a call with already evaluated arguments.
func Apply(procedure Scmer, args ...Scmer) (Scmer, error) {
	p, err := procedure.AsProc()
	if err != nil {
		return Scmer{}, err
	}
	countCall()
	en, err := NewEnv(p.En, p.Params, args)
	if err != nil {
		return Scmer{}, err
	}
	return invoke(procedure, p, en)
}

// NewGlobalEnv creates a fresh top-level frame with every declared primitive
// and special form. Each call yields an independent environment.
func NewGlobalEnv() *Env {
	en := &Env{Vars: make(Vars)}
	for _, def := range Declarations() {
		if !ioDeclarations[def.Name] {
			Declare(en, def)
		}
	}
	return en
}

func init() {
	DeclareTitle("Special forms")
	Register(&Declaration{
		"quote", "returns its argument without evaluating it",
		[]DeclarationParameter{
			DeclarationParameter{"expr", "any", "form to quote"},
		}, "any", true,
		func(en *Env) (Scmer, error) {
			return en.Vars["expr"], nil
		},
	})
	Register(&Declaration{
		"lambda", "returns a call (closure) over the current scope",
		[]DeclarationParameter{
			DeclarationParameter{"args", "symbol|list", "if you provide a parameter list, you will have named parameters. If you provide a single symbol, the list of arguments will be provided in that symbol"},
			DeclarationParameter{"expr", "any", "body that is evaluated when the closure is called"},
		}, "func", true,
		func(en *Env) (Scmer, error) {
			body := en.Vars["expr"]
			// the binding frame of lambda itself becomes the captured scope
			return NewProc(&Proc{
				Params: en.Vars["args"],
				En:     en,
				Body:   body,
				Fn: func(frame *Env) (Scmer, error) {
					return Eval(body, frame)
				},
			}), nil
		},
	})
	Register(&Declaration{
		"define", "evaluates expr and binds it to a new variable in the current scope",
		[]DeclarationParameter{
			DeclarationParameter{"name", "symbol", "variable to define"},
			DeclarationParameter{"expr", "any", "value of the variable"},
		}, "nil", true,
		func(en *Env) (Scmer, error) {
			name, err := en.Vars["name"].AsSymbol()
			if err != nil {
				return Scmer{}, err
			}
			val, err := Eval(en.Vars["expr"], en.Outer)
			if err != nil {
				return Scmer{}, err
			}
			en.Outer.Add(name, val)
			return NewNil(), nil
		},
	})
	Register(&Declaration{
		"if", "evaluates cond and then exactly one of the branches",
		[]DeclarationParameter{
			DeclarationParameter{"cond", "bool", "condition to evaluate"},
			DeclarationParameter{"conseq", "any", "code to evaluate if condition is true"},
			DeclarationParameter{"alt", "any", "code to evaluate if condition is false"},
		}, "any", true,
		func(en *Env) (Scmer, error) {
			cond, err := Eval(en.Vars["cond"], en.Outer)
			if err != nil {
				return Scmer{}, err
			}
			ok, err := IsTrue(cond)
			if err != nil {
				return Scmer{}, err
			}
			if ok {
				return Eval(en.Vars["conseq"], en.Outer)
			}
			return Eval(en.Vars["alt"], en.Outer)
		},
	})
	Register(&Declaration{
		"set!", "assigns a new value to an existing variable",
		[]DeclarationParameter{
			DeclarationParameter{"name", "symbol", "variable to change; must already be defined"},
			DeclarationParameter{"expr", "any", "new value"},
		}, "nil", true,
		func(en *Env) (Scmer, error) {
			name, err := en.Vars["name"].AsSymbol()
			if err != nil {
				return Scmer{}, err
			}
			val, err := Eval(en.Vars["expr"], en.Outer)
			if err != nil {
				return Scmer{}, err
			}
			if err := en.Outer.Set(name, val); err != nil {
				return Scmer{}, err
			}
			return NewNil(), nil
		},
	})
	Register(&Declaration{
		"begin", "evaluates all expressions in order and returns the result of the last one",
		[]DeclarationParameter{
			DeclarationParameter{"args...", "any", "expressions to evaluate"},
		}, "any", true,
		func(en *Env) (Scmer, error) {
			result := NewNil()
			for _, form := range en.Vars["args"].Slice() {
				var err error
				if result, err = Eval(form, en.Outer); err != nil {
					return Scmer{}, err
				}
			}
			return result, nil
		},
	})

	DeclareTitle("Evaluation")
	Register(&Declaration{
		"eval", "evaluates a form in the global environment",
		[]DeclarationParameter{
			DeclarationParameter{"form", "any", "code to evaluate"},
		}, "any", false,
		func(en *Env) (Scmer, error) {
			return Eval(en.Vars["form"], en.Outer)
		},
	})
	Register(&Declaration{
		"apply", "runs the function with a list of arguments",
		[]DeclarationParameter{
			DeclarationParameter{"f", "func", "function to execute"},
			DeclarationParameter{"args", "list", "list of arguments to apply"},
		}, "any", false,
		func(en *Env) (Scmer, error) {
			args, err := en.Vars["args"].AsList()
			if err != nil {
				return Scmer{}, err
			}
			return Apply(en.Vars["f"], args...)
		},
	})

	init_alu()
	init_list()
}
