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

func listArg(en *Env, name Symbol) ([]Scmer, error) {
	return en.Vars[name].AsList()
}

func init_list() {
	DeclareTitle("Lists")

	Register(&Declaration{
		"empty?", "tells if the list has no elements",
		[]DeclarationParameter{
			DeclarationParameter{"a", "list", "list to examine"},
		}, "bool", false,
		func(en *Env) (Scmer, error) {
			empty, err := Empty(en.Vars["a"])
			if err != nil {
				return Scmer{}, err
			}
			return NewBool(empty), nil
		},
	})
	Register(&Declaration{
		"length", "returns the number of elements of a list",
		[]DeclarationParameter{
			DeclarationParameter{"a", "list", "list to examine"},
		}, "number", false,
		func(en *Env) (Scmer, error) {
			n, err := Length(en.Vars["a"])
			if err != nil {
				return Scmer{}, err
			}
			return NewFloat(float64(n)), nil
		},
	})
	Register(&Declaration{
		"first", "returns the first element of a non-empty list",
		[]DeclarationParameter{
			DeclarationParameter{"l", "list", "non-empty list"},
		}, "any", false,
		func(en *Env) (Scmer, error) {
			l, err := listArg(en, "l")
			if err != nil {
				return Scmer{}, err
			}
			if len(l) == 0 {
				return Scmer{}, InvalidForm(en.Vars["l"], "non-empty list")
			}
			return l[0], nil
		},
	})
	Register(&Declaration{
		"rest", "returns the list without its first element",
		[]DeclarationParameter{
			DeclarationParameter{"l", "list", "non-empty list"},
		}, "list", false,
		func(en *Env) (Scmer, error) {
			l, err := listArg(en, "l")
			if err != nil {
				return Scmer{}, err
			}
			if len(l) == 0 {
				return Scmer{}, InvalidForm(en.Vars["l"], "non-empty list")
			}
			return NewSlice(l[1:]), nil
		},
	})
	Register(&Declaration{
		"cons", "returns a new list with x prepended to l",
		[]DeclarationParameter{
			DeclarationParameter{"x", "any", "new head"},
			DeclarationParameter{"l", "list", "tail"},
		}, "list", false,
		func(en *Env) (Scmer, error) {
			l, err := listArg(en, "l")
			if err != nil {
				return Scmer{}, err
			}
			result := make([]Scmer, 0, len(l)+1)
			result = append(result, en.Vars["x"])
			result = append(result, l...)
			return NewSlice(result), nil
		},
	})

	DeclareTitle("Types")
	predicates := []struct {
		name, desc string
		test       func(v Scmer) bool
	}{
		{"nil?", "tells if the value is nil", Scmer.IsNil},
		{"boolean?", "tells if the value is a boolean", Scmer.IsBool},
		{"number?", "tells if the value is a number", Scmer.IsFloat},
		{"symbol?", "tells if the value is a symbol", Scmer.IsSymbol},
		{"list?", "tells if the value is a list", Scmer.IsSlice},
		{"procedure?", "tells if the value is a call or a macro", Scmer.IsCallable},
	}
	for _, pred := range predicates {
		test := pred.test
		Register(&Declaration{
			pred.name, pred.desc,
			[]DeclarationParameter{
				DeclarationParameter{"value", "any", "value to examine"},
			}, "bool", false,
			func(en *Env) (Scmer, error) {
				return NewBool(test(en.Vars["value"])), nil
			},
		})
	}
}
