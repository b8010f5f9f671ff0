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

// foldNumbers left-folds the rest argument "args" with op, starting with the
// first argument as accumulator.
func foldNumbers(op func(a, b float64) float64) func(en *Env) (Scmer, error) {
	return func(en *Env) (Scmer, error) {
		args := en.Vars["args"].Slice()
		if len(args) == 0 {
			return Scmer{}, ArityAtLeast(1, 0)
		}
		acc, err := args[0].AsFloat()
		if err != nil {
			return Scmer{}, err
		}
		for _, x := range args[1:] {
			v, err := x.AsFloat()
			if err != nil {
				return Scmer{}, err
			}
			acc = op(acc, v)
		}
		return NewFloat(acc), nil
	}
}

// foldBools is foldNumbers for booleans. All arguments are evaluated; there
// is no short circuit since and/or are ordinary calls.
func foldBools(op func(a, b bool) bool) func(en *Env) (Scmer, error) {
	return func(en *Env) (Scmer, error) {
		args := en.Vars["args"].Slice()
		if len(args) == 0 {
			return Scmer{}, ArityAtLeast(1, 0)
		}
		acc, err := args[0].AsBool()
		if err != nil {
			return Scmer{}, err
		}
		for _, x := range args[1:] {
			v, err := x.AsBool()
			if err != nil {
				return Scmer{}, err
			}
			acc = op(acc, v)
		}
		return NewBool(acc), nil
	}
}

// binaryOperation applies op only when both operands are literals of the same
// type. Booleans are stored as 0/1, so false < true.
func binaryOperation(a, b Scmer, op func(x, y float64) bool) (Scmer, error) {
	if a.tag != b.tag || (a.tag != tagFloat && a.tag != tagBool) {
		return Scmer{}, Mismatch(a, b)
	}
	return NewBool(op(a.num, b.num)), nil
}

func init_alu() {
	DeclareTitle("Arithmetic / Logic")

	variadic := []struct {
		name, desc string
		num        func(a, b float64) float64
		boolean    func(a, b bool) bool
	}{
		{"+", "adds all numbers", func(a, b float64) float64 { return a + b }, nil},
		{"-", "subtracts the following numbers from the first one", func(a, b float64) float64 { return a - b }, nil},
		{"*", "multiplies all numbers", func(a, b float64) float64 { return a * b }, nil},
		{"/", "divides the first number by the following ones", func(a, b float64) float64 { return a / b }, nil},
		{"and", "returns true if all booleans are true", nil, func(a, b bool) bool { return a && b }},
		{"or", "returns true if at least one boolean is true", nil, func(a, b bool) bool { return a || b }},
	}
	for _, op := range variadic {
		if op.num != nil {
			Register(&Declaration{
				op.name, op.desc,
				[]DeclarationParameter{
					DeclarationParameter{"args...", "number", "at least one number"},
				}, "number", false,
				foldNumbers(op.num),
			})
		} else {
			Register(&Declaration{
				op.name, op.desc,
				[]DeclarationParameter{
					DeclarationParameter{"args...", "bool", "at least one boolean"},
				}, "bool", false,
				foldBools(op.boolean),
			})
		}
	}

	comparisons := []struct {
		name, desc string
		op         func(x, y float64) bool
	}{
		{"==", "compares two values of the same type for equality", func(x, y float64) bool { return x == y }},
		{"!=", "compares two values of the same type for inequality", func(x, y float64) bool { return x != y }},
		{"<", "checks if a is less than b", func(x, y float64) bool { return x < y }},
		{">", "checks if a is greater than b", func(x, y float64) bool { return x > y }},
		{"<=", "checks if a is less than or equal to b", func(x, y float64) bool { return x <= y }},
		{">=", "checks if a is greater than or equal to b", func(x, y float64) bool { return x >= y }},
	}
	for _, cmp := range comparisons {
		op := cmp.op
		Register(&Declaration{
			cmp.name, cmp.desc,
			[]DeclarationParameter{
				DeclarationParameter{"a", "number|bool", "left operand"},
				DeclarationParameter{"b", "number|bool", "right operand of the same type"},
			}, "bool", false,
			func(en *Env) (Scmer, error) {
				return binaryOperation(en.Vars["a"], en.Vars["b"], op)
			},
		})
	}

	Register(&Declaration{
		"not", "negates the boolean value",
		[]DeclarationParameter{
			DeclarationParameter{"a", "bool", "value"},
		}, "bool", false,
		func(en *Env) (Scmer, error) {
			b, err := en.Vars["a"].AsBool()
			if err != nil {
				return Scmer{}, err
			}
			return NewBool(!b), nil
		},
	})
}
