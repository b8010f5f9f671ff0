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

type SettingsT struct {
	Backtrace  bool   // annotate errors with the chain of invoked procedures
	Trace      bool   // write a trace file of all calls
	TracePrint bool   // print timings of top-level forms
	TraceDir   string // folder for trace files
}

var Settings SettingsT = SettingsT{false, false, false, ""}

// call this after you filled Settings
func InitSettings() error {
	TracePrint = Settings.TracePrint
	return SetTrace(Settings.Trace)
}

var settingNames = []string{"Backtrace", "Trace", "TracePrint"}

func getSetting(name string) (Scmer, bool) {
	switch name {
	case "Backtrace":
		return NewBool(Settings.Backtrace), true
	case "Trace":
		return NewBool(Settings.Trace), true
	case "TracePrint":
		return NewBool(Settings.TracePrint), true
	}
	return Scmer{}, false
}

// ChangeSettings implements (settings), (settings 'Name) and
// (settings 'Name value).
func ChangeSettings(en *Env) (Scmer, error) {
	a := en.Vars["args"].Slice()
	if len(a) == 0 {
		result := make([]Scmer, 0, 2*len(settingNames))
		for _, name := range settingNames {
			v, _ := getSetting(name)
			result = append(result, NewSymbol(name), v)
		}
		return NewSlice(result), nil
	}
	if len(a) > 2 {
		return Scmer{}, Arity(2, len(a))
	}
	name, err := a[0].AsSymbol()
	if err != nil {
		return Scmer{}, err
	}
	current, ok := getSetting(string(name))
	if !ok {
		return Scmer{}, InvalidForm(a[0], "setting name")
	}
	if len(a) == 1 {
		return current, nil
	}
	on, err := a[1].AsBool()
	if err != nil {
		return Scmer{}, err
	}
	switch name {
	case "Backtrace":
		Settings.Backtrace = on
	case "Trace":
		Settings.Trace = on
		if err := SetTrace(on); err != nil {
			return Scmer{}, err
		}
	case "TracePrint":
		Settings.TracePrint = on
		TracePrint = on
	}
	return NewBool(true), nil
}
