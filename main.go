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
	klisp: a small tree-walking Lisp with closures and macro special forms
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/launix-de/klisp/scm"
)

var IOEnv scm.Env
var session *scm.Session
var output io.Writer = os.Stdout // target of print, help and stats

// workaround for flags package to allow multiple values
type arrayFlags []string

func (i *arrayFlags) String() string {
	return strings.Join(*i, "; ")
}

func (i *arrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

func fileArg(wd string, v scm.Scmer) (string, error) {
	sym, err := v.AsSymbol()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, string(sym)), nil
}

// setupIO defines the IO functions; the global environment stays free of
// them so it can be used as a sandbox.
func setupIO(global *scm.Env, wd string) {
	IOEnv = scm.Env{Vars: scm.Vars{}, Outer: global}
	scm.DeclareTitle("IO")
	defs := []*scm.Declaration{
		{
			Name: "print",
			Desc: "prints values to stdout separated by spaces (only in IO environment)",
			Params: []scm.DeclarationParameter{
				{Name: "values...", Type: "any", Desc: "values to print"},
			},
			Returns: "nil",
			Macro:   false,
			Fn: func(en *scm.Env) (scm.Scmer, error) {
				parts := []string{}
				for _, v := range en.Vars["values"].Slice() {
					parts = append(parts, scm.String(v))
				}
				fmt.Fprintln(output, strings.Join(parts, " "))
				return scm.NewNil(), nil
			},
		},
		{
			Name: "help",
			Desc: "lists all functions or prints help for a specific function",
			Params: []scm.DeclarationParameter{
				{Name: "topic...", Type: "symbol|func", Desc: "function to print help about"},
			},
			Returns: "nil",
			Macro:   false,
			Fn: func(en *scm.Env) (scm.Scmer, error) {
				topic := en.Vars["topic"].Slice()
				if len(topic) == 0 {
					return scm.NewNil(), scm.Help(output, scm.NewNil())
				}
				return scm.NewNil(), scm.Help(output, topic[0])
			},
		},
		{
			Name: "import",
			Desc: "loads a source file (plain, .xz or .lz4) into the IO environment",
			Params: []scm.DeclarationParameter{
				{Name: "filename", Type: "symbol", Desc: "filename relative to the working directory"},
			},
			Returns: "any",
			Macro:   false,
			Fn: func(en *scm.Env) (scm.Scmer, error) {
				filename, err := fileArg(wd, en.Vars["filename"])
				if err != nil {
					return scm.Scmer{}, err
				}
				return scm.LoadFile(filename, en.Outer)
			},
		},
		{
			Name: "settings",
			Desc: "reads or changes runtime settings: (settings), (settings 'Trace), (settings 'Trace true)",
			Params: []scm.DeclarationParameter{
				{Name: "args...", Type: "any", Desc: "setting name and new value"},
			},
			Returns: "any",
			Macro:   false,
			Fn:      scm.ChangeSettings,
		},
		{
			Name:    "stats",
			Desc:    "prints evaluation counters and heap size",
			Params:  []scm.DeclarationParameter{},
			Returns: "nil",
			Macro:   false,
			Fn: func(en *scm.Env) (scm.Scmer, error) {
				scm.PrintStats(output)
				return scm.NewNil(), nil
			},
		},
	}
	for _, def := range defs {
		scm.RegisterIO(def)
		scm.Declare(&IOEnv, def)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	exitroutine()
	os.Exit(1)
}

func main() {
	fmt.Print(`klisp Copyright (C) 2023-2026   Carl-Philip Hänsch
    This program comes with ABSOLUTELY NO WARRANTY;
    This is free software, and you are welcome to redistribute it
    under certain conditions;

`)

	// parse command line options
	var commands arrayFlags
	flag.Var(&commands, "c", "Execute command (repeatable)")

	wd, _ := os.Getwd() // libraries are relative to working directory... or change with -wd PATH
	flag.StringVar(&wd, "wd", wd, "Working Directory for the library and (import)")
	library := flag.String("lib", "lib/common.lisp", "Bootstrap library (.lisp, .xz or .lz4)")
	watch := flag.Bool("watch", false, "Reload the bootstrap library whenever it changes")
	history := flag.String("history", ".klisp-history.tmp", "History file of the prompt")
	docs := flag.String("docs", "", "Write markdown documentation into this folder and exit")
	stats := flag.Bool("stats", false, "Print evaluation statistics on exit")
	flag.BoolVar(&scm.Settings.Trace, "trace", false, "Write a trace file of all calls")
	flag.BoolVar(&scm.Settings.TracePrint, "traceprint", false, "Print timings of top-level forms")
	flag.BoolVar(&scm.Settings.Backtrace, "backtrace", false, "Annotate errors with the call chain")
	flag.StringVar(&scm.Settings.TraceDir, "tracedir", os.Getenv("KLISP_TRACEDIR"), "Folder for trace files")
	flag.Parse()

	if err := scm.InitSettings(); err != nil {
		fail(err)
	}

	// scripts initialization
	libpath := filepath.Join(wd, *library)
	global, err := scm.Bootstrap(libpath)
	if err != nil {
		fail(err)
	}
	setupIO(global, wd)
	if *docs != "" {
		if err := scm.WriteDocumentation(*docs); err != nil {
			fail(err)
		}
		return
	}
	session = scm.NewSession(&IOEnv)

	// remaining arguments are scripts
	for _, scmfile := range flag.Args() {
		fmt.Println("Loading " + scmfile + " ...")
		if _, err := session.LoadFile(filepath.Join(wd, scmfile)); err != nil {
			fail(err)
		}
	}
	for _, command := range commands {
		fmt.Println("Executing " + command + " ...")
		code, err := scm.Read("command line", command)
		if err != nil {
			fail(err)
		}
		result, err := session.Eval(code)
		if err != nil {
			fail(err)
		}
		fmt.Println(scm.String(result))
	}

	if *watch {
		// library definitions go to the global environment, just like at startup
		w, err := session.Watch(libpath, global, func(err error) {
			fmt.Println("reload of", libpath, "failed:", err)
		})
		if err != nil {
			fail(err)
		}
		defer w.Close()
	}

	// install exit handler
	cancelChan := make(chan os.Signal, 1)
	signal.Notify(cancelChan, syscall.SIGTERM)
	go (func() {
		<-cancelChan
		exitroutine()
		os.Exit(1)
	})()

	fmt.Print(`
    Type (help) to show help

`)

	// REPL shell
	err = session.Repl(scm.ReplConfig{HistoryFile: *history})
	if *stats {
		scm.PrintStats(os.Stdout)
	}
	if err != nil {
		exitroutine()
		if errors.Is(err, scm.ErrUnbound) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	// normal shutdown
	exitroutine()
}

func exitroutine() {
	if scm.ReplInstance != nil {
		// in case it dosen't exit properly
		scm.ReplInstance.Close()
	}
	if session != nil {
		session.Shutdown()
	} else {
		scm.SetTrace(false)
	}
}
