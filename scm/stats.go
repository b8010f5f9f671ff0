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
	"fmt"
	"io"
	"runtime"
	"sync/atomic"

	units "github.com/docker/go-units"
)

// evaluation counters; atomic because the bootstrap watcher may evaluate
// from its own goroutine (serialized by the session mutex, but read freely)
var (
	statCalls  uint64
	statMacros uint64
	statFrames uint64
)

func countCall()  { atomic.AddUint64(&statCalls, 1) }
func countMacro() { atomic.AddUint64(&statMacros, 1) }
func countFrame() { atomic.AddUint64(&statFrames, 1) }

type StatsSnapshot struct {
	Calls     uint64 // call invocations
	Macros    uint64 // macro invocations
	Frames    uint64 // environments created
	HeapAlloc uint64 // bytes
}

func Stats() StatsSnapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return StatsSnapshot{
		Calls:     atomic.LoadUint64(&statCalls),
		Macros:    atomic.LoadUint64(&statMacros),
		Frames:    atomic.LoadUint64(&statFrames),
		HeapAlloc: ms.HeapAlloc,
	}
}

func (s StatsSnapshot) String() string {
	return fmt.Sprintf("%d calls, %d macro invocations, %d frames, heap %s",
		s.Calls, s.Macros, s.Frames, units.HumanSize(float64(s.HeapAlloc)))
}

func PrintStats(w io.Writer) {
	fmt.Fprintln(w, Stats().String())
}
