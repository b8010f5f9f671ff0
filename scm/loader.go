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
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// EvalAll reads and evaluates the forms of r one at a time and returns the
// value of the last one. Evaluation errors are prefixed with the position of
// the failing form.
func EvalAll(source string, r io.Reader, en *Env) (Scmer, error) {
	rd := NewReader(source, r)
	result := NewNil()
	for {
		code, pos, err := rd.Next()
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return Scmer{}, err
		}
		var begin time.Time
		if TracePrint {
			begin = time.Now()
		}
		if result, err = Eval(code, en); err != nil {
			return Scmer{}, fmt.Errorf("%s: %w", pos, err)
		}
		if TracePrint {
			fmt.Println("trace", time.Since(begin).String(), pos.String())
		}
	}
}

type decompressedFile struct {
	io.Reader
	file *os.File
}

func (d decompressedFile) Close() error {
	return d.file.Close()
}

// OpenSource opens a source file; .xz and .lz4 files are decompressed on the
// fly.
func OpenSource(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xz":
		r, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		return decompressedFile{r, f}, nil
	case ".lz4":
		return decompressedFile{lz4.NewReader(f), f}, nil
	}
	return f, nil
}

func LoadFile(filename string, en *Env) (Scmer, error) {
	r, err := OpenSource(filename)
	if err != nil {
		return Scmer{}, err
	}
	defer r.Close()
	return EvalAll(filename, r, en)
}

// Bootstrap creates a global environment and loads the library file into it.
func Bootstrap(library string) (*Env, error) {
	en := NewGlobalEnv()
	if _, err := LoadFile(library, en); err != nil {
		return nil, err
	}
	return en, nil
}
