/*
Copyright (C) 2024-2026  Carl-Philip Hänsch

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

	"github.com/google/btree"
)

type Declaration struct {
	Name    string
	Desc    string
	Params  []DeclarationParameter // a single parameter named "x..." binds all arguments as list x
	Returns string                 // any | number | bool | func | list | symbol | nil
	Macro   bool                   // arguments are passed unevaluated
	Fn      func(en *Env) (Scmer, error)
}

type DeclarationParameter struct {
	Name string
	Type string // any | number | bool | func | list | symbol | nil
	Desc string
}

var declaration_titles []string
var declarations = btree.NewG[*Declaration](8, func(a, b *Declaration) bool {
	return a.Name < b.Name
})

func DeclareTitle(title string) {
	declaration_titles = append(declaration_titles, "#"+title)
}

// Register adds a declaration to the registry; NewGlobalEnv installs all
// registered declarations.
func Register(def *Declaration) {
	if _, ok := declarations.ReplaceOrInsert(def); !ok {
		declaration_titles = append(declaration_titles, def.Name)
	}
}

var ioDeclarations = make(map[string]bool)

// RegisterIO documents a declaration that is only bound into IO environments
// by the host program; NewGlobalEnv never installs it.
func RegisterIO(def *Declaration) {
	ioDeclarations[def.Name] = true
	Register(def)
}

// Declare binds the callable of def in env. The env becomes the captured
// environment of the callable.
func Declare(en *Env, def *Declaration) {
	en.Vars[Symbol(def.Name)] = def.Value(en)
}

// Value builds the call or macro value of def.
func (def *Declaration) Value(en *Env) Scmer {
	p := &Proc{Params: def.ParamSpec(), En: en, Fn: def.Fn, Name: def.Name}
	if def.Macro {
		return NewMacro(p)
	}
	return NewProc(p)
}

// ParamSpec converts the declared parameters into a parameter specification.
func (def *Declaration) ParamSpec() Scmer {
	if len(def.Params) == 1 && strings.HasSuffix(def.Params[0].Name, "...") {
		return NewSymbol(strings.TrimSuffix(def.Params[0].Name, "..."))
	}
	syms := make([]Scmer, len(def.Params))
	for i, p := range def.Params {
		syms[i] = NewSymbol(p.Name)
	}
	return NewSlice(syms)
}

// Declarations returns all registered declarations ordered by name.
func Declarations() []*Declaration {
	result := make([]*Declaration, 0, declarations.Len())
	declarations.Ascend(func(def *Declaration) bool {
		result = append(result, def)
		return true
	})
	return result
}

func LookupDeclaration(name string) (*Declaration, bool) {
	return declarations.Get(&Declaration{Name: name})
}

// DeclarationForValue resolves a native callable to its Declaration.
func DeclarationForValue(v Scmer) *Declaration {
	if p := v.Proc(); p != nil && p.Name != "" {
		if def, ok := LookupDeclaration(p.Name); ok {
			return def
		}
	}
	if v.IsSymbol() {
		if def, ok := LookupDeclaration(string(v.data.(Symbol))); ok {
			return def
		}
	}
	return nil
}

func Help(w io.Writer, fn Scmer) error {
	if fn.IsNil() {
		fmt.Fprintln(w, "Available functions:")
		for _, title := range declaration_titles {
			if title[0] == '#' {
				fmt.Fprintln(w, "")
				fmt.Fprintln(w, "-- "+title[1:]+" --")
			} else if def, ok := LookupDeclaration(title); ok {
				fmt.Fprintln(w, "  "+title+": "+strings.Split(def.Desc, "\n")[0])
			}
		}
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "get further information by typing (help 'functionname)")
		return nil
	}
	def := DeclarationForValue(fn)
	if def == nil {
		return fmt.Errorf("function not found: %s", String(fn))
	}
	fmt.Fprintln(w, "Help for: "+def.Name)
	fmt.Fprintln(w, "===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, def.Desc)
	fmt.Fprintln(w, "")
	if def.Macro {
		fmt.Fprintln(w, "Arguments are passed unevaluated.")
		fmt.Fprintln(w, "")
	}
	for _, p := range def.Params {
		fmt.Fprintln(w, " - "+p.Name+" ("+p.Type+"): "+p.Desc)
	}
	fmt.Fprintln(w, "")
	return nil
}

// slugify makes a filesystem-safe, lowercase slug from a chapter title.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		out = "chapter"
	}
	return out
}

// WriteDocumentation generates Markdown docs:
// - index.md with links to chapters
// - one <chapter>.md file per chapter, containing all functions of that chapter
func WriteDocumentation(folder string) error {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("failed to create folder %q: %w", folder, err)
	}

	type Chapter struct {
		Title string
		Slug  string
		Fns   []*Declaration
	}

	var chapters []*Chapter
	var current *Chapter
	for _, t := range declaration_titles {
		if t[0] == '#' {
			current = &Chapter{Title: t[1:], Slug: slugify(t[1:])}
			chapters = append(chapters, current)
			continue
		}
		def, ok := LookupDeclaration(t)
		if !ok {
			continue
		}
		if current == nil {
			current = &Chapter{Title: "General", Slug: "general"}
			chapters = append(chapters, current)
		}
		current.Fns = append(current.Fns, def)
	}

	indexPath := filepath.Join(folder, "index.md")
	index, err := os.Create(indexPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", indexPath, err)
	}
	defer index.Close()
	fmt.Fprint(index, "# Documentation\n\n")
	for _, ch := range chapters {
		if len(ch.Fns) == 0 {
			continue
		}
		fmt.Fprintf(index, "- [%s](%s.md)\n", ch.Title, ch.Slug)
	}

	for _, ch := range chapters {
		if len(ch.Fns) == 0 {
			continue
		}
		fp := filepath.Join(folder, ch.Slug+".md")
		f, err := os.Create(fp)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", fp, err)
		}
		fmt.Fprintf(f, "# %s\n\n", ch.Title)
		for _, def := range ch.Fns {
			fmt.Fprintf(f, "## %s\n\n", def.Name)
			if def.Desc != "" {
				fmt.Fprintf(f, "%s\n\n", def.Desc)
			}
			fmt.Fprintf(f, "**Parameter specification:** `%s`\n\n", String(def.ParamSpec()))
			fmt.Fprint(f, "### Parameters\n\n")
			if len(def.Params) == 0 {
				fmt.Fprint(f, "_This function has no parameters._\n\n")
			} else {
				for _, p := range def.Params {
					fmt.Fprintf(f, "- **%s** (`%s`): %s\n", p.Name, p.Type, p.Desc)
				}
				fmt.Fprintln(f)
			}
			fmt.Fprintf(f, "### Returns\n\n`%s`\n\n", def.Returns)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
