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

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

type SourceInfo struct {
	Source string
	Line   int
	Col    int
}

func (source_info SourceInfo) String() string {
	return fmt.Sprintf("%s:%d:%d", source_info.Source, source_info.Line, source_info.Col)
}

type ParseError struct {
	Pos SourceInfo
	Msg string
}

func (e *ParseError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

type tokenKind uint8

const (
	tokOpen tokenKind = iota
	tokClose
	tokQuote
	tokAtom
)

type token struct {
	kind  tokenKind
	pos   SourceInfo
	value Scmer // tokAtom only
}

// Reader yields the top-level forms of a source one by one.
type Reader struct {
	source string
	r      io.Reader
	tokens []token
	loaded bool
}

func NewReader(source string, r io.Reader) *Reader {
	return &Reader{source: source, r: r}
}

// Next returns the next top-level form and its position, or io.EOF once the
// input is exhausted.
func (rd *Reader) Next() (Scmer, SourceInfo, error) {
	if !rd.loaded {
		rd.loaded = true
		b, err := io.ReadAll(rd.r)
		if err != nil {
			return Scmer{}, SourceInfo{Source: rd.source}, err
		}
		if rd.tokens, err = tokenize(rd.source, string(b)); err != nil {
			return Scmer{}, SourceInfo{Source: rd.source}, err
		}
	}
	if len(rd.tokens) == 0 {
		return Scmer{}, SourceInfo{Source: rd.source}, io.EOF
	}
	pos := rd.tokens[0].pos
	form, err := readFrom(&rd.tokens)
	if err != nil {
		rd.tokens = nil // no resumption after a malformed form
	}
	return form, pos, err
}

// ReadAll parses every form of s.
func ReadAll(source, s string) ([]Scmer, error) {
	rd := NewReader(source, strings.NewReader(s))
	var result []Scmer
	for {
		form, _, err := rd.Next()
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return nil, err
		}
		result = append(result, form)
	}
}

// Read parses exactly one form.
func Read(source, s string) (Scmer, error) {
	tokens, err := tokenize(source, s)
	if err != nil {
		return Scmer{}, err
	}
	if len(tokens) == 0 {
		return Scmer{}, io.EOF
	}
	form, err := readFrom(&tokens)
	if err != nil {
		return Scmer{}, err
	}
	if len(tokens) > 0 {
		return Scmer{}, &ParseError{tokens[0].pos, "unexpected input after form"}
	}
	return form, nil
}

// Syntactic Analysis
func readFrom(tokens *[]token) (Scmer, error) {
	// pop first element from tokens
	tok := (*tokens)[0]
	*tokens = (*tokens)[1:]
	switch tok.kind {
	case tokOpen:
		L := make([]Scmer, 0)
		for {
			if len(*tokens) == 0 {
				return Scmer{}, &ParseError{tok.pos, "expecting matching )"}
			}
			if (*tokens)[0].kind == tokClose {
				*tokens = (*tokens)[1:]
				return NewSlice(L), nil
			}
			x, err := readFrom(tokens)
			if err != nil {
				return Scmer{}, err
			}
			L = append(L, x)
		}
	case tokClose:
		return Scmer{}, &ParseError{tok.pos, "unexpected )"}
	case tokQuote:
		if len(*tokens) == 0 {
			return Scmer{}, &ParseError{tok.pos, "expecting form after '"}
		}
		quoted, err := readFrom(tokens)
		if err != nil {
			return Scmer{}, err
		}
		return List(NewSymbol("quote"), quoted), nil
	}
	return tok.value, nil
}

func isDelimiter(ch rune) bool {
	return unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '\'' || ch == '"' || ch == ';'
}

// looksNumeric keeps words like "inf" or "nan" symbols although ParseFloat
// would accept them.
func looksNumeric(s string) bool {
	if s[0] >= '0' && s[0] <= '9' {
		return true
	}
	if len(s) > 1 && (s[0] == '-' || s[0] == '+' || s[0] == '.') {
		return s[1] >= '0' && s[1] <= '9' || s[1] == '.' && len(s) > 2 && s[2] >= '0' && s[2] <= '9'
	}
	return false
}

func atom(s string) Scmer {
	switch s {
	case "true":
		return NewBool(true)
	case "false":
		return NewBool(false)
	case "nil":
		return NewNil()
	}
	if looksNumeric(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return NewFloat(f)
		}
	}
	return NewSymbol(norm.NFC.String(s))
}

// Lexical Analysis
func tokenize(source, s string) ([]token, error) {
	/* tokens are parentheses, the quote character and atoms (numbers,
	booleans, nil, symbols). Comments are ; until end of line and C-style
	block comments. */
	line, col := 1, 1
	advance := func(text string) {
		for _, ch := range text {
			if ch == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
	}

	result := make([]token, 0)
	i := 0
	for i < len(s) {
		ch, size := utf8.DecodeRuneInString(s[i:])
		pos := SourceInfo{source, line, col}
		switch {
		case unicode.IsSpace(ch):
			advance(s[i : i+size])
			i += size
		case ch == ';':
			end := strings.IndexByte(s[i:], '\n')
			if end < 0 {
				end = len(s) - i
			}
			advance(s[i : i+end])
			i += end
		case strings.HasPrefix(s[i:], "/*"):
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				return nil, &ParseError{pos, "unterminated comment"}
			}
			advance(s[i : i+2+end+2])
			i += 2 + end + 2
		case ch == '(':
			result = append(result, token{kind: tokOpen, pos: pos})
			advance("(")
			i += size
		case ch == ')':
			result = append(result, token{kind: tokClose, pos: pos})
			advance(")")
			i += size
		case ch == '\'':
			result = append(result, token{kind: tokQuote, pos: pos})
			advance("'")
			i += size
		case ch == '"':
			return nil, &ParseError{pos, "strings are not supported"}
		default:
			j := i
			for j < len(s) {
				c, n := utf8.DecodeRuneInString(s[j:])
				if isDelimiter(c) {
					break
				}
				j += n
			}
			result = append(result, token{kind: tokAtom, pos: pos, value: atom(s[i:j])})
			advance(s[i:j])
			i = j
		}
	}
	return result, nil
}
