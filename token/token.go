// token.go -
// Copyright (C) 2026  The texhs authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package token defines the lexical tokens emitted by the TeX lexer.
package token

import (
	"strconv"
	"strings"

	"github.com/hardentoo/texhs/catcode"
)

// Type enumerates the three kinds of token.
type Type int

// The different token types used by this package.
const (
	// Char is a character token carrying a rune and its category code.
	Char Type = iota
	// CtrlSeq is a control-sequence token.  Active characters are
	// represented as control sequences with a one-character name and
	// the Active flag set.
	CtrlSeq
	// Param is a parameter token (#1 .. #9) with a nesting depth.
	Param
)

// Token is a single lexical unit of TeX input.
type Token struct {
	Type Type

	// For Char tokens, the rune and its category code at lex time.
	Rune rune
	Cat  catcode.Catcode

	// For CtrlSeq tokens, the name without the leading escape
	// character, and whether the token came from an active character.
	Name   string
	Active bool

	// For Param tokens, the parameter index (1..9) and the macro
	// nesting depth.
	Index int
	Depth int
}

// TkChar returns a character token.
func TkChar(r rune, cat catcode.Catcode) Token {
	return Token{Type: Char, Rune: r, Cat: cat}
}

// TkCtrl returns a control-sequence token.
func TkCtrl(name string) Token {
	return Token{Type: CtrlSeq, Name: name}
}

// TkActive returns an active-character token.
func TkActive(r rune) Token {
	return Token{Type: CtrlSeq, Name: string(r), Active: true}
}

// TkParam returns a parameter token of depth 1.
func TkParam(index int) Token {
	return Token{Type: Param, Index: index, Depth: 1}
}

// IsChar reports whether t is a character token with the given
// category code and rune.
func (t Token) IsChar(cat catcode.Catcode, r rune) bool {
	return t.Type == Char && t.Cat == cat && t.Rune == r
}

// IsCat reports whether t is a character token with the given
// category code.
func (t Token) IsCat(cat catcode.Catcode) bool {
	return t.Type == Char && t.Cat == cat
}

// IsCtrl reports whether t is the named control sequence.  Active
// characters do not match.
func (t Token) IsCtrl(name string) bool {
	return t.Type == CtrlSeq && !t.Active && t.Name == name
}

// Equals reports whether two tokens are interchangeable during
// argument delimiter matching: control sequences match by (name,
// active), characters by (catcode, rune).
func (t Token) Equals(o Token) bool {
	if t.Type != o.Type {
		return false
	}
	switch t.Type {
	case Char:
		return t.Cat == o.Cat && t.Rune == o.Rune
	case CtrlSeq:
		return t.Name == o.Name && t.Active == o.Active
	default:
		return t.Index == o.Index && t.Depth == o.Depth
	}
}

func (t Token) String() string {
	switch t.Type {
	case CtrlSeq:
		if t.Active {
			return "active " + strconv.Quote(t.Name)
		}
		return "\\" + t.Name
	case Param:
		return strings.Repeat("#", t.Depth) + strconv.Itoa(t.Index)
	default:
		return string(t.Rune) + " (" + t.Cat.String() + ")"
	}
}

// List is a sequence of tokens, e.g. a macro body or argument value.
type List []Token

// Detok turns toks back into source characters using escape as the
// escape character.  Lexing the result under the same catcode table
// yields an equivalent token stream.
func (toks List) Detok(escape rune) string {
	var b strings.Builder
	for i, t := range toks {
		switch t.Type {
		case Char:
			b.WriteRune(t.Rune)
		case CtrlSeq:
			if t.Active {
				b.WriteString(t.Name)
				break
			}
			b.WriteRune(escape)
			b.WriteString(t.Name)
			if isLetterName(t.Name) && i+1 < len(toks) && nextIsLetter(toks[i+1]) {
				b.WriteByte(' ')
			}
		case Param:
			for j := 0; j < t.Depth; j++ {
				b.WriteByte('#')
			}
			b.WriteString(strconv.Itoa(t.Index))
		}
	}
	return b.String()
}

// Text renders toks as plain text, dropping control sequences.  This
// is used where a string value is needed, e.g. environment names and
// label keys.
func (toks List) Text() string {
	var b strings.Builder
	for _, t := range toks {
		switch t.Type {
		case Char:
			b.WriteRune(t.Rune)
		case CtrlSeq:
			if t.Active {
				b.WriteString(t.Name)
			}
		}
	}
	return b.String()
}

func isLetterName(name string) bool {
	for _, r := range name {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return name != ""
}

func nextIsLetter(t Token) bool {
	return t.Type == Char && t.Cat == catcode.Letter
}
