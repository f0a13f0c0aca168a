// filter.go -
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

// Package filter normalises atom trees: whitespace conflation and
// the resolution of symbol, diacritic and ligature commands.
package filter

import (
	"strings"
	"unicode"

	"github.com/hardentoo/texhs/parser"
)

// Normalize conflates whitespace within each level of the tree.
// Adjacent White atoms merge; a Newline absorbs a preceding White; a
// Par absorbs all surrounding White, Newline and Par atoms.  Leading
// and trailing whitespace is kept and nothing is conflated across
// structural boundaries.  Normalize is idempotent.
func Normalize(atoms []parser.Atom) []parser.Atom {
	var out []parser.Atom
	for _, a := range atoms {
		a = normalizeAtom(a)

		if len(out) > 0 {
			prev := out[len(out)-1]
			switch a.(type) {
			case *parser.White:
				switch prev.(type) {
				case *parser.White, *parser.Par:
					continue
				}
			case *parser.Newline:
				if _, ok := prev.(*parser.White); ok {
					out[len(out)-1] = a
					continue
				}
				if _, ok := prev.(*parser.Par); ok {
					continue
				}
			case *parser.Par:
				for len(out) > 0 {
					switch out[len(out)-1].(type) {
					case *parser.White, *parser.Newline, *parser.Par:
						out = out[:len(out)-1]
						continue
					}
					break
				}
			}
		}
		out = append(out, a)
	}
	return out
}

func normalizeAtom(a parser.Atom) parser.Atom {
	switch a := a.(type) {
	case *parser.Group:
		return &parser.Group{
			Name: a.Name,
			Args: normalizeArgs(a.Args),
			Body: Normalize(a.Body),
		}
	case *parser.MathGroup:
		return &parser.MathGroup{Type: a.Type, Body: Normalize(a.Body)}
	case *parser.SupScript:
		return &parser.SupScript{Body: Normalize(a.Body)}
	case *parser.SubScript:
		return &parser.SubScript{Body: Normalize(a.Body)}
	case *parser.Command:
		return &parser.Command{Name: a.Name, Args: normalizeArgs(a.Args)}
	default:
		return a
	}
}

func normalizeArgs(args []parser.Arg) []parser.Arg {
	if args == nil {
		return nil
	}
	out := make([]parser.Arg, len(args))
	for i, arg := range args {
		out[i] = parser.Arg{Kind: arg.Kind, Body: Normalize(arg.Body)}
	}
	return out
}

// Resolve rewrites symbol, diacritic and ligature commands into their
// Unicode form.  Unknown commands are left intact.
func Resolve(atoms []parser.Atom) []parser.Atom {
	var out []parser.Atom
	for _, a := range atoms {
		switch a := a.(type) {
		case *parser.Plain:
			out = append(out, &parser.Plain{Text: applyLigatures(a.Text)})

		case *parser.Command:
			if repl, ok := resolveCommand(a); ok {
				out = append(out, repl...)
				continue
			}
			out = append(out, &parser.Command{Name: a.Name, Args: resolveArgs(a.Args)})

		case *parser.Group:
			out = append(out, &parser.Group{
				Name: a.Name,
				Args: a.Args,
				Body: resolveGroupBody(a),
			})
		case *parser.MathGroup:
			out = append(out, &parser.MathGroup{Type: a.Type, Body: Resolve(a.Body)})
		case *parser.SupScript:
			out = append(out, &parser.SupScript{Body: Resolve(a.Body)})
		case *parser.SubScript:
			out = append(out, &parser.SubScript{Body: Resolve(a.Body)})
		default:
			out = append(out, a)
		}
	}
	return out
}

// Verbatim contents are exempt from ligature replacement.
func resolveGroupBody(g *parser.Group) []parser.Atom {
	if g.Name == "verbatim" || g.Name == "lstlisting" {
		return g.Body
	}
	return Resolve(g.Body)
}

func resolveArgs(args []parser.Arg) []parser.Arg {
	if args == nil {
		return nil
	}
	out := make([]parser.Arg, len(args))
	for i, arg := range args {
		out[i] = parser.Arg{Kind: arg.Kind, Body: Resolve(arg.Body)}
	}
	return out
}

func resolveCommand(c *parser.Command) ([]parser.Atom, bool) {
	if len(c.Args) == 0 {
		if s, ok := symbols[c.Name]; ok {
			return []parser.Atom{&parser.Plain{Text: s}}, true
		}
		return nil, false
	}

	if mark, ok := diacritics[c.Name]; ok {
		body, found := parser.ObligArgBody(c.Args, 0)
		if !found {
			return nil, false
		}
		return []parser.Atom{applyDiacritic(mark, parser.Text(Resolve(body)))}, true
	}

	if mark, ok := doubleDiacritics[c.Name]; ok {
		first, ok1 := parser.ObligArgBody(c.Args, 0)
		second, ok2 := parser.ObligArgBody(c.Args, 1)
		if ok1 && !ok2 {
			// Single-argument call form: \t{oo}.
			return []parser.Atom{applyDiacritic(mark, parser.Text(Resolve(first)))}, true
		}
		if ok1 && ok2 {
			text := parser.Text(Resolve(first)) + parser.Text(Resolve(second))
			return []parser.Atom{applyDiacritic(mark, text)}, true
		}
		return nil, false
	}

	return nil, false
}

// applyDiacritic inserts the combining mark after the first character
// of text plus any combining marks already following it.
func applyDiacritic(mark rune, text string) parser.Atom {
	runes := []rune(text)
	if len(runes) == 0 {
		return &parser.Plain{Text: string(mark)}
	}
	pos := 1
	for pos < len(runes) && unicode.Is(unicode.Mn, runes[pos]) {
		pos++
	}
	var b strings.Builder
	b.WriteString(string(runes[:pos]))
	b.WriteRune(mark)
	b.WriteString(string(runes[pos:]))
	return &parser.Plain{Text: b.String()}
}

// applyLigatures rewrites literal input substrings with longest-key
// priority.
func applyLigatures(text string) string {
	var b strings.Builder
	pos := 0
	for pos < len(text) {
		matched := false
		for _, lig := range ligatures {
			if strings.HasPrefix(text[pos:], lig.from) {
				b.WriteString(lig.to)
				pos += len(lig.from)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(text[pos])
			pos++
		}
	}
	return b.String()
}
