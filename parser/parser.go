// parser.go -
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

package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/hardentoo/texhs/catcode"
	"github.com/hardentoo/texhs/token"
)

// Errors reported by the structural parser.
var (
	ErrUnexpectedEgroup = errors.New("unexpected group close")
	ErrUnclosedGroup    = errors.New("group not closed")
	ErrUnclosedMath     = errors.New("maths group not closed")
	ErrUnclosedEnv      = errors.New("environment not closed")
)

// Parse folds a token list into an atom tree.
func Parse(toks token.List) ([]Atom, error) {
	p := &fold{toks: toks}
	atoms, err := p.atoms(false)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.toks) {
		return nil, ErrUnexpectedEgroup
	}
	return atoms, nil
}

type fold struct {
	toks token.List
	pos  int
}

func (p *fold) peek() (token.Token, bool) {
	if p.pos >= len(p.toks) {
		return token.Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *fold) next() (token.Token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

// atoms parses a sequence of atoms.  When inGroup is set, an Egroup
// token terminates the sequence and is consumed.
func (p *fold) atoms(inGroup bool) ([]Atom, error) {
	var out []Atom
	for {
		t, ok := p.peek()
		if !ok {
			if inGroup {
				return nil, ErrUnclosedGroup
			}
			return out, nil
		}
		if t.IsCat(catcode.Egroup) {
			if inGroup {
				p.pos++
				return out, nil
			}
			return out, nil
		}

		atom, err := p.atom()
		if err != nil {
			return nil, err
		}
		if atom != nil {
			out = append(out, atom)
		}
	}
}

// atom parses one atom.  A nil result means the token was absorbed
// (e.g. an \end handled by its \begin).
func (p *fold) atom() (Atom, error) {
	t, _ := p.next()

	switch {
	case t.Type == token.CtrlSeq:
		return p.command(t)

	case t.IsCat(catcode.Bgroup):
		body, err := p.atoms(true)
		if err != nil {
			return nil, err
		}
		return &Group{Body: body}, nil

	case t.IsCat(catcode.MathShift):
		return p.math()

	case t.IsCat(catcode.Supscript):
		body, err := p.scriptBody()
		if err != nil {
			return nil, err
		}
		return &SupScript{Body: body}, nil

	case t.IsCat(catcode.Subscript):
		body, err := p.scriptBody()
		if err != nil {
			return nil, err
		}
		return &SubScript{Body: body}, nil

	case t.IsCat(catcode.AlignTab):
		return &AlignMark{}, nil

	case t.IsCat(catcode.Space):
		return &White{}, nil

	case t.IsCat(catcode.Eol):
		return &Newline{}, nil

	case t.Type == token.Param:
		return &Plain{Text: "#" + strconv.Itoa(t.Index)}, nil

	default:
		return p.plain(t), nil
	}
}

// plain coalesces a run of Letter and Other characters.
func (p *fold) plain(first token.Token) Atom {
	var b strings.Builder
	b.WriteRune(first.Rune)
	for {
		t, ok := p.peek()
		if !ok || t.Type != token.Char ||
			(t.Cat != catcode.Letter && t.Cat != catcode.Other) {
			break
		}
		b.WriteRune(t.Rune)
		p.pos++
	}
	return &Plain{Text: b.String()}
}

// math parses a maths group.  A doubled math-shift opens display
// maths, closed by the same form.
func (p *fold) math() (Atom, error) {
	display := false
	if t, ok := p.peek(); ok && t.IsCat(catcode.MathShift) {
		display = true
		p.pos++
	}

	var body []Atom
	for {
		t, ok := p.peek()
		if !ok {
			return nil, ErrUnclosedMath
		}
		if t.IsCat(catcode.MathShift) {
			p.pos++
			if !display {
				break
			}
			t2, ok := p.peek()
			if ok && t2.IsCat(catcode.MathShift) {
				p.pos++
				break
			}
			return nil, ErrUnclosedMath
		}

		atom, err := p.atom()
		if err != nil {
			return nil, err
		}
		if atom != nil {
			body = append(body, atom)
		}
	}

	mt := InlineMath
	if display {
		mt = DisplayMath
	}
	return &MathGroup{Type: mt, Body: body}, nil
}

// scriptBody parses the single balanced atom governed by a script
// character: a braced group, or exactly one token.
func (p *fold) scriptBody() ([]Atom, error) {
	t, ok := p.peek()
	if !ok {
		return nil, ErrUnclosedGroup
	}
	if t.IsCat(catcode.Bgroup) {
		p.pos++
		return p.atoms(true)
	}
	atom, err := p.singleAtom()
	if err != nil {
		return nil, err
	}
	if atom == nil {
		return nil, nil
	}
	return []Atom{atom}, nil
}

// command parses a control sequence, its registry arguments and, for
// \begin, the matching environment body.
func (p *fold) command(t token.Token) (Atom, error) {
	name := t.Name
	if t.Active {
		switch name {
		case "par":
			return &Par{}, nil
		default:
			return &Command{Name: name}, nil
		}
	}

	switch name {
	case "par":
		return &Par{}, nil
	case "newline":
		return &Newline{}, nil
	}

	args, err := p.args(ArgSpec(name))
	if err != nil {
		return nil, err
	}

	if name == "begin" {
		return p.environment(args)
	}
	return &Command{Name: name, Args: args}, nil
}

// args parses arguments according to a compact spec string.
func (p *fold) args(spec string) ([]Arg, error) {
	var args []Arg
	for _, c := range spec {
		switch c {
		case '*':
			if t, ok := p.peek(); ok && t.IsChar(catcode.Other, '*') {
				p.pos++
				args = append(args, StarArg())
			}
		case 'O':
			p.skipSpaces()
			t, ok := p.peek()
			if !ok || !t.IsChar(catcode.Other, '[') {
				continue
			}
			p.pos++
			body, err := p.optBody()
			if err != nil {
				return nil, err
			}
			args = append(args, Arg{Kind: Opt, Body: body})
		case 'A':
			p.skipSpaces()
			t, ok := p.peek()
			if !ok {
				return args, nil
			}
			if t.IsCat(catcode.Bgroup) {
				p.pos++
				body, err := p.atoms(true)
				if err != nil {
					return nil, err
				}
				args = append(args, Arg{Kind: Oblig, Body: body})
			} else {
				atom, err := p.singleAtom()
				if err != nil {
					return nil, err
				}
				var body []Atom
				if atom != nil {
					body = []Atom{atom}
				}
				args = append(args, Arg{Kind: Oblig, Body: body})
			}
		}
	}
	return args, nil
}

func (p *fold) skipSpaces() {
	for {
		t, ok := p.peek()
		if !ok || !t.IsCat(catcode.Space) {
			return
		}
		p.pos++
	}
}

// singleAtom consumes exactly one token's worth of atom: an
// unbraced mandatory argument covers a single character, not a whole
// text run.
func (p *fold) singleAtom() (Atom, error) {
	t, ok := p.peek()
	if !ok {
		return nil, nil
	}
	if t.Type == token.Char &&
		(t.Cat == catcode.Letter || t.Cat == catcode.Other) {
		p.pos++
		return &Plain{Text: string(t.Rune)}, nil
	}
	return p.atom()
}

// optBody parses atoms up to the closing bracket of an optional
// argument.  Characters are taken one by one so that the closing
// bracket is never swallowed by Plain coalescing.
func (p *fold) optBody() ([]Atom, error) {
	var out []Atom
	var text []rune
	flush := func() {
		if len(text) > 0 {
			out = append(out, &Plain{Text: string(text)})
			text = nil
		}
	}
	for {
		t, ok := p.peek()
		if !ok {
			return nil, ErrUnclosedGroup
		}
		if t.IsChar(catcode.Other, ']') {
			p.pos++
			flush()
			return mergePlains(out), nil
		}
		if t.Type == token.Char &&
			(t.Cat == catcode.Letter || t.Cat == catcode.Other) {
			text = append(text, t.Rune)
			p.pos++
			continue
		}
		flush()
		atom, err := p.atom()
		if err != nil {
			return nil, err
		}
		if atom != nil {
			out = append(out, atom)
		}
	}
}

// environment folds \begin{name}...\end{name} into a Group atom.
// Single-character arguments (e.g. the 'A' spec reading one Plain
// run) make the name arrive as a full Plain run, so the name is the
// text of the first mandatory argument.
func (p *fold) environment(args []Arg) (Atom, error) {
	nameBody, ok := ObligArgBody(args, 0)
	if !ok {
		return &Command{Name: "begin", Args: args}, nil
	}
	name := Text(nameBody)

	// Trailing arguments of the \begin line attach to the
	// environment (e.g. lstlisting options, tabular column specs).
	extra, err := p.args(EnvArgSpec(name))
	if err != nil {
		return nil, err
	}

	var body []Atom
	for {
		t, ok := p.peek()
		if !ok {
			return nil, ErrUnclosedEnv
		}
		if t.IsCtrl("end") {
			p.pos++
			endArgs, err := p.args("A")
			if err != nil {
				return nil, err
			}
			endBody, _ := ObligArgBody(endArgs, 0)
			if Text(endBody) == name {
				return &Group{Name: name, Args: extra, Body: mergePlains(body)}, nil
			}
			// An \end for an outer environment: report the
			// mismatch as an unclosed environment.
			return nil, ErrUnclosedEnv
		}

		atom, err := p.atom()
		if err != nil {
			return nil, err
		}
		if atom != nil {
			body = append(body, atom)
		}
	}
}

// mergePlains conflates adjacent Plain atoms produced by argument
// re-splitting.
func mergePlains(atoms []Atom) []Atom {
	var out []Atom
	for _, a := range atoms {
		if pl, ok := a.(*Plain); ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(*Plain); ok {
				out[len(out)-1] = &Plain{Text: prev.Text + pl.Text}
				continue
			}
		}
		out = append(out, a)
	}
	return out
}
