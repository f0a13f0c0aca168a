// args.go -
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

package lexer

import (
	"github.com/hardentoo/texhs/catcode"
	"github.com/hardentoo/texhs/token"
)

// parseArgs reads one argument value per entry of spec from the
// expanded token stream.
func (lx *Lexer) parseArgs(spec []ArgType) ([]token.List, error) {
	var args []token.List
	for _, at := range spec {
		arg, err := lx.parseArg(at)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (lx *Lexer) parseArg(at ArgType) (token.List, error) {
	switch at.Kind {
	case ArgMandatory:
		return lx.readGroupOrToken()

	case ArgUntil:
		return lx.readUntilSeq(at.Seq)

	case ArgUntilCat:
		return lx.readUntilCat(at.Cat)

	case ArgDelim:
		arg, found, err := lx.readDelimited(at.Open, at.Close)
		if err != nil {
			return nil, err
		}
		if !found {
			if at.Default != nil {
				return at.Default, nil
			}
			return nil, lx.MakeError("required delimited argument not found")
		}
		return arg, nil

	case ArgOptGroup:
		arg, found, err := lx.readDelimited(at.Open, at.Close)
		if err != nil {
			return nil, err
		}
		if !found {
			return lx.absentValue(at), nil
		}
		return arg, nil

	case ArgOptGroupCat:
		ok, err := lx.peekCat(catcode.Bgroup)
		if err != nil {
			return nil, err
		}
		if !ok {
			return lx.absentValue(at), nil
		}
		return lx.readGroupOrToken()

	case ArgOptToken:
		ok, err := lx.tryToken(at.Tok)
		if err != nil {
			return nil, err
		}
		if ok {
			return token.List{booleanTrueTok}, nil
		}
		return token.List{booleanFalseTok}, nil

	case ArgLiteral:
		ok, err := lx.tryToken(at.Tok)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, lx.MakeError("expected " + at.Tok.String())
		}
		return token.List{at.Tok}, nil
	}
	return nil, lx.MakeError("invalid argument type")
}

func (lx *Lexer) absentValue(at ArgType) token.List {
	if at.Default != nil {
		return at.Default
	}
	return token.List{noValueTok}
}

// skipArgSpaces consumes Space tokens on the expanded stream, but
// never reads across a paragraph break.
func (lx *Lexer) skipArgSpaces() error {
	for {
		t, ok, err := lx.expandedToken()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if t.IsCat(catcode.Space) {
			continue
		}
		lx.pushBack(t)
		return nil
	}
}

// readGroupOrToken implements the Mandatory argument type: a braced
// group with the outer braces stripped, or a single token.
func (lx *Lexer) readGroupOrToken() (token.List, error) {
	if err := lx.skipArgSpaces(); err != nil {
		return nil, err
	}
	t, ok, err := lx.expandedToken()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, lx.MakeError("mandatory argument missing at end of input")
	}
	if t.IsCtrl("par") {
		return nil, lx.MakeError("paragraph break while scanning a mandatory argument")
	}
	if !t.IsCat(catcode.Bgroup) {
		return token.List{t}, nil
	}
	return lx.readBalanced()
}

// readBalanced reads the expanded stream up to the group close
// matching an already-consumed group open.
func (lx *Lexer) readBalanced() (token.List, error) {
	var out token.List
	depth := 0
	for {
		t, ok, err := lx.expandedToken()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, lx.MakeError("group not closed at end of input")
		}
		switch {
		case t.IsCat(catcode.Bgroup):
			depth++
		case t.IsCat(catcode.Egroup):
			if depth == 0 {
				return out, nil
			}
			depth--
		}
		out = append(out, t)
	}
}

// readUntilSeq reads tokens up to the first brace-balanced occurrence
// of seq.  The delimiter itself is consumed and dropped.
func (lx *Lexer) readUntilSeq(seq token.List) (token.List, error) {
	if len(seq) == 0 {
		return nil, lx.MakeError("empty argument delimiter")
	}
	var out token.List
	depth := 0
	for {
		t, ok, err := lx.expandedToken()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, lx.MakeError("argument delimiter not found before end of input")
		}
		switch {
		case t.IsCat(catcode.Bgroup):
			depth++
		case t.IsCat(catcode.Egroup):
			depth--
		}
		out = append(out, t)
		if depth == 0 && len(out) >= len(seq) {
			match := true
			for i, d := range seq {
				if !out[len(out)-len(seq)+i].Equals(d) {
					match = false
					break
				}
			}
			if match {
				return out[:len(out)-len(seq)], nil
			}
		}
	}
}

// readUntilCat reads tokens up to the first token of the given
// catcode, which is pushed back unconsumed.
func (lx *Lexer) readUntilCat(cat catcode.Catcode) (token.List, error) {
	var out token.List
	for {
		t, ok, err := lx.expandedToken()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, lx.MakeError("argument delimiter not found before end of input")
		}
		if t.IsCat(cat) {
			lx.pushBack(t)
			return out, nil
		}
		out = append(out, t)
	}
}

// readDelimited looks for an argument bracketed by open and close.
// The boolean result reports whether the open delimiter was present.
// Spaces before an absent delimiter are preserved.
func (lx *Lexer) readDelimited(open, close token.Token) (token.List, bool, error) {
	ok, err := lx.tryToken(open)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	var out token.List
	depth := 0
	for {
		t, more, err := lx.expandedToken()
		if err != nil {
			return nil, false, err
		}
		if !more {
			return nil, false, lx.MakeError("delimiter " + close.String() +
				" not found before end of input")
		}
		switch {
		case t.Equals(open):
			depth++
		case t.Equals(close):
			if depth == 0 {
				return out, true, nil
			}
			depth--
		}
		out = append(out, t)
	}
}

// tryToken skips spaces and consumes the next token if it equals
// want.  Otherwise the skipped spaces and the token are pushed back.
func (lx *Lexer) tryToken(want token.Token) (bool, error) {
	var skipped token.List
	for {
		t, ok, err := lx.expandedToken()
		if err != nil {
			return false, err
		}
		if !ok {
			lx.pushBack(skipped...)
			return false, nil
		}
		if t.IsCat(catcode.Space) {
			skipped = append(skipped, t)
			continue
		}
		if t.Equals(want) {
			return true, nil
		}
		lx.pushBack(append(skipped, t)...)
		return false, nil
	}
}

// peekCat reports whether the next non-space token on the expanded
// stream has the given catcode, without consuming it.
func (lx *Lexer) peekCat(cat catcode.Catcode) (bool, error) {
	var skipped token.List
	for {
		t, ok, err := lx.expandedToken()
		if err != nil {
			return false, err
		}
		if !ok {
			lx.pushBack(skipped...)
			return false, nil
		}
		if t.IsCat(catcode.Space) {
			skipped = append(skipped, t)
			continue
		}
		lx.pushBack(append(skipped, t)...)
		return t.IsCat(cat), nil
	}
}

// Raw reading.  The definitional primitives read names, parameter
// texts and bodies without expansion.

// rawNextNonSpace returns the next raw token that is not a space.
func (lx *Lexer) rawNextNonSpace() (token.Token, error) {
	for {
		t, ok, err := lx.rawToken()
		if err != nil {
			return token.Token{}, err
		}
		if !ok {
			return token.Token{}, lx.MakeError("unexpected end of input")
		}
		if t.IsCat(catcode.Space) {
			continue
		}
		return t, nil
	}
}

// readGroupRaw reads a braced group without expansion and returns the
// tokens between the outer braces.
func (lx *Lexer) readGroupRaw() (token.List, error) {
	t, err := lx.rawNextNonSpace()
	if err != nil {
		return nil, err
	}
	if !t.IsCat(catcode.Bgroup) {
		return nil, lx.MakeError("expected { but got " + t.String())
	}
	var out token.List
	depth := 0
	for {
		t, ok, err := lx.rawToken()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, lx.MakeError("group not closed at end of input")
		}
		switch {
		case t.IsCat(catcode.Bgroup):
			depth++
		case t.IsCat(catcode.Egroup):
			if depth == 0 {
				return out, nil
			}
			depth--
		}
		out = append(out, t)
	}
}

// readGroupRawOpt reads an optional [..] argument without expansion.
func (lx *Lexer) readGroupRawOpt() (token.List, bool, error) {
	var skipped token.List
	for {
		t, ok, err := lx.rawToken()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			lx.pushBack(skipped...)
			return nil, false, nil
		}
		if t.IsCat(catcode.Space) {
			skipped = append(skipped, t)
			continue
		}
		if !t.IsChar(catcode.Other, '[') {
			lx.pushBack(append(skipped, t)...)
			return nil, false, nil
		}
		break
	}

	var out token.List
	depth := 0
	for {
		t, ok, err := lx.rawToken()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, lx.MakeError("] not found before end of input")
		}
		switch {
		case t.IsChar(catcode.Other, '['):
			depth++
		case t.IsChar(catcode.Other, ']'):
			if depth == 0 {
				return out, true, nil
			}
			depth--
		}
		out = append(out, t)
	}
}

// readCtrlToken reads the control sequence being defined: either a
// bare \name or a braced {\name}.
func (lx *Lexer) readCtrlToken() (token.Token, error) {
	t, err := lx.rawNextNonSpace()
	if err != nil {
		return token.Token{}, err
	}
	if t.IsCat(catcode.Bgroup) {
		inner, err := lx.rawNextNonSpace()
		if err != nil {
			return token.Token{}, err
		}
		closing, err := lx.rawNextNonSpace()
		if err != nil {
			return token.Token{}, err
		}
		if !closing.IsCat(catcode.Egroup) {
			return token.Token{}, lx.MakeError("malformed command name group")
		}
		t = inner
	}
	if t.Type != token.CtrlSeq {
		return token.Token{}, lx.MakeError("expected a control sequence, got " + t.String())
	}
	return t, nil
}
