// lexer.go -
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

// Package lexer turns TeX source characters into a stream of tokens.
// The lexer is demand driven: callers request one token at a time and
// arbitrary macro expansion happens in between.  Tokens produced by
// expansion are prepended to an internal push-back queue which is
// drained before the lexer returns to character input.
package lexer

import (
	"time"

	"go.uber.org/zap"

	"github.com/hardentoo/texhs/catcode"
	"github.com/hardentoo/texhs/scanner"
	"github.com/hardentoo/texhs/token"
)

// DefaultMaxExpand is the default bound on consecutive macro
// expansions between two emitted tokens.
const DefaultMaxExpand = 2000

// Lexer reads TeX input and produces tokens, expanding user macros
// and executing definitional primitives on the way.
type Lexer struct {
	scanner.Scanner

	// MaxExpand bounds the number of macro expansions performed
	// between two emitted tokens.  Exceeding it is a fatal error.
	MaxExpand int

	// Now is the clock queried by \year, \month, \day and \time.
	Now time.Time

	cats   *catcode.Table
	macros map[macroKey]*Macro
	envs   map[string]*Env

	groups   []*groupScope
	conds    []condition
	envStack []string

	queue    []token.Token
	expanded int

	log *zap.SugaredLogger
}

type groupScope struct {
	cats   *catcode.Table
	macros map[macroKey]*Macro
	envs   map[string]*Env
}

// New creates a Lexer with the plain TeX catcode table and the
// built-in macros and primitives installed.
func New(log *zap.SugaredLogger) *Lexer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	lx := &Lexer{
		MaxExpand: DefaultMaxExpand,
		Now:       time.Now(),
		cats:      catcode.NewTable(),
		macros:    make(map[macroKey]*Macro),
		envs:      make(map[string]*Env),
		log:       log,
	}
	lx.addPrimitives()
	return lx
}

// Catcodes exposes the current catcode table.
func (lx *Lexer) Catcodes() *catcode.Table { return lx.cats }

// Tokens drains the lexer and returns all remaining tokens.
func (lx *Lexer) Tokens() (token.List, error) {
	var res token.List
	for {
		t, ok, err := lx.Token()
		if err != nil {
			return nil, err
		}
		if !ok {
			return res, nil
		}
		res = append(res, t)
	}
}

// Token returns the next finalised token.  The second result is false
// once the input is exhausted.
func (lx *Lexer) Token() (token.Token, bool, error) {
	return lx.next(true)
}

// expandedToken reads the expanded stream without applying group side
// effects.  Argument parsing uses it: braces in an argument are
// tracked for balance only, and take scoping effect exactly once,
// when (and if) the tokens are finally re-read through Token.
func (lx *Lexer) expandedToken() (token.Token, bool, error) {
	return lx.next(false)
}

func (lx *Lexer) next(applyGroups bool) (token.Token, bool, error) {
	for {
		t, ok, err := lx.rawToken()
		if err != nil {
			return token.Token{}, false, err
		}
		if !ok {
			if len(lx.groups) > 0 {
				return token.Token{}, false,
					lx.MakeError("unterminated group at end of input")
			}
			if len(lx.conds) > 0 {
				return token.Token{}, false,
					lx.MakeError("unterminated conditional at end of input")
			}
			return token.Token{}, false, nil
		}

		switch {
		case t.Type == token.CtrlSeq:
			emit, out, err := lx.control(t)
			if err != nil {
				return token.Token{}, false, err
			}
			if emit {
				lx.expanded = 0
				return out, true, nil
			}

		case t.IsCat(catcode.Bgroup):
			if applyGroups {
				lx.pushScope()
			}
			lx.expanded = 0
			return t, true, nil

		case t.IsCat(catcode.Egroup):
			if applyGroups {
				if err := lx.popScope(); err != nil {
					return token.Token{}, false, err
				}
			}
			lx.expanded = 0
			return t, true, nil

		default:
			lx.expanded = 0
			return t, true, nil
		}
	}
}

// rawToken yields the next token without macro expansion, draining
// the push-back queue before returning to character input.
func (lx *Lexer) rawToken() (token.Token, bool, error) {
	if len(lx.queue) > 0 {
		t := lx.queue[0]
		lx.queue = lx.queue[1:]
		return t, true, nil
	}
	return lx.charToken()
}

// pushBack prepends toks to the queue, to be re-read next.
func (lx *Lexer) pushBack(toks ...token.Token) {
	if len(toks) == 0 {
		return
	}
	lx.queue = append(append(token.List{}, toks...), lx.queue...)
}

// charToken reads characters until one full token is available.
func (lx *Lexer) charToken() (token.Token, bool, error) {
	for lx.Next() {
		r, size, err := lx.PeekRune()
		if err != nil {
			return token.Token{}, false, err
		}

		switch cat := lx.cats.Cat(r); cat {
		case catcode.Escape:
			lx.Skip(size)
			name, err := lx.readCtrlName()
			if err != nil {
				return token.Token{}, false, err
			}
			return token.TkCtrl(name), true, nil

		case catcode.Comment:
			if err := lx.skipComment(); err != nil {
				return token.Token{}, false, err
			}

		case catcode.Space, catcode.Eol:
			newlines, err := lx.skipWhite()
			if err != nil {
				return token.Token{}, false, err
			}
			if newlines > 1 {
				return token.TkCtrl("par"), true, nil
			}
			return token.TkChar(' ', catcode.Space), true, nil

		case catcode.ParamPrefix:
			return lx.paramToken(size)

		case catcode.Active:
			lx.Skip(size)
			return token.TkActive(r), true, nil

		case catcode.Ignored:
			lx.Skip(size)

		case catcode.Invalid:
			lx.log.Warnf("invalid character %q at %s", r, lx.Location())
			lx.Skip(size)

		default:
			lx.Skip(size)
			return token.TkChar(r, cat), true, nil
		}
	}
	return token.Token{}, false, nil
}

// readCtrlName reads a control-sequence name after the escape
// character: a maximal run of Letter characters, or one single
// non-letter character.  Spaces after a multi-letter name collapse.
func (lx *Lexer) readCtrlName() (string, error) {
	if !lx.Next() {
		return "", lx.MakeError("end of input after escape character")
	}
	r, size, err := lx.PeekRune()
	if err != nil {
		return "", err
	}
	if lx.cats.Cat(r) != catcode.Letter {
		lx.Skip(size)
		return string(r), nil
	}

	var name []rune
	for lx.Next() {
		r, size, err := lx.PeekRune()
		if err != nil {
			return "", err
		}
		if lx.cats.Cat(r) != catcode.Letter {
			break
		}
		name = append(name, r)
		lx.Skip(size)
		if len(name) >= scanner.PeekWindowSize {
			return "", lx.MakeError("control sequence name too long")
		}
	}

	newlines, err := lx.skipWhite()
	if err != nil {
		return "", err
	}
	if newlines > 1 {
		lx.pushBack(token.TkCtrl("par"))
	}
	return string(name), nil
}

// skipWhite consumes a maximal run of Space and Eol characters and
// returns the number of newlines seen.  Comments embedded in the run
// are consumed as well, without terminating it.
func (lx *Lexer) skipWhite() (int, error) {
	newlines := 0
	for lx.Next() {
		r, size, err := lx.PeekRune()
		if err != nil {
			return 0, err
		}
		switch lx.cats.Cat(r) {
		case catcode.Space:
			lx.Skip(size)
		case catcode.Eol:
			if r == '\n' {
				newlines++
			}
			lx.Skip(size)
		case catcode.Comment:
			if err := lx.skipComment(); err != nil {
				return 0, err
			}
		default:
			return newlines, nil
		}
	}
	return newlines, nil
}

// skipComment discards input through the end of the line, together
// with leading whitespace on the following line.
func (lx *Lexer) skipComment() error {
	for lx.Next() {
		buf, err := lx.Peek()
		if err != nil {
			return err
		}
		pos := 0
		for pos < len(buf) && buf[pos] != '\n' {
			pos++
		}
		lx.Skip(pos)
		if pos < len(buf) {
			lx.Skip(1)
			break
		}
	}
	for lx.Next() {
		r, size, err := lx.PeekRune()
		if err != nil {
			return err
		}
		if lx.cats.Cat(r) != catcode.Space {
			break
		}
		lx.Skip(size)
	}
	return nil
}

// paramToken reads a parameter token.  A run of n ParamPrefix
// characters followed by a digit yields Param(digit, n); without a
// digit the prefixes degrade to Other characters.
func (lx *Lexer) paramToken(size int) (token.Token, bool, error) {
	depth := 0
	for lx.Next() {
		r, sz, err := lx.PeekRune()
		if err != nil {
			return token.Token{}, false, err
		}
		if lx.cats.Cat(r) != catcode.ParamPrefix {
			break
		}
		depth++
		lx.Skip(sz)
	}
	if depth == 0 {
		// Unreachable from charToken, kept for safety.
		return token.TkChar('#', catcode.Other), true, nil
	}

	if lx.Next() {
		r, sz, err := lx.PeekRune()
		if err != nil {
			return token.Token{}, false, err
		}
		if r >= '1' && r <= '9' {
			lx.Skip(sz)
			return token.Token{
				Type:  token.Param,
				Index: int(r - '0'),
				Depth: depth,
			}, true, nil
		}
	}

	// No digit follows: the prefixes are plain characters here.
	for i := 1; i < depth; i++ {
		lx.pushBack(token.TkChar('#', catcode.Other))
	}
	return token.TkChar('#', catcode.Other), true, nil
}

// pushScope snapshots the catcode, macro and environment tables.  The
// snapshot is restored when the matching group close is lexed.
func (lx *Lexer) pushScope() {
	saved := &groupScope{
		cats:   lx.cats,
		macros: lx.macros,
		envs:   lx.envs,
	}
	lx.groups = append(lx.groups, saved)

	lx.cats = lx.cats.Clone()
	macros := make(map[macroKey]*Macro, len(lx.macros))
	for k, v := range lx.macros {
		macros[k] = v
	}
	lx.macros = macros
	envs := make(map[string]*Env, len(lx.envs))
	for k, v := range lx.envs {
		envs[k] = v
	}
	lx.envs = envs
}

func (lx *Lexer) popScope() error {
	n := len(lx.groups)
	if n == 0 {
		return lx.MakeError("too many group closes")
	}
	saved := lx.groups[n-1]
	lx.groups = lx.groups[:n-1]
	lx.cats = saved.cats
	lx.macros = saved.macros
	lx.envs = saved.envs
	return nil
}

// control decides what to do with a control-sequence or active
// character token.  It returns (true, tok) when a token is to be
// emitted, and (false, _) when the effects have been queued and the
// main loop should continue.
func (lx *Lexer) control(t token.Token) (bool, token.Token, error) {
	m, ok := lx.macros[macroKey{t.Name, t.Active}]
	if !ok {
		// Unknown control sequences pass through; the document
		// reader decides whether to accept them.
		return true, t, nil
	}

	switch m.Kind {
	case MacroChar:
		lx.pushBack(token.TkChar(m.Rune, m.Cat))
		return false, token.Token{}, nil

	case MacroPrimitive:
		fn := primFuncs[m.Prim]
		if fn == nil {
			return false, token.Token{}, lx.MakeError("unimplemented primitive \\" + m.Prim)
		}
		return fn(lx, t)

	default:
		lx.expanded++
		if lx.expanded > lx.MaxExpand {
			return false, token.Token{}, lx.MakeError(
				"macro recursion depth exceeded expanding \\" + t.Name)
		}
		args, err := lx.parseArgs(m.Spec)
		if err != nil {
			return false, token.Token{}, err
		}
		// Literal delimiters are matched but do not count as
		// parameters.
		params := args[:0]
		for i, arg := range args {
			if m.Spec[i].Kind != ArgLiteral {
				params = append(params, arg)
			}
		}
		lx.pushBack(substitute(m.Body, params)...)
		return false, token.Token{}, nil
	}
}

// substitute replaces parameter tokens of depth 1 in body by the
// corresponding argument values and decrements the depth of deeper
// parameter tokens.  All other tokens are copied verbatim.
func substitute(body token.List, args []token.List) token.List {
	var out token.List
	for _, t := range body {
		if t.Type != token.Param {
			out = append(out, t)
			continue
		}
		if t.Depth > 1 {
			t.Depth--
			out = append(out, t)
			continue
		}
		if t.Index >= 1 && t.Index <= len(args) {
			out = append(out, args[t.Index-1]...)
		}
	}
	return out
}

// readVerbatim reads raw characters up to (and not including) the
// given terminator string, bypassing catcode dispatch entirely.  The
// terminator itself is consumed.
func (lx *Lexer) readVerbatim(terminator string) (string, error) {
	var body []byte
	term := []byte(terminator)
	for lx.Next() {
		buf, err := lx.Peek()
		if err != nil {
			return "", err
		}
		for pos := 0; pos < len(buf); pos++ {
			rest := buf[pos:]
			if len(rest) >= len(term) && string(rest[:len(term)]) == terminator {
				body = append(body, buf[:pos]...)
				lx.Skip(pos + len(term))
				return string(body), nil
			}
			if len(rest) < len(term) {
				break
			}
		}
		keep := len(buf) - len(term) + 1
		if keep < 1 {
			keep = len(buf)
		}
		body = append(body, buf[:keep]...)
		lx.Skip(keep)
	}
	return "", lx.MakeError("verbatim text not terminated by " + terminator)
}

// verbatimTokens converts raw text to Other-catcode character tokens
// so that downstream stages preserve it untouched.
func verbatimTokens(text string) token.List {
	var out token.List
	for _, r := range text {
		out = append(out, token.TkChar(r, catcode.Other))
	}
	return out
}
