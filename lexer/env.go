// env.go -
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

// Env is a user-defined environment: argument specification plus the
// token lists spliced in at \begin and \end.  Parameter tokens are
// substituted in the begin code only, as in LaTeX.
type Env struct {
	Spec       []ArgType
	Begin, End token.List
}

// Environments read with raw catcodes: everything up to the matching
// \end is passed through as Other characters.
var verbatimEnvs = map[string]bool{
	"verbatim":   true,
	"lstlisting": true,
}

// primBeginEnv dispatches \begin{name}.  User-defined environments
// splice their begin code inside a fresh group; all other names pass
// through for the structural parser to fold.
func primBeginEnv(lx *Lexer, t token.Token) (bool, token.Token, error) {
	nameToks, err := lx.readGroupOrToken()
	if err != nil {
		return false, token.Token{}, err
	}
	name := nameToks.Text()

	if verbatimEnvs[name] {
		return lx.beginVerbatimEnv(name)
	}

	if env, ok := lx.envs[name]; ok {
		args, err := lx.parseArgs(env.Spec)
		if err != nil {
			return false, token.Token{}, err
		}
		params := args[:0]
		for i, arg := range args {
			if env.Spec[i].Kind != ArgLiteral {
				params = append(params, arg)
			}
		}
		lx.pushScope()
		lx.envStack = append(lx.envStack, name)
		lx.pushBack(substitute(env.Begin, params)...)
		return false, token.Token{}, nil
	}

	lx.pushBack(wrapGroup(nameToks)...)
	return true, t, nil
}

// primEndEnv dispatches \end{name}.
func primEndEnv(lx *Lexer, t token.Token) (bool, token.Token, error) {
	nameToks, err := lx.readGroupOrToken()
	if err != nil {
		return false, token.Token{}, err
	}
	name := nameToks.Text()

	if n := len(lx.envStack); n > 0 && lx.envStack[n-1] == name {
		lx.envStack = lx.envStack[:n-1]
		env := lx.envs[name]
		out := append(token.List{}, env.End...)
		out = append(out, token.TkCtrl("q@endenv"))
		lx.pushBack(out...)
		return false, token.Token{}, nil
	}

	lx.pushBack(wrapGroup(nameToks)...)
	return true, t, nil
}

// primEndEnvGroup closes the group opened by a user environment after
// its end code has been expanded.
func primEndEnvGroup(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	return false, token.Token{}, lx.popScope()
}

// beginVerbatimEnv captures raw characters up to the matching \end
// and re-emits them as Other-catcode tokens, so that no stage further
// down reinterprets the contents.
func (lx *Lexer) beginVerbatimEnv(name string) (bool, token.Token, error) {
	// The optional argument is only recognised directly after the name:
	// the body is read from the scanner, past any queued lookahead.
	var opts token.List
	hasOpts := false
	if lx.Next() {
		r, _, err := lx.PeekRune()
		if err != nil {
			return false, token.Token{}, err
		}
		if r == '[' {
			if opts, hasOpts, err = lx.readGroupRawOpt(); err != nil {
				return false, token.Token{}, err
			}
		}
	}

	body, err := lx.readVerbatim("\\end{" + name + "}")
	if err != nil {
		return false, token.Token{}, err
	}
	// A newline right after \begin{..}[..] belongs to the markup.
	if len(body) > 0 && body[0] == '\n' {
		body = body[1:]
	}

	var out token.List
	out = append(out, wrapGroup(verbatimTokens(name))...)
	if hasOpts {
		out = append(out, token.TkChar('[', catcode.Other))
		out = append(out, opts...)
		out = append(out, token.TkChar(']', catcode.Other))
	}
	out = append(out, token.TkChar('{', catcode.Bgroup))
	out = append(out, verbatimTokens(body)...)
	out = append(out, token.TkChar('}', catcode.Egroup))
	out = append(out, token.TkCtrl("end"))
	out = append(out, wrapGroup(verbatimTokens(name))...)
	lx.pushBack(out...)
	return true, token.TkCtrl("begin"), nil
}

// wrapGroup returns toks surrounded by braces.
func wrapGroup(toks token.List) token.List {
	out := token.List{token.TkChar('{', catcode.Bgroup)}
	out = append(out, toks...)
	out = append(out, token.TkChar('}', catcode.Egroup))
	return out
}
