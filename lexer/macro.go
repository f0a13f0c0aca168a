// macro.go -
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

// macroKey identifies a macro binding.  Active characters live in the
// same table as control sequences but never collide with them.
type macroKey struct {
	Name   string
	Active bool
}

// MacroKind distinguishes the three flavours of macro binding.
type MacroKind int

// The macro binding kinds.
const (
	MacroUser MacroKind = iota
	MacroPrimitive
	MacroChar
)

// Macro is one entry of the macro table: a user macro with argument
// specification and body, a primitive identified by name, or an
// implicit character created by \let.
type Macro struct {
	Kind MacroKind

	// User macros.
	Spec []ArgType
	Body token.List

	// Primitives.
	Prim string

	// Implicit characters.
	Rune rune
	Cat  catcode.Catcode
}

// ArgKind enumerates the supported argument types.
type ArgKind int

// The argument types of a macro's argument specification.
const (
	// ArgMandatory is a braced group or a single token.
	ArgMandatory ArgKind = iota
	// ArgUntil reads up to a literal token sequence.
	ArgUntil
	// ArgUntilCat reads up to the first token of a given catcode,
	// which is left unconsumed.
	ArgUntilCat
	// ArgDelim is a required delimited argument.
	ArgDelim
	// ArgOptGroup is an optional argument between two delimiter
	// tokens, with an optional default.
	ArgOptGroup
	// ArgOptGroupCat is an optional braced group recognised by
	// catcode.
	ArgOptGroupCat
	// ArgOptToken tests for one token and produces a boolean marker.
	ArgOptToken
	// ArgLiteral requires and consumes exactly one token.
	ArgLiteral
)

// ArgType describes one argument in a specification.
type ArgType struct {
	Kind ArgKind

	Seq         token.List      // ArgUntil
	Cat         catcode.Catcode // ArgUntilCat
	Open, Close token.Token     // ArgDelim, ArgOptGroup
	Tok         token.Token     // ArgOptToken, ArgLiteral
	Default     token.List      // nil means the no-value sentinel
}

// DefineMode governs clash behaviour when installing a macro or
// environment definition.
type DefineMode int

// The definition modes of the \newcommand and xparse families.
const (
	// DefineNew errors if the name is already taken.
	DefineNew DefineMode = iota
	// DefineRenew errors if the name is not yet taken.
	DefineRenew
	// DefineProvide silently skips an existing definition.
	DefineProvide
	// DefineDeclare installs unconditionally.
	DefineDeclare
)

// Sentinel control sequences used by the xparse argument types.
var (
	noValueTok     = token.TkCtrl("NoValue")
	booleanTrueTok = token.TkCtrl("BooleanTrue")
	booleanFalseTok = token.TkCtrl("BooleanFalse")
)

// defineMacro installs a user macro under the given mode.
func (lx *Lexer) defineMacro(key macroKey, m *Macro, mode DefineMode) error {
	_, exists := lx.macros[key]
	switch mode {
	case DefineNew:
		if exists {
			return lx.MakeError("macro \\" + key.Name + " already defined")
		}
	case DefineRenew:
		if !exists {
			return lx.MakeError("macro \\" + key.Name + " not defined")
		}
	case DefineProvide:
		if exists {
			return nil
		}
	}
	lx.macros[key] = m
	return nil
}

// defineEnv installs a user environment under the given mode.
func (lx *Lexer) defineEnv(name string, env *Env, mode DefineMode) error {
	_, exists := lx.envs[name]
	switch mode {
	case DefineNew:
		if exists {
			return lx.MakeError("environment " + name + " already defined")
		}
	case DefineRenew:
		if !exists {
			return lx.MakeError("environment " + name + " not defined")
		}
	case DefineProvide:
		if exists {
			return nil
		}
	}
	lx.envs[name] = env
	return nil
}

// Define installs a user macro unconditionally.  It is exported for
// callers that pre-load a macro vocabulary, e.g. tests and the
// document reader's prelude.
func (lx *Lexer) Define(name string, spec []ArgType, body token.List) {
	lx.macros[macroKey{Name: name}] = &Macro{
		Kind: MacroUser,
		Spec: spec,
		Body: body,
	}
}
