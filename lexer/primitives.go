// primitives.go -
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
	"path/filepath"
	"strconv"

	"github.com/hardentoo/texhs/catcode"
	"github.com/hardentoo/texhs/token"
)

// A primFunc executes one primitive.  The boolean result mirrors
// Lexer.control: true means the returned token is emitted, false
// means all effects have been queued.
type primFunc func(lx *Lexer, t token.Token) (bool, token.Token, error)

var primFuncs map[string]primFunc

func init() {
	primFuncs = map[string]primFunc{
		"begingroup": primBegingroup,
		"endgroup":   primEndgroup,
		"bgroup":     primBgroup,
		"egroup":     primEgroup,
		"begin":      primBeginEnv,
		"end":        primEndEnv,
		"q@endenv":   primEndEnvGroup,

		"def":                  primDef,
		"let":                  primLet,
		"catcode":              primCatcode,
		"newcommand":           defineCommand(DefineNew),
		"renewcommand":         defineCommand(DefineRenew),
		"providecommand":       defineCommand(DefineProvide),
		"DeclareRobustCommand": defineCommand(DefineDeclare),
		"newenvironment":       defineEnvironment(DefineNew),
		"renewenvironment":     defineEnvironment(DefineRenew),

		"NewDocumentCommand":         xparseCommand(DefineNew),
		"RenewDocumentCommand":       xparseCommand(DefineRenew),
		"ProvideDocumentCommand":     xparseCommand(DefineProvide),
		"DeclareDocumentCommand":     xparseCommand(DefineDeclare),
		"NewDocumentEnvironment":     xparseEnvironment(DefineNew),
		"RenewDocumentEnvironment":   xparseEnvironment(DefineRenew),
		"ProvideDocumentEnvironment": xparseEnvironment(DefineProvide),
		"DeclareDocumentEnvironment": xparseEnvironment(DefineDeclare),

		"iftrue":      primIftrue,
		"iffalse":     primIffalse,
		"else":        primElse,
		"fi":          primFi,
		"IfBooleanTF": primIfBoolean,
		"IfNoValueTF": primIfNoValue,

		"input":   primInput,
		"include": primInclude,

		"year":  primYear,
		"month": primMonth,
		"day":   primDay,
		"time":  primTime,

		"meaning":   primMeaning,
		"char":      primChar,
		"number":    primNumber,
		"undefined": primUndefined,

		"(": mathDelim(1),
		")": mathDelim(1),
		"[": mathDelim(2),
		"]": mathDelim(2),

		"verb": primVerb,
	}
}

// addPrimitives installs the primitive bindings and a small set of
// predefined user macros into a fresh macro table.
func (lx *Lexer) addPrimitives() {
	for name := range primFuncs {
		lx.macros[macroKey{Name: name}] = &Macro{Kind: MacroPrimitive, Prim: name}
	}

	// Control symbols for the special characters.
	for _, r := range "{}$%&#_" {
		lx.macros[macroKey{Name: string(r)}] = &Macro{
			Kind: MacroUser,
			Body: token.List{token.TkChar(r, catcode.Other)},
		}
	}
	lx.macros[macroKey{Name: " "}] = &Macro{
		Kind: MacroUser,
		Body: token.List{token.TkChar(' ', catcode.Space)},
	}

	// The active tie expands to a no-break space.
	lx.macros[macroKey{Name: "~", Active: true}] = &Macro{
		Kind: MacroUser,
		Body: token.List{token.TkChar(' ', catcode.Other)},
	}
}

func primBegingroup(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	lx.pushScope()
	return false, token.Token{}, nil
}

func primEndgroup(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	return false, token.Token{}, lx.popScope()
}

func primBgroup(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	lx.pushBack(token.TkChar('{', catcode.Bgroup))
	return false, token.Token{}, nil
}

func primEgroup(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	lx.pushBack(token.TkChar('}', catcode.Egroup))
	return false, token.Token{}, nil
}

// primDef implements \def with delimited parameter texts.
func primDef(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	name, err := lx.rawNextNonSpace()
	if err != nil {
		return false, token.Token{}, err
	}
	if name.Type != token.CtrlSeq {
		return false, token.Token{}, lx.MakeError("\\def requires a control sequence")
	}

	spec, err := lx.readParamText()
	if err != nil {
		return false, token.Token{}, err
	}
	body, err := lx.readGroupRaw()
	if err != nil {
		return false, token.Token{}, err
	}

	key := macroKey{Name: name.Name, Active: name.Active}
	err = lx.defineMacro(key, &Macro{Kind: MacroUser, Spec: spec, Body: body}, DefineDeclare)
	return false, token.Token{}, err
}

// readParamText reads a \def parameter text up to the body's opening
// brace.  Parameter tokens become Mandatory arguments; delimiter text
// after a parameter turns it into an Until argument; literal text
// before the first parameter becomes LiteralToken entries.
func (lx *Lexer) readParamText() ([]ArgType, error) {
	var spec []ArgType
	var lit token.List
	expect := 1
	sawParam := false
	for {
		t, ok, err := lx.rawToken()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, lx.MakeError("missing macro body")
		}
		if t.IsCat(catcode.Bgroup) {
			lx.pushBack(t)
			break
		}

		if t.Type == token.Param {
			if t.Index != expect {
				return nil, lx.MakeError("parameters must be numbered consecutively")
			}
			expect++
			for _, l := range lit {
				spec = append(spec, ArgType{Kind: ArgLiteral, Tok: l})
			}
			lit = nil
			spec = append(spec, ArgType{Kind: ArgMandatory})
			sawParam = true
			continue
		}

		if sawParam {
			last := &spec[len(spec)-1]
			if last.Kind == ArgMandatory {
				last.Kind = ArgUntil
			}
			last.Seq = append(last.Seq, t)
		} else {
			lit = append(lit, t)
		}
	}
	for _, l := range lit {
		spec = append(spec, ArgType{Kind: ArgLiteral, Tok: l})
	}
	return spec, nil
}

func primLet(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	name, err := lx.readCtrlToken()
	if err != nil {
		return false, token.Token{}, err
	}

	t, err := lx.rawNextNonSpace()
	if err != nil {
		return false, token.Token{}, err
	}
	if t.IsChar(catcode.Other, '=') {
		t2, ok, err := lx.rawToken()
		if err != nil {
			return false, token.Token{}, err
		}
		if !ok {
			return false, token.Token{}, lx.MakeError("\\let at end of input")
		}
		if t2.IsCat(catcode.Space) {
			t2, err = lx.rawNextNonSpace()
			if err != nil {
				return false, token.Token{}, err
			}
		}
		t = t2
	}

	key := macroKey{Name: name.Name, Active: name.Active}
	if t.Type == token.CtrlSeq {
		if src, ok := lx.macros[macroKey{Name: t.Name, Active: t.Active}]; ok {
			lx.macros[key] = src
		} else {
			delete(lx.macros, key)
		}
	} else {
		lx.macros[key] = &Macro{Kind: MacroChar, Rune: t.Rune, Cat: t.Cat}
	}
	return false, token.Token{}, nil
}

func primCatcode(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	c, err := lx.readNumber()
	if err != nil {
		return false, token.Token{}, err
	}
	t, err := lx.rawNextNonSpace()
	if err != nil {
		return false, token.Token{}, err
	}
	if !t.IsChar(catcode.Other, '=') {
		lx.pushBack(t)
	}
	code, err := lx.readNumber()
	if err != nil {
		return false, token.Token{}, err
	}
	cat := catcode.Catcode(code)
	if !cat.Valid() {
		return false, token.Token{}, lx.MakeError(
			"invalid catcode " + strconv.Itoa(code))
	}
	lx.cats.Set(rune(c), cat)
	return false, token.Token{}, nil
}

// readNumber reads an integer constant: decimal digits, or a
// backtick followed by a character or single-character control
// sequence.
func (lx *Lexer) readNumber() (int, error) {
	t, err := lx.rawNextNonSpace()
	if err != nil {
		return 0, err
	}

	if t.IsChar(catcode.Other, '`') {
		t2, ok, err := lx.rawToken()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, lx.MakeError("number missing at end of input")
		}
		switch {
		case t2.Type == token.Char:
			return int(t2.Rune), nil
		case t2.Type == token.CtrlSeq && len([]rune(t2.Name)) == 1:
			return int([]rune(t2.Name)[0]), nil
		}
		return 0, lx.MakeError("invalid character constant")
	}

	var digits []rune
	if t.Type != token.Char || t.Rune < '0' || t.Rune > '9' {
		return 0, lx.MakeError("number expected, got " + t.String())
	}
	digits = append(digits, t.Rune)
	for {
		t, ok, err := lx.rawToken()
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		if t.Type == token.Char && t.Rune >= '0' && t.Rune <= '9' {
			digits = append(digits, t.Rune)
			continue
		}
		if !t.IsCat(catcode.Space) {
			lx.pushBack(t)
		}
		break
	}
	return strconv.Atoi(string(digits))
}

// defineCommand implements the \newcommand family.
func defineCommand(mode DefineMode) primFunc {
	return func(lx *Lexer, _ token.Token) (bool, token.Token, error) {
		star, ok, err := lx.rawToken()
		if err != nil {
			return false, token.Token{}, err
		}
		if ok && !star.IsChar(catcode.Other, '*') {
			lx.pushBack(star)
		}

		name, err := lx.readCtrlToken()
		if err != nil {
			return false, token.Token{}, err
		}
		spec, err := lx.readLaTeXSpec()
		if err != nil {
			return false, token.Token{}, err
		}
		body, err := lx.readGroupRaw()
		if err != nil {
			return false, token.Token{}, err
		}

		key := macroKey{Name: name.Name, Active: name.Active}
		err = lx.defineMacro(key, &Macro{Kind: MacroUser, Spec: spec, Body: body}, mode)
		return false, token.Token{}, err
	}
}

// readLaTeXSpec reads the [n][default] part of a \newcommand-style
// definition and converts it to an argument specification.
func (lx *Lexer) readLaTeXSpec() ([]ArgType, error) {
	numToks, found, err := lx.readGroupRawOpt()
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	n, err := strconv.Atoi(numToks.Text())
	if err != nil || n < 0 || n > 9 {
		return nil, lx.MakeError("invalid argument count " + numToks.Text())
	}

	deflt, hasDefault, err := lx.readGroupRawOpt()
	if err != nil {
		return nil, err
	}

	var spec []ArgType
	if hasDefault {
		if n == 0 {
			return nil, lx.MakeError("optional argument requires a positive argument count")
		}
		if deflt == nil {
			deflt = token.List{}
		}
		spec = append(spec, ArgType{
			Kind:    ArgOptGroup,
			Open:    token.TkChar('[', catcode.Other),
			Close:   token.TkChar(']', catcode.Other),
			Default: deflt,
		})
		n--
	}
	for i := 0; i < n; i++ {
		spec = append(spec, ArgType{Kind: ArgMandatory})
	}
	return spec, nil
}

// defineEnvironment implements \newenvironment and \renewenvironment.
func defineEnvironment(mode DefineMode) primFunc {
	return func(lx *Lexer, _ token.Token) (bool, token.Token, error) {
		nameToks, err := lx.readGroupRaw()
		if err != nil {
			return false, token.Token{}, err
		}
		spec, err := lx.readLaTeXSpec()
		if err != nil {
			return false, token.Token{}, err
		}
		begin, err := lx.readGroupRaw()
		if err != nil {
			return false, token.Token{}, err
		}
		end, err := lx.readGroupRaw()
		if err != nil {
			return false, token.Token{}, err
		}
		env := &Env{Spec: spec, Begin: begin, End: end}
		return false, token.Token{}, lx.defineEnv(nameToks.Text(), env, mode)
	}
}

// xparseCommand implements the \NewDocumentCommand family.
func xparseCommand(mode DefineMode) primFunc {
	return func(lx *Lexer, _ token.Token) (bool, token.Token, error) {
		name, err := lx.readCtrlToken()
		if err != nil {
			return false, token.Token{}, err
		}
		specToks, err := lx.readGroupRaw()
		if err != nil {
			return false, token.Token{}, err
		}
		spec, err := lx.parseXparseSpec(specToks)
		if err != nil {
			return false, token.Token{}, err
		}
		body, err := lx.readGroupRaw()
		if err != nil {
			return false, token.Token{}, err
		}

		key := macroKey{Name: name.Name, Active: name.Active}
		err = lx.defineMacro(key, &Macro{Kind: MacroUser, Spec: spec, Body: body}, mode)
		return false, token.Token{}, err
	}
}

// xparseEnvironment implements the \NewDocumentEnvironment family.
func xparseEnvironment(mode DefineMode) primFunc {
	return func(lx *Lexer, _ token.Token) (bool, token.Token, error) {
		nameToks, err := lx.readGroupRaw()
		if err != nil {
			return false, token.Token{}, err
		}
		specToks, err := lx.readGroupRaw()
		if err != nil {
			return false, token.Token{}, err
		}
		spec, err := lx.parseXparseSpec(specToks)
		if err != nil {
			return false, token.Token{}, err
		}
		begin, err := lx.readGroupRaw()
		if err != nil {
			return false, token.Token{}, err
		}
		end, err := lx.readGroupRaw()
		if err != nil {
			return false, token.Token{}, err
		}
		env := &Env{Spec: spec, Begin: begin, End: end}
		return false, token.Token{}, lx.defineEnv(nameToks.Text(), env, mode)
	}
}

// parseXparseSpec converts an xparse argument specification to the
// internal form.
func (lx *Lexer) parseXparseSpec(toks token.List) ([]ArgType, error) {
	var spec []ArgType

	pos := 0
	next := func() (token.Token, bool) {
		for pos < len(toks) {
			t := toks[pos]
			pos++
			if t.IsCat(catcode.Space) {
				continue
			}
			return t, true
		}
		return token.Token{}, false
	}
	group := func() (token.List, error) {
		t, ok := next()
		if !ok || !t.IsCat(catcode.Bgroup) {
			return nil, lx.MakeError("malformed argument specification")
		}
		var out token.List
		depth := 0
		for pos < len(toks) {
			t := toks[pos]
			pos++
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
		return nil, lx.MakeError("malformed argument specification")
	}

	for {
		t, ok := next()
		if !ok {
			return spec, nil
		}
		if t.Type != token.Char {
			return nil, lx.MakeError("invalid argument specifier " + t.String())
		}

		switch t.Rune {
		case 'm', 'v':
			spec = append(spec, ArgType{Kind: ArgMandatory})
		case 'o':
			spec = append(spec, ArgType{
				Kind:  ArgOptGroup,
				Open:  token.TkChar('[', catcode.Other),
				Close: token.TkChar(']', catcode.Other),
			})
		case 'O':
			deflt, err := group()
			if err != nil {
				return nil, err
			}
			if deflt == nil {
				deflt = token.List{}
			}
			spec = append(spec, ArgType{
				Kind:    ArgOptGroup,
				Open:    token.TkChar('[', catcode.Other),
				Close:   token.TkChar(']', catcode.Other),
				Default: deflt,
			})
		case 's':
			spec = append(spec, ArgType{
				Kind: ArgOptToken,
				Tok:  token.TkChar('*', catcode.Other),
			})
		case 't':
			tok, ok := next()
			if !ok {
				return nil, lx.MakeError("t specifier needs a token")
			}
			spec = append(spec, ArgType{Kind: ArgOptToken, Tok: tok})
		case 'u':
			seq, err := group()
			if err != nil {
				return nil, err
			}
			spec = append(spec, ArgType{Kind: ArgUntil, Seq: seq})
		case 'l':
			spec = append(spec, ArgType{Kind: ArgUntilCat, Cat: catcode.Bgroup})
		case 'r', 'R', 'd', 'D':
			open, ok1 := next()
			close, ok2 := next()
			if !ok1 || !ok2 {
				return nil, lx.MakeError("delimited specifier needs two tokens")
			}
			at := ArgType{Open: open, Close: close}
			switch t.Rune {
			case 'r':
				at.Kind = ArgDelim
			case 'R':
				at.Kind = ArgDelim
				deflt, err := group()
				if err != nil {
					return nil, err
				}
				at.Default = deflt
				if at.Default == nil {
					at.Default = token.List{}
				}
			case 'd':
				at.Kind = ArgOptGroup
			case 'D':
				at.Kind = ArgOptGroup
				deflt, err := group()
				if err != nil {
					return nil, err
				}
				at.Default = deflt
				if at.Default == nil {
					at.Default = token.List{}
				}
			}
			spec = append(spec, at)
		case 'g':
			spec = append(spec, ArgType{Kind: ArgOptGroupCat})
		case 'G':
			deflt, err := group()
			if err != nil {
				return nil, err
			}
			if deflt == nil {
				deflt = token.List{}
			}
			spec = append(spec, ArgType{Kind: ArgOptGroupCat, Default: deflt})
		default:
			return nil, lx.MakeError("unsupported argument specifier " + string(t.Rune))
		}
	}
}

// Conditionals.

type condition struct {
	inElse bool
}

func primIftrue(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	lx.conds = append(lx.conds, condition{})
	return false, token.Token{}, nil
}

func primIffalse(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	hitElse, err := lx.skipCond(true)
	if err != nil {
		return false, token.Token{}, err
	}
	if hitElse {
		lx.conds = append(lx.conds, condition{inElse: true})
	}
	return false, token.Token{}, nil
}

func primElse(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	n := len(lx.conds)
	if n == 0 {
		return false, token.Token{}, lx.MakeError("\\else without matching \\if")
	}
	if lx.conds[n-1].inElse {
		return false, token.Token{}, lx.MakeError("two \\else in one conditional")
	}
	lx.conds = lx.conds[:n-1]
	_, err := lx.skipCond(false)
	return false, token.Token{}, err
}

func primFi(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	n := len(lx.conds)
	if n == 0 {
		return false, token.Token{}, lx.MakeError("\\fi without matching \\if")
	}
	lx.conds = lx.conds[:n-1]
	return false, token.Token{}, nil
}

// skipCond discards raw tokens up to the matching \fi, or, when
// stopAtElse is set, up to a matching \else.  Nested conditionals are
// skipped whole.  The result reports whether an \else ended the skip.
func (lx *Lexer) skipCond(stopAtElse bool) (bool, error) {
	depth := 0
	for {
		t, ok, err := lx.rawToken()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, lx.MakeError("unterminated conditional at end of input")
		}
		if t.Type != token.CtrlSeq || t.Active {
			continue
		}
		switch t.Name {
		case "iftrue", "iffalse":
			depth++
		case "else":
			if depth == 0 && stopAtElse {
				return true, nil
			}
		case "fi":
			if depth == 0 {
				return false, nil
			}
			depth--
		}
	}
}

func primIfBoolean(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	args, err := lx.parseArgs([]ArgType{
		{Kind: ArgMandatory}, {Kind: ArgMandatory}, {Kind: ArgMandatory},
	})
	if err != nil {
		return false, token.Token{}, err
	}
	if len(args[0]) == 1 && args[0][0].Equals(booleanTrueTok) {
		lx.pushBack(args[1]...)
	} else {
		lx.pushBack(args[2]...)
	}
	return false, token.Token{}, nil
}

func primIfNoValue(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	args, err := lx.parseArgs([]ArgType{
		{Kind: ArgMandatory}, {Kind: ArgMandatory}, {Kind: ArgMandatory},
	})
	if err != nil {
		return false, token.Token{}, err
	}
	if len(args[0]) == 1 && args[0][0].Equals(noValueTok) {
		lx.pushBack(args[1]...)
	} else {
		lx.pushBack(args[2]...)
	}
	return false, token.Token{}, nil
}

// File splicing.

func primInput(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	return false, token.Token{}, lx.spliceFile()
}

// primInclude splices the file like \input, preceded by a paragraph
// break.
func primInclude(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	if err := lx.spliceFile(); err != nil {
		return false, token.Token{}, err
	}
	lx.pushBack(token.TkCtrl("par"))
	return false, token.Token{}, nil
}

func (lx *Lexer) spliceFile() error {
	name, err := lx.readFileName()
	if err != nil {
		return err
	}
	if filepath.Ext(name) == "" {
		name += ".tex"
	}
	if err := lx.Include(name); err != nil {
		return lx.MakeError("cannot open input file: " + err.Error())
	}
	return nil
}

// readFileName accepts either a braced group or a run of characters
// up to the next space.
func (lx *Lexer) readFileName() (string, error) {
	t, err := lx.rawNextNonSpace()
	if err != nil {
		return "", err
	}
	if t.IsCat(catcode.Bgroup) {
		lx.pushBack(t)
		toks, err := lx.readGroupRaw()
		if err != nil {
			return "", err
		}
		return toks.Text(), nil
	}

	var name []rune
	for {
		if t.Type != token.Char || t.IsCat(catcode.Space) {
			lx.pushBack(t)
			break
		}
		name = append(name, t.Rune)
		var ok bool
		t, ok, err = lx.rawToken()
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
	}
	if len(name) == 0 {
		return "", lx.MakeError("file name missing")
	}
	return string(name), nil
}

// Date primitives query the clock configured on the lexer.

func (lx *Lexer) pushNumber(n int) {
	lx.pushBack(verbatimTokens(strconv.Itoa(n))...)
}

func primYear(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	lx.pushNumber(lx.Now.Year())
	return false, token.Token{}, nil
}

func primMonth(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	lx.pushNumber(int(lx.Now.Month()))
	return false, token.Token{}, nil
}

func primDay(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	lx.pushNumber(lx.Now.Day())
	return false, token.Token{}, nil
}

func primTime(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	lx.pushNumber(lx.Now.Hour()*60 + lx.Now.Minute())
	return false, token.Token{}, nil
}

// Introspection.

func primMeaning(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	t, ok, err := lx.rawToken()
	if err != nil {
		return false, token.Token{}, err
	}
	if !ok {
		return false, token.Token{}, lx.MakeError("\\meaning at end of input")
	}

	var desc string
	switch {
	case t.Type == token.Char:
		desc = "the character " + string(t.Rune)
	case t.Type == token.Param:
		desc = "macro parameter character #"
	default:
		m, bound := lx.macros[macroKey{Name: t.Name, Active: t.Active}]
		switch {
		case !bound:
			desc = "undefined"
		case m.Kind == MacroPrimitive:
			desc = "\\" + m.Prim
		case m.Kind == MacroChar:
			desc = "the character " + string(m.Rune)
		default:
			desc = "macro:->" + m.Body.Detok('\\')
		}
	}
	lx.pushBack(verbatimTokens(desc)...)
	return false, token.Token{}, nil
}

func primChar(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	n, err := lx.readNumber()
	if err != nil {
		return false, token.Token{}, err
	}
	lx.pushBack(token.TkChar(rune(n), catcode.Other))
	return false, token.Token{}, nil
}

func primNumber(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	n, err := lx.readNumber()
	if err != nil {
		return false, token.Token{}, err
	}
	lx.pushNumber(n)
	return false, token.Token{}, nil
}

func primUndefined(lx *Lexer, t token.Token) (bool, token.Token, error) {
	lx.log.Warnf("undefined control sequence \\%s at %s", t.Name, lx.Location())
	return false, token.Token{}, nil
}

// mathDelim maps \( \) \[ \] to math-shift characters: one for
// inline, two for display.
func mathDelim(count int) primFunc {
	return func(lx *Lexer, _ token.Token) (bool, token.Token, error) {
		for i := 0; i < count; i++ {
			lx.pushBack(token.TkChar('$', catcode.MathShift))
		}
		return false, token.Token{}, nil
	}
}

// primVerb reads \verb<delim>...<delim> with verbatim catcodes.
func primVerb(lx *Lexer, _ token.Token) (bool, token.Token, error) {
	if !lx.Next() {
		return false, token.Token{}, lx.MakeError("\\verb at end of input")
	}
	r, size, err := lx.PeekRune()
	if err != nil {
		return false, token.Token{}, err
	}
	lx.Skip(size)
	body, err := lx.readVerbatim(string(r))
	if err != nil {
		return false, token.Token{}, err
	}

	out := token.List{token.TkChar('{', catcode.Bgroup)}
	out = append(out, verbatimTokens(body)...)
	out = append(out, token.TkChar('}', catcode.Egroup))
	lx.pushBack(out...)
	return true, token.TkCtrl("verb"), nil
}
