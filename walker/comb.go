// comb.go -
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

package walker

import "github.com/hardentoo/texhs/parser"

// Choice tries the given parsers in order, restoring the context
// after every failed alternative.
func Choice[T any](ps ...P[T]) P[T] {
	return func(c *Ctx) (T, error) {
		var zero T
		var err error
		for _, p := range ps {
			var v T
			v, err = Try(p)(c)
			if err == nil {
				return v, nil
			}
		}
		if err == nil {
			err = Fail("empty choice")
		}
		return zero, err
	}
}

// Many applies p zero or more times.
func Many[T any](p P[T]) P[[]T] {
	return func(c *Ctx) ([]T, error) {
		var out []T
		for {
			v, err := Try(p)(c)
			if err != nil {
				return out, nil
			}
			out = append(out, v)
		}
	}
}

// Many1 applies p one or more times.
func Many1[T any](p P[T]) P[[]T] {
	return func(c *Ctx) ([]T, error) {
		first, err := p(c)
		if err != nil {
			return nil, err
		}
		rest, _ := Many(p)(c)
		return append([]T{first}, rest...), nil
	}
}

// Count applies p exactly n times.
func Count[T any](n int, p P[T]) P[[]T] {
	return func(c *Ctx) ([]T, error) {
		out := make([]T, 0, n)
		for i := 0; i < n; i++ {
			v, err := p(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
}

// Opt applies p and returns nil when it fails.
func Opt[T any](p P[T]) P[*T] {
	return func(c *Ctx) (*T, error) {
		v, err := Try(p)(c)
		if err != nil {
			return nil, nil
		}
		return &v, nil
	}
}

// SepBy parses zero or more p separated by sep.
func SepBy[T, S any](p P[T], sep P[S]) P[[]T] {
	return func(c *Ctx) ([]T, error) {
		first, err := Try(p)(c)
		if err != nil {
			return nil, nil
		}
		out := []T{first}
		for {
			_, err := Try(sep)(c)
			if err != nil {
				return out, nil
			}
			v, err := p(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
}

// SepEndBy parses zero or more p separated and optionally ended by
// sep.
func SepEndBy[T, S any](p P[T], sep P[S]) P[[]T] {
	return func(c *Ctx) ([]T, error) {
		var out []T
		for {
			v, err := Try(p)(c)
			if err != nil {
				return out, nil
			}
			out = append(out, v)
			if _, err := Try(sep)(c); err != nil {
				return out, nil
			}
		}
	}
}

// List parses items introduced by the bullet command: each item is
// the bullet followed by p.
func List[T any](bullet string, p P[T]) P[[]T] {
	item := func(c *Ctx) (T, error) {
		var zero T
		if _, err := Cmd(bullet)(c); err != nil {
			return zero, err
		}
		return p(c)
	}
	return Many1[T](item)
}

// Cmd consumes a Command atom with the given name.
func Cmd(name string) P[*parser.Command] {
	return func(c *Ctx) (*parser.Command, error) {
		a, ok := c.PeekAtom()
		if !ok {
			return nil, errEOG
		}
		cmd, isCmd := a.(*parser.Command)
		if !isCmd || cmd.Name != name {
			return nil, &Error{Kind: Unexpected, Atom: a}
		}
		c.Focus = c.Focus[1:]
		return cmd, nil
	}
}

// CmdOf consumes a Command atom with one of the given names.
func CmdOf(names ...string) P[*parser.Command] {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(c *Ctx) (*parser.Command, error) {
		a, ok := c.PeekAtom()
		if !ok {
			return nil, errEOG
		}
		cmd, isCmd := a.(*parser.Command)
		if !isCmd || !set[cmd.Name] {
			return nil, &Error{Kind: Unexpected, Atom: a}
		}
		c.Focus = c.Focus[1:]
		return cmd, nil
	}
}

// Grp consumes a Group atom with the given name.
func Grp(name string) P[*parser.Group] {
	return GrpOf(name)
}

// GrpOf consumes a Group atom with one of the given names.
func GrpOf(names ...string) P[*parser.Group] {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(c *Ctx) (*parser.Group, error) {
		a, ok := c.PeekAtom()
		if !ok {
			return nil, errEOG
		}
		grp, isGrp := a.(*parser.Group)
		if !isGrp || !set[grp.Name] {
			return nil, &Error{Kind: Unexpected, Atom: a}
		}
		c.Focus = c.Focus[1:]
		return grp, nil
	}
}

// InCmd parses a command by name and runs p over its first mandatory
// argument.
func InCmd[T any](name string, p P[T]) P[T] {
	return func(c *Ctx) (T, error) {
		var zero T
		cmd, err := Cmd(name)(c)
		if err != nil {
			return zero, err
		}
		body, ok := parser.ObligArgBody(cmd.Args, 0)
		if !ok {
			return zero, Fail("\\" + name + " without argument")
		}
		return inside(c, name, body, c.Focus, p)
	}
}

// Pair carries the results of a two-argument command.
type Pair[A, B any] struct {
	First  A
	Second B
}

// InCmd2 parses a command and runs pa, pb over its first two
// mandatory arguments.
func InCmd2[A, B any](name string, pa P[A], pb P[B]) P[Pair[A, B]] {
	return func(c *Ctx) (Pair[A, B], error) {
		var zero Pair[A, B]
		cmd, err := Cmd(name)(c)
		if err != nil {
			return zero, err
		}
		a1, ok1 := parser.ObligArgBody(cmd.Args, 0)
		a2, ok2 := parser.ObligArgBody(cmd.Args, 1)
		if !ok1 || !ok2 {
			return zero, Fail("\\" + name + " needs two arguments")
		}
		va, err := inside(c, name, a1, c.Focus, pa)
		if err != nil {
			return zero, err
		}
		vb, err := inside(c, name, a2, c.Focus, pb)
		if err != nil {
			return zero, err
		}
		return Pair[A, B]{First: va, Second: vb}, nil
	}
}

// Triple carries the results of a three-argument command.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// InCmd3 parses a command and runs pa, pb, pc over its first three
// mandatory arguments.
func InCmd3[A, B, C any](name string, pa P[A], pb P[B], pc P[C]) P[Triple[A, B, C]] {
	return func(c *Ctx) (Triple[A, B, C], error) {
		var zero Triple[A, B, C]
		cmd, err := Cmd(name)(c)
		if err != nil {
			return zero, err
		}
		a1, ok1 := parser.ObligArgBody(cmd.Args, 0)
		a2, ok2 := parser.ObligArgBody(cmd.Args, 1)
		a3, ok3 := parser.ObligArgBody(cmd.Args, 2)
		if !ok1 || !ok2 || !ok3 {
			return zero, Fail("\\" + name + " needs three arguments")
		}
		va, err := inside(c, name, a1, c.Focus, pa)
		if err != nil {
			return zero, err
		}
		vb, err := inside(c, name, a2, c.Focus, pb)
		if err != nil {
			return zero, err
		}
		vc, err := inside(c, name, a3, c.Focus, pc)
		if err != nil {
			return zero, err
		}
		return Triple[A, B, C]{First: va, Second: vb, Third: vc}, nil
	}
}

// InCmdOpt2 parses a command and runs pa, pb over its first two
// optional arguments; a missing optional yields that parser's zero
// value.
func InCmdOpt2[A, B any](name string, pa P[A], pb P[B]) P[Pair[A, B]] {
	return func(c *Ctx) (Pair[A, B], error) {
		var res Pair[A, B]
		cmd, err := Cmd(name)(c)
		if err != nil {
			return res, err
		}
		if body, ok := parser.OptArgBody(cmd.Args, 0); ok {
			res.First, err = inside(c, name, body, c.Focus, pa)
			if err != nil {
				return res, err
			}
		}
		if body, ok := parser.OptArgBody(cmd.Args, 1); ok {
			res.Second, err = inside(c, name, body, c.Focus, pb)
			if err != nil {
				return res, err
			}
		}
		return res, nil
	}
}

// WithOpts carries a command's star and optional arguments next to
// the result of its mandatory argument.
type WithOpts[T any] struct {
	Star bool
	Opts [][]parser.Atom
	Val  T
}

// InCmdWithOpts parses a command, records its star and optional
// arguments, and runs p over the first mandatory argument.
func InCmdWithOpts[T any](name string, p P[T]) P[WithOpts[T]] {
	return func(c *Ctx) (WithOpts[T], error) {
		var zero WithOpts[T]
		cmd, err := Cmd(name)(c)
		if err != nil {
			return zero, err
		}
		res := WithOpts[T]{Star: parser.HasStar(cmd.Args)}
		for _, arg := range cmd.Args {
			if arg.Kind == parser.Opt {
				res.Opts = append(res.Opts, arg.Body)
			}
		}
		body, ok := parser.ObligArgBody(cmd.Args, 0)
		if !ok {
			return zero, Fail("\\" + name + " without argument")
		}
		v, err := inside(c, name, body, c.Focus, p)
		if err != nil {
			return zero, err
		}
		res.Val = v
		return res, nil
	}
}

// InCmdCheckStar parses a command and reports whether it carries a
// star, running p over the first mandatory argument.
func InCmdCheckStar[T any](name string, p P[T]) P[Pair[bool, T]] {
	return func(c *Ctx) (Pair[bool, T], error) {
		w, err := InCmdWithOpts[T](name, p)(c)
		if err != nil {
			return Pair[bool, T]{}, err
		}
		return Pair[bool, T]{First: w.Star, Second: w.Val}, nil
	}
}

// InGrp parses a named group and runs p over its body.
func InGrp[T any](name string, p P[T]) P[T] {
	return InGrpChoice[T]([]string{name}, p)
}

// InGrpChoice parses a group with one of the given names and runs p
// over its body.
func InGrpChoice[T any](names []string, p P[T]) P[T] {
	return func(c *Ctx) (T, error) {
		var zero T
		grp, err := GrpOf(names...)(c)
		if err != nil {
			return zero, err
		}
		return inside(c, grp.Name, grp.Body, c.Focus, p)
	}
}

// InMathGrp parses a maths group and runs p over its body.
func InMathGrp[T any](p P[T]) P[Pair[parser.MathType, T]] {
	return func(c *Ctx) (Pair[parser.MathType, T], error) {
		var zero Pair[parser.MathType, T]
		a, ok := c.PeekAtom()
		if !ok {
			return zero, errEOG
		}
		mg, isMath := a.(*parser.MathGroup)
		if !isMath {
			return zero, &Error{Kind: Unexpected, Atom: a}
		}
		c.Focus = c.Focus[1:]
		v, err := inside(c, "math", mg.Body, c.Focus, p)
		if err != nil {
			return zero, err
		}
		return Pair[parser.MathType, T]{First: mg.Type, Second: v}, nil
	}
}

// InSupScript runs p over a superscript body.
func InSupScript[T any](p P[T]) P[T] {
	return func(c *Ctx) (T, error) {
		var zero T
		a, ok := c.PeekAtom()
		if !ok {
			return zero, errEOG
		}
		s, isSup := a.(*parser.SupScript)
		if !isSup {
			return zero, &Error{Kind: Unexpected, Atom: a}
		}
		c.Focus = c.Focus[1:]
		return inside(c, "sup", s.Body, c.Focus, p)
	}
}

// InSubScript runs p over a subscript body.
func InSubScript[T any](p P[T]) P[T] {
	return func(c *Ctx) (T, error) {
		var zero T
		a, ok := c.PeekAtom()
		if !ok {
			return zero, errEOG
		}
		s, isSub := a.(*parser.SubScript)
		if !isSub {
			return zero, &Error{Kind: Unexpected, Atom: a}
		}
		c.Focus = c.Focus[1:]
		return inside(c, "sub", s.Body, c.Focus, p)
	}
}

// OptNested tries p at the current level; on failure it descends
// into the first container and retries, repeatedly.
func OptNested[T any](p P[T]) P[T] {
	return func(c *Ctx) (T, error) {
		v, err := Try(p)(c)
		if err == nil {
			return v, nil
		}
		m := c.save()
		for {
			if _, derr := GoDown(c); derr != nil {
				c.restore(m)
				var zero T
				return zero, err
			}
			v, perr := Try(p)(c)
			if perr == nil {
				return v, nil
			}
		}
	}
}
