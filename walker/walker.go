// walker.go -
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

// Package walker provides backtracking parser combinators over atom
// trees.  A parser runs against a zipper-like context: the focus (the
// atoms ahead) plus a stack of parent frames.  Document state
// (counters, current anchor, region) is threaded alongside and rolled
// back together with the context when an alternative fails; the
// global tables in doc.Meta are never rolled back.
package walker

import (
	"fmt"

	"github.com/hardentoo/texhs/doc"
	"github.com/hardentoo/texhs/parser"
)

// Frame is one level of the parent stack: the structural tag of the
// container that was entered and the atoms following it.
type Frame struct {
	Tag  string
	Rest []parser.Atom
}

// Ctx is the walker context.  Ctx values are mutated in place;
// backtracking restores a snapshot.
type Ctx struct {
	Focus   []parser.Atom
	Parents []Frame

	// St is rolled back on backtracking.
	St doc.State

	// Meta holds the global tables; registrations persist.
	Meta *doc.Meta
}

// NewCtx returns a context focused on the given atom sequence.
func NewCtx(atoms []parser.Atom, meta *doc.Meta) *Ctx {
	return &Ctx{
		Focus: atoms,
		St:    doc.NewState(),
		Meta:  meta,
	}
}

// Child returns a context over a detached atom sequence (a macro
// argument, an environment body) sharing this context's state and
// meta.  Fold the state back with AdoptState when done.
func (c *Ctx) Child(atoms []parser.Atom) *Ctx {
	return &Ctx{Focus: atoms, St: c.St, Meta: c.Meta}
}

// AdoptState takes over the document state of a child context.
func (c *Ctx) AdoptState(sub *Ctx) {
	c.St = sub.St
}

type mark struct {
	focus   []parser.Atom
	parents []Frame
	st      doc.State
}

func (c *Ctx) save() mark {
	return mark{
		focus:   c.Focus,
		parents: append([]Frame{}, c.Parents...),
		st:      c.St.Clone(),
	}
}

func (c *Ctx) restore(m mark) {
	c.Focus = m.focus
	c.Parents = m.parents
	c.St = m.st
}

// ErrKind tags walker errors.
type ErrKind int

// The error kinds.
const (
	// EndOfGroup signals an empty focus.
	EndOfGroup ErrKind = iota
	// Unexpected signals an atom that no alternative accepts.
	Unexpected
	// UserErr carries a message from a parser.
	UserErr
)

// Error is a walker failure.  Failures are expected backtracking
// signals; they only surface when no alternative succeeds.
type Error struct {
	Kind ErrKind
	Atom parser.Atom
	Msg  string
}

func (e *Error) Error() string {
	switch e.Kind {
	case EndOfGroup:
		return "end of group"
	case Unexpected:
		return fmt.Sprintf("unexpected %T", e.Atom)
	default:
		return e.Msg
	}
}

var errEOG = &Error{Kind: EndOfGroup}

// Fail returns a user error.
func Fail(msg string) error {
	return &Error{Kind: UserErr, Msg: msg}
}

// P is a parser producing a value of type T.
type P[T any] func(c *Ctx) (T, error)

// Run applies p to the context and surfaces its result.
func Run[T any](c *Ctx, p P[T]) (T, error) {
	return p(c)
}

// Item consumes one atom from the focus.
func Item(c *Ctx) (parser.Atom, error) {
	if len(c.Focus) == 0 {
		return nil, errEOG
	}
	a := c.Focus[0]
	c.Focus = c.Focus[1:]
	return a, nil
}

// PeekAtom returns the focus head without consuming it.
func (c *Ctx) PeekAtom() (parser.Atom, bool) {
	if len(c.Focus) == 0 {
		return nil, false
	}
	return c.Focus[0], true
}

// Rest consumes and returns the whole remaining focus.
func Rest(c *Ctx) ([]parser.Atom, error) {
	out := c.Focus
	c.Focus = nil
	return out, nil
}

// Satisfy consumes one atom matching pred.
func Satisfy(pred func(parser.Atom) bool) P[parser.Atom] {
	return func(c *Ctx) (parser.Atom, error) {
		a, ok := c.PeekAtom()
		if !ok {
			return nil, errEOG
		}
		if !pred(a) {
			return nil, &Error{Kind: Unexpected, Atom: a}
		}
		c.Focus = c.Focus[1:]
		return a, nil
	}
}

// Peek succeeds without consuming input when the focus head matches
// pred.
func Peek(pred func(parser.Atom) bool) P[parser.Atom] {
	return func(c *Ctx) (parser.Atom, error) {
		a, ok := c.PeekAtom()
		if !ok {
			return nil, errEOG
		}
		if !pred(a) {
			return nil, &Error{Kind: Unexpected, Atom: a}
		}
		return a, nil
	}
}

// Try runs p and restores the context and state when it fails.
func Try[T any](p P[T]) P[T] {
	return func(c *Ctx) (T, error) {
		m := c.save()
		v, err := p(c)
		if err != nil {
			c.restore(m)
		}
		return v, err
	}
}

// Unit is the result type of parsers run for effect only.
type Unit = struct{}

// Done is the Unit value.
var Done = Unit{}

// GoDown descends into the container at the focus head.
func GoDown(c *Ctx) (Unit, error) {
	a, ok := c.PeekAtom()
	if !ok {
		return Done, errEOG
	}
	var tag string
	var body []parser.Atom
	switch a := a.(type) {
	case *parser.Group:
		tag, body = a.Name, a.Body
	case *parser.MathGroup:
		tag, body = "math", a.Body
	case *parser.SupScript:
		tag, body = "sup", a.Body
	case *parser.SubScript:
		tag, body = "sub", a.Body
	default:
		return Done, &Error{Kind: Unexpected, Atom: a}
	}
	c.Parents = append(c.Parents, Frame{Tag: tag, Rest: c.Focus[1:]})
	c.Focus = body
	return Done, nil
}

// GoUp returns to the parent context, discarding any remaining focus.
func GoUp(c *Ctx) (Unit, error) {
	n := len(c.Parents)
	if n == 0 {
		return Done, Fail("already at top level")
	}
	fr := c.Parents[n-1]
	c.Parents = c.Parents[:n-1]
	c.Focus = fr.Rest
	return Done, nil
}

// SafeUp returns to the parent context and fails unless the current
// focus is exhausted.
func SafeUp(c *Ctx) (Unit, error) {
	if len(c.Focus) > 0 {
		return Done, &Error{Kind: Unexpected, Atom: c.Focus[0]}
	}
	return GoUp(c)
}

// EOG succeeds on an exhausted focus.
func EOG(c *Ctx) (Unit, error) {
	if len(c.Focus) > 0 {
		return Done, &Error{Kind: Unexpected, Atom: c.Focus[0]}
	}
	return Done, nil
}

// EOF succeeds at the very end of the input.
func EOF(c *Ctx) (Unit, error) {
	if len(c.Focus) > 0 {
		return Done, &Error{Kind: Unexpected, Atom: c.Focus[0]}
	}
	if len(c.Parents) > 0 {
		return Done, Fail("not at top level")
	}
	return Done, nil
}

// inside runs p over body as a child level and restores the focus to
// rest afterwards.
func inside[T any](c *Ctx, tag string, body, rest []parser.Atom, p P[T]) (T, error) {
	c.Parents = append(c.Parents, Frame{Tag: tag, Rest: rest})
	c.Focus = body
	v, err := p(c)
	if err != nil {
		var zero T
		return zero, err
	}
	n := len(c.Parents)
	fr := c.Parents[n-1]
	c.Parents = c.Parents[:n-1]
	c.Focus = fr.Rest
	return v, nil
}
