// walker_test.go -
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

import (
	"errors"
	"testing"

	"github.com/hardentoo/texhs/doc"
	"github.com/hardentoo/texhs/parser"
)

func plainP(text string) P[string] {
	return func(c *Ctx) (string, error) {
		a, err := Item(c)
		if err != nil {
			return "", err
		}
		pl, ok := a.(*parser.Plain)
		if !ok || pl.Text != text {
			return "", &Error{Kind: Unexpected, Atom: a}
		}
		return pl.Text, nil
	}
}

func newTestCtx(atoms ...parser.Atom) *Ctx {
	return NewCtx(atoms, doc.NewMeta())
}

func TestItemAndEOG(t *testing.T) {
	c := newTestCtx(&parser.Plain{Text: "a"})
	a, err := Item(c)
	if err != nil {
		t.Fatal(err)
	}
	if a.(*parser.Plain).Text != "a" {
		t.Errorf("wrong atom: %#v", a)
	}
	_, err = Item(c)
	var werr *Error
	if !errors.As(err, &werr) || werr.Kind != EndOfGroup {
		t.Errorf("expected EndOfGroup, got %v", err)
	}
}

func TestChoiceBacktracksFocus(t *testing.T) {
	c := newTestCtx(&parser.Plain{Text: "b"})
	got, err := Run(c, Choice(plainP("a"), plainP("b")))
	if err != nil {
		t.Fatal(err)
	}
	if got != "b" {
		t.Errorf("wrong result %q", got)
	}
	if len(c.Focus) != 0 {
		t.Error("focus not consumed")
	}
}

func TestTryRestoresUserState(t *testing.T) {
	c := newTestCtx(&parser.Plain{Text: "b"})

	failing := func(c *Ctx) (string, error) {
		// Mutate counters, then fail: the snapshot must win.
		c.St.Ctr.IncSection(2)
		c.St.Ctr.IncFigure()
		return "", Fail("nope")
	}
	_, err := Run(c, Try(failing))
	if err == nil {
		t.Fatal("expected failure")
	}
	if c.St.Ctr.Chapter() != 0 || c.St.Ctr.Figure != 0 {
		t.Errorf("state not rolled back: %+v", c.St.Ctr)
	}
}

func TestGlobalMetaSurvivesBacktracking(t *testing.T) {
	c := newTestCtx(&parser.Plain{Text: "b"})

	failing := func(c *Ctx) (string, error) {
		c.Meta.RegisterLabel("l", doc.DocumentAnchor{})
		c.Meta.RegisterCite("key")
		return "", Fail("nope")
	}
	_, _ = Run(c, Try(failing))

	if _, ok := c.Meta.Resolve("l"); !ok {
		t.Error("label registration rolled back")
	}
	if c.Meta.CiteOrder["key"] != 1 {
		t.Error("citation registration rolled back")
	}
}

func TestGoDownUp(t *testing.T) {
	c := newTestCtx(
		&parser.Group{Name: "x", Body: []parser.Atom{
			&parser.Plain{Text: "in"},
			&parser.Plain{Text: "more"},
		}},
		&parser.Plain{Text: "after"},
	)
	if _, err := GoDown(c); err != nil {
		t.Fatal(err)
	}
	if got, _ := Run(c, plainP("in")); got != "in" {
		t.Fatalf("wrong focus after GoDown")
	}

	// SafeUp must refuse while atoms remain.
	if _, err := SafeUp(c); err == nil {
		t.Error("SafeUp succeeded on a non-empty focus")
	}

	if _, err := GoUp(c); err != nil {
		t.Fatal(err)
	}
	if got, _ := Run(c, plainP("after")); got != "after" {
		t.Error("wrong focus after GoUp")
	}
}

func TestInCmd(t *testing.T) {
	c := newTestCtx(
		&parser.Command{
			Name: "emph",
			Args: []parser.Arg{parser.ObligArg(&parser.Plain{Text: "word"})},
		},
		&parser.Plain{Text: "tail"},
	)
	got, err := Run(c, InCmd("emph", plainP("word")))
	if err != nil {
		t.Fatal(err)
	}
	if got != "word" {
		t.Errorf("wrong value %q", got)
	}
	if tail, _ := Run(c, plainP("tail")); tail != "tail" {
		t.Error("focus not restored after InCmd")
	}
}

func TestManyAndSepBy(t *testing.T) {
	c := newTestCtx(
		&parser.Plain{Text: "a"},
		&parser.Plain{Text: "a"},
		&parser.Plain{Text: "b"},
	)
	got, err := Run(c, Many(plainP("a")))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("Many: %v", got)
	}

	c = newTestCtx(
		&parser.Plain{Text: "x"},
		&parser.White{},
		&parser.Plain{Text: "x"},
	)
	sep := Satisfy(func(a parser.Atom) bool {
		_, ok := a.(*parser.White)
		return ok
	})
	xs, err := Run(c, SepBy(plainP("x"), sep))
	if err != nil {
		t.Fatal(err)
	}
	if len(xs) != 2 {
		t.Errorf("SepBy: %v", xs)
	}
}

func TestOptNested(t *testing.T) {
	c := newTestCtx(
		&parser.Group{Body: []parser.Atom{
			&parser.Group{Body: []parser.Atom{
				&parser.Plain{Text: "deep"},
			}},
		}},
	)
	got, err := Run(c, OptNested(plainP("deep")))
	if err != nil {
		t.Fatal(err)
	}
	if got != "deep" {
		t.Errorf("wrong value %q", got)
	}
}

func TestRest(t *testing.T) {
	c := newTestCtx(&parser.Plain{Text: "a"}, &parser.White{})
	atoms, err := Run(c, Rest)
	if err != nil {
		t.Fatal(err)
	}
	if len(atoms) != 2 {
		t.Errorf("rest: %#v", atoms)
	}
	if len(c.Focus) != 0 {
		t.Error("focus not exhausted")
	}
}

func TestChildAdoptState(t *testing.T) {
	c := newTestCtx(&parser.Plain{Text: "a"})
	sub := c.Child([]parser.Atom{&parser.Plain{Text: "x"}})
	sub.St.Ctr.IncSection(2)
	c.AdoptState(sub)
	if c.St.Ctr.Chapter() != 1 {
		t.Errorf("state not adopted: %+v", c.St.Ctr)
	}
	if len(c.Focus) != 1 {
		t.Error("parent focus disturbed")
	}
}

func TestInGrpChoice(t *testing.T) {
	c := newTestCtx(&parser.Group{
		Name: "quote",
		Body: []parser.Atom{&parser.Plain{Text: "q"}},
	})
	got, err := Run(c, InGrpChoice([]string{"quotation", "quote"}, plainP("q")))
	if err != nil {
		t.Fatal(err)
	}
	if got != "q" {
		t.Errorf("wrong value %q", got)
	}
}
