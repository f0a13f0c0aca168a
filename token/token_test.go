// token_test.go -
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

package token

import (
	"testing"

	"github.com/hardentoo/texhs/catcode"
)

func TestDetok(t *testing.T) {
	testCases := []struct {
		toks List
		out  string
	}{
		{
			List{TkCtrl("section"), TkChar('{', catcode.Bgroup),
				TkChar('A', catcode.Letter), TkChar('}', catcode.Egroup)},
			"\\section{A}",
		},
		{
			// A space separates a control word from a following
			// letter.
			List{TkCtrl("foo"), TkChar('x', catcode.Letter)},
			"\\foo x",
		},
		{
			// Control symbols need no separating space.
			List{TkCtrl("$"), TkChar('x', catcode.Letter)},
			"\\$x",
		},
		{
			List{TkParam(1), TkChar('a', catcode.Letter)},
			"#1a",
		},
		{
			List{Token{Type: Param, Index: 2, Depth: 2}},
			"##2",
		},
		{
			List{TkActive('~'), TkChar('x', catcode.Letter)},
			"~x",
		},
	}
	for i, tc := range testCases {
		if got := tc.toks.Detok('\\'); got != tc.out {
			t.Errorf("test %d: expected %q, got %q", i, tc.out, got)
		}
	}
}

func TestEquals(t *testing.T) {
	testCases := []struct {
		a, b  Token
		equal bool
	}{
		{TkChar('a', catcode.Letter), TkChar('a', catcode.Letter), true},
		{TkChar('a', catcode.Letter), TkChar('a', catcode.Other), false},
		{TkCtrl("foo"), TkCtrl("foo"), true},
		{TkCtrl("~"), TkActive('~'), false},
		{TkParam(1), TkParam(1), true},
		{TkParam(1), Token{Type: Param, Index: 1, Depth: 2}, false},
	}
	for i, tc := range testCases {
		if got := tc.a.Equals(tc.b); got != tc.equal {
			t.Errorf("test %d: Equals = %v, expected %v", i, got, tc.equal)
		}
	}
}

func TestText(t *testing.T) {
	toks := List{
		TkChar('k', catcode.Letter),
		TkChar('e', catcode.Letter),
		TkChar('y', catcode.Letter),
		TkCtrl("relax"),
		TkChar('1', catcode.Other),
	}
	if got := toks.Text(); got != "key1" {
		t.Errorf("expected %q, got %q", "key1", got)
	}
}
