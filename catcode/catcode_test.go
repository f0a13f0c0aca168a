// catcode_test.go -
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

package catcode

import "testing"

func TestDefaults(t *testing.T) {
	table := NewTable()
	testCases := []struct {
		r   rune
		cat Catcode
	}{
		{'\\', Escape},
		{'{', Bgroup},
		{'}', Egroup},
		{'$', MathShift},
		{'&', AlignTab},
		{'\n', Eol},
		{'#', ParamPrefix},
		{'^', Supscript},
		{'_', Subscript},
		{' ', Space},
		{'\t', Space},
		{'a', Letter},
		{'Z', Letter},
		{'1', Other},
		{'.', Other},
		{'~', Active},
		{'%', Comment},
		{'\x7f', Invalid},
		{'ü', Other},
	}
	for _, tc := range testCases {
		if got := table.Cat(tc.r); got != tc.cat {
			t.Errorf("catcode of %q: expected %v, got %v", tc.r, tc.cat, got)
		}
	}
}

func TestSetAndClone(t *testing.T) {
	table := NewTable()
	table.Set('@', Letter)
	if table.Cat('@') != Letter {
		t.Error("set did not take effect")
	}

	snapshot := table.Clone()
	table.Set('@', Other)
	table.Set('|', Active)
	if snapshot.Cat('@') != Letter {
		t.Error("clone shares state with original")
	}
	if snapshot.Cat('|') != Other {
		t.Error("clone picked up later changes")
	}
}

func TestValid(t *testing.T) {
	if !Escape.Valid() || !Invalid.Valid() {
		t.Error("category codes 0 and 15 must be valid")
	}
	if Catcode(16).Valid() || Catcode(-1).Valid() {
		t.Error("out-of-range catcodes must be invalid")
	}
}
