// anchor_test.go -
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

package doc

import "testing"

func TestAnchorIDs(t *testing.T) {
	testCases := []struct {
		anchor Anchor
		id     string
	}{
		{DocumentAnchor{}, ""},
		{SectionAnchor{Region: Main, Nums: [7]int{1}}, "sec-1"},
		{SectionAnchor{Region: Main, Nums: [7]int{1, 2, 3}}, "sec-1-2-3"},
		{SectionAnchor{Region: Main, Nums: [7]int{0, 0, 1}}, "sec-0-0-1"},
		{SectionAnchor{Region: Main, Nums: [7]int{1, 2, 0, 0, 0, 0, 0}}, "sec-1-2"},
		{SectionAnchor{Region: Front, Nums: [7]int{0, 1}}, "sec-front-0-1"},
		{SectionAnchor{Region: Back, Nums: [7]int{0, 3}}, "sec-back-0-3"},
		{PhantomAnchor{Region: Main, N: 2}, "sec-unnumbered-2"},
		{PhantomAnchor{Region: Back, N: 1}, "sec-back-unnumbered-1"},
		{FigureAnchor{Chapter: 1, N: 1}, "figure-1-1"},
		{TableAnchor{Chapter: 2, N: 7}, "table-2-7"},
		{NoteAnchor{Chapter: 1, N: 3, Part: NoteMark}, "note-1-3"},
		{NoteAnchor{Chapter: 1, N: 3, Part: NoteText}, "notetext-1-3"},
		{ItemAnchor{Chapter: 1, Path: []int{2, 1}}, "item-1-2-1"},
		{BibAnchor{N: 4}, "bib-4"},
	}
	for _, tc := range testCases {
		if got := tc.anchor.ID(); got != tc.id {
			t.Errorf("%#v: expected %q, got %q", tc.anchor, tc.id, got)
		}
	}
}

func TestCounterReset(t *testing.T) {
	var ctr Counters

	ctr.IncSection(3)
	ctr.IncFigure()
	ctr.IncFigure()
	ctr.IncTable()
	ctr.IncNote()
	if ctr.Figure != 2 || ctr.Table != 1 || ctr.Note != 1 {
		t.Fatalf("counters wrong before reset: %+v", ctr)
	}

	// Chapter increment resets the chapter-scoped counters.
	nums := ctr.IncSection(2)
	if nums != [7]int{0, 1, 0, 0, 0, 0, 0} {
		t.Errorf("section tuple: %v", nums)
	}
	if ctr.Figure != 0 || ctr.Table != 0 || ctr.Note != 0 {
		t.Errorf("counters not reset: %+v", ctr)
	}

	// Deeper increments must not reset them.
	ctr.IncFigure()
	ctr.IncSection(3)
	if ctr.Figure != 1 {
		t.Errorf("section increment reset the figure counter")
	}
}

func TestSectionTupleZeroing(t *testing.T) {
	var ctr Counters
	ctr.IncSection(2)
	ctr.IncSection(3)
	ctr.IncSection(4)
	if ctr.Section != [7]int{0, 1, 1, 1, 0, 0, 0} {
		t.Fatalf("tuple: %v", ctr.Section)
	}
	ctr.IncSection(3)
	if ctr.Section != [7]int{0, 1, 2, 0, 0, 0, 0} {
		t.Errorf("deeper levels not zeroed: %v", ctr.Section)
	}
}

func TestItemPaths(t *testing.T) {
	var ctr Counters
	ctr.PushItemLevel()
	if got := ctr.IncItem(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("first item: %v", got)
	}
	ctr.PushItemLevel()
	if got := ctr.IncItem(); len(got) != 2 || got[0] != 1 || got[1] != 1 {
		t.Fatalf("nested item: %v", got)
	}
	ctr.PopItemLevel()
	if got := ctr.IncItem(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("after pop: %v", got)
	}
}

func TestLabelRegistration(t *testing.T) {
	m := NewMeta()
	if !m.RegisterLabel("l", FigureAnchor{Chapter: 1, N: 1}) {
		t.Fatal("first registration failed")
	}
	// The second definition is ignored.
	if m.RegisterLabel("l", FigureAnchor{Chapter: 9, N: 9}) {
		t.Error("second registration accepted")
	}
	a, ok := m.Resolve("l")
	if !ok || a.ID() != "figure-1-1" {
		t.Errorf("resolution: %v %v", a, ok)
	}
}

func TestCiteOrder(t *testing.T) {
	m := NewMeta()
	if n := m.RegisterCite("b"); n != 1 {
		t.Errorf("first key: %d", n)
	}
	if n := m.RegisterCite("a"); n != 2 {
		t.Errorf("second key: %d", n)
	}
	// Re-registration is a no-op.
	if n := m.RegisterCite("b"); n != 1 {
		t.Errorf("re-registration: %d", n)
	}
	if len(m.CiteKeys) != 2 {
		t.Errorf("keys: %v", m.CiteKeys)
	}
}

func TestMediaDedup(t *testing.T) {
	m := NewMeta()
	id1 := m.RegisterMedia("img/a.png")
	id2 := m.RegisterMedia("img/b.png")
	id3 := m.RegisterMedia("img/a.png")
	if id1 != 1 || id2 != 2 || id3 != id1 {
		t.Errorf("ids: %d %d %d", id1, id2, id3)
	}
	if len(m.Media) != 2 {
		t.Errorf("media list: %v", m.Media)
	}
}
