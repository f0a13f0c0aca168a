// counter.go -
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

// ChapterLevel is the sectioning level whose increment resets the
// chapter-scoped counters.
const ChapterLevel = 2

// Counters holds the document counters.  Counters is a value type:
// the walker snapshots it for backtracking, so every mutation must go
// through a pointer receiver on the walker's copy.
type Counters struct {
	// Section is the seven-level section number tuple
	// (part, chapter, section, ...).
	Section [7]int

	// Phantom numbers unnumbered sections.
	Phantom int

	// Chapter-scoped element counters.
	Figure int
	Table  int
	Note   int

	// Item holds the item number at each open list level.
	Item []int
}

// IncSection increments the section counter at the given level
// (1-based), zeroes all deeper levels, and resets the chapter-scoped
// counters when the chapter level is reached.  It returns the new
// tuple.
func (c *Counters) IncSection(level int) [7]int {
	if level < 1 {
		level = 1
	}
	if level > len(c.Section) {
		level = len(c.Section)
	}
	c.Section[level-1]++
	for i := level; i < len(c.Section); i++ {
		c.Section[i] = 0
	}
	if level <= ChapterLevel {
		c.Figure = 0
		c.Table = 0
		c.Note = 0
		c.Item = nil
	}
	return c.Section
}

// Chapter returns the current chapter number.
func (c *Counters) Chapter() int { return c.Section[ChapterLevel-1] }

// IncPhantom numbers the next unnumbered section.
func (c *Counters) IncPhantom() int {
	c.Phantom++
	return c.Phantom
}

// IncFigure numbers the next figure within the chapter.
func (c *Counters) IncFigure() int {
	c.Figure++
	return c.Figure
}

// IncTable numbers the next table within the chapter.
func (c *Counters) IncTable() int {
	c.Table++
	return c.Table
}

// IncNote numbers the next footnote within the chapter.
func (c *Counters) IncNote() int {
	c.Note++
	return c.Note
}

// PushItemLevel opens a nested list level.
func (c *Counters) PushItemLevel() {
	c.Item = append(append([]int{}, c.Item...), 0)
}

// PopItemLevel closes the innermost list level.
func (c *Counters) PopItemLevel() {
	if len(c.Item) > 0 {
		c.Item = c.Item[:len(c.Item)-1]
	}
}

// IncItem numbers the next item at the innermost level and returns a
// copy of the item path, outermost first.
func (c *Counters) IncItem() []int {
	if len(c.Item) == 0 {
		c.Item = []int{0}
	}
	// Copy on write: the walker snapshots Counters by value, so the
	// backing array must not be shared with the snapshot.
	path := append([]int{}, c.Item...)
	path[len(path)-1]++
	c.Item = path
	return append([]int{}, path...)
}

// State is the walker-threaded part of the document meta: everything
// that must be rolled back when a parse alternative fails.  The
// global tables live in Meta and persist once committed.
type State struct {
	Ctr     Counters
	Current Anchor
	Region  Region
}

// NewState returns the initial walker state.
func NewState() State {
	return State{Current: DocumentAnchor{}, Region: Main}
}

// Clone returns a deep copy of the state, safe against later
// mutation of the original.
func (s State) Clone() State {
	c := s
	c.Ctr.Item = append([]int{}, s.Ctr.Item...)
	return c
}
