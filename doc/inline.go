// inline.go -
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

// Inline is an inline element of the semantic document.  The set of
// implementations is closed.
type Inline interface {
	inline()
}

// Str is a text run.
type Str struct {
	Text string
}

// Space is an inter-word space.
type Space struct{}

// Style enumerates font styles.
type Style int

// The font styles.
const (
	Normal Style = iota
	Emph
	Bold
	Italic
	SmallCaps
	Slanted
	Monospace
	Sans
	Upright
)

// FontStyle applies a style to its children.
type FontStyle struct {
	Style    Style
	Children []Inline
}

// MathType distinguishes inline from display formulas.
type MathType int

// The math types.
const (
	InlineMath MathType = iota
	DisplayMath
)

// Math is a formula.
type Math struct {
	Type     MathType
	Children []Inline
}

// CiteMode selects the citation rendering mode.
type CiteMode int

// The citation modes.
const (
	CiteBare CiteMode = iota
	CiteParen
	CiteText
	CiteAuthor
	CiteYear
)

// SingleCite is one citation with its own notes and keys.
type SingleCite struct {
	Prenote  []Inline
	Postnote []Inline
	Keys     []string
}

// MultiCite is a citation command, possibly covering several keys.
type MultiCite struct {
	Mode     CiteMode
	Prenote  []Inline
	Postnote []Inline
	Cites    []SingleCite
}

// Citation is a citation inline.
type Citation struct {
	Cite MultiCite
}

// Resource is a pointer target, internal or external.
type Resource interface {
	resource()
}

// InternalResource resolves to an anchor within the document.
type InternalResource struct {
	Anchor Anchor
}

// ExternalResource is a hyperlink.
type ExternalResource struct {
	Text []Inline
	URL  string
}

func (*InternalResource) resource() {}
func (*ExternalResource) resource() {}

// Pointer is a cross-reference.  Label is the user key ("" for
// hyperlinks).  Target holds the ExternalResource of a hyperlink; for
// label references it stays nil and the writers resolve Label at emit
// time.
type Pointer struct {
	Label  string
	Target Resource
}

// Note is a footnote inline: the mark in the text, the body rendered
// at the end of the document.
type Note struct {
	Anchor NoteAnchor
	Blocks []Block
}

func (*Str) inline()       {}
func (*Space) inline()     {}
func (*FontStyle) inline() {}
func (*Math) inline()      {}
func (*Citation) inline()  {}
func (*Pointer) inline()   {}
func (*Note) inline()      {}
