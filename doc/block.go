// block.go -
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

// Block is a block-level element of the semantic document.  The set
// of implementations is closed.
type Block interface {
	block()
}

// Paragraph is a run of inlines.
type Paragraph struct {
	Inlines []Inline
}

// Header is a sectioning heading.  Levels run from 1 (part) to 7
// (subparagraph).
type Header struct {
	Level  int
	Anchor Anchor
	Text   []Inline
}

// ListType distinguishes the list flavours.
type ListType int

// The list types.
const (
	Unordered ListType = iota
	Ordered
	Description
)

// List is an itemize, enumerate or description environment.
type List struct {
	Type  ListType
	Items [][]Block
}

// AnchorList is a list whose items carry their own anchors
// (linguistic examples).
type AnchorList struct {
	Type  ListType
	Items []AnchorItem
}

// AnchorItem is one item of an AnchorList.
type AnchorItem struct {
	Anchor Anchor
	Blocks []Block
}

// BibList is the rendered bibliography.
type BibList struct {
	Entries []BibItem
}

// BibItem is one bibliography entry, ordered by first citation.
type BibItem struct {
	Anchor Anchor
	Key    string
	Text   []Inline
}

// QuotationBlock is a quotation or quote environment.
type QuotationBlock struct {
	Blocks []Block
}

// Figure is a float with a graphic, caption and anchor.
type Figure struct {
	Anchor  Anchor
	MediaID int
	Caption []Inline
}

// Table is a captioned, anchored table float.
type Table struct {
	Anchor  Anchor
	Caption []Inline
	Rows    [][]TableCell
}

// SimpleTable is a bare tabular without caption or anchor.
type SimpleTable struct {
	Rows [][]TableCell
}

// TableCell is one table cell; Width > 1 represents \multicolumn.
type TableCell struct {
	Width   int
	Inlines []Inline
}

// CodeBlock is the contents of a verbatim or lstlisting environment.
type CodeBlock struct {
	Language string
	Text     string
}

func (*Paragraph) block()      {}
func (*Header) block()         {}
func (*List) block()           {}
func (*AnchorList) block()     {}
func (*BibList) block()        {}
func (*QuotationBlock) block() {}
func (*Figure) block()         {}
func (*Table) block()          {}
func (*SimpleTable) block()    {}
func (*CodeBlock) block()      {}
