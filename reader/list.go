// list.go -
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

package reader

import (
	"github.com/hardentoo/texhs/doc"
	"github.com/hardentoo/texhs/parser"
	"github.com/hardentoo/texhs/walker"
)

func listTypeOf(name string) doc.ListType {
	switch name {
	case "enumerate":
		return doc.Ordered
	case "description":
		return doc.Description
	default:
		return doc.Unordered
	}
}

// listItem is one parsed \item: its optional label and its blocks.
type listItem struct {
	label  []doc.Inline
	blocks []doc.Block
}

// itemP reads one \item and the blocks up to the next item or the
// end of the group.
func (r *reader) itemP(c *walker.Ctx) (listItem, error) {
	cmd, err := walker.CmdOf("item", "ex")(c)
	if err != nil {
		return listItem{}, err
	}
	var it listItem
	if opt, ok := parser.OptArgBody(cmd.Args, 0); ok {
		it.label = r.inlinesOf(c, opt, doc.Normal)
	}
	it.blocks = r.blocks(c)
	return it, nil
}

// skipToFirstItem discards content before the first \item; it carries
// no list semantics.
func skipToFirstItem(c *walker.Ctx) {
	_, _ = walker.Run(c, walker.Many(walker.Satisfy(func(a parser.Atom) bool {
		return !isItemCmd(a)
	})))
}

// listP reads an itemize, enumerate or description group.  Each
// \item starts a new item; \item[label] terms are rendered at the
// head of the item.
func (r *reader) listP(c *walker.Ctx) ([]doc.Block, error) {
	grp, err := walker.GrpOf("itemize", "enumerate", "description")(c)
	if err != nil {
		return nil, err
	}

	sub := c.Child(grp.Body)
	skipToFirstItem(sub)
	parsed, _ := walker.Run(sub, walker.Many(r.itemP))
	c.AdoptState(sub)

	items := make([][]doc.Block, 0, len(parsed))
	for _, it := range parsed {
		items = append(items, itemBlocks(it))
	}
	return []doc.Block{&doc.List{Type: listTypeOf(grp.Name), Items: items}}, nil
}

// itemBlocks merges an item's term label into its content: the label
// leads the first paragraph, or forms a paragraph of its own.
func itemBlocks(it listItem) []doc.Block {
	if len(it.label) == 0 {
		return it.blocks
	}
	term := &doc.FontStyle{Style: doc.Bold, Children: it.label}

	if len(it.blocks) > 0 {
		if p, ok := it.blocks[0].(*doc.Paragraph); ok {
			inl := make([]doc.Inline, 0, len(p.Inlines)+2)
			inl = append(inl, term, &doc.Space{})
			inl = append(inl, p.Inlines...)
			out := make([]doc.Block, 0, len(it.blocks))
			out = append(out, &doc.Paragraph{Inlines: inl})
			return append(out, it.blocks[1:]...)
		}
	}
	out := make([]doc.Block, 0, len(it.blocks)+1)
	out = append(out, &doc.Paragraph{Inlines: []doc.Inline{term}})
	return append(out, it.blocks...)
}

// exItemP reads one linguistic example item.  The item anchor is
// assigned before the body is parsed, so that labels inside bind to
// it.
func (r *reader) exItemP(c *walker.Ctx) (doc.AnchorItem, error) {
	_, err := walker.CmdOf("item", "ex")(c)
	if err != nil {
		return doc.AnchorItem{}, err
	}
	path := c.St.Ctr.IncItem()
	anchor := doc.ItemAnchor{Chapter: c.St.Ctr.Chapter(), Path: path}
	c.St.Current = anchor
	return doc.AnchorItem{Anchor: anchor, Blocks: r.blocks(c)}, nil
}

// exampleListP reads a linguistic example list (exe/xlist): every
// item receives its own ItemAnchor, nested lists extending the item
// path.
func (r *reader) exampleListP(c *walker.Ctx) ([]doc.Block, error) {
	grp, err := walker.GrpOf("exe", "xlist")(c)
	if err != nil {
		return nil, err
	}

	c.St.Ctr.PushItemLevel()
	sub := c.Child(grp.Body)
	skipToFirstItem(sub)
	items, _ := walker.Run(sub, walker.Many(r.exItemP))
	c.AdoptState(sub)
	c.St.Ctr.PopItemLevel()

	return []doc.Block{&doc.AnchorList{Type: listTypeOf(grp.Name), Items: items}}, nil
}
