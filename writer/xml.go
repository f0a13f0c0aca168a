// xml.go -
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

package writer

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/hardentoo/texhs/doc"
)

const teiNS = "http://www.tei-c.org/ns/1.0"

type xmlRenderer struct {
	*resolver
	w *Writer
}

// renderXML produces a TEI-flavoured XML document.
func (w *Writer) renderXML(d *doc.Document) (string, error) {
	r := &xmlRenderer{
		resolver: &resolver{meta: d.Meta, log: w.log},
		w:        w,
	}

	xdoc := etree.NewDocument()
	xdoc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	tei := xdoc.CreateElement("TEI")
	tei.CreateAttr("xmlns", teiNS)

	r.header(tei, d.Meta)

	text := tei.CreateElement("text")
	r.front(text, d.Meta)
	body := text.CreateElement("body")
	r.blocks(body, d.Blocks)
	r.back(text, d.Meta)

	xdoc.Indent(2)
	return xdoc.WriteToString()
}

func (r *xmlRenderer) header(tei *etree.Element, meta *doc.Meta) {
	teiHeader := tei.CreateElement("teiHeader")
	fileDesc := teiHeader.CreateElement("fileDesc")

	titleStmt := fileDesc.CreateElement("titleStmt")
	title := titleStmt.CreateElement("title")
	title.SetText(plainText(meta.Title))
	for _, author := range meta.Authors {
		a := titleStmt.CreateElement("author")
		a.SetText(plainText(author))
	}

	pubStmt := fileDesc.CreateElement("publicationStmt")
	idno := pubStmt.CreateElement("idno")
	idno.CreateAttr("type", "uuid")
	idno.SetText(r.w.docID)

	srcDesc := fileDesc.CreateElement("sourceDesc")
	p := srcDesc.CreateElement("p")
	p.SetText("Converted from TeX source.")
}

func (r *xmlRenderer) front(text *etree.Element, meta *doc.Meta) {
	if len(meta.Title) == 0 {
		return
	}
	front := text.CreateElement("front")
	titlePage := front.CreateElement("titlePage")
	docTitle := titlePage.CreateElement("docTitle")
	titlePart := docTitle.CreateElement("titlePart")
	r.inlines(titlePart, meta.Title)
	if len(meta.Subtitle) > 0 {
		sub := docTitle.CreateElement("titlePart")
		sub.CreateAttr("type", "sub")
		r.inlines(sub, meta.Subtitle)
	}
	for _, author := range meta.Authors {
		byline := titlePage.CreateElement("byline")
		r.inlines(byline, author)
	}
	if len(meta.Date) > 0 {
		date := titlePage.CreateElement("docDate")
		r.inlines(date, meta.Date)
	}
}

func (r *xmlRenderer) back(text *etree.Element, meta *doc.Meta) {
	if len(meta.Notes) == 0 {
		return
	}
	back := text.CreateElement("back")
	div := back.CreateElement("div")
	div.CreateAttr("type", "notes")
	for _, note := range meta.Notes {
		n := div.CreateElement("note")
		textAnchor := doc.NoteAnchor{
			Chapter: note.Anchor.Chapter,
			N:       note.Anchor.N,
			Part:    doc.NoteText,
		}
		n.CreateAttr("xml:id", textAnchor.ID())
		n.CreateAttr("n", strconv.Itoa(note.Anchor.N))
		r.blocks(n, note.Blocks)
	}
}

func (r *xmlRenderer) blocks(parent *etree.Element, blocks []doc.Block) {
	for _, b := range blocks {
		r.block(parent, b)
	}
}

func (r *xmlRenderer) block(parent *etree.Element, b doc.Block) {
	switch b := b.(type) {
	case *doc.Paragraph:
		p := parent.CreateElement("p")
		r.inlines(p, b.Inlines)

	case *doc.Header:
		div := parent.CreateElement("div")
		div.CreateAttr("type", "section")
		div.CreateAttr("n", strconv.Itoa(b.Level))
		if id := b.Anchor.ID(); id != "" {
			div.CreateAttr("xml:id", id)
		}
		head := div.CreateElement("head")
		r.inlines(head, b.Text)

	case *doc.List:
		list := parent.CreateElement("list")
		switch b.Type {
		case doc.Ordered:
			list.CreateAttr("rend", "numbered")
		case doc.Description:
			list.CreateAttr("rend", "description")
		default:
			list.CreateAttr("rend", "bulleted")
		}
		for _, blocks := range b.Items {
			item := list.CreateElement("item")
			r.blocks(item, blocks)
		}

	case *doc.AnchorList:
		list := parent.CreateElement("list")
		list.CreateAttr("rend", "examples")
		for _, it := range b.Items {
			item := list.CreateElement("item")
			item.CreateAttr("xml:id", it.Anchor.ID())
			r.blocks(item, it.Blocks)
		}

	case *doc.BibList:
		listBibl := parent.CreateElement("listBibl")
		for _, item := range r.bibItems() {
			bibl := listBibl.CreateElement("bibl")
			bibl.CreateAttr("xml:id", item.Anchor.ID())
			r.inlines(bibl, item.Text)
		}

	case *doc.QuotationBlock:
		quote := parent.CreateElement("quote")
		r.blocks(quote, b.Blocks)

	case *doc.Figure:
		fig := parent.CreateElement("figure")
		fig.CreateAttr("xml:id", b.Anchor.ID())
		graphic := fig.CreateElement("graphic")
		var src string
		for _, m := range r.meta.Media {
			if m.ID == b.MediaID {
				src = m.Path
			}
		}
		graphic.CreateAttr("url", src)
		head := fig.CreateElement("head")
		r.inlines(head, b.Caption)

	case *doc.Table:
		tbl := parent.CreateElement("table")
		tbl.CreateAttr("xml:id", b.Anchor.ID())
		head := tbl.CreateElement("head")
		r.inlines(head, b.Caption)
		r.rows(tbl, b.Rows)

	case *doc.SimpleTable:
		tbl := parent.CreateElement("table")
		r.rows(tbl, b.Rows)

	case *doc.CodeBlock:
		eg := parent.CreateElement("eg")
		if b.Language != "" {
			eg.CreateAttr("rend", b.Language)
		}
		eg.SetText(b.Text)
	}
}

func (r *xmlRenderer) rows(tbl *etree.Element, rows [][]doc.TableCell) {
	for _, row := range rows {
		rowEl := tbl.CreateElement("row")
		for _, cell := range row {
			cellEl := rowEl.CreateElement("cell")
			if cell.Width > 1 {
				cellEl.CreateAttr("cols", strconv.Itoa(cell.Width))
			}
			r.inlines(cellEl, cell.Inlines)
		}
	}
}

func (r *xmlRenderer) inlines(parent *etree.Element, inl []doc.Inline) {
	for _, in := range inl {
		r.inline(parent, in)
	}
}

func appendText(parent *etree.Element, text string) {
	parent.CreateText(text)
}

func (r *xmlRenderer) inline(parent *etree.Element, in doc.Inline) {
	switch in := in.(type) {
	case *doc.Str:
		appendText(parent, in.Text)

	case *doc.Space:
		appendText(parent, " ")

	case *doc.FontStyle:
		hi := parent.CreateElement("hi")
		hi.CreateAttr("rend", styleRend(in.Style))
		r.inlines(hi, in.Children)

	case *doc.Math:
		formula := parent.CreateElement("formula")
		if in.Type == doc.DisplayMath {
			formula.CreateAttr("rend", "display")
		} else {
			formula.CreateAttr("rend", "inline")
		}
		r.inlines(formula, in.Children)

	case *doc.Citation:
		for i, part := range r.citeParts(in.Cite) {
			if i > 0 {
				appendText(parent, "; ")
			}
			ref := parent.CreateElement("ref")
			if part.anchor != nil {
				ref.CreateAttr("target", "#"+part.anchor.ID())
			}
			ref.SetText(part.text)
		}

	case *doc.Pointer:
		r.pointer(parent, in)

	case *doc.Note:
		ptr := parent.CreateElement("ref")
		textAnchor := doc.NoteAnchor{
			Chapter: in.Anchor.Chapter,
			N:       in.Anchor.N,
			Part:    doc.NoteText,
		}
		ptr.CreateAttr("xml:id", in.Anchor.ID())
		ptr.CreateAttr("target", "#"+textAnchor.ID())
		ptr.SetText(strconv.Itoa(in.Anchor.N))
	}
}

func styleRend(s doc.Style) string {
	switch s {
	case doc.Emph:
		return "emph"
	case doc.Bold:
		return "bold"
	case doc.Italic:
		return "italic"
	case doc.SmallCaps:
		return "smallcaps"
	case doc.Slanted:
		return "slanted"
	case doc.Monospace:
		return "monospace"
	case doc.Sans:
		return "sans"
	case doc.Upright:
		return "upright"
	default:
		return "normal"
	}
}

func (r *xmlRenderer) pointer(parent *etree.Element, p *doc.Pointer) {
	if ext, ok := p.Target.(*doc.ExternalResource); ok {
		ref := parent.CreateElement("ref")
		ref.CreateAttr("target", ext.URL)
		r.inlines(ref, ext.Text)
		return
	}

	anchor, ok := r.resolve(p.Label)
	if !ok {
		hi := parent.CreateElement("hi")
		hi.CreateAttr("rend", "unresolved")
		hi.SetText(unresolvedMark)
		return
	}
	ref := parent.CreateElement("ref")
	ref.CreateAttr("target", "#"+anchor.ID())
	ref.SetText(anchorText(anchor))
}
