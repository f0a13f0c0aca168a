// html.go -
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
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/hardentoo/texhs/doc"
)

const (
	xhtml1Doctype = `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" ` +
		`"http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">`
	xhtmlNS = "http://www.w3.org/1999/xhtml"
)

type htmlRenderer struct {
	*resolver
	w *Writer
	b strings.Builder
}

// renderHTML produces a complete standalone XHTML document.
func (w *Writer) renderHTML(d *doc.Document) (string, error) {
	r := &htmlRenderer{
		resolver: &resolver{meta: d.Meta, log: w.log},
		w:        w,
	}
	r.head(d)
	r.titleBlock(d.Meta)
	if d.Meta.TOC {
		r.toc(d.Blocks)
	}
	r.blocks(d.Blocks)
	r.notes(d.Meta)
	r.b.WriteString("</body>\n</html>\n")
	return r.b.String(), nil
}

func (r *htmlRenderer) head(d *doc.Document) {
	r.b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	if r.w.Target == HTML1 {
		r.b.WriteString(xhtml1Doctype + "\n")
	} else {
		r.b.WriteString("<!DOCTYPE html>\n")
	}
	r.b.WriteString(`<html xmlns="` + xhtmlNS + `">` + "\n<head>\n")

	title := plainText(d.Meta.Title)
	if title == "" {
		title = "Untitled"
	}
	r.b.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	r.b.WriteString(`<meta name="dtb:uid" content="` +
		html.EscapeString(r.w.docID) + `"/>` + "\n")
	r.b.WriteString("</head>\n<body>\n")
}

func (r *htmlRenderer) titleBlock(meta *doc.Meta) {
	if len(meta.Title) == 0 {
		return
	}
	r.b.WriteString(`<header class="titlepage">` + "\n")
	r.b.WriteString("<h1>")
	r.inlines(meta.Title)
	r.b.WriteString("</h1>\n")
	if len(meta.Subtitle) > 0 {
		r.b.WriteString(`<p class="subtitle">`)
		r.inlines(meta.Subtitle)
		r.b.WriteString("</p>\n")
	}
	for _, author := range meta.Authors {
		r.b.WriteString(`<p class="author">`)
		r.inlines(author)
		r.b.WriteString("</p>\n")
	}
	if len(meta.Date) > 0 {
		r.b.WriteString(`<p class="date">`)
		r.inlines(meta.Date)
		r.b.WriteString("</p>\n")
	}
	r.b.WriteString("</header>\n")
}

func (r *htmlRenderer) toc(blocks []doc.Block) {
	r.b.WriteString(`<nav class="toc">` + "\n<ul>\n")
	for _, b := range blocks {
		h, ok := b.(*doc.Header)
		if !ok {
			continue
		}
		r.b.WriteString(`<li><a href="` + r.href(h.Anchor.ID()) + `">`)
		r.inlines(h.Text)
		r.b.WriteString("</a></li>\n")
	}
	r.b.WriteString("</ul>\n</nav>\n")
}

func (r *htmlRenderer) blocks(blocks []doc.Block) {
	for _, b := range blocks {
		r.block(b)
	}
}

func (r *htmlRenderer) block(b doc.Block) {
	switch b := b.(type) {
	case *doc.Paragraph:
		r.b.WriteString("<p>")
		r.inlines(b.Inlines)
		r.b.WriteString("</p>\n")

	case *doc.Header:
		level := b.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		tag := "h" + strconv.Itoa(level)
		r.b.WriteString("<" + tag + r.idAttr(b.Anchor) + ">")
		r.inlines(b.Text)
		r.b.WriteString("</" + tag + ">\n")

	case *doc.List:
		open, closing := listTags(b.Type)
		r.b.WriteString(open + "\n")
		for _, item := range b.Items {
			r.b.WriteString("<li>")
			r.blocks(item)
			r.b.WriteString("</li>\n")
		}
		r.b.WriteString(closing + "\n")

	case *doc.AnchorList:
		r.b.WriteString(`<ol class="examples">` + "\n")
		for _, item := range b.Items {
			r.b.WriteString("<li" + r.idAttr(item.Anchor) + ">")
			r.blocks(item.Blocks)
			r.b.WriteString("</li>\n")
		}
		r.b.WriteString("</ol>\n")

	case *doc.BibList:
		r.bibliography()

	case *doc.QuotationBlock:
		r.b.WriteString("<blockquote>\n")
		r.blocks(b.Blocks)
		r.b.WriteString("</blockquote>\n")

	case *doc.Figure:
		r.figure(b)

	case *doc.Table:
		r.b.WriteString("<table" + r.idAttr(b.Anchor) + ">\n<caption>")
		r.inlines(b.Caption)
		r.b.WriteString("</caption>\n")
		r.rows(b.Rows)
		r.b.WriteString("</table>\n")

	case *doc.SimpleTable:
		r.b.WriteString("<table>\n")
		r.rows(b.Rows)
		r.b.WriteString("</table>\n")

	case *doc.CodeBlock:
		r.code(b)
	}
}

func listTags(t doc.ListType) (string, string) {
	switch t {
	case doc.Ordered:
		return "<ol>", "</ol>"
	case doc.Description:
		return `<ul class="description">`, "</ul>"
	default:
		return "<ul>", "</ul>"
	}
}

func (r *htmlRenderer) idAttr(a doc.Anchor) string {
	id := a.ID()
	if id == "" {
		return ""
	}
	return ` id="` + html.EscapeString(id) + `"`
}

func (r *htmlRenderer) figure(f *doc.Figure) {
	var src string
	for _, m := range r.meta.Media {
		if m.ID == f.MediaID {
			src = m.Path
		}
	}
	r.b.WriteString("<figure" + r.idAttr(f.Anchor) + ">\n")
	alt := plainText(f.Caption)
	r.b.WriteString(`<img src="` + html.EscapeString(src) +
		`" alt="` + html.EscapeString(alt) + `"/>` + "\n")
	r.b.WriteString("<figcaption>")
	if fa, ok := f.Anchor.(doc.FigureAnchor); ok {
		fmt.Fprintf(&r.b, "Figure %d.%d: ", fa.Chapter, fa.N)
	}
	r.inlines(f.Caption)
	r.b.WriteString("</figcaption>\n</figure>\n")
}

func (r *htmlRenderer) rows(rows [][]doc.TableCell) {
	for _, row := range rows {
		r.b.WriteString("<tr>")
		for _, cell := range row {
			if cell.Width > 1 {
				r.b.WriteString(`<td colspan="` + strconv.Itoa(cell.Width) + `">`)
			} else {
				r.b.WriteString("<td>")
			}
			r.inlines(cell.Inlines)
			r.b.WriteString("</td>")
		}
		r.b.WriteString("</tr>\n")
	}
}

func (r *htmlRenderer) code(cb *doc.CodeBlock) {
	if cb.Language != "" {
		if hl, err := highlight(cb.Text, cb.Language); err == nil {
			r.b.WriteString(hl)
			return
		}
	}
	r.b.WriteString("<pre><code>" + html.EscapeString(cb.Text) + "</code></pre>\n")
}

// highlight renders source code through chroma.
func highlight(source, language string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}
	formatter := chromahtml.New(chromahtml.WithClasses(false))
	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *htmlRenderer) bibliography() {
	items := r.bibItems()
	if len(items) == 0 {
		return
	}
	r.b.WriteString(`<ol class="bibliography">` + "\n")
	for _, item := range items {
		r.b.WriteString("<li" + r.idAttr(item.Anchor) + ">")
		r.inlines(item.Text)
		r.b.WriteString("</li>\n")
	}
	r.b.WriteString("</ol>\n")
}

func (r *htmlRenderer) notes(meta *doc.Meta) {
	if len(meta.Notes) == 0 {
		return
	}
	r.b.WriteString(`<section class="footnotes">` + "\n<ol>\n")
	for _, note := range meta.Notes {
		text := doc.NoteAnchor{
			Chapter: note.Anchor.Chapter,
			N:       note.Anchor.N,
			Part:    doc.NoteText,
		}
		r.b.WriteString(`<li id="` + html.EscapeString(text.ID()) + `">`)
		r.blocks(note.Blocks)
		r.b.WriteString(`<a href="` + r.href(note.Anchor.ID()) + `">&#8617;</a>`)
		r.b.WriteString("</li>\n")
	}
	r.b.WriteString("</ol>\n</section>\n")
}

func (r *htmlRenderer) inlines(inl []doc.Inline) {
	for _, in := range inl {
		r.inline(in)
	}
}

func (r *htmlRenderer) inline(in doc.Inline) {
	switch in := in.(type) {
	case *doc.Str:
		r.b.WriteString(html.EscapeString(in.Text))

	case *doc.Space:
		r.b.WriteByte(' ')

	case *doc.FontStyle:
		open, closing := styleTags(in.Style)
		r.b.WriteString(open)
		r.inlines(in.Children)
		r.b.WriteString(closing)

	case *doc.Math:
		class := "math inline"
		if in.Type == doc.DisplayMath {
			class = "math display"
		}
		r.b.WriteString(`<span class="` + class + `">`)
		r.inlines(in.Children)
		r.b.WriteString("</span>")

	case *doc.Citation:
		r.citation(in)

	case *doc.Pointer:
		r.pointer(in)

	case *doc.Note:
		mark := in.Anchor
		text := doc.NoteAnchor{Chapter: mark.Chapter, N: mark.N, Part: doc.NoteText}
		r.b.WriteString(`<a class="footnote-ref" id="` +
			html.EscapeString(mark.ID()) + `" href="` + r.href(text.ID()) +
			`"><sup>` + strconv.Itoa(mark.N) + `</sup></a>`)
	}
}

func styleTags(s doc.Style) (string, string) {
	switch s {
	case doc.Emph:
		return "<em>", "</em>"
	case doc.Bold:
		return "<strong>", "</strong>"
	case doc.Italic:
		return "<i>", "</i>"
	case doc.SmallCaps:
		return `<span style="font-variant: small-caps;">`, "</span>"
	case doc.Slanted:
		return `<span style="font-style: oblique;">`, "</span>"
	case doc.Monospace:
		return "<code>", "</code>"
	case doc.Sans:
		return `<span class="sans">`, "</span>"
	case doc.Upright:
		return `<span style="font-style: normal;">`, "</span>"
	default:
		return `<span class="normal">`, "</span>"
	}
}

func (r *htmlRenderer) citation(c *doc.Citation) {
	parts := r.citeParts(c.Cite)
	paren := c.Cite.Mode == doc.CiteParen
	if paren {
		r.b.WriteByte('(')
	}
	if len(c.Cite.Prenote) > 0 {
		r.inlines(c.Cite.Prenote)
		r.b.WriteByte(' ')
	}
	for i, part := range parts {
		if i > 0 {
			r.b.WriteString("; ")
		}
		if part.anchor != nil {
			r.b.WriteString(`<a href="` + r.href(part.anchor.ID()) + `">` +
				html.EscapeString(part.text) + "</a>")
		} else {
			r.b.WriteString(html.EscapeString(part.text))
		}
	}
	if len(c.Cite.Postnote) > 0 {
		r.b.WriteString(", ")
		r.inlines(c.Cite.Postnote)
	}
	if paren {
		r.b.WriteByte(')')
	}
}

func (r *htmlRenderer) pointer(p *doc.Pointer) {
	if ext, ok := p.Target.(*doc.ExternalResource); ok {
		r.b.WriteString(`<a href="` + html.EscapeString(ext.URL) + `">`)
		r.inlines(ext.Text)
		r.b.WriteString("</a>")
		return
	}

	anchor, ok := r.resolve(p.Label)
	if !ok {
		r.b.WriteString(`<span class="unresolved">` + unresolvedMark + "</span>")
		return
	}
	r.b.WriteString(`<a href="` + r.href(anchor.ID()) + `">` +
		html.EscapeString(anchorText(anchor)) + "</a>")
}
