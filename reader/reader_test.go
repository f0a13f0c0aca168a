// reader_test.go -
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
	"testing"

	"github.com/hardentoo/texhs/doc"
	"github.com/hardentoo/texhs/filter"
	"github.com/hardentoo/texhs/lexer"
	"github.com/hardentoo/texhs/parser"
)

// convert runs the full front end over a source string.
func convert(t *testing.T, src string) *doc.Document {
	t.Helper()
	return convertWithDB(t, src, nil)
}

func convertWithDB(t *testing.T, src string, db map[string]doc.BibRecord) *doc.Document {
	t.Helper()
	lx := lexer.New(nil)
	lx.Prepend([]byte(src), "test input")
	toks, err := lx.Tokens()
	if err != nil {
		t.Fatalf("lexing: %s", err)
	}
	atoms, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parsing: %s", err)
	}
	atoms = filter.Resolve(filter.Normalize(atoms))

	meta := doc.NewMeta()
	for k, v := range db {
		meta.DB[k] = v
	}
	d, err := Read(atoms, meta, nil)
	if err != nil {
		t.Fatalf("reading: %s", err)
	}
	return d
}

func TestSectionLabelRef(t *testing.T) {
	d := convert(t, "\\section{One}\\label{l}\\ref{l}")

	if len(d.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %#v", d.Blocks)
	}
	h, ok := d.Blocks[0].(*doc.Header)
	if !ok || h.Level != 3 {
		t.Fatalf("block 0: %#v", d.Blocks[0])
	}
	if h.Anchor.ID() != "sec-0-0-1" {
		t.Errorf("section anchor: %q", h.Anchor.ID())
	}
	if len(h.Text) != 1 {
		t.Fatalf("header text: %#v", h.Text)
	}
	if s, ok := h.Text[0].(*doc.Str); !ok || s.Text != "One" {
		t.Errorf("header text: %#v", h.Text[0])
	}

	p, ok := d.Blocks[1].(*doc.Paragraph)
	if !ok || len(p.Inlines) != 1 {
		t.Fatalf("block 1: %#v", d.Blocks[1])
	}
	ptr, ok := p.Inlines[0].(*doc.Pointer)
	if !ok || ptr.Label != "l" {
		t.Fatalf("pointer: %#v", p.Inlines[0])
	}

	a, ok := d.Meta.Resolve("l")
	if !ok || a.ID() != h.Anchor.ID() {
		t.Errorf("label map: %v %v", a, ok)
	}
}

func TestChapterFigureRef(t *testing.T) {
	src := "\\chapter{A}\\begin{figure}\\includegraphics{p.png}" +
		"\\caption{c}\\label{f}\\end{figure}\\ref{f}"
	d := convert(t, src)

	if len(d.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %#v", d.Blocks)
	}
	h := d.Blocks[0].(*doc.Header)
	if h.Level != 2 {
		t.Errorf("chapter level: %d", h.Level)
	}
	fig, ok := d.Blocks[1].(*doc.Figure)
	if !ok {
		t.Fatalf("block 1: %#v", d.Blocks[1])
	}
	if fig.Anchor.ID() != "figure-1-1" {
		t.Errorf("figure anchor: %q", fig.Anchor.ID())
	}
	if fig.MediaID != 1 {
		t.Errorf("media id: %d", fig.MediaID)
	}
	if got := len(d.Meta.Media); got != 1 || d.Meta.Media[0].Path != "p.png" {
		t.Errorf("media map: %#v", d.Meta.Media)
	}

	a, ok := d.Meta.Resolve("f")
	if !ok || a.ID() != "figure-1-1" {
		t.Errorf("label: %v", a)
	}
}

func TestItemize(t *testing.T) {
	src := "\\begin{itemize}\\item one one\\item two\\item three\\end{itemize}"
	d := convert(t, src)

	list, ok := d.Blocks[0].(*doc.List)
	if !ok || list.Type != doc.Unordered {
		t.Fatalf("block 0: %#v", d.Blocks[0])
	}
	if len(list.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(list.Items))
	}

	p := list.Items[0][0].(*doc.Paragraph)
	want := []doc.Inline{
		&doc.Str{Text: "one"}, &doc.Space{}, &doc.Str{Text: "one"},
	}
	if len(p.Inlines) != len(want) {
		t.Fatalf("item 1: %#v", p.Inlines)
	}
	if s := p.Inlines[0].(*doc.Str); s.Text != "one" {
		t.Errorf("item 1 inline 0: %#v", p.Inlines[0])
	}
	if _, ok := p.Inlines[1].(*doc.Space); !ok {
		t.Errorf("item 1 inline 1: %#v", p.Inlines[1])
	}
}

func TestDescriptionLabels(t *testing.T) {
	src := "\\begin{description}\\item[term] definition\\item second\\end{description}"
	d := convert(t, src)

	list, ok := d.Blocks[0].(*doc.List)
	if !ok || list.Type != doc.Description {
		t.Fatalf("block 0: %#v", d.Blocks[0])
	}
	if len(list.Items) != 2 {
		t.Fatalf("items: %d", len(list.Items))
	}

	p := list.Items[0][0].(*doc.Paragraph)
	if len(p.Inlines) < 3 {
		t.Fatalf("labelled item: %#v", p.Inlines)
	}
	term, ok := p.Inlines[0].(*doc.FontStyle)
	if !ok || term.Style != doc.Bold {
		t.Fatalf("term label: %#v", p.Inlines[0])
	}
	if plainOf(t, term.Children) != "term" {
		t.Errorf("term text: %#v", term.Children)
	}
	if _, ok := p.Inlines[1].(*doc.Space); !ok {
		t.Errorf("separator: %#v", p.Inlines[1])
	}
	if s, ok := p.Inlines[2].(*doc.Str); !ok || s.Text != "definition" {
		t.Errorf("definition: %#v", p.Inlines[2])
	}

	// Items without a label stay plain.
	p = list.Items[1][0].(*doc.Paragraph)
	if s, ok := p.Inlines[0].(*doc.Str); !ok || s.Text != "second" {
		t.Errorf("unlabelled item: %#v", p.Inlines)
	}
}

func TestNestedList(t *testing.T) {
	src := "\\begin{itemize}\\item a\\begin{enumerate}\\item b\\end{enumerate}" +
		"\\item c\\end{itemize}"
	d := convert(t, src)
	list := d.Blocks[0].(*doc.List)
	if len(list.Items) != 2 {
		t.Fatalf("outer items: %d", len(list.Items))
	}
	var inner *doc.List
	for _, b := range list.Items[0] {
		if l, ok := b.(*doc.List); ok {
			inner = l
		}
	}
	if inner == nil || inner.Type != doc.Ordered {
		t.Fatalf("nested list missing: %#v", list.Items[0])
	}
}

func TestFontSwitches(t *testing.T) {
	d := convert(t, "{\\em one\\rm two\\em three}")

	p := d.Blocks[0].(*doc.Paragraph)
	if len(p.Inlines) != 1 {
		t.Fatalf("paragraph: %#v", p.Inlines)
	}
	outer := p.Inlines[0].(*doc.FontStyle)
	if outer.Style != doc.Emph {
		t.Fatalf("outer style: %v", outer.Style)
	}
	if s := outer.Children[0].(*doc.Str); s.Text != "one" {
		t.Errorf("outer child 0: %#v", outer.Children[0])
	}
	mid := outer.Children[len(outer.Children)-1].(*doc.FontStyle)
	if mid.Style != doc.Normal {
		t.Fatalf("middle style: %v", mid.Style)
	}
	if s := mid.Children[0].(*doc.Str); s.Text != "two" {
		t.Errorf("middle child 0: %#v", mid.Children[0])
	}
	inner := mid.Children[len(mid.Children)-1].(*doc.FontStyle)
	if inner.Style != doc.Emph {
		t.Fatalf("inner style: %v", inner.Style)
	}
	if s := inner.Children[0].(*doc.Str); s.Text != "three" {
		t.Errorf("inner child 0: %#v", inner.Children[0])
	}
}

func TestCitation(t *testing.T) {
	db := map[string]doc.BibRecord{
		"smith20": {
			Type: "book",
			Key:  "smith20",
			Fields: map[string]string{
				"author": "Smith, Jane",
				"year":   "2020",
				"title":  "A Book",
			},
		},
	}
	d := convertWithDB(t, "\\cite{smith20}", db)

	p := d.Blocks[0].(*doc.Paragraph)
	cit, ok := p.Inlines[0].(*doc.Citation)
	if !ok {
		t.Fatalf("inline 0: %#v", p.Inlines[0])
	}
	if len(cit.Cite.Cites) != 1 || cit.Cite.Cites[0].Keys[0] != "smith20" {
		t.Errorf("citation keys: %#v", cit.Cite)
	}
	if d.Meta.CiteOrder["smith20"] != 1 {
		t.Errorf("citation order: %v", d.Meta.CiteOrder)
	}
}

func TestCitationNotes(t *testing.T) {
	d := convert(t, "\\parencite[see][p. 7]{k}")
	p := d.Blocks[0].(*doc.Paragraph)
	cit := p.Inlines[0].(*doc.Citation)
	if cit.Cite.Mode != doc.CiteParen {
		t.Errorf("mode: %v", cit.Cite.Mode)
	}
	if plainOf(t, cit.Cite.Prenote) != "see" {
		t.Errorf("prenote: %#v", cit.Cite.Prenote)
	}
	if plainOf(t, cit.Cite.Postnote) != "p. 7" {
		t.Errorf("postnote: %#v", cit.Cite.Postnote)
	}
}

func plainOf(t *testing.T, inl []doc.Inline) string {
	t.Helper()
	out := ""
	for _, in := range inl {
		switch in := in.(type) {
		case *doc.Str:
			out += in.Text
		case *doc.Space:
			out += " "
		}
	}
	return out
}

func TestFootnote(t *testing.T) {
	d := convert(t, "\\chapter{C}text\\footnote{body}more")

	p := d.Blocks[1].(*doc.Paragraph)
	var note *doc.Note
	for _, in := range p.Inlines {
		if n, ok := in.(*doc.Note); ok {
			note = n
		}
	}
	if note == nil {
		t.Fatalf("no note inline: %#v", p.Inlines)
	}
	if note.Anchor.ID() != "note-1-1" {
		t.Errorf("note anchor: %q", note.Anchor.ID())
	}
	if len(d.Meta.Notes) != 1 {
		t.Errorf("note map: %#v", d.Meta.Notes)
	}
	if len(note.Blocks) != 1 {
		t.Errorf("note body: %#v", note.Blocks)
	}
}

func TestNestedFootnotesFlattened(t *testing.T) {
	d := convert(t, "a\\footnote{outer\\footnote{inner}}b")
	if len(d.Meta.Notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(d.Meta.Notes))
	}
	if d.Meta.Notes[0].Anchor.N == d.Meta.Notes[1].Anchor.N {
		t.Error("notes share a counter value")
	}
}

func TestHyperlinks(t *testing.T) {
	d := convert(t, "\\href{http://x.org}{link text} and \\url{http://y.org}")
	p := d.Blocks[0].(*doc.Paragraph)

	var pointers []*doc.Pointer
	for _, in := range p.Inlines {
		if ptr, ok := in.(*doc.Pointer); ok {
			pointers = append(pointers, ptr)
		}
	}
	if len(pointers) != 2 {
		t.Fatalf("pointers: %#v", p.Inlines)
	}
	ext := pointers[0].Target.(*doc.ExternalResource)
	if ext.URL != "http://x.org" || plainOf(t, ext.Text) != "link text" {
		t.Errorf("href: %#v", ext)
	}
	ext = pointers[1].Target.(*doc.ExternalResource)
	if ext.URL != "http://y.org" || plainOf(t, ext.Text) != "http://y.org" {
		t.Errorf("url: %#v", ext)
	}
}

func TestTabular(t *testing.T) {
	src := "\\begin{tabular}{ll}a&b\\\\c&\\multicolumn{2}{c}{wide}\\end{tabular}"
	d := convert(t, src)
	tbl, ok := d.Blocks[0].(*doc.SimpleTable)
	if !ok {
		t.Fatalf("block 0: %#v", d.Blocks[0])
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows: %#v", tbl.Rows)
	}
	if len(tbl.Rows[0]) != 2 {
		t.Errorf("row 0: %#v", tbl.Rows[0])
	}
	last := tbl.Rows[1][len(tbl.Rows[1])-1]
	if last.Width != 2 {
		t.Errorf("multicolumn width: %#v", last)
	}
}

func TestCaptionedTable(t *testing.T) {
	src := "\\chapter{C}\\begin{table}\\begin{tabular}{l}x\\end{tabular}" +
		"\\caption{tab}\\label{t}\\end{table}"
	d := convert(t, src)
	var tbl *doc.Table
	for _, b := range d.Blocks {
		if tt, ok := b.(*doc.Table); ok {
			tbl = tt
		}
	}
	if tbl == nil {
		t.Fatalf("no table: %#v", d.Blocks)
	}
	if tbl.Anchor.ID() != "table-1-1" {
		t.Errorf("table anchor: %q", tbl.Anchor.ID())
	}
	if a, ok := d.Meta.Resolve("t"); !ok || a.ID() != "table-1-1" {
		t.Errorf("label: %v", a)
	}
}

func TestRegions(t *testing.T) {
	src := "\\frontmatter\\section{P}\\mainmatter\\section{I}\\appendix\\section{A}"
	d := convert(t, src)
	var ids []string
	for _, b := range d.Blocks {
		if h, ok := b.(*doc.Header); ok {
			ids = append(ids, h.Anchor.ID())
		}
	}
	if len(ids) != 3 {
		t.Fatalf("headers: %v", ids)
	}
	if ids[0] != "sec-front-0-0-1" {
		t.Errorf("front id: %q", ids[0])
	}
	if ids[1] != "sec-0-0-2" {
		t.Errorf("main id: %q", ids[1])
	}
	if ids[2] != "sec-back-0-0-3" {
		t.Errorf("back id: %q", ids[2])
	}
}

func TestStarredSection(t *testing.T) {
	d := convert(t, "\\section*{Intro}\\section{One}")
	h := d.Blocks[0].(*doc.Header)
	if h.Anchor.ID() != "sec-unnumbered-1" {
		t.Errorf("phantom id: %q", h.Anchor.ID())
	}
	h = d.Blocks[1].(*doc.Header)
	if h.Anchor.ID() != "sec-0-0-1" {
		t.Errorf("numbered id: %q", h.Anchor.ID())
	}
}

func TestBoundaryCases(t *testing.T) {
	if d := convert(t, ""); len(d.Blocks) != 0 {
		t.Errorf("empty input: %#v", d.Blocks)
	}
	if d := convert(t, "% only\n% comments\n"); len(d.Blocks) != 0 {
		t.Errorf("comment-only input: %#v", d.Blocks)
	}
	if d := convert(t, "\\par"); len(d.Blocks) != 0 {
		t.Errorf("bare par: %#v", d.Blocks)
	}

	d := convert(t, "one\n\ntwo")
	if len(d.Blocks) != 2 {
		t.Errorf("paragraph break lost: %#v", d.Blocks)
	}
}

func TestLabelBeforeAnyElement(t *testing.T) {
	d := convert(t, "\\label{top}text")
	a, ok := d.Meta.Resolve("top")
	if !ok {
		t.Fatal("label not registered")
	}
	if _, isDoc := a.(doc.DocumentAnchor); !isDoc {
		t.Errorf("expected document anchor, got %#v", a)
	}
}

func TestDuplicateLabelIgnored(t *testing.T) {
	d := convert(t, "\\section{A}\\label{l}\\section{B}\\label{l}")
	a, _ := d.Meta.Resolve("l")
	if a.ID() != "sec-0-0-1" {
		t.Errorf("second definition won: %q", a.ID())
	}
}

func TestVerbatimCodeBlock(t *testing.T) {
	src := "\\begin{lstlisting}[language=Go]\nfmt.Println(1)\n\\end{lstlisting}"
	d := convert(t, src)
	cb, ok := d.Blocks[0].(*doc.CodeBlock)
	if !ok {
		t.Fatalf("block 0: %#v", d.Blocks[0])
	}
	if cb.Language != "Go" {
		t.Errorf("language: %q", cb.Language)
	}
	if cb.Text != "fmt.Println(1)\n" {
		t.Errorf("text: %q", cb.Text)
	}
}

func TestTitleBlock(t *testing.T) {
	src := "\\title{My Title}\\author{Ann \\and Ben}\\date{2026}\\maketitle text"
	d := convert(t, src)
	if plainOf(t, d.Meta.Title) != "My Title" {
		t.Errorf("title: %#v", d.Meta.Title)
	}
	if len(d.Meta.Authors) != 2 {
		t.Fatalf("authors: %#v", d.Meta.Authors)
	}
	if plainOf(t, d.Meta.Authors[0]) != "Ann" {
		t.Errorf("author 0: %#v", d.Meta.Authors[0])
	}
	if plainOf(t, d.Meta.Date) != "2026" {
		t.Errorf("date: %#v", d.Meta.Date)
	}
}

func TestExampleList(t *testing.T) {
	src := "\\chapter{C}\\begin{exe}\\ex first\\ex second\\end{exe}"
	d := convert(t, src)
	var al *doc.AnchorList
	for _, b := range d.Blocks {
		if l, ok := b.(*doc.AnchorList); ok {
			al = l
		}
	}
	if al == nil {
		t.Fatalf("no anchor list: %#v", d.Blocks)
	}
	if len(al.Items) != 2 {
		t.Fatalf("items: %d", len(al.Items))
	}
	if al.Items[0].Anchor.ID() != "item-1-1" {
		t.Errorf("item 0 anchor: %q", al.Items[0].Anchor.ID())
	}
	if al.Items[1].Anchor.ID() != "item-1-2" {
		t.Errorf("item 1 anchor: %q", al.Items[1].Anchor.ID())
	}
}
