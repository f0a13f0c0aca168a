// writer_test.go -
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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hardentoo/texhs/doc"
)

func sampleDoc() *doc.Document {
	meta := doc.NewMeta()
	secAnchor := doc.SectionAnchor{Region: doc.Main, Nums: [7]int{0, 0, 1}}
	meta.RegisterLabel("l", secAnchor)

	blocks := []doc.Block{
		&doc.Header{
			Level:  3,
			Anchor: secAnchor,
			Text:   []doc.Inline{&doc.Str{Text: "One"}},
		},
		&doc.Paragraph{Inlines: []doc.Inline{
			&doc.Str{Text: "see"},
			&doc.Space{},
			&doc.Pointer{Label: "l"},
			&doc.Space{},
			&doc.Pointer{Label: "missing"},
		}},
	}
	return &doc.Document{Blocks: blocks, Meta: meta}
}

func render(t *testing.T, target Target, d *doc.Document) string {
	t.Helper()
	w := New(target, nil)
	var b strings.Builder
	if err := w.Write(d, &b); err != nil {
		t.Fatal(err)
	}
	return b.String()
}

func TestHTMLDocument(t *testing.T) {
	out := render(t, HTML5, sampleDoc())

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html xmlns="http://www.w3.org/1999/xhtml">`,
		`<h3 id="sec-0-0-1">One</h3>`,
		`<a href="#sec-0-0-1">0.0.1</a>`,
		`<span class="unresolved">???</span>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestXHTML1Doctype(t *testing.T) {
	out := render(t, HTML1, sampleDoc())
	if !strings.Contains(out, "XHTML 1.0 Strict") {
		t.Errorf("missing XHTML 1 doctype:\n%s", out)
	}
}

func TestXMLDocument(t *testing.T) {
	out := render(t, XML, sampleDoc())

	for _, want := range []string{
		`<TEI xmlns="http://www.tei-c.org/ns/1.0">`,
		`xml:id="sec-0-0-1"`,
		`<ref target="#sec-0-0-1">0.0.1</ref>`,
		`rend="unresolved"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCitationRendering(t *testing.T) {
	meta := doc.NewMeta()
	meta.DB["smith20"] = doc.BibRecord{
		Type: "book",
		Key:  "smith20",
		Fields: map[string]string{
			"author":    "Smith, Jane",
			"year":      "2020",
			"title":     "A Book",
			"publisher": "Elsewhere Press",
		},
	}
	meta.RegisterCite("smith20")

	blocks := []doc.Block{
		&doc.Paragraph{Inlines: []doc.Inline{
			&doc.Citation{Cite: doc.MultiCite{
				Mode:  doc.CiteBare,
				Cites: []doc.SingleCite{{Keys: []string{"smith20"}}},
			}},
		}},
		&doc.BibList{},
	}
	d := &doc.Document{Blocks: blocks, Meta: meta}

	out := render(t, HTML5, d)
	if !strings.Contains(out, `<a href="#bib-1">Smith 2020</a>`) {
		t.Errorf("citation link missing:\n%s", out)
	}
	if !strings.Contains(out, `<li id="bib-1">`) {
		t.Errorf("bibliography entry missing:\n%s", out)
	}
	if !strings.Contains(out, "Smith, Jane") {
		t.Errorf("formatted entry missing:\n%s", out)
	}
}

func TestFigureRendering(t *testing.T) {
	meta := doc.NewMeta()
	id := meta.RegisterMedia("p.png")
	blocks := []doc.Block{
		&doc.Figure{
			Anchor:  doc.FigureAnchor{Chapter: 1, N: 1},
			MediaID: id,
			Caption: []doc.Inline{&doc.Str{Text: "c"}},
		},
	}
	d := &doc.Document{Blocks: blocks, Meta: meta}

	out := render(t, HTML5, d)
	for _, want := range []string{
		`<figure id="figure-1-1">`,
		`<img src="p.png" alt="c"/>`,
		"Figure 1.1: c",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNotesRendering(t *testing.T) {
	meta := doc.NewMeta()
	note := &doc.Note{
		Anchor: doc.NoteAnchor{Chapter: 1, N: 1},
		Blocks: []doc.Block{&doc.Paragraph{Inlines: []doc.Inline{
			&doc.Str{Text: "body"},
		}}},
	}
	meta.AddNote(note)
	blocks := []doc.Block{
		&doc.Paragraph{Inlines: []doc.Inline{&doc.Str{Text: "x"}, note}},
	}
	d := &doc.Document{Blocks: blocks, Meta: meta}

	out := render(t, HTML5, d)
	for _, want := range []string{
		`id="note-1-1"`,
		`href="#notetext-1-1"`,
		`<li id="notetext-1-1">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCodeBlockRendering(t *testing.T) {
	d := &doc.Document{
		Blocks: []doc.Block{
			&doc.CodeBlock{Text: "a < b"},
		},
		Meta: doc.NewMeta(),
	}
	out := render(t, HTML5, d)
	if !strings.Contains(out, "<pre><code>a &lt; b</code></pre>") {
		t.Errorf("code block escaped wrong:\n%s", out)
	}
}

func TestWriteSplit(t *testing.T) {
	meta := doc.NewMeta()
	a1 := doc.SectionAnchor{Region: doc.Main, Nums: [7]int{0, 0, 1}}
	a2 := doc.SectionAnchor{Region: doc.Main, Nums: [7]int{0, 0, 2}}
	meta.RegisterLabel("two", a2)

	blocks := []doc.Block{
		&doc.Header{Level: 3, Anchor: a1,
			Text: []doc.Inline{&doc.Str{Text: "One"}}},
		&doc.Paragraph{Inlines: []doc.Inline{&doc.Pointer{Label: "two"}}},
		&doc.Header{Level: 3, Anchor: a2,
			Text: []doc.Inline{&doc.Str{Text: "Two"}}},
		&doc.Paragraph{Inlines: []doc.Inline{&doc.Str{Text: "text"}}},
	}
	d := &doc.Document{Blocks: blocks, Meta: meta}

	dir := t.TempDir()
	w := New(HTML5, nil)
	if err := w.WriteSplit(d, dir); err != nil {
		t.Fatal(err)
	}

	first, err := os.ReadFile(filepath.Join(dir, "section-000.xhtml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(first), `href="section-001.xhtml#sec-0-0-2"`) {
		t.Errorf("cross-file pointer wrong:\n%s", first)
	}

	second, err := os.ReadFile(filepath.Join(dir, "section-001.xhtml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(second), `<h3 id="sec-0-0-2">Two</h3>`) {
		t.Errorf("second file wrong:\n%s", second)
	}

	if meta.Files["sec-0-0-1"] != "section-000.xhtml" ||
		meta.Files["sec-0-0-2"] != "section-001.xhtml" {
		t.Errorf("anchor-file map: %v", meta.Files)
	}
}
