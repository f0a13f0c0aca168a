// split.go -
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
	"fmt"
	"os"
	"path/filepath"

	"github.com/hardentoo/texhs/doc"
)

// splitLevel is the deepest header level that starts a new output
// file.
const splitLevel = 3

// WriteSplit renders the document as a set of section files in dir,
// named section-NNN.xhtml.  The anchor-file map is filled in before
// rendering so cross-file pointers resolve to the right file.
func (w *Writer) WriteSplit(d *doc.Document, dir string) error {
	if w.Target == XML {
		return fmt.Errorf("multi-file output is only available for HTML targets")
	}
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return err
	}

	chunks := splitBlocks(d.Blocks)
	names := make([]string, len(chunks))
	for i, chunk := range chunks {
		names[i] = fmt.Sprintf("section-%03d.xhtml", i)
		for _, id := range chunkAnchorIDs(chunk) {
			d.Meta.Files[id] = names[i]
		}
	}

	for i, chunk := range chunks {
		for _, b := range chunk {
			if _, ok := b.(*doc.BibList); ok {
				for j := range d.Meta.CiteKeys {
					a := doc.BibAnchor{N: j + 1}
					d.Meta.Files[a.ID()] = names[i]
				}
			}
		}
	}

	notesName := ""
	if len(d.Meta.Notes) > 0 {
		notesName = fmt.Sprintf("section-%03d.xhtml", len(chunks))
		for _, note := range d.Meta.Notes {
			textAnchor := doc.NoteAnchor{
				Chapter: note.Anchor.Chapter,
				N:       note.Anchor.N,
				Part:    doc.NoteText,
			}
			d.Meta.Files[textAnchor.ID()] = notesName
		}
	}

	for i, chunk := range chunks {
		r := &htmlRenderer{
			resolver: &resolver{meta: d.Meta, log: w.log, fileOf: d.Meta.Files},
			w:        w,
		}
		r.head(d)
		if i == 0 {
			r.titleBlock(d.Meta)
			if d.Meta.TOC {
				r.toc(d.Blocks)
			}
		}
		r.blocks(chunk)
		r.b.WriteString("</body>\n</html>\n")

		err := os.WriteFile(filepath.Join(dir, names[i]),
			[]byte(r.b.String()), 0o666)
		if err != nil {
			return err
		}
	}

	if notesName != "" {
		r := &htmlRenderer{
			resolver: &resolver{meta: d.Meta, log: w.log, fileOf: d.Meta.Files},
			w:        w,
		}
		r.head(d)
		r.notes(d.Meta)
		r.b.WriteString("</body>\n</html>\n")
		err := os.WriteFile(filepath.Join(dir, notesName),
			[]byte(r.b.String()), 0o666)
		if err != nil {
			return err
		}
	}
	return nil
}

// splitBlocks partitions the block sequence: a header at or above
// splitLevel starts a new chunk.  Content before the first header
// forms the leading chunk.
func splitBlocks(blocks []doc.Block) [][]doc.Block {
	var chunks [][]doc.Block
	var cur []doc.Block
	for _, b := range blocks {
		if h, ok := b.(*doc.Header); ok && h.Level <= splitLevel && len(cur) > 0 {
			chunks = append(chunks, cur)
			cur = nil
		}
		cur = append(cur, b)
	}
	if len(cur) > 0 || len(chunks) == 0 {
		chunks = append(chunks, cur)
	}
	return chunks
}

// chunkAnchorIDs collects every anchor ID defined inside the chunk.
func chunkAnchorIDs(blocks []doc.Block) []string {
	var ids []string
	add := func(a doc.Anchor) {
		if a == nil {
			return
		}
		if id := a.ID(); id != "" {
			ids = append(ids, id)
		}
	}

	var walkInlines func(inl []doc.Inline)
	var walkBlocks func(blocks []doc.Block)

	walkInlines = func(inl []doc.Inline) {
		for _, in := range inl {
			switch in := in.(type) {
			case *doc.FontStyle:
				walkInlines(in.Children)
			case *doc.Math:
				walkInlines(in.Children)
			case *doc.Note:
				add(in.Anchor)
				walkBlocks(in.Blocks)
			}
		}
	}

	walkBlocks = func(blocks []doc.Block) {
		for _, b := range blocks {
			switch b := b.(type) {
			case *doc.Paragraph:
				walkInlines(b.Inlines)
			case *doc.Header:
				add(b.Anchor)
				walkInlines(b.Text)
			case *doc.List:
				for _, item := range b.Items {
					walkBlocks(item)
				}
			case *doc.AnchorList:
				for _, item := range b.Items {
					add(item.Anchor)
					walkBlocks(item.Blocks)
				}
			case *doc.BibList:
				// Bibliography anchors live where the list is
				// rendered; the entries are numbered globally.
			case *doc.QuotationBlock:
				walkBlocks(b.Blocks)
			case *doc.Figure:
				add(b.Anchor)
				walkInlines(b.Caption)
			case *doc.Table:
				add(b.Anchor)
				walkInlines(b.Caption)
			}
		}
	}

	walkBlocks(blocks)
	return ids
}
