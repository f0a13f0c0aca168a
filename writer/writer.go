// writer.go -
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

// Package writer renders the semantic document as XHTML or as a
// TEI-flavoured XML document.  Cross-references are resolved here,
// against the label map accumulated by the reader.
package writer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hardentoo/texhs/bib"
	"github.com/hardentoo/texhs/doc"
)

// Target selects the output dialect.
type Target int

// The output targets.
const (
	HTML5 Target = iota
	HTML1
	XML
)

// ParseTarget maps a CLI target name.
func ParseTarget(name string) (Target, error) {
	switch name {
	case "html", "html5", "xhtml", "xhtml5":
		return HTML5, nil
	case "html1", "xhtml1":
		return HTML1, nil
	case "xml", "tei":
		return XML, nil
	}
	return HTML5, fmt.Errorf("unknown target %q", name)
}

// Writer renders documents.
type Writer struct {
	Target Target

	log *zap.SugaredLogger

	// docID identifies the output document when the source declares
	// no identity of its own.
	docID string
}

// New creates a Writer for the given target.
func New(target Target, log *zap.SugaredLogger) *Writer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Writer{
		Target: target,
		log:    log,
		docID:  "urn:uuid:" + uuid.New().String(),
	}
}

// Write renders the document to out.
func (w *Writer) Write(d *doc.Document, out io.Writer) error {
	var text string
	var err error
	switch w.Target {
	case XML:
		text, err = w.renderXML(d)
	default:
		text, err = w.renderHTML(d)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, text)
	return err
}

// resolver turns Pointer labels and citation keys into targets,
// reporting anything unresolved.
type resolver struct {
	meta *doc.Meta
	log  *zap.SugaredLogger

	// fileOf maps anchor IDs to output files for multi-file output;
	// nil for single-file output.
	fileOf map[string]string
}

// href returns the hyperlink target for an anchor ID, respecting the
// anchor-file map.
func (rz *resolver) href(id string) string {
	if rz.fileOf != nil {
		if file, ok := rz.fileOf[id]; ok {
			return file + "#" + id
		}
	}
	return "#" + id
}

// resolve returns the anchor a pointer label refers to.  Unresolved
// labels are reported and render as a placeholder.
func (rz *resolver) resolve(label string) (doc.Anchor, bool) {
	a, ok := rz.meta.Resolve(label)
	if !ok {
		rz.log.Warnf("unresolved reference %q", label)
	}
	return a, ok
}

// anchorText is the human-readable form a resolved pointer renders
// as.
func anchorText(a doc.Anchor) string {
	switch a := a.(type) {
	case doc.SectionAnchor:
		last := 0
		for i, n := range a.Nums {
			if n != 0 {
				last = i
			}
		}
		parts := make([]string, 0, last+1)
		for i := 0; i <= last; i++ {
			parts = append(parts, strconv.Itoa(a.Nums[i]))
		}
		return strings.Join(parts, ".")
	case doc.FigureAnchor:
		return fmt.Sprintf("Figure %d.%d", a.Chapter, a.N)
	case doc.TableAnchor:
		return fmt.Sprintf("Table %d.%d", a.Chapter, a.N)
	case doc.NoteAnchor:
		return fmt.Sprintf("Note %d.%d", a.Chapter, a.N)
	case doc.ItemAnchor:
		parts := make([]string, 0, len(a.Path))
		for _, n := range a.Path {
			parts = append(parts, strconv.Itoa(n))
		}
		return "(" + strings.Join(parts, ".") + ")"
	case doc.BibAnchor:
		return "[" + strconv.Itoa(a.N) + "]"
	case doc.PhantomAnchor:
		return "*"
	default:
		return ""
	}
}

// unresolvedMark is the placeholder for dangling references and
// unknown citation keys.
const unresolvedMark = "???"

// citePart is one rendered citation fragment: its display text and,
// when the key is known, the bibliography anchor it links to.
type citePart struct {
	text   string
	anchor doc.Anchor
}

// citeParts formats a citation against the database.
func (rz *resolver) citeParts(mc doc.MultiCite) []citePart {
	var parts []citePart
	for _, single := range mc.Cites {
		for _, key := range single.Keys {
			rec, known := rz.meta.DB[key]
			if !known {
				rz.log.Warnf("undefined citation key %q", key)
				parts = append(parts, citePart{text: unresolvedMark})
				continue
			}
			var text string
			switch mc.Mode {
			case doc.CiteAuthor:
				text = bib.Author(rec)
			case doc.CiteYear:
				text = bib.Year(rec)
			default:
				text = bib.Short(rec)
			}
			order := rz.meta.CiteOrder[key]
			parts = append(parts, citePart{
				text:   text,
				anchor: doc.BibAnchor{N: order},
			})
		}
	}
	return parts
}

// bibItems builds the bibliography in first-citation order.
func (rz *resolver) bibItems() []doc.BibItem {
	var items []doc.BibItem
	for i, key := range rz.meta.CiteKeys {
		anchor := doc.BibAnchor{N: i + 1}
		rec, known := rz.meta.DB[key]
		text := unresolvedMark
		if known {
			text = bib.Format(rec)
		} else {
			rz.log.Warnf("citation key %q missing from the database", key)
		}
		items = append(items, doc.BibItem{
			Anchor: anchor,
			Key:    key,
			Text:   []doc.Inline{&doc.Str{Text: text}},
		})
	}
	return items
}

// plainText flattens inlines for contexts that take character data
// only (titles, alt texts).
func plainText(inl []doc.Inline) string {
	var b strings.Builder
	for _, in := range inl {
		switch in := in.(type) {
		case *doc.Str:
			b.WriteString(in.Text)
		case *doc.Space:
			b.WriteByte(' ')
		case *doc.FontStyle:
			b.WriteString(plainText(in.Children))
		case *doc.Math:
			b.WriteString(plainText(in.Children))
		case *doc.Pointer:
			if ext, ok := in.Target.(*doc.ExternalResource); ok {
				b.WriteString(plainText(ext.Text))
			}
		}
	}
	return b.String()
}
