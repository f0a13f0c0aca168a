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

package reader

import (
	"github.com/hardentoo/texhs/doc"
	"github.com/hardentoo/texhs/parser"
	"github.com/hardentoo/texhs/walker"
)

// styleCmds maps one-argument font commands to styles.
var styleCmds = map[string]doc.Style{
	"emph":       doc.Emph,
	"textbf":     doc.Bold,
	"textit":     doc.Italic,
	"textsc":     doc.SmallCaps,
	"textsl":     doc.Slanted,
	"texttt":     doc.Monospace,
	"textsf":     doc.Sans,
	"textup":     doc.Upright,
	"textrm":     doc.Normal,
	"textmd":     doc.Normal,
	"textnormal": doc.Normal,
	"underline":  doc.Emph,
}

// switchCmds maps group-scoped font switches to styles.  A switch
// affects all following siblings up to the end of the enclosing
// group.
var switchCmds = map[string]doc.Style{
	"em":         doc.Emph,
	"it":         doc.Italic,
	"itshape":    doc.Italic,
	"bf":         doc.Bold,
	"bfseries":   doc.Bold,
	"sc":         doc.SmallCaps,
	"scshape":    doc.SmallCaps,
	"sl":         doc.Slanted,
	"slshape":    doc.Slanted,
	"tt":         doc.Monospace,
	"ttfamily":   doc.Monospace,
	"sf":         doc.Sans,
	"sffamily":   doc.Sans,
	"rm":         doc.Normal,
	"rmfamily":   doc.Normal,
	"mdseries":   doc.Normal,
	"upshape":    doc.Upright,
	"normalfont": doc.Normal,
}

// pointerCmds are the cross-reference commands emitting Pointer
// inlines resolved at emit time.
var pointerCmds = map[string]bool{
	"ref":     true,
	"pageref": true,
	"autoref": true,
}

// paragraphP reads a run of inlines up to the next paragraph break or
// block boundary.  An empty run fails, so that the block grammar can
// fall through to its recovery productions.
func (r *reader) paragraphP(c *walker.Ctx) ([]doc.Block, error) {
	inlines := r.inlines(c, doc.Normal, true)
	if len(inlines) == 0 {
		return nil, walker.Fail("no paragraph content")
	}
	return []doc.Block{&doc.Paragraph{Inlines: inlines}}, nil
}

// inlinesOf parses a detached atom sequence as inlines.
func (r *reader) inlinesOf(c *walker.Ctx, atoms []parser.Atom, style doc.Style) []doc.Inline {
	sub := c.Child(atoms)
	inl := r.inlines(sub, style, false)
	c.AdoptState(sub)
	return inl
}

// inlineBodyP is the inline grammar in parser form, for use inside
// the command and script combinators.
func (r *reader) inlineBodyP(style doc.Style) walker.P[[]doc.Inline] {
	return func(c *walker.Ctx) ([]doc.Inline, error) {
		return r.inlines(c, style, false), nil
	}
}

// mathBodyP renders a maths body as inlines.
func (r *reader) mathBodyP(c *walker.Ctx) ([]doc.Inline, error) {
	atoms, err := walker.Rest(c)
	if err != nil {
		return nil, err
	}
	return r.mathInlines(atoms), nil
}

// inlines reads inline elements until a paragraph break, a block
// boundary (only when atTop is set), or the end of the focus.
func (r *reader) inlines(c *walker.Ctx, style doc.Style, atTop bool) []doc.Inline {
	var out []doc.Inline
	for {
		a, ok := c.PeekAtom()
		if !ok {
			return trimSpaces(out)
		}

		switch a := a.(type) {
		case *parser.Par:
			_, _ = walker.Item(c)
			return trimSpaces(out)

		case *parser.Plain:
			_, _ = walker.Item(c)
			out = append(out, &doc.Str{Text: a.Text})

		case *parser.White, *parser.Newline:
			_, _ = walker.Item(c)
			out = append(out, &doc.Space{})

		case *parser.MathGroup:
			res, err := walker.Run(c, walker.InMathGrp(r.mathBodyP))
			if err != nil {
				_, _ = walker.Item(c)
				continue
			}
			mt := doc.InlineMath
			if res.First == parser.DisplayMath {
				mt = doc.DisplayMath
			}
			out = append(out, &doc.Math{Type: mt, Children: res.Second})

		case *parser.SupScript:
			if inl, err := walker.Run(c, walker.InSupScript(r.inlineBodyP(style))); err == nil {
				out = append(out, inl...)
			}

		case *parser.SubScript:
			if inl, err := walker.Run(c, walker.InSubScript(r.inlineBodyP(style))); err == nil {
				out = append(out, inl...)
			}

		case *parser.Group:
			if atTop && isBlockGroup(a.Name) {
				return trimSpaces(out)
			}
			if _, err := walker.Run(c, walker.GoDown); err != nil {
				_, _ = walker.Item(c)
				continue
			}
			out = append(out, r.inlines(c, style, false)...)
			_, _ = walker.Run(c, walker.GoUp)

		case *parser.Command:
			if atTop && isBlockCommand(a.Name) {
				return trimSpaces(out)
			}
			inl, stop := r.inlineCommand(c, a, style, atTop)
			out = append(out, inl...)
			if stop {
				return trimSpaces(out)
			}

		default:
			// AlignMark outside a table context has no meaning.
			_, _ = walker.Item(c)
		}
	}
}

// inlineCommand handles one command in inline context.  The boolean
// result requests the caller to stop (font switches swallow the rest
// of the group).
func (r *reader) inlineCommand(c *walker.Ctx, cmd *parser.Command, style doc.Style, atTop bool) ([]doc.Inline, bool) {
	name := cmd.Name

	if st, ok := styleCmds[name]; ok {
		_, _ = walker.Item(c)
		body, _ := parser.ObligArgBody(cmd.Args, 0)
		effective := effectiveStyle(st, style)
		return []doc.Inline{&doc.FontStyle{
			Style:    effective,
			Children: r.inlinesOf(c, body, effective),
		}}, false
	}

	if st, ok := switchCmds[name]; ok {
		_, _ = walker.Item(c)
		effective := effectiveStyle(st, style)
		rest := r.inlines(c, effective, atTop)
		return []doc.Inline{&doc.FontStyle{Style: effective, Children: rest}}, true
	}

	if pointerCmds[name] {
		key, err := walker.Run(c, walker.Choice(
			walker.InCmd("ref", walker.Rest),
			walker.InCmd("pageref", walker.Rest),
			walker.InCmd("autoref", walker.Rest),
		))
		if err != nil {
			_, _ = walker.Item(c)
			return nil, false
		}
		return []doc.Inline{&doc.Pointer{Label: parser.Text(key)}}, false
	}

	if isCiteCommand(name) {
		return r.citation(c, cmd), false
	}

	switch name {
	case "label":
		if key, err := walker.Run(c, walker.InCmd("label", walker.Rest)); err == nil {
			r.bindLabel(c, parser.Text(key))
		} else {
			_, _ = walker.Item(c)
		}
		return nil, false

	case "href":
		res, err := walker.Run(c, walker.InCmd2("href", walker.Rest, r.inlineBodyP(style)))
		if err != nil {
			_, _ = walker.Item(c)
			return nil, false
		}
		return []doc.Inline{&doc.Pointer{
			Label:  "",
			Target: &doc.ExternalResource{Text: res.Second, URL: parser.Text(res.First)},
		}}, false

	case "url":
		atoms, err := walker.Run(c, walker.InCmd("url", walker.Rest))
		if err != nil {
			_, _ = walker.Item(c)
			return nil, false
		}
		url := parser.Text(atoms)
		return []doc.Inline{&doc.Pointer{
			Label:  "",
			Target: &doc.ExternalResource{Text: []doc.Inline{&doc.Str{Text: url}}, URL: url},
		}}, false

	case "footnote":
		note, err := walker.Run(c, walker.InCmd("footnote", r.noteBodyP))
		if err != nil {
			_, _ = walker.Item(c)
			return nil, false
		}
		return []doc.Inline{note}, false

	case "verb":
		atoms, err := walker.Run(c, walker.InCmd("verb", walker.Rest))
		if err != nil {
			_, _ = walker.Item(c)
			return nil, false
		}
		return []doc.Inline{&doc.FontStyle{
			Style:    doc.Monospace,
			Children: []doc.Inline{&doc.Str{Text: parser.Text(atoms)}},
		}}, false

	case "\\", "newline", "linebreak":
		_, _ = walker.Item(c)
		return []doc.Inline{&doc.Space{}}, false

	case "noindent", "centering", "raggedright", "raggedleft",
		"bigskip", "medskip", "smallskip", "vfill", "hfill",
		"relax", "ignorespaces", "/", "-":
		_, _ = walker.Item(c)
		return nil, false
	}

	// Unknown command in inline context: drop it but recurse into
	// its argument contents.  This stands in for the optNested
	// descent of the combinator layer: parsed arguments are detached
	// atom lists rather than containers in the focus, so the reader
	// walks them as child contexts instead of descending in place.
	_, _ = walker.Item(c)
	r.log.Debugf("unknown inline command \\%s dropped", name)
	var out []doc.Inline
	for _, arg := range cmd.Args {
		if arg.Kind == parser.Oblig {
			out = append(out, r.inlinesOf(c, arg.Body, style)...)
		}
	}
	return out, false
}

// noteBodyP reads a footnote body: the note counter advances, the
// body is parsed as blocks, and the note is registered.
func (r *reader) noteBodyP(c *walker.Ctx) (*doc.Note, error) {
	chapter := c.St.Ctr.Chapter()
	n := c.St.Ctr.IncNote()
	anchor := doc.NoteAnchor{Chapter: chapter, N: n, Part: doc.NoteMark}

	note := &doc.Note{Anchor: anchor, Blocks: r.blocks(c)}
	c.Meta.AddNote(note)
	return note, nil
}

// effectiveStyle inverts a style applied within itself: \em inside
// emphasis switches back to normal.
func effectiveStyle(requested, current doc.Style) doc.Style {
	if requested == current && requested != doc.Normal {
		return doc.Normal
	}
	return requested
}

// mathInlines renders maths content as inlines, keeping scripts in
// textual form.
func (r *reader) mathInlines(atoms []parser.Atom) []doc.Inline {
	var out []doc.Inline
	for _, a := range atoms {
		switch a := a.(type) {
		case *parser.Plain:
			out = append(out, &doc.Str{Text: a.Text})
		case *parser.White, *parser.Newline:
			out = append(out, &doc.Space{})
		case *parser.Group:
			out = append(out, r.mathInlines(a.Body)...)
		case *parser.SupScript:
			out = append(out, &doc.Str{Text: "^"})
			out = append(out, r.mathInlines(a.Body)...)
		case *parser.SubScript:
			out = append(out, &doc.Str{Text: "_"})
			out = append(out, r.mathInlines(a.Body)...)
		case *parser.Command:
			// Symbols were resolved by the filter; remaining
			// commands keep their name as text.
			out = append(out, &doc.Str{Text: "\\" + a.Name})
			for _, arg := range a.Args {
				if arg.Kind == parser.Oblig {
					out = append(out, r.mathInlines(arg.Body)...)
				}
			}
		}
	}
	return out
}

// trimSpaces drops leading and trailing Space inlines.
func trimSpaces(inl []doc.Inline) []doc.Inline {
	start, end := 0, len(inl)
	for start < end {
		if _, ok := inl[start].(*doc.Space); !ok {
			break
		}
		start++
	}
	for end > start {
		if _, ok := inl[end-1].(*doc.Space); !ok {
			break
		}
		end--
	}
	return inl[start:end]
}

// isBlockGroup reports whether a named group terminates a paragraph.
func isBlockGroup(name string) bool {
	switch name {
	case "itemize", "enumerate", "description", "exe", "xlist",
		"figure", "table", "tabular", "quotation", "quote",
		"verbatim", "lstlisting", "center", "flushleft",
		"flushright", "minipage", "thebibliography", "abstract",
		"document":
		return true
	}
	return false
}

// isBlockCommand reports whether a command terminates a paragraph.
func isBlockCommand(name string) bool {
	if _, ok := secLevels[name]; ok {
		return true
	}
	if _, ok := regionFor[name]; ok {
		return true
	}
	switch name {
	case "item", "ex", "maketitle", "tableofcontents",
		"printbibliography", "title", "subtitle", "author", "date",
		"documentclass", "usepackage":
		return true
	}
	return false
}
