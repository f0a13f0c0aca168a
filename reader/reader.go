// reader.go -
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

// Package reader turns normalised atom trees into the semantic
// document model.  It is a grammar built on the walker combinators:
// block and inline productions are walker parsers, tried in order
// with backtracking, and the traversal state (counters, current
// anchor, region) is rolled back with every failed alternative.
package reader

import (
	"strings"

	"go.uber.org/zap"

	"github.com/hardentoo/texhs/doc"
	"github.com/hardentoo/texhs/parser"
	"github.com/hardentoo/texhs/walker"
)

// secLevels maps sectioning commands to header levels.
var secLevels = map[string]int{
	"part":          1,
	"chapter":       2,
	"section":       3,
	"subsection":    4,
	"subsubsection": 5,
	"paragraph":     6,
	"subparagraph":  7,
}

var sectionNames = []string{
	"part", "chapter", "section", "subsection", "subsubsection",
	"paragraph", "subparagraph",
}

// regionFor maps region-switching commands.  \appendix and
// \backmatter both select the back region.
var regionFor = map[string]doc.Region{
	"frontmatter": doc.Front,
	"mainmatter":  doc.Main,
	"appendix":    doc.Back,
	"backmatter":  doc.Back,
}

// metaNames are the block commands that feed the document meta or
// carry no semantic content.
var metaNames = []string{
	"title", "subtitle", "author", "date",
	"maketitle", "tableofcontents",
	"printbibliography", "bibliography", "bibliographystyle",
	"documentclass", "usepackage", "pagestyle", "thispagestyle",
	"noindent", "centering", "raggedright", "raggedleft",
	"bigskip", "medskip", "smallskip", "clearpage", "newpage",
	"vspace", "hspace", "vfill", "hfill", "indent",
}

type reader struct {
	log *zap.SugaredLogger
}

// Read walks the atom tree and produces the semantic document.  The
// top level tries the block productions in order; when none matches,
// it descends into the first container and retries before giving the
// atom up with a warning.
func Read(atoms []parser.Atom, meta *doc.Meta, log *zap.SugaredLogger) (*doc.Document, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	r := &reader{log: log}
	c := walker.NewCtx(atoms, meta)

	var out []doc.Block
	for {
		_, _ = walker.Run(c, walker.Many(blankP))
		if _, err := walker.Run(c, walker.EOF); err == nil {
			break
		}
		if _, err := walker.Run(c, walker.EOG); err == nil {
			// A production left us inside a container; climb out.
			if _, uerr := walker.Run(c, walker.GoUp); uerr != nil {
				break
			}
			continue
		}

		bs, err := walker.Run(c, walker.Try(r.blockP))
		if err == nil {
			out = append(out, bs...)
			continue
		}
		bs, err = walker.Run(c, walker.Try(walker.OptNested(r.blockP)))
		if err == nil {
			out = append(out, bs...)
			continue
		}

		r.dropAtom(c)
	}
	return &doc.Document{Blocks: out, Meta: meta}, nil
}

// blankP consumes one inter-block whitespace atom.
func blankP(c *walker.Ctx) (parser.Atom, error) {
	return walker.Satisfy(func(a parser.Atom) bool {
		switch a.(type) {
		case *parser.White, *parser.Newline, *parser.Par:
			return true
		}
		return false
	})(c)
}

func isItemCmd(a parser.Atom) bool {
	cmd, ok := a.(*parser.Command)
	return ok && (cmd.Name == "item" || cmd.Name == "ex")
}

func (r *reader) dropAtom(c *walker.Ctx) {
	a, err := walker.Item(c)
	if err != nil {
		return
	}
	if cmd, ok := a.(*parser.Command); ok {
		r.log.Warnf("unknown block command \\%s dropped", cmd.Name)
	} else {
		r.log.Warnf("unhandled block element %T dropped", a)
	}
}

// blocks reads block elements until the focus is exhausted or an
// \item boundary is reached (items are claimed by the enclosing list
// production).  Atoms no production accepts are dropped.
func (r *reader) blocks(c *walker.Ctx) []doc.Block {
	var out []doc.Block
	for {
		_, _ = walker.Run(c, walker.Many(blankP))
		a, ok := c.PeekAtom()
		if !ok {
			return out
		}
		if isItemCmd(a) {
			return out
		}

		bs, err := walker.Run(c, walker.Try(r.blockP))
		if err != nil {
			r.dropAtom(c)
			continue
		}
		out = append(out, bs...)
	}
}

// blocksP is the blocks production in parser form, for use inside
// group combinators.
func (r *reader) blocksP(c *walker.Ctx) ([]doc.Block, error) {
	return r.blocks(c), nil
}

// blocksOf reads blocks from a detached atom sequence, e.g. a
// footnote body or a macro argument.
func (r *reader) blocksOf(c *walker.Ctx, atoms []parser.Atom) []doc.Block {
	sub := c.Child(atoms)
	blocks := r.blocks(sub)
	c.AdoptState(sub)
	return blocks
}

// blockP is the block grammar: one alternative per production.
func (r *reader) blockP(c *walker.Ctx) ([]doc.Block, error) {
	return walker.Choice(
		r.sectionP,
		r.regionP,
		r.metaP,
		r.groupP,
		r.paragraphP,
	)(c)
}

// sectionP reads a sectioning command, advances the counters and
// emits a Header.  Starred forms yield phantom anchors.
func (r *reader) sectionP(c *walker.Ctx) ([]doc.Block, error) {
	cmd, err := walker.CmdOf(sectionNames...)(c)
	if err != nil {
		return nil, err
	}
	level := secLevels[cmd.Name]

	var anchor doc.Anchor
	if parser.HasStar(cmd.Args) {
		anchor = doc.PhantomAnchor{
			Region: c.St.Region,
			N:      c.St.Ctr.IncPhantom(),
		}
	} else {
		nums := c.St.Ctr.IncSection(level)
		anchor = doc.SectionAnchor{Region: c.St.Region, Nums: nums}
	}
	c.St.Current = anchor

	body, _ := parser.ObligArgBody(cmd.Args, 0)
	text := r.inlinesOf(c, body, doc.Normal)
	return []doc.Block{&doc.Header{Level: level, Anchor: anchor, Text: text}}, nil
}

// regionP switches the book region.
func (r *reader) regionP(c *walker.Ctx) ([]doc.Block, error) {
	cmd, err := walker.CmdOf("frontmatter", "mainmatter", "appendix", "backmatter")(c)
	if err != nil {
		return nil, err
	}
	c.St.Region = regionFor[cmd.Name]
	return nil, nil
}

// metaP handles block-level commands that feed the document meta
// instead of emitting content.
func (r *reader) metaP(c *walker.Ctx) ([]doc.Block, error) {
	if key, err := walker.Run(c, walker.Try(walker.InCmd("label", walker.Rest))); err == nil {
		r.bindLabel(c, parser.Text(key))
		return nil, nil
	}

	cmd, err := walker.CmdOf(metaNames...)(c)
	if err != nil {
		return nil, err
	}

	switch cmd.Name {
	case "title", "subtitle", "author", "date":
		body, _ := parser.ObligArgBody(cmd.Args, 0)
		switch cmd.Name {
		case "title":
			c.Meta.Title = r.inlinesOf(c, body, doc.Normal)
		case "subtitle":
			c.Meta.Subtitle = r.inlinesOf(c, body, doc.Normal)
		case "author":
			c.Meta.Authors = r.splitAuthors(c, body)
		case "date":
			c.Meta.Date = r.inlinesOf(c, body, doc.Normal)
		}

	case "tableofcontents":
		c.Meta.TOC = true

	case "printbibliography":
		return []doc.Block{&doc.BibList{}}, nil
	}
	// Everything else is layout with no semantic content.
	return nil, nil
}

func (r *reader) bindLabel(c *walker.Ctx, key string) {
	if key == "" {
		return
	}
	if !c.Meta.RegisterLabel(key, c.St.Current) {
		r.log.Warnf("duplicate label %q ignored", key)
	}
}

// groupP is the block-environment grammar.
func (r *reader) groupP(c *walker.Ctx) ([]doc.Block, error) {
	return walker.Choice(
		r.transparentP,
		r.listP,
		r.exampleListP,
		r.figureP,
		r.tableP,
		r.tabularP,
		r.quoteP,
		r.verbatimP,
		r.bibP,
	)(c)
}

// transparentP descends into groups that add no structure of their
// own.
func (r *reader) transparentP(c *walker.Ctx) ([]doc.Block, error) {
	return walker.InGrpChoice(
		[]string{"document", "center", "flushleft", "flushright", "minipage"},
		r.blocksP,
	)(c)
}

// quoteP reads quotation-like environments.
func (r *reader) quoteP(c *walker.Ctx) ([]doc.Block, error) {
	blocks, err := walker.InGrpChoice(
		[]string{"quotation", "quote", "abstract"}, r.blocksP,
	)(c)
	if err != nil {
		return nil, err
	}
	return []doc.Block{&doc.QuotationBlock{Blocks: blocks}}, nil
}

// verbatimP reads a verbatim or lstlisting environment.
func (r *reader) verbatimP(c *walker.Ctx) ([]doc.Block, error) {
	grp, err := walker.GrpOf("verbatim", "lstlisting")(c)
	if err != nil {
		return nil, err
	}
	return []doc.Block{codeBlock(grp)}, nil
}

// bibP reads an explicit bibliography environment; the entries are
// filled in at emit time from the citation map.
func (r *reader) bibP(c *walker.Ctx) ([]doc.Block, error) {
	_, err := walker.Grp("thebibliography")(c)
	if err != nil {
		return nil, err
	}
	return []doc.Block{&doc.BibList{}}, nil
}

// codeBlock converts a verbatim group into a CodeBlock, extracting a
// language from lstlisting options when present.
func codeBlock(grp *parser.Group) *doc.CodeBlock {
	lang := ""
	if opts, ok := parser.OptArgBody(grp.Args, 0); ok {
		for _, kv := range strings.Split(parser.Text(opts), ",") {
			k, v, found := strings.Cut(strings.TrimSpace(kv), "=")
			if found && strings.TrimSpace(k) == "language" {
				lang = strings.TrimSpace(v)
			}
		}
	}
	return &doc.CodeBlock{Language: lang, Text: parser.Text(grp.Body)}
}

func (r *reader) splitAuthors(c *walker.Ctx, body []parser.Atom) [][]doc.Inline {
	var authors [][]doc.Inline
	var cur []parser.Atom
	flush := func() {
		inl := r.inlinesOf(c, trimWhite(cur), doc.Normal)
		if len(inl) > 0 {
			authors = append(authors, inl)
		}
		cur = nil
	}
	for _, a := range body {
		if cmd, ok := a.(*parser.Command); ok && cmd.Name == "and" {
			flush()
			continue
		}
		cur = append(cur, a)
	}
	flush()
	return authors
}

func trimWhite(atoms []parser.Atom) []parser.Atom {
	start, end := 0, len(atoms)
	for start < end {
		if _, ok := atoms[start].(*parser.White); !ok {
			break
		}
		start++
	}
	for end > start {
		if _, ok := atoms[end-1].(*parser.White); !ok {
			break
		}
		end--
	}
	return atoms[start:end]
}
