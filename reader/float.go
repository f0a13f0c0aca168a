// float.go -
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

// figureParts collects the constituents of a float, in any order and
// at any nesting depth inside centering wrappers.
type figureParts struct {
	graphics string
	caption  []parser.Atom
	hasCapt  bool
	label    string
	tabular  *parser.Group
}

// floatPartsP scans a float body for its constituents.  Wrapper
// groups (center, minipage, plain braces) are entered with GoDown and
// left again at their end; everything else is skipped.
func (r *reader) floatPartsP(c *walker.Ctx) (*figureParts, error) {
	parts := &figureParts{}
	base := len(c.Parents)
	for {
		if cmd, err := walker.Run(c, walker.Try(walker.Cmd("includegraphics"))); err == nil {
			parts.graphics = parser.ArgText(cmd.Args, parser.Oblig, 0)
			continue
		}
		if cmd, err := walker.Run(c, walker.Try(walker.Cmd("caption"))); err == nil {
			if !parts.hasCapt {
				parts.caption, _ = parser.ObligArgBody(cmd.Args, 0)
				parts.hasCapt = true
			}
			continue
		}
		if cmd, err := walker.Run(c, walker.Try(walker.Cmd("label"))); err == nil {
			if parts.label == "" {
				parts.label = parser.ArgText(cmd.Args, parser.Oblig, 0)
			}
			continue
		}
		if grp, err := walker.Run(c, walker.Try(walker.Grp("tabular"))); err == nil {
			if parts.tabular == nil {
				parts.tabular = grp
			}
			continue
		}
		if _, err := walker.Run(c, walker.Try(walker.GoDown)); err == nil {
			continue
		}
		if _, err := walker.Item(c); err == nil {
			continue
		}
		if len(c.Parents) > base {
			if _, err := walker.Run(c, walker.GoUp); err != nil {
				return parts, nil
			}
			continue
		}
		return parts, nil
	}
}

// figureP reads a figure environment: \includegraphics plus \caption
// and an optional \label, in any order, possibly wrapped in center
// groups.  Malformed figures are skipped with a warning.
func (r *reader) figureP(c *walker.Ctx) ([]doc.Block, error) {
	parts, err := walker.InGrp("figure", r.floatPartsP)(c)
	if err != nil {
		return nil, err
	}

	if parts.graphics == "" || !parts.hasCapt {
		r.log.Warnf("malformed figure skipped (graphics present: %v, caption present: %v)",
			parts.graphics != "", parts.hasCapt)
		return nil, nil
	}

	anchor := doc.FigureAnchor{
		Chapter: c.St.Ctr.Chapter(),
		N:       c.St.Ctr.IncFigure(),
	}
	c.St.Current = anchor
	mediaID := c.Meta.RegisterMedia(parts.graphics)
	if parts.label != "" {
		r.bindLabel(c, parts.label)
	}
	return []doc.Block{&doc.Figure{
		Anchor:  anchor,
		MediaID: mediaID,
		Caption: r.inlinesOf(c, parts.caption, doc.Normal),
	}}, nil
}

// tableP reads a table environment: a tabular body plus \caption and
// \label yield an anchored Table.
func (r *reader) tableP(c *walker.Ctx) ([]doc.Block, error) {
	parts, err := walker.InGrp("table", r.floatPartsP)(c)
	if err != nil {
		return nil, err
	}

	if parts.tabular == nil {
		r.log.Warnf("malformed table skipped (no tabular)")
		return nil, nil
	}
	if !parts.hasCapt {
		// A table float without caption degrades to its rows.
		return []doc.Block{&doc.SimpleTable{Rows: r.rowsOf(c, parts.tabular)}}, nil
	}

	anchor := doc.TableAnchor{
		Chapter: c.St.Ctr.Chapter(),
		N:       c.St.Ctr.IncTable(),
	}
	c.St.Current = anchor
	if parts.label != "" {
		r.bindLabel(c, parts.label)
	}
	return []doc.Block{&doc.Table{
		Anchor:  anchor,
		Caption: r.inlinesOf(c, parts.caption, doc.Normal),
		Rows:    r.rowsOf(c, parts.tabular),
	}}, nil
}

// tabularP reads a bare tabular group.
func (r *reader) tabularP(c *walker.Ctx) ([]doc.Block, error) {
	rows, err := walker.InGrp("tabular", r.rowsP)(c)
	if err != nil {
		return nil, err
	}
	return []doc.Block{&doc.SimpleTable{Rows: rows}}, nil
}

func (r *reader) rowsOf(c *walker.Ctx, grp *parser.Group) [][]doc.TableCell {
	sub := c.Child(grp.Body)
	rows, _ := r.rowsP(sub)
	c.AdoptState(sub)
	return rows
}

// rowsP parses a tabular body: rows separated by \\ and cells by
// alignment tabs.
func (r *reader) rowsP(c *walker.Ctx) ([][]doc.TableCell, error) {
	raw, err := walker.SepEndBy(r.rowP, walker.Cmd("\\"))(c)
	if err != nil {
		return nil, err
	}
	var rows [][]doc.TableCell
	for _, row := range raw {
		if !emptyRow(row) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (r *reader) rowP(c *walker.Ctx) ([]doc.TableCell, error) {
	alignP := walker.Satisfy(func(a parser.Atom) bool {
		_, ok := a.(*parser.AlignMark)
		return ok
	})
	return walker.SepBy(r.cellP, alignP)(c)
}

// cellP collects one cell's atoms, up to the next alignment tab or
// row separator.
func (r *reader) cellP(c *walker.Ctx) (doc.TableCell, error) {
	atoms, err := walker.Many(walker.Satisfy(isCellAtom))(c)
	if err != nil {
		return doc.TableCell{}, err
	}
	return r.cell(c, atoms), nil
}

func isCellAtom(a parser.Atom) bool {
	switch a := a.(type) {
	case *parser.AlignMark:
		return false
	case *parser.Command:
		return a.Name != "\\" && a.Name != "tabularnewline"
	}
	return true
}

// cell builds one table cell, handling \multicolumn and dropping
// horizontal rules.
func (r *reader) cell(c *walker.Ctx, atoms []parser.Atom) doc.TableCell {
	var kept []parser.Atom
	for _, a := range atoms {
		if cmd, ok := a.(*parser.Command); ok {
			switch cmd.Name {
			case "hline", "toprule", "midrule", "bottomrule", "cline":
				continue
			}
		}
		kept = append(kept, a)
	}
	kept = trimWhite(kept)

	if len(kept) == 1 {
		if cmd, ok := kept[0].(*parser.Command); ok && cmd.Name == "multicolumn" {
			width := 1
			if n := parser.ArgText(cmd.Args, parser.Oblig, 0); n != "" {
				width = atoiOr(n, 1)
			}
			body, _ := parser.ObligArgBody(cmd.Args, 2)
			return doc.TableCell{
				Width:   width,
				Inlines: r.inlinesOf(c, body, doc.Normal),
			}
		}
	}
	return doc.TableCell{Width: 1, Inlines: r.inlinesOf(c, kept, doc.Normal)}
}

func emptyRow(row []doc.TableCell) bool {
	for _, cell := range row {
		if len(cell.Inlines) > 0 || cell.Width > 1 {
			return false
		}
	}
	return true
}

func atoiOr(s string, fallback int) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return fallback
		}
		n = n*10 + int(r-'0')
	}
	if n == 0 {
		return fallback
	}
	return n
}
