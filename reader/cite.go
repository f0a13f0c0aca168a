// cite.go -
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
	"strings"

	"github.com/hardentoo/texhs/doc"
	"github.com/hardentoo/texhs/parser"
	"github.com/hardentoo/texhs/walker"
)

// citeModes maps the single-citation commands to their modes.
var citeModes = map[string]doc.CiteMode{
	"cite":       doc.CiteBare,
	"parencite":  doc.CiteParen,
	"footcite":   doc.CiteParen,
	"textcite":   doc.CiteText,
	"citeauthor": doc.CiteAuthor,
	"citeyear":   doc.CiteYear,
}

// multiCiteModes maps the \cites multi-variants.
var multiCiteModes = map[string]doc.CiteMode{
	"cites":       doc.CiteBare,
	"parencites":  doc.CiteParen,
	"textcites":   doc.CiteText,
	"citeauthors": doc.CiteAuthor,
}

func isCiteCommand(name string) bool {
	if _, ok := citeModes[name]; ok {
		return true
	}
	_, ok := multiCiteModes[name]
	return ok
}

// citation reads one citation command.  Every key is registered in
// the citation-occurrence map; the first occurrence fixes its global
// order.
func (r *reader) citation(c *walker.Ctx, cmd *parser.Command) []doc.Inline {
	_, _ = walker.Item(c)

	if mode, ok := multiCiteModes[cmd.Name]; ok {
		return []doc.Inline{r.multiCite(c, mode)}
	}

	mode := citeModes[cmd.Name]
	keys := splitKeys(parser.ArgText(cmd.Args, parser.Oblig, 0))
	for _, key := range keys {
		c.Meta.RegisterCite(key)
	}

	// With one optional argument it is the postnote; with two, the
	// first is the prenote.
	var prenote, postnote []doc.Inline
	opt0, has0 := parser.OptArgBody(cmd.Args, 0)
	opt1, has1 := parser.OptArgBody(cmd.Args, 1)
	switch {
	case has0 && has1:
		prenote = r.inlinesOf(c, opt0, doc.Normal)
		postnote = r.inlinesOf(c, opt1, doc.Normal)
	case has0:
		postnote = r.inlinesOf(c, opt0, doc.Normal)
	}

	return []doc.Inline{&doc.Citation{Cite: doc.MultiCite{
		Mode:     mode,
		Prenote:  prenote,
		Postnote: postnote,
		Cites:    []doc.SingleCite{{Keys: keys}},
	}}}
}

// multiCite consumes the {key} groups following a \cites command.
func (r *reader) multiCite(c *walker.Ctx, mode doc.CiteMode) doc.Inline {
	groups, _ := walker.Run(c, walker.Many(walker.Grp("")))
	var singles []doc.SingleCite
	for _, grp := range groups {
		keys := splitKeys(parser.Text(grp.Body))
		for _, key := range keys {
			c.Meta.RegisterCite(key)
		}
		singles = append(singles, doc.SingleCite{Keys: keys})
	}
	return &doc.Citation{Cite: doc.MultiCite{Mode: mode, Cites: singles}}
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
