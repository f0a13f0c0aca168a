// registry.go -
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

package parser

// argSpecs is the static argument-spec registry for syntactic
// commands.  Each entry is a compact spec string: '*' an optional
// star, 'O' an optional [..] argument, 'A' a mandatory argument.
// Commands without an entry take no arguments; the document reader
// deals with everything else.
var argSpecs = map[string]string{
	// Sectioning.
	"part":          "*OA",
	"chapter":       "*OA",
	"section":       "*OA",
	"subsection":    "*OA",
	"subsubsection": "*OA",
	"paragraph":     "*OA",
	"subparagraph":  "*OA",

	// Preamble and title block.
	"documentclass":     "OA",
	"usepackage":        "OA",
	"pagestyle":         "A",
	"thispagestyle":     "A",
	"bibliography":      "A",
	"bibliographystyle": "A",
	"printbibliography": "O",
	"vspace":            "*A",
	"hspace":            "*A",
	"title":             "A",
	"subtitle":          "A",
	"author":            "A",
	"date":              "A",
	"thanks":            "A",

	// Font styles.
	"emph":       "A",
	"textbf":     "A",
	"textit":     "A",
	"textsc":     "A",
	"textsl":     "A",
	"textrm":     "A",
	"textsf":     "A",
	"texttt":     "A",
	"textup":     "A",
	"textmd":     "A",
	"textnormal": "A",
	"underline":  "A",

	// Cross-references and hyperlinks.
	"label":   "A",
	"ref":     "A",
	"pageref": "A",
	"autoref": "A",
	"url":     "A",
	"href":    "AA",

	// Floats and media.
	"includegraphics": "OA",
	"caption":         "OA",

	// Lists and tables.
	"item":        "O",
	"multicolumn": "AAA",
	"\\":          "O",

	// Citations.  The \cites multi-variants take a variable argument
	// list which the document reader consumes atom by atom.
	"cite":       "OOA",
	"parencite":  "OOA",
	"textcite":   "OOA",
	"citeauthor": "OOA",
	"citeyear":   "OOA",
	"footcite":   "OOA",

	// Notes.
	"footnote": "OA",

	// Environment delimiters.
	"begin": "A",
	"end":   "A",

	// Verbatim.
	"verb": "A",

	// Accents handled by the syntactic filter.
	"'": "A", "`": "A", "^": "A", "\"": "A", "~": "A",
	"=": "A", ".": "A", "u": "A", "v": "A", "H": "A",
	"c": "A", "d": "A", "b": "A", "r": "A", "k": "A",
	"t": "A",
}

// ArgSpec returns the registry spec string for a command name.
func ArgSpec(name string) string {
	return argSpecs[name]
}

// envArgSpecs lists environments whose \begin line carries arguments
// beyond the default optional one.
var envArgSpecs = map[string]string{
	"tabular":  "OA",
	"minipage": "OA",
}

// EnvArgSpec returns the spec string for an environment's trailing
// \begin arguments.
func EnvArgSpec(name string) string {
	if spec, ok := envArgSpecs[name]; ok {
		return spec
	}
	return "O"
}
