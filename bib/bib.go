// bib.go -
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

// Package bib reads BibTeX databases and formats entries in an
// author-year style.  It is the collaborator the TeX front end
// consumes the citation database from.
package bib

import (
	"os"
	"strings"

	"github.com/nickng/bibtex"

	"github.com/hardentoo/texhs/doc"
)

// Load parses the BibTeX file into the bibliographic map consumed by
// the document meta.
func Load(path string) (map[string]doc.BibRecord, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	bt, err := bibtex.Parse(fd)
	if err != nil {
		return nil, err
	}

	db := make(map[string]doc.BibRecord, len(bt.Entries))
	for _, entry := range bt.Entries {
		fields := make(map[string]string, len(entry.Fields))
		for name, value := range entry.Fields {
			fields[name] = strings.TrimSpace(value.String())
		}
		db[entry.CiteName] = doc.BibRecord{
			Type:   entry.Type,
			Key:    entry.CiteName,
			Fields: fields,
		}
	}
	return db, nil
}

// Short returns the inline citation form: family names plus year,
// e.g. "Smith 2020" or "Smith and Jones 2020".
func Short(rec doc.BibRecord) string {
	names := familyNames(rec.Fields["author"])
	if len(names) == 0 {
		names = familyNames(rec.Fields["editor"])
	}
	year := rec.Fields["year"]

	var who string
	switch len(names) {
	case 0:
		who = rec.Key
	case 1:
		who = names[0]
	case 2:
		who = names[0] + " and " + names[1]
	default:
		who = names[0] + " et al."
	}
	if year == "" {
		return who
	}
	return who + " " + year
}

// Author returns the family-name part of the inline form.
func Author(rec doc.BibRecord) string {
	names := familyNames(rec.Fields["author"])
	if len(names) == 0 {
		names = familyNames(rec.Fields["editor"])
	}
	switch len(names) {
	case 0:
		return rec.Key
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return names[0] + " et al."
	}
}

// Year returns the year field.
func Year(rec doc.BibRecord) string {
	return rec.Fields["year"]
}

// Format renders a full reference-list entry.
func Format(rec doc.BibRecord) string {
	var parts []string
	if author := rec.Fields["author"]; author != "" {
		parts = append(parts, cleanBraces(author))
	} else if editor := rec.Fields["editor"]; editor != "" {
		parts = append(parts, cleanBraces(editor)+" (ed.)")
	}
	if year := rec.Fields["year"]; year != "" {
		parts = append(parts, "("+year+")")
	}
	if title := rec.Fields["title"]; title != "" {
		parts = append(parts, cleanBraces(title)+".")
	}

	switch rec.Type {
	case "article":
		var where []string
		if j := rec.Fields["journal"]; j != "" {
			where = append(where, cleanBraces(j))
		}
		if v := rec.Fields["volume"]; v != "" {
			where = append(where, v)
		}
		if p := rec.Fields["pages"]; p != "" {
			where = append(where, p)
		}
		if len(where) > 0 {
			parts = append(parts, strings.Join(where, " ")+".")
		}
	case "book", "incollection", "inproceedings":
		if bt := rec.Fields["booktitle"]; bt != "" {
			parts = append(parts, "In "+cleanBraces(bt)+".")
		}
		if pub := rec.Fields["publisher"]; pub != "" {
			parts = append(parts, pub+".")
		}
	default:
		if pub := rec.Fields["publisher"]; pub != "" {
			parts = append(parts, pub+".")
		}
	}
	return strings.Join(parts, " ")
}

// familyNames extracts the family name of each author in a BibTeX
// name list.
func familyNames(field string) []string {
	field = cleanBraces(field)
	if field == "" {
		return nil
	}
	var names []string
	for _, name := range strings.Split(field, " and ") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if comma := strings.Index(name, ","); comma >= 0 {
			// "Family, Given" form.
			names = append(names, strings.TrimSpace(name[:comma]))
			continue
		}
		words := strings.Fields(name)
		names = append(names, words[len(words)-1])
	}
	return names
}

func cleanBraces(s string) string {
	s = strings.ReplaceAll(s, "{", "")
	s = strings.ReplaceAll(s, "}", "")
	return strings.TrimSpace(s)
}
