// bib_test.go -
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

package bib

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hardentoo/texhs/doc"
)

func TestLoad(t *testing.T) {
	src := `@book{smith20,
  author = {Smith, Jane},
  title = {A Book About Things},
  year = {2020},
  publisher = {Elsewhere Press},
}

@article{jones19,
  author = {Jones, Tom and Brown, Ann},
  title = {An Article},
  journal = {Journal of Examples},
  year = {2019},
}
`
	dir := t.TempDir()
	name := filepath.Join(dir, "refs.bib")
	if err := os.WriteFile(name, []byte(src), 0o666); err != nil {
		t.Fatal(err)
	}

	db, err := Load(name)
	if err != nil {
		t.Fatal(err)
	}
	if len(db) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(db))
	}
	rec, ok := db["smith20"]
	if !ok {
		t.Fatal("smith20 missing")
	}
	if rec.Type != "book" {
		t.Errorf("type: %q", rec.Type)
	}
	if rec.Fields["year"] != "2020" {
		t.Errorf("year: %q", rec.Fields["year"])
	}
}

func rec(fields map[string]string) doc.BibRecord {
	return doc.BibRecord{Type: "book", Key: "key", Fields: fields}
}

func TestShort(t *testing.T) {
	testCases := []struct {
		author string
		year   string
		out    string
	}{
		{"Smith, Jane", "2020", "Smith 2020"},
		{"Jane Smith", "2020", "Smith 2020"},
		{"Smith, Jane and Jones, Tom", "2019", "Smith and Jones 2019"},
		{"A One and B Two and C Three", "2018", "One et al. 2018"},
		{"", "2020", "key 2020"},
	}
	for _, tc := range testCases {
		r := rec(map[string]string{"author": tc.author, "year": tc.year})
		if got := Short(r); got != tc.out {
			t.Errorf("author %q: expected %q, got %q", tc.author, tc.out, got)
		}
	}
}

func TestAuthorAndYear(t *testing.T) {
	r := rec(map[string]string{"author": "Smith, Jane", "year": "2020"})
	if got := Author(r); got != "Smith" {
		t.Errorf("author: %q", got)
	}
	if got := Year(r); got != "2020" {
		t.Errorf("year: %q", got)
	}
}

func TestFormat(t *testing.T) {
	r := doc.BibRecord{
		Type: "article",
		Key:  "jones19",
		Fields: map[string]string{
			"author":  "Jones, Tom",
			"title":   "An {Article}",
			"journal": "Journal of Examples",
			"volume":  "7",
			"pages":   "1--10",
			"year":    "2019",
		},
	}
	got := Format(r)
	for _, want := range []string{"Jones, Tom", "(2019)", "An Article",
		"Journal of Examples"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatted entry %q missing %q", got, want)
		}
	}
}
