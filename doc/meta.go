// meta.go -
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

package doc

import (
	"golang.org/x/crypto/sha3"
)

// BibRecord is one entry of the bibliographic database, as delivered
// by the BibTeX collaborator.
type BibRecord struct {
	Type   string
	Key    string
	Fields map[string]string
}

// MediaItem is a registered media file.
type MediaItem struct {
	ID   int
	Path string
}

// Meta is the document-level state accumulated while reading.  Table
// registrations are global: once committed they survive walker
// backtracking (the rolled-back part lives in State).
type Meta struct {
	Title    []Inline
	Subtitle []Inline
	Authors  [][]Inline
	Date     []Inline

	// Labels maps user label keys to element anchors.  The first
	// definition wins; later ones are ignored.
	Labels map[string]Anchor

	// Files maps anchor IDs to output file names for multi-file
	// output.  Empty for single-file output.
	Files map[string]string

	// Notes collects footnote bodies in the order they are completed:
	// a note nested in another one comes before its enclosing note.
	Notes []*Note

	// Media registers graphics files.  Identical paths share one ID.
	Media   []MediaItem
	mediaFP map[string]int

	// CiteOrder maps citation keys to their first-occurrence index
	// (1-based); CiteKeys lists the keys in that order.
	CiteOrder map[string]int
	CiteKeys  []string

	// DB is the bibliographic database, keyed by citation key.
	DB map[string]BibRecord

	// TOC records that the source requested a table of contents.
	TOC bool
}

// NewMeta returns an empty meta record.
func NewMeta() *Meta {
	return &Meta{
		Labels:    make(map[string]Anchor),
		Files:     make(map[string]string),
		mediaFP:   make(map[string]int),
		CiteOrder: make(map[string]int),
		DB:        make(map[string]BibRecord),
	}
}

// RegisterLabel binds key to anchor.  The result reports whether the
// binding was new; a second definition of the same key is ignored.
func (m *Meta) RegisterLabel(key string, a Anchor) bool {
	if _, ok := m.Labels[key]; ok {
		return false
	}
	m.Labels[key] = a
	return true
}

// Resolve looks up a label key.
func (m *Meta) Resolve(key string) (Anchor, bool) {
	a, ok := m.Labels[key]
	return a, ok
}

// RegisterMedia registers a media file and returns its ID.  Paths are
// fingerprinted so the same file registered twice keeps its first ID.
func (m *Meta) RegisterMedia(path string) int {
	fp := mediaFingerprint(path)
	if id, ok := m.mediaFP[fp]; ok {
		return id
	}
	id := len(m.Media) + 1
	m.Media = append(m.Media, MediaItem{ID: id, Path: path})
	m.mediaFP[fp] = id
	return id
}

func mediaFingerprint(path string) string {
	sum := sha3.Sum256([]byte(path))
	return string(sum[:])
}

// RegisterCite assigns key its first-occurrence index.  Registering
// an already-seen key is a no-op; the original index is returned.
func (m *Meta) RegisterCite(key string) int {
	if n, ok := m.CiteOrder[key]; ok {
		return n
	}
	n := len(m.CiteKeys) + 1
	m.CiteKeys = append(m.CiteKeys, key)
	m.CiteOrder[key] = n
	return n
}

// AddNote records a footnote body for end-of-document rendering.
func (m *Meta) AddNote(n *Note) {
	m.Notes = append(m.Notes, n)
}

// Document is the result of reading a TeX source: the block sequence
// plus the accumulated meta state.
type Document struct {
	Blocks []Block
	Meta   *Meta
}
