// scanner_test.go -
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

package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScannerSimple(t *testing.T) {
	scan := &Scanner{}
	target := "testing"
	scan.Prepend([]byte(target[4:]), "end")
	scan.Prepend([]byte(target[:4]), "beginning")

	for len(target) > 0 {
		if !scan.Next() {
			t.Fatal("unexpected end of data")
		}
		buf, err := scan.Peek()
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if string(buf) != target {
			t.Fatalf("expected %q, got %q", target, string(buf))
		}
		scan.Skip(1)
		target = target[1:]
	}

	if scan.Next() {
		t.Fatal("unexpected data")
	}
}

func TestPeekRune(t *testing.T) {
	scan := &Scanner{}
	scan.Prepend([]byte("äbc"), "data")
	if !scan.Next() {
		t.Fatal("no data")
	}
	r, size, err := scan.PeekRune()
	if err != nil {
		t.Fatal(err)
	}
	if r != 'ä' || size != 2 {
		t.Errorf("expected ä (2 bytes), got %q (%d bytes)", r, size)
	}
	scan.Skip(size)
	if !scan.Next() {
		t.Fatal("no data after skip")
	}
	r, _, err = scan.PeekRune()
	if err != nil {
		t.Fatal(err)
	}
	if r != 'b' {
		t.Errorf("expected b, got %q", r)
	}
}

func TestInclude(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "input.tex")
	if err := os.WriteFile(name, []byte("file contents"), 0o666); err != nil {
		t.Fatal(err)
	}

	scan := &Scanner{}
	scan.Prepend([]byte(" rest"), "outer")
	if err := scan.Include(name); err != nil {
		t.Fatal(err)
	}

	var got []byte
	for scan.Next() {
		buf, err := scan.Peek()
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, buf[0])
		scan.Skip(1)
	}
	if string(got) != "file contents rest" {
		t.Errorf("wrong read order: %q", got)
	}
	if scan.BaseDir != dir {
		t.Errorf("BaseDir = %q, expected %q", scan.BaseDir, dir)
	}
}

func TestMakeError(t *testing.T) {
	scan := &Scanner{}
	scan.Prepend([]byte("line 1\nline 2\nabc"), "outer")
	scan.Prepend([]byte("included\ntext"), "inner")

	// Advance into line 2 of the inner buffer.
	for i := 0; i < len("included\nte"); i++ {
		if !scan.Next() {
			t.Fatal("unexpected end of data")
		}
		scan.Skip(1)
	}

	err := scan.MakeError("boom")
	msg := err.Error()
	if !strings.Contains(msg, "boom") {
		t.Errorf("message lost: %q", msg)
	}
	if !strings.Contains(msg, "inner, line 2, column 3") {
		t.Errorf("wrong position: %q", msg)
	}
	if !strings.Contains(msg, "included from") ||
		!strings.Contains(msg, "outer, line 1, column 1") {
		t.Errorf("include stack missing: %q", msg)
	}
}
