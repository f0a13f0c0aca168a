// main.go -
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

// Command texhs converts TeX source into XHTML or TEI-flavoured XML.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hardentoo/texhs/bib"
	"github.com/hardentoo/texhs/doc"
	"github.com/hardentoo/texhs/filter"
	"github.com/hardentoo/texhs/lexer"
	"github.com/hardentoo/texhs/parser"
	"github.com/hardentoo/texhs/reader"
	"github.com/hardentoo/texhs/writer"
)

var version = "0.1.0"

func main() {
	// -v belongs to --verbose, so the version flag uses -V.
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}

	app := &cli.App{
		Name:      "texhs",
		Usage:     "convert TeX source to XHTML or TEI XML",
		Version:   version,
		ArgsUsage: "INPUT.tex",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Value:   "html",
				Usage:   "output format: html, xhtml1 or xml",
			},
			&cli.StringFlag{
				Name:    "bibfile",
				Aliases: []string{"b"},
				Usage:   "BibTeX database `FILE`",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output `FILE` (default: standard output)",
			},
			&cli.StringFlag{
				Name:    "split",
				Aliases: []string{"s"},
				Usage:   "write one file per section into `DIR`",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Action: convert,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "texhs:", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
	}
	// Diagnostics belong on stderr; the document goes to stdout.
	cfg.OutputPaths = []string{"stderr"}
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return z.Sugar(), nil
}

func convert(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one input file expected")
	}
	inputName := c.Args().First()

	target, err := writer.ParseTarget(c.String("target"))
	if err != nil {
		return err
	}

	log, err := newLogger(c.Bool("verbose"))
	if err != nil {
		return err
	}
	defer log.Sync()

	meta := doc.NewMeta()
	if bibName := c.String("bibfile"); bibName != "" {
		db, err := bib.Load(bibName)
		if err != nil {
			return fmt.Errorf("reading %s: %w", bibName, err)
		}
		meta.DB = db
		log.Debugf("bibliography: %d entries", len(db))
	}

	lx := lexer.New(log)
	defer lx.Close()
	if err := lx.Include(inputName); err != nil {
		return err
	}
	toks, err := lx.Tokens()
	if err != nil {
		return err
	}
	log.Debugf("lexing: %d tokens", len(toks))

	atoms, err := parser.Parse(toks)
	if err != nil {
		return err
	}
	atoms = filter.Resolve(filter.Normalize(atoms))

	document, err := reader.Read(atoms, meta, log)
	if err != nil {
		return err
	}

	w := writer.New(target, log)
	if dir := c.String("split"); dir != "" {
		return w.WriteSplit(document, dir)
	}

	var out io.Writer = os.Stdout
	if name := c.String("output"); name != "" {
		fd, err := os.Create(name)
		if err != nil {
			return err
		}
		defer fd.Close()
		out = fd
	}
	return w.Write(document, out)
}
