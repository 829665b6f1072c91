// seehuhn.de/go/fontmerge - a tool for building composite font families
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"seehuhn.de/go/fontmerge"
	"seehuhn.de/go/fontmerge/internal/buildinfo"
	"seehuhn.de/go/fontmerge/internal/profile"
)

var (
	outDir         = flag.String("o", "", "output directory (overrides the config file)")
	family         = flag.String("family", "", "family name (overrides the config file)")
	fontVersion    = flag.String("fontversion", "", "font version string (overrides the config file)")
	preserveDigits = flag.Bool("preserve-digits", false, "keep the base font's digits")
	verbose        = flag.Bool("v", false, "keep individual entries in the mapping log")
	quiet          = flag.Bool("q", false, "suppress progress output")
	showVersion    = flag.Bool("version", false, "print the version and exit")
	cpuprofile     = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile     = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "fontmerge - build a composite font family\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("fontmerge"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  fontmerge [options] <config.json>\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  config.json   build configuration: family, styles, source fonts\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  fontmerge family.json\n")
		fmt.Fprintf(os.Stderr, "  fontmerge -v -o dist family.json\n")
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(buildinfo.Short("fontmerge"))
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	stop, err := profile.Start(*cpuprofile, *memprofile)
	if err != nil {
		return err
	}
	defer stop()

	cfg, err := fontmerge.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}
	if *family != "" {
		cfg.Family = *family
	}
	if *fontVersion != "" {
		cfg.Version = *fontVersion
	}
	if *preserveDigits {
		cfg.PreserveDigits = true
	}
	if *verbose {
		cfg.Verbose = true
	}

	p := fontmerge.New(cfg)
	if !*quiet {
		p.Progress = os.Stderr
		p.Animate = term.IsTerminal(int(os.Stderr.Fd()))
	}

	results, err := p.Run()
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: FAILED (%s): %v\n", res.Style, res.State, res.Err)
			continue
		}
		fmt.Fprintf(os.Stderr, "%s: %d glyphs, %d baked, %d raised -> %s\n",
			res.Style, res.Glyphs, res.Baked.Applied, res.Tweaked, res.Path)
	}
	return err
}
