// main.go -
// Copyright (C) 2016  Jochen Voss <voss@seehuhn.de>
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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/ikicic/skoljka-sub001/mathcontent"
	"github.com/ikicic/skoljka-sub001/mathcontent/math"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	flags := newFlagSet()
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: mathcontent [flags] [input]")
		fmt.Fprintln(os.Stderr, "\nIf no input is given, the text is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		os.Exit(2)
	}
	if flags.NArg() > 1 {
		flags.Usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot read configuration")
	}
	level, err := cfg.Level()
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	target, err := cfg.Target()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid output format")
	}
	attachments, err := cfg.LoadAttachments()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot list attachments")
	}

	text, err := readInput(flags.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("cannot read input")
	}

	conv := &mathcontent.Converter{}
	var idx *math.Index
	if cfg.MathURL != "" {
		idx = math.NewIndex(cfg.MathURL)
		conv.Math = idx
	}

	res, err := conv.SafeConvert(target, text, attachments, cfg.AttachmentsPath)
	if err != nil {
		log.Error().Err(err).Msg("conversion failed")
	}

	if err := writeOutput(cfg.Output, res); err != nil {
		log.Fatal().Err(err).Msg("cannot write output")
	}

	if idx != nil {
		for _, e := range idx.Pending() {
			log.Info().
				Str("hash", e.Hash).
				Str("formula", strings.Replace(e.Format, "%s", e.Latex, 1)).
				Msg("formula needs rendering")
		}
	}
	log.Debug().
		Str("target", target.String()).
		Int("attachments", len(attachments)).
		Int("bytes", len(res)).
		Msg("done")
}

func readInput(name string) (string, error) {
	var r io.Reader = os.Stdin
	if name != "" && name != "-" {
		fd, err := os.Open(name)
		if err != nil {
			return "", err
		}
		defer fd.Close()
		r = fd
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func writeOutput(name, res string) error {
	if name == "" {
		_, err := io.WriteString(os.Stdout, res)
		return err
	}
	return os.WriteFile(name, []byte(res), 0o644)
}
