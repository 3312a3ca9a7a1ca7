// config.go -
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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ikicic/skoljka-sub001/mathcontent"
)

// Config holds the settings of the command line tool.  Values come
// from flags, MATHCONTENT_* environment variables and an optional
// config file, in this order of precedence.
type Config struct {
	To              string `mapstructure:"to"`
	Output          string `mapstructure:"output"`
	Attachments     string `mapstructure:"attachments"`
	AttachmentsPath string `mapstructure:"attachments-path"`
	AttachmentURL   string `mapstructure:"attachment-url"`
	MathURL         string `mapstructure:"math-url"`
	LogLevel        string `mapstructure:"log-level"`
}

var errNoConfig = errors.New("config file not found")

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("mathcontent", pflag.ContinueOnError)
	flags.StringP("to", "t", "html", "output format: html or latex")
	flags.StringP("output", "o", "", "output file instead of stdout")
	flags.String("attachments", "", "directory whose files are the attachments, in name order")
	flags.String("attachments-path", "", "directory used for attachments in LaTeX output")
	flags.String("attachment-url", "/attachments", "URL prefix for attachments in HTML output")
	flags.String("math-url", "", "URL prefix for formula images; formulas are kept as source if empty")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("config", "", "configuration file")
	flags.SortFlags = false
	return flags
}

// loadConfig merges the parsed flags with the environment and the
// config file.
func loadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}
	v.SetEnvPrefix("MATHCONTENT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%s: %w", file, errNoConfig)
			}
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Target returns the selected output format.
func (cfg *Config) Target() (mathcontent.Target, error) {
	target, err := mathcontent.ParseTarget(cfg.To)
	if err != nil {
		return 0, fmt.Errorf("--to %q: %w", cfg.To, err)
	}
	return target, nil
}

// Level returns the selected log level.
func (cfg *Config) Level() (zerolog.Level, error) {
	if cfg.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
}

// LoadAttachments lists the regular files in the attachments
// directory, sorted by name.
func (cfg *Config) LoadAttachments() ([]mathcontent.Attachment, error) {
	if cfg.Attachments == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(cfg.Attachments)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	res := make([]mathcontent.Attachment, len(names))
	for i, name := range names {
		res[i] = &mathcontent.FileAttachment{
			Path:    filepath.Join(cfg.Attachments, name),
			BaseURL: cfg.AttachmentURL,
		}
	}
	return res, nil
}
