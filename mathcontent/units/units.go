// units.go -
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

// Package units converts LaTeX length literals like "12pt", "1.5em" or
// "0.5\textwidth" into lengths which can be used in HTML style attributes.
package units

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrSyntax is returned when a length literal cannot be parsed.
var ErrSyntax = errors.New("invalid length")

// Error records the literal which failed to parse.
type Error struct {
	Literal string
	Err     error
}

func (e *Error) Error() string {
	return strconv.Quote(e.Literal) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Length is a parsed length literal.  Unit is always one of the units
// which can be written both in CSS and in LaTeX; other TeX units are
// converted during parsing.
type Length struct {
	Value float64
	Unit  string
}

var lengthPattern = regexp.MustCompile(
	`^([+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+))\s*([a-z]{2}|%|\\[a-z]+)?$`)

// factors for TeX units without a CSS counterpart, relative to pt
var toPoints = map[string]float64{
	"bp": 72.27 / 72,
	"dd": 1238.0 / 1157,
	"cc": 12 * 1238.0 / 1157,
	"sp": 1.0 / 65536,
}

var relative = map[string]bool{
	`\textwidth`:   true,
	`\linewidth`:   true,
	`\columnwidth`: true,
	`\hsize`:       true,
}

var native = map[string]bool{
	"pt": true,
	"mm": true,
	"cm": true,
	"in": true,
	"pc": true,
	"em": true,
	"ex": true,
	"px": true,
}

// Parse parses a LaTeX length literal.  A value of zero may be given
// without a unit, all other values need one.  Multiples of the line
// width are returned as percentages.
func Parse(s string) (Length, error) {
	lit := strings.TrimSpace(s)
	m := lengthPattern.FindStringSubmatch(lit)
	if m == nil {
		return Length{}, &Error{Literal: s, Err: ErrSyntax}
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Length{}, &Error{Literal: s, Err: ErrSyntax}
	}
	unit := m[2]

	switch {
	case unit == "":
		if value != 0 {
			return Length{}, &Error{Literal: s, Err: errors.New("missing unit")}
		}
		return Length{}, nil
	case native[unit], unit == "%":
		return Length{Value: value, Unit: unit}, nil
	case relative[unit]:
		return Length{Value: round(100 * value), Unit: "%"}, nil
	}
	if f, ok := toPoints[unit]; ok {
		return Length{Value: round(value * f), Unit: "pt"}, nil
	}
	return Length{}, &Error{Literal: s, Err: errors.New("unknown unit " + unit)}
}

func round(x float64) float64 {
	return math.Round(x*1000) / 1000
}

func (l Length) number() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64)
}

// HTML returns the length in CSS notation.
func (l Length) HTML() string {
	if l.Value == 0 {
		return "0"
	}
	return l.number() + l.Unit
}

// LaTeX returns the length in LaTeX notation.  Percentages are
// expressed relative to \linewidth.
func (l Length) LaTeX() string {
	if l.Value == 0 {
		return "0pt"
	}
	if l.Unit == "%" {
		return strconv.FormatFloat(round(l.Value/100), 'f', -1, 64) + `\linewidth`
	}
	return l.number() + l.Unit
}

// ToHTML converts a LaTeX length literal to CSS.
func ToHTML(s string) (string, error) {
	l, err := Parse(s)
	if err != nil {
		return "", err
	}
	return l.HTML(), nil
}
