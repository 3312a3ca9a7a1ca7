// math.go -
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

package tokenizer

import "strings"

// The delimiter formats of maths tokens.
const (
	FormatInline        = "$%s$"
	FormatDisplay       = "$$%s$$"
	FormatDisplayInline = "$$$%s$$$"
	FormatParen         = `\(%s\)`
	FormatBracket       = `\[%s\]`
)

var dollarFormats = []string{"", FormatInline, FormatDisplay, FormatDisplayInline}

// IsDisplayFormat reports whether maths with the given format is set
// on a line of its own.
func IsDisplayFormat(format string) bool {
	switch format {
	case FormatDisplay, FormatBracket:
		return true
	}
	return strings.HasPrefix(format, `\begin{`)
}

// readDollarMath reads maths delimited by one, two or three dollar
// signs.  Unterminated maths turns the rest of the input into an
// error token.
func (t *Tokenizer) readDollarMath() {
	start := t.scan.Pos()
	n := len(t.scan.SkipWhile(func(c byte) bool { return c == '$' }))
	if n > 3 {
		n = 3
		t.scan.Seek(start + n)
	}
	body := t.scan.Pos()

	text := t.scan.Text()
	for i := body; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '$':
			run := 1
			for i+run < len(text) && text[i+run] == '$' {
				run++
			}
			if run >= n {
				t.scan.Seek(i + n)
				t.emit(&Token{
					Type:   TokenMath,
					Format: dollarFormats[n],
					Text:   text[body:i],
					Start:  start,
					End:    i + n,
				})
				return
			}
			i += run - 1
		}
	}
	t.unterminatedMath(start)
}

// readParenMath reads maths delimited by \(...\) or \[...\].  The
// opening delimiter has already been consumed.
func (t *Tokenizer) readParenMath(start int, open string) {
	format, closing := FormatParen, byte(')')
	if open == `\[` {
		format, closing = FormatBracket, ']'
	}
	body := t.scan.Pos()

	text := t.scan.Text()
	for i := body; i+1 < len(text); i++ {
		if text[i] != '\\' {
			continue
		}
		if text[i+1] == closing {
			t.scan.Seek(i + 2)
			t.emit(&Token{
				Type:   TokenMath,
				Format: format,
				Text:   text[body:i],
				Start:  start,
				End:    i + 2,
			})
			return
		}
		i++
	}
	t.unterminatedMath(start)
}

func (t *Tokenizer) unterminatedMath(start int) {
	end := len(t.scan.Text())
	t.scan.Seek(end)
	t.emit(t.errorToken(start, end, "unterminated maths"))
}
