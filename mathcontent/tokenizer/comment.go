// comment.go -
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

import (
	"strings"
	"unicode"
)

// readComment reads a block of consecutive comment lines.  The line
// break ending the last comment line is consumed together with the
// indentation of the following line, unless that line is empty.
func (t *Tokenizer) readComment() {
	start := t.scan.Pos()
	var lines []string
	var trailing string
	for {
		line := t.scan.SkipWhile(func(c byte) bool { return c != '\n' })
		lines = append(lines, strings.TrimRightFunc(line[1:], unicode.IsSpace))

		mark := t.scan.Pos()
		if !t.scan.Next() {
			break
		}
		t.scan.Skip(1)
		t.scan.SkipWhile(isBlank)
		if t.scan.PeekByte(0) == '%' {
			continue
		}
		if t.scan.PeekByte(0) == '\n' {
			t.scan.Seek(mark)
		}
		trailing = t.scan.Slice(mark, t.scan.Pos())
		break
	}

	t.emit(&Token{
		Type:       TokenComment,
		Text:       strings.Join(lines, "\n"),
		Whitespace: trailing,
		Start:      start,
		End:        t.scan.Pos(),
	})
}
