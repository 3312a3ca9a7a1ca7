// scanner.go -
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

package scanner

import (
	"fmt"
	"strconv"
)

// contextSize is the number of bytes of upcoming input quoted in error
// messages.
const contextSize = 20

// Scanner implements a cursor over the text of a single document.
// Positions are byte offsets into the text.
type Scanner struct {
	text string
	pos  int

	// line starts, filled lazily by Line()
	lines []int
}

// New creates a scanner positioned at the start of text.
func New(text string) *Scanner {
	return &Scanner{text: text}
}

// Text returns the complete input.
func (scan *Scanner) Text() string {
	return scan.text
}

// Pos returns the current position.
func (scan *Scanner) Pos() int {
	return scan.pos
}

// Seek moves the cursor to the given position.
func (scan *Scanner) Seek(pos int) {
	if pos < 0 || pos > len(scan.text) {
		panic("invalid scanner position " + strconv.Itoa(pos))
	}
	scan.pos = pos
}

// Next checks whether more input is available.
func (scan *Scanner) Next() bool {
	return scan.pos < len(scan.text)
}

// Peek returns the input after the current position.  The current
// position is not changed.
func (scan *Scanner) Peek() string {
	return scan.text[scan.pos:]
}

// PeekByte returns the byte at offset `ahead` from the current
// position, or 0 if this is beyond the end of input.
func (scan *Scanner) PeekByte(ahead int) byte {
	i := scan.pos + ahead
	if i < 0 || i >= len(scan.text) {
		return 0
	}
	return scan.text[i]
}

// Skip advances the current position by n bytes.
func (scan *Scanner) Skip(n int) {
	if n < 0 {
		panic("invalid skip amount")
	}
	scan.pos += n
	if scan.pos > len(scan.text) {
		scan.pos = len(scan.text)
	}
}

// Slice returns the input between the two given positions.
func (scan *Scanner) Slice(from, to int) string {
	return scan.text[from:to]
}

// SkipWhile advances the position as long as accept returns true and
// returns the skipped text.
func (scan *Scanner) SkipWhile(accept func(c byte) bool) string {
	start := scan.pos
	for scan.pos < len(scan.text) && accept(scan.text[scan.pos]) {
		scan.pos++
	}
	return scan.text[start:scan.pos]
}

// Line returns the 1-based line number of position pos.
func (scan *Scanner) Line(pos int) int {
	if scan.lines == nil {
		scan.lines = []int{0}
		for i := 0; i < len(scan.text); i++ {
			if scan.text[i] == '\n' {
				scan.lines = append(scan.lines, i+1)
			}
		}
	}
	lo, hi := 0, len(scan.lines)
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if scan.lines[mid] <= pos {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo + 1
}

// MakeError returns an error object which includes the given message
// together with human-readable information about position pos.
func (scan *Scanner) MakeError(pos int, message string) *ParseError {
	rest := scan.text[pos:]
	var context string
	if len(rest) > contextSize {
		context = rest[:contextSize-3] + "..."
	} else {
		context = rest
	}
	return &ParseError{
		Message: message,
		Pos:     pos,
		Line:    scan.Line(pos),
		Context: context,
	}
}

// ParseError describes a problem at a given input position.
type ParseError struct {
	Message string
	Pos     int
	Line    int
	Context string
}

func (err *ParseError) Error() string {
	res := err.Message + ", line " + strconv.Itoa(err.Line)
	if err.Context != "" {
		res += fmt.Sprintf(", before %q", err.Context)
	}
	return res
}
