// bbcode.go -
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
)

// Tag describes a parsed BBCode tag.
type Tag struct {
	// Name is the lower-case tag name.
	Name string

	// Attrs is nil for closing tags.
	Attrs []Attr

	Closing bool
}

// TagSyntaxError is returned by ParseTag for malformed tags.
type TagSyntaxError struct {
	// Name is the lower-case tag name, as far as it could be read.
	Name string

	// Pos is the input position where parsing failed.
	Pos int

	// Unterminated is set if the input ended before the tag was
	// complete.
	Unterminated bool

	Message string
}

func (err *TagSyntaxError) Error() string {
	return "[" + err.Name + "]: " + err.Message
}

// ParseTag parses the BBCode tag starting at text[pos], which must be
// '['.  On success, the tag and the position after the closing ']'
// are returned.
func ParseTag(text string, pos int) (*Tag, int, error) {
	if pos >= len(text) || text[pos] != '[' {
		panic("ParseTag called on non-tag input")
	}
	pos++

	tag := &Tag{}
	if pos < len(text) && text[pos] == '/' {
		tag.Closing = true
		pos++
	}

	nameStart := pos
	for pos < len(text) && !isSpace(text[pos]) && text[pos] != '=' &&
		text[pos] != ']' && text[pos] != '[' {
		pos++
	}
	tag.Name = strings.ToLower(text[nameStart:pos])
	fail := func(pos int, unterminated bool, msg string) (*Tag, int, error) {
		return nil, pos, &TagSyntaxError{
			Name:         tag.Name,
			Pos:          pos,
			Unterminated: unterminated,
			Message:      msg,
		}
	}
	if tag.Name == "" {
		return fail(pos, pos >= len(text), "missing tag name")
	}
	for i := 0; i < len(tag.Name); i++ {
		if !isLetter(tag.Name[i]) && !isDigit(tag.Name[i]) {
			return fail(nameStart+i, false, "invalid character in tag name")
		}
	}

	if !tag.Closing {
		tag.Attrs = []Attr{}
	}
	if pos < len(text) && text[pos] == '=' {
		if tag.Closing {
			return fail(pos, false, "closing tags cannot have attributes")
		}
		value, next, err := readAttrValue(text, pos+1)
		if err != nil {
			return fail(err.Pos, err.Unterminated, err.Message)
		}
		tag.Attrs = append(tag.Attrs, Attr{Key: tag.Name, Value: value})
		pos = next
	}

	for {
		for pos < len(text) && isSpace(text[pos]) {
			pos++
		}
		if pos >= len(text) {
			return fail(pos, true, "missing ]")
		}
		if text[pos] == ']' {
			return tag, pos + 1, nil
		}
		if tag.Closing {
			return fail(pos, false, "closing tags cannot have attributes")
		}

		keyStart := pos
		for pos < len(text) && isAttrKeyChar(text[pos]) {
			pos++
		}
		if pos == keyStart {
			return fail(pos, false, "unexpected character in tag")
		}
		attr := Attr{Key: strings.ToLower(text[keyStart:pos])}
		if pos < len(text) && text[pos] == '=' {
			value, next, err := readAttrValue(text, pos+1)
			if err != nil {
				return fail(err.Pos, err.Unterminated, err.Message)
			}
			attr.Value = value
			pos = next
		}
		tag.Attrs = append(tag.Attrs, attr)
	}
}

func readAttrValue(text string, pos int) (string, int, *TagSyntaxError) {
	if pos >= len(text) {
		return "", pos, &TagSyntaxError{
			Pos:          pos,
			Unterminated: true,
			Message:      "missing attribute value",
		}
	}

	quote := text[pos]
	if quote != '"' && quote != '\'' {
		start := pos
		for pos < len(text) && !isSpace(text[pos]) && text[pos] != ']' {
			pos++
		}
		return text[start:pos], pos, nil
	}

	pos++
	var value []byte
	for i := pos; i < len(text); i++ {
		c := text[i]
		switch {
		case c == quote:
			return string(value), i + 1, nil
		case c == '\\' && i+1 < len(text) && (text[i+1] == '\\' || text[i+1] == quote):
			value = append(value, text[i+1])
			i++
		default:
			value = append(value, c)
		}
	}
	return "", pos, &TagSyntaxError{
		Pos:     pos,
		Message: "missing closing quote",
	}
}

func isAttrKeyChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == '-'
}
