// bbcode_test.go -
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
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTag(t *testing.T) {
	testCases := []struct {
		in      string
		name    string
		closing bool
		attrs   []Attr
	}{
		{"[b]", "b", false, []Attr{}},
		{"[/B]", "b", true, nil},
		{"[url=http://x.com/?a=1]", "url", false,
			[]Attr{{Key: "url", Value: "http://x.com/?a=1"}}},
		{`[img attachment=2 width="3 cm"]`, "img", false,
			[]Attr{{Key: "attachment", Value: "2"}, {Key: "width", Value: "3 cm"}}},
		{`[a x="[b]"]`, "a", false, []Attr{{Key: "x", Value: "[b]"}}},
		{`[a x='q\'uote\\']`, "a", false, []Attr{{Key: "x", Value: `q'uote\`}}},
		{`[a x="\n"]`, "a", false, []Attr{{Key: "x", Value: `\n`}}},
		{"[par  skip=1em\tindent ]", "par", false,
			[]Attr{{Key: "skip", Value: "1em"}, {Key: "indent"}}},
	}
	for _, test := range testCases {
		tag, end, err := ParseTag("xx"+test.in+"yy", 2)
		require.NoError(t, err, test.in)
		require.Equal(t, 2+len(test.in), end, test.in)
		require.Equal(t, test.name, tag.Name, test.in)
		require.Equal(t, test.closing, tag.Closing, test.in)
		require.Equal(t, test.attrs, tag.Attrs, test.in)
	}
}

func TestParseTagErrors(t *testing.T) {
	testCases := []struct {
		in           string
		pos          int
		unterminated bool
	}{
		{"[]", 1, false},
		{"[", 1, true},
		{"[b", 2, true},
		{"[b!]", 2, false},
		{"[/b x]", 4, false},
		{"[/b=x]", 3, false},
		{"[b=", 3, true},
		{"[b x=", 5, true},
		{`[b x="abc`, 6, false},
		{"[b ?]", 3, false},
	}
	for _, test := range testCases {
		_, _, err := ParseTag(test.in, 0)
		var se *TagSyntaxError
		require.True(t, errors.As(err, &se), test.in)
		require.Equal(t, test.pos, se.Pos, test.in)
		require.Equal(t, test.unterminated, se.Unterminated, test.in)
	}
}

func TestAttachmentIndex(t *testing.T) {
	n, err := AttachmentIndex(&Token{Attrs: []Attr{{Key: "attachment", Value: "3"}}})
	require.NoError(t, err)
	require.Equal(t, 3, n)

	for _, value := range []string{"0", "-1", "x", ""} {
		_, err := AttachmentIndex(&Token{Attrs: []Attr{{Key: "attachment", Value: value}}})
		require.Error(t, err, value)
	}
}
