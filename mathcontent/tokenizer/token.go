// token.go -
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
	"strconv"
	"strings"
)

// TokenType is used to enumerate different types of token
type TokenType int

// The different token types used by this package.
const (
	TokenText TokenType = iota
	TokenComment
	TokenSimpleWhitespace
	TokenMultilineWhitespace
	TokenMath
	TokenCommand
	TokenBBCode
	TokenError
	TokenWarning
)

var tokenTypeNames = []string{
	TokenText:                "Text",
	TokenComment:             "Comment",
	TokenSimpleWhitespace:    "SimpleWhitespace",
	TokenMultilineWhitespace: "MultilineWhitespace",
	TokenMath:                "Math",
	TokenCommand:             "Command",
	TokenBBCode:              "BBCode",
	TokenError:               "Error",
	TokenWarning:             "Warning",
}

func (tt TokenType) String() string {
	if int(tt) < len(tokenTypeNames) {
		return tokenTypeNames[tt]
	}
	return "TokenType(" + strconv.Itoa(int(tt)) + ")"
}

// Token contains information about a single syntactic unit of the
// input.  Tokens must not be modified once they are part of a
// Document.
type Token struct {
	// Type describes which kind of token this is.
	Type TokenType

	// For TokenCommand, this is the name of the command including the
	// leading backslash, the name of the environment, or "{" for a
	// group.  For TokenBBCode this is the lower-case tag name.
	Name string

	// For text, comment and whitespace tokens this is the textual
	// content.  For TokenMath it is the formula, for raw BBCode tags
	// the tag content, and for TokenError and TokenWarning the
	// original input text.
	Text string

	// Format is the maths delimiter pattern, e.g. "$%s$".
	Format string

	// Part distinguishes the pieces of a command which encloses
	// content: part 0 precedes the first content argument, part i
	// follows the i-th one.  For environments, part 0 is \begin and
	// part 1 is \end.
	Part int

	// Args holds the parsed command arguments.
	Args []*Arg

	// Whitespace is the white space swallowed after a command.
	Whitespace string

	// BBCode attributes.  For a tag of the form [name=value], the
	// first attribute has Key equal to the tag name.
	Attrs []Attr

	// Closing marks a closing BBCode tag.
	Closing bool

	// Raw marks a BBCode tag whose content was not tokenized.
	Raw bool

	// Message is the human-readable message of TokenError and
	// TokenWarning.
	Message string

	// Env refers to the environment the token belongs to, if any.
	Env EnvID

	// Start and End give the span of input covered by the token.
	Start, End int
}

// ArgKind describes how a command argument is read.
type ArgKind byte

// The argument kinds used in argument descriptors.
const (
	// ArgParse is a {...} argument which is tokenized in place.
	ArgParse ArgKind = 'P'

	// ArgVerbatim is a {...} argument which is kept as raw text.
	ArgVerbatim ArgKind = 'V'

	// ArgOptional is an optional [...] argument kept as raw text.
	ArgOptional ArgKind = 'O'
)

// Arg specifies a single command argument.
type Arg struct {
	Kind    ArgKind
	Present bool
	Text    string
}

// Attr is a single BBCode attribute.
type Attr struct {
	Key   string
	Value string
}

// Arg returns the text of argument i, or the empty string if the
// argument is missing.
func (tok *Token) Arg(i int) string {
	if i >= len(tok.Args) || !tok.Args[i].Present {
		return ""
	}
	return tok.Args[i].Text
}

// Attr returns the value of the BBCode attribute with the given key.
func (tok *Token) Attr(key string) (string, bool) {
	for _, attr := range tok.Attrs {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

func (tok *Token) String() string {
	switch tok.Type {
	case TokenCommand:
		res := tok.Type.String() + "(" + tok.Name + "," + strconv.Itoa(tok.Part)
		for _, arg := range tok.Args {
			if arg.Kind == ArgParse {
				continue
			}
			if arg.Present {
				res += "," + strconv.Quote(arg.Text)
			} else {
				res += ",-"
			}
		}
		return res + ")"
	case TokenBBCode:
		name := tok.Name
		if tok.Closing {
			name = "/" + name
		}
		var parts []string
		for _, attr := range tok.Attrs {
			parts = append(parts, attr.Key+"="+strconv.Quote(attr.Value))
		}
		if tok.Raw {
			parts = append(parts, strconv.Quote(tok.Text))
		}
		if len(parts) > 0 {
			name += " " + strings.Join(parts, " ")
		}
		return tok.Type.String() + "(" + name + ")"
	case TokenMath:
		return tok.Type.String() + "(" + tok.Format + "," + strconv.Quote(tok.Text) + ")"
	default:
		return tok.Type.String() + "(" + strconv.Quote(tok.Text) + ")"
	}
}

// TokenList is a sequence of tokens.
type TokenList []*Token

// Strings returns the String() form of all tokens in the list.
func (toks TokenList) Strings() []string {
	res := make([]string, len(toks))
	for i, tok := range toks {
		res[i] = tok.String()
	}
	return res
}
