// tags.go -
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
	"sort"
	"strconv"

	"github.com/ikicic/skoljka-sub001/mathcontent/units"
)

type tagKind int

const (
	tagContainer  tagKind = iota // content is tokenized, needs a closing tag
	tagRaw                       // content is kept as raw text
	tagStandalone                // no content, no closing tag
)

type bbTag struct {
	kind  tagKind
	check func(tag *Tag) error
}

// kindOf returns how the content of the given tag is read.  A [url]
// tag without a value contains the URL itself and is read raw.
func (info *bbTag) kindOf(tag *Tag) tagKind {
	if tag.Name == "url" {
		if value, _ := tag.Attr("url"); value == "" {
			return tagRaw
		}
	}
	return info.kind
}

var bbTags map[string]*bbTag

func addBuiltinTags() {
	bbTags = map[string]*bbTag{
		"b":     {kind: tagContainer},
		"i":     {kind: tagContainer},
		"u":     {kind: tagContainer},
		"s":     {kind: tagContainer},
		"quote": {kind: tagContainer},
		"url":   {kind: tagContainer},
		"pre":   {kind: tagRaw},
		"img":   {kind: tagStandalone, check: checkImg},
		"par":   {kind: tagStandalone, check: checkPar},
	}
}

// Tags returns the names of all supported BBCode tags.
func Tags() []string {
	var res []string
	for name := range bbTags {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Attr returns the value of the attribute with the given key.
func (tag *Tag) Attr(key string) (string, bool) {
	for _, attr := range tag.Attrs {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

var errAttachment = errors.New("attachment must be a positive number")

// AttachmentIndex returns the 1-based attachment number of an [img]
// tag.
func AttachmentIndex(tok *Token) (int, error) {
	value, _ := tok.Attr("attachment")
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, errAttachment
	}
	return n, nil
}

func checkImg(tag *Tag) error {
	if _, err := AttachmentIndex(&Token{Attrs: tag.Attrs}); err != nil {
		return err
	}
	return checkLengths(tag, "width", "height")
}

func checkPar(tag *Tag) error {
	return checkLengths(tag, "skip", "indent")
}

func checkLengths(tag *Tag, keys ...string) error {
	for _, key := range keys {
		value, ok := tag.Attr(key)
		if !ok {
			continue
		}
		if _, err := units.Parse(value); err != nil {
			return err
		}
	}
	return nil
}
