// document.go -
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

	"golang.org/x/text/unicode/norm"
)

// The counters maintained during tokenization.
const (
	CounterFigure   = "figure"
	CounterEquation = "equation"
)

// EnvID identifies an environment inside a Document.  The zero value
// means "no environment".
type EnvID int

// Environment is the state of a \begin...\end scope.  The fields may
// be changed by commands inside the scope after the opening token has
// been emitted, for example \caption assigns the tag of a figure.
type Environment struct {
	Name string

	// Tag is the number assigned to a figure or equation, or "" if
	// none has been assigned.
	Tag string

	// Centering is set by \centering.
	Centering bool
}

// Label records the target of a \label command.
type Label struct {
	Name string

	// ID is a unique string suitable for use as an HTML anchor.
	ID string

	// Tag is the figure or equation number the label refers to.
	Tag string

	// Missing is set if no tag was assigned when the label was
	// seen.
	Missing bool
}

// Document is the result of tokenizing a single input text.
type Document struct {
	Tokens TokenList

	// Envs is the arena of all environments referenced by tokens.
	Envs []*Environment

	// Labels maps normalised label names to their targets.
	Labels map[string]*Label

	// Counters holds the final value of each counter.
	Counters map[string]int

	labelOrder []string
}

func newDocument() *Document {
	return &Document{
		Labels:   make(map[string]*Label),
		Counters: make(map[string]int),
	}
}

// Env returns the environment with the given id, or nil for the zero
// id.
func (doc *Document) Env(id EnvID) *Environment {
	if id <= 0 || int(id) > len(doc.Envs) {
		return nil
	}
	return doc.Envs[id-1]
}

func (doc *Document) newEnv(name string) EnvID {
	doc.Envs = append(doc.Envs, &Environment{Name: name})
	return EnvID(len(doc.Envs))
}

// Label looks up a label by name.  The name is normalised in the same
// way as for \label.
func (doc *Document) Label(name string) *Label {
	return doc.Labels[NormaliseLabel(name)]
}

func (doc *Document) addLabel(label *Label) {
	label.ID = "mc-label-" + labelID(label.Name, doc)
	doc.Labels[label.Name] = label
	doc.labelOrder = append(doc.labelOrder, label.Name)
}

func (doc *Document) incCounter(name string) string {
	doc.Counters[name]++
	return strconv.Itoa(doc.Counters[name])
}

// NormaliseLabel brings a label name into the form used as key of
// Document.Labels.
func NormaliseLabel(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// snapshot records the label and counter state, so that the side
// effects of a construct can be undone when it turns out to be
// malformed.
type snapshot struct {
	labels   int
	counters map[string]int
}

func (doc *Document) snapshot() snapshot {
	counters := make(map[string]int, len(doc.Counters))
	for name, value := range doc.Counters {
		counters[name] = value
	}
	return snapshot{labels: len(doc.labelOrder), counters: counters}
}

func (doc *Document) restore(snap snapshot) {
	for _, name := range doc.labelOrder[snap.labels:] {
		delete(doc.Labels, name)
	}
	doc.labelOrder = doc.labelOrder[:snap.labels]
	doc.Counters = snap.counters
}

func labelID(label string, doc *Document) string {
	var chars []byte
	hyphenSeen := false
	for i := 0; i < len(label); i++ {
		c := label[i]
		if !(isLetter(c) || isDigit(c) || c == '_' || c == '.') {
			c = '-'
		}
		if c == '-' && hyphenSeen {
			continue
		}
		chars = append(chars, c)
		hyphenSeen = c == '-'
	}
	base := strings.Trim(string(chars), "-")
	if base == "" {
		base = "x"
	}

	res := base
	sfx := 2
retry:
	for _, name := range doc.labelOrder {
		if doc.Labels[name].ID == "mc-label-"+res {
			res = base + "-" + strconv.Itoa(sfx)
			sfx++
			goto retry
		}
	}
	return res
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
