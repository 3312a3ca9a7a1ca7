// formula.go -
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

// Package math defines the interface to the formula rasteriser.  The
// converter never runs TeX itself; it asks a Renderer for the image
// belonging to a formula.
package math

import (
	"encoding/base64"
	"sort"
	"strings"
	"sync"

	"golang.org/x/crypto/sha3"
)

// ErrorDepth is the depth reported for formulas which the rasteriser
// could not typeset.
const ErrorDepth = -1000

// maxAltLength is the longest formula used verbatim as alt text.
const maxAltLength = 60

// Formula describes the rendered image of a formula.
type Formula struct {
	Hash string

	// Depth is the distance of the baseline from the bottom of the
	// image, in pixels.  ErrorDepth marks invalid formulas.
	Depth int

	URL string
}

// Renderer maps formulas to rendered images.  The format is a
// delimiter pattern like "$%s$" and latex is the formula source.
// Implementations must be safe for concurrent use.
type Renderer interface {
	Render(format, latex string) *Formula
}

// Key returns the hash identifying a formula.
func Key(format, latex string) string {
	h := sha3.NewShake128()
	h.Write([]byte(format))
	h.Write([]byte{0})
	h.Write([]byte(latex))
	buf := make([]byte, 15)
	h.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}

// AltText returns the alt text for the image of a formula.
func AltText(latex string) string {
	if len(latex) > maxAltLength {
		return "[formula]"
	}
	return latex
}

// Entry is a formula seen by an Index.
type Entry struct {
	Hash   string
	Format string
	Latex  string
}

// Index is a Renderer for images which are produced out of process.
// Every formula is mapped to URLPrefix + "/" + hash + ".png".  The
// Index remembers all formulas it was asked about, so that a separate
// job can rasterise them and report the depths back via SetDepth.
type Index struct {
	URLPrefix string

	mu      sync.RWMutex
	depths  map[string]int
	entries map[string]*Entry
	order   []string
}

// NewIndex creates an empty index for images below urlPrefix.
func NewIndex(urlPrefix string) *Index {
	return &Index{
		URLPrefix: strings.TrimSuffix(urlPrefix, "/"),
		depths:    make(map[string]int),
		entries:   make(map[string]*Entry),
	}
}

// Render implements the Renderer interface.  Formulas without a
// recorded depth are reported with depth 0.
func (idx *Index) Render(format, latex string) *Formula {
	hash := Key(format, latex)

	idx.mu.Lock()
	if _, ok := idx.entries[hash]; !ok {
		idx.entries[hash] = &Entry{Hash: hash, Format: format, Latex: latex}
		idx.order = append(idx.order, hash)
	}
	depth := idx.depths[hash]
	idx.mu.Unlock()

	return &Formula{
		Hash:  hash,
		Depth: depth,
		URL:   idx.URLPrefix + "/" + hash + ".png",
	}
}

// SetDepth records the depth of a rasterised formula.
func (idx *Index) SetDepth(hash string, depth int) {
	idx.mu.Lock()
	idx.depths[hash] = depth
	idx.mu.Unlock()
}

// Pending returns the formulas which have been rendered but have no
// recorded depth yet, in the order they were first seen.
func (idx *Index) Pending() []*Entry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var res []*Entry
	for _, hash := range idx.order {
		if _, done := idx.depths[hash]; !done {
			res = append(res, idx.entries[hash])
		}
	}
	return res
}

// Hashes returns the hashes of all known formulas in sorted order.
func (idx *Index) Hashes() []string {
	idx.mu.RLock()
	res := append([]string(nil), idx.order...)
	idx.mu.RUnlock()
	sort.Strings(res)
	return res
}
