// formula_test.go -
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

package math

import (
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	k1 := Key("$%s$", "a+b")
	require.Len(t, k1, 20)
	require.Equal(t, k1, Key("$%s$", "a+b"))
	require.NotEqual(t, k1, Key("$$%s$$", "a+b"))
	require.NotEqual(t, Key("$", "%s$a"), Key("$%s", "$a"))
}

func TestIndex(t *testing.T) {
	idx := NewIndex("https://example.com/m/")
	f := idx.Render("$%s$", "x^2")
	require.Equal(t, "https://example.com/m/"+f.Hash+".png", f.URL)
	require.Equal(t, 0, f.Depth)

	idx.Render("$%s$", "x^2")
	g := idx.Render(`\[%s\]`, `\frac`)
	pending := idx.Pending()
	require.Len(t, pending, 2)
	require.Equal(t, "x^2", pending[0].Latex)
	require.Equal(t, `\[%s\]`, pending[1].Format)

	idx.SetDepth(f.Hash, 3)
	idx.SetDepth(g.Hash, ErrorDepth)
	require.Empty(t, idx.Pending())
	require.Equal(t, 3, idx.Render("$%s$", "x^2").Depth)
	require.Equal(t, ErrorDepth, idx.Render(`\[%s\]`, `\frac`).Depth)
	require.Len(t, idx.Hashes(), 2)
}

func TestIndexConcurrent(t *testing.T) {
	idx := NewIndex("/m")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f := idx.Render("$%s$", strconv.Itoa(j))
				idx.SetDepth(f.Hash, i)
			}
		}(i)
	}
	wg.Wait()
	require.Len(t, idx.Hashes(), 100)
	require.Empty(t, idx.Pending())
}

func TestAltText(t *testing.T) {
	require.Equal(t, "a+b", AltText("a+b"))
	long := strings.Repeat("x+", 31)
	require.Equal(t, "[formula]", AltText(long))
}
