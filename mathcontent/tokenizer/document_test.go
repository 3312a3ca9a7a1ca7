// document_test.go -
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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLabelIDs(t *testing.T) {
	doc := newDocument()
	for _, name := range []string{"fig:one", "fig;one", "Fig 1", "::"} {
		doc.addLabel(&Label{Name: name})
	}
	require.Equal(t, "mc-label-fig-one", doc.Labels["fig:one"].ID)
	require.Equal(t, "mc-label-fig-one-2", doc.Labels["fig;one"].ID)
	require.Equal(t, "mc-label-Fig-1", doc.Labels["Fig 1"].ID)
	require.Equal(t, "mc-label-x", doc.Labels["::"].ID)
}

func TestNormaliseLabel(t *testing.T) {
	doc := Tokenize(`\begin{figure}\caption{x}\label{ e` + "\u0301" + `}\end{figure}`)
	label := doc.Label("\u00e9")
	require.NotNil(t, label)
	require.Equal(t, "1", label.Tag)
}

func TestSnapshot(t *testing.T) {
	doc := newDocument()
	doc.addLabel(&Label{Name: "a"})
	doc.incCounter(CounterFigure)

	snap := doc.snapshot()
	doc.addLabel(&Label{Name: "b"})
	require.Equal(t, "2", doc.incCounter(CounterFigure))
	doc.restore(snap)

	require.NotNil(t, doc.Labels["a"])
	require.Nil(t, doc.Labels["b"])
	require.Equal(t, 1, doc.Counters[CounterFigure])
}

func TestEnvZero(t *testing.T) {
	doc := newDocument()
	require.Nil(t, doc.Env(0))
	id := doc.newEnv("figure")
	require.Equal(t, "figure", doc.Env(id).Name)
}
