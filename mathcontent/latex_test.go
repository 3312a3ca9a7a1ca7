// latex_test.go -
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

package mathcontent

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLaTeXEscaping(t *testing.T) {
	testCases := []struct {
		in, out string
	}{
		{`a#b&c_d^e`, `a\#b\&c\_d\textasciicircum{}e`},
		{`\foo`, `\textbackslash{}foo`},
		{`\%\$`, `\%\$`},
		{`$a_b^c$`, `$a_b^c$`},
		{`$$$x$$$`, `$\displaystyle x$`},
		{`\[x\]`, `\[x\]`},
		{`\(x\)`, `\(x\)`},
		{"a% c\n  b", "a% c\n  b"},
		{"% x\n% y\nz", "% x\n% y\nz"},
		{`\begin{verbatim}a_b{\end{verbatim}`, `\begin{verbatim}a_b{\end{verbatim}`},
		{`[pre]a_b[/pre]`, `\begin{verbatim}a_b\end{verbatim}`},
	}
	for _, test := range testCases {
		out := Convert(LaTeX, test.in, nil, "")
		if d := cmp.Diff(test.out, out); d != "" {
			t.Errorf("%q: wrong LaTeX (-want +got):\n%s", test.in, d)
		}
	}
}

func TestFileAttachment(t *testing.T) {
	a := &FileAttachment{Path: "/data/42/my file.png", BaseURL: "/media/42/"}
	if got := a.Filename(); got != "my file.png" {
		t.Errorf("Filename: got %q", got)
	}
	if got := a.URL(); got != "/media/42/my%20file.png" {
		t.Errorf("URL: got %q", got)
	}
	if got := a.FullPath(); got != "/data/42/my file.png" {
		t.Errorf("FullPath: got %q", got)
	}

	out := Convert(LaTeX, `\includegraphics{my file.png}`, []Attachment{a}, "att")
	if want := `\includegraphics{att/my file.png}`; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}
