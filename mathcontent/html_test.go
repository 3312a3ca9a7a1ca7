// html_test.go -
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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestParagraphs(t *testing.T) {
	testCases := []struct {
		in, out string
	}{
		{"a\nb", "a\nb"},
		{"a\n\n\n\nb\n\nc",
			`<p class="mc-noindent">a<p class="mc-indent">b<p class="mc-indent">c`},
		{"\n\na\n\nb",
			`<p class="mc-noindent">a<p class="mc-indent">b`},
		{"a\n\n$$x$$\n\nb",
			`<p class="mc-noindent">a<p class="mc-indent">` +
				`<span class="mc-math mc-display" data-format="$$%s$$">x</span>b`},
		{"a\n\n\\begin{center}b\\end{center}\nc",
			`<p class="mc-noindent">a<div class="mc-center"><p class="mc-noindent">b</div>` +
				`<p class="mc-noindent">c`},
		{"a\n\n\\begin{center}b\\end{center}\n\nc",
			`<p class="mc-noindent">a<div class="mc-center"><p class="mc-noindent">b</div>` +
				`<p class="mc-indent">c`},
		{"a\n\n\\noindent b",
			`<p class="mc-noindent">a<p class="mc-noindent">b`},
		{"\\setlength{\\parindent}{2em}a\n\nb",
			`<p style="text-indent:0">a<p style="text-indent:2em">b`},
		{"{\\setlength{\\parskip}{1em}a}\n\nb",
			`<p style="margin-top:1em">a<p class="mc-indent">b`},
		{"\\begin{center}\\setlength{\\parindent}{1em}a\\end{center}\n\nb",
			`<div class="mc-center"><p style="text-indent:0">a</div><p class="mc-noindent">b`},
		{"a[par indent=1em]b",
			`<p class="mc-noindent">a<p style="text-indent:1em">b`},
		{"a\n\n\\begin{verbatim}v\\end{verbatim}\n\nb",
			`<p class="mc-noindent">a<pre>v</pre><p class="mc-indent">b`},
		{"\\begin{verbatim}v\\end{verbatim}\n\nb",
			`<pre>v</pre><p class="mc-noindent">b`},
		{"\\textbf{\\setlength{\\parindent}{2em}}\n\nA\n\nB",
			`<p class="mc-noindent"><b></b><p class="mc-indent">A<p class="mc-indent">B`},
		{"\\href{/x}{\\setlength{\\parskip}{1em}y}\n\nA",
			`<p class="mc-noindent"><a href="/x">y</a><p class="mc-indent">A`},
		{"\\textbf{a\n\n}b",
			`<p class="mc-noindent"><b>a</b><p class="mc-indent">b`},
		{"[b]a\n\n[/b]b",
			`<p class="mc-noindent"><b>a</b><p class="mc-indent">b`},
	}
	for _, test := range testCases {
		out := Convert(HTML, test.in, nil, "")
		if d := cmp.Diff(test.out, out); d != "" {
			t.Errorf("%q: wrong HTML (-want +got):\n%s", test.in, d)
		}
	}
}

func TestParagraphBreakLaw(t *testing.T) {
	for _, sep := range []string{"\n", " \n ", "\t\n"} {
		out := Convert(HTML, "one"+sep+"two", nil, "")
		require.NotContains(t, out, "<p", "%q", sep)
	}
	for _, sep := range []string{"\n\n", "\n \n", "\n\n\n\n"} {
		out := Convert(HTML, "one"+sep+"two", nil, "")
		require.Equal(t, 2, strings.Count(out, "<p"), "%q", sep)
	}
	for _, math := range []string{"$$x$$", `\[x\]`} {
		out := Convert(HTML, "one "+math+"\n\ntwo", nil, "")
		require.Equal(t, 1, strings.Count(out, "<p"), math)
	}
}

func TestLists(t *testing.T) {
	in := `\begin{itemize}\item a\item[x] b\end{itemize}`
	out := Convert(HTML, in, nil, "")
	require.Equal(t, `<ul><li> a</li><li><span class="mc-item-label">x</span>  b</li></ul>`, out)
	require.Equal(t, in, Convert(LaTeX, in, nil, ""))

	out = Convert(HTML, `\begin{enumerate}\item a\end{enumerate}`, nil, "")
	require.Equal(t, `<ol><li> a</li></ol>`, out)
}

func TestBlocks(t *testing.T) {
	testCases := []struct {
		in, out string
	}{
		{`\begin{flushright}a\end{flushright}`, `<div class="mc-flushright">a</div>`},
		{`\begin{quote}a\end{quote}`, `<blockquote>a</blockquote>`},
		{`[quote]a[/quote]`, `<blockquote>a</blockquote>`},
		{`[pre]<b>[/pre]`, `<pre>&lt;b&gt;</pre>`},
		{`\begin{figure}x\caption{c}\end{figure}`,
			`<div class="mc-figure">x<div class="mc-caption">Figure 1: c</div></div>`},
		{`a\\b\newline c`, `a<br>b<br> c`},
		{`\LaTeX{} and \TeX`, `LaTeX and TeX`},
		{`a~b \ldots\%`, `a&nbsp;b &hellip;%`},
		{`\vspace{1em}`, `<span style="display:block;height:1em"></span>`},
	}
	for _, test := range testCases {
		require.Equal(t, test.out, Convert(HTML, test.in, nil, ""), test.in)
	}
}

func TestEscaping(t *testing.T) {
	in := `<script>alert("x")</script> & 'q' [b]<i>[/b]`
	out := Convert(HTML, in, nil, "")
	require.NotContains(t, out, "&amp;amp;")

	root, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)

	var text strings.Builder
	var elements []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text.WriteString(n.Data)
		case html.ElementNode:
			elements = append(elements, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	require.Equal(t, []string{"html", "head", "body", "b"}, elements)
	require.Equal(t, `<script>alert("x")</script> & 'q' <i>`, text.String())
}

func TestEscapingAttributes(t *testing.T) {
	out := Convert(HTML, `\href{http://a.com/"onmouseover="x}{y}`, nil, "")
	root, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)

	var attrs []html.Attribute
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			attrs = n.Attr
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	for _, attr := range attrs {
		require.Contains(t, []string{"href", "rel"}, attr.Key)
	}
}
