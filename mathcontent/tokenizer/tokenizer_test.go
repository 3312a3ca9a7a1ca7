// tokenizer_test.go -
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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	testCases := []struct {
		in       string
		expected []string
	}{
		{"bla\n\nbla", []string{`Text("bla")`, `MultilineWhitespace("\n\n")`, `Text("bla")`}},
		{"a \nb", []string{`Text("a")`, `SimpleWhitespace(" \n")`, `Text("b")`}},
		{"[b]bla[/b]", []string{`BBCode(b)`, `Text("bla")`, `BBCode(/b)`}},
		{"$a+b$", []string{`Math($%s$,"a+b")`}},
		{"$$a$$b", []string{`Math($$%s$$,"a")`, `Text("b")`}},
		{"$$$x$$$", []string{`Math($$$%s$$$,"x")`}},
		{`$a\$b$`, []string{`Math($%s$,"a\\$b")`}},
		{`\(x\)`, []string{`Math(\(%s\),"x")`}},
		{`\[x\]`, []string{`Math(\[%s\],"x")`}},
		{"$a", []string{`Error("$a")`}},
		{`x\(a`, []string{`Text("x")`, `Error("\\(a")`}},
		{`\textbf{a}`, []string{`Command(\textbf,0)`, `Text("a")`, `Command(\textbf,1)`}},
		{`\textbf {a}`, []string{`Command(\textbf,0)`, `Text("a")`, `Command(\textbf,1)`}},
		{`\href{x}{y}`, []string{`Command(\href,0,"x")`, `Text("y")`, `Command(\href,1,"x")`}},
		{`\url{a{b}c}`, []string{`Command(\url,0,"a{b}c")`}},
		{`{a}`, []string{`Command({,0)`, `Text("a")`, `Command({,1)`}},
		{`\textbf{a`, []string{`Error("\\textbf{")`, `Text("a")`}},
		{`{{a}`, []string{`Error("{")`, `Command({,0)`, `Text("a")`, `Command({,1)`}},
		{"a}b", []string{`Text("a")`, `Error("}")`, `Text("b")`}},
		{`\textbf x`, []string{`Error("\\textbf ")`, `Text("x")`}},
		{`\foo x`, []string{`Text("\\foo")`, `SimpleWhitespace(" ")`, `Text("x")`}},
		{`\noindent  x`, []string{`Command(\noindent,0)`, `Text("x")`}},
		{`a\%b`, []string{`Text("a")`, `Command(\%,0)`, `Text("b")`}},
		{`a~b`, []string{`Text("a")`, `Command(~,0)`, `Text("b")`}},
		{`\begin{foo}a\end{foo}`, []string{`Math(\begin{foo}%s\end{foo},"a")`}},
		{`\begin{foo}\begin{foo}\end{foo}\end{foo}`,
			[]string{`Math(\begin{foo}%s\end{foo},"\\begin{foo}\\end{foo}")`}},
		{`\begin{foo}a`, []string{`Error("\\begin{foo}")`, `Text("a")`}},
		{`\begin{center}a\end{center}`,
			[]string{`Command(center,0)`, `Text("a")`, `Command(center,1)`}},
		{`\begin{center}a`, []string{`Error("\\begin{center}")`, `Text("a")`}},
		{`a\end{center}`, []string{`Text("a")`, `Error("\\end{center}")`}},
		{"\\begin{verbatim}<x>\\end{verbatim}  \nnext",
			[]string{`Command(verbatim,0,"<x>")`, `Text("next")`}},
		{"\\begin{verbatim}<x>\\end{verbatim} tail\nnext",
			[]string{`Command(verbatim,0,"<x>")`, `Warning(" tail\n")`, `Text("next")`}},
		{"\\begin{verbatim}<x>\\end{verbatim}\n\nnext",
			[]string{`Command(verbatim,0,"<x>")`, `MultilineWhitespace("\n\n")`, `Text("next")`}},
		{"\\begin{verbatim}<x>\\end{verbatim} \n \nnext",
			[]string{`Command(verbatim,0,"<x>")`, `MultilineWhitespace("\n \n")`, `Text("next")`}},
		{`[x]y`, []string{`Text("[x]y")`}},
		{`[]`, []string{`Text("[]")`}},
		{`[b`, []string{`Text("[b")`}},
		{`[/b]`, []string{`Text("[/b]")`}},
		{`[b]x`, []string{`BBCode(b)`, `Text("x")`, `BBCode(/b)`}},
		{`[b][i]x[/b]`, []string{`BBCode(b)`, `BBCode(i)`, `Text("x")`, `BBCode(/i)`, `BBCode(/b)`}},
		{`[b]{[/b]}`, []string{`BBCode(b)`, `Command({,0)`, `Text("[/b]")`, `Command({,1)`, `BBCode(/b)`}},
		{`[pre][b][/pre]`, []string{`BBCode(pre "[b]")`}},
		{`[url]http://a[/url]`, []string{`BBCode(url "http://a")`}},
		{`[url=http://a]x[/URL]`, []string{`BBCode(url url="http://a")`, `Text("x")`, `BBCode(/url)`}},
		{`[pre]x`, []string{`Error("[pre]")`, `Text("x")`}},
		{`[b x="1]`, []string{`Error("[b x=\"")`, `Text("1]")`}},
		{`[img attachment=1]`, []string{`BBCode(img attachment="1")`}},
		{`[img attachment=x]`, []string{`Error("[img attachment=x]")`}},
		{`[par skip=1em]`, []string{`BBCode(par skip="1em")`}},
		{`\setlength{\parindent}{1em}`, []string{`Command(\setlength,0,"\\parindent","1em")`}},
		{`\setlength{\foo}{1pt}`, []string{`Error("\\setlength{\\foo}{1pt}")`}},
		{`\vspace{1zz}`, []string{`Error("\\vspace{1zz}")`}},
		{`\item x`, []string{`Error("\\item")`, `SimpleWhitespace(" ")`, `Text("x")`}},
		{`\includegraphics[width=3cm]{a.png}`,
			[]string{`Command(\includegraphics,0,"width=3cm","a.png")`}},
		{`\includegraphics{a.png`, []string{`Error("\\includegraphics{")`, `Text("a.png")`}},
	}
	for _, test := range testCases {
		doc := Tokenize(test.in)
		if d := cmp.Diff(test.expected, doc.Tokens.Strings()); d != "" {
			t.Errorf("%q: wrong tokens (-want +got):\n%s", test.in, d)
		}
	}
}

func TestTokenPositions(t *testing.T) {
	in := `ab \textbf{c} [b]d[/b]`
	doc := Tokenize(in)
	for _, tok := range doc.Tokens {
		require.True(t, tok.Start <= tok.End, "%s", tok)
		require.True(t, tok.End <= len(in), "%s", tok)
	}
	require.Equal(t, `\textbf{`, in[doc.Tokens[2].Start:doc.Tokens[2].End])
	require.Equal(t, `}`, in[doc.Tokens[4].Start:doc.Tokens[4].End])
}

func TestFigure(t *testing.T) {
	doc := Tokenize(`\begin{figure}[h]\centering x\caption{A}\label{fig}\end{figure}`)
	require.Equal(t, []string{
		`Command(figure,0,"h")`,
		`Command(\centering,0)`,
		`Text("x")`,
		`Command(\caption,0)`,
		`Text("A")`,
		`Command(\caption,1)`,
		`Command(\label,0,"fig")`,
		`Command(figure,1)`,
	}, doc.Tokens.Strings())

	open, close := doc.Tokens[0], doc.Tokens[7]
	require.NotZero(t, open.Env)
	require.Equal(t, open.Env, close.Env)
	env := doc.Env(open.Env)
	require.True(t, env.Centering)
	require.Equal(t, "1", env.Tag)
	require.Equal(t, 1, doc.Counters[CounterFigure])

	label := doc.Label("fig")
	require.NotNil(t, label)
	require.Equal(t, "1", label.Tag)
	require.False(t, label.Missing)
	require.Equal(t, "mc-label-fig", label.ID)
}

func TestLabelBeforeCaption(t *testing.T) {
	doc := Tokenize(`\begin{figure}\label{a}\caption{A}\end{figure}` +
		`\begin{figure}\caption{B}\label{b}\end{figure}`)
	a := doc.Label("a")
	require.True(t, a.Missing)
	require.Equal(t, "", a.Tag)

	b := doc.Label("b")
	require.False(t, b.Missing)
	require.Equal(t, "2", b.Tag)
}

// A \caption whose argument exceeds the nesting limit must not use up
// a figure number.
func TestCaptionTooDeep(t *testing.T) {
	deep := `\begin{figure}` + strings.Repeat("{", maxDepth-2) + `\caption{x}` +
		strings.Repeat("}", maxDepth-2) + `\label{a}\end{figure}`
	doc := Tokenize(deep + `\begin{figure}\caption{y}\label{b}\end{figure}`)

	require.Equal(t, "", doc.Env(1).Tag)
	require.True(t, doc.Label("a").Missing)
	require.Equal(t, "1", doc.Label("b").Tag)
	require.Equal(t, 1, doc.Counters[CounterFigure])

	var errs []string
	for _, tok := range doc.Tokens {
		if tok.Type == TokenError {
			errs = append(errs, tok.Text)
		}
	}
	require.Equal(t, []string{`\caption{`, "}"}, errs)
}

func TestDuplicateLabel(t *testing.T) {
	doc := Tokenize(`\begin{figure}\caption{A}\label{x}\end{figure}` +
		`\begin{figure}\caption{B}\label{x}\end{figure}`)
	require.Equal(t, "1", doc.Label("x").Tag)

	var warnings []string
	for _, tok := range doc.Tokens {
		if tok.Type == TokenWarning {
			warnings = append(warnings, tok.Text)
		}
	}
	require.Equal(t, []string{`\label{x}`}, warnings)
}

func TestEquation(t *testing.T) {
	doc := Tokenize(`\begin{equation}a\label{e}\end{equation} \ref{e}`)
	require.Equal(t, []string{
		`Math(\begin{equation}%s\end{equation},"a\\label{e}")`,
		`SimpleWhitespace(" ")`,
		`Command(\ref,0,"e")`,
	}, doc.Tokens.Strings())
	require.Equal(t, "1", doc.Label("e").Tag)
	require.Equal(t, "1", doc.Env(doc.Tokens[0].Env).Tag)
}

func TestStripLabels(t *testing.T) {
	formula, labels := StripLabels(`a+b \label{x} = c\label {y}`)
	require.Equal(t, `a+b  = c`, formula)
	require.Equal(t, []string{"x", "y"}, labels)

	formula, labels = StripLabels("x^2")
	require.Equal(t, "x^2", formula)
	require.Nil(t, labels)
}

func TestNestingDepth(t *testing.T) {
	in := strings.Repeat("{", 70) + "x" + strings.Repeat("}", 70)
	doc := Tokenize(in)
	errs := 0
	for _, tok := range doc.Tokens {
		if tok.Type == TokenError {
			errs++
		}
	}
	require.Equal(t, 14, errs)
}

func TestUnknownEnvironmentNoError(t *testing.T) {
	doc := Tokenize(`\begin{unknownenv}anything \textbf{x} [b]\end{unknownenv}`)
	require.Len(t, doc.Tokens, 1)
	require.Equal(t, TokenMath, doc.Tokens[0].Type)
	require.False(t, IsDisplayFormat(FormatInline))
	require.True(t, IsDisplayFormat(doc.Tokens[0].Format))
}

func TestRegistries(t *testing.T) {
	require.Contains(t, Commands(), `\textbf`)
	require.Contains(t, Environments(), "verbatim")
	require.Contains(t, Tags(), "img")
}

func TestParseOptions(t *testing.T) {
	require.Equal(t, map[string]string{"width": "3cm", "height": "1in", "keepaspectratio": ""},
		ParseOptions(" width=3cm, height = 1in,keepaspectratio,"))
}
