// latex.go -
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

	"github.com/ikicic/skoljka-sub001/mathcontent/tokenizer"
)

type latexRenderer struct {
	*renderContext
	buf strings.Builder
}

func renderLaTeX(ctx *renderContext) string {
	w := &latexRenderer{renderContext: ctx}
	w.render(ctx.doc.Tokens)
	return w.buf.String()
}

func (w *latexRenderer) render(toks tokenizer.TokenList) {
	for _, tok := range toks {
		switch tok.Type {
		case tokenizer.TokenText:
			w.write(escapeLaTeX(tok.Text))
		case tokenizer.TokenComment:
			w.write("%" + strings.ReplaceAll(tok.Text, "\n", "\n%") + tok.Whitespace)
		case tokenizer.TokenSimpleWhitespace, tokenizer.TokenMultilineWhitespace:
			w.write(tok.Text)
		case tokenizer.TokenMath:
			w.write(mathLaTeX(tok.Format, tok.Text))
		case tokenizer.TokenCommand:
			if m, ok := commands[tok.Name]; ok {
				m.LaTeX(w, tok)
			} else {
				w.command(tok)
			}
		case tokenizer.TokenBBCode:
			if m, ok := bbTags[tok.Name]; ok {
				m.LaTeX(w, tok)
			}
		case tokenizer.TokenError, tokenizer.TokenWarning:
			w.write(tok.Text)
		}
	}
}

func (w *latexRenderer) write(s string) {
	w.buf.WriteString(s)
}

// command reproduces one part of a command together with its
// arguments.
func (w *latexRenderer) command(tok *tokenizer.Token) {
	if tok.Part == 0 {
		w.write(tok.Name)
	} else {
		w.write("}")
	}
	parts := 0
	for _, arg := range tok.Args {
		if arg.Kind == tokenizer.ArgParse {
			parts++
			if parts == tok.Part+1 {
				w.write("{")
			}
			continue
		}
		if parts != tok.Part {
			continue
		}
		switch arg.Kind {
		case tokenizer.ArgOptional:
			if arg.Present {
				w.write("[" + arg.Text + "]")
			}
		case tokenizer.ArgVerbatim:
			w.write("{" + arg.Text + "}")
		}
	}
	w.write(tok.Whitespace)
}

// environment reproduces \begin{name} or \end{name}.
func (w *latexRenderer) environment(tok *tokenizer.Token) {
	if tok.Part != 0 {
		w.write(`\end{` + tok.Name + `}`)
		return
	}
	w.write(`\begin{` + tok.Name + `}`)
	for _, arg := range tok.Args {
		if arg.Present {
			w.write("[" + arg.Text + "]")
		}
	}
}

var mathFormats = map[string]string{
	tokenizer.FormatDisplayInline: `$\displaystyle %s$`,
}

func mathLaTeX(format, formula string) string {
	if f, ok := mathFormats[format]; ok {
		format = f
	}
	return strings.Replace(format, "%s", formula, 1)
}

var latexEscapes = strings.NewReplacer(
	`#`, `\#`,
	`$`, `\$`,
	`%`, `\%`,
	`&`, `\&`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
	`\`, `\textbackslash{}`,
)

func escapeLaTeX(s string) string {
	return latexEscapes.Replace(s)
}
