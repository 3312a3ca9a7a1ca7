// bbtags.go -
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
	"fmt"
	"strings"

	"github.com/ikicic/skoljka-sub001/mathcontent/tokenizer"
	"github.com/ikicic/skoljka-sub001/mathcontent/units"
)

func addBuiltinTags() {
	bbTags = map[string]macro{
		"b":     bbSimple{"b", `\textbf{`, `}`},
		"i":     bbSimple{"i", `\textit{`, `}`},
		"u":     bbSimple{"u", `\underline{`, `}`},
		"s":     bbSimple{"s", `\sout{`, `}`},
		"quote": bbQuote{},
		"url":   bbURL{},
		"pre":   bbPre{},
		"img":   bbImg{},
		"par":   bbPar{},
	}
}

// bbSimple is a container tag which maps to an HTML element and a
// LaTeX command.
type bbSimple struct {
	tag        string
	latexOpen  string
	latexClose string
}

func (m bbSimple) HTML(r *htmlRenderer, tok *tokenizer.Token) {
	if tok.Closing {
		r.write("</" + m.tag + ">")
		return
	}
	r.inline()
	r.write("<" + m.tag + ">")
}

func (m bbSimple) LaTeX(w *latexRenderer, tok *tokenizer.Token) {
	if tok.Closing {
		w.write(m.latexClose)
	} else {
		w.write(m.latexOpen)
	}
}

type bbQuote struct{}

func (bbQuote) HTML(r *htmlRenderer, tok *tokenizer.Token) {
	if tok.Closing {
		r.write("</blockquote>")
		r.endBlock()
		return
	}
	r.startBlock(true)
	r.write("<blockquote>")
}

func (bbQuote) LaTeX(w *latexRenderer, tok *tokenizer.Token) {
	if tok.Closing {
		w.write(`\end{quote}`)
	} else {
		w.write(`\begin{quote}`)
	}
}

// bbURL is either [url]target[/url] or [url=target]text[/url].
type bbURL struct{}

func (bbURL) HTML(r *htmlRenderer, tok *tokenizer.Token) {
	// closing tags carry no attributes
	if tok.Closing {
		r.write(r.closeURL())
		return
	}
	r.inline()
	if tok.Raw {
		writeURL(r, tok.Text)
		return
	}
	target, _ := tok.Attr("url")
	link, ok := sanitizeURL(target)
	if !ok {
		r.urls = append(r.urls, "</span>")
		r.write(`<span class="` + cssPrefix + `error" title="` + escapeHTML(msgInvalidURL) + `">`)
		return
	}
	r.urls = append(r.urls, "</a>")
	r.write(openLink(link))
}

func (bbURL) LaTeX(w *latexRenderer, tok *tokenizer.Token) {
	switch {
	case tok.Raw:
		w.write(`\url{` + tok.Text + `}`)
	case tok.Closing:
		w.write("}")
	default:
		target, _ := tok.Attr("url")
		w.write(`\href{` + target + `}{`)
	}
}

type bbPre struct{}

func (bbPre) HTML(r *htmlRenderer, tok *tokenizer.Token) {
	r.block("<pre>" + escapeHTML(tok.Text) + "</pre>")
}

func (bbPre) LaTeX(w *latexRenderer, tok *tokenizer.Token) {
	w.write(`\begin{verbatim}` + tok.Text + `\end{verbatim}`)
}

// bbImg shows an attachment, selected by its 1-based index.
type bbImg struct{}

func (bbImg) HTML(r *htmlRenderer, tok *tokenizer.Token) {
	n, err := tokenizer.AttachmentIndex(tok)
	a := r.attachmentByIndex(n)
	if err != nil || a == nil {
		r.inline()
		r.marker("error", "", escapeHTML(fmt.Sprintf(msgAttachmentIndex, n)))
		return
	}
	width, _ := tok.Attr("width")
	height, _ := tok.Attr("height")
	r.image(a, width, height)
}

func (bbImg) LaTeX(w *latexRenderer, tok *tokenizer.Token) {
	n, err := tokenizer.AttachmentIndex(tok)
	a := w.attachmentByIndex(n)
	if err != nil || a == nil {
		w.write(`\fbox{` + escapeLaTeX(fmt.Sprintf(msgAttachmentIndex, n)) + `}`)
		return
	}
	var opts []string
	for _, key := range []string{"width", "height"} {
		if value, ok := tok.Attr(key); ok {
			opts = append(opts, key+"="+latexLength(value))
		}
	}
	w.write(`\includegraphics`)
	if len(opts) > 0 {
		w.write("[" + strings.Join(opts, ",") + "]")
	}
	w.write("{" + w.latexPath(a) + "}")
}

// bbPar starts a new paragraph and sets the paragraph lengths of the
// enclosing scope.
type bbPar struct{}

func (bbPar) HTML(r *htmlRenderer, tok *tokenizer.Token) {
	for _, key := range []string{"skip", "indent"} {
		if value, ok := tok.Attr(key); ok {
			r.setLength(key, value)
		}
	}
	r.paragraphBreak()
}

func (bbPar) LaTeX(w *latexRenderer, tok *tokenizer.Token) {
	for _, key := range []string{"skip", "indent"} {
		if value, ok := tok.Attr(key); ok {
			w.write(`\setlength{\par` + key + `}{` + latexLength(value) + `}`)
		}
	}
	w.write(`\par `)
}

// latexLength normalises a length given in a BBCode attribute.
func latexLength(value string) string {
	l, err := units.Parse(value)
	if err != nil {
		return value
	}
	return l.LaTeX()
}
