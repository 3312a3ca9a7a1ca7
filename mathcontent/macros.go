// macros.go -
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
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ikicic/skoljka-sub001/mathcontent/tokenizer"
	"github.com/ikicic/skoljka-sub001/mathcontent/units"
)

// macro describes the output of a command, environment or BBCode tag.
// The methods are called once for every part of the token.
type macro interface {
	HTML(r *htmlRenderer, tok *tokenizer.Token)
	LaTeX(w *latexRenderer, tok *tokenizer.Token)
}

// commands is keyed by command name, environment name, "{" for
// groups and "~".
var commands map[string]macro

// bbTags is keyed by BBCode tag name.
var bbTags map[string]macro

func init() {
	addBuiltinMacros()
	addBuiltinTags()
}

func addBuiltinMacros() {
	commands = map[string]macro{
		"{": &funcMacro{
			html: func(r *htmlRenderer, tok *tokenizer.Token) {
				if tok.Part == 0 {
					r.pushGroup()
				} else {
					r.popGroup()
				}
			},
			latex: func(w *latexRenderer, tok *tokenizer.Token) {
				if tok.Part == 0 {
					w.write("{")
				} else {
					w.write("}")
				}
			},
		},

		`\caption`:         &funcMacro{html: hCaption},
		`\centering`:       &funcMacro{html: hIgnore},
		`\href`:            &funcMacro{html: hHref},
		`\includegraphics`: &funcMacro{html: hIncludegraphics, latex: lIncludegraphics},
		`\item`:            &funcMacro{html: hItem},
		`\label`:           &funcMacro{html: hLabel},
		`\noindent`:        &funcMacro{html: hNoindent},
		`\ref`:             &funcMacro{html: hRef},
		`\setlength`:       &funcMacro{html: hSetlength},
		`\url`:             &funcMacro{html: hURL},
		`\vspace`:          &funcMacro{html: hSpace("display:block;height:")},
		`\hspace`:          &funcMacro{html: hSpace("display:inline-block;width:")},

		"figure":     &funcMacro{html: hFigure, latex: lEnvironment},
		"center":     mBlock{"div", "center"},
		"flushleft":  mBlock{"div", "flushleft"},
		"flushright": mBlock{"div", "flushright"},
		"quote":      mBlock{"blockquote", ""},
		"itemize":    mList("ul"),
		"enumerate":  mList("ol"),
		"verbatim":   &funcMacro{html: hVerbatim, latex: lVerbatim},
	}
	for name, tag := range map[string]string{
		`\textbf`:    "b",
		`\textit`:    "i",
		`\emph`:      "em",
		`\underline`: "u",
		`\texttt`:    "code",
		`\sout`:      "s",
	} {
		commands[name] = mHTMLTag{tag: tag}
	}
	commands[`\fbox`] = mHTMLTag{tag: "span", class: "fbox"}
	for name, out := range map[string]string{
		"~":        "&nbsp;",
		`\\`:       "<br>",
		`\newline`: "<br>",
		`\ldots`:   "&hellip;",
		`\dots`:    "&hellip;",
		`\LaTeX`:   "LaTeX",
		`\TeX`:     "TeX",
		`\%`:       "%",
		`\$`:       "$",
		`\&`:       "&amp;",
		`\#`:       "#",
		`\_`:       "_",
		`\{`:       "{",
		`\}`:       "}",
		`\ `:       " ",
		`\,`:       "&thinsp;",
	} {
		commands[name] = mSubst(out)
	}
}

// funcMacro uses the given functions for output.  If latex is nil, the
// command is reproduced unchanged.
type funcMacro struct {
	html  func(r *htmlRenderer, tok *tokenizer.Token)
	latex func(w *latexRenderer, tok *tokenizer.Token)
}

func (m *funcMacro) HTML(r *htmlRenderer, tok *tokenizer.Token) {
	m.html(r, tok)
}

func (m *funcMacro) LaTeX(w *latexRenderer, tok *tokenizer.Token) {
	if m.latex == nil {
		w.command(tok)
		return
	}
	m.latex(w, tok)
}

// mHTMLTag encloses the argument of a command in an HTML element.
type mHTMLTag struct {
	tag, class string
}

func (m mHTMLTag) HTML(r *htmlRenderer, tok *tokenizer.Token) {
	if tok.Part != 0 {
		r.write("</" + m.tag + ">")
		return
	}
	r.inline()
	r.write("<" + m.tag)
	if m.class != "" {
		r.write(` class="` + cssPrefix + m.class + `"`)
	}
	r.write(">")
}

func (m mHTMLTag) LaTeX(w *latexRenderer, tok *tokenizer.Token) {
	w.command(tok)
}

// mSubst is a command without arguments which is replaced by a fixed
// piece of HTML.
type mSubst string

func (m mSubst) HTML(r *htmlRenderer, tok *tokenizer.Token) {
	r.inline()
	r.write(string(m))
	if tok.Whitespace != "" {
		r.space(" ")
	}
}

func (m mSubst) LaTeX(w *latexRenderer, tok *tokenizer.Token) {
	w.command(tok)
}

// mBlock is an environment rendered as a block-level element.
type mBlock struct {
	tag, class string
}

func (m mBlock) HTML(r *htmlRenderer, tok *tokenizer.Token) {
	if tok.Part != 0 {
		r.write("</" + m.tag + ">")
		r.endBlock()
		return
	}
	r.startBlock(true)
	r.write("<" + m.tag)
	if m.class != "" {
		r.write(` class="` + cssPrefix + m.class + `"`)
	}
	r.write(">")
}

func (m mBlock) LaTeX(w *latexRenderer, tok *tokenizer.Token) {
	w.environment(tok)
}

// mList is a list environment.
type mList string

func (m mList) HTML(r *htmlRenderer, tok *tokenizer.Token) {
	if tok.Part == 0 {
		s := r.startBlock(true)
		s.list = &list{}
		r.write("<" + string(m) + ">")
		return
	}
	if l := r.top().list; l != nil && l.itemOpen {
		r.write("</li>")
	}
	r.write("</" + string(m) + ">")
	r.endBlock()
}

func (m mList) LaTeX(w *latexRenderer, tok *tokenizer.Token) {
	w.environment(tok)
}

func hIgnore(r *htmlRenderer, tok *tokenizer.Token) {}

func hNoindent(r *htmlRenderer, tok *tokenizer.Token) {
	r.top().par.noIndent = true
}

func hFigure(r *htmlRenderer, tok *tokenizer.Token) {
	if tok.Part != 0 {
		r.write("</div>")
		r.endBlock()
		return
	}
	class := cssPrefix + "figure"
	if env := r.doc.Env(tok.Env); env != nil && env.Centering {
		class += " " + cssPrefix + "center"
	}
	r.startBlock(true)
	r.write(`<div class="` + class + `">`)
}

func lEnvironment(w *latexRenderer, tok *tokenizer.Token) {
	w.environment(tok)
}

func hCaption(r *htmlRenderer, tok *tokenizer.Token) {
	if tok.Part != 0 {
		r.write("</div>")
		r.endBlock()
		return
	}
	r.startBlock(false)
	r.write(`<div class="` + cssPrefix + `caption">`)
	if env := r.doc.Env(tok.Env); env != nil && env.Tag != "" {
		r.write(escapeHTML(fmt.Sprintf(msgFigure, env.Tag)))
	}
}

func hLabel(r *htmlRenderer, tok *tokenizer.Token) {
	label := r.label(tok.Arg(0))
	if label == nil {
		return
	}
	if label.Missing {
		r.inline()
		r.write(`<span class="` + cssPrefix + `warning" id="` + escapeHTML(label.ID) + `">` +
			escapeHTML(fmt.Sprintf(msgMissingTag, label.Name)) + `</span>`)
		return
	}
	r.write(`<span id="` + escapeHTML(label.ID) + `"></span>`)
}

func hRef(r *htmlRenderer, tok *tokenizer.Token) {
	r.inline()
	name := tok.Arg(0)
	label := r.label(name)
	if label == nil || label.Tag == "" {
		log.Debug().Str("label", name).Msg("unresolved reference")
		r.marker("warning", fmt.Sprintf(msgUnknownLabel, strings.TrimSpace(name)), msgUnknownRef)
		return
	}
	r.write(`<a href="#` + escapeHTML(label.ID) + `">` + escapeHTML(label.Tag) + `</a>`)
}

func hSetlength(r *htmlRenderer, tok *tokenizer.Token) {
	r.setLength(strings.TrimSpace(tok.Arg(0)), tok.Arg(1))
}

func hSpace(style string) func(r *htmlRenderer, tok *tokenizer.Token) {
	return func(r *htmlRenderer, tok *tokenizer.Token) {
		css, err := units.ToHTML(tok.Arg(0))
		if err != nil {
			return
		}
		r.inline()
		r.write(`<span style="` + escapeHTML(style+css) + `"></span>`)
	}
}

func hVerbatim(r *htmlRenderer, tok *tokenizer.Token) {
	r.block("<pre>" + escapeHTML(tok.Arg(0)) + "</pre>")
}

func lVerbatim(w *latexRenderer, tok *tokenizer.Token) {
	w.write(`\begin{verbatim}` + tok.Arg(0) + `\end{verbatim}` + tok.Whitespace)
}

func hItem(r *htmlRenderer, tok *tokenizer.Token) {
	l := r.findList()
	if l != nil {
		if l.itemOpen {
			r.write("</li>")
		}
		r.write("<li>")
		l.itemOpen = true
		p := r.top().par
		p.pending = p.enabled
		p.indent = false
		p.first = true
	}
	if len(tok.Args) > 0 && tok.Args[0].Present {
		r.inline()
		r.write(`<span class="` + cssPrefix + `item-label">` + escapeHTML(tok.Arg(0)) + `</span> `)
	}
}

func hIncludegraphics(r *htmlRenderer, tok *tokenizer.Token) {
	name := tok.Arg(1)
	a := r.attachmentByName(name)
	if a == nil {
		r.inline()
		r.marker("error", "", escapeHTML(fmt.Sprintf(msgAttachmentNotFound, strings.TrimSpace(name))))
		return
	}
	opts := tokenizer.ParseOptions(tok.Arg(0))
	r.image(a, opts["width"], opts["height"])
}

func lIncludegraphics(w *latexRenderer, tok *tokenizer.Token) {
	name := tok.Arg(1)
	a := w.attachmentByName(name)
	if a == nil {
		w.write(`\fbox{` + escapeLaTeX(fmt.Sprintf(msgAttachmentNotFound, strings.TrimSpace(name))) + `}`)
		return
	}
	w.write(`\includegraphics`)
	if len(tok.Args) > 0 && tok.Args[0].Present {
		w.write("[" + tok.Args[0].Text + "]")
	}
	w.write("{" + w.latexPath(a) + "}")
}

func hHref(r *htmlRenderer, tok *tokenizer.Token) {
	if tok.Part == 0 {
		r.inline()
	}
	link, ok := sanitizeURL(tok.Arg(0))
	switch {
	case !ok && tok.Part == 0:
		r.write(`<span class="` + cssPrefix + `error" title="` + escapeHTML(msgInvalidURL) + `">`)
	case !ok:
		r.write("</span>")
	case tok.Part == 0:
		r.write(openLink(link))
	default:
		r.write("</a>")
	}
}

func hURL(r *htmlRenderer, tok *tokenizer.Token) {
	r.inline()
	writeURL(r, tok.Arg(0))
}

func writeURL(r *htmlRenderer, raw string) {
	link, ok := sanitizeURL(raw)
	if !ok {
		r.marker("error", msgInvalidURL, escapeHTML(raw))
		return
	}
	r.write(openLink(link) + escapeHTML(strings.TrimSpace(raw)) + "</a>")
}

func openLink(link *url.URL) string {
	res := `<a href="` + escapeHTML(link.String()) + `"`
	if link.Scheme != "" {
		res += ` rel="nofollow"`
	}
	return res + ">"
}

var safeSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"ftp":    true,
	"mailto": true,
}

// sanitizeURL parses a link target.  Only URLs with one of the
// safeSchemes and relative URLs are accepted.
func sanitizeURL(raw string) (*url.URL, bool) {
	link, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || link.String() == "" {
		return nil, false
	}
	if link.Scheme != "" && !safeSchemes[strings.ToLower(link.Scheme)] {
		return nil, false
	}
	return link, true
}
