// html.go -
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

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/ikicic/skoljka-sub001/mathcontent/math"
	"github.com/ikicic/skoljka-sub001/mathcontent/tokenizer"
	"github.com/ikicic/skoljka-sub001/mathcontent/units"
)

const cssPrefix = "mc-"

// paragraph is the paragraph state of a block.  Groups inside a block
// share the state of the block.
type paragraph struct {
	enabled bool

	// pending is set if the next inline content must open a new
	// paragraph, indent says whether that paragraph is indented.
	pending bool
	indent  bool

	first        bool // no paragraph opened in this block yet
	afterBlock   bool // the last unit was a block-level element
	afterDisplay bool // the last unit was displayed maths
	noIndent     bool // \noindent was given
}

// scope is an entry of the render state stack.
type scope struct {
	// explicit lengths, as CSS values
	parIndent string
	parSkip   string

	par  *paragraph
	list *list
}

type list struct {
	itemOpen bool
}

type htmlRenderer struct {
	*renderContext
	buf    strings.Builder
	scopes []*scope

	// closing markup of the open [url=...] tags
	urls []string
}

func renderHTML(ctx *renderContext) string {
	r := &htmlRenderer{renderContext: ctx}
	enabled := usesParagraphs(ctx.doc.Tokens)
	r.scopes = []*scope{{
		par: &paragraph{enabled: enabled, pending: enabled, first: true},
	}}
	r.render(ctx.doc.Tokens)
	return r.buf.String()
}

// usesParagraphs reports whether the output is split into paragraphs.
// Text without empty lines is rendered without <p> tags.
func usesParagraphs(toks tokenizer.TokenList) bool {
	for _, tok := range toks {
		switch {
		case tok.Type == tokenizer.TokenMultilineWhitespace:
			return true
		case tok.Type == tokenizer.TokenBBCode && tok.Name == "par":
			return true
		}
	}
	return false
}

func (r *htmlRenderer) render(toks tokenizer.TokenList) {
	for _, tok := range toks {
		switch tok.Type {
		case tokenizer.TokenText:
			r.inline()
			r.write(escapeHTML(tok.Text))
		case tokenizer.TokenComment:
			// not shown
		case tokenizer.TokenSimpleWhitespace:
			r.space(tok.Text)
		case tokenizer.TokenMultilineWhitespace:
			r.paragraphBreak()
		case tokenizer.TokenMath:
			r.math(tok)
		case tokenizer.TokenCommand:
			if m, ok := commands[tok.Name]; ok {
				r.command(m, tok)
			} else {
				log.Warn().Str("name", tok.Name).Msg("no HTML output for command")
				r.inline()
				r.write(escapeHTML(tok.Name))
			}
		case tokenizer.TokenBBCode:
			if m, ok := bbTags[tok.Name]; ok {
				m.HTML(r, tok)
			}
		case tokenizer.TokenError:
			r.inline()
			r.marker("error", tok.Message, escapeHTML(tok.Text))
		case tokenizer.TokenWarning:
			r.inline()
			r.marker("warning", tok.Message, escapeHTML(tok.Text))
		}
	}
}

// command renders one part of a command.  The content arguments
// between the parts are rendered in a scope of their own.
func (r *htmlRenderer) command(m macro, tok *tokenizer.Token) {
	n := 0
	for _, arg := range tok.Args {
		if arg.Kind == tokenizer.ArgParse {
			n++
		}
	}
	if tok.Part > 0 && tok.Part <= n {
		r.popGroup()
	}
	m.HTML(r, tok)
	if tok.Part < n {
		r.pushGroup()
	}
}

func (r *htmlRenderer) write(s string) {
	r.buf.WriteString(s)
}

// marker writes an inline error or warning span.  The body must be
// escaped already.
func (r *htmlRenderer) marker(kind, title, body string) {
	r.write(`<span class="` + cssPrefix + kind + `"`)
	if title != "" {
		r.write(` title="` + escapeHTML(title) + `"`)
	}
	r.write(">" + body + "</span>")
}

func (r *htmlRenderer) top() *scope {
	return r.scopes[len(r.scopes)-1]
}

// inline must be called before inline content is written.  It opens a
// new paragraph if one is pending.
func (r *htmlRenderer) inline() {
	s := r.top()
	p := s.par
	p.afterDisplay = false
	if !p.pending {
		return
	}

	indent := p.indent && !p.noIndent
	p.pending = false
	p.indent = false
	p.first = false
	p.afterBlock = false
	p.noIndent = false

	if s.parIndent == "" && s.parSkip == "" {
		class := cssPrefix + "noindent"
		if indent {
			class = cssPrefix + "indent"
		}
		r.write(`<p class="` + class + `">`)
		return
	}
	var style []string
	if s.parIndent != "" {
		textIndent := s.parIndent
		if !indent {
			textIndent = "0"
		}
		style = append(style, "text-indent:"+textIndent)
	}
	if s.parSkip != "" {
		style = append(style, "margin-top:"+s.parSkip)
	}
	r.write(`<p style="` + escapeHTML(strings.Join(style, ";")) + `">`)
}

func (r *htmlRenderer) space(ws string) {
	if ws == "" || r.top().par.pending {
		return
	}
	r.write(ws)
}

// paragraphBreak handles an empty line in the input.
func (r *htmlRenderer) paragraphBreak() {
	p := r.top().par
	if !p.enabled || p.afterDisplay {
		return
	}
	p.pending = true
	p.indent = !p.first
}

// startBlock pushes the state for a block-level container.
func (r *htmlRenderer) startBlock(paragraphs bool) *scope {
	parent := r.top()
	enabled := paragraphs && parent.par.enabled
	s := &scope{
		parIndent: parent.parIndent,
		parSkip:   parent.parSkip,
		par:       &paragraph{enabled: enabled, pending: enabled, first: true},
	}
	r.scopes = append(r.scopes, s)
	return s
}

// endBlock pops the state of a block-level container.  The next
// paragraph of the enclosing block is not indented.
func (r *htmlRenderer) endBlock() {
	if len(r.scopes) > 1 {
		r.scopes = r.scopes[:len(r.scopes)-1]
	}
	p := r.top().par
	p.pending = p.enabled
	p.indent = false
	p.afterBlock = true
	p.afterDisplay = false
}

// block writes a complete block-level element.
func (r *htmlRenderer) block(s string) {
	r.startBlock(false)
	r.write(s)
	r.endBlock()
}

func (r *htmlRenderer) pushGroup() {
	parent := r.top()
	r.scopes = append(r.scopes, &scope{
		parIndent: parent.parIndent,
		parSkip:   parent.parSkip,
		par:       parent.par,
		list:      parent.list,
	})
}

func (r *htmlRenderer) popGroup() {
	if len(r.scopes) > 1 {
		r.scopes = r.scopes[:len(r.scopes)-1]
	}
}

func (r *htmlRenderer) setLength(register, value string) {
	css, err := units.ToHTML(value)
	if err != nil {
		return
	}
	switch register {
	case `\parindent`, "indent":
		r.top().parIndent = css
	case `\parskip`, "skip":
		r.top().parSkip = css
	}
}

func (r *htmlRenderer) math(tok *tokenizer.Token) {
	r.inline()
	display := tokenizer.IsDisplayFormat(tok.Format)
	formula, labels := tok.Text, []string(nil)
	env := r.doc.Env(tok.Env)
	if env != nil {
		formula, labels = tokenizer.StripLabels(formula)
	}

	class := cssPrefix + "math"
	if display {
		class += " " + cssPrefix + "display"
	}
	if r.mathRenderer == nil {
		r.write(`<span class="` + class + `" data-format="` + escapeHTML(tok.Format) + `">` +
			escapeHTML(formula) + `</span>`)
	} else {
		f := r.mathRenderer.Render(tok.Format, formula)
		if f.Depth == math.ErrorDepth {
			r.marker("error", msgInvalidFormula, escapeHTML(tok.Text))
		} else {
			r.write(fmt.Sprintf(`<img src="%s" alt="%s" class="%s" style="vertical-align:%dpx">`,
				escapeHTML(f.URL), escapeHTML(math.AltText(formula)), class, -f.Depth))
		}
	}

	if env != nil && env.Tag != "" {
		for _, name := range labels {
			if label := r.label(name); label != nil && label.Tag == env.Tag {
				r.write(`<span id="` + escapeHTML(label.ID) + `"></span>`)
			}
		}
		r.write(`<span class="` + cssPrefix + `eqno">(` + escapeHTML(env.Tag) + `)</span>`)
	}
	r.top().par.afterDisplay = display
}

// image writes an <img> element for an attachment.  Width and height
// are LaTeX lengths.
func (r *htmlRenderer) image(a Attachment, width, height string) {
	var style []string
	if css, err := units.ToHTML(width); width != "" && err == nil {
		style = append(style, "width:"+css)
	}
	if css, err := units.ToHTML(height); height != "" && err == nil {
		style = append(style, "height:"+css)
	}
	r.inline()
	r.write(`<img src="` + escapeHTML(a.URL()) + `" alt="` + escapeHTML(a.Filename()) + `"`)
	if len(style) > 0 {
		r.write(` style="` + escapeHTML(strings.Join(style, ";")) + `"`)
	}
	r.write(">")
}

func (r *htmlRenderer) closeURL() string {
	n := len(r.urls)
	if n == 0 {
		return "</a>"
	}
	res := r.urls[n-1]
	r.urls = r.urls[:n-1]
	return res
}

func (r *htmlRenderer) findList() *list {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if r.scopes[i].list != nil {
			return r.scopes[i].list
		}
	}
	return nil
}

func escapeHTML(s string) string {
	return html.EscapeString(s)
}
