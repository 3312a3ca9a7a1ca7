// convert.go -
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

// Package mathcontent converts user-authored rich text to HTML and to
// LaTeX.  The input mixes a whitelist of LaTeX commands and
// environments, maths and BBCode-style tags.  Conversion never fails
// because of malformed input; problems are marked in the output.
package mathcontent

import (
	"errors"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ikicic/skoljka-sub001/mathcontent/math"
	"github.com/ikicic/skoljka-sub001/mathcontent/tokenizer"
)

// Target selects the output format of a conversion.
type Target int

// The supported output formats.
const (
	HTML Target = iota
	LaTeX
)

func (target Target) String() string {
	switch target {
	case HTML:
		return "html"
	case LaTeX:
		return "latex"
	}
	return "invalid"
}

// ErrUnknownTarget is returned by ParseTarget for unknown names.
var ErrUnknownTarget = errors.New("unknown target")

// ParseTarget converts a target name like "html" into a Target.
func ParseTarget(name string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "html":
		return HTML, nil
	case "latex", "tex":
		return LaTeX, nil
	}
	return 0, ErrUnknownTarget
}

// Converter holds the settings for conversions.  A Converter can be
// used concurrently by several goroutines.
type Converter struct {
	// Math is used to obtain images for formulas in HTML output.  If
	// Math is nil, formulas are included as source text.
	Math math.Renderer
}

// Convert converts text to the given target format.  Attachments are
// referenced by \includegraphics and [img]; in LaTeX output, their
// file names are prefixed with attachmentsPath.
func (conv *Converter) Convert(target Target, text string, attachments []Attachment, attachmentsPath string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	doc := tokenizer.Tokenize(text)
	return conv.Render(doc, target, attachments, attachmentsPath)
}

// Render converts an already tokenized document.  The document is not
// modified, so that it can be rendered to several targets.
func (conv *Converter) Render(doc *tokenizer.Document, target Target, attachments []Attachment, attachmentsPath string) string {
	ctx := &renderContext{
		doc:             doc,
		attachments:     attachments,
		attachmentsPath: attachmentsPath,
		mathRenderer:    conv.Math,
	}
	switch target {
	case HTML:
		return renderHTML(ctx)
	case LaTeX:
		return renderLaTeX(ctx)
	}
	panic("invalid conversion target " + target.String())
}

// SafeConvert works like Convert, but recovers from internal errors.
// In this case, a generic message is returned as the output, together
// with an *InternalError.
func (conv *Converter) SafeConvert(target Target, text string, attachments []Attachment, attachmentsPath string) (res string, err error) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		ierr := newInternalError(rec)
		log.Error().
			Str("incident", ierr.Incident.String()).
			Err(ierr.Cause).
			Bytes("stack", debug.Stack()).
			Msg("conversion failed")
		res = internalErrorMarker(target, ierr)
		err = ierr
	}()
	return conv.Convert(target, text, attachments, attachmentsPath), nil
}

func internalErrorMarker(target Target, err *InternalError) string {
	if target == LaTeX {
		return escapeLaTeX(err.UserMessage())
	}
	return `<span class="mc-error">` + escapeHTML(err.UserMessage()) + `</span>`
}

var defaultConverter = &Converter{}

// Convert converts text using a Converter without maths renderer.
func Convert(target Target, text string, attachments []Attachment, attachmentsPath string) string {
	return defaultConverter.Convert(target, text, attachments, attachmentsPath)
}

// SafeConvert converts text using a Converter without maths renderer,
// recovering from internal errors.
func SafeConvert(target Target, text string, attachments []Attachment, attachmentsPath string) (string, error) {
	return defaultConverter.SafeConvert(target, text, attachments, attachmentsPath)
}

// renderContext holds the read-only inputs of a render pass.
type renderContext struct {
	doc             *tokenizer.Document
	attachments     []Attachment
	attachmentsPath string
	mathRenderer    math.Renderer
}

// label looks up the target of a \label or \ref.
func (ctx *renderContext) label(name string) *tokenizer.Label {
	return ctx.doc.Label(name)
}
