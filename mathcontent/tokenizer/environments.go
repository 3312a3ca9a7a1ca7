// environments.go -
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
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// An environment implements the handling of \begin{name}.  Begin is
// called after the environment name has been read.
type environment interface {
	Begin(t *Tokenizer, name string, start int)
}

// blockEnv is an environment whose body is tokenized.  The string
// lists the types of the arguments following \begin{name}.
type blockEnv string

func (env blockEnv) Begin(t *Tokenizer, name string, start int) {
	snap := t.doc.snapshot()
	var args []*Arg
	for _, argType := range env {
		switch ArgKind(argType) {
		case ArgOptional:
			arg, err := t.readOptionalArg()
			if err != nil {
				t.fail(start, err.Pos, err.Message, snap)
				return
			}
			args = append(args, arg)
		default:
			panic("unsupported environment argument type " + string(argType))
		}
	}

	id := t.doc.newEnv(name)
	tok := &Token{
		Type:  TokenCommand,
		Name:  name,
		Args:  args,
		Env:   id,
		Start: start,
		End:   t.scan.Pos(),
	}
	t.push(&frame{
		brk:     breakEnd,
		envName: name,
		env:     id,
		start:   start,
		body:    t.scan.Pos(),
		open:    TokenList{tok},
	})
}

// rawEnv is an environment whose body is not tokenized.  Text after
// \end{name} on the same line is ignored.  The line break ending that
// line is swallowed too, unless the following line is empty.
type rawEnv struct{}

func (rawEnv) Begin(t *Tokenizer, name string, start int) {
	body := t.scan.Pos()
	endTag := `\end{` + name + `}`
	idx := strings.Index(t.scan.Peek(), endTag)
	if idx < 0 {
		t.emit(t.errorToken(start, body, "missing "+endTag))
		return
	}
	t.scan.Seek(body + idx + len(endTag))
	tok := &Token{
		Type: TokenCommand,
		Name: name,
		Args: []*Arg{
			{Kind: ArgVerbatim, Present: true, Text: t.scan.Slice(body, body+idx)},
		},
		Start: start,
		End:   t.scan.Pos(),
	}

	lineStart := t.scan.Pos()
	t.scan.SkipWhile(func(c byte) bool { return c != '\n' })
	if t.scan.Next() {
		eol := t.scan.Pos()
		t.scan.Skip(1)
		next := t.scan.Pos()
		t.scan.SkipWhile(isBlank)
		if t.scan.PeekByte(0) == '\n' {
			// keep the line break, it starts an empty line
			t.scan.Seek(eol)
		} else {
			t.scan.Seek(next)
		}
	}
	rest := t.scan.Slice(lineStart, t.scan.Pos())
	if strings.TrimSpace(rest) == "" {
		tok.Whitespace = rest
		t.emit(tok)
		return
	}
	warning := &Token{
		Type:    TokenWarning,
		Text:    rest,
		Message: "text after " + endTag + " ignored",
		Start:   lineStart,
		End:     t.scan.Pos(),
	}
	t.emit(tok, warning)
}

// equationEnv is a numbered displayed formula.  Labels inside the
// formula refer to the equation number.
type equationEnv struct{}

func (equationEnv) Begin(t *Tokenizer, name string, start int) {
	body := t.scan.Pos()
	endTag := `\end{` + name + `}`
	idx := strings.Index(t.scan.Peek(), endTag)
	if idx < 0 {
		t.emit(t.errorToken(start, body, "missing "+endTag))
		return
	}
	t.scan.Seek(body + idx + len(endTag))
	formula := t.scan.Slice(body, body+idx)

	id := t.doc.newEnv(name)
	env := t.doc.Env(id)
	env.Tag = t.doc.incCounter(CounterEquation)
	_, labels := StripLabels(formula)
	for _, label := range labels {
		label = NormaliseLabel(label)
		if label == "" || t.doc.Labels[label] != nil {
			log.Debug().Str("label", label).Msg("ignoring equation label")
			continue
		}
		t.doc.addLabel(&Label{Name: label, Tag: env.Tag})
	}

	t.emit(&Token{
		Type:   TokenMath,
		Format: `\begin{` + name + `}%s` + endTag,
		Text:   formula,
		Env:    id,
		Start:  start,
		End:    t.scan.Pos(),
	})
}

var labelPattern = regexp.MustCompile(`\\label\s*\{([^{}]*)\}`)

// StripLabels removes all \label commands from a formula and returns
// the cleaned formula together with the label names.
func StripLabels(formula string) (string, []string) {
	var labels []string
	for _, m := range labelPattern.FindAllStringSubmatch(formula, -1) {
		labels = append(labels, m[1])
	}
	if labels == nil {
		return formula, nil
	}
	return labelPattern.ReplaceAllString(formula, ""), labels
}

var environments map[string]environment

func addBuiltinEnvironments() {
	environments = map[string]environment{
		"figure":     blockEnv("O"),
		"center":     blockEnv(""),
		"flushleft":  blockEnv(""),
		"flushright": blockEnv(""),
		"quote":      blockEnv(""),
		"itemize":    blockEnv(""),
		"enumerate":  blockEnv(""),
		"verbatim":   rawEnv{},
		"equation":   equationEnv{},
	}
}

// Environments returns the names of all environments with special
// handling.  All other environments are treated as maths.
func Environments() []string {
	var res []string
	for name := range environments {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func (t *Tokenizer) beginEnvironment(start int) {
	arg, err := t.readVerbatimArg()
	if err != nil {
		t.fail(start, err.Pos, err.Message, t.doc.snapshot())
		return
	}
	name := strings.TrimSpace(arg.Text)
	if !isEnvName(name) {
		t.emit(t.errorToken(start, t.scan.Pos(), "invalid environment name"))
		return
	}

	if env, ok := environments[name]; ok {
		env.Begin(t, name, start)
		return
	}
	t.readOpaqueEnv(name, start)
}

func (t *Tokenizer) endEnvironment(start int) {
	arg, err := t.readVerbatimArg()
	if err != nil {
		t.fail(start, err.Pos, err.Message, t.doc.snapshot())
		return
	}
	name := strings.TrimSpace(arg.Text)

	top := t.top()
	if top.brk != breakEnd || top.envName != name {
		t.emit(t.errorToken(start, t.scan.Pos(), `unexpected \end{`+name+`}`))
		return
	}
	t.closeBBCode(top, start)
	t.pop()
	t.emit(top.open...)
	t.emit(top.tokens...)
	t.emit(&Token{
		Type:  TokenCommand,
		Name:  name,
		Part:  1,
		Env:   top.env,
		Start: start,
		End:   t.scan.Pos(),
	})
}

// readOpaqueEnv turns an unsupported environment into a maths token.
func (t *Tokenizer) readOpaqueEnv(name string, start int) {
	body := t.scan.Pos()
	beginTag := `\begin{` + name + `}`
	endTag := `\end{` + name + `}`
	text := t.scan.Text()

	depth := 0
	pos := body
	for {
		nextEnd := strings.Index(text[pos:], endTag)
		if nextEnd < 0 {
			t.emit(t.errorToken(start, body, "missing "+endTag))
			return
		}
		nextBegin := strings.Index(text[pos:], beginTag)
		if nextBegin >= 0 && nextBegin < nextEnd {
			depth++
			pos += nextBegin + len(beginTag)
			continue
		}
		if depth == 0 {
			pos += nextEnd
			break
		}
		depth--
		pos += nextEnd + len(endTag)
	}

	log.Debug().Str("env", name).Msg("unknown environment, treating as maths")
	t.scan.Seek(pos + len(endTag))
	t.emit(&Token{
		Type:   TokenMath,
		Format: beginTag + "%s" + endTag,
		Text:   text[body:pos],
		Start:  start,
		End:    t.scan.Pos(),
	})
}

func isEnvName(name string) bool {
	name = strings.TrimSuffix(name, "*")
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isLetter(name[i]) {
			return false
		}
	}
	return true
}
