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

package tokenizer

import (
	"sort"
	"strings"

	"github.com/ikicic/skoljka-sub001/mathcontent/scanner"
	"github.com/ikicic/skoljka-sub001/mathcontent/units"
)

// A macro describes how a command is read.  ArgTypes is the argument
// descriptor: one ArgKind letter per argument.  Apply is called for
// every part of the command once the arguments preceding it have been
// read, and returns the tokens to emit in its place.
type macro interface {
	ArgTypes() string
	Apply(t *Tokenizer, tok *Token) TokenList
}

// typedMacro is a command with the given argument descriptor and no
// special behaviour.
type typedMacro string

func (tm typedMacro) ArgTypes() string {
	return string(tm)
}

func (tm typedMacro) Apply(t *Tokenizer, tok *Token) TokenList {
	return TokenList{tok}
}

type funcMacro struct {
	args  string
	apply func(t *Tokenizer, tok *Token) TokenList
}

func (fm *funcMacro) ArgTypes() string {
	return fm.args
}

func (fm *funcMacro) Apply(t *Tokenizer, tok *Token) TokenList {
	return fm.apply(t, tok)
}

var macros map[string]macro

func init() {
	addBuiltinMacros()
	addBuiltinEnvironments()
	addBuiltinTags()
}

func addBuiltinMacros() {
	macros = map[string]macro{
		`\textbf`:    typedMacro("P"),
		`\textit`:    typedMacro("P"),
		`\emph`:      typedMacro("P"),
		`\underline`: typedMacro("P"),
		`\texttt`:    typedMacro("P"),
		`\sout`:      typedMacro("P"),
		`\fbox`:      typedMacro("P"),
		`\href`:      typedMacro("VP"),
		`\url`:       typedMacro("V"),
		`\ref`:       typedMacro("V"),

		`\caption`:         &funcMacro{"P", applyCaption},
		`\centering`:       &funcMacro{"", applyCentering},
		`\hspace`:          &funcMacro{"V", applyLength},
		`\includegraphics`: &funcMacro{"OV", applyIncludegraphics},
		`\item`:            &funcMacro{"O", applyItem},
		`\label`:           &funcMacro{"V", applyLabel},
		`\setlength`:       &funcMacro{"VV", applySetlength},
		`\vspace`:          &funcMacro{"V", applyLength},
	}
	for _, name := range []string{
		`\noindent`, `\\`, `\newline`, `\ldots`, `\dots`, `\LaTeX`, `\TeX`,
		`\%`, `\$`, `\&`, `\#`, `\_`, `\{`, `\}`, `\ `, `\,`,
	} {
		macros[name] = typedMacro("")
	}
}

// Commands returns the names of all supported commands.
func Commands() []string {
	var res []string
	for name := range macros {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// LengthRegisters are the lengths which can be changed by \setlength.
var LengthRegisters = map[string]bool{
	`\parindent`: true,
	`\parskip`:   true,
}

func (t *Tokenizer) sourceError(tok *Token, msg string) *Token {
	return t.errorToken(tok.Start, tok.End, msg)
}

func applyCaption(t *Tokenizer, tok *Token) TokenList {
	tok.Env = t.findEnv(isFigure)
	if env := t.doc.Env(tok.Env); env != nil && tok.Part == 0 {
		env.Tag = t.doc.incCounter(CounterFigure)
	}
	return TokenList{tok}
}

func applyCentering(t *Tokenizer, tok *Token) TokenList {
	tok.Env = t.findEnv(func(*Environment) bool { return true })
	if env := t.doc.Env(tok.Env); env != nil {
		env.Centering = true
	}
	return TokenList{tok}
}

func applyLabel(t *Tokenizer, tok *Token) TokenList {
	name := NormaliseLabel(tok.Arg(0))
	if name == "" {
		return TokenList{t.sourceError(tok, "empty label")}
	}
	if t.doc.Labels[name] != nil {
		warning := &Token{
			Type:    TokenWarning,
			Text:    t.scan.Slice(tok.Start, tok.End),
			Message: "duplicate label " + name,
			Start:   tok.Start,
			End:     tok.End,
		}
		return TokenList{warning}
	}

	tok.Env = t.findEnv(isFigure)
	label := &Label{Name: name}
	if env := t.doc.Env(tok.Env); env != nil && env.Tag != "" {
		label.Tag = env.Tag
	} else {
		label.Missing = true
	}
	t.doc.addLabel(label)
	return TokenList{tok}
}

func applySetlength(t *Tokenizer, tok *Token) TokenList {
	register := strings.TrimSpace(tok.Arg(0))
	if !LengthRegisters[register] {
		return TokenList{t.sourceError(tok, "unsupported length "+register)}
	}
	if _, err := units.Parse(tok.Arg(1)); err != nil {
		return TokenList{t.sourceError(tok, err.Error())}
	}
	return TokenList{tok}
}

func applyLength(t *Tokenizer, tok *Token) TokenList {
	if _, err := units.Parse(tok.Arg(0)); err != nil {
		return TokenList{t.sourceError(tok, err.Error())}
	}
	return TokenList{tok}
}

func applyIncludegraphics(t *Tokenizer, tok *Token) TokenList {
	for key, value := range ParseOptions(tok.Arg(0)) {
		if key != "width" && key != "height" {
			continue
		}
		if _, err := units.Parse(value); err != nil {
			return TokenList{t.sourceError(tok, err.Error())}
		}
	}
	if strings.TrimSpace(tok.Arg(1)) == "" {
		return TokenList{t.sourceError(tok, "missing file name")}
	}
	return TokenList{tok}
}

func applyItem(t *Tokenizer, tok *Token) TokenList {
	tok.Env = t.findEnv(func(*Environment) bool { return true })
	env := t.doc.Env(tok.Env)
	if env == nil || !isList(env) {
		return TokenList{t.sourceError(tok, `\item outside of a list`)}
	}
	return TokenList{tok}
}

func isFigure(env *Environment) bool {
	return env.Name == "figure"
}

func isList(env *Environment) bool {
	return env.Name == "itemize" || env.Name == "enumerate"
}

// ParseOptions splits a key=value option list like "width=3cm,
// height=1in" into a map.
func ParseOptions(s string) map[string]string {
	res := make(map[string]string)
	for _, opt := range strings.Split(s, ",") {
		key, value, _ := strings.Cut(opt, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		res[key] = strings.TrimSpace(value)
	}
	return res
}

// readMacroName reads a command name, including the backslash.  A
// backslash at the very end of input is returned on its own.
func (t *Tokenizer) readMacroName() string {
	start := t.scan.Pos()
	t.scan.Skip(1)
	if !t.scan.Next() {
		return `\`
	}
	if !isLetter(t.scan.PeekByte(0)) {
		t.scan.Skip(1)
		return t.scan.Slice(start, t.scan.Pos())
	}
	t.scan.SkipWhile(isLetter)
	return t.scan.Slice(start, t.scan.Pos())
}

// skipControlSpace skips the white space after a control word.  At
// most one line break is skipped, and none if it starts an empty line.
func (t *Tokenizer) skipControlSpace() string {
	start := t.scan.Pos()
	t.scan.SkipWhile(isBlank)
	if t.scan.PeekByte(0) == '\n' {
		save := t.scan.Pos()
		t.scan.Skip(1)
		t.scan.SkipWhile(isBlank)
		if t.scan.PeekByte(0) == '\n' {
			t.scan.Seek(save)
		}
	}
	return t.scan.Slice(start, t.scan.Pos())
}

// findClosing returns the position of the delimiter `close` matching
// an already consumed `open`, starting the search at `from`.
func (t *Tokenizer) findClosing(from int, open, close byte) int {
	text := t.scan.Text()
	depth := 0
	for i := from; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case open:
			depth++
		case close:
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

func (t *Tokenizer) readOptionalArg() (*Arg, *scanner.ParseError) {
	if t.scan.PeekByte(0) != '[' {
		return &Arg{Kind: ArgOptional}, nil
	}
	body := t.scan.Pos() + 1
	end := t.findClosing(body, '[', ']')
	if end < 0 {
		return nil, t.scan.MakeError(body, "missing ]")
	}
	t.scan.Seek(end + 1)
	return &Arg{Kind: ArgOptional, Present: true, Text: t.scan.Slice(body, end)}, nil
}

func (t *Tokenizer) readVerbatimArg() (*Arg, *scanner.ParseError) {
	t.skipControlSpace()
	if t.scan.PeekByte(0) != '{' {
		return nil, t.scan.MakeError(t.scan.Pos(), "missing argument")
	}
	body := t.scan.Pos() + 1
	end := t.findClosing(body, '{', '}')
	if end < 0 {
		return nil, t.scan.MakeError(body, "missing }")
	}
	t.scan.Seek(end + 1)
	return &Arg{Kind: ArgVerbatim, Present: true, Text: t.scan.Slice(body, end)}, nil
}

// openArg consumes the opening brace of an ArgParse argument and
// returns the position where the argument contents start.
func (t *Tokenizer) openArg() (int, *scanner.ParseError) {
	t.skipControlSpace()
	if t.scan.PeekByte(0) != '{' {
		return 0, t.scan.MakeError(t.scan.Pos(), "missing argument")
	}
	t.scan.Skip(1)
	return t.scan.Pos(), nil
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}
