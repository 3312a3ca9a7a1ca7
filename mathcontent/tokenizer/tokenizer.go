// tokenizer.go -
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
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ikicic/skoljka-sub001/mathcontent/scanner"
)

// maxDepth is the maximal number of nested groups, environments and
// command arguments.  Deeper constructs are turned into error tokens.
const maxDepth = 64

// Tokenizer splits an input text into tokens.  A Tokenizer is used for
// a single document only, see Tokenize.
type Tokenizer struct {
	scan   *scanner.Scanner
	doc    *Document
	frames []*frame
}

type breakCond int

const (
	breakEOF   breakCond = iota // end of input
	breakBrace                  // matching '}'
	breakEnd                    // matching \end{envName}
)

// frame is an entry of the parse state stack.
type frame struct {
	brk     breakCond
	envName string
	env     EnvID

	// start is the input position of the construct which opened the
	// frame, body is where the frame contents start.
	start, body int

	// open holds the tokens emitted for the opening of a group or
	// environment.  For command arguments, cmd is set instead.
	open TokenList
	cmd  *pending

	tokens TokenList

	// bbOpen lists the BBCode tags opened in this frame which are not
	// yet closed.
	bbOpen []*Token
}

// pending is a command whose arguments are still being read.
type pending struct {
	m    macro
	tok  Token
	args []*Arg
	slot int
	part int

	start     int
	partStart int

	// out collects the tokens of the completed parts.  They are only
	// emitted once the whole command has been read.
	out  TokenList
	snap snapshot
}

// Tokenize splits text into tokens.  Malformed input never causes an
// error; the affected part of the text is instead represented by
// TokenError tokens.
func Tokenize(text string) *Document {
	t := &Tokenizer{
		scan:   scanner.New(text),
		doc:    newDocument(),
		frames: []*frame{{brk: breakEOF}},
	}
	t.run()
	return t.doc
}

func (t *Tokenizer) run() {
	for {
		top := t.top()
		if !t.scan.Next() {
			if top.brk == breakEOF {
				t.closeBBCode(top, t.scan.Pos())
				break
			}
			t.abandon(top)
			continue
		}

		switch c := t.scan.PeekByte(0); {
		case c == '\\':
			t.readBackslash()
		case c == '{':
			t.openGroup()
		case c == '}':
			t.closeBrace()
		case c == '$':
			t.readDollarMath()
		case c == '%':
			t.readComment()
		case c == '[':
			t.readBBCode()
		case c == '~':
			pos := t.scan.Pos()
			t.scan.Skip(1)
			t.emit(&Token{Type: TokenCommand, Name: "~", Start: pos, End: pos + 1})
		case isSpace(c):
			t.readWhitespace()
		default:
			t.readText()
		}
	}
	t.doc.Tokens = t.frames[0].tokens
}

func (t *Tokenizer) top() *frame {
	return t.frames[len(t.frames)-1]
}

func (t *Tokenizer) push(f *frame) bool {
	if len(t.frames) >= maxDepth {
		snap := t.doc.snapshot()
		if f.cmd != nil {
			snap = f.cmd.snap
		}
		t.fail(f.start, f.body, "nesting too deep", snap)
		return false
	}
	t.frames = append(t.frames, f)
	return true
}

func (t *Tokenizer) pop() *frame {
	f := t.top()
	t.frames = t.frames[:len(t.frames)-1]
	return f
}

// abandon removes an unterminated frame at the end of input.  The
// opening of the frame is replaced by an error token, the frame
// contents are kept.
func (t *Tokenizer) abandon(f *frame) {
	start := f.start
	msg := "missing }"
	if f.brk == breakEnd {
		msg = `missing \end{` + f.envName + `}`
	}
	if f.cmd != nil {
		start = f.cmd.start
	}
	log.Debug().Int("pos", start).Msg(msg)

	t.pop()
	parent := t.top()
	t.emit(t.errorToken(start, f.body, msg))
	t.emit(f.tokens...)
	parent.bbOpen = append(parent.bbOpen, f.bbOpen...)
}

// fail replaces the input between from and to by an error token and
// resumes scanning at position to.  Side effects since snap are undone.
func (t *Tokenizer) fail(from, to int, msg string, snap snapshot) {
	if to <= from {
		to = from + 1
	}
	t.doc.restore(snap)
	t.scan.Seek(to)
	t.emit(t.errorToken(from, to, msg))
}

func (t *Tokenizer) errorToken(from, to int, msg string) *Token {
	return &Token{
		Type:    TokenError,
		Text:    t.scan.Slice(from, to),
		Message: t.scan.MakeError(from, msg).Error(),
		Start:   from,
		End:     to,
	}
}

// emit appends tokens to the current frame.  Adjacent text tokens are
// merged.
func (t *Tokenizer) emit(toks ...*Token) {
	f := t.top()
	for _, tok := range toks {
		if n := len(f.tokens); n > 0 && tok.Type == TokenText {
			last := f.tokens[n-1]
			if last.Type == TokenText && last.End == tok.Start {
				f.tokens[n-1] = &Token{
					Type:  TokenText,
					Text:  last.Text + tok.Text,
					Start: last.Start,
					End:   tok.End,
				}
				continue
			}
		}
		f.tokens = append(f.tokens, tok)
	}
}

func (t *Tokenizer) emitText(from, to int) {
	t.emit(&Token{Type: TokenText, Text: t.scan.Slice(from, to), Start: from, End: to})
}

func (t *Tokenizer) readWhitespace() {
	start := t.scan.Pos()
	ws := t.scan.SkipWhile(isSpace)
	tp := TokenSimpleWhitespace
	if strings.Count(ws, "\n") >= 2 {
		tp = TokenMultilineWhitespace
	}
	t.emit(&Token{Type: tp, Text: ws, Start: start, End: t.scan.Pos()})
}

func (t *Tokenizer) readText() {
	start := t.scan.Pos()
	t.scan.SkipWhile(func(c byte) bool {
		return !isSpace(c) && !strings.ContainsRune(`\{}$%[~`, rune(c))
	})
	t.emitText(start, t.scan.Pos())
}

func (t *Tokenizer) readBackslash() {
	start := t.scan.Pos()
	name := t.readMacroName()
	switch name {
	case `\(`, `\[`:
		t.readParenMath(start, name)
		return
	case `\begin`:
		t.beginEnvironment(start)
		return
	case `\end`:
		t.endEnvironment(start)
		return
	}

	m, ok := macros[name]
	if !ok {
		log.Debug().Str("name", name).Msg("unknown command")
		t.emitText(start, t.scan.Pos())
		return
	}
	p := &pending{
		m:         m,
		tok:       Token{Type: TokenCommand, Name: name},
		start:     start,
		partStart: start,
		snap:      t.doc.snapshot(),
	}
	if m.ArgTypes() == "" && isLetter(name[1]) {
		p.tok.Whitespace = t.skipControlSpace()
	}
	t.continueCommand(p)
}

// continueCommand reads the remaining arguments of a command.  When a
// content argument is reached, a frame is pushed and reading continues
// once the frame is closed.
func (t *Tokenizer) continueCommand(p *pending) {
	types := p.m.ArgTypes()
	for p.slot < len(types) {
		kind := ArgKind(types[p.slot])
		p.slot++

		var arg *Arg
		var err *scanner.ParseError
		switch kind {
		case ArgOptional:
			arg, err = t.readOptionalArg()
		case ArgVerbatim:
			arg, err = t.readVerbatimArg()
		case ArgParse:
			var body int
			body, err = t.openArg()
			if err != nil {
				break
			}
			p.args = append(p.args, &Arg{Kind: ArgParse, Present: true})
			if t.push(&frame{brk: breakBrace, start: p.start, body: body, cmd: p}) {
				t.emitPart(p)
			}
			return
		}
		if err != nil {
			t.fail(p.start, err.Pos, err.Message, p.snap)
			return
		}
		p.args = append(p.args, arg)
	}
	t.emitPart(p)
	t.emit(p.out...)
}

func (t *Tokenizer) emitPart(p *pending) {
	tok := p.tok
	tok.Part = p.part
	tok.Args = append([]*Arg(nil), p.args...)
	tok.Start = p.partStart
	tok.End = t.scan.Pos()
	p.part++
	p.out = append(p.out, p.m.Apply(t, &tok)...)
}

func (t *Tokenizer) openGroup() {
	start := t.scan.Pos()
	t.scan.Skip(1)
	open := &Token{Type: TokenCommand, Name: "{", Start: start, End: start + 1}
	t.push(&frame{
		brk:   breakBrace,
		start: start,
		body:  start + 1,
		open:  TokenList{open},
	})
}

func (t *Tokenizer) closeBrace() {
	pos := t.scan.Pos()
	t.scan.Skip(1)
	top := t.top()
	if top.brk != breakBrace {
		t.emit(t.errorToken(pos, pos+1, "unexpected }"))
		return
	}

	t.closeBBCode(top, pos)
	t.pop()
	if p := top.cmd; p != nil {
		p.args[len(p.args)-1].Text = t.scan.Slice(top.body, pos)
		p.out = append(p.out, top.tokens...)
		p.partStart = pos
		t.continueCommand(p)
		return
	}
	t.emit(top.open...)
	t.emit(top.tokens...)
	t.emit(&Token{Type: TokenCommand, Name: "{", Part: 1, Start: pos, End: pos + 1})
}

// findEnv returns the innermost open environment for which accept
// returns true, or 0 if there is none.
func (t *Tokenizer) findEnv(accept func(*Environment) bool) EnvID {
	for i := len(t.frames) - 1; i >= 0; i-- {
		id := t.frames[i].env
		if id != 0 && accept(t.doc.Env(id)) {
			return id
		}
	}
	return 0
}

func (t *Tokenizer) readBBCode() {
	start := t.scan.Pos()
	tag, end, err := ParseTag(t.scan.Text(), start)
	if err != nil {
		var se *TagSyntaxError
		if errors.As(err, &se) && bbTags[se.Name] != nil && !se.Unterminated {
			t.fail(start, se.Pos, se.Error(), t.doc.snapshot())
			return
		}
		t.scan.Skip(1)
		t.emitText(start, start+1)
		return
	}

	info, ok := bbTags[tag.Name]
	if !ok {
		t.scan.Skip(1)
		t.emitText(start, start+1)
		return
	}
	t.scan.Seek(end)

	if tag.Closing {
		if !t.closeBBTag(tag.Name, start, end) {
			t.emitText(start, end)
		}
		return
	}
	if info.check != nil {
		if err := info.check(tag); err != nil {
			t.emit(t.errorToken(start, end, err.Error()))
			return
		}
	}

	tok := &Token{
		Type:  TokenBBCode,
		Name:  tag.Name,
		Attrs: tag.Attrs,
		Start: start,
		End:   end,
	}
	switch info.kindOf(tag) {
	case tagStandalone:
		t.emit(tok)
	case tagRaw:
		closeTag := "[/" + tag.Name + "]"
		idx := indexFold(t.scan.Peek(), closeTag)
		if idx < 0 {
			t.emit(t.errorToken(start, end, "missing "+closeTag))
			return
		}
		tok.Raw = true
		tok.Text = t.scan.Slice(end, end+idx)
		tok.End = end + idx + len(closeTag)
		t.scan.Seek(tok.End)
		t.emit(tok)
	default:
		top := t.top()
		top.bbOpen = append(top.bbOpen, tok)
		t.emit(tok)
	}
}

// closeBBTag closes the innermost open tag with the given name in the
// current frame.  Tags opened after it are closed implicitly.
func (t *Tokenizer) closeBBTag(name string, start, end int) bool {
	top := t.top()
	for i := len(top.bbOpen) - 1; i >= 0; i-- {
		if top.bbOpen[i].Name != name {
			continue
		}
		t.closeBBCode(&frame{bbOpen: top.bbOpen[i+1:]}, start)
		top.bbOpen = top.bbOpen[:i]
		t.emit(&Token{Type: TokenBBCode, Name: name, Closing: true, Start: start, End: end})
		return true
	}
	return false
}

// closeBBCode emits closing tags for all tags still open in f.
func (t *Tokenizer) closeBBCode(f *frame, pos int) {
	for i := len(f.bbOpen) - 1; i >= 0; i-- {
		t.emit(&Token{
			Type:    TokenBBCode,
			Name:    f.bbOpen[i].Name,
			Closing: true,
			Start:   pos,
			End:     pos,
		})
	}
	f.bbOpen = nil
}

func indexFold(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}
