// attachment.go -
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
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// Attachment is a file which can be referenced from the converted
// text, either by \includegraphics{filename} or by [img attachment=N].
// The converter never reads the file itself.
type Attachment interface {
	// URL is where the file can be downloaded from.
	URL() string

	// Filename is the base name of the file.
	Filename() string

	// FullPath is the location of the file on disk.
	FullPath() string
}

// FileAttachment is an Attachment backed by a local file.
type FileAttachment struct {
	Path    string
	BaseURL string
}

// URL implements the Attachment interface.
func (fa *FileAttachment) URL() string {
	return strings.TrimSuffix(fa.BaseURL, "/") + "/" + url.PathEscape(fa.Filename())
}

// Filename implements the Attachment interface.
func (fa *FileAttachment) Filename() string {
	return filepath.Base(fa.Path)
}

// FullPath implements the Attachment interface.
func (fa *FileAttachment) FullPath() string {
	return fa.Path
}

// attachmentByIndex returns the attachment with the given 1-based
// index, or nil.
func (ctx *renderContext) attachmentByIndex(n int) Attachment {
	if n < 1 || n > len(ctx.attachments) {
		return nil
	}
	return ctx.attachments[n-1]
}

// attachmentByName looks up an attachment by file name.  A name which
// is a number is used as an index.
func (ctx *renderContext) attachmentByName(name string) Attachment {
	name = strings.TrimSpace(name)
	for _, a := range ctx.attachments {
		if a.Filename() == name {
			return a
		}
	}
	if n, err := strconv.Atoi(name); err == nil {
		return ctx.attachmentByIndex(n)
	}
	return nil
}

// latexPath returns the file name used for an attachment in LaTeX
// output.
func (ctx *renderContext) latexPath(a Attachment) string {
	if ctx.attachmentsPath == "" {
		return a.FullPath()
	}
	return path.Join(ctx.attachmentsPath, a.Filename())
}
