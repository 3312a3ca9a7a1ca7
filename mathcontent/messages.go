// messages.go -
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

// User-visible strings produced by the converter.
const (
	msgFigure             = "Figure %s: "
	msgAttachmentNotFound = "Attachment %q not found."
	msgAttachmentIndex    = "Attachment #%d not found."
	msgInvalidFormula     = "Invalid formula."
	msgInvalidURL         = "Invalid URL."
	msgUnknownLabel       = "Unknown label %q."
	msgMissingTag         = "Label %q does not refer to a numbered figure or equation."
	msgInternalError      = "An internal error occurred while rendering this text (incident %s)."
	msgUnknownRef         = "??"
)
