// errors.go -
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

	"github.com/google/uuid"
)

// InternalError is returned by SafeConvert when the conversion failed
// unexpectedly.  The incident id is logged together with the cause,
// and can be shown to users instead of the cause.
type InternalError struct {
	Incident uuid.UUID
	Cause    error
}

func newInternalError(rec interface{}) *InternalError {
	cause, ok := rec.(error)
	if !ok {
		cause = fmt.Errorf("%v", rec)
	}
	return &InternalError{
		Incident: uuid.New(),
		Cause:    cause,
	}
}

func (err *InternalError) Error() string {
	return "internal error " + err.Incident.String() + ": " + err.Cause.Error()
}

func (err *InternalError) Unwrap() error {
	return err.Cause
}

// UserMessage returns a message suitable for end users.
func (err *InternalError) UserMessage() string {
	return fmt.Sprintf(msgInternalError, err.Incident)
}
