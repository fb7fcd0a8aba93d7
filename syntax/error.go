package syntax

import (
	"fmt"

	"tycho/database"
)

type Error struct {
	Message string
	Span    database.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%v)", e.Message, e.Span)
}
