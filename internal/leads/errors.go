package leads

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a status update targets an unknown lead
var ErrNotFound = errors.New("lead not found")

// ValidationError reports client-supplied data that is missing or unacceptable
type ValidationError struct {
	Reason string
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Fields, ", "))
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
