package workflow

import "strings"

// Message shown for the duplicate fast-path check and for an insert that
// lost the race to the unique index.
const DuplicateMessage = "You have already registered for this event."

// A user-correctable problem on a single form field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// All field errors of one submission attempt, collected, not short-circuited.
type ValidationError []FieldError

func (e ValidationError) Error() string {
	messages := make([]string, 0, len(e))
	for _, fieldErr := range e {
		messages = append(messages, fieldErr.Message)
	}
	return strings.Join(messages, " ")
}

// Whether any of the collected errors is the duplicate-registration one.
func (e ValidationError) HasDuplicate() bool {
	for _, fieldErr := range e {
		if fieldErr.Message == DuplicateMessage {
			return true
		}
	}
	return false
}
