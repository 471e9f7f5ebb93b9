package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Turns a snake_case form field name into the label used in user-facing
// messages, e.g. "full_name" -> "Full Name".
func FieldLabel(field string) string {
	field = strings.ReplaceAll(strings.TrimSpace(field), "_", " ")
	return cases.Title(language.English).String(field)
}
