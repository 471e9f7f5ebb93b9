package utils_test

import (
	"eventsman/src-server/utils"
	"testing"
)

func TestFieldLabel(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{"full_name", "Full Name"},
		{"college", "College"},
		{"department", "Department"},
		{" email ", "Email"},
	} {
		if got := utils.FieldLabel(tc.in); got != tc.want {
			t.Errorf("FieldLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
