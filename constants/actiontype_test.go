package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		in     string
		want   ActionType
		wantOK bool
	}{
		{"CREATE_CALENDAR", CreateCalendar, true},
		{"navigate", Navigate, true},
		{"  Add_Todo  ", AddTodo, true},
		{"COPY_TEXT", CopyText, true},
		{"UNKNOWN", Unknown, true},
		{"calendar", CreateCalendar, true},
		{"event", CreateCalendar, true},
		{"navigation", Navigate, true},
		{"reminder", AddTodo, true},
		{"copy", CopyText, true},
		{"", Unknown, false},
		{"LAUNCH_ROCKET", Unknown, false},
	}
	for _, tc := range cases {
		got, ok := Canonicalize(tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
		assert.Equal(t, tc.wantOK, ok, "input %q", tc.in)
	}
}

func TestAsStringSlice(t *testing.T) {
	got := AsStringSlice()
	assert.Equal(t, []string{"CREATE_CALENDAR", "NAVIGATE", "ADD_TODO", "COPY_TEXT", "UNKNOWN"}, got)
}

func TestIsImageExt(t *testing.T) {
	assert.True(t, IsImageExt(".PNG"))
	assert.True(t, IsImageExt("jpeg"))
	assert.False(t, IsImageExt(".pdf"))
	assert.False(t, IsImageExt(""))
}
