// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanDocument(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "crlf", in: "a\r\nb\rc", want: "a\nb\nc"},
		{name: "form feed breaks pages", in: "page one\fpage two", want: "page one\npage two"},
		{name: "fullwidth colon and digits", in: "Policy No\uff1a\uff11\uff12\uff13", want: "Policy No:123"},
		{name: "non breaking space", in: "Policy\u00a0Number", want: "Policy Number"},
		{name: "zero width space", in: "Pol\u200bicy", want: "Policy"},
		{name: "soft hyphen and bom", in: "\ufeffPre\u00admium", want: "Premium"},
		{name: "nul and bell", in: "a\x00b\x07c", want: "abc"},
		{name: "tab becomes column gap", in: "Alice\tBob", want: "Alice  Bob"},
		{name: "trailing spaces", in: "Alice   \nBob ", want: "Alice\nBob"},
		{name: "inner runs kept", in: "Alice    Bob", want: "Alice    Bob"},
		{name: "invalid utf8", in: "a\xffb", want: "a\ufffdb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanDocument(tt.in))
		})
	}
}

func TestCleanDocumentIdempotent(t *testing.T) {
	in := "Policy\u00a0Number\uff1aABC-123\t \r\nName: Bob  \f"
	once := CleanDocument(in)
	assert.Equal(t, once, CleanDocument(once))
}
