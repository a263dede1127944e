package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mimestream/filter"
)

func TestDkimBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, in, simple, relaxed string
	}{
		// RFC 6376, section 3.4.5
		{"rfc example", " C \r\nD \t E\r\n\r\n\r\n", " C \r\nD \t E\r\n", " C\r\nD E\r\n"},
		{"empty", "", "\r\n", ""},
		{"only empty lines", "\r\n\r\n", "\r\n", ""},
		{"unterminated", "abc", "abc\r\n", "abc\r\n"},
		{"bare lf", "a\n\nb\n\n", "a\r\n\r\nb\r\n", "a\r\n\r\nb\r\n"},
		{"bare cr", "a\rb\r\n", "a\rb\r\n", "a\rb\r\n"},
		{"trailing cr", "a\r", "a\r\r\n", "a\r\r\n"},
		{"whitespace line", "a\r\n \t \r\n", "a\r\n \t \r\n", "a\r\n"},
		{"inner empty kept", "a\r\n\r\n\r\nb", "a\r\n\r\n\r\nb\r\n", "a\r\n\r\n\r\nb\r\n"},
		{"unterminated wsp", "a \t", "a \t\r\n", "a\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := assertChunkInvariant(t, func() filter.Filter { return filter.NewDkimSimpleBody() }, []byte(tt.in))
			assert.Equal(t, tt.simple, string(got), "simple")

			got = assertChunkInvariant(t, func() filter.Filter { return filter.NewDkimRelaxedBody() }, []byte(tt.in))
			assert.Equal(t, tt.relaxed, string(got), "relaxed")
		})
	}
}

func TestDkimBody_Reset(t *testing.T) {
	t.Parallel()

	in := []byte("x  y\r\n\r\n\r\nz \r")
	assertResetIdempotent(t, filter.NewDkimSimpleBody(), in)
	assertResetIdempotent(t, filter.NewDkimRelaxedBody(), in)
}
