package filter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mimestream/filter"
)

const fromText = "This is a message written with\nFrom (like mbox) lines in it.\nFrom line to line.\n"

func TestArmoredFrom_SplitMarker(t *testing.T) {
	t.Parallel()

	in := []byte(fromText)
	split := strings.Index(fromText, "From") + 3

	f := filter.NewArmoredFrom()
	out := run(t, f, in[:split], in[split:])
	assert.Equal(t,
		"This is a message written with\n=46rom (like mbox) lines in it.\n=46rom line to line.\n",
		string(out))
}

func TestMboxFrom_SplitMarker(t *testing.T) {
	t.Parallel()

	in := []byte(fromText)
	split := strings.Index(fromText, "From") + 3

	f := filter.NewMboxFrom()
	out := run(t, f, in[:split], in[split:])
	assert.Equal(t,
		"This is a message written with\n>From (like mbox) lines in it.\n>From line to line.\n",
		string(out))
}

func TestFrom_Cases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, in, mbox, armored string
	}{
		{"empty", "", "", ""},
		{"start of stream", "From me\n", ">From me\n", "=46rom me\n"},
		{"mid line", "say From here\n", "say From here\n", "say From here\n"},
		{"no space", "Fromage\n", "Fromage\n", "Fromage\n"},
		{"partial at end", "x\nFrom", "x\nFrom", "x\nFrom"},
		{"short line", "Fr\nFrom a\n", "Fr\n>From a\n", "Fr\n=46rom a\n"},
		{"already munged", ">From a\n", ">From a\n", ">From a\n"},
		{"crlf", "a\r\nFrom b\r\n", "a\r\n>From b\r\n", "a\r\n=46rom b\r\n"},
		{"empty lines", "\n\nFrom \n", "\n\n>From \n", "\n\n=46rom \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := assertChunkInvariant(t, func() filter.Filter { return filter.NewMboxFrom() }, []byte(tt.in))
			assert.Equal(t, tt.mbox, string(got), "mbox")

			got = assertChunkInvariant(t, func() filter.Filter { return filter.NewArmoredFrom() }, []byte(tt.in))
			assert.Equal(t, tt.armored, string(got), "armored")
		})
	}
}

func TestFrom_ChunkInvariance(t *testing.T) {
	t.Parallel()

	in := []byte(fromText + "From\nFrom \nFro\n" + fromText)
	assertChunkInvariant(t, func() filter.Filter { return filter.NewMboxFrom() }, in)
	assertChunkInvariant(t, func() filter.Filter { return filter.NewArmoredFrom() }, in)
}

func TestFrom_ZeroCopy(t *testing.T) {
	t.Parallel()

	in := []byte("nothing to see here\nmove along\n")
	f := filter.NewMboxFrom()
	out, err := f.Filter(in)
	assert.NoError(t, err)
	assert.Same(t, &in[0], &out[0])
}

func TestFrom_Reset(t *testing.T) {
	t.Parallel()

	assertResetIdempotent(t, filter.NewMboxFrom(), []byte(fromText))
	assertResetIdempotent(t, filter.NewArmoredFrom(), []byte(fromText))

	// a held partial marker must not survive a reset
	f := filter.NewMboxFrom()
	out, err := f.Filter([]byte("mid line\nFro"))
	assert.NoError(t, err)
	assert.Equal(t, "mid line\n", string(out))

	f.Reset()
	assert.Equal(t, "m From\n", runString(t, f, "m From\n"))
}
