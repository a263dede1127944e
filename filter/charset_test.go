package filter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/zostay/go-mimestream/filter"
)

func TestCharset_Latin1ToUTF8(t *testing.T) {
	t.Parallel()

	newFilter := func() filter.Filter {
		f, err := filter.NewCharset("ISO-8859-1", "utf-8")
		require.NoError(t, err)
		return f
	}

	got := assertChunkInvariant(t, newFilter, []byte("caf\xe9 cr\xe8me br\xfbl\xe9e\n"))
	assert.Equal(t, "café crème brûlée\n", string(got))
}

func TestCharset_UTF8ToLatin1(t *testing.T) {
	t.Parallel()

	newFilter := func() filter.Filter {
		return filter.NewCharsetEncoding(unicode.UTF8, charmap.ISO8859_1)
	}

	// every two byte sequence gets split somewhere along the way
	got := assertChunkInvariant(t, newFilter, []byte("café crème brûlée\n"))
	assert.Equal(t, "caf\xe9 cr\xe8me br\xfbl\xe9e\n", string(got))

	f := newFilter()
	out, err := f.Filter([]byte("caf\xc3"))
	require.NoError(t, err)
	assert.Equal(t, "caf", string(out))

	out, err = f.Flush([]byte("\xa9"))
	require.NoError(t, err)
	assert.Equal(t, "\xe9", string(out))
}

func TestCharset_LargeInput(t *testing.T) {
	t.Parallel()

	// larger than the intermediate buffer, and growing on the way out
	in := strings.Repeat("\xe9\xe8\xfb", 2000)
	want := strings.Repeat("éèû", 2000)

	f, err := filter.NewCharset("ISO-8859-1", "UTF-8")
	require.NoError(t, err)
	assert.Equal(t, want, runString(t, f, in))

	f.Reset()
	assert.Equal(t, want, runString(t, f, in))
}

func TestCharset_Unsupported(t *testing.T) {
	t.Parallel()

	f, err := filter.NewCharset("utf-8", "iso-8859-1")
	require.NoError(t, err)

	out := runString(t, f, "5€ each")
	assert.Len(t, out, 7)
	assert.True(t, strings.HasPrefix(out, "5"))
	assert.True(t, strings.HasSuffix(out, " each"))

	strict, err := filter.NewCharset("utf-8", "iso-8859-1", filter.StrictEncoding())
	require.NoError(t, err)

	_, err = strict.Flush([]byte("5€ each"))
	assert.Error(t, err)
}

func TestCharset_UnknownCharset(t *testing.T) {
	t.Parallel()

	_, err := filter.NewCharset("klingon", "utf-8")
	assert.ErrorIs(t, err, filter.ErrUnknownCharset)

	_, err = filter.NewCharset("utf-8", "x-no-such-thing")
	assert.ErrorIs(t, err, filter.ErrUnknownCharset)
}

func TestCharset_Reset(t *testing.T) {
	t.Parallel()

	f := filter.NewCharsetEncoding(unicode.UTF8, charmap.Windows1252)
	assertResetIdempotent(t, f, []byte("naïve café “quotes”"))
}
