package filter_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mimestream/filter"
)

// run feeds each chunk to f in turn, flushes, and returns the concatenated
// output.
func run(t *testing.T, f filter.Filter, chunks ...[]byte) []byte {
	t.Helper()

	var out []byte
	for _, c := range chunks {
		b, err := f.Filter(c)
		require.NoError(t, err)
		out = append(out, b...)
	}

	b, err := f.Flush(nil)
	require.NoError(t, err)
	return append(out, b...)
}

// runString is run with a single chunk.
func runString(t *testing.T, f filter.Filter, in string) string {
	t.Helper()
	return string(run(t, f, []byte(in)))
}

// bytewise splits in into single-byte chunks.
func bytewise(in []byte) [][]byte {
	chunks := make([][]byte, len(in))
	for i := range in {
		chunks[i] = in[i : i+1]
	}
	return chunks
}

// assertChunkInvariant checks that a filter built by newFilter produces the
// same output for in as a single chunk, as single bytes, and split in two at
// every offset. It returns the single-chunk output.
func assertChunkInvariant(t *testing.T, newFilter func() filter.Filter, in []byte) []byte {
	t.Helper()

	want := run(t, newFilter(), in)

	got := run(t, newFilter(), bytewise(in)...)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("byte at a time output differs (-whole +bytewise):\n%s", diff)
	}

	for i := 0; i <= len(in); i++ {
		got := run(t, newFilter(), in[:i], in[i:])
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("split at %d output differs (-whole +split):\n%s", i, diff)
		}
	}

	return want
}

// assertResetIdempotent checks that f produces the same output for in after a
// Reset, including a Reset that abandons a stream part way through.
func assertResetIdempotent(t *testing.T, f filter.Filter, in []byte) {
	t.Helper()

	first := run(t, f, in)

	f.Reset()
	_, err := f.Filter(in[:len(in)/2])
	require.NoError(t, err)

	f.Reset()
	second := run(t, f, in)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("output after Reset differs (-first +second):\n%s", diff)
	}
}
