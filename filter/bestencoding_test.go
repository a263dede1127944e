package filter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mimestream/filter"
	"github.com/zostay/go-mimestream/transfer"
)

func bestEncodings(t *testing.T, in string) [3]string {
	t.Helper()

	f := filter.NewBestEncoding()
	out := run(t, f, bytewise([]byte(in))...)
	require.Equal(t, in, string(out))

	var got [3]string
	for i, c := range []filter.Constraint{filter.SevenBit, filter.EightBit, filter.NoConstraint} {
		enc, err := f.BestEncoding(c, filter.DefaultMaxLineLength)
		require.NoError(t, err)
		got[i] = enc
	}
	return got
}

func TestBestEncoding(t *testing.T) {
	t.Parallel()

	latin := "Le café est très bon, à mon avis, and that is all.\n"
	long := strings.TrimSuffix(latin, "\n") + strings.Repeat(" more words", 5) + "\n"

	tests := []struct {
		name string
		in   string
		want [3]string // SevenBit, EightBit, NoConstraint
	}{
		{
			"ascii",
			"Plain old text.\r\nNothing to see.\r\n",
			[3]string{transfer.Bit7, transfer.Bit7, transfer.Bit7},
		},
		{
			"from line",
			"Dear sir,\nFrom what I hear\nall is well.\n",
			[3]string{transfer.QuotedPrintable, transfer.QuotedPrintable, transfer.QuotedPrintable},
		},
		{
			"from at start",
			"From here\n",
			[3]string{transfer.QuotedPrintable, transfer.QuotedPrintable, transfer.QuotedPrintable},
		},
		{
			"short latin",
			latin,
			[3]string{transfer.QuotedPrintable, transfer.Bit8, transfer.Bit8},
		},
		{
			"long latin",
			latin + long,
			[3]string{transfer.QuotedPrintable, transfer.QuotedPrintable, transfer.QuotedPrintable},
		},
		{
			"long ascii",
			strings.Repeat("x", 79) + "\n",
			[3]string{transfer.QuotedPrintable, transfer.QuotedPrintable, transfer.QuotedPrintable},
		},
		{
			"long unterminated",
			strings.Repeat("x", 79),
			[3]string{transfer.QuotedPrintable, transfer.QuotedPrintable, transfer.QuotedPrintable},
		},
		{
			"crlf not counted",
			strings.Repeat("x", 78) + "\r\n",
			[3]string{transfer.Bit7, transfer.Bit7, transfer.Bit7},
		},
		{
			"nul",
			"a\x00b\n",
			[3]string{transfer.Base64, transfer.Base64, transfer.Binary},
		},
		{
			"mostly 8bit",
			"\xff\xfe\xfd\xfc abc\n",
			[3]string{transfer.Base64, transfer.Bit8, transfer.Bit8},
		},
		{
			"nul and long",
			"\x00" + strings.Repeat("x", 100) + "\n",
			[3]string{transfer.Base64, transfer.Base64, transfer.Base64},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, bestEncodings(t, tt.in))
		})
	}
}

func TestBestEncoding_MaxLineLength(t *testing.T) {
	t.Parallel()

	f := filter.NewBestEncoding()
	_, err := f.Flush([]byte(strings.Repeat("x", 100) + "\n"))
	require.NoError(t, err)

	enc, err := f.BestEncoding(filter.SevenBit, 100)
	assert.NoError(t, err)
	assert.Equal(t, transfer.Bit7, enc)

	enc, err = f.BestEncoding(filter.SevenBit, 99)
	assert.NoError(t, err)
	assert.Equal(t, transfer.QuotedPrintable, enc)

	for _, n := range []int{0, 59, 999, -1} {
		_, err := f.BestEncoding(filter.SevenBit, n)
		assert.ErrorIs(t, err, filter.ErrInvalidArgument, "max line length %d", n)
	}

	_, err = f.BestEncoding(filter.Constraint(42), filter.DefaultMaxLineLength)
	assert.ErrorIs(t, err, filter.ErrInvalidArgument)
}

func TestBestEncoding_Reset(t *testing.T) {
	t.Parallel()

	f := filter.NewBestEncoding()
	run(t, f, []byte("From \x00\xff\n"))

	f.Reset()
	run(t, f, []byte("hello\n"))

	enc, err := f.BestEncoding(filter.NoConstraint, filter.DefaultMaxLineLength)
	assert.NoError(t, err)
	assert.Equal(t, transfer.Bit7, enc)
}
