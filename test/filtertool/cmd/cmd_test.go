package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mimestream/filter"
)

func TestNewFilter(t *testing.T) {
	for _, u := range filterUsage {
		desc := u
		switch u {
		case "charset:<from>:<to>[:strict]":
			desc = "charset:iso-8859-1:utf-8:strict"
		case "decode:<encoding>", "encode:<encoding>":
			desc = u[:6] + ":base64"
		}

		f, err := newFilter(desc)
		require.NoError(t, err, desc)
		assert.NotNil(t, f, desc)
	}

	_, err := newFilter("rot13")
	assert.ErrorIs(t, err, errUnknownFilter)

	_, err = newFilter("mbox-from:x")
	assert.ErrorIs(t, err, errBadArguments)

	_, err = newFilter("charset:utf-8")
	assert.ErrorIs(t, err, errBadArguments)

	_, err = newFilter("charset:utf-8:klingon")
	assert.ErrorIs(t, err, filter.ErrUnknownCharset)
}

// resetFlags puts every flag back to its default, since flag values persist
// between runs of the same command tree.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()

	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			require.NoError(t, sv.Replace(nil))
		} else {
			require.NoError(t, f.Value.Set(f.DefValue))
		}
		f.Changed = false
	}

	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(t, sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(t, rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPipe(t *testing.T) {
	a := writeFile(t, "a.txt", "first\nFrom a\n")
	b := writeFile(t, "b.txt", "From b   \n")

	out, err := execute(t, "pipe", "-f", "trailing-whitespace,mbox-from", a, b)
	require.NoError(t, err)
	assert.Equal(t, "first\n>From a\n>From b\n", out)
}

func TestPipe_Window(t *testing.T) {
	a := writeFile(t, "a.txt", "0123456789")

	out, err := execute(t, "pipe", "--start", "2", "--end", "5", "-f", "anonymize", a)
	require.NoError(t, err)
	assert.Equal(t, "xxx", out)
}

func TestBestEncoding(t *testing.T) {
	a := writeFile(t, "a.txt", "plain text\n")

	out, err := execute(t, "best-encoding", a)
	require.NoError(t, err)
	assert.Equal(t, a+": 7bit=7bit 8bit=7bit none=7bit\n", out)
}

func TestChunks(t *testing.T) {
	a := writeFile(t, "a.txt", "Hello\r\nFrom here \r\nto there\r\n")

	out, err := execute(t, "chunks", "--rounds", "3", "-f", "dos2unix,trailing-whitespace,armored-from,encode:base64", a)
	require.NoError(t, err)
	assert.Equal(t, "ok   "+a+"\n", out)
}
