package transfer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mimestream/transfer"
)

func TestUUEncoder(t *testing.T) {
	t.Parallel()

	got := encodeChunks(transfer.NewUUEncoder(0o644, "cat.txt"), []byte("Cat"), 1)
	assert.Equal(t, "begin 644 cat.txt\n#0V%T\n`\nend\n", string(got))
}

func TestUUDecoder(t *testing.T) {
	t.Parallel()

	const enc = "leading junk\r\nbegin 644 cat.txt\r\n#0V%T\r\n`\r\nend\r\ntrailing junk\r\n"
	for size := 1; size <= len(enc); size++ {
		got := decodeChunks(transfer.NewUUDecoder(), []byte(enc), size)
		assert.Equal(t, "Cat", string(got), "chunk size %d", size)
	}
}

func TestUUDecoder_Reset(t *testing.T) {
	t.Parallel()

	d := transfer.NewUUDecoder()
	first := decodeChunks(d, []byte("begin 644 a\n#0V%T\n`\nend\n"), 4)
	d.Reset()
	second := decodeChunks(d, []byte("begin 644 a\n#0V%T\n`\nend\n"), 4)
	assert.Equal(t, "Cat", string(first))
	assert.Equal(t, first, second)
}
