package transfer_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mimestream/transfer"
)

var qpEnc = []byte("=3D>?")
var qpDec = []byte{0x3d, 0x3e, 0x3f}

func TestNewQuotedPrintableDecoder(t *testing.T) {
	t.Parallel()

	r := bytes.NewReader(qpEnc)
	qpdr := transfer.NewReader(r, transfer.NewQuotedPrintableDecoder())
	db, err := io.ReadAll(qpdr)
	assert.NoError(t, err)
	assert.Equal(t, qpDec, db)
}

func TestNewQuotedPrintableEncoder(t *testing.T) {
	t.Parallel()

	w := &bytes.Buffer{}
	qpewc := transfer.NewWriter(w, transfer.NewQuotedPrintableEncoder())
	n, err := qpewc.Write(qpDec)
	assert.Equal(t, len(qpDec), n)
	assert.NoError(t, err)

	err = qpewc.Close()
	assert.NoError(t, err)

	assert.Equal(t, qpEnc, w.Bytes())
}

func TestQuotedPrintableDecoder_Chunked(t *testing.T) {
	t.Parallel()

	const enc = "caf=C3=A9 soft=\r\nbreak=\nagain =ZZ bad=4 end="
	const dec = "caf\xc3\xa9 softbreakagain =ZZ bad=4 end="

	for size := 1; size <= len(enc); size++ {
		got := decodeChunks(transfer.NewQuotedPrintableDecoder(), []byte(enc), size)
		assert.Equal(t, dec, string(got), "chunk size %d", size)
	}
}

func TestQuotedPrintableDecoder_TransportPadding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, enc, dec string
	}{
		{"crlf", "soft=  \r\nbreak", "softbreak"},
		{"lf", "soft=\t \nbreak", "softbreak"},
		{"not a break", "lit= \tx=3D", "lit= \tx="},
		{"at end", "end= \t", "end= \t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for size := 1; size <= len(tt.enc); size++ {
				got := decodeChunks(transfer.NewQuotedPrintableDecoder(), []byte(tt.enc), size)
				assert.Equal(t, tt.dec, string(got), "chunk size %d", size)
			}
		})
	}
}

func TestQEncoding(t *testing.T) {
	t.Parallel()

	const dec = "Caf\xc3\xa9 au lait? =_"
	const enc = "Caf=C3=A9_au_lait=3F_=3D=5F"

	assert.Equal(t, enc, string(encodeChunks(transfer.NewQEncoder(), []byte(dec), 3)))

	for size := 1; size <= len(enc); size++ {
		got := decodeChunks(transfer.NewQDecoder(), []byte(enc), size)
		assert.Equal(t, dec, string(got), "chunk size %d", size)
	}
}
