package transfer_test

import (
	"github.com/zostay/go-mimestream/transfer"
)

// encodeChunks feeds data to enc size bytes at a time and then flushes.
func encodeChunks(enc transfer.Encoder, data []byte, size int) []byte {
	var out []byte
	for len(data) > size {
		buf := make([]byte, enc.EstimateOutputLength(size))
		n := enc.Encode(buf, data[:size])
		out = append(out, buf[:n]...)
		data = data[size:]
	}
	buf := make([]byte, enc.EstimateOutputLength(len(data)))
	n := enc.Flush(buf, data)
	return append(out, buf[:n]...)
}

// decodeChunks feeds data to dec size bytes at a time and then flushes.
func decodeChunks(dec transfer.Decoder, data []byte, size int) []byte {
	var out []byte
	for len(data) > size {
		buf := make([]byte, dec.EstimateOutputLength(size))
		n := dec.Decode(buf, data[:size])
		out = append(out, buf[:n]...)
		data = data[size:]
	}
	buf := make([]byte, dec.EstimateOutputLength(len(data)))
	n := dec.Flush(buf, data)
	return append(out, buf[:n]...)
}
