package transfer

import (
	"errors"
	"fmt"
	"strings"
)

const (
	None            = ""                 // bytes will be left as-is
	Bit7            = "7bit"             // bytes will be left as-is
	Bit8            = "8bit"             // bytes will be left as-is
	Binary          = "binary"           // bytes will be left as-is
	QuotedPrintable = "quoted-printable" // bytes will be transformed between quoted-printable and binary data
	Base64          = "base64"           // bytes will be transformed between base64 and binary data
	UUEncode        = "x-uuencode"       // bytes will be transformed between uuencoding and binary data
)

// ErrUnknownEncoding is returned by NewEncoder and NewDecoder when no codec
// is registered for the requested Content-transfer-encoding.
var ErrUnknownEncoding = errors.New("unknown content-transfer-encoding")

// Encoder is an incremental encoder. The dst passed to Encode or Flush must be
// at least EstimateOutputLength(len(src)) bytes long. Both methods return the
// number of bytes written to dst.
type Encoder interface {
	// Encoding names the Content-transfer-encoding this encoder produces.
	Encoding() string

	// EstimateOutputLength returns an upper bound on the output produced for
	// n bytes of input, counting any bytes held over from earlier calls.
	EstimateOutputLength(n int) int

	// Encode encodes src into dst, keeping any incomplete quantum for the next
	// call.
	Encode(dst, src []byte) int

	// Flush encodes src into dst and then completes the encoding, writing any
	// held bytes, padding, and trailer.
	Flush(dst, src []byte) int

	// Reset discards all held state.
	Reset()
}

// Decoder is an incremental decoder with the same buffer contract as Encoder.
type Decoder interface {
	// Encoding names the Content-transfer-encoding this decoder consumes.
	Encoding() string

	// EstimateOutputLength returns an upper bound on the output produced for
	// n bytes of input, counting any bytes held over from earlier calls.
	EstimateOutputLength(n int) int

	// Decode decodes src into dst, keeping any incomplete quantum for the next
	// call.
	Decode(dst, src []byte) int

	// Flush decodes src into dst and then resolves anything held.
	Flush(dst, src []byte) int

	// Reset discards all held state.
	Reset()
}

// Transcoding is a pair of constructors that produce fresh codecs to
// transform to and from a transfer encoding.
type Transcoding struct {
	// Encoder returns a new Encoder, which will encode binary data into the
	// transfer encoding.
	Encoder func() Encoder

	// Decoder returns a new Decoder, which will decode the transfer encoding
	// back into binary data.
	Decoder func() Decoder
}

// AsIsTranscoder is just a shortcut to a no-op encoder/decoder.
var AsIsTranscoder = Transcoding{
	func() Encoder { return NewAsIsEncoder() },
	func() Decoder { return NewAsIsDecoder() },
}

// Transcodings defines the supported Content-transfer-encodings and how to
// handle them. It can be modified to change the global handling of transfer
// encodings. Keys are lowercase.
var Transcodings = map[string]Transcoding{
	None:   AsIsTranscoder,
	Bit7:   AsIsTranscoder,
	Bit8:   AsIsTranscoder,
	Binary: AsIsTranscoder,
	QuotedPrintable: {
		func() Encoder { return NewQuotedPrintableEncoder() },
		func() Decoder { return NewQuotedPrintableDecoder() },
	},
	Base64: {
		func() Encoder { return NewBase64Encoder() },
		func() Decoder { return NewBase64Decoder() },
	},
	UUEncode: {
		func() Encoder { return NewUUEncoder(DefaultUUMode, DefaultUUName) },
		func() Decoder { return NewUUDecoder() },
	},
	"uuencode": {
		func() Encoder { return NewUUEncoder(DefaultUUMode, DefaultUUName) },
		func() Decoder { return NewUUDecoder() },
	},
	"x-uue": {
		func() Encoder { return NewUUEncoder(DefaultUUMode, DefaultUUName) },
		func() Decoder { return NewUUDecoder() },
	},
}

func lookup(cte string) (Transcoding, error) {
	tc, hasCode := Transcodings[strings.ToLower(strings.TrimSpace(cte))]
	if !hasCode {
		return Transcoding{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, cte)
	}
	return tc, nil
}

// NewEncoder returns a fresh Encoder for the named Content-transfer-encoding.
// The name is matched case-insensitively.
func NewEncoder(cte string) (Encoder, error) {
	tc, err := lookup(cte)
	if err != nil {
		return nil, err
	}
	return tc.Encoder(), nil
}

// NewDecoder returns a fresh Decoder for the named Content-transfer-encoding.
// The name is matched case-insensitively.
func NewDecoder(cte string) (Decoder, error) {
	tc, err := lookup(cte)
	if err != nil {
		return nil, err
	}
	return tc.Decoder(), nil
}
