package filter

import (
	"github.com/zostay/go-mimestream/transfer"
)

// Decoder is a filter that decodes a Content-transfer-encoding using a
// transfer.Decoder.
type Decoder struct {
	Base
	dec transfer.Decoder
}

// NewDecoder returns a filter that runs its input through dec.
func NewDecoder(dec transfer.Decoder) *Decoder {
	return &Decoder{dec: dec}
}

// NewDecoderFor returns a decoding filter for the named
// Content-transfer-encoding, such as "base64" or "quoted-printable".
func NewDecoderFor(cte string) (*Decoder, error) {
	dec, err := transfer.NewDecoder(cte)
	if err != nil {
		return nil, err
	}
	return NewDecoder(dec), nil
}

// Encoding returns the name of the encoding being decoded.
func (f *Decoder) Encoding() string {
	return f.dec.Encoding()
}

func (f *Decoder) Filter(input []byte) ([]byte, error) {
	out := f.OutputBuffer(f.dec.EstimateOutputLength(len(input)), false)
	return out[:f.dec.Decode(out, input)], nil
}

func (f *Decoder) Flush(input []byte) ([]byte, error) {
	out := f.OutputBuffer(f.dec.EstimateOutputLength(len(input)), false)
	return out[:f.dec.Flush(out, input)], nil
}

func (f *Decoder) Reset() {
	f.Base.Reset()
	f.dec.Reset()
}

// Encoder is a filter that applies a Content-transfer-encoding using a
// transfer.Encoder.
type Encoder struct {
	Base
	enc transfer.Encoder
}

// NewEncoder returns a filter that runs its input through enc.
func NewEncoder(enc transfer.Encoder) *Encoder {
	return &Encoder{enc: enc}
}

// NewEncoderFor returns an encoding filter for the named
// Content-transfer-encoding, such as "base64" or "quoted-printable".
func NewEncoderFor(cte string) (*Encoder, error) {
	enc, err := transfer.NewEncoder(cte)
	if err != nil {
		return nil, err
	}
	return NewEncoder(enc), nil
}

// Encoding returns the name of the encoding being applied.
func (f *Encoder) Encoding() string {
	return f.enc.Encoding()
}

func (f *Encoder) Filter(input []byte) ([]byte, error) {
	out := f.OutputBuffer(f.enc.EstimateOutputLength(len(input)), false)
	return out[:f.enc.Encode(out, input)], nil
}

func (f *Encoder) Flush(input []byte) ([]byte, error) {
	out := f.OutputBuffer(f.enc.EstimateOutputLength(len(input)), false)
	return out[:f.enc.Flush(out, input)], nil
}

func (f *Encoder) Reset() {
	f.Base.Reset()
	f.enc.Reset()
}
