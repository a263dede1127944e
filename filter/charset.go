package filter

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// ErrUnknownCharset is returned by NewCharset when a charset name cannot be
// resolved to an encoding.
var ErrUnknownCharset = errors.New("unknown charset")

// charsetMidSize is the size of the UTF-8 buffer between the decoding and
// encoding halves of a Charset filter.
const charsetMidSize = 1024

// CharsetOption modifies the behavior of a Charset filter.
type CharsetOption func(f *Charset)

// StrictEncoding is a CharsetOption that makes the filter fail with an error
// when a character cannot be represented in the target charset. By default
// such characters are replaced.
func StrictEncoding() CharsetOption {
	return func(f *Charset) { f.strict = true }
}

// Charset is a filter that transcodes text from one character encoding to
// another.
type Charset struct {
	Base
	dec, enc transform.Transformer
	strict   bool
	mid      [charsetMidSize]byte
	nmid     int
}

// LookupCharset resolves a MIME charset name such as "iso-8859-1" or
// "Windows-1252" to an encoding.
func LookupCharset(name string) (encoding.Encoding, error) {
	e, err := ianaindex.MIME.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownCharset, name, err)
	}
	if e == nil {
		return nil, fmt.Errorf("%w %q: no encoding available", ErrUnknownCharset, name)
	}
	return e, nil
}

// NewCharset returns a filter that transcodes from the source charset to the
// target charset, both given by MIME charset name.
func NewCharset(source, target string, opts ...CharsetOption) (*Charset, error) {
	se, err := LookupCharset(source)
	if err != nil {
		return nil, err
	}

	te, err := LookupCharset(target)
	if err != nil {
		return nil, err
	}

	return NewCharsetEncoding(se, te, opts...), nil
}

// NewCharsetEncoding returns a filter that transcodes from source to target.
func NewCharsetEncoding(source, target encoding.Encoding, opts ...CharsetOption) *Charset {
	f := &Charset{}
	for _, opt := range opts {
		opt(f)
	}

	f.dec = source.NewDecoder()
	enc := target.NewEncoder()
	if !f.strict {
		enc = encoding.ReplaceUnsupported(enc)
	}
	f.enc = enc

	return f
}

// encodeMid moves as much of the intermediate buffer as possible into out,
// growing out when the encoder runs short of room.
func (f *Charset) encodeMid(out []byte, nout int, atEOF bool) ([]byte, int, error) {
	pending := f.mid[:f.nmid]
	for {
		nDst, nSrc, err := f.enc.Transform(out[nout:], pending, atEOF)
		nout += nDst
		pending = pending[nSrc:]

		switch {
		case errors.Is(err, transform.ErrShortDst):
			out = f.OutputBuffer(len(out)+4*len(pending)+outputAlignment, true)
			continue
		case err != nil && !errors.Is(err, transform.ErrShortSrc):
			return nil, 0, fmt.Errorf("charset encode: %w", err)
		}

		f.nmid = copy(f.mid[:], pending)
		return out, nout, nil
	}
}

func (f *Charset) convert(input []byte, flush bool) ([]byte, error) {
	out := f.OutputBuffer(2*len(input)+outputAlignment, false)
	nout := 0
	for {
		nDst, nSrc, decErr := f.dec.Transform(f.mid[f.nmid:], input, flush)
		input = input[nSrc:]
		f.nmid += nDst

		var err error
		out, nout, err = f.encodeMid(out, nout, flush && decErr == nil)
		if err != nil {
			return nil, err
		}

		switch {
		case decErr == nil:
			return out[:nout], nil
		case errors.Is(decErr, transform.ErrShortDst):
			// the intermediate buffer filled up, go around again
		case errors.Is(decErr, transform.ErrShortSrc):
			if !flush {
				f.SaveRemainingInput(input)
			}
			return out[:nout], nil
		default:
			return nil, fmt.Errorf("charset decode: %w", decErr)
		}
	}
}

func (f *Charset) Filter(input []byte) ([]byte, error) {
	return f.Run(input, false, f.convert)
}

func (f *Charset) Flush(input []byte) ([]byte, error) {
	return f.Run(input, true, f.convert)
}

func (f *Charset) Reset() {
	f.Base.Reset()
	f.dec.Reset()
	f.enc.Reset()
	f.nmid = 0
}
