package transfer

import (
	"bytes"
	"mime/quotedprintable"
)

type quotedPrintableEncoder struct {
	sink bytes.Buffer
	qpw  *quotedprintable.Writer
}

// NewQuotedPrintableEncoder returns an Encoder that transforms bytes into
// quoted-printable form. Line breaks in the input are written as CRLF and long
// lines receive soft line breaks.
func NewQuotedPrintableEncoder() Encoder {
	e := &quotedPrintableEncoder{}
	e.qpw = quotedprintable.NewWriter(&e.sink)
	return e
}

func (e *quotedPrintableEncoder) Encoding() string { return QuotedPrintable }

// EstimateOutputLength allows for every byte becoming "=XX", a soft break
// every line, and the line the writer is still holding.
func (e *quotedPrintableEncoder) EstimateOutputLength(n int) int {
	return 4*n + 128 + e.sink.Len()
}

// drain copies what the writer has produced so far into dst. Anything that
// does not fit stays in the sink for the next call.
func (e *quotedPrintableEncoder) drain(dst []byte) int {
	n := copy(dst, e.sink.Bytes())
	e.sink.Next(n)
	return n
}

func (e *quotedPrintableEncoder) Encode(dst, src []byte) int {
	// writes into a bytes.Buffer do not fail
	_, _ = e.qpw.Write(src)
	return e.drain(dst)
}

func (e *quotedPrintableEncoder) Flush(dst, src []byte) int {
	_, _ = e.qpw.Write(src)
	_ = e.qpw.Close()
	return e.drain(dst)
}

func (e *quotedPrintableEncoder) Reset() {
	e.sink.Reset()
	e.qpw = quotedprintable.NewWriter(&e.sink)
}

type qpState int

const (
	qpNormal   qpState = iota // between escapes
	qpEquals                  // saw "="
	qpHex                     // saw "=" and one hex digit
	qpEqualsCR                // saw "=\r", a soft break unless proven otherwise
	qpPadding                 // saw "=" then spaces or tabs, held in pad
)

// qpDecoder decodes both quoted-printable bodies and RFC 2047 Q-encoded
// words. The Q form additionally maps "_" to a space.
type qpDecoder struct {
	state qpState
	held  byte
	pad   []byte
	q     bool
}

// NewQuotedPrintableDecoder returns a Decoder that translates quoted-printable
// data back into binary data. Malformed escapes are passed through literally.
func NewQuotedPrintableDecoder() Decoder {
	return &qpDecoder{}
}

// NewQDecoder returns a Decoder for the RFC 2047 "Q" encoding used inside
// encoded words.
func NewQDecoder() Decoder {
	return &qpDecoder{q: true}
}

func (d *qpDecoder) Encoding() string {
	if d.q {
		return "q"
	}
	return QuotedPrintable
}

func (d *qpDecoder) EstimateOutputLength(n int) int {
	return n + 2 + len(d.pad)
}

// literalPadding writes a "=" that turned out not to start a soft break,
// along with the whitespace held after it.
func (d *qpDecoder) literalPadding(dst []byte) int {
	dst[0] = '='
	n := 1 + copy(dst[1:], d.pad)
	d.pad = d.pad[:0]
	return n
}

func (d *qpDecoder) Decode(dst, src []byte) int {
	n := 0
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch d.state {
		case qpNormal:
			switch {
			case c == '=':
				d.state = qpEquals
			case c == '_' && d.q:
				dst[n] = ' '
				n++
			default:
				dst[n] = c
				n++
			}
		case qpEquals:
			switch {
			case isHex(c):
				d.held = c
				d.state = qpHex
			case c == '\r':
				d.state = qpEqualsCR
			case c == '\n':
				d.state = qpNormal
			case c == ' ' || c == '\t':
				d.pad = append(d.pad, c)
				d.state = qpPadding
			default:
				dst[n] = '='
				n++
				d.state = qpNormal
				i-- // reconsider c
			}
		case qpPadding:
			switch c {
			case ' ', '\t':
				d.pad = append(d.pad, c)
			case '\r':
				d.pad = d.pad[:0]
				d.state = qpEqualsCR
			case '\n':
				d.pad = d.pad[:0]
				d.state = qpNormal
			default:
				n += d.literalPadding(dst[n:])
				d.state = qpNormal
				i--
			}
		case qpHex:
			if isHex(c) {
				dst[n] = unhex(d.held)<<4 | unhex(c)
				n++
				d.state = qpNormal
				continue
			}
			dst[n] = '='
			dst[n+1] = d.held
			n += 2
			d.state = qpNormal
			i-- // reconsider c
		case qpEqualsCR:
			d.state = qpNormal
			if c != '\n' {
				i--
			}
		}
	}
	return n
}

func (d *qpDecoder) Flush(dst, src []byte) int {
	n := d.Decode(dst, src)
	switch d.state {
	case qpEquals:
		dst[n] = '='
		n++
	case qpHex:
		dst[n] = '='
		dst[n+1] = d.held
		n += 2
	case qpPadding:
		n += d.literalPadding(dst[n:])
	}
	d.state = qpNormal
	return n
}

func (d *qpDecoder) Reset() {
	d.state = qpNormal
	d.held = 0
	d.pad = d.pad[:0]
}

type qEncoder struct{}

// NewQEncoder returns an Encoder for the RFC 2047 "Q" encoding. Spaces become
// "_" and anything outside letters, digits, and "!*+-/" becomes "=XX".
func NewQEncoder() Encoder {
	return qEncoder{}
}

func (qEncoder) Encoding() string { return "q" }

func (qEncoder) EstimateOutputLength(n int) int { return 3 * n }

func isQSafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '!', c == '*', c == '+', c == '-', c == '/':
		return true
	}
	return false
}

func (qEncoder) Encode(dst, src []byte) int {
	n := 0
	for _, c := range src {
		switch {
		case c == ' ':
			dst[n] = '_'
			n++
		case isQSafe(c):
			dst[n] = c
			n++
		default:
			n += putEscape(dst[n:], '=', c)
		}
	}
	return n
}

func (e qEncoder) Flush(dst, src []byte) int { return e.Encode(dst, src) }

func (qEncoder) Reset() {}
