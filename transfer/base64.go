package transfer

import (
	"encoding/base64"
)

const (
	defaultBase64LineLength = 76
	base64Alphabet          = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
)

var defaultBase64LineBreak = []byte{'\n'}

var base64Valid = func() (t [256]bool) {
	for i := 0; i < len(base64Alphabet); i++ {
		t[base64Alphabet[i]] = true
	}
	t['='] = true
	return
}()

type base64Encoder struct {
	held  [3]byte
	nheld int
	col   int
	every int
	lbr   []byte
}

// NewBase64Encoder returns an Encoder that translates bytes into base64,
// breaking lines every 76 characters. Flush terminates the final line.
func NewBase64Encoder() Encoder {
	return &base64Encoder{
		every: defaultBase64LineLength,
		lbr:   defaultBase64LineBreak,
	}
}

func (e *base64Encoder) Encoding() string { return Base64 }

func (e *base64Encoder) EstimateOutputLength(n int) int {
	chars := ((n+2)/3 + 1) * 4
	return chars + (chars/e.every+2)*len(e.lbr)
}

// emit encodes one group of up to three bytes and breaks the line when it
// reaches the configured width.
func (e *base64Encoder) emit(dst, group []byte) int {
	base64.StdEncoding.Encode(dst, group)
	n := 4
	e.col += 4
	if e.col >= e.every {
		n += copy(dst[n:], e.lbr)
		e.col = 0
	}
	return n
}

func (e *base64Encoder) Encode(dst, src []byte) int {
	n := 0
	if e.nheld > 0 {
		k := copy(e.held[e.nheld:], src)
		e.nheld += k
		src = src[k:]
		if e.nheld < len(e.held) {
			return 0
		}
		n += e.emit(dst[n:], e.held[:])
		e.nheld = 0
	}

	full := len(src) / 3 * 3
	for i := 0; i < full; i += 3 {
		n += e.emit(dst[n:], src[i:i+3])
	}
	e.nheld = copy(e.held[:], src[full:])

	return n
}

func (e *base64Encoder) Flush(dst, src []byte) int {
	n := e.Encode(dst, src)
	if e.nheld > 0 {
		n += e.emit(dst[n:], e.held[:e.nheld])
		e.nheld = 0
	}
	if e.col > 0 {
		n += copy(dst[n:], e.lbr)
		e.col = 0
	}
	return n
}

func (e *base64Encoder) Reset() {
	e.nheld = 0
	e.col = 0
}

type base64Decoder struct {
	quad [4]byte
	n    int
}

// NewBase64Decoder returns a Decoder that translates base64 back into binary
// data. Bytes outside the base64 alphabet, such as line breaks, are skipped.
func NewBase64Decoder() Decoder {
	return &base64Decoder{}
}

func (d *base64Decoder) Encoding() string { return Base64 }

func (d *base64Decoder) EstimateOutputLength(n int) int {
	return (n+3)/4*3 + 3
}

func (d *base64Decoder) decodeQuad(dst []byte) int {
	// malformed quanta are dropped rather than reported
	n, _ := base64.StdEncoding.Decode(dst, d.quad[:])
	d.n = 0
	return n
}

func (d *base64Decoder) Decode(dst, src []byte) int {
	n := 0
	for _, c := range src {
		if !base64Valid[c] {
			continue
		}
		d.quad[d.n] = c
		d.n++
		if d.n == len(d.quad) {
			n += d.decodeQuad(dst[n:])
		}
	}
	return n
}

func (d *base64Decoder) Flush(dst, src []byte) int {
	n := d.Decode(dst, src)
	switch d.n {
	case 0:
	case 1:
		// a single sextet carries no whole byte
		d.n = 0
	default:
		for i := d.n; i < len(d.quad); i++ {
			d.quad[i] = '='
		}
		n += d.decodeQuad(dst[n:])
	}
	return n
}

func (d *base64Decoder) Reset() {
	d.n = 0
}
