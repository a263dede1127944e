package transfer

import "encoding/hex"

const upperHex = "0123456789ABCDEF"

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	var b [1]byte
	_, _ = hex.Decode(b[:], []byte{'0', c})
	return b[0]
}

// putEscape writes c as the given escape character followed by two uppercase
// hex digits.
func putEscape(dst []byte, esc, c byte) int {
	dst[0] = esc
	dst[1] = upperHex[c>>4]
	dst[2] = upperHex[c&0x0f]
	return 3
}

// isAttributeChar reports whether c may appear unescaped in an RFC 2231
// parameter value.
func isAttributeChar(c byte) bool {
	if c <= 0x20 || c >= 0x7f {
		return false
	}
	switch c {
	case '*', '\'', '%', '(', ')', '<', '>', '@', ',', ';', ':', '\\', '"', '/', '[', ']', '?', '=':
		return false
	}
	return true
}

type hexEncoder struct{}

// NewHexEncoder returns an Encoder for the RFC 2231 "%XX" encoding used in
// extended MIME parameter values.
func NewHexEncoder() Encoder {
	return hexEncoder{}
}

func (hexEncoder) Encoding() string { return "hex" }

func (hexEncoder) EstimateOutputLength(n int) int { return 3 * n }

func (hexEncoder) Encode(dst, src []byte) int {
	n := 0
	for _, c := range src {
		if isAttributeChar(c) {
			dst[n] = c
			n++
			continue
		}
		n += putEscape(dst[n:], '%', c)
	}
	return n
}

func (e hexEncoder) Flush(dst, src []byte) int { return e.Encode(dst, src) }

func (hexEncoder) Reset() {}

type hexDecoder struct {
	held  [2]byte
	nheld int
}

// NewHexDecoder returns a Decoder for RFC 2231 "%XX" sequences. Malformed
// sequences are passed through literally.
func NewHexDecoder() Decoder {
	return &hexDecoder{}
}

func (d *hexDecoder) Encoding() string { return "hex" }

func (d *hexDecoder) EstimateOutputLength(n int) int { return n + 2 }

func (d *hexDecoder) Decode(dst, src []byte) int {
	n := 0
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch d.nheld {
		case 0:
			if c == '%' {
				d.held[0] = c
				d.nheld = 1
				continue
			}
			dst[n] = c
			n++
		case 1:
			if isHex(c) {
				d.held[1] = c
				d.nheld = 2
				continue
			}
			dst[n] = '%'
			n++
			d.nheld = 0
			i--
		case 2:
			d.nheld = 0
			if isHex(c) {
				dst[n] = unhex(d.held[1])<<4 | unhex(c)
				n++
				continue
			}
			dst[n] = '%'
			dst[n+1] = d.held[1]
			n += 2
			i--
		}
	}
	return n
}

func (d *hexDecoder) Flush(dst, src []byte) int {
	n := d.Decode(dst, src)
	n += copy(dst[n:], d.held[:d.nheld])
	d.nheld = 0
	return n
}

func (d *hexDecoder) Reset() {
	d.nheld = 0
}
