package transfer

import (
	"bytes"
	"fmt"
)

const (
	// DefaultUUMode is the file mode written on the begin line by the
	// registered x-uuencode encoder.
	DefaultUUMode = 0o644

	// DefaultUUName is the file name written on the begin line by the
	// registered x-uuencode encoder.
	DefaultUUName = "noname"

	uuLineBytes   = 45
	uuMaxLineSize = 1024
)

var (
	uuBegin = []byte("begin ")
	uuEnd   = []byte("end")
	uuTail  = []byte("`\nend\n")
)

func uuChar(b byte) byte {
	b &= 0x3f
	if b == 0 {
		return '`'
	}
	return b + 0x20
}

func uuValue(c byte) byte {
	return (c - 0x20) & 0x3f
}

type uuEncoder struct {
	mode  uint32
	name  string
	began bool
	line  [uuLineBytes]byte
	nline int
}

// NewUUEncoder returns an Encoder that writes a uuencoded block: a begin line
// naming the file, 45 bytes per encoded line, and the closing "`" and "end"
// lines on Flush.
func NewUUEncoder(mode uint32, name string) Encoder {
	return &uuEncoder{mode: mode, name: name}
}

func (e *uuEncoder) Encoding() string { return UUEncode }

func (e *uuEncoder) EstimateOutputLength(n int) int {
	lines := (n+e.nline)/uuLineBytes + 1
	return len(e.name) + 32 + lines*(2+uuLineBytes/3*4) + len(uuTail)
}

func (e *uuEncoder) begin(dst []byte) int {
	if e.began {
		return 0
	}
	e.began = true
	return copy(dst, fmt.Sprintf("begin %o %s\n", e.mode, e.name))
}

func (e *uuEncoder) encodeLine(dst []byte, line []byte) int {
	dst[0] = uuChar(byte(len(line)))
	n := 1
	for i := 0; i < len(line); i += 3 {
		var b [3]byte
		copy(b[:], line[i:])
		dst[n] = uuChar(b[0] >> 2)
		dst[n+1] = uuChar(b[0]<<4 | b[1]>>4)
		dst[n+2] = uuChar(b[1]<<2 | b[2]>>6)
		dst[n+3] = uuChar(b[2])
		n += 4
	}
	dst[n] = '\n'
	return n + 1
}

func (e *uuEncoder) Encode(dst, src []byte) int {
	n := e.begin(dst)
	for len(src) > 0 {
		k := copy(e.line[e.nline:], src)
		e.nline += k
		src = src[k:]
		if e.nline == uuLineBytes {
			n += e.encodeLine(dst[n:], e.line[:])
			e.nline = 0
		}
	}
	return n
}

func (e *uuEncoder) Flush(dst, src []byte) int {
	n := e.Encode(dst, src)
	if e.nline > 0 {
		n += e.encodeLine(dst[n:], e.line[:e.nline])
		e.nline = 0
	}
	n += copy(dst[n:], uuTail)
	return n
}

func (e *uuEncoder) Reset() {
	e.began = false
	e.nline = 0
}

type uuState int

const (
	uuSeekBegin uuState = iota
	uuData
	uuDone
)

type uuDecoder struct {
	state uuState
	line  []byte
}

// NewUUDecoder returns a Decoder for uuencoded blocks. Everything before the
// begin line and after the end line is discarded.
func NewUUDecoder() Decoder {
	return &uuDecoder{line: make([]byte, 0, 128)}
}

func (d *uuDecoder) Encoding() string { return UUEncode }

func (d *uuDecoder) EstimateOutputLength(n int) int {
	return n + len(d.line) + 3
}

func (d *uuDecoder) decodeLine(dst []byte) int {
	line := bytes.TrimRight(d.line, "\r")
	d.line = d.line[:0]

	switch d.state {
	case uuSeekBegin:
		if bytes.HasPrefix(line, uuBegin) {
			d.state = uuData
		}
		return 0
	case uuDone:
		return 0
	}

	if bytes.Equal(line, uuEnd) {
		d.state = uuDone
		return 0
	}
	if len(line) == 0 {
		return 0
	}

	want := int(uuValue(line[0]))
	line = line[1:]
	n := 0
	for i := 0; n < want && i < len(line); i += 4 {
		var q [4]byte
		for j := 0; j < 4; j++ {
			if i+j < len(line) {
				q[j] = uuValue(line[i+j])
			}
		}
		group := [3]byte{
			q[0]<<2 | q[1]>>4,
			q[1]<<4 | q[2]>>2,
			q[2]<<6 | q[3],
		}
		k := want - n
		if k > 3 {
			k = 3
		}
		n += copy(dst[n:], group[:k])
	}
	return n
}

func (d *uuDecoder) Decode(dst, src []byte) int {
	n := 0
	for _, c := range src {
		if c == '\n' {
			n += d.decodeLine(dst[n:])
			continue
		}
		if d.state == uuDone {
			continue
		}
		if len(d.line) < uuMaxLineSize {
			d.line = append(d.line, c)
		}
	}
	return n
}

func (d *uuDecoder) Flush(dst, src []byte) int {
	n := d.Decode(dst, src)
	if len(d.line) > 0 {
		n += d.decodeLine(dst[n:])
	}
	return n
}

func (d *uuDecoder) Reset() {
	d.state = uuSeekBegin
	d.line = d.line[:0]
}
