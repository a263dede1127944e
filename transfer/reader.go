package transfer

import (
	"errors"
	"io"
)

const defaultReadSize = 4096

// reader pulls encoded bytes from r and hands out the decoded form.
type reader struct {
	r       io.Reader
	dec     Decoder
	in      []byte
	out     []byte
	pending []byte
	err     error
}

// NewReader returns an io.Reader that reads encoded bytes from r and returns
// them decoded with dec. The decoder is flushed when r reports io.EOF.
func NewReader(r io.Reader, dec Decoder) io.Reader {
	return &reader{
		r:   r,
		dec: dec,
		in:  make([]byte, defaultReadSize),
	}
}

func (dr *reader) Read(p []byte) (int, error) {
	for len(dr.pending) == 0 {
		if dr.err != nil {
			return 0, dr.err
		}

		n, err := dr.r.Read(dr.in)
		if want := dr.dec.EstimateOutputLength(n); cap(dr.out) < want {
			dr.out = make([]byte, want)
		}
		out := dr.out[:cap(dr.out)]

		var m int
		switch {
		case errors.Is(err, io.EOF):
			m = dr.dec.Flush(out, dr.in[:n])
			dr.err = io.EOF
		default:
			m = dr.dec.Decode(out, dr.in[:n])
			dr.err = err
		}
		dr.pending = out[:m]
	}

	n := copy(p, dr.pending)
	dr.pending = dr.pending[n:]
	return n, nil
}
