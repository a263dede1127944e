package transfer

import "io"

// writer is an internal helper that pushes written bytes through an Encoder
// on their way to the nested io.Writer.
type writer struct {
	w   io.Writer
	enc Encoder
	buf []byte
}

// NewWriter returns an io.WriteCloser that encodes everything written to it
// with enc and writes the encoded form to w. You must call Close() when you
// are finished to write out the final quantum and any trailer. Close does not
// close w.
func NewWriter(w io.Writer, enc Encoder) io.WriteCloser {
	return &writer{w: w, enc: enc}
}

func (cw *writer) grow(n int) []byte {
	if cap(cw.buf) < n {
		cw.buf = make([]byte, n)
	}
	return cw.buf[:cap(cw.buf)]
}

// Write encodes p and writes whatever output is ready.
func (cw *writer) Write(p []byte) (int, error) {
	buf := cw.grow(cw.enc.EstimateOutputLength(len(p)))
	n := cw.enc.Encode(buf, p)
	if _, err := cw.w.Write(buf[:n]); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close flushes the encoder and writes the remaining output.
func (cw *writer) Close() error {
	buf := cw.grow(cw.enc.EstimateOutputLength(0))
	n := cw.enc.Flush(buf, nil)
	_, err := cw.w.Write(buf[:n])
	return err
}
