package stream

import (
	"fmt"
	"io"
	"time"
)

type flusher interface {
	Flush() error
}

type truncater interface {
	Truncate(size int64) error
}

type readDeadliner interface {
	SetReadDeadline(t time.Time) error
}

type writeDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

// wrapped adapts ordinary io types to Stream.
type wrapped struct {
	v any
	r io.Reader
	w io.Writer
	s io.Seeker
}

// Wrap adapts v to a Stream. The capabilities of the result are discovered
// from the interfaces v implements: io.Reader, io.Writer, and io.Seeker for
// the basic operations, and Flush, Truncate, Close, SetReadDeadline, and
// SetWriteDeadline methods when present. An *os.File, *bytes.Buffer, or
// *bytes.Reader may all be wrapped. If v is already a Stream, it is returned
// as is.
func Wrap(v any) (Stream, error) {
	if s, ok := v.(Stream); ok {
		return s, nil
	}

	w := &wrapped{v: v}
	w.r, _ = v.(io.Reader)
	w.w, _ = v.(io.Writer)
	w.s, _ = v.(io.Seeker)

	if w.r == nil && w.w == nil {
		return nil, fmt.Errorf("%w: %T is neither an io.Reader nor an io.Writer", ErrInvalidArgument, v)
	}

	return w, nil
}

func (w *wrapped) Read(p []byte) (int, error) {
	if w.r == nil {
		return 0, fmt.Errorf("read: %w", ErrUnsupported)
	}
	return w.r.Read(p)
}

func (w *wrapped) Write(p []byte) (int, error) {
	if w.w == nil {
		return 0, fmt.Errorf("write: %w", ErrUnsupported)
	}
	return w.w.Write(p)
}

func (w *wrapped) Seek(offset int64, whence int) (int64, error) {
	if w.s == nil {
		return 0, fmt.Errorf("seek: %w", ErrUnsupported)
	}
	return w.s.Seek(offset, whence)
}

func (w *wrapped) Close() error {
	if c, ok := w.v.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (w *wrapped) Flush() error {
	if f, ok := w.v.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// Length measures the stream by seeking to its end and back.
func (w *wrapped) Length() (int64, error) {
	if w.s == nil {
		return 0, fmt.Errorf("length: %w", ErrUnsupported)
	}

	cur, err := w.s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}

	end, err := w.s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}

	if _, err := w.s.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}

	return end, nil
}

func (w *wrapped) SetLength(n int64) error {
	t, ok := w.v.(truncater)
	if !ok {
		return fmt.Errorf("set length: %w", ErrUnsupported)
	}
	return t.Truncate(n)
}

func (w *wrapped) SetReadDeadline(t time.Time) error {
	if d, ok := w.v.(readDeadliner); ok {
		return d.SetReadDeadline(t)
	}
	return fmt.Errorf("read deadline: %w", ErrUnsupported)
}

func (w *wrapped) SetWriteDeadline(t time.Time) error {
	if d, ok := w.v.(writeDeadliner); ok {
		return d.SetWriteDeadline(t)
	}
	return fmt.Errorf("write deadline: %w", ErrUnsupported)
}

func (w *wrapped) CanRead() bool  { return w.r != nil }
func (w *wrapped) CanWrite() bool { return w.w != nil }
func (w *wrapped) CanSeek() bool  { return w.s != nil }
