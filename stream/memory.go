package stream

import (
	"fmt"
	"io"
)

// Memory is a Stream that keeps its bytes in memory. It supports every
// operation. Writing past the end grows it.
type Memory struct {
	buf    []byte
	pos    int64
	closed bool
}

var _ Stream = (*Memory)(nil)

// NewMemory returns a Memory stream holding b, positioned at the start. The
// stream takes ownership of b.
func NewMemory(b []byte) *Memory {
	return &Memory{buf: b}
}

// Bytes returns the contents of the stream. The slice aliases the stream's
// storage until the next write.
func (m *Memory) Bytes() []byte {
	return m.buf
}

func (m *Memory) Read(p []byte) (int, error) {
	if m.closed {
		return 0, ErrClosed
	}
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *Memory) Write(p []byte) (int, error) {
	if m.closed {
		return 0, ErrClosed
	}
	end := m.pos + int64(len(p))
	if end > int64(len(m.buf)) {
		m.grow(end)
	}
	n := copy(m.buf[m.pos:], p)
	m.pos += int64(n)
	return n, nil
}

// grow extends the buffer to n bytes, zero filling the new space.
func (m *Memory) grow(n int64) {
	if n <= int64(cap(m.buf)) {
		old := len(m.buf)
		m.buf = m.buf[:n]
		clear(m.buf[old:])
		return
	}
	buf := make([]byte, n, max(n, 2*int64(cap(m.buf))))
	copy(buf, m.buf)
	m.buf = buf
}

func (m *Memory) Seek(offset int64, whence int) (int64, error) {
	if m.closed {
		return 0, ErrClosed
	}

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = m.pos + offset
	case io.SeekEnd:
		abs = int64(len(m.buf)) + offset
	default:
		return 0, fmt.Errorf("%w: whence %d", ErrInvalidArgument, whence)
	}

	if abs < 0 {
		return 0, fmt.Errorf("%w: seek to negative offset %d", ErrOutOfBounds, abs)
	}
	m.pos = abs
	return abs, nil
}

func (m *Memory) Close() error {
	if m.closed {
		return ErrClosed
	}
	m.closed = true
	return nil
}

func (m *Memory) Flush() error {
	if m.closed {
		return ErrClosed
	}
	return nil
}

func (m *Memory) Length() (int64, error) {
	if m.closed {
		return 0, ErrClosed
	}
	return int64(len(m.buf)), nil
}

func (m *Memory) SetLength(n int64) error {
	if m.closed {
		return ErrClosed
	}
	if n < 0 {
		return fmt.Errorf("%w: negative length %d", ErrInvalidArgument, n)
	}
	if n > int64(len(m.buf)) {
		m.grow(n)
		return nil
	}
	m.buf = m.buf[:n]
	return nil
}

func (m *Memory) CanRead() bool  { return !m.closed }
func (m *Memory) CanWrite() bool { return !m.closed }
func (m *Memory) CanSeek() bool  { return !m.closed }
