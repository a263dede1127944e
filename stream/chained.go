package stream

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

type link struct {
	Stream
	leaveOpen bool
}

// Chained is a Stream that presents a list of streams as one stream, each
// following the one before it.
type Chained struct {
	links   []link
	current int
	pos     int64
	logger  *slog.Logger
	closed  bool
}

var _ Stream = (*Chained)(nil)

// NewChained returns an empty Chained stream.
func NewChained(opts ...Option) *Chained {
	o := makeOptions(opts)
	return &Chained{logger: o.logger}
}

// Add appends s to the end of the chain. When leaveOpen is true, s is not
// closed when the chain is closed.
func (c *Chained) Add(s Stream, leaveOpen bool) {
	c.links = append(c.links, link{s, leaveOpen})
}

// Len returns the number of streams in the chain.
func (c *Chained) Len() int {
	return len(c.links)
}

func (c *Chained) all(can func(Stream) bool) bool {
	if len(c.links) == 0 || c.closed {
		return false
	}
	for _, l := range c.links {
		if !can(l.Stream) {
			return false
		}
	}
	return true
}

func (c *Chained) CanRead() bool  { return c.all(Stream.CanRead) }
func (c *Chained) CanWrite() bool { return c.all(Stream.CanWrite) }
func (c *Chained) CanSeek() bool  { return c.all(Stream.CanSeek) }

func (c *Chained) advance() {
	c.current++
	c.logger.Debug("advancing to next stream", "index", c.current, "position", c.pos)
}

// Read reads across the streams of the chain in order, moving on to the next
// stream whenever one is exhausted, until p is full or every stream is.
func (c *Chained) Read(p []byte) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	if !c.CanRead() {
		return 0, fmt.Errorf("read: %w", ErrUnsupported)
	}

	n := 0
	for n < len(p) && c.current < len(c.links) {
		m, err := c.links[c.current].Read(p[n:])
		n += m
		c.pos += int64(m)

		if err != nil && !errors.Is(err, io.EOF) {
			return n, err
		}
		if m == 0 || errors.Is(err, io.EOF) {
			c.advance()
		}
	}

	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write fills each stream of the chain up to its current length before moving
// on to the next. The last stream takes whatever is left.
func (c *Chained) Write(p []byte) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	if !c.CanWrite() {
		return 0, fmt.Errorf("write: %w", ErrUnsupported)
	}

	written := 0
	for written < len(p) {
		if c.current >= len(c.links) {
			return written, io.ErrShortWrite
		}

		s := c.links[c.current].Stream
		chunk := p[written:]

		if c.current < len(c.links)-1 {
			remain, err := remaining(s)
			if err != nil {
				return written, err
			}

			if remain <= 0 {
				if err := s.Flush(); err != nil {
					return written, err
				}
				c.advance()
				continue
			}

			if int64(len(chunk)) > remain {
				chunk = chunk[:remain]
			}
		}

		m, err := s.Write(chunk)
		written += m
		c.pos += int64(m)
		if err != nil {
			return written, err
		}
		if m < len(chunk) {
			return written, io.ErrShortWrite
		}
	}

	return written, nil
}

// remaining returns the number of bytes between the position of s and its
// end.
func remaining(s Stream) (int64, error) {
	length, err := s.Length()
	if err != nil {
		return 0, err
	}

	pos, err := Position(s)
	if err != nil {
		return 0, err
	}

	return length - pos, nil
}

// Seek moves to an offset in the chain as a whole. Streams after the one
// sought to are rewound, so they are read from the start when reached.
func (c *Chained) Seek(offset int64, whence int) (int64, error) {
	if c.closed {
		return 0, ErrClosed
	}
	if whence == io.SeekCurrent && offset == 0 {
		return c.pos, nil
	}
	if !c.CanSeek() {
		return 0, fmt.Errorf("seek: %w", ErrUnsupported)
	}

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = c.pos + offset
	case io.SeekEnd:
		length, err := c.Length()
		if err != nil {
			return 0, err
		}
		abs = length + offset
	default:
		return 0, fmt.Errorf("%w: whence %d", ErrInvalidArgument, whence)
	}

	if abs < 0 {
		return 0, fmt.Errorf("%w: seek to negative offset %d", ErrOutOfBounds, abs)
	}

	idx, local := 0, abs
	for ; idx < len(c.links)-1; idx++ {
		length, err := c.links[idx].Length()
		if err != nil {
			return 0, err
		}
		if local < length {
			break
		}
		local -= length
	}

	if idx < c.current {
		last := min(c.current, len(c.links)-1)
		for i := idx + 1; i <= last; i++ {
			if _, err := c.links[i].Seek(0, io.SeekStart); err != nil {
				return 0, err
			}
		}
	}

	if _, err := c.links[idx].Seek(local, io.SeekStart); err != nil {
		return 0, err
	}

	c.current = idx
	c.pos = abs
	return abs, nil
}

// Length returns the sum of the lengths of the streams in the chain.
func (c *Chained) Length() (int64, error) {
	if c.closed {
		return 0, ErrClosed
	}

	var total int64
	for _, l := range c.links {
		n, err := l.Length()
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// SetLength always fails with ErrUnsupported, or ErrClosed once closed.
func (c *Chained) SetLength(int64) error {
	if c.closed {
		return ErrClosed
	}
	return fmt.Errorf("set length: %w", ErrUnsupported)
}

// Flush flushes every stream in the chain.
func (c *Chained) Flush() error {
	if c.closed {
		return ErrClosed
	}

	var errs []error
	for _, l := range c.links {
		errs = append(errs, l.Flush())
	}
	return errors.Join(errs...)
}

// Close closes every stream in the chain that was not added with leaveOpen.
func (c *Chained) Close() error {
	if c.closed {
		return ErrClosed
	}
	c.closed = true

	var errs []error
	for _, l := range c.links {
		if !l.leaveOpen {
			errs = append(errs, l.Close())
		}
	}
	c.links = nil
	return errors.Join(errs...)
}
