package stream

import (
	"fmt"
	"io"
	"log/slog"
)

// Bounded is a Stream presenting the window [start, end) of a source stream
// without copying it. Offsets within a Bounded stream are relative to start.
//
// Several Bounded streams may share one source. Before every read or write
// the source is moved back to where this window expects it, but only one of
// them may be in use at a time.
type Bounded struct {
	source    Stream
	start     int64
	end       int64
	pos       int64
	logger    *slog.Logger
	leaveOpen bool
	closed    bool
}

var _ Stream = (*Bounded)(nil)

// NewBounded returns a window onto source from start up to, but not
// including, end. When end is Unbounded the window extends to the end of the
// source, however long it grows. The source must be seekable.
func NewBounded(source Stream, start, end int64, opts ...Option) (*Bounded, error) {
	if start < 0 {
		return nil, fmt.Errorf("%w: negative start %d", ErrInvalidArgument, start)
	}
	if end != Unbounded && end < start {
		return nil, fmt.Errorf("%w: end %d before start %d", ErrInvalidArgument, end, start)
	}
	if !source.CanSeek() {
		return nil, fmt.Errorf("%w: source cannot seek", ErrInvalidArgument)
	}

	o := makeOptions(opts)
	return &Bounded{
		source:    source,
		start:     start,
		end:       end,
		logger:    o.logger,
		leaveOpen: o.leaveOpen,
	}, nil
}

// Bounds returns the start and end of the window within the source. The end
// is Unbounded if the window has no end.
func (b *Bounded) Bounds() (start, end int64) {
	return b.start, b.end
}

// sync moves the source to start+pos if something else has moved it.
func (b *Bounded) sync() error {
	want := b.start + b.pos
	got, err := b.source.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}

	if got == want {
		return nil
	}

	sourceMoved(b.logger, want, got)
	_, err = b.source.Seek(want, io.SeekStart)
	return err
}

func (b *Bounded) Read(p []byte) (int, error) {
	if b.closed {
		return 0, ErrClosed
	}

	if b.end != Unbounded {
		remain := b.end - (b.start + b.pos)
		if remain <= 0 {
			return 0, io.EOF
		}
		if int64(len(p)) > remain {
			p = p[:remain]
		}
	}

	if err := b.sync(); err != nil {
		return 0, err
	}

	n, err := b.source.Read(p)
	b.pos += int64(n)
	return n, err
}

// Write writes p to the source. A write that would cross the end of the
// window fails with ErrOutOfBounds and writes nothing.
func (b *Bounded) Write(p []byte) (int, error) {
	if b.closed {
		return 0, ErrClosed
	}

	if b.end != Unbounded && b.start+b.pos+int64(len(p)) > b.end {
		return 0, fmt.Errorf("%w: writing %d bytes at %d crosses the end at %d",
			ErrOutOfBounds, len(p), b.pos, b.end-b.start)
	}

	if err := b.sync(); err != nil {
		return 0, err
	}

	n, err := b.source.Write(p)
	b.pos += int64(n)
	return n, err
}

// Seek moves within the window. Seeking before the start or past the end of
// the window fails with ErrOutOfBounds.
func (b *Bounded) Seek(offset int64, whence int) (int64, error) {
	if b.closed {
		return 0, ErrClosed
	}

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = b.start + offset
	case io.SeekCurrent:
		abs = b.start + b.pos + offset
	case io.SeekEnd:
		end := b.end
		if end == Unbounded {
			var err error
			if end, err = b.source.Length(); err != nil {
				return 0, err
			}
		}
		abs = end + offset
	default:
		return 0, fmt.Errorf("%w: whence %d", ErrInvalidArgument, whence)
	}

	if abs < b.start {
		return 0, fmt.Errorf("%w: seek to %d before the start", ErrOutOfBounds, abs-b.start)
	}
	if b.end != Unbounded && abs > b.end {
		return 0, fmt.Errorf("%w: seek to %d past the end at %d", ErrOutOfBounds, abs-b.start, b.end-b.start)
	}

	if _, err := b.source.Seek(abs, io.SeekStart); err != nil {
		return 0, err
	}

	b.pos = abs - b.start
	return b.pos, nil
}

// Length returns the length of the window. An unbounded window is as long as
// the part of the source after start.
func (b *Bounded) Length() (int64, error) {
	if b.closed {
		return 0, ErrClosed
	}

	if b.end != Unbounded {
		return b.end - b.start, nil
	}

	n, err := b.source.Length()
	if err != nil {
		return 0, err
	}
	return max(n-b.start, 0), nil
}

// SetLength moves the end of the window to start+n, growing the source first
// if it is shorter than that.
func (b *Bounded) SetLength(n int64) error {
	if b.closed {
		return ErrClosed
	}
	if n < 0 {
		return fmt.Errorf("%w: negative length %d", ErrInvalidArgument, n)
	}

	srcLen, err := b.source.Length()
	if err != nil {
		return err
	}

	if b.start+n > srcLen {
		if err := b.source.SetLength(b.start + n); err != nil {
			return err
		}
	}

	b.end = b.start + n
	b.pos = min(b.pos, n)
	return nil
}

func (b *Bounded) Flush() error {
	if b.closed {
		return ErrClosed
	}
	return b.source.Flush()
}

// Close closes the source unless the stream was built with LeaveOpen.
func (b *Bounded) Close() error {
	if b.closed {
		return ErrClosed
	}

	b.closed = true
	if b.leaveOpen {
		return nil
	}
	return b.source.Close()
}

func (b *Bounded) CanRead() bool  { return !b.closed && b.source.CanRead() }
func (b *Bounded) CanWrite() bool { return !b.closed && b.source.CanWrite() }
func (b *Bounded) CanSeek() bool  { return !b.closed }
