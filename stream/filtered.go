package stream

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/zostay/go-mimestream/filter"
)

type direction int

const (
	dirNone direction = iota
	dirRead
	dirWrite
)

// Filtered is a Stream that runs the bytes read from or written to a source
// stream through an ordered list of filters. It cannot seek.
//
// Reading pulls a block from the source and filters it. Reaching the end of
// the source does not flush the filters unless the stream was built with
// FlushOnEOF. Writing filters the bytes and writes the result to the source
// immediately. Flush after writing flushes every filter once and writes what
// they were holding.
type Filtered struct {
	source  Stream
	filters filter.Chain
	logger  *slog.Logger

	leaveOpen  bool
	flushOnEOF bool

	readBuf []byte
	pending []byte
	eof     bool
	drained bool

	last    direction
	flushed bool
	closed  bool
}

var _ Stream = (*Filtered)(nil)

// NewFiltered returns a Filtered stream with no filters over source.
func NewFiltered(source Stream, opts ...Option) *Filtered {
	o := makeOptions(opts)
	return &Filtered{
		source:     source,
		logger:     o.logger,
		leaveOpen:  o.leaveOpen,
		flushOnEOF: o.flushOnEOF,
		readBuf:    make([]byte, o.blockSize),
	}
}

// Source returns the stream being filtered.
func (f *Filtered) Source() Stream {
	return f.source
}

// Add appends flt to the end of the filter list.
func (f *Filtered) Add(flt filter.Filter) {
	f.filters = append(f.filters, flt)
}

// Remove removes flt from the filter list and reports whether it was there.
func (f *Filtered) Remove(flt filter.Filter) bool {
	i := slices.Index(f.filters, flt)
	if i < 0 {
		return false
	}
	f.filters = slices.Delete(f.filters, i, i+1)
	return true
}

// Contains reports whether flt is in the filter list.
func (f *Filtered) Contains(flt filter.Filter) bool {
	return slices.Contains(f.filters, flt)
}

// Read fills p with filtered bytes from the source.
func (f *Filtered) Read(p []byte) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	if !f.source.CanRead() {
		return 0, fmt.Errorf("read: %w", ErrUnsupported)
	}

	f.last = dirRead
	for len(f.pending) == 0 {
		if f.eof {
			if !f.flushOnEOF || f.drained {
				return 0, io.EOF
			}

			f.drained = true
			out, err := f.filters.Flush(nil)
			if err != nil {
				return 0, err
			}
			f.logger.Debug("flushed filters at end of source", "bytes", len(out))
			f.pending = out
			continue
		}

		n, err := f.source.Read(f.readBuf)
		if n > 0 {
			out, ferr := f.filters.Filter(f.readBuf[:n])
			if ferr != nil {
				return 0, ferr
			}
			f.logger.Debug("filtered block from source", "read", n, "filtered", len(out))
			f.pending = out
		}

		switch {
		case errors.Is(err, io.EOF):
			f.eof = true
		case err != nil:
			return 0, err
		case n == 0:
			return 0, nil
		}
	}

	n := copy(p, f.pending)
	f.pending = f.pending[n:]
	return n, nil
}

// Write filters p and writes the result to the source.
func (f *Filtered) Write(p []byte) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	if !f.source.CanWrite() {
		return 0, fmt.Errorf("write: %w", ErrUnsupported)
	}

	f.last = dirWrite
	f.flushed = false

	out, err := f.filters.Filter(p)
	if err != nil {
		return 0, err
	}

	if len(out) > 0 {
		if _, err := f.source.Write(out); err != nil {
			return 0, err
		}
	}

	return len(p), nil
}

// Flush does nothing if the last operation was a read. Otherwise it flushes
// every filter, writes the bytes they were holding to the source, and
// flushes the source. The filters are flushed only once between writes, so
// calling Flush again writes nothing more.
func (f *Filtered) Flush() error {
	if f.closed {
		return ErrClosed
	}
	if f.last == dirRead {
		return nil
	}

	if !f.flushed {
		out, err := f.filters.Flush(nil)
		if err != nil {
			return err
		}

		f.logger.Debug("flushed filters", "bytes", len(out))
		if len(out) > 0 {
			if _, err := f.source.Write(out); err != nil {
				return err
			}
		}
		f.flushed = true
	}

	return f.source.Flush()
}

// Seek always fails with ErrUnsupported, or ErrClosed once closed.
func (f *Filtered) Seek(int64, int) (int64, error) {
	if f.closed {
		return 0, ErrClosed
	}
	return 0, fmt.Errorf("seek: %w", ErrUnsupported)
}

// Length always fails with ErrUnsupported, or ErrClosed once closed.
func (f *Filtered) Length() (int64, error) {
	if f.closed {
		return 0, ErrClosed
	}
	return 0, fmt.Errorf("length: %w", ErrUnsupported)
}

// SetLength always fails with ErrUnsupported, or ErrClosed once closed.
func (f *Filtered) SetLength(int64) error {
	if f.closed {
		return ErrClosed
	}
	return fmt.Errorf("set length: %w", ErrUnsupported)
}

// SetReadDeadline passes the deadline on to the source, if it takes one.
func (f *Filtered) SetReadDeadline(t time.Time) error {
	if d, ok := f.source.(readDeadliner); ok {
		return d.SetReadDeadline(t)
	}
	return fmt.Errorf("read deadline: %w", ErrUnsupported)
}

// SetWriteDeadline passes the deadline on to the source, if it takes one.
func (f *Filtered) SetWriteDeadline(t time.Time) error {
	if d, ok := f.source.(writeDeadliner); ok {
		return d.SetWriteDeadline(t)
	}
	return fmt.Errorf("write deadline: %w", ErrUnsupported)
}

// Close drops the filters and closes the source unless the stream was built
// with LeaveOpen. It does not flush; call Flush first after writing.
func (f *Filtered) Close() error {
	if f.closed {
		return ErrClosed
	}

	f.closed = true
	f.filters = nil
	f.pending = nil

	if f.leaveOpen {
		return nil
	}
	return f.source.Close()
}

func (f *Filtered) CanRead() bool  { return !f.closed && f.source.CanRead() }
func (f *Filtered) CanWrite() bool { return !f.closed && f.source.CanWrite() }
func (f *Filtered) CanSeek() bool  { return false }
