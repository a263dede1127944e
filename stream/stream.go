package stream

import (
	"errors"
	"io"
)

// DefaultBlockSize is the number of bytes a Filtered stream reads from its
// source at a time unless WithBlockSize says otherwise.
const DefaultBlockSize = 4096

// Unbounded is passed as the end of a Bounded stream that extends to the end
// of its source.
const Unbounded = -1

// Errors returned by the streams in this package.
var (
	// ErrOutOfBounds is returned when a read, write, or seek would move
	// outside of the bounds of a stream.
	ErrOutOfBounds = errors.New("operation is outside the bounds of the stream")

	// ErrClosed is returned by any operation on a stream after Close.
	ErrClosed = errors.New("stream is closed")

	// ErrInvalidArgument is returned when an argument is outside of its
	// permitted range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupported is returned by operations a stream cannot perform, such
	// as seeking a Filtered stream.
	ErrUnsupported = errors.ErrUnsupported
)

// Stream is a byte stream with the capabilities needed to build MIME
// documents: reading, writing, seeking, and knowing its own length. A stream
// reports which of these it supports through CanRead, CanWrite, and CanSeek.
// Operations a stream does not support return ErrUnsupported.
type Stream interface {
	io.ReadWriteSeeker
	io.Closer

	// Flush pushes any buffered bytes to the underlying storage.
	Flush() error

	// Length returns the total length of the stream in bytes.
	Length() (int64, error)

	// SetLength truncates or extends the stream.
	SetLength(n int64) error

	CanRead() bool
	CanWrite() bool
	CanSeek() bool
}

// Position returns the current offset of s.
func Position(s Stream) (int64, error) {
	return s.Seek(0, io.SeekCurrent)
}
