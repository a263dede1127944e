package stream

import "log/slog"

type options struct {
	logger     *slog.Logger
	blockSize  int
	flushOnEOF bool
	leaveOpen  bool
}

func makeOptions(opts []Option) options {
	o := options{
		logger:    slog.New(slog.DiscardHandler),
		blockSize: DefaultBlockSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option refers to options that may be passed to the stream constructors.
// Options that do not apply to a stream are ignored by it.
type Option func(o *options)

// WithLogger is an Option that sets the logger debug events are written to.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBlockSize is an Option that sets how many bytes a Filtered stream reads
// from its source at a time. Values less than 1 leave DefaultBlockSize in
// place.
func WithBlockSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.blockSize = n
		}
	}
}

// FlushOnEOF is an Option that makes a Filtered stream flush its filters once
// when reading reaches the end of the source, so that bytes the filters are
// still holding are read rather than lost.
//
// Without it, reaching the end of the source does not flush anything.
func FlushOnEOF() Option {
	return func(o *options) { o.flushOnEOF = true }
}

// LeaveOpen is an Option that stops Filtered and Bounded streams from closing
// their source when they are closed.
func LeaveOpen() Option {
	return func(o *options) { o.leaveOpen = true }
}
