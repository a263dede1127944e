package filter

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a caller passes an argument outside of
// its permitted range.
var ErrInvalidArgument = errors.New("invalid argument")

// Filter is an incremental, stateful byte transformation.
type Filter interface {
	// Filter transforms a chunk of input that is not the end of the stream.
	// Bytes that cannot be decided yet are held and prefixed to the next
	// chunk. The returned slice is valid until the next call into the filter.
	Filter(input []byte) ([]byte, error)

	// Flush transforms the final chunk of input and resolves everything held
	// by the filter. Partial matches are treated as non-matches.
	Flush(input []byte) ([]byte, error)

	// Reset returns the filter to the state it had when it was constructed.
	Reset()
}

// Window returns input[start:start+length] after checking that the range lies
// within input. It is for callers that track a buffer, an offset, and a
// length separately.
func Window(input []byte, start, length int) ([]byte, error) {
	if start < 0 || start > len(input) {
		return nil, fmt.Errorf("%w: start index %d outside [0, %d]", ErrInvalidArgument, start, len(input))
	}
	if length < 0 || length > len(input)-start {
		return nil, fmt.Errorf("%w: length %d outside [0, %d]", ErrInvalidArgument, length, len(input)-start)
	}
	return input[start : start+length], nil
}

// Chain applies a sequence of filters in order. The output of each filter is
// the input to the next. A Chain is itself a Filter.
type Chain []Filter

// Filter runs input through the Filter method of every filter in the chain.
func (c Chain) Filter(input []byte) ([]byte, error) {
	var err error
	for _, f := range c {
		if input, err = f.Filter(input); err != nil {
			return nil, err
		}
	}
	return input, nil
}

// Flush runs input through the Flush method of every filter in the chain. The
// first filter flushes input, each later filter flushes what the one before
// it produced.
func (c Chain) Flush(input []byte) ([]byte, error) {
	var err error
	for _, f := range c {
		if input, err = f.Flush(input); err != nil {
			return nil, err
		}
	}
	return input, nil
}

// Reset resets every filter in the chain.
func (c Chain) Reset() {
	for _, f := range c {
		f.Reset()
	}
}

// Apply runs input through f as a complete stream and returns a copy of the
// output that the caller owns.
func Apply(f Filter, input []byte) ([]byte, error) {
	out, err := f.Flush(input)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(out), nil
}
