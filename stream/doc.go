// Package stream provides composable byte streams for MIME processing.
//
// Filtered threads the bytes read from or written to a source stream through
// an ordered list of filters from the filter package. Bounded presents a
// window of a larger stream without copying it. Chained presents several
// streams, one after another, as a single stream. Memory and Wrap supply
// sources and sinks for these.
//
// None of the types in this package are safe for concurrent use. Bounded and
// Chained reposition a source shared with other windows before every
// operation, so at most one of them may be in use at a time.
package stream
