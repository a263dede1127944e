// Package filter provides incremental byte transformations for MIME content.
//
// A Filter is handed a message body a chunk at a time. Each call to Filter()
// returns the output that can be decided from the bytes seen so far; anything
// still ambiguous (a CR that may start a CRLF, the first few bytes of a line
// that may turn out to be "From ", half of a multi-byte character) is held by
// the filter and re-examined at the front of the next chunk. The final chunk
// goes to Flush() instead, which resolves everything still held. However the
// caller chops the input, the concatenated output is identical:
//
//	out1, _ := f.Filter(chunk1) // consume out1 before calling f again
//	out2, _ := f.Filter(chunk2)
//	out3, _ := f.Flush(nil)
//
// The slice returned by a filter belongs to the filter and is only valid until
// the next call into that same filter. Copy anything you need to keep.
//
// Filters are not safe for concurrent use. Call Reset() to reuse a filter for
// a new stream.
//
// Filters are usually composed with a Chain or attached to a stream.Filtered
// from the stream package.
package filter
