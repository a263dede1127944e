// Package mimestream is the streaming layer of a MIME toolkit. It is made up
// of three packages.
//
// The transfer package holds the Content-transfer-encoding codecs: base64,
// quoted-printable, uuencode, and the RFC 2047 and RFC 2231 forms used in
// headers. Each codec is a push-style Encoder or Decoder that may be handed
// its input in chunks of any size.
//
// The filter package turns codecs and a number of other byte transformations
// into filters. A filter is an incremental, stateful transformation that gives
// the same output no matter how its input is divided into chunks. Filters
// convert line endings, escape mbox "From " lines, transcode between character
// sets, canonicalize bodies for DKIM, strip trailing whitespace, and work out
// which transfer encoding a body needs.
//
// The stream package applies filters to data as it is read or written, and
// builds streams out of windows onto other streams (Bounded) and sequences of
// streams (Chained), so a message can be reassembled from pieces of its
// source without copying.
//
// None of it is safe for concurrent use.
package mimestream
