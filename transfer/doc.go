// Package transfer contains the byte codecs behind the Content-transfer-encoding
// header. Each codec is push-based: the caller hands it a chunk of input and
// a destination buffer at least EstimateOutputLength() bytes long, and the
// codec writes as much output as can be decided so far, keeping any partial
// quantum (a half base64 group, a dangling "=" of quoted-printable, an
// incomplete uuencoded line) for the next call. Flush() ends the stream and
// writes out whatever is still held.
//
// Only quoted-printable, base64, and x-uuencode change the bytes. Settings
// such as binary, 7bit, or 8bit leave the bytes as-is.
//
// For the sake of this module, the term "decoded" means that the content has
// been transformed from the named Content-transfer-encoding to the charset
// encoded form. Meanwhile, "encoded" means that the content has been
// transformed from the charset encoding to the named Content-transfer-encoding.
package transfer
