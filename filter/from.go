package filter

import "bytes"

// scanState records where the previous chunk left a line scanner.
type scanState int

const (
	atLineStart scanState = iota
	midLine
)

// fromScanner finds lines that begin with the mbox "From " marker. It is
// shared by the MboxFrom and ArmoredFrom filters, which differ only in how a
// marked line is escaped.
type fromScanner struct {
	Base
	state scanState
	marks []int
}

// scan records the offset of every line in input that begins with the
// marker. When input ends with a partial line start that could still become
// the marker, and this is not the end of the stream, those bytes are held for
// the next call and the returned slice excludes them.
func (s *fromScanner) scan(input []byte, flush bool) ([]byte, []int) {
	s.marks = s.marks[:0]

	i := 0
	for i < len(input) {
		if s.state == midLine {
			nl := bytes.IndexByte(input[i:], '\n')
			if nl < 0 {
				break
			}
			i += nl + 1
			s.state = atLineStart
			continue
		}

		rest := input[i:]
		switch {
		case len(rest) >= len(fromMarker):
			if bytes.HasPrefix(rest, fromMarker) {
				s.marks = append(s.marks, i)
			}
		case !flush && bytes.HasPrefix(fromMarker, rest):
			s.SaveRemainingInput(rest)
			return input[:i], s.marks
		}
		s.state = midLine
	}

	return input, s.marks
}

func (s *fromScanner) reset() {
	s.Base.Reset()
	s.state = atLineStart
	s.marks = s.marks[:0]
}

// escape copies input into the output buffer, writing esc in place of the
// first skip bytes of every marked line.
func (s *fromScanner) escape(input []byte, marks []int, esc []byte, skip int) []byte {
	if len(marks) == 0 {
		return input
	}

	out := s.OutputBuffer(len(input)+len(marks)*len(esc), false)
	n, last := 0, 0
	for _, m := range marks {
		n += copy(out[n:], input[last:m])
		n += copy(out[n:], esc)
		last = m + skip
	}
	n += copy(out[n:], input[last:])

	return out[:n]
}

var (
	mboxEscape    = []byte{'>'}
	armoredEscape = []byte("=46")
)

// MboxFrom is a filter that munges mbox "From " lines by prefixing them with
// ">".
type MboxFrom struct {
	fromScanner
}

// NewMboxFrom returns a new MboxFrom filter.
func NewMboxFrom() *MboxFrom {
	return &MboxFrom{}
}

func (f *MboxFrom) munge(input []byte, flush bool) ([]byte, error) {
	input, marks := f.scan(input, flush)
	return f.escape(input, marks, mboxEscape, 0), nil
}

func (f *MboxFrom) Filter(input []byte) ([]byte, error) {
	return f.Run(input, false, f.munge)
}

func (f *MboxFrom) Flush(input []byte) ([]byte, error) {
	return f.Run(input, true, f.munge)
}

func (f *MboxFrom) Reset() {
	f.reset()
}

// ArmoredFrom is a filter that armors mbox "From " lines for transport in a
// quoted-printable body by encoding the leading "F" as "=46".
type ArmoredFrom struct {
	fromScanner
}

// NewArmoredFrom returns a new ArmoredFrom filter.
func NewArmoredFrom() *ArmoredFrom {
	return &ArmoredFrom{}
}

func (f *ArmoredFrom) armor(input []byte, flush bool) ([]byte, error) {
	input, marks := f.scan(input, flush)
	return f.escape(input, marks, armoredEscape, 1), nil
}

func (f *ArmoredFrom) Filter(input []byte) ([]byte, error) {
	return f.Run(input, false, f.armor)
}

func (f *ArmoredFrom) Flush(input []byte) ([]byte, error) {
	return f.Run(input, true, f.armor)
}

func (f *ArmoredFrom) Reset() {
	f.reset()
}
