package filter

// TrailingWhitespace is a filter that deletes runs of spaces and tabs that
// come immediately before a line break or the end of the stream.
type TrailingWhitespace struct {
	Base
	lwsp []byte
}

// NewTrailingWhitespace returns a new TrailingWhitespace filter.
func NewTrailingWhitespace() *TrailingWhitespace {
	return &TrailingWhitespace{}
}

func (f *TrailingWhitespace) strip(input []byte) []byte {
	out := f.OutputBuffer(len(input)+len(f.lwsp), false)
	n := 0
	for _, c := range input {
		switch c {
		case ' ', '\t':
			f.lwsp = append(f.lwsp, c)
			continue
		case '\r', '\n':
			f.lwsp = f.lwsp[:0]
		default:
			n += copy(out[n:], f.lwsp)
			f.lwsp = f.lwsp[:0]
		}
		out[n] = c
		n++
	}
	return out[:n]
}

func (f *TrailingWhitespace) Filter(input []byte) ([]byte, error) {
	return f.strip(input), nil
}

// Flush filters the final chunk and drops any whitespace still pending.
func (f *TrailingWhitespace) Flush(input []byte) ([]byte, error) {
	out := f.strip(input)
	f.lwsp = f.lwsp[:0]
	return out, nil
}

func (f *TrailingWhitespace) Reset() {
	f.Base.Reset()
	f.lwsp = f.lwsp[:0]
}
