package filter

// Unix2Dos is a filter that converts bare LF line endings to CRLF. Existing
// CRLF pairs are left alone.
type Unix2Dos struct {
	Base
	ensureNewLine bool
	last          byte
}

// NewUnix2Dos returns a Unix2Dos filter. When ensureNewLine is true, Flush
// terminates the output with CRLF if it does not already end with one.
func NewUnix2Dos(ensureNewLine bool) *Unix2Dos {
	return &Unix2Dos{ensureNewLine: ensureNewLine}
}

func (f *Unix2Dos) convert(input []byte, flush bool) []byte {
	out := f.OutputBuffer(2*len(input)+2, false)
	n := 0
	for _, c := range input {
		if c == '\n' && f.last != '\r' {
			out[n] = '\r'
			n++
		}
		out[n] = c
		n++
		f.last = c
	}

	if flush && f.ensureNewLine && f.last != '\n' {
		if f.last != '\r' {
			out[n] = '\r'
			n++
		}
		out[n] = '\n'
		n++
		f.last = '\n'
	}

	return out[:n]
}

func (f *Unix2Dos) Filter(input []byte) ([]byte, error) {
	return f.convert(input, false), nil
}

func (f *Unix2Dos) Flush(input []byte) ([]byte, error) {
	return f.convert(input, true), nil
}

func (f *Unix2Dos) Reset() {
	f.Base.Reset()
	f.last = 0
}
