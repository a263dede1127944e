package filter

// Dos2Unix is a filter that converts CRLF line endings to LF. A CR that is not
// followed by LF is kept.
type Dos2Unix struct {
	Base
	ensureNewLine bool
	pendingCR     bool
	last          byte
}

// NewDos2Unix returns a Dos2Unix filter. When ensureNewLine is true, Flush
// terminates the output with LF if it does not already end with one, and a
// trailing bare CR is replaced by that LF.
func NewDos2Unix(ensureNewLine bool) *Dos2Unix {
	return &Dos2Unix{ensureNewLine: ensureNewLine}
}

func (f *Dos2Unix) convert(input []byte, flush bool) []byte {
	out := f.OutputBuffer(len(input)+2, false)
	n := 0
	for _, c := range input {
		if f.pendingCR {
			f.pendingCR = false
			if c != '\n' {
				out[n] = '\r'
				n++
				f.last = '\r'
			}
		}

		if c == '\r' {
			f.pendingCR = true
			continue
		}

		out[n] = c
		n++
		f.last = c
	}

	if flush {
		// a CR left at the end becomes the terminator when one is ensured
		if f.pendingCR {
			f.pendingCR = false
			if !f.ensureNewLine {
				out[n] = '\r'
				n++
				f.last = '\r'
			}
		}
		if f.ensureNewLine && f.last != '\n' {
			out[n] = '\n'
			n++
			f.last = '\n'
		}
	}

	return out[:n]
}

func (f *Dos2Unix) Filter(input []byte) ([]byte, error) {
	return f.convert(input, false), nil
}

func (f *Dos2Unix) Flush(input []byte) ([]byte, error) {
	return f.convert(input, true), nil
}

func (f *Dos2Unix) Reset() {
	f.Base.Reset()
	f.pendingCR = false
	f.last = 0
}
