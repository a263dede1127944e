package filter

// Anonymize is a filter that replaces every byte other than whitespace with
// "x". It keeps the shape of a message, line lengths included, while hiding
// its content.
type Anonymize struct {
	Base
}

// NewAnonymize returns a new Anonymize filter.
func NewAnonymize() *Anonymize {
	return &Anonymize{}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}

func (f *Anonymize) anonymize(input []byte) []byte {
	out := f.OutputBuffer(len(input), false)
	for i, c := range input {
		if isSpace(c) {
			out[i] = c
			continue
		}
		out[i] = 'x'
	}
	return out[:len(input)]
}

func (f *Anonymize) Filter(input []byte) ([]byte, error) {
	return f.anonymize(input), nil
}

func (f *Anonymize) Flush(input []byte) ([]byte, error) {
	return f.anonymize(input), nil
}
