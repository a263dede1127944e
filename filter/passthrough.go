package filter

// PassThrough is a filter that returns its input unchanged.
type PassThrough struct{}

// NewPassThrough returns a filter that does nothing.
func NewPassThrough() *PassThrough {
	return &PassThrough{}
}

func (*PassThrough) Filter(input []byte) ([]byte, error) { return input, nil }

func (*PassThrough) Flush(input []byte) ([]byte, error) { return input, nil }

func (*PassThrough) Reset() {}
