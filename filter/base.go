package filter

// outputAlignment is the granularity the output buffer grows in.
const outputAlignment = 64

// Base holds the machinery shared by stateful filters: a preload buffer for
// bytes held over from the previous call and a reusable output buffer.
// Concrete filters embed it.
type Base struct {
	preload []byte
	joined  []byte
	output  []byte
}

// Run prefixes any preloaded bytes to input and passes the result to fn. A
// combined buffer is only built when bytes were actually held over.
func (b *Base) Run(input []byte, flush bool, fn func(input []byte, flush bool) ([]byte, error)) ([]byte, error) {
	if len(b.preload) > 0 {
		b.joined = append(b.joined[:0], b.preload...)
		b.joined = append(b.joined, input...)
		b.preload = b.preload[:0]
		input = b.joined
	}
	return fn(input, flush)
}

// OutputBuffer returns the output buffer with room for at least size bytes.
// Growth rounds up to a multiple of 64 and at least doubles the buffer. When
// keep is true the current contents are carried over on growth.
//
// The buffer returned is always the full capacity of the buffer.
func (b *Base) OutputBuffer(size int, keep bool) []byte {
	if cap(b.output) < size {
		n := (size + outputAlignment - 1) / outputAlignment * outputAlignment
		if n < 2*cap(b.output) {
			n = 2 * cap(b.output)
		}
		buf := make([]byte, n)
		if keep {
			copy(buf, b.output[:cap(b.output)])
		}
		b.output = buf
	}
	return b.output[:cap(b.output)]
}

// SaveRemainingInput holds rest so that it is prefixed to the input of the
// next call to Run.
func (b *Base) SaveRemainingInput(rest []byte) {
	b.preload = append(b.preload[:0], rest...)
}

// Preloaded returns the number of bytes currently held over.
func (b *Base) Preloaded() int {
	return len(b.preload)
}

// Reset drops any held over bytes.
func (b *Base) Reset() {
	b.preload = b.preload[:0]
}
