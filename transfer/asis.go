package transfer

// asIs copies bytes through untouched.
type asIs struct{}

// NewAsIsEncoder returns an Encoder that copies bytes as-is.
func NewAsIsEncoder() Encoder { return asIs{} }

// NewAsIsDecoder returns a Decoder that copies bytes as-is.
func NewAsIsDecoder() Decoder { return asIs{} }

func (asIs) Encoding() string { return Binary }

func (asIs) EstimateOutputLength(n int) int { return n }

func (asIs) Encode(dst, src []byte) int { return copy(dst, src) }

func (asIs) Decode(dst, src []byte) int { return copy(dst, src) }

func (asIs) Flush(dst, src []byte) int { return copy(dst, src) }

func (asIs) Reset() {}
