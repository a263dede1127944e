package filter

import (
	"bytes"
	"fmt"

	"github.com/zostay/go-mimestream/transfer"
)

// Constraint limits the transfer encodings BestEncoding may recommend.
type Constraint int

const (
	// NoConstraint allows any encoding, including binary.
	NoConstraint Constraint = iota

	// SevenBit requires the result to be safe for a 7-bit transport.
	SevenBit

	// EightBit allows 8-bit bytes but not NUL or overlong lines.
	EightBit
)

// Limits for the maxLineLength argument of BestEncoding.BestEncoding.
const (
	DefaultMaxLineLength = 78
	MinMaxLineLength     = 60
	MaxMaxLineLength     = 998
)

// eightBitThreshold is the share of 8-bit bytes above which base64 is
// preferred to quoted-printable.
const eightBitThreshold = 0.17

var fromMarker = []byte("From ")

// BestEncoding is a filter that passes its input through unchanged while
// gathering the statistics needed to choose a Content-transfer-encoding for
// it.
type BestEncoding struct {
	count0    int64
	count8    int64
	total     int64
	maxline   int
	linelen   int
	linepos   int
	capture   [5]byte
	hasMarker bool
}

// NewBestEncoding returns a new BestEncoding filter.
func NewBestEncoding() *BestEncoding {
	return &BestEncoding{}
}

func (f *BestEncoding) scan(input []byte) {
	for _, c := range input {
		f.total++
		switch {
		case c == 0:
			f.count0++
		case c >= 0x80:
			f.count8++
		}

		if c == '\n' {
			if f.linelen > f.maxline {
				f.maxline = f.linelen
			}
			f.linelen = 0
			f.linepos = 0
			continue
		}

		if f.linepos < len(f.capture) {
			f.capture[f.linepos] = c
			if f.linepos == len(f.capture)-1 && bytes.Equal(f.capture[:], fromMarker) {
				f.hasMarker = true
			}
		}
		f.linepos++

		if c != '\r' {
			f.linelen++
		}
	}
}

func (f *BestEncoding) Filter(input []byte) ([]byte, error) {
	f.scan(input)
	return input, nil
}

func (f *BestEncoding) Flush(input []byte) ([]byte, error) {
	f.scan(input)
	return input, nil
}

// Reset zeroes every statistic.
func (f *BestEncoding) Reset() {
	*f = BestEncoding{}
}

// BestEncoding returns the transfer encoding best suited to the bytes seen so
// far under the given constraint. The result is one of the transfer package
// constants Bit7, Bit8, Binary, QuotedPrintable, or Base64. Lines longer than
// maxLineLength, not counting CR, require an encoding. The maxLineLength must
// be between MinMaxLineLength and MaxMaxLineLength.
func (f *BestEncoding) BestEncoding(constraint Constraint, maxLineLength int) (string, error) {
	if maxLineLength < MinMaxLineLength || maxLineLength > MaxMaxLineLength {
		return "", fmt.Errorf("%w: max line length %d outside [%d, %d]",
			ErrInvalidArgument, maxLineLength, MinMaxLineLength, MaxMaxLineLength)
	}

	maxline := f.maxline
	if f.linelen > maxline {
		maxline = f.linelen
	}
	needsEncoding := f.hasMarker || maxline > maxLineLength

	var ratio float64
	if f.total > 0 {
		ratio = float64(f.count8) / float64(f.total)
	}

	switch constraint {
	case SevenBit:
		switch {
		case f.count0 > 0:
			return transfer.Base64, nil
		case f.count8 > 0:
			if ratio >= eightBitThreshold {
				return transfer.Base64, nil
			}
			return transfer.QuotedPrintable, nil
		case needsEncoding:
			return transfer.QuotedPrintable, nil
		}
		return transfer.Bit7, nil
	case EightBit:
		switch {
		case f.count0 > 0:
			return transfer.Base64, nil
		case needsEncoding:
			return transfer.QuotedPrintable, nil
		case f.count8 > 0:
			return transfer.Bit8, nil
		}
		return transfer.Bit7, nil
	case NoConstraint:
		switch {
		case needsEncoding:
			if f.count0 > 0 || ratio > eightBitThreshold {
				return transfer.Base64, nil
			}
			return transfer.QuotedPrintable, nil
		case f.count0 > 0:
			return transfer.Binary, nil
		case f.count8 > 0:
			return transfer.Bit8, nil
		}
		return transfer.Bit7, nil
	}

	return "", fmt.Errorf("%w: unknown constraint %d", ErrInvalidArgument, constraint)
}
