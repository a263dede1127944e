package filter

var crlf = []byte("\r\n")

// dkimBody implements the body canonicalization algorithms of RFC 6376,
// section 3.4. Lines may end in LF or CRLF on input and always end in CRLF on
// output. Empty lines are counted rather than written until a line with
// content proves they are not trailing.
type dkimBody struct {
	Base
	relaxed bool

	bol   bool // at the beginning of a line
	cr    bool // a CR is waiting to see if LF follows
	wsp   bool // a whitespace run is waiting (relaxed only)
	empty int  // empty lines not yet written
	wrote bool // any line has been written
}

func (f *dkimBody) reset() {
	f.Base.Reset()
	f.bol = true
	f.cr = false
	f.wsp = false
	f.empty = 0
	f.wrote = false
}

func (f *dkimBody) content(out []byte, c byte) int {
	n := 0
	if f.bol {
		for ; f.empty > 0; f.empty-- {
			n += copy(out[n:], crlf)
		}
		f.bol = false
	}
	if f.wsp {
		out[n] = ' '
		n++
		f.wsp = false
	}
	out[n] = c
	f.wrote = true
	return n + 1
}

func (f *dkimBody) endLine(out []byte) int {
	f.wsp = false
	if f.bol {
		f.empty++
		return 0
	}
	f.bol = true
	return copy(out, crlf)
}

func (f *dkimBody) canonicalize(input []byte, flush bool) []byte {
	out := f.OutputBuffer(2*len(input)+2*f.empty+8, false)
	n := 0
	for _, c := range input {
		if f.cr {
			f.cr = false
			if c == '\n' {
				n += f.endLine(out[n:])
				continue
			}
			n += f.content(out[n:], '\r')
		}

		switch {
		case c == '\r':
			f.cr = true
		case c == '\n':
			n += f.endLine(out[n:])
		case f.relaxed && (c == ' ' || c == '\t'):
			f.wsp = true
		default:
			n += f.content(out[n:], c)
		}
	}

	if !flush {
		return out[:n]
	}

	if f.cr {
		f.cr = false
		n += f.content(out[n:], '\r')
	}
	f.wsp = false
	if !f.bol {
		n += copy(out[n:], crlf)
		f.bol = true
	}
	f.empty = 0
	if !f.relaxed && !f.wrote {
		n += copy(out[n:], crlf)
		f.wrote = true
	}

	return out[:n]
}

func (f *dkimBody) Filter(input []byte) ([]byte, error) {
	return f.canonicalize(input, false), nil
}

func (f *dkimBody) Flush(input []byte) ([]byte, error) {
	return f.canonicalize(input, true), nil
}

// DkimSimpleBody is a filter that applies the DKIM "simple" body
// canonicalization. Trailing empty lines are removed and an empty body
// becomes a single CRLF.
type DkimSimpleBody struct {
	dkimBody
}

// NewDkimSimpleBody returns a new DkimSimpleBody filter.
func NewDkimSimpleBody() *DkimSimpleBody {
	f := &DkimSimpleBody{}
	f.reset()
	return f
}

func (f *DkimSimpleBody) Reset() { f.reset() }

// DkimRelaxedBody is a filter that applies the DKIM "relaxed" body
// canonicalization. In addition to the simple rules, runs of spaces and tabs
// collapse to a single space, whitespace at the end of a line is removed, and
// an empty body stays empty.
type DkimRelaxedBody struct {
	dkimBody
}

// NewDkimRelaxedBody returns a new DkimRelaxedBody filter.
func NewDkimRelaxedBody() *DkimRelaxedBody {
	f := &DkimRelaxedBody{dkimBody{relaxed: true}}
	f.reset()
	return f
}

func (f *DkimRelaxedBody) Reset() { f.reset() }
