// Package result holds the shared DecoderResult type produced by the
// PDF417 decoder and populated by the bytestream parser.
package result

// DecoderResult is the outcome of decoding a PDF417 codeword matrix.
type DecoderResult struct {
	RawBytes        []byte
	Text            string
	ECLevel         string
	ErrorsCorrected int
	Erasures        int
	// Other carries format-specific metadata (e.g. macro PDF417 control
	// block fields) opaque to the core decoder.
	Other interface{}
}

// New creates a DecoderResult with the basic fields set.
func New(text string, ecLevel string) *DecoderResult {
	return &DecoderResult{Text: text, ECLevel: ecLevel}
}
