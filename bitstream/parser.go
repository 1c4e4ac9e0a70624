// Package bitstream interprets a corrected PDF417 codeword vector as text,
// implementing the text/byte/numeric compaction modes and macro PDF417
// control blocks.
package bitstream

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/tpcreative070/pdf417decoder"
	"github.com/tpcreative070/pdf417decoder/internal/result"
)

// textSubMode is the active character set within Text Compaction mode.
type textSubMode int

const (
	subModeAlpha textSubMode = iota
	subModeLower
	subModeMixed
	subModePunct
	subModeAlphaShift
	subModePunctShift
)

const (
	textCompactionModeLatch       = 900
	byteCompactionModeLatch       = 901
	numericCompactionModeLatch    = 902
	byteCompactionModeLatch6      = 924
	eciUserDefined                = 925
	eciGeneralPurpose             = 926
	eciCharset                    = 927
	beginMacroPDF417ControlBlock  = 928
	beginMacroPDF417OptionalField = 923
	macroPDF417Terminator         = 922
	modeShiftToByteCompactionMode = 913
	maxNumericCodewords           = 15

	macroOptionalFieldFileName     = 0
	macroOptionalFieldSegmentCount = 1
	macroOptionalFieldTimeStamp    = 2
	macroOptionalFieldSender       = 3
	macroOptionalFieldAddressee    = 4
	macroOptionalFieldFileSize     = 5
	macroOptionalFieldChecksum     = 6

	punctuationLatch  = 25
	lowerLatch        = 27
	alphaShift        = 27
	mixedLatch        = 28
	alphaLatch        = 28
	punctShift        = 29
	punctuationLatch2 = 29

	sequenceCodewordCount = 2
)

var punctuationCharset = []byte(";<>@[\\]_`~!\r\t,:\n-.$/\"|*()?{}'")
var mixedCharset = []byte("0123456789&\r\t,:#-.$/+%*=^")

// powersOf900 caches 900^0 .. 900^15 for base-900-to-base-10 conversion.
var powersOf900 [16]*big.Int

func init() {
	powersOf900[0] = big.NewInt(1)
	for i := 1; i < len(powersOf900); i++ {
		powersOf900[i] = new(big.Int).Mul(powersOf900[i-1], big.NewInt(900))
	}
}

// MacroMetadata carries macro PDF417 control-block fields, attached to a
// DecoderResult's Other field when the symbol is one segment of a
// structured-append sequence.
type MacroMetadata struct {
	SegmentIndex int
	FileID       string
	OptionalData []int
	LastSegment  bool
	SegmentCount int
	FileName     string
	Sender       string
	Addressee    string
	Timestamp    int64
	FileSize     int64
	Checksum     int
}

// cursor walks a codeword vector, tracking how far into the message body
// (codewords[0] is the length descriptor) the reader has progressed.
type cursor struct {
	codewords []int
	pos       int
}

func (c *cursor) bodyEnd() int   { return c.codewords[0] }
func (c *cursor) done() bool     { return c.pos >= c.bodyEnd() }
func (c *cursor) peek() int      { return c.codewords[c.pos] }
func (c *cursor) take() int      { v := c.codewords[c.pos]; c.pos++; return v }
func (c *cursor) rewind()        { c.pos-- }
func (c *cursor) atEnd() bool    { return c.pos >= len(c.codewords) }

// Decode interprets codewords[1:codewords[0]] as the message body and
// returns the assembled DecoderResult.
func Decode(codewords []int, ecLevel string) (*result.DecoderResult, error) {
	c := &cursor{codewords: codewords, pos: 1}
	var text strings.Builder
	text.Grow(len(codewords) * 2)
	metadata := &MacroMetadata{}

	if err := textCompaction(c, &text); err != nil {
		return nil, err
	}
	for !c.done() {
		if err := dispatchModeSwitch(c, &text, metadata); err != nil {
			return nil, err
		}
	}

	if text.Len() == 0 && metadata.FileID == "" {
		return nil, pdf417decoder.ErrFormat
	}
	decoded := result.New(text.String(), ecLevel)
	decoded.Other = metadata
	return decoded, nil
}

// dispatchModeSwitch consumes one mode-latch codeword and routes to the
// compaction mode (or control block) it names.
func dispatchModeSwitch(c *cursor, text *strings.Builder, metadata *MacroMetadata) error {
	mode := c.take()
	switch mode {
	case textCompactionModeLatch:
		return textCompaction(c, text)
	case byteCompactionModeLatch, byteCompactionModeLatch6:
		return byteCompaction(mode, c, text)
	case modeShiftToByteCompactionMode:
		text.WriteByte(byte(c.take()))
		return nil
	case numericCompactionModeLatch:
		return numericCompaction(c, text)
	case eciCharset:
		c.pos++
		return nil
	case eciGeneralPurpose:
		c.pos += 2
		return nil
	case eciUserDefined:
		c.pos++
		return nil
	case beginMacroPDF417ControlBlock:
		return decodeMacroBlock(c, metadata)
	case beginMacroPDF417OptionalField, macroPDF417Terminator:
		return pdf417decoder.ErrFormat
	default:
		c.rewind()
		return textCompaction(c, text)
	}
}

func decodeMacroBlock(c *cursor, metadata *MacroMetadata) error {
	if c.pos+sequenceCodewordCount > c.bodyEnd() {
		return pdf417decoder.ErrFormat
	}
	sequence := make([]int, sequenceCodewordCount)
	for i := range sequence {
		sequence[i] = c.take()
	}
	sequenceIndex, err := decodeBase900toBase10(sequence, sequenceCodewordCount)
	if err != nil {
		return err
	}
	if sequenceIndex == "" {
		metadata.SegmentIndex = 0
	} else {
		val, convErr := strconv.Atoi(sequenceIndex)
		if convErr != nil {
			return pdf417decoder.ErrFormat
		}
		metadata.SegmentIndex = val
	}

	var fileID strings.Builder
	for !c.done() && !c.atEnd() && c.peek() != macroPDF417Terminator && c.peek() != beginMacroPDF417OptionalField {
		fmt.Fprintf(&fileID, "%03d", c.take())
	}
	if fileID.Len() == 0 {
		return pdf417decoder.ErrFormat
	}
	metadata.FileID = fileID.String()

	optionalStart := -1
	if !c.atEnd() && c.peek() == beginMacroPDF417OptionalField {
		optionalStart = c.pos + 1
	}

	for !c.done() {
		switch c.peek() {
		case beginMacroPDF417OptionalField:
			c.pos++
			if err := readMacroOptionalField(c, metadata); err != nil {
				return err
			}
		case macroPDF417Terminator:
			c.pos++
			metadata.LastSegment = true
		default:
			return pdf417decoder.ErrFormat
		}
	}

	if optionalStart != -1 {
		length := c.pos - optionalStart
		if metadata.LastSegment {
			length--
		}
		if length > 0 {
			metadata.OptionalData = make([]int, length)
			copy(metadata.OptionalData, c.codewords[optionalStart:optionalStart+length])
		}
	}
	return nil
}

func readMacroOptionalField(c *cursor, metadata *MacroMetadata) error {
	field := c.take()
	var v strings.Builder
	var err error
	switch field {
	case macroOptionalFieldFileName:
		err = textCompaction(c, &v)
		metadata.FileName = v.String()
	case macroOptionalFieldSender:
		err = textCompaction(c, &v)
		metadata.Sender = v.String()
	case macroOptionalFieldAddressee:
		err = textCompaction(c, &v)
		metadata.Addressee = v.String()
	case macroOptionalFieldSegmentCount:
		if err = numericCompaction(c, &v); err == nil {
			metadata.SegmentCount, err = atoiOrFormat(v.String())
		}
	case macroOptionalFieldTimeStamp:
		if err = numericCompaction(c, &v); err == nil {
			metadata.Timestamp, err = atoi64OrFormat(v.String())
		}
	case macroOptionalFieldChecksum:
		if err = numericCompaction(c, &v); err == nil {
			metadata.Checksum, err = atoiOrFormat(v.String())
		}
	case macroOptionalFieldFileSize:
		if err = numericCompaction(c, &v); err == nil {
			metadata.FileSize, err = atoi64OrFormat(v.String())
		}
	default:
		err = pdf417decoder.ErrFormat
	}
	return err
}

func atoiOrFormat(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, pdf417decoder.ErrFormat
	}
	return v, nil
}

func atoi64OrFormat(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, pdf417decoder.ErrFormat
	}
	return v, nil
}

// textCompaction handles the Text Compaction mode: two characters packed
// per codeword below the mode-latch threshold, with sub-modes for
// alpha/lower/mixed/punctuation and transient shifts. It flushes its
// buffered symbols through decodeTextCompaction whenever an ECI switch
// interrupts the run, and again at the end.
func textCompaction(c *cursor, out *strings.Builder) error {
	subMode := subModeAlpha
	symbols, raw := newTextBuffer(c)

	for !c.done() {
		code := c.take()
		if code < textCompactionModeLatch {
			symbols = append(symbols, code/30, code%30)
			raw = append(raw, 0, 0)
			continue
		}
		switch code {
		case textCompactionModeLatch:
			symbols = append(symbols, textCompactionModeLatch)
			raw = append(raw, 0)
		case byteCompactionModeLatch, byteCompactionModeLatch6,
			numericCompactionModeLatch, beginMacroPDF417ControlBlock,
			beginMacroPDF417OptionalField, macroPDF417Terminator:
			c.rewind()
			subMode = decodeTextCompaction(symbols, raw, out, subMode)
			return nil
		case modeShiftToByteCompactionMode:
			shiftedByte := c.take()
			symbols = append(symbols, modeShiftToByteCompactionMode)
			raw = append(raw, shiftedByte)
		case eciCharset:
			subMode = decodeTextCompaction(symbols, raw, out, subMode)
			c.pos++
			if c.pos > c.bodyEnd() {
				return pdf417decoder.ErrFormat
			}
			symbols, raw = newTextBuffer(c)
		}
	}
	decodeTextCompaction(symbols, raw, out, subMode)
	return nil
}

// newTextBuffer preallocates the symbol/raw-byte buffers textCompaction
// fills: at most two entries per remaining codeword.
func newTextBuffer(c *cursor) (symbols, raw []int) {
	remaining := c.bodyEnd() - c.pos
	if remaining < 0 {
		remaining = 0
	}
	return make([]int, 0, remaining*2), make([]int, 0, remaining*2)
}

// decodeTextCompaction renders a run of text-compaction symbols into out,
// tracking the active sub-mode as a small state machine and returning
// whichever sub-mode the run ends latched into.
func decodeTextCompaction(symbols, raw []int, out *strings.Builder, startMode textSubMode) textSubMode {
	subMode := startMode
	priorToShift := startMode
	latched := startMode

	for i, symbol := range symbols {
		var ch byte
		switch subMode {
		case subModeAlpha:
			ch, subMode, latched, priorToShift = alphaSymbol(symbol, latched, priorToShift, out, raw[i])
		case subModeLower:
			ch, subMode, latched, priorToShift = lowerSymbol(symbol, latched, priorToShift, out, raw[i])
		case subModeMixed:
			ch, subMode, latched, priorToShift = mixedSymbol(symbol, latched, priorToShift, out, raw[i])
		case subModePunct:
			ch, subMode, latched, priorToShift = punctSymbol(symbol, latched, priorToShift, out, raw[i])
		case subModeAlphaShift:
			subMode = priorToShift
			switch {
			case symbol < 26:
				ch = byte('A' + symbol)
			case symbol == 26:
				ch = ' '
			case symbol == textCompactionModeLatch:
				subMode = subModeAlpha
			}
		case subModePunctShift:
			subMode = priorToShift
			switch {
			case symbol < punctuationLatch2:
				ch = punctuationCharset[symbol]
			case symbol == punctuationLatch2 || symbol == textCompactionModeLatch:
				subMode = subModeAlpha
			case symbol == modeShiftToByteCompactionMode:
				out.WriteByte(byte(raw[i]))
			}
		}
		if ch != 0 {
			out.WriteByte(ch)
		}
	}
	return latched
}

func alphaSymbol(symbol int, latched, priorToShift textSubMode, out *strings.Builder, rawByte int) (ch byte, subMode, newLatched, newPrior textSubMode) {
	subMode, newLatched, newPrior = subModeAlpha, latched, priorToShift
	switch {
	case symbol < 26:
		ch = byte('A' + symbol)
	case symbol == 26:
		ch = ' '
	case symbol == lowerLatch:
		subMode, newLatched = subModeLower, subModeLower
	case symbol == mixedLatch:
		subMode, newLatched = subModeMixed, subModeMixed
	case symbol == punctShift:
		newPrior, subMode = subModeAlpha, subModePunctShift
	case symbol == modeShiftToByteCompactionMode:
		out.WriteByte(byte(rawByte))
	case symbol == textCompactionModeLatch:
		subMode, newLatched = subModeAlpha, subModeAlpha
	}
	return
}

func lowerSymbol(symbol int, latched, priorToShift textSubMode, out *strings.Builder, rawByte int) (ch byte, subMode, newLatched, newPrior textSubMode) {
	subMode, newLatched, newPrior = subModeLower, latched, priorToShift
	switch {
	case symbol < 26:
		ch = byte('a' + symbol)
	case symbol == 26:
		ch = ' '
	case symbol == alphaShift:
		newPrior, subMode = subModeLower, subModeAlphaShift
	case symbol == mixedLatch:
		subMode, newLatched = subModeMixed, subModeMixed
	case symbol == punctShift:
		newPrior, subMode = subModeLower, subModePunctShift
	case symbol == modeShiftToByteCompactionMode:
		out.WriteByte(byte(rawByte))
	case symbol == textCompactionModeLatch:
		subMode, newLatched = subModeAlpha, subModeAlpha
	}
	return
}

func mixedSymbol(symbol int, latched, priorToShift textSubMode, out *strings.Builder, rawByte int) (ch byte, subMode, newLatched, newPrior textSubMode) {
	subMode, newLatched, newPrior = subModeMixed, latched, priorToShift
	switch {
	case symbol < punctuationLatch:
		ch = mixedCharset[symbol]
	case symbol == punctuationLatch:
		subMode, newLatched = subModePunct, subModePunct
	case symbol == 26:
		ch = ' '
	case symbol == lowerLatch:
		subMode, newLatched = subModeLower, subModeLower
	case symbol == alphaLatch || symbol == textCompactionModeLatch:
		subMode, newLatched = subModeAlpha, subModeAlpha
	case symbol == punctShift:
		newPrior, subMode = subModeMixed, subModePunctShift
	case symbol == modeShiftToByteCompactionMode:
		out.WriteByte(byte(rawByte))
	}
	return
}

func punctSymbol(symbol int, latched, priorToShift textSubMode, out *strings.Builder, rawByte int) (ch byte, subMode, newLatched, newPrior textSubMode) {
	subMode, newLatched, newPrior = subModePunct, latched, priorToShift
	switch {
	case symbol < punctuationLatch2:
		ch = punctuationCharset[symbol]
	case symbol == punctuationLatch2 || symbol == textCompactionModeLatch:
		subMode, newLatched = subModeAlpha, subModeAlpha
	case symbol == modeShiftToByteCompactionMode:
		out.WriteByte(byte(rawByte))
	}
	return
}

// byteCompaction handles the Byte Compaction mode, decoding 5 codewords
// into 6 raw bytes (or 1:1 below the threshold), flushed through
// decodeECIBytes whenever an ECI charset switch precedes a run.
func byteCompaction(mode int, c *cursor, out *strings.Builder) error {
	eciValue := -1

	for !c.done() {
		for !c.done() && c.peek() == eciCharset {
			c.pos++
			if !c.done() {
				eciValue = c.peek()
			}
			c.pos++
		}
		if c.done() || c.peek() >= textCompactionModeLatch {
			return nil
		}

		block, consumed := readByteBlock(c)
		if consumed == 5 && (mode == byteCompactionModeLatch6 || (!c.done() && c.peek() < textCompactionModeLatch)) {
			out.WriteString(decodeECIBytes(block, eciValue))
			continue
		}

		c.pos -= consumed
		raw, newECI := readRawByteRun(c, eciValue)
		eciValue = newECI
		out.WriteString(decodeECIBytes(raw, eciValue))
	}
	return nil
}

// readByteBlock accumulates up to 5 codewords into a base-900 value and
// reports how many it consumed.
func readByteBlock(c *cursor) (block []byte, consumed int) {
	var value int64
	for {
		value = 900*value + int64(c.take())
		consumed++
		if consumed >= 5 || c.done() || c.peek() >= textCompactionModeLatch {
			break
		}
	}
	if consumed < 5 {
		return nil, consumed
	}
	block = make([]byte, 6)
	for i := range block {
		block[i] = byte(value >> uint(8*(5-i)))
	}
	return block, consumed
}

// readRawByteRun consumes raw 1:1 bytes until a mode-switch codeword is
// seen, tracking any ECI switches along the way.
func readRawByteRun(c *cursor, eciValue int) ([]byte, int) {
	var raw []byte
	for !c.done() {
		code := c.peek()
		if code < textCompactionModeLatch {
			raw = append(raw, byte(code))
			c.pos++
			continue
		}
		if code == eciCharset {
			c.pos++
			if !c.done() {
				eciValue = c.peek()
			}
			c.pos++
			continue
		}
		break
	}
	return raw, eciValue
}

// numericCompaction handles the Numeric Compaction mode, packing groups of
// up to 15 codewords and converting base-900 to base-10 via big.Int.
func numericCompaction(c *cursor, out *strings.Builder) error {
	var group []int

	for !c.done() {
		code := c.peek()
		c.pos++
		end := c.done()
		isControl := code >= textCompactionModeLatch
		if !isControl {
			group = append(group, code)
		} else {
			switch code {
			case textCompactionModeLatch, byteCompactionModeLatch,
				byteCompactionModeLatch6, beginMacroPDF417ControlBlock,
				beginMacroPDF417OptionalField, macroPDF417Terminator, eciCharset:
				c.rewind()
				end = true
			}
		}
		if len(group) > 0 && (len(group)%maxNumericCodewords == 0 || code == numericCompactionModeLatch || end) {
			s, err := decodeBase900toBase10(group, len(group))
			if err != nil {
				return err
			}
			out.WriteString(s)
			group = group[:0]
		}
		if end {
			return nil
		}
	}
	return nil
}

func decodeBase900toBase10(codewords []int, count int) (string, error) {
	total := new(big.Int)
	for i := 0; i < count; i++ {
		term := new(big.Int).Mul(powersOf900[count-i-1], big.NewInt(int64(codewords[i])))
		total.Add(total, term)
	}
	s := total.String()
	if len(s) == 0 || s[0] != '1' {
		return "", pdf417decoder.ErrFormat
	}
	return s[1:], nil
}
