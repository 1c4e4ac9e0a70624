package bitstream

import (
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// eciCharsetNames maps the small set of ECI assignment numbers this decoder
// recognizes to a charset label. Unrecognized values are left as raw bytes.
var eciCharsetNames = map[int]string{
	20: "Shift_JIS",
	28: "GB18030",
	29: "GB18030",
}

// decodeECIBytes converts data from the charset named by eciValue to UTF-8.
// Falls back to returning data unchanged for ASCII/ISO-8859-1/UTF-8 or any
// ECI value this decoder does not recognize.
func decodeECIBytes(data []byte, eciValue int) string {
	switch eciCharsetNames[eciValue] {
	case "Shift_JIS":
		decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
		if err == nil {
			return string(decoded)
		}
	case "GB18030":
		decoded, _, err := transform.Bytes(simplifiedchinese.GB18030.NewDecoder(), data)
		if err == nil {
			return string(decoded)
		}
	}
	return string(data)
}
