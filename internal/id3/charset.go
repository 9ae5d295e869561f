package id3

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Text encodings declared by the first byte of text-bearing frames.
const (
	EncodingISO88591 byte = 0
	EncodingUTF16    byte = 1 // UTF-16 with byte order mark
	EncodingUTF16BE  byte = 2
	EncodingUTF8     byte = 3
)

// normalizeEncoding maps codes outside the ID3v2 table to ISO-8859-1.
func normalizeEncoding(enc byte) byte {
	switch enc {
	case EncodingUTF16, EncodingUTF16BE, EncodingUTF8:
		return enc
	default:
		return EncodingISO88591
	}
}

// EncodingName returns the charset name for an encoding code.
func EncodingName(enc byte) string {
	switch normalizeEncoding(enc) {
	case EncodingUTF16:
		return "UTF-16"
	case EncodingUTF16BE:
		return "UTF-16BE"
	case EncodingUTF8:
		return "UTF-8"
	default:
		return "ISO-8859-1"
	}
}

func charset(enc byte) encoding.Encoding {
	switch normalizeEncoding(enc) {
	case EncodingUTF16:
		// Without a BOM the text is read as big-endian.
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case EncodingUTF8:
		return unicode.UTF8
	default:
		return charmap.ISO8859_1
	}
}

func isDoubleByte(enc byte) bool {
	enc = normalizeEncoding(enc)
	return enc == EncodingUTF16 || enc == EncodingUTF16BE
}

// delimiterLength is the width of the string terminator for enc.
func delimiterLength(enc byte) int {
	if isDoubleByte(enc) {
		return 2
	}
	return 1
}

// indexOfEOS returns the index of the first terminator at or after from.
// Double-byte terminators must start at an even offset so the high byte of
// a code unit is never mistaken for one. When nothing matches the length of
// data is returned.
func indexOfEOS(data []byte, from int, enc byte) int {
	pos := indexOfZeroByte(data, from)
	if !isDoubleByte(enc) {
		return pos
	}

	for pos < len(data)-1 {
		if pos%2 == 0 && data[pos+1] == 0 {
			return pos
		}
		pos = indexOfZeroByte(data, pos+1)
	}
	return len(data)
}

func indexOfZeroByte(data []byte, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(data); i++ {
		if data[i] == 0 {
			return i
		}
	}
	return len(data)
}

// decodeRange decodes data[from:to] with the charset for enc. An empty or
// out of range window yields "".
func decodeRange(data []byte, from, to int, enc byte) string {
	if from < 0 || to <= from || to > len(data) {
		return ""
	}
	return decodeText(data[from:to], enc)
}

func decodeText(b []byte, enc byte) string {
	if len(b) == 0 {
		return ""
	}
	out, err := charset(enc).NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(out)
}
