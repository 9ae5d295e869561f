package id3

// USLT is a decoded "Unsynchronised lyrics/text transcription" frame.
type USLT struct {
	// Encoding is the effective text encoding. Unknown codes are reported
	// as EncodingISO88591.
	Encoding byte
	// Language is the raw ISO-639-2 code. It is not validated.
	Language [3]byte
	// Descriptor is the optional content description.
	Descriptor string
	// Lyrics is the lyrics text, possibly empty.
	Lyrics string
}

// LanguageCode returns the language bytes as a string.
func (f USLT) LanguageCode() string {
	return string(f.Language[:])
}

// DecodeUSLT decodes the first frameSize bytes of data as a USLT frame body.
//
// The second return value is false when the frame is malformed: frameSize
// is below the 4 mandatory header bytes, or data holds fewer than frameSize
// bytes. A frame whose lyrics window is empty or out of range decodes with
// empty Lyrics and true. data is never modified.
func DecodeUSLT(data []byte, frameSize int) (USLT, bool) {
	if frameSize < 4 || len(data) < frameSize {
		return USLT{}, false
	}

	enc := normalizeEncoding(data[0])
	frame := USLT{Encoding: enc}
	copy(frame.Language[:], data[1:4])

	rest := data[4:frameSize]
	descriptionEnd := indexOfEOS(rest, 0, enc)
	frame.Descriptor = decodeRange(rest, 0, descriptionEnd, enc)

	textStart := descriptionEnd + delimiterLength(enc)
	textEnd := indexOfEOS(rest, textStart, enc)
	frame.Lyrics = decodeRange(rest, textStart, textEnd, enc)

	return frame, true
}

// DecodeLyrics is DecodeUSLT reduced to the lyrics text.
func DecodeLyrics(data []byte, frameSize int) (string, bool) {
	frame, ok := DecodeUSLT(data, frameSize)
	if !ok {
		return "", false
	}
	return frame.Lyrics, true
}
