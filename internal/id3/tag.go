package id3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const tagHeaderSize = 10

// Tag header flags.
const (
	flagUnsynchronisation = 0x80
	flagExtendedHeader    = 0x40
	flagCompression22     = 0x40 // v2.2 only, no compression scheme was ever defined
)

var (
	// ErrNoTag is returned when the input does not start with an ID3v2 tag.
	ErrNoTag = errors.New("id3: no ID3v2 tag")
	// ErrUnsupportedVersion is returned for major versions other than 2, 3 and 4.
	ErrUnsupportedVersion = errors.New("id3: unsupported tag version")
)

// Frame is a raw frame as stored in the tag, with any frame level
// unsynchronisation already reversed.
type Frame struct {
	ID    string
	Flags uint16
	Body  []byte
}

// Tag is a parsed ID3v2 tag.
type Tag struct {
	Version  byte // major version: 2, 3 or 4
	Revision byte
	Flags    byte
	// Size is the tag size excluding the 10 byte header.
	Size   int
	Frames []Frame
}

// Read reads an ID3v2 tag from the start of r. Only the tag is consumed.
func Read(r io.Reader) (*Tag, error) {
	header := make([]byte, tagHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrNoTag
		}
		return nil, fmt.Errorf("id3: read header: %w", err)
	}

	tag, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(r, int64(tag.Size)))
	if err != nil {
		return nil, fmt.Errorf("id3: read tag body: %w", err)
	}
	if len(body) < tag.Size {
		return nil, fmt.Errorf("id3: read tag body: got %d of %d bytes: %w", len(body), tag.Size, io.ErrUnexpectedEOF)
	}

	tag.parseBody(body)
	return tag, nil
}

// Parse parses the ID3v2 tag at the start of data.
func Parse(data []byte) (*Tag, error) {
	return Read(bytes.NewReader(data))
}

func parseHeader(header []byte) (*Tag, error) {
	if string(header[:3]) != "ID3" {
		return nil, ErrNoTag
	}

	tag := &Tag{
		Version:  header[3],
		Revision: header[4],
		Flags:    header[5],
		Size:     syncSafeToInt(header[6:10]),
	}
	if tag.Version < 2 || tag.Version > 4 {
		return nil, fmt.Errorf("%w: 2.%d", ErrUnsupportedVersion, tag.Version)
	}
	return tag, nil
}

func (t *Tag) parseBody(body []byte) {
	if t.Version < 4 && t.Flags&flagUnsynchronisation != 0 {
		body = removeUnsynchronisation(body)
	}

	switch t.Version {
	case 2:
		if t.Flags&flagCompression22 != 0 {
			return
		}
		t.Frames = parseFrames(body, 3, 3, readUint24, false)
	case 3:
		t.Frames = parseFrames(skipExtendedHeader(body, t.Flags, false), 4, 4, readUint32, true)
	case 4:
		t.Frames = parseFrames(skipExtendedHeader(body, t.Flags, true), 4, 4, syncSafeToInt, true)
	}

	for i := range t.Frames {
		switch {
		case t.Version == 4:
			t.Frames[i].Body = unwrapFrameBody(t.Frames[i])
		case t.Version == 3 && t.Frames[i].Flags&(frameCompression23|frameEncryption23) != 0:
			t.Frames[i].Body = nil
		}
	}
}

// skipExtendedHeader drops the extended header. Its v2.3 size excludes the
// size field itself, the v2.4 size includes it and is syncsafe.
func skipExtendedHeader(body []byte, flags byte, v4 bool) []byte {
	if flags&flagExtendedHeader == 0 || len(body) < 4 {
		return body
	}

	var n int
	if v4 {
		n = syncSafeToInt(body[:4])
	} else {
		n = readUint32(body[:4]) + 4
	}
	if n < 4 || n > len(body) {
		return nil
	}
	return body[n:]
}

func parseFrames(body []byte, idLen, sizeLen int, size func([]byte) int, hasFlags bool) []Frame {
	headerLen := idLen + sizeLen
	if hasFlags {
		headerLen += 2
	}

	var frames []Frame
	for len(body) >= headerLen {
		if body[0] == 0 {
			break // padding
		}

		id := string(body[:idLen])
		n := size(body[idLen : idLen+sizeLen])
		var flags uint16
		if hasFlags {
			flags = binary.BigEndian.Uint16(body[idLen+sizeLen : headerLen])
		}

		body = body[headerLen:]
		if n < 0 || n > len(body) {
			break // truncated frame, the rest of the tag is unusable
		}

		frames = append(frames, Frame{ID: id, Flags: flags, Body: body[:n:n]})
		body = body[n:]
	}
	return frames
}

// Frame format flags. v2.3 and v2.4 place them differently.
const (
	frameCompression23 = 0x0080
	frameEncryption23  = 0x0040

	frameUnsynchronisation   = 0x0002
	frameDataLengthIndicator = 0x0001
	frameCompression         = 0x0008
	frameEncryption          = 0x0004
)

func unwrapFrameBody(f Frame) []byte {
	if f.Flags&(frameCompression|frameEncryption) != 0 {
		return nil
	}

	body := f.Body
	if f.Flags&frameDataLengthIndicator != 0 {
		if len(body) < 4 {
			return nil
		}
		body = body[4:]
	}
	if f.Flags&frameUnsynchronisation != 0 {
		body = removeUnsynchronisation(body)
	}
	return body
}

// Frame returns the first frame with one of the given ids.
func (t *Tag) Frame(ids ...string) (Frame, bool) {
	for _, f := range t.Frames {
		for _, id := range ids {
			if f.ID == id {
				return f, true
			}
		}
	}
	return Frame{}, false
}

// Lyrics decodes the first unsynchronised lyrics frame.
func (t *Tag) Lyrics() (USLT, bool) {
	f, ok := t.Frame("USLT", "ULT")
	if !ok {
		return USLT{}, false
	}
	return DecodeUSLT(f.Body, len(f.Body))
}

// syncSafeToInt reads a 28-bit syncsafe integer.
func syncSafeToInt(b []byte) int {
	return int(b[0]&0x7F)<<21 |
		int(b[1]&0x7F)<<14 |
		int(b[2]&0x7F)<<7 |
		int(b[3]&0x7F)
}

func readUint24(b []byte) int {
	return int(b[0])<<16 | int(b[1])<<8 | int(b[2])
}

func readUint32(b []byte) int {
	return int(binary.BigEndian.Uint32(b))
}

// removeUnsynchronisation reverses the 0xFF 0x00 -> 0xFF scheme. The input
// is not modified.
func removeUnsynchronisation(b []byte) []byte {
	if !bytes.Contains(b, []byte{0xFF, 0x00}) {
		return b
	}

	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		out = append(out, b[i])
		if b[i] == 0xFF && i+1 < len(b) && b[i+1] == 0x00 {
			i++
		}
	}
	return out
}
