package id3

// Text frame ids per version. v2.2 used three character ids.
var textFrameIDs = map[string][2]string{
	"title":  {"TIT2", "TT2"},
	"artist": {"TPE1", "TP1"},
	"album":  {"TALB", "TAL"},
}

// Picture is a decoded attached picture (APIC) frame.
type Picture struct {
	Encoding    byte
	MIMEType    string
	PictureType byte
	Description string
	Data        []byte
}

// Picture types used when choosing cover art.
const (
	PictureOther      byte = 0x00
	PictureFrontCover byte = 0x03
)

// Text decodes the text information frame with the given id. Only the
// first value of a multi-value v2.4 frame is returned.
func (t *Tag) Text(ids ...string) string {
	f, ok := t.Frame(ids...)
	if !ok || len(f.Body) < 1 {
		return ""
	}

	enc := normalizeEncoding(f.Body[0])
	rest := f.Body[1:]
	return decodeRange(rest, 0, indexOfEOS(rest, 0, enc), enc)
}

func (t *Tag) Title() string  { return t.text("title") }
func (t *Tag) Artist() string { return t.text("artist") }
func (t *Tag) Album() string  { return t.text("album") }

func (t *Tag) text(name string) string {
	ids := textFrameIDs[name]
	return t.Text(ids[0], ids[1])
}

// Picture returns the front cover if the tag has one, otherwise the first
// attached picture.
func (t *Tag) Picture() (Picture, bool) {
	var first *Picture
	for _, f := range t.Frames {
		var (
			pic Picture
			ok  bool
		)
		switch f.ID {
		case "APIC":
			pic, ok = decodeAPIC(f.Body)
		case "PIC":
			pic, ok = decodePIC(f.Body)
		default:
			continue
		}
		if !ok {
			continue
		}
		if pic.PictureType == PictureFrontCover {
			return pic, true
		}
		if first == nil {
			first = &pic
		}
	}
	if first == nil {
		return Picture{}, false
	}
	return *first, true
}

// decodeAPIC decodes
//
//	<encoding> <MIME type> $00 <picture type> <description> <terminator> <data>
func decodeAPIC(body []byte) (Picture, bool) {
	if len(body) < 4 {
		return Picture{}, false
	}

	pic := Picture{Encoding: normalizeEncoding(body[0])}
	rest := body[1:]

	mimeEnd := indexOfZeroByte(rest, 0)
	if mimeEnd+1 >= len(rest) {
		return Picture{}, false
	}
	pic.MIMEType = decodeRange(rest, 0, mimeEnd, EncodingISO88591)
	pic.PictureType = rest[mimeEnd+1]

	return decodePictureTail(pic, rest[mimeEnd+2:])
}

// decodePIC decodes the v2.2 layout, which carries a 3 byte image format
// instead of a MIME type.
func decodePIC(body []byte) (Picture, bool) {
	if len(body) < 6 {
		return Picture{}, false
	}

	pic := Picture{Encoding: normalizeEncoding(body[0]), PictureType: body[4]}
	switch string(body[1:4]) {
	case "PNG":
		pic.MIMEType = "image/png"
	case "JPG":
		pic.MIMEType = "image/jpeg"
	default:
		pic.MIMEType = "image/" + string(body[1:4])
	}

	return decodePictureTail(pic, body[5:])
}

func decodePictureTail(pic Picture, rest []byte) (Picture, bool) {
	descEnd := indexOfEOS(rest, 0, pic.Encoding)
	pic.Description = decodeRange(rest, 0, descEnd, pic.Encoding)

	dataStart := descEnd + delimiterLength(pic.Encoding)
	if dataStart >= len(rest) {
		return Picture{}, false
	}
	pic.Data = rest[dataStart:]
	return pic, true
}
