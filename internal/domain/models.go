package domain

// PlayerStatus represents the current state of the media player
type PlayerStatus string

const (
	// StatusPlaying indicates the media is currently playing
	StatusPlaying PlayerStatus = "Playing"
	// StatusPaused indicates the media is paused
	StatusPaused PlayerStatus = "Paused"
	// StatusStopped indicates the media is stopped
	StatusStopped PlayerStatus = "Stopped"
)

// Artwork rendering modes
const (
	// ArtworkCover renders the cover as a square thumbnail
	ArtworkCover = "cover"
	// ArtworkBlur centers the cover on a blurred copy of itself
	ArtworkBlur = "blur"
)

// Track is one playable catalog entry
type Track struct {
	// MediaID identifies the track inside the catalog. Defaults to URI.
	MediaID string `yaml:"media_id" json:"mediaId"`
	// URI is where the track bytes live (http(s)://, file:// or a path)
	URI    string `yaml:"uri" json:"uri"`
	Title  string `yaml:"title" json:"title,omitempty"`
	Artist string `yaml:"artist" json:"artist,omitempty"`
	Album  string `yaml:"album" json:"album,omitempty"`
}

// MediaMetadata contains information about the currently playing media
type MediaMetadata struct {
	// MediaID of the track, empty when the player does not expose one
	MediaID string
	// Title of the currently playing track
	Title string
	// Artist name
	Artist string
	// Album name
	Album string
	// ArtUrl is the URL or local path to the album artwork
	ArtUrl string
	// URL is the location of the track itself, used to read its ID3 tag
	URL string
	// Lyrics supplied inline by the player, if any
	Lyrics string
	// Status is the current playback status
	Status PlayerStatus
}

// MetadataFromTrack builds the event payload for a catalog track
func MetadataFromTrack(t Track, status PlayerStatus) MediaMetadata {
	return MediaMetadata{
		MediaID: t.MediaID,
		Title:   t.Title,
		Artist:  t.Artist,
		Album:   t.Album,
		URL:     t.URI,
		Status:  status,
	}
}

// NowPlaying is what gets published for display
type NowPlaying struct {
	MediaID  string       `json:"mediaId,omitempty"`
	Title    string       `json:"title"`
	Artist   string       `json:"artist,omitempty"`
	Album    string       `json:"album,omitempty"`
	Status   PlayerStatus `json:"status"`
	Lyrics   string       `json:"lyrics,omitempty"`
	Language string       `json:"lyricsLanguage,omitempty"`
	// Cover is a JPEG thumbnail, written next to the JSON rather than into it
	Cover []byte `json:"-"`
}
