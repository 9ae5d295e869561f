package monitor

import (
	"strings"
	"sync"

	"github.com/genricoloni/amplayer/internal/domain"
	"github.com/godbus/dbus/v5"
)

const (
	mprisPrefix     = "org.mpris.MediaPlayer2."
	mprisPath       = "/org/mpris/MediaPlayer2"
	playerInterface = "org.mpris.MediaPlayer2.Player"
	propMetadata    = playerInterface + ".Metadata"
	propStatus      = playerInterface + ".PlaybackStatus"

	signalPropertiesChanged = "org.freedesktop.DBus.Properties.PropertiesChanged"
	signalNameOwnerChanged  = "org.freedesktop.DBus.NameOwnerChanged"
)

// parseStatus maps an MPRIS PlaybackStatus. Anything unknown is Stopped.
func parseStatus(status string) domain.PlayerStatus {
	switch status {
	case "Playing":
		return domain.StatusPlaying
	case "Paused":
		return domain.StatusPaused
	default:
		return domain.StatusStopped
	}
}

// metadataFromMpris builds an event from an MPRIS Metadata map and status.
// A nil map yields an event carrying only the status.
func metadataFromMpris(metadata map[string]dbus.Variant, status string) domain.MediaMetadata {
	meta := domain.MediaMetadata{Status: parseStatus(status)}
	if metadata == nil {
		return meta
	}

	meta.Title = stringValue(metadata, "xesam:title")
	meta.Artist = firstArtist(variantValue(metadata, "xesam:artist"))
	meta.Album = stringValue(metadata, "xesam:album")
	meta.ArtUrl = stringValue(metadata, "mpris:artUrl")
	meta.URL = stringValue(metadata, "xesam:url")
	meta.Lyrics = stringValue(metadata, "xesam:asText")

	switch id := variantValue(metadata, "mpris:trackid").(type) {
	case dbus.ObjectPath:
		meta.MediaID = string(id)
	case string:
		meta.MediaID = id
	}
	return meta
}

// firstArtist accepts the list form of xesam:artist and the plain string
// some players send.
func firstArtist(v any) string {
	switch artists := v.(type) {
	case []string:
		if len(artists) > 0 {
			return artists[0]
		}
	case string:
		return artists
	}
	return ""
}

func variantValue(metadata map[string]dbus.Variant, key string) any {
	v, ok := metadata[key]
	if !ok {
		return nil
	}
	return v.Value()
}

func stringValue(metadata map[string]dbus.Variant, key string) string {
	s, _ := variantValue(metadata, key).(string)
	return s
}

// changedPlayerProps extracts the changed properties from a PropertiesChanged
// signal on the MPRIS player interface. The body is (interface string,
// changed map[string]Variant, invalidated []string).
func changedPlayerProps(sig *dbus.Signal) (map[string]dbus.Variant, bool) {
	if sig.Name != signalPropertiesChanged || len(sig.Body) < 2 {
		return nil, false
	}
	if iface, ok := sig.Body[0].(string); !ok || iface != playerInterface {
		return nil, false
	}
	changed, ok := sig.Body[1].(map[string]dbus.Variant)
	return changed, ok
}

// playerRegistry maps unique bus names (":1.45") to the well-known MPRIS
// names that own them.
type playerRegistry struct {
	mu    sync.RWMutex
	names map[string]string
}

func newPlayerRegistry() *playerRegistry {
	return &playerRegistry{names: make(map[string]string)}
}

func (r *playerRegistry) track(unique, wellKnown string) {
	r.mu.Lock()
	r.names[unique] = wellKnown
	r.mu.Unlock()
}

func (r *playerRegistry) forget(unique string) {
	r.mu.Lock()
	delete(r.names, unique)
	r.mu.Unlock()
}

// name returns the well-known name for unique, or unique when untracked.
func (r *playerRegistry) name(unique string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if wellKnown, ok := r.names[unique]; ok {
		return wellKnown
	}
	return unique
}

func (r *playerRegistry) lookup(unique string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wellKnown, ok := r.names[unique]
	return wellKnown, ok
}

func (r *playerRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

func isMprisName(name string) bool {
	return strings.HasPrefix(name, mprisPrefix)
}
