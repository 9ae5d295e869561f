//go:build linux

package monitor

import (
	"errors"
	"testing"
	"time"

	"github.com/genricoloni/amplayer/internal/domain"
	"github.com/genricoloni/amplayer/internal/monitor/mocks"
	"github.com/godbus/dbus/v5"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func propertiesChanged(sender string, props map[string]dbus.Variant) *dbus.Signal {
	return &dbus.Signal{
		Name:   signalPropertiesChanged,
		Sender: sender,
		Body:   []interface{}{playerInterface, props, []string{}},
	}
}

func expectEvent(t *testing.T, mon *MprisMonitor) domain.MediaMetadata {
	t.Helper()
	select {
	case ev := <-mon.Events():
		return ev
	case <-time.After(time.Second):
		t.Fatal("Timeout: event was not emitted")
		return domain.MediaMetadata{}
	}
}

func expectNoEvent(t *testing.T, mon *MprisMonitor) {
	t.Helper()
	select {
	case ev := <-mon.Events():
		t.Errorf("Should NOT emit event, got %+v", ev)
	default:
	}
}

func TestHandleSignal(t *testing.T) {
	const sender = ":1.100"

	tests := []struct {
		name      string
		props     map[string]dbus.Variant
		setupMock func(*mocks.MockDBusClient)
		want      *domain.MediaMetadata
	}{
		{
			name: "Metadata And Status",
			props: map[string]dbus.Variant{
				"Metadata": dbus.MakeVariant(map[string]dbus.Variant{
					"xesam:title": dbus.MakeVariant("Song"),
					"xesam:url":   dbus.MakeVariant("file:///music/song.mp3"),
				}),
				"PlaybackStatus": dbus.MakeVariant("Playing"),
			},
			want: &domain.MediaMetadata{Title: "Song", URL: "file:///music/song.mp3", Status: domain.StatusPlaying},
		},
		{
			name:  "Status Only Asks For Metadata",
			props: map[string]dbus.Variant{"PlaybackStatus": dbus.MakeVariant("Paused")},
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().GetProperty(sender, mprisPath, propMetadata).
					Return(dbus.MakeVariant(map[string]dbus.Variant{"xesam:title": dbus.MakeVariant("Song")}), nil)
			},
			want: &domain.MediaMetadata{Title: "Song", Status: domain.StatusPaused},
		},
		{
			name: "Metadata Only Asks For Status",
			props: map[string]dbus.Variant{
				"Metadata": dbus.MakeVariant(map[string]dbus.Variant{"xesam:title": dbus.MakeVariant("Next")}),
			},
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().GetProperty(sender, mprisPath, propStatus).Return(dbus.MakeVariant("Playing"), nil)
			},
			want: &domain.MediaMetadata{Title: "Next", Status: domain.StatusPlaying},
		},
		{
			name:  "Failed Lookup Still Emits Status",
			props: map[string]dbus.Variant{"PlaybackStatus": dbus.MakeVariant("Stopped")},
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().GetProperty(sender, mprisPath, propMetadata).
					Return(dbus.Variant{}, errors.New("no reply"))
			},
			want: &domain.MediaMetadata{Status: domain.StatusStopped},
		},
		{
			name:  "Unrelated Properties",
			props: map[string]dbus.Variant{"Volume": dbus.MakeVariant(0.5)},
		},
		{
			name:  "Metadata Of Wrong Type",
			props: map[string]dbus.Variant{"Metadata": dbus.MakeVariant(12345)},
		},
		{
			name:  "Status Of Wrong Type",
			props: map[string]dbus.Variant{"PlaybackStatus": dbus.MakeVariant([]string{"Playing"})},
		},
		{
			name: "Valid Metadata With Status Of Wrong Type",
			props: map[string]dbus.Variant{
				"Metadata":       dbus.MakeVariant(map[string]dbus.Variant{"xesam:title": dbus.MakeVariant("Song")}),
				"PlaybackStatus": dbus.MakeVariant(int32(2)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockDBusClient(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(client)
			}

			mon := NewMprisMonitor(zap.NewNop())
			mon.handleSignal(client, propertiesChanged(sender, tt.props))

			if tt.want == nil {
				expectNoEvent(t, mon)
				return
			}
			if got := expectEvent(t, mon); got != *tt.want {
				t.Errorf("expected %+v, got %+v", *tt.want, got)
			}
		})
	}
}

func TestHandleSignal_IgnoresOtherSignals(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockDBusClient(ctrl)
	mon := NewMprisMonitor(zap.NewNop())

	mon.handleSignal(client, &dbus.Signal{
		Name: "org.freedesktop.DBus.Properties.PropertiesChanged",
		Body: []interface{}{"org.mpris.MediaPlayer2.TrackList", map[string]dbus.Variant{
			"PlaybackStatus": dbus.MakeVariant("Playing"),
		}},
	})
	expectNoEvent(t, mon)
}

func TestHandleSignal_FullChannelDrops(t *testing.T) {
	mon := NewMprisMonitor(zap.NewNop())
	props := map[string]dbus.Variant{
		"Metadata":       dbus.MakeVariant(map[string]dbus.Variant{}),
		"PlaybackStatus": dbus.MakeVariant("Playing"),
	}

	for i := 0; i < cap(mon.events)+5; i++ {
		mon.handleSignal(nil, propertiesChanged(":1.1", props))
	}
	if len(mon.events) != cap(mon.events) {
		t.Errorf("expected a full channel of %d, got %d", cap(mon.events), len(mon.events))
	}
	if mon.lastDropWarning.IsZero() {
		t.Error("expected the drop to be logged")
	}
}

func TestHandleNameOwnerChanged(t *testing.T) {
	const spotify = "org.mpris.MediaPlayer2.spotify"

	tests := []struct {
		name      string
		body      []interface{}
		known     map[string]string
		setupMock func(*mocks.MockDBusClient)
		want      map[string]string
		wantEvent bool
	}{
		{
			name: "New Player Appears",
			body: []interface{}{spotify, "", ":1.50"},
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().GetProperty(spotify, mprisPath, propMetadata).
					Return(dbus.MakeVariant(map[string]dbus.Variant{"xesam:title": dbus.MakeVariant("Hello")}), nil)
				m.EXPECT().GetProperty(spotify, mprisPath, propStatus).Return(dbus.MakeVariant("Playing"), nil)
			},
			want:      map[string]string{":1.50": spotify},
			wantEvent: true,
		},
		{
			name:  "Player Disappears",
			body:  []interface{}{spotify, ":1.50", ""},
			known: map[string]string{":1.50": spotify},
			want:  map[string]string{},
		},
		{
			name:  "Ownership Moves",
			body:  []interface{}{spotify, ":1.50", ":1.51"},
			known: map[string]string{":1.50": spotify},
			want:  map[string]string{":1.51": spotify},
		},
		{
			name: "Non-MPRIS Service Ignored",
			body: []interface{}{"com.example.service", "", ":1.99"},
			want: map[string]string{},
		},
		{
			name: "Short Body Ignored",
			body: []interface{}{spotify, ""},
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockDBusClient(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(client)
			}

			mon := NewMprisMonitor(zap.NewNop())
			for unique, name := range tt.known {
				mon.players.track(unique, name)
			}

			mon.handleNameOwnerChanged(client, &dbus.Signal{Name: signalNameOwnerChanged, Body: tt.body})

			if mon.players.len() != len(tt.want) {
				t.Errorf("expected %d tracked players, got %d", len(tt.want), mon.players.len())
			}
			for unique, name := range tt.want {
				if got, ok := mon.players.lookup(unique); !ok || got != name {
					t.Errorf("expected %s to map to %s, got %q", unique, name, got)
				}
			}

			if tt.wantEvent {
				if ev := expectEvent(t, mon); ev.Title != "Hello" {
					t.Errorf("unexpected event %+v", ev)
				}
			} else {
				expectNoEvent(t, mon)
			}
		})
	}
}
