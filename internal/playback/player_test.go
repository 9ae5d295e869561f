package playback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/genricoloni/amplayer/internal/domain"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

var _ domain.Monitor = (*QueuePlayer)(nil)
var _ domain.Player = (*QueuePlayer)(nil)

func drain(p *QueuePlayer) []domain.MediaMetadata {
	var out []domain.MediaMetadata
	for {
		select {
		case ev := <-p.Events():
			out = append(out, ev)
		default:
			return out
		}
	}
}

func statuses(events []domain.MediaMetadata) []string {
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.MediaID + ":" + string(ev.Status)
	}
	return out
}

func TestQueuePlayer_Transitions(t *testing.T) {
	tests := []struct {
		name     string
		run      func(*QueuePlayer)
		expected []string
		status   domain.PlayerStatus
	}{
		{
			name: "SetQueue Alone Is Silent",
			run: func(p *QueuePlayer) {
				p.SetQueue(testCatalog)
				p.SetPlayWhenReady(true)
			},
			expected: []string{},
			status:   domain.StatusStopped,
		},
		{
			name: "Seek Prepares Playing",
			run: func(p *QueuePlayer) {
				p.SetPlayWhenReady(true)
				p.SetQueue(testCatalog)
				_ = p.SeekTo(1)
			},
			expected: []string{"b:Playing"},
			status:   domain.StatusPlaying,
		},
		{
			name: "Seek Prepares Paused",
			run: func(p *QueuePlayer) {
				p.SetQueue(testCatalog)
				_ = p.SeekTo(0)
			},
			expected: []string{"a:Paused"},
			status:   domain.StatusPaused,
		},
		{
			name: "Play Pause Play",
			run: func(p *QueuePlayer) {
				p.SetQueue(testCatalog)
				_ = p.SeekTo(0)
				p.Play()
				p.Play()
				p.Pause()
				p.SetPlayWhenReady(true)
			},
			expected: []string{"a:Paused", "a:Playing", "a:Paused", "a:Playing"},
			status:   domain.StatusPlaying,
		},
		{
			name: "Next And Previous",
			run: func(p *QueuePlayer) {
				p.SetPlayWhenReady(true)
				p.SetQueue(testCatalog)
				_ = p.SeekTo(0)
				_ = p.Next()
				_ = p.Next()
				_ = p.Previous()
			},
			expected: []string{"a:Playing", "b:Playing", "c:Playing", "b:Playing"},
			status:   domain.StatusPlaying,
		},
		{
			name: "Stop Keeps Queue",
			run: func(p *QueuePlayer) {
				p.SetPlayWhenReady(true)
				p.SetQueue(testCatalog)
				_ = p.SeekTo(2)
				p.StopPlayback(false)
				p.StopPlayback(false)
			},
			expected: []string{"c:Playing", "c:Stopped"},
			status:   domain.StatusStopped,
		},
		{
			name: "Stop With Reset",
			run: func(p *QueuePlayer) {
				p.SetPlayWhenReady(true)
				p.SetQueue(testCatalog)
				_ = p.SeekTo(0)
				p.StopPlayback(true)
			},
			expected: []string{"a:Playing", ":Stopped"},
			status:   domain.StatusStopped,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewQueuePlayer(zap.NewNop())
			tt.run(p)

			if diff := cmp.Diff(tt.expected, statuses(drain(p))); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
			if p.Status() != tt.status {
				t.Errorf("status: expected %s, got %s", tt.status, p.Status())
			}
		})
	}
}

func TestQueuePlayer_EventCarriesTrack(t *testing.T) {
	p := NewQueuePlayer(zap.NewNop())
	p.SetQueue(testCatalog)
	if err := p.SeekTo(1); err != nil {
		t.Fatal(err)
	}

	events := drain(p)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	want := domain.MediaMetadata{
		MediaID: "b",
		Title:   "B",
		URL:     "https://example.com/b.mp3",
		Status:  domain.StatusPaused,
	}
	if diff := cmp.Diff(want, events[0]); diff != "" {
		t.Errorf("event mismatch (-want +got):\n%s", diff)
	}
}

func TestQueuePlayer_OutOfRange(t *testing.T) {
	p := NewQueuePlayer(zap.NewNop())

	if err := p.Next(); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Next on empty queue: expected ErrIndexOutOfRange, got %v", err)
	}

	p.SetQueue(testCatalog)
	for _, index := range []int{-1, 3} {
		if err := p.SeekTo(index); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("SeekTo(%d): expected ErrIndexOutOfRange, got %v", index, err)
		}
	}

	_ = p.SeekTo(2)
	if err := p.Next(); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Next past the end: expected ErrIndexOutOfRange, got %v", err)
	}
	if cur, _ := p.Current(); cur.MediaID != "c" {
		t.Errorf("failed seek must not move the player, current is %q", cur.MediaID)
	}
}

func TestQueuePlayer_SetQueueCopies(t *testing.T) {
	tracks := append([]domain.Track(nil), testCatalog...)
	p := NewQueuePlayer(zap.NewNop())
	p.SetQueue(tracks)
	tracks[0].Title = "mutated"

	if cur, _ := p.Current(); cur.Title != "A" {
		t.Errorf("queue shares memory with the caller: %q", cur.Title)
	}
}

func TestQueuePlayer_FullChannelDrops(t *testing.T) {
	p := NewQueuePlayer(zap.NewNop())
	p.SetQueue(testCatalog)

	for range cap(p.events) + 5 {
		p.Play()
		p.Pause()
	}

	if got := len(drain(p)); got != cap(p.events) {
		t.Errorf("expected %d buffered events, got %d", cap(p.events), got)
	}
}

func TestQueuePlayer_StartStop(t *testing.T) {
	p := NewQueuePlayer(zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- p.Start(context.Background()) }()

	// Start is idempotent while running; give the first call time to win.
	time.Sleep(20 * time.Millisecond)
	if err := p.Start(context.Background()); err != nil {
		t.Errorf("second Start: %v", err)
	}

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Start did not return after Stop")
	}

	if _, open := <-p.Events(); open {
		t.Error("events channel should be closed")
	}

	// Changes after Stop must not panic on the closed channel.
	p.SetQueue(testCatalog)
	if err := p.SeekTo(0); err != nil {
		t.Errorf("SeekTo after Stop: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}

func TestQueuePlayer_StartHonoursContext(t *testing.T) {
	p := NewQueuePlayer(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
