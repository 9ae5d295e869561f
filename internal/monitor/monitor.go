//go:build linux

package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/genricoloni/amplayer/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

// MprisMonitor follows desktop media players over the MPRIS D-Bus interface
// and turns their metadata into playback events.
type MprisMonitor struct {
	logger  *zap.Logger
	events  chan domain.MediaMetadata
	dial    func() (DBusClient, error)
	players *playerRegistry

	mu              sync.Mutex
	running         bool
	cancel          context.CancelFunc
	conn            DBusClient
	lastDropWarning time.Time
	wg              sync.WaitGroup // producers that may still send on events
}

// NewMprisMonitor creates a monitor on the session bus.
func NewMprisMonitor(logger *zap.Logger) *MprisMonitor {
	return newMprisMonitor(logger, dialSessionBus)
}

func newMprisMonitor(logger *zap.Logger, dial func() (DBusClient, error)) *MprisMonitor {
	return &MprisMonitor{
		logger:  logger,
		events:  make(chan domain.MediaMetadata, 10),
		dial:    dial,
		players: newPlayerRegistry(),
	}
}

// Start connects to the bus and blocks until ctx is cancelled or Stop is
// called.
func (m *MprisMonitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = true
	monitorCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.mu.Unlock()

	m.logger.Info("MPRIS monitor started")

	conn, err := m.dial()
	if err != nil {
		m.logger.Error("Failed to connect to session bus", zap.Error(err))
		m.abortStart(cancel)
		return fmt.Errorf("session bus connection failed: %w", err)
	}

	if err := m.subscribe(conn); err != nil {
		m.closeConn(conn)
		m.abortStart(cancel)
		return err
	}

	// Stop may have run while dialing. Producers are counted under the same
	// lock Stop takes, so it never closes events ahead of them.
	m.mu.Lock()
	if !m.running || monitorCtx.Err() != nil {
		m.mu.Unlock()
		m.closeConn(conn)
		return context.Canceled
	}
	m.conn = conn
	m.wg.Add(2)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		m.detectExistingPlayers(conn)
	}()
	go m.monitorSignals(monitorCtx, conn)

	<-monitorCtx.Done()
	m.logger.Info("MPRIS monitor stopped")
	return monitorCtx.Err()
}

// abortStart undoes the bookkeeping of a Start that failed before running.
func (m *MprisMonitor) abortStart(cancel context.CancelFunc) {
	m.mu.Lock()
	m.running, m.cancel = false, nil
	m.mu.Unlock()
	cancel()
}

// subscribe installs the match rules. Only the PropertiesChanged rule is
// required; without NameOwnerChanged players started later go unnoticed.
func (m *MprisMonitor) subscribe(conn DBusClient) error {
	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(mprisPath),
		dbus.WithMatchInterface("org.freedesktop.DBus.Properties"),
		dbus.WithMatchMember("PropertiesChanged"),
	); err != nil {
		m.logger.Error("Failed to add match signal", zap.Error(err))
		return fmt.Errorf("failed to add match signal: %w", err)
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus"),
		dbus.WithMatchMember("NameOwnerChanged"),
	); err != nil {
		m.logger.Warn("Failed to add NameOwnerChanged match signal", zap.Error(err))
	} else {
		m.logger.Debug("Dynamic player tracking enabled")
	}
	return nil
}

// Stop cancels Start, waits for producers and closes the events channel.
func (m *MprisMonitor) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}
	if m.cancel != nil {
		m.cancel()
	}
	m.running = false
	m.mu.Unlock()

	m.wg.Wait()
	close(m.events)

	m.mu.Lock()
	conn := m.conn
	m.conn = nil
	m.mu.Unlock()
	if conn != nil {
		m.closeConn(conn)
	}

	m.logger.Info("MPRIS monitor shutdown complete")
	return nil
}

// Events returns the channel playback changes are published on.
func (m *MprisMonitor) Events() <-chan domain.MediaMetadata {
	return m.events
}

func (m *MprisMonitor) closeConn(conn DBusClient) {
	if err := conn.Close(); err != nil {
		m.logger.Warn("Failed to close D-Bus connection", zap.Error(err))
	}
}

// detectExistingPlayers registers players already on the bus and emits
// their current state.
func (m *MprisMonitor) detectExistingPlayers(conn DBusClient) {
	names, err := conn.ListNames()
	if err != nil {
		m.logger.Warn("Failed to list bus names", zap.Error(err))
		return
	}

	count := 0
	for _, name := range names {
		if !isMprisName(name) {
			continue
		}
		count++
		m.logger.Info("Detected MPRIS player", zap.String("name", name))

		if unique, err := conn.GetNameOwner(name); err == nil {
			m.players.track(unique, name)
		}
		m.refresh(conn, name)
	}

	m.logger.Info("Player detection complete", zap.Int("count", count))
}

// refresh reads the full state of one player and emits it.
func (m *MprisMonitor) refresh(conn DBusClient, player string) {
	variant, err := conn.GetProperty(player, mprisPath, propMetadata)
	if err != nil {
		m.logger.Warn("Failed to fetch metadata", zap.String("player", player), zap.Error(err))
		return
	}
	// Idle players may report nothing useful here.
	metadata, ok := variant.Value().(map[string]dbus.Variant)
	if !ok {
		m.logger.Debug("Metadata variant is not a map, skipping", zap.String("player", player))
		return
	}

	statusVariant, err := conn.GetProperty(player, mprisPath, propStatus)
	if err != nil {
		m.logger.Warn("Failed to fetch playback status", zap.String("player", player), zap.Error(err))
		return
	}
	status, ok := statusVariant.Value().(string)
	if !ok {
		m.logger.Warn("Invalid playback status format", zap.String("player", player))
		return
	}

	m.emit(player, metadataFromMpris(metadata, status))
}

func (m *MprisMonitor) monitorSignals(ctx context.Context, conn DBusClient) {
	defer m.wg.Done()

	signals := make(chan *dbus.Signal, 10)
	conn.Signal(signals)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-signals:
			switch {
			case sig == nil:
			case sig.Name == signalNameOwnerChanged:
				m.handleNameOwnerChanged(conn, sig)
			default:
				m.handleSignal(conn, sig)
			}
		}
	}
}

// handleNameOwnerChanged keeps the registry in sync as players come and go.
func (m *MprisMonitor) handleNameOwnerChanged(conn DBusClient, sig *dbus.Signal) {
	if len(sig.Body) < 3 {
		return
	}
	name, ok := sig.Body[0].(string)
	if !ok || !isMprisName(name) {
		return
	}
	oldOwner, _ := sig.Body[1].(string)
	newOwner, _ := sig.Body[2].(string)

	if oldOwner != "" {
		m.players.forget(oldOwner)
	}
	if newOwner == "" {
		m.logger.Info("MPRIS player removed", zap.String("player", name), zap.String("unique", oldOwner))
		return
	}
	m.players.track(newOwner, name)

	if oldOwner == "" {
		m.logger.Info("New MPRIS player detected", zap.String("player", name), zap.String("unique", newOwner))
		m.refresh(conn, name)
	}
}

// handleSignal turns a PropertiesChanged signal into an event. A signal that
// carries only one of Metadata and PlaybackStatus is completed by asking the
// player for the other.
func (m *MprisMonitor) handleSignal(conn DBusClient, sig *dbus.Signal) {
	changed, ok := changedPlayerProps(sig)
	if !ok {
		return
	}

	metadataVariant, hasMetadata := changed["Metadata"]
	statusVariant, hasStatus := changed["PlaybackStatus"]
	if !hasMetadata && !hasStatus {
		return
	}

	var metadata map[string]dbus.Variant
	if hasMetadata {
		if metadata, ok = metadataVariant.Value().(map[string]dbus.Variant); !ok {
			m.logger.Warn("Invalid metadata format in signal, ignoring")
			return
		}
	}
	var status string
	if hasStatus {
		if status, ok = statusVariant.Value().(string); !ok {
			m.logger.Warn("Invalid playback status format in signal, ignoring")
			return
		}
	}

	// The signal is well formed; ask the player for whatever it left out.
	if !hasMetadata {
		if variant, err := conn.GetProperty(sig.Sender, mprisPath, propMetadata); err == nil {
			metadata, _ = variant.Value().(map[string]dbus.Variant)
		}
	}
	if !hasStatus {
		if variant, err := conn.GetProperty(sig.Sender, mprisPath, propStatus); err == nil {
			status, _ = variant.Value().(string)
		}
	}

	m.emit(m.players.name(sig.Sender), metadataFromMpris(metadata, status))
}

// emit sends without blocking and drops the event when the channel is full.
func (m *MprisMonitor) emit(player string, meta domain.MediaMetadata) {
	select {
	case m.events <- meta:
		m.logger.Info("Media change detected",
			zap.String("player", player),
			zap.String("title", meta.Title),
			zap.String("artist", meta.Artist),
			zap.String("status", string(meta.Status)))
	default:
		m.warnDropped()
	}
}

// warnDropped logs at most once every five seconds.
func (m *MprisMonitor) warnDropped() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if now := time.Now(); now.Sub(m.lastDropWarning) >= 5*time.Second {
		m.logger.Warn("Events channel full, dropping metadata")
		m.lastDropWarning = now
	}
}
