//go:build !linux

package monitor

import (
	"context"
	"errors"

	"github.com/genricoloni/amplayer/internal/domain"
	"go.uber.org/zap"
)

// ErrUnsupported is returned by Start outside Linux.
var ErrUnsupported = errors.New("MPRIS monitoring is only supported on Linux systems")

// MprisMonitor is unavailable on this platform. Use the local mode instead.
type MprisMonitor struct {
	logger *zap.Logger
	events chan domain.MediaMetadata
}

func NewMprisMonitor(logger *zap.Logger) *MprisMonitor {
	events := make(chan domain.MediaMetadata)
	close(events)
	return &MprisMonitor{logger: logger, events: events}
}

func (m *MprisMonitor) Start(ctx context.Context) error {
	m.logger.Error("MPRIS monitor requested on an unsupported platform")
	return ErrUnsupported
}

// Events returns a closed channel.
func (m *MprisMonitor) Events() <-chan domain.MediaMetadata {
	return m.events
}

func (m *MprisMonitor) Stop(ctx context.Context) error {
	return nil
}
