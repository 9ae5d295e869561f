//go:build unix

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/genricoloni/amplayer/internal/playback"
	"go.uber.org/zap"
)

// watchControls maps SIGUSR1 to the next track and SIGUSR2 to the previous
// one, so the local player can be driven with kill(1).
func watchControls(ctx context.Context, logger *zap.Logger, player *playback.QueuePlayer) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGUSR1, syscall.SIGUSR2)

	go func() {
		defer signal.Stop(signals)
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-signals:
				skip, name := player.Next, "next"
				if sig == syscall.SIGUSR2 {
					skip, name = player.Previous, "previous"
				}
				if err := skip(); err != nil {
					logger.Warn("Cannot skip track", zap.String("direction", name), zap.Error(err))
				}
			}
		}
	}()
}
