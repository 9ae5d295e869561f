//go:build !unix

package main

import (
	"context"

	"github.com/genricoloni/amplayer/internal/playback"
	"go.uber.org/zap"
)

// watchControls is a no-op where SIGUSR1 and SIGUSR2 do not exist.
func watchControls(ctx context.Context, logger *zap.Logger, player *playback.QueuePlayer) {}
