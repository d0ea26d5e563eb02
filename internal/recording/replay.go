package recording

import (
	"context"
	"log/slog"
	"time"

	"github.com/dantte-lp/antcolonyd/internal/game"
	"github.com/dantte-lp/antcolonyd/internal/metrics"
	"github.com/dantte-lp/antcolonyd/internal/protocol"
	"github.com/dantte-lp/antcolonyd/internal/session"
	"github.com/google/uuid"
)

// replayOutboundBuffer mirrors the buffer size the session engine assumes
// for a player's outbound channel.
const replayOutboundBuffer = 32

// Sink receives every message a replayed session emits for player.
type Sink func(player uuid.UUID, msg protocol.Message)

// Replay starts a fresh session over the recorded maze and feeds it the
// recorded message list at the recorded pace, the same shape bridge.Serve
// uses to join a live connection to a session: one outbound channel per
// observed player, drained into sink, and client-originated messages fed
// in through the session's own Handle.ClientMessage. It returns once every
// recorded message has been replayed or ctx is cancelled.
func Replay(ctx context.Context, record GameRecord, logger *slog.Logger, mcs *metrics.Collector, sink Sink) {
	if logger == nil {
		logger = slog.Default()
	}

	mazeCopy := record.Maze
	state := game.New(&mazeCopy)
	handle := session.StartNew(ctx, state, false, logger, mcs, nil)

	for _, id := range record.Players {
		out := make(chan protocol.Message, replayOutboundBuffer)
		handle.InitPlayer(id, out)
		go drainToSink(ctx, id, out, sink)
	}

	for _, rec := range record.Messages {
		if rec.Delay > 0 {
			select {
			case <-time.After(rec.Delay):
			case <-ctx.Done():
				return
			}
		}
		handle.ClientMessage(rec.Player, rec.Message)
	}
}

func drainToSink(ctx context.Context, id uuid.UUID, out <-chan protocol.Message, sink Sink) {
	for {
		select {
		case msg, ok := <-out:
			if !ok {
				return
			}
			if sink != nil {
				sink(id, msg)
			}
		case <-ctx.Done():
			return
		}
	}
}
