// Package bridge implements the per-connection client bridge: negotiate a
// join, obtain a session handle from the lobby, then split into a reader
// task (client -> session) and a writer task (session -> client). The
// split-task-per-direction shape is grounded on the teacher's netio
// Receiver/sender pair, generalized from one socket per BFD peer to one
// socket per connected player.
package bridge

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"github.com/dantte-lp/antcolonyd/internal/apperr"
	"github.com/dantte-lp/antcolonyd/internal/lobby"
	"github.com/dantte-lp/antcolonyd/internal/protocol"
	"github.com/dantte-lp/antcolonyd/internal/session"
	"github.com/google/uuid"
)

// outboundBuffer mirrors the buffer size the session engine assumes for a
// player's outbound channel.
const outboundBuffer = 32

// Serve negotiates one accepted connection end-to-end: it blocks for the
// lifetime of the connection.
func Serve(ctx context.Context, conn net.Conn, lob *lobby.Lobby, logger *slog.Logger) {
	defer conn.Close()

	if logger == nil {
		logger = slog.Default()
	}

	msg, err := protocol.ReadMessage(conn)
	if err != nil {
		writeBestEffort(conn, protocol.NewError(apperr.Transmission(err)))
		return
	}

	joinBody, ok := msg.Body.(protocol.JoinBody)
	if !ok {
		received := msg
		writeBestEffort(conn, protocol.NewUnexpected([]protocol.Tag{protocol.TagJoin}, &received))
		return
	}

	outcome := lob.Matchmake(ctx, lobby.JoinRequest{Difficulty: joinBody.Difficulty, PlayerID: joinBody.PlayerID})
	switch {
	case outcome.Err != nil:
		writeBestEffort(conn, protocol.NewError(asAppError(outcome.Err)))
		return
	case outcome.Expired:
		writeBestEffort(conn, protocol.NewError(apperr.New(apperr.KindOther, "Invalid UUID or game doesn't exist anymore.")))
		return
	}

	handle := outcome.Handle
	playerID := outcome.PlayerID

	if err := protocol.WriteMessage(conn, protocol.NewOkMaze(handle.Maze, playerID)); err != nil {
		logger.Warn("bridge: write okMaze failed", "player", playerID, "error", err)
		return
	}

	out := make(chan protocol.Message, outboundBuffer)
	handle.InitPlayer(playerID, out)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		runWriter(conn, out)
	}()

	runReader(conn, handle, playerID, logger)

	conn.Close()
	<-writerDone
}

func runWriter(conn net.Conn, out <-chan protocol.Message) {
	for msg := range out {
		if err := protocol.WriteMessage(conn, msg); err != nil {
			return
		}
	}
}

func runReader(conn net.Conn, handle *session.Handle, playerID uuid.UUID, logger *slog.Logger) {
	for {
		msg, err := protocol.ReadMessage(conn)
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				logger.Debug("bridge: reader stopped", "player", playerID, "error", err)
			}
			return
		}
		handle.ClientMessage(playerID, msg)
	}
}

func writeBestEffort(conn net.Conn, msg protocol.Message) {
	_ = protocol.WriteMessage(conn, msg)
}

// asAppError forwards err as-is when it already carries a concrete
// apperr.Kind (e.g. the InvalidMaze a failed generation returns), falling
// back to KindOther only when it doesn't (a bare ctx.Err() and similar).
// This keeps the kind the client sees on the wire matching the failure
// that actually occurred instead of flattening everything to Other.
func asAppError(err error) *apperr.Error {
	if appErr, ok := apperr.As(err); ok {
		return appErr
	}
	return apperr.Other(err)
}
