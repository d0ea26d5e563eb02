// Package session implements the per-session event loop: a single
// goroutine processes client messages and timer ticks strictly
// sequentially, so GameState needs no locking. The shape is grounded on
// the teacher's Session.Run/runLoop — one goroutine selecting over a
// receive channel and multiple time.Timers, translating each event into
// state changes and outbound sends.
package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/dantte-lp/antcolonyd/internal/apperr"
	"github.com/dantte-lp/antcolonyd/internal/game"
	"github.com/dantte-lp/antcolonyd/internal/metrics"
	"github.com/dantte-lp/antcolonyd/internal/protocol"
	"github.com/dantte-lp/antcolonyd/internal/recording"
	"github.com/google/uuid"
)

// TickPlayersInterval and TickEvaporateInterval are the authoritative
// broadcast and decay cadences.
const (
	TickPlayersInterval   = 1 * time.Second
	TickEvaporateInterval = 5 * time.Second
)

const eventQueueSize = 64

// outboundBuffer is the buffer size of a per-player outbound channel. A
// send that would block past this is treated as a failed delivery and
// demotes the player's channel to absent, per the non-blocking-send
// contract in the design notes.
const outboundBuffer = 32

type event interface{ isSessionEvent() }

type initPlayerEvent struct {
	id  uuid.UUID
	out chan<- protocol.Message
}

func (initPlayerEvent) isSessionEvent() {}

type clientMessageEvent struct {
	id  uuid.UUID
	msg protocol.Message
}

func (clientMessageEvent) isSessionEvent() {}

type tickPlayersEvent struct{}

func (tickPlayersEvent) isSessionEvent() {}

type tickEvaporateEvent struct{}

func (tickEvaporateEvent) isSessionEvent() {}

// Session owns one GameState, an inbound event queue, and the per-player
// outbound channel table. Every method below except StartNew runs only on
// the engine's own goroutine.
type Session struct {
	id       uuid.UUID
	state    *game.GameState
	channels map[uuid.UUID]chan<- protocol.Message

	events chan event

	recorder  *recording.Recorder
	onFinish  func(recording.GameRecord)
	logger    *slog.Logger
	metrics   *metrics.Collector

	// self is the session's own strong reference to its Handle. It is the
	// last reference dropped on termination.
	self *Handle
}

// StartNew spawns a session engine over state and returns its Handle once
// published. If recorded is true, every client-originated message is
// appended to a Recorder; onFinish, if non-nil, receives the finalized
// GameRecord when the session terminates.
func StartNew(ctx context.Context, state *game.GameState, recorded bool, logger *slog.Logger, mcs *metrics.Collector, onFinish func(recording.GameRecord)) *Handle {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		id:       uuid.New(),
		state:    state,
		channels: make(map[uuid.UUID]chan<- protocol.Message),
		events:   make(chan event, eventQueueSize),
		logger:   logger,
		metrics:  mcs,
		onFinish: onFinish,
	}
	if recorded {
		s.recorder = recording.NewRecorder(*state.Maze)
	}

	h := &Handle{ID: s.id, Maze: *state.Maze, events: s.events}
	s.self = h

	if mcs != nil {
		mcs.RegisterSession()
	}

	go s.run(ctx)

	return h
}

func (s *Session) run(ctx context.Context) {
	playersTicker := time.NewTicker(TickPlayersInterval)
	evaporateTicker := time.NewTicker(TickEvaporateInterval)
	defer playersTicker.Stop()
	defer evaporateTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.terminate()
			return
		case ev := <-s.events:
			s.handle(ev)
		case <-playersTicker.C:
			if s.tickPlayers() {
				s.terminate()
				return
			}
		case <-evaporateTicker.C:
			s.state.Evaporate()
			if s.metrics != nil {
				s.metrics.IncEvaporateCycles()
			}
		}
	}
}

func (s *Session) handle(ev event) {
	switch e := ev.(type) {
	case initPlayerEvent:
		s.handleInitPlayer(e)
	case clientMessageEvent:
		s.handleClientMessage(e)
	default:
		s.logger.Warn("session: unknown event type")
	}
}

func (s *Session) handleInitPlayer(e initPlayerEvent) {
	existing, known := s.channels[e.id]
	if known && existing != nil {
		s.sendTo(e.out, protocol.NewError(apperr.AlreadyConnected()))
		return
	}

	s.state.InitPlayer(e.id)
	s.channels[e.id] = e.out
	s.self.playerCount.Store(int32(len(s.channels)))

	if s.metrics != nil {
		s.metrics.SetPlayerCount(len(s.channels))
	}
}

func (s *Session) handleClientMessage(e clientMessageEvent) {
	if s.recorder != nil {
		s.recorder.Track(e.id, e.msg)
	}

	moveBody, ok := e.msg.Body.(protocol.MoveBody)
	if !ok {
		ch, known := s.channels[e.id]
		if known && ch != nil {
			received := e.msg
			s.sendTo(ch, protocol.NewUnexpected([]protocol.Tag{protocol.TagMove}, &received))
		}
		return
	}

	player := s.state.InitPlayer(e.id)
	s.state.ProcessMove(s.logger, player, moveBody.Direction)
	if s.metrics != nil {
		s.metrics.IncMovesProcessed()
	}

	ch, known := s.channels[e.id]
	if !known || ch == nil {
		return
	}
	s.sendTo(ch, protocol.NewInfo(player.Column, player.Line, player.HasFood, s.state.Pheromone.Snapshot()))
}

// tickPlayers broadcasts a snapshot to every present player and reports
// whether the session should terminate (at least one player registered and
// every channel absent). A session with no registered player never reports
// termination here.
func (s *Session) tickPlayers() (allAbsent bool) {
	allAbsent = true
	for id, ch := range s.channels {
		if ch == nil {
			continue
		}
		allAbsent = false

		player := s.state.Players[id]
		if player == nil {
			continue
		}
		s.sendTo(ch, protocol.NewInfo(player.Column, player.Line, player.HasFood, s.state.Pheromone.Snapshot()))
	}
	return allAbsent && len(s.channels) > 0
}

// sendTo attempts a non-blocking send; when the channel's buffer is full it
// demotes the owning player's channel to absent. Outbound channels are
// never closed by their owners, and a send on a closed channel would panic.
func (s *Session) sendTo(ch chan<- protocol.Message, msg protocol.Message) {
	select {
	case ch <- msg:
	default:
		for id, c := range s.channels {
			if c == ch {
				s.channels[id] = nil
			}
		}
	}
}

func (s *Session) terminate() {
	if s.metrics != nil {
		s.metrics.UnregisterSession()
	}
	if s.recorder != nil && s.onFinish != nil {
		s.onFinish(s.recorder.Finish())
	}
	// Drop the engine's own strong reference. Once every client bridge has
	// also released its reference, the Handle becomes unreachable and the
	// lobby's weak.Pointer stops upgrading.
	s.self = nil
}
