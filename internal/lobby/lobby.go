// Package lobby implements the accept+matchmaking coordinator: one
// goroutine owns the games list and the player->session map, resolving
// join requests and periodically pruning dead session references. The
// registry/demux shape is grounded on the teacher's bfd.Manager — a single
// owner of session maps, a lookup-by-id and lookup-by-key pair, and a
// periodic reconcile/prune pass.
package lobby

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"
	"weak"

	"github.com/dantte-lp/antcolonyd/internal/config"
	"github.com/dantte-lp/antcolonyd/internal/game"
	"github.com/dantte-lp/antcolonyd/internal/generator"
	"github.com/dantte-lp/antcolonyd/internal/maze"
	"github.com/dantte-lp/antcolonyd/internal/metrics"
	"github.com/dantte-lp/antcolonyd/internal/recording"
	"github.com/dantte-lp/antcolonyd/internal/session"
	"github.com/google/uuid"
)

// HousekeepInterval is the cadence at which dead session references are
// pruned.
const HousekeepInterval = 5 * time.Second

// JoinRequest mirrors the join message's difficulty and optional existing
// player id.
type JoinRequest struct {
	Difficulty uint32
	PlayerID   *uuid.UUID
}

// Outcome is the lobby's reply to a JoinRequest. On success PlayerID and
// Handle are set; Expired is set when the requested player id is unknown or
// its session has ended; Err is set on failure.
type Outcome struct {
	PlayerID uuid.UUID
	Handle   *session.Handle
	Expired  bool
	Err      error
}

type matchmakingEvent struct {
	ctx   context.Context
	req   JoinRequest
	reply chan<- Outcome
}

type housekeepEvent struct{}

type lobbyEvent interface{ isLobbyEvent() }

func (matchmakingEvent) isLobbyEvent() {}
func (housekeepEvent) isLobbyEvent()   {}

// Lobby owns the games list and the player->session map. It is safe to
// call Matchmake concurrently; each call posts an event onto a single
// internal queue processed by Run.
type Lobby struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Collector
	rng     *rand.Rand

	games         []weak.Pointer[session.Handle]
	playerSession map[uuid.UUID]weak.Pointer[session.Handle]

	events chan lobbyEvent
}

// New builds a Lobby with the given config, logger and optional metrics
// collector.
func New(cfg *config.Config, logger *slog.Logger, mcs *metrics.Collector) *Lobby {
	if logger == nil {
		logger = slog.Default()
	}
	return &Lobby{
		cfg:           cfg,
		logger:        logger,
		metrics:       mcs,
		rng:           rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0xA17C010)),
		playerSession: make(map[uuid.UUID]weak.Pointer[session.Handle]),
		events:        make(chan lobbyEvent, 256),
	}
}

// Matchmake submits a join request and blocks until the lobby replies.
func (l *Lobby) Matchmake(ctx context.Context, req JoinRequest) Outcome {
	reply := make(chan Outcome, 1)
	select {
	case l.events <- matchmakingEvent{ctx: ctx, req: req, reply: reply}:
	case <-ctx.Done():
		return Outcome{Err: ctx.Err()}
	}

	select {
	case out := <-reply:
		return out
	case <-ctx.Done():
		return Outcome{Err: ctx.Err()}
	}
}

// Run drives the lobby's event loop and the housekeeping ticker until ctx
// is cancelled.
func (l *Lobby) Run(ctx context.Context) {
	ticker := time.NewTicker(HousekeepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-l.events:
			l.handle(ctx, ev)
		case <-ticker.C:
			l.handle(ctx, housekeepEvent{})
		}
	}
}

func (l *Lobby) handle(ctx context.Context, ev lobbyEvent) {
	switch e := ev.(type) {
	case matchmakingEvent:
		e.reply <- l.resolve(e.ctx, e.req)
	case housekeepEvent:
		l.housekeep()
	}
}

func (l *Lobby) resolve(ctx context.Context, req JoinRequest) Outcome {
	if req.PlayerID != nil {
		weakHandle, known := l.playerSession[*req.PlayerID]
		if known {
			if h := weakHandle.Value(); h != nil {
				if l.metrics != nil {
					l.metrics.IncReconnects()
				}
				return Outcome{PlayerID: *req.PlayerID, Handle: h}
			}
		}
		if l.metrics != nil {
			l.metrics.IncMatchmakingErrors()
		}
		return Outcome{Expired: true}
	}

	for _, wp := range l.games {
		if h := wp.Value(); h != nil {
			id := uuid.New()
			l.playerSession[id] = wp
			return Outcome{PlayerID: id, Handle: h}
		}
	}

	m, err := l.generateMaze(req.Difficulty)
	if err != nil {
		if l.metrics != nil {
			l.metrics.IncMatchmakingErrors()
		}
		return Outcome{Err: err}
	}

	state := game.New(m)
	// No onFinish callback is passed: when lobby.recordGames is set the
	// session records its messages, but the finished GameRecord is not
	// written anywhere and is discarded when the session ends.
	var onFinish func(recording.GameRecord)
	handle := session.StartNew(ctx, state, l.cfg.Lobby.RecordGames, l.logger, l.metrics, onFinish)

	wp := weak.Make(handle)
	l.games = append(l.games, wp)

	id := uuid.New()
	l.playerSession[id] = wp

	return Outcome{PlayerID: id, Handle: handle}
}

func (l *Lobby) generateMaze(difficulty uint32) (*maze.Maze, error) {
	gc := l.cfg.Generator
	w := gc.ColumnMin + uint32(gc.ColumnCoeff*float64(difficulty))
	h := gc.LineMin + uint32(gc.LineCoeff*float64(difficulty))
	food := gc.NbFoodMin + uint32(gc.NbFoodCoeff*float64(difficulty))

	params := generator.Params{
		Width: w, Height: h,
		FoodCount:     food,
		CarvingPasses: gc.CarvingAmount,
		Nest: generator.NestPosition{
			Fixed:      !gc.NestPos.Randomized,
			X:          gc.NestPos.X,
			Y:          gc.NestPos.Y,
			Randomized: gc.NestPos.Randomized,
		},
	}
	return generator.Generate(params, l.rng)
}

// housekeep retains only weak references that still upgrade, in both the
// games list and the player map.
func (l *Lobby) housekeep() {
	alive := l.games[:0]
	for _, wp := range l.games {
		h := wp.Value()
		if h == nil {
			continue
		}
		alive = append(alive, wp)

		snap := h.Snapshot()
		l.logger.Debug("lobby: live session",
			slog.String("session_id", snap.ID.String()),
			slog.Int("players", snap.PlayerCount),
			slog.Uint64("width", uint64(snap.Width)),
			slog.Uint64("height", uint64(snap.Height)),
		)
	}
	l.games = alive

	for id, wp := range l.playerSession {
		if wp.Value() == nil {
			delete(l.playerSession, id)
		}
	}

	if l.metrics != nil {
		l.metrics.Sessions.Set(float64(len(l.games)))
	}
}
