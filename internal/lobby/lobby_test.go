package lobby_test

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/dantte-lp/antcolonyd/internal/config"
	"github.com/dantte-lp/antcolonyd/internal/lobby"
	"github.com/google/uuid"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Generator.ColumnMin = 5
	cfg.Generator.LineMin = 5
	cfg.Generator.NbFoodMin = 1
	cfg.Generator.NbFoodCoeff = 0
	cfg.Generator.ColumnCoeff = 0
	cfg.Generator.LineCoeff = 0
	return cfg
}

func TestMatchmakeNewGame(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lob := lobby.New(testConfig(), nil, nil)
	go lob.Run(ctx)

	out := lob.Matchmake(ctx, lobby.JoinRequest{Difficulty: 0})
	if out.Err != nil {
		t.Fatalf("matchmake: %v", out.Err)
	}
	if out.Expired {
		t.Fatal("new game reported expired")
	}
	if out.Handle == nil {
		t.Fatal("handle is nil")
	}
}

func TestMatchmakeReconnect(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lob := lobby.New(testConfig(), nil, nil)
	go lob.Run(ctx)

	first := lob.Matchmake(ctx, lobby.JoinRequest{Difficulty: 0})
	if first.Err != nil {
		t.Fatalf("matchmake: %v", first.Err)
	}

	id := first.PlayerID
	second := lob.Matchmake(ctx, lobby.JoinRequest{PlayerID: &id})
	if second.Err != nil {
		t.Fatalf("reconnect: %v", second.Err)
	}
	if second.Expired {
		t.Fatal("reconnect reported expired for a live session")
	}
	if second.PlayerID != id {
		t.Fatalf("reconnect player id = %s, want %s", second.PlayerID, id)
	}
	if second.Handle != first.Handle {
		t.Fatal("reconnect returned a different session handle")
	}
}

func TestMatchmakeUnknownIDExpired(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lob := lobby.New(testConfig(), nil, nil)
	go lob.Run(ctx)

	id := uuid.New()
	out := lob.Matchmake(ctx, lobby.JoinRequest{PlayerID: &id})
	if !out.Expired {
		t.Fatal("expected Expired for unknown player id")
	}
}

// spawnAndAbandon matchmakes a new session and returns only its player id,
// so the caller is left holding no strong reference to the session Handle:
// the lobby itself only ever holds a weak.Pointer to it.
func spawnAndAbandon(t *testing.T, ctx context.Context, lob *lobby.Lobby) uuid.UUID {
	t.Helper()
	out := lob.Matchmake(ctx, lobby.JoinRequest{Difficulty: 0})
	if out.Err != nil {
		t.Fatalf("matchmake: %v", out.Err)
	}
	return out.PlayerID
}

func TestHousekeepPrunesDeadSessions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lob := lobby.New(testConfig(), nil, nil)
	go lob.Run(ctx)

	sessionCtx, sessionCancel := context.WithCancel(ctx)
	id := spawnAndAbandon(t, sessionCtx, lob)

	sessionCancel()
	runtime.GC()
	time.Sleep(lobby.HousekeepInterval + 500*time.Millisecond)
	runtime.GC()

	reconnect := lob.Matchmake(ctx, lobby.JoinRequest{PlayerID: &id})
	if !reconnect.Expired {
		t.Fatal("expected reconnect to a terminated session to report Expired")
	}
}
