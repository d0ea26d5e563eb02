package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/dantte-lp/antcolonyd/internal/aidriver"
	"github.com/dantte-lp/antcolonyd/internal/maze"
	"github.com/dantte-lp/antcolonyd/internal/protocol"
)

func joinCmd() *cobra.Command {
	var difficulty uint32
	var ai string
	var rounds int

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join a game over the wire protocol",
		Long:  "join connects to an antd daemon, negotiates entry into a session, and either drives an AI for a fixed number of rounds or prints every message it receives for manual inspection.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runJoin(serverAddr, difficulty, ai, rounds)
		},
	}

	cmd.Flags().Uint32Var(&difficulty, "difficulty", 0, "requested game difficulty")
	cmd.Flags().StringVar(&ai, "ai", "none", "drive the session with an AI: none, random, greedy")
	cmd.Flags().IntVar(&rounds, "rounds", 20, "number of info/move rounds to run before disconnecting (ai mode only)")

	return cmd
}

func runJoin(addr string, difficulty uint32, ai string, rounds int) error {
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	if err := protocol.WriteMessage(conn, protocol.NewJoin(difficulty, nil)); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	msg, err := protocol.ReadMessage(conn)
	if err != nil {
		return fmt.Errorf("read reply: %w", err)
	}

	switch body := msg.Body.(type) {
	case protocol.ErrorBody:
		return fmt.Errorf("server refused join: %s: %s", body.Kind, body.Message)
	case protocol.OkMazeBody:
		fmt.Printf("joined as %s, maze %dx%d\n", body.PlayerID, body.Maze.Width, body.Maze.Height)
		m := body.Maze
		if ai == "none" {
			return printIncoming(conn)
		}
		return driveAI(conn, &m, ai, rounds)
	default:
		return fmt.Errorf("unexpected reply type %q", msg.Type)
	}
}

func driveAI(conn net.Conn, m *maze.Maze, ai string, rounds int) error {
	var driver aidriver.Driver
	switch ai {
	case "random":
		driver = aidriver.NewRandomDriver(nil)
	case "greedy":
		driver = aidriver.NewGreedyDriver(nil)
	default:
		return fmt.Errorf("unknown ai %q, want random or greedy", ai)
	}

	for i := 0; i < rounds; i++ {
		msg, err := protocol.ReadMessage(conn)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read info: %w", err)
		}

		info, ok := msg.Body.(protocol.InfoBody)
		if !ok {
			continue
		}

		dir := driver.Step(m, &info)
		if dir == nil {
			continue
		}
		if err := protocol.WriteMessage(conn, protocol.NewMove(*dir)); err != nil {
			return fmt.Errorf("send move: %w", err)
		}
	}
	return nil
}

func printIncoming(conn net.Conn) error {
	for {
		msg, err := protocol.ReadMessage(conn)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}
		body, err := json.Marshal(msg.Body)
		if err != nil {
			return fmt.Errorf("marshal message for display: %w", err)
		}
		fmt.Printf("%s %s\n", msg.Type, body)
	}
}
