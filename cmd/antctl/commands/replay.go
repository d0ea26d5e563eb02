package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/google/uuid"

	"github.com/dantte-lp/antcolonyd/internal/protocol"
	"github.com/dantte-lp/antcolonyd/internal/recording"
)

func replayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <recording.json>",
		Short: "Replay a recorded game locally and print every reply",
		Long:  "replay loads a recorded game (a recording.GameRecord encoded as JSON) and feeds it through a fresh local session at the recorded pace, printing every message the session emits. The antd server does not write such files itself.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runReplay(args[0])
		},
	}
	return cmd
}

func runReplay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read recording: %w", err)
	}

	var record recording.GameRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("decode recording: %w", err)
	}

	recording.Replay(context.Background(), record, nil, nil, func(player uuid.UUID, msg protocol.Message) {
		body, err := json.Marshal(msg.Body)
		if err != nil {
			fmt.Fprintf(os.Stderr, "marshal message for %s: %v\n", player, err)
			return
		}
		fmt.Printf("%s %s %s\n", player, msg.Type, body)
	})

	return nil
}
