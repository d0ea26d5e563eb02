// Package protocol implements the tagged-union wire message model and the
// length-prefixed JSON framing codec used between clients and the server.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/dantte-lp/antcolonyd/internal/apperr"
	"github.com/dantte-lp/antcolonyd/internal/maze"
	"github.com/google/uuid"
)

// Tag identifies a message variant on the wire.
type Tag string

const (
	TagJoin       Tag = "join"
	TagOkMaze     Tag = "okMaze"
	TagInfo       Tag = "info"
	TagMove       Tag = "move"
	TagError      Tag = "error"
	TagUnexpected Tag = "unexpected"
)

// Message is the tagged-union envelope: {"type": tag, "body": payload}.
type Message struct {
	Type Tag  `json:"type"`
	Body Body `json:"body"`
}

// Body is implemented by every concrete payload type.
type Body interface {
	tag() Tag
}

// JoinBody is the client->server request to enter a session.
type JoinBody struct {
	Difficulty uint32     `json:"difficulty"`
	PlayerID   *uuid.UUID `json:"playerId"`
}

func (JoinBody) tag() Tag { return TagJoin }

// OkMazeBody is the server->client reply that admits a client into a
// session, carrying the full maze and the player's id.
type OkMazeBody struct {
	Maze     maze.Maze `json:"maze"`
	PlayerID uuid.UUID `json:"playerId"`
}

func (OkMazeBody) tag() Tag { return TagOkMaze }

// InfoBody is a periodic or move-triggered state snapshot for one player.
type InfoBody struct {
	PlayerColumn  uint32    `json:"playerColumn"`
	PlayerLine    uint32    `json:"playerLine"`
	PlayerHasFood bool      `json:"playerHasFood"`
	Pheromon      []float32 `json:"pheromon"`
}

func (InfoBody) tag() Tag { return TagInfo }

// MoveBody is the client->server movement command.
type MoveBody struct {
	Direction maze.Direction `json:"direction"`
}

func (MoveBody) tag() Tag { return TagMove }

// ErrorBody carries a taxonomy error kind and message to the client.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (ErrorBody) tag() Tag { return TagError }

// UnexpectedBody reports that a received message was not one of the tags
// valid in the receiver's current state.
type UnexpectedBody struct {
	Expected []Tag    `json:"expected"`
	Received *Message `json:"received"`
}

func (UnexpectedBody) tag() Tag { return TagUnexpected }

// NewJoin builds a join message.
func NewJoin(difficulty uint32, playerID *uuid.UUID) Message {
	return Message{Type: TagJoin, Body: JoinBody{Difficulty: difficulty, PlayerID: playerID}}
}

// NewOkMaze builds an okMaze message.
func NewOkMaze(m maze.Maze, playerID uuid.UUID) Message {
	return Message{Type: TagOkMaze, Body: OkMazeBody{Maze: m, PlayerID: playerID}}
}

// NewInfo builds an info message.
func NewInfo(column, line uint32, hasFood bool, pheromon []float32) Message {
	return Message{Type: TagInfo, Body: InfoBody{
		PlayerColumn: column, PlayerLine: line, PlayerHasFood: hasFood, Pheromon: pheromon,
	}}
}

// NewMove builds a move message.
func NewMove(dir maze.Direction) Message {
	return Message{Type: TagMove, Body: MoveBody{Direction: dir}}
}

// NewError builds an error message from an apperr.Error.
func NewError(err *apperr.Error) Message {
	return Message{Type: TagError, Body: ErrorBody{Kind: err.Kind.String(), Message: err.Msg}}
}

// NewUnexpected builds an unexpected message.
func NewUnexpected(expected []Tag, received *Message) Message {
	return Message{Type: TagUnexpected, Body: UnexpectedBody{Expected: expected, Received: received}}
}

// envelope mirrors Message but with Body kept as raw JSON for decoding,
// since the concrete Go type depends on Type.
type envelope struct {
	Type Tag             `json:"type"`
	Body json.RawMessage `json:"body"`
}

// MarshalJSON implements the {"type":...,"body":...} wire shape.
func (m Message) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(m.Body)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Type: m.Type, Body: body})
}

// UnmarshalJSON dispatches on the type tag to decode into the matching
// concrete Body type.
func (m *Message) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	var body Body
	switch env.Type {
	case TagJoin:
		var b JoinBody
		if err := json.Unmarshal(env.Body, &b); err != nil {
			return err
		}
		body = b
	case TagOkMaze:
		var b OkMazeBody
		if err := json.Unmarshal(env.Body, &b); err != nil {
			return err
		}
		body = b
	case TagInfo:
		var b InfoBody
		if err := json.Unmarshal(env.Body, &b); err != nil {
			return err
		}
		body = b
	case TagMove:
		var b MoveBody
		if err := json.Unmarshal(env.Body, &b); err != nil {
			return err
		}
		body = b
	case TagError:
		var b ErrorBody
		if err := json.Unmarshal(env.Body, &b); err != nil {
			return err
		}
		body = b
	case TagUnexpected:
		var b UnexpectedBody
		if err := json.Unmarshal(env.Body, &b); err != nil {
			return err
		}
		body = b
	default:
		return fmt.Errorf("protocol: unknown message type %q", env.Type)
	}

	m.Type = env.Type
	m.Body = body
	return nil
}
