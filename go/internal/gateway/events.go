package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mcdev12/minigolf/go/internal/rooms"
	"github.com/mcdev12/minigolf/go/internal/validate"
)

// Envelope is the JSON frame exchanged over the socket in both directions
type Envelope struct {
	Event EventName       `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// EventName identifies the kind of socket frame
type EventName string

const (
	// client → server
	EventPing        EventName = "ping"
	EventJoinRoom    EventName = "join-room"
	EventUpdateState EventName = "update-state"

	// server → client
	EventPong       EventName = "pong"
	EventJoinedRoom EventName = "Joined room"
	EventError      EventName = "error"
)

// StateType tags the payload of an update-state frame
type StateType string

const (
	StateUpdateScoresServer StateType = "UPDATE-SCORES-SERVER"
	StateUpdatePlayerScore  StateType = "UPDATE-PLAYER-SCORE"
)

// JoinRoomPayload is the data of a join-room frame
type JoinRoomPayload struct {
	RoomName string `json:"roomName" validate:"required"`
	Username string `json:"username" validate:"required"`
}

// UpdateState is the data of an update-state frame
type UpdateState struct {
	Type    StateType       `json:"type" validate:"required"`
	Payload json.RawMessage `json:"payload"`
}

// ScoresServerPayload replaces the whole scorecard on the receiving clients. Scores are
// indexed like Holes; a null entry is a hole not played yet.
type ScoresServerPayload struct {
	Holes   []ScorecardHole   `json:"holes" validate:"required,dive"`
	Players []ScorecardPlayer `json:"players" validate:"required,dive"`
}

type ScorecardHole struct {
	Number int  `json:"number"`
	Par    *int `json:"par"`
}

type ScorecardPlayer struct {
	Name   string `json:"name" validate:"required"`
	Scores []*int `json:"scores" validate:"required"`
}

// PlayerScorePayload sets one player's score for one hole. A null value clears it.
type PlayerScorePayload struct {
	Username string `json:"username" validate:"required"`
	Hole     int    `json:"hole" validate:"gte=0"`
	Value    *int   `json:"value"`
}

// ErrorPayload is the data of an error frame
type ErrorPayload struct {
	Message string `json:"message"`
}

// ParseUpdateState decodes and checks an update-state frame. Frames with an unknown type
// or a payload that does not match the type return a *validate.Error.
func ParseUpdateState(data json.RawMessage) (*UpdateState, error) {
	var state UpdateState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, invalid("invalid update-state: %v", err)
	}
	if err := validate.Struct(state); err != nil {
		return nil, err
	}

	var payload any
	switch state.Type {
	case StateUpdateScoresServer:
		payload = &ScoresServerPayload{}
	case StateUpdatePlayerScore:
		payload = &PlayerScorePayload{}
	default:
		return nil, invalid("unknown update-state type %q", state.Type)
	}

	if len(state.Payload) == 0 || bytes.Equal(state.Payload, []byte("null")) {
		return nil, invalid("payload is required")
	}
	if err := json.Unmarshal(state.Payload, payload); err != nil {
		return nil, invalid("invalid %s payload: %v", state.Type, err)
	}
	if err := validate.Struct(payload); err != nil {
		return nil, err
	}
	return &state, nil
}

// ParseJoinRoom decodes a join-room frame, normalizes the room name and trims the
// username, then validates what is left.
func ParseJoinRoom(data json.RawMessage) (*JoinRoomPayload, error) {
	var payload JoinRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, invalid("invalid join-room: %v", err)
	}
	payload.RoomName = rooms.NormalizeRoomName(payload.RoomName)
	payload.Username = strings.TrimSpace(payload.Username)
	if err := validate.Struct(payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// encodeEnvelope builds a frame carrying data marshalled as JSON
func encodeEnvelope(event EventName, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s data: %w", event, err)
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}

func invalid(format string, args ...any) error {
	return &validate.Error{Messages: []string{fmt.Sprintf(format, args...)}}
}
