// Package scorecard_client is a typed client for the minigolf HTTP API.
package scorecard_client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/mcdev12/minigolf/go/clients"
	"github.com/mcdev12/minigolf/go/internal/models"
)

type ScorecardClient struct {
	*clients.BaseClient
}

func NewScorecardClient(baseURL string) *ScorecardClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ScorecardClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}
}

type CreateHoleInput struct {
	RoomID     uuid.UUID `json:"roomId"`
	HoleNumber int       `json:"holeNumber"`
	Username   string    `json:"username"`
	Par        *int      `json:"par,omitempty"`
}

type UpdateScoreInput struct {
	RoomID      uuid.UUID `json:"roomId"`
	Username    string    `json:"username"`
	UserScoreID uuid.UUID `json:"userScoreId"`
	Score       *int      `json:"score"`
}

func (c *ScorecardClient) Health(ctx context.Context) error {
	_, err := c.Get(ctx, HealthEndpoint)
	return err
}

// CreateRoom asks the server for a new room and returns its generated name
func (c *ScorecardClient) CreateRoom(ctx context.Context) (string, error) {
	var resp struct {
		Room string `json:"room"`
	}
	if err := c.PostJSON(ctx, CreateRoomEndpoint, nil, &resp); err != nil {
		return "", fmt.Errorf("failed to create room: %w", err)
	}
	return resp.Room, nil
}

func (c *ScorecardClient) CreateHole(ctx context.Context, in CreateHoleInput) (*models.Hole, error) {
	var hole models.Hole
	if err := c.PostJSON(ctx, CreateHoleEndpoint, in, &hole); err != nil {
		return nil, fmt.Errorf("failed to create hole: %w", err)
	}
	return &hole, nil
}

// RoomScore fetches the scorecard of roomName on behalf of username, who must be a member
func (c *ScorecardClient) RoomScore(ctx context.Context, roomName, username string) (*models.RoomScore, error) {
	var scorecard models.RoomScore
	body := map[string]string{"username": username}
	if err := c.PostJSON(ctx, RoomScoreEndpoint+url.PathEscape(roomName), body, &scorecard); err != nil {
		return nil, fmt.Errorf("failed to get room score: %w", err)
	}
	return &scorecard, nil
}

func (c *ScorecardClient) UpdateScore(ctx context.Context, in UpdateScoreInput) (*models.UserScore, error) {
	var score models.UserScore
	if err := c.PostJSON(ctx, UpdateScoreEndpoint, in, &score); err != nil {
		return nil, fmt.Errorf("failed to update score: %w", err)
	}
	return &score, nil
}

// RoomMembers lists the member names of roomName in join order
func (c *ScorecardClient) RoomMembers(ctx context.Context, roomName string) ([]string, error) {
	data, err := c.Get(ctx, RoomMembersEndpoint+url.PathEscape(roomName))
	if err != nil {
		return nil, fmt.Errorf("failed to list room members: %w", err)
	}

	var resp struct {
		Members []string `json:"members"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode room members: %w", err)
	}
	return resp.Members, nil
}
