package scorecard_client

const (
	DefaultBaseURL = "http://localhost:8080"

	HealthEndpoint      = "/health"
	CreateRoomEndpoint  = "/create-room"
	CreateHoleEndpoint  = "/create-hole"
	RoomScoreEndpoint   = "/room-score/"
	UpdateScoreEndpoint = "/update-score"
	RoomMembersEndpoint = "/room-members/"
)
