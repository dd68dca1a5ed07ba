package main

import (
	"database/sql"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/minigolf/go/internal/db"
	"github.com/mcdev12/minigolf/go/internal/gateway"
	"github.com/mcdev12/minigolf/go/internal/reaper"
	"github.com/mcdev12/minigolf/go/internal/rooms"
	"github.com/mcdev12/minigolf/go/internal/scores"
	"github.com/mcdev12/minigolf/go/internal/users"
	"github.com/prometheus/client_golang/prometheus"
)

type Services struct {
	Rooms   *rooms.Service
	Scores  *scores.Service
	Gateway *gateway.Service
	Reaper  *reaper.Reaper
}

// relay is nil when no NATS server is configured
func setupServices(database *sql.DB, config *Config, checkOrigin func(r *http.Request) bool, relay gateway.Relay, reg prometheus.Registerer) *Services {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Service layer
	queries := db.New(database)

	// Users
	usersRepo := users.NewRepository(queries)
	usersApp := users.NewApp(usersRepo)

	// Rooms
	roomsRepo := rooms.NewRepository(database, queries)
	roomsApp := rooms.NewApp(roomsRepo, usersApp, rooms.NewWordNameGenerator())
	roomsService := rooms.NewService(roomsApp)

	// Scores
	scoresRepo := scores.NewRepository(database, queries)
	scoresApp := scores.NewApp(scoresRepo)
	scoresService := scores.NewService(scoresApp, roomsApp)

	// Gateway
	gatewayService := gateway.NewService(
		config.gatewayConfig(checkOrigin),
		roomsApp,
		relay,
		gateway.NewMetrics(reg),
	)

	// Reaper
	stale := reaper.New(config.Reaper, roomsApp, usersApp, clockwork.NewRealClock(), reg)

	return &Services{
		Rooms:   roomsService,
		Scores:  scoresService,
		Gateway: gatewayService,
		Reaper:  stale,
	}
}
