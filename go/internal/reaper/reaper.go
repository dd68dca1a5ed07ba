// Package reaper periodically deletes rooms and users that have not been accessed recently.
package reaper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// RoomsCleaner deletes rooms last accessed at or before cutoff
type RoomsCleaner interface {
	DeleteStaleRooms(ctx context.Context, cutoff time.Time) (int64, error)
}

// UsersCleaner deletes users last accessed at or before cutoff
type UsersCleaner interface {
	DeleteStaleUsers(ctx context.Context, cutoff time.Time) (int64, error)
}

// Config controls the sweep schedule
type Config struct {
	Enabled   bool          `yaml:"enabled"`
	Interval  time.Duration `yaml:"interval"`
	Retention time.Duration `yaml:"retention"`
}

// DefaultConfig sweeps hourly and keeps 16 hours of data
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Interval:  time.Hour,
		Retention: 16 * time.Hour,
	}
}

// Result reports one sweep
type Result struct {
	Cutoff       time.Time
	RoomsDeleted int64
	UsersDeleted int64
}

// Reaper runs stale-data sweeps on a clock
type Reaper struct {
	config Config
	rooms  RoomsCleaner
	users  UsersCleaner
	clock  clockwork.Clock

	roomsDeleted prometheus.Counter
	usersDeleted prometheus.Counter
	sweepErrors  prometheus.Counter
}

// New creates a Reaper and registers its counters with reg
func New(config Config, rooms RoomsCleaner, users UsersCleaner, clock clockwork.Clock, reg prometheus.Registerer) *Reaper {
	r := &Reaper{
		config: config,
		rooms:  rooms,
		users:  users,
		clock:  clock,
		roomsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minigolf",
			Subsystem: "reaper",
			Name:      "rooms_deleted_total",
			Help:      "Stale rooms deleted.",
		}),
		usersDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minigolf",
			Subsystem: "reaper",
			Name:      "users_deleted_total",
			Help:      "Stale users deleted.",
		}),
		sweepErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minigolf",
			Subsystem: "reaper",
			Name:      "sweep_errors_total",
			Help:      "Sweeps that failed to delete rooms or users.",
		}),
	}
	reg.MustRegister(r.roomsDeleted, r.usersDeleted, r.sweepErrors)
	return r
}

// Start sweeps every interval until ctx is done. It returns immediately when disabled.
func (r *Reaper) Start(ctx context.Context) {
	if !r.config.Enabled {
		log.Info().Msg("reaper disabled")
		return
	}

	log.Info().
		Dur("interval", r.config.Interval).
		Dur("retention", r.config.Retention).
		Msg("reaper started")

	ticker := r.clock.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("reaper stopped")
			return
		case <-ticker.Chan():
			// errors are logged by Sweep; the next tick retries
			_, _ = r.Sweep(ctx)
		}
	}
}

// Sweep deletes rooms, then users, last accessed at or before now minus the retention.
// A room failure does not prevent the user sweep.
func (r *Reaper) Sweep(ctx context.Context) (Result, error) {
	result := Result{Cutoff: r.clock.Now().Add(-r.config.Retention)}

	rooms, roomsErr := r.rooms.DeleteStaleRooms(ctx, result.Cutoff)
	if roomsErr != nil {
		roomsErr = fmt.Errorf("failed to delete stale rooms: %w", roomsErr)
	} else {
		result.RoomsDeleted = rooms
		r.roomsDeleted.Add(float64(rooms))
	}

	users, usersErr := r.users.DeleteStaleUsers(ctx, result.Cutoff)
	if usersErr != nil {
		usersErr = fmt.Errorf("failed to delete stale users: %w", usersErr)
	} else {
		result.UsersDeleted = users
		r.usersDeleted.Add(float64(users))
	}

	if err := errors.Join(roomsErr, usersErr); err != nil {
		r.sweepErrors.Inc()
		log.Error().Err(err).Time("cutoff", result.Cutoff).Msg("reaper sweep failed")
		return result, err
	}

	log.Info().
		Time("cutoff", result.Cutoff).
		Int64("rooms_deleted", result.RoomsDeleted).
		Int64("users_deleted", result.UsersDeleted).
		Msg("reaper sweep complete")
	return result, nil
}
