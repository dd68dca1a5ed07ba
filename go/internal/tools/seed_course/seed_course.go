package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/mcdev12/minigolf/go/internal/dbconfig"
	"github.com/mcdev12/minigolf/go/internal/rooms"
	"github.com/mcdev12/minigolf/go/internal/validate"
)

// Course mirrors the JSON snapshot
type Course struct {
	Room    string       `json:"room" validate:"required"`
	Players []string     `json:"players" validate:"dive,required"`
	Holes   []CourseHole `json:"holes" validate:"required,min=1,dive"`
}

type CourseHole struct {
	Number int  `json:"number" validate:"min=1"`
	Par    *int `json:"par,omitempty" validate:"omitempty,min=1"`
}

type summary struct {
	players       int
	holesInserted int
	holesSkipped  int
	scoresCreated int64
}

func main() {
	_ = godotenv.Load()

	path := "go/internal/assets/course.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	// 1) Load the JSON snapshot
	course, err := loadCourse(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load course: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(context.Background(), cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) Seed in one transaction
	var s summary
	err = pgx.BeginFunc(context.Background(), pool, func(tx pgx.Tx) error {
		var err error
		s, err = seedCourse(context.Background(), tx, course)
		return err
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed course: %v\n", err)
		os.Exit(1)
	}

	// 4) Print summary
	fmt.Printf(
		"Course seed complete: room %s, %d players, %d holes inserted, %d skipped, %d scores created\n",
		course.Room, s.players, s.holesInserted, s.holesSkipped, s.scoresCreated,
	)
}

func loadCourse(path string) (*Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read JSON: %w", err)
	}

	var course Course
	if err := json.Unmarshal(data, &course); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	if err := validate.Struct(course); err != nil {
		return nil, err
	}

	course.Room = rooms.NormalizeRoomName(course.Room)
	return &course, nil
}

func seedCourse(ctx context.Context, tx pgx.Tx, course *Course) (summary, error) {
	var s summary

	var roomID string
	err := tx.QueryRow(ctx, `
        INSERT INTO rooms (name) VALUES ($1)
        ON CONFLICT (name) DO UPDATE SET last_accessed = now()
        RETURNING id
    `, course.Room).Scan(&roomID)
	if err != nil {
		return s, fmt.Errorf("upsert room %s: %w", course.Room, err)
	}

	for _, name := range course.Players {
		if _, err := tx.Exec(ctx, `
            WITH u AS (
              INSERT INTO users (name) VALUES ($2)
              ON CONFLICT (name) DO UPDATE SET last_accessed = now()
              RETURNING id
            )
            INSERT INTO room_members (room_id, user_id)
            SELECT $1, id FROM u
            ON CONFLICT DO NOTHING
        `, roomID, name); err != nil {
			return s, fmt.Errorf("add player %s: %w", name, err)
		}
		s.players++
	}

	for _, h := range course.Holes {
		cmdTag, err := tx.Exec(ctx, `
            INSERT INTO holes (room_id, number, par)
            SELECT $1::uuid, $2::int, $3::int
            WHERE NOT EXISTS (SELECT 1 FROM holes WHERE room_id = $1 AND number = $2)
        `, roomID, h.Number, h.Par)
		if err != nil {
			return s, fmt.Errorf("insert hole %d: %w", h.Number, err)
		}
		if cmdTag.RowsAffected() == 1 {
			s.holesInserted++
		} else {
			s.holesSkipped++
		}
	}

	cmdTag, err := tx.Exec(ctx, `
        INSERT INTO user_scores (user_id, hole_id)
        SELECT m.user_id, h.id
        FROM room_members m
        JOIN holes h ON h.room_id = m.room_id
        WHERE m.room_id = $1
        ON CONFLICT (user_id, hole_id) DO NOTHING
    `, roomID)
	if err != nil {
		return s, fmt.Errorf("create user scores: %w", err)
	}
	s.scoresCreated = cmdTag.RowsAffected()

	return s, nil
}
