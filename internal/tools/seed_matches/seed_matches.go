package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pitchside/pitchside/internal/dbconfig"
)

// Fixture mirrors the JSON snapshot structure
type Fixture struct {
	ID            string `json:"id"`
	CompetitionID string `json:"competition_id"`
	HomeTeamID    string `json:"home_team_id"`
	AwayTeamID    string `json:"away_team_id"`
	HomeTeamName  string `json:"home_team_name"`
	AwayTeamName  string `json:"away_team_name"`
	KickoffAt     string `json:"kickoff_at"`
}

func main() {
	// 1) Load the JSON snapshot
	data, err := os.ReadFile("internal/assets/fixtures.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "read JSON: %v\n", err)
		os.Exit(1)
	}
	var fixtures []Fixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal JSON: %v\n", err)
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

	// 3) Upsert and count
	var (
		total    = len(fixtures)
		inserted int
		skipped  int
		errs     int
	)

	for _, f := range fixtures {
		cmdTag, err := pool.Exec(context.Background(), `
            INSERT INTO matches (
              id, competition_id, home_team_id, away_team_id,
              home_team_name, away_team_name, status, anchor, config,
              kickoff_at
            ) VALUES (
              $1,$2,$3,$4,$5,$6,'SCHEDULED',
              '{"frozen":true}'::jsonb,
              '{"half_minutes":45,"extra_half_minutes":15}'::jsonb,
              $7
            )
            ON CONFLICT (id) DO NOTHING
        `,
			f.ID, f.CompetitionID, f.HomeTeamID, f.AwayTeamID,
			f.HomeTeamName, f.AwayTeamName, f.KickoffAt,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting match %s: %v\n", f.ID, err)
			errs++
			continue
		}
		if cmdTag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}

	// 4) Print summary
	fmt.Printf(
		"Fixtures seed complete: %d total, %d inserted, %d skipped, %d errors\n",
		total, inserted, skipped, errs,
	)
}
