package postgres

import "time"

const predictionLeagueStandingTable = "prediction_league_standings"

type leagueStandingTableModel struct {
	ID              int64      `db:"id"`
	LeagueID        string     `db:"league_public_id"`
	ParticipantID   string     `db:"participant_id"`
	DisplayName     string     `db:"display_name"`
	Rank            int        `db:"rank"`
	Points          int        `db:"points"`
	CorrectResults  int        `db:"correct_results"`
	OddsBonusPoints int        `db:"odds_bonus_points"`
	LeagueVersion   int64      `db:"league_version"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
	DeletedAt       *time.Time `db:"deleted_at"`
}

type leagueStandingInsertModel struct {
	LeagueID        string    `db:"league_public_id"`
	ParticipantID   string    `db:"participant_id"`
	DisplayName     string    `db:"display_name"`
	Rank            int       `db:"rank"`
	Points          int       `db:"points"`
	CorrectResults  int       `db:"correct_results"`
	OddsBonusPoints int       `db:"odds_bonus_points"`
	LeagueVersion   int64     `db:"league_version"`
	UpdatedAt       time.Time `db:"updated_at"`
}
