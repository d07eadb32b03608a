package postgres

import (
	"time"
)

const predictionLeagueTable = "prediction_leagues"

type leagueTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	Name        string     `db:"name"`
	AdminUserID string     `db:"admin_user_id"`
	Version     int64      `db:"version"`
	Document    []byte     `db:"document"`
	HasEnded    bool       `db:"has_ended"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type leagueInsertModel struct {
	PublicID    string    `db:"public_id"`
	Name        string    `db:"name"`
	AdminUserID string    `db:"admin_user_id"`
	Version     int64     `db:"version"`
	Document    string    `db:"document"`
	HasEnded    bool      `db:"has_ended"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
