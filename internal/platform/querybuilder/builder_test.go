package querybuilder

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSelect(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id", "document").
		From("prediction_leagues").
		Where(Eq("public_id", "lg-1"), IsNull("deleted_at")).
		OrderBy("rank", "participant_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}

	want := "SELECT id, document FROM prediction_leagues WHERE public_id = $1 AND deleted_at IS NULL ORDER BY rank, participant_id"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if diff := cmp.Diff([]any{"lg-1"}, args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestSelect_RequiresTable(t *testing.T) {
	t.Parallel()

	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error without table")
	}
}

func TestUpdate_NumbersExpressionsInOrder(t *testing.T) {
	t.Parallel()

	query, args, err := Update("prediction_leagues").
		Set("version", int64(3)).
		SetExpr("document", "?::jsonb", `{"a":1}`).
		SetExpr("updated_at", "NOW()").
		Where(
			Eq("public_id", "lg-1"),
			Expr("version = ?", int64(2)),
			IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build update: %v", err)
	}

	want := "UPDATE prediction_leagues SET version = $1, document = $2::jsonb, updated_at = NOW() WHERE public_id = $3 AND version = $4 AND deleted_at IS NULL"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if diff := cmp.Diff([]any{int64(3), `{"a":1}`, "lg-1", int64(2)}, args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertModel(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	model := struct {
		LeagueID string `db:"league_public_id"`
		Points   int    `db:"points,omitempty"`
		Skipped  string `db:"-"`
		Untagged string
		At       time.Time `db:"updated_at"`
	}{LeagueID: "lg-1", Points: 7, Skipped: "x", Untagged: "y", At: at}

	query, args, err := InsertModel("prediction_league_standings", &model, "ON CONFLICT DO NOTHING")
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}

	want := "INSERT INTO prediction_league_standings (league_public_id, points, updated_at) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if diff := cmp.Diff([]any{"lg-1", 7, at}, args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertModel_Rejections(t *testing.T) {
	t.Parallel()

	var nilModel *struct {
		ID string `db:"id"`
	}
	cases := map[string]any{
		"nil pointer": nilModel,
		"not struct":  42,
		"no columns":  struct{ Name string }{Name: "x"},
	}
	for name, model := range cases {
		if _, _, err := InsertModel("t", model, ""); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
