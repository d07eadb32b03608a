package leaguestanding

// Standing is one participant's cumulative row in a prediction league table.
type Standing struct {
	ParticipantID   string
	DisplayName     string
	Points          int
	CorrectResults  int
	OddsBonusPoints int
	Rank            int
}

// Seed names a participant that must appear in the table even without points.
type Seed struct {
	ParticipantID string
	DisplayName   string
}
