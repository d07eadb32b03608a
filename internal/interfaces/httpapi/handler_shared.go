package httpapi

import (
	"context"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/chip"
	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/gameweek"
	"github.com/riskibarqy/prediction-league/internal/domain/league"
	"github.com/riskibarqy/prediction-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/prediction-league/internal/domain/player"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
	"github.com/riskibarqy/prediction-league/internal/domain/scoring"
	"github.com/riskibarqy/prediction-league/internal/usecase"
)

type ruleSetPayload struct {
	CorrectOutcome              int `json:"correct_outcome"`
	CorrectResult               int `json:"correct_result"`
	CorrectGoalDifference       int `json:"correct_goal_difference"`
	CorrectGoalsByTeam          int `json:"correct_goals_by_team"`
	CorrectGoalScorerDefender   int `json:"correct_goal_scorer_defender"`
	CorrectGoalScorerMidfielder int `json:"correct_goal_scorer_midfielder"`
	CorrectGoalScorerForward    int `json:"correct_goal_scorer_forward"`
	FirstTeamToScore            int `json:"first_team_to_score"`
	GoalFest                    int `json:"goal_fest"`
	UnderdogBonus               int `json:"underdog_bonus"`
	OddsBonus3To4               int `json:"odds_bonus_3_to_4"`
	OddsBonus4To6               int `json:"odds_bonus_4_to_6"`
	OddsBonus6To10              int `json:"odds_bonus_6_to_10"`
	OddsBonus10Plus             int `json:"odds_bonus_10_plus"`
}

type allowancePayload struct {
	RiskTaker  int `json:"risk_taker" validate:"gte=0"`
	DoubleUp   int `json:"double_up" validate:"gte=0"`
	GoalFest   int `json:"goal_fest" validate:"gte=0"`
	CleanSweep int `json:"clean_sweep" validate:"gte=0"`
}

type createLeagueRequest struct {
	Name          string            `json:"name" validate:"required,max=100"`
	DisplayName   string            `json:"display_name" validate:"omitempty,max=100"`
	Template      string            `json:"template" validate:"omitempty,max=50"`
	Rules         *ruleSetPayload   `json:"rules,omitempty"`
	ChipAllowance *allowancePayload `json:"chip_allowance,omitempty"`
}

type joinLeagueRequest struct {
	DisplayName string `json:"display_name" validate:"omitempty,max=100"`
}

type updateRuleSetRequest struct {
	Template string          `json:"template" validate:"required_without=Rules,max=50"`
	Rules    *ruleSetPayload `json:"rules,omitempty"`
}

type oddsPayload struct {
	Home float64 `json:"home" validate:"gte=0"`
	Draw float64 `json:"draw" validate:"gte=0"`
	Away float64 `json:"away" validate:"gte=0"`
}

type fixtureRequest struct {
	ID                      string      `json:"id" validate:"omitempty,max=64"`
	HomeTeam                string      `json:"home_team" validate:"required,max=100"`
	AwayTeam                string      `json:"away_team" validate:"required,max=100"`
	KickoffAt               time.Time   `json:"kickoff_at" validate:"required"`
	ShouldPredictGoalScorer bool        `json:"should_predict_goal_scorer"`
	GoalScorerFromTeam      string      `json:"goal_scorer_from_team" validate:"omitempty,max=100"`
	Odds                    oddsPayload `json:"odds"`
}

type addGameWeekRequest struct {
	StartsAt time.Time        `json:"starts_at" validate:"required"`
	Deadline time.Time        `json:"deadline" validate:"required"`
	Fixtures []fixtureRequest `json:"fixtures" validate:"required,min=1,dive"`
}

type scorerPayload struct {
	PlayerID string `json:"player_id,omitempty" validate:"omitempty,max=64"`
	Name     string `json:"name" validate:"required,max=100"`
	Team     string `json:"team" validate:"omitempty,max=100"`
	Position string `json:"position" validate:"omitempty,max=20"`
}

type predictionRequest struct {
	FixtureID        string         `json:"fixture_id" validate:"required"`
	HomeGoals        *int           `json:"home_goals" validate:"omitempty,gte=0,lte=99"`
	AwayGoals        *int           `json:"away_goals" validate:"omitempty,gte=0,lte=99"`
	GoalScorer       *scorerPayload `json:"goal_scorer,omitempty"`
	FirstTeamToScore string         `json:"first_team_to_score" validate:"omitempty,oneof=home away"`
}

type submitPredictionsRequest struct {
	Round       int                 `json:"round" validate:"required,gt=0"`
	Predictions []predictionRequest `json:"predictions" validate:"required,min=1,dive"`
}

type assignChipRequest struct {
	Kind      string `json:"kind" validate:"required,oneof=risk_taker goal_fest double_up clean_sweep"`
	Round     int    `json:"round" validate:"required,gt=0"`
	Scope     string `json:"scope" validate:"omitempty,oneof=fixture round"`
	FixtureID string `json:"fixture_id" validate:"omitempty,max=64"`
}

type aggregatePayload struct {
	HomeGoals int `json:"home_goals" validate:"gte=0"`
	AwayGoals int `json:"away_goals" validate:"gte=0"`
}

type resultPayload struct {
	HomeGoals        int               `json:"home_goals" validate:"gte=0,lte=99"`
	AwayGoals        int               `json:"away_goals" validate:"gte=0,lte=99"`
	GoalScorers      []string          `json:"goal_scorers" validate:"omitempty,dive,required,max=100"`
	FirstTeamToScore string            `json:"first_team_to_score" validate:"omitempty,oneof=home away"`
	Aggregate        *aggregatePayload `json:"aggregate,omitempty"`
}

type bonusPayload struct {
	OddsBonus        int `json:"odds_bonus" validate:"gte=0"`
	FirstTeamToScore int `json:"first_team_to_score" validate:"gte=0"`
	GoalFest         int `json:"goal_fest" validate:"gte=0"`
	UnderdogBonus    int `json:"underdog_bonus" validate:"gte=0"`
}

type suggestBonusesRequest struct {
	Result resultPayload `json:"result"`
}

type correctFixtureRequest struct {
	Result            resultPayload           `json:"result"`
	AcceptSuggestions bool                    `json:"accept_suggestions"`
	Overrides         map[string]bonusPayload `json:"overrides,omitempty" validate:"omitempty,dive,keys,required,endkeys"`
}

type rebuildStandingsJobRequest struct {
	LeagueID   string `json:"league_id" validate:"omitempty,max=64"`
	MaxWorkers int    `json:"max_workers" validate:"omitempty,gte=0,lte=64"`
}

type correctionCompletedJobRequest struct {
	LeagueID         string    `json:"league_id" validate:"required"`
	Round            int       `json:"round" validate:"required,gt=0"`
	FixtureID        string    `json:"fixture_id" validate:"required"`
	Version          int64     `json:"version" validate:"gte=0"`
	ScoredCount      int       `json:"scored_count"`
	RoundCorrected   bool      `json:"round_corrected"`
	CorrectedAt      time.Time `json:"corrected_at"`
	CorrectedBy      string    `json:"corrected_by"`
	HomeGoals        int       `json:"home_goals"`
	AwayGoals        int       `json:"away_goals"`
	FirstTeamToScore string    `json:"first_team_to_score,omitempty"`
}

type rangeDTO struct {
	Field string `json:"field"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
}

type ruleTemplateDTO struct {
	Name  string         `json:"name"`
	Rules ruleSetPayload `json:"rules"`
}

type ruleTemplatesDTO struct {
	Templates []ruleTemplateDTO `json:"templates"`
	Ranges    []rangeDTO        `json:"ranges"`
}

type participantDTO struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	JoinedAt    time.Time `json:"joined_at"`
}

type standingDTO struct {
	Rank            int    `json:"rank"`
	ParticipantID   string `json:"participant_id"`
	DisplayName     string `json:"display_name"`
	Points          int    `json:"points"`
	CorrectResults  int    `json:"correct_results"`
	OddsBonusPoints int    `json:"odds_bonus_points"`
}

type leagueSummaryDTO struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	AdminUserID      string    `json:"admin_user_id"`
	RuleSetTemplate  string    `json:"rule_set_template"`
	ParticipantCount int       `json:"participant_count"`
	GameWeekCount    int       `json:"game_week_count"`
	HasEnded         bool      `json:"has_ended"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type gameWeekSummaryDTO struct {
	Round        int       `json:"round"`
	State        string    `json:"state"`
	StartsAt     time.Time `json:"starts_at"`
	Deadline     time.Time `json:"deadline"`
	FixtureCount int       `json:"fixture_count"`
}

type leagueDTO struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	AdminUserID     string               `json:"admin_user_id"`
	Version         int64                `json:"version"`
	RuleSetTemplate string               `json:"rule_set_template"`
	Rules           ruleSetPayload       `json:"rules"`
	ChipAllowance   allowancePayload     `json:"chip_allowance"`
	Participants    []participantDTO     `json:"participants"`
	GameWeeks       []gameWeekSummaryDTO `json:"game_weeks"`
	Standings       []standingDTO        `json:"standings"`
	HasEnded        bool                 `json:"has_ended"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

type resultDTO struct {
	HomeGoals        int               `json:"home_goals"`
	AwayGoals        int               `json:"away_goals"`
	Outcome          string            `json:"outcome"`
	GoalScorers      []string          `json:"goal_scorers"`
	FirstTeamToScore string            `json:"first_team_to_score,omitempty"`
	Aggregate        *aggregatePayload `json:"aggregate,omitempty"`
}

type fixtureDTO struct {
	ID                      string      `json:"id"`
	HomeTeam                string      `json:"home_team"`
	AwayTeam                string      `json:"away_team"`
	KickoffAt               time.Time   `json:"kickoff_at"`
	ShouldPredictGoalScorer bool        `json:"should_predict_goal_scorer"`
	GoalScorerFromTeam      string      `json:"goal_scorer_from_team,omitempty"`
	Odds                    oddsPayload `json:"odds"`
	FinalResult             *resultDTO  `json:"final_result,omitempty"`
	CorrectedAt             *time.Time  `json:"corrected_at,omitempty"`
}

type breakdownDTO struct {
	CorrectOutcome        int      `json:"correct_outcome"`
	CorrectGoalsByTeam    int      `json:"correct_goals_by_team"`
	CorrectGoalDifference int      `json:"correct_goal_difference"`
	CorrectResult         int      `json:"correct_result"`
	CorrectGoalScorer     int      `json:"correct_goal_scorer"`
	OddsBonus             int      `json:"odds_bonus"`
	FirstTeamToScore      int      `json:"first_team_to_score"`
	GoalFest              int      `json:"goal_fest"`
	UnderdogBonus         int      `json:"underdog_bonus"`
	ChipBonus             int      `json:"chip_bonus"`
	Chips                 []string `json:"chips"`
	Total                 int      `json:"total"`
}

type predictionDTO struct {
	ParticipantID    string         `json:"participant_id"`
	FixtureID        string         `json:"fixture_id"`
	HomeGoals        *int           `json:"home_goals"`
	AwayGoals        *int           `json:"away_goals"`
	GoalScorer       *scorerPayload `json:"goal_scorer,omitempty"`
	FirstTeamToScore string         `json:"first_team_to_score,omitempty"`
	SubmittedAt      time.Time      `json:"submitted_at"`
	Points           *breakdownDTO  `json:"points,omitempty"`
}

type gameWeekDTO struct {
	Round            int             `json:"round"`
	State            string          `json:"state"`
	StartsAt         time.Time       `json:"starts_at"`
	Deadline         time.Time       `json:"deadline"`
	Fixtures         []fixtureDTO    `json:"fixtures"`
	Predictions      []predictionDTO `json:"predictions"`
	HasBeenCorrected bool            `json:"has_been_corrected"`
	HasEnded         bool            `json:"has_ended"`
	ForceEnded       bool            `json:"force_ended"`
	CorrectedAt      *time.Time      `json:"corrected_at,omitempty"`
	EndedAt          *time.Time      `json:"ended_at,omitempty"`
}

type chipAssignmentDTO struct {
	Kind       string    `json:"kind"`
	Round      int       `json:"round"`
	Scope      string    `json:"scope"`
	FixtureID  string    `json:"fixture_id,omitempty"`
	AssignedAt time.Time `json:"assigned_at"`
}

type chipRemainingDTO struct {
	Kind      string `json:"kind"`
	Remaining int    `json:"remaining"`
}

type suggestionDTO struct {
	ParticipantID string       `json:"participant_id"`
	OddsTier      string       `json:"odds_tier"`
	Bonuses       bonusPayload `json:"bonuses"`
}

type correctionDTO struct {
	LeagueID       string          `json:"league_id"`
	Version        int64           `json:"version"`
	Round          int             `json:"round"`
	RoundState     string          `json:"round_state"`
	Fixture        fixtureDTO      `json:"fixture"`
	ScoredCount    int             `json:"scored_count"`
	Scored         []scoredDTO     `json:"scored"`
	Suggestions    []suggestionDTO `json:"suggestions"`
	Standings      []standingDTO   `json:"standings"`
	RoundCorrected bool            `json:"round_corrected"`
}

type scoredDTO struct {
	ParticipantID string       `json:"participant_id"`
	Breakdown     breakdownDTO `json:"breakdown"`
}

type correctionCompletedDTO struct {
	LeagueID        string `json:"league_id"`
	NotifiedVersion int64  `json:"notified_version"`
	StandingsChange bool   `json:"standings_changed"`
}

func ruleSetFromPayload(p *ruleSetPayload) *scoring.RuleSet {
	if p == nil {
		return nil
	}
	rules := scoring.RuleSet{
		CorrectOutcome:              p.CorrectOutcome,
		CorrectResult:               p.CorrectResult,
		CorrectGoalDifference:       p.CorrectGoalDifference,
		CorrectGoalsByTeam:          p.CorrectGoalsByTeam,
		CorrectGoalScorerDefender:   p.CorrectGoalScorerDefender,
		CorrectGoalScorerMidfielder: p.CorrectGoalScorerMidfielder,
		CorrectGoalScorerForward:    p.CorrectGoalScorerForward,
		FirstTeamToScore:            p.FirstTeamToScore,
		GoalFest:                    p.GoalFest,
		UnderdogBonus:               p.UnderdogBonus,
		OddsBonus3To4:               p.OddsBonus3To4,
		OddsBonus4To6:               p.OddsBonus4To6,
		OddsBonus6To10:              p.OddsBonus6To10,
		OddsBonus10Plus:             p.OddsBonus10Plus,
	}
	return &rules
}

func ruleSetToPayload(r scoring.RuleSet) ruleSetPayload {
	return ruleSetPayload{
		CorrectOutcome:              r.CorrectOutcome,
		CorrectResult:               r.CorrectResult,
		CorrectGoalDifference:       r.CorrectGoalDifference,
		CorrectGoalsByTeam:          r.CorrectGoalsByTeam,
		CorrectGoalScorerDefender:   r.CorrectGoalScorerDefender,
		CorrectGoalScorerMidfielder: r.CorrectGoalScorerMidfielder,
		CorrectGoalScorerForward:    r.CorrectGoalScorerForward,
		FirstTeamToScore:            r.FirstTeamToScore,
		GoalFest:                    r.GoalFest,
		UnderdogBonus:               r.UnderdogBonus,
		OddsBonus3To4:               r.OddsBonus3To4,
		OddsBonus4To6:               r.OddsBonus4To6,
		OddsBonus6To10:              r.OddsBonus6To10,
		OddsBonus10Plus:             r.OddsBonus10Plus,
	}
}

func allowanceFromPayload(p *allowancePayload) *chip.Allowance {
	if p == nil {
		return nil
	}
	return &chip.Allowance{
		RiskTaker:  p.RiskTaker,
		DoubleUp:   p.DoubleUp,
		GoalFest:   p.GoalFest,
		CleanSweep: p.CleanSweep,
	}
}

func fixturesFromRequest(items []fixtureRequest) []fixture.Fixture {
	out := make([]fixture.Fixture, 0, len(items))
	for _, item := range items {
		out = append(out, fixture.Fixture{
			ID:                      item.ID,
			HomeTeam:                item.HomeTeam,
			AwayTeam:                item.AwayTeam,
			KickoffAt:               item.KickoffAt.UTC(),
			ShouldPredictGoalScorer: item.ShouldPredictGoalScorer,
			GoalScorerFromTeam:      item.GoalScorerFromTeam,
			Odds: fixture.Odds{
				Home: item.Odds.Home,
				Draw: item.Odds.Draw,
				Away: item.Odds.Away,
			},
		})
	}
	return out
}

// predictionsFromRequest keeps an unparseable position as-is so the usecase
// reports it with the fixture it belongs to.
func predictionsFromRequest(items []predictionRequest) []usecase.PredictionInput {
	out := make([]usecase.PredictionInput, 0, len(items))
	for _, item := range items {
		in := usecase.PredictionInput{
			FixtureID:        item.FixtureID,
			HomeGoals:        item.HomeGoals,
			AwayGoals:        item.AwayGoals,
			FirstTeamToScore: fixture.Side(item.FirstTeamToScore),
		}
		if item.GoalScorer != nil {
			position, err := player.ParsePosition(item.GoalScorer.Position)
			if err != nil {
				position = player.Position(item.GoalScorer.Position)
			}
			in.GoalScorer = &prediction.Scorer{
				PlayerID: item.GoalScorer.PlayerID,
				Name:     item.GoalScorer.Name,
				Team:     item.GoalScorer.Team,
				Position: position,
			}
		}
		out = append(out, in)
	}
	return out
}

func resultFromPayload(p resultPayload) fixture.Result {
	result := fixture.Result{
		HomeGoals:        p.HomeGoals,
		AwayGoals:        p.AwayGoals,
		GoalScorers:      append([]string(nil), p.GoalScorers...),
		FirstTeamToScore: fixture.Side(p.FirstTeamToScore),
	}
	if p.Aggregate != nil {
		result.Aggregate = &fixture.Aggregate{
			HomeGoals: p.Aggregate.HomeGoals,
			AwayGoals: p.Aggregate.AwayGoals,
		}
	}
	return result
}

func overridesFromPayload(items map[string]bonusPayload) map[string]scoring.Bonuses {
	if len(items) == 0 {
		return nil
	}
	out := make(map[string]scoring.Bonuses, len(items))
	for participantID, b := range items {
		out[participantID] = scoring.Bonuses{
			OddsBonus:        b.OddsBonus,
			FirstTeamToScore: b.FirstTeamToScore,
			GoalFest:         b.GoalFest,
			UnderdogBonus:    b.UnderdogBonus,
		}
	}
	return out
}

func ruleTemplatesToDTO(ctx context.Context, templates []scoring.Template, ranges []scoring.Range) ruleTemplatesDTO {
	_ = ctx

	out := ruleTemplatesDTO{
		Templates: make([]ruleTemplateDTO, 0, len(templates)),
		Ranges:    make([]rangeDTO, 0, len(ranges)),
	}
	for _, tpl := range templates {
		out.Templates = append(out.Templates, ruleTemplateDTO{Name: tpl.Name, Rules: ruleSetToPayload(tpl.Rules)})
	}
	for _, r := range ranges {
		out.Ranges = append(out.Ranges, rangeDTO{Field: r.Field, Min: r.Min, Max: r.Max})
	}
	return out
}

func leagueToSummaryDTO(ctx context.Context, v league.League) leagueSummaryDTO {
	_ = ctx

	return leagueSummaryDTO{
		ID:               v.ID,
		Name:             v.Name,
		AdminUserID:      v.AdminUserID,
		RuleSetTemplate:  v.RuleSetTemplate,
		ParticipantCount: len(v.Participants),
		GameWeekCount:    len(v.GameWeeks),
		HasEnded:         v.HasEnded,
		UpdatedAt:        v.UpdatedAt,
	}
}

func leagueToDTO(ctx context.Context, v league.League, now time.Time) leagueDTO {
	participants := make([]participantDTO, 0, len(v.Participants))
	for _, p := range v.Participants {
		participants = append(participants, participantDTO{UserID: p.UserID, DisplayName: p.DisplayName, JoinedAt: p.JoinedAt})
	}
	weeks := make([]gameWeekSummaryDTO, 0, len(v.GameWeeks))
	for _, week := range v.GameWeeks {
		weeks = append(weeks, gameWeekSummaryDTO{
			Round:        week.Round,
			State:        string(week.State(now)),
			StartsAt:     week.StartsAt,
			Deadline:     week.Deadline,
			FixtureCount: len(week.Fixtures),
		})
	}

	return leagueDTO{
		ID:              v.ID,
		Name:            v.Name,
		AdminUserID:     v.AdminUserID,
		Version:         v.Version,
		RuleSetTemplate: v.RuleSetTemplate,
		Rules:           ruleSetToPayload(v.RuleSet),
		ChipAllowance: allowancePayload{
			RiskTaker:  v.ChipAllowance.RiskTaker,
			DoubleUp:   v.ChipAllowance.DoubleUp,
			GoalFest:   v.ChipAllowance.GoalFest,
			CleanSweep: v.ChipAllowance.CleanSweep,
		},
		Participants: participants,
		GameWeeks:    weeks,
		Standings:    standingsToDTO(ctx, v.Standings),
		HasEnded:     v.HasEnded,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func standingsToDTO(ctx context.Context, items []leaguestanding.Standing) []standingDTO {
	_ = ctx

	out := make([]standingDTO, 0, len(items))
	for _, s := range items {
		out = append(out, standingDTO{
			Rank:            s.Rank,
			ParticipantID:   s.ParticipantID,
			DisplayName:     s.DisplayName,
			Points:          s.Points,
			CorrectResults:  s.CorrectResults,
			OddsBonusPoints: s.OddsBonusPoints,
		})
	}
	return out
}

func fixtureToDTO(v fixture.Fixture) fixtureDTO {
	out := fixtureDTO{
		ID:                      v.ID,
		HomeTeam:                v.HomeTeam,
		AwayTeam:                v.AwayTeam,
		KickoffAt:               v.KickoffAt,
		ShouldPredictGoalScorer: v.ShouldPredictGoalScorer,
		GoalScorerFromTeam:      v.GoalScorerFromTeam,
		Odds:                    oddsPayload{Home: v.Odds.Home, Draw: v.Odds.Draw, Away: v.Odds.Away},
		CorrectedAt:             v.CorrectedAt,
	}
	if v.FinalResult != nil {
		r := v.FinalResult
		out.FinalResult = &resultDTO{
			HomeGoals:        r.HomeGoals,
			AwayGoals:        r.AwayGoals,
			Outcome:          string(r.Outcome()),
			GoalScorers:      append([]string{}, r.GoalScorers...),
			FirstTeamToScore: string(r.FirstTeamToScore),
		}
		if r.Aggregate != nil {
			out.FinalResult.Aggregate = &aggregatePayload{HomeGoals: r.Aggregate.HomeGoals, AwayGoals: r.Aggregate.AwayGoals}
		}
	}
	return out
}

func breakdownToDTO(b prediction.Breakdown) breakdownDTO {
	return breakdownDTO{
		CorrectOutcome:        b.CorrectOutcome,
		CorrectGoalsByTeam:    b.CorrectGoalsByTeam,
		CorrectGoalDifference: b.CorrectGoalDifference,
		CorrectResult:         b.CorrectResult,
		CorrectGoalScorer:     b.CorrectGoalScorer,
		OddsBonus:             b.OddsBonus,
		FirstTeamToScore:      b.FirstTeamToScore,
		GoalFest:              b.GoalFest,
		UnderdogBonus:         b.UnderdogBonus,
		ChipBonus:             b.ChipBonus,
		Chips:                 append([]string{}, b.Chips...),
		Total:                 b.Total,
	}
}

func predictionToDTO(p prediction.Prediction) predictionDTO {
	out := predictionDTO{
		ParticipantID:    p.ParticipantID,
		FixtureID:        p.FixtureID,
		HomeGoals:        p.HomeGoals,
		AwayGoals:        p.AwayGoals,
		FirstTeamToScore: string(p.FirstTeamToScore),
		SubmittedAt:      p.SubmittedAt,
	}
	if p.GoalScorer != nil {
		out.GoalScorer = &scorerPayload{
			PlayerID: p.GoalScorer.PlayerID,
			Name:     p.GoalScorer.Name,
			Team:     p.GoalScorer.Team,
			Position: string(p.GoalScorer.Position),
		}
	}
	if p.Points != nil {
		points := breakdownToDTO(*p.Points)
		out.Points = &points
	}
	return out
}

func predictionsToDTO(ctx context.Context, items []prediction.Prediction) []predictionDTO {
	_ = ctx

	out := make([]predictionDTO, 0, len(items))
	for _, p := range items {
		out = append(out, predictionToDTO(p))
	}
	return out
}

// gameWeekToDTO hides everyone's predictions until the round stops accepting
// them.
func gameWeekToDTO(ctx context.Context, week gameweek.GameWeek, now time.Time) gameWeekDTO {
	state := week.State(now)
	fixtures := make([]fixtureDTO, 0, len(week.Fixtures))
	for _, fx := range week.Fixtures {
		fixtures = append(fixtures, fixtureToDTO(fx))
	}

	predictions := []predictionDTO{}
	if state != gameweek.StateUpcoming && state != gameweek.StatePredictable {
		predictions = predictionsToDTO(ctx, week.Predictions)
	}

	return gameWeekDTO{
		Round:            week.Round,
		State:            string(state),
		StartsAt:         week.StartsAt,
		Deadline:         week.Deadline,
		Fixtures:         fixtures,
		Predictions:      predictions,
		HasBeenCorrected: week.HasBeenCorrected,
		HasEnded:         week.HasEnded,
		ForceEnded:       week.ForceEnded,
		CorrectedAt:      week.CorrectedAt,
		EndedAt:          week.EndedAt,
	}
}

func chipAssignmentToDTO(a chip.Assignment) chipAssignmentDTO {
	return chipAssignmentDTO{
		Kind:       string(a.Kind),
		Round:      a.Round,
		Scope:      string(a.Scope),
		FixtureID:  a.FixtureID,
		AssignedAt: a.AssignedAt,
	}
}

func chipRemainingToDTO(remaining map[chip.Kind]int) []chipRemainingDTO {
	out := make([]chipRemainingDTO, 0, len(chip.AllKinds))
	for _, kind := range chip.AllKinds {
		out = append(out, chipRemainingDTO{Kind: string(kind), Remaining: remaining[kind]})
	}
	return out
}

func suggestionsToDTO(ctx context.Context, items []scoring.Suggestion) []suggestionDTO {
	_ = ctx

	out := make([]suggestionDTO, 0, len(items))
	for _, s := range items {
		out = append(out, suggestionDTO{
			ParticipantID: s.ParticipantID,
			OddsTier:      s.OddsTier.String(),
			Bonuses: bonusPayload{
				OddsBonus:        s.Bonuses.OddsBonus,
				FirstTeamToScore: s.Bonuses.FirstTeamToScore,
				GoalFest:         s.Bonuses.GoalFest,
				UnderdogBonus:    s.Bonuses.UnderdogBonus,
			},
		})
	}
	return out
}

func correctionToDTO(ctx context.Context, out usecase.CorrectionResult, now time.Time) correctionDTO {
	scored := make([]scoredDTO, 0, len(out.Scored))
	for _, s := range out.Scored {
		scored = append(scored, scoredDTO{ParticipantID: s.ParticipantID, Breakdown: breakdownToDTO(s.Breakdown)})
	}

	return correctionDTO{
		LeagueID:       out.League.ID,
		Version:        out.League.Version,
		Round:          out.GameWeek.Round,
		RoundState:     string(out.GameWeek.State(now)),
		Fixture:        fixtureToDTO(out.Fixture),
		ScoredCount:    len(out.Scored),
		Scored:         scored,
		Suggestions:    suggestionsToDTO(ctx, out.Suggestions),
		Standings:      standingsToDTO(ctx, out.League.Standings),
		RoundCorrected: out.GameWeek.HasBeenCorrected,
	}
}
