package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/chip"
	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/gameweek"
	"github.com/riskibarqy/prediction-league/internal/domain/league"
	"github.com/riskibarqy/prediction-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/prediction-league/internal/domain/scoring"
	idgen "github.com/riskibarqy/prediction-league/internal/platform/id"
)

type CreateLeagueInput struct {
	Name             string
	AdminUserID      string
	AdminDisplayName string
	Template         string
	RuleSet          *scoring.RuleSet
	ChipAllowance    *chip.Allowance
}

type JoinLeagueInput struct {
	LeagueID    string
	UserID      string
	DisplayName string
}

type UpdateRuleSetInput struct {
	LeagueID string
	UserID   string
	Template string
	RuleSet  *scoring.RuleSet
}

type AddGameWeekInput struct {
	LeagueID string
	UserID   string
	StartsAt time.Time
	Deadline time.Time
	Fixtures []fixture.Fixture
}

type LeagueService struct {
	leagueRepo league.Repository
	idGen      idgen.Generator
	now        func() time.Time
}

func NewLeagueService(leagueRepo league.Repository, idGen idgen.Generator) *LeagueService {
	return &LeagueService{
		leagueRepo: leagueRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *LeagueService) ListRuleTemplates() []scoring.Template {
	return scoring.Templates()
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return leagues, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeague")
	defer span.End()

	return loadLeague(ctx, s.leagueRepo, leagueID)
}

func (s *LeagueService) GetGameWeek(ctx context.Context, leagueID string, round int) (gameweek.GameWeek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetGameWeek")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return gameweek.GameWeek{}, err
	}

	week, _, ok := item.GameWeek(round)
	if !ok {
		return gameweek.GameWeek{}, fmt.Errorf("%w: league=%s round=%d", ErrNotFound, item.ID, round)
	}

	return week, nil
}

// CreateLeague stores a new league with the caller as administrator and first
// participant. An explicit rule set wins over the template.
func (s *LeagueService) CreateLeague(ctx context.Context, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateLeague")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.AdminUserID = strings.TrimSpace(input.AdminUserID)
	if input.AdminUserID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if input.Name == "" {
		return league.League{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}

	rules, templateName, err := resolveRuleSet(input.Template, input.RuleSet)
	if err != nil {
		return league.League{}, err
	}

	allowance := chip.DefaultAllowance()
	if input.ChipAllowance != nil {
		allowance = *input.ChipAllowance
	}
	if err := allowance.Validate(); err != nil {
		return league.League{}, err
	}

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}

	now := s.now().UTC()
	displayName := strings.TrimSpace(input.AdminDisplayName)
	if displayName == "" {
		displayName = input.AdminUserID
	}

	item := league.League{
		ID:              leagueID,
		Name:            input.Name,
		AdminUserID:     input.AdminUserID,
		Version:         1,
		RuleSet:         rules,
		RuleSetTemplate: templateName,
		ChipAllowance:   allowance,
		Participants: []league.Participant{
			{UserID: input.AdminUserID, DisplayName: displayName, JoinedAt: now},
		},
		Standings: []leaguestanding.Standing{
			{ParticipantID: input.AdminUserID, DisplayName: displayName, Rank: 1},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := item.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.leagueRepo.Create(ctx, item); err != nil {
		if errors.Is(err, league.ErrAlreadyExists) {
			return league.League{}, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	return item, nil
}

func (s *LeagueService) JoinLeague(ctx context.Context, input JoinLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.JoinLeague")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	item, err := loadLeague(ctx, s.leagueRepo, input.LeagueID)
	if err != nil {
		return league.League{}, err
	}
	if item.HasEnded {
		return league.League{}, fmt.Errorf("%w: league=%s has ended", ErrConflict, item.ID)
	}
	if item.HasParticipant(input.UserID) {
		return item, nil
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = input.UserID
	}

	now := s.now().UTC()
	item.Participants = append(item.Participants, league.Participant{
		UserID:      input.UserID,
		DisplayName: displayName,
		JoinedAt:    now,
	})
	item.Standings = item.RebuildStandings()

	return replaceLeague(ctx, s.leagueRepo, item, now)
}

// UpdateRuleSet swaps the active rule set. Corrected fixtures keep the points
// they were awarded; only later corrections use the new values.
func (s *LeagueService) UpdateRuleSet(ctx context.Context, input UpdateRuleSetInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.UpdateRuleSet")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, input.LeagueID)
	if err != nil {
		return league.League{}, err
	}
	if err := requireAdmin(item, input.UserID); err != nil {
		return league.League{}, err
	}

	rules, templateName, err := resolveRuleSet(input.Template, input.RuleSet)
	if err != nil {
		return league.League{}, err
	}

	item.RuleSet = rules
	item.RuleSetTemplate = templateName

	return replaceLeague(ctx, s.leagueRepo, item, s.now().UTC())
}

func (s *LeagueService) AddGameWeek(ctx context.Context, input AddGameWeekInput) (gameweek.GameWeek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.AddGameWeek")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, input.LeagueID)
	if err != nil {
		return gameweek.GameWeek{}, err
	}
	if err := requireAdmin(item, input.UserID); err != nil {
		return gameweek.GameWeek{}, err
	}
	if item.HasEnded {
		return gameweek.GameWeek{}, fmt.Errorf("%w: league=%s has ended", ErrConflict, item.ID)
	}

	fixtures := make([]fixture.Fixture, 0, len(input.Fixtures))
	for _, fx := range input.Fixtures {
		fx.ID = strings.TrimSpace(fx.ID)
		if fx.ID == "" {
			generated, err := s.idGen.NewID()
			if err != nil {
				return gameweek.GameWeek{}, fmt.Errorf("generate fixture id: %w", err)
			}
			fx.ID = generated
		}
		fx.FinalResult = nil
		fx.CorrectedAt = nil
		fixtures = append(fixtures, fx)
	}

	week := gameweek.GameWeek{
		Round:    item.NextRound(),
		StartsAt: input.StartsAt.UTC(),
		Deadline: input.Deadline.UTC(),
		Fixtures: fixtures,
	}
	if err := week.Validate(); err != nil {
		return gameweek.GameWeek{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item.GameWeeks = append(item.GameWeeks, week)
	if _, err := replaceLeague(ctx, s.leagueRepo, item, s.now().UTC()); err != nil {
		return gameweek.GameWeek{}, err
	}

	return week, nil
}

// EndLeague closes the league and force-ends every round that has not ended.
// Force-ended rounds never award further points.
func (s *LeagueService) EndLeague(ctx context.Context, leagueID, userID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.EndLeague")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return league.League{}, err
	}
	if err := requireAdmin(item, userID); err != nil {
		return league.League{}, err
	}
	if item.HasEnded {
		return item, nil
	}

	now := s.now().UTC()
	weeks := make([]gameweek.GameWeek, 0, len(item.GameWeeks))
	for _, week := range item.GameWeeks {
		weeks = append(weeks, week.ForceEnd(now))
	}
	item.GameWeeks = weeks
	item.HasEnded = true

	return replaceLeague(ctx, s.leagueRepo, item, now)
}

func resolveRuleSet(templateName string, explicit *scoring.RuleSet) (scoring.RuleSet, string, error) {
	if explicit != nil {
		if err := explicit.Validate(); err != nil {
			return scoring.RuleSet{}, "", err
		}
		return *explicit, "custom", nil
	}

	tpl, err := scoring.TemplateByName(templateName)
	if err != nil {
		return scoring.RuleSet{}, "", err
	}
	return tpl.Rules, tpl.Name, nil
}
