package usecase

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/prediction-league/internal/domain/league"
	"github.com/riskibarqy/prediction-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
)

const defaultRebuildWorkers = 4

// StandingsExporter renders a standings table into a document.
type StandingsExporter interface {
	WriteStandings(w io.Writer, leagueName string, standings []leaguestanding.Standing) error
}

type RebuildStandingsInput struct {
	LeagueID   string
	MaxWorkers int
}

type RebuildLeagueResult struct {
	LeagueID   string `json:"league_id"`
	Status     string `json:"status"`
	Changed    bool   `json:"changed"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

type RebuildStandingsResult struct {
	LeagueCount  int                   `json:"league_count"`
	WorkerCount  int                   `json:"worker_count"`
	SuccessCount int                   `json:"success_count"`
	FailedCount  int                   `json:"failed_count"`
	Leagues      []RebuildLeagueResult `json:"leagues"`
}

type StandingsService struct {
	leagueRepo league.Repository
	exporter   StandingsExporter
	workers    int
	logger     *logging.Logger
	now        func() time.Time
}

func NewStandingsService(leagueRepo league.Repository, exporter StandingsExporter, workers int, logger *logging.Logger) *StandingsService {
	if workers <= 0 {
		workers = defaultRebuildWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingsService{
		leagueRepo: leagueRepo,
		exporter:   exporter,
		workers:    workers,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *StandingsService) ListStandings(ctx context.Context, leagueID string) ([]leaguestanding.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ListStandings")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}

	return leaguestanding.Sort(item.Standings), nil
}

// ExportStandings writes the current table of one league through the exporter.
func (s *StandingsService) ExportStandings(ctx context.Context, leagueID string, w io.Writer) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ExportStandings")
	defer span.End()

	if s.exporter == nil {
		return fmt.Errorf("%w: standings exporter is not configured", ErrDependencyUnavailable)
	}

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return err
	}

	if err := s.exporter.WriteStandings(w, item.Name, leaguestanding.Sort(item.Standings)); err != nil {
		return fmt.Errorf("export standings: %w", err)
	}
	return nil
}

// RebuildLeague recomputes one league's table from its stored breakdowns and
// writes it back only when it changed.
func (s *StandingsService) RebuildLeague(ctx context.Context, leagueID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.RebuildLeague")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return false, err
	}

	rebuilt := item.RebuildStandings()
	if slices.Equal(rebuilt, item.Standings) {
		return false, nil
	}

	item.Standings = rebuilt
	if _, err := replaceLeague(ctx, s.leagueRepo, item, s.now().UTC()); err != nil {
		return false, err
	}
	return true, nil
}

// RebuildStandings rebuilds one league when LeagueID is set, otherwise every
// league, fanning out over a worker pool.
func (s *StandingsService) RebuildStandings(ctx context.Context, input RebuildStandingsInput) (RebuildStandingsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.RebuildStandings")
	defer span.End()

	leagueIDs, err := s.pickLeagueIDs(ctx, input.LeagueID)
	if err != nil {
		return RebuildStandingsResult{}, err
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = s.workers
	}
	if workerCount > len(leagueIDs) {
		workerCount = len(leagueIDs)
	}

	result := RebuildStandingsResult{
		LeagueCount: len(leagueIDs),
		WorkerCount: workerCount,
		Leagues:     make([]RebuildLeagueResult, 0, len(leagueIDs)),
	}
	if len(leagueIDs) == 0 {
		return result, nil
	}

	rows := make(chan RebuildLeagueResult, len(leagueIDs))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RebuildStandingsResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, leagueID := range leagueIDs {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RebuildLeagueResult{LeagueID: leagueID, Status: "success"}
			changed, err := s.RebuildLeague(ctx, leagueID)
			row.Changed = changed
			if err != nil {
				row.Status = "failed"
				row.Message = err.Error()
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "rebuild standings failed", "league_id", leagueID, "error", err)
			} else {
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()
			rows <- row
		}); err != nil {
			workers.Done()
			return RebuildStandingsResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Leagues = append(result.Leagues, row)
	}
	sort.SliceStable(result.Leagues, func(i, j int) bool {
		return result.Leagues[i].LeagueID < result.Leagues[j].LeagueID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}

func (s *StandingsService) pickLeagueIDs(ctx context.Context, leagueID string) ([]string, error) {
	if leagueID != "" {
		item, err := loadLeague(ctx, s.leagueRepo, leagueID)
		if err != nil {
			return nil, err
		}
		return []string{item.ID}, nil
	}

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	out := make([]string, 0, len(leagues))
	for _, item := range leagues {
		out = append(out, item.ID)
	}
	return out, nil
}
