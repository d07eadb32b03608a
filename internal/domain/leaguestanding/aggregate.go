package leaguestanding

import (
	"sort"

	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
)

// Aggregate folds scored predictions into a copy of standings.
// Participants missing from standings are appended in the order they appear.
func Aggregate(standings []Standing, scored []prediction.Scored) []Standing {
	out := append([]Standing(nil), standings...)
	index := make(map[string]int, len(out))
	for i, s := range out {
		index[s.ParticipantID] = i
	}

	for _, item := range scored {
		i, ok := index[item.ParticipantID]
		if !ok {
			out = append(out, Standing{ParticipantID: item.ParticipantID})
			i = len(out) - 1
			index[item.ParticipantID] = i
		}

		out[i].Points += item.Breakdown.Total
		out[i].OddsBonusPoints += item.Breakdown.OddsBonus
		if item.Breakdown.CorrectResult > 0 {
			out[i].CorrectResults++
		}
	}

	return out
}

// Sort orders standings by points then correct results, both descending.
// Ties keep their relative order, so sorting a sorted table is a no-op.
func Sort(standings []Standing) []Standing {
	out := append([]Standing(nil), standings...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].CorrectResults > out[j].CorrectResults
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Rebuild recomputes the table from every stored breakdown.
//
// previous supplies the tie order; participants only present in seeds are
// placed after it. Display names come from seeds when given.
func Rebuild(previous []Standing, seeds []Seed, scored []prediction.Scored) []Standing {
	names := make(map[string]string, len(seeds))
	for _, seed := range seeds {
		names[seed.ParticipantID] = seed.DisplayName
	}

	base := make([]Standing, 0, len(previous)+len(seeds))
	seen := make(map[string]struct{}, len(previous)+len(seeds))
	for _, s := range previous {
		if _, ok := seen[s.ParticipantID]; ok {
			continue
		}
		if len(seeds) > 0 {
			if _, ok := names[s.ParticipantID]; !ok {
				continue
			}
		}
		seen[s.ParticipantID] = struct{}{}
		base = append(base, Standing{ParticipantID: s.ParticipantID, DisplayName: s.DisplayName})
	}
	for _, seed := range seeds {
		if _, ok := seen[seed.ParticipantID]; ok {
			continue
		}
		seen[seed.ParticipantID] = struct{}{}
		base = append(base, Standing{ParticipantID: seed.ParticipantID})
	}
	for i := range base {
		if name, ok := names[base[i].ParticipantID]; ok && name != "" {
			base[i].DisplayName = name
		}
	}

	return Sort(Aggregate(base, scored))
}
