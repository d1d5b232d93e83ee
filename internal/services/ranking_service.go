package services

import (
	"context"
	"sort"
	"time"

	"github.com/wakqa-labs/wakqa-backend/internal/apperrors"
	"github.com/wakqa-labs/wakqa-backend/internal/models"
	"github.com/wakqa-labs/wakqa-backend/internal/repositories"
)

// Compile-time check to ensure RankingServiceImpl implements RankingService
var _ RankingService = (*RankingServiceImpl)(nil)

// Leaderboard sizes per period
const (
	weeklyLimit  = 50
	monthlyLimit = 50
	overallLimit = 100
)

// acceptedWeight is the score multiplier for an accepted answer.
const acceptedWeight = 5

type RankingServiceImpl struct {
	answerRepo repositories.AnswerRepository
	userRepo   repositories.UserRepository
	now        func() time.Time
}

// NewRankingService creates a new RankingService implementation
func NewRankingService(answerRepo repositories.AnswerRepository, userRepo repositories.UserRepository) *RankingServiceImpl {
	return &RankingServiceImpl{
		answerRepo: answerRepo,
		userRepo:   userRepo,
		now:        time.Now,
	}
}

// Leaderboard aggregates answers by author in the period's window, scores
// each author as answers + accepted*5 and returns a stable ordering with
// 1-based ranks. Equal scores get consecutive distinct ranks.
func (s *RankingServiceImpl) Leaderboard(ctx context.Context, period string) ([]*models.RankingEntry, error) {
	since, limit, err := s.window(period)
	if err != nil {
		return nil, err
	}

	stats, err := s.answerRepo.AggregateAuthorStats(ctx, since)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "failed to aggregate rankings", err)
	}

	entries := make([]*models.RankingEntry, 0, len(stats))
	for _, st := range stats {
		entries = append(entries, &models.RankingEntry{
			Author:        st.Author,
			AnswersCount:  st.AnswersCount,
			AcceptedCount: st.AcceptedCount,
			Score:         st.AnswersCount + st.AcceptedCount*acceptedWeight,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if entries[i].AcceptedCount != entries[j].AcceptedCount {
			return entries[i].AcceptedCount > entries[j].AcceptedCount
		}
		return entries[i].AnswersCount > entries[j].AnswersCount
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i, e := range entries {
		e.Rank = i + 1
		// Display name is resolved per row; a missing account just leaves
		// the name empty.
		if user, err := s.userRepo.FindByWallet(ctx, e.Author); err == nil {
			e.UserName = user.UserName
		}
	}
	return entries, nil
}

// window maps a period to its lower time bound and result size. A zero time
// means no bound.
func (s *RankingServiceImpl) window(period string) (time.Time, int, error) {
	now := s.now()
	switch period {
	case models.RankingWeekly:
		return now.AddDate(0, 0, -7), weeklyLimit, nil
	case models.RankingMonthly:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return monthStart, monthlyLimit, nil
	case models.RankingOverall:
		return time.Time{}, overallLimit, nil
	default:
		return time.Time{}, 0, apperrors.Ef(apperrors.Invalid, "unknown ranking period %q", period)
	}
}
