// Package progress aggregates a user's quiz history.
package progress

import (
	"context"

	"github.com/example/vocabquiz/internal/database"
	"github.com/example/vocabquiz/internal/guard"
	"github.com/example/vocabquiz/pkg/models"
	"github.com/jmoiron/sqlx"
)

// Service reads test results and summarizes them
type Service struct {
	results *database.TestResultRepository
}

// NewService creates a new progress service
func NewService(db *sqlx.DB) *Service {
	return &Service{results: database.NewTestResultRepository(db)}
}

// GetProgress returns the history of userID, newest first, with summary statistics
func (s *Service) GetProgress(ctx context.Context, userID int64) (*models.Progress, error) {
	if err := guard.RequireActor(userID); err != nil {
		return nil, err
	}
	results, err := s.results.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress := Summarize(results)
	return &progress, nil
}

// Summarize computes the statistics of results. Without results every statistic is zero.
func Summarize(results []models.TestResult) models.Progress {
	progress := models.Progress{
		Results:    results,
		TotalTests: len(results),
	}
	if progress.Results == nil {
		progress.Results = []models.TestResult{}
	}
	if len(results) == 0 {
		return progress
	}

	totalScore := 0
	totalPercentage := 0.0
	progress.HighestScore = results[0].Score
	progress.LowestScore = results[0].Score
	for _, r := range results {
		totalScore += r.Score
		totalPercentage += r.Percentage
		if r.Score > progress.HighestScore {
			progress.HighestScore = r.Score
		}
		if r.Score < progress.LowestScore {
			progress.LowestScore = r.Score
		}
	}
	progress.AverageScore = float64(totalScore) / float64(len(results))
	progress.AveragePercentage = totalPercentage / float64(len(results))
	return progress
}
