// Package quiz runs quizzes: it shuffles a test for presentation and scores submitted answers.
package quiz

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/example/vocabquiz/internal/apperr"
	"github.com/example/vocabquiz/internal/database"
	"github.com/example/vocabquiz/internal/guard"
	"github.com/example/vocabquiz/internal/language"
	"github.com/example/vocabquiz/pkg/models"
	"github.com/jmoiron/sqlx"
)

// Engine starts and scores quizzes
type Engine struct {
	db       *sqlx.DB
	attempts *Attempts
	ttl      time.Duration

	mu  sync.Mutex
	rnd *rand.Rand

	now func() time.Time
}

// NewEngine creates a quiz engine. Presented attempts expire after attemptTTL.
func NewEngine(db *sqlx.DB, attemptTTL time.Duration) *Engine {
	return &Engine{
		db:       db,
		attempts: NewAttempts(),
		ttl:      attemptTTL,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
}

// shuffle permutes items uniformly in place
func (e *Engine) shuffle(items []models.QuizItem) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rnd.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

func (e *Engine) intn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rnd.Intn(n)
}

// StartQuiz loads the entries of a test owned by actorID and returns them in a fresh random order
func (e *Engine) StartQuiz(ctx context.Context, actorID, testID int64) (*models.QuizSession, error) {
	var (
		test    *models.Test
		entries []models.Entry
	)
	err := database.WithTx(ctx, e.db, func(tx *sqlx.Tx) error {
		var err error
		test, err = guard.New(tx).Test(ctx, actorID, testID)
		if err != nil {
			return err
		}
		entries, err = database.NewEntryRepository(tx).ListByTest(ctx, testID)
		return err
	})
	if err != nil {
		return nil, err
	}

	canonical := make([]int64, 0, len(entries))
	items := make([]models.QuizItem, 0, len(entries))
	for _, entry := range entries {
		canonical = append(canonical, entry.ID)
		items = append(items, models.QuizItem{EntryID: entry.ID, Prompt: entry.TextFrom})
	}
	e.shuffle(items)

	presented := make([]int64, 0, len(items))
	for _, item := range items {
		presented = append(presented, item.EntryID)
	}

	startedAt := e.now().UTC()
	attemptID, err := e.attempts.Present(testID, actorID, canonical, presented, startedAt)
	if err != nil {
		return nil, err
	}

	return &models.QuizSession{
		AttemptID: attemptID,
		Test:      language.Decorate(*test),
		Items:     items,
		StartedAt: startedAt,
	}, nil
}

// StartRandomQuiz starts a quiz on a uniformly chosen test of actorID
func (e *Engine) StartRandomQuiz(ctx context.Context, actorID int64) (*models.QuizSession, error) {
	if err := guard.RequireActor(actorID); err != nil {
		return nil, err
	}
	tests, err := database.NewTestRepository(e.db).ListByUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if len(tests) == 0 {
		return nil, fmt.Errorf("%w: user %d has no tests", apperr.ErrNotFound, actorID)
	}
	return e.StartQuiz(ctx, actorID, tests[e.intn(len(tests))].ID)
}

// SubmitQuiz grades answers positionally against the entries of the test in ascending id order
// and records the result. The caller is responsible for putting answers in that order.
func (e *Engine) SubmitQuiz(ctx context.Context, actorID, testID int64, answers []string) (*models.ScoreReport, error) {
	return e.submit(ctx, actorID, testID, func([]models.Entry) []string { return answers })
}

// SubmitAttempt scores a presented attempt. Answers are keyed by entry id and are put back into
// canonical order before grading. An attempt can be submitted once.
func (e *Engine) SubmitAttempt(ctx context.Context, actorID int64, attemptID string, testID int64, answers map[int64]string) (*models.ScoreReport, error) {
	if err := guard.RequireActor(actorID); err != nil {
		return nil, err
	}
	attempt, err := e.attempts.Claim(attemptID, actorID)
	if err != nil {
		return nil, err
	}
	if testID > 0 && attempt.TestID != testID {
		e.attempts.Release(attemptID)
		return nil, apperr.Validation("quiz attempt %q does not belong to test %d", attemptID, testID)
	}

	report, err := e.submit(ctx, actorID, attempt.TestID, func(entries []models.Entry) []string {
		ordered := make([]string, len(entries))
		for i, entry := range entries {
			ordered[i] = answers[entry.ID]
		}
		return ordered
	})
	if err != nil {
		e.attempts.Release(attemptID)
		return nil, err
	}
	e.attempts.Scored(attemptID)
	return report, nil
}

func (e *Engine) submit(ctx context.Context, actorID, testID int64, order func([]models.Entry) []string) (*models.ScoreReport, error) {
	var report *models.ScoreReport
	err := database.WithTx(ctx, e.db, func(tx *sqlx.Tx) error {
		if _, err := guard.New(tx).Test(ctx, actorID, testID); err != nil {
			return err
		}
		entries, err := database.NewEntryRepository(tx).ListByTest(ctx, testID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("%w: test %d has no entries to score", apperr.ErrDegenerateInput, testID)
		}

		score, details := Grade(entries, order(entries))
		result := &models.TestResult{
			UserID:         actorID,
			TestID:         testID,
			Score:          score,
			TotalQuestions: len(entries),
			Percentage:     Percentage(score, len(entries)),
			DateTaken:      e.now().UTC(),
		}
		if err := database.NewTestResultRepository(tx).Create(ctx, result); err != nil {
			return err
		}

		report = &models.ScoreReport{
			ResultID:       result.ID,
			TestID:         testID,
			Score:          result.Score,
			TotalQuestions: result.TotalQuestions,
			Percentage:     result.Percentage,
			Details:        details,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("User %d scored %d/%d on test %d", actorID, report.Score, report.TotalQuestions, testID)
	return report, nil
}

// SweepAttempts drops attempts older than the attempt TTL and returns how many were dropped
func (e *Engine) SweepAttempts() int {
	return e.attempts.Sweep(e.now(), e.ttl)
}
