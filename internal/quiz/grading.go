package quiz

import (
	"strings"

	"github.com/example/vocabquiz/pkg/models"
)

// NormalizeAnswer folds an answer for comparison: surrounding whitespace is dropped and case is ignored
func NormalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// IsCorrect reports whether answer matches expected
func IsCorrect(answer, expected string) bool {
	return NormalizeAnswer(answer) == NormalizeAnswer(expected)
}

// Grade matches answers[i] against entries[i]. Missing answers count as incorrect.
func Grade(entries []models.Entry, answers []string) (int, []models.AnswerDetail) {
	score := 0
	details := make([]models.AnswerDetail, 0, len(entries))
	for i, entry := range entries {
		var answer string
		if i < len(answers) {
			answer = answers[i]
		}
		correct := IsCorrect(answer, entry.TextTo)
		if correct {
			score++
		}
		details = append(details, models.AnswerDetail{
			EntryID:       entry.ID,
			Question:      entry.TextFrom,
			CorrectAnswer: entry.TextTo,
			UserAnswer:    answer,
			Correct:       correct,
		})
	}
	return score, details
}

// Percentage returns score as a share of total in percent. total must be positive.
func Percentage(score, total int) float64 {
	return float64(score) / float64(total) * 100
}
