package models

import "time"

// TestResult is the immutable record of one scored quiz attempt
type TestResult struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"user_id" db:"user_id"`
	TestID         int64     `json:"test_id" db:"test_id"`
	TestName       string    `json:"test_name" db:"test_name"` // joined for display, empty if the test is gone
	Score          int       `json:"score" db:"score"`
	TotalQuestions int       `json:"total_questions" db:"total_questions"`
	Percentage     float64   `json:"percentage" db:"percentage"`
	DateTaken      time.Time `json:"date_taken" db:"date_taken"`
}

// AnswerDetail describes how one canonical entry was graded
type AnswerDetail struct {
	EntryID       int64  `json:"entry_id"`
	Question      string `json:"question"`
	CorrectAnswer string `json:"correct_answer"`
	UserAnswer    string `json:"user_answer"`
	Correct       bool   `json:"correct"`
}

// ScoreReport is the outcome of submitting a quiz
type ScoreReport struct {
	ResultID       int64          `json:"result_id"`
	TestID         int64          `json:"test_id"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	Percentage     float64        `json:"percentage"`
	Details        []AnswerDetail `json:"details"`
}
