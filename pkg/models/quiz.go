package models

import "time"

// QuizItem is one prompt of a running quiz. The expected answer is never sent to the learner.
type QuizItem struct {
	EntryID int64  `json:"entry_id"`
	Prompt  string `json:"word_or_sentence_from"`
}

// QuizSession is what a learner sees when a quiz starts: the test and its prompts in presentation order.
type QuizSession struct {
	AttemptID string            `json:"attempt_id"`
	Test      TestWithLanguages `json:"test"`
	Items     []QuizItem        `json:"items"`
	StartedAt time.Time         `json:"started_at"`
}

// ImportResult holds the result of an entry import
type ImportResult struct {
	TotalProcessed int      `json:"total_processed"`
	Created        int      `json:"created"`
	Skipped        int      `json:"skipped"`
	Errors         []string `json:"errors,omitempty"`
}
