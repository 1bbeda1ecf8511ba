package models

// Entry is one term pair of a Test. Entries are owned by their Test and ordered by ID.
type Entry struct {
	ID       int64  `json:"id" db:"id"`
	TestID   int64  `json:"test_id" db:"test_id"`
	TextFrom string `json:"word_or_sentence_from" db:"word_or_sentence_from"`
	TextTo   string `json:"word_or_sentence_to" db:"word_or_sentence_to"`
}

// EntryEdit is one position of a bulk edit. A zero ID means "no existing entry at this position".
type EntryEdit struct {
	ID       int64  `json:"id,omitempty"`
	TextFrom string `json:"word_or_sentence_from"`
	TextTo   string `json:"word_or_sentence_to"`
}

// HasID reports whether the position refers to an existing entry
func (e EntryEdit) HasID() bool {
	return e.ID > 0
}
