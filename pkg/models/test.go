package models

// Test is a named vocabulary set between two languages, owned by one user
type Test struct {
	ID           int64  `json:"id" db:"id"`
	UserID       int64  `json:"user_id" db:"user_id"`
	Name         string `json:"test_name" db:"test_name"`
	LanguageFrom string `json:"language_from" db:"language_from"`
	LanguageTo   string `json:"language_to" db:"language_to"`
}

// TestWithLanguages is a Test decorated with resolved language details for display
type TestWithLanguages struct {
	Test
	LanguageFromDetails LanguageDetails `json:"language_from_details"`
	LanguageToDetails   LanguageDetails `json:"language_to_details"`
}

// TestUpdate carries a partial update of a Test. Nil fields are left untouched.
type TestUpdate struct {
	Name         *string `json:"test_name,omitempty"`
	LanguageFrom *string `json:"language_from,omitempty"`
	LanguageTo   *string `json:"language_to,omitempty"`
}

// IsEmpty reports whether the update changes nothing
func (u TestUpdate) IsEmpty() bool {
	return u.Name == nil && u.LanguageFrom == nil && u.LanguageTo == nil
}

// TestEdit is the payload of the authoring form: the test fields plus one row per entry position.
type TestEdit struct {
	TestUpdate
	Entries []EntryEdit `json:"entries"`
}

// TestForEdit is everything the authoring form needs to render
type TestForEdit struct {
	Test            TestWithLanguages `json:"test"`
	Entries         []Entry           `json:"entries"`
	LanguageOptions []LanguageOption  `json:"language_options"`
}
