package models

// LanguageDetails is the display form of a language code
type LanguageDetails struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
}

// LanguageOption is one choice of the language picker
type LanguageOption struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
