package models

// Progress summarizes a user's quiz history
type Progress struct {
	Results           []TestResult `json:"results"`
	AverageScore      float64      `json:"average_score"`
	AveragePercentage float64      `json:"average_percentage"`
	HighestScore      int          `json:"highest_score"`
	LowestScore       int          `json:"lowest_score"`
	TotalTests        int          `json:"total_tests"`
}
