package quiz

import (
	"testing"

	"github.com/example/vocabquiz/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestIsCorrect(t *testing.T) {
	assert.True(t, IsCorrect(" Casa ", "casa"))
	assert.True(t, IsCorrect("GATO", "gato"))
	assert.True(t, IsCorrect("\tperro\n", "Perro"))
	assert.False(t, IsCorrect("gatos", "gato"))
	assert.False(t, IsCorrect("", "gato"))
}

func TestGradeIsPositional(t *testing.T) {
	entries := []models.Entry{
		{ID: 1, TextFrom: "hello", TextTo: "hola"},
		{ID: 2, TextFrom: "cat", TextTo: "gato"},
	}

	tests := []struct {
		name    string
		answers []string
		score   int
	}{
		{"all correct", []string{"hola", "gato"}, 2},
		{"one wrong", []string{"hola", "perro"}, 1},
		{"swapped", []string{"gato", "hola"}, 0},
		{"none", nil, 0},
		{"short", []string{"hola"}, 1},
		{"extra answers ignored", []string{"hola", "gato", "sobra"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, details := Grade(entries, tt.answers)
			assert.Equal(t, tt.score, score)
			assert.Len(t, details, len(entries))
			assert.Equal(t, int64(1), details[0].EntryID)
			assert.Equal(t, "hola", details[0].CorrectAnswer)
		})
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 100.0, Percentage(2, 2))
	assert.Equal(t, 50.0, Percentage(1, 2))
	assert.Equal(t, 0.0, Percentage(0, 2))
	assert.InDelta(t, 33.333, Percentage(1, 3), 0.001)
}
