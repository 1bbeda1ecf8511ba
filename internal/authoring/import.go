package authoring

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/example/vocabquiz/internal/apperr"
	"github.com/example/vocabquiz/internal/database"
	"github.com/example/vocabquiz/internal/excel"
	"github.com/example/vocabquiz/internal/guard"
	"github.com/example/vocabquiz/pkg/models"
	"github.com/jmoiron/sqlx"
)

// ImportEntries adds the word pairs of an uploaded .xlsx or .csv file to a test. Rows with a blank
// side are skipped. A single invalid row rejects the whole file.
func (s *Service) ImportEntries(ctx context.Context, actorID, testID int64, filename string, r io.Reader) (*models.ImportResult, error) {
	if !excel.IsSupported(filename) {
		return nil, apperr.Validation("unsupported file %q, expected .xlsx or .csv", filename)
	}

	var out *models.ImportResult
	err := database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := guard.New(tx).Test(ctx, actorID, testID); err != nil {
			return err
		}

		pairs, err := excel.ReadPairs(filename, r, excel.DefaultImportConfig())
		if err != nil {
			return apperr.Validation("%v", err)
		}

		result := &models.ImportResult{Errors: make([]string, 0)}
		valid := make([]*models.Entry, 0, len(pairs))
		for _, pair := range pairs {
			result.TotalProcessed++
			if pair.Blank() {
				result.Skipped++
				continue
			}
			entry, err := s.newEntry(testID, pair.TextFrom, pair.TextTo)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", pair.Line, err))
				continue
			}
			valid = append(valid, entry)
		}
		if len(result.Errors) > 0 {
			return apperr.Validation("import rejected: %s", strings.Join(result.Errors, "; "))
		}

		entries := database.NewEntryRepository(tx)
		for _, entry := range valid {
			if err := entries.Create(ctx, entry); err != nil {
				return err
			}
			result.Created++
		}
		log.Printf("User %d imported %d entries into test %d (%d skipped)", actorID, result.Created, testID, result.Skipped)
		out = result
		return nil
	})
	return out, err
}
