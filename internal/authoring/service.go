// Package authoring implements creation and editing of tests and their entries.
package authoring

import (
	"context"
	"log"

	"github.com/example/vocabquiz/internal/apperr"
	"github.com/example/vocabquiz/internal/database"
	"github.com/example/vocabquiz/internal/guard"
	"github.com/example/vocabquiz/internal/language"
	"github.com/example/vocabquiz/pkg/models"
	"github.com/jmoiron/sqlx"
)

// Service owns the write side of tests and entries. Every operation runs in one transaction.
type Service struct {
	db     *sqlx.DB
	policy TextPolicy
}

// NewService creates a new authoring service
func NewService(db *sqlx.DB, policy TextPolicy) *Service {
	if policy.MaxLength <= 0 {
		policy.MaxLength = DefaultTextPolicy().MaxLength
	}
	return &Service{db: db, policy: policy}
}

// CreateTest creates an empty test owned by actorID and returns its id
func (s *Service) CreateTest(ctx context.Context, actorID int64, name, langFrom, langTo string) (int64, error) {
	if err := guard.RequireActor(actorID); err != nil {
		return 0, err
	}
	name, err := checkName(name)
	if err != nil {
		return 0, err
	}
	langFrom, langTo, err = checkLanguages(langFrom, langTo)
	if err != nil {
		return 0, err
	}

	test := &models.Test{UserID: actorID, Name: name, LanguageFrom: langFrom, LanguageTo: langTo}
	if err := database.NewTestRepository(s.db).Create(ctx, test); err != nil {
		return 0, err
	}
	log.Printf("User %d created test %d (%s -> %s)", actorID, test.ID, langFrom, langTo)
	return test.ID, nil
}

// ListMyTests returns the tests of actorID with resolved language details
func (s *Service) ListMyTests(ctx context.Context, actorID int64) ([]models.TestWithLanguages, error) {
	if err := guard.RequireActor(actorID); err != nil {
		return nil, err
	}
	tests, err := database.NewTestRepository(s.db).ListByUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	out := make([]models.TestWithLanguages, 0, len(tests))
	for _, test := range tests {
		out = append(out, language.Decorate(test))
	}
	return out, nil
}

// GetTestForEdit returns a test with its entries in canonical order and the language picker options
func (s *Service) GetTestForEdit(ctx context.Context, actorID, testID int64) (*models.TestForEdit, error) {
	var out *models.TestForEdit
	err := database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		out, err = loadForEdit(ctx, tx, actorID, testID)
		return err
	})
	return out, err
}

func loadForEdit(ctx context.Context, q sqlx.ExtContext, actorID, testID int64) (*models.TestForEdit, error) {
	test, err := guard.New(q).Test(ctx, actorID, testID)
	if err != nil {
		return nil, err
	}
	entries, err := database.NewEntryRepository(q).ListByTest(ctx, testID)
	if err != nil {
		return nil, err
	}
	return &models.TestForEdit{
		Test:            language.Decorate(*test),
		Entries:         entries,
		LanguageOptions: language.Options(),
	}, nil
}

// UpdateTest applies a partial update of name and languages
func (s *Service) UpdateTest(ctx context.Context, actorID, testID int64, update models.TestUpdate) (*models.Test, error) {
	var out *models.Test
	err := database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		test, err := guard.New(tx).Test(ctx, actorID, testID)
		if err != nil {
			return err
		}
		if err := s.applyUpdate(ctx, tx, test, update); err != nil {
			return err
		}
		out = test
		return nil
	})
	return out, err
}

func (s *Service) applyUpdate(ctx context.Context, q sqlx.ExtContext, test *models.Test, update models.TestUpdate) error {
	if update.IsEmpty() {
		return nil
	}
	if update.Name != nil {
		name, err := checkName(*update.Name)
		if err != nil {
			return err
		}
		test.Name = name
	}
	from, to := test.LanguageFrom, test.LanguageTo
	if update.LanguageFrom != nil {
		from = *update.LanguageFrom
	}
	if update.LanguageTo != nil {
		to = *update.LanguageTo
	}
	from, to, err := checkLanguages(from, to)
	if err != nil {
		return err
	}
	test.LanguageFrom, test.LanguageTo = from, to

	return database.NewTestRepository(q).Update(ctx, test)
}

// DeleteTest removes a test together with its entries and its results
func (s *Service) DeleteTest(ctx context.Context, actorID, testID int64) error {
	return database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := guard.New(tx).Test(ctx, actorID, testID); err != nil {
			return err
		}
		entries, err := database.NewEntryRepository(tx).DeleteByTest(ctx, testID)
		if err != nil {
			return err
		}
		results, err := database.NewTestResultRepository(tx).DeleteByTest(ctx, testID)
		if err != nil {
			return err
		}
		if err := database.NewTestRepository(tx).Delete(ctx, testID); err != nil {
			return err
		}
		log.Printf("User %d deleted test %d with %d entries and %d results", actorID, testID, entries, results)
		return nil
	})
}

// AddEntry appends a term pair to a test and returns it
func (s *Service) AddEntry(ctx context.Context, actorID, testID int64, textFrom, textTo string) (*models.Entry, error) {
	var out *models.Entry
	err := database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := guard.New(tx).Test(ctx, actorID, testID); err != nil {
			return err
		}
		entry, err := s.newEntry(testID, textFrom, textTo)
		if err != nil {
			return err
		}
		if err := database.NewEntryRepository(tx).Create(ctx, entry); err != nil {
			return err
		}
		out = entry
		return nil
	})
	return out, err
}

// UpdateEntry replaces both texts of an entry
func (s *Service) UpdateEntry(ctx context.Context, actorID, entryID int64, textFrom, textTo string) (*models.Entry, error) {
	var out *models.Entry
	err := database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		entry, _, err := guard.New(tx).Entry(ctx, actorID, entryID)
		if err != nil {
			return err
		}
		if err := s.setTexts(entry, textFrom, textTo); err != nil {
			return err
		}
		if err := database.NewEntryRepository(tx).Update(ctx, entry); err != nil {
			return err
		}
		out = entry
		return nil
	})
	return out, err
}

// DeleteEntry removes one entry of a test owned by actorID
func (s *Service) DeleteEntry(ctx context.Context, actorID, entryID int64) error {
	return database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, _, err := guard.New(tx).Entry(ctx, actorID, entryID); err != nil {
			return err
		}
		return database.NewEntryRepository(tx).Delete(ctx, entryID)
	})
}

// SubmitTestEdit applies the authoring form. Each position with an id updates that entry, each
// position without an id but with both texts creates an entry, and every other position is skipped.
// Entries not mentioned are left untouched.
func (s *Service) SubmitTestEdit(ctx context.Context, actorID, testID int64, edit models.TestEdit) (*models.TestForEdit, error) {
	var out *models.TestForEdit
	err := database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		test, err := guard.New(tx).Test(ctx, actorID, testID)
		if err != nil {
			return err
		}
		if err := s.applyUpdate(ctx, tx, test, edit.TestUpdate); err != nil {
			return err
		}

		entries := database.NewEntryRepository(tx)
		var updated, created, skipped int
		for _, row := range edit.Entries {
			switch {
			case row.HasID():
				entry, err := entries.GetByID(ctx, row.ID)
				if err != nil {
					return err
				}
				if entry.TestID != testID {
					return apperr.NotFound("entry", row.ID)
				}
				if err := s.setTexts(entry, row.TextFrom, row.TextTo); err != nil {
					return err
				}
				if err := entries.Update(ctx, entry); err != nil {
					return err
				}
				updated++
			case isBlank(row.TextFrom) || isBlank(row.TextTo):
				skipped++
			default:
				entry, err := s.newEntry(testID, row.TextFrom, row.TextTo)
				if err != nil {
					return err
				}
				if err := entries.Create(ctx, entry); err != nil {
					return err
				}
				created++
			}
		}
		log.Printf("User %d edited test %d: %d updated, %d created, %d skipped", actorID, testID, updated, created, skipped)

		out, err = loadForEdit(ctx, tx, actorID, testID)
		return err
	})
	return out, err
}

func (s *Service) newEntry(testID int64, textFrom, textTo string) (*models.Entry, error) {
	entry := &models.Entry{TestID: testID}
	if err := s.setTexts(entry, textFrom, textTo); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) setTexts(entry *models.Entry, textFrom, textTo string) error {
	from, err := s.policy.Check("source text", textFrom)
	if err != nil {
		return err
	}
	to, err := s.policy.Check("target text", textTo)
	if err != nil {
		return err
	}
	entry.TextFrom, entry.TextTo = from, to
	return nil
}
