package services

import (
	"database/sql"
	"time"

	"github.com/desirelabo/unc9/internal/models"
)

// --- テスト用モックリポジトリ ---

type mockWordRepo struct {
	getWordFn    func(word string) (*models.DivineWord, error)
	touchFn      func(wordID string, foundAt time.Time) error
	countFn      func() (int, error)
	touchedWords []string
}

func (m *mockWordRepo) GetWordByText(tx *sql.Tx, word string) (*models.DivineWord, error) {
	if m.getWordFn != nil {
		return m.getWordFn(word)
	}
	return nil, nil
}

func (m *mockWordRepo) TouchLastFound(tx *sql.Tx, wordID string, foundAt time.Time) error {
	m.touchedWords = append(m.touchedWords, wordID)
	if m.touchFn != nil {
		return m.touchFn(wordID, foundAt)
	}
	return nil
}

func (m *mockWordRepo) CountWords() (int, error) {
	if m.countFn != nil {
		return m.countFn()
	}
	return 0, nil
}

type mockCollectionRepo struct {
	upsertFn  func(userID, wordID string, foundAt time.Time) (*models.UserCollectionEntry, error)
	listFn    func(userID string) ([]models.CollectionItem, error)
	upsertLog []string // UPSERTされたwordIDの記録
}

func (m *mockCollectionRepo) UpsertEntry(tx *sql.Tx, userID, wordID string, foundAt time.Time) (*models.UserCollectionEntry, error) {
	m.upsertLog = append(m.upsertLog, wordID)
	if m.upsertFn != nil {
		return m.upsertFn(userID, wordID, foundAt)
	}
	return &models.UserCollectionEntry{
		ID:           "entry-1",
		UserID:       userID,
		WordID:       wordID,
		FoundCount:   1,
		FirstFoundAt: foundAt,
		UpdatedAt:    foundAt,
	}, nil
}

func (m *mockCollectionRepo) ListEntriesByUserID(userID string) ([]models.CollectionItem, error) {
	if m.listFn != nil {
		return m.listFn(userID)
	}
	return nil, nil
}

type mockStatsRepo struct {
	upsertFn   func(userID string, delta models.SpinDelta) (*models.UserStatistics, error)
	getFn      func(userID string) (*models.UserStatistics, error)
	lastDelta  *models.SpinDelta
	upsertCall int
}

func (m *mockStatsRepo) UpsertSpin(tx *sql.Tx, userID string, delta models.SpinDelta) (*models.UserStatistics, error) {
	m.upsertCall++
	m.lastDelta = &delta
	if m.upsertFn != nil {
		return m.upsertFn(userID, delta)
	}
	return &models.UserStatistics{UserID: userID}, nil
}

func (m *mockStatsRepo) GetStatsByUserID(userID string) (*models.UserStatistics, error) {
	if m.getFn != nil {
		return m.getFn(userID)
	}
	return nil, nil
}
