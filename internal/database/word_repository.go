package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desirelabo/unc9/internal/models"
)

// WordRepository は神言カタログのデータベース操作を定義するインターフェースです。
type WordRepository interface {
	// GetWordByText は単語テキストの完全一致でカタログを検索します。
	// 見つからない場合は (nil, nil) を返します。
	GetWordByText(tx *sql.Tx, word string) (*models.DivineWord, error)

	// TouchLastFound は指定した神言のlast_found_atを更新します。
	TouchLastFound(tx *sql.Tx, wordID string, foundAt time.Time) error

	// CountWords はカタログの総単語数を返します。
	CountWords() (int, error)
}

// wordRepositoryImpl はWordRepositoryインターフェースの実装です。
type wordRepositoryImpl struct {
	db *sql.DB
}

// NewWordRepository はWordRepositoryの新しいインスタンスを作成します。
func NewWordRepository(db *sql.DB) WordRepository {
	return &wordRepositoryImpl{db: db}
}

// GetWordByText は単語テキストの完全一致でカタログを検索します。
func (r *wordRepositoryImpl) GetWordByText(tx *sql.Tx, word string) (*models.DivineWord, error) {
	query := `SELECT id, word, rarity, last_found_at FROM divine_words WHERE word = $1`

	// トランザクションの有無を確認して適切にクエリを実行
	var row *sql.Row
	if tx != nil {
		row = tx.QueryRow(query, word)
	} else {
		row = r.db.QueryRow(query, word)
	}

	dw := &models.DivineWord{}
	var lastFoundAt sql.NullTime
	err := row.Scan(&dw.ID, &dw.Word, &dw.Rarity, &lastFoundAt)
	if err == sql.ErrNoRows {
		return nil, nil // カタログに存在しない場合はnilを返す
	}
	if err != nil {
		return nil, fmt.Errorf("神言の検索に失敗しました: %w", err)
	}
	if lastFoundAt.Valid {
		dw.LastFoundAt = &lastFoundAt.Time
	}
	return dw, nil
}

// TouchLastFound は指定した神言のlast_found_atを更新します。
func (r *wordRepositoryImpl) TouchLastFound(tx *sql.Tx, wordID string, foundAt time.Time) error {
	query := `UPDATE divine_words SET last_found_at = $1 WHERE id = $2`

	var err error
	if tx != nil {
		_, err = tx.Exec(query, foundAt, wordID)
	} else {
		_, err = r.db.Exec(query, foundAt, wordID)
	}
	if err != nil {
		return fmt.Errorf("神言のlast_found_at更新に失敗しました: %w", err)
	}
	return nil
}

// CountWords はカタログの総単語数を返します。
func (r *wordRepositoryImpl) CountWords() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM divine_words`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("カタログ総数の取得に失敗しました: %w", err)
	}
	return count, nil
}
