package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/desirelabo/unc9/internal/models"
)

// CollectionRepository はコレクション台帳のデータベース操作を定義するインターフェースです。
type CollectionRepository interface {
	// UpsertEntry は台帳エントリを1回の発見として記録します。
	// エントリが存在しない場合はfound_count=1で作成し、存在する場合は
	// サーバー側でfound_countを+1します。更新後のエントリを返します。
	UpsertEntry(tx *sql.Tx, userID, wordID string, foundAt time.Time) (*models.UserCollectionEntry, error)

	// ListEntriesByUserID はユーザーのコレクション一覧を神言カタログとJOINして取得します。
	// updated_atの新しい順に並びます。
	ListEntriesByUserID(userID string) ([]models.CollectionItem, error)
}

// collectionRepositoryImpl はCollectionRepositoryインターフェースの実装です。
type collectionRepositoryImpl struct {
	db *sql.DB
}

// NewCollectionRepository はCollectionRepositoryの新しいインスタンスを作成します。
func NewCollectionRepository(db *sql.DB) CollectionRepository {
	return &collectionRepositoryImpl{db: db}
}

// UpsertEntry は台帳エントリを1回の発見として記録します。
// 加算はSQL側の found_count + 1 で行うため、同一ユーザーの同時スピンでも
// 更新が失われることはありません。first_found_atは初回挿入時のまま変わりません。
func (r *collectionRepositoryImpl) UpsertEntry(tx *sql.Tx, userID, wordID string, foundAt time.Time) (*models.UserCollectionEntry, error) {
	query := `
		INSERT INTO user_collections (id, user_id, word_id, found_count, first_found_at, updated_at)
		VALUES ($1, $2, $3, 1, $4, $4)
		ON CONFLICT (user_id, word_id) DO UPDATE
		SET found_count = user_collections.found_count + 1,
		    updated_at  = EXCLUDED.updated_at
		RETURNING id, user_id, word_id, found_count, first_found_at, updated_at
	`
	newID := uuid.New().String() // 既存エントリがある場合はRETURNINGで既存IDが返る

	var row *sql.Row
	if tx != nil {
		row = tx.QueryRow(query, newID, userID, wordID, foundAt)
	} else {
		row = r.db.QueryRow(query, newID, userID, wordID, foundAt)
	}

	entry := &models.UserCollectionEntry{}
	err := row.Scan(&entry.ID, &entry.UserID, &entry.WordID, &entry.FoundCount, &entry.FirstFoundAt, &entry.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("コレクション台帳のUPSERTに失敗しました: %w", err)
	}
	return entry, nil
}

// ListEntriesByUserID はユーザーのコレクション一覧を取得します。
func (r *collectionRepositoryImpl) ListEntriesByUserID(userID string) ([]models.CollectionItem, error) {
	query := `
		SELECT uc.id, uc.word_id, dw.word, dw.rarity, uc.found_count, uc.first_found_at, uc.updated_at
		FROM user_collections uc
		JOIN divine_words dw ON dw.id = uc.word_id
		WHERE uc.user_id = $1
		ORDER BY uc.updated_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("コレクション一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var items []models.CollectionItem
	for rows.Next() {
		var item models.CollectionItem
		err := rows.Scan(&item.ID, &item.WordID, &item.Word, &item.Rarity, &item.FoundCount, &item.FirstFoundAt, &item.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("コレクション一覧のスキャンに失敗しました: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("コレクション一覧のイテレーション中にエラーが発生しました: %w", err)
	}

	return items, nil
}
