package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/desirelabo/unc9/internal/models"
)

// StatsRepository はユーザー統計のデータベース操作を定義するインターフェースです。
type StatsRepository interface {
	// UpsertSpin は1回のスピンの増分を統計レコードへ反映します。
	// レコードが存在しない場合はそのスピンの値を初期値として作成します。
	UpsertSpin(tx *sql.Tx, userID string, delta models.SpinDelta) (*models.UserStatistics, error)

	// GetStatsByUserID はユーザーの統計レコードを取得します。
	// 存在しない場合は (nil, nil) を返します。
	GetStatsByUserID(userID string) (*models.UserStatistics, error)
}

// statsRepositoryImpl はStatsRepositoryインターフェースの実装です。
type statsRepositoryImpl struct {
	db *sql.DB
}

// NewStatsRepository はStatsRepositoryの新しいインスタンスを作成します。
func NewStatsRepository(db *sql.DB) StatsRepository {
	return &statsRepositoryImpl{db: db}
}

// UpsertSpin は1回のスピンの増分を統計レコードへ反映します。
// 加算・最大値の計算はすべてSQL側（total_spins + 1、GREATEST）で行うため、
// 同一ユーザーの同時スピンでも更新が失われることはありません。
func (r *statsRepositoryImpl) UpsertSpin(tx *sql.Tx, userID string, delta models.SpinDelta) (*models.UserStatistics, error) {
	query := `
		INSERT INTO user_stats
			(id, user_id, total_spins, total_points, divine_count, reality_count, highest_score, last_spin_at, created_at, updated_at)
		VALUES ($1, $2, 1, $3, $4, $5, $6, $7, $7, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			total_spins   = user_stats.total_spins + 1,
			total_points  = user_stats.total_points + EXCLUDED.total_points,
			divine_count  = user_stats.divine_count + EXCLUDED.divine_count,
			reality_count = user_stats.reality_count + EXCLUDED.reality_count,
			highest_score = GREATEST(user_stats.highest_score, EXCLUDED.highest_score),
			last_spin_at  = EXCLUDED.last_spin_at,
			updated_at    = EXCLUDED.updated_at
		RETURNING id, user_id, total_spins, total_points, divine_count, reality_count, highest_score, last_spin_at, created_at, updated_at
	`
	newID := uuid.New().String() // 既存レコードがある場合はRETURNINGで既存IDが返る

	var row *sql.Row
	if tx != nil {
		row = tx.QueryRow(query, newID, userID, delta.Points, delta.DivineIncrement, delta.RealityIncrement, delta.Score, delta.SpunAt)
	} else {
		row = r.db.QueryRow(query, newID, userID, delta.Points, delta.DivineIncrement, delta.RealityIncrement, delta.Score, delta.SpunAt)
	}

	return scanUserStatistics(row)
}

// GetStatsByUserID はユーザーの統計レコードを取得します。
func (r *statsRepositoryImpl) GetStatsByUserID(userID string) (*models.UserStatistics, error) {
	query := `
		SELECT id, user_id, total_spins, total_points, divine_count, reality_count, highest_score, last_spin_at, created_at, updated_at
		FROM user_stats
		WHERE user_id = $1
	`

	stats, err := scanUserStatistics(r.db.QueryRow(query, userID))
	if err == sql.ErrNoRows {
		return nil, nil // 統計レコードが未作成の場合はnilを返す
	}
	return stats, err
}

func scanUserStatistics(row *sql.Row) (*models.UserStatistics, error) {
	stats := &models.UserStatistics{}
	var lastSpinAt sql.NullTime
	err := row.Scan(
		&stats.ID,
		&stats.UserID,
		&stats.TotalSpins,
		&stats.TotalPoints,
		&stats.DivineCount,
		&stats.RealityCount,
		&stats.HighestScore,
		&lastSpinAt,
		&stats.CreatedAt,
		&stats.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("ユーザー統計のスキャンに失敗しました: %w", err)
	}
	if lastSpinAt.Valid {
		stats.LastSpinAt = &lastSpinAt.Time
	}
	return stats, nil
}
