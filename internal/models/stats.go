package models

import "time"

// UserStatistics はuser_statsテーブルのレコードに対応する構造体です。
// ユーザーごとにちょうど1件存在します（初回スピン時に作成）。
type UserStatistics struct {
	ID           string     `json:"id"`      // UUID
	UserID       string     `json:"user_id"` // UUID（一意）
	TotalSpins   int        `json:"total_spins"`
	TotalPoints  int        `json:"total_points"`
	DivineCount  int        `json:"divine_count"`
	RealityCount int        `json:"reality_count"`
	HighestScore int        `json:"highest_score"`
	LastSpinAt   *time.Time `json:"last_spin_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SpinDelta は1回のスピンが統計レコードへ加算する増分です。
type SpinDelta struct {
	Points           int
	Score            int
	DivineIncrement  int
	RealityIncrement int
	SpunAt           time.Time
}

// StatsPayload はプロフィールAPIのstatsセクション用の構造体です。
// 統計レコードが未作成のユーザーには全フィールド0（last_spin_atはnull）を返します。
type StatsPayload struct {
	TotalSpins   int        `json:"total_spins"`
	TotalPoints  int        `json:"total_points"`
	DivineCount  int        `json:"divine_count"`
	RealityCount int        `json:"reality_count"`
	HighestScore int        `json:"highest_score"`
	LastSpinAt   *time.Time `json:"last_spin_at"`
}

// CollectionsPayload はプロフィールAPIのcollectionsセクション用の構造体です。
type CollectionsPayload struct {
	Total int              `json:"total"`
	SSR   int              `json:"ssr"`
	SR    int              `json:"sr"`
	Items []CollectionItem `json:"items"`
}

// CompletionPayload はプロフィールAPIのcompletionセクション用の構造体です。
type CompletionPayload struct {
	Percent   int `json:"percent"`
	Collected int `json:"collected"`
	Total     int `json:"total"`
}

// ProfileResponse はプロフィールAPIのレスポンス全体です。
type ProfileResponse struct {
	Stats       StatsPayload       `json:"stats"`
	Collections CollectionsPayload `json:"collections"`
	Completion  CompletionPayload  `json:"completion"`
}
