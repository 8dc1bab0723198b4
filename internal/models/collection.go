package models

import "time"

// UserCollectionEntry はuser_collectionsテーブルのレコードに対応する構造体です。
// (user_id, word_id) の組み合わせごとに最大1件しか存在しません。
type UserCollectionEntry struct {
	ID           string    `json:"id"`      // UUID
	UserID       string    `json:"user_id"` // UUID
	WordID       string    `json:"word_id"` // UUID
	FoundCount   int       `json:"found_count"`
	FirstFoundAt time.Time `json:"first_found_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CollectionItem はコレクション一覧のAPIレスポンス用の構造体です。
// divine_wordsとのJOIN結果を明示的な射影として保持し、
// APIの形がストレージのクエリ形状に依存しないようにします。
type CollectionItem struct {
	ID           string    `json:"id"`
	WordID       string    `json:"word_id"`
	Word         string    `json:"word"`
	Rarity       string    `json:"rarity"`
	FoundCount   int       `json:"found_count"`
	FirstFoundAt time.Time `json:"first_found_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SpinResultRequest は結果記録リクエスト用の構造体です。
type SpinResultRequest struct {
	Type  string `json:"type"`
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// TrackResultResponse は結果記録レスポンス用の構造体です。
type TrackResultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
