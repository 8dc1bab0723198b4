package models

import "time"

// レアリティ階級
const (
	RaritySSR = "SSR"
	RaritySR  = "SR"
)

// スピン結果のタイプ
const (
	ResultTypeDivine  = "DIVINE"
	ResultTypeReality = "REALITY"
	ResultTypeVoid    = "VOID"
)

// PointsForResultType は結果タイプに対応する獲得ポイントを返します。
// 未知のタイプの場合は0を返します。
func PointsForResultType(resultType string) int {
	switch resultType {
	case ResultTypeDivine:
		return 20
	case ResultTypeReality:
		return 5
	case ResultTypeVoid:
		return 1
	default:
		return 0
	}
}

// IsValidResultType は結果タイプが定義済みのものかどうかを判定します。
func IsValidResultType(resultType string) bool {
	switch resultType {
	case ResultTypeDivine, ResultTypeReality, ResultTypeVoid:
		return true
	}
	return false
}

// DivineWord はdivine_wordsテーブルのレコードに対応する構造体です。
// last_found_at以外は不変のカタログデータです。
type DivineWord struct {
	ID          string     `json:"id"`          // UUID
	Word        string     `json:"word"`        // 単語テキスト（一意）
	Rarity      string     `json:"rarity"`      // SSR または SR
	LastFoundAt *time.Time `json:"last_found_at"`
}
