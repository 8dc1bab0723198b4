package models

import "errors"

// ドメインエラー。ハンドラー層でHTTPステータスコードへ変換されます。
var (
	// ErrDivineWordNotFound はカタログに存在しない単語でVOID以外の結果を
	// 記録しようとした場合に返されます（404）。
	ErrDivineWordNotFound = errors.New("divine word not found")

	// ErrInvalidResultType は未知の結果タイプを受け取った場合に返されます（400）。
	ErrInvalidResultType = errors.New("invalid result type")
)
