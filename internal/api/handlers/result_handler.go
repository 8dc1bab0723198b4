package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/desirelabo/unc9/internal/api/middleware"
	"github.com/desirelabo/unc9/internal/models"
	services "github.com/desirelabo/unc9/internal/services/oracle"
)

// ResultHandler はスピン結果記録APIのエンドポイントを処理します。
type ResultHandler struct {
	resultService services.ResultService
}

// NewResultHandler はResultHandlerの新しいインスタンスを作成します。
func NewResultHandler(s services.ResultService) *ResultHandler {
	return &ResultHandler{resultService: s}
}

// TrackResult はスピン結果を記録するハンドラーです。
// POST /track-result
func (h *ResultHandler) TrackResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "許可されていないメソッド")
		return
	}

	// Contextから認証済みユーザーIDを取得します (AuthMiddlewareが設定されている前提)
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		log.Println("エラー: 結果記録ハンドラで認証済みユーザーIDがコンテキストに見つかりませんでした。")
		writeJSONError(w, http.StatusUnauthorized, "未認証: ユーザーIDが見つかりません")
		return
	}

	var req models.SpinResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "無効なリクエストボディです")
		return
	}

	// バリデーション: typeとwordは必須
	if req.Type == "" || req.Word == "" {
		writeJSONError(w, http.StatusBadRequest, "typeとwordは必須です")
		return
	}

	if err := h.resultService.RecordSpin(userID, req); err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidResultType):
			writeJSONError(w, http.StatusBadRequest, "不明な結果タイプです")
		case errors.Is(err, models.ErrDivineWordNotFound):
			writeJSONError(w, http.StatusNotFound, "Divine word not found")
		default:
			log.Printf("スピン結果の記録エラー: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "結果の記録に失敗しました")
		}
		return
	}

	writeJSON(w, http.StatusOK, models.TrackResultResponse{
		Success: true,
		Message: "オラクルの結果を記録しました",
	})
}
