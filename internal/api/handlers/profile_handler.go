package handlers

import (
	"log"
	"net/http"

	"github.com/desirelabo/unc9/internal/api/middleware"
	services "github.com/desirelabo/unc9/internal/services/oracle"
)

// ProfileHandler はプロフィール取得APIのエンドポイントを処理します。
type ProfileHandler struct {
	profileService services.ProfileService
}

// NewProfileHandler はProfileHandlerの新しいインスタンスを作成します。
func NewProfileHandler(s services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: s}
}

// GetProfile はユーザーの統計・コレクション・コンプリート率を返すハンドラーです。
// GET /profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "許可されていないメソッド")
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		log.Println("エラー: プロフィールハンドラで認証済みユーザーIDがコンテキストに見つかりませんでした。")
		writeJSONError(w, http.StatusUnauthorized, "未認証: ユーザーIDが見つかりません")
		return
	}

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		log.Printf("ユーザー %s のプロフィール取得に失敗しました: %v", userID, err)
		writeJSONError(w, http.StatusInternalServerError, "プロフィールの取得に失敗しました")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
