package handlers

import (
	"log"
	"net/http"
)

// PublicHandler は認証不要の公開エンドポイントを処理します。
// GET /api/public
func PublicHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Request to public endpoint: /api/public")
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "unc9-oracle-backend",
	})
}
