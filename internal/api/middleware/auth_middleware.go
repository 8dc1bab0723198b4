package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	gotrue "github.com/supabase-community/gotrue-go"

	"github.com/desirelabo/unc9/internal/config"
)

// UserIDKey はコンテキストに認証済みユーザーIDを格納するためのキーです。
type UserIDKey struct{}

// GetUserIDFromContext はコンテキストから認証済みユーザーIDを取得します。
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey{}).(string)
	return userID, ok
}

// writeJSONError はJSON形式のエラーレスポンスを書き込みます。
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// NewAuthMiddleware はSupabaseの資格情報を検証するミドルウェアを返します。
//
// SUPABASE_JWT_SECRETが設定されている場合はJWTをローカルで検証し（HS256）、
// 未設定の場合はSupabase Auth APIへトークンを問い合わせて検証します。
// どちらの構成もない場合はサーバー設定エラー（500）を返します。
// 検証に成功するとユーザーID（subクレーム）をコンテキストに設定します。
func NewAuthMiddleware(cfg *config.Config) func(next http.Handler) http.Handler {
	// リモート検証用のAuth APIクライアントは起動時に1回だけ作成
	var authClient gotrue.Client
	if cfg.SupabaseJWTSecret == "" && cfg.SupabaseProjectRef != "" && cfg.SupabaseAnonKey != "" {
		authClient = gotrue.New(cfg.SupabaseProjectRef, cfg.SupabaseAnonKey)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. AuthorizationヘッダーからBearerトークンを取得
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "Authorization header is required")
				return
			}
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				writeJSONError(w, http.StatusUnauthorized, "Invalid Authorization header format. Must be 'Bearer <token>'")
				return
			}

			// 2. トークンを検証してユーザーIDを取得
			var userID string
			var err error
			switch {
			case cfg.SupabaseJWTSecret != "":
				userID, err = verifyLocalJWT(tokenString, cfg.SupabaseJWTSecret)
			case authClient != nil:
				userID, err = verifyWithAuthAPI(authClient, tokenString)
			default:
				log.Println("エラー: SUPABASE_JWT_SECRETもSupabase Auth APIの設定もありません。")
				writeJSONError(w, http.StatusInternalServerError, "Server configuration error: JWT secret missing")
				return
			}
			if err != nil {
				log.Printf("AuthMiddleware: トークン検証に失敗しました: %v", err)
				writeJSONError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			// 3. ユーザーIDをContextに設定して次のハンドラに渡す
			ctx := context.WithValue(r.Context(), UserIDKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// verifyLocalJWT はSupabaseのJWTをローカルのシークレットで検証し、subクレームを返します。
func verifyLocalJWT(tokenString, jwtSecret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// アルゴリズムがHMACであることを確認
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("JWTのパースに失敗しました: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("無効なトークンです")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("トークンのクレームを取得できませんでした")
	}

	// SupabaseのJWTはユーザーIDを 'sub' (Subject) クレームにUUIDとして格納します
	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("subクレーム（ユーザーID）がありません")
	}
	return userID, nil
}

// verifyWithAuthAPI はSupabase Auth APIへトークンを問い合わせて検証します。
func verifyWithAuthAPI(client gotrue.Client, tokenString string) (string, error) {
	user, err := client.WithToken(tokenString).GetUser()
	if err != nil {
		return "", fmt.Errorf("auth APIでのトークン検証に失敗しました: %w", err)
	}
	return user.ID.String(), nil
}
