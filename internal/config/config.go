// Package config はアプリケーション全体の設定を環境変数から読み込みます。
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config はアプリケーション全体の設定を保持します。
// 起動時に1回読み込み、以降はイミュータブルとして扱います。
type Config struct {
	// Database
	DatabaseURL    string
	MigrateOnStart bool

	// Supabase認証
	// SupabaseJWTSecretが設定されていればJWTをローカル検証し、
	// 未設定の場合はSupabaseProjectRef + SupabaseAnonKeyでAuth APIに問い合わせます。
	SupabaseJWTSecret  string
	SupabaseProjectRef string
	SupabaseAnonKey    string

	// Server
	Port string

	// CORS
	CORSAllowedOrigin string

	// スピンのレート制限（1ユーザーあたり毎分）
	SpinRatePerMin int
}

// Load は環境変数からConfigを読み込みます。
// 必須の環境変数が未設定の場合はエラーを返します。
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("必須の環境変数が設定されていません: DATABASE_URL")
	}

	cfg.SupabaseJWTSecret = os.Getenv("SUPABASE_JWT_SECRET")
	cfg.SupabaseProjectRef = os.Getenv("SUPABASE_PROJECT_REF")
	cfg.SupabaseAnonKey = os.Getenv("SUPABASE_ANON_KEY")

	cfg.Port = getEnvString("PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "*")
	cfg.SpinRatePerMin = getEnvInt("SPIN_RATE_PER_MIN", 120)
	cfg.MigrateOnStart = getEnvBool("MIGRATE_ON_START", true)

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}
