package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/desirelabo/unc9/internal/api/handlers"
	"github.com/desirelabo/unc9/internal/api/middleware"
	"github.com/desirelabo/unc9/internal/config"
	"github.com/desirelabo/unc9/internal/database"
	"github.com/desirelabo/unc9/internal/metrics"
	services "github.com/desirelabo/unc9/internal/services/oracle"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("warning: Error loading .env file (this is fine in production): %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// スキーマとシードデータのマイグレーション
	if cfg.MigrateOnStart {
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("マイグレーションに失敗しました: %v", err)
		}
		log.Println("マイグレーションを適用しました。")
	}

	dbService, err := database.NewDatabaseService(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("データベース接続に失敗しました: %v", err)
	}
	defer dbService.Close()

	// メトリクス
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// リポジトリとサービスの組み立て
	wordRepo := database.NewWordRepository(dbService.DB)
	collectionRepo := database.NewCollectionRepository(dbService.DB)
	statsRepo := database.NewStatsRepository(dbService.DB)

	resultService := services.NewResultService(dbService.DB, wordRepo, collectionRepo, statsRepo, collector)
	profileService := services.NewProfileService(wordRepo, collectionRepo, statsRepo)

	resultHandler := handlers.NewResultHandler(resultService)
	profileHandler := handlers.NewProfileHandler(profileService)

	spinLimiter := middleware.NewSpinRateLimiter(cfg.SpinRatePerMin)
	defer spinLimiter.Stop()

	r := mux.NewRouter()
	r.Use(collector.HTTPMiddleware())

	// 認証不要な公開エンドポイント
	r.HandleFunc("/api/public", handlers.PublicHandler).Methods("GET")
	r.Handle("/metrics", metrics.Handler(registry)).Methods("GET")

	// 認証が必要なルートグループを作成
	protected := r.PathPrefix("/").Subrouter()
	protected.Use(middleware.NewAuthMiddleware(cfg))
	protected.Handle("/track-result", spinLimiter.Middleware()(http.HandlerFunc(resultHandler.TrackResult))).Methods("POST")
	protected.HandleFunc("/profile", profileHandler.GetProfile).Methods("GET")

	// CORSはルーター全体の外側に適用（プリフライトはここで200を返す）
	handler := middleware.CORSHandler(cfg.CORSAllowedOrigin)(r)

	log.Printf("Server starting on :%s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
