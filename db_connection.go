package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq" // PostgreSQLドライバー
	"github.com/joho/godotenv"
)

// データベース接続と必要なテーブルの存在を確認する簡易ツールです。
// デプロイ前の疎通確認に使用します。
func main() {
	// .envファイルを読み込む (開発環境の場合)
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: Error loading .env file: %v", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("エラー: DATABASE_URL 環境変数が設定されていません。")
	}

	fmt.Printf("テスト開始: データベース接続を試行中...\nURLの最初の50文字: %s...\n", databaseURL[:min(len(databaseURL), 50)])

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		log.Fatalf("エラー: データベースへの接続オブジェクト作成に失敗しました: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("エラー: データベースのPingに失敗しました。接続情報やネットワークを確認してください: %v", err)
	}

	fmt.Println("成功: データベースに正常に接続し、Pingが成功しました！")

	// アプリケーションが必要とするテーブルの存在を確認する
	for _, table := range []string{"divine_words", "user_collections", "user_stats"} {
		var exists bool
		err := db.QueryRow(
			`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`,
			table,
		).Scan(&exists)
		if err != nil {
			log.Printf("警告: テーブル %s の確認に失敗しました: %v", table, err)
			continue
		}
		if exists {
			fmt.Printf("テーブル %s: 存在します\n", table)
		} else {
			fmt.Printf("テーブル %s: 存在しません（マイグレーション未適用の可能性があります）\n", table)
		}
	}

	// カタログのシードデータ件数を表示する (任意)
	var wordCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM divine_words`).Scan(&wordCount); err != nil {
		log.Printf("警告: 神言カタログ件数の取得に失敗しました: %v", err)
	} else {
		fmt.Printf("神言カタログ: %d 件\n", wordCount)
	}
}
