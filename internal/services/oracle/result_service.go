package services

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/desirelabo/unc9/internal/database"
	"github.com/desirelabo/unc9/internal/metrics"
	"github.com/desirelabo/unc9/internal/models"
)

// ResultService はスピン結果記録のビジネスロジックを定義するインターフェースです。
type ResultService interface {
	RecordSpin(userID string, result models.SpinResultRequest) error
}

// resultServiceImpl はResultServiceインターフェースの実装です。
type resultServiceImpl struct {
	db             *sql.DB
	wordRepo       database.WordRepository
	collectionRepo database.CollectionRepository
	statsRepo      database.StatsRepository
	collector      metrics.SpinRecorder
}

// NewResultService はResultServiceの新しいインスタンスを作成します。
func NewResultService(
	db *sql.DB,
	wordRepo database.WordRepository,
	collectionRepo database.CollectionRepository,
	statsRepo database.StatsRepository,
	collector metrics.SpinRecorder,
) ResultService {
	return &resultServiceImpl{
		db:             db,
		wordRepo:       wordRepo,
		collectionRepo: collectionRepo,
		statsRepo:      statsRepo,
		collector:      collector,
	}
}

// RecordSpin は1回のスピン結果をユーザーのコレクションと統計へ記録します。
// カタログのlast_found_at更新・台帳UPSERT・統計UPSERTは1つのトランザクションで
// 実行されるため、途中で失敗した場合に書き込みが部分的に残ることはありません。
//
// タイプがVOIDの場合、単語がカタログに存在しなくても統計のみ更新して成功します。
// VOID以外でカタログに存在しない単語はErrDivineWordNotFoundを返します。
func (s *resultServiceImpl) RecordSpin(userID string, result models.SpinResultRequest) (err error) {
	if !models.IsValidResultType(result.Type) {
		return models.ErrInvalidResultType
	}

	// カタログ検索は読み取り専用なのでトランザクション外で行います
	word, err := s.wordRepo.GetWordByText(nil, result.Word)
	if err != nil {
		return fmt.Errorf("神言カタログの検索に失敗しました: %w", err)
	}
	if word == nil && result.Type != models.ResultTypeVoid {
		return models.ErrDivineWordNotFound
	}

	now := time.Now()

	// トランザクションの有無を確認して適切に実行（テスト時はdbなしでモックリポジトリを使用）
	var tx *sql.Tx
	if s.db != nil {
		tx, err = s.db.Begin()
		if err != nil {
			return fmt.Errorf("トランザクションの開始に失敗しました: %w", err)
		}
		defer func() {
			if r := recover(); r != nil { // パニック発生時にリカバリー
				tx.Rollback()
				panic(r)
			} else if err != nil { // 関数内でエラーが発生した場合のみロールバック
				tx.Rollback()
			}
		}()
	}

	firstFind := false
	if word != nil {
		// コレクション台帳を更新（初回はfound_count=1で作成、2回目以降は+1）
		entry, upsertErr := s.collectionRepo.UpsertEntry(tx, userID, word.ID, now)
		if upsertErr != nil {
			err = fmt.Errorf("コレクション台帳の更新に失敗しました: %w", upsertErr)
			return err
		}
		firstFind = entry.FoundCount == 1

		// カタログ側のlast_found_atも同じトランザクション内で更新
		if touchErr := s.wordRepo.TouchLastFound(tx, word.ID, now); touchErr != nil {
			err = fmt.Errorf("神言の発見時刻更新に失敗しました: %w", touchErr)
			return err
		}
	}

	delta := models.SpinDelta{
		Points: models.PointsForResultType(result.Type),
		Score:  result.Score,
		SpunAt: now,
	}
	if result.Type == models.ResultTypeDivine {
		delta.DivineIncrement = 1
	}
	if result.Type == models.ResultTypeReality {
		delta.RealityIncrement = 1
	}

	if _, upsertErr := s.statsRepo.UpsertSpin(tx, userID, delta); upsertErr != nil {
		err = fmt.Errorf("ユーザー統計の更新に失敗しました: %w", upsertErr)
		return err
	}

	if tx != nil {
		if err = tx.Commit(); err != nil {
			return fmt.Errorf("トランザクションのコミットに失敗しました: %w", err)
		}
	}

	if s.collector != nil {
		s.collector.RecordSpinResult(result.Type, delta.Points)
		if firstFind {
			s.collector.RecordFirstFind()
		}
	}

	log.Printf("ユーザー %s のスピン結果を記録しました: type=%s word=%s score=%d", userID, result.Type, result.Word, result.Score)
	return nil
}
