package services

import (
	"fmt"

	"github.com/desirelabo/unc9/internal/database"
	"github.com/desirelabo/unc9/internal/models"
)

// ProfileService はプロフィール読み取りのビジネスロジックを定義するインターフェースです。
type ProfileService interface {
	GetProfile(userID string) (*models.ProfileResponse, error)
}

// profileServiceImpl はProfileServiceインターフェースの実装です。
type profileServiceImpl struct {
	wordRepo       database.WordRepository
	collectionRepo database.CollectionRepository
	statsRepo      database.StatsRepository
}

// NewProfileService はProfileServiceの新しいインスタンスを作成します。
func NewProfileService(
	wordRepo database.WordRepository,
	collectionRepo database.CollectionRepository,
	statsRepo database.StatsRepository,
) ProfileService {
	return &profileServiceImpl{
		wordRepo:       wordRepo,
		collectionRepo: collectionRepo,
		statsRepo:      statsRepo,
	}
}

// GetProfile はユーザーの統計・コレクション一覧・コンプリート率のスナップショットを組み立てます。
// SSR/SRの内訳は取得した一覧そのものから数えるため、一覧と内訳の間に読み取りのズレは生じません。
func (s *profileServiceImpl) GetProfile(userID string) (*models.ProfileResponse, error) {
	stats, err := s.statsRepo.GetStatsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザー統計の取得に失敗しました: %w", err)
	}

	items, err := s.collectionRepo.ListEntriesByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("コレクション一覧の取得に失敗しました: %w", err)
	}
	if items == nil {
		items = []models.CollectionItem{} // JSONでnullではなく[]を返す
	}

	totalWords, err := s.wordRepo.CountWords()
	if err != nil {
		return nil, fmt.Errorf("カタログ総数の取得に失敗しました: %w", err)
	}

	ssrCount := 0
	srCount := 0
	for _, item := range items {
		switch item.Rarity {
		case models.RaritySSR:
			ssrCount++
		case models.RaritySR:
			srCount++
		}
	}

	// コンプリート率は整数の切り捨て。カタログが空の場合は0（ゼロ除算を避ける）。
	percent := 0
	if totalWords > 0 {
		percent = len(items) * 100 / totalWords
	}

	resp := &models.ProfileResponse{
		Collections: models.CollectionsPayload{
			Total: len(items),
			SSR:   ssrCount,
			SR:    srCount,
			Items: items,
		},
		Completion: models.CompletionPayload{
			Percent:   percent,
			Collected: len(items),
			Total:     totalWords,
		},
	}

	// 統計レコードが未作成のユーザーには全フィールド0（last_spin_atはnull）を返す
	if stats != nil {
		resp.Stats = models.StatsPayload{
			TotalSpins:   stats.TotalSpins,
			TotalPoints:  stats.TotalPoints,
			DivineCount:  stats.DivineCount,
			RealityCount: stats.RealityCount,
			HighestScore: stats.HighestScore,
			LastSpinAt:   stats.LastSpinAt,
		}
	}

	return resp, nil
}
