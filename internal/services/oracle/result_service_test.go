package services

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/desirelabo/unc9/internal/metrics"
	"github.com/desirelabo/unc9/internal/models"
)

func newTestResultService(wordRepo *mockWordRepo, collectionRepo *mockCollectionRepo, statsRepo *mockStatsRepo) ResultService {
	collector := metrics.NewCollector(prometheus.NewRegistry())
	// dbはnil: モックリポジトリはトランザクションを必要としない
	return NewResultService(nil, wordRepo, collectionRepo, statsRepo, collector)
}

// DIVINEの既知単語: 台帳UPSERT・カタログtouch・統計更新がすべて行われることを検証
func TestRecordSpin_DivineKnownWord(t *testing.T) {
	wordRepo := &mockWordRepo{
		getWordFn: func(word string) (*models.DivineWord, error) {
			if word != "うんこ" {
				t.Errorf("looked up word %q, want %q", word, "うんこ")
			}
			return &models.DivineWord{ID: "word-1", Word: "うんこ", Rarity: models.RaritySSR}, nil
		},
	}
	collectionRepo := &mockCollectionRepo{}
	statsRepo := &mockStatsRepo{}
	svc := newTestResultService(wordRepo, collectionRepo, statsRepo)

	err := svc.RecordSpin("user-1", models.SpinResultRequest{Type: models.ResultTypeDivine, Word: "うんこ", Score: 87})
	if err != nil {
		t.Fatalf("RecordSpin returned error: %v", err)
	}

	if len(collectionRepo.upsertLog) != 1 || collectionRepo.upsertLog[0] != "word-1" {
		t.Errorf("collection upsert log = %v, want [word-1]", collectionRepo.upsertLog)
	}
	if len(wordRepo.touchedWords) != 1 || wordRepo.touchedWords[0] != "word-1" {
		t.Errorf("touched words = %v, want [word-1]", wordRepo.touchedWords)
	}
	if statsRepo.upsertCall != 1 {
		t.Fatalf("stats upsert calls = %d, want 1", statsRepo.upsertCall)
	}

	delta := statsRepo.lastDelta
	if delta.Points != 20 {
		t.Errorf("Points = %d, want 20", delta.Points)
	}
	if delta.Score != 87 {
		t.Errorf("Score = %d, want 87", delta.Score)
	}
	if delta.DivineIncrement != 1 || delta.RealityIncrement != 0 {
		t.Errorf("increments = (%d, %d), want (1, 0)", delta.DivineIncrement, delta.RealityIncrement)
	}
}

// REALITYのポイントと増分を検証
func TestRecordSpin_RealityDelta(t *testing.T) {
	wordRepo := &mockWordRepo{
		getWordFn: func(word string) (*models.DivineWord, error) {
			return &models.DivineWord{ID: "word-2", Word: word, Rarity: models.RaritySR}, nil
		},
	}
	statsRepo := &mockStatsRepo{}
	svc := newTestResultService(wordRepo, &mockCollectionRepo{}, statsRepo)

	if err := svc.RecordSpin("user-1", models.SpinResultRequest{Type: models.ResultTypeReality, Word: "希望", Score: 10}); err != nil {
		t.Fatalf("RecordSpin returned error: %v", err)
	}

	delta := statsRepo.lastDelta
	if delta.Points != 5 {
		t.Errorf("Points = %d, want 5", delta.Points)
	}
	if delta.DivineIncrement != 0 || delta.RealityIncrement != 1 {
		t.Errorf("increments = (%d, %d), want (0, 1)", delta.DivineIncrement, delta.RealityIncrement)
	}
}

// VOIDかつカタログ未登録の単語: 台帳は更新されず統計のみ更新されて成功することを検証
func TestRecordSpin_VoidUnknownWord(t *testing.T) {
	wordRepo := &mockWordRepo{} // すべての検索が(nil, nil)
	collectionRepo := &mockCollectionRepo{}
	statsRepo := &mockStatsRepo{}
	svc := newTestResultService(wordRepo, collectionRepo, statsRepo)

	err := svc.RecordSpin("user-1", models.SpinResultRequest{Type: models.ResultTypeVoid, Word: "存在しない", Score: 3})
	if err != nil {
		t.Fatalf("RecordSpin returned error: %v", err)
	}

	if len(collectionRepo.upsertLog) != 0 {
		t.Errorf("collection upsert log = %v, want empty", collectionRepo.upsertLog)
	}
	if len(wordRepo.touchedWords) != 0 {
		t.Errorf("touched words = %v, want empty", wordRepo.touchedWords)
	}
	if statsRepo.upsertCall != 1 {
		t.Errorf("stats upsert calls = %d, want 1", statsRepo.upsertCall)
	}
	if statsRepo.lastDelta.Points != 1 {
		t.Errorf("Points = %d, want 1", statsRepo.lastDelta.Points)
	}
}

// DIVINEかつカタログ未登録の単語: ErrDivineWordNotFoundを返し統計が更新されないことを検証
func TestRecordSpin_DivineUnknownWord(t *testing.T) {
	wordRepo := &mockWordRepo{}
	statsRepo := &mockStatsRepo{}
	svc := newTestResultService(wordRepo, &mockCollectionRepo{}, statsRepo)

	err := svc.RecordSpin("user-1", models.SpinResultRequest{Type: models.ResultTypeDivine, Word: "存在しない", Score: 50})
	if !errors.Is(err, models.ErrDivineWordNotFound) {
		t.Fatalf("err = %v, want ErrDivineWordNotFound", err)
	}
	if statsRepo.upsertCall != 0 {
		t.Errorf("stats upsert calls = %d, want 0", statsRepo.upsertCall)
	}
}

// 未知の結果タイプ: ErrInvalidResultTypeを返すことを検証
func TestRecordSpin_InvalidType(t *testing.T) {
	statsRepo := &mockStatsRepo{}
	svc := newTestResultService(&mockWordRepo{}, &mockCollectionRepo{}, statsRepo)

	err := svc.RecordSpin("user-1", models.SpinResultRequest{Type: "GOLD", Word: "うんこ", Score: 1})
	if !errors.Is(err, models.ErrInvalidResultType) {
		t.Fatalf("err = %v, want ErrInvalidResultType", err)
	}
	if statsRepo.upsertCall != 0 {
		t.Errorf("stats upsert calls = %d, want 0", statsRepo.upsertCall)
	}
}

// 台帳UPSERTの失敗がエラーとして伝播することを検証
func TestRecordSpin_CollectionUpsertError(t *testing.T) {
	wordRepo := &mockWordRepo{
		getWordFn: func(word string) (*models.DivineWord, error) {
			return &models.DivineWord{ID: "word-1", Word: word, Rarity: models.RaritySSR}, nil
		},
	}
	collectionRepo := &mockCollectionRepo{
		upsertFn: func(userID, wordID string, foundAt time.Time) (*models.UserCollectionEntry, error) {
			return nil, errors.New("db down")
		},
	}
	statsRepo := &mockStatsRepo{}
	svc := newTestResultService(wordRepo, collectionRepo, statsRepo)

	err := svc.RecordSpin("user-1", models.SpinResultRequest{Type: models.ResultTypeDivine, Word: "うんこ", Score: 1})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if statsRepo.upsertCall != 0 {
		t.Errorf("stats upsert calls = %d, want 0", statsRepo.upsertCall)
	}
}

// 2回目の発見ではfound_countが増えfirst_found_atが変わらないことを検証
// （サーバー側UPSERTの契約: モックで2回目のエントリを返す）
func TestRecordSpin_SecondFind(t *testing.T) {
	firstFound := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	wordRepo := &mockWordRepo{
		getWordFn: func(word string) (*models.DivineWord, error) {
			return &models.DivineWord{ID: "word-1", Word: word, Rarity: models.RaritySSR}, nil
		},
	}
	collectionRepo := &mockCollectionRepo{
		upsertFn: func(userID, wordID string, foundAt time.Time) (*models.UserCollectionEntry, error) {
			return &models.UserCollectionEntry{
				ID:           "entry-1",
				UserID:       userID,
				WordID:       wordID,
				FoundCount:   2,
				FirstFoundAt: firstFound,
				UpdatedAt:    foundAt,
			}, nil
		},
	}
	svc := newTestResultService(wordRepo, collectionRepo, &mockStatsRepo{})

	if err := svc.RecordSpin("user-1", models.SpinResultRequest{Type: models.ResultTypeDivine, Word: "うんこ", Score: 5}); err != nil {
		t.Fatalf("RecordSpin returned error: %v", err)
	}
}
