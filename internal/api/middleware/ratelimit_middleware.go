package middleware

import (
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// userLimiter はユーザーごとのレートリミッターと最終アクセス時刻を保持します。
type userLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// SpinRateLimiter はスピン記録エンドポイントのユーザーごとのレート制限を管理します。
type SpinRateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*userLimiter

	stopCh chan struct{}
}

// NewSpinRateLimiter は毎分perMinリクエストまで許可するSpinRateLimiterを作成します。
// バックグラウンドでアイドル状態のエントリをクリーンアップします。
func NewSpinRateLimiter(perMin int) *SpinRateLimiter {
	rl := &SpinRateLimiter{
		limit:    rate.Limit(float64(perMin) / 60.0),
		burst:    perMin,
		limiters: make(map[string]*userLimiter),
		stopCh:   make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop はクリーンアップのバックグラウンドゴルーチンを停止します。
func (rl *SpinRateLimiter) Stop() {
	close(rl.stopCh)
}

// Middleware はレート制限ミドルウェアを返します。
// AuthMiddlewareの後に配置する必要があります（コンテキストのユーザーIDを使用）。
func (rl *SpinRateLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserIDFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "未認証: ユーザーIDが見つかりません")
				return
			}

			if !rl.getOrCreateLimiter(userID).Allow() {
				log.Printf("スピンのレート制限を超過しました: user=%s", userID)
				writeJSONError(w, http.StatusTooManyRequests, "リクエストが多すぎます。しばらく待ってから再試行してください")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getOrCreateLimiter はユーザーのリミッターを取得または作成します。
func (rl *SpinRateLimiter) getOrCreateLimiter(userID string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if ul, exists := rl.limiters[userID]; exists {
		ul.lastAccess = time.Now()
		return ul.limiter
	}

	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.limiters[userID] = &userLimiter{
		limiter:    limiter,
		lastAccess: time.Now(),
	}
	return limiter
}

// LimiterCount は現在管理されているリミッターのエントリ数を返します。テスト用。
func (rl *SpinRateLimiter) LimiterCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// cleanupLoop は10分以上アクセスのないエントリを定期的に削除します。
func (rl *SpinRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-10 * time.Minute)
			rl.mu.Lock()
			for userID, ul := range rl.limiters {
				if ul.lastAccess.Before(cutoff) {
					delete(rl.limiters, userID)
				}
			}
			rl.mu.Unlock()
		}
	}
}
