package alerting

import (
	"sync"
	"time"
)

// RateLimiter контролирует частоту отправки алертов.
// Хранит время последней отправки по коду ошибки в памяти процесса.
// Экспортёр работает долго, поэтому повторяющаяся на каждом scrape ошибка
// порождает не больше одного алерта за окно.
type RateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	sent   map[string]time.Time
	now    func() time.Time
}

// NewRateLimiter создаёт RateLimiter с минимальным интервалом window
// между алертами одного кода.
func NewRateLimiter(window time.Duration) *RateLimiter {
	return &RateLimiter{
		window: window,
		sent:   make(map[string]time.Time),
		now:    time.Now,
	}
}

// cleanupThreshold — порог количества записей, после которого запускается очистка.
const cleanupThreshold = 100

// Allow сообщает, можно ли отправить алерт с errorCode, и при true
// помечает его отправленным. Проверка и обновление атомарны.
func (r *RateLimiter) Allow(errorCode string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()

	if len(r.sent) > cleanupThreshold {
		r.cleanupExpiredLocked(now)
	}

	if lastSent, ok := r.sent[errorCode]; ok {
		if now.Sub(lastSent) < r.window {
			return false
		}
	}
	r.sent[errorCode] = now
	return true
}

func (r *RateLimiter) cleanupExpiredLocked(now time.Time) {
	for code, lastSent := range r.sent {
		if now.Sub(lastSent) >= r.window {
			delete(r.sent, code)
		}
	}
}

// Reset сбрасывает состояние для errorCode.
func (r *RateLimiter) Reset(errorCode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sent, errorCode)
}

// SetNowFunc устанавливает функцию получения текущего времени (для тестов).
func (r *RateLimiter) SetNowFunc(fn func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = fn
}
