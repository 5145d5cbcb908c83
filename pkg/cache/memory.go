package cache

import (
	"context"
	"sync"
	"time"
)

// Memory 单进程台账，未配置 Redis 时使用
type Memory struct {
	mu    sync.Mutex
	items map[string]time.Time
	now   func() time.Time
}

// NewMemory 创建内存台账
func NewMemory() *Memory {
	return &Memory{items: make(map[string]time.Time), now: time.Now}
}

// Record 登记令牌
func (m *Memory) Record(_ context.Context, id string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.evictLocked()
	m.items[id] = m.now().Add(ttl)
	return nil
}

// Consume 未过期且首次使用返回 true
func (m *Memory) Consume(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.items[id]
	if !ok {
		return false, nil
	}
	delete(m.items, id)
	return m.now().Before(exp), nil
}

func (m *Memory) evictLocked() {
	now := m.now()
	for id, exp := range m.items {
		if !now.Before(exp) {
			delete(m.items, id)
		}
	}
}
