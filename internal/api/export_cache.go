package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"pharmadesk/internal/model"
)

type exportEntry struct {
	data      []byte
	expiresAt time.Time
}

// exportCache 按导出内容缓存生成的 xlsx 字节
type exportCache struct {
	mu    sync.Mutex
	items map[string]exportEntry
	ttl   time.Duration
	now   func() time.Time
}

func newExportCache(ttl time.Duration) *exportCache {
	return &exportCache{
		items: make(map[string]exportEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *exportCache) put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpiredLocked(now)
	s.items[key] = exportEntry{data: data, expiresAt: now.Add(s.ttl)}
}

func (s *exportCache) get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(s.now())

	v, ok := s.items[key]
	if !ok {
		return nil, false
	}
	return v.data, true
}

func (s *exportCache) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *exportCache) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}

// exportKey 导出内容的摘要：表头、列映射和每行的单元格与派生值
func exportKey(headers []string, mapping model.ColumnMapping, records []model.InventoryRecord) (string, error) {
	h := sha256.New()
	enc := json.NewEncoder(h)
	if err := enc.Encode(headers); err != nil {
		return "", err
	}
	if err := enc.Encode(mapping); err != nil {
		return "", err
	}
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
