package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"pharmadesk/internal/model"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(ttl time.Duration) (*SessionStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)}
	s := NewSessionStore(ttl)
	s.now = clock.Now
	return s, clock
}

// TestCreateAndGet 测试创建与获取会话
func TestCreateAndGet(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	sess := s.Create("admin")
	if sess.ID == "" || sess.Username != "admin" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	got, err := s.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Table != nil {
		t.Fatalf("new session should have no table")
	}
}

// TestSessionExpires 测试会话过期
func TestSessionExpires(t *testing.T) {
	s, clock := newTestStore(time.Hour)
	sess := s.Create("admin")

	clock.Advance(time.Hour + time.Second)

	if _, err := s.Get(sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err=%v, want ErrSessionNotFound", err)
	}
	if s.Count() != 0 {
		t.Fatalf("expired session not removed")
	}
	if err := s.SetTable(sess.ID, &model.Table{}); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("SetTable err=%v, want ErrSessionNotFound", err)
	}
}

// TestCreatePurgesExpired 测试创建时清理过期会话
func TestCreatePurgesExpired(t *testing.T) {
	s, clock := newTestStore(time.Minute)
	s.Create("a")
	s.Create("b")

	clock.Advance(2 * time.Minute)
	s.Create("c")

	if s.Count() != 1 {
		t.Fatalf("Count=%d, want 1", s.Count())
	}
}

// TestTablesAreIsolated 测试会话之间的表互不影响
func TestTablesAreIsolated(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	a := s.Create("admin")
	b := s.Create("pharma")

	if err := s.SetTable(a.ID, &model.Table{FileName: "a.xlsx"}); err != nil {
		t.Fatalf("SetTable failed: %v", err)
	}

	got, _ := s.Get(b.ID)
	if got.Table != nil {
		t.Fatalf("session b sees session a's table")
	}

	got, _ = s.Get(a.ID)
	if got.Table == nil || got.Table.FileName != "a.xlsx" {
		t.Fatalf("session a table=%+v", got.Table)
	}

	if err := s.SetTable(a.ID, nil); err != nil {
		t.Fatalf("SetTable(nil) failed: %v", err)
	}
	got, _ = s.Get(a.ID)
	if got.Table != nil {
		t.Fatalf("table not cleared")
	}
}

// TestDelete 测试登出
func TestDelete(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	sess := s.Create("admin")
	s.Delete(sess.ID)

	if _, err := s.Get(sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err=%v, want ErrSessionNotFound", err)
	}
}

// TestConcurrentAccess 测试并发访问
func TestConcurrentAccess(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess := s.Create("user")
			_ = s.SetTable(sess.ID, &model.Table{})
			_, _ = s.Get(sess.ID)
			s.Delete(sess.ID)
		}()
	}
	wg.Wait()

	if s.Count() != 0 {
		t.Fatalf("Count=%d, want 0", s.Count())
	}
}
