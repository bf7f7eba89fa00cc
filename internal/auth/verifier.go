package auth

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
)

// ErrInvalidCredentials 用户名或密码错误（不区分哪一项）
var ErrInvalidCredentials = errors.New("invalid username or password")

// Verifier 凭据校验能力
type Verifier interface {
	Verify(username, password string) bool
}

// StaticVerifier 基于配置中 用户名 → Argon2id 哈希 的校验器
type StaticVerifier struct {
	users map[string]string

	dummyOnce sync.Once
	dummy     string
}

// NewStaticVerifier 创建校验器；格式错误的哈希会被丢弃并记录告警
func NewStaticVerifier(users map[string]string) *StaticVerifier {
	v := &StaticVerifier{users: make(map[string]string, len(users))}
	for name, hash := range users {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, _, _, err := decodeHash(hash); err != nil {
			slog.Warn("auth: ignoring user with invalid password hash", "username", name, "error", err)
			continue
		}
		v.users[name] = hash
	}
	return v
}

// Count 有效用户数
func (v *StaticVerifier) Count() int {
	return len(v.users)
}

// Verify 校验用户名和密码
// 用户不存在时也做一次哈希计算，避免通过耗时判断用户名是否存在
func (v *StaticVerifier) Verify(username, password string) bool {
	hash, ok := v.users[username]
	if !ok {
		_, _ = VerifyPassword(v.dummyHash(), password)
		return false
	}
	match, err := VerifyPassword(hash, password)
	return err == nil && match
}

func (v *StaticVerifier) dummyHash() string {
	v.dummyOnce.Do(func() {
		v.dummy, _ = HashPassword("pharmadesk-dummy")
	})
	return v.dummy
}
