package auth

import (
	"errors"
	"strings"
	"testing"
)

var fastParams = HashParams{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

func mustHash(t *testing.T, password string) string {
	t.Helper()

	h, err := HashPasswordWithParams(password, fastParams)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return h
}

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	h := mustHash(t, "s3cret")
	if !strings.HasPrefix(h, "$argon2id$v=19$m=8192,t=1,p=1$") {
		t.Fatalf("unexpected encoding: %s", h)
	}

	ok, err := VerifyPassword(h, "s3cret")
	if err != nil || !ok {
		t.Fatalf("VerifyPassword(correct)=%v,%v", ok, err)
	}
	ok, err = VerifyPassword(h, "S3cret")
	if err != nil || ok {
		t.Fatalf("VerifyPassword(wrong)=%v,%v", ok, err)
	}
}

func TestHashIsSalted(t *testing.T) {
	t.Parallel()

	if mustHash(t, "same") == mustHash(t, "same") {
		t.Fatalf("two hashes of the same password are identical")
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	t.Parallel()

	if _, err := HashPassword("  "); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("err=%v, want ErrEmptyPassword", err)
	}
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	t.Parallel()

	for _, h := range []string{
		"",
		"21232f297a57a5a743894a0e4a801fc3",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=16$m=8192,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=8192,t=1,p=1$!!$a2V5",
	} {
		if _, err := VerifyPassword(h, "pw"); !errors.Is(err, ErrInvalidHash) {
			t.Fatalf("VerifyPassword(%q) err=%v, want ErrInvalidHash", h, err)
		}
	}
}

func TestStaticVerifier(t *testing.T) {
	t.Parallel()

	v := NewStaticVerifier(map[string]string{
		"admin":  mustHash(t, "admin-pw"),
		"pharma": mustHash(t, "pharma-pw"),
		"legacy": "6cb75f652a9b52798eb6cf2201057c73",
	})

	if v.Count() != 2 {
		t.Fatalf("Count=%d, want 2 (md5 entry dropped)", v.Count())
	}
	if !v.Verify("admin", "admin-pw") {
		t.Fatalf("admin rejected")
	}
	if v.Verify("admin", "pharma-pw") {
		t.Fatalf("admin accepted with another user's password")
	}
	if v.Verify("nobody", "admin-pw") {
		t.Fatalf("unknown user accepted")
	}
	if v.Verify("legacy", "anything") {
		t.Fatalf("user with invalid hash accepted")
	}
}
