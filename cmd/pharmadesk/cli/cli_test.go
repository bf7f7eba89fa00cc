package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"pharmadesk/internal/auth"
	"pharmadesk/internal/config"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand(VersionInfo{Version: "test", Commit: "none"})
	root.AddCommand(NewServeCommand(), NewHashPasswordCommand(), NewConfigCommand())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestHashPasswordFlag(t *testing.T) {
	out, err := execute(t, "", "hash-password", "--password", "s3cret")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	hash := strings.TrimSpace(out)
	ok, err := auth.VerifyPassword(hash, "s3cret")
	if err != nil || !ok {
		t.Fatalf("printed hash %q does not verify: %v", hash, err)
	}
}

func TestHashPasswordStdin(t *testing.T) {
	out, err := execute(t, "from-stdin\n", "hash-password")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if ok, _ := auth.VerifyPassword(strings.TrimSpace(out), "from-stdin"); !ok {
		t.Fatalf("stdin password not hashed")
	}
}

func TestHashPasswordRequiresInput(t *testing.T) {
	if _, err := execute(t, "", "hash-password"); err == nil {
		t.Fatalf("expected error without password")
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)

	if _, err := execute(t, "", "config", "init", "--config", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	cfg, info, err := config.LoadConfigWithInfo(path)
	if err != nil || !info.FileFound {
		t.Fatalf("load written config: found=%v err=%v", info.FileFound, err)
	}
	if cfg.Server.Port != config.DefaultConfig().Server.Port {
		t.Fatalf("port=%d", cfg.Server.Port)
	}

	if _, err := execute(t, "", "config", "init", "--config", path); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if _, err := execute(t, "", "config", "init", "--config", path, "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}
}
