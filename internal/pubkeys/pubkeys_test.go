package pubkeys

import (
	"os"
	"path/filepath"
	"testing"
)

func writeKey(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write key file: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeKey(t, dir, "b.pub", "ssh-ed25519 BBB bob@host\n")
	writeKey(t, dir, "a.pub", "ssh-ed25519 AAA alice@host\n")

	keys, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
	// os.ReadDir sorts by filename
	if keys[0] != "ssh-ed25519 AAA alice@host\n" || keys[1] != "ssh-ed25519 BBB bob@host\n" {
		t.Fatalf("unexpected keys: %q", keys)
	}
}

func TestLoad_SkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	writeKey(t, dir, "a.pub", "key-a")
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	keys, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(keys) != 1 || keys[0] != "key-a" {
		t.Fatalf("unexpected keys: %q", keys)
	}
}

func TestLoad_MissingDir(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
