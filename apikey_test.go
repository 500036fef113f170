package firecrawl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadAPIKeyFromEnv(t *testing.T) {
	t.Setenv(APIKeyEnv, " fc-from-env ")

	key, err := LoadAPIKey("")
	if err != nil {
		t.Fatalf("LoadAPIKey returned error: %v", err)
	}
	if key != "fc-from-env" {
		t.Fatalf("expected trimmed env key, got %q", key)
	}
}

func TestLoadAPIKeyFromExplicitFile(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	path := filepath.Join(t.TempDir(), "key.txt")
	if err := os.WriteFile(path, []byte("fc-from-file\n"), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}

	key, err := LoadAPIKey(path)
	if err != nil {
		t.Fatalf("LoadAPIKey returned error: %v", err)
	}
	if key != "fc-from-file" {
		t.Fatalf("expected file key, got %q", key)
	}
}

func TestLoadAPIKeyEnvWinsOverFile(t *testing.T) {
	t.Setenv(APIKeyEnv, "fc-env-wins")

	path := filepath.Join(t.TempDir(), "key.txt")
	if err := os.WriteFile(path, []byte("fc-from-file\n"), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}

	key, err := LoadAPIKey(path)
	if err != nil {
		t.Fatalf("LoadAPIKey returned error: %v", err)
	}
	if key != "fc-env-wins" {
		t.Fatalf("expected env key to win, got %q", key)
	}
}

func TestLoadAPIKeyFromSecretsDir(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".secrets")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "firecrawl.key"), []byte("fc-wellknown\n"), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}

	key, err := LoadAPIKey("")
	if err != nil {
		t.Fatalf("LoadAPIKey returned error: %v", err)
	}
	if key != "fc-wellknown" {
		t.Fatalf("expected well-known key, got %q", key)
	}
}

func TestLoadAPIKeyFromSecretsFilePrefixLine(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	content := "# misc secrets\nother-token-abc\nfc-picked-line\n"
	if err := os.WriteFile(filepath.Join(home, ".secrets"), []byte(content), 0o600); err != nil {
		t.Fatalf("write secrets file: %v", err)
	}

	key, err := LoadAPIKey("")
	if err != nil {
		t.Fatalf("LoadAPIKey returned error: %v", err)
	}
	if key != "fc-picked-line" {
		t.Fatalf("expected the fc- prefixed line, got %q", key)
	}
}

func TestLoadAPIKeyNotFound(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	t.Setenv("HOME", t.TempDir())

	_, err := LoadAPIKey("")
	if err == nil {
		t.Fatalf("expected an error when no key source exists")
	}
	if !strings.Contains(err.Error(), APIKeyEnv) {
		t.Fatalf("error should name the environment variable, got %q", err)
	}
}
