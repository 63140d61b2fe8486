package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "key")
	if err := os.WriteFile(keyFile, []byte("  from-file\n"), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}
	emptyFile := filepath.Join(dir, "empty")
	if err := os.WriteFile(emptyFile, nil, 0o600); err != nil {
		t.Fatalf("write empty file: %v", err)
	}

	t.Setenv("SKILLGAP_TEST_KEY", " from-env ")

	tests := []struct {
		name    string
		src     Source
		expect  string
		errPart string
	}{
		{name: "file wins", src: Source{File: keyFile, Env: "SKILLGAP_TEST_KEY", Value: "inline"}, expect: "from-file"},
		{name: "env before value", src: Source{Env: "SKILLGAP_TEST_KEY", Value: "inline"}, expect: "from-env"},
		{name: "value", src: Source{Env: "SKILLGAP_UNSET_KEY", Value: " inline "}, expect: "inline"},
		{name: "empty file", src: Source{Name: "api key", File: emptyFile}, errPart: "api key file"},
		{name: "missing file", src: Source{File: filepath.Join(dir, "absent")}, errPart: "reading secret"},
		{name: "nothing", src: Source{Name: "gemini api key", Env: "SKILLGAP_UNSET_KEY"}, errPart: "checked SKILLGAP_UNSET_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if tt.errPart != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errPart) {
					t.Fatalf("expected error containing %q, got %v", tt.errPart, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
