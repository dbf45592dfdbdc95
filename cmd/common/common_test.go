package common

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level     string
		json      bool
		expectErr bool
		wantDebug bool
	}{
		{"debug", false, false, true},
		{"info", false, false, false},
		{"WARN", true, false, false},
		{"error", true, false, false},
		{"loud", false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := NewLogger(&buf, tt.level, tt.json)
			if tt.expectErr {
				if err == nil {
					t.Errorf("expected error for level %q", tt.level)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			logger.Debug("debug message")
			if got := strings.Contains(buf.String(), "debug message"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}

			logger.Error("boom", "key", "value")
			if tt.json && !strings.Contains(buf.String(), `"msg":"boom"`) {
				t.Errorf("expected JSON output, got %s", buf.String())
			}
			if !tt.json && !strings.Contains(buf.String(), "msg=boom") {
				t.Errorf("expected text output, got %s", buf.String())
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("KARAOKE_TEST_VALUE=from-file\nKARAOKE_TEST_SET=from-file\n"), 0644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}

	t.Setenv("KARAOKE_TEST_SET", "from-env")
	t.Setenv("KARAOKE_TEST_VALUE", "")
	os.Unsetenv("KARAOKE_TEST_VALUE")

	LoadDotEnv(path)

	if got := os.Getenv("KARAOKE_TEST_VALUE"); got != "from-file" {
		t.Errorf("KARAOKE_TEST_VALUE = %q, want from-file", got)
	}
	if got := os.Getenv("KARAOKE_TEST_SET"); got != "from-env" {
		t.Errorf("KARAOKE_TEST_SET = %q, want from-env", got)
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	// Must not panic or exit.
	LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
}

func TestRenderQR(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderQR(&buf, "http://192.168.1.10:5001", false); err != nil {
		t.Fatalf("RenderQR failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\033[40m") || !strings.Contains(out, "\033[47m") {
		t.Errorf("expected ANSI blocks in output")
	}
	if lines := strings.Count(out, "\n"); lines < 21 {
		t.Errorf("expected at least 21 rows, got %d", lines)
	}
}
