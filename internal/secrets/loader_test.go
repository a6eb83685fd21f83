package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	keyFile := filepath.Join(t.TempDir(), "api-key")
	if err := os.WriteFile(keyFile, []byte("  from-file\n"), 0o600); err != nil {
		t.Fatalf("writing key file: %v", err)
	}

	tests := []struct {
		name    string
		src     Source
		expect  string
		wantErr string
	}{
		{
			name:   "inline value",
			src:    Source{Name: "platform api key", Value: " inline "},
			expect: "inline",
		},
		{
			name:   "file wins over inline and is trimmed",
			src:    Source{Name: "platform api key", Value: "inline", File: keyFile},
			expect: "from-file",
		},
		{
			name:    "nothing configured",
			src:     Source{Name: "gemini api key"},
			wantErr: "gemini api key is not configured",
		},
		{
			name:    "missing file",
			src:     Source{Name: "platform api key", File: filepath.Join(t.TempDir(), "absent")},
			wantErr: "reading platform api key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
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
