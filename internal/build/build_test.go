package build

import (
	"testing"
	"time"
)

func TestString(t *testing.T) {
	tests := []struct {
		name  string
		build Build
		want  string
	}{
		{"version only", Build{Version: "v1.2.0"}, "v1.2.0"},
		{"short commit", Build{Version: "dev", Commit: "abc123"}, "dev (abc123)"},
		{"long commit", Build{Version: "dev", Commit: "0123456789abcdef"}, "dev (0123456789ab)"},
		{"modified", Build{Version: "dev", Commit: "abc123", Modified: true, Date: time.Unix(0, 0)}, "dev (abc123-dirty)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.build.String(); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCurrent(t *testing.T) {
	if Current.Version == "" {
		t.Fatal("empty version")
	}
}
