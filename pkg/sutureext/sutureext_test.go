package sutureext

import (
	"context"
	"errors"
	"testing"

	"github.com/thejerf/suture/v4"
)

func TestSanitizeError(t *testing.T) {
	live := context.Background()
	done, cancel := context.WithCancel(context.Background())
	cancel()

	boom := errors.New("boom")
	tests := []struct {
		name      string
		ctx       context.Context
		err       error
		isContext bool
		is        error
	}{
		{"nil", live, nil, false, nil},
		{"plain", live, boom, false, boom},
		{"stray cancel", live, context.Canceled, false, nil},
		{"stray deadline keeps do not restart", live, errors.Join(context.DeadlineExceeded, suture.ErrDoNotRestart), false, suture.ErrDoNotRestart},
		{"done context", done, boom, true, context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SanitizeError(tt.ctx, tt.err)
			if tt.err == nil {
				if err != nil {
					t.Fatalf("got %v", err)
				}
				return
			}
			gotContext := errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
			if gotContext != tt.isContext {
				t.Fatalf("context error %v: %v", gotContext, err)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Fatalf("%v is not %v", err, tt.is)
			}
		})
	}
}

func TestAddSanitizesStrayCancel(t *testing.T) {
	svc := sanitizeService{Service: NewServiceFunc("stray", func(ctx context.Context) error {
		return context.Canceled
	})}
	if svc.String() != "stray" {
		t.Fatalf("name %q", svc.String())
	}

	err := svc.Serve(context.Background())
	if err == nil || errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}
