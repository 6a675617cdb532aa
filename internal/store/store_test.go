package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func open(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "x-scroller.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMissing(t *testing.T) {
	s := open(t)
	_, ok, err := s.Get(context.Background(), "firefox")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("found fractions that were never saved")
	}
}

func TestSaveMergesFractions(t *testing.T) {
	ctx := context.Background()
	s := open(t)

	tests := []struct {
		name          string
		save          Fractions
		width, height float64
	}{
		{"width only", Fractions{AppID: "kitty", Width: 0.5}, 0.5, 0},
		{"height keeps width", Fractions{AppID: "kitty", Height: 0.75}, 0.5, 0.75},
		{"both", Fractions{AppID: "kitty", Width: 1, Height: 0.25}, 1, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Save(ctx, tt.save); err != nil {
				t.Fatal(err)
			}
			f, ok, err := s.Get(ctx, "kitty")
			if err != nil || !ok {
				t.Fatalf("get: %v %v", ok, err)
			}
			if f.Width != tt.width || f.Height != tt.height {
				t.Fatalf("got %v x %v, want %v x %v", f.Width, f.Height, tt.width, tt.height)
			}
		})
	}
}

func TestSaveWithoutAppID(t *testing.T) {
	ctx := context.Background()
	s := open(t)
	if err := s.Save(ctx, Fractions{Width: 0.5}); err != nil {
		t.Fatal(err)
	}
	list, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("saved %v", list)
	}
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := open(t)
	now := time.Now()
	if err := s.Save(ctx, Fractions{AppID: "old", Width: 0.5, UpdatedAt: now.Add(-time.Hour)}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, Fractions{AppID: "new", Height: 0.5, UpdatedAt: now}); err != nil {
		t.Fatal(err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].AppID != "new" || list[1].AppID != "old" {
		t.Fatalf("list %+v", list)
	}

	if err := s.Delete(ctx, "new"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, "new"); ok {
		t.Fatal("deleted fractions are still there")
	}
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "x-scroller.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, Fractions{AppID: "mpv", Width: 0.33}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	f, ok, err := s.Get(ctx, "mpv")
	if err != nil || !ok || f.Width != 0.33 {
		t.Fatalf("got %+v %v %v", f, ok, err)
	}
}
