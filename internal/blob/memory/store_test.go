package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"gsep-planner/internal/blob/core"
)

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()
	if s.Driver() != core.DriverMemory {
		t.Fatalf("driver = %s", s.Driver())
	}

	info, err := s.Put(ctx, "plans/a.json", bytes.NewReader([]byte(`[]`)), core.PutOptions{ContentType: "application/json"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 2 {
		t.Errorf("size = %d, want 2", info.Size)
	}
	if _, err := s.Put(ctx, "plans/a.json", bytes.NewReader(nil), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Errorf("duplicate put err = %v, want ErrExists", err)
	}
	_, _ = s.Put(ctx, "reports/b.csv", bytes.NewReader([]byte("x")), core.PutOptions{})

	_, rc, err := s.Get(ctx, "plans/a.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "[]" {
		t.Errorf("body = %q", body)
	}

	list, err := s.List(ctx, "plans/")
	if err != nil || len(list) != 1 || list[0].Key != "plans/a.json" {
		t.Errorf("list = %v, %v", list, err)
	}

	if ok, _ := s.Delete(ctx, "plans/a.json"); !ok {
		t.Error("delete reported missing")
	}
	if _, err := s.Head(ctx, "plans/a.json"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("head after delete err = %v, want ErrNotFound", err)
	}
	if _, err := s.PresignURL(ctx, "reports/b.csv", core.SignedURLOptions{}); !errors.Is(err, core.ErrUnsupported) {
		t.Errorf("presign err = %v", err)
	}
}
