package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), Options{TTL: time.Hour})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	if _, ok, err := s.Get(ctx, "10.1/x"); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}
	if err := s.Put(ctx, "10.1/X", []byte(`{"title":"a"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	b, ok, err := s.Get(ctx, " 10.1/x ")
	if err != nil || !ok || string(b) != `{"title":"a"}` {
		t.Fatalf("Get: %q ok=%v err=%v", b, ok, err)
	}
	if err := s.Put(ctx, "10.1/x", []byte(`{"title":"b"}`)); err != nil {
		t.Fatalf("Put replace: %v", err)
	}
	b, _, _ = s.Get(ctx, "10.1/x")
	if string(b) != `{"title":"b"}` {
		t.Fatalf("replace: %q", b)
	}
	if filepath.Base(s.Path()) != FileName {
		t.Fatalf("path: %s", s.Path())
	}
}

func TestExpiryAndPurge(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	base := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return base }
	if err := s.Put(ctx, "10.1/old", []byte("{}")); err != nil {
		t.Fatal(err)
	}
	s.now = func() time.Time { return base.Add(2 * time.Hour) }
	if err := s.Put(ctx, "10.1/new", []byte("{}")); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, "10.1/old"); ok {
		t.Fatalf("expired entry returned")
	}
	if _, ok, _ := s.Get(ctx, "10.1/new"); !ok {
		t.Fatalf("fresh entry missing")
	}
	n, err := s.Purge(ctx)
	if err != nil || n != 1 {
		t.Fatalf("Purge: n=%d err=%v", n, err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(context.Background(), "10.1/x", []byte("{}")); err != nil {
		t.Fatal(err)
	}
	_ = s.Close()
	s, err = Open(dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, ok, _ := s.Get(context.Background(), "10.1/x"); !ok {
		t.Fatalf("entry lost across reopen")
	}
}
