package timelog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAppendAndEntriesRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run", "timings.jsonl")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer l.Close()

	if err := l.Append(Entry{Route: "/slide-1", Index: 0, Seconds: 12.5}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := l.Append(Entry{Route: "/slide-2", Index: 1, Seconds: 3.25}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := l.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("entries = %d, want 2", len(got))
	}
	if got[0].Route != "/slide-1" || got[1].Seconds != 3.25 {
		t.Fatalf("entries = %+v", got)
	}
	if got[0].At.IsZero() {
		t.Fatal("timestamp not defaulted")
	}
}

func TestEntries_IgnoresTornTrailingLine(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "timings.jsonl")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := l.Append(Entry{Route: "/a", Seconds: 1}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if _, err := f.WriteString(`{"route":"/b","secon`); err != nil {
		t.Fatalf("write torn line: %v", err)
	}
	f.Close()

	l2, err := Open(path)
	if err != nil {
		t.Fatalf("Open again: %v", err)
	}
	defer l2.Close()

	got, err := l2.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(got) != 1 || got[0].Route != "/a" {
		t.Fatalf("entries = %+v, want only /a", got)
	}
}

func TestAppendAfterCloseFails(t *testing.T) {
	t.Parallel()

	l, err := Open(filepath.Join(t.TempDir(), "t.jsonl"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := l.Append(Entry{Route: "/x"}); err == nil {
		t.Fatal("append after close succeeded")
	}
}
