// Package timelog persists per-slide presentation timings as an append-only
// JSONL file, one entry per slide visit, so rehearsal runs can be compared
// afterwards.
package timelog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	defaultFileMode = 0644
	defaultDirMode  = 0755
)

// Entry records how long one slide stayed on screen.
type Entry struct {
	Route   string    `json:"route"`
	Index   int       `json:"index"`
	Seconds float64   `json:"seconds"`
	At      time.Time `json:"at"`
}

// Log is a durable append-only timing log.
type Log struct {
	mu   sync.Mutex
	path string
	file *os.File
}

// Open creates or opens the timing log at path.
func Open(path string) (*Log, error) {
	if path == "" {
		return nil, errors.New("timelog: path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), defaultDirMode); err != nil {
		return nil, fmt.Errorf("timelog: mkdir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, defaultFileMode)
	if err != nil {
		return nil, fmt.Errorf("timelog: open: %w", err)
	}
	return &Log{path: path, file: f}, nil
}

// Append persists one entry.
func (l *Log) Append(e Entry) error {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return errors.New("timelog: closed")
	}
	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("timelog: marshal entry: %w", err)
	}
	line = append(line, '\n')
	if _, err := l.file.Write(line); err != nil {
		return fmt.Errorf("timelog: write entry: %w", err)
	}
	return nil
}

// Entries reads back every entry in append order. A partially written
// trailing line is ignored.
func (l *Log) Entries() ([]Entry, error) {
	l.mu.Lock()
	path := l.path
	l.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("timelog: read: %w", err)
	}
	defer f.Close()

	var out []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			// Tolerate a torn final line from a crashed run.
			continue
		}
		out = append(out, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("timelog: scan: %w", err)
	}
	return out, nil
}

// Close syncs and closes the log file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Sync()
	if cerr := l.file.Close(); err == nil {
		err = cerr
	}
	l.file = nil
	return err
}
