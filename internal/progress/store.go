package progress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/gofrs/flock"

	"galley/internal/config"
)

// lockRetryDelay is how often lock acquisition is retried while blocked on
// another instance. Critical sections are short (one table read + write), so
// a small delay keeps claim latency low without spinning.
const lockRetryDelay = 25 * time.Millisecond

// Store manages the shared progress file.
type Store struct {
	path string
	lock *flock.Flock
}

// Open prepares the progress store, creating an empty progress file when none
// exists yet.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("progress store requires config")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	path := cfg.Paths.ProgressPath
	if err := initFile(path); err != nil {
		return nil, err
	}

	return &Store{path: path, lock: flock.New(path)}, nil
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

func initFile(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat progress file: %w", err)
	}
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		return fmt.Errorf("create progress file: %w", err)
	}
	return nil
}

// ReadAll returns the full progress table under a shared lock.
func (s *Store) ReadAll(ctx context.Context) (map[string]Record, error) {
	locked, err := s.lock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire shared lock: %w", err)
	}
	if !locked {
		return nil, errors.New("acquire shared lock: lock not granted")
	}
	defer s.unlock()

	return s.readLocked()
}

// Get returns the record for slug, if any.
func (s *Store) Get(ctx context.Context, slug string) (Record, bool, error) {
	records, err := s.ReadAll(ctx)
	if err != nil {
		return Record{}, false, err
	}
	record, ok := records[slug]
	return record, ok, nil
}

// Stats returns record counts grouped by status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	records, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	stats := make(map[Status]int, len(allStatuses))
	for _, record := range records {
		stats[record.Status]++
	}
	return stats, nil
}

// Reset removes the record for slug so the item becomes claimable again.
// This is the operator recovery path for items left in_progress by a dead
// instance; the claim machinery itself never deletes records.
func (s *Store) Reset(ctx context.Context, slug string) (bool, error) {
	return s.mutate(ctx, func(records map[string]Record) bool {
		if _, ok := records[slug]; !ok {
			return false
		}
		delete(records, slug)
		return true
	})
}

// mutate runs apply inside the exclusive critical section. The whole
// open-lock-read-decide-write-unlock sequence is atomic with respect to any
// other instance doing the same; no reader can observe state between the
// decision and the write. apply reports whether the table changed and must
// be written back.
func (s *Store) mutate(ctx context.Context, apply func(map[string]Record) bool) (bool, error) {
	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return false, fmt.Errorf("acquire exclusive lock: %w", err)
	}
	if !locked {
		return false, errors.New("acquire exclusive lock: lock not granted")
	}
	defer s.unlock()

	records, err := s.readLocked()
	if err != nil {
		return false, err
	}
	if !apply(records) {
		return false, nil
	}
	return true, s.writeLocked(records)
}

func (s *Store) readLocked() (map[string]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]Record{}, nil
		}
		return nil, fmt.Errorf("read progress file: %w", err)
	}
	return decodeRecords(data, s.path)
}

func (s *Store) writeLocked(records map[string]Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode progress table: %w", err)
	}
	data = append(data, '\n')
	// Truncating in place keeps the inode, so the held lock stays valid.
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write progress file: %w", err)
	}
	return nil
}

func (s *Store) unlock() {
	_ = s.lock.Unlock()
}

func decodeRecords(data []byte, path string) (map[string]Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]Record{}, nil
	}
	var records map[string]Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrCorrupt, path, err)
	}
	if records == nil {
		records = map[string]Record{}
	}
	for slug, record := range records {
		if !record.Status.Valid() {
			return nil, fmt.Errorf("%w: record %q has unknown status %q", ErrCorrupt, slug, record.Status)
		}
	}
	return records, nil
}
