package results

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"sync"
)

// Store keeps run records in a JSONL file, one record per line.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates the backing file if needed and returns the store.
func NewStore(path string) (*Store, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	if cerr := f.Close(); cerr != nil {
		return nil, cerr
	}
	return &Store{path: path}, nil
}

// AppendRun writes all records of one run.
func (s *Store) AppendRun(runID string, recs []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, r := range recs {
		if err := enc.Encode(runRecord{Run: runID, Key: r.Key, Value: r.Value}); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Query returns the records of a run, optionally narrowed to keys with the
// given prefix. Lines that fail to decode are skipped.
func (s *Store) Query(runID, prefix string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	var res []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var r runRecord
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			continue
		}
		if r.Run != runID {
			continue
		}
		if prefix != "" && !strings.HasPrefix(r.Key, prefix) {
			continue
		}
		res = append(res, Record{Key: r.Key, Value: r.Value})
	}
	return res, scanner.Err()
}
