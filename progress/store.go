package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/milk9111/dragonlair/common"
)

var ErrNotFound = errors.New("progress: key not found")

// KV is the host key-value medium.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// KVStore persists a Record as JSON under one fixed key.
type KVStore struct {
	kv  KV
	key string
}

func NewKVStore(kv KV) *KVStore {
	return &KVStore{kv: kv, key: common.ProgressKey}
}

func (s *KVStore) Load() Record {
	if s == nil || s.kv == nil {
		return Record{}
	}
	raw, err := s.kv.Get(s.key)
	if err != nil || len(raw) == 0 {
		return Record{}
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil || !rec.valid() {
		return Record{}
	}
	return rec
}

func (s *KVStore) Save(rec Record) error {
	if s == nil || s.kv == nil {
		return nil
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("progress: marshal: %w", err)
	}
	if err := s.kv.Set(s.key, raw); err != nil {
		return fmt.Errorf("progress: save %s: %w", s.key, err)
	}
	return nil
}

// FileKV keeps one file per key inside a directory.
type FileKV struct {
	Dir string
}

func (f FileKV) path(key string) string {
	clean := strings.NewReplacer("/", "_", "\\", "_").Replace(key)
	return filepath.Join(f.Dir, clean+".json")
}

func (f FileKV) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// Set writes through a temp file so a crash never leaves a torn record.
func (f FileKV) Set(key string, value []byte) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return err
	}
	target := f.path(key)
	tmp, err := os.CreateTemp(f.Dir, filepath.Base(target)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), target)
}

// MemoryKV is an in-process medium for tests and replays.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// NewMemoryStore returns a Store backed by a fresh MemoryKV.
func NewMemoryStore() *KVStore {
	return NewKVStore(NewMemoryKV())
}

// NewFileStore persists the record as a JSON file inside dir.
func NewFileStore(dir string) *KVStore {
	return NewKVStore(FileKV{Dir: dir})
}
