package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/diewo77/hoadon/internal/models"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps all invoices in one human-readable JSON array. Every append
// rewrites the whole file through a temporary file and a rename, so readers
// never observe a partial write.
//
// Appends are serialized within a process. Separate processes writing the
// same file are not coordinated and may lose updates.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by the JSON file at path. The file is
// created on the first append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) LoadAll(ctx context.Context) ([]models.Invoice, error) {
	invoices, _, err := s.load()
	return invoices, err
}

func (s *FileStore) Append(ctx context.Context, inv models.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoices, _, err := s.load()
	if err != nil {
		return err
	}
	invoices = append(invoices, inv)

	data, err := encode(invoices)
	if err != nil {
		return fmt.Errorf("encode invoices: %w", err)
	}
	return writeFileAtomic(s.path, data)
}

func (s *FileStore) FindByNumber(ctx context.Context, number string) (models.Invoice, error) {
	invoices, exists, err := s.load()
	if err != nil {
		return models.Invoice{}, err
	}
	if !exists {
		return models.Invoice{}, ErrEmpty
	}
	return first(invoices, number)
}

// load reads the collection. exists is false when the file is missing.
func (s *FileStore) load() (invoices []models.Invoice, exists bool, err error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Invoice{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, &invoices); err != nil {
		return nil, true, &CorruptError{Source: s.path, Err: err}
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	return invoices, true, nil
}

// encode writes UTF-8 text as is, indented by four spaces.
func encode(invoices []models.Invoice) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(invoices); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
