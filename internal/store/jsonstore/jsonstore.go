package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Makepad-fr/tada/internal/model"
)

// JSON-backed storage. Single file, human-readable, portable.
// No locking; one invocation at a time is assumed for a local single-user CLI.

// DefaultFileName is used when no location is configured.
const DefaultFileName = "todos.json"

// ErrStorageRead marks a persisted file that could not be read or parsed.
var ErrStorageRead = errors.New("storage read error")

// ReadError describes why Load fell back to an empty list.
type ReadError struct {
	Path   string
	Err    error
	Issues []string
}

func (e *ReadError) Error() string {
	msg := fmt.Sprintf("read %s: %v", e.Path, e.Err)
	if len(e.Issues) > 0 {
		msg += " (" + strings.Join(e.Issues, "; ") + ")"
	}
	return msg
}

func (e *ReadError) Unwrap() error { return e.Err }

func (e *ReadError) Is(target error) bool { return target == ErrStorageRead }

// Store persists a todo list at a fixed path.
type Store struct {
	path string
	log  *log.Logger
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// New returns a Store bound to path. A nil logger discards diagnostics.
func New(path string, logger *log.Logger) *Store {
	if path == "" {
		path = DefaultFileName
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{path: path, log: logger}
}

// Path returns the file location.
func (s *Store) Path() string { return s.path }

// Load reads the full list. A missing file is created empty. Any other
// failure yields an empty list together with a *ReadError.
func (s *Store) Load() ([]model.Todo, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := s.write([]byte("[]")); err != nil {
				return []model.Todo{}, s.readErr(err, nil)
			}
			s.log.Info("created store", "path", s.path)
			return []model.Todo{}, nil
		}
		return []model.Todo{}, s.readErr(fmt.Errorf("read file: %w", err), nil)
	}

	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return []model.Todo{}, s.readErr(fmt.Errorf("json unmarshal: %w", err), nil)
	}
	sch, err := loadSchema()
	if err != nil {
		return []model.Todo{}, s.readErr(fmt.Errorf("compile schema: %w", err), nil)
	}
	if err := sch.Validate(raw); err != nil {
		return []model.Todo{}, s.readErr(errors.New("invalid todo file"), schemaErrors(err))
	}

	var items []model.Todo
	if err := json.Unmarshal(b, &items); err != nil {
		return []model.Todo{}, s.readErr(fmt.Errorf("json unmarshal: %w", err), nil)
	}
	if err := model.Validate(items); err != nil {
		return []model.Todo{}, s.readErr(err, nil)
	}
	if items == nil {
		items = []model.Todo{}
	}
	s.log.Debug("loaded store", "path", s.path, "count", len(items))
	return items, nil
}

// Save overwrites the file with the full list.
func (s *Store) Save(items []model.Todo) error {
	if items == nil {
		items = []model.Todo{}
	}
	b, err := encode(items)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.write(b); err != nil {
		s.log.Error("failed to save todos", "path", s.path, "err", err)
		return err
	}
	s.log.Debug("saved store", "path", s.path, "count", len(items))
	return nil
}

// Clear resets the file to an empty list.
func (s *Store) Clear() error {
	if err := s.write([]byte("[]")); err != nil {
		s.log.Error("failed to clear todos", "path", s.path, "err", err)
		return err
	}
	s.log.Debug("cleared store", "path", s.path)
	return nil
}

func (s *Store) write(b []byte) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *Store) readErr(err error, issues []string) error {
	re := &ReadError{Path: s.path, Err: err, Issues: issues}
	s.log.Error("error reading todo file", "path", s.path, "err", err, "issues", len(issues))
	return re
}

// encode writes 2-space indented JSON without HTML escaping and without a
// trailing newline, matching files written by JSON.stringify(list, null, 2).
func encode(items []model.Todo) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() { schema, schemaErr = compileSchema() })
	return schema, schemaErr
}
