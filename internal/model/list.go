package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// MinPrefixLen is the shortest id prefix accepted as a key.
const MinPrefixLen = 4

// IDFunc generates a fresh record id.
type IDFunc func() string

// NewID is the default IDFunc: a random (v4) UUID.
func NewID() string { return uuid.NewString() }

// Resolve returns the index addressed by key. A base-10 integer is a
// 1-based display position; anything else is an id or a unique id prefix.
func Resolve(list []Todo, key string) (int, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return -1, &KeyError{Key: key, Err: ErrNotFound}
	}
	n, numErr := strconv.Atoi(key)
	if numErr == nil && n >= 1 && n <= len(list) {
		return n - 1, nil
	}
	// An all-digit id prefix is only tried once the position lookup misses.
	i, err := resolveID(list, key)
	if err != nil && numErr == nil && !errors.Is(err, ErrAmbiguousKey) {
		return -1, &KeyError{Key: key, Err: fmt.Errorf("index out of range: have %d, got %d: %w", len(list), n, ErrNotFound)}
	}
	return i, err
}

func resolveID(list []Todo, key string) (int, error) {
	for i, t := range list {
		if t.ID == key {
			return i, nil
		}
	}
	if len(key) < MinPrefixLen {
		return -1, &KeyError{Key: key, Err: ErrNotFound}
	}
	found := -1
	for i, t := range list {
		if strings.HasPrefix(t.ID, key) {
			if found >= 0 {
				return -1, &KeyError{Key: key, Err: ErrAmbiguousKey}
			}
			found = i
		}
	}
	if found < 0 {
		return -1, &KeyError{Key: key, Err: ErrNotFound}
	}
	return found, nil
}

// Find returns the record addressed by key.
func Find(list []Todo, key string) (Todo, error) {
	i, err := Resolve(list, key)
	if err != nil {
		return Todo{}, err
	}
	return list[i], nil
}

// Add appends a new pending todo with an id from newID (NewID when nil).
// The input slice is not modified.
func Add(list []Todo, text string, newID IDFunc) ([]Todo, Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return list, Todo{}, ErrEmptyText
	}
	if newID == nil {
		newID = NewID
	}
	t := Todo{ID: newID(), Text: text}
	out := make([]Todo, 0, len(list)+1)
	out = append(out, list...)
	return append(out, t), t, nil
}

// Delete removes the record addressed by key. The input slice is not modified.
func Delete(list []Todo, key string) ([]Todo, Todo, error) {
	i, err := Resolve(list, key)
	if err != nil {
		return list, Todo{}, err
	}
	removed := list[i]
	out := make([]Todo, 0, len(list)-1)
	out = append(out, list[:i]...)
	out = append(out, list[i+1:]...)
	return out, removed, nil
}

// Edit replaces the text of the record addressed by key.
func Edit(list []Todo, key, text string) ([]Todo, Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return list, Todo{}, ErrEmptyText
	}
	return update(list, key, func(t *Todo) { t.Text = text })
}

// SetCompleted sets the completion flag of the record addressed by key.
func SetCompleted(list []Todo, key string, value bool) ([]Todo, Todo, error) {
	return update(list, key, func(t *Todo) { t.Completed = value })
}

// Toggle flips the completion flag of the record addressed by key.
func Toggle(list []Todo, key string) ([]Todo, Todo, error) {
	return update(list, key, func(t *Todo) { t.Completed = !t.Completed })
}

func update(list []Todo, key string, fn func(*Todo)) ([]Todo, Todo, error) {
	i, err := Resolve(list, key)
	if err != nil {
		return list, Todo{}, err
	}
	out := append([]Todo(nil), list...)
	fn(&out[i])
	return out, out[i], nil
}

// Stats counts completed and pending records.
func Stats(list []Todo) Counts {
	s := Counts{Total: len(list)}
	for _, t := range list {
		if t.Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}

// Search returns records whose text contains keyword, ignoring case,
// in list order and with their original positions.
func Search(list []Todo, keyword string) []Match {
	kw := strings.ToLower(keyword)
	out := []Match{}
	for i, t := range list {
		if strings.Contains(strings.ToLower(t.Text), kw) {
			out = append(out, Match{Position: i + 1, Todo: t})
		}
	}
	return out
}

// Validate reports empty or duplicate ids.
func Validate(list []Todo) error {
	seen := make(map[string]int, len(list))
	for i, t := range list {
		if t.ID == "" {
			return fmt.Errorf("todo %d: empty id", i+1)
		}
		if j, dup := seen[t.ID]; dup {
			return fmt.Errorf("todo %d: duplicate id %q (first at %d)", i+1, t.ID, j+1)
		}
		seen[t.ID] = i
	}
	return nil
}

// ShortID returns the display prefix of an id.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
