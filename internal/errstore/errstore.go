// Package errstore keeps errors raised while executing generated code. A bad
// snippet must not abort its transaction, so the error is recorded here and
// surfaced passively for later inspection.
package errstore

import "sync"

// Key addresses one stored error. Kind distinguishes chat-log code from
// standalone generated code; Part and Index locate the snippet inside a
// multi-part response.
type Key struct {
	Kind  string
	Name  string
	Part  int
	Index int
}

type Store struct {
	mu     sync.Mutex
	errors map[Key]string
}

func New() *Store {
	return &Store{errors: make(map[Key]string)}
}

func (s *Store) Set(key Key, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors[key] = message
}

func (s *Store) Get(key Key) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.errors[key]
	return msg, ok
}

func (s *Store) Clear(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.errors, key)
}
