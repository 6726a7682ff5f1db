// Package chatlog persists multi-turn conversations as topic files under
// <data>/chat/topics/<topic>.json. Every new turn is written immediately with
// an empty assistant field and rewritten once the response arrives, so a
// crash mid-request leaves a recoverable partial part.
package chatlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/set-night/aibridge/internal/domain"
)

// Part is one turn of a conversation: the user text, the visible system
// condition strings, and the assistant response (empty until it arrives).
type Part struct {
	User      string   `json:"user"`
	System    []string `json:"system"`
	Assistant string   `json:"assistant"`
}

type topicFile struct {
	Topic topicBody `json:"topic"`
}

type topicBody struct {
	Parts []Part `json:"parts"`
}

// Store locates topic files under the per-install data directory.
type Store struct {
	dir string
}

func NewStore(dataDir string) *Store {
	return &Store{dir: filepath.Join(dataDir, "chat", "topics")}
}

// New starts an empty log for a topic. Nothing is written until Save.
func (s *Store) New(topic string) *Log {
	return &Log{store: s, topic: topic}
}

// Load reads an existing topic.
func (s *Store) Load(topic string) (*Log, error) {
	raw, err := os.ReadFile(s.path(topic))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrTopicNotFound
		}
		return nil, fmt.Errorf("read topic %q: %w", topic, err)
	}

	var file topicFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse topic %q: %w", topic, err)
	}
	return &Log{store: s, topic: topic, parts: file.Topic.Parts}, nil
}

// Topics lists all persisted topic names.
func (s *Store) Topics() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list topics: %w", err)
	}

	var topics []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		topics = append(topics, strings.TrimSuffix(e.Name(), ".json"))
	}
	return topics, nil
}

// Remove deletes a topic file.
func (s *Store) Remove(topic string) error {
	if err := os.Remove(s.path(topic)); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrTopicNotFound
		}
		return fmt.Errorf("remove topic %q: %w", topic, err)
	}
	return nil
}

func (s *Store) path(topic string) string {
	return filepath.Join(s.dir, topic+".json")
}

// Log is the in-memory view of one topic file.
type Log struct {
	store *Store
	topic string
	parts []Part
}

func (l *Log) Topic() string {
	return l.topic
}

func (l *Log) NumParts() int {
	return len(l.parts)
}

func (l *Log) Part(i int) (Part, error) {
	if i < 0 || i >= len(l.parts) {
		return Part{}, domain.ErrPartOutOfRange
	}
	return l.parts[i], nil
}

// AddPart appends a new turn. The assistant field starts empty and is filled
// in exactly once via SetAssistant.
func (l *Log) AddPart(user string, system []string) {
	l.parts = append(l.parts, Part{User: user, System: system})
}

// SetAssistant records the response for one part.
func (l *Log) SetAssistant(i int, text string) error {
	if i < 0 || i >= len(l.parts) {
		return domain.ErrPartOutOfRange
	}
	l.parts[i].Assistant = text
	return nil
}

// Save writes the whole topic file.
func (l *Log) Save() error {
	if err := os.MkdirAll(l.store.dir, 0o755); err != nil {
		return fmt.Errorf("create topic dir: %w", err)
	}

	raw, err := json.MarshalIndent(topicFile{Topic: topicBody{Parts: l.parts}}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal topic %q: %w", l.topic, err)
	}
	if err := os.WriteFile(l.store.path(l.topic), raw, 0o644); err != nil {
		return fmt.Errorf("write topic %q: %w", l.topic, err)
	}
	return nil
}
