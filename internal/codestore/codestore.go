// Package codestore persists generated source files under <data>/code and
// extracts code bodies from free-form completion text.
package codestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/set-night/aibridge/internal/domain"
)

type Store struct {
	dir string
}

func NewStore(dataDir string) *Store {
	return &Store{dir: filepath.Join(dataDir, "code")}
}

func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".py")
}

// Save writes a code file and returns its path.
func (s *Store) Save(name, code string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create code dir: %w", err)
	}
	path := s.Path(name)
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return "", fmt.Errorf("write code %q: %w", name, err)
	}
	return path, nil
}

func (s *Store) Load(name string) (string, error) {
	raw, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrCodeNotFound
		}
		return "", fmt.Errorf("read code %q: %w", name, err)
	}
	return string(raw), nil
}

func (s *Store) Remove(name string) error {
	if err := os.Remove(s.Path(name)); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrCodeNotFound
		}
		return fmt.Errorf("remove code %q: %w", name, err)
	}
	return nil
}

func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list code: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".py") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".py"))
	}
	return names, nil
}

// ExtractCodeBlocks returns the bodies of all fenced code blocks in a
// completion response, in order of appearance. The opening fence may carry a
// language tag.
func ExtractCodeBlocks(text string) []string {
	var blocks []string
	var current []string
	inBlock := false

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inBlock {
				blocks = append(blocks, strings.Join(current, "\n"))
				current = nil
			}
			inBlock = !inBlock
			continue
		}
		if inBlock {
			current = append(current, line)
		}
	}
	return blocks
}

// ExtractSingleCodeBlock expects exactly one fenced block; anything else is a
// domain-logic error that aborts the transaction.
func ExtractSingleCodeBlock(text string) (string, error) {
	blocks := ExtractCodeBlocks(text)
	if len(blocks) != 1 {
		return "", fmt.Errorf("%w: found %d", domain.ErrNoCodeBlock, len(blocks))
	}
	return blocks[0], nil
}
