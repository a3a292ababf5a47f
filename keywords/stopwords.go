package keywords

import (
	"bufio"
	"bytes"
	"strings"
	"sync"

	"github.com/teatak/fenci/data"
)

// StopWords is a case-insensitive set of words never returned as keywords.
// It is safe for concurrent use.
type StopWords struct {
	mu  sync.RWMutex
	set map[string]struct{}
}

// NewStopWords creates a set from one word per line.
func NewStopWords(content []byte) *StopWords {
	return &StopWords{set: parseStopWords(content)}
}

// DefaultStopWords returns the embedded stop word list.
func DefaultStopWords() *StopWords {
	return NewStopWords(data.StopWords)
}

// Contains reports whether word is a stop word.
func (s *StopWords) Contains(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.set[strings.ToLower(word)]
	return ok
}

// Add adds word to the set.
func (s *StopWords) Add(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}
	s.mu.Lock()
	s.set[word] = struct{}{}
	s.mu.Unlock()
}

// Remove removes word from the set and reports whether it was present.
func (s *StopWords) Remove(word string) bool {
	word = strings.ToLower(strings.TrimSpace(word))
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.set[word]
	delete(s.set, word)
	return ok
}

// Set replaces the whole set.
func (s *StopWords) Set(content []byte) {
	set := parseStopWords(content)
	s.mu.Lock()
	s.set = set
	s.mu.Unlock()
}

// Len returns the number of stop words.
func (s *StopWords) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.set)
}

func parseStopWords(content []byte) map[string]struct{} {
	content = bytes.TrimPrefix(content, []byte("\ufeff"))
	set := make(map[string]struct{})
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		if word := strings.ToLower(strings.TrimSpace(scanner.Text())); word != "" {
			set[word] = struct{}{}
		}
	}
	return set
}
