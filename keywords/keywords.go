package keywords

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/btree"

	"github.com/teatak/fenci/segmenter"
)

// Keyword is an extracted word and its score.
type Keyword struct {
	Word   string  `json:"word"`
	Weight float64 `json:"weight"`
}

// Tagger produces the tagged segmentation keywords are drawn from.
type Tagger interface {
	Tag(text string, modes ...segmenter.Mode) ([]segmenter.TaggedToken, error)
}

// Extractor ranks the words of a text with TF-IDF or TextRank. It is safe for
// concurrent use.
type Extractor struct {
	tagger Tagger
	stop   *StopWords

	mu  sync.RWMutex
	idf *IDF
}

// NewExtractor creates an extractor over tagger with the given tables.
func NewExtractor(tagger Tagger, idf *IDF, stop *StopWords) *Extractor {
	return &Extractor{tagger: tagger, idf: idf, stop: stop}
}

// SetIDF replaces the IDF table.
func (e *Extractor) SetIDF(idf *IDF) {
	e.mu.Lock()
	e.idf = idf
	e.mu.Unlock()
}

// IDF returns the current IDF table.
func (e *Extractor) IDF() *IDF {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.idf
}

// StopWords returns the stop word set.
func (e *Extractor) StopWords() *StopWords {
	return e.stop
}

// candidates returns, in text order, the words of the default segmentation
// that have an allowed tag, at least two characters and are not stop words.
func (e *Extractor) candidates(text string, allowedTags []string) ([]string, error) {
	tagged, err := e.tagger.Tag(text, segmenter.ModeDefault)
	if err != nil {
		return nil, err
	}

	var allowed map[string]bool
	if len(allowedTags) > 0 {
		allowed = make(map[string]bool, len(allowedTags))
		for _, t := range allowedTags {
			allowed[t] = true
		}
	}

	var words []string
	for _, t := range tagged {
		if allowed != nil && !allowed[t.Tag] {
			continue
		}
		if utf8.RuneCountInString(strings.TrimSpace(t.Word)) < 2 {
			continue
		}
		if e.stop != nil && e.stop.Contains(t.Word) {
			continue
		}
		words = append(words, t.Word)
	}
	return words, nil
}

type ranked struct {
	Keyword
	first int
}

func rankLess(a, b ranked) bool {
	if a.Weight != b.Weight {
		return a.Weight > b.Weight
	}
	return a.first < b.first
}

// top orders items by weight, highest first, then by first occurrence, and
// returns at most topK of them; topK <= 0 returns all.
func top(items []ranked, topK int) []Keyword {
	tree := btree.NewG(16, rankLess)
	for _, it := range items {
		tree.ReplaceOrInsert(it)
	}

	n := tree.Len()
	if topK > 0 && topK < n {
		n = topK
	}
	result := make([]Keyword, 0, n)
	tree.Ascend(func(it ranked) bool {
		result = append(result, it.Keyword)
		return len(result) < n
	})
	return result
}
