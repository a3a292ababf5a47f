// Package engine ties the dictionary, the HMM model and the keyword tables
// together behind one object.
package engine

import (
	"fmt"
	"log"

	"github.com/teatak/fenci/data"
	"github.com/teatak/fenci/dictionary"
	"github.com/teatak/fenci/hmm"
	"github.com/teatak/fenci/keywords"
	"github.com/teatak/fenci/segmenter"
)

var (
	// ErrNotInitialized is returned by every operation before LoadBaseDictionary.
	ErrNotInitialized = dictionary.ErrNotLoaded
	// ErrInvalidMode is returned for unsupported segmentation modes.
	ErrInvalidMode = segmenter.ErrInvalidMode
)

// DefaultCacheSize is the number of Viterbi results kept per engine.
const DefaultCacheSize = 4096

type options struct {
	logger    *log.Logger
	model     *hmm.Model
	idf       *keywords.IDF
	stopWords *keywords.StopWords
	cacheSize int
}

// Option configures an Engine.
type Option func(*options)

// WithLogger logs dictionary loads and resets to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithHMMModel replaces the embedded HMM model.
func WithHMMModel(m *hmm.Model) Option {
	return func(o *options) { o.model = m }
}

// WithIDF replaces the embedded IDF table.
func WithIDF(idf *keywords.IDF) Option {
	return func(o *options) { o.idf = idf }
}

// WithStopWords replaces the embedded stop words.
func WithStopWords(s *keywords.StopWords) Option {
	return func(o *options) { o.stopWords = s }
}

// WithCacheSize sets the Viterbi cache size; 0 disables the cache.
func WithCacheSize(n int) Option {
	return func(o *options) { o.cacheSize = n }
}

// Engine segments, tags and extracts keywords. All methods are safe for
// concurrent use. An Engine from New needs LoadBaseDictionary before use.
type Engine struct {
	dict      *dictionary.Dictionary
	seg       *segmenter.Segmenter
	extractor *keywords.Extractor
}

// New creates an engine without a dictionary.
func New(opts ...Option) (*Engine, error) {
	o := options{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}

	var err error
	if o.model == nil {
		if o.model, err = hmm.Default(); err != nil {
			return nil, fmt.Errorf("engine: load HMM model: %w", err)
		}
	}
	if o.idf == nil {
		if o.idf, err = keywords.DefaultIDF(); err != nil {
			return nil, fmt.Errorf("engine: load IDF: %w", err)
		}
	}
	if o.stopWords == nil {
		o.stopWords = keywords.DefaultStopWords()
	}

	dict := dictionary.NewDictionary()
	dict.Logger = o.logger
	seg := segmenter.NewSegmenter(dict, o.model, o.cacheSize)
	return &Engine{
		dict:      dict,
		seg:       seg,
		extractor: keywords.NewExtractor(seg, o.idf, o.stopWords),
	}, nil
}

// NewDefault creates an engine loaded with the embedded dictionary.
func NewDefault(opts ...Option) (*Engine, error) {
	e, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := e.LoadBaseDictionary(data.Dictionary); err != nil {
		return nil, err
	}
	return e, nil
}

// Dictionary returns the underlying dictionary.
func (e *Engine) Dictionary() *dictionary.Dictionary {
	return e.dict
}

// LoadBaseDictionary replaces the dictionary with content and makes it the
// state ResetDictionary returns to.
func (e *Engine) LoadBaseDictionary(content []byte) error {
	_, err := e.dict.LoadBase(content)
	return err
}

// LoadExtraDictionary merges content into the dictionary and returns a
// status line such as "Ok: 3 added, 1 updated, 0 skipped".
func (e *Engine) LoadExtraDictionary(content []byte) (string, error) {
	stats, err := e.dict.Merge(content)
	if err != nil {
		return "", err
	}
	return stats.String(), nil
}

// SetDictionaryOverlay resets the dictionary and merges content on top.
func (e *Engine) SetDictionaryOverlay(content []byte) error {
	_, err := e.dict.SetOverlay(content)
	return err
}

// ResetDictionary drops every change made since LoadBaseDictionary.
func (e *Engine) ResetDictionary() error {
	return e.dict.Reset()
}

// AddWord adds or replaces word and returns the stored frequency. A freq <= 0
// stores the frequency SuggestFrequency reports.
func (e *Engine) AddWord(word string, freq int64, tag string) (int64, error) {
	return e.dict.AddWord(word, freq, tag)
}

// RemoveWord deletes word and reports whether it was present.
func (e *Engine) RemoveWord(word string) (bool, error) {
	return e.dict.RemoveWord(word)
}

// SuggestFrequency returns the frequency word needs to be cut as one word.
func (e *Engine) SuggestFrequency(word string) (int64, error) {
	return e.dict.SuggestFreq(word)
}

// Cut segments text.
func (e *Engine) Cut(text string, mode segmenter.Mode) ([]string, error) {
	return e.seg.Cut(text, mode)
}

// CutForSearch segments text and adds overlapping dictionary sub-words.
func (e *Engine) CutForSearch(text string, mode segmenter.Mode) ([]string, error) {
	return e.seg.CutForSearch(text, mode)
}

// Tokenize segments text and reports rune offsets.
func (e *Engine) Tokenize(text string, tmode segmenter.TokenizeMode, mode segmenter.Mode) ([]segmenter.Token, error) {
	return e.seg.Tokenize(text, tmode, mode)
}

// Tag segments text and assigns parts of speech.
func (e *Engine) Tag(text string, mode segmenter.Mode) ([]segmenter.TaggedToken, error) {
	return e.seg.Tag(text, mode)
}

// ExtractKeywordsTFIDF returns the topK keywords by TF-IDF; topK <= 0 returns all.
func (e *Engine) ExtractKeywordsTFIDF(text string, topK int, allowedTags ...string) ([]keywords.Keyword, error) {
	return e.extractor.TFIDF(text, topK, allowedTags...)
}

// ExtractKeywordsTextRank returns the topK keywords by TextRank; topK <= 0 returns all.
func (e *Engine) ExtractKeywordsTextRank(text string, topK int, allowedTags ...string) ([]keywords.Keyword, error) {
	return e.extractor.TextRank(text, topK, allowedTags...)
}

// LoadIDF replaces the IDF table.
func (e *Engine) LoadIDF(content []byte) error {
	idf, _, err := keywords.ParseIDF(content)
	if err != nil {
		return err
	}
	e.extractor.SetIDF(idf)
	return nil
}

// AddStopWord excludes word from keyword results.
func (e *Engine) AddStopWord(word string) {
	e.extractor.StopWords().Add(word)
}

// RemoveStopWord allows word in keyword results again.
func (e *Engine) RemoveStopWord(word string) bool {
	return e.extractor.StopWords().Remove(word)
}

// SetStopWords replaces the stop words with one word per line of content.
func (e *Engine) SetStopWords(content []byte) {
	e.extractor.StopWords().Set(content)
}
