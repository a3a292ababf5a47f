package segmenter

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/teatak/fenci/dictionary"
	"github.com/teatak/fenci/hmm"
)

// Mode defines the segmentation mode.
type Mode int

const (
	ModeDefault Mode = iota // ModeDefault uses the max-probability dictionary path.
	ModeHMM                 // ModeHMM also regroups unknown single characters with the HMM.
	ModeAll                 // ModeAll emits every dictionary span at every position.
)

func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeHMM:
		return "hmm"
	case ModeAll:
		return "all"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps "default", "hmm" and "all" to a Mode.
func ParseMode(s string) (Mode, error) {
	for m := ModeDefault; m <= ModeAll; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// TokenizeMode selects between a plain partition and overlapping search tokens.
type TokenizeMode int

const (
	TokenizeDefault TokenizeMode = iota
	TokenizeSearch
)

var (
	// ErrInvalidMode is returned for a mode value the operation does not support.
	ErrInvalidMode = errors.New("segmenter: invalid mode")
	// ErrNoModel is returned when HMM mode is requested without a model.
	ErrNoModel = errors.New("segmenter: no HMM model")
)

// Token is a word with its rune offsets in the input, end exclusive.
type Token struct {
	Word  string `json:"word"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// TaggedToken is a word with its part of speech.
type TaggedToken struct {
	Word string `json:"word"`
	Tag  string `json:"tag"`
}

// piece is a segmented word; state is the HMM state of its last character,
// or -1 when the word did not come from the model.
type piece struct {
	word  string
	state int
}

// Segmenter handles the text segmentation.
type Segmenter struct {
	Dict     *dictionary.Dictionary
	HMMModel *hmm.Model

	cache *lru.Cache[string, []hmm.Word]
}

// NewSegmenter creates a new segmenter. model may be nil, in which case
// ModeHMM is rejected. Viterbi results for up to cacheSize distinct
// character runs are cached; cacheSize <= 0 disables the cache.
func NewSegmenter(dict *dictionary.Dictionary, model *hmm.Model, cacheSize int) *Segmenter {
	s := &Segmenter{Dict: dict, HMMModel: model}
	if cacheSize > 0 {
		s.cache, _ = lru.New[string, []hmm.Word](cacheSize)
	}
	return s
}

// Cut segments the text into a slice of strings using the specified mode (defaults to ModeDefault).
func (s *Segmenter) Cut(text string, modes ...Mode) ([]string, error) {
	mode, err := s.mode(modes, true)
	if err != nil {
		return nil, err
	}

	var pieces []piece
	err = s.Dict.View(func(v dictionary.View) error {
		pieces = s.cut(v, text, mode)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := make([]string, len(pieces))
	for i, p := range pieces {
		result[i] = p.word
	}
	return result, nil
}

// CutForSearch segments the text and adds, before every word longer than two
// characters, its sub-words found in the dictionary. Typical usage: for
// search engine indexing.
func (s *Segmenter) CutForSearch(text string, modes ...Mode) ([]string, error) {
	tokens, err := s.Tokenize(text, TokenizeSearch, modes...)
	if err != nil {
		return nil, err
	}
	result := make([]string, len(tokens))
	for i, t := range tokens {
		result[i] = t.Word
	}
	return result, nil
}

// Tokenize segments the text and reports rune offsets. In TokenizeSearch
// mode every word is preceded by its dictionary sub-words, as in CutForSearch.
func (s *Segmenter) Tokenize(text string, tmode TokenizeMode, modes ...Mode) ([]Token, error) {
	if tmode != TokenizeDefault && tmode != TokenizeSearch {
		return nil, fmt.Errorf("%w: tokenize mode %d", ErrInvalidMode, int(tmode))
	}
	mode, err := s.mode(modes, false)
	if err != nil {
		return nil, err
	}

	tokens := []Token{}
	err = s.Dict.View(func(v dictionary.View) error {
		start := 0
		for _, p := range s.cut(v, text, mode) {
			runes := []rune(p.word)
			if tmode == TokenizeSearch {
				tokens = appendSubWords(v, tokens, runes, start)
			}
			tokens = append(tokens, Token{Word: p.word, Start: start, End: start + len(runes)})
			start += len(runes)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// appendSubWords adds the dictionary n-grams of a word, shortest first, each
// length in order of position. Two-character and pure alphanumeric words have none.
func appendSubWords(v dictionary.View, tokens []Token, runes []rune, offset int) []Token {
	n := len(runes)
	if n <= 2 || isPureAlphaNum(runes) {
		return tokens
	}
	for size := 2; size < n; size++ {
		for i := 0; i+size <= n; i++ {
			sub := string(runes[i : i+size])
			if v.Contains(sub) {
				tokens = append(tokens, Token{Word: sub, Start: offset + i, End: offset + i + size})
			}
		}
	}
	return tokens
}

// mode validates the optional mode argument.
func (s *Segmenter) mode(modes []Mode, allowAll bool) (Mode, error) {
	mode := ModeDefault
	if len(modes) > 0 {
		mode = modes[0]
	}
	switch mode {
	case ModeDefault:
	case ModeHMM:
		if s.HMMModel == nil {
			return mode, ErrNoModel
		}
	case ModeAll:
		if !allowAll {
			return mode, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
		}
	default:
		return mode, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
	return mode, nil
}

func (s *Segmenter) cut(v dictionary.View, text string, mode Mode) []piece {
	pieces := []piece{}
	for _, block := range splitTextToBlocks([]rune(text)) {
		if !block.isWord {
			for _, w := range splitOther(block.runes) {
				pieces = append(pieces, piece{word: w, state: -1})
			}
			continue
		}
		switch mode {
		case ModeAll:
			pieces = s.cutAll(v, pieces, block.runes)
		case ModeHMM:
			pieces = s.cutHMM(v, pieces, block.runes)
		default:
			for _, w := range v.Cut(block.runes) {
				pieces = append(pieces, piece{word: w, state: -1})
			}
		}
	}
	return pieces
}

// cutAll emits every edge of the DAG, by start and then by end.
func (s *Segmenter) cutAll(v dictionary.View, pieces []piece, runes []rune) []piece {
	for i, ends := range v.DAG(runes) {
		for _, end := range ends {
			pieces = append(pieces, piece{word: string(runes[i:end]), state: -1})
		}
	}
	return pieces
}

// cutHMM follows the dictionary path and hands runs of single characters to
// the model.
func (s *Segmenter) cutHMM(v dictionary.View, pieces []piece, runes []rune) []piece {
	var buf []rune

	flushBuf := func() {
		switch {
		case len(buf) == 0:
			return
		case len(buf) == 1:
			pieces = append(pieces, piece{word: string(buf), state: -1})
		case v.Contains(string(buf)):
			for _, r := range buf {
				pieces = append(pieces, piece{word: string(r), state: -1})
			}
		default:
			pieces = s.cutUnknown(pieces, buf)
		}
		buf = nil
	}

	for _, word := range v.Cut(runes) {
		r := []rune(word)
		if len(r) == 1 {
			buf = append(buf, r...)
			continue
		}
		flushBuf()
		pieces = append(pieces, piece{word: word, state: -1})
	}
	flushBuf()
	return pieces
}

// cutUnknown decodes Han runs with the model; other runs keep numbers and
// Latin words whole.
func (s *Segmenter) cutUnknown(pieces []piece, runes []rune) []piece {
	for start := 0; start < len(runes); {
		han := isHan(runes[start])
		end := start + 1
		for end < len(runes) && isHan(runes[end]) == han {
			end++
		}
		if han {
			for _, w := range s.decode(runes[start:end]) {
				pieces = append(pieces, piece{word: w.Text, state: w.State})
			}
		} else {
			for _, w := range splitSkip(string(runes[start:end])) {
				pieces = append(pieces, piece{word: w, state: -1})
			}
		}
		start = end
	}
	return pieces
}

func (s *Segmenter) decode(runes []rune) []hmm.Word {
	if s.cache == nil {
		return s.HMMModel.Cut(runes)
	}
	key := string(runes)
	if words, ok := s.cache.Get(key); ok {
		return words
	}
	words := s.HMMModel.Cut(runes)
	s.cache.Add(key, words)
	return words
}
