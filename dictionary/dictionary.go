package dictionary

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/adamzy/cedar-go"
)

var (
	// ErrNotLoaded is returned by every operation invoked before LoadBase.
	ErrNotLoaded = errors.New("dictionary: base dictionary not loaded")
	// ErrEmptyWord is returned when adding or removing a blank word.
	ErrEmptyWord = errors.New("dictionary: empty word")
)

// Entry is a single lexicon record.
type Entry struct {
	Word string
	Freq int64
	Tag  string
}

// Dictionary holds words with their frequencies and part-of-speech tags.
//
// The entries loaded by LoadBase form the base layer. Merge, SetOverlay,
// AddWord and RemoveWord change the session layer on top of it, and Reset
// drops the session layer again. All methods are safe for concurrent use;
// mutations are serialized against each other and against View callbacks.
type Dictionary struct {
	// Logger receives a one-line summary of loads and resets. Nil disables logging.
	Logger *log.Logger

	mu      sync.RWMutex
	trie    *cedar.Cedar
	entries []Entry // indexed by trie value; removed slots have an empty Word
	free    []int   // removed slots, reused by insert
	size    int
	total   int64
	maxLen  int

	base   []Entry
	dirty  bool
	loaded bool
}

// NewDictionary creates a new empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{trie: cedar.New()}
}

// LoadBase replaces the whole dictionary with the entries in data and makes
// them the base layer restored by Reset.
func (d *Dictionary) LoadBase(data []byte) (LoadStats, error) {
	lines, stats, err := parse(data)
	if err != nil {
		return stats, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.clear()
	if err := d.apply(lines, &stats); err != nil {
		return stats, err
	}
	d.base = d.snapshot()
	d.dirty = false
	d.loaded = true
	d.logf("dictionary: loaded base (%s, %d entries, total frequency %d)", stats, d.size, d.total)
	return stats, nil
}

// Merge adds the entries in data on top of the current state. Existing
// words are overwritten.
func (d *Dictionary) Merge(data []byte) (LoadStats, error) {
	lines, stats, err := parse(data)
	if err != nil {
		return stats, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.loaded {
		return stats, ErrNotLoaded
	}
	if err := d.apply(lines, &stats); err != nil {
		return stats, err
	}
	if stats.Added+stats.Updated > 0 {
		d.dirty = true
	}
	d.logf("dictionary: merged (%s)", stats)
	return stats, nil
}

// SetOverlay discards the session layer and replaces it with the entries in data.
func (d *Dictionary) SetOverlay(data []byte) (LoadStats, error) {
	lines, stats, err := parse(data)
	if err != nil {
		return stats, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.loaded {
		return stats, ErrNotLoaded
	}
	if err := d.restore(); err != nil {
		return stats, err
	}
	if err := d.apply(lines, &stats); err != nil {
		return stats, err
	}
	d.dirty = stats.Added+stats.Updated > 0
	d.logf("dictionary: overlay replaced (%s)", stats)
	return stats, nil
}

// Reset restores the base layer. It is a no-op when nothing changed since LoadBase.
func (d *Dictionary) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.loaded {
		return ErrNotLoaded
	}
	if !d.dirty {
		return nil
	}
	if err := d.restore(); err != nil {
		return err
	}
	d.dirty = false
	d.logf("dictionary: reset to base (%d entries)", d.size)
	return nil
}

// AddWord inserts or overwrites word. A non-positive freq is replaced by
// SuggestFreq so the word is segmented as a unit afterwards. An empty tag
// keeps the tag of an existing entry. It returns the frequency stored.
func (d *Dictionary) AddWord(word string, freq int64, tag string) (int64, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return 0, ErrEmptyWord
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.loaded {
		return 0, ErrNotLoaded
	}
	if freq <= 0 {
		freq = d.suggestFreq(word)
	}
	if _, err := d.insert(Entry{Word: word, Freq: freq, Tag: tag}); err != nil {
		return 0, err
	}
	d.dirty = true
	return freq, nil
}

// RemoveWord deletes word and reports whether it was present.
func (d *Dictionary) RemoveWord(word string) (bool, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return false, ErrEmptyWord
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.loaded {
		return false, ErrNotLoaded
	}
	key := []byte(word)
	id, err := d.trie.Get(key)
	if err != nil {
		return false, nil
	}
	if err := d.trie.Delete(key); err != nil {
		return false, fmt.Errorf("dictionary: remove %q: %w", word, err)
	}
	d.total -= d.entries[id].Freq
	d.entries[id] = Entry{}
	d.free = append(d.free, id)
	d.size--
	d.dirty = true
	return true, nil
}

// SuggestFreq returns the smallest frequency word needs to beat the best
// segmentation of its own characters. It does not change the dictionary.
func (d *Dictionary) SuggestFreq(word string) (int64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.loaded {
		return 0, ErrNotLoaded
	}
	if word == "" {
		return 0, ErrEmptyWord
	}
	return d.suggestFreq(word), nil
}

// Lookup returns the entry for word.
func (d *Dictionary) Lookup(word string) (Entry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lookup(word)
}

// Contains checks if a word exists in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.Lookup(word)
	return ok
}

// Total returns the sum of all entry frequencies.
func (d *Dictionary) Total() int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.total
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.size
}

// MaxLen returns an upper bound on the length in runes of the entries. It is
// exact after LoadBase, SetOverlay and Reset; RemoveWord never lowers it.
func (d *Dictionary) MaxLen() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.maxLen
}

// Loaded reports whether LoadBase has succeeded.
func (d *Dictionary) Loaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded
}

// View runs fn with a consistent read-only view of the dictionary. No
// mutation is observed while fn runs. The view must not escape fn.
func (d *Dictionary) View(fn func(v View) error) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.loaded {
		return ErrNotLoaded
	}
	return fn(View{d: d})
}

func (d *Dictionary) lookup(word string) (Entry, bool) {
	if d.trie == nil || word == "" {
		return Entry{}, false
	}
	id, err := d.trie.Get([]byte(word))
	if err != nil {
		return Entry{}, false
	}
	return d.entries[id], true
}

// insert reports whether word was new.
func (d *Dictionary) insert(e Entry) (bool, error) {
	key := []byte(e.Word)
	if id, err := d.trie.Get(key); err == nil {
		old := &d.entries[id]
		if e.Tag == "" {
			e.Tag = old.Tag
		}
		d.total += e.Freq - old.Freq
		*old = e
		return false, nil
	}

	id := len(d.entries)
	if n := len(d.free); n > 0 {
		id = d.free[n-1]
	}
	if err := d.trie.Insert(key, id); err != nil {
		return false, fmt.Errorf("dictionary: insert %q: %w", e.Word, err)
	}
	if id < len(d.entries) {
		d.entries[id] = e
		d.free = d.free[:len(d.free)-1]
	} else {
		d.entries = append(d.entries, e)
	}
	d.size++
	d.total += e.Freq
	if n := utf8.RuneCountInString(e.Word); n > d.maxLen {
		d.maxLen = n
	}
	return true, nil
}

// apply inserts parsed lines; lines without a frequency are inserted last
// with a suggested one.
func (d *Dictionary) apply(lines []line, stats *LoadStats) error {
	var pending []line
	for _, l := range lines {
		if l.freq <= 0 {
			pending = append(pending, l)
			continue
		}
		if err := d.applyOne(Entry{Word: l.word, Freq: l.freq, Tag: l.tag}, stats); err != nil {
			return err
		}
	}
	for _, l := range pending {
		freq := int64(1)
		if d.total > 0 {
			freq = d.suggestFreq(l.word)
		}
		if err := d.applyOne(Entry{Word: l.word, Freq: freq, Tag: l.tag}, stats); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dictionary) applyOne(e Entry, stats *LoadStats) error {
	added, err := d.insert(e)
	if err != nil {
		return err
	}
	if added {
		stats.Added++
	} else {
		stats.Updated++
	}
	return nil
}

func (d *Dictionary) clear() {
	d.trie = cedar.New()
	d.entries = nil
	d.free = nil
	d.size = 0
	d.total = 0
	d.maxLen = 0
}

func (d *Dictionary) snapshot() []Entry {
	out := make([]Entry, 0, d.size)
	for _, e := range d.entries {
		if e.Word != "" {
			out = append(out, e)
		}
	}
	return out
}

func (d *Dictionary) restore() error {
	d.clear()
	for _, e := range d.base {
		if _, err := d.insert(e); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dictionary) logf(format string, args ...any) {
	if d.Logger != nil {
		d.Logger.Printf(format, args...)
	}
}
