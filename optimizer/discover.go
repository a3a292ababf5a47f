package optimizer

import (
	"bufio"
	"io"
	"sort"
	"unicode"

	"github.com/teatak/fenci/dictionary"
)

// Discover counts the n-grams of 2 to maxGram Han characters in r. Any other
// character separates blocks, so n-grams never span punctuation or Latin text.
func Discover(r io.Reader, maxGram int) (map[string]int, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	counts := make(map[string]int)
	for scanner.Scan() {
		for _, block := range splitToBlocks(scanner.Text()) {
			runes := []rune(block)
			n := len(runes)
			for i := 0; i < n; i++ {
				for k := 2; k <= maxGram && i+k <= n; k++ {
					counts[string(runes[i:i+k])]++
				}
			}
		}
	}
	return counts, scanner.Err()
}

// Candidate is a discovered word with its count in the text and the
// frequency it needs in the dictionary.
type Candidate struct {
	Word  string
	Count int
	Freq  int64
}

// Candidates turns n-gram counts into dictionary entries. N-grams seen at
// least threshold times that are not already words are cleaned with ratio
// (see Clean) and given the frequency SuggestFreq reports. The result is
// ordered by count, highest first.
func Candidates(dict *dictionary.Dictionary, counts map[string]int, threshold int, ratio float64) ([]Candidate, error) {
	var words []Word
	for w, c := range counts {
		if c >= threshold && !dict.Contains(w) {
			words = append(words, Word{Text: w, Freq: c})
		}
	}

	var result []Candidate
	for _, w := range Clean(words, ratio) {
		freq, err := dict.SuggestFreq(w.Text)
		if err != nil {
			return nil, err
		}
		result = append(result, Candidate{Word: w.Text, Count: w.Freq, Freq: freq})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result, nil
}

func splitToBlocks(s string) []string {
	var blocks []string
	var current []rune

	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			current = append(current, r)
		} else if len(current) > 0 {
			blocks = append(blocks, string(current))
			current = nil
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, string(current))
	}
	return blocks
}
