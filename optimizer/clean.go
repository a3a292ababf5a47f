package optimizer

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/teatak/fenci/util"
)

// Word is a candidate or user dictionary word with a raw count.
type Word struct {
	Text string
	Freq int
	Tag  string
}

// ReadWords reads "word freq [tag]" lines. Lines without a positive
// frequency and words containing punctuation are dropped; repeated words have
// their frequencies summed.
func ReadWords(r io.Reader) ([]Word, error) {
	index := make(map[string]int)
	var words []Word

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}
		freq, err := strconv.Atoi(parts[1])
		if err != nil || freq <= 0 {
			continue
		}
		text := strings.TrimPrefix(parts[0], "\ufeff")
		if util.ContainsPunctuation(text) {
			continue
		}
		var tag string
		if len(parts) > 2 {
			tag = parts[2]
		}
		if i, ok := index[text]; ok {
			words[i].Freq += freq
			if tag != "" {
				words[i].Tag = tag
			}
			continue
		}
		index[text] = len(words)
		words = append(words, Word{Text: text, Freq: freq, Tag: tag})
	}
	return words, scanner.Err()
}

// WriteWords writes words as dictionary lines.
func WriteWords(w io.Writer, words []Word) error {
	bw := bufio.NewWriter(w)
	for _, word := range words {
		if word.Tag != "" {
			fmt.Fprintf(bw, "%s %d %s\n", word.Text, word.Freq, word.Tag)
		} else {
			fmt.Fprintf(bw, "%s %d\n", word.Text, word.Freq)
		}
	}
	return bw.Flush()
}

// Clean drops fragments of longer words. A word is pruned when the next word
// in sorted order extends it (as prefix, or as suffix after reversing) with a
// frequency ratio of at least ratio, or when removing its first or last
// character leaves a word more than five times as frequent. The result is
// sorted by text.
func Clean(words []Word, ratio float64) []Word {
	cleaned := prunePrefixes(append([]Word(nil), words...), ratio)
	cleaned = pruneSuffixes(cleaned, ratio)
	cleaned = pruneNoisyExtensions(cleaned)
	sort.Slice(cleaned, func(i, j int) bool {
		return cleaned[i].Text < cleaned[j].Text
	})
	return cleaned
}

func pruneNoisyExtensions(words []Word) []Word {
	dict := make(map[string]int)
	for _, w := range words {
		dict[w.Text] = w.Freq
	}

	var res []Word
	for _, w := range words {
		runes := []rune(w.Text)
		if len(runes) <= 2 {
			res = append(res, w)
			continue
		}

		// "城希尔顿" -> "希尔顿"
		if f, ok := dict[string(runes[1:])]; ok && float64(f)/float64(w.Freq) > 5.0 {
			continue
		}

		// "希尔顿店" -> "希尔顿", unless the last character is a common ending
		if !isProtectedSuffix(runes[len(runes)-1]) {
			if f, ok := dict[string(runes[:len(runes)-1])]; ok && float64(f)/float64(w.Freq) > 5.0 {
				continue
			}
		}
		res = append(res, w)
	}
	return res
}

func isProtectedSuffix(r rune) bool {
	return strings.ContainsRune("市省区县店站路里院校园", r)
}

func prunePrefixes(words []Word, ratio float64) []Word {
	sort.Slice(words, func(i, j int) bool {
		return words[i].Text < words[j].Text
	})

	var res []Word
	for i, curr := range words {
		if i+1 < len(words) {
			next := words[i+1]
			if strings.HasPrefix(next.Text, curr.Text) && float64(next.Freq)/float64(curr.Freq) >= ratio {
				continue
			}
		}
		res = append(res, curr)
	}
	return res
}

func pruneSuffixes(words []Word, ratio float64) []Word {
	for i := range words {
		words[i].Text = reverse(words[i].Text)
	}
	cleaned := prunePrefixes(words, ratio)
	for i := range cleaned {
		cleaned[i].Text = reverse(cleaned[i].Text)
	}
	return cleaned
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
