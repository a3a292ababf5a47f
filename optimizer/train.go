package optimizer

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/teatak/fenci/hmm"
	"github.com/teatak/fenci/util"
)

// Train reads a segmented corpus, one sentence of space separated words per
// line with optional "/tag" suffixes. It returns the word counts, ordered by
// count then text, and an HMM model estimated from the same sentences.
// Punctuation words are skipped.
func Train(r io.Reader) ([]Word, *hmm.Model, error) {
	trainer := hmm.NewTrainer()
	index := make(map[string]int)
	tagCounts := make(map[string]map[string]int)
	var words []Word

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 1024*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		var sentence []string
		for _, field := range strings.Fields(scanner.Text()) {
			text, tag := field, ""
			if i := strings.LastIndexByte(field, '/'); i > 0 && i < len(field)-1 {
				text, tag = field[:i], field[i+1:]
			}
			if util.IsPunctuation(text) {
				continue
			}
			sentence = append(sentence, field)

			i, ok := index[text]
			if !ok {
				i = len(words)
				index[text] = i
				words = append(words, Word{Text: text})
			}
			words[i].Freq++
			if tag != "" {
				if tagCounts[text] == nil {
					tagCounts[text] = make(map[string]int)
				}
				tagCounts[text][tag]++
			}
		}
		if len(sentence) > 0 {
			trainer.Add(sentence)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	for i := range words {
		best := 0
		for tag, c := range tagCounts[words[i].Text] {
			if c > best || (c == best && tag < words[i].Tag) {
				best = c
				words[i].Tag = tag
			}
		}
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Freq != words[j].Freq {
			return words[i].Freq > words[j].Freq
		}
		return words[i].Text < words[j].Text
	})
	return words, trainer.Model(), nil
}

// TrainEmissions estimates emissions from a dictionary of "word freq [tag]"
// lines, each word counted freq times. Starts, transitions and state tags
// are copied from base, since a dictionary carries no word order.
func TrainEmissions(r io.Reader, base *hmm.Model) (*hmm.Model, error) {
	trainer := hmm.NewTrainer()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}
		freq, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil || freq <= 0 {
			continue
		}
		trainer.AddWord(strings.TrimPrefix(parts[0], "\ufeff"), freq)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	m := trainer.Model()
	m.Start = base.Start
	m.Trans = base.Trans
	m.Tags = base.Tags
	return m, nil
}
